package distribution

import (
	"errors"
	"strings"
	"testing"

	"github.com/saheminvest/saheminvest-backend/internal/apperrors"
)

// TestAnalyzeProfitability_Loss verifies loss classification: commissions
// are zeroed and recovery equals the disbursed amount.
func TestAnalyzeProfitability_Loss(t *testing.T) {
	t.Run("flagged loss reports loss amount and percentage", func(t *testing.T) {
		analysis, err := AnalyzeProfitability(
			dec(t, "10000"), // original investment
			dec(t, "7000"),  // total amount disbursed
			dec(t, "0"),
			dec(t, "7000"),
			dec(t, "10"), dec(t, "10"),
			true,
		)
		if err != nil {
			t.Fatalf("AnalyzeProfitability() returned unexpected error: %v", err)
		}

		if analysis.IsProfitable {
			t.Error("Expected IsProfitable to be false")
		}
		assertDecimalEqual(t, analysis.LossAmount, "3000", "LossAmount")
		assertDecimalEqual(t, analysis.LossPercentage, "30", "LossPercentage")
		assertDecimalEqual(t, analysis.SahemAmount, "0", "SahemAmount")
		assertDecimalEqual(t, analysis.ReserveAmount, "0", "ReserveAmount")
		assertDecimalEqual(t, analysis.InvestorRecovery, "7000", "InvestorRecovery")
		if !strings.Contains(analysis.Message, "3000.00") {
			t.Errorf("Expected message to name the loss amount, got %q", analysis.Message)
		}
	})

	t.Run("negative estimated profit is treated as loss even without the flag", func(t *testing.T) {
		analysis, err := AnalyzeProfitability(
			dec(t, "10000"),
			dec(t, "9500"),
			dec(t, "-500"),
			dec(t, "9500"),
			dec(t, "10"), dec(t, "10"),
			false,
		)
		if err != nil {
			t.Fatalf("AnalyzeProfitability() returned unexpected error: %v", err)
		}

		if analysis.IsProfitable {
			t.Error("Expected IsProfitable to be false for negative profit")
		}
		assertDecimalEqual(t, analysis.LossAmount, "500", "LossAmount")
	})

	t.Run("zero original investment does not divide by zero", func(t *testing.T) {
		analysis, err := AnalyzeProfitability(
			dec(t, "0"), dec(t, "0"), dec(t, "0"), dec(t, "0"),
			dec(t, "10"), dec(t, "10"),
			true,
		)
		if err != nil {
			t.Fatalf("AnalyzeProfitability() returned unexpected error: %v", err)
		}
		assertDecimalEqual(t, analysis.LossPercentage, "0", "LossPercentage")
	})
}

// TestAnalyzeProfitability_Profit verifies the profit case matches the
// final-distribution commission split.
func TestAnalyzeProfitability_Profit(t *testing.T) {
	t.Run("reports commission split and recovery", func(t *testing.T) {
		analysis, err := AnalyzeProfitability(
			dec(t, "10000"),
			dec(t, "11000"),
			dec(t, "1000"),
			dec(t, "10000"),
			dec(t, "10"), dec(t, "10"),
			false,
		)
		if err != nil {
			t.Fatalf("AnalyzeProfitability() returned unexpected error: %v", err)
		}

		if !analysis.IsProfitable {
			t.Error("Expected IsProfitable to be true")
		}
		assertDecimalEqual(t, analysis.SahemAmount, "100", "SahemAmount")
		assertDecimalEqual(t, analysis.ReserveAmount, "100", "ReserveAmount")
		assertDecimalEqual(t, analysis.InvestorProfit, "800", "InvestorProfit")
		assertDecimalEqual(t, analysis.InvestorRecovery, "10800", "InvestorRecovery")
		assertDecimalEqual(t, analysis.LossAmount, "0", "LossAmount")
	})

	t.Run("propagates invalid commission configuration", func(t *testing.T) {
		_, err := AnalyzeProfitability(
			dec(t, "10000"), dec(t, "11000"), dec(t, "1000"), dec(t, "10000"),
			dec(t, "70"), dec(t, "40"),
			false,
		)
		if !errors.Is(err, apperrors.ErrInvalidCommissionConfiguration) {
			t.Errorf("Expected ErrInvalidCommissionConfiguration, got %v", err)
		}
	})
}
