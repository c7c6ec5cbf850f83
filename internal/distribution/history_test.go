package distribution

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/saheminvest/saheminvest-backend/internal/model"
)

func ledgerRow(t *testing.T, investorID, profit string, date string) model.LedgerRow {
	t.Helper()
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		t.Fatalf("bad date literal %q: %v", date, err)
	}
	return model.LedgerRow{
		ProfitDistribution: model.ProfitDistribution{
			InvestorID:       investorID,
			DealID:           "deal-1",
			Amount:           decimal.RequireFromString(profit),
			ProfitAmount:     decimal.RequireFromString(profit),
			CapitalAmount:    decimal.Zero,
			ProfitPeriod:     model.DistributionPartial,
			DistributionDate: d,
		},
		InvestorName:  "Investor " + investorID,
		InvestorEmail: investorID + "@example.com",
	}
}

// TestSummarizePartials verifies deal-level and per-investor rollups of
// completed partial payouts.
func TestSummarizePartials(t *testing.T) {
	t.Run("empty ledger yields empty summary", func(t *testing.T) {
		history := SummarizePartials(nil)

		assertDecimalEqual(t, history.Summary.TotalPartialProfit, "0", "TotalPartialProfit")
		if history.Summary.DistributionCount != 0 {
			t.Errorf("Expected 0 distributions, got %d", history.Summary.DistributionCount)
		}
		if len(history.Investors) != 0 {
			t.Errorf("Expected no investor data, got %d", len(history.Investors))
		}
	})

	t.Run("sums partial profits per investor and in total", func(t *testing.T) {
		rows := []model.LedgerRow{
			ledgerRow(t, "investor-x", "200", "2024-03-01"),
			ledgerRow(t, "investor-x", "200", "2024-06-01"),
			ledgerRow(t, "investor-x", "250", "2024-09-01"),
		}

		history := SummarizePartials(rows)

		assertDecimalEqual(t, history.Summary.TotalPartialProfit, "650", "TotalPartialProfit")
		assertDecimalEqual(t, history.Summary.TotalPartialCapital, "0", "TotalPartialCapital")
		if history.Summary.DistributionCount != 3 {
			t.Errorf("Expected 3 distinct distribution dates, got %d", history.Summary.DistributionCount)
		}

		if len(history.Investors) != 1 {
			t.Fatalf("Expected 1 investor, got %d", len(history.Investors))
		}
		x := history.Investors[0]
		if x.Partials.Count != 3 {
			t.Errorf("Expected 3 partials for investor, got %d", x.Partials.Count)
		}
		assertDecimalEqual(t, x.Partials.TotalProfit, "650", "investor TotalProfit")
		assertDecimalEqual(t, x.Partials.TotalCapital, "0", "investor TotalCapital")
	})

	t.Run("counts distinct dates once across investors", func(t *testing.T) {
		rows := []model.LedgerRow{
			ledgerRow(t, "investor-x", "120", "2024-03-01"),
			ledgerRow(t, "investor-y", "80", "2024-03-01"),
			ledgerRow(t, "investor-x", "120", "2024-06-01"),
			ledgerRow(t, "investor-y", "80", "2024-06-01"),
		}

		history := SummarizePartials(rows)

		if history.Summary.DistributionCount != 2 {
			t.Errorf("Expected 2 distinct distribution dates, got %d", history.Summary.DistributionCount)
		}
		assertDecimalEqual(t, history.Summary.TotalPartialProfit, "400", "TotalPartialProfit")
		if len(history.Investors) != 2 {
			t.Errorf("Expected 2 investors, got %d", len(history.Investors))
		}
	})

	t.Run("dates are returned sorted ascending", func(t *testing.T) {
		rows := []model.LedgerRow{
			ledgerRow(t, "investor-x", "100", "2024-09-01"),
			ledgerRow(t, "investor-x", "100", "2024-03-01"),
		}

		history := SummarizePartials(rows)

		if len(history.Summary.DistributionDates) != 2 {
			t.Fatalf("Expected 2 dates, got %d", len(history.Summary.DistributionDates))
		}
		if !history.Summary.DistributionDates[0].Before(history.Summary.DistributionDates[1]) {
			t.Error("Expected dates sorted ascending")
		}
	})

	t.Run("totals map feeds the allocator lookup", func(t *testing.T) {
		rows := []model.LedgerRow{
			ledgerRow(t, "investor-x", "650", "2024-03-01"),
		}

		totals := SummarizePartials(rows).Totals()
		h, ok := totals["investor-x"]
		if !ok {
			t.Fatal("Expected investor-x in totals map")
		}
		assertDecimalEqual(t, h.TotalProfit, "650", "TotalProfit")
	})
}
