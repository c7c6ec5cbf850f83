package distribution

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/saheminvest/saheminvest-backend/internal/model"
)

// Analysis classifies a deal outcome and summarizes what investors get
// back. Message is a display-ready explanation of the same numbers.
type Analysis struct {
	IsProfitable     bool            `json:"isProfitable"`
	LossAmount       decimal.Decimal `json:"lossAmount"`
	LossPercentage   decimal.Decimal `json:"lossPercentage"`
	SahemAmount      decimal.Decimal `json:"sahemAmount"`
	ReserveAmount    decimal.Decimal `json:"reserveAmount"`
	InvestorProfit   decimal.Decimal `json:"investorProfit"`
	InvestorRecovery decimal.Decimal `json:"investorRecovery"`
	Message          string          `json:"message"`
}

// AnalyzeProfitability reports whether a closing deal is profitable or
// lossy and what flows back to investors either way. A negative estimated
// profit is treated as a loss even when the loss flag was not set.
//
// The profit case shares the final-distribution commission split with
// Calculate, so the two can never disagree; invalid commission
// configurations propagate as the same error.
func AnalyzeProfitability(originalInvestment, totalAmount, estimatedProfit, estimatedCapitalReturn, sahemPercent, reservePercent decimal.Decimal, isLoss bool) (Analysis, error) {
	if isLoss || estimatedProfit.IsNegative() {
		lossAmount := originalInvestment.Sub(totalAmount)
		lossPercentage := decimal.Zero
		if originalInvestment.IsPositive() {
			lossPercentage = lossAmount.Mul(hundred).Div(originalInvestment).Round(2)
		}

		return Analysis{
			IsProfitable:     false,
			LossAmount:       lossAmount,
			LossPercentage:   lossPercentage,
			SahemAmount:      decimal.Zero,
			ReserveAmount:    decimal.Zero,
			InvestorProfit:   decimal.Zero,
			InvestorRecovery: totalAmount,
			Message: fmt.Sprintf(
				"Deal closed at a loss of $%s (%s%% of invested capital). All commissions are waived; investors recover $%s.",
				lossAmount.StringFixed(2), lossPercentage.StringFixed(2), totalAmount.StringFixed(2),
			),
		}, nil
	}

	b, err := Calculate(Input{
		Type:            model.DistributionFinal,
		TotalAmount:     totalAmount,
		EstimatedProfit: estimatedProfit,
		CapitalReturn:   estimatedCapitalReturn,
		SahemPercent:    sahemPercent,
		ReservePercent:  reservePercent,
	})
	if err != nil {
		return Analysis{}, err
	}

	recovery := estimatedCapitalReturn.Add(b.InvestorsProfit)

	return Analysis{
		IsProfitable:     true,
		LossAmount:       decimal.Zero,
		LossPercentage:   decimal.Zero,
		SahemAmount:      b.SahemAmount,
		ReserveAmount:    b.ReserveAmount,
		InvestorProfit:   b.InvestorsProfit,
		InvestorRecovery: recovery,
		Message: fmt.Sprintf(
			"Deal closed profitably with $%s profit. Sahem Invest commission $%s, reserved gains $%s; investors receive $%s in profit plus $%s returned capital.",
			estimatedProfit.StringFixed(2), b.SahemAmount.StringFixed(2), b.ReserveAmount.StringFixed(2),
			b.InvestorsProfit.StringFixed(2), estimatedCapitalReturn.StringFixed(2),
		),
	}, nil
}
