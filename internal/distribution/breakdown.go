// Package distribution implements the profit/loss distribution engine:
// commission breakdown, per-investor allocation, historical partial rollups
// and profitability analysis. All functions are pure and operate on exact
// decimal values; persistence is the caller's concern.
package distribution

import (
	"github.com/shopspring/decimal"

	"github.com/saheminvest/saheminvest-backend/internal/apperrors"
	"github.com/saheminvest/saheminvest-backend/internal/model"
)

var (
	hundred = decimal.NewFromInt(100)

	// Tolerance is the platform-wide cent tolerance for cross-checking
	// admin-entered amounts against computed totals.
	Tolerance = decimal.New(1, -2) // 0.01
)

// Input carries everything needed to compute a distribution breakdown.
// PARTIAL requests use the flat SahemAmount/ReserveAmount fields (the deal
// has not closed, so there is no realized profit to take a percentage of);
// FINAL requests use SahemPercent/ReservePercent against EstimatedProfit.
type Input struct {
	Type            model.DistributionType
	TotalAmount     decimal.Decimal // cash disbursed this round
	EstimatedProfit decimal.Decimal // FINAL: realized profit
	CapitalReturn   decimal.Decimal // FINAL: principal returned to investors
	SahemPercent    decimal.Decimal
	ReservePercent  decimal.Decimal
	SahemAmount     decimal.Decimal
	ReserveAmount   decimal.Decimal
	IsLoss          bool
}

// Breakdown is the result of splitting a distribution round between the
// platform commission, the reserved-gains holdback and the investor pools.
// TotalToInvestors always equals InvestorsCapital + InvestorsProfit.
type Breakdown struct {
	SahemAmount      decimal.Decimal `json:"sahemAmount"`
	ReserveAmount    decimal.Decimal `json:"reserveAmount"`
	SahemPercent     decimal.Decimal `json:"sahemPercent"`
	ReservePercent   decimal.Decimal `json:"reservePercent"`
	InvestorsProfit  decimal.Decimal `json:"investorsProfit"`
	InvestorsCapital decimal.Decimal `json:"investorsCapital"`
	TotalToInvestors decimal.Decimal `json:"totalToInvestors"`
	IsLoss           bool            `json:"isLoss"`
}

// Calculate computes the commission split for a distribution round.
//
// Three cases:
//   - PARTIAL: commissions are flat admin-set amounts deducted from the cash
//     disbursement; no capital is returned. Effective percentages are derived
//     for display.
//   - FINAL with loss: all commission is waived; the full amount flows back
//     to investors as capital.
//   - FINAL with profit: commissions are percentages of realized profit only,
//     never of principal; capital passes through as given.
//
// Commission inputs that would leave the investor pool negative are rejected
// with apperrors.ErrInvalidCommissionConfiguration.
func Calculate(in Input) (Breakdown, error) {
	if in.TotalAmount.IsNegative() || in.EstimatedProfit.IsNegative() && !in.IsLoss ||
		in.CapitalReturn.IsNegative() || in.SahemAmount.IsNegative() || in.ReserveAmount.IsNegative() {
		return Breakdown{}, apperrors.ErrNegativeAmount
	}

	if in.Type == model.DistributionPartial {
		return calculatePartial(in)
	}
	if in.IsLoss {
		return calculateFinalLoss(in), nil
	}
	return calculateFinalProfit(in)
}

func calculatePartial(in Input) (Breakdown, error) {
	commission := in.SahemAmount.Add(in.ReserveAmount)
	if commission.GreaterThan(in.TotalAmount) {
		return Breakdown{}, apperrors.ErrInvalidCommissionConfiguration
	}

	pool := in.TotalAmount.Sub(commission)

	b := Breakdown{
		SahemAmount:      in.SahemAmount,
		ReserveAmount:    in.ReserveAmount,
		InvestorsProfit:  pool,
		InvestorsCapital: decimal.Zero,
		TotalToInvestors: pool,
	}

	// Effective percentages of the disbursement, for display alongside the
	// flat amounts.
	if in.TotalAmount.IsPositive() {
		b.SahemPercent = in.SahemAmount.Mul(hundred).Div(in.TotalAmount).Round(2)
		b.ReservePercent = in.ReserveAmount.Mul(hundred).Div(in.TotalAmount).Round(2)
	}

	return b, nil
}

func calculateFinalLoss(in Input) Breakdown {
	// The platform waives all commission on a loss so investors recover as
	// much principal as possible. The entire disbursement is capital.
	return Breakdown{
		SahemAmount:      decimal.Zero,
		ReserveAmount:    decimal.Zero,
		SahemPercent:     decimal.Zero,
		ReservePercent:   decimal.Zero,
		InvestorsProfit:  decimal.Zero,
		InvestorsCapital: in.TotalAmount,
		TotalToInvestors: in.TotalAmount,
		IsLoss:           true,
	}
}

func calculateFinalProfit(in Input) (Breakdown, error) {
	if in.SahemPercent.IsNegative() || in.ReservePercent.IsNegative() {
		return Breakdown{}, apperrors.ErrNegativeAmount
	}
	if in.SahemPercent.Add(in.ReservePercent).GreaterThan(hundred) {
		return Breakdown{}, apperrors.ErrInvalidCommissionConfiguration
	}

	sahemAmount := in.EstimatedProfit.Mul(in.SahemPercent).Div(hundred).Round(2)
	reserveAmount := in.EstimatedProfit.Mul(in.ReservePercent).Div(hundred).Round(2)
	profitPool := in.EstimatedProfit.Sub(sahemAmount).Sub(reserveAmount)

	return Breakdown{
		SahemAmount:      sahemAmount,
		ReserveAmount:    reserveAmount,
		SahemPercent:     in.SahemPercent,
		ReservePercent:   in.ReservePercent,
		InvestorsProfit:  profitPool,
		InvestorsCapital: in.CapitalReturn,
		TotalToInvestors: in.CapitalReturn.Add(profitPool),
	}, nil
}
