package distribution

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/saheminvest/saheminvest-backend/internal/apperrors"
	"github.com/saheminvest/saheminvest-backend/internal/model"
)

// HistoricalTotals is the per-investor rollup of prior PARTIAL payouts.
// TotalCapital is always zero for partials; it is carried so allocation
// output can report both fields with one type.
type HistoricalTotals struct {
	Count        int             `json:"count"`
	TotalProfit  decimal.Decimal `json:"totalProfit"`
	TotalCapital decimal.Decimal `json:"totalCapital"`
	Dates        []time.Time     `json:"dates,omitempty"`
}

// Allocation is the computed payout for one investor in the current round,
// combined with that investor's historical partial totals.
type Allocation struct {
	InvestorID               string          `json:"investorId"`
	InvestorName             string          `json:"investorName"`
	InvestorEmail            string          `json:"investorEmail"`
	TotalInvestment          decimal.Decimal `json:"totalInvestment"`
	InvestmentRatio          decimal.Decimal `json:"investmentRatio"`
	PartialCapitalReceived   decimal.Decimal `json:"partialCapitalReceived"`
	PartialProfitReceived    decimal.Decimal `json:"partialProfitReceived"`
	PartialDistributionCount int             `json:"partialDistributionCount"`
	FinalCapital             decimal.Decimal `json:"finalCapital"`
	FinalProfit              decimal.Decimal `json:"finalProfit"`
	FinalTotal               decimal.Decimal `json:"finalTotal"`
	// InvestmentIDs are the underlying investment rows this allocation
	// covers, largest first. Ledger writes attach to the first.
	InvestmentIDs []string `json:"-"`
}

// Allocate prorates the profit and capital pools across investors by their
// share of total capital in the deal. Investors with multiple investment
// rows are grouped. An investor absent from history is a first-time payee,
// not an error.
//
// Shares are rounded to cents; the investor sorted last receives
// pool − sum(allocated) for each pool, so the totals reconcile exactly and
// no sub-cent drift ever accumulates. Results are sorted descending by
// total investment (ties broken by investor ID for determinism).
func Allocate(investments []model.DealInvestment, profitPool, capitalPool decimal.Decimal, history map[string]HistoricalTotals) ([]Allocation, error) {
	if profitPool.IsNegative() || capitalPool.IsNegative() {
		return nil, apperrors.ErrNegativeAmount
	}

	grouped := make(map[string]*Allocation)
	order := make([]string, 0)
	total := decimal.Zero

	for _, inv := range investments {
		a, ok := grouped[inv.InvestorID]
		if !ok {
			a = &Allocation{
				InvestorID:    inv.InvestorID,
				InvestorName:  inv.InvestorName,
				InvestorEmail: inv.InvestorEmail,
			}
			grouped[inv.InvestorID] = a
			order = append(order, inv.InvestorID)
		}
		a.TotalInvestment = a.TotalInvestment.Add(inv.Amount)
		a.InvestmentIDs = append(a.InvestmentIDs, inv.ID)
		total = total.Add(inv.Amount)
	}

	if len(grouped) == 0 || !total.IsPositive() {
		return nil, apperrors.ErrNoInvestments
	}

	allocations := make([]Allocation, 0, len(grouped))
	for _, id := range order {
		allocations = append(allocations, *grouped[id])
	}

	sort.Slice(allocations, func(i, j int) bool {
		if !allocations[i].TotalInvestment.Equal(allocations[j].TotalInvestment) {
			return allocations[i].TotalInvestment.GreaterThan(allocations[j].TotalInvestment)
		}
		return allocations[i].InvestorID < allocations[j].InvestorID
	})

	allocatedProfit := decimal.Zero
	allocatedCapital := decimal.Zero

	for i := range allocations {
		a := &allocations[i]
		a.InvestmentRatio = a.TotalInvestment.Div(total)

		if h, ok := history[a.InvestorID]; ok {
			a.PartialProfitReceived = h.TotalProfit
			a.PartialCapitalReceived = h.TotalCapital
			a.PartialDistributionCount = h.Count
		}

		if i == len(allocations)-1 {
			// Last recipient absorbs the rounding remainder of each pool.
			a.FinalProfit = profitPool.Sub(allocatedProfit)
			a.FinalCapital = capitalPool.Sub(allocatedCapital)
		} else {
			a.FinalProfit = profitPool.Mul(a.TotalInvestment).Div(total).Round(2)
			a.FinalCapital = capitalPool.Mul(a.TotalInvestment).Div(total).Round(2)
			allocatedProfit = allocatedProfit.Add(a.FinalProfit)
			allocatedCapital = allocatedCapital.Add(a.FinalCapital)
		}

		a.FinalTotal = a.FinalCapital.Add(a.FinalProfit)
	}

	return allocations, nil
}
