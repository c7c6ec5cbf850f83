package distribution

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/saheminvest/saheminvest-backend/internal/model"
)

// HistorySummary is the deal-level rollup of completed PARTIAL payouts.
// TotalPartialCapital is zero by construction: partial rounds never return
// principal.
type HistorySummary struct {
	TotalPartialProfit  decimal.Decimal `json:"totalPartialProfit"`
	TotalPartialCapital decimal.Decimal `json:"totalPartialCapital"`
	DistributionDates   []time.Time     `json:"distributionDates"`
	DistributionCount   int             `json:"distributionCount"`
}

// InvestorHistory is a per-investor view of prior partial payouts.
type InvestorHistory struct {
	InvestorID    string           `json:"investorId"`
	InvestorName  string           `json:"investorName"`
	InvestorEmail string           `json:"investorEmail"`
	Partials      HistoricalTotals `json:"partialDistributions"`
}

// PartialHistory is the full historical aggregate consumed by the admin
// review screen and by final-distribution previews.
type PartialHistory struct {
	Summary   HistorySummary    `json:"summary"`
	Investors []InvestorHistory `json:"investorData"`
}

// SummarizePartials rolls completed PARTIAL ledger rows up into a deal
// summary and per-investor breakdowns. Rows are expected to already be
// filtered to one deal; ordering does not matter.
func SummarizePartials(rows []model.LedgerRow) PartialHistory {
	summary := HistorySummary{
		TotalPartialProfit:  decimal.Zero,
		TotalPartialCapital: decimal.Zero,
	}

	byInvestor := make(map[string]*InvestorHistory)
	order := make([]string, 0)
	seenDates := make(map[string]bool)

	for _, row := range rows {
		summary.TotalPartialProfit = summary.TotalPartialProfit.Add(row.ProfitAmount)
		summary.TotalPartialCapital = summary.TotalPartialCapital.Add(row.CapitalAmount)

		dateKey := row.DistributionDate.Format("2006-01-02")
		if !seenDates[dateKey] {
			seenDates[dateKey] = true
			summary.DistributionDates = append(summary.DistributionDates, row.DistributionDate)
		}

		h, ok := byInvestor[row.InvestorID]
		if !ok {
			h = &InvestorHistory{
				InvestorID:    row.InvestorID,
				InvestorName:  row.InvestorName,
				InvestorEmail: row.InvestorEmail,
				Partials: HistoricalTotals{
					TotalProfit:  decimal.Zero,
					TotalCapital: decimal.Zero,
				},
			}
			byInvestor[row.InvestorID] = h
			order = append(order, row.InvestorID)
		}

		h.Partials.Count++
		h.Partials.TotalProfit = h.Partials.TotalProfit.Add(row.ProfitAmount)
		h.Partials.TotalCapital = h.Partials.TotalCapital.Add(row.CapitalAmount)
		h.Partials.Dates = append(h.Partials.Dates, row.DistributionDate)
	}

	sort.Slice(summary.DistributionDates, func(i, j int) bool {
		return summary.DistributionDates[i].Before(summary.DistributionDates[j])
	})
	summary.DistributionCount = len(summary.DistributionDates)

	investors := make([]InvestorHistory, 0, len(order))
	for _, id := range order {
		investors = append(investors, *byInvestor[id])
	}
	sort.Slice(investors, func(i, j int) bool {
		return investors[i].InvestorID < investors[j].InvestorID
	})

	return PartialHistory{Summary: summary, Investors: investors}
}

// Totals converts the per-investor histories into the lookup map the
// allocator takes.
func (p PartialHistory) Totals() map[string]HistoricalTotals {
	totals := make(map[string]HistoricalTotals, len(p.Investors))
	for _, inv := range p.Investors {
		totals[inv.InvestorID] = inv.Partials
	}
	return totals
}
