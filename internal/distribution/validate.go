package distribution

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ValidationResult reports whether admin-edited investor amounts reconcile
// with the computed pools. Errors are display-ready mismatch descriptions;
// nothing is auto-corrected.
type ValidationResult struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

// ValidateInvestorAmounts checks that per-investor profit and capital
// amounts sum to the expected pools within the cent tolerance, and that no
// individual amount is negative.
func ValidateInvestorAmounts(allocations []Allocation, expectedProfit, expectedCapital decimal.Decimal) ValidationResult {
	result := ValidationResult{Valid: true, Errors: []string{}}

	profitTotal := decimal.Zero
	capitalTotal := decimal.Zero

	for _, a := range allocations {
		if a.FinalProfit.IsNegative() {
			result.Errors = append(result.Errors,
				fmt.Sprintf("negative profit amount %s for investor %s", a.FinalProfit.StringFixed(2), a.InvestorName))
		}
		if a.FinalCapital.IsNegative() {
			result.Errors = append(result.Errors,
				fmt.Sprintf("negative capital amount %s for investor %s", a.FinalCapital.StringFixed(2), a.InvestorName))
		}
		profitTotal = profitTotal.Add(a.FinalProfit)
		capitalTotal = capitalTotal.Add(a.FinalCapital)
	}

	if profitTotal.Sub(expectedProfit).Abs().GreaterThan(Tolerance) {
		result.Errors = append(result.Errors,
			fmt.Sprintf("investor profit total %s does not match expected %s",
				profitTotal.StringFixed(2), expectedProfit.StringFixed(2)))
	}

	if capitalTotal.Sub(expectedCapital).Abs().GreaterThan(Tolerance) {
		result.Errors = append(result.Errors,
			fmt.Sprintf("investor capital total %s does not match expected %s",
				capitalTotal.StringFixed(2), expectedCapital.StringFixed(2)))
	}

	result.Valid = len(result.Errors) == 0
	return result
}
