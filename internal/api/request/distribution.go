package request

import "github.com/shopspring/decimal"

// CreateDistributionRequest is the body for creating a distribution
// request. For PARTIAL distributions the commission amounts are flat; for
// FINAL distributions the percent fields apply to the realized profit.
type CreateDistributionRequest struct {
	DealID                 string          `json:"dealId"`
	RequestedBy            string          `json:"requestedBy"`
	DistributionType       string          `json:"distributionType"`
	TotalAmount            decimal.Decimal `json:"totalAmount"`
	EstimatedGainPercent   decimal.Decimal `json:"estimatedGainPercent"`
	SahemInvestPercent     decimal.Decimal `json:"sahemInvestPercent"`
	ReservedGainPercent    decimal.Decimal `json:"reservedGainPercent"`
	SahemInvestAmount      decimal.Decimal `json:"sahemInvestAmount"`
	ReservedAmount         decimal.Decimal `json:"reservedAmount"`
	EstimatedProfit        decimal.Decimal `json:"estimatedProfit"`
	EstimatedReturnCapital decimal.Decimal `json:"estimatedReturnCapital"`
	IsLoss                 bool            `json:"isLoss"`
	Description            string          `json:"description"`
}

// CustomInvestorAmount overrides one investor's computed payout at
// approval time.
type CustomInvestorAmount struct {
	InvestorID   string          `json:"investorId"`
	FinalProfit  decimal.Decimal `json:"finalProfit"`
	FinalCapital decimal.Decimal `json:"finalCapital"`
}

// ApproveDistributionRequest is the body for approving a distribution
// request. All fields are optional overrides of the stored request values.
type ApproveDistributionRequest struct {
	SahemInvestPercent  *decimal.Decimal       `json:"sahemInvestPercent,omitempty"`
	ReservedGainPercent *decimal.Decimal       `json:"reservedGainPercent,omitempty"`
	SahemInvestAmount   *decimal.Decimal       `json:"sahemInvestAmount,omitempty"`
	ReservedAmount      *decimal.Decimal       `json:"reservedAmount,omitempty"`
	IsLoss              *bool                  `json:"isLoss,omitempty"`
	CustomAmounts       []CustomInvestorAmount `json:"customAmounts,omitempty"`
}
