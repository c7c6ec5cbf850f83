package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// DistributionType distinguishes interim cash disbursements from the
// closing distribution of a deal.
type DistributionType string

const (
	DistributionPartial DistributionType = "PARTIAL"
	DistributionFinal   DistributionType = "FINAL"
)

// RequestStatus represents the lifecycle of a distribution request.
// PROCESSING is a transient state held only while an approval transaction
// is in flight; it is what guarantees a deal never has two approvals
// running at once.
type RequestStatus string

const (
	RequestStatusPending    RequestStatus = "PENDING"
	RequestStatusProcessing RequestStatus = "PROCESSING"
	RequestStatusApproved   RequestStatus = "APPROVED"
	RequestStatusRejected   RequestStatus = "REJECTED"
)

// DistributionRequest is one distribution event for a deal, created by a
// partner and reviewed by an admin. For PARTIAL requests the commission
// fields carry flat amounts; for FINAL requests they carry percentages of
// the realized profit.
type DistributionRequest struct {
	ID                     string           `json:"id"`
	DealID                 string           `json:"dealId"`
	RequestedBy            string           `json:"requestedBy"`
	DistributionType       DistributionType `json:"distributionType"`
	TotalAmount            decimal.Decimal  `json:"totalAmount"`
	EstimatedGainPercent   decimal.Decimal  `json:"estimatedGainPercent"`
	SahemInvestPercent     decimal.Decimal  `json:"sahemInvestPercent"`
	ReservedGainPercent    decimal.Decimal  `json:"reservedGainPercent"`
	SahemInvestAmount      decimal.Decimal  `json:"sahemInvestAmount"`
	ReservedAmount         decimal.Decimal  `json:"reservedAmount"`
	EstimatedProfit        decimal.Decimal  `json:"estimatedProfit"`
	EstimatedReturnCapital decimal.Decimal  `json:"estimatedReturnCapital"`
	IsLoss                 bool             `json:"isLoss"`
	Status                 RequestStatus    `json:"status"`
	Description            string           `json:"description,omitempty"`
	CreatedAt              time.Time        `json:"createdAt,omitempty"`
	ApprovedAt             *time.Time       `json:"approvedAt,omitempty"`
}

// LedgerRow is a profit distribution joined with investor identity, as
// read for historical aggregation and review screens.
type LedgerRow struct {
	ProfitDistribution
	InvestorName  string `json:"investorName"`
	InvestorEmail string `json:"investorEmail"`
}

// ProfitDistribution is a historical ledger row: one per investor per
// completed distribution event. Amount is the total paid out; for PARTIAL
// rows CapitalAmount is always zero.
type ProfitDistribution struct {
	ID                    string           `json:"id"`
	DistributionRequestID string           `json:"distributionRequestId"`
	InvestmentID          string           `json:"investmentId"`
	InvestorID            string           `json:"investorId"`
	DealID                string           `json:"dealId"`
	Amount                decimal.Decimal  `json:"amount"`
	CapitalAmount         decimal.Decimal  `json:"capitalAmount"`
	ProfitAmount          decimal.Decimal  `json:"profitAmount"`
	ProfitPeriod          DistributionType `json:"profitPeriod"`
	Status                string           `json:"status"`
	DistributionDate      time.Time        `json:"distributionDate"`
	CreatedAt             time.Time        `json:"createdAt,omitempty"`
}
