package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// DealStatus represents the lifecycle state of a deal.
type DealStatus string

const (
	DealStatusActive    DealStatus = "ACTIVE"
	DealStatusFunded    DealStatus = "FUNDED"
	DealStatusCompleted DealStatus = "COMPLETED"
	DealStatusCancelled DealStatus = "CANCELLED"
)

// Deal represents an investment project raising capital from investors.
type Deal struct {
	ID             string          `json:"id"`
	Title          string          `json:"title"`
	PartnerID      string          `json:"partnerId"`
	FundingGoal    decimal.Decimal `json:"fundingGoal"`
	CurrentFunding decimal.Decimal `json:"currentFunding"`
	Status         DealStatus      `json:"status"`
	CreatedAt      time.Time       `json:"createdAt,omitempty"`
}

// Investment represents capital contributed by one investor to one deal.
// An investor may hold multiple investment rows in the same deal.
type Investment struct {
	ID         string          `json:"id"`
	DealID     string          `json:"dealId"`
	InvestorID string          `json:"investorId"`
	Amount     decimal.Decimal `json:"amount"`
	CreatedAt  time.Time       `json:"createdAt,omitempty"`
}

// DealInvestment is an investment enriched with investor identity for
// distribution review and API responses.
type DealInvestment struct {
	ID            string          `json:"id"`
	DealID        string          `json:"dealId"`
	InvestorID    string          `json:"investorId"`
	InvestorName  string          `json:"investorName"`
	InvestorEmail string          `json:"investorEmail"`
	Amount        decimal.Decimal `json:"amount"`
}
