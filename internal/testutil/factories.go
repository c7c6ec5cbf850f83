package testutil

import (
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/saheminvest/saheminvest-backend/internal/model"
)

// UserBuilder provides a fluent interface for creating test users.
//
// Example usage:
//
//	investor := testutil.NewUser().WithRole(model.RoleInvestor).Build(t, db)
type UserBuilder struct {
	ID    string
	Name  string
	Email string
	Role  model.Role
}

// NewUser creates a UserBuilder with sensible defaults.
func NewUser() *UserBuilder {
	id := MakeID()
	return &UserBuilder{
		ID:    id,
		Name:  "Test Investor",
		Email: fmt.Sprintf("investor-%s@example.com", id[:8]),
		Role:  model.RoleInvestor,
	}
}

// WithID sets a custom ID.
func (b *UserBuilder) WithID(id string) *UserBuilder {
	b.ID = id
	return b
}

// WithName sets a custom name.
func (b *UserBuilder) WithName(name string) *UserBuilder {
	b.Name = name
	return b
}

// WithEmail sets a custom email.
func (b *UserBuilder) WithEmail(email string) *UserBuilder {
	b.Email = email
	return b
}

// WithRole sets a custom role.
func (b *UserBuilder) WithRole(role model.Role) *UserBuilder {
	b.Role = role
	return b
}

// Build creates the user in the database and returns it.
func (b *UserBuilder) Build(t *testing.T, db *sql.DB) model.User {
	t.Helper()

	_, err := db.Exec(`INSERT INTO user (id, name, email, role) VALUES (?, ?, ?, ?)`,
		b.ID, b.Name, b.Email, string(b.Role))
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	return model.User{ID: b.ID, Name: b.Name, Email: b.Email, Role: b.Role}
}

// DealBuilder provides a fluent interface for creating test deals.
type DealBuilder struct {
	ID             string
	Title          string
	PartnerID      string
	FundingGoal    string
	CurrentFunding string
	Status         model.DealStatus
}

// NewDeal creates a DealBuilder with sensible defaults. A partner ID must
// be supplied because of the foreign key.
func NewDeal(partnerID string) *DealBuilder {
	return &DealBuilder{
		ID:             MakeID(),
		Title:          "Test Deal",
		PartnerID:      partnerID,
		FundingGoal:    "100000",
		CurrentFunding: "0",
		Status:         model.DealStatusFunded,
	}
}

// WithID sets a custom ID.
func (b *DealBuilder) WithID(id string) *DealBuilder {
	b.ID = id
	return b
}

// WithTitle sets a custom title.
func (b *DealBuilder) WithTitle(title string) *DealBuilder {
	b.Title = title
	return b
}

// WithFunding sets the current funding amount.
func (b *DealBuilder) WithFunding(amount string) *DealBuilder {
	b.CurrentFunding = amount
	return b
}

// WithStatus sets a custom status.
func (b *DealBuilder) WithStatus(status model.DealStatus) *DealBuilder {
	b.Status = status
	return b
}

// Build creates the deal in the database and returns it.
func (b *DealBuilder) Build(t *testing.T, db *sql.DB) model.Deal {
	t.Helper()

	_, err := db.Exec(
		`INSERT INTO deal (id, title, partner_id, funding_goal, current_funding, status) VALUES (?, ?, ?, ?, ?, ?)`,
		b.ID, b.Title, b.PartnerID, b.FundingGoal, b.CurrentFunding, string(b.Status))
	if err != nil {
		t.Fatalf("Failed to create test deal: %v", err)
	}

	return model.Deal{
		ID:             b.ID,
		Title:          b.Title,
		PartnerID:      b.PartnerID,
		FundingGoal:    mustDecimal(t, b.FundingGoal),
		CurrentFunding: mustDecimal(t, b.CurrentFunding),
		Status:         b.Status,
	}
}

// CreateInvestment inserts an investment row and returns it.
//
// Example usage:
//
//	inv := testutil.CreateInvestment(t, db, deal.ID, investor.ID, "5000")
func CreateInvestment(t *testing.T, db *sql.DB, dealID, investorID, amount string) model.Investment {
	t.Helper()

	id := MakeID()
	_, err := db.Exec(`INSERT INTO investment (id, deal_id, investor_id, amount) VALUES (?, ?, ?, ?)`,
		id, dealID, investorID, amount)
	if err != nil {
		t.Fatalf("Failed to create test investment: %v", err)
	}

	return model.Investment{
		ID:         id,
		DealID:     dealID,
		InvestorID: investorID,
		Amount:     mustDecimal(t, amount),
	}
}

// DistributionRequestBuilder provides a fluent interface for creating test
// distribution requests.
type DistributionRequestBuilder struct {
	ID                     string
	DealID                 string
	RequestedBy            string
	DistributionType       model.DistributionType
	TotalAmount            string
	SahemInvestPercent     string
	ReservedGainPercent    string
	SahemInvestAmount      string
	ReservedAmount         string
	EstimatedProfit        string
	EstimatedReturnCapital string
	IsLoss                 bool
	Status                 model.RequestStatus
}

// NewDistributionRequest creates a builder with sensible defaults: a
// PENDING final distribution with a 20000 profit on 100000 capital.
func NewDistributionRequest(dealID, requestedBy string) *DistributionRequestBuilder {
	return &DistributionRequestBuilder{
		ID:                     MakeID(),
		DealID:                 dealID,
		RequestedBy:            requestedBy,
		DistributionType:       model.DistributionFinal,
		TotalAmount:            "120000",
		SahemInvestPercent:     "15",
		ReservedGainPercent:    "10",
		SahemInvestAmount:      "0",
		ReservedAmount:         "0",
		EstimatedProfit:        "20000",
		EstimatedReturnCapital: "100000",
		Status:                 model.RequestStatusPending,
	}
}

// Partial reconfigures the builder as a PARTIAL distribution with flat
// commission amounts.
func (b *DistributionRequestBuilder) Partial(totalAmount, sahemAmount, reserveAmount string) *DistributionRequestBuilder {
	b.DistributionType = model.DistributionPartial
	b.TotalAmount = totalAmount
	b.SahemInvestAmount = sahemAmount
	b.ReservedAmount = reserveAmount
	b.SahemInvestPercent = "0"
	b.ReservedGainPercent = "0"
	b.EstimatedProfit = "0"
	b.EstimatedReturnCapital = "0"
	return b
}

// WithAmounts sets the final distribution's profit and capital.
func (b *DistributionRequestBuilder) WithAmounts(total, profit, capital string) *DistributionRequestBuilder {
	b.TotalAmount = total
	b.EstimatedProfit = profit
	b.EstimatedReturnCapital = capital
	return b
}

// WithPercents sets the commission percentages.
func (b *DistributionRequestBuilder) WithPercents(sahem, reserve string) *DistributionRequestBuilder {
	b.SahemInvestPercent = sahem
	b.ReservedGainPercent = reserve
	return b
}

// AsLoss marks the request as a loss scenario.
func (b *DistributionRequestBuilder) AsLoss() *DistributionRequestBuilder {
	b.IsLoss = true
	return b
}

// WithStatus sets a custom status.
func (b *DistributionRequestBuilder) WithStatus(status model.RequestStatus) *DistributionRequestBuilder {
	b.Status = status
	return b
}

// Build creates the distribution request in the database and returns its ID.
func (b *DistributionRequestBuilder) Build(t *testing.T, db *sql.DB) string {
	t.Helper()

	query := `
		INSERT INTO distribution_request (
			id, deal_id, requested_by, distribution_type, total_amount,
			sahem_invest_percent, reserved_gain_percent, sahem_invest_amount,
			reserved_amount, estimated_profit, estimated_return_capital, is_loss, status
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query,
		b.ID, b.DealID, b.RequestedBy, string(b.DistributionType), b.TotalAmount,
		b.SahemInvestPercent, b.ReservedGainPercent, b.SahemInvestAmount,
		b.ReservedAmount, b.EstimatedProfit, b.EstimatedReturnCapital, b.IsLoss, string(b.Status))
	if err != nil {
		t.Fatalf("Failed to create test distribution request: %v", err)
	}

	return b.ID
}

// CreateLedgerRow inserts a completed profit distribution row, as left
// behind by an approved request.
func CreateLedgerRow(t *testing.T, db *sql.DB, requestID, investmentID, investorID, dealID string,
	profit, capital string, period model.DistributionType, date time.Time) string {
	t.Helper()

	id := MakeID()
	total := mustDecimal(t, profit).Add(mustDecimal(t, capital))

	query := `
		INSERT INTO profit_distribution (
			id, distribution_request_id, investment_id, investor_id, deal_id,
			amount, capital_amount, profit_amount, profit_period, status, distribution_date
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, 'COMPLETED', ?)
	`

	_, err := db.Exec(query, id, requestID, investmentID, investorID, dealID,
		total.String(), capital, profit, string(period), date.Format("2006-01-02"))
	if err != nil {
		t.Fatalf("Failed to create test ledger row: %v", err)
	}

	return id
}

// CreateWallet inserts a wallet with the given balance and returns it.
func CreateWallet(t *testing.T, db *sql.DB, investorID, balance string) model.Wallet {
	t.Helper()

	id := MakeID()
	_, err := db.Exec(`INSERT INTO wallet (id, investor_id, balance) VALUES (?, ?, ?)`, id, investorID, balance)
	if err != nil {
		t.Fatalf("Failed to create test wallet: %v", err)
	}

	return model.Wallet{ID: id, InvestorID: investorID, Balance: mustDecimal(t, balance)}
}

// CreateWalletTransaction inserts a wallet ledger entry and returns its ID.
func CreateWalletTransaction(t *testing.T, db *sql.DB, walletID string, txType model.WalletTransactionType, amount string) string {
	t.Helper()

	id := MakeID()
	_, err := db.Exec(`INSERT INTO wallet_transaction (id, wallet_id, type, amount) VALUES (?, ?, ?, ?)`,
		id, walletID, string(txType), amount)
	if err != nil {
		t.Fatalf("Failed to create test wallet transaction: %v", err)
	}

	return id
}

func mustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()

	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("Invalid decimal %q: %v", s, err)
	}
	return d
}
