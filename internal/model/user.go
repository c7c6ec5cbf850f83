package model

import "time"

// Role identifies what a user can do on the platform.
type Role string

const (
	RoleAdmin            Role = "ADMIN"
	RolePartner          Role = "PARTNER"
	RoleInvestor         Role = "INVESTOR"
	RoleFinancialOfficer Role = "FINANCIAL_OFFICER"
	RolePortfolioAdvisor Role = "PORTFOLIO_ADVISOR"
)

// User represents a platform account. Authentication and sessions are
// handled by an external identity provider; only identity and role are
// stored here.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}
