package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// WalletTransactionType classifies wallet ledger entries. Amounts are
// signed: credits positive, debits negative.
type WalletTransactionType string

const (
	WalletTxDeposit       WalletTransactionType = "DEPOSIT"
	WalletTxWithdrawal    WalletTransactionType = "WITHDRAWAL"
	WalletTxInvestment    WalletTransactionType = "INVESTMENT"
	WalletTxCapitalReturn WalletTransactionType = "CAPITAL_RETURN"
	WalletTxProfit        WalletTransactionType = "PROFIT"
)

// Wallet holds an investor's cash balance on the platform. Balance is a
// materialization of the wallet_transaction log and is reconciled against
// it by a scheduled job.
type Wallet struct {
	ID         string          `json:"id"`
	InvestorID string          `json:"investorId"`
	Balance    decimal.Decimal `json:"balance"`
	UpdatedAt  time.Time       `json:"updatedAt,omitempty"`
}

// WalletTransaction is one entry in a wallet's ledger.
type WalletTransaction struct {
	ID          string                `json:"id"`
	WalletID    string                `json:"walletId"`
	Type        WalletTransactionType `json:"type"`
	Amount      decimal.Decimal       `json:"amount"`
	ReferenceID string                `json:"referenceId,omitempty"`
	Description string                `json:"description,omitempty"`
	CreatedAt   time.Time             `json:"createdAt,omitempty"`
}

// PayoutAccount stores where an investor wants withdrawals sent. The IBAN
// is encrypted at rest and only ever returned masked.
type PayoutAccount struct {
	ID         string    `json:"id"`
	InvestorID string    `json:"investorId"`
	BankName   string    `json:"bankName"`
	IBAN       string    `json:"iban"` // plaintext in memory only, never persisted as-is
	UpdatedAt  time.Time `json:"updatedAt,omitempty"`
}
