package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/saheminvest/saheminvest-backend/internal/apperrors"
)

// EncryptedPayoutAccount is the persisted shape of a payout account; the
// IBAN stays ciphertext at this layer.
type EncryptedPayoutAccount struct {
	ID            string
	InvestorID    string
	BankName      string
	IBANEncrypted string
	UpdatedAt     time.Time
}

type PayoutRepository struct {
	db *sql.DB
}

func NewPayoutRepository(db *sql.DB) *PayoutRepository {
	return &PayoutRepository{db: db}
}

// GetByInvestor retrieves an investor's encrypted payout account.
func (r *PayoutRepository) GetByInvestor(investorID string) (*EncryptedPayoutAccount, error) {
	query := `
		SELECT id, investor_id, bank_name, iban_encrypted, updated_at
		FROM payout_account
		WHERE investor_id = ?
	`

	rows, err := r.db.Query(query, investorID)
	if err != nil {
		return nil, fmt.Errorf("failed to query payout_account table: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return nil, fmt.Errorf("failed to query payout_account table: %w", err)
		}
		return nil, apperrors.ErrPayoutAccountNotFound
	}

	var acct EncryptedPayoutAccount
	var updatedAtStr string
	if err := rows.Scan(&acct.ID, &acct.InvestorID, &acct.BankName, &acct.IBANEncrypted, &updatedAtStr); err != nil {
		return nil, fmt.Errorf("failed to scan payout_account table results: %w", err)
	}

	if acct.UpdatedAt, err = ParseTime(updatedAtStr); err != nil {
		return nil, err
	}

	return &acct, nil
}

// Upsert creates or replaces an investor's payout account.
func (r *PayoutRepository) Upsert(acct *EncryptedPayoutAccount) error {
	query := `
		INSERT INTO payout_account (id, investor_id, bank_name, iban_encrypted, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(investor_id) DO UPDATE SET
			bank_name = excluded.bank_name,
			iban_encrypted = excluded.iban_encrypted,
			updated_at = excluded.updated_at
	`

	_, err := r.db.Exec(query, acct.ID, acct.InvestorID, acct.BankName, acct.IBANEncrypted,
		time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to upsert payout account: %w", err)
	}

	return nil
}
