package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/saheminvest/saheminvest-backend/internal/apperrors"
	"github.com/saheminvest/saheminvest-backend/internal/model"
)

type WalletRepository struct {
	db *sql.DB
}

func NewWalletRepository(db *sql.DB) *WalletRepository {
	return &WalletRepository{db: db}
}

// GetByInvestor retrieves an investor's wallet.
func (r *WalletRepository) GetByInvestor(investorID string) (*model.Wallet, error) {
	return r.getByInvestor(r.db, investorID)
}

func (r *WalletRepository) getByInvestor(q DBTX, investorID string) (*model.Wallet, error) {
	query := `
		SELECT id, investor_id, balance, updated_at
		FROM wallet
		WHERE investor_id = ?
	`

	rows, err := q.Query(query, investorID)
	if err != nil {
		return nil, fmt.Errorf("failed to query wallet table: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return nil, fmt.Errorf("failed to query wallet table: %w", err)
		}
		return nil, apperrors.ErrWalletNotFound
	}

	var w model.Wallet
	var balanceStr, updatedAtStr string
	if err := rows.Scan(&w.ID, &w.InvestorID, &balanceStr, &updatedAtStr); err != nil {
		return nil, fmt.Errorf("failed to scan wallet table results: %w", err)
	}

	if w.Balance, err = ParseDecimal(balanceStr); err != nil {
		return nil, err
	}
	if w.UpdatedAt, err = ParseTime(updatedAtStr); err != nil {
		return nil, err
	}

	return &w, nil
}

// GetOrCreate retrieves an investor's wallet, creating an empty one inside
// the caller's transaction when none exists yet.
func (r *WalletRepository) GetOrCreate(q DBTX, investorID string) (*model.Wallet, error) {
	wallet, err := r.getByInvestor(q, investorID)
	if err == nil {
		return wallet, nil
	}
	if err != apperrors.ErrWalletNotFound {
		return nil, err
	}

	wallet = &model.Wallet{
		ID:         uuid.New().String(),
		InvestorID: investorID,
		Balance:    decimal.Zero,
	}

	_, err = q.Exec(`INSERT INTO wallet (id, investor_id, balance) VALUES (?, ?, '0')`, wallet.ID, investorID)
	if err != nil {
		return nil, fmt.Errorf("failed to create wallet: %w", err)
	}

	return wallet, nil
}

// Credit increases a wallet's balance and records the ledger entry, both
// inside the caller's transaction.
func (r *WalletRepository) Credit(q DBTX, walletID string, tx *model.WalletTransaction) error {
	query := `
		INSERT INTO wallet_transaction (id, wallet_id, type, amount, reference_id, description)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := q.Exec(query, tx.ID, walletID, string(tx.Type), tx.Amount.String(), tx.ReferenceID, tx.Description)
	if err != nil {
		return fmt.Errorf("failed to insert wallet transaction: %w", err)
	}

	// Balances are text decimals, so the addition happens in Go rather
	// than in SQL.
	wallet, err := r.getWalletByID(q, walletID)
	if err != nil {
		return err
	}

	newBalance := wallet.Balance.Add(tx.Amount)
	_, err = q.Exec(`UPDATE wallet SET balance = ?, updated_at = ? WHERE id = ?`,
		newBalance.String(), time.Now().UTC().Format(time.RFC3339), walletID)
	if err != nil {
		return fmt.Errorf("failed to update wallet balance: %w", err)
	}

	return nil
}

// GetByID retrieves a wallet by its ID.
func (r *WalletRepository) GetByID(walletID string) (*model.Wallet, error) {
	return r.getWalletByID(r.db, walletID)
}

func (r *WalletRepository) getWalletByID(q DBTX, walletID string) (*model.Wallet, error) {
	rows, err := q.Query(`SELECT id, investor_id, balance, updated_at FROM wallet WHERE id = ?`, walletID)
	if err != nil {
		return nil, fmt.Errorf("failed to query wallet table: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return nil, fmt.Errorf("failed to query wallet table: %w", err)
		}
		return nil, apperrors.ErrWalletNotFound
	}

	var w model.Wallet
	var balanceStr, updatedAtStr string
	if err := rows.Scan(&w.ID, &w.InvestorID, &balanceStr, &updatedAtStr); err != nil {
		return nil, fmt.Errorf("failed to scan wallet table results: %w", err)
	}

	if w.Balance, err = ParseDecimal(balanceStr); err != nil {
		return nil, err
	}
	if w.UpdatedAt, err = ParseTime(updatedAtStr); err != nil {
		return nil, err
	}

	return &w, nil
}

// ListTransactions retrieves a wallet's ledger, newest first.
func (r *WalletRepository) ListTransactions(walletID string) ([]model.WalletTransaction, error) {
	query := `
		SELECT id, wallet_id, type, amount, COALESCE(reference_id, ''), COALESCE(description, ''), created_at
		FROM wallet_transaction
		WHERE wallet_id = ?
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(query, walletID)
	if err != nil {
		return nil, fmt.Errorf("failed to query wallet_transaction table: %w", err)
	}
	defer rows.Close()

	transactions := make([]model.WalletTransaction, 0)
	for rows.Next() {
		var tx model.WalletTransaction
		var typeStr, amountStr, createdAtStr string

		err := rows.Scan(&tx.ID, &tx.WalletID, &typeStr, &amountStr, &tx.ReferenceID, &tx.Description, &createdAtStr)
		if err != nil {
			return nil, fmt.Errorf("failed to scan wallet_transaction table results: %w", err)
		}

		tx.Type = model.WalletTransactionType(typeStr)
		if tx.Amount, err = ParseDecimal(amountStr); err != nil {
			return nil, err
		}
		if tx.CreatedAt, err = ParseTime(createdAtStr); err != nil {
			return nil, err
		}

		transactions = append(transactions, tx)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating wallet_transaction table: %w", err)
	}

	return transactions, nil
}

// SumTransactions computes a wallet's balance from its full ledger.
func (r *WalletRepository) SumTransactions(walletID string) (decimal.Decimal, error) {
	rows, err := r.db.Query(`SELECT amount FROM wallet_transaction WHERE wallet_id = ?`, walletID)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("failed to query wallet_transaction table: %w", err)
	}
	defer rows.Close()

	total := decimal.Zero
	for rows.Next() {
		var amountStr string
		if err := rows.Scan(&amountStr); err != nil {
			return decimal.Decimal{}, fmt.Errorf("failed to scan wallet_transaction amount: %w", err)
		}
		amount, err := ParseDecimal(amountStr)
		if err != nil {
			return decimal.Decimal{}, err
		}
		total = total.Add(amount)
	}
	if err = rows.Err(); err != nil {
		return decimal.Decimal{}, fmt.Errorf("error iterating wallet_transaction table: %w", err)
	}

	return total, nil
}

// SetBalance overwrites a wallet's materialized balance.
func (r *WalletRepository) SetBalance(walletID string, balance decimal.Decimal) error {
	result, err := r.db.Exec(`UPDATE wallet SET balance = ?, updated_at = ? WHERE id = ?`,
		balance.String(), time.Now().UTC().Format(time.RFC3339), walletID)
	if err != nil {
		return fmt.Errorf("failed to set wallet balance: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrWalletNotFound
	}

	return nil
}

// ListWalletIDs retrieves every wallet ID, for reconciliation sweeps.
func (r *WalletRepository) ListWalletIDs() ([]string, error) {
	rows, err := r.db.Query(`SELECT id FROM wallet ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query wallet table: %w", err)
	}
	defer rows.Close()

	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan wallet id: %w", err)
		}
		ids = append(ids, id)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating wallet table: %w", err)
	}

	return ids, nil
}
