package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/saheminvest/saheminvest-backend/internal/apperrors"
	"github.com/saheminvest/saheminvest-backend/internal/model"
)

type DealRepository struct {
	db *sql.DB
}

func NewDealRepository(db *sql.DB) *DealRepository {
	return &DealRepository{db: db}
}

// GetAll retrieves all deals, newest first.
func (r *DealRepository) GetAll() ([]model.Deal, error) {
	query := `
		SELECT id, title, partner_id, funding_goal, current_funding, status, created_at
		FROM deal
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query deal table: %w", err)
	}
	defer rows.Close()

	deals := make([]model.Deal, 0)
	for rows.Next() {
		deal, err := scanDeal(rows)
		if err != nil {
			return nil, err
		}
		deals = append(deals, *deal)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating deal table: %w", err)
	}

	return deals, nil
}

// GetByID retrieves a single deal.
func (r *DealRepository) GetByID(id string) (*model.Deal, error) {
	query := `
		SELECT id, title, partner_id, funding_goal, current_funding, status, created_at
		FROM deal
		WHERE id = ?
	`

	rows, err := r.db.Query(query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query deal table: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return nil, fmt.Errorf("failed to query deal table: %w", err)
		}
		return nil, apperrors.ErrDealNotFound
	}

	return scanDeal(rows)
}

// GetInvestments retrieves all investment rows for a deal joined with
// investor identity, largest first.
func (r *DealRepository) GetInvestments(dealID string) ([]model.DealInvestment, error) {
	query := `
		SELECT i.id, i.deal_id, i.investor_id, u.name, u.email, i.amount
		FROM investment i
		JOIN user u ON u.id = i.investor_id
		WHERE i.deal_id = ?
		ORDER BY CAST(i.amount AS REAL) DESC, i.created_at ASC
	`

	rows, err := r.db.Query(query, dealID)
	if err != nil {
		return nil, fmt.Errorf("failed to query investment table: %w", err)
	}
	defer rows.Close()

	investments := make([]model.DealInvestment, 0)
	for rows.Next() {
		var inv model.DealInvestment
		var amountStr string

		err := rows.Scan(&inv.ID, &inv.DealID, &inv.InvestorID, &inv.InvestorName, &inv.InvestorEmail, &amountStr)
		if err != nil {
			return nil, fmt.Errorf("failed to scan investment table results: %w", err)
		}

		inv.Amount, err = ParseDecimal(amountStr)
		if err != nil {
			return nil, err
		}

		investments = append(investments, inv)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating investment table: %w", err)
	}

	return investments, nil
}

// UpdateStatus sets a deal's status. It accepts a DBTX so approval can run
// it inside the same transaction as the ledger writes.
func (r *DealRepository) UpdateStatus(q DBTX, dealID string, status model.DealStatus) error {
	result, err := q.Exec(`UPDATE deal SET status = ? WHERE id = ?`, string(status), dealID)
	if err != nil {
		return fmt.Errorf("failed to update deal status: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrDealNotFound
	}

	return nil
}

type dealScanner interface {
	Scan(dest ...any) error
}

func scanDeal(rows dealScanner) (*model.Deal, error) {
	var deal model.Deal
	var fundingGoalStr, currentFundingStr, createdAtStr string
	var status string

	err := rows.Scan(&deal.ID, &deal.Title, &deal.PartnerID, &fundingGoalStr, &currentFundingStr, &status, &createdAtStr)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.ErrDealNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan deal table results: %w", err)
	}

	deal.Status = model.DealStatus(status)

	deal.FundingGoal, err = ParseDecimal(fundingGoalStr)
	if err != nil {
		return nil, err
	}
	deal.CurrentFunding, err = ParseDecimal(currentFundingStr)
	if err != nil {
		return nil, err
	}
	deal.CreatedAt, err = ParseTime(createdAtStr)
	if err != nil {
		return nil, err
	}

	return &deal, nil
}
