package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/saheminvest/saheminvest-backend/internal/apperrors"
	"github.com/saheminvest/saheminvest-backend/internal/model"
)

type DistributionRepository struct {
	db *sql.DB
}

func NewDistributionRepository(db *sql.DB) *DistributionRepository {
	return &DistributionRepository{db: db}
}

const requestColumns = `
	id, deal_id, requested_by, distribution_type, total_amount,
	estimated_gain_percent, sahem_invest_percent, reserved_gain_percent,
	sahem_invest_amount, reserved_amount, estimated_profit,
	estimated_return_capital, is_loss, status, COALESCE(description, ''),
	created_at, approved_at
`

// CreateRequest inserts a new distribution request in PENDING status.
func (r *DistributionRepository) CreateRequest(req *model.DistributionRequest) error {
	query := `
		INSERT INTO distribution_request (
			id, deal_id, requested_by, distribution_type, total_amount,
			estimated_gain_percent, sahem_invest_percent, reserved_gain_percent,
			sahem_invest_amount, reserved_amount, estimated_profit,
			estimated_return_capital, is_loss, status, description
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.Exec(query,
		req.ID, req.DealID, req.RequestedBy, string(req.DistributionType),
		req.TotalAmount.String(), req.EstimatedGainPercent.String(),
		req.SahemInvestPercent.String(), req.ReservedGainPercent.String(),
		req.SahemInvestAmount.String(), req.ReservedAmount.String(),
		req.EstimatedProfit.String(), req.EstimatedReturnCapital.String(),
		req.IsLoss, string(req.Status), req.Description,
	)
	if err != nil {
		return fmt.Errorf("failed to insert distribution request: %w", err)
	}

	return nil
}

// GetRequestByID retrieves a single distribution request.
func (r *DistributionRepository) GetRequestByID(id string) (*model.DistributionRequest, error) {
	rows, err := r.db.Query(`SELECT `+requestColumns+` FROM distribution_request WHERE id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query distribution_request table: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return nil, fmt.Errorf("failed to query distribution_request table: %w", err)
		}
		return nil, apperrors.ErrDistributionRequestNotFound
	}

	return scanRequest(rows)
}

// GetRequestsByDeal retrieves all distribution requests for a deal, oldest first.
func (r *DistributionRepository) GetRequestsByDeal(dealID string) ([]model.DistributionRequest, error) {
	rows, err := r.db.Query(
		`SELECT `+requestColumns+` FROM distribution_request WHERE deal_id = ? ORDER BY created_at ASC`,
		dealID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query distribution_request table: %w", err)
	}
	defer rows.Close()

	requests := make([]model.DistributionRequest, 0)
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, *req)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating distribution_request table: %w", err)
	}

	return requests, nil
}

// GetCompletedPartials retrieves all completed PARTIAL ledger rows for a
// deal joined with investor identity, for historical aggregation.
func (r *DistributionRepository) GetCompletedPartials(dealID string) ([]model.LedgerRow, error) {
	query := `
		SELECT pd.id, pd.distribution_request_id, pd.investment_id, pd.investor_id,
		       pd.deal_id, pd.amount, pd.capital_amount, pd.profit_amount,
		       pd.profit_period, pd.status, pd.distribution_date, u.name, u.email
		FROM profit_distribution pd
		JOIN user u ON u.id = pd.investor_id
		WHERE pd.deal_id = ? AND pd.profit_period = ? AND pd.status = 'COMPLETED'
		ORDER BY pd.distribution_date ASC, pd.created_at ASC
	`

	rows, err := r.db.Query(query, dealID, string(model.DistributionPartial))
	if err != nil {
		return nil, fmt.Errorf("failed to query profit_distribution table: %w", err)
	}
	defer rows.Close()

	ledger := make([]model.LedgerRow, 0)
	for rows.Next() {
		var row model.LedgerRow
		var amountStr, capitalStr, profitStr, periodStr, dateStr string

		err := rows.Scan(
			&row.ID, &row.DistributionRequestID, &row.InvestmentID, &row.InvestorID,
			&row.DealID, &amountStr, &capitalStr, &profitStr,
			&periodStr, &row.Status, &dateStr, &row.InvestorName, &row.InvestorEmail,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan profit_distribution table results: %w", err)
		}

		row.ProfitPeriod = model.DistributionType(periodStr)

		if row.Amount, err = ParseDecimal(amountStr); err != nil {
			return nil, err
		}
		if row.CapitalAmount, err = ParseDecimal(capitalStr); err != nil {
			return nil, err
		}
		if row.ProfitAmount, err = ParseDecimal(profitStr); err != nil {
			return nil, err
		}
		if row.DistributionDate, err = ParseTime(dateStr); err != nil {
			return nil, err
		}

		ledger = append(ledger, row)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating profit_distribution table: %w", err)
	}

	return ledger, nil
}

// MarkProcessing moves a PENDING request into PROCESSING, refusing when the
// request is not pending or when any other request for the same deal is
// already being processed. The compare-and-swap runs in the caller's
// transaction, so two concurrent approvals can never both succeed.
func (r *DistributionRepository) MarkProcessing(q DBTX, requestID, dealID string) error {
	query := `
		UPDATE distribution_request
		SET status = 'PROCESSING'
		WHERE id = ? AND status = 'PENDING'
		AND NOT EXISTS (
			SELECT 1 FROM distribution_request
			WHERE deal_id = ? AND status = 'PROCESSING'
		)
	`

	result, err := q.Exec(query, requestID, dealID)
	if err != nil {
		return fmt.Errorf("failed to mark distribution request processing: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrDistributionInProgress
	}

	return nil
}

// FinalizeRequest moves a PROCESSING request into APPROVED and stamps the
// approval time, along with the amounts the admin settled on.
func (r *DistributionRepository) FinalizeRequest(q DBTX, requestID string, sahemAmount, reserveAmount decimal.Decimal, approvedAt time.Time) error {
	query := `
		UPDATE distribution_request
		SET status = 'APPROVED', sahem_invest_amount = ?, reserved_amount = ?, approved_at = ?
		WHERE id = ? AND status = 'PROCESSING'
	`

	result, err := q.Exec(query, sahemAmount.String(), reserveAmount.String(), approvedAt.Format(time.RFC3339), requestID)
	if err != nil {
		return fmt.Errorf("failed to finalize distribution request: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrInvalidRequestStatus
	}

	return nil
}

// RejectRequest moves a PENDING request into REJECTED.
func (r *DistributionRepository) RejectRequest(requestID string) error {
	result, err := r.db.Exec(
		`UPDATE distribution_request SET status = 'REJECTED' WHERE id = ? AND status = 'PENDING'`,
		requestID,
	)
	if err != nil {
		return fmt.Errorf("failed to reject distribution request: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrInvalidRequestStatus
	}

	return nil
}

// InsertLedgerRow writes one profit distribution ledger row inside the
// caller's transaction.
func (r *DistributionRepository) InsertLedgerRow(q DBTX, row *model.ProfitDistribution) error {
	query := `
		INSERT INTO profit_distribution (
			id, distribution_request_id, investment_id, investor_id, deal_id,
			amount, capital_amount, profit_amount, profit_period, status, distribution_date
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := q.Exec(query,
		row.ID, row.DistributionRequestID, row.InvestmentID, row.InvestorID, row.DealID,
		row.Amount.String(), row.CapitalAmount.String(), row.ProfitAmount.String(),
		string(row.ProfitPeriod), row.Status, row.DistributionDate.Format("2006-01-02"),
	)
	if err != nil {
		return fmt.Errorf("failed to insert profit distribution row: %w", err)
	}

	return nil
}

type requestScanner interface {
	Scan(dest ...any) error
}

//nolint:gocyclo // Straight-line scan of a wide row
func scanRequest(rows requestScanner) (*model.DistributionRequest, error) {
	var req model.DistributionRequest
	var distributionType, status, createdAtStr string
	var approvedAtStr sql.NullString
	var totalAmount, gainPct, sahemPct, reservePct, sahemAmt, reserveAmt, profit, capital string

	err := rows.Scan(
		&req.ID, &req.DealID, &req.RequestedBy, &distributionType, &totalAmount,
		&gainPct, &sahemPct, &reservePct, &sahemAmt, &reserveAmt,
		&profit, &capital, &req.IsLoss, &status, &req.Description,
		&createdAtStr, &approvedAtStr,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan distribution_request table results: %w", err)
	}

	req.DistributionType = model.DistributionType(distributionType)
	req.Status = model.RequestStatus(status)

	fields := []struct {
		dst *decimal.Decimal
		src string
	}{
		{&req.TotalAmount, totalAmount},
		{&req.EstimatedGainPercent, gainPct},
		{&req.SahemInvestPercent, sahemPct},
		{&req.ReservedGainPercent, reservePct},
		{&req.SahemInvestAmount, sahemAmt},
		{&req.ReservedAmount, reserveAmt},
		{&req.EstimatedProfit, profit},
		{&req.EstimatedReturnCapital, capital},
	}
	for _, f := range fields {
		if *f.dst, err = ParseDecimal(f.src); err != nil {
			return nil, err
		}
	}

	if req.CreatedAt, err = ParseTime(createdAtStr); err != nil {
		return nil, err
	}
	if approvedAtStr.Valid {
		approvedAt, err := ParseTime(approvedAtStr.String)
		if err != nil {
			return nil, err
		}
		req.ApprovedAt = &approvedAt
	}

	return &req, nil
}
