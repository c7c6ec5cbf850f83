package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/saheminvest/saheminvest-backend/internal/model"
)

// DashboardRepository runs the aggregate queries behind the platform
// statistics endpoint. Each query takes a context so the caller can run
// them concurrently and cancel the rest when one fails.
type DashboardRepository struct {
	db *sql.DB
}

func NewDashboardRepository(db *sql.DB) *DashboardRepository {
	return &DashboardRepository{db: db}
}

// CountDealsByStatus counts deals in the given status.
func (r *DashboardRepository) CountDealsByStatus(ctx context.Context, status model.DealStatus) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM deal WHERE status = ?`, string(status)).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count deals: %w", err)
	}
	return count, nil
}

// TotalFunding sums current funding across all deals.
func (r *DashboardRepository) TotalFunding(ctx context.Context) (decimal.Decimal, error) {
	return r.sumColumn(ctx, `SELECT current_funding FROM deal`)
}

// TotalDistributed sums the profit and capital paid out through the
// distribution ledger.
func (r *DashboardRepository) TotalDistributed(ctx context.Context) (profit, capital decimal.Decimal, err error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT profit_amount, capital_amount FROM profit_distribution WHERE status = 'COMPLETED'`)
	if err != nil {
		return decimal.Decimal{}, decimal.Decimal{}, fmt.Errorf("failed to query profit_distribution table: %w", err)
	}
	defer rows.Close()

	profit, capital = decimal.Zero, decimal.Zero
	for rows.Next() {
		var profitStr, capitalStr string
		if err := rows.Scan(&profitStr, &capitalStr); err != nil {
			return decimal.Decimal{}, decimal.Decimal{}, fmt.Errorf("failed to scan profit_distribution amounts: %w", err)
		}

		p, err := ParseDecimal(profitStr)
		if err != nil {
			return decimal.Decimal{}, decimal.Decimal{}, err
		}
		c, err := ParseDecimal(capitalStr)
		if err != nil {
			return decimal.Decimal{}, decimal.Decimal{}, err
		}
		profit = profit.Add(p)
		capital = capital.Add(c)
	}
	if err = rows.Err(); err != nil {
		return decimal.Decimal{}, decimal.Decimal{}, fmt.Errorf("error iterating profit_distribution table: %w", err)
	}

	return profit, capital, nil
}

// WalletLiabilities sums all wallet balances (what the platform owes
// investors).
func (r *DashboardRepository) WalletLiabilities(ctx context.Context) (decimal.Decimal, error) {
	return r.sumColumn(ctx, `SELECT balance FROM wallet`)
}

func (r *DashboardRepository) sumColumn(ctx context.Context, query string) (decimal.Decimal, error) {
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("failed to run aggregate query: %w", err)
	}
	defer rows.Close()

	total := decimal.Zero
	for rows.Next() {
		var valueStr string
		if err := rows.Scan(&valueStr); err != nil {
			return decimal.Decimal{}, fmt.Errorf("failed to scan aggregate value: %w", err)
		}
		value, err := ParseDecimal(valueStr)
		if err != nil {
			return decimal.Decimal{}, err
		}
		total = total.Add(value)
	}
	if err = rows.Err(); err != nil {
		return decimal.Decimal{}, fmt.Errorf("error iterating aggregate query: %w", err)
	}

	return total, nil
}
