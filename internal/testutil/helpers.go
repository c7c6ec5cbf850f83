package testutil

import (
	"database/sql"
	"testing"

	"github.com/google/uuid"

	"github.com/saheminvest/saheminvest-backend/internal/repository"
	"github.com/saheminvest/saheminvest-backend/internal/secrets"
	"github.com/saheminvest/saheminvest-backend/internal/service"
)

// MakeID generates a random UUID string for test entities.
func MakeID() string {
	return uuid.New().String()
}

// NewTestDistributionService wires a DistributionService against the test
// database.
func NewTestDistributionService(t *testing.T, db *sql.DB) *service.DistributionService {
	t.Helper()

	return service.NewDistributionService(
		db,
		repository.NewDistributionRepository(db),
		repository.NewDealRepository(db),
		repository.NewWalletRepository(db),
	)
}

// NewTestDealService wires a DealService against the test database.
func NewTestDealService(t *testing.T, db *sql.DB) *service.DealService {
	t.Helper()

	return service.NewDealService(repository.NewDealRepository(db))
}

// NewTestWalletService wires a WalletService against the test database
// with the given vault. Pass an unconfigured vault for tests that do not
// touch payout accounts.
func NewTestWalletService(t *testing.T, db *sql.DB, vault *secrets.Vault) *service.WalletService {
	t.Helper()

	if vault == nil {
		var err error
		vault, err = secrets.NewVault("")
		if err != nil {
			t.Fatalf("Failed to create vault: %v", err)
		}
	}

	return service.NewWalletService(
		repository.NewWalletRepository(db),
		repository.NewPayoutRepository(db),
		repository.NewUserRepository(db),
		vault,
	)
}

// NewTestDashboardService wires a DashboardService against the test
// database.
func NewTestDashboardService(t *testing.T, db *sql.DB) *service.DashboardService {
	t.Helper()

	return service.NewDashboardService(repository.NewDashboardRepository(db))
}
