package testutil

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite" // Test Package
)

// SetupTestDB creates an in-memory SQLite database for testing.
// The database is automatically cleaned up when the test completes.
//
// Example usage:
//
//	func TestSomething(t *testing.T) {
//	    db := testutil.SetupTestDB(t)
//	    // db is ready to use with schema created
//	}
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	// In-memory database (destroyed when connection closes)
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	if err := db.Ping(); err != nil {
		t.Fatalf("Failed to ping test database: %v", err)
	}

	// Configure SQLite for testing
	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA timezone = 'UTC'",
		"PRAGMA journal_mode = MEMORY", // Faster for tests
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			t.Fatalf("Failed to set pragma: %v", err)
		}
	}

	if err := createTestSchema(db); err != nil {
		t.Fatalf("Failed to create test schema: %v", err)
	}

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// createTestSchema creates all database tables for testing.
// Schema is synchronized with the production migrations.
//
//nolint:funlen // Database schema DDL
func createTestSchema(db *sql.DB) error {
	schema := `
		-- User table
		CREATE TABLE user (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			name VARCHAR(100) NOT NULL,
			email VARCHAR(255) NOT NULL UNIQUE,
			role VARCHAR(20) NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		-- Deal table
		CREATE TABLE deal (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			title VARCHAR(255) NOT NULL,
			partner_id VARCHAR(36) NOT NULL,
			funding_goal TEXT NOT NULL,
			current_funding TEXT NOT NULL DEFAULT '0',
			status VARCHAR(10) NOT NULL DEFAULT 'ACTIVE',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY(partner_id) REFERENCES user(id)
		);

		-- Investment table
		CREATE TABLE investment (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			deal_id VARCHAR(36) NOT NULL,
			investor_id VARCHAR(36) NOT NULL,
			amount TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY(deal_id) REFERENCES deal(id) ON DELETE CASCADE,
			FOREIGN KEY(investor_id) REFERENCES user(id)
		);

		-- Distribution request table
		CREATE TABLE distribution_request (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			deal_id VARCHAR(36) NOT NULL,
			requested_by VARCHAR(36) NOT NULL,
			distribution_type VARCHAR(7) NOT NULL,
			total_amount TEXT NOT NULL,
			estimated_gain_percent TEXT NOT NULL DEFAULT '0',
			sahem_invest_percent TEXT NOT NULL DEFAULT '0',
			reserved_gain_percent TEXT NOT NULL DEFAULT '0',
			sahem_invest_amount TEXT NOT NULL DEFAULT '0',
			reserved_amount TEXT NOT NULL DEFAULT '0',
			estimated_profit TEXT NOT NULL DEFAULT '0',
			estimated_return_capital TEXT NOT NULL DEFAULT '0',
			is_loss BOOLEAN NOT NULL DEFAULT FALSE,
			status VARCHAR(10) NOT NULL DEFAULT 'PENDING',
			description TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			approved_at DATETIME,
			FOREIGN KEY(deal_id) REFERENCES deal(id) ON DELETE CASCADE,
			FOREIGN KEY(requested_by) REFERENCES user(id)
		);

		-- Profit distribution ledger
		CREATE TABLE profit_distribution (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			distribution_request_id VARCHAR(36) NOT NULL,
			investment_id VARCHAR(36) NOT NULL,
			investor_id VARCHAR(36) NOT NULL,
			deal_id VARCHAR(36) NOT NULL,
			amount TEXT NOT NULL,
			capital_amount TEXT NOT NULL DEFAULT '0',
			profit_amount TEXT NOT NULL DEFAULT '0',
			profit_period VARCHAR(7) NOT NULL,
			status VARCHAR(10) NOT NULL DEFAULT 'COMPLETED',
			distribution_date DATE NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY(distribution_request_id) REFERENCES distribution_request(id),
			FOREIGN KEY(investment_id) REFERENCES investment(id),
			FOREIGN KEY(investor_id) REFERENCES user(id),
			FOREIGN KEY(deal_id) REFERENCES deal(id) ON DELETE CASCADE
		);

		-- Wallet tables
		CREATE TABLE wallet (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			investor_id VARCHAR(36) NOT NULL UNIQUE,
			balance TEXT NOT NULL DEFAULT '0',
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY(investor_id) REFERENCES user(id)
		);

		CREATE TABLE wallet_transaction (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			wallet_id VARCHAR(36) NOT NULL,
			type VARCHAR(15) NOT NULL,
			amount TEXT NOT NULL,
			reference_id VARCHAR(36),
			description TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY(wallet_id) REFERENCES wallet(id) ON DELETE CASCADE
		);

		-- Payout account table
		CREATE TABLE payout_account (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			investor_id VARCHAR(36) NOT NULL UNIQUE,
			bank_name VARCHAR(100) NOT NULL,
			iban_encrypted TEXT NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY(investor_id) REFERENCES user(id)
		);
	`

	_, err := db.Exec(schema)
	return err
}
