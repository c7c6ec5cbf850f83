package service_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/fernet/fernet-go"

	"github.com/saheminvest/saheminvest-backend/internal/apperrors"
	"github.com/saheminvest/saheminvest-backend/internal/model"
	"github.com/saheminvest/saheminvest-backend/internal/secrets"
	"github.com/saheminvest/saheminvest-backend/internal/testutil"
)

func testVault(t *testing.T) *secrets.Vault {
	t.Helper()

	var key fernet.Key
	if err := key.Generate(); err != nil {
		t.Fatalf("Failed to generate fernet key: %v", err)
	}

	vault, err := secrets.NewVault(key.Encode())
	if err != nil {
		t.Fatalf("Failed to create vault: %v", err)
	}
	return vault
}

func TestWalletService_GetStatement(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestWalletService(t, db, nil)

	investor := testutil.NewUser().Build(t, db)
	wallet := testutil.CreateWallet(t, db, investor.ID, "1500")
	testutil.CreateWalletTransaction(t, db, wallet.ID, model.WalletTxProfit, "1000")
	testutil.CreateWalletTransaction(t, db, wallet.ID, model.WalletTxCapitalReturn, "500")

	statement, err := svc.GetStatement(investor.ID)
	if err != nil {
		t.Fatalf("GetStatement() returned unexpected error: %v", err)
	}

	assertDecimal(t, statement.Wallet.Balance, "1500", "Balance")
	if len(statement.Transactions) != 2 {
		t.Errorf("Expected 2 transactions, got %d", len(statement.Transactions))
	}

	t.Run("reports missing wallets", func(t *testing.T) {
		if _, err := svc.GetStatement(testutil.MakeID()); !errors.Is(err, apperrors.ErrWalletNotFound) {
			t.Errorf("Expected ErrWalletNotFound, got %v", err)
		}
	})
}

func TestWalletService_Reconcile(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestWalletService(t, db, nil)

	t.Run("corrects drifted balance", func(t *testing.T) {
		investor := testutil.NewUser().Build(t, db)
		wallet := testutil.CreateWallet(t, db, investor.ID, "9999")
		testutil.CreateWalletTransaction(t, db, wallet.ID, model.WalletTxDeposit, "1000")
		testutil.CreateWalletTransaction(t, db, wallet.ID, model.WalletTxWithdrawal, "-250")

		result, err := svc.Reconcile(investor.ID)
		if err != nil {
			t.Fatalf("Reconcile() returned unexpected error: %v", err)
		}

		if !result.Corrected {
			t.Error("Expected drifted wallet to be corrected")
		}
		assertDecimal(t, result.Wallet.Balance, "750", "Balance")
	})

	t.Run("leaves consistent balance untouched", func(t *testing.T) {
		investor := testutil.NewUser().Build(t, db)
		wallet := testutil.CreateWallet(t, db, investor.ID, "300")
		testutil.CreateWalletTransaction(t, db, wallet.ID, model.WalletTxDeposit, "300")

		result, err := svc.Reconcile(investor.ID)
		if err != nil {
			t.Fatalf("Reconcile() returned unexpected error: %v", err)
		}

		if result.Corrected {
			t.Error("Expected consistent wallet to be left alone")
		}
	})
}

func TestWalletService_ReconcileAll(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestWalletService(t, db, nil)

	drifted := testutil.NewUser().Build(t, db)
	driftedWallet := testutil.CreateWallet(t, db, drifted.ID, "0")
	testutil.CreateWalletTransaction(t, db, driftedWallet.ID, model.WalletTxDeposit, "100")

	consistent := testutil.NewUser().Build(t, db)
	consistentWallet := testutil.CreateWallet(t, db, consistent.ID, "50")
	testutil.CreateWalletTransaction(t, db, consistentWallet.ID, model.WalletTxDeposit, "50")

	corrected, err := svc.ReconcileAll()
	if err != nil {
		t.Fatalf("ReconcileAll() returned unexpected error: %v", err)
	}
	if corrected != 1 {
		t.Errorf("Expected 1 corrected wallet, got %d", corrected)
	}
}

func TestWalletService_PayoutAccount(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestWalletService(t, db, testVault(t))

	investor := testutil.NewUser().Build(t, db)
	iban := "LB62099912340123412341234123"

	saved, err := svc.SavePayoutAccount(investor.ID, "Test Bank", iban)
	if err != nil {
		t.Fatalf("SavePayoutAccount() returned unexpected error: %v", err)
	}

	if !strings.HasSuffix(saved.IBAN, "4123") || strings.Contains(saved.IBAN, "LB62") {
		t.Errorf("Expected masked IBAN ending in 4123, got %q", saved.IBAN)
	}
	if saved.BankName != "Test Bank" {
		t.Errorf("BankName = %q, want Test Bank", saved.BankName)
	}

	t.Run("stored ciphertext is not plaintext", func(t *testing.T) {
		var stored string
		err := db.QueryRow(`SELECT iban_encrypted FROM payout_account WHERE investor_id = ?`, investor.ID).Scan(&stored)
		if err != nil {
			t.Fatalf("Failed to read stored payout account: %v", err)
		}
		if strings.Contains(stored, iban) {
			t.Error("IBAN must not be stored in plaintext")
		}
	})

	t.Run("replaces an existing account", func(t *testing.T) {
		updated, err := svc.SavePayoutAccount(investor.ID, "Other Bank", "LB62099912340123412349999999")
		if err != nil {
			t.Fatalf("SavePayoutAccount() returned unexpected error: %v", err)
		}
		if !strings.HasSuffix(updated.IBAN, "9999") {
			t.Errorf("Expected masked IBAN ending in 9999, got %q", updated.IBAN)
		}
	})

	t.Run("reports missing accounts", func(t *testing.T) {
		other := testutil.NewUser().Build(t, db)
		if _, err := svc.GetPayoutAccount(other.ID); !errors.Is(err, apperrors.ErrPayoutAccountNotFound) {
			t.Errorf("Expected ErrPayoutAccountNotFound, got %v", err)
		}
	})

	t.Run("refuses when vault is unconfigured", func(t *testing.T) {
		unconfigured := testutil.NewTestWalletService(t, db, nil)
		if _, err := unconfigured.SavePayoutAccount(investor.ID, "Bank", iban); !errors.Is(err, secrets.ErrNoKey) {
			t.Errorf("Expected ErrNoKey, got %v", err)
		}
	})
}
