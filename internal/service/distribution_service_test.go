package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/saheminvest/saheminvest-backend/internal/apperrors"
	"github.com/saheminvest/saheminvest-backend/internal/model"
	"github.com/saheminvest/saheminvest-backend/internal/repository"
	"github.com/saheminvest/saheminvest-backend/internal/service"
	"github.com/saheminvest/saheminvest-backend/internal/testutil"
)

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()

	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("Invalid decimal %q: %v", s, err)
	}
	return d
}

func assertDecimal(t *testing.T, got decimal.Decimal, want string, field string) {
	t.Helper()

	if !got.Equal(dec(t, want)) {
		t.Errorf("%s = %s, want %s", field, got.String(), want)
	}
}

//nolint:gocyclo // Comprehensive integration test with multiple subtests
func TestDistributionService_Approve(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestDistributionService(t, db)
	walletRepo := repository.NewWalletRepository(db)

	partner := testutil.NewUser().WithRole(model.RolePartner).Build(t, db)
	investorA := testutil.NewUser().WithName("Investor A").Build(t, db)
	investorB := testutil.NewUser().WithName("Investor B").Build(t, db)

	deal := testutil.NewDeal(partner.ID).WithFunding("100000").Build(t, db)
	testutil.CreateInvestment(t, db, deal.ID, investorA.ID, "60000")
	testutil.CreateInvestment(t, db, deal.ID, investorB.ID, "40000")

	requestID := testutil.NewDistributionRequest(deal.ID, partner.ID).
		WithAmounts("120000", "20000", "100000").
		WithPercents("15", "10").
		Build(t, db)

	result, err := svc.Approve(context.Background(), requestID, nil)
	if err != nil {
		t.Fatalf("Approve() returned unexpected error: %v", err)
	}

	t.Run("request moves to approved with settled amounts", func(t *testing.T) {
		if result.Request.Status != model.RequestStatusApproved {
			t.Errorf("Status = %s, want APPROVED", result.Request.Status)
		}
		if result.Request.ApprovedAt == nil {
			t.Error("Expected ApprovedAt to be set")
		}
		assertDecimal(t, result.Request.SahemInvestAmount, "3000", "SahemInvestAmount")
		assertDecimal(t, result.Request.ReservedAmount, "2000", "ReservedAmount")
	})

	t.Run("breakdown deducts commissions from profit only", func(t *testing.T) {
		assertDecimal(t, result.Breakdown.SahemAmount, "3000", "SahemAmount")
		assertDecimal(t, result.Breakdown.ReserveAmount, "2000", "ReserveAmount")
		assertDecimal(t, result.Breakdown.InvestorsProfit, "15000", "InvestorsProfit")
		assertDecimal(t, result.Breakdown.InvestorsCapital, "100000", "InvestorsCapital")
	})

	t.Run("allocations split pools by investment ratio", func(t *testing.T) {
		if len(result.Allocations) != 2 {
			t.Fatalf("Expected 2 allocations, got %d", len(result.Allocations))
		}

		byInvestor := make(map[string]int)
		for i, alloc := range result.Allocations {
			byInvestor[alloc.InvestorID] = i
		}

		a := result.Allocations[byInvestor[investorA.ID]]
		assertDecimal(t, a.FinalProfit, "9000", "investor A FinalProfit")
		assertDecimal(t, a.FinalCapital, "60000", "investor A FinalCapital")

		b := result.Allocations[byInvestor[investorB.ID]]
		assertDecimal(t, b.FinalProfit, "6000", "investor B FinalProfit")
		assertDecimal(t, b.FinalCapital, "40000", "investor B FinalCapital")
	})

	t.Run("wallets receive capital and profit credits", func(t *testing.T) {
		walletA, err := walletRepo.GetByInvestor(investorA.ID)
		if err != nil {
			t.Fatalf("GetByInvestor() returned unexpected error: %v", err)
		}
		assertDecimal(t, walletA.Balance, "69000", "wallet A balance")

		transactions, err := walletRepo.ListTransactions(walletA.ID)
		if err != nil {
			t.Fatalf("ListTransactions() returned unexpected error: %v", err)
		}
		if len(transactions) != 2 {
			t.Fatalf("Expected 2 wallet transactions, got %d", len(transactions))
		}

		walletB, err := walletRepo.GetByInvestor(investorB.ID)
		if err != nil {
			t.Fatalf("GetByInvestor() returned unexpected error: %v", err)
		}
		assertDecimal(t, walletB.Balance, "46000", "wallet B balance")
	})

	t.Run("ledger rows are recorded as completed", func(t *testing.T) {
		var count int
		err := db.QueryRow(`SELECT COUNT(*) FROM profit_distribution WHERE distribution_request_id = ?`, requestID).Scan(&count)
		if err != nil {
			t.Fatalf("Failed to count ledger rows: %v", err)
		}
		if count != 2 {
			t.Errorf("Expected 2 ledger rows, got %d", count)
		}
	})

	t.Run("final distribution completes the deal", func(t *testing.T) {
		dealRepo := repository.NewDealRepository(db)
		updated, err := dealRepo.GetByID(deal.ID)
		if err != nil {
			t.Fatalf("GetByID() returned unexpected error: %v", err)
		}
		if updated.Status != model.DealStatusCompleted {
			t.Errorf("Deal status = %s, want COMPLETED", updated.Status)
		}
	})

	t.Run("second approval is refused", func(t *testing.T) {
		_, err := svc.Approve(context.Background(), requestID, nil)
		if !errors.Is(err, apperrors.ErrDistributionInProgress) {
			t.Errorf("Expected ErrDistributionInProgress, got %v", err)
		}
	})
}

func TestDistributionService_Approve_PartialDistribution(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestDistributionService(t, db)
	walletRepo := repository.NewWalletRepository(db)

	partner := testutil.NewUser().WithRole(model.RolePartner).Build(t, db)
	investorA := testutil.NewUser().Build(t, db)
	investorB := testutil.NewUser().Build(t, db)

	deal := testutil.NewDeal(partner.ID).Build(t, db)
	testutil.CreateInvestment(t, db, deal.ID, investorA.ID, "60000")
	testutil.CreateInvestment(t, db, deal.ID, investorB.ID, "40000")

	requestID := testutil.NewDistributionRequest(deal.ID, partner.ID).
		Partial("10000", "500", "500").
		Build(t, db)

	result, err := svc.Approve(context.Background(), requestID, nil)
	if err != nil {
		t.Fatalf("Approve() returned unexpected error: %v", err)
	}

	assertDecimal(t, result.Breakdown.InvestorsProfit, "9000", "InvestorsProfit")
	assertDecimal(t, result.Breakdown.InvestorsCapital, "0", "InvestorsCapital")

	walletA, err := walletRepo.GetByInvestor(investorA.ID)
	if err != nil {
		t.Fatalf("GetByInvestor() returned unexpected error: %v", err)
	}
	assertDecimal(t, walletA.Balance, "5400", "wallet A balance")

	// Partial payouts are profit only, so a single PROFIT entry per wallet.
	transactions, err := walletRepo.ListTransactions(walletA.ID)
	if err != nil {
		t.Fatalf("ListTransactions() returned unexpected error: %v", err)
	}
	if len(transactions) != 1 {
		t.Fatalf("Expected 1 wallet transaction, got %d", len(transactions))
	}
	if transactions[0].Type != model.WalletTxProfit {
		t.Errorf("Transaction type = %s, want PROFIT", transactions[0].Type)
	}

	// Deal stays open after a partial distribution.
	dealRepo := repository.NewDealRepository(db)
	updated, err := dealRepo.GetByID(deal.ID)
	if err != nil {
		t.Fatalf("GetByID() returned unexpected error: %v", err)
	}
	if updated.Status == model.DealStatusCompleted {
		t.Error("Partial distribution must not complete the deal")
	}
}

func TestDistributionService_Approve_LossDistribution(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestDistributionService(t, db)
	walletRepo := repository.NewWalletRepository(db)

	partner := testutil.NewUser().WithRole(model.RolePartner).Build(t, db)
	investor := testutil.NewUser().Build(t, db)

	deal := testutil.NewDeal(partner.ID).Build(t, db)
	testutil.CreateInvestment(t, db, deal.ID, investor.ID, "100000")

	// Deal returned only 80000 of the 100000 invested.
	requestID := testutil.NewDistributionRequest(deal.ID, partner.ID).
		WithAmounts("80000", "0", "80000").
		WithPercents("15", "10").
		AsLoss().
		Build(t, db)

	result, err := svc.Approve(context.Background(), requestID, nil)
	if err != nil {
		t.Fatalf("Approve() returned unexpected error: %v", err)
	}

	// No commissions are taken on a loss; everything goes back as capital.
	assertDecimal(t, result.Breakdown.SahemAmount, "0", "SahemAmount")
	assertDecimal(t, result.Breakdown.ReserveAmount, "0", "ReserveAmount")
	assertDecimal(t, result.Breakdown.InvestorsProfit, "0", "InvestorsProfit")
	assertDecimal(t, result.Breakdown.InvestorsCapital, "80000", "InvestorsCapital")

	wallet, err := walletRepo.GetByInvestor(investor.ID)
	if err != nil {
		t.Fatalf("GetByInvestor() returned unexpected error: %v", err)
	}
	assertDecimal(t, wallet.Balance, "80000", "wallet balance")

	transactions, err := walletRepo.ListTransactions(wallet.ID)
	if err != nil {
		t.Fatalf("ListTransactions() returned unexpected error: %v", err)
	}
	if len(transactions) != 1 {
		t.Fatalf("Expected 1 wallet transaction, got %d", len(transactions))
	}
	if transactions[0].Type != model.WalletTxCapitalReturn {
		t.Errorf("Transaction type = %s, want CAPITAL_RETURN", transactions[0].Type)
	}
}

func TestDistributionService_Approve_CustomAmountMismatch(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestDistributionService(t, db)

	partner := testutil.NewUser().WithRole(model.RolePartner).Build(t, db)
	investor := testutil.NewUser().Build(t, db)

	deal := testutil.NewDeal(partner.ID).Build(t, db)
	testutil.CreateInvestment(t, db, deal.ID, investor.ID, "100000")

	requestID := testutil.NewDistributionRequest(deal.ID, partner.ID).
		WithAmounts("120000", "20000", "100000").
		WithPercents("15", "10").
		Build(t, db)

	profit := dec(t, "10000") // pool is 15000, off by far more than tolerance
	capital := dec(t, "100000")
	overrides := &service.ApproveOverrides{
		CustomAmounts: []service.CustomInvestorAmount{
			{InvestorID: investor.ID, FinalProfit: profit, FinalCapital: capital},
		},
	}

	_, err := svc.Approve(context.Background(), requestID, overrides)
	if !errors.Is(err, apperrors.ErrAmountMismatch) {
		t.Fatalf("Expected ErrAmountMismatch, got %v", err)
	}

	// The request must still be approvable after the failed attempt.
	req, err := svc.GetRequest(requestID)
	if err != nil {
		t.Fatalf("GetRequest() returned unexpected error: %v", err)
	}
	if req.Status != model.RequestStatusPending {
		t.Errorf("Status = %s, want PENDING after failed approval", req.Status)
	}

	// No ledger rows may survive the rollback.
	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM profit_distribution`).Scan(&count); err != nil {
		t.Fatalf("Failed to count ledger rows: %v", err)
	}
	if count != 0 {
		t.Errorf("Expected 0 ledger rows after rollback, got %d", count)
	}
}

func TestDistributionService_FetchHistoricalPartials(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestDistributionService(t, db)

	partner := testutil.NewUser().WithRole(model.RolePartner).Build(t, db)
	investorA := testutil.NewUser().Build(t, db)
	investorB := testutil.NewUser().Build(t, db)

	deal := testutil.NewDeal(partner.ID).Build(t, db)
	invA := testutil.CreateInvestment(t, db, deal.ID, investorA.ID, "60000")
	invB := testutil.CreateInvestment(t, db, deal.ID, investorB.ID, "40000")

	first := testutil.NewDistributionRequest(deal.ID, partner.ID).
		Partial("10000", "500", "500").
		WithStatus(model.RequestStatusApproved).
		Build(t, db)
	second := testutil.NewDistributionRequest(deal.ID, partner.ID).
		Partial("5000", "0", "0").
		WithStatus(model.RequestStatusApproved).
		Build(t, db)

	jan := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	apr := time.Date(2025, 4, 15, 0, 0, 0, 0, time.UTC)
	testutil.CreateLedgerRow(t, db, first, invA.ID, investorA.ID, deal.ID, "5400", "0", model.DistributionPartial, jan)
	testutil.CreateLedgerRow(t, db, first, invB.ID, investorB.ID, deal.ID, "3600", "0", model.DistributionPartial, jan)
	testutil.CreateLedgerRow(t, db, second, invA.ID, investorA.ID, deal.ID, "3000", "0", model.DistributionPartial, apr)
	testutil.CreateLedgerRow(t, db, second, invB.ID, investorB.ID, deal.ID, "2000", "0", model.DistributionPartial, apr)

	history, err := svc.FetchHistoricalPartials(deal.ID)
	if err != nil {
		t.Fatalf("FetchHistoricalPartials() returned unexpected error: %v", err)
	}

	assertDecimal(t, history.Summary.TotalPartialProfit, "14000", "TotalPartialProfit")
	if history.Summary.DistributionCount != 2 {
		t.Errorf("DistributionCount = %d, want 2", history.Summary.DistributionCount)
	}
	if len(history.Summary.DistributionDates) != 2 {
		t.Errorf("Expected 2 distinct distribution dates, got %d", len(history.Summary.DistributionDates))
	}

	totals := history.Totals()
	assertDecimal(t, totals[investorA.ID].TotalProfit, "8400", "investor A historical profit")
	assertDecimal(t, totals[investorB.ID].TotalProfit, "5600", "investor B historical profit")
}

func TestDistributionService_Preview(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestDistributionService(t, db)

	partner := testutil.NewUser().WithRole(model.RolePartner).Build(t, db)
	investor := testutil.NewUser().Build(t, db)

	deal := testutil.NewDeal(partner.ID).Build(t, db)
	testutil.CreateInvestment(t, db, deal.ID, investor.ID, "100000")

	requestID := testutil.NewDistributionRequest(deal.ID, partner.ID).
		WithAmounts("120000", "20000", "100000").
		WithPercents("15", "10").
		Build(t, db)

	preview, err := svc.PreviewRequest(requestID)
	if err != nil {
		t.Fatalf("PreviewRequest() returned unexpected error: %v", err)
	}

	assertDecimal(t, preview.Breakdown.InvestorsProfit, "15000", "InvestorsProfit")
	if len(preview.Allocations) != 1 {
		t.Fatalf("Expected 1 allocation, got %d", len(preview.Allocations))
	}
	if !preview.Validation.Valid {
		t.Errorf("Expected computed allocations to validate, got errors: %v", preview.Validation.Errors)
	}
	if !preview.Analysis.IsProfitable {
		t.Error("Expected analysis to report a profitable outcome")
	}

	// Preview must not touch stored state.
	req, err := svc.GetRequest(requestID)
	if err != nil {
		t.Fatalf("GetRequest() returned unexpected error: %v", err)
	}
	if req.Status != model.RequestStatusPending {
		t.Errorf("Status = %s, want PENDING after preview", req.Status)
	}
}

func TestDistributionService_Reject(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestDistributionService(t, db)

	partner := testutil.NewUser().WithRole(model.RolePartner).Build(t, db)
	deal := testutil.NewDeal(partner.ID).Build(t, db)

	t.Run("rejects a pending request", func(t *testing.T) {
		requestID := testutil.NewDistributionRequest(deal.ID, partner.ID).Build(t, db)

		if err := svc.Reject(requestID); err != nil {
			t.Fatalf("Reject() returned unexpected error: %v", err)
		}

		req, err := svc.GetRequest(requestID)
		if err != nil {
			t.Fatalf("GetRequest() returned unexpected error: %v", err)
		}
		if req.Status != model.RequestStatusRejected {
			t.Errorf("Status = %s, want REJECTED", req.Status)
		}
	})

	t.Run("refuses to reject a non-pending request", func(t *testing.T) {
		requestID := testutil.NewDistributionRequest(deal.ID, partner.ID).
			WithStatus(model.RequestStatusApproved).
			Build(t, db)

		if err := svc.Reject(requestID); !errors.Is(err, apperrors.ErrInvalidRequestStatus) {
			t.Errorf("Expected ErrInvalidRequestStatus, got %v", err)
		}
	})

	t.Run("reports missing requests", func(t *testing.T) {
		err := svc.Reject(testutil.MakeID())
		if !errors.Is(err, apperrors.ErrDistributionRequestNotFound) {
			t.Errorf("Expected ErrDistributionRequestNotFound, got %v", err)
		}
	})
}

func TestDistributionService_CreateRequest(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestDistributionService(t, db)

	partner := testutil.NewUser().WithRole(model.RolePartner).Build(t, db)
	deal := testutil.NewDeal(partner.ID).Build(t, db)

	created, err := svc.CreateRequest(&model.DistributionRequest{
		DealID:                 deal.ID,
		RequestedBy:            partner.ID,
		DistributionType:       model.DistributionFinal,
		TotalAmount:            dec(t, "120000"),
		SahemInvestPercent:     dec(t, "15"),
		ReservedGainPercent:    dec(t, "10"),
		EstimatedProfit:        dec(t, "20000"),
		EstimatedReturnCapital: dec(t, "100000"),
	})
	if err != nil {
		t.Fatalf("CreateRequest() returned unexpected error: %v", err)
	}

	if created.Status != model.RequestStatusPending {
		t.Errorf("Status = %s, want PENDING", created.Status)
	}
	if created.ID == "" {
		t.Error("Expected a generated request ID")
	}

	t.Run("rejects unknown deals", func(t *testing.T) {
		_, err := svc.CreateRequest(&model.DistributionRequest{
			DealID:           testutil.MakeID(),
			RequestedBy:      partner.ID,
			DistributionType: model.DistributionFinal,
			TotalAmount:      dec(t, "1000"),
		})
		if !errors.Is(err, apperrors.ErrDealNotFound) {
			t.Errorf("Expected ErrDealNotFound, got %v", err)
		}
	})
}
