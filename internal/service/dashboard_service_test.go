package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/saheminvest/saheminvest-backend/internal/model"
	"github.com/saheminvest/saheminvest-backend/internal/testutil"
)

func TestDashboardService_GetPlatformStats(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestDashboardService(t, db)

	partner := testutil.NewUser().WithRole(model.RolePartner).Build(t, db)
	investor := testutil.NewUser().Build(t, db)

	testutil.NewDeal(partner.ID).WithFunding("40000").WithStatus(model.DealStatusActive).Build(t, db)
	testutil.NewDeal(partner.ID).WithFunding("60000").WithStatus(model.DealStatusActive).Build(t, db)
	completed := testutil.NewDeal(partner.ID).WithFunding("100000").WithStatus(model.DealStatusCompleted).Build(t, db)

	inv := testutil.CreateInvestment(t, db, completed.ID, investor.ID, "100000")
	requestID := testutil.NewDistributionRequest(completed.ID, partner.ID).
		WithStatus(model.RequestStatusApproved).
		Build(t, db)
	testutil.CreateLedgerRow(t, db, requestID, inv.ID, investor.ID, completed.ID,
		"15000", "100000", model.DistributionFinal, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))

	wallet := testutil.CreateWallet(t, db, investor.ID, "115000")
	testutil.CreateWalletTransaction(t, db, wallet.ID, model.WalletTxProfit, "15000")
	testutil.CreateWalletTransaction(t, db, wallet.ID, model.WalletTxCapitalReturn, "100000")

	stats, err := svc.GetPlatformStats(context.Background())
	if err != nil {
		t.Fatalf("GetPlatformStats() returned unexpected error: %v", err)
	}

	if stats.ActiveDeals != 2 {
		t.Errorf("ActiveDeals = %d, want 2", stats.ActiveDeals)
	}
	if stats.CompletedDeals != 1 {
		t.Errorf("CompletedDeals = %d, want 1", stats.CompletedDeals)
	}
	assertDecimal(t, stats.TotalFunding, "200000", "TotalFunding")
	assertDecimal(t, stats.TotalDistributedProfit, "15000", "TotalDistributedProfit")
	assertDecimal(t, stats.TotalReturnedCapital, "100000", "TotalReturnedCapital")
	assertDecimal(t, stats.WalletLiabilities, "115000", "WalletLiabilities")
}
