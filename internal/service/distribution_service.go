package service

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/saheminvest/saheminvest-backend/internal/apperrors"
	"github.com/saheminvest/saheminvest-backend/internal/distribution"
	"github.com/saheminvest/saheminvest-backend/internal/model"
	"github.com/saheminvest/saheminvest-backend/internal/repository"
)

// DistributionService orchestrates the distribution engine: it reads
// investments and historical payouts, runs the pure calculators, and on
// approval persists the resulting ledger rows and wallet credits in one
// transaction.
type DistributionService struct {
	db               *sql.DB
	distributionRepo *repository.DistributionRepository
	dealRepo         *repository.DealRepository
	walletRepo       *repository.WalletRepository
}

// NewDistributionService creates a new DistributionService with the
// provided repository dependencies.
func NewDistributionService(
	db *sql.DB,
	distributionRepo *repository.DistributionRepository,
	dealRepo *repository.DealRepository,
	walletRepo *repository.WalletRepository,
) *DistributionService {
	return &DistributionService{
		db:               db,
		distributionRepo: distributionRepo,
		dealRepo:         dealRepo,
		walletRepo:       walletRepo,
	}
}

// Preview is the full review payload for a distribution request: what the
// admin screen renders and edits against.
type Preview struct {
	Request     *model.DistributionRequest    `json:"request"`
	Deal        *model.Deal                   `json:"deal"`
	History     distribution.PartialHistory   `json:"history"`
	Breakdown   distribution.Breakdown        `json:"breakdown"`
	Allocations []distribution.Allocation     `json:"allocations"`
	Analysis    distribution.Analysis         `json:"analysis"`
	Validation  distribution.ValidationResult `json:"validation"`
}

// CustomInvestorAmount is an admin override of one investor's computed
// payout.
type CustomInvestorAmount struct {
	InvestorID   string          `json:"investorId"`
	FinalProfit  decimal.Decimal `json:"finalProfit"`
	FinalCapital decimal.Decimal `json:"finalCapital"`
}

// ApproveOverrides carries the admin's edits at approval time. Nil fields
// fall back to the stored request values.
type ApproveOverrides struct {
	SahemPercent   *decimal.Decimal       `json:"sahemPercent,omitempty"`
	ReservePercent *decimal.Decimal       `json:"reservePercent,omitempty"`
	SahemAmount    *decimal.Decimal       `json:"sahemAmount,omitempty"`
	ReserveAmount  *decimal.Decimal       `json:"reserveAmount,omitempty"`
	IsLoss         *bool                  `json:"isLoss,omitempty"`
	CustomAmounts  []CustomInvestorAmount `json:"customAmounts,omitempty"`
}

// ApprovalResult reports what an approval actually paid out.
type ApprovalResult struct {
	Request     *model.DistributionRequest `json:"request"`
	Breakdown   distribution.Breakdown     `json:"breakdown"`
	Allocations []distribution.Allocation  `json:"allocations"`
}

// GetRequest retrieves a distribution request by ID.
func (s *DistributionService) GetRequest(id string) (*model.DistributionRequest, error) {
	return s.distributionRepo.GetRequestByID(id)
}

// GetRequestsByDeal retrieves all distribution requests for a deal.
func (s *DistributionService) GetRequestsByDeal(dealID string) ([]model.DistributionRequest, error) {
	return s.distributionRepo.GetRequestsByDeal(dealID)
}

// CreateRequest records a new PENDING distribution request for a deal.
func (s *DistributionService) CreateRequest(req *model.DistributionRequest) (*model.DistributionRequest, error) {
	if _, err := s.dealRepo.GetByID(req.DealID); err != nil {
		return nil, err
	}

	req.ID = uuid.New().String()
	req.Status = model.RequestStatusPending

	if err := s.distributionRepo.CreateRequest(req); err != nil {
		return nil, err
	}

	return s.distributionRepo.GetRequestByID(req.ID)
}

// FetchHistoricalPartials rolls up all completed partial payouts for a
// deal.
func (s *DistributionService) FetchHistoricalPartials(dealID string) (distribution.PartialHistory, error) {
	if _, err := s.dealRepo.GetByID(dealID); err != nil {
		return distribution.PartialHistory{}, err
	}

	rows, err := s.distributionRepo.GetCompletedPartials(dealID)
	if err != nil {
		return distribution.PartialHistory{}, err
	}

	return distribution.SummarizePartials(rows), nil
}

// PreviewRequest computes the complete review payload for a request as
// stored, without side effects.
func (s *DistributionService) PreviewRequest(requestID string) (*Preview, error) {
	req, err := s.distributionRepo.GetRequestByID(requestID)
	if err != nil {
		return nil, err
	}

	return s.buildPreview(req, nil)
}

// PreviewWithOverrides recomputes the review payload with the admin's
// in-flight edits applied, mirroring the live recalculation in the review
// screen.
func (s *DistributionService) PreviewWithOverrides(requestID string, overrides *ApproveOverrides) (*Preview, error) {
	req, err := s.distributionRepo.GetRequestByID(requestID)
	if err != nil {
		return nil, err
	}

	return s.buildPreview(req, overrides)
}

func (s *DistributionService) buildPreview(req *model.DistributionRequest, overrides *ApproveOverrides) (*Preview, error) {
	deal, err := s.dealRepo.GetByID(req.DealID)
	if err != nil {
		return nil, err
	}

	investments, err := s.dealRepo.GetInvestments(req.DealID)
	if err != nil {
		return nil, err
	}

	ledger, err := s.distributionRepo.GetCompletedPartials(req.DealID)
	if err != nil {
		return nil, err
	}
	history := distribution.SummarizePartials(ledger)

	input := buildInput(req, overrides)

	breakdown, err := distribution.Calculate(input)
	if err != nil {
		return nil, err
	}

	allocations, err := distribution.Allocate(investments, breakdown.InvestorsProfit, breakdown.InvestorsCapital, history.Totals())
	if err != nil {
		return nil, err
	}

	if overrides != nil && len(overrides.CustomAmounts) > 0 {
		allocations = applyCustomAmounts(allocations, overrides.CustomAmounts)
	}

	totalInvested := decimal.Zero
	for _, inv := range investments {
		totalInvested = totalInvested.Add(inv.Amount)
	}

	analysis, err := distribution.AnalyzeProfitability(
		totalInvested, input.TotalAmount, input.EstimatedProfit, input.CapitalReturn,
		input.SahemPercent, input.ReservePercent, input.IsLoss,
	)
	if err != nil {
		return nil, err
	}

	validation := distribution.ValidateInvestorAmounts(allocations, breakdown.InvestorsProfit, breakdown.InvestorsCapital)

	return &Preview{
		Request:     req,
		Deal:        deal,
		History:     history,
		Breakdown:   breakdown,
		Allocations: allocations,
		Analysis:    analysis,
		Validation:  validation,
	}, nil
}

// Approve runs the approval transaction: a compare-and-swap moves the
// request into PROCESSING (refusing if any other request for the deal is
// mid-approval), the payouts are computed, and one ledger row plus wallet
// credits are written per investor before the request is finalized. Any
// failure rolls the whole round back.
func (s *DistributionService) Approve(ctx context.Context, requestID string, overrides *ApproveOverrides) (*ApprovalResult, error) {
	req, err := s.distributionRepo.GetRequestByID(requestID)
	if err != nil {
		return nil, err
	}

	investments, err := s.dealRepo.GetInvestments(req.DealID)
	if err != nil {
		return nil, err
	}

	ledger, err := s.distributionRepo.GetCompletedPartials(req.DealID)
	if err != nil {
		return nil, err
	}
	history := distribution.SummarizePartials(ledger)

	input := buildInput(req, overrides)

	breakdown, err := distribution.Calculate(input)
	if err != nil {
		return nil, err
	}

	allocations, err := distribution.Allocate(investments, breakdown.InvestorsProfit, breakdown.InvestorsCapital, history.Totals())
	if err != nil {
		return nil, err
	}

	if overrides != nil && len(overrides.CustomAmounts) > 0 {
		allocations = applyCustomAmounts(allocations, overrides.CustomAmounts)

		validation := distribution.ValidateInvestorAmounts(allocations, breakdown.InvestorsProfit, breakdown.InvestorsCapital)
		if !validation.Valid {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrAmountMismatch, validation.Errors)
		}
	}

	// All reads and computation happen before the transaction opens; the
	// compare-and-swap below is what makes the payout run exclusive.
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin approval transaction: %w", err)
	}
	//nolint:errcheck // Rollback after commit is a no-op
	defer tx.Rollback()

	if err := s.distributionRepo.MarkProcessing(tx, req.ID, req.DealID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	for i := range allocations {
		if err := s.payInvestor(tx, req, &allocations[i], now); err != nil {
			return nil, err
		}
	}

	if err := s.distributionRepo.FinalizeRequest(tx, req.ID, breakdown.SahemAmount, breakdown.ReserveAmount, now); err != nil {
		return nil, err
	}

	if req.DistributionType == model.DistributionFinal {
		if err := s.dealRepo.UpdateStatus(tx, req.DealID, model.DealStatusCompleted); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit approval transaction: %w", err)
	}

	approved, err := s.distributionRepo.GetRequestByID(req.ID)
	if err != nil {
		return nil, err
	}

	return &ApprovalResult{
		Request:     approved,
		Breakdown:   breakdown,
		Allocations: allocations,
	}, nil
}

// payInvestor writes one investor's ledger row and wallet credits inside
// the approval transaction.
func (s *DistributionService) payInvestor(tx *sql.Tx, req *model.DistributionRequest, alloc *distribution.Allocation, now time.Time) error {
	if len(alloc.InvestmentIDs) == 0 {
		return apperrors.ErrDataInconsistency
	}

	row := &model.ProfitDistribution{
		ID:                    uuid.New().String(),
		DistributionRequestID: req.ID,
		InvestmentID:          alloc.InvestmentIDs[0],
		InvestorID:            alloc.InvestorID,
		DealID:                req.DealID,
		Amount:                alloc.FinalTotal,
		CapitalAmount:         alloc.FinalCapital,
		ProfitAmount:          alloc.FinalProfit,
		ProfitPeriod:          req.DistributionType,
		Status:                "COMPLETED",
		DistributionDate:      now,
	}

	if err := s.distributionRepo.InsertLedgerRow(tx, row); err != nil {
		return err
	}

	wallet, err := s.walletRepo.GetOrCreate(tx, alloc.InvestorID)
	if err != nil {
		return err
	}

	if alloc.FinalCapital.IsPositive() {
		err := s.walletRepo.Credit(tx, wallet.ID, &model.WalletTransaction{
			ID:          uuid.New().String(),
			WalletID:    wallet.ID,
			Type:        model.WalletTxCapitalReturn,
			Amount:      alloc.FinalCapital,
			ReferenceID: row.ID,
			Description: "Capital return from deal " + req.DealID,
		})
		if err != nil {
			return err
		}
	}

	if alloc.FinalProfit.IsPositive() {
		err := s.walletRepo.Credit(tx, wallet.ID, &model.WalletTransaction{
			ID:          uuid.New().String(),
			WalletID:    wallet.ID,
			Type:        model.WalletTxProfit,
			Amount:      alloc.FinalProfit,
			ReferenceID: row.ID,
			Description: "Profit distribution from deal " + req.DealID,
		})
		if err != nil {
			return err
		}
	}

	return nil
}

// Reject moves a PENDING request to REJECTED.
func (s *DistributionService) Reject(requestID string) error {
	if _, err := s.distributionRepo.GetRequestByID(requestID); err != nil {
		return err
	}
	return s.distributionRepo.RejectRequest(requestID)
}

// buildInput assembles the calculator input from the stored request with
// any admin overrides applied on top.
func buildInput(req *model.DistributionRequest, overrides *ApproveOverrides) distribution.Input {
	input := distribution.Input{
		Type:            req.DistributionType,
		TotalAmount:     req.TotalAmount,
		EstimatedProfit: req.EstimatedProfit,
		CapitalReturn:   req.EstimatedReturnCapital,
		SahemPercent:    req.SahemInvestPercent,
		ReservePercent:  req.ReservedGainPercent,
		SahemAmount:     req.SahemInvestAmount,
		ReserveAmount:   req.ReservedAmount,
		IsLoss:          req.IsLoss,
	}

	if overrides == nil {
		return input
	}

	if overrides.SahemPercent != nil {
		input.SahemPercent = *overrides.SahemPercent
	}
	if overrides.ReservePercent != nil {
		input.ReservePercent = *overrides.ReservePercent
	}
	if overrides.SahemAmount != nil {
		input.SahemAmount = *overrides.SahemAmount
	}
	if overrides.ReserveAmount != nil {
		input.ReserveAmount = *overrides.ReserveAmount
	}
	if overrides.IsLoss != nil {
		input.IsLoss = *overrides.IsLoss
	}

	return input
}

// applyCustomAmounts overlays admin-edited per-investor amounts onto the
// computed allocations. Unknown investor IDs are ignored; validation
// afterwards catches any resulting mismatch.
func applyCustomAmounts(allocations []distribution.Allocation, custom []CustomInvestorAmount) []distribution.Allocation {
	byInvestor := make(map[string]CustomInvestorAmount, len(custom))
	for _, c := range custom {
		byInvestor[c.InvestorID] = c
	}

	for i := range allocations {
		c, ok := byInvestor[allocations[i].InvestorID]
		if !ok {
			continue
		}
		allocations[i].FinalProfit = c.FinalProfit
		allocations[i].FinalCapital = c.FinalCapital
		allocations[i].FinalTotal = c.FinalCapital.Add(c.FinalProfit)
	}

	return allocations
}
