package service

import (
	"github.com/shopspring/decimal"

	"github.com/saheminvest/saheminvest-backend/internal/model"
	"github.com/saheminvest/saheminvest-backend/internal/repository"
)

// DealService provides read access to deals and their investments.
type DealService struct {
	dealRepo *repository.DealRepository
}

// NewDealService creates a new DealService with the provided repository.
func NewDealService(dealRepo *repository.DealRepository) *DealService {
	return &DealService{dealRepo: dealRepo}
}

// GetAllDeals retrieves every deal on the platform.
func (s *DealService) GetAllDeals() ([]model.Deal, error) {
	return s.dealRepo.GetAll()
}

// GetDeal retrieves a single deal by ID.
func (s *DealService) GetDeal(id string) (*model.Deal, error) {
	return s.dealRepo.GetByID(id)
}

// DealInvestments is a deal's investments together with the invested
// total, ordered largest first.
type DealInvestments struct {
	Investments   []model.DealInvestment `json:"investments"`
	TotalInvested decimal.Decimal        `json:"totalInvested"`
}

// GetDealInvestments retrieves the investments backing a deal.
func (s *DealService) GetDealInvestments(dealID string) (*DealInvestments, error) {
	if _, err := s.dealRepo.GetByID(dealID); err != nil {
		return nil, err
	}

	investments, err := s.dealRepo.GetInvestments(dealID)
	if err != nil {
		return nil, err
	}

	total := decimal.Zero
	for _, inv := range investments {
		total = total.Add(inv.Amount)
	}

	return &DealInvestments{Investments: investments, TotalInvested: total}, nil
}
