package service

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/saheminvest/saheminvest-backend/internal/model"
	"github.com/saheminvest/saheminvest-backend/internal/repository"
)

// DashboardService aggregates platform-wide statistics for the admin
// dashboard.
type DashboardService struct {
	dashboardRepo *repository.DashboardRepository
}

// NewDashboardService creates a new DashboardService with the provided
// repository.
func NewDashboardService(dashboardRepo *repository.DashboardRepository) *DashboardService {
	return &DashboardService{dashboardRepo: dashboardRepo}
}

// GetPlatformStats runs the dashboard aggregates concurrently and returns
// the combined result. The first failing query cancels the rest.
func (s *DashboardService) GetPlatformStats(ctx context.Context) (*model.PlatformStats, error) {
	stats := &model.PlatformStats{}
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		count, err := s.dashboardRepo.CountDealsByStatus(ctx, model.DealStatusActive)
		if err != nil {
			return err
		}
		stats.ActiveDeals = count
		return nil
	})

	g.Go(func() error {
		count, err := s.dashboardRepo.CountDealsByStatus(ctx, model.DealStatusCompleted)
		if err != nil {
			return err
		}
		stats.CompletedDeals = count
		return nil
	})

	g.Go(func() error {
		total, err := s.dashboardRepo.TotalFunding(ctx)
		if err != nil {
			return err
		}
		stats.TotalFunding = total
		return nil
	})

	g.Go(func() error {
		profit, capital, err := s.dashboardRepo.TotalDistributed(ctx)
		if err != nil {
			return err
		}
		stats.TotalDistributedProfit = profit
		stats.TotalReturnedCapital = capital
		return nil
	})

	g.Go(func() error {
		total, err := s.dashboardRepo.WalletLiabilities(ctx)
		if err != nil {
			return err
		}
		stats.WalletLiabilities = total
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return stats, nil
}
