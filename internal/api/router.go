package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/saheminvest/saheminvest-backend/internal/api/handlers"
	custommiddleware "github.com/saheminvest/saheminvest-backend/internal/api/middleware"
	"github.com/saheminvest/saheminvest-backend/internal/config"
	"github.com/saheminvest/saheminvest-backend/internal/service"
)

// Services bundles the service dependencies the router wires into
// handlers.
type Services struct {
	System       *service.SystemService
	Deal         *service.DealService
	Distribution *service.DistributionService
	Wallet       *service.WalletService
	Dashboard    *service.DashboardService
}

// NewRouter creates and configures the HTTP router
func NewRouter(services Services, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// System namespace
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(services.System)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})

		r.Route("/deal", func(r chi.Router) {
			dealHandler := handlers.NewDealHandler(services.Deal, services.Distribution)
			r.Get("/", dealHandler.AllDeals)
			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", dealHandler.GetDeal)
				r.Get("/investments", dealHandler.DealInvestments)
				r.Get("/distributions", dealHandler.DealDistributions)
			})
		})

		r.Route("/distribution", func(r chi.Router) {
			distributionHandler := handlers.NewDistributionHandler(services.Distribution)
			r.With(custommiddleware.APIKeyMiddleware).Post("/", distributionHandler.CreateRequest)
			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", distributionHandler.GetRequest)
				r.Get("/preview", distributionHandler.PreviewRequest)
				r.With(custommiddleware.APIKeyMiddleware).Post("/approve", distributionHandler.ApproveRequest)
				r.With(custommiddleware.APIKeyMiddleware).Post("/reject", distributionHandler.RejectRequest)
			})
		})

		r.Route("/wallet", func(r chi.Router) {
			walletHandler := handlers.NewWalletHandler(services.Wallet)
			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", walletHandler.GetWallet)
				r.With(custommiddleware.APIKeyMiddleware).Post("/reconcile", walletHandler.ReconcileWallet)
				r.Get("/payout-account", walletHandler.GetPayoutAccount)
				r.With(custommiddleware.APIKeyMiddleware).Put("/payout-account", walletHandler.SavePayoutAccount)
			})
		})

		r.Route("/dashboard", func(r chi.Router) {
			dashboardHandler := handlers.NewDashboardHandler(services.Dashboard)
			r.Get("/stats", dashboardHandler.Stats)
		})
	})

	return r
}
