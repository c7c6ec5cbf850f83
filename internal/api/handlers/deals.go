package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/saheminvest/saheminvest-backend/internal/api/response"
	"github.com/saheminvest/saheminvest-backend/internal/apperrors"
	"github.com/saheminvest/saheminvest-backend/internal/service"
)

// DealHandler handles HTTP requests for deal endpoints. It serves as the
// HTTP layer adapter, parsing requests and delegating business logic to
// the services.
type DealHandler struct {
	dealService         *service.DealService
	distributionService *service.DistributionService
}

// NewDealHandler creates a new DealHandler with the provided service dependencies.
func NewDealHandler(dealService *service.DealService, distributionService *service.DistributionService) *DealHandler {
	return &DealHandler{
		dealService:         dealService,
		distributionService: distributionService,
	}
}

// AllDeals handles GET requests to retrieve all deals.
//
// Endpoint: GET /api/deal
// Response: 200 OK with array of Deal
// Error: 500 Internal Server Error if retrieval fails
func (h *DealHandler) AllDeals(w http.ResponseWriter, _ *http.Request) {
	deals, err := h.dealService.GetAllDeals()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveDeals.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, deals)
}

// GetDeal handles GET requests to retrieve a single deal by ID.
//
// Endpoint: GET /api/deal/{uuid}
// Response: 200 OK with Deal
// Error: 400 Bad Request if deal ID is invalid (validated by middleware)
// Error: 404 Not Found if deal not found
// Error: 500 Internal Server Error if retrieval fails
func (h *DealHandler) GetDeal(w http.ResponseWriter, r *http.Request) {
	dealID := chi.URLParam(r, "uuid")

	deal, err := h.dealService.GetDeal(dealID)
	if err != nil {
		if errors.Is(err, apperrors.ErrDealNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrDealNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveDeals.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, deal)
}

// DealInvestments handles GET requests to retrieve the investments backing
// a deal, largest first, together with the invested total.
//
// Endpoint: GET /api/deal/{uuid}/investments
// Response: 200 OK with DealInvestments
// Error: 404 Not Found if deal not found
// Error: 500 Internal Server Error if retrieval fails
func (h *DealHandler) DealInvestments(w http.ResponseWriter, r *http.Request) {
	dealID := chi.URLParam(r, "uuid")

	investments, err := h.dealService.GetDealInvestments(dealID)
	if err != nil {
		if errors.Is(err, apperrors.ErrDealNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrDealNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveInvestments.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, investments)
}

// DealDistributions handles GET requests to retrieve all distribution
// requests raised against a deal, oldest first.
//
// Endpoint: GET /api/deal/{uuid}/distributions
// Response: 200 OK with array of DistributionRequest
// Error: 500 Internal Server Error if retrieval fails
func (h *DealHandler) DealDistributions(w http.ResponseWriter, r *http.Request) {
	dealID := chi.URLParam(r, "uuid")

	requests, err := h.distributionService.GetRequestsByDeal(dealID)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveDistributions.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, requests)
}
