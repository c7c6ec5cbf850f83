package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/saheminvest/saheminvest-backend/internal/api/request"
	"github.com/saheminvest/saheminvest-backend/internal/api/response"
	"github.com/saheminvest/saheminvest-backend/internal/apperrors"
	"github.com/saheminvest/saheminvest-backend/internal/model"
	"github.com/saheminvest/saheminvest-backend/internal/service"
	"github.com/saheminvest/saheminvest-backend/internal/validation"
)

// DistributionHandler handles HTTP requests for distribution endpoints.
// It serves as the HTTP layer adapter, parsing requests and delegating
// business logic to the distributionService.
type DistributionHandler struct {
	distributionService *service.DistributionService
}

// NewDistributionHandler creates a new DistributionHandler with the provided service dependency.
func NewDistributionHandler(distributionService *service.DistributionService) *DistributionHandler {
	return &DistributionHandler{
		distributionService: distributionService,
	}
}

// CreateRequest handles POST requests to create a new distribution request.
// Validates the request body and records the request in PENDING status.
//
// Endpoint: POST /api/distribution
// Request Body: CreateDistributionRequest
// Response: 201 Created with DistributionRequest
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 404 Not Found if deal not found
// Error: 500 Internal Server Error if creation fails
func (h *DistributionHandler) CreateRequest(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateDistributionRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateDistribution(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	created, err := h.distributionService.CreateRequest(&model.DistributionRequest{
		DealID:                 req.DealID,
		RequestedBy:            req.RequestedBy,
		DistributionType:       model.DistributionType(req.DistributionType),
		TotalAmount:            req.TotalAmount,
		EstimatedGainPercent:   req.EstimatedGainPercent,
		SahemInvestPercent:     req.SahemInvestPercent,
		ReservedGainPercent:    req.ReservedGainPercent,
		SahemInvestAmount:      req.SahemInvestAmount,
		ReservedAmount:         req.ReservedAmount,
		EstimatedProfit:        req.EstimatedProfit,
		EstimatedReturnCapital: req.EstimatedReturnCapital,
		IsLoss:                 req.IsLoss,
		Description:            req.Description,
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrDealNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrDealNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToCreateRequest.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, created)
}

// GetRequest handles GET requests to retrieve a single distribution request.
//
// Endpoint: GET /api/distribution/{uuid}
// Response: 200 OK with DistributionRequest
// Error: 404 Not Found if request not found
// Error: 500 Internal Server Error if retrieval fails
func (h *DistributionHandler) GetRequest(w http.ResponseWriter, r *http.Request) {
	requestID := chi.URLParam(r, "uuid")

	req, err := h.distributionService.GetRequest(requestID)
	if err != nil {
		if errors.Is(err, apperrors.ErrDistributionRequestNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrDistributionRequestNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveRequest.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, req)
}

// PreviewRequest handles GET requests to compute the full review payload
// for a distribution request: commission breakdown, per-investor
// allocations, historical partials, profitability analysis and validation.
// The computation has no side effects.
//
// Endpoint: GET /api/distribution/{uuid}/preview
// Response: 200 OK with Preview
// Error: 400 Bad Request if the stored request has an invalid commission configuration
// Error: 404 Not Found if request or deal not found
// Error: 500 Internal Server Error if computation fails
func (h *DistributionHandler) PreviewRequest(w http.ResponseWriter, r *http.Request) {
	requestID := chi.URLParam(r, "uuid")

	preview, err := h.distributionService.PreviewRequest(requestID)
	if err != nil {
		h.respondDistributionError(w, err, apperrors.ErrFailedToPreviewDistribution)
		return
	}

	response.RespondJSON(w, http.StatusOK, preview)
}

// ApproveRequest handles POST requests to approve a distribution request.
// The body may override commission fields and individual investor amounts.
// On success every investor's ledger row and wallet credits are committed
// atomically and the request moves to APPROVED.
//
// Endpoint: POST /api/distribution/{uuid}/approve
// Request Body: ApproveDistributionRequest (all fields optional)
// Response: 200 OK with ApprovalResult
// Error: 400 Bad Request if validation fails or amounts do not reconcile
// Error: 404 Not Found if request not found
// Error: 409 Conflict if the request is not pending or another approval is in flight
// Error: 500 Internal Server Error if the approval transaction fails
func (h *DistributionHandler) ApproveRequest(w http.ResponseWriter, r *http.Request) {
	requestID := chi.URLParam(r, "uuid")

	req, err := parseJSON[request.ApproveDistributionRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateApproveDistribution(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	result, err := h.distributionService.Approve(r.Context(), requestID, toOverrides(req))
	if err != nil {
		h.respondDistributionError(w, err, apperrors.ErrFailedToApproveDistribution)
		return
	}

	response.RespondJSON(w, http.StatusOK, result)
}

// RejectRequest handles POST requests to reject a pending distribution request.
//
// Endpoint: POST /api/distribution/{uuid}/reject
// Response: 200 OK with the rejected DistributionRequest
// Error: 404 Not Found if request not found
// Error: 409 Conflict if the request is not pending
// Error: 500 Internal Server Error if rejection fails
func (h *DistributionHandler) RejectRequest(w http.ResponseWriter, r *http.Request) {
	requestID := chi.URLParam(r, "uuid")

	if err := h.distributionService.Reject(requestID); err != nil {
		if errors.Is(err, apperrors.ErrInvalidRequestStatus) {
			response.RespondError(w, http.StatusConflict, apperrors.ErrInvalidRequestStatus.Error(), err.Error())
			return
		}
		h.respondDistributionError(w, err, apperrors.ErrFailedToRejectDistribution)
		return
	}

	req, err := h.distributionService.GetRequest(requestID)
	if err != nil {
		h.respondDistributionError(w, err, apperrors.ErrFailedToRejectDistribution)
		return
	}

	response.RespondJSON(w, http.StatusOK, req)
}

// respondDistributionError maps engine and lifecycle errors onto HTTP
// status codes shared by the distribution endpoints.
func (h *DistributionHandler) respondDistributionError(w http.ResponseWriter, err error, fallback error) {
	switch {
	case errors.Is(err, apperrors.ErrDistributionRequestNotFound):
		response.RespondError(w, http.StatusNotFound, apperrors.ErrDistributionRequestNotFound.Error(), err.Error())
	case errors.Is(err, apperrors.ErrDealNotFound):
		response.RespondError(w, http.StatusNotFound, apperrors.ErrDealNotFound.Error(), err.Error())
	case errors.Is(err, apperrors.ErrDistributionInProgress):
		response.RespondError(w, http.StatusConflict, apperrors.ErrDistributionInProgress.Error(), err.Error())
	case errors.Is(err, apperrors.ErrAmountMismatch):
		response.RespondError(w, http.StatusBadRequest, apperrors.ErrAmountMismatch.Error(), err.Error())
	case errors.Is(err, apperrors.ErrInvalidCommissionConfiguration):
		response.RespondError(w, http.StatusBadRequest, apperrors.ErrInvalidCommissionConfiguration.Error(), err.Error())
	case errors.Is(err, apperrors.ErrNoInvestments):
		response.RespondError(w, http.StatusBadRequest, apperrors.ErrNoInvestments.Error(), err.Error())
	default:
		response.RespondError(w, http.StatusInternalServerError, fallback.Error(), err.Error())
	}
}

func toOverrides(req request.ApproveDistributionRequest) *service.ApproveOverrides {
	overrides := &service.ApproveOverrides{
		SahemPercent:   req.SahemInvestPercent,
		ReservePercent: req.ReservedGainPercent,
		SahemAmount:    req.SahemInvestAmount,
		ReserveAmount:  req.ReservedAmount,
		IsLoss:         req.IsLoss,
	}
	for _, c := range req.CustomAmounts {
		overrides.CustomAmounts = append(overrides.CustomAmounts, service.CustomInvestorAmount{
			InvestorID:   c.InvestorID,
			FinalProfit:  c.FinalProfit,
			FinalCapital: c.FinalCapital,
		})
	}
	return overrides
}
