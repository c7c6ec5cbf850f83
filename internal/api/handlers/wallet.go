package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/saheminvest/saheminvest-backend/internal/api/request"
	"github.com/saheminvest/saheminvest-backend/internal/api/response"
	"github.com/saheminvest/saheminvest-backend/internal/apperrors"
	"github.com/saheminvest/saheminvest-backend/internal/secrets"
	"github.com/saheminvest/saheminvest-backend/internal/service"
	"github.com/saheminvest/saheminvest-backend/internal/validation"
)

// WalletHandler handles HTTP requests for wallet and payout account
// endpoints. The {uuid} URL parameter is the investor's ID.
type WalletHandler struct {
	walletService *service.WalletService
}

// NewWalletHandler creates a new WalletHandler with the provided service dependency.
func NewWalletHandler(walletService *service.WalletService) *WalletHandler {
	return &WalletHandler{
		walletService: walletService,
	}
}

// GetWallet handles GET requests to retrieve an investor's wallet and its
// transaction history, newest first.
//
// Endpoint: GET /api/wallet/{uuid}
// Response: 200 OK with WalletStatement
// Error: 404 Not Found if no wallet exists for the investor
// Error: 500 Internal Server Error if retrieval fails
func (h *WalletHandler) GetWallet(w http.ResponseWriter, r *http.Request) {
	investorID := chi.URLParam(r, "uuid")

	statement, err := h.walletService.GetStatement(investorID)
	if err != nil {
		if errors.Is(err, apperrors.ErrWalletNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrWalletNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveWallet.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, statement)
}

// ReconcileWallet handles POST requests to recompute an investor's wallet
// balance from its transaction log.
//
// Endpoint: POST /api/wallet/{uuid}/reconcile
// Response: 200 OK with ReconcileResult
// Error: 404 Not Found if no wallet exists for the investor
// Error: 500 Internal Server Error if reconciliation fails
func (h *WalletHandler) ReconcileWallet(w http.ResponseWriter, r *http.Request) {
	investorID := chi.URLParam(r, "uuid")

	result, err := h.walletService.Reconcile(investorID)
	if err != nil {
		if errors.Is(err, apperrors.ErrWalletNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrWalletNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToReconcileWallet.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, result)
}

// GetPayoutAccount handles GET requests to retrieve an investor's payout
// account. The IBAN is always returned masked.
//
// Endpoint: GET /api/wallet/{uuid}/payout-account
// Response: 200 OK with PayoutAccount
// Error: 404 Not Found if no payout account exists for the investor
// Error: 500 Internal Server Error if retrieval or decryption fails
func (h *WalletHandler) GetPayoutAccount(w http.ResponseWriter, r *http.Request) {
	investorID := chi.URLParam(r, "uuid")

	account, err := h.walletService.GetPayoutAccount(investorID)
	if err != nil {
		if errors.Is(err, apperrors.ErrPayoutAccountNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrPayoutAccountNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToReadPayoutInfo.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, account)
}

// SavePayoutAccount handles PUT requests to create or replace an
// investor's payout account. The IBAN is encrypted before it is stored.
//
// Endpoint: PUT /api/wallet/{uuid}/payout-account
// Request Body: SavePayoutAccountRequest (bankName, iban)
// Response: 200 OK with PayoutAccount (IBAN masked)
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 404 Not Found if the investor does not exist
// Error: 503 Service Unavailable if no encryption key is configured
// Error: 500 Internal Server Error if saving fails
func (h *WalletHandler) SavePayoutAccount(w http.ResponseWriter, r *http.Request) {
	investorID := chi.URLParam(r, "uuid")

	req, err := parseJSON[request.SavePayoutAccountRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateSavePayoutAccount(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	account, err := h.walletService.SavePayoutAccount(investorID, req.BankName, req.IBAN)
	if err != nil {
		switch {
		case errors.Is(err, secrets.ErrNoKey):
			response.RespondError(w, http.StatusServiceUnavailable, "payout account encryption is not configured", err.Error())
		case errors.Is(err, apperrors.ErrUserNotFound):
			response.RespondError(w, http.StatusNotFound, apperrors.ErrUserNotFound.Error(), err.Error())
		default:
			response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToSavePayoutInfo.Error(), err.Error())
		}
		return
	}

	response.RespondJSON(w, http.StatusOK, account)
}
