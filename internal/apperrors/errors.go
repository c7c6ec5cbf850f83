package apperrors

import "errors"

// Domain entity errors represent missing or invalid entities in the system.
// These errors indicate that a requested resource does not exist.
var (
	// ErrDealNotFound indicates that a deal with the given ID does not exist.
	ErrDealNotFound = errors.New("deal not found")

	// ErrInvestmentNotFound indicates that an investment with the given ID does not exist.
	ErrInvestmentNotFound = errors.New("investment not found")

	// ErrDistributionRequestNotFound indicates that a distribution request with the given ID does not exist.
	ErrDistributionRequestNotFound = errors.New("distribution request not found")

	// ErrWalletNotFound indicates that no wallet exists for the given investor.
	ErrWalletNotFound = errors.New("wallet not found")

	// ErrPayoutAccountNotFound indicates that no payout account exists for the given investor.
	ErrPayoutAccountNotFound = errors.New("payout account not found")

	// ErrUserNotFound indicates that a user with the given ID does not exist.
	ErrUserNotFound = errors.New("user not found")
)

// Business logic errors represent validation failures or constraint violations.
// These errors indicate that an operation cannot be completed due to business rules.
var (
	// ErrInvalidCommissionConfiguration indicates that the commission inputs
	// would produce a negative investor pool (percentages summing above 100
	// on a final distribution, or flat amounts exceeding the disbursement on
	// a partial one).
	ErrInvalidCommissionConfiguration = errors.New("invalid commission configuration")

	// ErrNoInvestments indicates that a distribution was attempted for a deal
	// with no capital invested, which would make investment ratios undefined.
	ErrNoInvestments = errors.New("deal has no investments")

	// ErrDistributionInProgress indicates that another distribution request
	// for the same deal is already being processed, or the request is not in
	// a state that allows approval.
	ErrDistributionInProgress = errors.New("distribution request is not pending or another is in progress")

	// ErrAmountMismatch indicates that admin-supplied custom investor amounts
	// do not reconcile with the computed pools within tolerance.
	ErrAmountMismatch = errors.New("investor amounts do not match expected totals")

	// ErrInvalidUUID indicates that a provided ID is not a valid UUID format.
	ErrInvalidUUID = errors.New("invalid UUID format")

	// ErrEmptyID indicates that a required ID parameter is empty or missing.
	ErrEmptyID = errors.New("ID cannot be empty")

	// ErrNegativeAmount indicates that an amount field has an invalid negative value.
	ErrNegativeAmount = errors.New("amount cannot be negative")

	// Validation errors for required fields
	ErrInvalidDealID        = errors.New("deal ID is required")
	ErrInvalidInvestorID    = errors.New("investor ID is required")
	ErrInvalidRequestStatus = errors.New("distribution request status does not allow this operation")
)

// Operation failure errors represent system-level failures when retrieving or processing data.
// These errors indicate that an operation failed, but not due to missing entities or validation issues.
var (
	// Deal operation errors
	ErrFailedToRetrieveDeals       = errors.New("failed to retrieve deals")
	ErrFailedToRetrieveDeal        = errors.New("failed to retrieve deal")
	ErrFailedToRetrieveInvestments = errors.New("failed to retrieve investments")

	// Distribution operation errors
	ErrFailedToRetrieveDistributions = errors.New("failed to retrieve distributions")
	ErrFailedToRetrieveRequest       = errors.New("failed to retrieve distribution request")
	ErrFailedToCreateRequest         = errors.New("failed to create distribution request")
	ErrFailedToPreviewDistribution   = errors.New("failed to preview distribution")
	ErrFailedToApproveDistribution   = errors.New("failed to approve distribution")
	ErrFailedToRejectDistribution    = errors.New("failed to reject distribution")

	// Wallet operation errors
	ErrFailedToRetrieveWallet   = errors.New("failed to retrieve wallet")
	ErrFailedToReconcileWallet  = errors.New("failed to reconcile wallet")
	ErrFailedToSavePayoutInfo   = errors.New("failed to save payout account")
	ErrFailedToReadPayoutInfo   = errors.New("failed to retrieve payout account")
	ErrFailedToRecordLedgerRows = errors.New("failed to record distribution ledger rows")

	// Dashboard operation errors
	ErrFailedToGetPlatformStats = errors.New("failed to get platform statistics")

	// System operation errors
	ErrFailedToGetVersionInfo = errors.New("failed to get version information")
)

// Data integrity errors represent inconsistencies or corruption in the data.
var (
	// ErrDataInconsistency indicates that the data is in an inconsistent state
	// (e.g., a ledger row references an investment that does not exist).
	ErrDataInconsistency = errors.New("data inconsistency detected")

	// ErrMissingRequiredField indicates that a required field is missing or empty.
	ErrMissingRequiredField = errors.New("missing required field")
)
