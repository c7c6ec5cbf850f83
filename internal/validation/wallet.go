package validation

import (
	"strings"

	"github.com/saheminvest/saheminvest-backend/internal/api/request"
)

// ValidateSavePayoutAccount validates a payout account body.
//
// Required fields:
//   - bankName: Must be non-empty
//   - iban: Must be 8 to 34 characters after trimming spaces
//
// Returns a validation Error with field-specific error messages if validation fails.
func ValidateSavePayoutAccount(req request.SavePayoutAccountRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.BankName) == "" {
		errors["bankName"] = "bankName is required"
	}

	iban := strings.ReplaceAll(strings.TrimSpace(req.IBAN), " ", "")
	if iban == "" {
		errors["iban"] = "iban is required"
	} else if len(iban) < 8 || len(iban) > 34 {
		errors["iban"] = "iban must be between 8 and 34 characters"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}
