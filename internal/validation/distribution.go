package validation

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/saheminvest/saheminvest-backend/internal/api/request"
)

// ValidDistributionType contains the allowed distribution type values.
var ValidDistributionType = map[string]bool{
	"PARTIAL": true, "FINAL": true,
}

var oneHundred = decimal.NewFromInt(100)

// ValidateCreateDistribution validates a distribution request creation
// body.
//
// Required fields:
//   - dealId: Must be a valid UUID
//   - requestedBy: Must be a valid UUID
//   - distributionType: Must be PARTIAL or FINAL
//   - totalAmount: Must be positive
//
// Percent fields must lie in [0, 100] and, for FINAL requests, sum to at
// most 100. Flat amounts must be non-negative.
//
// Returns a validation Error with field-specific error messages if validation fails.
func ValidateCreateDistribution(req request.CreateDistributionRequest) error {
	if err := ValidateUUID(req.DealID); err != nil {
		return err
	}
	if err := ValidateUUID(req.RequestedBy); err != nil {
		return err
	}

	errors := make(map[string]string)

	if strings.TrimSpace(req.DistributionType) == "" {
		errors["distributionType"] = "distributionType is required"
	} else if !ValidDistributionType[req.DistributionType] {
		errors["distributionType"] = fmt.Sprintf("invalid type: %s", req.DistributionType)
	}

	if !req.TotalAmount.IsPositive() {
		errors["totalAmount"] = "totalAmount must be positive"
	}

	validatePercent(errors, "sahemInvestPercent", req.SahemInvestPercent)
	validatePercent(errors, "reservedGainPercent", req.ReservedGainPercent)
	validatePercent(errors, "estimatedGainPercent", req.EstimatedGainPercent)

	if req.DistributionType == "FINAL" && req.SahemInvestPercent.Add(req.ReservedGainPercent).GreaterThan(oneHundred) {
		errors["sahemInvestPercent"] = "commission percentages exceed 100 combined"
	}

	if req.SahemInvestAmount.IsNegative() {
		errors["sahemInvestAmount"] = "sahemInvestAmount cannot be negative"
	}
	if req.ReservedAmount.IsNegative() {
		errors["reservedAmount"] = "reservedAmount cannot be negative"
	}
	if req.EstimatedProfit.IsNegative() {
		errors["estimatedProfit"] = "estimatedProfit cannot be negative"
	}
	if req.EstimatedReturnCapital.IsNegative() {
		errors["estimatedReturnCapital"] = "estimatedReturnCapital cannot be negative"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

// ValidateApproveDistribution validates a distribution approval body. All
// fields are optional, but if provided, they must meet the same
// constraints as create.
func ValidateApproveDistribution(req request.ApproveDistributionRequest) error {
	errors := make(map[string]string)

	if req.SahemInvestPercent != nil {
		validatePercent(errors, "sahemInvestPercent", *req.SahemInvestPercent)
	}
	if req.ReservedGainPercent != nil {
		validatePercent(errors, "reservedGainPercent", *req.ReservedGainPercent)
	}
	if req.SahemInvestAmount != nil && req.SahemInvestAmount.IsNegative() {
		errors["sahemInvestAmount"] = "sahemInvestAmount cannot be negative"
	}
	if req.ReservedAmount != nil && req.ReservedAmount.IsNegative() {
		errors["reservedAmount"] = "reservedAmount cannot be negative"
	}

	for i, custom := range req.CustomAmounts {
		if err := ValidateUUID(custom.InvestorID); err != nil {
			return err
		}
		if custom.FinalProfit.IsNegative() {
			errors[fmt.Sprintf("customAmounts[%d].finalProfit", i)] = "finalProfit cannot be negative"
		}
		if custom.FinalCapital.IsNegative() {
			errors[fmt.Sprintf("customAmounts[%d].finalCapital", i)] = "finalCapital cannot be negative"
		}
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

func validatePercent(errors map[string]string, field string, value decimal.Decimal) {
	if value.IsNegative() || value.GreaterThan(oneHundred) {
		errors[field] = field + " must be between 0 and 100"
	}
}
