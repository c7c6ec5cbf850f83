package request

// SavePayoutAccountRequest is the body for creating or replacing an
// investor's payout account.
type SavePayoutAccountRequest struct {
	BankName string `json:"bankName"`
	IBAN     string `json:"iban"`
}
