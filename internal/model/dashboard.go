package model

import "github.com/shopspring/decimal"

// PlatformStats is the dashboard aggregation across deals, distributions
// and wallets. Summary figures follow the platform convention of whole-USD
// presentation; precision is kept here and rounded at the UI.
type PlatformStats struct {
	ActiveDeals            int             `json:"activeDeals"`
	CompletedDeals         int             `json:"completedDeals"`
	TotalFunding           decimal.Decimal `json:"totalFunding"`
	TotalDistributedProfit decimal.Decimal `json:"totalDistributedProfit"`
	TotalReturnedCapital   decimal.Decimal `json:"totalReturnedCapital"`
	WalletLiabilities      decimal.Decimal `json:"walletLiabilities"`
}
