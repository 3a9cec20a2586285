package domain

import "github.com/shopspring/decimal"

// MarketQuote is the current maker offer for a single market.
// Each feed update replaces the whole snapshot; there are no deltas.
type MarketQuote struct {
	Symbol      string `json:"symbol"`
	MinQuantity int64  `json:"min_quantity"`
	MaxQuantity int64  `json:"max_quantity"`
	ParcelSize  int64  `json:"parcel_size"` // Minimum tradable unit. Always > 0, guaranteed by the daemon.

	AskPrice         *decimal.Decimal `json:"ask_price,omitempty"`
	LiquidationPrice *decimal.Decimal `json:"liquidation_price,omitempty"`

	// Display-only funding rate strings, passed through as the daemon formats them.
	FundingRateHourly     string `json:"funding_rate_hourly"`
	FundingRateAnnualized string `json:"funding_rate_annualized"`

	FundingFeePerParcel decimal.Decimal `json:"funding_fee_per_parcel"`
}

// AccountState is the taker's wallet and connection snapshot.
type AccountState struct {
	WalletBalance   decimal.Decimal `json:"wallet_balance"`
	MarginPerParcel decimal.Decimal `json:"margin_per_parcel"`
	Leverage        int             `json:"leverage"` // 1..5
	MakerOnline     bool            `json:"maker_online"`
	OrderID         string          `json:"order_id"` // Empty when there is no active offer to trade against.
}

// HasActiveOffer reports whether there is an offer the taker can currently take.
func (a *AccountState) HasActiveOffer() bool {
	return a.OrderID != ""
}
