package daemon

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

const (
	maxRetries   = 3
	baseDelay    = 1 * time.Second
	pingInterval = 30 * time.Second
	readTimeout  = 60 * time.Second
)

// feedEnvelope wraps every message on the daemon event stream.
type feedEnvelope struct {
	Type string          `json:"type"` // "offer", "wallet", "connection"
	Data json.RawMessage `json:"data"`
}

// offerPayload is the daemon's offer snapshot.
type offerPayload struct {
	Symbol                string           `json:"symbol"`
	ID                    string           `json:"id"`
	MinQuantity           int64            `json:"min_quantity"`
	MaxQuantity           int64            `json:"max_quantity"`
	ParcelSize            int64            `json:"parcel_size"`
	Price                 *decimal.Decimal `json:"price"`
	LiquidationPrice      *decimal.Decimal `json:"liquidation_price"`
	FundingRateHourly     string           `json:"funding_rate_hourly"`
	FundingRateAnnualized string           `json:"funding_rate_annualized"`
	FundingFeePerParcel   decimal.Decimal  `json:"funding_fee_per_parcel"`
	MarginPerParcel       decimal.Decimal  `json:"margin_per_parcel"`
	Leverage              int              `json:"leverage"`
}

// walletPayload is the daemon's wallet snapshot.
type walletPayload struct {
	Balance decimal.Decimal `json:"balance"`
}

// connectionPayload reports maker connectivity.
type connectionPayload struct {
	Online bool `json:"online"`
}

// orderResponse is the daemon's answer to an order submission.
type orderResponse struct {
	OrderID string `json:"order_id"`
	Status  string `json:"status"`
	Reason  string `json:"reason,omitempty"`
}

// walletResponse is the REST wallet endpoint payload.
type walletResponse struct {
	Balance   decimal.Decimal `json:"balance"`
	UpdatedAt time.Time       `json:"updated_at"`
}
