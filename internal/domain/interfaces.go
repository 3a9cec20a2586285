package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

// FeedWorker defines the interface for the daemon quote/account feed connector
type FeedWorker interface {
	Connect(ctx context.Context) error
	Disconnect()
	IsConnected() bool
}

// OrderSubmitter defines how drafted orders reach the taker daemon
type OrderSubmitter interface {
	Submit(ctx context.Context, req *OrderRequest) error
}

// BalanceProvider fetches the wallet balance shown by the wallet navigation target
type BalanceProvider interface {
	GetWalletBalance(ctx context.Context) (decimal.Decimal, error)
}

// MarketInfoRepository defines how to access market metadata
type MarketInfoRepository interface {
	Upsert(info *MarketInfo) error
	FindAll() ([]MarketInfo, error)
	FindBySymbol(symbol string) (*MarketInfo, error)
}
