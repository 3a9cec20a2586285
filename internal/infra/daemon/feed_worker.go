package daemon

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"taker_go/internal/domain"
	"taker_go/internal/infra"

	"github.com/gorilla/websocket"
)

// FeedWorker consumes the daemon's event stream over WebSocket and turns
// wire snapshots into domain.FeedUpdate values. Offer snapshots carry both
// market terms and account terms, so the worker assembles the AccountState
// from the last offer, wallet and connection messages it has seen.
type FeedWorker struct {
	wsURL     string
	inbox     chan<- domain.FeedUpdate
	conn      *websocket.Conn
	mu        sync.RWMutex
	writeMu   sync.Mutex
	connected bool
	cancel    context.CancelFunc
	wg        sync.WaitGroup

	account domain.AccountState // Assembled snapshot, guarded by mu.
}

// NewFeedWorker factory
func NewFeedWorker(wsURL string, inbox chan<- domain.FeedUpdate) *FeedWorker {
	return &FeedWorker{
		wsURL: wsURL,
		inbox: inbox,
	}
}

func (w *FeedWorker) Connect(ctx context.Context) error {
	ctx, w.cancel = context.WithCancel(ctx)
	w.wg.Add(1)
	go w.connectionLoop(ctx)
	return nil
}

func (w *FeedWorker) connectionLoop(ctx context.Context) {
	defer w.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		if err := w.connect(ctx); err != nil {
			slog.Warn("Daemon feed connection failed", slog.Any("error", err))
			w.makerOffline()
			time.Sleep(baseDelay)
		} else {
			w.readLoop(ctx)
			w.makerOffline()
		}
	}
}

func (w *FeedWorker) connect(ctx context.Context) error {
	dialer := websocket.Dialer{HandshakeTimeout: 10 * time.Second}
	conn, _, err := dialer.DialContext(ctx, w.wsURL, nil)
	if err != nil {
		return domain.NewNetworkError("dial", err)
	}

	w.mu.Lock()
	w.conn = conn
	w.connected = true
	w.mu.Unlock()
	infra.GlobalMetrics.SetFeedConnected(true)

	go w.pingLoop(ctx)
	slog.Info("Daemon feed connected", slog.String("url", w.wsURL))
	return nil
}

func (w *FeedWorker) pingLoop(ctx context.Context) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := w.threadSafeWrite(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (w *FeedWorker) threadSafeWrite(msgType int, data []byte) error {
	w.writeMu.Lock()
	defer w.writeMu.Unlock()
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.conn == nil {
		return fmt.Errorf("no conn")
	}
	return w.conn.WriteMessage(msgType, data)
}

func (w *FeedWorker) readLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}
		w.mu.RLock()
		if w.conn == nil {
			w.mu.RUnlock()
			return
		}
		w.conn.SetReadDeadline(time.Now().Add(readTimeout))
		w.mu.RUnlock()

		_, msg, err := w.conn.ReadMessage()
		if err != nil {
			w.closeConnection()
			return
		}
		w.handleMessage(msg)
	}
}

func (w *FeedWorker) handleMessage(msg []byte) {
	var env feedEnvelope
	if err := json.Unmarshal(msg, &env); err != nil {
		slog.Warn("Unparseable feed message", slog.Any("error", err))
		infra.GlobalMetrics.RecordError()
		return
	}

	switch env.Type {
	case "offer":
		w.handleOffer(env.Data)
	case "wallet":
		w.handleWallet(env.Data)
	case "connection":
		w.handleConnection(env.Data)
	default:
		// Unknown snapshot types are forward compatibility, not errors.
	}
}

func (w *FeedWorker) handleOffer(data json.RawMessage) {
	var offer offerPayload
	if err := json.Unmarshal(data, &offer); err != nil {
		infra.GlobalMetrics.RecordError()
		return
	}

	quote := &domain.MarketQuote{
		Symbol:                offer.Symbol,
		MinQuantity:           offer.MinQuantity,
		MaxQuantity:           offer.MaxQuantity,
		ParcelSize:            offer.ParcelSize,
		AskPrice:              offer.Price,
		LiquidationPrice:      offer.LiquidationPrice,
		FundingRateHourly:     offer.FundingRateHourly,
		FundingRateAnnualized: offer.FundingRateAnnualized,
		FundingFeePerParcel:   offer.FundingFeePerParcel,
	}

	w.mu.Lock()
	w.account.OrderID = offer.ID
	w.account.MarginPerParcel = offer.MarginPerParcel
	w.account.Leverage = offer.Leverage
	account := w.account
	w.mu.Unlock()

	w.push(domain.FeedUpdate{Quote: quote})
	w.push(domain.FeedUpdate{Account: &account})
}

func (w *FeedWorker) handleWallet(data json.RawMessage) {
	var wallet walletPayload
	if err := json.Unmarshal(data, &wallet); err != nil {
		infra.GlobalMetrics.RecordError()
		return
	}

	w.mu.Lock()
	w.account.WalletBalance = wallet.Balance
	account := w.account
	w.mu.Unlock()

	w.push(domain.FeedUpdate{Account: &account})
}

func (w *FeedWorker) handleConnection(data json.RawMessage) {
	var conn connectionPayload
	if err := json.Unmarshal(data, &conn); err != nil {
		infra.GlobalMetrics.RecordError()
		return
	}

	w.mu.Lock()
	w.account.MakerOnline = conn.Online
	account := w.account
	w.mu.Unlock()

	w.push(domain.FeedUpdate{Account: &account})
}

// makerOffline publishes an offline account snapshot when the feed drops:
// without the stream there is no maker to trade against.
func (w *FeedWorker) makerOffline() {
	infra.GlobalMetrics.SetFeedConnected(false)

	w.mu.Lock()
	w.account.MakerOnline = false
	account := w.account
	w.mu.Unlock()

	w.push(domain.FeedUpdate{Account: &account})
}

func (w *FeedWorker) push(update domain.FeedUpdate) {
	infra.GlobalMetrics.RecordFeedUpdate()
	select {
	case w.inbox <- update:
	default:
	}
}

func (w *FeedWorker) closeConnection() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.conn != nil {
		w.conn.Close()
		w.conn = nil
	}
	w.connected = false
}

func (w *FeedWorker) IsConnected() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.connected
}

func (w *FeedWorker) Disconnect() {
	if w.cancel != nil {
		w.cancel()
	}
	w.closeConnection()
	w.wg.Wait()
}
