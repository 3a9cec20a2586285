package daemon

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"taker_go/internal/domain"

	"github.com/gorilla/websocket"
	"github.com/shopspring/decimal"
)

func startFeedServer(t *testing.T, messages []string) *httptest.Server {
	t.Helper()
	upgrader := websocket.Upgrader{}
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("Upgrade: %v", err)
			return
		}
		defer conn.Close()
		for _, msg := range messages {
			if err := conn.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
				return
			}
		}
		// Hold the connection open until the client leaves.
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
}

func collectUpdates(t *testing.T, inbox <-chan domain.FeedUpdate, n int) []domain.FeedUpdate {
	t.Helper()
	updates := make([]domain.FeedUpdate, 0, n)
	timeout := time.After(3 * time.Second)
	for len(updates) < n {
		select {
		case u := <-inbox:
			updates = append(updates, u)
		case <-timeout:
			t.Fatalf("Timed out after %d/%d updates", len(updates), n)
		}
	}
	return updates
}

func TestFeedWorker_DecodesSnapshots(t *testing.T) {
	messages := []string{
		`{"type":"offer","data":{"symbol":"BTCUSD","id":"offer-1","min_quantity":100,"max_quantity":1000,"parcel_size":100,"price":"42000.5","funding_rate_hourly":"0.001%","funding_fee_per_parcel":"0.25","margin_per_parcel":"10","leverage":2}}`,
		`{"type":"wallet","data":{"balance":"5000"}}`,
		`{"type":"connection","data":{"online":true}}`,
	}
	server := startFeedServer(t, messages)
	defer server.Close()

	inbox := make(chan domain.FeedUpdate, 16)
	worker := NewFeedWorker("ws"+strings.TrimPrefix(server.URL, "http"), inbox)
	if err := worker.Connect(context.Background()); err != nil {
		t.Fatalf("Connect: %v", err)
	}
	defer worker.Disconnect()

	// offer -> quote + account, wallet -> account, connection -> account
	updates := collectUpdates(t, inbox, 4)

	quote := updates[0].Quote
	if quote == nil {
		t.Fatal("First update should carry the quote")
	}
	if quote.Symbol != "BTCUSD" || quote.MinQuantity != 100 || quote.ParcelSize != 100 {
		t.Errorf("Unexpected quote: %+v", quote)
	}
	if quote.AskPrice == nil || !quote.AskPrice.Equal(decimal.NewFromFloat(42000.5)) {
		t.Errorf("Unexpected ask price: %v", quote.AskPrice)
	}

	account := updates[3].Account
	if account == nil {
		t.Fatal("Fourth update should carry the account")
	}
	if !account.MakerOnline {
		t.Error("Expected maker online after connection snapshot")
	}
	if account.OrderID != "offer-1" || account.Leverage != 2 {
		t.Errorf("Offer fields should persist in account snapshots: %+v", account)
	}
	if !account.WalletBalance.Equal(decimal.NewFromInt(5000)) {
		t.Errorf("Expected balance 5000, got %v", account.WalletBalance)
	}
}

func TestFeedWorker_UnknownTypeIsIgnored(t *testing.T) {
	messages := []string{
		`{"type":"heartbeat","data":{}}`,
		`{"type":"wallet","data":{"balance":"1"}}`,
	}
	server := startFeedServer(t, messages)
	defer server.Close()

	inbox := make(chan domain.FeedUpdate, 16)
	worker := NewFeedWorker("ws"+strings.TrimPrefix(server.URL, "http"), inbox)
	if err := worker.Connect(context.Background()); err != nil {
		t.Fatalf("Connect: %v", err)
	}
	defer worker.Disconnect()

	updates := collectUpdates(t, inbox, 1)
	if updates[0].Account == nil || !updates[0].Account.WalletBalance.Equal(decimal.NewFromInt(1)) {
		t.Errorf("Expected wallet snapshot, got %+v", updates[0])
	}
}
