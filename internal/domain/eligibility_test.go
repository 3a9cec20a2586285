package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func baseQuote() *MarketQuote {
	return &MarketQuote{
		Symbol:      "BTCUSD",
		MinQuantity: 1,
		MaxQuantity: 10,
		ParcelSize:  1,
	}
}

func baseAccount() *AccountState {
	return &AccountState{
		WalletBalance:   decimal.NewFromInt(1000),
		MarginPerParcel: decimal.NewFromInt(100),
		Leverage:        2,
		MakerOnline:     true,
		OrderID:         "x",
	}
}

func draftWith(qty int64) *OrderDraft {
	d := NewOrderDraft()
	d.Quantity = qty
	return d
}

func TestEvaluateSubmitEligibility(t *testing.T) {
	t.Run("Happy path is eligible with no diagnostic", func(t *testing.T) {
		ev := EvaluateSubmitEligibility(baseQuote(), baseAccount(), draftWith(5), false)
		if !ev.Eligible {
			t.Error("Expected eligible")
		}
		if ev.Diagnostic != DiagnosticNone {
			t.Errorf("Expected no diagnostic, got %q", ev.Diagnostic)
		}

		terms := ComputeTerms(baseQuote(), baseAccount(), 5)
		if !terms.Margin.Equal(decimal.NewFromInt(500)) {
			t.Errorf("Expected margin 500, got %v", terms.Margin)
		}
	})

	t.Run("Offline maker wins over everything", func(t *testing.T) {
		account := baseAccount()
		account.MakerOnline = false
		account.OrderID = "" // Other failures present too.

		ev := EvaluateSubmitEligibility(baseQuote(), account, draftWith(999), false)
		if ev.Eligible {
			t.Error("Offline maker must disable submit")
		}
		if ev.Diagnostic != DiagnosticNoMaker {
			t.Errorf("Expected %q, got %q", DiagnosticNoMaker, ev.Diagnostic)
		}
	})

	t.Run("Quantity too high", func(t *testing.T) {
		ev := EvaluateSubmitEligibility(baseQuote(), baseAccount(), draftWith(11), false)
		if ev.Eligible {
			t.Error("Expected not eligible")
		}
		if ev.Diagnostic != DiagnosticTooHigh {
			t.Errorf("Expected %q, got %q", DiagnosticTooHigh, ev.Diagnostic)
		}
	})

	t.Run("Quantity too low and zero", func(t *testing.T) {
		for _, qty := range []int64{0, -5} {
			ev := EvaluateSubmitEligibility(baseQuote(), baseAccount(), draftWith(qty), false)
			if ev.Eligible {
				t.Errorf("qty %d: expected not eligible", qty)
			}
			if ev.Diagnostic != DiagnosticTooLow {
				t.Errorf("qty %d: expected %q, got %q", qty, DiagnosticTooLow, ev.Diagnostic)
			}
		}
	})

	t.Run("Not in parcel increments", func(t *testing.T) {
		quote := baseQuote()
		quote.ParcelSize = 2
		quote.MinQuantity = 2

		ev := EvaluateSubmitEligibility(quote, baseAccount(), draftWith(3), false)
		if ev.Eligible {
			t.Error("Expected not eligible")
		}
		if ev.Diagnostic != DiagnosticNotParcel(2) {
			t.Errorf("Expected %q, got %q", DiagnosticNotParcel(2), ev.Diagnostic)
		}
	})

	t.Run("Balance too low", func(t *testing.T) {
		account := baseAccount()
		account.WalletBalance = decimal.NewFromInt(100)

		ev := EvaluateSubmitEligibility(baseQuote(), account, draftWith(5), false)
		if ev.Eligible {
			t.Error("Expected not eligible")
		}
		if ev.Diagnostic != DiagnosticBalanceTooLow {
			t.Errorf("Expected %q, got %q", DiagnosticBalanceTooLow, ev.Diagnostic)
		}
	})

	t.Run("No active offer", func(t *testing.T) {
		account := baseAccount()
		account.OrderID = ""

		ev := EvaluateSubmitEligibility(baseQuote(), account, draftWith(5), false)
		if ev.Eligible {
			t.Error("Expected not eligible")
		}
		if ev.Diagnostic != DiagnosticNoLiquidity {
			t.Errorf("Expected %q, got %q", DiagnosticNoLiquidity, ev.Diagnostic)
		}
	})

	t.Run("Last failing check wins when several fail", func(t *testing.T) {
		// Balance too low AND quantity too high AND quantity not a parcel
		// multiple: the too-low/too-high pair is checked after balance, so
		// the later message is the one surfaced. Overwrite order is load
		// bearing; see EvaluateSubmitEligibility.
		quote := baseQuote()
		quote.ParcelSize = 2
		quote.MaxQuantity = 4
		account := baseAccount()
		account.WalletBalance = decimal.NewFromInt(1)

		ev := EvaluateSubmitEligibility(quote, account, draftWith(7), false)
		if ev.Eligible {
			t.Error("Expected not eligible")
		}
		if ev.Diagnostic != DiagnosticTooHigh {
			t.Errorf("Expected later check to overwrite, got %q", ev.Diagnostic)
		}
	})

	t.Run("No offer overwrites every earlier diagnostic", func(t *testing.T) {
		account := baseAccount()
		account.OrderID = ""
		account.WalletBalance = decimal.Zero

		ev := EvaluateSubmitEligibility(baseQuote(), account, draftWith(5), false)
		if ev.Diagnostic != DiagnosticNoLiquidity {
			t.Errorf("Expected %q, got %q", DiagnosticNoLiquidity, ev.Diagnostic)
		}
	})

	t.Run("In-flight submission blocks eligibility but not diagnostics", func(t *testing.T) {
		ev := EvaluateSubmitEligibility(baseQuote(), baseAccount(), draftWith(5), true)
		if ev.Eligible {
			t.Error("Submitting latch must disable submit")
		}
		if ev.Diagnostic != DiagnosticNone {
			t.Errorf("Submitting is not a validation failure, got %q", ev.Diagnostic)
		}
	})

	t.Run("Balance check runs even without an active offer", func(t *testing.T) {
		quote := baseQuote()
		quote.MaxQuantity = 100
		account := baseAccount()
		account.OrderID = ""
		account.WalletBalance = decimal.NewFromInt(100)

		// Both balance and offer checks fail; offer is later in the order.
		ev := EvaluateSubmitEligibility(quote, account, draftWith(50), false)
		if ev.Diagnostic != DiagnosticNoLiquidity {
			t.Errorf("Expected %q, got %q", DiagnosticNoLiquidity, ev.Diagnostic)
		}
		if ev.Eligible {
			t.Error("Expected not eligible")
		}
	})
}
