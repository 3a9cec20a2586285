package domain

import "fmt"

// Diagnostic is the single user-facing validation message shown on the form.
type Diagnostic string

const (
	DiagnosticNone          Diagnostic = ""
	DiagnosticNoMaker       Diagnostic = "No maker connected"
	DiagnosticBalanceTooLow Diagnostic = "Your balance is too low"
	DiagnosticTooHigh       Diagnostic = "Quantity too high"
	DiagnosticTooLow        Diagnostic = "Quantity too low"
	DiagnosticNoLiquidity   Diagnostic = "No liquidity, no active offers"
)

// DiagnosticNotParcel names the required increment so the user knows what to
// round to.
func DiagnosticNotParcel(parcelSize int64) Diagnostic {
	return Diagnostic(fmt.Sprintf("Quantity must be in increments of %d", parcelSize))
}

// Evaluation is the result of checking whether the drafted order may be submitted.
type Evaluation struct {
	Eligible   bool       `json:"eligible"`
	Diagnostic Diagnostic `json:"diagnostic,omitempty"`
}

// EvaluateSubmitEligibility decides whether the submit affordance is enabled
// and which single diagnostic, if any, to surface.
//
// The diagnostic is selected by sequential overwrite: the checks run in fixed
// source order and each true predicate replaces the previous message, so the
// LAST failing check wins. First-match priority looks like the intended
// design, but the shipped behavior is overwrite order and downstream users
// have learned it; keep the order below stable. An offline maker is the one
// exception and always wins.
//
// Eligibility is conjunctive and computed independently of the diagnostic:
// every condition must pass. Balance and quantity checks run even when no
// offer is active.
func EvaluateSubmitEligibility(quote *MarketQuote, account *AccountState, draft *OrderDraft, submitting bool) Evaluation {
	if !account.MakerOnline {
		return Evaluation{Eligible: false, Diagnostic: DiagnosticNoMaker}
	}

	qty := draft.Quantity

	terms := ComputeTerms(quote, account, qty)
	balanceTooLow := account.WalletBalance.LessThan(terms.Margin)
	notParcel := !IsEvenlyDivisible(qty, quote.ParcelSize)
	tooHigh := qty > quote.MaxQuantity
	tooLow := qty < quote.MinQuantity || qty <= 0
	noOffer := !account.HasActiveOffer()

	checks := []struct {
		failed     bool
		diagnostic Diagnostic
	}{
		{balanceTooLow, DiagnosticBalanceTooLow},
		{notParcel, DiagnosticNotParcel(quote.ParcelSize)},
		{tooHigh, DiagnosticTooHigh},
		{tooLow, DiagnosticTooLow},
		{noOffer, DiagnosticNoLiquidity},
	}

	diagnostic := DiagnosticNone
	for _, c := range checks {
		if c.failed {
			diagnostic = c.diagnostic
		}
	}

	eligible := !noOffer && !submitting && !balanceTooLow && !tooHigh && !tooLow &&
		qty > 0 && !notParcel

	return Evaluation{Eligible: eligible, Diagnostic: diagnostic}
}
