package domain

// FeedUpdate is one message from the daemon feed. Exactly one field is set.
// Every payload is a full replacement snapshot, never a delta.
type FeedUpdate struct {
	Quote   *MarketQuote
	Account *AccountState
}
