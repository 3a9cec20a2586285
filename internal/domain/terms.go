package domain

import "github.com/shopspring/decimal"

// DerivedTerms are the economic terms implied by the drafted quantity.
type DerivedTerms struct {
	Margin          decimal.Decimal `json:"margin"`
	FirstFundingFee decimal.Decimal `json:"first_funding_fee"` // Fee for the first settlement interval.
}

// ComputeTerms derives margin and first-interval funding fee from the quote,
// account and drafted quantity. Pure and total: ParcelSize > 0 is guaranteed
// by the quote source, so the division never faults.
func ComputeTerms(quote *MarketQuote, account *AccountState, quantity int64) DerivedTerms {
	parcels := decimal.NewFromInt(quantity).Div(decimal.NewFromInt(quote.ParcelSize))
	return DerivedTerms{
		Margin:          parcels.Mul(account.MarginPerParcel),
		FirstFundingFee: parcels.Mul(quote.FundingFeePerParcel),
	}
}

// IsEvenlyDivisible reports whether quantity is an exact multiple of the
// parcel size. True for quantity 0; negative quantities follow the sign of
// the modulo.
func IsEvenlyDivisible(quantity, parcelSize int64) bool {
	return quantity%parcelSize == 0
}
