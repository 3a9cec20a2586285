package domain

import "strconv"

// OrderDraft is the user-edited order quantity for one form instance.
// The edited latch is an explicit flag rather than a value comparison, so a
// user typing the current default still counts as an edit.
type OrderDraft struct {
	Quantity   int64 `json:"quantity"`
	userEdited bool
}

// NewOrderDraft creates a draft starting at zero, before the first quote lands.
func NewOrderDraft() *OrderDraft {
	return &OrderDraft{}
}

// UserEdited reports whether the user has taken over the quantity field.
func (d *OrderDraft) UserEdited() bool {
	return d.userEdited
}

// ApplyQuoteRefresh syncs the quantity to the refreshed offer minimum.
// No-op once the user has edited: the latch only clears on Reset.
func (d *OrderDraft) ApplyQuoteRefresh(newMinQuantity int64) {
	if d.userEdited {
		return
	}
	d.Quantity = newMinQuantity
}

// SetQuantityInput applies raw user input. Anything that does not parse as an
// integer coerces to 0 so the form keeps giving immediate feedback instead of
// rejecting keystrokes. Latches userEdited permanently for this draft.
func (d *OrderDraft) SetQuantityInput(raw string) {
	qty, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		qty = 0
	}
	d.Quantity = qty
	d.userEdited = true
}

// Reset returns the draft to the safe default after the confirmation dialog
// is dismissed: quantity back to the offer minimum, latch cleared.
func (d *OrderDraft) Reset(minQuantity int64) {
	d.Quantity = minQuantity
	d.userEdited = false
}
