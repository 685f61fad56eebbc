package enums

// BindingState is the lifecycle position of an order-binding session.
type BindingState string

const (
	BindingStateNoItemSelected BindingState = "no_item_selected"
	BindingStateItemSelected   BindingState = "item_selected"
	BindingStateProductPicked  BindingState = "product_picked"
	BindingStateReadyToCommit  BindingState = "ready_to_commit"
	BindingStateCommitted      BindingState = "committed"
	BindingStateFailed         BindingState = "failed"
)

// String implements fmt.Stringer.
func (s BindingState) String() string {
	return string(s)
}

// Terminal reports whether the session reached its committed end state.
// A failed session is not terminal: the working set survives for retry.
func (s BindingState) Terminal() bool {
	return s == BindingStateCommitted
}
