package binding

import (
	"time"

	"github.com/google/uuid"

	"github.com/mgoulart/sellerdesk-backend/pkg/enums"
	pkgerrors "github.com/mgoulart/sellerdesk-backend/pkg/errors"
)

// Session is the working state of one order-binding flow. It is a plain
// serializable value: every mutation happens through its methods and the
// session store persists the result, so the flow is testable without any
// rendering or transport layer.
//
// Nothing a session does before Commit touches persistent stock.
type Session struct {
	OrderID        uuid.UUID               `json:"order_id"`
	State          enums.BindingState      `json:"state"`
	SelectedItemID *uuid.UUID              `json:"selected_item_id,omitempty"`
	Bindings       map[uuid.UUID]uuid.UUID `json:"bindings"`
	UpdatedAt      time.Time               `json:"updated_at"`
}

// NewSession starts a fresh session for the order.
func NewSession(orderID uuid.UUID) *Session {
	return &Session{
		OrderID:   orderID,
		State:     enums.BindingStateNoItemSelected,
		Bindings:  map[uuid.UUID]uuid.UUID{},
		UpdatedAt: time.Now().UTC(),
	}
}

// SelectItem focuses the session on one order item, clearing any product
// search state carried for a previously selected item.
func (s *Session) SelectItem(itemID uuid.UUID) error {
	if err := s.ensureMutable(); err != nil {
		return err
	}
	s.SelectedItemID = &itemID
	s.State = enums.BindingStateItemSelected
	s.touch()
	return nil
}

// Bind records the (item -> product) mapping in the working set.
// totalItems is the number of items on the order, used to detect when
// every slot is resolved. A product may satisfy at most one order item
// per session; re-binding the same item is allowed.
func (s *Session) Bind(itemID, productID uuid.UUID, totalItems int) error {
	if err := s.CanBind(itemID); err != nil {
		return err
	}
	for boundItem, boundProduct := range s.Bindings {
		if boundProduct == productID && boundItem != itemID {
			return pkgerrors.New(pkgerrors.CodeAlreadyLinked, "product already bound to another order item").
				WithDetails(map[string]any{"product_id": productID, "item_id": boundItem})
		}
	}

	s.Bindings[itemID] = productID
	if len(s.Bindings) >= totalItems {
		s.State = enums.BindingStateReadyToCommit
	} else {
		s.State = enums.BindingStateProductPicked
	}
	s.touch()
	return nil
}

// CanBind reports whether Bind would accept the item, without touching
// the working set. Callers use it to order state validation ahead of
// stock lookups.
func (s *Session) CanBind(itemID uuid.UUID) error {
	if err := s.ensureMutable(); err != nil {
		return err
	}
	if s.SelectedItemID == nil || *s.SelectedItemID != itemID {
		return pkgerrors.New(pkgerrors.CodeValidation, "no order item selected for binding").
			WithDetails(map[string]any{"item_id": itemID})
	}
	return nil
}

// Unbind returns the item's slot to unresolved.
func (s *Session) Unbind(itemID uuid.UUID) error {
	if err := s.ensureMutable(); err != nil {
		return err
	}
	delete(s.Bindings, itemID)
	if len(s.Bindings) == 0 {
		if s.SelectedItemID != nil {
			s.State = enums.BindingStateItemSelected
		} else {
			s.State = enums.BindingStateNoItemSelected
		}
	} else {
		s.State = enums.BindingStateProductPicked
	}
	s.touch()
	return nil
}

// Unresolved lists the order items that still lack a binding.
func (s *Session) Unresolved(itemIDs []uuid.UUID) []uuid.UUID {
	var missing []uuid.UUID
	for _, id := range itemIDs {
		if _, ok := s.Bindings[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing
}

// MarkCommitted finalizes the session after the atomic commit succeeded.
func (s *Session) MarkCommitted() {
	s.State = enums.BindingStateCommitted
	s.touch()
}

// MarkFailed records a rejected commit. The working set is preserved
// unchanged so the user can retry or rebind without redoing selections.
func (s *Session) MarkFailed() {
	s.State = enums.BindingStateFailed
	s.touch()
}

func (s *Session) ensureMutable() error {
	if s.State == enums.BindingStateCommitted {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "binding session already committed").
			WithDetails(map[string]any{"order_id": s.OrderID})
	}
	return nil
}

func (s *Session) touch() {
	s.UpdatedAt = time.Now().UTC()
}
