package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/mgoulart/sellerdesk-backend/api/responses"
	"github.com/mgoulart/sellerdesk-backend/api/validators"
	"github.com/mgoulart/sellerdesk-backend/internal/binding"
	pkgerrors "github.com/mgoulart/sellerdesk-backend/pkg/errors"
	"github.com/mgoulart/sellerdesk-backend/pkg/logger"
)

type selectItemRequest struct {
	ItemID uuid.UUID `json:"item_id" validate:"required"`
}

type bindProductRequest struct {
	ItemID    uuid.UUID `json:"item_id" validate:"required"`
	ProductID uuid.UUID `json:"product_id" validate:"required"`
}

type commitBindingsRequest struct {
	StorageID uuid.UUID `json:"storage_id" validate:"required"`
	Actor     *string   `json:"actor,omitempty"`
}

// GetBindingSession returns the working state for an order, starting a
// fresh session when none exists yet.
func GetBindingSession(coord binding.Coordinator, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if coord == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "binding coordinator unavailable"))
			return
		}

		orderID, err := validators.PathUUID(r, "orderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		session, err := coord.GetSession(r.Context(), orderID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, session)
	}
}

// SelectBindingItem focuses one order item for product picking.
func SelectBindingItem(coord binding.Coordinator, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if coord == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "binding coordinator unavailable"))
			return
		}

		orderID, err := validators.PathUUID(r, "orderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload selectItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		session, err := coord.SelectItem(r.Context(), orderID, payload.ItemID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, session)
	}
}

// BindProduct assigns a catalog product to the selected order item.
func BindProduct(coord binding.Coordinator, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if coord == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "binding coordinator unavailable"))
			return
		}

		orderID, err := validators.PathUUID(r, "orderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload bindProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		session, err := coord.BindProduct(r.Context(), orderID, payload.ItemID, payload.ProductID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, session)
	}
}

// UnbindProduct clears an item's binding and reopens its slot.
func UnbindProduct(coord binding.Coordinator, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if coord == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "binding coordinator unavailable"))
			return
		}

		orderID, err := validators.PathUUID(r, "orderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload selectItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		session, err := coord.Unbind(r.Context(), orderID, payload.ItemID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, session)
	}
}

// CommitBindings runs the all-or-nothing reservation commit for a fully
// resolved session.
func CommitBindings(coord binding.Coordinator, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if coord == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "binding coordinator unavailable"))
			return
		}

		orderID, err := validators.PathUUID(r, "orderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload commitBindingsRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		session, err := coord.Commit(r.Context(), binding.CommitInput{
			OrderID:   orderID,
			StorageID: payload.StorageID,
			Actor:     payload.Actor,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, session)
	}
}
