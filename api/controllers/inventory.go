package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/mgoulart/sellerdesk-backend/api/responses"
	"github.com/mgoulart/sellerdesk-backend/api/validators"
	"github.com/mgoulart/sellerdesk-backend/internal/inventory"
	"github.com/mgoulart/sellerdesk-backend/pkg/enums"
	pkgerrors "github.com/mgoulart/sellerdesk-backend/pkg/errors"
	"github.com/mgoulart/sellerdesk-backend/pkg/logger"
)

type adjustStockRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	StorageID uuid.UUID `json:"storage_id" validate:"required"`
	Direction string    `json:"direction" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,gt=0"`
	Actor     *string   `json:"actor,omitempty"`
	Note      *string   `json:"note,omitempty"`
}

// AdjustStock applies one manual entry or exit against a location.
func AdjustStock(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inventory service unavailable"))
			return
		}

		var payload adjustStockRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		direction, err := enums.ParseStockDirection(payload.Direction)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid stock direction"))
			return
		}

		view, err := svc.AdjustStock(r.Context(), inventory.AdjustStockInput{
			ProductID: payload.ProductID,
			StorageID: payload.StorageID,
			Direction: direction,
			Magnitude: payload.Quantity,
			Actor:     payload.Actor,
			Note:      payload.Note,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, view)
	}
}

// GetProductStock returns the per-location rows plus the aggregate
// position of one product.
func GetProductStock(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inventory service unavailable"))
			return
		}

		productID, err := validators.PathUUID(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		stock, err := svc.GetProductStock(r.Context(), productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, stock)
	}
}

// ListStockMovements returns the audit trail for one product.
func ListStockMovements(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inventory service unavailable"))
			return
		}

		productID, err := validators.PathUUID(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		movements, err := svc.ListMovements(r.Context(), productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, movements)
	}
}
