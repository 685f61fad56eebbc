package inventory

import (
	"github.com/mgoulart/sellerdesk-backend/pkg/db/models"
	"github.com/mgoulart/sellerdesk-backend/pkg/enums"
	pkgerrors "github.com/mgoulart/sellerdesk-backend/pkg/errors"
)

// Adjust applies a manual entry/exit delta to a single stock record and
// returns the updated copy. It performs no I/O; callers persist the
// result through the repository's conditional update so the invariant is
// re-checked at the point of write.
func Adjust(record models.StockRecord, direction enums.StockDirection, magnitude int) (models.StockRecord, error) {
	if magnitude <= 0 {
		return models.StockRecord{}, pkgerrors.New(pkgerrors.CodeValidation, "adjustment magnitude must be positive").
			WithDetails(map[string]any{"magnitude": magnitude})
	}
	if !direction.IsValid() {
		return models.StockRecord{}, pkgerrors.New(pkgerrors.CodeValidation, "unknown adjustment direction").
			WithDetails(map[string]any{"direction": direction.String()})
	}

	next := record
	switch direction {
	case enums.StockDirectionIn:
		next.CurrentQty = record.CurrentQty + magnitude
	case enums.StockDirectionOut:
		next.CurrentQty = record.CurrentQty - magnitude
		if next.CurrentQty < record.ReservedQty {
			return models.StockRecord{}, pkgerrors.New(pkgerrors.CodeInsufficientAvailable, "reduction would breach reserved stock").
				WithDetails(map[string]any{
					"current":       record.CurrentQty,
					"reserved":      record.ReservedQty,
					"max_reduction": record.CurrentQty - record.ReservedQty,
				})
		}
	}

	// Unreachable given the reservation floor check, validated independently.
	if next.CurrentQty < 0 {
		return models.StockRecord{}, pkgerrors.New(pkgerrors.CodeNegativeStock, "stock quantity cannot go negative").
			WithDetails(map[string]any{"current": record.CurrentQty, "magnitude": magnitude})
	}

	return next, nil
}
