package inventory

import (
	"testing"

	"github.com/mgoulart/sellerdesk-backend/pkg/db/models"
	"github.com/mgoulart/sellerdesk-backend/pkg/enums"
	pkgerrors "github.com/mgoulart/sellerdesk-backend/pkg/errors"
)

func TestAdjustEntry(t *testing.T) {
	t.Parallel()

	next, err := Adjust(models.StockRecord{CurrentQty: 3, ReservedQty: 1}, enums.StockDirectionIn, 5)
	if err != nil {
		t.Fatalf("Adjust: %v", err)
	}
	if next.CurrentQty != 8 || next.ReservedQty != 1 {
		t.Fatalf("unexpected record: %+v", next)
	}
}

func TestAdjustExitRespectsReservationFloor(t *testing.T) {
	t.Parallel()

	// 10 on hand, 4 reserved: at most 6 can leave.
	record := models.StockRecord{CurrentQty: 10, ReservedQty: 4}

	next, err := Adjust(record, enums.StockDirectionOut, 6)
	if err != nil {
		t.Fatalf("Adjust at the floor: %v", err)
	}
	if next.CurrentQty != 4 {
		t.Fatalf("unexpected current: %d", next.CurrentQty)
	}

	_, err = Adjust(record, enums.StockDirectionOut, 7)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeInsufficientAvailable {
		t.Fatalf("expected insufficient available, got %v", err)
	}
	details, ok := typed.Details().(map[string]any)
	if !ok || details["max_reduction"] != 6 {
		t.Fatalf("unexpected details: %+v", typed.Details())
	}
}

func TestAdjustRejectsNonPositiveMagnitude(t *testing.T) {
	t.Parallel()

	for _, magnitude := range []int{0, -3} {
		_, err := Adjust(models.StockRecord{CurrentQty: 5}, enums.StockDirectionIn, magnitude)
		if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
			t.Fatalf("magnitude %d: expected validation error, got %v", magnitude, err)
		}
	}
}

func TestAdjustRejectsUnknownDirection(t *testing.T) {
	t.Parallel()

	_, err := Adjust(models.StockRecord{CurrentQty: 5}, enums.StockDirection("sideways"), 1)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestAdjustExitWithoutReservationsStopsAtZero(t *testing.T) {
	t.Parallel()

	record := models.StockRecord{CurrentQty: 2}
	if _, err := Adjust(record, enums.StockDirectionOut, 2); err != nil {
		t.Fatalf("Adjust to zero: %v", err)
	}

	_, err := Adjust(record, enums.StockDirectionOut, 3)
	if err == nil {
		t.Fatal("expected error draining below zero")
	}
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeInsufficientAvailable {
		t.Fatalf("unexpected error: %v", err)
	}
}
