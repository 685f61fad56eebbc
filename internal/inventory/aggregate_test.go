package inventory

import (
	"testing"

	"github.com/google/uuid"

	"github.com/mgoulart/sellerdesk-backend/pkg/db/models"
	"github.com/mgoulart/sellerdesk-backend/pkg/enums"
)

func TestAggregateSumsAcrossLocations(t *testing.T) {
	t.Parallel()

	productID := uuid.New()
	records := []models.StockRecord{
		{ProductID: productID, StorageID: uuid.New(), CurrentQty: 10, ReservedQty: 4},
		{ProductID: productID, StorageID: uuid.New(), CurrentQty: 5, ReservedQty: 1},
		{ProductID: productID, StorageID: uuid.New()},
	}

	s := Aggregate(records)
	if s.Current != 15 || s.Reserved != 5 || s.Available != 10 {
		t.Fatalf("unexpected summary: %+v", s)
	}
}

func TestAggregateEmptyIsZero(t *testing.T) {
	t.Parallel()

	s := Aggregate(nil)
	if s.Current != 0 || s.Reserved != 0 || s.Available != 0 {
		t.Fatalf("unexpected summary: %+v", s)
	}
	if s.Status() != enums.StockStatusCritical {
		t.Fatalf("zero stock must classify as critical, got %s", s.Status())
	}
}

func TestStatusForThresholds(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		current  int
		reserved int
		want     enums.StockStatus
	}{
		{"fully reserved", 5, 5, enums.StockStatusCritical},
		{"over reserved", 3, 5, enums.StockStatusCritical},
		{"at threshold", 10, 0, enums.StockStatusLow},
		{"just below threshold", 12, 3, enums.StockStatusLow},
		{"above threshold", 11, 0, enums.StockStatusNormal},
		{"large reserve still normal", 100, 50, enums.StockStatusNormal},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := StatusFor(tc.current, tc.reserved); got != tc.want {
				t.Fatalf("StatusFor(%d, %d) = %s, want %s", tc.current, tc.reserved, got, tc.want)
			}
		})
	}
}
