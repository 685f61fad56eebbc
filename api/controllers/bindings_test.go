package controllers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mgoulart/sellerdesk-backend/internal/binding"
	"github.com/mgoulart/sellerdesk-backend/pkg/enums"
	pkgerrors "github.com/mgoulart/sellerdesk-backend/pkg/errors"
	"github.com/mgoulart/sellerdesk-backend/pkg/logger"
	"github.com/mgoulart/sellerdesk-backend/pkg/types"
)

type stubCoordinator struct {
	getFn    func(ctx context.Context, orderID uuid.UUID) (*binding.SessionView, error)
	commitFn func(ctx context.Context, input binding.CommitInput) (*binding.SessionView, error)
}

func (s *stubCoordinator) GetSession(ctx context.Context, orderID uuid.UUID) (*binding.SessionView, error) {
	return s.getFn(ctx, orderID)
}

func (s *stubCoordinator) SelectItem(ctx context.Context, orderID, itemID uuid.UUID) (*binding.SessionView, error) {
	return nil, pkgerrors.New(pkgerrors.CodeInternal, "not stubbed")
}

func (s *stubCoordinator) BindProduct(ctx context.Context, orderID, itemID, productID uuid.UUID) (*binding.SessionView, error) {
	return nil, pkgerrors.New(pkgerrors.CodeInternal, "not stubbed")
}

func (s *stubCoordinator) Unbind(ctx context.Context, orderID, itemID uuid.UUID) (*binding.SessionView, error) {
	return nil, pkgerrors.New(pkgerrors.CodeInternal, "not stubbed")
}

func (s *stubCoordinator) Commit(ctx context.Context, input binding.CommitInput) (*binding.SessionView, error) {
	return s.commitFn(ctx, input)
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Level: logger.ParseLevel("debug"), Output: io.Discard})
}

func withOrderParam(req *http.Request, orderID string) *http.Request {
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("orderId", orderID)
	ctx := context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx)
	return req.WithContext(ctx)
}

func TestGetBindingSession(t *testing.T) {
	logg := testLogger()
	orderID := uuid.New()

	t.Run("invalid order id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/orders/nope/binding", nil)
		req = withOrderParam(req, "nope")
		rec := httptest.NewRecorder()
		GetBindingSession(&stubCoordinator{}, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 for invalid id, got %d", rec.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		stub := &stubCoordinator{
			getFn: func(ctx context.Context, got uuid.UUID) (*binding.SessionView, error) {
				if got != orderID {
					t.Fatalf("unexpected order id %s", got)
				}
				return &binding.SessionView{OrderID: orderID, State: enums.BindingStateNoItemSelected}, nil
			},
		}
		req := httptest.NewRequest(http.MethodGet, "/api/v1/orders/"+orderID.String()+"/binding", nil)
		req = withOrderParam(req, orderID.String())
		rec := httptest.NewRecorder()
		GetBindingSession(stub, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}

		var body types.SuccessEnvelope
		if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
			t.Fatalf("failed to decode envelope: %v", err)
		}
		data := body.Data.(map[string]any)
		if data["state"] != string(enums.BindingStateNoItemSelected) {
			t.Fatalf("unexpected state %v", data["state"])
		}
	})
}

func TestCommitBindings(t *testing.T) {
	logg := testLogger()
	orderID := uuid.New()
	storageID := uuid.New()

	t.Run("missing storage id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/orders/"+orderID.String()+"/binding/commit", strings.NewReader(`{}`))
		req = withOrderParam(req, orderID.String())
		rec := httptest.NewRecorder()
		CommitBindings(&stubCoordinator{}, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 without storage id, got %d", rec.Code)
		}
	})

	t.Run("commit failure surfaces as conflict", func(t *testing.T) {
		stub := &stubCoordinator{
			commitFn: func(ctx context.Context, input binding.CommitInput) (*binding.SessionView, error) {
				return nil, pkgerrors.New(pkgerrors.CodeCommitFailure, "stock recheck rejected the batch")
			},
		}
		body := `{"storage_id":"` + storageID.String() + `"}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/orders/"+orderID.String()+"/binding/commit", strings.NewReader(body))
		req = withOrderParam(req, orderID.String())
		rec := httptest.NewRecorder()
		CommitBindings(stub, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409 on commit failure, got %d", rec.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		stub := &stubCoordinator{
			commitFn: func(ctx context.Context, input binding.CommitInput) (*binding.SessionView, error) {
				if input.StorageID != storageID {
					t.Fatalf("unexpected storage id %s", input.StorageID)
				}
				return &binding.SessionView{OrderID: orderID, State: enums.BindingStateCommitted}, nil
			},
		}
		body := `{"storage_id":"` + storageID.String() + `"}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/orders/"+orderID.String()+"/binding/commit", strings.NewReader(body))
		req = withOrderParam(req, orderID.String())
		rec := httptest.NewRecorder()
		CommitBindings(stub, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	})
}
