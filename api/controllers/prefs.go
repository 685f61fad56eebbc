package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/mgoulart/sellerdesk-backend/api/responses"
	"github.com/mgoulart/sellerdesk-backend/api/validators"
	"github.com/mgoulart/sellerdesk-backend/internal/prefs"
	pkgerrors "github.com/mgoulart/sellerdesk-backend/pkg/errors"
	"github.com/mgoulart/sellerdesk-backend/pkg/logger"
)

const userIDHeader = "X-User-Id"

// defaultUserID keeps preferences usable on single-operator installs
// before any identity layer exists.
const defaultUserID = "default"

type setPreferenceRequest struct {
	Value string `json:"value" validate:"required"`
}

func prefsIdentity(r *http.Request) (string, string, error) {
	userID := strings.TrimSpace(r.Header.Get(userIDHeader))
	if userID == "" {
		userID = defaultUserID
	}
	key := strings.TrimSpace(chi.URLParam(r, "key"))
	if key == "" {
		return "", "", pkgerrors.New(pkgerrors.CodeValidation, "preference key missing")
	}
	return userID, key, nil
}

// GetPreference reads one dashboard preference for the calling user.
func GetPreference(store prefs.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if store == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "preference store unavailable"))
			return
		}

		userID, key, err := prefsIdentity(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		value, found, err := store.Get(r.Context(), userID, key)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if !found {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "preference not set"))
			return
		}

		responses.WriteSuccess(w, map[string]string{"key": key, "value": value})
	}
}

// SetPreference stores one dashboard preference for the calling user.
func SetPreference(store prefs.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if store == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "preference store unavailable"))
			return
		}

		userID, key, err := prefsIdentity(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload setPreferenceRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := store.Set(r.Context(), userID, key, payload.Value); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"key": key, "value": payload.Value})
	}
}

// DeletePreference clears one dashboard preference.
func DeletePreference(store prefs.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if store == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "preference store unavailable"))
			return
		}

		userID, key, err := prefsIdentity(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := store.Delete(r.Context(), userID, key); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"key": key, "status": "deleted"})
	}
}
