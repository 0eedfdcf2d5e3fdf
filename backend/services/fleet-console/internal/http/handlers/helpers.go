package handlers

import (
	"encoding/json"
	"errors"
	"mime"
	"net/http"

	"go.uber.org/zap"

	"gestaocombustivel/backend/services/fleet-console/internal/api"
	"gestaocombustivel/backend/services/fleet-console/internal/clients"
	"gestaocombustivel/backend/services/fleet-console/internal/http/middleware"
	"gestaocombustivel/backend/services/fleet-console/internal/session"
)

const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// decodeBody reads a JSON request body. Anything not declared application/json is
// refused so a cross-site form cannot post here.
func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type")); err != nil || mediaType != "application/json" {
		writeError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return false
	}
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}

// writeUpstreamError maps a façade failure to a gateway response by error kind.
func writeUpstreamError(w http.ResponseWriter, logger *zap.Logger, op string, err error) {
	var partial *api.PartialRegistrationError
	if errors.As(err, &partial) {
		logger.Error("driver registration left an orphaned user", zap.String("usuario_id", partial.UserID), zap.Error(err))
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": partial.Err.Error(), "usuarioId": partial.UserID})
		return
	}
	if errors.Is(err, api.ErrMissingID) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	switch clients.KindOf(err) {
	case clients.KindValidation:
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case clients.KindHTTP:
		writeError(w, clients.StatusOf(err), err.Error())
	case clients.KindDecode:
		logger.Warn("upstream sent an unreadable body", zap.String("op", op), zap.Error(err))
		writeError(w, http.StatusBadGateway, err.Error())
	default:
		logger.Error("upstream call failed", zap.String("op", op), zap.Error(err))
		writeError(w, http.StatusBadGateway, "fleet API unavailable")
	}
}

// companyFromRequest returns the signed-in user's company or writes 403.
func companyFromRequest(w http.ResponseWriter, r *http.Request) (session.CompanyID, bool) {
	sess, ok := middleware.SessionFromContext(r.Context())
	if !ok || sess.User == nil || sess.User.CompanyID.IsZero() {
		writeError(w, http.StatusForbidden, "session has no company")
		return session.CompanyID{}, false
	}
	return sess.User.CompanyID, true
}
