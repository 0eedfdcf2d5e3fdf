package handlers

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"gestaocombustivel/backend/services/fleet-console/internal/models"
)

// RefuelingsAPI is the façade subset used by RefuelingsHandlers.
type RefuelingsAPI interface {
	RegisterRefueling(ctx context.Context, form models.RefuelingDTO) error
}

// RefuelingsHandlers serves refueling registration.
type RefuelingsHandlers struct {
	api    RefuelingsAPI
	logger *zap.Logger
}

// NewRefuelingsHandlers returns handler struct.
func NewRefuelingsHandlers(api RefuelingsAPI, logger *zap.Logger) *RefuelingsHandlers {
	return &RefuelingsHandlers{api: api, logger: logger}
}

// Register handles POST /refuelings.
func (h *RefuelingsHandlers) Register(w http.ResponseWriter, r *http.Request) {
	var form models.RefuelingDTO
	if !decodeBody(w, r, &form) {
		return
	}
	if err := h.api.RegisterRefueling(r.Context(), form); err != nil {
		writeUpstreamError(w, h.logger, "register_refueling", err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}
