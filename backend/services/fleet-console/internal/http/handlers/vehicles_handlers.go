package handlers

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"gestaocombustivel/backend/services/fleet-console/internal/models"
	"gestaocombustivel/backend/services/fleet-console/internal/session"
)

// VehiclesAPI is the façade subset used by VehiclesHandlers.
type VehiclesAPI interface {
	ListVehicles(ctx context.Context, companyID session.CompanyID) ([]models.VehicleDTO, error)
}

// VehiclesHandlers serves the vehicle list.
type VehiclesHandlers struct {
	api    VehiclesAPI
	logger *zap.Logger
}

// NewVehiclesHandlers returns handler struct.
func NewVehiclesHandlers(api VehiclesAPI, logger *zap.Logger) *VehiclesHandlers {
	return &VehiclesHandlers{api: api, logger: logger}
}

// List handles GET /vehicles.
func (h *VehiclesHandlers) List(w http.ResponseWriter, r *http.Request) {
	companyID, ok := companyFromRequest(w, r)
	if !ok {
		return
	}
	vehicles, err := h.api.ListVehicles(r.Context(), companyID)
	if err != nil {
		writeUpstreamError(w, h.logger, "list_vehicles", err)
		return
	}
	writeJSON(w, http.StatusOK, vehicles)
}
