package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"gestaocombustivel/backend/services/fleet-console/internal/models"
	"gestaocombustivel/backend/services/fleet-console/internal/session"
)

// DriversAPI is the façade subset used by DriversHandlers.
type DriversAPI interface {
	ListDrivers(ctx context.Context, companyID session.CompanyID, filters models.DriverFilters) ([]models.DriverDTO, error)
	RegisterDriverFull(ctx context.Context, form models.DriverRegistration, companyID session.CompanyID) (string, error)
	GetDriver(ctx context.Context, driverID string) (*models.DriverDTO, error)
	UpdateDriver(ctx context.Context, driverID string, update models.DriverUpdate) error
	UpdateDriverStatus(ctx context.Context, driverID string, active bool) error
}

// DriversHandlers serves driver listing, registration and edits.
type DriversHandlers struct {
	api    DriversAPI
	logger *zap.Logger
}

// NewDriversHandlers returns handler struct.
func NewDriversHandlers(api DriversAPI, logger *zap.Logger) *DriversHandlers {
	return &DriversHandlers{api: api, logger: logger}
}

// parseStatus accepts true/false and ativo/inativo; "" and todos mean no filter.
func parseStatus(raw string) (*bool, bool) {
	var v bool
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "todos":
		return nil, true
	case "true", "ativo":
		v = true
	case "false", "inativo":
		v = false
	default:
		return nil, false
	}
	return &v, true
}

func parsePositive(raw string) (int, bool) {
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// List handles GET /drivers.
func (h *DriversHandlers) List(w http.ResponseWriter, r *http.Request) {
	companyID, ok := companyFromRequest(w, r)
	if !ok {
		return
	}
	q := r.URL.Query()
	active, ok := parseStatus(q.Get("status"))
	if !ok {
		writeError(w, http.StatusBadRequest, "status must be true, false or todos")
		return
	}
	page, okPage := parsePositive(q.Get("page"))
	size, okSize := parsePositive(q.Get("pageSize"))
	if !okPage || !okSize {
		writeError(w, http.StatusBadRequest, "page and pageSize must be non-negative integers")
		return
	}

	drivers, err := h.api.ListDrivers(r.Context(), companyID, models.DriverFilters{
		Query:    q.Get("q"),
		Active:   active,
		Page:     page,
		PageSize: size,
	})
	if err != nil {
		writeUpstreamError(w, h.logger, "list_drivers", err)
		return
	}
	writeJSON(w, http.StatusOK, drivers)
}

// Register handles POST /drivers.
func (h *DriversHandlers) Register(w http.ResponseWriter, r *http.Request) {
	companyID, ok := companyFromRequest(w, r)
	if !ok {
		return
	}
	var form models.DriverRegistration
	if !decodeBody(w, r, &form) {
		return
	}
	userID, err := h.api.RegisterDriverFull(r.Context(), form, companyID)
	if err != nil {
		writeUpstreamError(w, h.logger, "register_driver", err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"usuarioId": userID})
}

// Get handles GET /drivers/{id}.
func (h *DriversHandlers) Get(w http.ResponseWriter, r *http.Request) {
	driver, err := h.api.GetDriver(r.Context(), r.PathValue("id"))
	if err != nil {
		writeUpstreamError(w, h.logger, "get_driver", err)
		return
	}
	writeJSON(w, http.StatusOK, driver)
}

// Update handles PUT /drivers/{id}.
func (h *DriversHandlers) Update(w http.ResponseWriter, r *http.Request) {
	var update models.DriverUpdate
	if !decodeBody(w, r, &update) {
		return
	}
	if err := h.api.UpdateDriver(r.Context(), r.PathValue("id"), update); err != nil {
		writeUpstreamError(w, h.logger, "update_driver", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UpdateStatus handles PATCH /drivers/{id}/status.
func (h *DriversHandlers) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status *bool `json:"status"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Status == nil {
		writeError(w, http.StatusBadRequest, "status is required")
		return
	}
	if err := h.api.UpdateDriverStatus(r.Context(), r.PathValue("id"), *req.Status); err != nil {
		writeUpstreamError(w, h.logger, "update_driver_status", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
