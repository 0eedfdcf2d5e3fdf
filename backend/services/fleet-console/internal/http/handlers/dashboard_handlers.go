package handlers

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"gestaocombustivel/backend/services/fleet-console/internal/models"
	"gestaocombustivel/backend/services/fleet-console/internal/session"
)

// DashboardAPI is the façade subset used by DashboardHandlers.
type DashboardAPI interface {
	GetDashboard(ctx context.Context, companyID session.CompanyID, rng models.DateRange) (*models.DashboardKPIs, error)
	GetDashboardMonthly(ctx context.Context, companyID session.CompanyID, rng models.DateRange) ([]models.MonthlyCostDTO, error)
}

// DashboardHandlers serves KPI and monthly series reads.
type DashboardHandlers struct {
	api    DashboardAPI
	logger *zap.Logger
}

// NewDashboardHandlers returns handler struct.
func NewDashboardHandlers(api DashboardAPI, logger *zap.Logger) *DashboardHandlers {
	return &DashboardHandlers{api: api, logger: logger}
}

// parseRange reads de/ate as RFC 3339 timestamps or plain dates.
func parseRange(r *http.Request) (models.DateRange, bool) {
	var rng models.DateRange
	for key, dst := range map[string]*time.Time{"de": &rng.From, "ate": &rng.To} {
		raw := r.URL.Query().Get(key)
		if raw == "" {
			continue
		}
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			if t, err = time.Parse(time.DateOnly, raw); err != nil {
				return models.DateRange{}, false
			}
		}
		*dst = t
	}
	return rng, true
}

// KPIs handles GET /dashboard.
func (h *DashboardHandlers) KPIs(w http.ResponseWriter, r *http.Request) {
	companyID, ok := companyFromRequest(w, r)
	if !ok {
		return
	}
	rng, ok := parseRange(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "de/ate must be RFC 3339 timestamps or YYYY-MM-DD")
		return
	}
	kpis, err := h.api.GetDashboard(r.Context(), companyID, rng)
	if err != nil {
		writeUpstreamError(w, h.logger, "dashboard", err)
		return
	}
	writeJSON(w, http.StatusOK, kpis)
}

// Monthly handles GET /dashboard/monthly.
func (h *DashboardHandlers) Monthly(w http.ResponseWriter, r *http.Request) {
	companyID, ok := companyFromRequest(w, r)
	if !ok {
		return
	}
	rng, ok := parseRange(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "de/ate must be RFC 3339 timestamps or YYYY-MM-DD")
		return
	}
	series, err := h.api.GetDashboardMonthly(r.Context(), companyID, rng)
	if err != nil {
		writeUpstreamError(w, h.logger, "dashboard_monthly", err)
		return
	}
	writeJSON(w, http.StatusOK, series)
}
