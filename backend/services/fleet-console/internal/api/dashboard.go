package api

import (
	"context"
	"net/url"

	"gestaocombustivel/backend/services/fleet-console/internal/models"
	"gestaocombustivel/backend/services/fleet-console/internal/session"
)

// isoMillis matches the backend's expected timestamp form, e.g. 2025-08-17T20:53:22.000Z.
const isoMillis = "2006-01-02T15:04:05.000Z07:00"

func dashboardQuery(companyID session.CompanyID, rng models.DateRange) url.Values {
	qs := url.Values{}
	qs.Set("empresaId", companyID.String())
	if !rng.From.IsZero() {
		qs.Set("de", rng.From.UTC().Format(isoMillis))
	}
	if !rng.To.IsZero() {
		qs.Set("ate", rng.To.UTC().Format(isoMillis))
	}
	return qs
}

// GetDashboard returns the KPI summary for companyID within rng.
func (f *Facade) GetDashboard(ctx context.Context, companyID session.CompanyID, rng models.DateRange) (*models.DashboardKPIs, error) {
	resp, err := f.http.Get(ctx, withQuery("/api/Dashboard", dashboardQuery(companyID, rng)))
	if err != nil {
		return nil, err
	}
	var kpis models.DashboardKPIs
	if err := resp.Decode(&kpis); err != nil {
		return nil, err
	}
	return &kpis, nil
}

// GetDashboardMonthly returns the monthly cost/savings series; a malformed reply is
// an empty series.
func (f *Facade) GetDashboardMonthly(ctx context.Context, companyID session.CompanyID, rng models.DateRange) ([]models.MonthlyCostDTO, error) {
	resp, err := f.http.Get(ctx, withQuery("/api/Dashboard/mensal", dashboardQuery(companyID, rng)))
	if err != nil {
		if recoverable(err) {
			return []models.MonthlyCostDTO{}, nil
		}
		return nil, err
	}
	return normalizeList[models.MonthlyCostDTO](resp.Data, f.logger), nil
}
