package api

import (
	"context"

	"gestaocombustivel/backend/services/fleet-console/internal/models"
	"gestaocombustivel/backend/services/fleet-console/internal/session"
)

// ListVehicles lists the vehicles of companyID; a malformed reply is an empty list.
func (f *Facade) ListVehicles(ctx context.Context, companyID session.CompanyID) ([]models.VehicleDTO, error) {
	id, err := segment(companyID.String())
	if err != nil {
		return nil, err
	}
	resp, err := f.http.Get(ctx, "/api/veiculos/empresa/"+id)
	if err != nil {
		if recoverable(err) {
			return []models.VehicleDTO{}, nil
		}
		return nil, err
	}
	return normalizeList[models.VehicleDTO](resp.Data, f.logger), nil
}
