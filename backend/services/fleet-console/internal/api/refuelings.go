package api

import (
	"context"

	"gestaocombustivel/backend/services/fleet-console/internal/models"
)

// RegisterRefueling posts a refueling event. Cost is computed by the caller and
// validated by the backend.
func (f *Facade) RegisterRefueling(ctx context.Context, form models.RefuelingDTO) error {
	_, err := f.http.Post(ctx, "/api/Abastecimento", form)
	return err
}
