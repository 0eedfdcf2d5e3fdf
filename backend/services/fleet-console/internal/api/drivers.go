package api

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"gestaocombustivel/backend/services/fleet-console/internal/clients"
	"gestaocombustivel/backend/services/fleet-console/internal/models"
	"gestaocombustivel/backend/services/fleet-console/internal/session"
)

// driverUserRole is the account type created for drivers in step 1 of registration.
const driverUserRole = "MOTORISTA"

// ErrPartialRegistration marks a driver registration whose user account was created but
// whose driver record was not. Nothing is rolled back.
var ErrPartialRegistration = errors.New("api: driver registration incomplete")

// PartialRegistrationError carries the orphaned user account id.
type PartialRegistrationError struct {
	UserID string
	Err    error
}

func (e *PartialRegistrationError) Error() string {
	return fmt.Sprintf("user %q created but driver record failed: %v", e.UserID, e.Err)
}

func (e *PartialRegistrationError) Unwrap() error { return e.Err }

// Is matches ErrPartialRegistration.
func (e *PartialRegistrationError) Is(target error) bool {
	return target == ErrPartialRegistration
}

// RegisterDriverFull creates the user account and then the driver record referencing
// it. The two calls are not atomic: when the second fails the returned id names the
// account that now exists without a driver, and err is a *PartialRegistrationError.
func (f *Facade) RegisterDriverFull(ctx context.Context, form models.DriverRegistration, companyID session.CompanyID) (string, error) {
	created, err := f.http.Post(ctx, "/api/Usuario/registrar", map[string]string{
		"empresaId":   companyID.String(),
		"nome":        form.Name,
		"email":       form.Email,
		"cpf":         form.CPF,
		"senha":       form.Password,
		"tipoUsuario": driverUserRole,
	})
	if err != nil {
		return "", err
	}

	userID := ""
	if created != nil {
		userID = gjson.GetBytes(created.Data, "id").String()
	}
	if userID == "" {
		return "", &PartialRegistrationError{Err: clients.NewValidationError("user registration returned no id")}
	}

	qs := url.Values{}
	qs.Set("usuarioId", userID)
	_, err = f.http.Post(ctx, withQuery("/api/motorista/registrar", qs), map[string]string{
		"numeroCnh":    form.LicenseNumber,
		"validadeCnh":  form.LicenseExpiry,
		"categoriaCnh": form.LicenseClass,
	})
	if err != nil {
		return userID, &PartialRegistrationError{UserID: userID, Err: err}
	}
	return userID, nil
}

// ListDrivers lists the drivers of companyID. Filters that are unset never reach the
// query string; a malformed reply is an empty list.
func (f *Facade) ListDrivers(ctx context.Context, companyID session.CompanyID, filters models.DriverFilters) ([]models.DriverDTO, error) {
	id, err := segment(companyID.String())
	if err != nil {
		return nil, err
	}

	qs := url.Values{}
	if q := strings.TrimSpace(filters.Query); q != "" {
		qs.Set("q", q)
	}
	if filters.Active != nil {
		qs.Set("status", strconv.FormatBool(*filters.Active))
	}
	if filters.Page > 0 {
		qs.Set("page", strconv.Itoa(filters.Page))
	}
	if filters.PageSize > 0 {
		qs.Set("pageSize", strconv.Itoa(filters.PageSize))
	}

	resp, err := f.http.Get(ctx, withQuery("/api/empresa-motoristas/"+id+"/lista", qs))
	if err != nil {
		if recoverable(err) {
			return []models.DriverDTO{}, nil
		}
		return nil, err
	}
	return normalizeList[models.DriverDTO](resp.Data, f.logger), nil
}

// GetDriver fetches one driver.
func (f *Facade) GetDriver(ctx context.Context, driverID string) (*models.DriverDTO, error) {
	id, err := segment(driverID)
	if err != nil {
		return nil, err
	}
	resp, err := f.http.Get(ctx, "/api/motorista/"+id)
	if err != nil {
		return nil, err
	}
	var driver models.DriverDTO
	if err := resp.Decode(&driver); err != nil {
		return nil, err
	}
	return &driver, nil
}

// UpdateDriver sends the non-empty fields of update.
func (f *Facade) UpdateDriver(ctx context.Context, driverID string, update models.DriverUpdate) error {
	id, err := segment(driverID)
	if err != nil {
		return err
	}
	_, err = f.http.Put(ctx, "/api/motorista/"+id, update)
	return err
}

// UpdateDriverStatus sets the driver's active flag.
func (f *Facade) UpdateDriverStatus(ctx context.Context, driverID string, active bool) error {
	id, err := segment(driverID)
	if err != nil {
		return err
	}
	_, err = f.http.Patch(ctx, "/api/motorista/"+id+"/status", map[string]bool{"status": active})
	return err
}
