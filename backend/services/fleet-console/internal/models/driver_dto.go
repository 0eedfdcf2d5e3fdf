package models

// DriverDTO mirrors ReadMotoristaDto returned by the backend.
type DriverDTO struct {
	ID            string `json:"motoristaId"`
	Name          string `json:"nome"`
	Email         string `json:"email"`
	CPF           string `json:"cpf"`
	LicenseNumber string `json:"numeroCnh"`
	LicenseExpiry string `json:"validadeCnh"`
	LicenseClass  string `json:"categoriaCnh"`
	LinkStatus    string `json:"statusVinculo,omitempty"`
	LinkedAt      string `json:"dataVinculo,omitempty"`
	Active        *bool  `json:"status,omitempty"`
	VehicleID     string `json:"veiculoId,omitempty"`
}

// IsActive treats a missing status flag as active.
func (d DriverDTO) IsActive() bool {
	return d.Active == nil || *d.Active
}

// DriverRegistration is the manager's form for a new driver (FormularioMotoristaCompleto).
type DriverRegistration struct {
	Name          string `json:"nome"`
	Email         string `json:"email"`
	CPF           string `json:"cpf"`
	Password      string `json:"senha"`
	LicenseNumber string `json:"numeroCnh"`
	LicenseExpiry string `json:"validadeCnh"`
	LicenseClass  string `json:"categoriaCnh"`
}

// DriverUpdate is a partial driver form; empty fields are not sent.
type DriverUpdate struct {
	Name          string `json:"nome,omitempty"`
	Email         string `json:"email,omitempty"`
	CPF           string `json:"cpf,omitempty"`
	Password      string `json:"senha,omitempty"`
	LicenseNumber string `json:"numeroCnh,omitempty"`
	LicenseExpiry string `json:"validadeCnh,omitempty"`
	LicenseClass  string `json:"categoriaCnh,omitempty"`
}

// DriverFilters narrows a driver listing. Zero values are left out of the query.
type DriverFilters struct {
	Query    string
	Active   *bool
	Page     int
	PageSize int
}
