package models

// VehicleDTO mirrors Veiculo.
type VehicleDTO struct {
	ID    string `json:"id"`
	Plate string `json:"placa"`
	Model string `json:"modelo"`
	Brand string `json:"marca"`
}
