package models

import "time"

// RefuelingDTO is the refueling payload (FormularioAbastecimento) sent verbatim.
type RefuelingDTO struct {
	VehicleID  string    `json:"veiculoId"`
	DriverID   string    `json:"motoristaId"`
	Date       time.Time `json:"data"`
	FuelType   string    `json:"tipoCombustivel"`
	Cost       float64   `json:"custo"`
	InvoiceURL string    `json:"notaFiscalUrl"`
	Location   string    `json:"localizacao"`
	StartKm    float64   `json:"kmInicial"`
	Liters     float64   `json:"litros"`
}
