package models

import "time"

// DashboardKPIs is the KPI summary for a company.
type DashboardKPIs struct {
	MonthlySavings float64 `json:"economiaMensal"`
	MonthlyRefuels float64 `json:"abastecimentosMensal"`
	ActiveVehicles int     `json:"veiculosAtivos"`
	ActiveDrivers  int     `json:"motoristasAtivos"`
}

// MonthlyCostDTO is one point of the monthly cost/savings series.
type MonthlyCostDTO struct {
	Month     string  `json:"mes"`
	TotalCost float64 `json:"totalCusto"`
	Savings   float64 `json:"economia"`
}

// DateRange bounds dashboard queries; zero ends are not sent.
type DateRange struct {
	From time.Time
	To   time.Time
}
