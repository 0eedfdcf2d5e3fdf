package httpserver

import (
	"net/http"

	"gestaocombustivel/backend/services/fleet-console/internal/http/handlers"
	"gestaocombustivel/backend/services/fleet-console/internal/http/middleware"
)

// RouterDeps collects handler dependencies.
type RouterDeps struct {
	SessionHandlers    *handlers.SessionHandlers
	DashboardHandlers  *handlers.DashboardHandlers
	DriversHandlers    *handlers.DriversHandlers
	VehiclesHandlers   *handlers.VehiclesHandlers
	RefuelingsHandlers *handlers.RefuelingsHandlers
	HealthHandler      http.HandlerFunc
}

// NewRouter wires gateway routes. Everything except health and session endpoints
// goes through requireSession.
func NewRouter(deps RouterDeps, requireSession func(http.Handler) http.Handler) http.Handler {
	mux := http.NewServeMux()

	mux.Handle("GET /health", deps.HealthHandler)

	mux.HandleFunc("GET /session", deps.SessionHandlers.State)
	mux.HandleFunc("POST /session/login", deps.SessionHandlers.Login)
	mux.HandleFunc("POST /session/logout", deps.SessionHandlers.Logout)

	authenticated := func(handler http.HandlerFunc) http.Handler {
		return middleware.Chain(handler, requireSession)
	}

	mux.Handle("GET /dashboard", authenticated(deps.DashboardHandlers.KPIs))
	mux.Handle("GET /dashboard/monthly", authenticated(deps.DashboardHandlers.Monthly))

	mux.Handle("GET /drivers", authenticated(deps.DriversHandlers.List))
	mux.Handle("POST /drivers", authenticated(deps.DriversHandlers.Register))
	mux.Handle("GET /drivers/{id}", authenticated(deps.DriversHandlers.Get))
	mux.Handle("PUT /drivers/{id}", authenticated(deps.DriversHandlers.Update))
	mux.Handle("PATCH /drivers/{id}/status", authenticated(deps.DriversHandlers.UpdateStatus))

	mux.Handle("GET /vehicles", authenticated(deps.VehiclesHandlers.List))
	mux.Handle("POST /refuelings", authenticated(deps.RefuelingsHandlers.Register))

	return mux
}
