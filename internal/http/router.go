// Package http wires handlers, middleware and routes into the mux router.
package http

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"showroom-backend/internal/handlers"
	"showroom-backend/internal/health"
	"showroom-backend/internal/middleware"
)

type RouterDeps struct {
	Auth      *middleware.AuthMiddleware
	AuthH     *handlers.AuthHandler
	Users     *handlers.UserHandler
	Vehicles  *handlers.VehicleHandler
	Customers *handlers.CustomerHandler
	Sales     *handlers.SaleHandler
	Analytics *handlers.AnalyticsHandler
	Reports   *handlers.ReportHandler
	Health    *health.Checker
}

// NewRouter builds the full route tree. Vehicle reads are open to every
// approved user; all other business routes require the admin role.
func NewRouter(d RouterDeps) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.Metrics)

	// Per-route guards. Mixing guarded methods on one path rules out a
	// shared subrouter, so each route wraps its own chain.
	approved := func(h http.HandlerFunc) http.Handler {
		return d.Auth.Authenticate(h)
	}
	admin := func(h http.HandlerFunc) http.Handler {
		return d.Auth.Authenticate(d.Auth.RequireAdmin(h))
	}

	// Operational endpoints, no auth.
	r.HandleFunc("/health", d.Health.Basic).Methods(http.MethodGet)
	r.HandleFunc("/health/ready", d.Health.Ready).Methods(http.MethodGet)
	r.HandleFunc("/health/detailed", d.Health.Detailed).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()

	// Public auth surface.
	api.HandleFunc("/auth/signup", d.AuthH.Signup).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", d.AuthH.Login).Methods(http.MethodPost)
	api.Handle("/auth/me", approved(d.AuthH.Me)).Methods(http.MethodGet)

	// Inventory reads are the sales role's whole surface.
	api.Handle("/vehicles", approved(d.Vehicles.List)).Methods(http.MethodGet)
	api.Handle("/vehicles/{id:[0-9]+}", approved(d.Vehicles.Get)).Methods(http.MethodGet)

	api.Handle("/vehicles", admin(d.Vehicles.Create)).Methods(http.MethodPost)
	api.Handle("/vehicles/{id:[0-9]+}", admin(d.Vehicles.Update)).Methods(http.MethodPut)
	api.Handle("/vehicles/{id:[0-9]+}", admin(d.Vehicles.Delete)).Methods(http.MethodDelete)
	api.Handle("/vehicles/{id:[0-9]+}/image", admin(d.Vehicles.UploadImage)).Methods(http.MethodPost)

	api.Handle("/customers", admin(d.Customers.List)).Methods(http.MethodGet)
	api.Handle("/customers", admin(d.Customers.Create)).Methods(http.MethodPost)
	api.Handle("/customers/{id:[0-9]+}", admin(d.Customers.Get)).Methods(http.MethodGet)

	api.Handle("/sales", admin(d.Sales.List)).Methods(http.MethodGet)
	api.Handle("/sales", admin(d.Sales.Record)).Methods(http.MethodPost)
	api.Handle("/sales/customer/{id:[0-9]+}", admin(d.Sales.ListByCustomer)).Methods(http.MethodGet)

	api.Handle("/analytics", admin(d.Analytics.Snapshot)).Methods(http.MethodGet)

	api.Handle("/reports/sales.pdf", admin(d.Reports.SalesPDF)).Methods(http.MethodGet)
	api.Handle("/reports/sales.csv", admin(d.Reports.SalesCSV)).Methods(http.MethodGet)

	api.Handle("/users", admin(d.Users.List)).Methods(http.MethodGet)
	api.Handle("/users/pending", admin(d.Users.ListPending)).Methods(http.MethodGet)
	api.Handle("/users/{id:[0-9]+}/approve", admin(d.Users.Approve)).Methods(http.MethodPatch)
	api.Handle("/users/{id:[0-9]+}/role", admin(d.Users.ChangeRole)).Methods(http.MethodPatch)
	api.Handle("/users/{id:[0-9]+}", admin(d.Users.Reject)).Methods(http.MethodDelete)

	return r
}
