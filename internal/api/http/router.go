package http

import (
	"github.com/gorilla/mux"

	"carrental-backend/internal/security"
	"carrental-backend/internal/service"
)

// NewRouter builds the JSON API. Route names key the security table in
// config.EndpointSecurityConfig.
func NewRouter(rentalSvc service.CarRentalService, tm security.TokenManager, notifier service.Notifier) *mux.Router {
	router := mux.NewRouter()
	api := router.PathPrefix("/api/v1").Subrouter()
	api.Use(RequestLogger, NewAuthMiddleware(tm).Handler)

	auth := NewAuthHandler(rentalSvc, tm)
	api.HandleFunc("/auth/register", auth.Register).Methods("POST").Name("auth.register")
	api.HandleFunc("/auth/login", auth.Login).Methods("POST").Name("auth.login")
	api.HandleFunc("/me", auth.Me).Methods("GET").Name("me.get")

	vehicles := NewVehicleHandler(rentalSvc)
	api.HandleFunc("/vehicles", vehicles.List).Methods("GET").Name("vehicles.list")
	api.HandleFunc("/vehicles", vehicles.Add).Methods("POST").Name("vehicles.add")
	api.HandleFunc("/vehicles/reserved", vehicles.Reserved).Methods("GET").Name("vehicles.reserved")
	api.HandleFunc("/vehicles/{id}", vehicles.Remove).Methods("DELETE").Name("vehicles.remove")

	rentals := NewRentalHandler(rentalSvc, notifier)
	api.HandleFunc("/rentals", rentals.Rent).Methods("POST").Name("rentals.rent")
	api.HandleFunc("/rentals/return", rentals.Return).Methods("POST").Name("rentals.return")
	api.HandleFunc("/rentals/current", rentals.Current).Methods("GET").Name("rentals.current")
	api.HandleFunc("/rentals/history", rentals.History).Methods("GET").Name("rentals.history")
	api.HandleFunc("/rentals/active", rentals.Active).Methods("GET").Name("rentals.active")
	api.HandleFunc("/account/funds", rentals.AddFunds).Methods("POST").Name("account.funds")

	admin := NewAdminHandler(rentalSvc)
	api.HandleFunc("/admin/report", admin.Report).Methods("GET").Name("admin.report")
	api.HandleFunc("/admin/customers", admin.Customers).Methods("GET").Name("admin.customers")

	return router
}
