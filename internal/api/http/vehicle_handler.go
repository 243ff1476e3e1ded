package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/service"
)

type VehicleHandler struct {
	rentalSvc service.CarRentalService
}

func NewVehicleHandler(rentalSvc service.CarRentalService) *VehicleHandler {
	return &VehicleHandler{rentalSvc: rentalSvc}
}

// List returns the vehicles a caller may book. Admins see the whole fleet.
// ?sort=daily_rate orders by price.
func (h *VehicleHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var (
		vehicles []*domain.Vehicle
		err      error
	)
	if claims, ok := ClaimsFromContext(ctx); ok && claims.Role == string(domain.UserRoleAdmin) {
		vehicles, err = h.rentalSvc.ListVehicles(ctx)
	} else {
		vehicles, err = h.rentalSvc.ListAvailableVehicles(ctx)
	}
	if err != nil {
		writeError(w, err)
		return
	}

	switch r.URL.Query().Get("sort") {
	case "":
	case "daily_rate":
		domain.SortByDailyRate(vehicles)
	default:
		writeErrorStatus(w, http.StatusBadRequest, domain.CodeGeneric, "unsupported sort: "+r.URL.Query().Get("sort"))
		return
	}
	writeJSON(w, http.StatusOK, MapDomainVehiclesToResponse(vehicles))
}

func (h *VehicleHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req service.VehicleInput
	if !decodeBody(w, r, &req) {
		return
	}

	vehicle, err := h.rentalSvc.AddVehicle(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, MapDomainVehicleToResponse(vehicle))
}

func (h *VehicleHandler) Remove(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := h.rentalSvc.RemoveVehicle(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *VehicleHandler) Reserved(w http.ResponseWriter, r *http.Request) {
	vehicles, err := h.rentalSvc.ListReservedVehicles(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MapDomainVehiclesToResponse(vehicles))
}
