package http

import (
	"net/http"

	"carrental-backend/internal/service"
)

type AdminHandler struct {
	rentalSvc service.CarRentalService
}

func NewAdminHandler(rentalSvc service.CarRentalService) *AdminHandler {
	return &AdminHandler{rentalSvc: rentalSvc}
}

func (h *AdminHandler) Report(w http.ResponseWriter, r *http.Request) {
	report, err := h.rentalSvc.Report(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MapDomainReportToResponse(report))
}

func (h *AdminHandler) Customers(w http.ResponseWriter, r *http.Request) {
	customers, err := h.rentalSvc.ListCustomers(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]UserResponse, len(customers))
	for i, u := range customers {
		out[i] = MapDomainUserToResponse(u)
	}
	writeJSON(w, http.StatusOK, out)
}
