package http

import (
	"context"
	"net/http"

	"github.com/shopspring/decimal"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/logger"
	"carrental-backend/internal/service"
	"carrental-backend/internal/utils"
)

type RentalHandler struct {
	rentalSvc service.CarRentalService
	notifier  service.Notifier
}

func NewRentalHandler(rentalSvc service.CarRentalService, notifier service.Notifier) *RentalHandler {
	if notifier == nil {
		notifier = service.NewNoopNotifier()
	}
	return &RentalHandler{rentalSvc: rentalSvc, notifier: notifier}
}

type rentRequest struct {
	VehicleID string `json:"vehicle_id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

type fundsRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

type balanceResponse struct {
	Balance string `json:"balance"`
}

type currentRentalResponse struct {
	Rental *RentalResponse `json:"rental"`
}

func (h *RentalHandler) Rent(w http.ResponseWriter, r *http.Request) {
	var req rentRequest
	if !decodeBody(w, r, &req) {
		return
	}
	start, err := utils.ParseDate(req.StartDate)
	if err != nil {
		writeErrorStatus(w, http.StatusBadRequest, domain.CodeGeneric, "invalid start_date")
		return
	}
	end, err := utils.ParseDate(req.EndDate)
	if err != nil {
		writeErrorStatus(w, http.StatusBadRequest, domain.CodeGeneric, "invalid end_date")
		return
	}

	ctx := r.Context()
	username := usernameFromContext(ctx)
	rental, err := h.rentalSvc.RentVehicle(ctx, username, req.VehicleID, start, end)
	if err != nil {
		writeError(w, err)
		return
	}

	h.notify(ctx, "RentalConfirmed", rental, h.notifier.RentalConfirmed)
	writeJSON(w, http.StatusCreated, MapDomainRentalToResponse(rental))
}

func (h *RentalHandler) Return(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	rental, err := h.rentalSvc.ReturnVehicle(ctx, usernameFromContext(ctx))
	if err != nil {
		writeError(w, err)
		return
	}

	h.notify(ctx, "VehicleReturned", rental, h.notifier.VehicleReturned)
	writeJSON(w, http.StatusOK, MapDomainRentalToResponse(rental))
}

// notify sends a receipt; failures are logged and never reach the caller
func (h *RentalHandler) notify(ctx context.Context, operation string, rental *domain.Rental,
	send func(context.Context, *domain.User, *domain.Vehicle, *domain.Rental) error) {
	user, err := h.rentalSvc.GetUser(ctx, rental.Username)
	if err != nil {
		logger.WarnContext(ctx, "Receipt skipped", "operation", operation, "rental_id", rental.ID, "error", err)
		return
	}
	vehicle, err := h.rentalSvc.GetVehicle(ctx, rental.VehicleID)
	if err != nil {
		logger.WarnContext(ctx, "Receipt skipped", "operation", operation, "rental_id", rental.ID, "error", err)
		return
	}
	if err := send(ctx, user, vehicle, rental); err != nil {
		logger.WarnContext(ctx, "Failed to send receipt", "operation", operation, "rental_id", rental.ID, "error", err)
	}
}

func (h *RentalHandler) Current(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	rental, err := h.rentalSvc.CurrentRental(ctx, usernameFromContext(ctx))
	if err != nil {
		writeError(w, err)
		return
	}

	resp := currentRentalResponse{}
	if rental != nil {
		mapped := MapDomainRentalToResponse(rental)
		resp.Rental = &mapped
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *RentalHandler) History(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	rentals, err := h.rentalSvc.RentalHistory(ctx, usernameFromContext(ctx))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MapDomainRentalsToResponse(rentals))
}

func (h *RentalHandler) Active(w http.ResponseWriter, r *http.Request) {
	rentals, err := h.rentalSvc.ListActiveRentals(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MapDomainRentalsToResponse(rentals))
}

func (h *RentalHandler) AddFunds(w http.ResponseWriter, r *http.Request) {
	var req fundsRequest
	if !decodeBody(w, r, &req) {
		return
	}

	ctx := r.Context()
	balance, err := h.rentalSvc.AddFunds(ctx, usernameFromContext(ctx), req.Amount)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, balanceResponse{Balance: utils.FormatMoney(balance)})
}
