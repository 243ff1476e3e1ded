package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/logger"
)

type errorResponse struct {
	Code  domain.ErrorCode `json:"code"`
	Error string           `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Warn("Failed to write response", "error", err)
	}
}

func writeErrorStatus(w http.ResponseWriter, status int, code domain.ErrorCode, message string) {
	writeJSON(w, status, errorResponse{Code: code, Error: message})
}

// writeError renders a ledger failure with the status of its code
func writeError(w http.ResponseWriter, err error) {
	var e *domain.Error
	if !errors.As(err, &e) {
		logger.Error("Unexpected handler error", "error", err)
		writeErrorStatus(w, http.StatusInternalServerError, domain.CodeGeneric, "Internal server error")
		return
	}
	writeErrorStatus(w, StatusForCode(e.Code), e.Code, e.Message)
}

// StatusForCode maps a ledger error code to an HTTP status
func StatusForCode(code domain.ErrorCode) int {
	switch code {
	case domain.CodeInvalidRegistrationData, domain.CodeInvalidSecretCode,
		domain.CodeInvalidAmount, domain.CodeInvalidVehicleData, domain.CodeInvalidRentalDuration:
		return http.StatusBadRequest
	case domain.CodeVehicleNotFound:
		return http.StatusNotFound
	case domain.CodeInvalidUser:
		return http.StatusForbidden
	}

	switch code.Area() {
	case domain.CodeAuthentication:
		return http.StatusUnauthorized
	case domain.CodeRegistration:
		return http.StatusConflict
	case domain.CodePayment:
		return http.StatusPaymentRequired
	case domain.CodeInventory, domain.CodeRental:
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

func decodeBody(w http.ResponseWriter, r *http.Request, out any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(out); err != nil {
		writeErrorStatus(w, http.StatusBadRequest, domain.CodeGeneric, "invalid request body: "+err.Error())
		return false
	}
	return true
}
