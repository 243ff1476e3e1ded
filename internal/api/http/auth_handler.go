package http

import (
	"net/http"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/service"
	"carrental-backend/internal/security"
)

type AuthHandler struct {
	rentalSvc    service.CarRentalService
	tokenManager security.TokenManager
}

func NewAuthHandler(rentalSvc service.CarRentalService, tm security.TokenManager) *AuthHandler {
	return &AuthHandler{rentalSvc: rentalSvc, tokenManager: tm}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type authResponse struct {
	AccessToken string       `json:"access_token"`
	User        UserResponse `json:"user"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req service.RegistrationInput
	if !decodeBody(w, r, &req) {
		return
	}

	user, err := h.rentalSvc.Register(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	h.respondWithToken(w, http.StatusCreated, user)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeBody(w, r, &req) {
		return
	}

	user, err := h.rentalSvc.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	h.respondWithToken(w, http.StatusOK, user)
}

func (h *AuthHandler) respondWithToken(w http.ResponseWriter, status int, user *domain.User) {
	token, err := h.tokenManager.GenerateAccessToken(user.Username, string(user.Role))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, status, authResponse{AccessToken: token, User: MapDomainUserToResponse(user)})
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, err := h.rentalSvc.GetUser(r.Context(), usernameFromContext(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MapDomainUserToResponse(user))
}
