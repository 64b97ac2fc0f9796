package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"showroom-backend/internal/middleware"
	"showroom-backend/internal/models"
	"showroom-backend/internal/services"
	"showroom-backend/pkg/utils"
)

type AuthHandler struct {
	users *services.UserService
}

func NewAuthHandler(users *services.UserService) *AuthHandler {
	return &AuthHandler{users: users}
}

// Signup registers a new account in the pending-approval state.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req models.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.users.Signup(r.Context(), &req)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			utils.Error(w, http.StatusConflict, err.Error())
			return
		}
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	utils.JSON(w, http.StatusCreated, user)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.users.Login(r.Context(), &req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			utils.Error(w, http.StatusUnauthorized, err.Error())
			return
		}
		logrus.WithError(err).Error("login failed")
		utils.Error(w, http.StatusInternalServerError, "login failed")
		return
	}

	utils.JSON(w, http.StatusOK, resp)
}

// Me returns the authenticated user's current account state, including
// the approval flag the client uses to route to the pending page.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)
	if user == nil {
		utils.Error(w, http.StatusUnauthorized, "not authenticated")
		return
	}
	utils.JSON(w, http.StatusOK, user)
}
