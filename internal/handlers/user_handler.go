package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"showroom-backend/internal/middleware"
	"showroom-backend/internal/models"
	"showroom-backend/internal/repositories"
	"showroom-backend/internal/services"
	"showroom-backend/pkg/utils"
)

type UserHandler struct {
	users *services.UserService
}

func NewUserHandler(users *services.UserService) *UserHandler {
	return &UserHandler{users: users}
}

func pathID(r *http.Request) (int, error) {
	return strconv.Atoi(mux.Vars(r)["id"])
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "failed to list users")
		return
	}
	utils.JSON(w, http.StatusOK, users)
}

func (h *UserHandler) ListPending(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.ListPending(r.Context())
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "failed to list pending users")
		return
	}
	utils.JSON(w, http.StatusOK, users)
}

func (h *UserHandler) Approve(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid user id")
		return
	}

	if err := h.users.Approve(r.Context(), id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			utils.Error(w, http.StatusNotFound, "user not found")
			return
		}
		utils.Error(w, http.StatusInternalServerError, "failed to approve user")
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"status": "approved"})
}

// Reject deletes an account that was never approved.
func (h *UserHandler) Reject(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid user id")
		return
	}

	if err := h.users.Reject(r.Context(), id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			utils.Error(w, http.StatusNotFound, "user not found")
			return
		}
		utils.Error(w, http.StatusInternalServerError, "failed to reject user")
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"status": "rejected"})
}

func (h *UserHandler) ChangeRole(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid user id")
		return
	}

	var req models.ChangeRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	actor := middleware.GetUser(r)
	if actor == nil {
		utils.Error(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	if err := h.users.ChangeRole(r.Context(), actor.ID, id, req.Role); err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidRole), errors.Is(err, services.ErrSelfRoleChange):
			utils.Error(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, repositories.ErrNotFound):
			utils.Error(w, http.StatusNotFound, "user not found")
		default:
			utils.Error(w, http.StatusInternalServerError, "failed to change role")
		}
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"status": "updated"})
}
