package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"showroom-backend/internal/models"
	"showroom-backend/internal/repositories"
	"showroom-backend/internal/services"
	"showroom-backend/pkg/utils"
)

type CustomerHandler struct {
	customers *services.CustomerService
}

func NewCustomerHandler(customers *services.CustomerService) *CustomerHandler {
	return &CustomerHandler{customers: customers}
}

func (h *CustomerHandler) List(w http.ResponseWriter, r *http.Request) {
	customers, err := h.customers.List(r.Context())
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "failed to list customers")
		return
	}
	if customers == nil {
		customers = []models.Customer{}
	}
	utils.JSON(w, http.StatusOK, customers)
}

func (h *CustomerHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid customer id")
		return
	}

	customer, err := h.customers.GetWithPurchases(r.Context(), id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			utils.Error(w, http.StatusNotFound, "customer not found")
			return
		}
		utils.Error(w, http.StatusInternalServerError, "failed to load customer")
		return
	}
	utils.JSON(w, http.StatusOK, customer)
}

func (h *CustomerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	customer, err := h.customers.Create(r.Context(), &req)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	utils.JSON(w, http.StatusCreated, customer)
}
