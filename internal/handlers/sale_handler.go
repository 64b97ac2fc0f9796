package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"showroom-backend/internal/middleware"
	"showroom-backend/internal/models"
	"showroom-backend/internal/repositories"
	"showroom-backend/internal/services"
	"showroom-backend/pkg/utils"
)

type SaleHandler struct {
	sales *services.SaleService
}

func NewSaleHandler(sales *services.SaleService) *SaleHandler {
	return &SaleHandler{sales: sales}
}

func (h *SaleHandler) List(w http.ResponseWriter, r *http.Request) {
	sales, err := h.sales.List(r.Context())
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "failed to list sales")
		return
	}
	if sales == nil {
		sales = []models.SaleWithVehicle{}
	}
	utils.JSON(w, http.StatusOK, sales)
}

// ListByCustomer returns one customer's transactions with vehicle details.
func (h *SaleHandler) ListByCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid customer id")
		return
	}

	sales, err := h.sales.ListByCustomer(r.Context(), id)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "failed to list sales")
		return
	}
	if sales == nil {
		sales = []models.SaleWithVehicle{}
	}
	utils.JSON(w, http.StatusOK, sales)
}

// Record creates a sale. A vehicle that is no longer available yields a
// 409 and nothing is written.
func (h *SaleHandler) Record(w http.ResponseWriter, r *http.Request) {
	var req models.RecordSaleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := req.Validate(); err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	var salesID *int
	if user := middleware.GetUser(r); user != nil {
		salesID = &user.ID
	}

	sale, err := h.sales.Record(r.Context(), &req, salesID)
	if err != nil {
		if errors.Is(err, repositories.ErrAlreadySold) {
			utils.Error(w, http.StatusConflict, "vehicle is no longer available")
			return
		}
		logrus.WithError(err).Error("sale transaction failed")
		utils.Error(w, http.StatusInternalServerError, "failed to record sale")
		return
	}

	utils.JSON(w, http.StatusCreated, sale)
}
