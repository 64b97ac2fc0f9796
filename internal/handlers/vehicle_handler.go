package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/sirupsen/logrus"

	"showroom-backend/internal/models"
	"showroom-backend/internal/repositories"
	"showroom-backend/internal/services"
	"showroom-backend/pkg/utils"
)

// maxImageSize caps vehicle photo uploads at 10 MiB.
const maxImageSize = 10 << 20

type VehicleHandler struct {
	vehicles *services.VehicleService
}

func NewVehicleHandler(vehicles *services.VehicleService) *VehicleHandler {
	return &VehicleHandler{vehicles: vehicles}
}

func (h *VehicleHandler) List(w http.ResponseWriter, r *http.Request) {
	vehicles, err := h.vehicles.List(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if vehicles == nil {
		vehicles = []models.Vehicle{}
	}
	utils.JSON(w, http.StatusOK, vehicles)
}

func (h *VehicleHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid vehicle id")
		return
	}

	vehicle, err := h.vehicles.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			utils.Error(w, http.StatusNotFound, "vehicle not found")
			return
		}
		utils.Error(w, http.StatusInternalServerError, "failed to load vehicle")
		return
	}
	utils.JSON(w, http.StatusOK, vehicle)
}

func (h *VehicleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateVehicleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	vehicle, err := h.vehicles.Create(r.Context(), &req)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	utils.JSON(w, http.StatusCreated, vehicle)
}

func (h *VehicleHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid vehicle id")
		return
	}

	var req models.UpdateVehicleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	vehicle, err := h.vehicles.Update(r.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrNotFound):
			utils.Error(w, http.StatusNotFound, "vehicle not found")
		case errors.Is(err, repositories.ErrVehicleSold):
			utils.Error(w, http.StatusConflict, "vehicle already sold")
		default:
			utils.Error(w, http.StatusInternalServerError, "failed to update vehicle")
		}
		return
	}
	utils.JSON(w, http.StatusOK, vehicle)
}

func (h *VehicleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid vehicle id")
		return
	}

	if err := h.vehicles.Delete(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, repositories.ErrNotFound):
			utils.Error(w, http.StatusNotFound, "vehicle not found")
		case errors.Is(err, repositories.ErrVehicleSold):
			utils.Error(w, http.StatusConflict, "sold vehicles cannot be deleted")
		default:
			utils.Error(w, http.StatusInternalServerError, "failed to delete vehicle")
		}
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// UploadImage accepts a multipart form with an "image" field and stores
// it against the vehicle. Missing id or image is a 400; unconfigured
// storage is a 503.
func (h *VehicleHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid vehicle id")
		return
	}

	if err := r.ParseMultipartForm(maxImageSize); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "image file is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxImageSize))
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "failed to read image")
		return
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	vehicle, err := h.vehicles.UploadImage(r.Context(), id, data, contentType)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrStorageUnavailable):
			utils.Error(w, http.StatusServiceUnavailable, err.Error())
		case errors.Is(err, repositories.ErrNotFound):
			utils.Error(w, http.StatusNotFound, "vehicle not found")
		default:
			logrus.WithError(err).Error("image upload failed")
			utils.Error(w, http.StatusInternalServerError, "image upload failed")
		}
		return
	}

	utils.JSON(w, http.StatusOK, vehicle)
}
