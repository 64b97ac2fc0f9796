package handlers

import (
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"showroom-backend/internal/services"
	"showroom-backend/pkg/utils"
)

type ReportHandler struct {
	reports *services.ReportService
}

func NewReportHandler(reports *services.ReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

func (h *ReportHandler) SalesPDF(w http.ResponseWriter, r *http.Request) {
	data, err := h.reports.SalesPDF(r.Context(), r.URL.Query().Get("window"))
	if err != nil {
		if errors.Is(err, services.ErrInvalidWindow) {
			utils.Error(w, http.StatusBadRequest, err.Error())
			return
		}
		logrus.WithError(err).Error("pdf report failed")
		utils.Error(w, http.StatusInternalServerError, "failed to generate report")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="laporan-penjualan.pdf"`)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func (h *ReportHandler) SalesCSV(w http.ResponseWriter, r *http.Request) {
	data, err := h.reports.SalesCSV(r.Context(), r.URL.Query().Get("window"))
	if err != nil {
		if errors.Is(err, services.ErrInvalidWindow) {
			utils.Error(w, http.StatusBadRequest, err.Error())
			return
		}
		logrus.WithError(err).Error("csv report failed")
		utils.Error(w, http.StatusInternalServerError, "failed to generate report")
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="laporan-penjualan.csv"`)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
