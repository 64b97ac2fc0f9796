package services

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"showroom-backend/internal/metrics"
	"showroom-backend/internal/models"
	"showroom-backend/internal/timeutil"
)

// SaleStore is the persistence surface the sale flow needs.
type SaleStore interface {
	RecordSale(ctx context.Context, req *models.RecordSaleRequest, salesID *int, totalHarga int64, tanggalJual time.Time) (*models.Sale, error)
	ListAll(ctx context.Context) ([]models.SaleWithVehicle, error)
	ListSince(ctx context.Context, since time.Time) ([]models.SaleWithVehicle, error)
	ListByCustomer(ctx context.Context, customerID int) ([]models.SaleWithVehicle, error)
}

type SaleService struct {
	store SaleStore
	cache SnapshotInvalidator
}

func NewSaleService(store SaleStore, cache SnapshotInvalidator) *SaleService {
	return &SaleService{store: store, cache: cache}
}

// Record validates and persists a sale. The repository runs the insert and
// the vehicle status flip in one transaction, so a concurrent sale of the
// same vehicle surfaces here as ErrAlreadySold with nothing written.
func (s *SaleService) Record(ctx context.Context, req *models.RecordSaleRequest, salesID *int) (*models.Sale, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	total, err := req.TotalPrice()
	if err != nil {
		return nil, err
	}

	tanggalJual := timeutil.Now()
	if req.TanggalJual != nil {
		tanggalJual = timeutil.ToWIB(*req.TanggalJual)
	}

	sale, err := s.store.RecordSale(ctx, req, salesID, total, tanggalJual)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.InvalidateSnapshots(ctx)
	}
	metrics.SalesRecordedTotal.Inc()

	logrus.WithFields(logrus.Fields{
		"sale_id":     sale.ID,
		"vehicle_id":  sale.VehicleID,
		"metode":      sale.MetodePembayaran,
		"total_harga": sale.TotalHarga,
	}).Info("sale recorded")

	return sale, nil
}

func (s *SaleService) List(ctx context.Context) ([]models.SaleWithVehicle, error) {
	return s.store.ListAll(ctx)
}

func (s *SaleService) ListByCustomer(ctx context.Context, customerID int) ([]models.SaleWithVehicle, error) {
	return s.store.ListByCustomer(ctx, customerID)
}
