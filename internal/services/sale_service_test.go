package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"showroom-backend/internal/models"
	"showroom-backend/internal/repositories"
)

type recordingSaleStore struct {
	stubSaleStore
	recorded  bool
	lastTotal int64
	err       error
}

func (s *recordingSaleStore) RecordSale(ctx context.Context, req *models.RecordSaleRequest, salesID *int, totalHarga int64, tanggalJual time.Time) (*models.Sale, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.recorded = true
	s.lastTotal = totalHarga
	return &models.Sale{
		ID:               1,
		VehicleID:        req.VehicleID,
		MetodePembayaran: req.MetodePembayaran,
		TotalHarga:       totalHarga,
		TanggalJual:      tanggalJual,
	}, nil
}

func validSaleRequest() *models.RecordSaleRequest {
	return &models.RecordSaleRequest{
		VehicleID:        7,
		NamaPembeli:      "Siti",
		NomorHPPembeli:   "081234567890",
		AlamatPembeli:    "Jl. Merdeka No. 1",
		MetodePembayaran: models.PaymentTunai,
		HargaJual:        120_000_000,
	}
}

func TestRecordCashSale(t *testing.T) {
	store := &recordingSaleStore{}
	svc := NewSaleService(store, nil)

	sale, err := svc.Record(context.Background(), validSaleRequest(), nil)

	require.NoError(t, err)
	assert.True(t, store.recorded)
	assert.Equal(t, int64(120_000_000), sale.TotalHarga)
}

func TestRecordCreditSaleTotalsComponents(t *testing.T) {
	store := &recordingSaleStore{}
	svc := NewSaleService(store, nil)

	req := validSaleRequest()
	req.MetodePembayaran = models.PaymentKredit
	req.NamaLeasing = "Adira Finance"
	req.UangMuka = 40_000_000
	req.HargaKredit = 70_000_000
	req.DanaDariLeasing = 25_000_000

	sale, err := svc.Record(context.Background(), req, nil)

	require.NoError(t, err)
	assert.Equal(t, int64(135_000_000), sale.TotalHarga)
	assert.Equal(t, int64(135_000_000), store.lastTotal)
}

func TestRecordRejectsAlreadySoldVehicle(t *testing.T) {
	store := &recordingSaleStore{err: repositories.ErrAlreadySold}
	svc := NewSaleService(store, nil)

	sale, err := svc.Record(context.Background(), validSaleRequest(), nil)

	assert.ErrorIs(t, err, repositories.ErrAlreadySold)
	assert.Nil(t, sale)
	assert.False(t, store.recorded)
}

func TestRecordValidatesBeforeWriting(t *testing.T) {
	store := &recordingSaleStore{}
	svc := NewSaleService(store, nil)

	t.Run("credit without leasing company", func(t *testing.T) {
		req := validSaleRequest()
		req.MetodePembayaran = models.PaymentKredit
		_, err := svc.Record(context.Background(), req, nil)
		assert.ErrorIs(t, err, models.ErrMissingLeasing)
		assert.False(t, store.recorded)
	})

	t.Run("unknown payment method", func(t *testing.T) {
		req := validSaleRequest()
		req.MetodePembayaran = "Barter"
		_, err := svc.Record(context.Background(), req, nil)
		assert.ErrorIs(t, err, models.ErrInvalidPaymentMethod)
		assert.False(t, store.recorded)
	})
}
