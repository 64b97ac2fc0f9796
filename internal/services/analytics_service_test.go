package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"showroom-backend/internal/models"
	"showroom-backend/internal/timeutil"
)

func saleOn(date string, hargaJual, hargaBeli int64) models.SaleWithVehicle {
	t, err := time.ParseInLocation(timeutil.DateLayout, date, timeutil.WIB)
	if err != nil {
		panic(err)
	}
	s := models.SaleWithVehicle{}
	s.TanggalJual = t
	s.HargaJual = hargaJual
	s.HargaBeli = hargaBeli
	return s
}

func TestResolveWindowStart(t *testing.T) {
	now := time.Date(2026, time.March, 15, 12, 0, 0, 0, timeutil.WIB)

	tests := []struct {
		window string
		want   time.Time
	}{
		{models.WindowWeek, now.AddDate(0, 0, -7)},
		{models.WindowMonth, now.AddDate(0, -1, 0)},
		{models.WindowYear, now.AddDate(-1, 0, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.window, func(t *testing.T) {
			got, err := resolveWindowStart(tt.window, now)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("invalid window", func(t *testing.T) {
		_, err := resolveWindowStart("decade", now)
		assert.ErrorIs(t, err, ErrInvalidWindow)
	})
}

func TestProfitMarginZeroRevenue(t *testing.T) {
	assert.Equal(t, 0.0, profitMargin(0, 0))
	assert.Equal(t, 0.0, profitMargin(0, -210))
	assert.Equal(t, 30.0, profitMargin(300, 90))
}

func TestYearWindowScenario(t *testing.T) {
	now := time.Date(2024, time.June, 1, 10, 0, 0, 0, timeutil.WIB)
	windowed := []models.SaleWithVehicle{
		saleOn("2024-02-20", 200, 150),
		saleOn("2024-01-15", 100, 60),
	}

	snap := buildSnapshot(models.WindowYear, now, windowed, windowed, nil)

	assert.Equal(t, int64(300), snap.TotalRevenue)
	assert.Equal(t, int64(210), snap.TotalCost)
	assert.Equal(t, int64(90), snap.GrossProfit)
	assert.Equal(t, 30.0, snap.ProfitMargin)

	require.Len(t, snap.SalesByMonth, 2)
	jan := snap.SalesByMonth[0]
	feb := snap.SalesByMonth[1]
	assert.Equal(t, "Jan", jan.Label)
	assert.Equal(t, 1, jan.Units)
	assert.Equal(t, int64(100), jan.Revenue)
	assert.Equal(t, "Feb", feb.Label)
	assert.Equal(t, 1, feb.Units)
	assert.Equal(t, int64(200), feb.Revenue)
}

func TestSalesByMonthSortedAcrossYears(t *testing.T) {
	sales := []models.SaleWithVehicle{
		saleOn("2025-01-10", 1, 0),
		saleOn("2024-12-05", 1, 0),
		saleOn("2024-03-09", 1, 0),
		saleOn("2025-01-20", 1, 0),
	}

	months := salesByMonth(sales)

	require.Len(t, months, 3)
	assert.Equal(t, []int{2024, 2024, 2025}, []int{months[0].Year, months[1].Year, months[2].Year})
	assert.Equal(t, []int{3, 12, 1}, []int{months[0].Month, months[1].Month, months[2].Month})
	assert.Equal(t, 2, months[2].Units)
}

func TestTopSellersRankingAndCap(t *testing.T) {
	mk := func(merk, series string) models.SaleWithVehicle {
		s := saleOn("2024-01-01", 0, 0)
		s.Merk = merk
		s.Series = series
		return s
	}

	// 7 sales over 3 (brand, series) pairs.
	sales := []models.SaleWithVehicle{
		mk("Toyota", "Avanza"), mk("Toyota", "Avanza"), mk("Toyota", "Avanza"),
		mk("Honda", "Brio"), mk("Honda", "Brio"), mk("Honda", "Brio"),
		mk("Suzuki", "Ertiga"),
	}

	top := topSellers(sales)

	require.Len(t, top, 3)
	// Tie on 3 units breaks lexically: Honda before Toyota.
	assert.Equal(t, models.TopSeller{Merk: "Honda", Series: "Brio", Units: 3}, top[0])
	assert.Equal(t, models.TopSeller{Merk: "Toyota", Series: "Avanza", Units: 3}, top[1])
	assert.Equal(t, models.TopSeller{Merk: "Suzuki", Series: "Ertiga", Units: 1}, top[2])

	t.Run("caps at five groups", func(t *testing.T) {
		var many []models.SaleWithVehicle
		for _, series := range []string{"A", "B", "C", "D", "E", "F", "G"} {
			many = append(many, mk("Merk", series))
		}
		assert.Len(t, topSellers(many), 5)
	})
}

func TestAgedInventoryBoundary(t *testing.T) {
	now := time.Date(2026, time.May, 1, 12, 0, 0, 0, timeutil.WIB)
	at := func(daysAgo int) *time.Time {
		d := now.AddDate(0, 0, -daysAgo)
		return &d
	}

	available := []models.Vehicle{
		{ID: 1, Merk: "Toyota", Series: "Avanza", TanggalBeli: at(91)},
		{ID: 2, Merk: "Honda", Series: "Brio", TanggalBeli: at(89)},
		{ID: 3, Merk: "Suzuki", Series: "Ertiga", TanggalBeli: at(90)},
		{ID: 4, Merk: "Nissan", Series: "Livina"},
	}

	aged := agedInventory(available, now)

	require.Len(t, aged, 1)
	assert.Equal(t, 1, aged[0].VehicleID)
	assert.Equal(t, 91, aged[0].AgeDays)
}

func TestAvgDaysToSell(t *testing.T) {
	t.Run("nil when no sale has a purchase date", func(t *testing.T) {
		sales := []models.SaleWithVehicle{saleOn("2024-01-01", 1, 1)}
		assert.Nil(t, avgDaysToSell(sales))
	})

	t.Run("mean over qualifying sales only", func(t *testing.T) {
		s1 := saleOn("2024-01-11", 1, 1)
		beli1 := s1.TanggalJual.AddDate(0, 0, -10)
		s1.TanggalBeli = &beli1

		s2 := saleOn("2024-02-21", 1, 1)
		beli2 := s2.TanggalJual.AddDate(0, 0, -20)
		s2.TanggalBeli = &beli2

		s3 := saleOn("2024-03-01", 1, 1) // no purchase date, skipped

		avg := avgDaysToSell([]models.SaleWithVehicle{s1, s2, s3})
		require.NotNil(t, avg)
		assert.InDelta(t, 15.0, *avg, 0.001)
	})
}

func TestHasDataConjunction(t *testing.T) {
	now := time.Now()
	empty := func() *models.AnalyticsSnapshot {
		return buildSnapshot(models.WindowMonth, now, nil, nil, nil)
	}

	t.Run("all five conditions empty means no data", func(t *testing.T) {
		assert.False(t, empty().HasData)
	})

	zero := 0.0
	days := 12.5
	flips := map[string]func(s *models.AnalyticsSnapshot){
		"revenue":        func(s *models.AnalyticsSnapshot) { s.TotalRevenue = 1 },
		"month series":   func(s *models.AnalyticsSnapshot) { s.SalesByMonth = []models.MonthlySales{{Units: 1}} },
		"top sellers":    func(s *models.AnalyticsSnapshot) { s.TopSellers = []models.TopSeller{{Units: 1}} },
		"avg days":       func(s *models.AnalyticsSnapshot) { s.AvgDaysToSell = &days },
		"aged inventory": func(s *models.AnalyticsSnapshot) { s.AgedInventory = []models.AgedVehicle{{VehicleID: 1}} },
	}

	for name, flip := range flips {
		t.Run("flipping "+name+" alone yields data", func(t *testing.T) {
			snap := empty()
			flip(snap)
			assert.True(t, hasData(snap))
		})
	}

	t.Run("avg days of exactly zero still counts as empty", func(t *testing.T) {
		snap := empty()
		snap.AvgDaysToSell = &zero
		assert.False(t, hasData(snap))
	})
}

func TestSalesPerformance(t *testing.T) {
	agentSale := func(date string, id int, nama string, hargaJual int64) models.SaleWithVehicle {
		s := saleOn(date, hargaJual, 0)
		s.SalesID = &id
		s.SalesNama = nama
		return s
	}

	t.Run("groups by agent id with unknown bucket for agentless sales", func(t *testing.T) {
		sales := []models.SaleWithVehicle{
			agentSale("2024-01-01", 1, "Andi", 100),
			saleOn("2024-01-02", 200, 0),
			agentSale("2024-01-03", 1, "Andi", 50),
		}

		perf := salesPerformance(sales)

		require.Len(t, perf, 2)
		require.NotNil(t, perf[0].SalesID)
		assert.Equal(t, 1, *perf[0].SalesID)
		assert.Equal(t, "Andi", perf[0].Nama)
		assert.Equal(t, 2, perf[0].Units)
		assert.Equal(t, int64(150), perf[0].Revenue)
		assert.Nil(t, perf[1].SalesID)
		assert.Equal(t, "Unknown", perf[1].Nama)
		assert.Equal(t, 1, perf[1].Units)
		assert.Equal(t, int64(200), perf[1].Revenue)
	})

	t.Run("agents sharing a display name stay separate", func(t *testing.T) {
		sales := []models.SaleWithVehicle{
			agentSale("2024-01-01", 1, "Budi", 100),
			agentSale("2024-01-02", 2, "Budi", 200),
		}

		perf := salesPerformance(sales)

		require.Len(t, perf, 2)
		require.NotNil(t, perf[0].SalesID)
		require.NotNil(t, perf[1].SalesID)
		assert.Equal(t, 1, *perf[0].SalesID)
		assert.Equal(t, int64(100), perf[0].Revenue)
		assert.Equal(t, 2, *perf[1].SalesID)
		assert.Equal(t, int64(200), perf[1].Revenue)
	})
}

type stubSaleStore struct {
	since    []models.SaleWithVehicle
	all      []models.SaleWithVehicle
	sinceErr error
	allErr   error
}

func (s *stubSaleStore) RecordSale(ctx context.Context, req *models.RecordSaleRequest, salesID *int, totalHarga int64, tanggalJual time.Time) (*models.Sale, error) {
	panic("not used")
}

func (s *stubSaleStore) ListAll(ctx context.Context) ([]models.SaleWithVehicle, error) {
	return s.all, s.allErr
}

func (s *stubSaleStore) ListSince(ctx context.Context, since time.Time) ([]models.SaleWithVehicle, error) {
	return s.since, s.sinceErr
}

func (s *stubSaleStore) ListByCustomer(ctx context.Context, customerID int) ([]models.SaleWithVehicle, error) {
	return nil, nil
}

type stubVehicleLister struct {
	vehicles []models.Vehicle
	err      error
}

func (s *stubVehicleLister) List(ctx context.Context, status string) ([]models.Vehicle, error) {
	return s.vehicles, s.err
}

func TestSnapshotDiscardsOnRetrievalError(t *testing.T) {
	svc := NewAnalyticsService(
		&stubSaleStore{sinceErr: errors.New("connection reset")},
		&stubVehicleLister{},
		nil,
	)

	snap, err := svc.Snapshot(context.Background(), models.WindowWeek)

	assert.Error(t, err)
	assert.Nil(t, snap)
}

func TestSnapshotInvalidWindow(t *testing.T) {
	svc := NewAnalyticsService(&stubSaleStore{}, &stubVehicleLister{}, nil)

	_, err := svc.Snapshot(context.Background(), "quarter")
	assert.ErrorIs(t, err, ErrInvalidWindow)
}
