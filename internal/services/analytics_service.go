package services

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/sirupsen/logrus"

	"showroom-backend/internal/models"
	"showroom-backend/internal/timeutil"
)

// ErrInvalidWindow is returned for a window selector outside week|month|year.
var ErrInvalidWindow = errors.New("window must be week, month or year")

// agedThresholdDays is the stock age beyond which an available vehicle
// counts as aged inventory. Strictly greater than: day 91 is in, day 89
// is out.
const agedThresholdDays = 90

// VehicleLister is the inventory read surface the analytics engine needs.
type VehicleLister interface {
	List(ctx context.Context, status string) ([]models.Vehicle, error)
}

// SnapshotCache stores computed snapshots per window. Implementations may
// be no-ops; the engine always recomputes on a miss.
type SnapshotCache interface {
	GetSnapshot(ctx context.Context, window string) (*models.AnalyticsSnapshot, bool)
	SetSnapshot(ctx context.Context, window string, snap *models.AnalyticsSnapshot)
	InvalidateSnapshots(ctx context.Context)
}

type AnalyticsService struct {
	sales    SaleStore
	vehicles VehicleLister
	cache    SnapshotCache
}

func NewAnalyticsService(sales SaleStore, vehicles VehicleLister, cache SnapshotCache) *AnalyticsService {
	return &AnalyticsService{sales: sales, vehicles: vehicles, cache: cache}
}

// Snapshot computes the full dashboard payload for one window. Any
// retrieval error discards the whole snapshot; a partially populated one
// is never returned.
func (s *AnalyticsService) Snapshot(ctx context.Context, window string) (*models.AnalyticsSnapshot, error) {
	now := timeutil.Now()
	start, err := resolveWindowStart(window, now)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if snap, ok := s.cache.GetSnapshot(ctx, window); ok {
			return snap, nil
		}
	}

	windowed, err := s.sales.ListSince(ctx, start)
	if err != nil {
		return nil, err
	}
	allSales, err := s.sales.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	available, err := s.vehicles.List(ctx, models.StatusTersedia)
	if err != nil {
		return nil, err
	}

	snap := buildSnapshot(window, now, windowed, allSales, available)

	if s.cache != nil {
		s.cache.SetSnapshot(ctx, window, snap)
	}

	logrus.WithFields(logrus.Fields{
		"window":     window,
		"units_sold": snap.UnitsSold,
		"has_data":   snap.HasData,
	}).Debug("analytics snapshot computed")

	return snap, nil
}

// resolveWindowStart maps a window selector to its absolute start time:
// now minus 7 days, one calendar month or one calendar year.
func resolveWindowStart(window string, now time.Time) (time.Time, error) {
	switch window {
	case models.WindowWeek:
		return now.AddDate(0, 0, -7), nil
	case models.WindowMonth:
		return now.AddDate(0, -1, 0), nil
	case models.WindowYear:
		return now.AddDate(-1, 0, 0), nil
	default:
		return time.Time{}, ErrInvalidWindow
	}
}

// buildSnapshot derives every metric from in-memory rows. It is pure and
// order-independent over its inputs.
func buildSnapshot(window string, now time.Time, windowed, allSales []models.SaleWithVehicle, available []models.Vehicle) *models.AnalyticsSnapshot {
	snap := &models.AnalyticsSnapshot{
		Window:         window,
		GeneratedAt:    now,
		UnitsSold:      len(windowed),
		AvailableUnits: len(available),
	}

	for _, s := range windowed {
		snap.TotalRevenue += s.HargaJual
		snap.TotalCost += s.HargaBeli
	}
	snap.GrossProfit = snap.TotalRevenue - snap.TotalCost
	snap.ProfitMargin = profitMargin(snap.TotalRevenue, snap.GrossProfit)

	snap.SalesByMonth = salesByMonth(windowed)
	snap.SalesPerformance = salesPerformance(windowed)
	snap.BrandDistribution = distribution(available, func(v models.Vehicle) string { return v.Merk })
	snap.SeriesDistribution = distribution(available, func(v models.Vehicle) string { return v.Series })
	snap.BodyTypeDistribution = distribution(available, func(v models.Vehicle) string { return v.BodyType })
	snap.TopSellers = topSellers(allSales)
	snap.AvgDaysToSell = avgDaysToSell(allSales)
	snap.AgedInventory = agedInventory(available, now)
	snap.HasData = hasData(snap)

	return snap
}

// profitMargin is profit over revenue as a percentage, 0 when revenue is 0.
func profitMargin(revenue, profit int64) float64 {
	if revenue == 0 {
		return 0
	}
	return float64(profit) / float64(revenue) * 100
}

func salesByMonth(sales []models.SaleWithVehicle) []models.MonthlySales {
	type key struct {
		year  int
		month time.Month
	}
	groups := map[key]*models.MonthlySales{}

	for _, s := range sales {
		t := timeutil.ToWIB(s.TanggalJual)
		k := key{t.Year(), t.Month()}
		g, ok := groups[k]
		if !ok {
			g = &models.MonthlySales{
				Year:  k.year,
				Month: int(k.month),
				Label: k.month.String()[:3],
			}
			groups[k] = g
		}
		g.Units++
		g.Revenue += s.HargaJual
		g.Cost += s.HargaBeli
	}

	out := make([]models.MonthlySales, 0, len(groups))
	for _, g := range groups {
		g.Profit = g.Revenue - g.Cost
		out = append(out, *g)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year < out[j].Year
		}
		return out[i].Month < out[j].Month
	})
	return out
}

// salesPerformance groups windowed sales by the recording agent's id; the
// display name is resolved per group, "Unknown" when unresolvable. Sales
// with no agent share one nil-id bucket.
func salesPerformance(sales []models.SaleWithVehicle) []models.AgentPerformance {
	const noAgent = 0
	groups := map[int]*models.AgentPerformance{}

	for _, s := range sales {
		id := noAgent
		if s.SalesID != nil {
			id = *s.SalesID
		}
		g, ok := groups[id]
		if !ok {
			nama := s.SalesNama
			if nama == "" {
				nama = "Unknown"
			}
			g = &models.AgentPerformance{SalesID: s.SalesID, Nama: nama}
			groups[id] = g
		}
		g.Units++
		g.Revenue += s.HargaJual
	}

	out := make([]models.AgentPerformance, 0, len(groups))
	for _, g := range groups {
		out = append(out, *g)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Units != out[j].Units {
			return out[i].Units > out[j].Units
		}
		if out[i].Nama != out[j].Nama {
			return out[i].Nama < out[j].Nama
		}
		return agentSortID(out[i]) < agentSortID(out[j])
	})
	return out
}

func agentSortID(a models.AgentPerformance) int {
	if a.SalesID == nil {
		return 0
	}
	return *a.SalesID
}

func distribution(vehicles []models.Vehicle, dim func(models.Vehicle) string) []models.Distribution {
	counts := map[string]int{}
	for _, v := range vehicles {
		label := dim(v)
		if label == "" {
			label = "Unknown"
		}
		counts[label]++
	}

	out := make([]models.Distribution, 0, len(counts))
	for label, count := range counts {
		out = append(out, models.Distribution{Label: label, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Label < out[j].Label
	})
	return out
}

// topSellers ranks all historical sales by (merk, series) unit count and
// keeps the top five. Ties break on merk then series ascending.
func topSellers(sales []models.SaleWithVehicle) []models.TopSeller {
	type key struct{ merk, series string }
	counts := map[key]int{}
	for _, s := range sales {
		counts[key{s.Merk, s.Series}]++
	}

	out := make([]models.TopSeller, 0, len(counts))
	for k, units := range counts {
		out = append(out, models.TopSeller{Merk: k.merk, Series: k.series, Units: units})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Units != out[j].Units {
			return out[i].Units > out[j].Units
		}
		if out[i].Merk != out[j].Merk {
			return out[i].Merk < out[j].Merk
		}
		return out[i].Series < out[j].Series
	})

	if len(out) > 5 {
		out = out[:5]
	}
	return out
}

// avgDaysToSell is the mean holding period over all historical sales where
// the vehicle's purchase date is known. Nil when no sale qualifies.
func avgDaysToSell(sales []models.SaleWithVehicle) *float64 {
	var total float64
	var n int
	for _, s := range sales {
		if s.TanggalBeli == nil {
			continue
		}
		total += s.TanggalJual.Sub(*s.TanggalBeli).Hours() / 24
		n++
	}
	if n == 0 {
		return nil
	}
	avg := total / float64(n)
	return &avg
}

func agedInventory(available []models.Vehicle, now time.Time) []models.AgedVehicle {
	var out []models.AgedVehicle
	for _, v := range available {
		if v.TanggalBeli == nil {
			continue
		}
		ageDays := int(now.Sub(*v.TanggalBeli).Hours() / 24)
		if ageDays > agedThresholdDays {
			out = append(out, models.AgedVehicle{
				VehicleID: v.ID,
				Merk:      v.Merk,
				Series:    v.Series,
				AgeDays:   ageDays,
			})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].AgeDays != out[j].AgeDays {
			return out[i].AgeDays > out[j].AgeDays
		}
		return out[i].VehicleID < out[j].VehicleID
	})
	return out
}

// hasData is false only when every one of the five emptiness conditions
// holds at once. This is a conjunction, not an "any sales exist" check.
func hasData(snap *models.AnalyticsSnapshot) bool {
	empty := snap.TotalRevenue == 0 &&
		len(snap.SalesByMonth) == 0 &&
		len(snap.TopSellers) == 0 &&
		(snap.AvgDaysToSell == nil || *snap.AvgDaysToSell == 0) &&
		len(snap.AgedInventory) == 0
	return !empty
}
