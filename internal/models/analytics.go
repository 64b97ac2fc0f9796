package models

import "time"

// Analytics windows
const (
	WindowWeek  = "week"
	WindowMonth = "month"
	WindowYear  = "year"
)

// AnalyticsSnapshot is the full dashboard payload for one window.
type AnalyticsSnapshot struct {
	Window               string             `json:"window"`
	GeneratedAt          time.Time          `json:"generated_at"`
	TotalRevenue         int64              `json:"total_revenue"`
	TotalCost            int64              `json:"total_cost"`
	GrossProfit          int64              `json:"gross_profit"`
	ProfitMargin         float64            `json:"profit_margin"`
	UnitsSold            int                `json:"units_sold"`
	AvailableUnits       int                `json:"available_units"`
	SalesByMonth         []MonthlySales     `json:"sales_by_month"`
	SalesPerformance     []AgentPerformance `json:"sales_performance"`
	BrandDistribution    []Distribution     `json:"brand_distribution"`
	SeriesDistribution   []Distribution     `json:"series_distribution"`
	BodyTypeDistribution []Distribution     `json:"body_type_distribution"`
	TopSellers           []TopSeller        `json:"top_sellers"`
	AvgDaysToSell        *float64           `json:"avg_days_to_sell"`
	AgedInventory        []AgedVehicle      `json:"aged_inventory"`
	HasData              bool               `json:"has_data"`
}

// MonthlySales aggregates sales by calendar month.
type MonthlySales struct {
	Year    int    `json:"year"`
	Month   int    `json:"month"`
	Label   string `json:"label"`
	Units   int    `json:"units"`
	Revenue int64  `json:"revenue"`
	Cost    int64  `json:"cost"`
	Profit  int64  `json:"profit"`
}

// AgentPerformance aggregates sales per salesperson, keyed by the
// recording user's id. SalesID is nil for sales with no recorded agent.
type AgentPerformance struct {
	SalesID *int   `json:"sales_id"`
	Nama    string `json:"nama"`
	Units   int    `json:"units"`
	Revenue int64  `json:"revenue"`
}

// Distribution is one slice of a categorical breakdown over the
// available inventory.
type Distribution struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// TopSeller is one entry of the best-selling model ranking.
type TopSeller struct {
	Merk   string `json:"merk"`
	Series string `json:"series"`
	Units  int    `json:"units"`
}

// AgedVehicle is an available vehicle held longer than the aging
// threshold.
type AgedVehicle struct {
	VehicleID int    `json:"vehicle_id"`
	Merk      string `json:"merk"`
	Series    string `json:"series"`
	AgeDays   int    `json:"age_days"`
}
