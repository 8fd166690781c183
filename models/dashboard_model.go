package models

// DashboardOverview holds the headline totals.
type DashboardOverview struct {
	TotalRevenue   float64 `json:"total_revenue"`
	TotalUnitsSold int     `json:"total_units_sold"`
	AvgUnitPrice   float64 `json:"avg_unit_price"`
	TotalProducts  int     `json:"total_products"`
	SalesTrendPct  float64 `json:"sales_trend_pct"`
}

// ProductLeader is a product singled out by units sold.
type ProductLeader struct {
	Name      string  `json:"name"`
	UnitsSold int     `json:"units_sold"`
	Revenue   float64 `json:"revenue"`
}

// DashboardLeaders holds the best and worst sellers.
type DashboardLeaders struct {
	TopProduct  ProductLeader `json:"top_product"`
	SlowProduct ProductLeader `json:"slow_product"`
}

// TopProduct is a row of the top products table.
type TopProduct struct {
	Name      string  `json:"name"`
	UnitsSold int     `json:"units_sold"`
	Revenue   float64 `json:"revenue"`
	Stock     int     `json:"stock"`
}

// StockHealth counts products per latest-stock bucket.
type StockHealth struct {
	Critical int `json:"critical"`
	Warning  int `json:"warning"`
	Healthy  int `json:"healthy"`
}

// StockAlert flags a product whose latest stock is critical.
type StockAlert struct {
	Name  string `json:"name"`
	Stock int    `json:"stock"`
}

// DashboardInventory groups the stock health view.
type DashboardInventory struct {
	StockHealth StockHealth  `json:"stock_health"`
	Alerts      []StockAlert `json:"alerts"`
}

// BestDay is the date with the highest revenue.
type BestDay struct {
	Date    string  `json:"date"`
	Revenue float64 `json:"revenue"`
}

// DashboardHighlights holds one-off callouts.
type DashboardHighlights struct {
	BestDay *BestDay `json:"best_day"`
}

// DashboardResult is the full dashboard payload.
type DashboardResult struct {
	Overview    DashboardOverview   `json:"overview"`
	Leaders     DashboardLeaders    `json:"leaders"`
	TopProducts []TopProduct        `json:"top_products"`
	Inventory   DashboardInventory  `json:"inventory"`
	Highlights  DashboardHighlights `json:"highlights"`
}
