package models

import "time"

// --- Demand forecasting ---

// DailySeries is a gap-free daily demand series for one product. Values[i]
// belongs to Start + i days.
type DailySeries struct {
	Start  time.Time
	Values []float64
}

// Len returns the number of days in the series.
func (s DailySeries) Len() int { return len(s.Values) }

// DateAt returns the calendar date of the i-th value.
func (s DailySeries) DateAt(i int) time.Time { return s.Start.AddDate(0, 0, i) }

// End returns the last date of the series.
func (s DailySeries) End() time.Time { return s.DateAt(len(s.Values) - 1) }

// Model names, in tie-break order.
const (
	ModelMean                  = "mean"
	ModelWeightedMovingAverage = "weighted_moving_average"
	ModelTrendRegression       = "trend_regression"
)

// Accuracy holds backtest error metrics.
type Accuracy struct {
	MAE  float64 `json:"mae"`
	MAPE float64 `json:"mape"`
}

// ModelCandidate is one baseline model evaluated on the held-out tail.
type ModelCandidate struct {
	Name                string   `json:"name"`
	PredictedDailyValue float64  `json:"predicted_daily_value"`
	BacktestError       Accuracy `json:"backtest_error"`
}

// ModelSelection is the winning model with its forward-looking base value.
type ModelSelection struct {
	Model     string   `json:"model"`
	BaseDaily float64  `json:"base_daily"`
	Accuracy  Accuracy `json:"accuracy"`
}

// ForecastPoint is one forecast day. Bounds are never negative and
// Lower <= Forecast <= Upper.
type ForecastPoint struct {
	Date     string `json:"date"`
	Forecast int    `json:"forecast"`
	Lower    int    `json:"lower"`
	Upper    int    `json:"upper"`
}

// Stockout risk tiers.
const (
	RiskHigh   = "high"
	RiskMedium = "medium"
	RiskLow    = "low"
)

// ReorderSummary holds the inventory guidance derived from a forecast.
type ReorderSummary struct {
	AvgDailyDemand      float64  `json:"avg_daily_demand"`
	TotalForecastDemand int      `json:"total_forecast_demand"`
	CurrentStock        int      `json:"current_stock"`
	ReorderPoint        int      `json:"reorder_point"`
	SuggestedOrderQty   int      `json:"suggested_order_qty"`
	DaysOfCover         *float64 `json:"estimated_days_of_cover"`
	StockoutRisk        string   `json:"stockout_risk"`
	SafetyStock         int      `json:"safety_stock"`
	DemandStdDev        float64  `json:"demand_std_dev"`
}

// ForecastResult is the complete forecast response for one product.
type ForecastResult struct {
	Product       string          `json:"product"`
	Model         string          `json:"model"`
	ForecastDays  int             `json:"forecast_days"`
	LeadTimeDays  int             `json:"lead_time_days"`
	ServiceLevel  float64         `json:"service_level"`
	DailyForecast []ForecastPoint `json:"daily_forecast"`
	Summary       ReorderSummary  `json:"summary"`
	Accuracy      Accuracy        `json:"accuracy"`
}
