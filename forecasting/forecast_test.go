package forecasting

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"retailbrain/models"
)

func TestForecastConstantDemand(t *testing.T) {
	ds := dataset(dailyRows("Widget", day(2024, 1, 1), repeat(5, 10), 3))

	res, err := Forecast(ds, "Widget", Options{HorizonDays: 5, LeadTimeDays: 7, ServiceLevel: 0.95})
	require.NoError(t, err)

	assert.Equal(t, "Widget", res.Product)
	assert.Equal(t, models.ModelMean, res.Model)
	require.Len(t, res.DailyForecast, 5)
	assert.Equal(t, "2024-01-11", res.DailyForecast[0].Date)
	assert.Equal(t, "2024-01-15", res.DailyForecast[4].Date)
	for _, p := range res.DailyForecast {
		assert.Equal(t, models.ForecastPoint{Date: p.Date, Forecast: 5, Lower: 5, Upper: 5}, p)
	}

	s := res.Summary
	assert.Equal(t, 5.0, s.AvgDailyDemand)
	assert.Equal(t, 25, s.TotalForecastDemand)
	assert.Equal(t, 3, s.CurrentStock)
	assert.Equal(t, 35, s.ReorderPoint)
	assert.Equal(t, 32, s.SuggestedOrderQty)
	assert.Equal(t, 0, s.SafetyStock)
	require.NotNil(t, s.DaysOfCover)
	assert.InDelta(t, 0.6, *s.DaysOfCover, 1e-9)
	assert.Equal(t, models.RiskHigh, s.StockoutRisk)
}

func TestForecastSafetyStockFromVolatility(t *testing.T) {
	units := make([]float64, 10)
	for i := range units {
		units[i] = 3
		if i%2 == 1 {
			units[i] = 7
		}
	}
	ds := dataset(dailyRows("Widget", day(2024, 1, 1), units, 100))

	res, err := Forecast(ds, "Widget", DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, models.ModelMean, res.Model)
	for _, p := range res.DailyForecast {
		assert.Equal(t, 5, p.Forecast)
		assert.Equal(t, 2, p.Lower)
		assert.Equal(t, 8, p.Upper)
	}
	assert.Equal(t, 2.0, res.Summary.DemandStdDev)
	assert.Equal(t, 9, res.Summary.SafetyStock)
	assert.Equal(t, 44, res.Summary.ReorderPoint)
	assert.Equal(t, 0, res.Summary.SuggestedOrderQty)
}

func TestForecastRiskTiers(t *testing.T) {
	tests := []struct {
		name  string
		units float64
		stock float64
		risk  string
	}{
		{"cover within lead time", 5, 35, models.RiskHigh},
		{"cover within one and a half lead times", 5, 50, models.RiskMedium},
		{"ample cover", 5, 60, models.RiskLow},
		{"no demand", 0, 10, models.RiskLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds := dataset(dailyRows("Widget", day(2024, 1, 1), repeat(tt.units, 10), tt.stock))
			res, err := Forecast(ds, "Widget", DefaultOptions())
			require.NoError(t, err)
			assert.Equal(t, tt.risk, res.Summary.StockoutRisk)
		})
	}
}

func TestForecastZeroDemandHasNoDaysOfCover(t *testing.T) {
	ds := dataset(dailyRows("Widget", day(2024, 1, 1), repeat(0, 10), 10))

	res, err := Forecast(ds, "Widget", DefaultOptions())
	require.NoError(t, err)
	assert.Nil(t, res.Summary.DaysOfCover)

	raw, err := json.Marshal(res.Summary)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"estimated_days_of_cover":null`)
}

func TestForecastBandsAreOrderedAndNonNegative(t *testing.T) {
	units := concat(repeat(5, 10), repeat(0, 3), repeat(9, 10), repeat(8, 7), []float64{40, 0, 1})
	ds := dataset(dailyRows("Widget", day(2024, 3, 1), units, 12))

	for _, level := range []float64{0.8, 0.9, 0.95, 0.99} {
		res, err := Forecast(ds, "Widget", Options{HorizonDays: 30, LeadTimeDays: 14, ServiceLevel: level})
		require.NoError(t, err)
		for _, p := range res.DailyForecast {
			assert.GreaterOrEqual(t, p.Lower, 0)
			assert.LessOrEqual(t, p.Lower, p.Forecast)
			assert.LessOrEqual(t, p.Forecast, p.Upper)
		}
		assert.GreaterOrEqual(t, res.Summary.SuggestedOrderQty, 0)
	}
}

func TestForecastValidatesRanges(t *testing.T) {
	ds := dataset(dailyRows("Widget", day(2024, 1, 1), repeat(5, 10), 3))

	for _, opts := range []Options{
		{HorizonDays: 0, LeadTimeDays: 7, ServiceLevel: 0.95},
		{HorizonDays: 91, LeadTimeDays: 7, ServiceLevel: 0.95},
		{HorizonDays: 7, LeadTimeDays: 0, ServiceLevel: 0.95},
		{HorizonDays: 7, LeadTimeDays: 91, ServiceLevel: 0.95},
	} {
		_, err := Forecast(ds, "Widget", opts)
		assert.Equal(t, models.ErrInvalidRange, models.KindOf(err), "%+v", opts)
	}

	// Range checks run before the product lookup.
	_, err := Forecast(ds, "Nope", Options{HorizonDays: 0, LeadTimeDays: 7})
	assert.Equal(t, models.ErrInvalidRange, models.KindOf(err))

	_, err = Forecast(ds, "Nope", DefaultOptions())
	assert.Equal(t, models.ErrNotFound, models.KindOf(err))

	_, err = Forecast(ds, "Widget", Options{HorizonDays: 90, LeadTimeDays: 90, ServiceLevel: 0.95})
	assert.NoError(t, err)
}

func TestServiceLevelZ(t *testing.T) {
	assert.Equal(t, 0.84, ServiceLevelZ(0.80))
	assert.Equal(t, 1.28, ServiceLevelZ(0.9))
	assert.Equal(t, 1.64, ServiceLevelZ(0.95))
	assert.Equal(t, 2.33, ServiceLevelZ(0.99))
	assert.Equal(t, 1.64, ServiceLevelZ(0.5))
}

func TestDemandStdDevUsesLastThirtyDays(t *testing.T) {
	values := concat(repeat(1000, 5), repeat(4, 30))
	assert.Zero(t, DemandStdDev(values))
	assert.Zero(t, DemandStdDev(nil))
	assert.InDelta(t, 2.0, DemandStdDev([]float64{3, 7}), 1e-9)
}
