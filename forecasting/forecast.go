package forecasting

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"retailbrain/models"
	"retailbrain/utils"
)

const (
	minDays            = 1
	maxDays            = 90
	stdWindow          = 30
	defaultZ           = 1.64
	mediumCoverFactor  = 1.5
	defaultServiceRate = 0.95
)

// serviceLevelZ maps a service level in percent to its z-score.
var serviceLevelZ = map[int]float64{
	80: 0.84,
	85: 1.04,
	90: 1.28,
	95: 1.64,
	98: 2.05,
	99: 2.33,
}

// Options controls a forecast call.
type Options struct {
	HorizonDays  int
	LeadTimeDays int
	ServiceLevel float64
}

// DefaultOptions forecasts 7 days with a 7 day lead time at 95% service.
func DefaultOptions() Options {
	return Options{HorizonDays: 7, LeadTimeDays: 7, ServiceLevel: defaultServiceRate}
}

// ServiceLevelZ returns the z-score for a service level rounded to two
// decimals. Levels outside the table use the 95% score.
func ServiceLevelZ(level float64) float64 {
	if z, ok := serviceLevelZ[int(math.Round(level*100))]; ok {
		return z
	}
	return defaultZ
}

// Forecast resamples the product's history, picks a baseline model, projects
// the horizon with a z-scaled uncertainty band and derives reorder guidance.
// Every failure is a *models.Error.
func Forecast(ds *models.Dataset, product string, opts Options) (*models.ForecastResult, error) {
	if opts.HorizonDays < minDays || opts.HorizonDays > maxDays {
		return nil, models.NewError(models.ErrInvalidRange, "Days must be between 1 and 90")
	}
	if opts.LeadTimeDays < minDays || opts.LeadTimeDays > maxDays {
		return nil, models.NewError(models.ErrInvalidRange, "Lead time must be between 1 and 90 days")
	}

	series, currentStock, err := Resample(ds, product)
	if err != nil {
		return nil, err
	}

	selection := SelectModel(series.Values)
	demandStd := DemandStdDev(series.Values)
	z := ServiceLevelZ(opts.ServiceLevel)

	points := make([]models.ForecastPoint, opts.HorizonDays)
	expected := math.Max(0, selection.BaseDaily)
	margin := z * demandStd
	totalDemand := 0
	for i := range points {
		points[i] = models.ForecastPoint{
			Date:     utils.FormatDate(series.End().AddDate(0, 0, i+1)),
			Forecast: utils.RoundInt(expected),
			Lower:    utils.RoundInt(math.Max(0, expected-margin)),
			Upper:    utils.RoundInt(math.Max(0, expected+margin)),
		}
		totalDemand += points[i].Forecast
	}

	avgDailyDemand := float64(totalDemand) / float64(len(points))
	leadTime := float64(opts.LeadTimeDays)
	safetyStock := z * demandStd * math.Sqrt(leadTime)
	reorderPoint := utils.RoundInt(avgDailyDemand*leadTime + safetyStock)

	summary := models.ReorderSummary{
		AvgDailyDemand:      utils.Round2(avgDailyDemand),
		TotalForecastDemand: totalDemand,
		CurrentStock:        utils.RoundInt(currentStock),
		ReorderPoint:        reorderPoint,
		SuggestedOrderQty:   utils.RoundInt(math.Max(0, float64(reorderPoint)-currentStock)),
		SafetyStock:         utils.RoundInt(safetyStock),
		DemandStdDev:        utils.Round2(demandStd),
	}

	daysOfCover := math.Inf(1)
	if avgDailyDemand > 0 {
		daysOfCover = currentStock / avgDailyDemand
		rounded := utils.RoundTo(daysOfCover, 1)
		summary.DaysOfCover = &rounded
	}
	summary.StockoutRisk = riskTier(daysOfCover, leadTime)

	return &models.ForecastResult{
		Product:       product,
		Model:         selection.Model,
		ForecastDays:  opts.HorizonDays,
		LeadTimeDays:  opts.LeadTimeDays,
		ServiceLevel:  opts.ServiceLevel,
		DailyForecast: points,
		Summary:       summary,
		Accuracy:      selection.Accuracy,
	}, nil
}

// DemandStdDev is the population standard deviation of the last 30 days, or 0
// when it cannot be computed.
func DemandStdDev(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	tail := values
	if len(tail) > stdWindow {
		tail = tail[len(tail)-stdWindow:]
	}
	_, std := stat.PopMeanStdDev(tail, nil)
	if math.IsNaN(std) {
		return 0
	}
	return std
}

func riskTier(daysOfCover, leadTime float64) string {
	switch {
	case daysOfCover <= leadTime:
		return models.RiskHigh
	case daysOfCover <= leadTime*mediumCoverFactor:
		return models.RiskMedium
	default:
		return models.RiskLow
	}
}
