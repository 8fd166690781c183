package forecasting

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"retailbrain/models"
	"retailbrain/utils"
)

const (
	minBacktestPoints = 8
	minTestPoints     = 7
	trainFraction     = 0.8
	wmaWindow         = 14
	minTrendPoints    = 5
)

type baseline struct {
	name    string
	predict func([]float64) float64
}

// Candidates are evaluated in this order; on equal MAE the earlier one wins.
var baselines = []baseline{
	{models.ModelMean, mean},
	{models.ModelWeightedMovingAverage, func(v []float64) float64 { return weightedMovingAverage(v, wmaWindow) }},
	{models.ModelTrendRegression, trendProjection},
}

// SelectModel backtests the baselines on the tail of values and returns the
// one with the lowest MAE, re-fitted on the full series.
func SelectModel(values []float64) models.ModelSelection {
	if len(values) < minBacktestPoints {
		return models.ModelSelection{Model: models.ModelMean, BaseDaily: mean(values)}
	}

	candidates := Backtest(values)
	best := 0
	for i := 1; i < len(candidates); i++ {
		if candidates[i].BacktestError.MAE < candidates[best].BacktestError.MAE {
			best = i
		}
	}

	return models.ModelSelection{
		Model:     candidates[best].Name,
		BaseDaily: baselines[best].predict(values),
		Accuracy: models.Accuracy{
			MAE:  utils.Round2(candidates[best].BacktestError.MAE),
			MAPE: utils.Round2(candidates[best].BacktestError.MAPE),
		},
	}
}

// Backtest fits every baseline on the training head of values and scores its
// constant prediction against the held-out tail. The tail is the larger of the
// last 7 points and the last 20% of points. values must hold at least 8 points.
func Backtest(values []float64) []models.ModelCandidate {
	split := splitIndex(len(values))
	train, test := values[:split], values[split:]

	out := make([]models.ModelCandidate, len(baselines))
	for i, b := range baselines {
		pred := b.predict(train)
		out[i] = models.ModelCandidate{
			Name:                b.name,
			PredictedDailyValue: pred,
			BacktestError:       models.Accuracy{MAE: mae(test, pred), MAPE: mape(test, pred)},
		}
	}
	return out
}

func splitIndex(n int) int {
	testSize := n - int(float64(n)*trainFraction)
	if testSize < minTestPoints {
		testSize = minTestPoints
	}
	if testSize >= n {
		testSize = n - 1
	}
	return n - testSize
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return stat.Mean(values, nil)
}

// weightedMovingAverage weights the last window points 1..k, most recent
// heaviest.
func weightedMovingAverage(values []float64, window int) float64 {
	if len(values) == 0 {
		return 0
	}
	k := window
	if len(values) < k {
		k = len(values)
	}
	tail := values[len(values)-k:]
	weights := make([]float64, k)
	for i := range weights {
		weights[i] = float64(i + 1)
	}
	return floats.Dot(tail, weights) / floats.Sum(weights)
}

// trendProjection fits a least-squares line over the index and extends it one
// step past the end, floored at 0. Short series fall back to the mean.
func trendProjection(values []float64) float64 {
	n := len(values)
	if n < minTrendPoints {
		return mean(values)
	}
	x := make([]float64, n)
	for i := range x {
		x[i] = float64(i)
	}
	intercept, slope := stat.LinearRegression(x, values, nil, false)
	return math.Max(0, intercept+slope*float64(n))
}

func mae(actual []float64, pred float64) float64 {
	if len(actual) == 0 {
		return 0
	}
	errs := make([]float64, len(actual))
	for i, a := range actual {
		errs[i] = math.Abs(a - pred)
	}
	return stat.Mean(errs, nil)
}

// mape uses 1 as the denominator for zero actuals.
func mape(actual []float64, pred float64) float64 {
	if len(actual) == 0 {
		return 0
	}
	errs := make([]float64, len(actual))
	for i, a := range actual {
		denom := a
		if denom == 0 {
			denom = 1
		}
		errs[i] = math.Abs((a - pred) / denom)
	}
	return stat.Mean(errs, nil) * 100
}
