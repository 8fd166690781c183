// Package forecasting turns raw sales rows into a per-product demand forecast
// with inventory reorder guidance.
package forecasting

import (
	"sort"
	"time"

	"retailbrain/models"
)

// Resample filters the dataset to one product and returns its gap-free daily
// units series together with the stock level of the chronologically last
// dated row (0 when the dataset has no stock column).
func Resample(ds *models.Dataset, product string) (models.DailySeries, float64, error) {
	var matched []models.SalesRecord
	for _, rec := range ds.Records() {
		if rec.HasProduct && rec.Product == product {
			matched = append(matched, rec)
		}
	}
	if len(matched) == 0 {
		return models.DailySeries{}, 0, models.NewError(models.ErrNotFound, "Product not found")
	}

	dated := matched[:0]
	for _, rec := range matched {
		if rec.HasDate {
			dated = append(dated, rec)
		}
	}
	if len(dated) == 0 {
		return models.DailySeries{}, 0, models.NewError(models.ErrInvalidData, "No valid date values found for selected product")
	}
	sort.SliceStable(dated, func(i, j int) bool { return dated[i].Date.Before(dated[j].Date) })

	lastKnownStock := 0.0
	if last := dated[len(dated)-1]; ds.HasColumn(ds.Fields.Stock) && last.HasStock {
		lastKnownStock = last.Stock
	}

	sparse := make(map[time.Time]float64)
	for _, rec := range dated {
		sparse[rec.Date] += rec.UnitsSold
	}
	if len(sparse) == 0 {
		return models.DailySeries{}, 0, models.NewError(models.ErrInvalidData, "No sales history found for selected product")
	}

	start, end := dated[0].Date, dated[len(dated)-1].Date
	values := make([]float64, daysBetween(start, end)+1)
	for day, units := range sparse {
		values[daysBetween(start, day)] = units
	}
	return models.DailySeries{Start: start, Values: values}, lastKnownStock, nil
}

// daysBetween counts whole calendar days from a to b; both are midnight UTC.
func daysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}
