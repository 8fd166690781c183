// Package analytics aggregates the whole dataset into the dashboard view.
package analytics

import (
	"sort"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"retailbrain/models"
	"retailbrain/utils"
)

const (
	criticalStock  = 10
	warningStock   = 25
	topProductsLen = 5
	minTrendDays   = 4
)

type productRollup struct {
	name        string
	units       float64
	revenue     float64
	latestStock float64
	hasStock    bool
}

// Dashboard computes revenue totals, product leaders, stock health, the
// revenue trend and the best day. An empty dataset, or one without any
// product values, is an ErrEmpty error.
func Dashboard(ds *models.Dataset) (*models.DashboardResult, error) {
	if ds.Len() == 0 {
		return nil, models.NewError(models.ErrEmpty, "No data available")
	}

	records := ds.Records()
	// Undated rows sort last, like missing timestamps.
	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if a.HasDate != b.HasDate {
			return a.HasDate
		}
		return a.HasDate && a.Date.Before(b.Date)
	})

	rollups := rollupProducts(records)
	if len(rollups) == 0 {
		return nil, models.NewError(models.ErrEmpty, "No product data found")
	}

	var totalRevenue, totalUnits float64
	var prices []float64
	for _, rec := range records {
		totalRevenue += rec.Revenue()
		totalUnits += rec.UnitsSold
		if rec.HasPrice {
			prices = append(prices, rec.UnitPrice)
		}
	}
	avgPrice := 0.0
	if len(prices) > 0 {
		avgPrice = stat.Mean(prices, nil)
	}

	desc := append([]productRollup(nil), rollups...)
	sort.SliceStable(desc, func(i, j int) bool { return desc[i].units > desc[j].units })
	asc := append([]productRollup(nil), desc...)
	sort.SliceStable(asc, func(i, j int) bool { return asc[i].units < asc[j].units })

	days, revenues := dailyRevenue(records)

	result := &models.DashboardResult{
		Overview: models.DashboardOverview{
			TotalRevenue:   utils.Round2(totalRevenue),
			TotalUnitsSold: int(totalUnits),
			AvgUnitPrice:   utils.Round2(avgPrice),
			TotalProducts:  len(rollups),
			SalesTrendPct:  utils.Round2(trendPct(revenues)),
		},
		Leaders: models.DashboardLeaders{
			TopProduct:  leader(desc[0]),
			SlowProduct: leader(asc[0]),
		},
		TopProducts: make([]models.TopProduct, 0, topProductsLen),
		Inventory:   stockInventory(rollups),
	}

	for i := 0; i < len(desc) && i < topProductsLen; i++ {
		p := desc[i]
		result.TopProducts = append(result.TopProducts, models.TopProduct{
			Name:      p.name,
			UnitsSold: int(p.units),
			Revenue:   utils.Round2(p.revenue),
			Stock:     int(p.latestStock),
		})
	}

	if len(revenues) > 0 {
		best := floats.MaxIdx(revenues)
		result.Highlights.BestDay = &models.BestDay{
			Date:    utils.FormatDate(days[best]),
			Revenue: utils.Round2(revenues[best]),
		}
	}
	return result, nil
}

// rollupProducts groups by product name in name order. records must already
// be in date order so the last stock seen is the latest.
func rollupProducts(records []models.SalesRecord) []productRollup {
	byName := make(map[string]*productRollup)
	for _, rec := range records {
		if !rec.HasProduct {
			continue
		}
		p, ok := byName[rec.Product]
		if !ok {
			p = &productRollup{name: rec.Product}
			byName[rec.Product] = p
		}
		p.units += rec.UnitsSold
		p.revenue += rec.Revenue()
		if rec.HasStock {
			p.latestStock, p.hasStock = rec.Stock, true
		}
	}

	out := make([]productRollup, 0, len(byName))
	for _, p := range byName {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].name < out[j].name })
	return out
}

func leader(p productRollup) models.ProductLeader {
	return models.ProductLeader{Name: p.name, UnitsSold: int(p.units), Revenue: utils.Round2(p.revenue)}
}

func stockInventory(rollups []productRollup) models.DashboardInventory {
	inv := models.DashboardInventory{Alerts: []models.StockAlert{}}
	for _, p := range rollups {
		if !p.hasStock {
			continue
		}
		switch {
		case p.latestStock < criticalStock:
			inv.StockHealth.Critical++
			inv.Alerts = append(inv.Alerts, models.StockAlert{Name: p.name, Stock: int(p.latestStock)})
		case p.latestStock < warningStock:
			inv.StockHealth.Warning++
		default:
			inv.StockHealth.Healthy++
		}
	}
	return inv
}

// dailyRevenue sums revenue per observed date, in date order.
func dailyRevenue(records []models.SalesRecord) ([]time.Time, []float64) {
	var days []time.Time
	var revenues []float64
	for _, rec := range records {
		if !rec.HasDate {
			continue
		}
		if n := len(days); n > 0 && days[n-1].Equal(rec.Date) {
			revenues[n-1] += rec.Revenue()
			continue
		}
		days = append(days, rec.Date)
		revenues = append(revenues, rec.Revenue())
	}
	return days, revenues
}

// trendPct compares the mean of the second half of the daily revenue series
// with the first half. Fewer than 4 days, or a zero first half, is no trend.
func trendPct(revenues []float64) float64 {
	if len(revenues) < minTrendDays {
		return 0
	}
	half := len(revenues) / 2
	prev := stat.Mean(revenues[:half], nil)
	curr := stat.Mean(revenues[half:], nil)
	if prev <= 0 {
		return 0
	}
	return (curr - prev) / prev * 100
}
