package copilot

import (
	"sort"

	"retailbrain/models"
)

const lowStockThreshold = 10

// Summarize computes the business facts quoted in every copilot answer: total
// revenue, best and worst seller by units, and products with a row below 10
// units of stock.
func Summarize(ds *models.Dataset) models.Insights {
	insights := models.Insights{LowStockProducts: []string{}}

	units := make(map[string]float64)
	lowSeen := make(map[string]bool)
	for _, rec := range ds.Records() {
		insights.TotalRevenue += rec.Revenue()
		if !rec.HasProduct {
			continue
		}
		units[rec.Product] += rec.UnitsSold
		if rec.HasStock && rec.Stock < lowStockThreshold && !lowSeen[rec.Product] {
			lowSeen[rec.Product] = true
			insights.LowStockProducts = append(insights.LowStockProducts, rec.Product)
		}
	}
	if len(units) == 0 {
		return insights
	}

	products := make([]string, 0, len(units))
	for name := range units {
		products = append(products, name)
	}
	sort.Strings(products)

	desc := append([]string(nil), products...)
	sort.SliceStable(desc, func(i, j int) bool { return units[desc[i]] > units[desc[j]] })
	asc := append([]string(nil), products...)
	sort.SliceStable(asc, func(i, j int) bool { return units[asc[i]] < units[asc[j]] })

	insights.TopProduct = desc[0]
	insights.SlowMover = asc[0]
	return insights
}
