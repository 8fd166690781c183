package forecasting

import (
	"time"

	"retailbrain/models"
)

var salesColumns = []string{"date", "product", "sales", "price", "stock"}

// dailyRows builds one row per day for product starting at start.
func dailyRows(product string, start time.Time, units []float64, stock float64) [][]models.Value {
	rows := make([][]models.Value, len(units))
	for i, u := range units {
		rows[i] = []models.Value{
			models.String(start.AddDate(0, 0, i).Format("2006-01-02")),
			models.String(product),
			models.Number(u),
			models.Number(2),
			models.Number(stock),
		}
	}
	return rows
}

func dataset(rows ...[][]models.Value) *models.Dataset {
	var all [][]models.Value
	for _, r := range rows {
		all = append(all, r...)
	}
	return models.NewDataset("test", salesColumns, all)
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func repeat(v float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func concat(parts ...[]float64) []float64 {
	var out []float64
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}
