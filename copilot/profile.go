// Package copilot grounds natural-language questions about the sales dataset:
// it profiles columns, ranks rows against the query, fits the result into a
// size budget and asks a text generator for an answer.
package copilot

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"retailbrain/models"
)

const maxTopValues = 10

// Profile summarizes every column in dataset order. A column is numeric when
// it holds no string cells; otherwise its non-null cells are counted as text.
func Profile(ds *models.Dataset) models.DatasetProfile {
	if ds == nil {
		return models.DatasetProfile{}
	}
	profile := make(models.DatasetProfile, len(ds.Columns))
	for c, name := range ds.Columns {
		cells := make([]models.Value, 0, len(ds.Rows))
		numeric := true
		for _, row := range ds.Rows {
			v := row.Values[c]
			if v.IsNull() {
				continue
			}
			if !v.IsNumber() {
				numeric = false
			}
			cells = append(cells, v)
		}
		if numeric {
			profile[c] = numericProfile(name, cells)
		} else {
			profile[c] = categoricalProfile(name, cells)
		}
	}
	return profile
}

func numericProfile(name string, cells []models.Value) models.ColumnProfile {
	p := models.ColumnProfile{Column: name, Type: models.ColumnNumeric, Count: len(cells)}
	if len(cells) == 0 {
		return p
	}
	nums := make([]float64, len(cells))
	for i, v := range cells {
		nums[i], _ = v.Float()
	}
	p.Min = finitePtr(floats.Min(nums))
	p.Max = finitePtr(floats.Max(nums))
	p.Mean = finitePtr(stat.Mean(nums, nil))
	return p
}

func categoricalProfile(name string, cells []models.Value) models.ColumnProfile {
	counts := make(map[string]int)
	var order []string
	for _, v := range cells {
		text := v.Text()
		if _, seen := counts[text]; !seen {
			order = append(order, text)
		}
		counts[text]++
	}

	// Equal counts keep first-seen order.
	sort.SliceStable(order, func(i, j int) bool { return counts[order[i]] > counts[order[j]] })
	if len(order) > maxTopValues {
		order = order[:maxTopValues]
	}
	top := make(models.ValueCounts, len(order))
	for i, text := range order {
		top[i] = models.ValueCount{Value: text, Count: counts[text]}
	}

	unique := len(counts)
	return models.ColumnProfile{
		Column:    name,
		Type:      models.ColumnCategorical,
		Count:     len(cells),
		Unique:    &unique,
		TopValues: &top,
	}
}

func finitePtr(f float64) *float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}
