package models

import (
	"time"

	"retailbrain/utils"
)

// SalesRecord is the typed view of one dataset row. Missing or unparseable
// cells leave the matching Has* flag false.
type SalesRecord struct {
	Index      int
	Date       time.Time
	HasDate    bool
	Product    string
	HasProduct bool
	UnitsSold  float64
	HasUnits   bool
	UnitPrice  float64
	HasPrice   bool
	Stock      float64
	HasStock   bool
}

// Revenue is units sold times unit price; rows missing either contribute 0.
func (r SalesRecord) Revenue() float64 {
	if !r.HasUnits || !r.HasPrice {
		return 0
	}
	return r.UnitsSold * r.UnitPrice
}

// Records converts every row into a SalesRecord using the dataset's Fields.
func (d *Dataset) Records() []SalesRecord {
	if d == nil {
		return nil
	}
	out := make([]SalesRecord, len(d.Rows))
	for i, row := range d.Rows {
		out[i] = d.record(i, row)
	}
	return out
}

func (d *Dataset) record(i int, row Row) SalesRecord {
	f := d.Fields
	rec := SalesRecord{Index: i}

	if v := row.Get(f.Date); v.Kind() == KindString {
		rec.Date, rec.HasDate = utils.ParseDate(v.Text())
	}
	if v := row.Get(f.Product); !v.IsNull() {
		rec.Product, rec.HasProduct = v.Text(), true
	}
	rec.UnitsSold, rec.HasUnits = row.Get(f.Units).Float()
	rec.UnitPrice, rec.HasPrice = row.Get(f.Price).Float()
	rec.Stock, rec.HasStock = row.Get(f.Stock).Float()
	return rec
}
