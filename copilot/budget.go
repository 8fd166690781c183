package copilot

import (
	"bytes"
	"encoding/json"
	"strconv"

	"retailbrain/models"
)

const shrinkFactor = 0.8

// Budget bounds the serialized retrieval context.
type Budget struct {
	ByteBudget int
	RowFloor   int
	RowCeiling int
}

// DefaultBudget allows 65000 bytes, never fewer than 25 or more than 250 rows.
func DefaultBudget() Budget {
	return Budget{ByteBudget: 65000, RowFloor: 25, RowCeiling: 250}
}

// BuildContext profiles the dataset, retrieves up to RowCeiling rows for the
// query and drops the least relevant rows until the payload fits ByteBudget or
// only RowFloor rows remain. The budget is best effort: a payload that is
// still too large at the floor is returned as is.
func BuildContext(ds *models.Dataset, query string, b Budget) (models.RetrievalContext, string) {
	var rows []models.Row
	if ds != nil {
		rows = ds.Rows
	}

	target := b.RowCeiling
	if len(rows) < target {
		target = len(rows)
	}
	ctx := models.RetrievalContext{
		RowsScanned:    len(rows),
		DatasetProfile: Profile(ds),
		RetrievedRows:  Retrieve(rows, query, target),
	}

	payload := encodeContext(ctx)
	for len(payload) > b.ByteBudget && len(ctx.RetrievedRows) > b.RowFloor {
		shrinkTo := int(float64(len(ctx.RetrievedRows)) * shrinkFactor)
		if shrinkTo < b.RowFloor {
			shrinkTo = b.RowFloor
		}
		ctx.RetrievedRows = ctx.RetrievedRows[:shrinkTo]
		payload = encodeContext(ctx)
	}
	return ctx, payload
}

// RetrieveContext returns the serialized context and the number of rows it
// carries.
func RetrieveContext(ds *models.Dataset, query string, b Budget) (string, int) {
	ctx, payload := BuildContext(ds, query, b)
	return payload, len(ctx.RetrievedRows)
}

// encodeContext writes compact JSON without HTML escaping. Every value in the
// context is finite, so encoding only fails on a programming error; the
// fallback keeps the row count visible.
func encodeContext(ctx models.RetrievalContext) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(ctx); err != nil {
		return `{"rows_scanned":` + strconv.Itoa(ctx.RowsScanned) + `}`
	}
	return string(bytes.TrimRight(buf.Bytes(), "\n"))
}
