package copilot

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"retailbrain/models"
)

func wideDataset(n int) *models.Dataset {
	values := make([][]models.Value, n)
	for i := range values {
		product := "Gadget"
		if i%3 == 0 {
			product = "Widget"
		}
		values[i] = []models.Value{
			models.String(fmt.Sprintf("2024-02-%02d", i%28+1)),
			models.String(product),
			models.Number(float64(i)),
			models.String(strings.Repeat("shelf note ", 8)),
		}
	}
	return models.NewDataset("wide", []string{"date", "product", "sales", "note"}, values)
}

func TestBuildContextWithinBudget(t *testing.T) {
	ds := wideDataset(100)
	b := Budget{ByteBudget: 1 << 20, RowFloor: 25, RowCeiling: 40}

	ctx, payload := BuildContext(ds, "widget", b)
	assert.Equal(t, 100, ctx.RowsScanned)
	assert.Len(t, ctx.RetrievedRows, 40)
	assert.True(t, strings.HasPrefix(payload, `{"rows_scanned":100,"dataset_profile":{"date":`))

	var decoded map[string]json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(payload), &decoded))
	assert.Contains(t, decoded, "retrieved_rows")
}

func TestBuildContextShrinksToFloor(t *testing.T) {
	ds := wideDataset(100)
	b := Budget{ByteBudget: 1, RowFloor: 25, RowCeiling: 40}

	ctx, payload := BuildContext(ds, "widget", b)
	assert.Len(t, ctx.RetrievedRows, 25, "40 -> 32 -> 25")
	assert.Greater(t, len(payload), b.ByteBudget, "the floor wins over the byte budget")
}

func TestBuildContextShrinkKeepsMostRelevant(t *testing.T) {
	ds := wideDataset(100)
	full, fullPayload := BuildContext(ds, "widget", Budget{ByteBudget: 1 << 20, RowFloor: 5, RowCeiling: 60})

	prevRows := len(full.RetrievedRows)
	for _, budget := range []int{len(fullPayload) - 1, len(fullPayload) / 2, len(fullPayload) / 4, len(fullPayload) / 8} {
		ctx, payload := BuildContext(ds, "widget", Budget{ByteBudget: budget, RowFloor: 5, RowCeiling: 60})

		n := len(ctx.RetrievedRows)
		assert.True(t, len(payload) <= budget || n == 5, "budget %d: %d bytes with %d rows", budget, len(payload), n)
		assert.LessOrEqual(t, n, prevRows)
		assert.Equal(t, full.RetrievedRows[:n], ctx.RetrievedRows)
		prevRows = n
	}
}

func TestBuildContextSmallDataset(t *testing.T) {
	ds := wideDataset(10)
	ctx, _ := BuildContext(ds, "widget", Budget{ByteBudget: 1, RowFloor: 25, RowCeiling: 250})
	assert.Len(t, ctx.RetrievedRows, 10)
}

func TestBuildContextEmpty(t *testing.T) {
	_, payload := BuildContext(nil, "widget", DefaultBudget())
	assert.Equal(t, `{"rows_scanned":0,"dataset_profile":{},"retrieved_rows":[]}`, payload)

	text, rows := RetrieveContext(models.NewDataset("e", []string{"product"}, nil), "", DefaultBudget())
	assert.Zero(t, rows)
	assert.Equal(t, `{"rows_scanned":0,"dataset_profile":{"product":{"type":"numeric","count":0}},"retrieved_rows":[]}`, text)
}

func TestBuildContextDoesNotEscapeHTML(t *testing.T) {
	ds := models.NewDataset("h", []string{"product"}, [][]models.Value{{models.String("Salt & <Pepper>")}})
	payload, rows := RetrieveContext(ds, "salt", DefaultBudget())
	assert.Equal(t, 1, rows)
	assert.Contains(t, payload, `"Salt & <Pepper>"`)
	assert.NotContains(t, payload, `\u0026`)
}
