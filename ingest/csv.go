// Package ingest turns an uploaded CSV stream into an immutable dataset.
package ingest

import (
	"encoding/csv"
	"errors"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"retailbrain/models"
)

// Cell spellings read as missing values.
var naValues = map[string]bool{
	"": true, "#N/A": true, "#N/A N/A": true, "#NA": true, "-1.#IND": true, "-1.#QNAN": true,
	"-NaN": true, "-nan": true, "1.#IND": true, "1.#QNAN": true, "<NA>": true, "N/A": true,
	"NA": true, "NULL": true, "NaN": true, "None": true, "n/a": true, "nan": true, "null": true,
}

// ParseCSV reads a header row followed by data rows. A column whose non-missing
// cells all parse as finite numbers becomes numeric; any other column keeps its
// cells as strings.
func ParseCSV(r io.Reader) (*models.Dataset, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, models.NewError(models.ErrBadRequest, "CSV file is empty")
	}
	if err != nil {
		return nil, models.NewError(models.ErrBadRequest, "Invalid CSV header: %v", err)
	}
	columns := make([]string, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		columns[i] = name
	}

	var raw [][]string
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, models.NewError(models.ErrBadRequest, "Invalid CSV data: %v", err)
		}
		if len(record) == 1 && strings.TrimSpace(record[0]) == "" {
			continue
		}
		raw = append(raw, record)
	}

	numeric := make([]bool, len(columns))
	for c := range columns {
		numeric[c] = isNumericColumn(raw, c)
	}

	values := make([][]models.Value, len(raw))
	for i, record := range raw {
		row := make([]models.Value, len(columns))
		for c := range columns {
			row[c] = cell(record, c, numeric[c])
		}
		values[i] = row
	}
	return models.NewDataset(uuid.NewString(), columns, values), nil
}

func isNumericColumn(raw [][]string, c int) bool {
	for _, record := range raw {
		if c >= len(record) || isMissing(record[c]) {
			continue
		}
		if _, ok := parseFinite(record[c]); !ok {
			return false
		}
	}
	return true
}

func cell(record []string, c int, numeric bool) models.Value {
	if c >= len(record) || isMissing(record[c]) {
		return models.Null()
	}
	if numeric {
		f, _ := parseFinite(record[c])
		return models.Number(f)
	}
	return models.String(record[c])
}

func isMissing(s string) bool {
	return naValues[strings.TrimSpace(s)]
}

func parseFinite(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
