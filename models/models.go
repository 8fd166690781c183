package models

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"time"
)

// --- Tagged cell values ---

// ValueKind identifies what a cell holds.
type ValueKind uint8

const (
	KindNull ValueKind = iota
	KindNumber
	KindString
)

// Value is a single dataset cell: a number, a string or null.
type Value struct {
	kind ValueKind
	num  float64
	str  string
}

// Null returns an empty cell.
func Null() Value { return Value{} }

// Number wraps a numeric cell.
func Number(f float64) Value { return Value{kind: KindNumber, num: f} }

// String wraps a text cell.
func String(s string) Value { return Value{kind: KindString, str: s} }

func (v Value) Kind() ValueKind { return v.kind }
func (v Value) IsNull() bool    { return v.kind == KindNull }
func (v Value) IsNumber() bool  { return v.kind == KindNumber }

// Float returns the numeric content. Strings that hold a number are accepted
// so hand-built datasets behave like ingested ones.
func (v Value) Float() (float64, bool) {
	switch v.kind {
	case KindNumber:
		return v.num, true
	case KindString:
		f, err := strconv.ParseFloat(v.str, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

// Text renders the cell the way it appears in retrieval text and categorical
// profiles. Integral numbers print without a fractional part; null is empty.
func (v Value) Text() string {
	switch v.kind {
	case KindNumber:
		return FormatNumber(v.num)
	case KindString:
		return v.str
	}
	return ""
}

// MarshalJSON encodes the cell as a JSON number, string or null. Strings are
// only left HTML-unescaped when the outer encoder disables escaping too; see
// EncodeJSON.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindNumber:
		if math.IsNaN(v.num) || math.IsInf(v.num, 0) {
			return []byte("null"), nil
		}
		return []byte(FormatNumber(v.num)), nil
	case KindString:
		return marshalNoEscape(v.str)
	}
	return []byte("null"), nil
}

// FormatNumber prints integral values without a decimal point.
func FormatNumber(f float64) string {
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// --- Rows ---

// Row is an ordered column -> value mapping. Rows of one dataset share the
// same Columns slice.
type Row struct {
	Columns []string
	Values  []Value
}

// Get returns the value of the named column, or null when the column is absent.
func (r Row) Get(column string) Value {
	for i, name := range r.Columns {
		if name == column && i < len(r.Values) {
			return r.Values[i]
		}
	}
	return Null()
}

// Has reports whether the row carries the named column.
func (r Row) Has(column string) bool {
	for _, name := range r.Columns {
		if name == column {
			return true
		}
	}
	return false
}

// MarshalJSON writes the row as an object keeping column order. json.Marshal
// re-escapes HTML characters in the result; use EncodeJSON to keep them.
func (r Row) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range r.Columns {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := marshalNoEscape(name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		v := Null()
		if i < len(r.Values) {
			v = r.Values[i]
		}
		raw, err := v.MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(raw)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// --- Dataset ---

// Fields names the columns the sales analytics read.
type Fields struct {
	Date    string
	Product string
	Units   string
	Price   string
	Stock   string
}

// DefaultFields matches the upload format: date, product, sales, price, stock.
var DefaultFields = Fields{
	Date:    "date",
	Product: "product",
	Units:   "sales",
	Price:   "price",
	Stock:   "stock",
}

// Dataset is an immutable snapshot of an uploaded table. It is never mutated
// after construction; a new upload produces a new Dataset.
type Dataset struct {
	ID       string
	Columns  []string
	Rows     []Row
	Fields   Fields
	LoadedAt time.Time
}

// NewDataset builds a dataset from column names and raw cell values. Short
// value rows are padded with nulls.
func NewDataset(id string, columns []string, values [][]Value) *Dataset {
	cols := append([]string(nil), columns...)
	rows := make([]Row, len(values))
	for i, vals := range values {
		padded := make([]Value, len(cols))
		copy(padded, vals)
		rows[i] = Row{Columns: cols, Values: padded}
	}
	return &Dataset{
		ID:       id,
		Columns:  cols,
		Rows:     rows,
		Fields:   DefaultFields,
		LoadedAt: time.Now(),
	}
}

// Len returns the number of rows; a nil dataset has none.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Rows)
}

// HasColumn reports whether the dataset carries the named column.
func (d *Dataset) HasColumn(name string) bool {
	if d == nil {
		return false
	}
	for _, c := range d.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// EncodeJSON is json.Marshal without HTML escaping. It is the JSON encoder of
// the HTTP app, so responses match the CLI output and the copilot payload.
func EncodeJSON(v interface{}) ([]byte, error) {
	return marshalNoEscape(v)
}

func marshalNoEscape(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
