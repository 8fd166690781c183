package models

import (
	"bytes"
	"strconv"
)

// ChatRequest is the body accepted by the copilot chat endpoint.
type ChatRequest struct {
	Query string `json:"query"`
}

// --- Dataset profile ---

// Profile column types.
const (
	ColumnNumeric     = "numeric"
	ColumnCategorical = "categorical"
)

// ValueCount is one entry of a categorical frequency table.
type ValueCount struct {
	Value string
	Count int
}

// ValueCounts is an ordered frequency table, encoded as a JSON object in
// slice order.
type ValueCounts []ValueCount

func (vc ValueCounts) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, entry := range vc {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := marshalNoEscape(entry.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.WriteString(strconv.Itoa(entry.Count))
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// ColumnProfile summarizes one column. Numeric columns fill Min/Max/Mean when
// Count > 0; categorical columns fill Unique and TopValues.
type ColumnProfile struct {
	Column    string       `json:"-"`
	Type      string       `json:"type"`
	Count     int          `json:"count"`
	Min       *float64     `json:"min,omitempty"`
	Max       *float64     `json:"max,omitempty"`
	Mean      *float64     `json:"mean,omitempty"`
	Unique    *int         `json:"unique,omitempty"`
	TopValues *ValueCounts `json:"top_values,omitempty"`
}

// DatasetProfile is the per-column profile in dataset column order, encoded
// as a JSON object keyed by column name.
type DatasetProfile []ColumnProfile

func (p DatasetProfile) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, col := range p {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := marshalNoEscape(col.Column)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		raw, err := marshalNoEscape(col)
		if err != nil {
			return nil, err
		}
		buf.Write(raw)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// --- Retrieval ---

// ScoredRow pairs a row with its relevance to a query.
type ScoredRow struct {
	Index int
	Row   Row
	Score int
}

// RetrievalContext is the grounding payload handed to the text generator.
type RetrievalContext struct {
	RowsScanned    int            `json:"rows_scanned"`
	DatasetProfile DatasetProfile `json:"dataset_profile"`
	RetrievedRows  []Row          `json:"retrieved_rows"`
}

// --- Copilot ---

// Insights are the locally computed business facts used as grounding and as
// the fallback when generation fails.
type Insights struct {
	TotalRevenue     float64  `json:"total_revenue"`
	TopProduct       string   `json:"top_product"`
	SlowMover        string   `json:"slow_mover"`
	LowStockProducts []string `json:"low_stock_products"`
}

// ContextUsed reports what the copilot fed the generator.
type ContextUsed struct {
	Insights
	RowsScanned     int `json:"rows_scanned"`
	RowsSentToModel int `json:"rows_sent_to_model"`
}

// Copilot providers.
const (
	ProviderGenerated = "generated"
	ProviderFallback  = "fallback"
)

// CopilotResponse is the chat answer with its grounding.
type CopilotResponse struct {
	Answer      string      `json:"answer"`
	Provider    string      `json:"provider"`
	Error       string      `json:"error,omitempty"`
	ContextUsed ContextUsed `json:"context_used"`
}
