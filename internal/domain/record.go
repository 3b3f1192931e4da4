package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Field names carried by the production datasets.
const (
	FieldCategory  = "category"
	FieldTarget    = "t_menge"
	FieldDayActual = "d_act"
	FieldMonActual = "m_act"
	FieldDMDaily   = "dm_daily"
	FieldDMMonth   = "dm_month"
	FieldDisDaily  = "dis_daily"
	FieldDisMonth  = "dis_month"
	FieldParameter = "parameter"
	FieldQuantity  = "menge"
	FieldPostDate  = "budat"
	FieldLineNo    = "sl_no"
)

// RawRecord is a single row as returned by a dataset read. No schema is
// enforced; fields a record does not carry are treated as missing.
type RawRecord map[string]any

// Text returns the field rendered as text and whether it holds a value.
// Absent, nil, empty, zero and false values all report ok == false.
func (r RawRecord) Text(field string) (string, bool) {
	v, ok := r[field]
	if !ok {
		return "", false
	}
	return ValueText(v)
}

// TextOr returns the field as text, or fallback when the field is absent.
func (r RawRecord) TextOr(field, fallback string) string {
	if s, ok := r.Text(field); ok {
		return s
	}
	return fallback
}

// Clone returns a shallow copy of the record.
func (r RawRecord) Clone() RawRecord {
	out := make(RawRecord, len(r)+1)
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Filter is an equality predicate on a single field.
type Filter struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

// Matches reports whether the record's field equals the filter value.
func (f Filter) Matches(r RawRecord) bool {
	v, ok := r[f.Field]
	if !ok || v == nil {
		return f.Value == ""
	}
	return FormatValue(v) == f.Value
}

// ValueText renders a single field value as text. Values that count as
// absent report ok == false.
func ValueText(v any) (string, bool) {
	if isFalsy(v) {
		return "", false
	}
	return FormatValue(v), true
}

func isFalsy(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	case []byte:
		return len(t) == 0
	case bool:
		return !t
	case float64:
		return t == 0
	case float32:
		return t == 0
	case int:
		return t == 0
	case int64:
		return t == 0
	case json.Number:
		f, err := t.Float64()
		return err == nil && f == 0
	}
	return false
}

// FormatValue renders a field value as text, including values that count
// as absent.
func FormatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []byte:
		return string(t)
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	}
	return fmt.Sprint(v)
}
