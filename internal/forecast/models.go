package forecast

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// ProviderID identifies an upstream forecast source.
type ProviderID string

const (
	ProviderNASAPower   ProviderID = "nasa-power"
	ProviderMeteomatics ProviderID = "meteomatics"
)

// Query describes one forecast request. Coordinates and dates are forwarded
// to the provider as given; providers decide what they accept.
type Query struct {
	Start     string
	End       string
	Latitude  string
	Longitude string

	// Model and Scenario override the NASA POWER defaults when set.
	Model    string
	Scenario string
}

type valueKind uint8

const (
	kindAbsent valueKind = iota
	kindNumber
	kindText
)

// Value is a single table cell. The zero Value is the absent marker.
type Value struct {
	kind valueKind
	num  float64
	text string
}

// Absent returns the marker used for values a provider did not supply.
func Absent() Value { return Value{} }

// Number returns a numeric cell.
func Number(f float64) Value { return Value{kind: kindNumber, num: f} }

// Text returns a text cell.
func Text(s string) Value { return Value{kind: kindText, text: s} }

// NumberPtr returns Number(*f), or Absent when f is nil.
func NumberPtr(f *float64) Value {
	if f == nil {
		return Absent()
	}
	return Number(*f)
}

func (v Value) IsAbsent() bool { return v.kind == kindAbsent }

// Float returns the numeric value and whether v holds a number.
func (v Value) Float() (float64, bool) {
	return v.num, v.kind == kindNumber
}

// String renders v the way it appears in exported tables: empty for absent,
// shortest float form for numbers.
func (v Value) String() string {
	switch v.kind {
	case kindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case kindText:
		return v.text
	default:
		return ""
	}
}

func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case kindNumber:
		return json.Marshal(v.num)
	case kindText:
		return json.Marshal(v.text)
	default:
		return []byte("null"), nil
	}
}

func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*v = Absent()
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = Text(s)
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		// Booleans, objects and arrays are kept as their JSON text.
		*v = Text(string(data))
		return nil
	}
	*v = Number(f)
	return nil
}

// Row maps column names to cells.
type Row map[string]Value

// Table is a normalized provider response. Columns fixes the column order;
// every row carries every column.
type Table struct {
	Columns []string
	Rows    []Row
}

// Len returns the number of rows.
func (t Table) Len() int { return len(t.Rows) }

// Get returns the cell at row i, column col, or Absent.
func (t Table) Get(i int, col string) Value {
	if i < 0 || i >= len(t.Rows) {
		return Absent()
	}
	return t.Rows[i][col]
}

// Envelope is the paginated, partitioned response body.
type Envelope struct {
	Page     int         `json:"page"`
	PageSize int         `json:"page_size"`
	Total    int         `json:"total"`
	Tables   Partitioned `json:"tables"`
}
