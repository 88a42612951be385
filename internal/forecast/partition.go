package forecast

import (
	"bytes"
	"encoding/json"
)

// Point is one {date, value} pair of a Series.
type Point struct {
	Date  Value
	Value Value
}

// Series is a single column of a page paired with its date column.
type Series struct {
	Column     string
	DateColumn string
	Points     []Point
}

// MarshalJSON renders the series as [{<date column>: date, <column>: value}, ...].
func (s Series) MarshalJSON() ([]byte, error) {
	dateKey, err := json.Marshal(s.DateColumn)
	if err != nil {
		return nil, err
	}
	valueKey, err := json.Marshal(s.Column)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, p := range s.Points {
		if i > 0 {
			buf.WriteByte(',')
		}
		date, err := p.Date.MarshalJSON()
		if err != nil {
			return nil, err
		}
		value, err := p.Value.MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.WriteByte('{')
		buf.Write(dateKey)
		buf.WriteByte(':')
		buf.Write(date)
		buf.WriteByte(',')
		buf.Write(valueKey)
		buf.WriteByte(':')
		buf.Write(value)
		buf.WriteByte('}')
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

// Partitioned holds one Series per non-date column, in column order.
type Partitioned []Series

// MarshalJSON renders an object keyed by column name. Keys keep column order.
func (p Partitioned) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, s := range p {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(s.Column)
		if err != nil {
			return nil, err
		}
		series, err := s.MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(series)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Get returns the series for column, if present.
func (p Partitioned) Get(column string) (Series, bool) {
	for _, s := range p {
		if s.Column == column {
			return s, true
		}
	}
	return Series{}, false
}

// Columns returns the series column names in order.
func (p Partitioned) Columns() []string {
	cols := make([]string, len(p))
	for i, s := range p {
		cols[i] = s.Column
	}
	return cols
}

// DateColumn picks the partition pivot: a column named exactly "date" if
// there is one, otherwise the first column.
func DateColumn(columns []string) string {
	for _, c := range columns {
		if c == "date" {
			return c
		}
	}
	if len(columns) == 0 {
		return ""
	}
	return columns[0]
}

// Partition splits rows into one Series per non-date column. Each series has
// one point per row, in row order.
func Partition(columns []string, rows []Row) Partitioned {
	dateCol := DateColumn(columns)
	out := make(Partitioned, 0, len(columns))
	for _, c := range columns {
		if c == dateCol {
			continue
		}
		points := make([]Point, len(rows))
		for i, row := range rows {
			points[i] = Point{Date: row[dateCol], Value: row[c]}
		}
		out = append(out, Series{Column: c, DateColumn: dateCol, Points: points})
	}
	return out
}

// PartitionPage is Partition applied to a Page.
func PartitionPage(p Page) Partitioned {
	return Partition(p.Columns, p.Rows)
}
