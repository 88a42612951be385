package forecast

import "time"

// WarningParameter describes how a Meteomatics parameter code is laid out in
// the normalized table. Label is nil for parameters without a derived label.
type WarningParameter struct {
	Code        string
	Column      string
	LabelColumn string
	Label       func(Value) string
}

// WarningParameters lists the Meteomatics parameters in column order.
var WarningParameters = []WarningParameter{
	{"heat_index:C", "Heat Index (oC)", "Heat Index Label", HeatIndexLabel},
	{"t_apparent:C", "Apparent Temperature (oC)", "", nil},
	{"frost_warning_24h:idx", "Frost Warning", "Frost Warning Label", FrostLabel},
	{"heavy_rain_warning_24h:idx", "Heavy Rain Warning", "Heavy Rain Warning Label", HeavyRainLabel},
	{"wind_warning_24h:idx", "Wind Warning", "Wind Warning Label", WindLabel},
}

var warningByCode = func() map[string]WarningParameter {
	m := make(map[string]WarningParameter, len(WarningParameters))
	for _, p := range WarningParameters {
		m[p.Code] = p
	}
	return m
}()

// MeteomaticsResponse is the JSON body of a Meteomatics time series query.
type MeteomaticsResponse struct {
	Version       string                 `json:"version"`
	User          string                 `json:"user"`
	DateGenerated string                 `json:"dateGenerated"`
	Status        string                 `json:"status"`
	Data          []MeteomaticsParameter `json:"data"`
}

type MeteomaticsParameter struct {
	Parameter   string                  `json:"parameter"`
	Coordinates []MeteomaticsCoordinate `json:"coordinates"`
}

type MeteomaticsCoordinate struct {
	Lat   float64            `json:"lat"`
	Lon   float64            `json:"lon"`
	Dates []MeteomaticsEntry `json:"dates"`
}

type MeteomaticsEntry struct {
	Date  string `json:"date"`
	Value Value  `json:"value"`
}

func (r *MeteomaticsResponse) Provider() ProviderID { return ProviderMeteomatics }

type warningKey struct {
	date     string
	lat, lon float64
}

// Normalize merges every dated entry of every declared parameter into one row
// per (date, lat, lon), in first-seen order. Parameters not listed in
// WarningParameters are dropped. A nil or empty response yields a table with
// only the date and location columns.
func (r *MeteomaticsResponse) Normalize() (Table, error) {
	base := []string{ColumnDate, ColumnLatitude, ColumnLongitude}
	if r == nil {
		return Table{Columns: base}, nil
	}

	index := make(map[warningKey]int)
	var rows []Row
	present := make(map[string]bool)

	for _, param := range r.Data {
		wp, known := warningByCode[param.Parameter]
		if !known {
			continue
		}
		for _, coord := range param.Coordinates {
			for _, entry := range coord.Dates {
				date := warningDate(entry.Date)
				key := warningKey{date: date, lat: coord.Lat, lon: coord.Lon}
				i, ok := index[key]
				if !ok {
					i = len(rows)
					index[key] = i
					rows = append(rows, Row{
						ColumnDate:      Text(date),
						ColumnLatitude:  Number(coord.Lat),
						ColumnLongitude: Number(coord.Lon),
					})
				}
				row := rows[i]

				row[wp.Column] = numericOrRaw(entry.Value)
				present[wp.Column] = true
				if wp.Label != nil {
					row[wp.LabelColumn] = Text(wp.Label(entry.Value))
					present[wp.LabelColumn] = true
				}
			}
		}
	}

	columns := base
	for _, p := range WarningParameters {
		if present[p.Column] {
			columns = append(columns, p.Column)
		}
		if p.Label != nil && present[p.LabelColumn] {
			columns = append(columns, p.LabelColumn)
		}
	}

	for _, row := range rows {
		for _, c := range columns {
			if _, ok := row[c]; !ok {
				row[c] = Absent()
			}
		}
	}

	return Table{Columns: columns, Rows: rows}, nil
}

// warningDate reduces ISO-8601 timestamps to YYYYMMDD. Anything that does not
// start with a YYYY-MM-DD date is returned unchanged.
func warningDate(s string) string {
	if len(s) < 10 {
		return s
	}
	t, err := time.Parse("2006-01-02", s[:10])
	if err != nil {
		return s
	}
	return t.Format("20060102")
}

func numericOrRaw(v Value) Value {
	if f, ok := parseFloat(v); ok {
		return Number(f)
	}
	return v
}
