package forecast

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

const (
	ColumnDate      = "Date"
	ColumnLatitude  = "Latitude"
	ColumnLongitude = "Longitude"
	ColumnElevation = "Elevation"
)

// powerAnchor supplies the reference date set for NASA POWER rows.
const powerAnchor = "T2M"

// PowerParameter maps a NASA POWER parameter code to its column label.
type PowerParameter struct {
	Code  string
	Label string
}

// PowerParameters lists the requested NASA POWER parameters in column order.
var PowerParameters = []PowerParameter{
	{"T2M", "Temperature (oC)"},
	{"T2M_MIN", "Minimum Temperature (oC)"},
	{"T2M_MAX", "Maximum Temperature (oC)"},
	{"T2MDEW", "Dew Point (oC)"},
	{"PRECTOTCORR", "Precipitation (mm/day)"},
	{"RH2M", "Relative Humidity (%)"},
	{"QV2M", "Specific Humidity (g/kg)"},
	{"WS10M", "Wind Speed (m/s)"},
	{"ALLSKY_SFC_SW_DWN", "All Sky Surface Shortwave Downward Irradiance (W/m^2)"},
	{"ALLSKY_SFC_LW_DWN", "All Sky Surface Longwave Downward Irradiance (W/m^2)"},
}

// PowerParameterCodes returns the codes of PowerParameters in order.
func PowerParameterCodes() []string {
	codes := make([]string, len(PowerParameters))
	for i, p := range PowerParameters {
		codes[i] = p.Code
	}
	return codes
}

// PowerResponse is the GeoJSON feature returned by the NASA POWER daily point
// endpoint. Parameter values are keyed by YYYYMMDD date strings.
type PowerResponse struct {
	Type     string `json:"type"`
	Geometry struct {
		Type        string    `json:"type"`
		Coordinates []float64 `json:"coordinates"`
	} `json:"geometry"`
	Properties struct {
		Parameter map[string]map[string]*float64 `json:"parameter"`
	} `json:"properties"`
	Header struct {
		Title     string  `json:"title"`
		FillValue float64 `json:"fill_value"`
	} `json:"header"`
	Messages []string `json:"messages"`
}

func (r *PowerResponse) Provider() ProviderID { return ProviderNASAPower }

// Normalize builds one row per anchor date, in chronological order, with the
// point's coordinates and every parameter in PowerParameters. Parameters
// missing for a date are Absent.
func (r *PowerResponse) Normalize() (Table, error) {
	const op = "normalize nasa-power"
	if r == nil {
		return Table{}, NewError(KindDecode, op, errors.New("nil response"))
	}

	coords := r.Geometry.Coordinates
	if len(coords) < 2 {
		return Table{}, NewError(KindDecode, op, fmt.Errorf("geometry has %d coordinates, want at least 2", len(coords)))
	}
	elevation := Absent()
	if len(coords) > 2 {
		elevation = Number(coords[2])
	}

	anchor, ok := r.Properties.Parameter[powerAnchor]
	if !ok {
		return Table{}, NewError(KindDecode, op, fmt.Errorf("%w: %s", ErrMissingAnchor, powerAnchor))
	}

	dates := make([]string, 0, len(anchor))
	for d := range anchor {
		dates = append(dates, d)
	}
	// YYYYMMDD sorts chronologically.
	sort.Strings(dates)

	columns := []string{ColumnDate, ColumnLatitude, ColumnLongitude, ColumnElevation}
	for _, p := range PowerParameters {
		columns = append(columns, p.Label)
	}

	rows := make([]Row, 0, len(dates))
	for _, d := range dates {
		day, err := time.Parse("20060102", d)
		if err != nil {
			return Table{}, NewError(KindDecode, op, fmt.Errorf("date %q: %w", d, err))
		}
		row := Row{
			ColumnDate:      Text(day.Format("2006-01-02")),
			ColumnLatitude:  Number(coords[1]),
			ColumnLongitude: Number(coords[0]),
			ColumnElevation: elevation,
		}
		for _, p := range PowerParameters {
			row[p.Label] = NumberPtr(r.Properties.Parameter[p.Code][d])
		}
		rows = append(rows, row)
	}

	return Table{Columns: columns, Rows: rows}, nil
}
