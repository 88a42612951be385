package httpapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/i474232898/eye-of-horus/internal/forecast"
)

// looseString accepts a JSON string or number and keeps its text, so
// coordinates and dates reach the provider exactly as the caller sent them.
type looseString string

func (s *looseString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*s = ""
	case len(data) > 0 && data[0] == '"':
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = looseString(v)
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("expected string or number, got %s", data)
		}
		*s = looseString(n.String())
	}
	return nil
}

// looseInt coerces a JSON number (truncated toward zero) or numeric string to
// an int. null is treated as unset.
type looseInt int

func (i *looseInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*i = 0
		return nil
	}

	var text string
	if len(data) > 0 && data[0] == '"' {
		if err := json.Unmarshal(data, &text); err != nil {
			return err
		}
		n, err := strconv.Atoi(strings.TrimSpace(text))
		if err != nil {
			return fmt.Errorf("invalid integer %q", text)
		}
		*i = looseInt(n)
		return nil
	}

	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("expected integer, got %s", data)
	}
	if f > math.MaxInt32 || f < math.MinInt32 {
		return fmt.Errorf("integer out of range: %s", data)
	}
	*i = looseInt(f)
	return nil
}

// tablesPayload is the JSON body of POST /eyeofhorus.
type tablesPayload struct {
	Start    looseString `json:"start"`
	End      looseString `json:"end"`
	Lat      looseString `json:"lat"`
	Lon      looseString `json:"lon"`
	Page     looseInt    `json:"page"`
	PageSize looseInt    `json:"page_size"`
	Provider string      `json:"provider"`
	Model    string      `json:"model"`
	Scenario string      `json:"scenario"`
}

// tablesRequest is the bound and defaulted request.
type tablesRequest struct {
	Start    string
	End      string
	Lat      string
	Lon      string
	Page     int    `validate:"gte=1"`
	PageSize int    `validate:"gte=1"`
	Provider string `validate:"oneof=nasa-power meteomatics"`
	Model    string
	Scenario string
}

// bind decodes body, fills defaults for unset or zero page values and
// validates the result. Dates and coordinates are not checked.
func (r *tablesRequest) bind(body []byte, defaultPageSize int) error {
	if len(bytes.TrimSpace(body)) == 0 {
		return errors.New("request body must be a JSON object")
	}
	var p tablesPayload
	if err := json.Unmarshal(body, &p); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}

	*r = tablesRequest{
		Start:    string(p.Start),
		End:      string(p.End),
		Lat:      string(p.Lat),
		Lon:      string(p.Lon),
		Page:     int(p.Page),
		PageSize: int(p.PageSize),
		Provider: p.Provider,
		Model:    p.Model,
		Scenario: p.Scenario,
	}
	if r.Page == 0 {
		r.Page = forecast.DefaultPage
	}
	if r.PageSize == 0 {
		r.PageSize = defaultPageSize
	}
	if r.Provider == "" {
		r.Provider = string(forecast.ProviderNASAPower)
	}

	return validate.Struct(r)
}

func (r tablesRequest) provider() forecast.ProviderID {
	return forecast.ProviderID(r.Provider)
}

func (r tablesRequest) query() forecast.Query {
	return forecast.Query{
		Start:     r.Start,
		End:       r.End,
		Latitude:  r.Lat,
		Longitude: r.Lon,
		Model:     r.Model,
		Scenario:  r.Scenario,
	}
}
