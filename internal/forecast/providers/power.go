package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/sony/gobreaker"

	"github.com/i474232898/eye-of-horus/internal/config"
	"github.com/i474232898/eye-of-horus/internal/forecast"
	"github.com/i474232898/eye-of-horus/internal/logger"
)

var errUnexpectedStatus = errors.New("unexpected status code")

// PowerProvider implements forecast.Provider for the NASA POWER projection
// daily point API. Any non-2xx response aborts the request.
type PowerProvider struct {
	baseURL  string
	model    string
	scenario string
	user     string
	client   *http.Client
	circuit  *gobreaker.CircuitBreaker
	log      *logger.Logger
}

func NewPowerProvider(client *http.Client, cfg config.NASAPowerConfig, log *logger.Logger) *PowerProvider {
	return &PowerProvider{
		baseURL:  cfg.BaseURL,
		model:    cfg.Model,
		scenario: cfg.Scenario,
		user:     cfg.User,
		client:   client,
		circuit:  newCircuitBreaker(string(forecast.ProviderNASAPower)),
		log:      log.With("provider", forecast.ProviderNASAPower),
	}
}

func (p *PowerProvider) Name() forecast.ProviderID {
	return forecast.ProviderNASAPower
}

func (p *PowerProvider) Fetch(ctx context.Context, q forecast.Query) (forecast.RawResponse, error) {
	const op = "fetch nasa-power"

	model := p.model
	if q.Model != "" {
		model = q.Model
	}
	scenario := p.scenario
	if q.Scenario != "" {
		scenario = q.Scenario
	}

	values := url.Values{}
	values.Set("start", q.Start)
	values.Set("end", q.End)
	values.Set("latitude", q.Latitude)
	values.Set("longitude", q.Longitude)
	values.Set("community", "ag")
	values.Set("parameters", strings.Join(forecast.PowerParameterCodes(), ","))
	values.Set("format", "json")
	values.Set("header", "true")
	values.Set("time-standard", "utc")
	values.Set("model", model)
	values.Set("scenario", scenario)
	if p.user != "" {
		values.Set("user", p.user)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s?%s", p.baseURL, values.Encode()), nil)
	if err != nil {
		return nil, forecast.NewError(forecast.KindUpstream, op, err)
	}
	req.Header.Set("Accept", "application/json")

	res, err := doRequest(ctx, p.client, p.circuit, string(forecast.ProviderNASAPower), req)
	if err != nil {
		return nil, forecast.NewError(forecast.KindUpstream, op, err)
	}
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, forecast.NewError(forecast.KindUpstream, op,
			fmt.Errorf("%w: %d: %s", errUnexpectedStatus, res.StatusCode, snippet(res.Body)))
	}

	var data forecast.PowerResponse
	if err := json.Unmarshal(res.Body, &data); err != nil {
		return nil, forecast.NewError(forecast.KindDecode, op, err)
	}
	p.log.Debug("fetched forecast", "start", q.Start, "end", q.End, "bytes", len(res.Body))
	return &data, nil
}
