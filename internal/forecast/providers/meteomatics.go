package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/sony/gobreaker"

	"github.com/i474232898/eye-of-horus/internal/config"
	"github.com/i474232898/eye-of-horus/internal/forecast"
	"github.com/i474232898/eye-of-horus/internal/logger"
)

// meteomaticsParameters is the parameter list sent in the query path.
var meteomaticsParameters = []string{
	"frost_warning_24h:idx",
	"heat_index:C",
	"heavy_rain_warning_24h:idx",
	"wind_warning_24h:idx",
	"t_apparent:C",
}

// MeteomaticsProvider implements forecast.Provider for the Meteomatics API.
// Upstream failures are logged and reported as an empty response rather than
// an error.
type MeteomaticsProvider struct {
	baseURL  string
	model    string
	username string
	password string
	client   *http.Client
	circuit  *gobreaker.CircuitBreaker
	log      *logger.Logger

	credsOnce sync.Once
	credsErr  error
}

func NewMeteomaticsProvider(client *http.Client, cfg config.MeteomaticsConfig, log *logger.Logger) *MeteomaticsProvider {
	return &MeteomaticsProvider{
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		model:    cfg.Model,
		username: cfg.Username,
		password: cfg.Password,
		client:   client,
		circuit:  newCircuitBreaker(string(forecast.ProviderMeteomatics)),
		log:      log.With("provider", forecast.ProviderMeteomatics),
	}
}

func (p *MeteomaticsProvider) Name() forecast.ProviderID {
	return forecast.ProviderMeteomatics
}

// Fetch queries daily values between q.Start and q.End (ISO-8601 timestamps)
// for one coordinate. Missing credentials are a configuration error; every
// other failure yields an empty response.
func (p *MeteomaticsProvider) Fetch(ctx context.Context, q forecast.Query) (forecast.RawResponse, error) {
	p.credsOnce.Do(func() {
		if p.username == "" || p.password == "" {
			p.credsErr = forecast.NewError(forecast.KindConfig, "fetch meteomatics", forecast.ErrMissingCredentials)
		}
	})
	if p.credsErr != nil {
		return nil, p.credsErr
	}

	endpoint := fmt.Sprintf("%s/%s--%s:P1D/%s/%s,%s/json?model=%s",
		p.baseURL, q.Start, q.End, strings.Join(meteomaticsParameters, ","),
		q.Latitude, q.Longitude, url.QueryEscape(p.model))

	noData := &forecast.MeteomaticsResponse{}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		p.log.Error("failed to build request", logger.Err(err))
		return noData, nil
	}
	req.SetBasicAuth(p.username, p.password)

	res, err := doRequest(ctx, p.client, p.circuit, string(forecast.ProviderMeteomatics), req)
	if err != nil {
		p.log.Error("request failed", logger.Err(err))
		return noData, nil
	}
	if res.StatusCode != http.StatusOK {
		p.log.Error("unexpected status", "status", res.StatusCode, "body", snippet(res.Body))
		return noData, nil
	}

	var data forecast.MeteomaticsResponse
	if err := json.Unmarshal(res.Body, &data); err != nil {
		p.log.Error("failed to decode response", logger.Err(err))
		return noData, nil
	}
	return &data, nil
}
