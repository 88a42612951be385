package forecast

import (
	"context"
	"fmt"

	"github.com/i474232898/eye-of-horus/internal/logger"
	"github.com/i474232898/eye-of-horus/internal/metrics"
)

// ExportNames are the CSV base names written per provider when a Service has
// an Exporter.
var ExportNames = map[ProviderID]string{
	ProviderNASAPower:   "nasaforecast",
	ProviderMeteomatics: "meteforecastdata",
}

// Service drives provider fetches through normalization, pagination and
// partitioning. It holds no per-request state.
type Service struct {
	providers map[ProviderID]Provider
	exporter  *Exporter
	log       *logger.Logger
}

// NewService creates a new Service. exporter may be nil to skip CSV output.
func NewService(log *logger.Logger, exporter *Exporter, providers ...Provider) *Service {
	m := make(map[ProviderID]Provider, len(providers))
	for _, p := range providers {
		m[p.Name()] = p
	}
	return &Service{
		providers: m,
		exporter:  exporter,
		log:       log,
	}
}

// HasProvider reports whether id is configured.
func (s *Service) HasProvider(id ProviderID) bool {
	_, ok := s.providers[id]
	return ok
}

// Normalized fetches q from the provider and returns the normalized table.
func (s *Service) Normalized(ctx context.Context, id ProviderID, q Query) (Table, error) {
	p, ok := s.providers[id]
	if !ok {
		return Table{}, NewError(KindInvalidRequest, "select provider", fmt.Errorf("%w: %q", ErrUnknownProvider, id))
	}

	raw, err := p.Fetch(ctx, q)
	if err != nil {
		return Table{}, err
	}
	if raw == nil {
		return Table{}, NewError(KindUpstream, "fetch "+string(id), fmt.Errorf("provider returned no response"))
	}
	table, err := raw.Normalize()
	if err != nil {
		return Table{}, err
	}
	metrics.RowsNormalized.WithLabelValues(string(id)).Add(float64(table.Len()))
	s.log.Debug("normalized provider response", "provider", id, "rows", table.Len(), "columns", len(table.Columns))
	return table, nil
}

// Tables runs the full pipeline for one request and returns the envelope.
func (s *Service) Tables(ctx context.Context, id ProviderID, q Query, page, size int) (Envelope, error) {
	table, err := s.Normalized(ctx, id, q)
	if err != nil {
		return Envelope{}, err
	}

	if s.exporter != nil {
		s.export(ExportNames[id], table)
	}

	p := Paginate(table, page, size)
	return Envelope{
		Page:     p.Number,
		PageSize: p.Size,
		Total:    p.Total,
		Tables:   PartitionPage(p),
	}, nil
}

// Export writes table under name. It fails when the Service has no Exporter.
func (s *Service) Export(name string, table Table) (string, error) {
	if s.exporter == nil {
		return "", NewError(KindConfig, "export", fmt.Errorf("no export directory configured"))
	}
	path, err := s.exporter.Export(name, table)
	if err != nil {
		metrics.ExportsTotal.WithLabelValues("error").Inc()
		return "", err
	}
	metrics.ExportsTotal.WithLabelValues("ok").Inc()
	return path, nil
}

// export is the request-path variant of Export: failures are logged only.
func (s *Service) export(name string, table Table) {
	path, err := s.Export(name, table)
	if err != nil {
		s.log.Warn("failed to export normalized table", "name", name, logger.Err(err))
		return
	}
	s.log.Info("saved normalized table", "path", path, "rows", table.Len())
}
