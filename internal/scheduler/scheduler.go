package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/i474232898/eye-of-horus/internal/config"
	"github.com/i474232898/eye-of-horus/internal/forecast"
	"github.com/i474232898/eye-of-horus/internal/logger"
)

// Exporter is the part of forecast.Service the scheduler needs.
type Exporter interface {
	Normalized(ctx context.Context, id forecast.ProviderID, q forecast.Query) (forecast.Table, error)
	Export(name string, table forecast.Table) (string, error)
}

// Scheduler periodically fetches the configured export locations and writes
// their normalized tables to CSV.
type Scheduler struct {
	scheduler *gocron.Scheduler
	service   Exporter
	cfg       config.ExportConfig
	log       *logger.Logger
	timeout   time.Duration
}

// New creates a new Scheduler. timeout bounds each location's fetch.
func New(cfg config.ExportConfig, service Exporter, timeout time.Duration, log *logger.Logger) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	s.SingletonModeAll()
	return &Scheduler{
		scheduler: s,
		service:   service,
		cfg:       cfg,
		log:       log,
		timeout:   timeout,
	}
}

// Start schedules the export job and starts the underlying scheduler. A zero
// interval or an empty location list schedules nothing.
func (s *Scheduler) Start() error {
	if s.cfg.Interval <= 0 || len(s.cfg.Locations) == 0 {
		s.log.Info("scheduler: no export configured; nothing to schedule")
		return nil
	}

	_, err := s.scheduler.Every(s.cfg.Interval).Do(func() {
		s.log.Info("scheduler: running export job", "locations", len(s.cfg.Locations))
		s.RunOnce(context.Background())
		s.log.Info("scheduler: completed export job")
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// RunOnce exports every configured location sequentially and returns the
// paths written. Failures are logged and skipped.
func (s *Scheduler) RunOnce(ctx context.Context) []string {
	id := forecast.ProviderID(s.cfg.Provider)
	if id == "" {
		id = forecast.ProviderNASAPower
	}

	var paths []string
	for i, loc := range s.cfg.Locations {
		q := forecast.Query{
			Start:     s.cfg.Start,
			End:       s.cfg.End,
			Latitude:  loc.Lat,
			Longitude: loc.Lon,
		}
		name := exportName(id, i, len(s.cfg.Locations))

		path, err := s.exportLocation(ctx, id, q, name)
		if err != nil {
			s.log.Error("scheduler: export failed", "lat", loc.Lat, "lon", loc.Lon, logger.Err(err))
			continue
		}
		paths = append(paths, path)
	}
	return paths
}

func (s *Scheduler) exportLocation(ctx context.Context, id forecast.ProviderID, q forecast.Query, name string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	table, err := s.service.Normalized(ctx, id, q)
	if err != nil {
		return "", err
	}
	return s.service.Export(name, table)
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}

// exportName is the provider's base name, suffixed with the location index
// when more than one location is configured.
func exportName(id forecast.ProviderID, i, n int) string {
	base := forecast.ExportNames[id]
	if base == "" {
		base = string(id)
	}
	if n <= 1 {
		return base
	}
	return fmt.Sprintf("%s_%d", base, i+1)
}
