package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/i474232898/eye-of-horus/internal/config"
	"github.com/i474232898/eye-of-horus/internal/forecast"
	"github.com/i474232898/eye-of-horus/internal/logger"
)

type fakeExporter struct {
	mu       sync.Mutex
	queries  []forecast.Query
	names    []string
	failLat  string
	deadline bool
}

func (f *fakeExporter) Normalized(ctx context.Context, id forecast.ProviderID, q forecast.Query) (forecast.Table, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := ctx.Deadline(); ok {
		f.deadline = true
	}
	f.queries = append(f.queries, q)
	if q.Latitude == f.failLat {
		return forecast.Table{}, errors.New("upstream down")
	}
	return forecast.Table{Columns: []string{"Date"}}, nil
}

func (f *fakeExporter) Export(name string, _ forecast.Table) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.names = append(f.names, name)
	return "/tmp/" + name + ".csv", nil
}

func TestRunOnce(t *testing.T) {
	cfg := config.ExportConfig{
		Start: "20260101",
		End:   "20260107",
		Locations: []config.ExportLocation{
			{Lat: "1", Lon: "2"},
			{Lat: "3", Lon: "4"},
			{Lat: "5", Lon: "6"},
		},
	}
	fake := &fakeExporter{failLat: "3"}
	s := New(cfg, fake, time.Second, logger.Discard())

	paths := s.RunOnce(context.Background())

	if diff := cmp.Diff([]string{"/tmp/nasaforecast_1.csv", "/tmp/nasaforecast_3.csv"}, paths); diff != "" {
		t.Errorf("paths mismatch (-want +got):\n%s", diff)
	}
	if len(fake.queries) != 3 {
		t.Fatalf("queries = %d, want 3", len(fake.queries))
	}
	want := forecast.Query{Start: "20260101", End: "20260107", Latitude: "5", Longitude: "6"}
	if diff := cmp.Diff(want, fake.queries[2]); diff != "" {
		t.Errorf("query mismatch (-want +got):\n%s", diff)
	}
	if !fake.deadline {
		t.Error("expected a per-location deadline")
	}
}

func TestStart_NothingConfigured(t *testing.T) {
	s := New(config.ExportConfig{Interval: time.Minute}, &fakeExporter{}, time.Second, logger.Discard())
	if err := s.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer s.Stop()
	if n := len(s.scheduler.Jobs()); n != 0 {
		t.Errorf("jobs = %d, want 0", n)
	}
}

func TestStart_SchedulesExport(t *testing.T) {
	cfg := config.ExportConfig{
		Interval:  time.Hour,
		Provider:  string(forecast.ProviderMeteomatics),
		Locations: []config.ExportLocation{{Lat: "1", Lon: "2"}},
	}
	fake := &fakeExporter{}
	s := New(cfg, fake, time.Second, logger.Discard())
	if err := s.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer s.Stop()

	if n := len(s.scheduler.Jobs()); n != 1 {
		t.Fatalf("jobs = %d, want 1", n)
	}

	// gocron runs the job immediately on start.
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		fake.mu.Lock()
		n := len(fake.names)
		fake.mu.Unlock()
		if n > 0 {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}

	fake.mu.Lock()
	defer fake.mu.Unlock()
	if diff := cmp.Diff([]string{"meteforecastdata"}, fake.names); diff != "" {
		t.Errorf("names mismatch (-want +got):\n%s", diff)
	}
}

func TestExportName(t *testing.T) {
	tests := []struct {
		id   forecast.ProviderID
		i, n int
		want string
	}{
		{forecast.ProviderNASAPower, 0, 1, "nasaforecast"},
		{forecast.ProviderNASAPower, 1, 2, "nasaforecast_2"},
		{forecast.ProviderMeteomatics, 0, 1, "meteforecastdata"},
		{"other", 0, 1, "other"},
	}
	for _, tt := range tests {
		if got := exportName(tt.id, tt.i, tt.n); got != tt.want {
			t.Errorf("exportName(%q, %d, %d) = %q, want %q", tt.id, tt.i, tt.n, got, tt.want)
		}
	}
}
