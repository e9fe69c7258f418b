package telemetry

import (
	"context"
	"os"
	"testing"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

func TestConfigureHoneycomb(t *testing.T) {
	tests := []struct {
		name        string
		apiKey      string
		envDataset  string
		dataset     string
		wantHeaders string
	}{
		{"no key leaves env alone", "", "", "runs", ""},
		{"dataset from options", "k1", "", "runs", "x-honeycomb-team=k1,x-honeycomb-dataset=runs"},
		{"env dataset wins", "k2", "nightly", "runs", "x-honeycomb-team=k2,x-honeycomb-dataset=nightly"},
		{"default dataset", "k3", "", "", "x-honeycomb-team=k3,x-honeycomb-dataset=tinyrogue"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("HONEYCOMB_TINYROGUE_API_KEY", tt.apiKey)
			t.Setenv("HONEYCOMB_TINYROGUE_DATASET", tt.envDataset)
			t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "")
			t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")

			configureHoneycomb(tt.dataset)

			if got := os.Getenv("OTEL_EXPORTER_OTLP_HEADERS"); got != tt.wantHeaders {
				t.Errorf("headers = %q, want %q", got, tt.wantHeaders)
			}
		})
	}
}

func TestTracerAndMeterWithoutSetup(t *testing.T) {
	_, span := Tracer("test").Start(context.Background(), "noop")
	span.End()

	counter, err := Meter("test").Int64Counter("test.count")
	if err != nil {
		t.Fatalf("Int64Counter: %v", err)
	}
	counter.Add(context.Background(), 1)
}

// recordingProvider remembers which meters were requested.
type recordingProvider struct {
	noop.MeterProvider
	names []string
}

func (p *recordingProvider) Meter(name string, opts ...metric.MeterOption) metric.Meter {
	p.names = append(p.names, name)
	return p.MeterProvider.Meter(name, opts...)
}

func TestMeterUsesHostProvider(t *testing.T) {
	host := &recordingProvider{}
	otel.SetMeterProvider(host)

	if _, err := Meter("world").Int64Counter("dungeon.generate.exhausted"); err != nil {
		t.Fatalf("Int64Counter: %v", err)
	}

	if len(host.names) != 1 || host.names[0] != "tinyrogue/world" {
		t.Errorf("host provider saw meters %v, want [tinyrogue/world]", host.names)
	}
}
