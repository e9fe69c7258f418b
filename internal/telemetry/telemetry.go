// Package telemetry wires OpenTelemetry tracing for tinyrogue and hands out
// named tracers and meters to the other packages.
package telemetry

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

const serviceName = "tinyrogue"

// Version is reported as service.version.
const Version = "0.2.0"

// Options describe the process being exported.
type Options struct {
	// Dataset selects the Honeycomb dataset when HONEYCOMB_TINYROGUE_API_KEY is set.
	Dataset string
	// Seed is attached to the resource so traces of one run can be grouped.
	Seed int64
}

// Setup installs a global tracer provider exporting over OTLP HTTP. It does
// not install a meter provider; see Meter. The
// exporter reads the standard OTEL_EXPORTER_OTLP_* variables; Honeycomb
// credentials from our own variables are translated into them first.
//
// Returns a shutdown function that flushes pending spans.
func Setup(ctx context.Context, opts Options) (shutdown func(context.Context) error, err error) {
	configureHoneycomb(opts.Dataset)

	exporter, err := otlptracehttp.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("create otlp exporter: %w", err)
	}

	res, err := newResource(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("build resource: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	return tp.Shutdown, nil
}

// newResource builds the resource by hand; merging with resource.Default()
// fails when the schema URLs differ.
func newResource(ctx context.Context, opts Options) (*resource.Resource, error) {
	return resource.New(ctx,
		resource.WithAttributes(
			attribute.String("service.name", serviceName),
			attribute.String("service.version", Version),
			attribute.String("telemetry.sdk.language", "go"),
			attribute.String("telemetry.sdk.name", "opentelemetry"),
			attribute.String("host.name", hostname()),
			attribute.String("os.type", runtime.GOOS),
			attribute.String("process.runtime.name", "go"),
			attribute.String("process.runtime.version", runtime.Version()),
			attribute.Int64("tinyrogue.seed", opts.Seed),
		),
	)
}

// configureHoneycomb points the exporter at Honeycomb when an API key is
// present. A .env file may hold an unexpanded header reference, so the
// header is always rebuilt here.
func configureHoneycomb(dataset string) {
	apiKey := os.Getenv("HONEYCOMB_TINYROGUE_API_KEY")
	if apiKey == "" {
		return
	}
	if env := os.Getenv("HONEYCOMB_TINYROGUE_DATASET"); env != "" {
		dataset = env
	}
	if dataset == "" {
		dataset = serviceName
	}
	os.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "https://api.honeycomb.io")
	os.Setenv("OTEL_EXPORTER_OTLP_HEADERS",
		fmt.Sprintf("x-honeycomb-team=%s,x-honeycomb-dataset=%s", apiKey, dataset))
}

// Tracer returns a named tracer for the given component.
func Tracer(name string) trace.Tracer {
	return otel.GetTracerProvider().Tracer(serviceName + "/" + name)
}

// Meter returns a named meter for the given component.
//
// Setup only installs a tracer provider. Counters created from these meters
// are hooks: they record nothing until an embedding program registers its
// own provider with otel.SetMeterProvider before the counters are created.
func Meter(name string) metric.Meter {
	return otel.GetMeterProvider().Meter(serviceName + "/" + name)
}

func hostname() string {
	h, err := os.Hostname()
	if err != nil {
		return "unknown"
	}
	return h
}
