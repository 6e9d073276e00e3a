// Package telemetry wires a shared OpenTelemetry meter and tracer
// provider, bridged to Prometheus, for the three cmd/* benchmark
// drivers. zdd/homomorphism/petrinet never import this package
// themselves; zdd accepts a metric.Meter through its WithMeter option,
// so its only observability dependency is the OpenTelemetry metric
// API, not the SDK or the Prometheus bridge wired here.
package telemetry

import (
	"context"
	"net/http"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	otelprometheus "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

// Provider bundles the meter, tracer and HTTP handler one CLI command
// needs, plus a Shutdown to flush and release them on exit.
type Provider struct {
	Meter   metric.Meter
	Tracer  trace.Tracer
	Handler http.Handler

	meterProvider  *sdkmetric.MeterProvider
	tracerProvider *sdktrace.TracerProvider
}

// New builds a Provider instrumenting component (used as the
// instrumentation scope name for both the meter and the tracer) and
// exposing its metrics through registry via a Prometheus exporter.
func New(component string, registry *prometheus.Registry) (*Provider, error) {
	exporter, err := otelprometheus.New(otelprometheus.WithRegisterer(registry))
	if err != nil {
		return nil, errors.Wrap(err, "telemetry: create prometheus exporter")
	}

	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(exporter))
	tp := sdktrace.NewTracerProvider()

	return &Provider{
		Meter:          mp.Meter(component),
		Tracer:         tp.Tracer(component),
		Handler:        promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		meterProvider:  mp,
		tracerProvider: tp,
	}, nil
}

// Shutdown flushes and releases the underlying providers. It should be
// deferred immediately after New succeeds.
func (p *Provider) Shutdown(ctx context.Context) error {
	if err := p.tracerProvider.Shutdown(ctx); err != nil {
		return errors.Wrap(err, "telemetry: shutdown tracer provider")
	}
	if err := p.meterProvider.Shutdown(ctx); err != nil {
		return errors.Wrap(err, "telemetry: shutdown meter provider")
	}
	return nil
}
