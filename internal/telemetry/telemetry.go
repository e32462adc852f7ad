// Package telemetry installs in-process OpenTelemetry providers and
// summarizes what they recorded. Nothing is exported over the network.
package telemetry

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// SpanSummary is the part of a finished span worth printing.
type SpanSummary struct {
	Name     string        `json:"name" yaml:"name"`
	Parent   string        `json:"parent,omitempty" yaml:"parent,omitempty"`
	Duration time.Duration `json:"duration" yaml:"duration"`
	Status   string        `json:"status" yaml:"status"`
	Error    string        `json:"error,omitempty" yaml:"error,omitempty"`
}

// Recorder is a span processor that keeps a summary of every ended span.
type Recorder struct {
	mu    sync.Mutex
	names map[string]string
	spans []SpanSummary
}

func NewRecorder() *Recorder {
	return &Recorder{names: make(map[string]string)}
}

func (r *Recorder) OnStart(_ context.Context, s sdktrace.ReadWriteSpan) {
	r.mu.Lock()
	r.names[s.SpanContext().SpanID().String()] = s.Name()
	r.mu.Unlock()
}

func (r *Recorder) OnEnd(s sdktrace.ReadOnlySpan) {
	summary := SpanSummary{
		Name:     s.Name(),
		Duration: s.EndTime().Sub(s.StartTime()),
		Status:   s.Status().Code.String(),
		Error:    s.Status().Description,
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if s.Parent().IsValid() {
		summary.Parent = r.names[s.Parent().SpanID().String()]
	}
	r.spans = append(r.spans, summary)
}

func (r *Recorder) Shutdown(context.Context) error { return nil }

func (r *Recorder) ForceFlush(context.Context) error { return nil }

// Spans returns the ended spans in the order they ended.
func (r *Recorder) Spans() []SpanSummary {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.spans)
}

// Telemetry owns the SDK providers installed by Setup.
type Telemetry struct {
	TracerProvider *sdktrace.TracerProvider
	MeterProvider  *sdkmetric.MeterProvider

	recorder *Recorder
	reader   *sdkmetric.ManualReader
}

// Setup creates SDK tracer and meter providers and installs them globally.
func Setup(serviceName, version string) (*Telemetry, error) {
	res, err := resource.Merge(resource.Default(), resource.NewSchemaless(
		attribute.String("service.name", serviceName),
		attribute.String("service.version", version),
	))
	if err != nil {
		return nil, fmt.Errorf("failed to build resource: %w", err)
	}

	t := &Telemetry{
		recorder: NewRecorder(),
		reader:   sdkmetric.NewManualReader(),
	}
	t.TracerProvider = sdktrace.NewTracerProvider(
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
		sdktrace.WithSpanProcessor(t.recorder),
	)
	t.MeterProvider = sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(t.reader),
	)

	otel.SetTracerProvider(t.TracerProvider)
	otel.SetMeterProvider(t.MeterProvider)
	return t, nil
}

// Spans returns the summaries of all ended spans.
func (t *Telemetry) Spans() []SpanSummary { return t.recorder.Spans() }

// Counters collects every int64 sum, keyed by metric name and attributes,
// e.g. "catalog.operations{operation=add_variant,outcome=ok}".
func (t *Telemetry) Counters(ctx context.Context) (map[string]int64, error) {
	var rm metricdata.ResourceMetrics
	if err := t.reader.Collect(ctx, &rm); err != nil {
		return nil, fmt.Errorf("failed to collect metrics: %w", err)
	}

	counters := make(map[string]int64)
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			sum, ok := m.Data.(metricdata.Sum[int64])
			if !ok {
				continue
			}
			for _, dp := range sum.DataPoints {
				counters[m.Name+labels(dp.Attributes)] += dp.Value
			}
		}
	}
	return counters, nil
}

func labels(set attribute.Set) string {
	if set.Len() == 0 {
		return ""
	}
	parts := make([]string, 0, set.Len())
	for _, kv := range set.ToSlice() {
		parts = append(parts, string(kv.Key)+"="+kv.Value.Emit())
	}
	return "{" + strings.Join(parts, ",") + "}"
}

// WriteSummary prints spans and counters as plain text.
func (t *Telemetry) WriteSummary(ctx context.Context, w io.Writer) error {
	for _, s := range t.Spans() {
		line := fmt.Sprintf("span %-32s %-6s %s", s.Name, s.Status, s.Duration.Round(time.Microsecond))
		if s.Parent != "" {
			line += " parent=" + s.Parent
		}
		if s.Error != "" {
			line += " error=" + s.Error
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}

	counters, err := t.Counters(ctx)
	if err != nil {
		return err
	}
	keys := make([]string, 0, len(counters))
	for k := range counters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if _, err := fmt.Fprintf(w, "metric %s %d\n", k, counters[k]); err != nil {
			return err
		}
	}
	return nil
}

// Shutdown flushes and stops both providers.
func (t *Telemetry) Shutdown(ctx context.Context) error {
	return errors.Join(
		t.TracerProvider.Shutdown(ctx),
		t.MeterProvider.Shutdown(ctx),
	)
}
