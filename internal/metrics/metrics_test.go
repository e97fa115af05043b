package metrics

import (
	"context"
	"testing"
	"time"

	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func TestObserve(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	r, err := NewRecorder(provider.Meter(ServiceName))
	if err != nil {
		t.Fatalf("NewRecorder() error = %v", err)
	}

	ctx := context.Background()
	r.Observe(ctx, "GET /article", 200, time.Millisecond)
	r.Observe(ctx, "GET /article", 200, time.Millisecond)
	r.Observe(ctx, "unknown", 500, time.Millisecond)

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(ctx, &rm); err != nil {
		t.Fatalf("Collect() error = %v", err)
	}

	counts := map[string]int64{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != "articles.invocations" {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			if !ok {
				t.Fatalf("invocations data = %T, want Sum[int64]", m.Data)
			}
			for _, dp := range sum.DataPoints {
				route, _ := dp.Attributes.Value(attribute.Key("route"))
				status, _ := dp.Attributes.Value(attribute.Key("status"))
				counts[route.AsString()+" "+status.AsString()] = dp.Value
			}
		}
	}

	if counts["GET /article 200"] != 2 || counts["unknown 500"] != 1 {
		t.Errorf("invocation counts = %v", counts)
	}
}

func TestNilRecorder(t *testing.T) {
	var r *Recorder
	r.Observe(context.Background(), "x", 200, 0)
}
