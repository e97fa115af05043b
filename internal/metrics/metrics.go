// Package metrics counts and times dispatched invocations.
package metrics

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const ServiceName = "articles"

var (
	routeKey  = attribute.Key("route")
	statusKey = attribute.Key("status")
)

// Recorder records one measurement per invocation.
type Recorder struct {
	invocations metric.Int64Counter
	duration    metric.Float64Histogram
}

func NewRecorder(meter metric.Meter) (*Recorder, error) {
	invocations, err := meter.Int64Counter(
		"articles.invocations",
		metric.WithDescription("Count of completed invocations, by route and response status"),
	)
	if err != nil {
		return nil, fmt.Errorf("create invocation counter: %w", err)
	}

	duration, err := meter.Float64Histogram(
		"articles.invocation.duration",
		metric.WithDescription("Invocation latency, by route and response status"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("create duration histogram: %w", err)
	}

	return &Recorder{invocations: invocations, duration: duration}, nil
}

// Observe records an invocation of route that answered status after elapsed.
// A nil Recorder records nothing.
func (r *Recorder) Observe(ctx context.Context, route string, status int, elapsed time.Duration) {
	if r == nil {
		return
	}

	attrs := metric.WithAttributes(routeKey.String(route), statusKey.String(strconv.Itoa(status)))
	r.invocations.Add(ctx, 1, attrs)
	r.duration.Record(ctx, elapsed.Seconds(), attrs)
}
