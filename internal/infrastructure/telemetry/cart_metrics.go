package telemetry

import (
	"context"
	"errors"

	"github.com/shoplite/storefront/internal/domain/shared"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Cart metric names
const (
	MetricCartMutations = "storefront.cart.mutations"
	MetricCartLines     = "storefront.cart.lines"
)

// CartLineBuckets bucket the number of lines left in a cart.
var CartLineBuckets = []float64{0, 1, 2, 3, 5, 8, 13, 21, 50}

// Outcome values for AttrOutcome
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

// CartMetrics records cart mutations. It satisfies the cart store's
// MetricsRecorder.
type CartMetrics struct {
	mutations *Counter
	lines     *Histogram
}

// NewCartMetrics creates the cart instruments on meter
func NewCartMetrics(meter metric.Meter) (*CartMetrics, error) {
	if meter == nil {
		return nil, ErrMeterNil
	}

	mutations, err := NewCounter(meter,
		MetricCartMutations,
		"Cart mutations by operation and outcome",
		"{mutations}",
	)
	if err != nil {
		return nil, err
	}

	lines, err := NewHistogram(meter, HistogramOpts{
		Name:        MetricCartLines,
		Description: "Number of lines in the cart after a successful mutation",
		Unit:        "{lines}",
		Boundaries:  CartLineBuckets,
	})
	if err != nil {
		return nil, err
	}

	return &CartMetrics{mutations: mutations, lines: lines}, nil
}

// RecordCartMutation counts one mutation. Failed mutations are labelled with
// the domain error code when there is one.
func (m *CartMetrics) RecordCartMutation(ctx context.Context, operation string, lines int, err error) {
	attrs := []attribute.KeyValue{AttrOperation.String(operation)}
	if err != nil {
		attrs = append(attrs, AttrOutcome.String(OutcomeError), AttrErrorCode.String(errorCode(err)))
		m.mutations.Inc(ctx, attrs...)
		return
	}

	m.mutations.Inc(ctx, append(attrs, AttrOutcome.String(OutcomeSuccess))...)
	if lines >= 0 {
		m.lines.Record(ctx, float64(lines), AttrOperation.String(operation))
	}
}

func errorCode(err error) string {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code
	}
	return "UNKNOWN"
}

// ErrMeterNil is returned when a metrics constructor is given no meter
var ErrMeterNil = errors.New("telemetry: meter is nil")
