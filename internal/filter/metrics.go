package filter

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	"github.com/klinki/typedoc-plugin-regex-filter/internal/logging"
)

const instrumentationName = "github.com/klinki/typedoc-plugin-regex-filter/internal/filter"

// metrics holds the filter counters. Nil instruments are skipped.
type metrics struct {
	matches       metric.Int64Counter
	removals      metric.Int64Counter
	removalErrors metric.Int64Counter
}

func newMetrics(meter metric.Meter, logger *logging.Logger) *metrics {
	m := &metrics{}
	ctx := context.Background()
	var err error

	m.matches, err = meter.Int64Counter(
		"regexfilter.matches_total",
		metric.WithDescription("Reflections whose name matched the pattern, labeled by outcome (removed, private, matched)"),
		metric.WithUnit("{reflection}"),
	)
	if err != nil {
		logger.Warn(ctx, "failed to create matches counter", zap.Error(err))
	}

	m.removals, err = meter.Int64Counter(
		"regexfilter.removals_total",
		metric.WithDescription("Queued reflections removed from the tree at resolve begin"),
		metric.WithUnit("{reflection}"),
	)
	if err != nil {
		logger.Warn(ctx, "failed to create removals counter", zap.Error(err))
	}

	m.removalErrors, err = meter.Int64Counter(
		"regexfilter.removal_errors_total",
		metric.WithDescription("Queued reflections the tree refused to remove"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		logger.Warn(ctx, "failed to create removal errors counter", zap.Error(err))
	}

	return m
}

func (m *metrics) recordMatch(ctx context.Context, o Outcome) {
	if m.matches != nil {
		m.matches.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", o.String())))
	}
}

func (m *metrics) recordRemoval(ctx context.Context, err error) {
	if err != nil {
		if m.removalErrors != nil {
			m.removalErrors.Add(ctx, 1)
		}
		return
	}
	if m.removals != nil {
		m.removals.Add(ctx, 1)
	}
}
