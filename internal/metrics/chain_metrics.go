package metrics

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

var meter = otel.Meter("chain-metrics")

// ChainMetrics provides metrics collection for chain execution
type ChainMetrics struct {
	chainsStartedCounter     metric.Int64Counter
	chainsCompletedCounter   metric.Int64Counter
	techniqueFailuresCounter metric.Int64Counter
	chainDurationHistogram   metric.Float64Histogram
	chainLengthHistogram     metric.Int64Histogram
	chainsActiveGauge        metric.Int64UpDownCounter
}

// NewChainMetrics creates a new chain metrics collector
func NewChainMetrics() (*ChainMetrics, error) {
	chainsStartedCounter, err := meter.Int64Counter(
		"prompt_studio.chains.started",
		metric.WithDescription("Total number of chain invocations started"),
		metric.WithUnit("{chain}"),
	)
	if err != nil {
		return nil, err
	}

	chainsCompletedCounter, err := meter.Int64Counter(
		"prompt_studio.chains.completed",
		metric.WithDescription("Total number of chain invocations completed"),
		metric.WithUnit("{chain}"),
	)
	if err != nil {
		return nil, err
	}

	techniqueFailuresCounter, err := meter.Int64Counter(
		"prompt_studio.techniques.failed",
		metric.WithDescription("Total number of technique steps that failed or were unknown"),
		metric.WithUnit("{technique}"),
	)
	if err != nil {
		return nil, err
	}

	chainDurationHistogram, err := meter.Float64Histogram(
		"prompt_studio.chain.duration",
		metric.WithDescription("Duration of chain execution in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	chainLengthHistogram, err := meter.Int64Histogram(
		"prompt_studio.chain.length",
		metric.WithDescription("Number of technique ids requested per chain"),
		metric.WithUnit("{technique}"),
	)
	if err != nil {
		return nil, err
	}

	chainsActiveGauge, err := meter.Int64UpDownCounter(
		"prompt_studio.chains.active",
		metric.WithDescription("Number of currently running chain invocations"),
		metric.WithUnit("{chain}"),
	)
	if err != nil {
		return nil, err
	}

	return &ChainMetrics{
		chainsStartedCounter:     chainsStartedCounter,
		chainsCompletedCounter:   chainsCompletedCounter,
		techniqueFailuresCounter: techniqueFailuresCounter,
		chainDurationHistogram:   chainDurationHistogram,
		chainLengthHistogram:     chainLengthHistogram,
		chainsActiveGauge:        chainsActiveGauge,
	}, nil
}

// RecordChainStarted records the start of a chain invocation
func (cm *ChainMetrics) RecordChainStarted(ctx context.Context, intent, complexity string, length int) {
	cm.chainsStartedCounter.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("chain.intent", intent),
			attribute.String("chain.complexity", complexity),
		),
	)
	cm.chainLengthHistogram.Record(ctx, int64(length),
		metric.WithAttributes(
			attribute.String("chain.intent", intent),
		),
	)
	cm.chainsActiveGauge.Add(ctx, 1)
}

// RecordChainCompleted records a finished chain invocation
func (cm *ChainMetrics) RecordChainCompleted(ctx context.Context, intent string, errorCount int, duration time.Duration) {
	status := "completed"
	if errorCount > 0 {
		status = "completed_with_errors"
	}
	cm.chainsCompletedCounter.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("chain.intent", intent),
			attribute.String("status", status),
		),
	)
	cm.chainDurationHistogram.Record(ctx, duration.Seconds(),
		metric.WithAttributes(
			attribute.String("chain.intent", intent),
			attribute.String("status", status),
		),
	)
	cm.chainsActiveGauge.Add(ctx, -1)
}

// RecordTechniqueFailure records one failed or unknown technique step
func (cm *ChainMetrics) RecordTechniqueFailure(ctx context.Context, technique, reason string) {
	cm.techniqueFailuresCounter.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("technique.id", technique),
			attribute.String("failure.reason", reason),
		),
	)
}
