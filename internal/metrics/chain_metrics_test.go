package metrics

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChainMetrics_Creation(t *testing.T) {
	t.Run("successfully create chain metrics", func(t *testing.T) {
		metrics, err := NewChainMetrics()
		require.NoError(t, err)
		assert.NotNil(t, metrics)
		assert.NotNil(t, metrics.chainsStartedCounter)
		assert.NotNil(t, metrics.chainsCompletedCounter)
		assert.NotNil(t, metrics.techniqueFailuresCounter)
		assert.NotNil(t, metrics.chainDurationHistogram)
		assert.NotNil(t, metrics.chainLengthHistogram)
		assert.NotNil(t, metrics.chainsActiveGauge)
	})
}

func TestChainMetrics_RecordChainStarted(t *testing.T) {
	metrics, err := NewChainMetrics()
	require.NoError(t, err)

	t.Run("record chain start", func(t *testing.T) {
		ctx := context.Background()
		assert.NotPanics(t, func() {
			metrics.RecordChainStarted(ctx, "problem_solving", "moderate", 3)
		})
	})

	t.Run("record multiple chain starts", func(t *testing.T) {
		ctx := context.Background()
		intents := []string{"problem_solving", "analysis", "explanation", "general"}
		for i, intent := range intents {
			metrics.RecordChainStarted(ctx, intent, "simple", i+1)
		}
	})
}

func TestChainMetrics_RecordChainCompleted(t *testing.T) {
	metrics, err := NewChainMetrics()
	require.NoError(t, err)

	t.Run("clean completion", func(t *testing.T) {
		ctx := context.Background()
		assert.NotPanics(t, func() {
			metrics.RecordChainCompleted(ctx, "problem_solving", 0, 25*time.Millisecond)
		})
	})

	t.Run("completion with errors", func(t *testing.T) {
		ctx := context.Background()
		assert.NotPanics(t, func() {
			metrics.RecordChainCompleted(ctx, "problem_solving", 2, 40*time.Millisecond)
		})
	})
}

func TestChainMetrics_RecordTechniqueFailure(t *testing.T) {
	metrics, err := NewChainMetrics()
	require.NoError(t, err)

	t.Run("record failure reasons", func(t *testing.T) {
		ctx := context.Background()
		reasons := []string{"unknown technique", "internal fault"}
		for _, reason := range reasons {
			assert.NotPanics(t, func() {
				metrics.RecordTechniqueFailure(ctx, "few_shot", reason)
			})
		}
	})
}

func TestChainMetrics_ConcurrentRecording(t *testing.T) {
	metrics, err := NewChainMetrics()
	require.NoError(t, err)

	t.Run("handle concurrent metric recording", func(t *testing.T) {
		ctx := context.Background()
		done := make(chan bool)

		for i := 0; i < 10; i++ {
			go func(id int) {
				metrics.RecordChainStarted(ctx, "problem_solving", "moderate", 2)
				duration := time.Duration(id) * 10 * time.Millisecond
				if id%2 == 0 {
					metrics.RecordChainCompleted(ctx, "problem_solving", 0, duration)
				} else {
					metrics.RecordTechniqueFailure(ctx, "chain_of_thought", "internal fault")
					metrics.RecordChainCompleted(ctx, "problem_solving", 1, duration)
				}
				done <- true
			}(i)
		}

		for i := 0; i < 10; i++ {
			<-done
		}
	})
}
