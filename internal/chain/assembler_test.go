package chain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildResponse(t *testing.T) {
	ctx := NewContext()
	ctx.Merge(Update{
		DetectedDomain: "mathematical",
		Notes:          []string{"chain_of_thought ran", "few_shot ran"},
	})
	ctx.setMetadata("chain_of_thought", map[string]interface{}{"domain": "mathematical"})
	ctx.recordTiming("chain_of_thought", 1500*time.Microsecond)
	ctx.recordTiming("few_shot", 2*time.Millisecond)
	ctx.recordError("bogus", "unknown technique")

	summary := assemble("enhanced", []string{"chain_of_thought", "few_shot"}, ctx, []string{`unknown technique "bogus" skipped`})
	resp := BuildResponse(summary)

	assert.Equal(t, "enhanced", resp.EnhancedPrompt)
	assert.Equal(t, []string{"chain_of_thought", "few_shot"}, resp.Metadata.ChainSummary.TechniquesApplied)
	assert.Equal(t, []string{"chain_of_thought ran", "few_shot ran"}, resp.Metadata.ChainSummary.AccumulatedContext)
	assert.Equal(t, "mathematical", resp.Metadata.ChainSummary.DetectedDomain)

	require.Len(t, resp.Metadata.ChainSummary.TechniqueTimings, 2)
	assert.Equal(t, "chain_of_thought", resp.Metadata.ChainSummary.TechniqueTimings[0].Technique)
	assert.InDelta(t, 1.5, resp.Metadata.ChainSummary.TechniqueTimings[0].DurationMS, 0.001)

	require.Len(t, resp.Metadata.ChainErrors, 1)
	assert.Equal(t, "bogus", resp.Metadata.ChainErrors[0].Technique)

	assert.Equal(t, "mathematical", resp.Metadata.TechniqueMetadata["chain_of_thought"]["domain"])
	require.Len(t, resp.Warnings, 1)
}

func TestBuildResponse_EmptyCollectionsSerializeAsArrays(t *testing.T) {
	summary := assemble("prompt", nil, NewContext(), nil)
	resp := BuildResponse(summary)

	raw, err := json.Marshal(resp)
	require.NoError(t, err)

	body := string(raw)
	assert.Contains(t, body, `"techniques_applied":[]`)
	assert.Contains(t, body, `"technique_timings":[]`)
	assert.Contains(t, body, `"accumulated_context":[]`)
	assert.Contains(t, body, `"chain_errors":[]`)
	assert.Contains(t, body, `"warnings":[]`)
	assert.NotContains(t, body, "null")
}
