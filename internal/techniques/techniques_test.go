package techniques

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/promptforge/prompt-studio/enhancer-api/internal/chain"
)

func TestDetectDomain(t *testing.T) {
	tests := []struct {
		name   string
		prompt string
		want   string
	}{
		{"quadratic equation", "Solve x^2-5x+6=0", DomainMathematical},
		{"math keyword", "Prove the theorem about triangle inequality", DomainMathematical},
		{"algorithmic keyword", "Design an algorithm for sorting a linked list", DomainAlgorithmic},
		{"big-o", "What is the Big-O complexity of quicksort?", DomainAlgorithmic},
		{"code keyword", "Refactor this function to remove duplication", DomainCode},
		{"inline code", "Why does `range` copy the element here?", DomainCode},
		{"writing keyword", "Write a blog post about container gardening", DomainWriting},
		{"no signal", "What should I cook for dinner tonight?", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, detectDomain(tt.prompt))
		})
	}
}

func TestChainOfThought_DetectsDomainOnce(t *testing.T) {
	cot := ChainOfThought{}

	t.Run("detects when unset", func(t *testing.T) {
		result, err := cot.Apply(chain.Request{
			Prompt:     "Solve x^2-5x+6=0",
			Complexity: ComplexityModerate,
		})
		require.NoError(t, err)
		assert.Equal(t, DomainMathematical, result.Updates.DetectedDomain)
		assert.Contains(t, result.Prompt, "Solve x^2-5x+6=0")
		assert.Contains(t, result.Prompt, "step by step")
		assert.Equal(t, DomainMathematical, result.Metadata["domain"])
	})

	t.Run("honors prior detection", func(t *testing.T) {
		result, err := cot.Apply(chain.Request{
			Prompt:  "Solve x^2-5x+6=0",
			Context: chain.Snapshot{DetectedDomain: DomainWriting},
		})
		require.NoError(t, err)
		// A prior detection is authoritative; no overwrite is proposed.
		assert.Empty(t, result.Updates.DetectedDomain)
		assert.Equal(t, DomainWriting, result.Metadata["domain"])
	})

	t.Run("no signal leaves domain unset", func(t *testing.T) {
		result, err := cot.Apply(chain.Request{Prompt: "What should I cook tonight?"})
		require.NoError(t, err)
		assert.Empty(t, result.Updates.DetectedDomain)
		assert.Equal(t, "general", result.Metadata["domain"])
		assert.Contains(t, result.Prompt, cotDefaultScaffold)
	})

	t.Run("complex adds verification clause", func(t *testing.T) {
		result, err := cot.Apply(chain.Request{
			Prompt:     "Solve x^2-5x+6=0",
			Complexity: ComplexityComplex,
		})
		require.NoError(t, err)
		assert.Contains(t, result.Prompt, "Double-check each intermediate conclusion")
	})
}

func TestFewShot(t *testing.T) {
	fs := FewShot{}

	t.Run("uses detected domain bank", func(t *testing.T) {
		result, err := fs.Apply(chain.Request{
			Prompt:     "Solve x^2-5x+6=0",
			Intent:     "problem_solving",
			Complexity: ComplexityModerate,
			Context:    chain.Snapshot{DetectedDomain: DomainMathematical},
		})
		require.NoError(t, err)
		assert.Empty(t, result.Warnings)
		assert.Equal(t, 2, result.Metadata["example_count"])
		assert.Equal(t, DomainMathematical, result.Metadata["example_source"])
		assert.Contains(t, result.Prompt, "Example 1:")
		assert.Contains(t, result.Prompt, "Example 2:")
		assert.Contains(t, result.Prompt, domainExamples[DomainMathematical][0].Input)
		assert.True(t, strings.HasSuffix(result.Prompt, "Solve x^2-5x+6=0"))
	})

	t.Run("falls back to intent bank", func(t *testing.T) {
		result, err := fs.Apply(chain.Request{
			Prompt:     "How do I split a bill?",
			Intent:     "problem_solving",
			Complexity: ComplexitySimple,
		})
		require.NoError(t, err)
		assert.Empty(t, result.Warnings)
		assert.Equal(t, "intent:problem_solving", result.Metadata["example_source"])
		assert.Equal(t, 1, result.Metadata["example_count"])
	})

	t.Run("general fallback warns", func(t *testing.T) {
		result, err := fs.Apply(chain.Request{
			Prompt: "Give feedback on my plan",
			Intent: "general",
		})
		require.NoError(t, err)
		require.Len(t, result.Warnings, 1)
		assert.Contains(t, result.Warnings[0], "using general defaults")
		assert.Equal(t, "general", result.Metadata["example_source"])
	})

	t.Run("example_count option override", func(t *testing.T) {
		result, err := fs.Apply(chain.Request{
			Prompt:     "Solve x^2-5x+6=0",
			Complexity: ComplexitySimple,
			Context:    chain.Snapshot{DetectedDomain: DomainMathematical},
			Options:    map[string]interface{}{"example_count": float64(3)},
		})
		require.NoError(t, err)
		assert.Equal(t, 3, result.Metadata["example_count"])
	})

	t.Run("invalid option surfaces warning not error", func(t *testing.T) {
		result, err := fs.Apply(chain.Request{
			Prompt:  "Solve x^2-5x+6=0",
			Context: chain.Snapshot{DetectedDomain: DomainMathematical},
			Options: map[string]interface{}{"example_count": "many"},
		})
		require.NoError(t, err)
		require.NotEmpty(t, result.Warnings)
		assert.Contains(t, result.Warnings[0], "invalid example_count")
	})

	t.Run("count capped at bank size", func(t *testing.T) {
		result, err := fs.Apply(chain.Request{
			Prompt:  "Refactor this function",
			Context: chain.Snapshot{DetectedDomain: DomainCode},
			Options: map[string]interface{}{"example_count": 10},
		})
		require.NoError(t, err)
		assert.Equal(t, len(domainExamples[DomainCode]), result.Metadata["example_count"])
		require.NotEmpty(t, result.Warnings)
		assert.Contains(t, result.Warnings[0], "only")
	})
}

func TestStepByStep(t *testing.T) {
	sbs := StepByStep{}

	tests := []struct {
		name       string
		complexity string
		options    map[string]interface{}
		wantSteps  int
		wantWarn   bool
	}{
		{"simple", ComplexitySimple, nil, 3, false},
		{"moderate", ComplexityModerate, nil, 5, false},
		{"complex", ComplexityComplex, nil, 7, false},
		{"max_steps caps budget", ComplexityComplex, map[string]interface{}{"max_steps": 4}, 4, false},
		{"max_steps above budget ignored", ComplexitySimple, map[string]interface{}{"max_steps": 9}, 3, false},
		{"invalid max_steps warns", ComplexityModerate, map[string]interface{}{"max_steps": "lots"}, 5, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := sbs.Apply(chain.Request{
				Prompt:     "Plan a database migration",
				Complexity: tt.complexity,
				Options:    tt.options,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.wantSteps, result.Metadata["max_steps"])
			if tt.wantWarn {
				assert.NotEmpty(t, result.Warnings)
			} else {
				assert.Empty(t, result.Warnings)
			}
		})
	}
}

func TestRolePlay(t *testing.T) {
	rp := RolePlay{}

	tests := []struct {
		name       string
		domain     string
		intent     string
		wantSource string
	}{
		{"domain wins", DomainMathematical, "creative_writing", "domain:" + DomainMathematical},
		{"intent fallback", "", "analysis", "intent:analysis"},
		{"default persona", "", "smalltalk", "default"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := rp.Apply(chain.Request{
				Prompt:  "Help me out",
				Intent:  tt.intent,
				Context: chain.Snapshot{DetectedDomain: tt.domain},
			})
			require.NoError(t, err)
			assert.Equal(t, tt.wantSource, result.Metadata["persona_source"])
			assert.True(t, strings.HasPrefix(result.Prompt, "You are "))
			assert.True(t, strings.HasSuffix(result.Prompt, "Help me out"))
		})
	}
}

func TestStructuredOutput(t *testing.T) {
	so := StructuredOutput{}

	t.Run("markdown default", func(t *testing.T) {
		result, err := so.Apply(chain.Request{Prompt: "Compare the options"})
		require.NoError(t, err)
		assert.Equal(t, "markdown", result.Metadata["format"])
		assert.Contains(t, result.Prompt, "Markdown")
	})

	t.Run("analysis intent uses findings sections", func(t *testing.T) {
		result, err := so.Apply(chain.Request{Prompt: "Compare the options", Intent: "analysis"})
		require.NoError(t, err)
		assert.Contains(t, result.Prompt, "Key Findings")
	})

	t.Run("json format", func(t *testing.T) {
		result, err := so.Apply(chain.Request{
			Prompt:  "Compare the options",
			Options: map[string]interface{}{"format": "json"},
		})
		require.NoError(t, err)
		assert.Equal(t, "json", result.Metadata["format"])
		assert.Contains(t, result.Prompt, "JSON object")
	})

	t.Run("unsupported format warns and defaults", func(t *testing.T) {
		result, err := so.Apply(chain.Request{
			Prompt:  "Compare the options",
			Options: map[string]interface{}{"format": "yaml"},
		})
		require.NoError(t, err)
		assert.Equal(t, "markdown", result.Metadata["format"])
		require.Len(t, result.Warnings, 1)
		assert.Contains(t, result.Warnings[0], "unsupported format")
	})
}

func TestNewRegistry(t *testing.T) {
	registry, err := NewRegistry()
	require.NoError(t, err)
	assert.Equal(t, []string{
		"chain_of_thought",
		"few_shot",
		"role_play",
		"step_by_step",
		"structured_output",
	}, registry.Names())
}
