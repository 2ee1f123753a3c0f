package techniques

import (
	"fmt"
	"strings"

	"github.com/promptforge/prompt-studio/enhancer-api/internal/chain"
)

// FewShot prepends worked examples to the prompt. The bank is chosen from the
// domain detected earlier in the chain when present (that detection is
// authoritative), otherwise from the caller's intent, otherwise from a small
// general bank with an advisory warning.
type FewShot struct{}

// Name implements chain.Technique.
func (FewShot) Name() string { return "few_shot" }

// Apply implements chain.Technique.
func (FewShot) Apply(req chain.Request) (chain.Result, error) {
	var warnings []string

	bank, specific := examplesFor(req.Context.DetectedDomain, req.Intent)
	if !specific {
		warnings = append(warnings, "few_shot: no domain or intent examples available, using general defaults")
	}

	count := defaultExampleCount(req.Complexity)
	if override, ok := req.Options["example_count"]; ok {
		if n, ok := asInt(override); ok && n > 0 {
			count = n
		} else {
			warnings = append(warnings, fmt.Sprintf("few_shot: invalid example_count option %v, using default", override))
		}
	}
	if count > len(bank) {
		warnings = append(warnings, fmt.Sprintf("few_shot: only %d examples available, requested %d", len(bank), count))
		count = len(bank)
	}

	var b strings.Builder
	b.WriteString("Here are worked examples of the expected reasoning:\n")
	for i, ex := range bank[:count] {
		fmt.Fprintf(&b, "\nExample %d:\nInput: %s\nOutput: %s\n", i+1, ex.Input, ex.Output)
	}
	b.WriteString("\nNow apply the same approach to the following:\n\n")
	b.WriteString(req.Prompt)

	source := "general"
	if req.Context.DetectedDomain != "" && specific {
		source = req.Context.DetectedDomain
	} else if specific {
		source = "intent:" + req.Intent
	}

	return chain.Result{
		Prompt: b.String(),
		Updates: chain.Update{
			Notes: []string{fmt.Sprintf("few_shot: added %d %s examples", count, source)},
		},
		Metadata: map[string]interface{}{
			"example_count":  count,
			"example_source": source,
		},
		Warnings: warnings,
	}, nil
}

func defaultExampleCount(complexity string) int {
	switch complexity {
	case ComplexitySimple:
		return 1
	case ComplexityComplex:
		return 3
	default:
		return 2
	}
}

// asInt accepts the numeric types JSON decoding and direct construction
// produce for option values.
func asInt(v interface{}) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		if n == float64(int(n)) {
			return int(n), true
		}
		return 0, false
	default:
		return 0, false
	}
}
