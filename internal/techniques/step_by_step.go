package techniques

import (
	"fmt"

	"github.com/promptforge/prompt-studio/enhancer-api/internal/chain"
)

// StepByStep appends an instruction to answer as an explicit numbered plan.
// The step budget scales with complexity and can be capped with the max_steps
// option.
type StepByStep struct{}

// Name implements chain.Technique.
func (StepByStep) Name() string { return "step_by_step" }

// Apply implements chain.Technique.
func (StepByStep) Apply(req chain.Request) (chain.Result, error) {
	var warnings []string

	steps := defaultStepBudget(req.Complexity)
	if override, ok := req.Options["max_steps"]; ok {
		if n, ok := asInt(override); ok && n > 0 {
			if n < steps {
				steps = n
			}
		} else {
			warnings = append(warnings, fmt.Sprintf("step_by_step: invalid max_steps option %v, using default", override))
		}
	}

	instruction := fmt.Sprintf(
		"Present the answer as a numbered plan of at most %d steps. Each step must state "+
			"one action and its expected outcome; finish with a short conclusion.", steps)

	return chain.Result{
		Prompt: req.Prompt + "\n\n" + instruction,
		Updates: chain.Update{
			Notes: []string{fmt.Sprintf("step_by_step: requested plan of at most %d steps", steps)},
		},
		Metadata: map[string]interface{}{
			"max_steps": steps,
		},
		Warnings: warnings,
	}, nil
}

func defaultStepBudget(complexity string) int {
	switch complexity {
	case ComplexitySimple:
		return 3
	case ComplexityComplex:
		return 7
	default:
		return 5
	}
}
