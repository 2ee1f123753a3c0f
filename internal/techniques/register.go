// Package techniques provides the built-in prompt-engineering techniques and
// their registration into a chain registry. The set is fixed at compile time;
// there is no dynamic loading.
package techniques

import (
	"fmt"

	"github.com/promptforge/prompt-studio/enhancer-api/internal/chain"
)

// NewRegistry builds a registry populated with every built-in technique.
// Called once at process start; the result is read-only afterwards.
func NewRegistry() (*chain.Registry, error) {
	registry := chain.NewRegistry()
	builtins := []chain.Technique{
		ChainOfThought{},
		FewShot{},
		StepByStep{},
		RolePlay{},
		StructuredOutput{},
	}
	for _, technique := range builtins {
		if err := registry.Register(technique); err != nil {
			return nil, fmt.Errorf("failed to register built-in technique: %w", err)
		}
	}
	return registry, nil
}
