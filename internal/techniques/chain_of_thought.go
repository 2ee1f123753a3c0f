package techniques

import (
	"github.com/promptforge/prompt-studio/enhancer-api/internal/chain"
)

// ChainOfThought appends a reasoning scaffold to the prompt and, when it runs
// before any other technique has classified the prompt, detects the subject
// domain and records it in the context for the rest of the chain.
type ChainOfThought struct{}

// Name implements chain.Technique.
func (ChainOfThought) Name() string { return "chain_of_thought" }

var cotScaffolds = map[string]string{
	DomainMathematical: "Reason through this step by step: state what is known and what is asked, " +
		"show every algebraic manipulation explicitly, and verify the result by substitution before answering.",
	DomainAlgorithmic: "Reason through this step by step: describe the approach before any code, " +
		"walk through a small example by hand, and state the time and space complexity of the solution.",
	DomainCode: "Reason through this step by step: restate the requirement, consider edge cases " +
		"and failure modes, then derive the implementation from that analysis.",
	DomainWriting: "Think through this step by step: identify the audience and intent first, " +
		"outline the structure, then draft.",
}

const cotDefaultScaffold = "Let's think through this step by step before giving the final answer."

// Apply implements chain.Technique.
func (ChainOfThought) Apply(req chain.Request) (chain.Result, error) {
	updates := chain.Update{}

	domain := req.Context.DetectedDomain
	if domain == "" {
		if detected := detectDomain(req.Prompt); detected != "" {
			domain = detected
			updates.DetectedDomain = detected
			updates.Notes = append(updates.Notes, "chain_of_thought: detected "+detected+" domain")
		}
	}

	scaffold, ok := cotScaffolds[domain]
	if !ok {
		scaffold = cotDefaultScaffold
	}
	if req.Complexity == ComplexityComplex {
		scaffold += " Double-check each intermediate conclusion before moving on."
	}

	updates.ComplexityHints = append(updates.ComplexityHints, complexityHints(req.Prompt)...)
	updates.Notes = append(updates.Notes, "chain_of_thought: added reasoning scaffold")

	metadataDomain := domain
	if metadataDomain == "" {
		metadataDomain = "general"
	}

	return chain.Result{
		Prompt:  req.Prompt + "\n\n" + scaffold,
		Updates: updates,
		Metadata: map[string]interface{}{
			"domain":   metadataDomain,
			"scaffold": scaffoldStyle(domain),
		},
	}, nil
}

func scaffoldStyle(domain string) string {
	if domain == "" {
		return "general"
	}
	return domain
}
