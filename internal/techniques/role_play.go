package techniques

import (
	"github.com/promptforge/prompt-studio/enhancer-api/internal/chain"
)

// RolePlay prefixes the prompt with an expert persona. The persona follows the
// domain detected earlier in the chain when present, then the caller's intent.
type RolePlay struct{}

// Name implements chain.Technique.
func (RolePlay) Name() string { return "role_play" }

var domainPersonas = map[string]string{
	DomainMathematical: "a meticulous mathematics tutor who shows every step of the working",
	DomainAlgorithmic:  "a senior algorithms engineer who reasons about correctness and complexity",
	DomainCode:         "an experienced software engineer who values clarity and edge-case handling",
	DomainWriting:      "a professional editor with a sharp eye for structure and tone",
}

var intentPersonas = map[string]string{
	"problem_solving":  "a patient analyst who breaks problems into verifiable pieces",
	"code_generation":  "an experienced software engineer who writes production-quality code",
	"creative_writing": "an accomplished author with a distinctive, economical voice",
	"analysis":         "a rigorous analyst who separates evidence from interpretation",
	"explanation":      "a gifted teacher who builds explanations from first principles",
}

const defaultPersona = "a knowledgeable assistant who answers carefully and precisely"

// Apply implements chain.Technique.
func (RolePlay) Apply(req chain.Request) (chain.Result, error) {
	persona, source := pickPersona(req.Context.DetectedDomain, req.Intent)

	return chain.Result{
		Prompt: "You are " + persona + ".\n\n" + req.Prompt,
		Updates: chain.Update{
			Notes: []string{"role_play: assigned persona (" + source + ")"},
		},
		Metadata: map[string]interface{}{
			"persona":        persona,
			"persona_source": source,
		},
	}, nil
}

func pickPersona(domain, intent string) (persona, source string) {
	if p, ok := domainPersonas[domain]; ok {
		return p, "domain:" + domain
	}
	if p, ok := intentPersonas[intent]; ok {
		return p, "intent:" + intent
	}
	return defaultPersona, "default"
}
