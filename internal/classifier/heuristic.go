package classifier

import (
	"context"
	"regexp"
	"strings"
)

// Intent labels. The chain treats these as opaque strings; they are defined
// here because this is where they are produced.
const (
	IntentProblemSolving  = "problem_solving"
	IntentCodeGeneration  = "code_generation"
	IntentCreativeWriting = "creative_writing"
	IntentAnalysis        = "analysis"
	IntentExplanation     = "explanation"
	IntentGeneral         = "general"
)

// Complexity labels.
const (
	ComplexitySimple   = "simple"
	ComplexityModerate = "moderate"
	ComplexityComplex  = "complex"
)

var (
	problemPattern  = regexp.MustCompile(`(?i)\b(solve|calculate|compute|find the|how many|how much|prove)\b`)
	codePattern     = regexp.MustCompile(`(?i)\b(write a function|implement|code|program|script|refactor|debug|fix the bug)\b`)
	creativePattern = regexp.MustCompile(`(?i)\b(write a (story|poem|song|essay|blog)|imagine|creative|fictional)\b`)
	analysisPattern = regexp.MustCompile(`(?i)\b(compare|analyze|analyse|evaluate|pros and cons|trade-?offs?|assess)\b`)
	explainPattern  = regexp.MustCompile(`(?i)\b(explain|what is|what are|how does|why does|describe)\b`)
)

// Heuristic is a deterministic local classifier used when the classifier
// service is unavailable and in tests. It is deliberately crude: the product
// degrades to it rather than failing the enhancement.
type Heuristic struct{}

// Classify implements Classifier. It never returns an error.
func (Heuristic) Classify(_ context.Context, text string) (Classification, error) {
	return Classification{
		Intent:     classifyIntent(text),
		Complexity: classifyComplexity(text),
		Confidence: 0.5,
	}, nil
}

func classifyIntent(text string) string {
	switch {
	case codePattern.MatchString(text):
		return IntentCodeGeneration
	case creativePattern.MatchString(text):
		return IntentCreativeWriting
	case problemPattern.MatchString(text):
		return IntentProblemSolving
	case analysisPattern.MatchString(text):
		return IntentAnalysis
	case explainPattern.MatchString(text):
		return IntentExplanation
	default:
		return IntentGeneral
	}
}

func classifyComplexity(text string) string {
	words := len(strings.Fields(text))
	clauses := strings.Count(text, ",") + strings.Count(text, ";") + strings.Count(text, " and ")
	switch {
	case words > 80 || clauses > 5:
		return ComplexityComplex
	case words > 20 || clauses > 1:
		return ComplexityModerate
	default:
		return ComplexitySimple
	}
}
