package techniques

import (
	"regexp"
	"strings"
)

// Detected domains shared across techniques. The first technique to infer a
// domain writes it into the chain context; later techniques treat it as
// authoritative.
const (
	DomainMathematical = "mathematical"
	DomainAlgorithmic  = "algorithmic"
	DomainCode         = "code"
	DomainWriting      = "writing"
)

// Complexity levels supplied by the classifier. The chain passes them through
// untouched; only techniques interpret them.
const (
	ComplexitySimple   = "simple"
	ComplexityModerate = "moderate"
	ComplexityComplex  = "complex"
)

var (
	mathPattern = regexp.MustCompile(`(?i)\b(solve|equation|integral|derivative|theorem|proof|probability|matrix|polynomial)\b|[0-9a-z]\s*[\^=]\s*[0-9a-z(-]`)
	algoPattern = regexp.MustCompile(`(?i)\b(algorithm|big-?o|complexity|sorting|binary search|graph traversal|dynamic programming|data structure)\b`)
	codePattern = regexp.MustCompile(`(?i)\b(function|class|refactor|debug|compile|unit test|api endpoint|stack trace)\b|\x60[^\x60]+\x60`)
	textPattern = regexp.MustCompile(`(?i)\b(essay|blog post|story|poem|article|rewrite|summarize|paraphrase|tone)\b`)
)

// detectDomain classifies the subject matter of a prompt. Order matters and is
// fixed: mathematical signals win over algorithmic ones, which win over
// general code and writing signals. Returns "" when nothing matches.
func detectDomain(prompt string) string {
	text := strings.TrimSpace(prompt)
	switch {
	case mathPattern.MatchString(text):
		return DomainMathematical
	case algoPattern.MatchString(text):
		return DomainAlgorithmic
	case codePattern.MatchString(text):
		return DomainCode
	case textPattern.MatchString(text):
		return DomainWriting
	default:
		return ""
	}
}

// complexityHints derives structural observations about a prompt that later
// techniques may find useful. Purely syntactic and deterministic.
func complexityHints(prompt string) []string {
	var hints []string
	if n := strings.Count(prompt, "?"); n > 1 {
		hints = append(hints, "prompt contains multiple questions")
	}
	if len(prompt) > 400 {
		hints = append(hints, "long prompt, likely multi-part task")
	}
	if strings.Contains(prompt, "\n") {
		hints = append(hints, "prompt has pre-existing structure")
	}
	return hints
}
