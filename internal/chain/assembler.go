package chain

// Summary is the externally visible outcome of one chain invocation: the
// final prompt, which techniques actually succeeded (in execution order,
// duplicates preserved), the executor-recorded timings, a read-only snapshot
// of the accumulated context, and everything that went wrong along the way.
type Summary struct {
	FinalPrompt       string
	TechniquesApplied []string
	Timings           []Timing
	Context           Snapshot
	Errors            []StepError
	Warnings          []string
}

func assemble(prompt string, applied []string, ctx *Context, warnings []string) *Summary {
	snapshot := ctx.Snapshot()
	return &Summary{
		FinalPrompt:       prompt,
		TechniquesApplied: append([]string{}, applied...),
		Timings:           snapshot.Timings,
		Context:           snapshot,
		Errors:            snapshot.Errors,
		Warnings:          append([]string{}, warnings...),
	}
}

// TimingPayload is the wire form of one timing entry. Timings stay an ordered
// list rather than a map so duplicate technique ids each keep their own entry.
type TimingPayload struct {
	Technique  string  `json:"technique"`
	DurationMS float64 `json:"duration_ms"`
}

// SummaryPayload is the chain_summary object of the response body.
type SummaryPayload struct {
	TechniquesApplied  []string        `json:"techniques_applied"`
	TechniqueTimings   []TimingPayload `json:"technique_timings"`
	AccumulatedContext []string        `json:"accumulated_context"`
	DetectedDomain     string          `json:"detected_domain,omitempty"`
	ComplexityHints    []string        `json:"complexity_hints,omitempty"`
}

// ResponseMetadata groups the summary, per-step errors, and per-technique
// metadata in the response body.
type ResponseMetadata struct {
	ChainSummary      SummaryPayload                    `json:"chain_summary"`
	ChainErrors       []StepError                       `json:"chain_errors"`
	TechniqueMetadata map[string]map[string]interface{} `json:"technique_metadata"`
}

// Response is the shape external callers consume. Building it is pure
// reshaping of the Summary; no logic lives here.
type Response struct {
	EnhancedPrompt string           `json:"enhanced_prompt"`
	Metadata       ResponseMetadata `json:"metadata"`
	Warnings       []string         `json:"warnings"`
}

// BuildResponse converts a Summary into the response shape. Slices are always
// non-nil so empty collections serialize as [] rather than null.
func BuildResponse(s *Summary) Response {
	timings := make([]TimingPayload, 0, len(s.Timings))
	for _, t := range s.Timings {
		timings = append(timings, TimingPayload{
			Technique:  t.Technique,
			DurationMS: float64(t.Duration.Microseconds()) / 1000.0,
		})
	}

	chainErrors := s.Errors
	if chainErrors == nil {
		chainErrors = []StepError{}
	}
	warnings := s.Warnings
	if warnings == nil {
		warnings = []string{}
	}
	metadata := s.Context.TechniqueMetadata
	if metadata == nil {
		metadata = map[string]map[string]interface{}{}
	}
	notes := s.Context.AccumulatedNotes
	if notes == nil {
		notes = []string{}
	}
	applied := s.TechniquesApplied
	if applied == nil {
		applied = []string{}
	}

	return Response{
		EnhancedPrompt: s.FinalPrompt,
		Metadata: ResponseMetadata{
			ChainSummary: SummaryPayload{
				TechniquesApplied:  applied,
				TechniqueTimings:   timings,
				AccumulatedContext: notes,
				DetectedDomain:     s.Context.DetectedDomain,
				ComplexityHints:    s.Context.ComplexityHints,
			},
			ChainErrors:       chainErrors,
			TechniqueMetadata: metadata,
		},
		Warnings: warnings,
	}
}
