package chain

import (
	"time"
)

// Timing records how long a single technique took to run. Timings are
// captured by the Executor, never by techniques themselves.
type Timing struct {
	Technique string        `json:"technique"`
	Duration  time.Duration `json:"duration"`
}

// StepError records a per-technique failure (unknown id or internal fault).
type StepError struct {
	Technique string `json:"technique"`
	Message   string `json:"error"`
}

// Context is the accumulator passed through one chain invocation. It is owned
// exclusively by the Executor for the lifetime of a single invocation and is
// not safe for concurrent use. Fields are additive: the detected domain is
// set-once, every other field only grows.
type Context struct {
	detectedDomain    string
	complexityHints   []string
	accumulatedNotes  []string
	techniqueMetadata map[string]map[string]interface{}
	timings           []Timing
	errors            []StepError
}

// NewContext creates an empty context for a single invocation.
func NewContext() *Context {
	return &Context{
		techniqueMetadata: make(map[string]map[string]interface{}),
	}
}

// Update is the set of context changes a technique may request. All fields are
// merged additively; an attempt to overwrite an already-set domain is ignored.
type Update struct {
	DetectedDomain  string   `json:"detected_domain,omitempty"`
	ComplexityHints []string `json:"complexity_hints,omitempty"`
	Notes           []string `json:"notes,omitempty"`
}

// Merge applies an update using additive-only rules: the domain is set only if
// currently unset, hints and notes are appended in order. Techniques never
// call Merge directly; the Executor is the sole mutator.
func (c *Context) Merge(u Update) {
	if c.detectedDomain == "" && u.DetectedDomain != "" {
		c.detectedDomain = u.DetectedDomain
	}
	c.complexityHints = append(c.complexityHints, u.ComplexityHints...)
	c.accumulatedNotes = append(c.accumulatedNotes, u.Notes...)
}

// setMetadata records the structured metadata a technique returned for a
// successful run. Duplicate invocations of the same technique id keep the
// latest entry.
func (c *Context) setMetadata(technique string, metadata map[string]interface{}) {
	if len(metadata) == 0 {
		return
	}
	copied := make(map[string]interface{}, len(metadata))
	for k, v := range metadata {
		copied[k] = v
	}
	c.techniqueMetadata[technique] = copied
}

// recordTiming appends an executor-measured duration for a completed step.
func (c *Context) recordTiming(technique string, d time.Duration) {
	c.timings = append(c.timings, Timing{Technique: technique, Duration: d})
}

// recordError appends a per-step failure.
func (c *Context) recordError(technique, message string) {
	c.errors = append(c.errors, StepError{Technique: technique, Message: message})
}

// DetectedDomain returns the domain set by the first technique to infer one,
// or the empty string if no technique has detected a domain yet.
func (c *Context) DetectedDomain() string {
	return c.detectedDomain
}

// Snapshot is an immutable copy of a Context. Techniques receive a Snapshot as
// their read view, and the final Snapshot is embedded in the chain summary.
type Snapshot struct {
	DetectedDomain    string                            `json:"detected_domain,omitempty"`
	ComplexityHints   []string                          `json:"complexity_hints"`
	AccumulatedNotes  []string                          `json:"accumulated_notes"`
	TechniqueMetadata map[string]map[string]interface{} `json:"technique_metadata"`
	Timings           []Timing                          `json:"technique_timings"`
	Errors            []StepError                       `json:"errors"`
}

// Snapshot returns a deep copy of the current context state.
func (c *Context) Snapshot() Snapshot {
	s := Snapshot{
		DetectedDomain:    c.detectedDomain,
		ComplexityHints:   append([]string{}, c.complexityHints...),
		AccumulatedNotes:  append([]string{}, c.accumulatedNotes...),
		TechniqueMetadata: make(map[string]map[string]interface{}, len(c.techniqueMetadata)),
		Timings:           append([]Timing{}, c.timings...),
		Errors:            append([]StepError{}, c.errors...),
	}
	for technique, metadata := range c.techniqueMetadata {
		copied := make(map[string]interface{}, len(metadata))
		for k, v := range metadata {
			copied[k] = v
		}
		s.TechniqueMetadata[technique] = copied
	}
	return s
}
