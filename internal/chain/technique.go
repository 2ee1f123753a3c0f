package chain

// Request carries everything a technique is allowed to see for one step: the
// current prompt text (the previous technique's output, or the original text
// for the first step), the caller-supplied intent and complexity, a read-only
// snapshot of the accumulated context, and optional per-technique options.
type Request struct {
	Prompt     string
	Intent     string
	Complexity string
	Context    Snapshot
	Options    map[string]interface{}
}

// Result is what a technique hands back. Techniques never mutate the context
// directly; they return additive updates and let the Executor merge them.
// Advisory conditions (missing examples, unsupported option values) belong in
// Warnings, not in the error return.
type Result struct {
	Prompt   string
	Updates  Update
	Metadata map[string]interface{}
	Warnings []string
}

// Technique is a named prompt transformation step. Apply must be a pure
// function of its request: no shared mutable state, no I/O, deterministic for
// identical inputs. A non-nil error from Apply is treated by the Executor as
// an internal fault and isolated; it is never the right way to report an
// expected condition.
type Technique interface {
	Name() string
	Apply(req Request) (Result, error)
}
