package techniques

import (
	"fmt"

	"github.com/promptforge/prompt-studio/enhancer-api/internal/chain"
)

// StructuredOutput appends output-format instructions. The format option
// accepts "markdown" (default) or "json"; anything else yields a warning and
// the default.
type StructuredOutput struct{}

// Name implements chain.Technique.
func (StructuredOutput) Name() string { return "structured_output" }

const (
	formatMarkdown = "markdown"
	formatJSON     = "json"
)

// Apply implements chain.Technique.
func (StructuredOutput) Apply(req chain.Request) (chain.Result, error) {
	var warnings []string

	format := formatMarkdown
	if override, ok := req.Options["format"]; ok {
		switch v := override.(type) {
		case string:
			if v == formatMarkdown || v == formatJSON {
				format = v
			} else {
				warnings = append(warnings, fmt.Sprintf("structured_output: unsupported format %q, using markdown", v))
			}
		default:
			warnings = append(warnings, fmt.Sprintf("structured_output: invalid format option %v, using markdown", override))
		}
	}

	var instruction string
	switch format {
	case formatJSON:
		instruction = `Respond with a single JSON object with the fields "answer" (string), ` +
			`"reasoning" (string), and "assumptions" (array of strings). Output nothing outside the JSON object.`
	default:
		instruction = "Format the response in Markdown with the sections \"Answer\", \"Reasoning\", and \"Assumptions\"."
		if req.Intent == "analysis" {
			instruction = "Format the response in Markdown with the sections \"Key Findings\", \"Reasoning\", and \"Assumptions\"."
		}
	}

	return chain.Result{
		Prompt: req.Prompt + "\n\n" + instruction,
		Updates: chain.Update{
			Notes: []string{"structured_output: requested " + format + " format"},
		},
		Metadata: map[string]interface{}{
			"format": format,
		},
		Warnings: warnings,
	}, nil
}
