package llm

import "github.com/xeipuuv/gojsonschema"

// Per-call-site schemas for capability responses. Compiled once; the
// compiled values are immutable and safe for concurrent use.

// ClassificationSchema matches the classifier response contract.
var ClassificationSchema = mustSchema(`{
	"type": "object",
	"required": ["doc_type", "doc_subtype", "confidence"],
	"properties": {
		"doc_type": {"type": "string"},
		"doc_subtype": {"type": "string"},
		"confidence": {"type": "number"},
		"rationale": {"type": "string"}
	}
}`)

// RewriteSchema matches the per-chunk rewrite response contract.
var RewriteSchema = mustSchema(`{
	"type": "object",
	"required": ["simplified_text"],
	"properties": {
		"simplified_text": {"type": "string"}
	}
}`)

// GuideSchema matches the four-block legal guide contract.
var GuideSchema = mustSchema(`{
	"type": "object",
	"required": ["meaning_for_you", "what_to_do_now", "what_happens_next", "deadlines_and_risks"],
	"properties": {
		"meaning_for_you": {"type": "string"},
		"what_to_do_now": {"type": "string"},
		"what_happens_next": {"type": "string"},
		"deadlines_and_risks": {"type": "string"}
	}
}`)

// VerifySchema matches the fidelity verification contract.
var VerifySchema = mustSchema(`{
	"type": "object",
	"required": ["is_safe"],
	"properties": {
		"is_safe": {"type": "boolean"},
		"warnings": {"type": "array", "items": {"type": "string"}},
		"verdict": {"type": "string"}
	}
}`)

func mustSchema(src string) *gojsonschema.Schema {
	s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(src))
	if err != nil {
		panic("llm: invalid schema: " + err.Error())
	}
	return s
}
