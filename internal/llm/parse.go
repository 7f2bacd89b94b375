package llm

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// ParseError indicates the capability returned text that could not be
// parsed into the expected JSON shape. Callers treat it like any other
// capability failure and degrade locally.
type ParseError struct {
	Reason string
	Raw    string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("llm parse error: %s (raw: %s)", e.Reason, truncate(e.Raw, 200))
}

var codeFenceRe = regexp.MustCompile("(?s)^```(?:json)?\\s*(.*?)\\s*```$")

// StripCodeFences removes a surrounding markdown code fence, if any.
func StripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if m := codeFenceRe.FindStringSubmatch(s); len(m) > 1 {
		return m[1]
	}
	return s
}

// FirstJSONObject returns the first balanced {...} object in s,
// skipping braces inside string literals.
func FirstJSONObject(s string) (string, error) {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return "", &ParseError{Reason: "no JSON object found", Raw: s}
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		ch := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1], nil
			}
		}
	}
	return "", &ParseError{Reason: "unbalanced JSON object", Raw: s}
}

// ParseObject tolerant-parses raw capability output into v: strip code
// fences, locate the first balanced object, validate it against schema
// when one is given, then unmarshal.
func ParseObject(raw string, schema *gojsonschema.Schema, v any) error {
	obj, err := FirstJSONObject(StripCodeFences(raw))
	if err != nil {
		return err
	}
	if schema != nil {
		result, err := schema.Validate(gojsonschema.NewStringLoader(obj))
		if err != nil {
			return &ParseError{Reason: "schema validation: " + err.Error(), Raw: obj}
		}
		if !result.Valid() {
			msgs := make([]string, 0, len(result.Errors()))
			for _, e := range result.Errors() {
				msgs = append(msgs, e.String())
			}
			return &ParseError{Reason: "schema violation: " + strings.Join(msgs, "; "), Raw: obj}
		}
	}
	if err := json.Unmarshal([]byte(obj), v); err != nil {
		return &ParseError{Reason: "unmarshal: " + err.Error(), Raw: obj}
	}
	return nil
}
