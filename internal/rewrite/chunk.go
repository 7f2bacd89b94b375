package rewrite

import (
	"strings"

	"github.com/clarolegal/lexclaro/internal/legal"
	"github.com/clarolegal/lexclaro/internal/llm"
)

// buildChunks splits the normalized text for per-chunk rewriting. Short
// documents stay whole; long ones split along section boundaries first,
// then along paragraphs inside oversized sections. Any chunk still above
// the hard limit is truncated and the caller flags the rewrite.
func buildChunks(doc legal.SegmentedDocument, softLimit, hardLimit int) ([]string, bool) {
	text := doc.NormalizedText
	if len(text) <= softLimit {
		return []string{text}, false
	}

	var chunks []string
	if len(doc.Sections) > 0 {
		for _, sec := range doc.Sections {
			secText := strings.TrimSpace(sec.Content)
			if secText == "" {
				continue
			}
			if len(secText) <= softLimit {
				chunks = append(chunks, secText)
			} else {
				chunks = append(chunks, splitByParagraphs(secText, softLimit)...)
			}
		}
	} else {
		chunks = splitByParagraphs(text, softLimit)
	}

	truncated := false
	for i, c := range chunks {
		if len(c) > hardLimit {
			chunks[i] = llm.Truncate(c, hardLimit)
			truncated = true
		}
	}
	return chunks, truncated
}

// splitByParagraphs accumulates paragraphs into a buffer while it stays
// under the soft limit.
func splitByParagraphs(text string, softLimit int) []string {
	var paragraphs []string
	for _, p := range strings.Split(text, "\n\n") {
		if p = strings.TrimSpace(p); p != "" {
			paragraphs = append(paragraphs, p)
		}
	}
	if len(paragraphs) == 0 {
		return []string{text}
	}

	var chunks []string
	var buffer strings.Builder
	for _, p := range paragraphs {
		candidate := buffer.Len() + len(p)
		if buffer.Len() > 0 {
			candidate += 2 // joining blank line
		}
		if candidate <= softLimit {
			if buffer.Len() > 0 {
				buffer.WriteString("\n\n")
			}
			buffer.WriteString(p)
			continue
		}
		if buffer.Len() > 0 {
			chunks = append(chunks, buffer.String())
			buffer.Reset()
		}
		buffer.WriteString(p)
	}
	if buffer.Len() > 0 {
		chunks = append(chunks, buffer.String())
	}
	return chunks
}

func containsChunk(chunks []string, text string) bool {
	for _, c := range chunks {
		if c == text {
			return true
		}
	}
	return false
}
