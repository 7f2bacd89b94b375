package ingest

import (
	"bytes"
	"fmt"
	"strings"

	docx "github.com/fumiama/go-docx"

	"github.com/clarolegal/lexclaro/internal/legal"
)

// extractDOCX flattens a .docx body into paragraph-separated text.
// Heading styles are ignored; section detection happens downstream on
// the text itself.
func (x *Extractor) extractDOCX(doc legal.RawDocument) (string, error) {
	parsed, err := docx.Parse(bytes.NewReader(doc.Content), int64(len(doc.Content)))
	if err != nil {
		return "", &Error{Source: doc.Source, Err: fmt.Errorf("parse docx: %w", err)}
	}

	var buf strings.Builder
	for _, item := range parsed.Document.Body.Items {
		para, ok := item.(*docx.Paragraph)
		if !ok {
			continue
		}
		text := docxParagraphText(para)
		if text == "" {
			continue
		}
		if buf.Len() > 0 {
			buf.WriteString("\n\n")
		}
		buf.WriteString(text)
	}

	if buf.Len() == 0 {
		return "", &Error{Source: doc.Source, Err: fmt.Errorf("document body is empty")}
	}
	return buf.String(), nil
}

func docxParagraphText(para *docx.Paragraph) string {
	var buf strings.Builder
	for _, child := range para.Children {
		run, ok := child.(*docx.Run)
		if !ok {
			continue
		}
		for _, rc := range run.Children {
			if t, ok := rc.(*docx.Text); ok {
				buf.WriteString(t.Text)
			}
		}
	}
	return strings.TrimSpace(buf.String())
}
