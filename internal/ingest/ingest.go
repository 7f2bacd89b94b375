// Package ingest turns uploaded payloads into plain text. Each source
// kind has its own extractor; all of them flatten structure away because
// the segmenter works on raw text.
package ingest

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/clarolegal/lexclaro/internal/legal"
)

// Error is a typed extraction failure carrying the source kind, so the
// HTTP layer can map it to a client error.
type Error struct {
	Source legal.SourceKind
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("extract %s: %v", e.Source, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Extractor converts one source kind into text.
type Extractor struct {
	FallbackPdftotext bool
	TesseractPath     string
}

// ExtractText dispatches on the document source kind.
func (x *Extractor) ExtractText(doc legal.RawDocument) (string, error) {
	switch doc.Source {
	case legal.SourceText:
		if !utf8.Valid(doc.Content) {
			return "", &Error{Source: doc.Source, Err: fmt.Errorf("payload is not valid UTF-8")}
		}
		return string(doc.Content), nil
	case legal.SourcePDF:
		return x.extractPDF(doc)
	case legal.SourceDOCX:
		return x.extractDOCX(doc)
	case legal.SourceHTML:
		return x.extractHTML(doc)
	case legal.SourceImage:
		return x.extractImage(doc)
	default:
		return "", &Error{Source: doc.Source, Err: fmt.Errorf("unsupported source kind %q", doc.Source)}
	}
}

// KindForFile guesses the source kind from a filename extension.
func KindForFile(filename string) (legal.SourceKind, bool) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".txt", ".md":
		return legal.SourceText, true
	case ".pdf":
		return legal.SourcePDF, true
	case ".docx":
		return legal.SourceDOCX, true
	case ".html", ".htm":
		return legal.SourceHTML, true
	case ".png", ".jpg", ".jpeg", ".tif", ".tiff":
		return legal.SourceImage, true
	}
	return "", false
}
