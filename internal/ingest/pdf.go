package ingest

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	pdflib "github.com/ledongthuc/pdf"

	"github.com/clarolegal/lexclaro/internal/legal"
)

// extractPDF tries the Go library first, then falls back to pdftotext
// when enabled. Scanned PDFs with no text layer surface as an error.
func (x *Extractor) extractPDF(doc legal.RawDocument) (string, error) {
	// ledongthuc/pdf requires a ReadSeeker+size, so we write to a temp file.
	tmpPath, err := writeTemp("lexclaro-pdf-*.pdf", doc.Content)
	if err != nil {
		return "", &Error{Source: doc.Source, Err: err}
	}
	defer os.Remove(tmpPath)

	text, err := extractPDFText(tmpPath)
	if (err != nil || strings.TrimSpace(text) == "") && x.FallbackPdftotext {
		text, err = extractPdftotext(tmpPath)
	}
	if err != nil {
		return "", &Error{Source: doc.Source, Err: err}
	}
	if strings.TrimSpace(text) == "" {
		return "", &Error{Source: doc.Source, Err: fmt.Errorf("no text layer found")}
	}
	return text, nil
}

func extractPDFText(path string) (string, error) {
	f, reader, err := pdflib.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	var buf strings.Builder
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		if i > 1 {
			buf.WriteString("\f")
		}
		buf.WriteString(text)
	}
	return buf.String(), nil
}

func extractPdftotext(path string) (string, error) {
	cmd := exec.Command("pdftotext", "-layout", path, "-")
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("pdftotext: %w", err)
	}
	return string(out), nil
}

func writeTemp(pattern string, content []byte) (string, error) {
	tmp, err := os.CreateTemp("", pattern)
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return "", fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("close temp file: %w", err)
	}
	return tmpPath, nil
}
