package ingest

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/clarolegal/lexclaro/internal/legal"
)

// extractImage shells out to tesseract for OCR. The document language
// selects the traineddata pack; Spanish ("spa") is the usual default.
func (x *Extractor) extractImage(doc legal.RawDocument) (string, error) {
	bin := x.TesseractPath
	if bin == "" {
		bin = "tesseract"
	}
	if _, err := exec.LookPath(bin); err != nil {
		return "", &Error{Source: doc.Source, Err: fmt.Errorf("tesseract not available: %w", err)}
	}

	ext := strings.ToLower(filepath.Ext(doc.Filename))
	if ext == "" {
		ext = ".png"
	}
	tmpPath, err := writeTemp("lexclaro-ocr-*"+ext, doc.Content)
	if err != nil {
		return "", &Error{Source: doc.Source, Err: err}
	}
	defer os.Remove(tmpPath)

	lang := doc.Language
	if lang == "" {
		lang = "spa"
	}

	// "-" sends the recognized text to stdout.
	cmd := exec.Command(bin, tmpPath, "-", "-l", lang)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", &Error{Source: doc.Source, Err: fmt.Errorf("tesseract: %w: %s", err, strings.TrimSpace(stderr.String()))}
	}

	text := strings.TrimSpace(stdout.String())
	if text == "" {
		return "", &Error{Source: doc.Source, Err: fmt.Errorf("no text recognized")}
	}
	return text, nil
}
