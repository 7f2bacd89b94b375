// Package segment cleans raw legal text, detects named sections, and
// extracts the literal operative clause. It is the first pipeline stage
// and has no external dependencies.
package segment

import (
	"errors"
	"sort"
	"strings"

	"github.com/clarolegal/lexclaro/internal/legal"
)

// ErrEmptyInput is returned when there is no text to process.
var ErrEmptyInput = errors.New("segment: empty input text")

// SectionMarker maps a canonical section name to the keywords that open
// it. The first keyword is the strongest form of the heading.
type SectionMarker struct {
	Name     string
	Keywords []string
}

// DefaultSectionMarkers is the fixed ordered keyword table for Spanish
// judicial documents: header, factual background, legal grounds,
// operative ruling, petitions.
func DefaultSectionMarkers() []SectionMarker {
	return []SectionMarker{
		{Name: "ENCABEZADO", Keywords: []string{"JUZGADO", "TRIBUNAL", "AUDIENCIA PROVINCIAL"}},
		{Name: "ANTECEDENTES DE HECHO", Keywords: []string{"ANTECEDENTES DE HECHO", "ANTECEDENTES", "HECHOS"}},
		{Name: "FUNDAMENTOS DE DERECHO", Keywords: []string{"FUNDAMENTOS DE DERECHO", "FUNDAMENTOS JURIDICOS", "FUNDAMENTOS"}},
		{Name: "FALLO", Keywords: []string{"FALLO", "PARTE DISPOSITIVA", "RESUELVO"}},
		{Name: "PETICIONES", Keywords: []string{"SUPLICO", "PETICIONES", "SOLICITO"}},
	}
}

// Segmenter turns raw text into an immutable SegmentedDocument. The
// marker table is injected at construction and never mutated.
type Segmenter struct {
	markers []SectionMarker
}

func New() *Segmenter {
	return NewWithMarkers(DefaultSectionMarkers())
}

func NewWithMarkers(markers []SectionMarker) *Segmenter {
	return &Segmenter{markers: markers}
}

// Segment normalizes the raw text, detects sections, and extracts the
// operative clause. A blank input fails with ErrEmptyInput.
func (s *Segmenter) Segment(rawText string) (legal.SegmentedDocument, error) {
	if strings.TrimSpace(rawText) == "" {
		return legal.SegmentedDocument{}, ErrEmptyInput
	}

	normalized := Normalize(rawText)
	if normalized == "" {
		return legal.SegmentedDocument{}, ErrEmptyInput
	}

	clause, found := ExtractOperativeClause(normalized)

	return legal.SegmentedDocument{
		RawText:         rawText,
		NormalizedText:  normalized,
		Sections:        s.detectSections(normalized),
		OperativeClause: clause,
		ClauseFound:     found,
	}, nil
}

type markerHit struct {
	name       string
	offset     int
	confidence float64
}

// detectSections finds the earliest case-insensitive keyword occurrence
// per section, sorts hits by offset, and spans each section's content to
// the next marker. No hits at all yields a single synthetic section with
// low confidence.
func (s *Segmenter) detectSections(normalized string) []legal.DocumentSection {
	upper := strings.ToUpper(normalized)

	var hits []markerHit
	for _, m := range s.markers {
		best := -1
		confidence := 0.0
		for i, kw := range m.Keywords {
			idx := strings.Index(upper, kw)
			if idx < 0 {
				continue
			}
			if best < 0 || idx < best {
				best = idx
				if i == 0 {
					confidence = 0.9
				} else {
					confidence = 0.6
				}
			}
		}
		if best >= 0 {
			hits = append(hits, markerHit{name: m.Name, offset: best, confidence: confidence})
		}
	}

	if len(hits) == 0 {
		return []legal.DocumentSection{{
			Name:       "DOCUMENTO",
			Content:    normalized,
			Confidence: 0.2,
		}}
	}

	sort.Slice(hits, func(i, j int) bool { return hits[i].offset < hits[j].offset })

	sections := make([]legal.DocumentSection, 0, len(hits))
	for i, h := range hits {
		end := len(normalized)
		if i+1 < len(hits) {
			end = hits[i+1].offset
		}
		sections = append(sections, legal.DocumentSection{
			Name:       h.name,
			Content:    strings.TrimSpace(normalized[h.offset:end]),
			Confidence: h.confidence,
		})
	}
	return sections
}
