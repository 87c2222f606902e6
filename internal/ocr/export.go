package ocr

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Export is the OCR engine's JSON output: one entry per scanned page,
// each carrying word-level fragments with bounding boxes.
type Export struct {
	Pages []Page
}

// Page holds the word fragments recognized on a single page.
type Page struct {
	// Number is the page number from the export, or the entry's
	// position when the export omits it.
	Number int
	Words  []Word
}

// Word is the smallest recognized text unit with its position.
type Word struct {
	Text string
	XMin float64
	YMin float64
	XMax float64
	YMax float64
}

// ErrEmptyDocument reports an export with no text fragments at all.
var ErrEmptyDocument = errors.New("ocr export contains no text fragments")

// MalformedInputError reports an export missing a required field.
// Page and Word locate the offending fragment; both are -1 when the
// problem is at the top level.
type MalformedInputError struct {
	Field string
	Page  int
	Word  int
}

func (e *MalformedInputError) Error() string {
	if e.Page < 0 {
		return fmt.Sprintf("malformed ocr export: missing %q", e.Field)
	}
	return fmt.Sprintf("malformed ocr export: page %d word %d: missing %q", e.Page, e.Word, e.Field)
}

// rawExport mirrors the wire shape. Pointer fields distinguish an
// absent key from a zero value.
type rawExport struct {
	PageData json.RawMessage `json:"page_data"`
}

type rawPage struct {
	Page  *int      `json:"page"`
	Words []rawWord `json:"words"`
}

type rawWord struct {
	Text *string  `json:"text"`
	XMin *float64 `json:"xmin"`
	YMin *float64 `json:"ymin"`
	XMax *float64 `json:"xmax"`
	YMax *float64 `json:"ymax"`
}

// DecodeExport parses and validates OCR export JSON. Every word must
// carry text and xmin/ymin coordinates; anything less is malformed
// rather than silently defaulted.
func DecodeExport(data []byte) (*Export, error) {
	var raw rawExport
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode ocr export: %w", err)
	}
	if raw.PageData == nil {
		return nil, &MalformedInputError{Field: "page_data", Page: -1, Word: -1}
	}

	var rawPages []rawPage
	if err := json.Unmarshal(raw.PageData, &rawPages); err != nil {
		return nil, fmt.Errorf("decode page_data: %w", err)
	}

	export := &Export{Pages: make([]Page, 0, len(rawPages))}
	for i, rp := range rawPages {
		page := Page{Number: i}
		if rp.Page != nil {
			page.Number = *rp.Page
		}
		page.Words = make([]Word, 0, len(rp.Words))
		for j, rw := range rp.Words {
			switch {
			case rw.Text == nil:
				return nil, &MalformedInputError{Field: "text", Page: page.Number, Word: j}
			case rw.YMin == nil:
				return nil, &MalformedInputError{Field: "ymin", Page: page.Number, Word: j}
			case rw.XMin == nil:
				return nil, &MalformedInputError{Field: "xmin", Page: page.Number, Word: j}
			}
			w := Word{Text: *rw.Text, XMin: *rw.XMin, YMin: *rw.YMin}
			if rw.XMax != nil {
				w.XMax = *rw.XMax
			}
			if rw.YMax != nil {
				w.YMax = *rw.YMax
			}
			page.Words = append(page.Words, w)
		}
		export.Pages = append(export.Pages, page)
	}

	return export, nil
}
