package chunk

import (
	"errors"
	"regexp"
	"strings"
)

// Chunk is one human-reviewable unit of manifesto text. Ordinals are
// 1-based and dense: the nth kept chunk is always ordinal n.
type Chunk struct {
	Ordinal int
	Text    string
}

// ErrEmptyDocument reports input with no chunkable text.
var ErrEmptyDocument = errors.New("document is empty")

// Runs of blank lines (possibly containing whitespace) delimit chunks.
var boundaryRe = regexp.MustCompile(`\n[ \t]*\n[\s]*`)

// Split cuts the reassembled document into chunks at blank-line
// boundaries. Leading and trailing whitespace is trimmed from each
// chunk; pieces that are empty after trimming are dropped and do not
// consume an ordinal.
func Split(text string) ([]Chunk, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyDocument
	}

	var chunks []Chunk
	for _, piece := range boundaryRe.Split(text, -1) {
		piece = strings.TrimSpace(piece)
		if piece == "" {
			continue
		}
		chunks = append(chunks, Chunk{Ordinal: len(chunks) + 1, Text: piece})
	}
	if len(chunks) == 0 {
		return nil, ErrEmptyDocument
	}
	return chunks, nil
}
