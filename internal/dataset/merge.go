package dataset

import (
	"fmt"
	"strings"

	"github.com/dgallion1/sumforge/internal/chunk"
)

// CountMismatchError reports a chunk file and summaries file whose
// counts disagree. FirstUnpaired is the first ordinal with no
// counterpart, which is where a human should start looking.
type CountMismatchError struct {
	Chunks        int
	Summaries     int
	FirstUnpaired int
}

func (e *CountMismatchError) Error() string {
	return fmt.Sprintf("chunk/summary count mismatch: %d chunks but %d summaries; first unpaired ordinal is %d",
		e.Chunks, e.Summaries, e.FirstUnpaired)
}

// EmptyContentError reports a blank chunk body or summary line. The
// merge is all-or-nothing, so a single blank entry fails the run.
type EmptyContentError struct {
	Kind    string // "chunk" or "summary"
	Ordinal int
}

func (e *EmptyContentError) Error() string {
	return fmt.Sprintf("empty %s at ordinal %d", e.Kind, e.Ordinal)
}

// SplitSummaries cuts a summaries file into lines, one summary per
// line. A single trailing newline does not count as a line. Lines are
// not trimmed: the human author's exact wording is preserved.
func SplitSummaries(data []byte) []string {
	s := strings.ReplaceAll(string(data), "\r\n", "\n")
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

// Build pairs chunks with summaries positionally and produces the
// training records. Counts must match exactly and no entry may be
// blank; on any validation failure no records are produced.
func Build(chunks []chunk.Chunk, summaries []string) ([]Record, error) {
	if len(chunks) != len(summaries) {
		first := min(len(chunks), len(summaries)) + 1
		return nil, &CountMismatchError{
			Chunks:        len(chunks),
			Summaries:     len(summaries),
			FirstUnpaired: first,
		}
	}

	for i, c := range chunks {
		if strings.TrimSpace(c.Text) == "" {
			return nil, &EmptyContentError{Kind: "chunk", Ordinal: c.Ordinal}
		}
		if strings.TrimSpace(summaries[i]) == "" {
			return nil, &EmptyContentError{Kind: "summary", Ordinal: i + 1}
		}
	}

	records := make([]Record, 0, len(chunks))
	for i, c := range chunks {
		records = append(records, NewRecord(c.Text, summaries[i]))
	}
	return records, nil
}
