package chunk

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
)

// Chunks are persisted for human editing between textual markers:
//
//	--- CHUNK 1 ---
//	body text
//	--- END CHUNK 1 ---
//
// The markers are the machine-readable part of the file; editors may
// rewrite the bodies freely but must keep the markers intact and
// correctly numbered.

var (
	startMarkerRe = regexp.MustCompile(`^--- CHUNK (\d+) ---$`)
	endMarkerRe   = regexp.MustCompile(`^--- END CHUNK (\d+) ---$`)
)

// MarkerError reports a chunk file whose markers no longer form a
// valid sequence, usually after a manual edit went wrong.
type MarkerError struct {
	Line   int // 1-based line number in the chunk file
	Reason string
}

func (e *MarkerError) Error() string {
	return fmt.Sprintf("corrupt chunk markers: line %d: %s", e.Line, e.Reason)
}

// WriteMarked serializes chunks in marker format for human review.
func WriteMarked(w io.Writer, chunks []Chunk) error {
	bw := bufio.NewWriter(w)
	for _, c := range chunks {
		fmt.Fprintf(bw, "--- CHUNK %d ---\n", c.Ordinal)
		bw.WriteString(c.Text)
		bw.WriteString("\n")
		fmt.Fprintf(bw, "--- END CHUNK %d ---\n\n", c.Ordinal)
	}
	return bw.Flush()
}

// ParseMarked re-derives the chunk sequence from a (possibly
// hand-edited) marker file. Markers must pair up with matching
// ordinals and the ordinals must count 1, 2, 3... in order of
// appearance. Text outside any chunk is ignored so editors can leave
// themselves notes between blocks.
func ParseMarked(r io.Reader) ([]Chunk, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var chunks []Chunk
	var body []string
	open := false
	openOrdinal := 0
	openLine := 0
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")

		if m := startMarkerRe.FindStringSubmatch(line); m != nil {
			if open {
				return nil, &MarkerError{Line: lineNo, Reason: fmt.Sprintf("chunk %d is not closed before chunk %s starts", openOrdinal, m[1])}
			}
			n, err := strconv.Atoi(m[1])
			if err != nil || n != len(chunks)+1 {
				return nil, &MarkerError{Line: lineNo, Reason: fmt.Sprintf("expected chunk %d, found chunk %s", len(chunks)+1, m[1])}
			}
			open = true
			openOrdinal = n
			openLine = lineNo
			body = body[:0]
			continue
		}

		if m := endMarkerRe.FindStringSubmatch(line); m != nil {
			if !open {
				return nil, &MarkerError{Line: lineNo, Reason: fmt.Sprintf("end marker for chunk %s without a start marker", m[1])}
			}
			n, err := strconv.Atoi(m[1])
			if err != nil || n != openOrdinal {
				return nil, &MarkerError{Line: lineNo, Reason: fmt.Sprintf("chunk %d closed by end marker %s", openOrdinal, m[1])}
			}
			chunks = append(chunks, Chunk{
				Ordinal: openOrdinal,
				Text:    strings.TrimSpace(strings.Join(body, "\n")),
			})
			open = false
			continue
		}

		if open {
			body = append(body, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read chunk file: %w", err)
	}
	if open {
		return nil, &MarkerError{Line: openLine, Reason: fmt.Sprintf("chunk %d is never closed", openOrdinal)}
	}
	return chunks, nil
}
