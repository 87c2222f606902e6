package ocr

import (
	"sort"
	"strings"
)

// Options tunes line grouping and paragraph detection. Both values are
// in the export's coordinate units (typically pixels).
type Options struct {
	// LineTolerance is how far a word's ymin may drift from the first
	// word of the current line while still belonging to it.
	LineTolerance float64
	// ParagraphGap is the vertical distance between consecutive lines
	// beyond which a paragraph break is inserted.
	ParagraphGap float64
}

// DefaultOptions returns tolerances that work for ~300dpi scans.
func DefaultOptions() Options {
	return Options{LineTolerance: 15, ParagraphGap: 40}
}

// line is a grouped run of words sharing a vertical position.
type line struct {
	yMin  float64 // ymin of the line's first word, the grouping reference
	page  int     // index of the page the line came from
	words []Word
}

func (l *line) text() string {
	sort.SliceStable(l.words, func(i, j int) bool { return l.words[i].XMin < l.words[j].XMin })
	parts := make([]string, len(l.words))
	for i, w := range l.words {
		parts[i] = w.Text
	}
	return strings.Join(parts, " ")
}

// Reassemble turns an export into a single text document in natural
// reading order: words sorted by page, top to bottom, left to right,
// grouped into lines, with blank lines at paragraph breaks and page
// boundaries. Returns ErrEmptyDocument when no fragment carries text.
func Reassemble(export *Export, opts Options) (string, error) {
	if opts.LineTolerance <= 0 {
		opts.LineTolerance = DefaultOptions().LineTolerance
	}
	if opts.ParagraphGap <= 0 {
		opts.ParagraphGap = DefaultOptions().ParagraphGap
	}

	lines := groupLines(export, opts.LineTolerance)
	if len(lines) == 0 {
		return "", ErrEmptyDocument
	}

	var sb strings.Builder
	var prev *line
	for i := range lines {
		l := &lines[i]
		if prev != nil {
			if l.page != prev.page || l.yMin-prev.yMin > opts.ParagraphGap {
				sb.WriteString("\n\n")
			} else {
				sb.WriteString("\n")
			}
		}
		sb.WriteString(l.text())
		prev = l
	}
	sb.WriteString("\n")
	return sb.String(), nil
}

// groupLines sorts every page's words into reading order and buckets
// them into lines by vertical proximity.
func groupLines(export *Export, tolerance float64) []line {
	var lines []line
	for pi := range export.Pages {
		words := make([]Word, len(export.Pages[pi].Words))
		copy(words, export.Pages[pi].Words)

		// Total reading-order sort; the source array order is not
		// trusted.
		sort.SliceStable(words, func(i, j int) bool {
			if words[i].YMin != words[j].YMin {
				return words[i].YMin < words[j].YMin
			}
			return words[i].XMin < words[j].XMin
		})

		var current *line
		for _, w := range words {
			if strings.TrimSpace(w.Text) == "" {
				continue
			}
			if current == nil || abs(w.YMin-current.yMin) > tolerance {
				lines = append(lines, line{yMin: w.YMin, page: pi})
				current = &lines[len(lines)-1]
			}
			current.words = append(current.words, w)
		}
	}
	return lines
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
