package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/dgallion1/sumforge/internal/chunk"
	"github.com/dgallion1/sumforge/internal/config"
	"github.com/dgallion1/sumforge/internal/dataset"
	"github.com/dgallion1/sumforge/internal/draft"
	"github.com/dgallion1/sumforge/internal/ocr"
	"github.com/dgallion1/sumforge/internal/parser"
)

// Pipeline runs the batch phases against the configured file paths.
// Each phase reads its inputs whole, validates, and writes its
// artifacts atomically; a failed run leaves no partial output behind.
type Pipeline struct {
	cfg config.Config
	log *slog.Logger
}

func New(cfg config.Config, log *slog.Logger) *Pipeline {
	return &Pipeline{cfg: cfg, log: log}
}

// ProcessResult reports what the reassemble+chunk phase produced.
type ProcessResult struct {
	Chunks          int
	ReassembledPath string
	ChunksPath      string
}

// Process reassembles the input document and writes the reassembled
// text and the marked chunk file for human review.
func (p *Pipeline) Process(ctx context.Context) (*ProcessResult, error) {
	data, err := os.ReadFile(p.cfg.InputPath)
	if err != nil {
		return nil, fmt.Errorf("read input %s: %w", p.cfg.InputPath, err)
	}

	text, err := ExtractText(p.cfg.InputPath, data, ocr.Options{
		LineTolerance: p.cfg.LineTolerance,
		ParagraphGap:  p.cfg.ParagraphGap,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", p.cfg.InputPath, err)
	}
	p.log.Info("reassembled document", "input", p.cfg.InputPath, "chars", len(text))

	chunks, err := chunk.Split(text)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", p.cfg.InputPath, err)
	}

	var marked bytes.Buffer
	if err := chunk.WriteMarked(&marked, chunks); err != nil {
		return nil, fmt.Errorf("serialize chunks: %w", err)
	}

	if err := writeFileAtomic(p.cfg.ReassembledPath, []byte(text)); err != nil {
		return nil, err
	}
	if err := writeFileAtomic(p.cfg.ChunksPath, marked.Bytes()); err != nil {
		return nil, err
	}
	p.log.Info("wrote chunks for review", "path", p.cfg.ChunksPath, "chunks", len(chunks))

	return &ProcessResult{
		Chunks:          len(chunks),
		ReassembledPath: p.cfg.ReassembledPath,
		ChunksPath:      p.cfg.ChunksPath,
	}, nil
}

// MergeResult reports what the merge phase produced.
type MergeResult struct {
	Records     int
	DatasetPath string
}

// Merge pairs the edited chunk file with the summaries file and
// writes the training dataset.
func (p *Pipeline) Merge(ctx context.Context) (*MergeResult, error) {
	chunksData, err := os.ReadFile(p.cfg.ChunksPath)
	if err != nil {
		return nil, fmt.Errorf("read chunks %s: %w", p.cfg.ChunksPath, err)
	}
	summariesData, err := os.ReadFile(p.cfg.SummariesPath)
	if err != nil {
		return nil, fmt.Errorf("read summaries %s: %w", p.cfg.SummariesPath, err)
	}

	out, n, err := BuildDataset(chunksData, summariesData)
	if err != nil {
		return nil, err
	}

	if err := writeFileAtomic(p.cfg.DatasetPath, out); err != nil {
		return nil, err
	}
	p.log.Info("wrote dataset", "path", p.cfg.DatasetPath, "records", n)

	return &MergeResult{Records: n, DatasetPath: p.cfg.DatasetPath}, nil
}

// DraftResult reports what the draft phase produced.
type DraftResult struct {
	Summaries     int
	SummariesPath string
}

// Draft generates machine draft summaries for the current chunk file
// and writes them to the summaries file for the human to edit.
func (p *Pipeline) Draft(ctx context.Context, client *draft.Client) (*DraftResult, error) {
	chunksData, err := os.ReadFile(p.cfg.ChunksPath)
	if err != nil {
		return nil, fmt.Errorf("read chunks %s: %w", p.cfg.ChunksPath, err)
	}
	chunks, err := chunk.ParseMarked(bytes.NewReader(chunksData))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", p.cfg.ChunksPath, err)
	}

	summaries, err := draft.Generate(ctx, client, chunks, p.log)
	if err != nil {
		return nil, err
	}

	out := []byte(strings.Join(summaries, "\n") + "\n")
	if err := writeFileAtomic(p.cfg.SummariesPath, out); err != nil {
		return nil, err
	}
	p.log.Info("wrote draft summaries", "path", p.cfg.SummariesPath, "summaries", len(summaries))

	return &DraftResult{Summaries: len(summaries), SummariesPath: p.cfg.SummariesPath}, nil
}

// ExtractText turns an input document into reassembled plain text. OCR
// exports (.json) go through bounding-box reassembly; text-layer
// formats go through the matching parser.
func ExtractText(filename string, data []byte, opts ocr.Options) (string, error) {
	if strings.EqualFold(filepath.Ext(filename), ".json") {
		export, err := ocr.DecodeExport(data)
		if err != nil {
			return "", err
		}
		return ocr.Reassemble(export, opts)
	}

	p, err := parser.ForFile(filename)
	if err != nil {
		return "", err
	}
	return p.Extract(bytes.NewReader(data), filepath.Base(filename))
}

// BuildDataset parses a marked chunk file and a summaries file and
// returns the serialized training dataset plus its record count.
func BuildDataset(chunksData, summariesData []byte) ([]byte, int, error) {
	chunks, err := chunk.ParseMarked(bytes.NewReader(chunksData))
	if err != nil {
		return nil, 0, err
	}
	summaries := dataset.SplitSummaries(summariesData)

	records, err := dataset.Build(chunks, summaries)
	if err != nil {
		return nil, 0, err
	}
	out, err := dataset.Marshal(records)
	if err != nil {
		return nil, 0, err
	}
	return out, len(records), nil
}
