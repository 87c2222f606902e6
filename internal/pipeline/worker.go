package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/dgallion1/sumforge/internal/chunk"
	"github.com/dgallion1/sumforge/internal/draft"
	"github.com/dgallion1/sumforge/internal/ocr"
)

// Worker runs a single service-mode job entirely in memory: inputs
// arrive as uploaded bytes and results are stored back on the job.
type Worker struct {
	drafts *draft.Client // nil when draft generation is not configured
	log    *slog.Logger
	opts   ocr.Options
}

func NewWorker(drafts *draft.Client, log *slog.Logger, opts ocr.Options) *Worker {
	return &Worker{drafts: drafts, log: log, opts: opts}
}

// Process runs the phase selected by the job's mode.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "mode", job.Mode)

	var err error
	switch job.Mode {
	case ModeProcess:
		err = w.runProcess(job)
	case ModeMerge:
		err = w.runMerge(job)
	case ModeDraft:
		err = w.runDraft(ctx, job)
	default:
		err = fmt.Errorf("unknown job mode %q", job.Mode)
	}

	if err != nil {
		log.Error("job failed", "error", err)
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, string(job.Status))
		return
	}
	log.Info("job completed")
	job.SetStatus(StatusCompleted, "done")
}

func (w *Worker) runProcess(job *Job) error {
	job.SetStatus(StatusReassembling, "reassembling text")
	text, err := ExtractText(job.Filename, job.FileData(), w.opts)
	if err != nil {
		return err
	}

	job.SetStatus(StatusChunking, "splitting into chunks")
	chunks, err := chunk.Split(text)
	if err != nil {
		return err
	}
	job.SetChunks(len(chunks))

	var marked bytes.Buffer
	if err := chunk.WriteMarked(&marked, chunks); err != nil {
		return err
	}
	job.SetResult(marked.Bytes(), "text/plain; charset=utf-8")
	return nil
}

func (w *Worker) runMerge(job *Job) error {
	job.SetStatus(StatusMerging, "merging chunks and summaries")
	out, n, err := BuildDataset(job.FileData(), job.SummariesData())
	if err != nil {
		return err
	}
	job.SetRecords(n)
	job.SetResult(out, "application/json")
	return nil
}

func (w *Worker) runDraft(ctx context.Context, job *Job) error {
	if w.drafts == nil {
		return fmt.Errorf("draft generation is not configured (missing OPENAI_API_KEY)")
	}

	job.SetStatus(StatusDrafting, "drafting summaries")
	chunks, err := chunk.ParseMarked(bytes.NewReader(job.FileData()))
	if err != nil {
		return err
	}
	job.SetChunks(len(chunks))

	summaries, err := draft.Generate(ctx, w.drafts, chunks, w.log.With("job_id", job.ID))
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	for _, s := range summaries {
		buf.WriteString(s)
		buf.WriteString("\n")
	}
	job.SetResult(buf.Bytes(), "text/plain; charset=utf-8")
	return nil
}
