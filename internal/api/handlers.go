package api

import (
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dgallion1/sumforge/internal/parser"
	"github.com/dgallion1/sumforge/internal/pipeline"
)

// handleProcess accepts a document upload (OCR export JSON or a
// text-layer format) and queues a reassemble+chunk job.
func (s *Server) handleProcess(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024)

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	filename, data, err := s.readUpload(r, "file")
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	supported := strings.EqualFold(filepath.Ext(filename), ".json") || parser.IsSupportedExtension(filename)
	if !supported {
		jsonError(w, fmt.Sprintf("unsupported file type: %s", filepath.Ext(filename)), http.StatusBadRequest)
		return
	}

	job := s.newJob(pipeline.ModeProcess, filename)
	job.SetFileData(data)
	s.submit(w, job)
}

// handleMerge accepts a marked chunk file and a summaries file and
// queues a merge job.
func (s *Server) handleMerge(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024)

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	chunksName, chunksData, err := s.readUpload(r, "chunks")
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	_, summariesData, err := s.readUpload(r, "summaries")
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	job := s.newJob(pipeline.ModeMerge, chunksName)
	job.SetFileData(chunksData)
	job.SetSummariesData(summariesData)
	s.submit(w, job)
}

// handleDraft accepts a marked chunk file and queues a draft-summary
// generation job.
func (s *Server) handleDraft(w http.ResponseWriter, r *http.Request) {
	if s.orchestrator.DraftClient() == nil {
		jsonError(w, "draft generation is not configured", http.StatusServiceUnavailable)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024)

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	chunksName, chunksData, err := s.readUpload(r, "chunks")
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	job := s.newJob(pipeline.ModeDraft, chunksName)
	job.SetFileData(chunksData)
	s.submit(w, job)
}

func (s *Server) handleJobStatus(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")
	job := s.orchestrator.GetJob(jobID)
	if job == nil {
		jsonError(w, "job not found", http.StatusNotFound)
		return
	}
	snap := job.Snapshot()
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(snap)
}

func (s *Server) handleJobResult(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")
	job := s.orchestrator.GetJob(jobID)
	if job == nil {
		jsonError(w, "job not found", http.StatusNotFound)
		return
	}

	snap := job.Snapshot()
	switch snap.Status {
	case pipeline.StatusCompleted:
	case pipeline.StatusFailed:
		jsonError(w, "job failed: "+strings.Join(snap.Progress.Errors, "; "), http.StatusConflict)
		return
	default:
		jsonError(w, fmt.Sprintf("job is %s, result not ready", snap.Status), http.StatusConflict)
		return
	}

	result, contentType := job.Result()
	w.Header().Set("Content-Type", contentType)
	w.Write(result)
}

func (s *Server) newJob(mode pipeline.JobMode, filename string) *pipeline.Job {
	now := time.Now()
	return &pipeline.Job{
		ID:        uuid.NewString(),
		Mode:      mode,
		Filename:  sanitizeFilename(filename),
		Status:    pipeline.StatusQueued,
		Phase:     "queued",
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (s *Server) submit(w http.ResponseWriter, job *pipeline.Job) {
	if err := s.orchestrator.Submit(job); err != nil {
		jsonError(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]any{
		"job_id":   job.ID,
		"mode":     job.Mode,
		"status":   job.Status,
		"poll_url": fmt.Sprintf("/api/jobs/%s", job.ID),
	})
}

// readUpload reads one multipart file field, enforcing the size limit.
func (s *Server) readUpload(r *http.Request, field string) (string, []byte, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		return "", nil, fmt.Errorf("%s is required: %w", field, err)
	}
	defer file.Close()
	return readLimited(file, header, s.cfg.MaxUploadBytes)
}

func readLimited(file multipart.File, header *multipart.FileHeader, limit int64) (string, []byte, error) {
	data, err := io.ReadAll(io.LimitReader(file, limit+1))
	if err != nil {
		return "", nil, fmt.Errorf("read %s: %w", header.Filename, err)
	}
	if int64(len(data)) > limit {
		return "", nil, fmt.Errorf("%s exceeds max size (%d bytes)", header.Filename, limit)
	}
	return header.Filename, data, nil
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." {
		name = "unnamed"
	}
	return name
}
