package pipeline

import (
	"sync"
	"time"
)

// JobMode selects which phase a service-mode job runs.
type JobMode string

const (
	ModeProcess JobMode = "process" // reassemble + chunk an uploaded document
	ModeMerge   JobMode = "merge"   // merge chunks + summaries into a dataset
	ModeDraft   JobMode = "draft"   // generate draft summaries for chunks
)

// JobStatus represents the state of a service-mode job.
type JobStatus string

const (
	StatusQueued       JobStatus = "queued"
	StatusReassembling JobStatus = "reassembling"
	StatusChunking     JobStatus = "chunking"
	StatusMerging      JobStatus = "merging"
	StatusDrafting     JobStatus = "drafting"
	StatusCompleted    JobStatus = "completed"
	StatusFailed       JobStatus = "failed"
)

// Job tracks one pipeline run submitted over HTTP.
type Job struct {
	mu sync.Mutex

	ID       string    `json:"job_id"`
	Mode     JobMode   `json:"mode"`
	Filename string    `json:"filename"`
	Status   JobStatus `json:"status"`
	Phase    string    `json:"phase"`

	Progress Progress `json:"progress"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Internal: not serialized.
	fileData      []byte
	summariesData []byte
	result        []byte
	resultType    string
	errors        []string
}

// Progress tracks what a job has produced so far.
type Progress struct {
	Chunks  int      `json:"chunks"`
	Records int      `json:"records"`
	Errors  []string `json:"errors"`
}

// JobStore is a thread-safe in-memory job registry with TTL eviction.
type JobStore struct {
	mu   sync.Mutex
	jobs map[string]*Job
	ttl  time.Duration
}

func NewJobStore(ttl time.Duration) *JobStore {
	return &JobStore{
		jobs: make(map[string]*Job),
		ttl:  ttl,
	}
}

func (s *JobStore) Put(job *Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[job.ID] = job
}

func (s *JobStore) Get(id string) *Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.jobs[id]
}

// Cleanup removes expired jobs.
func (s *JobStore) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for id, job := range s.jobs {
		if now.Sub(job.UpdatedAt) > s.ttl {
			delete(s.jobs, id)
		}
	}
}

// SetStatus updates job status atomically.
func (j *Job) SetStatus(status JobStatus, phase string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Status = status
	j.Phase = phase
	j.UpdatedAt = time.Now()
}

// AddError records an error.
func (j *Job) AddError(err string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.errors = append(j.errors, err)
	j.Progress.Errors = j.errors
	j.UpdatedAt = time.Now()
}

// SetChunks records the chunk count.
func (j *Job) SetChunks(n int) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Progress.Chunks = n
	j.UpdatedAt = time.Now()
}

// SetRecords records the dataset record count.
func (j *Job) SetRecords(n int) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Progress.Records = n
	j.UpdatedAt = time.Now()
}

// SetFileData sets the uploaded document or chunk file bytes.
func (j *Job) SetFileData(data []byte) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.fileData = data
}

// FileData returns the uploaded document or chunk file bytes.
func (j *Job) FileData() []byte {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.fileData
}

// SetSummariesData sets the uploaded summaries file bytes (merge jobs).
func (j *Job) SetSummariesData(data []byte) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.summariesData = data
}

// SummariesData returns the uploaded summaries file bytes.
func (j *Job) SummariesData() []byte {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.summariesData
}

// SetResult stores the job's output artifact and its content type.
func (j *Job) SetResult(data []byte, contentType string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.result = data
	j.resultType = contentType
	j.UpdatedAt = time.Now()
}

// Result returns the job's output artifact and its content type.
func (j *Job) Result() ([]byte, string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.result, j.resultType
}

// JobSnapshot is a read-only, JSON-safe copy of job state.
type JobSnapshot struct {
	ID       string    `json:"job_id"`
	Mode     JobMode   `json:"mode"`
	Filename string    `json:"filename"`
	Status   JobStatus `json:"status"`
	Phase    string    `json:"phase"`
	Progress Progress  `json:"progress"`
}

// Snapshot returns a JSON-safe copy of the job state.
func (j *Job) Snapshot() JobSnapshot {
	j.mu.Lock()
	defer j.mu.Unlock()
	errs := j.Progress.Errors
	if errs == nil {
		errs = []string{}
	}
	return JobSnapshot{
		ID:       j.ID,
		Mode:     j.Mode,
		Filename: j.Filename,
		Status:   j.Status,
		Phase:    j.Phase,
		Progress: Progress{
			Chunks:  j.Progress.Chunks,
			Records: j.Progress.Records,
			Errors:  errs,
		},
	}
}
