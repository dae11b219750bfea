package queue

import (
	"fmt"
	"time"
)

// WorkItem is one unit of work waiting on a tool's queue. A batch of items
// shares a JobID; Index and Total locate the item within the batch so the
// dispatcher knows when every result has arrived.
type WorkItem struct {
	JobID string `json:"job_id"`
	Index int    `json:"index"` // 0-based position within the batch
	Total int    `json:"total"`

	// Tool names the tool to execute; Input is validated against the
	// tool's input schema by the worker that pops the item.
	Tool  string         `json:"tool"`
	Input map[string]any `json:"input"`

	// TraceID and SpanID propagate the submitter's trace context so the
	// worker's spans join the same trace.
	TraceID string `json:"trace_id"`
	SpanID  string `json:"span_id"`

	// SubmittedAt is Unix milliseconds at push time.
	SubmittedAt int64 `json:"submitted_at"`
}

// Result is the outcome of one WorkItem, published on the job's pub/sub
// channel. Exactly one of Output and Error is set.
type Result struct {
	JobID string `json:"job_id"`
	Index int    `json:"index"`

	Output map[string]any `json:"output,omitempty"`
	Error  string         `json:"error,omitempty"`

	// WorkerID identifies the worker instance that served the item.
	WorkerID string `json:"worker_id"`

	// StartedAt and CompletedAt are Unix milliseconds bracketing the
	// execution.
	StartedAt   int64 `json:"started_at"`
	CompletedAt int64 `json:"completed_at"`
}

// ToolMeta is the discovery record for a registered tool, stored as a Redis
// hash under tool:<name>:meta.
type ToolMeta struct {
	Name        string `json:"name"`
	Version     string `json:"version"`
	Description string `json:"description"`

	// InputSchema and OutputSchema hold the tool's schemas as JSON text.
	InputSchema  string `json:"input_schema"`
	OutputSchema string `json:"output_schema"`

	// Tags categorize the tool, e.g. "graph" or "read".
	Tags []string `json:"tags"`

	// WorkerCount mirrors the tool:<name>:workers counter.
	WorkerCount int `json:"worker_count"`
}

// QueueName returns the Redis list key holding pending work for a tool.
func QueueName(tool string) string {
	return fmt.Sprintf("tool:%s:queue", tool)
}

// ResultChannel returns the pub/sub channel name for a job's results.
func ResultChannel(jobID string) string {
	return fmt.Sprintf("job:%s:results", jobID)
}

// IsValid reports the first missing or inconsistent field, or nil.
func (w *WorkItem) IsValid() error {
	switch {
	case w.JobID == "":
		return fmt.Errorf("job_id is required")
	case w.Index < 0:
		return fmt.Errorf("index must be non-negative, got %d", w.Index)
	case w.Total <= 0:
		return fmt.Errorf("total must be positive, got %d", w.Total)
	case w.Index >= w.Total:
		return fmt.Errorf("index %d is out of bounds for total %d", w.Index, w.Total)
	case w.Tool == "":
		return fmt.Errorf("tool name is required")
	case w.Input == nil:
		return fmt.Errorf("input is required")
	case w.SubmittedAt <= 0:
		return fmt.Errorf("submitted_at must be positive, got %d", w.SubmittedAt)
	}
	return nil
}

// Age is the time the item has spent since submission, queue wait included.
func (w *WorkItem) Age() time.Duration {
	if w.SubmittedAt <= 0 {
		return 0
	}
	now := time.Now().UnixMilli()
	return time.Duration(now-w.SubmittedAt) * time.Millisecond
}

// HasError reports whether the execution failed.
func (r *Result) HasError() bool {
	return r.Error != ""
}

// Duration is the wall-clock execution time the worker reported.
func (r *Result) Duration() time.Duration {
	if r.StartedAt <= 0 || r.CompletedAt <= 0 {
		return 0
	}
	return time.Duration(r.CompletedAt-r.StartedAt) * time.Millisecond
}

// IsValid reports the first missing or inconsistent field, or nil.
func (r *Result) IsValid() error {
	switch {
	case r.JobID == "":
		return fmt.Errorf("job_id is required")
	case r.Index < 0:
		return fmt.Errorf("index must be non-negative, got %d", r.Index)
	case r.WorkerID == "":
		return fmt.Errorf("worker_id is required")
	case r.StartedAt <= 0:
		return fmt.Errorf("started_at must be positive, got %d", r.StartedAt)
	case r.CompletedAt <= 0:
		return fmt.Errorf("completed_at must be positive, got %d", r.CompletedAt)
	case r.CompletedAt < r.StartedAt:
		return fmt.Errorf("completed_at (%d) cannot be before started_at (%d)", r.CompletedAt, r.StartedAt)
	case !r.HasError() && r.Output == nil:
		return fmt.Errorf("output is required when error is empty")
	}
	return nil
}

// IsValid reports the first missing or inconsistent field, or nil.
func (t *ToolMeta) IsValid() error {
	switch {
	case t.Name == "":
		return fmt.Errorf("tool name is required")
	case t.Version == "":
		return fmt.Errorf("version is required")
	case t.WorkerCount < 0:
		return fmt.Errorf("worker_count must be non-negative, got %d", t.WorkerCount)
	}
	return nil
}

// HasTag reports whether the tool carries the tag.
func (t *ToolMeta) HasTag(tag string) bool {
	for _, have := range t.Tags {
		if have == tag {
			return true
		}
	}
	return false
}
