package domain

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// Job result statuses published to the results topic.
const (
	JobSucceeded = "succeeded"
	JobFailed    = "failed"
)

// ImportJob is the JSON payload submitted to the jobs topic: one CSV blob to
// import, tagged with a caller-chosen ID.
type ImportJob struct {
	ID          string    `json:"id"`
	CSVData     string    `json:"csv_data"`
	SubmittedAt time.Time `json:"submitted_at,omitempty"`
}

// ImportResult is the JSON payload published to the results topic after a
// job finishes, successfully or not.
type ImportResult struct {
	JobID       string    `json:"job_id"`
	Status      string    `json:"status"`
	Processed   int       `json:"processed"`
	Message     string    `json:"message,omitempty"`
	Error       string    `json:"error,omitempty"`
	CompletedAt time.Time `json:"completed_at"`
}

// JobEvent is an unprocessed message from the jobs topic.
type JobEvent struct {
	Key       []byte
	Value     []byte
	Headers   map[string]string
	Topic     string
	Partition int
	Offset    int64
	Timestamp time.Time
	Commit    func(ctx context.Context) error
}

// ParseImportJob deserializes a JobEvent's value into an ImportJob.
func ParseImportJob(evt JobEvent) (ImportJob, error) {
	var job ImportJob
	if err := json.Unmarshal(evt.Value, &job); err != nil {
		return ImportJob{}, fmt.Errorf("parse import job: %w", err)
	}
	if job.ID == "" {
		return ImportJob{}, fmt.Errorf("parse import job: missing id")
	}
	return job, nil
}
