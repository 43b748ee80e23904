package match

import (
	"time"

	"github.com/google/uuid"
)

const EventTypeJobPublished = "job.published"

// JobPublished asks the worker to re-rank every stored candidate for a job.
type JobPublished struct {
	EventID       uuid.UUID `json:"event_id"`
	Type          string    `json:"type"`
	JobID         string    `json:"job_id"`
	MinPercentage *int      `json:"min_percentage,omitempty"`
	PublishedAt   time.Time `json:"published_at"`
}

func NewJobPublished(jobID string, minPercentage *int) JobPublished {
	return JobPublished{
		EventID:       uuid.New(),
		Type:          EventTypeJobPublished,
		JobID:         jobID,
		MinPercentage: minPercentage,
		PublishedAt:   time.Now().UTC(),
	}
}
