// Package recorder persists the outcome of research runs so the API
// and the status command can show history across restarts.
package recorder

import (
	"time"

	"github.com/AIDataFireGirl/investsight/pkg/models"
)

// RunRecord is one completed research run reduced to its verdict.
type RunRecord struct {
	ID         string            `json:"run_id"`
	Ticker     string            `json:"ticker"`
	Score      float64           `json:"score"`
	Action     models.Action     `json:"recommendation"`
	Confidence models.Confidence `json:"confidence"`
	CreatedAt  time.Time         `json:"created_at"`
}

// Recorder persists run history.
type Recorder interface {
	RecordRun(rec *RunRecord) error
	RecentRuns(limit int) ([]RunRecord, error)
	Close() error
}
