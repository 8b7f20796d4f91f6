package engine

import (
	"time"

	runerrors "github.com/merakitools/meraudit/internal/errors"
	"github.com/merakitools/meraudit/internal/projector"
)

// Step status values
const (
	StatusSuccess = "success"
	StatusFailed  = "failed"
)

// Result is the structured outcome of one playbook run.
type Result struct {
	RunID     string                     `json:"run_id"`
	Playbook  string                     `json:"playbook"`
	Success   bool                       `json:"success"`
	Steps     []StepResult               `json:"steps"`
	Rows      map[string][]projector.Row `json:"-"`
	StartedAt time.Time                  `json:"started_at"`
	Duration  time.Duration              `json:"duration"`
}

// StepResult describes the outcome of a single step.
type StepResult struct {
	Name     string              `json:"name"`
	Output   string              `json:"output"`
	Status   string              `json:"status"`
	Targets  int                 `json:"targets"`
	RowCount int                 `json:"row_count"`
	Duration time.Duration       `json:"duration"`
	Err      *runerrors.RunError `json:"error,omitempty"`
}
