package model

import (
	"math"
	"time"
)

// Project status constants.
const (
	ProjectStatusNotStarted = "not_started"
	ProjectStatusInProgress = "in_progress"
	ProjectStatusOnHold     = "on_hold"
	ProjectStatusCompleted  = "completed"
	ProjectStatusCancelled  = "cancelled"
)

// Project is a unit of work performed for a client. Ownership is implicit
// via the client: whoever owns the client owns the project.
type Project struct {
	ID          string     `json:"id" db:"id"`
	Name        string     `json:"name" db:"name"`
	Description string     `json:"description" db:"description"`
	StartDate   time.Time  `json:"start_date" db:"start_date"`
	EndDate     *time.Time `json:"end_date,omitempty" db:"end_date"`
	Status      string     `json:"status" db:"status"`
	ClientID    string     `json:"client_id" db:"client_id"`

	// ClientName is populated by queries that join with clients.
	ClientName string `json:"client_name,omitempty" db:"-"`

	// Tasks is populated by reads that load the project's task list.
	Tasks []Task `json:"tasks,omitempty" db:"-"`
}

// Progress returns the percentage of completed tasks, rounded to two
// decimals. It is derived from the loaded task collection on every call
// and never persisted. A project with no tasks has progress 0.
func (p Project) Progress() float64 {
	if len(p.Tasks) == 0 {
		return 0
	}
	completed := 0
	for _, t := range p.Tasks {
		if t.Completed {
			completed++
		}
	}
	return math.Round(float64(completed)/float64(len(p.Tasks))*100*100) / 100
}
