package model

import "time"

// Task priority constants (higher number = more urgent).
const (
	TaskPriorityLow    = 0
	TaskPriorityMedium = 1
	TaskPriorityHigh   = 2
	TaskPriorityUrgent = 3
)

// Task is a single work item within a project. CompletedAt is non-nil
// exactly when Completed is true; the store maintains that invariant on
// every write.
type Task struct {
	ID          string     `json:"id" db:"id"`
	Title       string     `json:"title" db:"title"`
	Description string     `json:"description" db:"description"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	DueDate     *time.Time `json:"due_date,omitempty" db:"due_date"`
	Completed   bool       `json:"completed" db:"completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty" db:"completed_at"`
	Priority    int        `json:"priority" db:"priority"`
	ProjectID   string     `json:"project_id" db:"project_id"`
}

// PriorityLabel returns the human-readable name for a task priority.
func PriorityLabel(p int) string {
	switch p {
	case TaskPriorityLow:
		return "low"
	case TaskPriorityMedium:
		return "medium"
	case TaskPriorityHigh:
		return "high"
	case TaskPriorityUrgent:
		return "urgent"
	default:
		return "unknown"
	}
}
