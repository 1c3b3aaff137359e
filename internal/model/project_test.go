package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProjectProgress(t *testing.T) {
	tests := []struct {
		name      string
		total     int
		completed int
		want      float64
	}{
		{"no_tasks", 0, 0, 0},
		{"none_complete", 4, 0, 0},
		{"one_of_four", 4, 1, 25.0},
		{"all_complete", 3, 3, 100.0},
		{"one_of_three_rounds", 3, 1, 33.33},
		{"two_of_three_rounds", 3, 2, 66.67},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Project{}
			for i := 0; i < tt.total; i++ {
				p.Tasks = append(p.Tasks, Task{Completed: i < tt.completed})
			}
			assert.Equal(t, tt.want, p.Progress())
		})
	}
}

func TestPriorityLabel(t *testing.T) {
	assert.Equal(t, "low", PriorityLabel(TaskPriorityLow))
	assert.Equal(t, "medium", PriorityLabel(TaskPriorityMedium))
	assert.Equal(t, "high", PriorityLabel(TaskPriorityHigh))
	assert.Equal(t, "urgent", PriorityLabel(TaskPriorityUrgent))
	assert.Equal(t, "unknown", PriorityLabel(42))
}
