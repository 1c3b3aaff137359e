package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/crm/internal/model"
	"github.com/nhle/crm/internal/store"
	"github.com/nhle/crm/tests/testutil"
)

func TestGetTasksOrdering(t *testing.T) {
	ctx := context.Background()
	s := testutil.NewTestStore(t)
	owner := testutil.CreateUser(t, s, "owner@example.com")

	c := seedClient(t, s, owner.ID, "Acme")
	p := seedProject(t, s, c.ID, "Website")

	day := func(d int) *time.Time {
		dt := time.Date(2026, 9, d, 0, 0, 0, 0, time.UTC)
		return &dt
	}

	mk := func(title string, priority int, due *time.Time, completed bool) *model.Task {
		task := &model.Task{
			Title:     title,
			ProjectID: p.ID,
			Priority:  priority,
			DueDate:   due,
			Completed: completed,
		}
		require.NoError(t, s.CreateTask(ctx, task))
		return task
	}

	mk("done urgent", model.TaskPriorityUrgent, day(1), true)
	mk("low late", model.TaskPriorityLow, day(20), false)
	mk("urgent", model.TaskPriorityUrgent, day(10), false)
	mk("high early", model.TaskPriorityHigh, day(5), false)
	mk("high late", model.TaskPriorityHigh, day(15), false)

	tasks, err := s.GetTasks(ctx, owner.ID, store.TaskFilter{ProjectID: &p.ID})
	require.NoError(t, err)
	require.Len(t, tasks, 5)

	titles := make([]string, len(tasks))
	for i, task := range tasks {
		titles[i] = task.Title
	}
	// Incomplete first, then priority descending, then due date ascending.
	assert.Equal(t, []string{"urgent", "high early", "high late", "low late", "done urgent"}, titles)
}

func TestGetTasksFilters(t *testing.T) {
	ctx := context.Background()
	s := testutil.NewTestStore(t)
	owner := testutil.CreateUser(t, s, "owner@example.com")
	other := testutil.CreateUser(t, s, "other@example.com")

	c := seedClient(t, s, owner.ID, "Acme")
	p1 := seedProject(t, s, c.ID, "Website")
	p2 := seedProject(t, s, c.ID, "Branding")
	seedTask(t, s, p1.ID, "Design")
	seedTask(t, s, p2.ID, "Logo")

	foreignClient := seedClient(t, s, other.ID, "Rival")
	foreignProject := seedProject(t, s, foreignClient.ID, "Secret")
	seedTask(t, s, foreignProject.ID, "Hidden")

	all, err := s.GetTasks(ctx, owner.ID, store.TaskFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	scoped, err := s.GetTasks(ctx, owner.ID, store.TaskFilter{ProjectID: &p1.ID})
	require.NoError(t, err)
	require.Len(t, scoped, 1)
	assert.Equal(t, "Design", scoped[0].Title)

	incomplete := false
	open, err := s.GetTasks(ctx, owner.ID, store.TaskFilter{Completed: &incomplete})
	require.NoError(t, err)
	assert.Len(t, open, 2)
}

func TestUpdateTaskCompletionInvariant(t *testing.T) {
	ctx := context.Background()
	s := testutil.NewTestStore(t)
	owner := testutil.CreateUser(t, s, "owner@example.com")

	c := seedClient(t, s, owner.ID, "Acme")
	p := seedProject(t, s, c.ID, "Website")
	task := seedTask(t, s, p.ID, "Design")
	require.Nil(t, task.CompletedAt)

	// Completing sets the timestamp server-side; the payload value is ignored.
	bogus := time.Date(1999, 1, 1, 0, 0, 0, 0, time.UTC)
	upd := &model.Task{
		ID:          task.ID,
		Title:       "Design",
		Priority:    task.Priority,
		ProjectID:   p.ID,
		Completed:   true,
		CompletedAt: &bogus,
	}
	require.NoError(t, s.UpdateTask(ctx, owner.ID, upd))
	require.NotNil(t, upd.CompletedAt)
	assert.WithinDuration(t, time.Now().UTC(), *upd.CompletedAt, 5*time.Second)
	firstCompletedAt := *upd.CompletedAt

	// Updating an already-complete task keeps the original timestamp.
	upd2 := &model.Task{
		ID: task.ID, Title: "Design v2", Priority: task.Priority,
		ProjectID: p.ID, Completed: true,
	}
	require.NoError(t, s.UpdateTask(ctx, owner.ID, upd2))
	require.NotNil(t, upd2.CompletedAt)
	assert.WithinDuration(t, firstCompletedAt, *upd2.CompletedAt, time.Second)

	// Marking incomplete clears the timestamp regardless of the payload.
	upd3 := &model.Task{
		ID: task.ID, Title: "Design v2", Priority: task.Priority,
		ProjectID: p.ID, Completed: false, CompletedAt: &bogus,
	}
	require.NoError(t, s.UpdateTask(ctx, owner.ID, upd3))
	assert.Nil(t, upd3.CompletedAt)

	got, err := s.GetTaskByID(ctx, owner.ID, task.ID)
	require.NoError(t, err)
	assert.False(t, got.Completed)
	assert.Nil(t, got.CompletedAt)
}

func TestUpdateTaskScopedAndPreservesCreatedAt(t *testing.T) {
	ctx := context.Background()
	s := testutil.NewTestStore(t)
	owner := testutil.CreateUser(t, s, "owner@example.com")
	other := testutil.CreateUser(t, s, "other@example.com")

	c := seedClient(t, s, owner.ID, "Acme")
	p := seedProject(t, s, c.ID, "Website")
	task := seedTask(t, s, p.ID, "Design")
	createdAt := task.CreatedAt

	err := s.UpdateTask(ctx, other.ID, &model.Task{
		ID: task.ID, Title: "Stolen", ProjectID: p.ID,
	})
	assert.ErrorIs(t, err, store.ErrNotFound)

	upd := &model.Task{
		ID: task.ID, Title: "Design v2", ProjectID: p.ID,
		Priority:  model.TaskPriorityHigh,
		CreatedAt: time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC), // must be ignored
	}
	require.NoError(t, s.UpdateTask(ctx, owner.ID, upd))
	assert.WithinDuration(t, createdAt, upd.CreatedAt, time.Second)
	assert.Equal(t, model.TaskPriorityHigh, upd.Priority)
}

func TestToggleTaskComplete(t *testing.T) {
	ctx := context.Background()
	s := testutil.NewTestStore(t)
	owner := testutil.CreateUser(t, s, "owner@example.com")
	other := testutil.CreateUser(t, s, "other@example.com")

	c := seedClient(t, s, owner.ID, "Acme")
	p := seedProject(t, s, c.ID, "Website")
	task := seedTask(t, s, p.ID, "Design")

	toggled, err := s.ToggleTaskComplete(ctx, owner.ID, task.ID)
	require.NoError(t, err)
	assert.True(t, toggled.Completed)
	require.NotNil(t, toggled.CompletedAt)
	assert.Equal(t, p.ID, toggled.ProjectID)

	toggled, err = s.ToggleTaskComplete(ctx, owner.ID, task.ID)
	require.NoError(t, err)
	assert.False(t, toggled.Completed)
	assert.Nil(t, toggled.CompletedAt)

	_, err = s.ToggleTaskComplete(ctx, other.ID, task.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestDeleteTaskScopedAndIdempotent(t *testing.T) {
	ctx := context.Background()
	s := testutil.NewTestStore(t)
	owner := testutil.CreateUser(t, s, "owner@example.com")
	other := testutil.CreateUser(t, s, "other@example.com")

	c := seedClient(t, s, owner.ID, "Acme")
	p := seedProject(t, s, c.ID, "Website")
	task := seedTask(t, s, p.ID, "Design")

	// Foreign delete does nothing.
	require.NoError(t, s.DeleteTask(ctx, other.ID, task.ID))
	_, err := s.GetTaskByID(ctx, owner.ID, task.ID)
	require.NoError(t, err)

	require.NoError(t, s.DeleteTask(ctx, owner.ID, task.ID))
	_, err = s.GetTaskByID(ctx, owner.ID, task.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)

	// Second delete is a no-op.
	assert.NoError(t, s.DeleteTask(ctx, owner.ID, task.ID))
}

func TestOwnsTaskFollowsChain(t *testing.T) {
	ctx := context.Background()
	s := testutil.NewTestStore(t)
	owner := testutil.CreateUser(t, s, "owner@example.com")
	other := testutil.CreateUser(t, s, "other@example.com")

	c := seedClient(t, s, owner.ID, "Acme")
	p := seedProject(t, s, c.ID, "Website")
	task := seedTask(t, s, p.ID, "Design")

	owned, err := s.OwnsTask(ctx, owner.ID, task.ID)
	require.NoError(t, err)
	assert.True(t, owned)

	owned, err = s.OwnsTask(ctx, other.ID, task.ID)
	require.NoError(t, err)
	assert.False(t, owned)
}
