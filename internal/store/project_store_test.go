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

func TestGetProjectByIDLoadsClientAndTasks(t *testing.T) {
	ctx := context.Background()
	s := testutil.NewTestStore(t)
	owner := testutil.CreateUser(t, s, "owner@example.com")
	other := testutil.CreateUser(t, s, "other@example.com")

	c := seedClient(t, s, owner.ID, "Acme")
	p := seedProject(t, s, c.ID, "Website")
	seedTask(t, s, p.ID, "Design")
	seedTask(t, s, p.ID, "Build")

	got, err := s.GetProjectByID(ctx, owner.ID, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Website", got.Name)
	assert.Equal(t, "Acme", got.ClientName)
	assert.Equal(t, model.ProjectStatusNotStarted, got.Status)
	assert.Len(t, got.Tasks, 2)

	_, err = s.GetProjectByID(ctx, other.ID, p.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestGetProjectsLoadsTasksForProgress(t *testing.T) {
	ctx := context.Background()
	s := testutil.NewTestStore(t)
	owner := testutil.CreateUser(t, s, "owner@example.com")

	c := seedClient(t, s, owner.ID, "Acme")
	p1 := seedProject(t, s, c.ID, "Website")
	p2 := seedProject(t, s, c.ID, "Branding")
	seedTask(t, s, p1.ID, "Design")
	done := seedTask(t, s, p1.ID, "Kickoff")
	_, err := s.ToggleTaskComplete(ctx, owner.ID, done.ID)
	require.NoError(t, err)

	projects, err := s.GetProjects(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, projects, 2)

	byID := map[string]model.Project{}
	for _, p := range projects {
		byID[p.ID] = p
	}
	assert.Equal(t, 50.0, byID[p1.ID].Progress())
	assert.Equal(t, 0.0, byID[p2.ID].Progress())
}

func TestUpdateProjectScoped(t *testing.T) {
	ctx := context.Background()
	s := testutil.NewTestStore(t)
	owner := testutil.CreateUser(t, s, "owner@example.com")
	other := testutil.CreateUser(t, s, "other@example.com")

	c := seedClient(t, s, owner.ID, "Acme")
	p := seedProject(t, s, c.ID, "Website")

	end := p.StartDate.AddDate(0, 2, 0)
	upd := &model.Project{
		ID:          p.ID,
		Name:        "Website v2",
		Description: "Relaunch",
		StartDate:   p.StartDate,
		EndDate:     &end,
		Status:      model.ProjectStatusInProgress,
		ClientID:    c.ID,
	}
	require.NoError(t, s.UpdateProject(ctx, owner.ID, upd))

	got, err := s.GetProjectByID(ctx, owner.ID, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Website v2", got.Name)
	assert.Equal(t, model.ProjectStatusInProgress, got.Status)
	require.NotNil(t, got.EndDate)

	err = s.UpdateProject(ctx, other.ID, &model.Project{
		ID: p.ID, Name: "Stolen", StartDate: p.StartDate,
		Status: model.ProjectStatusInProgress, ClientID: c.ID,
	})
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestDeleteProjectCascadesToTasks(t *testing.T) {
	ctx := context.Background()
	s := testutil.NewTestStore(t)
	owner := testutil.CreateUser(t, s, "owner@example.com")

	c := seedClient(t, s, owner.ID, "Acme")
	p := seedProject(t, s, c.ID, "Website")
	task := seedTask(t, s, p.ID, "Design")

	require.NoError(t, s.DeleteProject(ctx, owner.ID, p.ID))

	_, err := s.GetProjectByID(ctx, owner.ID, p.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = s.GetTaskByID(ctx, owner.ID, task.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)

	// The client survives; only descendants are removed.
	_, err = s.GetClientByID(ctx, owner.ID, c.ID)
	assert.NoError(t, err)

	// Second delete is a no-op.
	assert.NoError(t, s.DeleteProject(ctx, owner.ID, p.ID))
}

func TestOwnsProjectFollowsChain(t *testing.T) {
	ctx := context.Background()
	s := testutil.NewTestStore(t)
	owner := testutil.CreateUser(t, s, "owner@example.com")
	other := testutil.CreateUser(t, s, "other@example.com")

	c := seedClient(t, s, owner.ID, "Acme")
	p := seedProject(t, s, c.ID, "Website")

	owned, err := s.OwnsProject(ctx, owner.ID, p.ID)
	require.NoError(t, err)
	assert.True(t, owned)

	owned, err = s.OwnsProject(ctx, other.ID, p.ID)
	require.NoError(t, err)
	assert.False(t, owned)

	owned, err = s.OwnsProject(ctx, owner.ID, "no-such-id")
	require.NoError(t, err)
	assert.False(t, owned)
}

func TestProjectEndDatePersistsNil(t *testing.T) {
	ctx := context.Background()
	s := testutil.NewTestStore(t)
	owner := testutil.CreateUser(t, s, "owner@example.com")

	c := seedClient(t, s, owner.ID, "Acme")
	p := &model.Project{
		Name:      "Open ended",
		ClientID:  c.ID,
		StartDate: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, s.CreateProject(ctx, p))

	got, err := s.GetProjectByID(ctx, owner.ID, p.ID)
	require.NoError(t, err)
	assert.Nil(t, got.EndDate)
}
