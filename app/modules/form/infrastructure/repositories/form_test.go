package formdb_test

import (
	"context"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	formdomain "github.com/skyrden-airlines/portal/app/modules/form/domain"
	formdb "github.com/skyrden-airlines/portal/app/modules/form/infrastructure/repositories"
	formmigrations "github.com/skyrden-airlines/portal/app/modules/form/infrastructure/repositories/migrations"
	"github.com/skyrden-airlines/portal/db/bundb"
	"github.com/skyrden-airlines/portal/db/bundb/bundbtest"
)

func newRepo(t *testing.T) formdb.Repository {
	t.Helper()
	db := bundbtest.Open(t, bundb.MigrationSet{Module: "form", Migrations: formmigrations.Migrations})
	return formdb.NewRepository(db)
}

func fakeForm(t *testing.T) *formdb.Form {
	t.Helper()
	fields, err := formdomain.NormalizeFields([]formdomain.Field{
		{ID: "why", Type: formdomain.KindLongText, Label: gofakeit.Question(), Required: true},
		{ID: "rank", Type: formdomain.KindDropdown, Label: "Rank", Options: []string{"Captain", "First Officer"}},
		{ID: "days", Type: formdomain.KindCheckbox, Label: "Days", Options: []string{"Mon", "Tue"}},
	})
	require.NoError(t, err)
	deadline := time.Now().UTC().Add(72 * time.Hour).Truncate(time.Second)
	return &formdb.Form{
		Title:            gofakeit.JobTitle(),
		Description:      gofakeit.Company() + " recruitment",
		Fields:           fields,
		Deadline:         &deadline,
		ApplicationLimit: 2,
		Status:           formdomain.StatusOpen,
	}
}

func TestFormRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)

	form := fakeForm(t)
	require.NoError(t, repo.CreateForm(ctx, nil, form))
	require.NotEqual(t, uuid.Nil, form.ID)

	got, err := repo.GetForm(ctx, nil, form.ID)
	require.NoError(t, err)

	if diff := cmp.Diff(form.Fields, got.Fields); diff != "" {
		t.Errorf("fields mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, form.Title, got.Title)
	assert.Equal(t, 2, got.ApplicationLimit)
	assert.Equal(t, formdomain.StatusOpen, got.Status)
	require.NotNil(t, got.Deadline)
	assert.True(t, form.Deadline.Equal(*got.Deadline))
}

func TestFormUpdateAndStatus(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)

	form := fakeForm(t)
	require.NoError(t, repo.CreateForm(ctx, nil, form))

	form.Title = "Cabin Crew Intake"
	form.Deadline = nil
	require.NoError(t, repo.UpdateForm(ctx, nil, form))

	require.NoError(t, repo.SetStatus(ctx, nil, form.ID, formdomain.StatusClosed))

	got, err := repo.GetForm(ctx, nil, form.ID)
	require.NoError(t, err)
	assert.Equal(t, "Cabin Crew Intake", got.Title)
	assert.Nil(t, got.Deadline)
	assert.Equal(t, formdomain.StatusClosed, got.Status)

	open, err := repo.ListFormsByStatus(ctx, nil, formdomain.StatusOpen)
	require.NoError(t, err)
	assert.Empty(t, open)

	assert.ErrorIs(t, repo.SetStatus(ctx, nil, uuid.New(), formdomain.StatusOpen), formdb.ErrNoRowsAffected)
}

func TestFormDelete(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)

	a, b := fakeForm(t), fakeForm(t)
	require.NoError(t, repo.CreateForm(ctx, nil, a))
	require.NoError(t, repo.CreateForm(ctx, nil, b))

	byIDs, err := repo.GetFormsByIDs(ctx, nil, []uuid.UUID{a.ID, b.ID, uuid.New()})
	require.NoError(t, err)
	assert.Len(t, byIDs, 2)

	require.NoError(t, repo.DeleteForm(ctx, nil, a.ID))
	_, err = repo.GetForm(ctx, nil, a.ID)
	assert.ErrorIs(t, err, formdb.ErrNotFound)
	assert.ErrorIs(t, repo.DeleteForm(ctx, nil, a.ID), formdb.ErrNoRowsAffected)

	all, err := repo.ListForms(ctx, nil)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, b.ID, all[0].ID)
}
