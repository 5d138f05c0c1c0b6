package submissionservice

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/xuri/excelize/v2"
	"go.opentelemetry.io/otel/trace/noop"

	formservice "github.com/skyrden-airlines/portal/app/modules/form/application"
	formdomain "github.com/skyrden-airlines/portal/app/modules/form/domain"
	formdb "github.com/skyrden-airlines/portal/app/modules/form/infrastructure/repositories"
	formmigrations "github.com/skyrden-airlines/portal/app/modules/form/infrastructure/repositories/migrations"
	submissiondomain "github.com/skyrden-airlines/portal/app/modules/submission/domain"
	submissiondb "github.com/skyrden-airlines/portal/app/modules/submission/infrastructure/repositories"
	submissionmigrations "github.com/skyrden-airlines/portal/app/modules/submission/infrastructure/repositories/migrations"
	userdb "github.com/skyrden-airlines/portal/app/modules/user/infrastructure/repositories"
	usermigrations "github.com/skyrden-airlines/portal/app/modules/user/infrastructure/repositories/migrations"
	"github.com/skyrden-airlines/portal/app/shared/observability"
	"github.com/skyrden-airlines/portal/db/bundb"
	"github.com/skyrden-airlines/portal/db/bundb/bundbtest"
)

type harness struct {
	db       *bun.DB
	svc      Service
	repo     submissiondb.Repository
	forms    formdb.Repository
	users    userdb.Repository
	notifier *FakeNotifier
	bus      *FakeBus
	logger   *slog.Logger
	tel      observability.Telemetry
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	db := bundbtest.Open(t,
		bundb.MigrationSet{Module: "user", Migrations: usermigrations.Migrations},
		bundb.MigrationSet{Module: "form", Migrations: formmigrations.Migrations},
		bundb.MigrationSet{Module: "submission", Migrations: submissionmigrations.Migrations},
	)
	h := &harness{
		db:       db,
		repo:     submissiondb.NewRepository(db),
		forms:    formdb.NewRepository(db),
		users:    userdb.NewRepository(db),
		notifier: &FakeNotifier{},
		bus:      &FakeBus{},
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		tel:      observability.Telemetry{Tracer: noop.NewTracerProvider().Tracer("test")},
	}
	h.svc = NewService(Deps{
		Repo:     h.repo,
		Forms:    h.forms,
		Users:    h.users,
		Notifier: h.notifier,
		Bus:      h.bus,
		DB:       db,
	}, h.logger, h.tel)
	return h
}

func (h *harness) user(t *testing.T, discordID string, roblox bool) *userdb.User {
	t.Helper()
	u := &userdb.User{DiscordID: discordID, DiscordUsername: gofakeit.Username()}
	if roblox {
		name := gofakeit.Username()
		u.RobloxUsername = &name
	}
	require.NoError(t, h.users.CreateUser(context.Background(), nil, u))
	return u
}

func (h *harness) form(t *testing.T, mutate func(*formdb.Form)) *formdb.Form {
	t.Helper()
	fields, err := formdomain.NormalizeFields([]formdomain.Field{
		{ID: "why", Type: formdomain.KindLongText, Label: "Why Skyrden?", Required: true},
		{ID: "seat", Type: formdomain.KindDropdown, Label: "Seat", Options: []string{"Captain", "First Officer"}, Required: true},
		{ID: "days", Type: formdomain.KindCheckbox, Label: "Availability", Options: []string{"Sat", "Sun"}},
	})
	require.NoError(t, err)
	f := &formdb.Form{Title: "Pilot Intake", Fields: fields, ApplicationLimit: 1, Status: formdomain.StatusOpen}
	if mutate != nil {
		mutate(f)
	}
	require.NoError(t, h.forms.CreateForm(context.Background(), nil, f))
	return f
}

func validAnswers() formdomain.Responses {
	return formdomain.Responses{
		"why":              formdomain.Text("I love flying"),
		"seat":             formdomain.Text("Captain"),
		"days":             formdomain.List("Sat"),
		"discord_username": formdomain.Text("spoofed"),
		"extra":            formdomain.Text("dropped"),
	}
}

func TestSubmit(t *testing.T) {
	past := time.Now().Add(-time.Hour)

	tests := []struct {
		name      string
		roblox    bool
		form      func(*formdb.Form)
		responses func() formdomain.Responses
		wantErr   error
	}{
		{name: "stored pending", roblox: true, responses: validAnswers},
		{name: "roblox required", roblox: false, responses: validAnswers, wantErr: ErrRobloxRequired},
		{name: "closed form", roblox: true, form: func(f *formdb.Form) { f.Status = formdomain.StatusClosed }, responses: validAnswers, wantErr: ErrFormClosed},
		{name: "draft form", roblox: true, form: func(f *formdb.Form) { f.Status = formdomain.StatusDraft }, responses: validAnswers, wantErr: ErrFormClosed},
		{name: "deadline passed", roblox: true, form: func(f *formdb.Form) { f.Deadline = &past }, responses: validAnswers, wantErr: ErrFormClosed},
		{
			name:   "choice outside options",
			roblox: true,
			responses: func() formdomain.Responses {
				r := validAnswers()
				r["seat"] = formdomain.Text("Purser")
				return r
			},
			wantErr: formdomain.ErrInvalidAnswer,
		},
		{
			name:   "required answer missing",
			roblox: true,
			responses: func() formdomain.Responses {
				r := validAnswers()
				delete(r, "why")
				return r
			},
			wantErr: formdomain.ErrMissingAnswer,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			h := newHarness(t)
			u := h.user(t, "135792468013579246", tt.roblox)
			f := h.form(t, tt.form)

			got, err := h.svc.Submit(ctx, u.ID, SubmitInput{TemplateID: f.ID.String(), Responses: tt.responses()})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				n, countErr := h.repo.CountByForm(ctx, nil, f.ID)
				require.NoError(t, countErr)
				assert.Zero(t, n)
				assert.Zero(t, h.bus.Count(submissiondomain.SubmittedTopic))
				return
			}

			require.NoError(t, err)
			assert.Equal(t, submissiondomain.StatusPending, got.Status)
			assert.Equal(t, 1, got.Slot)
			assert.Equal(t, "Pilot Intake", got.FormTitle)
			assert.Equal(t, u.DiscordUsername, got.Responses["discord_username"].String())
			assert.Equal(t, u.RobloxName(), got.Responses["roblox_username"].String())
			assert.NotContains(t, got.Responses, "extra")
			assert.Equal(t, []string{"Sat"}, got.Responses["days"].Values)
			assert.Equal(t, 1, h.bus.Count(submissiondomain.SubmittedTopic))
		})
	}
}

func TestSubmitUnknownForm(t *testing.T) {
	h := newHarness(t)
	u := h.user(t, "135792468013579246", true)

	_, err := h.svc.Submit(context.Background(), u.ID, SubmitInput{TemplateID: uuid.NewString(), Responses: validAnswers()})
	assert.ErrorIs(t, err, ErrFormNotFound)

	_, err = h.svc.Submit(context.Background(), u.ID, SubmitInput{TemplateID: "T1"})
	assert.ErrorIs(t, err, ErrFormNotFound)

	_, err = h.svc.Submit(context.Background(), u.ID, SubmitInput{})
	assert.ErrorIs(t, err, ErrTemplateIDRequired)
}

func TestSubmitEnforcesApplicationLimit(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	u := h.user(t, "135792468013579246", true)
	other := h.user(t, "246813579024681357", true)
	f := h.form(t, func(f *formdb.Form) { f.ApplicationLimit = 2 })

	for slot := 1; slot <= 2; slot++ {
		got, err := h.svc.Submit(ctx, u.ID, SubmitInput{TemplateID: f.ID.String(), Responses: validAnswers()})
		require.NoError(t, err)
		assert.Equal(t, slot, got.Slot)
	}

	_, err := h.svc.Submit(ctx, u.ID, SubmitInput{TemplateID: f.ID.String(), Responses: validAnswers()})
	assert.ErrorIs(t, err, ErrLimitReached)

	n, err := h.repo.CountByFormAndUser(ctx, nil, f.ID, u.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	_, err = h.svc.Submit(ctx, other.ID, SubmitInput{TemplateID: f.ID.String(), Responses: validAnswers()})
	assert.NoError(t, err, "the limit is per user")
}

func submitOne(t *testing.T, h *harness) (*userdb.User, *SubmissionView) {
	t.Helper()
	u := h.user(t, gofakeit.Numerify("1##################"), true)
	f := h.form(t, nil)
	got, err := h.svc.Submit(context.Background(), u.ID, SubmitInput{TemplateID: f.ID.String(), Responses: validAnswers()})
	require.NoError(t, err)
	return u, got
}

func TestReviewStateMachine(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	admin := h.user(t, "999999999999999999", false)
	_, sub := submitOne(t, h)

	res, err := h.svc.Review(ctx, admin.ID, ReviewInput{SubmissionID: sub.ID.String(), Status: "denied"})
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Nil(t, res.Notification)
	assert.Equal(t, submissiondomain.StatusRejected, res.Submission.Status)
	require.NotNil(t, res.Submission.AdminFeedback)
	assert.Equal(t, DefaultFeedback, *res.Submission.AdminFeedback)
	require.NotNil(t, res.Submission.Reviewer)
	assert.Equal(t, admin.ID, res.Submission.Reviewer.ID)
	assert.Empty(t, h.notifier.Calls)
	assert.Equal(t, 1, h.bus.Count(submissiondomain.ReviewedTopic))

	_, err = h.svc.Review(ctx, admin.ID, ReviewInput{SubmissionID: sub.ID.String(), Status: "approved"})
	assert.ErrorIs(t, err, ErrAlreadyReviewed)

	stored, err := h.repo.GetResponse(ctx, nil, sub.ID)
	require.NoError(t, err)
	assert.Equal(t, submissiondomain.StatusRejected, stored.Status)
}

func TestReviewValidation(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	admin := h.user(t, "999999999999999999", false)
	_, sub := submitOne(t, h)

	tests := []struct {
		name    string
		input   ReviewInput
		wantErr error
	}{
		{name: "pending is not a decision", input: ReviewInput{SubmissionID: sub.ID.String(), Status: "pending"}, wantErr: submissiondomain.ErrInvalidStatus},
		{name: "unknown status", input: ReviewInput{SubmissionID: sub.ID.String(), Status: "maybe"}, wantErr: submissiondomain.ErrInvalidStatus},
		{name: "unknown submission", input: ReviewInput{SubmissionID: uuid.NewString(), Status: "approved"}, wantErr: ErrSubmissionNotFound},
		{name: "malformed id", input: ReviewInput{SubmissionID: "abc", Status: "approved"}, wantErr: ErrSubmissionNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := h.svc.Review(ctx, admin.ID, tt.input)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestReviewWithImmediateNotification(t *testing.T) {
	ctx := context.Background()
	feedback := "  Great answers  "
	message := "Report to the hangar {username}"

	t.Run("sent", func(t *testing.T) {
		h := newHarness(t)
		admin := h.user(t, "999999999999999999", false)
		_, sub := submitOne(t, h)
		h.notifier.NotifyFunc = func(ctx context.Context, id uuid.UUID, _ string) error {
			return h.repo.MarkNotificationSent(ctx, nil, id, time.Now().UTC())
		}

		res, err := h.svc.Review(ctx, admin.ID, ReviewInput{
			SubmissionID:        sub.ID.String(),
			Status:              "approved",
			Feedback:            &feedback,
			NotificationMessage: &message,
			SendNotification:    true,
		})
		require.NoError(t, err)
		require.Len(t, h.notifier.Calls, 1)
		assert.Equal(t, message, h.notifier.Calls[0].Message)
		assert.Equal(t, &NotificationOutcome{Sent: true}, res.Notification)
		assert.True(t, res.Submission.NotificationSent)
		assert.Equal(t, "Great answers", *res.Submission.AdminFeedback)
		require.NotNil(t, res.Submission.NotificationMessage)
		assert.Equal(t, message, *res.Submission.NotificationMessage)
	})

	t.Run("delivery failure keeps the review", func(t *testing.T) {
		h := newHarness(t)
		admin := h.user(t, "999999999999999999", false)
		_, sub := submitOne(t, h)
		h.notifier.NotifyFunc = func(context.Context, uuid.UUID, string) error {
			return errors.New("cannot send messages to this user")
		}

		res, err := h.svc.Review(ctx, admin.ID, ReviewInput{SubmissionID: sub.ID.String(), Status: "approved", SendNotification: true})
		require.NoError(t, err)
		require.NotNil(t, res.Notification)
		assert.False(t, res.Notification.Sent)
		assert.Contains(t, res.Notification.Error, "cannot send")
		assert.Equal(t, submissiondomain.StatusApproved, res.Submission.Status)
		assert.False(t, res.Submission.NotificationSent)
	})
}

func TestListMineAndAdminList(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	admin := h.user(t, "999999999999999999", false)
	alice, subA := submitOne(t, h)
	_, subB := submitOne(t, h)

	_, err := h.svc.Review(ctx, admin.ID, ReviewInput{SubmissionID: subA.ID.String(), Status: "approved"})
	require.NoError(t, err)

	mine, err := h.svc.ListMine(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, subA.ID, mine[0].ID)
	assert.Equal(t, submissiondomain.StatusApproved, mine[0].Status)
	assert.Equal(t, "Pilot Intake", mine[0].FormTitle)

	all, err := h.svc.AdminList(ctx, AdminQuery{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, subB.ID, all[0].ID, "newest first by default")
	require.NotNil(t, all[1].Applicant)
	assert.Equal(t, alice.DiscordID, all[1].Applicant.DiscordID)

	pending, err := h.svc.AdminList(ctx, AdminQuery{Status: "pending"})
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, subB.ID, pending[0].ID)

	byForm, err := h.svc.AdminList(ctx, AdminQuery{FormID: subA.FormID.String(), Sort: "status", Order: "asc"})
	require.NoError(t, err)
	require.Len(t, byForm, 1)

	_, err = h.svc.AdminList(ctx, AdminQuery{Status: "archived"})
	assert.ErrorIs(t, err, submissiondomain.ErrInvalidStatus)
}

func TestExportWorkbook(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	u, _ := submitOne(t, h)

	data, err := h.svc.Export(ctx, AdminQuery{})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(ExportSheet)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	header := rows[0]
	assert.Equal(t, "Submission ID", header[0])
	assert.Equal(t, []string{"discord_username", "roblox_username", "why", "seat", "days"}, header[len(exportColumns):])
	assert.Equal(t, u.DiscordUsername, rows[1][3])
	assert.Equal(t, "pending", rows[1][6])
	assert.Equal(t, "Captain", rows[1][len(exportColumns)+3])
}

func TestDeleteFormWithResponsesDeactivates(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	_, sub := submitOne(t, h)

	forms := formservice.NewService(h.forms, h.repo, h.db, nil, h.logger, h.tel)
	res, err := forms.DeleteForm(ctx, sub.FormID)
	require.NoError(t, err)
	assert.Equal(t, &formservice.DeleteResult{Deleted: false, Deactivated: true}, res)

	form, err := forms.GetForm(ctx, sub.FormID)
	require.NoError(t, err)
	assert.Equal(t, formdomain.StatusClosed, form.Status)

	_, err = h.repo.GetResponse(ctx, nil, sub.ID)
	assert.NoError(t, err, "submission must survive")

	empty := h.form(t, nil)
	res, err = forms.DeleteForm(ctx, empty.ID)
	require.NoError(t, err)
	assert.True(t, res.Deleted)
}
