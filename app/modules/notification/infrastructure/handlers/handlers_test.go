package notificationhandlers

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	notificationservice "github.com/skyrden-airlines/portal/app/modules/notification/application"
	notificationdomain "github.com/skyrden-airlines/portal/app/modules/notification/domain"
	"github.com/skyrden-airlines/portal/app/shared/httpjson"
)

func serve(svc *FakeService, req *http.Request) *httptest.ResponseRecorder {
	h := NewNotificationHandlers(svc, slog.New(slog.NewTextHandler(io.Discard, nil)))
	r := chi.NewRouter()
	r.Get("/api/admin/notifications/config", h.HandleGetConfig)
	r.Post("/api/admin/notifications/config", h.HandleUpdateConfig)
	r.Get("/api/admin/notifications/pending", h.HandleListPending)
	r.Post("/api/admin/notifications/send-all", h.HandleSendAll)
	r.Post("/api/admin/notifications/{id}/send", h.HandleSend)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func TestHandleConfig(t *testing.T) {
	svc := &FakeService{Config: notificationdomain.ConfigView{Enabled: true, BotToken: "••••abcd", HasToken: true}}

	rr := serve(svc, httptest.NewRequest(http.MethodGet, "/api/admin/notifications/config", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"enabled":true,"botToken":"••••abcd","hasToken":true,"defaultMessage":"","staffChannelId":""}`, rr.Body.String())

	var got notificationdomain.ConfigUpdate
	svc.UpdateConfigFunc = func(_ context.Context, u notificationdomain.ConfigUpdate) (notificationdomain.ConfigView, error) {
		got = u
		return svc.Config, nil
	}
	body := `{"enabled":false,"defaultMessage":"Hi {username}"}`
	rr = serve(svc, httptest.NewRequest(http.MethodPost, "/api/admin/notifications/config", strings.NewReader(body)))
	require.Equal(t, http.StatusOK, rr.Code)
	require.NotNil(t, got.Enabled)
	assert.False(t, *got.Enabled)
	assert.Nil(t, got.BotToken)
	assert.Equal(t, "Hi {username}", *got.DefaultMessage)

	svc.UpdateConfigFunc = func(context.Context, notificationdomain.ConfigUpdate) (notificationdomain.ConfigView, error) {
		return svc.Config, notificationdomain.ErrBotTokenRequired
	}
	rr = serve(svc, httptest.NewRequest(http.MethodPost, "/api/admin/notifications/config", strings.NewReader(`{"enabled":true}`)))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestHandleSendAll(t *testing.T) {
	failed := uuid.New()
	svc := &FakeService{SendAllPendingFunc: func(context.Context) (*notificationservice.BulkResult, error) {
		return &notificationservice.BulkResult{
			SuccessCount: 2,
			FailedCount:  1,
			Failures:     []notificationservice.BulkFailure{{SubmissionID: failed, Error: "dms closed"}},
		}, nil
	}}

	rr := serve(svc, httptest.NewRequest(http.MethodPost, "/api/admin/notifications/send-all", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	var got notificationservice.BulkResult
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&got))
	assert.Equal(t, 2, got.SuccessCount)
	assert.Equal(t, failed, got.Failures[0].SubmissionID)

	svc.SendAllPendingFunc = func(context.Context) (*notificationservice.BulkResult, error) {
		return nil, notificationservice.ErrNotificationsDisabled
	}
	rr = serve(svc, httptest.NewRequest(http.MethodPost, "/api/admin/notifications/send-all", nil))
	assert.Equal(t, http.StatusBadGateway, rr.Code)
	var body httpjson.ErrorBody
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
	assert.Equal(t, "notifications_disabled", body.Code)
}

func TestHandleListPending(t *testing.T) {
	svc := &FakeService{}
	rr := serve(svc, httptest.NewRequest(http.MethodGet, "/api/admin/notifications/pending", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[]`, rr.Body.String())
}

func TestHandleSend(t *testing.T) {
	id := uuid.New()
	var gotID uuid.UUID
	var gotMessage string
	svc := &FakeService{NotifyFunc: func(_ context.Context, submissionID uuid.UUID, message string) error {
		gotID, gotMessage = submissionID, message
		return nil
	}}

	rr := serve(svc, httptest.NewRequest(http.MethodPost, "/api/admin/notifications/"+id.String()+"/send", strings.NewReader(`{"message":"Welcome"}`)))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, id, gotID)
	assert.Equal(t, "Welcome", gotMessage)

	rr = serve(svc, httptest.NewRequest(http.MethodPost, "/api/admin/notifications/"+id.String()+"/send", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Empty(t, gotMessage)

	rr = serve(svc, httptest.NewRequest(http.MethodPost, "/api/admin/notifications/nope/send", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
