package notificationhandlers

import (
	"context"

	"github.com/google/uuid"

	notificationservice "github.com/skyrden-airlines/portal/app/modules/notification/application"
	notificationdomain "github.com/skyrden-airlines/portal/app/modules/notification/domain"
	submissiondomain "github.com/skyrden-airlines/portal/app/modules/submission/domain"
)

// FakeService is a programmable notificationservice.Service.
type FakeService struct {
	NotifyFunc         func(ctx context.Context, submissionID uuid.UUID, message string) error
	SendAllPendingFunc func(ctx context.Context) (*notificationservice.BulkResult, error)
	ListPendingFunc    func(ctx context.Context) ([]*notificationservice.PendingView, error)
	UpdateConfigFunc   func(ctx context.Context, update notificationdomain.ConfigUpdate) (notificationdomain.ConfigView, error)

	Config notificationdomain.ConfigView
}

func (f *FakeService) Notify(ctx context.Context, submissionID uuid.UUID, message string) error {
	if f.NotifyFunc != nil {
		return f.NotifyFunc(ctx, submissionID, message)
	}
	return nil
}

func (f *FakeService) SendAllPending(ctx context.Context) (*notificationservice.BulkResult, error) {
	if f.SendAllPendingFunc != nil {
		return f.SendAllPendingFunc(ctx)
	}
	return &notificationservice.BulkResult{Failures: []notificationservice.BulkFailure{}}, nil
}

func (f *FakeService) ListPending(ctx context.Context) ([]*notificationservice.PendingView, error) {
	if f.ListPendingFunc != nil {
		return f.ListPendingFunc(ctx)
	}
	return []*notificationservice.PendingView{}, nil
}

func (f *FakeService) GetConfig(ctx context.Context) notificationdomain.ConfigView {
	return f.Config
}

func (f *FakeService) UpdateConfig(ctx context.Context, update notificationdomain.ConfigUpdate) (notificationdomain.ConfigView, error) {
	if f.UpdateConfigFunc != nil {
		return f.UpdateConfigFunc(ctx, update)
	}
	return f.Config, nil
}

func (f *FakeService) AlertStaff(ctx context.Context, payload submissiondomain.SubmittedPayload) error {
	return nil
}

var _ notificationservice.Service = (*FakeService)(nil)
