package submissionhandlers

import (
	"context"

	"github.com/google/uuid"

	submissionservice "github.com/skyrden-airlines/portal/app/modules/submission/application"
)

// FakeService is a programmable submissionservice.Service.
type FakeService struct {
	SubmitFunc    func(ctx context.Context, userID uuid.UUID, input submissionservice.SubmitInput) (*submissionservice.SubmissionView, error)
	ListMineFunc  func(ctx context.Context, userID uuid.UUID) ([]*submissionservice.SubmissionView, error)
	AdminListFunc func(ctx context.Context, query submissionservice.AdminQuery) ([]*submissionservice.AdminSubmissionView, error)
	ExportFunc    func(ctx context.Context, query submissionservice.AdminQuery) ([]byte, error)
	ReviewFunc    func(ctx context.Context, reviewerID uuid.UUID, input submissionservice.ReviewInput) (*submissionservice.ReviewResult, error)
}

func (f *FakeService) Submit(ctx context.Context, userID uuid.UUID, input submissionservice.SubmitInput) (*submissionservice.SubmissionView, error) {
	if f.SubmitFunc != nil {
		return f.SubmitFunc(ctx, userID, input)
	}
	return &submissionservice.SubmissionView{ID: uuid.New()}, nil
}

func (f *FakeService) ListMine(ctx context.Context, userID uuid.UUID) ([]*submissionservice.SubmissionView, error) {
	if f.ListMineFunc != nil {
		return f.ListMineFunc(ctx, userID)
	}
	return []*submissionservice.SubmissionView{}, nil
}

func (f *FakeService) AdminList(ctx context.Context, query submissionservice.AdminQuery) ([]*submissionservice.AdminSubmissionView, error) {
	if f.AdminListFunc != nil {
		return f.AdminListFunc(ctx, query)
	}
	return []*submissionservice.AdminSubmissionView{}, nil
}

func (f *FakeService) Export(ctx context.Context, query submissionservice.AdminQuery) ([]byte, error) {
	if f.ExportFunc != nil {
		return f.ExportFunc(ctx, query)
	}
	return []byte("PK"), nil
}

func (f *FakeService) Review(ctx context.Context, reviewerID uuid.UUID, input submissionservice.ReviewInput) (*submissionservice.ReviewResult, error) {
	if f.ReviewFunc != nil {
		return f.ReviewFunc(ctx, reviewerID, input)
	}
	return &submissionservice.ReviewResult{Success: true}, nil
}

var _ submissionservice.Service = (*FakeService)(nil)
