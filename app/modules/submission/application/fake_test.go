package submissionservice

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/skyrden-airlines/portal/app/eventbus"
)

// FakeNotifier records Notify calls.
type FakeNotifier struct {
	NotifyFunc func(ctx context.Context, submissionID uuid.UUID, message string) error

	Calls []NotifyCall
}

type NotifyCall struct {
	SubmissionID uuid.UUID
	Message      string
}

func (f *FakeNotifier) Notify(ctx context.Context, submissionID uuid.UUID, message string) error {
	f.Calls = append(f.Calls, NotifyCall{SubmissionID: submissionID, Message: message})
	if f.NotifyFunc != nil {
		return f.NotifyFunc(ctx, submissionID, message)
	}
	return nil
}

var _ Notifier = (*FakeNotifier)(nil)

// FakeBus records published events.
type FakeBus struct {
	mu        sync.Mutex
	Published map[string][]any
}

func (f *FakeBus) Publish(ctx context.Context, topic string, payload any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Published == nil {
		f.Published = map[string][]any{}
	}
	f.Published[topic] = append(f.Published[topic], payload)
	return nil
}

func (f *FakeBus) Subscribe(ctx context.Context, topic string, handler eventbus.Handler) error {
	return nil
}

func (f *FakeBus) Close() error { return nil }

func (f *FakeBus) Count(topic string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.Published[topic])
}

var _ eventbus.EventBus = (*FakeBus)(nil)
