package submissiondb

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Repository persists application responses. Reads that return Response
// values join the form, the applicant and the reviewer.
type Repository interface {
	CreateResponse(ctx context.Context, db bun.IDB, response *Response) error
	GetResponse(ctx context.Context, db bun.IDB, id uuid.UUID) (*Response, error)
	ListByUser(ctx context.Context, db bun.IDB, userID uuid.UUID) ([]Response, error)
	List(ctx context.Context, db bun.IDB, filter Filter) ([]Response, error)

	CountByForm(ctx context.Context, db bun.IDB, formID uuid.UUID) (int, error)
	CountByFormAndUser(ctx context.Context, db bun.IDB, formID, userID uuid.UUID) (int, error)

	// Review records a decision on a pending submission. It returns
	// ErrNoRowsAffected when the submission is missing or already reviewed.
	Review(ctx context.Context, db bun.IDB, id uuid.UUID, review Review) error

	// ListUnnotified returns reviewed submissions whose DM has not been sent,
	// oldest review first.
	ListUnnotified(ctx context.Context, db bun.IDB) ([]Response, error)
	MarkNotificationSent(ctx context.Context, db bun.IDB, id uuid.UUID, at time.Time) error
}
