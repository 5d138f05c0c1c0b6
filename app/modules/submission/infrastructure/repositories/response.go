package submissiondb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	submissiondomain "github.com/skyrden-airlines/portal/app/modules/submission/domain"
	"github.com/skyrden-airlines/portal/db/bundb"
)

// Impl implements the Repository interface using Bun ORM.
type Impl struct {
	db bun.IDB
}

// NewRepository creates a new submission repository.
func NewRepository(db bun.IDB) Repository {
	return &Impl{db: db}
}

func (r *Impl) resolveDB(db bun.IDB) bun.IDB {
	if db == nil {
		return r.db
	}
	return db
}

func joined(q *bun.SelectQuery) *bun.SelectQuery {
	return q.Relation("Form").Relation("User").Relation("Reviewer")
}

func (r *Impl) CreateResponse(ctx context.Context, db bun.IDB, response *Response) error {
	db = r.resolveDB(db)
	now := time.Now().UTC()
	if response.ID == uuid.Nil {
		response.ID = uuid.New()
	}
	if response.Status == "" {
		response.Status = submissiondomain.StatusPending
	}
	response.CreatedAt = now
	response.UpdatedAt = now

	if _, err := db.NewInsert().Model(response).Exec(ctx); err != nil {
		if bundb.IsUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to create submission: %w", err)
	}
	return nil
}

func (r *Impl) GetResponse(ctx context.Context, db bun.IDB, id uuid.UUID) (*Response, error) {
	db = r.resolveDB(db)
	response := new(Response)
	err := joined(db.NewSelect().Model(response)).Where("ar.id = ?", id).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get submission: %w", err)
	}
	return response, nil
}

func (r *Impl) ListByUser(ctx context.Context, db bun.IDB, userID uuid.UUID) ([]Response, error) {
	db = r.resolveDB(db)
	var responses []Response
	err := joined(db.NewSelect().Model(&responses)).
		Where("ar.user_id = ?", userID).
		Order("ar.created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list submissions by user: %w", err)
	}
	return responses, nil
}

func (r *Impl) List(ctx context.Context, db bun.IDB, filter Filter) ([]Response, error) {
	db = r.resolveDB(db)
	var responses []Response
	q := joined(db.NewSelect().Model(&responses))
	if filter.FormID != nil {
		q = q.Where("ar.form_id = ?", *filter.FormID)
	}
	if filter.Status != nil {
		q = q.Where("ar.status = ?", *filter.Status)
	}
	if err := q.Order("ar.created_at DESC").Scan(ctx); err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}
	return responses, nil
}

func (r *Impl) CountByForm(ctx context.Context, db bun.IDB, formID uuid.UUID) (int, error) {
	db = r.resolveDB(db)
	n, err := db.NewSelect().Model((*Response)(nil)).Where("form_id = ?", formID).Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count submissions for form: %w", err)
	}
	return n, nil
}

func (r *Impl) CountByFormAndUser(ctx context.Context, db bun.IDB, formID, userID uuid.UUID) (int, error) {
	db = r.resolveDB(db)
	n, err := db.NewSelect().
		Model((*Response)(nil)).
		Where("form_id = ?", formID).
		Where("user_id = ?", userID).
		Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count user submissions for form: %w", err)
	}
	return n, nil
}

func (r *Impl) Review(ctx context.Context, db bun.IDB, id uuid.UUID, review Review) error {
	db = r.resolveDB(db)
	res, err := db.NewUpdate().
		Model((*Response)(nil)).
		Set("status = ?", review.Status).
		Set("admin_feedback = ?", review.Feedback).
		Set("notification_message = ?", review.NotificationMessage).
		Set("reviewed_by = ?", review.ReviewedBy).
		Set("reviewed_at = ?", review.ReviewedAt).
		Set("updated_at = ?", review.ReviewedAt).
		Where("id = ?", id).
		Where("status = ?", submissiondomain.StatusPending).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to review submission: %w", err)
	}
	return checkAffected(res)
}

func (r *Impl) ListUnnotified(ctx context.Context, db bun.IDB) ([]Response, error) {
	db = r.resolveDB(db)
	var responses []Response
	err := joined(db.NewSelect().Model(&responses)).
		Where("ar.status IN (?)", bun.In([]submissiondomain.Status{submissiondomain.StatusApproved, submissiondomain.StatusRejected})).
		Where("ar.notification_sent = ?", false).
		Where("ar.reviewed_at IS NOT NULL").
		Order("ar.reviewed_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list unnotified submissions: %w", err)
	}
	return responses, nil
}

func (r *Impl) MarkNotificationSent(ctx context.Context, db bun.IDB, id uuid.UUID, at time.Time) error {
	db = r.resolveDB(db)
	res, err := db.NewUpdate().
		Model((*Response)(nil)).
		Set("notification_sent = ?", true).
		Set("notification_sent_at = ?", at).
		Set("updated_at = ?", at).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to mark notification sent: %w", err)
	}
	return checkAffected(res)
}

func checkAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return ErrNoRowsAffected
	}
	return nil
}
