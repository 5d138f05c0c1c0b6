package formdb

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	formdomain "github.com/skyrden-airlines/portal/app/modules/form/domain"
)

// Form is an application form. Fields are stored as a JSON array.
type Form struct {
	bun.BaseModel `bun:"table:application_forms,alias:f"`

	ID               uuid.UUID          `bun:"id,pk,type:varchar(36)"`
	Title            string             `bun:"title,notnull"`
	Description      string             `bun:"description,notnull,default:''"`
	Fields           []formdomain.Field `bun:"fields,notnull"`
	Deadline         *time.Time         `bun:"deadline,nullzero"`
	ApplicationLimit int                `bun:"application_limit,notnull,default:1"`
	Status           formdomain.Status  `bun:"status,notnull,default:'draft'"`
	CreatedBy        *uuid.UUID         `bun:"created_by,type:varchar(36),nullzero"`
	CreatedAt        time.Time          `bun:"created_at,notnull"`
	UpdatedAt        time.Time          `bun:"updated_at,notnull"`
}

// Accepting reports whether the form takes submissions at now.
func (f *Form) Accepting(now time.Time) bool {
	return formdomain.Accepting(f.Status, f.Deadline, now)
}

// Field returns the field with id.
func (f *Form) Field(id string) (formdomain.Field, bool) {
	for _, field := range f.Fields {
		if field.ID == id {
			return field, true
		}
	}
	return formdomain.Field{}, false
}
