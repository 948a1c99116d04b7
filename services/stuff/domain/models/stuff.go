package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// QuantityScale is the number of decimal places stored for Stuff.Quantity,
// matching the numeric(10,2) column.
const QuantityScale = 2

// Stuff is the core aggregate for this bounded context: one tracked
// household inventory record together with the tags it owns.
type Stuff struct {
	ID          uuid.UUID
	Name        string
	Description string

	// Quantity and Unit are jointly present or jointly absent.
	Quantity *decimal.Decimal
	Unit     Unit

	ExpirationDate *time.Time
	Archived       bool

	CreatedAt time.Time
	UpdatedAt time.Time

	// Tags owned by this stuff via the polymorphic taggable relation.
	// The stuff is the sole authority over their lifecycle during
	// nested writes.
	Tags []Tag
}

// StuffFields is the candidate field set for creating or updating a Stuff.
// Validation runs against this shape before an aggregate is built.
type StuffFields struct {
	Name           string
	Description    string
	Quantity       *decimal.Decimal
	Unit           Unit
	ExpirationDate *time.Time
	Archived       bool
}

// NewStuff constructs a Stuff aggregate from already-validated fields with a
// generated ID and current timestamps. Quantity is normalized to two decimal
// places. Archived defaults to false unless set in fields.
func NewStuff(fields StuffFields) *Stuff {
	now := time.Now().UTC()
	return &Stuff{
		ID:             uuid.New(),
		Name:           fields.Name,
		Description:    fields.Description,
		Quantity:       roundQuantity(fields.Quantity),
		Unit:           fields.Unit,
		ExpirationDate: fields.ExpirationDate,
		Archived:       fields.Archived,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// Apply overlays the given fields onto the aggregate and bumps UpdatedAt.
// Callers validate the merged state before persisting.
func (s *Stuff) Apply(fields StuffFields) {
	s.Name = fields.Name
	s.Description = fields.Description
	s.Quantity = roundQuantity(fields.Quantity)
	s.Unit = fields.Unit
	s.ExpirationDate = fields.ExpirationDate
	s.Archived = fields.Archived
	s.UpdatedAt = time.Now().UTC()
}

// Fields returns the aggregate's current candidate field set, used as the
// base for merge-on-update.
func (s *Stuff) Fields() StuffFields {
	return StuffFields{
		Name:           s.Name,
		Description:    s.Description,
		Quantity:       s.Quantity,
		Unit:           s.Unit,
		ExpirationDate: s.ExpirationDate,
		Archived:       s.Archived,
	}
}

// TaggableRef returns the polymorphic owner reference identifying this stuff.
func (s *Stuff) TaggableRef() TaggableRef {
	return TaggableRef{Type: TaggableTypeStuff, ID: s.ID}
}

func roundQuantity(q *decimal.Decimal) *decimal.Decimal {
	if q == nil {
		return nil
	}
	rounded := q.Round(QuantityScale)
	return &rounded
}
