package models

import (
	"time"

	"github.com/google/uuid"
)

// TaggableTypeStuff is the discriminant recorded for tags owned by a Stuff.
// The mechanism is generic; Stuff is currently the only taggable type.
const TaggableTypeStuff = "Stuff"

// TaggableRef is the polymorphic owner of a Tag: a (type name, id) pair.
// The tag holds it opaquely and never dereferences the owner itself.
type TaggableRef struct {
	Type string
	ID   uuid.UUID
}

// Zero reports whether the reference is unset.
func (r TaggableRef) Zero() bool {
	return r.Type == "" || r.ID == uuid.Nil
}

// Tag is a labeled, colored annotation attached to exactly one owning
// entity. Ownership is assigned at creation and never transferred.
type Tag struct {
	ID          uuid.UUID
	Name        string
	Description string

	// ColorCode is optional; when present it is a strict #RRGGBB value.
	ColorCode string

	Owner TaggableRef

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TagFields is the candidate field set for creating or updating a Tag.
type TagFields struct {
	Name        string
	Description string
	ColorCode   string
}

// NewTag constructs a Tag from already-validated fields, owned by the given
// reference, with a generated ID and current timestamps.
func NewTag(fields TagFields, owner TaggableRef) *Tag {
	now := time.Now().UTC()
	return &Tag{
		ID:          uuid.New(),
		Name:        fields.Name,
		Description: fields.Description,
		ColorCode:   fields.ColorCode,
		Owner:       owner,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Apply overlays the given fields onto the tag and bumps UpdatedAt.
// Ownership is untouchable here.
func (t *Tag) Apply(fields TagFields) {
	t.Name = fields.Name
	t.Description = fields.Description
	t.ColorCode = fields.ColorCode
	t.UpdatedAt = time.Now().UTC()
}

// Fields returns the tag's current candidate field set.
func (t *Tag) Fields() TagFields {
	return TagFields{
		Name:        t.Name,
		Description: t.Description,
		ColorCode:   t.ColorCode,
	}
}

// OwnedBy reports whether the tag belongs to the given owner reference.
func (t *Tag) OwnedBy(owner TaggableRef) bool {
	return t.Owner == owner
}
