// Package handlers contains the HTTP handlers for the stuff bounded context,
// one file per endpoint. Request structs carry go-playground/validator tags
// mirroring the frontend's length limits; presence, range, and format rules
// stay in the domain layer so the 422 bodies keep their canonical wording.
package handlers

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	appsvcs "github.com/ghuser/stuffkeeper/services/stuff/application/services"
	"github.com/ghuser/stuffkeeper/services/stuff/domain/models"
)

// TagAttributes is one entry of a nested tag list. Shape disambiguates the
// operation: no id is a create, an id is an update, _destroy true is a
// delete. Blank-named entries that are not deletes are dropped server-side.
type TagAttributes struct {
	ID          *uuid.UUID `json:"id,omitempty"`
	Name        string     `json:"name"        validate:"max=50"  example:"leftovers"`
	Description string     `json:"description" validate:"max=200" example:"needs to go first"`
	ColorCode   string     `json:"color_code"  validate:"max=7"   example:"#FF0000"`
	Destroy     bool       `json:"_destroy,omitempty"`
} // @name TagAttributes

// TagResponse is the wire form of a tag.
type TagResponse struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	ColorCode    string    `json:"color_code,omitempty"`
	TaggableType string    `json:"taggable_type"`
	TaggableID   uuid.UUID `json:"taggable_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
} // @name TagResponse

// StuffResponse is the wire form of a stuff with its tags embedded.
type StuffResponse struct {
	ID             uuid.UUID        `json:"id"`
	Name           string           `json:"name"`
	Description    string           `json:"description,omitempty"`
	Quantity       *decimal.Decimal `json:"quantity,omitempty"`
	Unit           string           `json:"unit,omitempty"`
	ExpirationDate *time.Time       `json:"expiration_date,omitempty"`
	Archived       bool             `json:"archived"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
	Tags           []TagResponse    `json:"tags"`
} // @name StuffResponse

// ErrorResponse is returned on non-validation error responses.
type ErrorResponse struct {
	Error string `json:"error" example:"stuff not found"`
} // @name ErrorResponse

func toStuffResponse(s *models.Stuff) StuffResponse {
	resp := StuffResponse{
		ID:             s.ID,
		Name:           s.Name,
		Description:    s.Description,
		Quantity:       s.Quantity,
		Unit:           s.Unit.String(),
		ExpirationDate: s.ExpirationDate,
		Archived:       s.Archived,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
		Tags:           make([]TagResponse, 0, len(s.Tags)),
	}
	for i := range s.Tags {
		resp.Tags = append(resp.Tags, toTagResponse(&s.Tags[i]))
	}
	return resp
}

func toTagResponse(t *models.Tag) TagResponse {
	return TagResponse{
		ID:           t.ID,
		Name:         t.Name,
		Description:  t.Description,
		ColorCode:    t.ColorCode,
		TaggableType: t.Owner.Type,
		TaggableID:   t.Owner.ID,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
}

func toTagOps(attrs []TagAttributes) []appsvcs.TagOp {
	ops := make([]appsvcs.TagOp, 0, len(attrs))
	for _, a := range attrs {
		ops = append(ops, appsvcs.TagOp{
			ID: a.ID,
			Fields: models.TagFields{
				Name:        a.Name,
				Description: a.Description,
				ColorCode:   a.ColorCode,
			},
			Destroy: a.Destroy,
		})
	}
	return ops
}
