package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ghuser/stuffkeeper/services/stuff/domain"
	"github.com/ghuser/stuffkeeper/services/stuff/domain/models"
	"github.com/ghuser/stuffkeeper/services/stuff/domain/repositories"
	domainsvcs "github.com/ghuser/stuffkeeper/services/stuff/domain/services"
)

// TagOp is one entry of a nested tag list, disambiguated by shape:
// no ID and no Destroy marker is a create, an ID without Destroy is an
// update, and Destroy true is a delete (a no-op when ID is absent).
type TagOp struct {
	ID      *uuid.UUID
	Fields  models.TagFields
	Destroy bool
}

// dropped reports whether the entry is silently discarded: a blank-named
// entry that is not a delete is treated as "no tag", not as an error.
func (op TagOp) dropped() bool {
	return !op.Destroy && !domainsvcs.ValidateName(op.Fields.Name)
}

// StuffPatch carries the fields supplied on an update. Nil pointers mean
// "keep the existing value"; fields are not clearable through a patch.
type StuffPatch struct {
	Name           *string
	Description    *string
	Quantity       *decimal.Decimal
	Unit           *models.Unit
	ExpirationDate *time.Time
	Archived       *bool
}

func (p StuffPatch) apply(fields models.StuffFields) models.StuffFields {
	if p.Name != nil {
		fields.Name = *p.Name
	}
	if p.Description != nil {
		fields.Description = *p.Description
	}
	if p.Quantity != nil {
		fields.Quantity = p.Quantity
	}
	if p.Unit != nil {
		fields.Unit = *p.Unit
	}
	if p.ExpirationDate != nil {
		fields.ExpirationDate = p.ExpirationDate
	}
	if p.Archived != nil {
		fields.Archived = *p.Archived
	}
	return fields
}

// TagPatch carries the fields supplied on a standalone tag update.
// Nil pointers mean "keep the existing value".
type TagPatch struct {
	Name        *string
	Description *string
	ColorCode   *string
}

func (p TagPatch) apply(fields models.TagFields) models.TagFields {
	if p.Name != nil {
		fields.Name = *p.Name
	}
	if p.Description != nil {
		fields.Description = *p.Description
	}
	if p.ColorCode != nil {
		fields.ColorCode = *p.ColorCode
	}
	return fields
}

// StuffService coordinates validated writes on the Stuff aggregate and its
// tags. The nested-write paths validate everything up front and hand the
// repository a single atomic unit of work: a tag-level failure leaves the
// stuff unmodified (or uncreated).
type StuffService struct {
	repo repositories.StuffRepository
}

// NewStuffService returns a StuffService wired with the given repository.
func NewStuffService(repo repositories.StuffRepository) *StuffService {
	return &StuffService{repo: repo}
}

// Create validates and persists a new stuff together with its nested tag
// entries. Item-level violations reject the whole request before tag
// entries are even examined. Blank-named entries are silently dropped;
// any violation on a surviving entry rejects the whole request.
func (s *StuffService) Create(ctx context.Context, fields models.StuffFields, tagOps []TagOp) (*models.Stuff, error) {
	v := domainsvcs.ValidateStuff(fields)
	if !v.Empty() {
		return nil, domain.NewValidationError(v)
	}

	type pending struct {
		index  int
		fields models.TagFields
	}
	var surviving []pending
	for i, op := range tagOps {
		// Deletes target nothing during a create; skip them along
		// with dropped entries.
		if op.Destroy || op.dropped() {
			continue
		}
		surviving = append(surviving, pending{index: i, fields: op.Fields})
	}

	for _, p := range surviving {
		if tv := domainsvcs.ValidateTag(p.fields); !tv.Empty() {
			v.Merge(fmt.Sprintf("tags[%d].", p.index), tv)
		}
	}
	if !v.Empty() {
		return nil, domain.NewValidationError(v)
	}

	stuff := models.NewStuff(fields)
	for _, p := range surviving {
		stuff.Tags = append(stuff.Tags, *models.NewTag(p.fields, stuff.TaggableRef()))
	}

	if err := s.repo.Create(ctx, stuff); err != nil {
		return nil, fmt.Errorf("create stuff: %w", err)
	}

	created, err := s.repo.GetByID(ctx, stuff.ID)
	if err != nil {
		return nil, fmt.Errorf("reload stuff: %w", err)
	}
	return created, nil
}

// Update merges the patch onto the existing stuff, resolves the nested tag
// list, re-validates everything, and applies the whole change as one
// transaction.
//
// A nil tagOps leaves existing tags untouched. A present list replaces tag
// membership: entries with an ID update that tag, entries marked Destroy
// delete it, entries without an ID create a new one, and every existing tag
// the list does not mention is deleted, so an empty list clears all tags.
func (s *StuffService) Update(ctx context.Context, id uuid.UUID, patch StuffPatch, tagOps *[]TagOp) (*models.Stuff, error) {
	stuff, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get stuff: %w", err)
	}

	merged := patch.apply(stuff.Fields())
	v := domainsvcs.ValidateStuff(merged)

	var changes repositories.TagChangeSet
	if tagOps != nil {
		changes, err = s.resolveTagOps(stuff, *tagOps, v)
		if err != nil {
			return nil, err
		}
	}

	if !v.Empty() {
		return nil, domain.NewValidationError(v)
	}

	stuff.Apply(merged)
	if err := s.repo.Update(ctx, stuff, changes); err != nil {
		return nil, fmt.Errorf("update stuff: %w", err)
	}

	updated, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("reload stuff: %w", err)
	}
	return updated, nil
}

// resolveTagOps turns the submitted tag list into a change set against the
// stuff's current tags, accumulating field violations into v. Referencing a
// tag that does not belong to this stuff fails immediately with
// ErrTagNotFound.
func (s *StuffService) resolveTagOps(stuff *models.Stuff, tagOps []TagOp, v domain.Violations) (repositories.TagChangeSet, error) {
	owned := make(map[uuid.UUID]*models.Tag, len(stuff.Tags))
	for i := range stuff.Tags {
		owned[stuff.Tags[i].ID] = &stuff.Tags[i]
	}

	var changes repositories.TagChangeSet
	mentioned := make(map[uuid.UUID]bool)

	for i, op := range tagOps {
		switch {
		case op.Destroy:
			if op.ID == nil {
				continue // nothing to delete
			}
			if _, ok := owned[*op.ID]; !ok {
				return changes, fmt.Errorf("destroy tag %s: %w", op.ID, domain.ErrTagNotFound)
			}
			mentioned[*op.ID] = true
			changes.Delete = append(changes.Delete, *op.ID)

		case op.dropped():
			continue

		case op.ID != nil:
			existing, ok := owned[*op.ID]
			if !ok {
				return changes, fmt.Errorf("update tag %s: %w", op.ID, domain.ErrTagNotFound)
			}
			if tv := domainsvcs.ValidateTag(op.Fields); !tv.Empty() {
				v.Merge(fmt.Sprintf("tags[%d].", i), tv)
				continue
			}
			mentioned[*op.ID] = true
			updated := *existing
			updated.Apply(op.Fields)
			changes.Update = append(changes.Update, &updated)

		default:
			if tv := domainsvcs.ValidateTag(op.Fields); !tv.Empty() {
				v.Merge(fmt.Sprintf("tags[%d].", i), tv)
				continue
			}
			changes.Create = append(changes.Create, models.NewTag(op.Fields, stuff.TaggableRef()))
		}
	}

	// A present list is authoritative for membership: existing tags it
	// does not mention are deleted.
	for i := range stuff.Tags {
		if !mentioned[stuff.Tags[i].ID] {
			changes.Delete = append(changes.Delete, stuff.Tags[i].ID)
		}
	}

	return changes, nil
}

// Get retrieves a stuff with its tags.
func (s *StuffService) Get(ctx context.Context, id uuid.UUID) (*models.Stuff, error) {
	stuff, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get stuff: %w", err)
	}
	return stuff, nil
}

// List retrieves stuffs filtered by the scope, in insertion order.
func (s *StuffService) List(ctx context.Context, scope models.Scope) ([]*models.Stuff, error) {
	stuffs, err := s.repo.List(ctx, scope)
	if err != nil {
		return nil, fmt.Errorf("list stuffs: %w", err)
	}
	return stuffs, nil
}

// Delete removes a stuff and cascades to every tag it owns.
func (s *StuffService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete stuff: %w", err)
	}
	return nil
}

// CreateTag creates a single tag owned by the given stuff. The owner must
// exist; a tag can never exist without one.
func (s *StuffService) CreateTag(ctx context.Context, stuffID uuid.UUID, fields models.TagFields) (*models.Tag, error) {
	stuff, err := s.repo.GetByID(ctx, stuffID)
	if err != nil {
		return nil, fmt.Errorf("get stuff: %w", err)
	}

	if v := domainsvcs.ValidateTag(fields); !v.Empty() {
		return nil, domain.NewValidationError(v)
	}

	tag := models.NewTag(fields, stuff.TaggableRef())
	if err := s.repo.CreateTag(ctx, tag); err != nil {
		return nil, fmt.Errorf("create tag: %w", err)
	}
	return tag, nil
}

// ListTags retrieves the tags owned by the given stuff.
func (s *StuffService) ListTags(ctx context.Context, stuffID uuid.UUID) ([]models.Tag, error) {
	stuff, err := s.repo.GetByID(ctx, stuffID)
	if err != nil {
		return nil, fmt.Errorf("get stuff: %w", err)
	}
	tags, err := s.repo.ListTags(ctx, stuff.TaggableRef())
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	return tags, nil
}

// UpdateTag merges the patch onto an existing tag and re-validates.
// Ownership is never transferable: the patch cannot touch the owner pair.
func (s *StuffService) UpdateTag(ctx context.Context, id uuid.UUID, patch TagPatch) (*models.Tag, error) {
	tag, err := s.repo.GetTag(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get tag: %w", err)
	}

	merged := patch.apply(tag.Fields())
	if v := domainsvcs.ValidateTag(merged); !v.Empty() {
		return nil, domain.NewValidationError(v)
	}

	tag.Apply(merged)
	if err := s.repo.UpdateTag(ctx, tag); err != nil {
		return nil, fmt.Errorf("update tag: %w", err)
	}
	return tag, nil
}

// DeleteTag removes a single tag.
func (s *StuffService) DeleteTag(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteTag(ctx, id); err != nil {
		return fmt.Errorf("delete tag: %w", err)
	}
	return nil
}
