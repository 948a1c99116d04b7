// Package memory implements the stuff repository against in-process maps.
// Each instance owns its own state: construct one per test (or per dev
// server run) instead of sharing a process-wide store.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	stuffdomain "github.com/ghuser/stuffkeeper/services/stuff/domain"
	"github.com/ghuser/stuffkeeper/services/stuff/domain/models"
	"github.com/ghuser/stuffkeeper/services/stuff/domain/repositories"
)

// StuffRepository implements repositories.StuffRepository in memory.
// All methods are safe for concurrent use; every multi-record write is
// applied under one lock so partial states are never observable.
type StuffRepository struct {
	mu sync.Mutex

	stuffs     map[uuid.UUID]models.Stuff // stored without tags
	stuffOrder []uuid.UUID

	tags     map[uuid.UUID]models.Tag
	tagOrder []uuid.UUID
}

// NewStuffRepository returns an empty repository instance.
func NewStuffRepository() *StuffRepository {
	return &StuffRepository{
		stuffs: make(map[uuid.UUID]models.Stuff),
		tags:   make(map[uuid.UUID]models.Tag),
	}
}

// Create stores a new stuff together with its initial tags.
func (r *StuffRepository) Create(_ context.Context, stuff *models.Stuff) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *stuff
	stored.Tags = nil
	r.stuffs[stuff.ID] = stored
	r.stuffOrder = append(r.stuffOrder, stuff.ID)

	for _, tag := range stuff.Tags {
		r.tags[tag.ID] = tag
		r.tagOrder = append(r.tagOrder, tag.ID)
	}
	return nil
}

// GetByID returns a copy of the stuff with its tags attached.
func (r *StuffRepository) GetByID(_ context.Context, id uuid.UUID) (*models.Stuff, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.getLocked(id)
}

// List returns stuffs matching the scope, in insertion order.
func (r *StuffRepository) List(_ context.Context, scope models.Scope) ([]*models.Stuff, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	var out []*models.Stuff
	for _, id := range r.stuffOrder {
		stuff, err := r.getLocked(id)
		if err != nil {
			return nil, err
		}
		if scope.Matches(stuff, now) {
			out = append(out, stuff)
		}
	}
	return out, nil
}

// Update overwrites the stuff's fields and applies the tag change set as
// one unit.
func (r *StuffRepository) Update(_ context.Context, stuff *models.Stuff, changes repositories.TagChangeSet) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.stuffs[stuff.ID]; !ok {
		return stuffdomain.ErrStuffNotFound
	}

	stored := *stuff
	stored.Tags = nil
	r.stuffs[stuff.ID] = stored

	for _, id := range changes.Delete {
		r.deleteTagLocked(id)
	}
	for _, tag := range changes.Update {
		if _, ok := r.tags[tag.ID]; ok {
			r.tags[tag.ID] = *tag
		}
	}
	for _, tag := range changes.Create {
		r.tags[tag.ID] = *tag
		r.tagOrder = append(r.tagOrder, tag.ID)
	}
	return nil
}

// Delete removes the stuff and every tag it owns.
func (r *StuffRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stuff, ok := r.stuffs[id]
	if !ok {
		return stuffdomain.ErrStuffNotFound
	}

	owner := stuff.TaggableRef()
	for _, tagID := range append([]uuid.UUID(nil), r.tagOrder...) {
		tag := r.tags[tagID]
		if tag.OwnedBy(owner) {
			r.deleteTagLocked(tagID)
		}
	}

	delete(r.stuffs, id)
	for i, sid := range r.stuffOrder {
		if sid == id {
			r.stuffOrder = append(r.stuffOrder[:i], r.stuffOrder[i+1:]...)
			break
		}
	}
	return nil
}

// GetTag returns a copy of a single tag.
func (r *StuffRepository) GetTag(_ context.Context, id uuid.UUID) (*models.Tag, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	tag, ok := r.tags[id]
	if !ok {
		return nil, stuffdomain.ErrTagNotFound
	}
	return &tag, nil
}

// ListTags returns the tags owned by the given reference, in insertion order.
func (r *StuffRepository) ListTags(_ context.Context, owner models.TaggableRef) ([]models.Tag, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.listTagsLocked(owner), nil
}

// CreateTag stores a single new tag.
func (r *StuffRepository) CreateTag(_ context.Context, tag *models.Tag) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.tags[tag.ID] = *tag
	r.tagOrder = append(r.tagOrder, tag.ID)
	return nil
}

// UpdateTag overwrites an existing tag.
func (r *StuffRepository) UpdateTag(_ context.Context, tag *models.Tag) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tags[tag.ID]; !ok {
		return stuffdomain.ErrTagNotFound
	}
	r.tags[tag.ID] = *tag
	return nil
}

// DeleteTag removes a single tag.
func (r *StuffRepository) DeleteTag(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tags[id]; !ok {
		return stuffdomain.ErrTagNotFound
	}
	r.deleteTagLocked(id)
	return nil
}

// TagCount reports the number of stored tags, for cascade assertions in tests.
func (r *StuffRepository) TagCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.tags)
}

func (r *StuffRepository) getLocked(id uuid.UUID) (*models.Stuff, error) {
	stored, ok := r.stuffs[id]
	if !ok {
		return nil, stuffdomain.ErrStuffNotFound
	}
	stuff := stored
	stuff.Tags = r.listTagsLocked(stuff.TaggableRef())
	return &stuff, nil
}

func (r *StuffRepository) listTagsLocked(owner models.TaggableRef) []models.Tag {
	var out []models.Tag
	for _, id := range r.tagOrder {
		if tag := r.tags[id]; tag.OwnedBy(owner) {
			out = append(out, tag)
		}
	}
	return out
}

func (r *StuffRepository) deleteTagLocked(id uuid.UUID) {
	delete(r.tags, id)
	for i, tid := range r.tagOrder {
		if tid == id {
			r.tagOrder = append(r.tagOrder[:i], r.tagOrder[i+1:]...)
			break
		}
	}
}
