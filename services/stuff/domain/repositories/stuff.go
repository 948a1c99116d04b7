package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/ghuser/stuffkeeper/services/stuff/domain/models"
)

// TagChangeSet is the resolved set of tag mutations accompanying a stuff
// update. The repository applies it together with the stuff row change in
// one transaction.
type TagChangeSet struct {
	Create []*models.Tag
	Update []*models.Tag
	Delete []uuid.UUID
}

// StuffRepository is the persistence interface for the Stuff aggregate and
// its owned tags. The domain layer owns this interface; infrastructure
// implements it. Multi-record methods (Create, Update, Delete) are atomic:
// either every row change lands or none does.
type StuffRepository interface {
	// Create persists a new stuff together with its initial tags.
	Create(ctx context.Context, stuff *models.Stuff) error

	// GetByID retrieves a stuff with its tags loaded.
	// Returns ErrStuffNotFound when absent.
	GetByID(ctx context.Context, id uuid.UUID) (*models.Stuff, error)

	// List retrieves stuffs (with tags) filtered by the scope, in
	// insertion order.
	List(ctx context.Context, scope models.Scope) ([]*models.Stuff, error)

	// Update persists the stuff's changed fields and applies the tag
	// change set in the same transaction.
	// Returns ErrStuffNotFound when the stuff no longer exists.
	Update(ctx context.Context, stuff *models.Stuff, changes TagChangeSet) error

	// Delete removes the stuff and every tag it owns in one transaction.
	// Returns ErrStuffNotFound when absent.
	Delete(ctx context.Context, id uuid.UUID) error

	// GetTag retrieves a single tag. Returns ErrTagNotFound when absent.
	GetTag(ctx context.Context, id uuid.UUID) (*models.Tag, error)

	// ListTags retrieves the tags owned by the given reference, in
	// insertion order.
	ListTags(ctx context.Context, owner models.TaggableRef) ([]models.Tag, error)

	// CreateTag persists a single new tag.
	CreateTag(ctx context.Context, tag *models.Tag) error

	// UpdateTag persists changes to an existing tag.
	// Returns ErrTagNotFound when absent.
	UpdateTag(ctx context.Context, tag *models.Tag) error

	// DeleteTag removes a single tag. Returns ErrTagNotFound when absent.
	DeleteTag(ctx context.Context, id uuid.UUID) error
}
