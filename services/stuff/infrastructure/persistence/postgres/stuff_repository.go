package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ghuser/stuffkeeper/pkg/database"
	stuffdomain "github.com/ghuser/stuffkeeper/services/stuff/domain"
	"github.com/ghuser/stuffkeeper/services/stuff/domain/models"
	"github.com/ghuser/stuffkeeper/services/stuff/domain/repositories"
)

// StuffRepository implements repositories.StuffRepository against PostgreSQL.
// Multi-record writes run inside a single transaction via database.WithTx.
type StuffRepository struct {
	db *database.Database
}

// NewStuffRepository returns a StuffRepository backed by the given pool.
func NewStuffRepository(db *database.Database) *StuffRepository {
	return &StuffRepository{db: db}
}

var _ repositories.StuffRepository = (*StuffRepository)(nil)

const stuffColumns = "id, name, description, quantity, unit, expiration_date, archived, created_at, updated_at"

const tagColumns = "id, name, description, color_code, taggable_type, taggable_id, created_at, updated_at"

// Create persists a new stuff and its initial tags in one transaction.
func (r *StuffRepository) Create(ctx context.Context, stuff *models.Stuff) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO stuffs (`+stuffColumns+`)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			stuff.ID, stuff.Name, stuff.Description,
			nullDecimal(stuff.Quantity), nullString(stuff.Unit.String()),
			nullTime(stuff.ExpirationDate), stuff.Archived,
			stuff.CreatedAt, stuff.UpdatedAt,
		); err != nil {
			return fmt.Errorf("insert stuff: %w", err)
		}

		for i := range stuff.Tags {
			if err := insertTag(ctx, tx, &stuff.Tags[i]); err != nil {
				return err
			}
		}
		return nil
	})
}

// GetByID retrieves a stuff with its tags loaded. Returns ErrStuffNotFound
// when absent.
func (r *StuffRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Stuff, error) {
	row := r.db.DB().QueryRowContext(ctx,
		`SELECT `+stuffColumns+` FROM stuffs WHERE id = $1`, id)

	stuff, err := scanStuff(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, stuffdomain.ErrStuffNotFound
		}
		return nil, fmt.Errorf("query stuff: %w", err)
	}

	tags, err := r.ListTags(ctx, stuff.TaggableRef())
	if err != nil {
		return nil, err
	}
	stuff.Tags = tags
	return stuff, nil
}

// List retrieves stuffs with tags, filtered by scope, in insertion order.
func (r *StuffRepository) List(ctx context.Context, scope models.Scope) ([]*models.Stuff, error) {
	query := `SELECT ` + stuffColumns + ` FROM stuffs`
	var args []any
	if clause, clauseArgs := scopeClause(scope, time.Now().UTC()); clause != "" {
		query += " WHERE " + clause
		args = clauseArgs
	}
	query += " ORDER BY created_at, id"

	rows, err := r.db.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query stuffs: %w", err)
	}
	defer rows.Close()

	var stuffs []*models.Stuff
	byID := make(map[uuid.UUID]*models.Stuff)
	for rows.Next() {
		stuff, err := scanStuff(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stuff: %w", err)
		}
		stuffs = append(stuffs, stuff)
		byID[stuff.ID] = stuff
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate stuffs: %w", err)
	}

	if err := r.attachTags(ctx, scope, byID); err != nil {
		return nil, err
	}
	return stuffs, nil
}

// attachTags loads the tags of every listed stuff with one joined query and
// distributes them onto their owners.
func (r *StuffRepository) attachTags(ctx context.Context, scope models.Scope, byID map[uuid.UUID]*models.Stuff) error {
	if len(byID) == 0 {
		return nil
	}

	query := `SELECT t.` + tagColumnsPrefixed() + `
		 FROM tags t
		 JOIN stuffs s ON s.id = t.taggable_id
		 WHERE t.taggable_type = $1`
	args := []any{models.TaggableTypeStuff}
	if clause, clauseArgs := scopeClausePrefixed(scope, time.Now().UTC(), "s.", 2); clause != "" {
		query += " AND " + clause
		args = append(args, clauseArgs...)
	}
	query += " ORDER BY t.created_at, t.id"

	rows, err := r.db.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("query tags: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		tag, err := scanTag(rows)
		if err != nil {
			return fmt.Errorf("scan tag: %w", err)
		}
		if owner, ok := byID[tag.Owner.ID]; ok {
			owner.Tags = append(owner.Tags, *tag)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate tags: %w", err)
	}
	return nil
}

// Update persists the stuff's fields and applies the tag change set in the
// same transaction. Returns ErrStuffNotFound when the row no longer exists.
func (r *StuffRepository) Update(ctx context.Context, stuff *models.Stuff, changes repositories.TagChangeSet) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			`UPDATE stuffs
			 SET name = $2, description = $3, quantity = $4, unit = $5,
			     expiration_date = $6, archived = $7, updated_at = $8
			 WHERE id = $1`,
			stuff.ID, stuff.Name, stuff.Description,
			nullDecimal(stuff.Quantity), nullString(stuff.Unit.String()),
			nullTime(stuff.ExpirationDate), stuff.Archived, stuff.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("update stuff: %w", err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return stuffdomain.ErrStuffNotFound
		}

		for _, id := range changes.Delete {
			if _, err := tx.ExecContext(ctx, `DELETE FROM tags WHERE id = $1`, id); err != nil {
				return fmt.Errorf("delete tag: %w", err)
			}
		}
		for _, tag := range changes.Update {
			if err := updateTag(ctx, tx, tag); err != nil {
				return err
			}
		}
		for _, tag := range changes.Create {
			if err := insertTag(ctx, tx, tag); err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete removes the stuff and every tag it owns in one transaction.
func (r *StuffRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM tags WHERE taggable_type = $1 AND taggable_id = $2`,
			models.TaggableTypeStuff, id,
		); err != nil {
			return fmt.Errorf("delete tags: %w", err)
		}

		res, err := tx.ExecContext(ctx, `DELETE FROM stuffs WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("delete stuff: %w", err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return stuffdomain.ErrStuffNotFound
		}
		return nil
	})
}

// GetTag retrieves a single tag. Returns ErrTagNotFound when absent.
func (r *StuffRepository) GetTag(ctx context.Context, id uuid.UUID) (*models.Tag, error) {
	row := r.db.DB().QueryRowContext(ctx,
		`SELECT `+tagColumns+` FROM tags WHERE id = $1`, id)

	tag, err := scanTag(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, stuffdomain.ErrTagNotFound
		}
		return nil, fmt.Errorf("query tag: %w", err)
	}
	return tag, nil
}

// ListTags retrieves the tags owned by the given reference, in insertion order.
func (r *StuffRepository) ListTags(ctx context.Context, owner models.TaggableRef) ([]models.Tag, error) {
	rows, err := r.db.DB().QueryContext(ctx,
		`SELECT `+tagColumns+`
		 FROM tags
		 WHERE taggable_type = $1 AND taggable_id = $2
		 ORDER BY created_at, id`,
		owner.Type, owner.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("query tags: %w", err)
	}
	defer rows.Close()

	var tags []models.Tag
	for rows.Next() {
		tag, err := scanTag(rows)
		if err != nil {
			return nil, fmt.Errorf("scan tag: %w", err)
		}
		tags = append(tags, *tag)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tags: %w", err)
	}
	return tags, nil
}

// CreateTag persists a single new tag.
func (r *StuffRepository) CreateTag(ctx context.Context, tag *models.Tag) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		return insertTag(ctx, tx, tag)
	})
}

// UpdateTag persists changes to an existing tag. Returns ErrTagNotFound
// when absent.
func (r *StuffRepository) UpdateTag(ctx context.Context, tag *models.Tag) error {
	res, err := r.db.DB().ExecContext(ctx,
		`UPDATE tags
		 SET name = $2, description = $3, color_code = $4, updated_at = $5
		 WHERE id = $1`,
		tag.ID, tag.Name, tag.Description, nullString(tag.ColorCode), tag.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update tag: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return stuffdomain.ErrTagNotFound
	}
	return nil
}

// DeleteTag removes a single tag. Returns ErrTagNotFound when absent.
func (r *StuffRepository) DeleteTag(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.DB().ExecContext(ctx, `DELETE FROM tags WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete tag: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return stuffdomain.ErrTagNotFound
	}
	return nil
}

func insertTag(ctx context.Context, tx *sql.Tx, tag *models.Tag) error {
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO tags (`+tagColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		tag.ID, tag.Name, tag.Description, nullString(tag.ColorCode),
		tag.Owner.Type, tag.Owner.ID, tag.CreatedAt, tag.UpdatedAt,
	); err != nil {
		return fmt.Errorf("insert tag: %w", err)
	}
	return nil
}

func updateTag(ctx context.Context, tx *sql.Tx, tag *models.Tag) error {
	if _, err := tx.ExecContext(ctx,
		`UPDATE tags
		 SET name = $2, description = $3, color_code = $4, updated_at = $5
		 WHERE id = $1`,
		tag.ID, tag.Name, tag.Description, nullString(tag.ColorCode), tag.UpdatedAt,
	); err != nil {
		return fmt.Errorf("update tag: %w", err)
	}
	return nil
}

// scopeClause returns the SQL predicate matching models.Scope.Matches,
// with placeholders starting at $1.
func scopeClause(scope models.Scope, now time.Time) (string, []any) {
	return scopeClausePrefixed(scope, now, "", 1)
}

func scopeClausePrefixed(scope models.Scope, now time.Time, prefix string, firstArg int) (string, []any) {
	switch scope {
	case models.ScopeActive:
		return prefix + "archived = false", nil
	case models.ScopeArchived:
		return prefix + "archived = true", nil
	case models.ScopeExpiringSoon:
		return fmt.Sprintf("%sexpiration_date IS NOT NULL AND %sexpiration_date < $%d", prefix, prefix, firstArg),
			[]any{now.Add(models.ExpiringSoonWindow)}
	case models.ScopeExpired:
		return fmt.Sprintf("%sexpiration_date IS NOT NULL AND %sexpiration_date < $%d", prefix, prefix, firstArg),
			[]any{now}
	default:
		return "", nil
	}
}

func tagColumnsPrefixed() string {
	return "id, t.name, t.description, t.color_code, t.taggable_type, t.taggable_id, t.created_at, t.updated_at"
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanStuff(row rowScanner) (*models.Stuff, error) {
	var (
		s        models.Stuff
		quantity decimal.NullDecimal
		unit     sql.NullString
		expires  sql.NullTime
	)
	if err := row.Scan(
		&s.ID, &s.Name, &s.Description, &quantity, &unit, &expires,
		&s.Archived, &s.CreatedAt, &s.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if quantity.Valid {
		s.Quantity = &quantity.Decimal
	}
	if unit.Valid {
		s.Unit = models.Unit(unit.String)
	}
	if expires.Valid {
		t := expires.Time
		s.ExpirationDate = &t
	}
	return &s, nil
}

func scanTag(row rowScanner) (*models.Tag, error) {
	var (
		t     models.Tag
		color sql.NullString
	)
	if err := row.Scan(
		&t.ID, &t.Name, &t.Description, &color,
		&t.Owner.Type, &t.Owner.ID, &t.CreatedAt, &t.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if color.Valid {
		t.ColorCode = color.String
	}
	return &t, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func nullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *d, Valid: true}
}
