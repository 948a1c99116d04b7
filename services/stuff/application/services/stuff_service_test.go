package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ghuser/stuffkeeper/services/stuff/domain"
	"github.com/ghuser/stuffkeeper/services/stuff/domain/models"
	"github.com/ghuser/stuffkeeper/services/stuff/infrastructure/persistence/memory"
)

func newTestService() (*StuffService, *memory.StuffRepository) {
	repo := memory.NewStuffRepository()
	return NewStuffService(repo), repo
}

func qty(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func strPtr(s string) *string { return &s }

func mustCreate(t *testing.T, svc *StuffService, fields models.StuffFields, tagOps []TagOp) *models.Stuff {
	t.Helper()
	stuff, err := svc.Create(context.Background(), fields, tagOps)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	return stuff
}

func asValidationError(t *testing.T, err error) *domain.ValidationError {
	t.Helper()
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	return ve
}

func TestCreate_MinimalStuff(t *testing.T) {
	svc, _ := newTestService()

	stuff := mustCreate(t, svc, models.StuffFields{Name: "Rice"}, nil)

	if stuff.Name != "Rice" || stuff.Archived || len(stuff.Tags) != 0 {
		t.Fatalf("unexpected stuff: %+v", stuff)
	}
}

func TestCreate_WithNestedTags(t *testing.T) {
	svc, _ := newTestService()

	stuff := mustCreate(t, svc, models.StuffFields{Name: "Rice"}, []TagOp{
		{Fields: models.TagFields{Name: "staple", ColorCode: "#00AA00"}},
		{Fields: models.TagFields{Name: "pantry"}},
	})

	if len(stuff.Tags) != 2 {
		t.Fatalf("expected 2 tags, got %d", len(stuff.Tags))
	}
	for _, tag := range stuff.Tags {
		if !tag.OwnedBy(stuff.TaggableRef()) {
			t.Errorf("tag %s not owned by the new stuff", tag.ID)
		}
	}
}

func TestCreate_ItemViolationsRejectEverything(t *testing.T) {
	svc, repo := newTestService()

	_, err := svc.Create(context.Background(), models.StuffFields{Name: ""}, []TagOp{
		{Fields: models.TagFields{Name: "also-bad", ColorCode: "red"}},
	})

	ve := asValidationError(t, err)
	if _, ok := ve.Fields["name"]; !ok {
		t.Errorf("expected name violation: %v", ve.Fields)
	}
	// Tag entries are not examined when the item itself is invalid.
	if _, ok := ve.Fields["tags[0].color_code"]; ok {
		t.Errorf("tag violations should not appear: %v", ve.Fields)
	}
	if repo.TagCount() != 0 {
		t.Error("nothing should be persisted")
	}
}

func TestCreate_BlankNamedTagEntriesAreDropped(t *testing.T) {
	svc, _ := newTestService()

	stuff := mustCreate(t, svc, models.StuffFields{Name: "Rice"}, []TagOp{
		{Fields: models.TagFields{Name: "   "}},
		{Fields: models.TagFields{Name: "staple"}},
		{Fields: models.TagFields{}},
	})

	if len(stuff.Tags) != 1 || stuff.Tags[0].Name != "staple" {
		t.Fatalf("expected only the named tag to survive: %+v", stuff.Tags)
	}
}

func TestCreate_TagViolationKeepsOriginalIndex(t *testing.T) {
	svc, repo := newTestService()

	// Entry 0 is dropped, entry 1 is valid, entry 2 is invalid. The
	// violation key must use position 2 as submitted, not the position
	// after dropping.
	_, err := svc.Create(context.Background(), models.StuffFields{Name: "Rice"}, []TagOp{
		{Fields: models.TagFields{Name: ""}},
		{Fields: models.TagFields{Name: "staple"}},
		{Fields: models.TagFields{Name: "colorful", ColorCode: "#fff"}},
	})

	ve := asValidationError(t, err)
	if _, ok := ve.Fields["tags[2].color_code"]; !ok {
		t.Fatalf("expected tags[2].color_code violation: %v", ve.Fields)
	}
	if repo.TagCount() != 0 {
		t.Error("a failing tag entry must abort the whole create")
	}
}

func TestCreate_DuplicateTagNamesAreAllowed(t *testing.T) {
	svc, _ := newTestService()

	first := mustCreate(t, svc, models.StuffFields{Name: "Rice"}, []TagOp{
		{Fields: models.TagFields{Name: "pantry"}},
	})
	second := mustCreate(t, svc, models.StuffFields{Name: "Flour"}, []TagOp{
		{Fields: models.TagFields{Name: "pantry"}},
	})

	if len(first.Tags) != 1 || len(second.Tags) != 1 {
		t.Fatal("both stuffs should carry their own pantry tag")
	}
	if first.Tags[0].ID == second.Tags[0].ID {
		t.Error("same-named tags are distinct records")
	}
}

func TestUpdate_PatchKeepsOmittedFields(t *testing.T) {
	svc, _ := newTestService()
	stuff := mustCreate(t, svc, models.StuffFields{
		Name:        "Rice",
		Description: "short grain",
		Quantity:    qty("5"),
		Unit:        models.UnitKilogram,
	}, nil)

	updated, err := svc.Update(context.Background(), stuff.ID, StuffPatch{Name: strPtr("Brown Rice")}, nil)
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	if updated.Name != "Brown Rice" {
		t.Errorf("name not updated: %q", updated.Name)
	}
	if updated.Description != "short grain" || updated.Quantity == nil || updated.Unit != models.UnitKilogram {
		t.Errorf("omitted fields must keep their values: %+v", updated)
	}
}

func TestUpdate_MergedStateIsValidated(t *testing.T) {
	svc, _ := newTestService()
	stuff := mustCreate(t, svc, models.StuffFields{Name: "Rice"}, nil)

	// Adding a quantity without a unit makes the merged state invalid
	// even though each request field is fine on its own.
	_, err := svc.Update(context.Background(), stuff.ID, StuffPatch{Quantity: qty("5")}, nil)

	ve := asValidationError(t, err)
	if _, ok := ve.Fields["unit"]; !ok {
		t.Fatalf("expected unit violation: %v", ve.Fields)
	}
}

func TestUpdate_NotFound(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Update(context.Background(), uuid.New(), StuffPatch{}, nil)
	if !errors.Is(err, domain.ErrStuffNotFound) {
		t.Fatalf("expected ErrStuffNotFound, got %v", err)
	}
}

func TestUpdate_AbsentTagListLeavesTagsAlone(t *testing.T) {
	svc, _ := newTestService()
	stuff := mustCreate(t, svc, models.StuffFields{Name: "Rice"}, []TagOp{
		{Fields: models.TagFields{Name: "staple"}},
	})

	updated, err := svc.Update(context.Background(), stuff.ID, StuffPatch{Name: strPtr("Brown Rice")}, nil)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if len(updated.Tags) != 1 || updated.Tags[0].Name != "staple" {
		t.Fatalf("tags must be untouched: %+v", updated.Tags)
	}
}

func TestUpdate_EmptyTagListClearsAllTags(t *testing.T) {
	svc, repo := newTestService()
	stuff := mustCreate(t, svc, models.StuffFields{Name: "Rice"}, []TagOp{
		{Fields: models.TagFields{Name: "staple"}},
		{Fields: models.TagFields{Name: "pantry"}},
	})

	empty := []TagOp{}
	updated, err := svc.Update(context.Background(), stuff.ID, StuffPatch{}, &empty)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if len(updated.Tags) != 0 {
		t.Fatalf("expected no tags, got %+v", updated.Tags)
	}
	if repo.TagCount() != 0 {
		t.Error("cleared tags should be deleted, not orphaned")
	}
}

func TestUpdate_TagListReplacesMembership(t *testing.T) {
	svc, _ := newTestService()
	stuff := mustCreate(t, svc, models.StuffFields{Name: "Rice"}, []TagOp{
		{Fields: models.TagFields{Name: "staple"}},
		{Fields: models.TagFields{Name: "pantry"}},
		{Fields: models.TagFields{Name: "old"}},
	})
	keep, doomed := stuff.Tags[0].ID, stuff.Tags[1].ID

	ops := []TagOp{
		{ID: &keep, Fields: models.TagFields{Name: "staple food", ColorCode: "#112233"}},
		{ID: &doomed, Destroy: true},
		{Fields: models.TagFields{Name: "new"}},
		// stuff.Tags[2] is not mentioned and must be deleted too.
	}
	updated, err := svc.Update(context.Background(), stuff.ID, StuffPatch{}, &ops)
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	if len(updated.Tags) != 2 {
		t.Fatalf("expected 2 tags, got %+v", updated.Tags)
	}
	byName := map[string]models.Tag{}
	for _, tag := range updated.Tags {
		byName[tag.Name] = tag
	}
	if tag, ok := byName["staple food"]; !ok || tag.ID != keep || tag.ColorCode != "#112233" {
		t.Errorf("updated tag wrong: %+v", byName)
	}
	if _, ok := byName["new"]; !ok {
		t.Errorf("created tag missing: %+v", byName)
	}
}

func TestUpdate_TagViolationAbortsEverything(t *testing.T) {
	svc, _ := newTestService()
	stuff := mustCreate(t, svc, models.StuffFields{Name: "Rice"}, []TagOp{
		{Fields: models.TagFields{Name: "staple"}},
	})

	ops := []TagOp{
		{Fields: models.TagFields{Name: "bad color", ColorCode: "zzz"}},
	}
	_, err := svc.Update(context.Background(), stuff.ID, StuffPatch{Name: strPtr("Brown Rice")}, &ops)

	ve := asValidationError(t, err)
	if _, ok := ve.Fields["tags[0].color_code"]; !ok {
		t.Fatalf("expected tags[0].color_code violation: %v", ve.Fields)
	}

	// Neither the rename nor the membership replacement may have happened.
	current, err := svc.Get(context.Background(), stuff.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if current.Name != "Rice" {
		t.Errorf("stuff fields must be unchanged: %q", current.Name)
	}
	if len(current.Tags) != 1 || current.Tags[0].Name != "staple" {
		t.Errorf("tags must be unchanged: %+v", current.Tags)
	}
}

func TestUpdate_ForeignTagReferenceFails(t *testing.T) {
	svc, _ := newTestService()
	mine := mustCreate(t, svc, models.StuffFields{Name: "Rice"}, nil)
	other := mustCreate(t, svc, models.StuffFields{Name: "Flour"}, []TagOp{
		{Fields: models.TagFields{Name: "pantry"}},
	})
	foreign := other.Tags[0].ID

	t.Run("update op", func(t *testing.T) {
		ops := []TagOp{{ID: &foreign, Fields: models.TagFields{Name: "stolen"}}}
		_, err := svc.Update(context.Background(), mine.ID, StuffPatch{}, &ops)
		if !errors.Is(err, domain.ErrTagNotFound) {
			t.Fatalf("expected ErrTagNotFound, got %v", err)
		}
	})

	t.Run("destroy op", func(t *testing.T) {
		ops := []TagOp{{ID: &foreign, Destroy: true}}
		_, err := svc.Update(context.Background(), mine.ID, StuffPatch{}, &ops)
		if !errors.Is(err, domain.ErrTagNotFound) {
			t.Fatalf("expected ErrTagNotFound, got %v", err)
		}
	})

	// The foreign tag itself must be untouched.
	tags, err := svc.ListTags(context.Background(), other.ID)
	if err != nil || len(tags) != 1 || tags[0].Name != "pantry" {
		t.Fatalf("foreign tag mutated: %v %v", tags, err)
	}
}

func TestUpdate_DestroyWithoutIDIsNoOp(t *testing.T) {
	svc, _ := newTestService()
	stuff := mustCreate(t, svc, models.StuffFields{Name: "Rice"}, []TagOp{
		{Fields: models.TagFields{Name: "staple"}},
	})
	existing := stuff.Tags[0].ID

	ops := []TagOp{
		{Destroy: true},
		{ID: &existing, Fields: models.TagFields{Name: "staple"}},
	}
	updated, err := svc.Update(context.Background(), stuff.ID, StuffPatch{}, &ops)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if len(updated.Tags) != 1 {
		t.Fatalf("expected the existing tag to survive: %+v", updated.Tags)
	}
}

func TestDelete_CascadesToTags(t *testing.T) {
	svc, repo := newTestService()
	stuff := mustCreate(t, svc, models.StuffFields{Name: "Rice"}, []TagOp{
		{Fields: models.TagFields{Name: "staple"}},
		{Fields: models.TagFields{Name: "pantry"}},
	})
	other := mustCreate(t, svc, models.StuffFields{Name: "Flour"}, []TagOp{
		{Fields: models.TagFields{Name: "baking"}},
	})

	if err := svc.Delete(context.Background(), stuff.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if _, err := svc.Get(context.Background(), stuff.ID); !errors.Is(err, domain.ErrStuffNotFound) {
		t.Fatalf("expected ErrStuffNotFound, got %v", err)
	}
	if repo.TagCount() != 1 {
		t.Errorf("only the other stuff's tag should remain, have %d", repo.TagCount())
	}
	if tags, _ := svc.ListTags(context.Background(), other.ID); len(tags) != 1 {
		t.Errorf("unrelated tags must survive: %v", tags)
	}
}

func TestList_Scopes(t *testing.T) {
	svc, _ := newTestService()
	now := time.Now().UTC()
	soon := now.Add(3 * 24 * time.Hour)
	far := now.Add(30 * 24 * time.Hour)
	past := now.Add(-24 * time.Hour)

	mustCreate(t, svc, models.StuffFields{Name: "Active"}, nil)
	mustCreate(t, svc, models.StuffFields{Name: "Archived", Archived: true}, nil)
	mustCreate(t, svc, models.StuffFields{Name: "Soon", ExpirationDate: &soon}, nil)
	mustCreate(t, svc, models.StuffFields{Name: "Far", ExpirationDate: &far}, nil)
	mustCreate(t, svc, models.StuffFields{Name: "Past", ExpirationDate: &past}, nil)

	tests := []struct {
		scope models.Scope
		want  []string
	}{
		{models.ScopeAll, []string{"Active", "Archived", "Soon", "Far", "Past"}},
		{models.ScopeActive, []string{"Active", "Soon", "Far", "Past"}},
		{models.ScopeArchived, []string{"Archived"}},
		{models.ScopeExpiringSoon, []string{"Soon", "Past"}},
		{models.ScopeExpired, []string{"Past"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.scope)+" scope", func(t *testing.T) {
			stuffs, err := svc.List(context.Background(), tt.scope)
			if err != nil {
				t.Fatalf("list: %v", err)
			}
			var names []string
			for _, s := range stuffs {
				names = append(names, s.Name)
			}
			if len(names) != len(tt.want) {
				t.Fatalf("got %v, want %v", names, tt.want)
			}
			for i := range tt.want {
				if names[i] != tt.want[i] {
					t.Fatalf("got %v, want %v", names, tt.want)
				}
			}
		})
	}
}

func TestCreateTag_RequiresExistingOwner(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.CreateTag(context.Background(), uuid.New(), models.TagFields{Name: "orphan"})
	if !errors.Is(err, domain.ErrStuffNotFound) {
		t.Fatalf("expected ErrStuffNotFound, got %v", err)
	}
}

func TestCreateTag_Valid(t *testing.T) {
	svc, _ := newTestService()
	stuff := mustCreate(t, svc, models.StuffFields{Name: "Rice"}, nil)

	tag, err := svc.CreateTag(context.Background(), stuff.ID, models.TagFields{Name: "staple", ColorCode: "#336699"})
	if err != nil {
		t.Fatalf("create tag: %v", err)
	}
	if !tag.OwnedBy(stuff.TaggableRef()) {
		t.Error("tag must be owned by the target stuff")
	}
}

func TestUpdateTag_MergesAndValidates(t *testing.T) {
	svc, _ := newTestService()
	stuff := mustCreate(t, svc, models.StuffFields{Name: "Rice"}, []TagOp{
		{Fields: models.TagFields{Name: "staple", ColorCode: "#336699"}},
	})
	tagID := stuff.Tags[0].ID

	t.Run("partial patch keeps other fields", func(t *testing.T) {
		tag, err := svc.UpdateTag(context.Background(), tagID, TagPatch{Name: strPtr("staple food")})
		if err != nil {
			t.Fatalf("update tag: %v", err)
		}
		if tag.Name != "staple food" || tag.ColorCode != "#336699" {
			t.Fatalf("unexpected tag: %+v", tag)
		}
	})

	t.Run("invalid merged state is rejected", func(t *testing.T) {
		_, err := svc.UpdateTag(context.Background(), tagID, TagPatch{ColorCode: strPtr("#12")})
		ve := asValidationError(t, err)
		if _, ok := ve.Fields["color_code"]; !ok {
			t.Fatalf("expected color_code violation: %v", ve.Fields)
		}
	})

	t.Run("missing tag", func(t *testing.T) {
		_, err := svc.UpdateTag(context.Background(), uuid.New(), TagPatch{})
		if !errors.Is(err, domain.ErrTagNotFound) {
			t.Fatalf("expected ErrTagNotFound, got %v", err)
		}
	})
}

func TestDeleteTag(t *testing.T) {
	svc, repo := newTestService()
	stuff := mustCreate(t, svc, models.StuffFields{Name: "Rice"}, []TagOp{
		{Fields: models.TagFields{Name: "staple"}},
	})

	if err := svc.DeleteTag(context.Background(), stuff.Tags[0].ID); err != nil {
		t.Fatalf("delete tag: %v", err)
	}
	if repo.TagCount() != 0 {
		t.Error("tag should be gone")
	}

	if err := svc.DeleteTag(context.Background(), uuid.New()); !errors.Is(err, domain.ErrTagNotFound) {
		t.Fatalf("expected ErrTagNotFound, got %v", err)
	}
}
