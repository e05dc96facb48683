package pets

import (
	"context"
	"errors"
	"testing"
	"time"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

var errRepoNotFound = errors.New("repo: not found")

type testRepo struct {
	byID    map[string]Pet
	deleted []string
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Pet{}}
}

func (r *testRepo) Create(ctx context.Context, p Pet) error {
	r.byID[p.ID] = p
	return nil
}

func (r *testRepo) Update(ctx context.Context, p Pet) error {
	if _, ok := r.byID[p.ID]; !ok {
		return errRepoNotFound
	}
	r.byID[p.ID] = p
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Pet, error) {
	p, ok := r.byID[id]
	if !ok {
		return Pet{}, errRepoNotFound
	}
	return p, nil
}

func (r *testRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]Pet, error) {
	out := make([]Pet, 0)
	for _, p := range r.byID {
		if p.OwnerUserID == ownerUserID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *testRepo) ListAvailable(ctx context.Context) ([]Pet, error) {
	out := make([]Pet, 0)
	for _, p := range r.byID {
		if p.Available {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *testRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return errRepoNotFound
	}
	delete(r.byID, id)
	r.deleted = append(r.deleted, id)
	return nil
}

// -------------------------
// Test refs (catálogo fake)
// -------------------------

type testRefs struct {
	categories map[string]bool
	tags       map[string]bool
}

func (r *testRefs) HasCategory(ctx context.Context, id string) (bool, error) {
	return r.categories[id], nil
}

func (r *testRefs) HasTags(ctx context.Context, ids []string) (bool, error) {
	for _, id := range ids {
		if !r.tags[id] {
			return false, nil
		}
	}
	return true, nil
}

// -------------------------
// Tests
// -------------------------

func newTestService() (*Service, *testRepo) {
	repo := newTestRepo()
	refs := &testRefs{
		categories: map[string]bool{"cat-1": true},
		tags:       map[string]bool{"tag-1": true, "tag-2": true},
	}
	svc := NewService(repo, refs)
	return svc, repo
}

func validInput() CreateInput {
	return CreateInput{
		Name:       "Milo",
		Age:        3,
		Available:  true,
		Price:      500,
		CategoryID: "cat-1",
		TagIDs:     []string{"tag-1"},
	}
}

func TestService_Create_OK(t *testing.T) {
	svc, _ := newTestService()

	now := time.Date(2025, 12, 22, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	p, err := svc.Create(context.Background(), "owner-1", validInput())
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if p.ID == "" || p.OwnerUserID != "owner-1" {
		t.Fatalf("unexpected pet: %#v", p)
	}
	if p.CreatedAt != now || p.UpdatedAt != now {
		t.Fatalf("expected CreatedAt/UpdatedAt to be now")
	}
	if p.StatusLabel() != "available" {
		t.Fatalf("expected status available, got %s", p.StatusLabel())
	}
}

func TestService_Create_Validation(t *testing.T) {
	svc, _ := newTestService()

	cases := []struct {
		name   string
		mutate func(*CreateInput)
	}{
		{"empty name", func(in *CreateInput) { in.Name = "  " }},
		{"negative age", func(in *CreateInput) { in.Age = -1 }},
		{"negative price", func(in *CreateInput) { in.Price = -5 }},
		{"empty category", func(in *CreateInput) { in.CategoryID = "" }},
		{"unknown category", func(in *CreateInput) { in.CategoryID = "cat-nope" }},
		{"unknown tag", func(in *CreateInput) { in.TagIDs = []string{"tag-1", "tag-nope"} }},
	}
	for _, c := range cases {
		in := validInput()
		c.mutate(&in)
		if _, err := svc.Create(context.Background(), "owner-1", in); err != ErrInvalidInput {
			t.Fatalf("%s: expected ErrInvalidInput, got %v", c.name, err)
		}
	}
}

func TestService_Update_OnlyOwner(t *testing.T) {
	svc, _ := newTestService()

	p, err := svc.Create(context.Background(), "owner-1", validInput())
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	name := "Rex"
	if _, err := svc.Update(context.Background(), p.ID, "intruder", UpdateInput{Name: &name}); err != ErrForbidden {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestService_Update_PartialPatch(t *testing.T) {
	svc, _ := newTestService()

	now1 := time.Date(2025, 12, 22, 10, 0, 0, 0, time.UTC)
	now2 := now1.Add(time.Hour)
	svc.now = func() time.Time { return now1 }

	p, err := svc.Create(context.Background(), "owner-1", validInput())
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	svc.now = func() time.Time { return now2 }
	sold := false
	updated, err := svc.Update(context.Background(), p.ID, "owner-1", UpdateInput{Available: &sold})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if updated.Available {
		t.Fatalf("expected pet marked sold")
	}
	if updated.StatusLabel() != "sold" {
		t.Fatalf("expected status sold, got %s", updated.StatusLabel())
	}
	if updated.Name != p.Name || updated.Price != p.Price || updated.CategoryID != p.CategoryID {
		t.Fatalf("expected untouched fields to survive the patch")
	}
	if updated.UpdatedAt != now2 || updated.CreatedAt != now1 {
		t.Fatalf("expected UpdatedAt bumped and CreatedAt intact")
	}
}

func TestService_Update_RejectsUnknownCategory(t *testing.T) {
	svc, _ := newTestService()

	p, err := svc.Create(context.Background(), "owner-1", validInput())
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	bad := "cat-nope"
	if _, err := svc.Update(context.Background(), p.ID, "owner-1", UpdateInput{CategoryID: &bad}); err != ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestService_Delete_OnlyOwner(t *testing.T) {
	svc, repo := newTestService()

	p, err := svc.Create(context.Background(), "owner-1", validInput())
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	if err := svc.Delete(context.Background(), p.ID, "intruder"); err != ErrForbidden {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if err := svc.Delete(context.Background(), p.ID, "owner-1"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if len(repo.deleted) != 1 || repo.deleted[0] != p.ID {
		t.Fatalf("expected delete delegated to repo (cascades live there)")
	}
}

func TestService_ListAvailable_FiltersSold(t *testing.T) {
	svc, _ := newTestService()

	p1, _ := svc.Create(context.Background(), "owner-1", validInput())
	in2 := validInput()
	in2.Name = "Sold One"
	in2.Available = false
	_, _ = svc.Create(context.Background(), "owner-1", in2)

	items, err := svc.ListAvailable(context.Background())
	if err != nil {
		t.Fatalf("ListAvailable error: %v", err)
	}
	if len(items) != 1 || items[0].ID != p1.ID {
		t.Fatalf("expected only the available pet, got %#v", items)
	}
}
