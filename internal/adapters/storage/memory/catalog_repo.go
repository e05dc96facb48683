package memory

import (
	"context"
	"sort"

	"pet-marketplace/internal/domain/catalog"
)

type catalogRepo struct {
	s *Store
}

func NewCatalogRepo(s *Store) catalog.Repository {
	return &catalogRepo{s: s}
}

func (r *catalogRepo) CreateCategory(ctx context.Context, c catalog.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.categories {
		if existing.Name == c.Name {
			return catalog.ErrNameTaken
		}
	}
	r.s.categories[c.ID] = c
	return nil
}

func (r *catalogRepo) GetCategory(ctx context.Context, id string) (catalog.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	c, ok := r.s.categories[id]
	if !ok {
		return catalog.Category{}, catalog.ErrNotFound
	}
	return c, nil
}

func (r *catalogRepo) ListCategories(ctx context.Context) ([]catalog.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]catalog.Category, 0, len(r.s.categories))
	for _, c := range r.s.categories {
		out = append(out, c)
	}
	sortByCreated(out, func(c catalog.Category) (string, int64) { return c.ID, c.CreatedAt.UnixNano() })
	return out, nil
}

func (r *catalogRepo) CreateTag(ctx context.Context, t catalog.Tag) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.tags {
		if existing.Name == t.Name {
			return catalog.ErrNameTaken
		}
	}
	r.s.tags[t.ID] = t
	return nil
}

func (r *catalogRepo) GetTags(ctx context.Context, ids []string) ([]catalog.Tag, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]catalog.Tag, 0, len(ids))
	seen := map[string]struct{}{}
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		if t, ok := r.s.tags[id]; ok {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *catalogRepo) ListTags(ctx context.Context) ([]catalog.Tag, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]catalog.Tag, 0, len(r.s.tags))
	for _, t := range r.s.tags {
		out = append(out, t)
	}
	sortByCreated(out, func(t catalog.Tag) (string, int64) { return t.ID, t.CreatedAt.UnixNano() })
	return out, nil
}

// Orden estable por created_at asc (solo para consistencia en dev).
func sortByCreated[T any](items []T, key func(T) (string, int64)) {
	sort.Slice(items, func(i, j int) bool {
		idI, tsI := key(items[i])
		idJ, tsJ := key(items[j])
		if tsI != tsJ {
			return tsI < tsJ
		}
		return idI < idJ
	})
}
