package postgres

import (
	"context"
	"database/sql"

	"pet-marketplace/internal/domain/catalog"
)

type CatalogRepo struct {
	db *sql.DB
}

func NewCatalogRepo(db *sql.DB) *CatalogRepo {
	return &CatalogRepo{db: db}
}

func (r *CatalogRepo) CreateCategory(ctx context.Context, c catalog.Category) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO categories (id, name, created_at)
		VALUES ($1,$2,$3)
	`, c.ID, c.Name, c.CreatedAt)
	if isUniqueViolation(err, "categories_name_key") {
		return catalog.ErrNameTaken
	}
	return err
}

func (r *CatalogRepo) GetCategory(ctx context.Context, id string) (catalog.Category, error) {
	var c catalog.Category
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, created_at FROM categories WHERE id = $1
	`, id).Scan(&c.ID, &c.Name, &c.CreatedAt)
	if err == sql.ErrNoRows {
		return catalog.Category{}, catalog.ErrNotFound
	}
	if err != nil {
		return catalog.Category{}, err
	}
	return c, nil
}

func (r *CatalogRepo) ListCategories(ctx context.Context) ([]catalog.Category, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, created_at FROM categories ORDER BY created_at ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]catalog.Category, 0)
	for rows.Next() {
		var c catalog.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *CatalogRepo) CreateTag(ctx context.Context, t catalog.Tag) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO tags (id, name, created_at)
		VALUES ($1,$2,$3)
	`, t.ID, t.Name, t.CreatedAt)
	if isUniqueViolation(err, "tags_name_key") {
		return catalog.ErrNameTaken
	}
	return err
}

// GetTags ignora ids inexistentes; el service compara longitudes para
// decidir si todos existen.
func (r *CatalogRepo) GetTags(ctx context.Context, ids []string) ([]catalog.Tag, error) {
	out := make([]catalog.Tag, 0, len(ids))
	seen := map[string]struct{}{}
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}

		var t catalog.Tag
		err := r.db.QueryRowContext(ctx, `
			SELECT id, name, created_at FROM tags WHERE id = $1
		`, id).Scan(&t.ID, &t.Name, &t.CreatedAt)
		if err == sql.ErrNoRows {
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

func (r *CatalogRepo) ListTags(ctx context.Context) ([]catalog.Tag, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, created_at FROM tags ORDER BY created_at ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]catalog.Tag, 0)
	for rows.Next() {
		var t catalog.Tag
		if err := rows.Scan(&t.ID, &t.Name, &t.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
