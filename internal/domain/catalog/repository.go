package catalog

import "context"

type Repository interface {
	CreateCategory(ctx context.Context, c Category) error
	GetCategory(ctx context.Context, id string) (Category, error)
	ListCategories(ctx context.Context) ([]Category, error)

	CreateTag(ctx context.Context, t Tag) error
	GetTags(ctx context.Context, ids []string) ([]Tag, error)
	ListTags(ctx context.Context) ([]Tag, error)
}
