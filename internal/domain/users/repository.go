package users

import "context"

type Repository interface {
	Create(ctx context.Context, u User) error
	GetByID(ctx context.Context, id string) (User, error)
	GetByUsername(ctx context.Context, username string) (User, error)
}

type TokenRepository interface {
	Create(ctx context.Context, t Token) error
	GetByHash(ctx context.Context, hash string) (Token, error)
	DeleteByHash(ctx context.Context, hash string) error
}
