package postgres

import (
	"context"
	"database/sql"

	"pet-marketplace/internal/domain/users"
)

type UsersRepo struct {
	db *sql.DB
}

func NewUsersRepo(db *sql.DB) *UsersRepo {
	return &UsersRepo{db: db}
}

func (r *UsersRepo) Create(ctx context.Context, u users.User) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (id, username, password_hash, created_at)
		VALUES ($1,$2,$3,$4)
	`, u.ID, u.Username, u.PasswordHash, u.CreatedAt)
	if isUniqueViolation(err, "users_username_key") {
		return users.ErrUsernameTaken
	}
	return err
}

func (r *UsersRepo) GetByID(ctx context.Context, id string) (users.User, error) {
	return r.getOne(ctx, `
		SELECT id, username, password_hash, created_at
		FROM users WHERE id = $1
	`, id)
}

func (r *UsersRepo) GetByUsername(ctx context.Context, username string) (users.User, error) {
	return r.getOne(ctx, `
		SELECT id, username, password_hash, created_at
		FROM users WHERE username = $1
	`, username)
}

func (r *UsersRepo) getOne(ctx context.Context, query, arg string) (users.User, error) {
	var u users.User
	err := r.db.QueryRowContext(ctx, query, arg).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return users.User{}, ErrNotFound
	}
	if err != nil {
		return users.User{}, err
	}
	return u, nil
}

type TokensRepo struct {
	db *sql.DB
}

func NewTokensRepo(db *sql.DB) *TokensRepo {
	return &TokensRepo{db: db}
}

func (r *TokensRepo) Create(ctx context.Context, t users.Token) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO auth_tokens (hash, user_id, expires_at, created_at)
		VALUES ($1,$2,$3,$4)
	`, t.Hash, t.UserID, t.ExpiresAt, t.CreatedAt)
	return err
}

func (r *TokensRepo) GetByHash(ctx context.Context, hash string) (users.Token, error) {
	var t users.Token
	err := r.db.QueryRowContext(ctx, `
		SELECT hash, user_id, expires_at, created_at
		FROM auth_tokens WHERE hash = $1
	`, hash).Scan(&t.Hash, &t.UserID, &t.ExpiresAt, &t.CreatedAt)
	if err == sql.ErrNoRows {
		return users.Token{}, ErrNotFound
	}
	if err != nil {
		return users.Token{}, err
	}
	return t, nil
}

func (r *TokensRepo) DeleteByHash(ctx context.Context, hash string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM auth_tokens WHERE hash = $1`, hash)
	return err
}
