package memory

import (
	"context"
	"strings"

	"pet-marketplace/internal/domain/users"
)

type usersRepo struct {
	s *Store
}

func NewUsersRepo(s *Store) users.Repository {
	return &usersRepo{s: s}
}

func (r *usersRepo) Create(ctx context.Context, u users.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if strings.TrimSpace(u.ID) == "" {
		return users.ErrInvalidInput
	}
	if _, exists := r.s.userIDbyNom[u.Username]; exists {
		return users.ErrUsernameTaken
	}
	r.s.users[u.ID] = u
	r.s.userIDbyNom[u.Username] = u.ID
	return nil
}

func (r *usersRepo) GetByID(ctx context.Context, id string) (users.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.users[id]
	if !ok {
		return users.User{}, ErrNotFound
	}
	return u, nil
}

func (r *usersRepo) GetByUsername(ctx context.Context, username string) (users.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	id, ok := r.s.userIDbyNom[username]
	if !ok {
		return users.User{}, ErrNotFound
	}
	return r.s.users[id], nil
}

type tokensRepo struct {
	s *Store
}

func NewTokensRepo(s *Store) users.TokenRepository {
	return &tokensRepo{s: s}
}

func (r *tokensRepo) Create(ctx context.Context, t users.Token) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.tokens[t.Hash] = t
	return nil
}

func (r *tokensRepo) GetByHash(ctx context.Context, hash string) (users.Token, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	t, ok := r.s.tokens[hash]
	if !ok {
		return users.Token{}, ErrNotFound
	}
	return t, nil
}

func (r *tokensRepo) DeleteByHash(ctx context.Context, hash string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	delete(r.s.tokens, hash)
	return nil
}
