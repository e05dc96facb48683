package users

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotFound           = errors.New("not found")
	ErrTokenExpired       = errors.New("token expired")
)

const (
	bcryptCost        = 12
	minPasswordLength = 8
	maxPasswordLength = 128
	defaultTokenTTL   = 24 * time.Hour
)

type Service struct {
	repo   Repository
	tokens TokenRepository
	ttl    time.Duration
	now    func() time.Time
}

func NewService(repo Repository, tokens TokenRepository, tokenTTL time.Duration) *Service {
	if tokenTTL <= 0 {
		tokenTTL = defaultTokenTTL
	}
	return &Service{
		repo:   repo,
		tokens: tokens,
		ttl:    tokenTTL,
		now:    time.Now,
	}
}

func (s *Service) Register(ctx context.Context, username, password string) (User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return User{}, ErrInvalidInput
	}
	if len(password) < minPasswordLength || len(password) > maxPasswordLength {
		return User{}, ErrInvalidInput
	}

	if _, err := s.repo.GetByUsername(ctx, username); err == nil {
		return User{}, ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return User{}, err
	}

	u := User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: string(hash),
		CreatedAt:    s.now(),
	}

	// La unicidad del username también la respalda el storage; acá puede
	// volver ErrUsernameTaken si dos registros compiten.
	if err := s.repo.Create(ctx, u); err != nil {
		return User{}, err
	}
	return u, nil
}

type Session struct {
	Token     string
	ExpiresAt time.Time
	User      User
}

func (s *Service) Login(ctx context.Context, username, password string) (Session, error) {
	username = strings.TrimSpace(username)

	u, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return Session{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return Session{}, ErrInvalidCredentials
	}

	raw, err := newOpaqueToken()
	if err != nil {
		return Session{}, err
	}

	now := s.now()
	t := Token{
		Hash:      hashToken(raw),
		UserID:    u.ID,
		ExpiresAt: now.Add(s.ttl),
		CreatedAt: now,
	}
	if err := s.tokens.Create(ctx, t); err != nil {
		return Session{}, err
	}

	return Session{Token: raw, ExpiresAt: t.ExpiresAt, User: u}, nil
}

// VerifyToken resuelve el usuario de un token vigente.
// Tokens vencidos se eliminan al toque (limpieza perezosa, sin job de fondo).
func (s *Service) VerifyToken(ctx context.Context, rawToken string) (User, error) {
	rawToken = strings.TrimSpace(rawToken)
	if rawToken == "" {
		return User{}, ErrInvalidCredentials
	}

	hash := hashToken(rawToken)
	t, err := s.tokens.GetByHash(ctx, hash)
	if err != nil {
		return User{}, ErrInvalidCredentials
	}
	if s.now().After(t.ExpiresAt) {
		_ = s.tokens.DeleteByHash(ctx, hash)
		return User{}, ErrTokenExpired
	}

	u, err := s.repo.GetByID(ctx, t.UserID)
	if err != nil {
		return User{}, ErrInvalidCredentials
	}
	return u, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return User{}, ErrNotFound
	}
	return u, nil
}

// UsernameByID alimenta las vistas de otros módulos (pets.UserDirectory).
func (s *Service) UsernameByID(ctx context.Context, userID string) (string, error) {
	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return "", ErrNotFound
	}
	return u.Username, nil
}

func newOpaqueToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

func hashToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
