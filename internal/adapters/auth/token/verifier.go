package token

import (
	"context"
	"errors"
	"strings"

	"pet-marketplace/internal/domain/users"
	"pet-marketplace/internal/ports/auth"
)

var ErrTokenEmpty = errors.New("token is empty")

// Verifier implementa auth.AuthVerifier contra el store local de sesiones.
// El middleware no corta por error de verificación; el handler decide 401/403.
type Verifier struct {
	users *users.Service
}

func NewVerifier(usersSvc *users.Service) *Verifier {
	return &Verifier{users: usersSvc}
}

func (v *Verifier) Verify(ctx context.Context, rawToken string) (auth.Claims, error) {
	rawToken = strings.TrimSpace(rawToken)
	if rawToken == "" {
		return auth.Claims{}, ErrTokenEmpty
	}

	u, err := v.users.VerifyToken(ctx, rawToken)
	if err != nil {
		return auth.Claims{}, err
	}

	return auth.Claims{UserID: u.ID, Username: u.Username}, nil
}
