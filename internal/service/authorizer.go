package service

import (
	"context"
	"errors"
	"strings"

	"inkwell-api/internal/repository"
)

// Identity es la identidad verificada que ven los handlers protegidos.
type Identity struct {
	UserID string `json:"id"`
	Email  string `json:"email"`
}

// Authorizer decide si un header Authorization da acceso. Ademas del token
// re-consulta al usuario: una cuenta con OTP pendiente no pasa aunque su
// token siga vigente.
type Authorizer struct {
	tokens *TokenCodec
	users  repository.UserRepository
}

func NewAuthorizer(tokens *TokenCodec, users repository.UserRepository) *Authorizer {
	return &Authorizer{tokens: tokens, users: users}
}

func (a *Authorizer) Authorize(ctx context.Context, authorization string) (Identity, error) {
	token, err := ParseBearer(authorization)
	if err != nil {
		return Identity{}, err
	}

	claims, err := a.tokens.Decode(token)
	if err != nil {
		return Identity{}, ErrInvalidToken
	}

	user, err := a.users.GetByEmail(ctx, claims.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return Identity{}, ErrUnknownSubject
		}
		return Identity{}, err
	}
	if user.HasPendingCode() {
		return Identity{}, ErrUnverifiedAccount
	}
	return Identity{UserID: user.ID, Email: user.Email}, nil
}

// ParseBearer extrae el token de "Bearer <token>". El esquema no distingue
// mayusculas.
func ParseBearer(header string) (string, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", ErrMissingCredentials
	}
	fields := strings.Fields(header)
	if len(fields) != 2 || !strings.EqualFold(fields[0], "Bearer") {
		return "", ErrMalformedCredentials
	}
	return fields[1], nil
}
