package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenTTL es la vida de un access token si no se configura otra.
const DefaultTokenTTL = 120 * time.Hour

// TokenConfig se carga una vez al arrancar y no cambia en runtime.
type TokenConfig struct {
	Secret string
	TTL    time.Duration
}

// SessionClaims es el payload del token: email del sujeto, iat y exp.
type SessionClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// TokenCodec emite y valida tokens HS256 sin estado en servidor.
type TokenCodec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenCodec(cfg TokenConfig) (*TokenCodec, error) {
	if strings.TrimSpace(cfg.Secret) == "" {
		return nil, errors.New("token secret is required")
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenCodec{
		secret: []byte(cfg.Secret),
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

// TTL devuelve la vida configurada de los tokens.
func (c *TokenCodec) TTL() time.Duration {
	return c.ttl
}

// Issue arma claims con iat=now y exp=now+TTL y las firma.
func (c *TokenCodec) Issue(email string) (string, SessionClaims, error) {
	now := c.now().UTC()
	claims := SessionClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	}
	token, err := c.Encode(claims)
	if err != nil {
		return "", SessionClaims{}, err
	}
	return token, claims, nil
}

func (c *TokenCodec) Encode(claims SessionClaims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTokenSigning, err)
	}
	return signed, nil
}

// Decode verifica firma y expiracion. Devuelve ErrTokenExpired solo para un
// token bien formado y firmado cuyo exp ya paso; todo lo demas es
// ErrTokenInvalid.
func (c *TokenCodec) Decode(tokenString string) (SessionClaims, error) {
	if strings.TrimSpace(tokenString) == "" {
		return SessionClaims{}, ErrTokenInvalid
	}
	var claims SessionClaims
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)
	_, err := parser.ParseWithClaims(tokenString, &claims, func(_ *jwt.Token) (any, error) {
		return c.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return SessionClaims{}, ErrTokenExpired
		}
		return SessionClaims{}, ErrTokenInvalid
	}
	if strings.TrimSpace(claims.Email) == "" || claims.IssuedAt == nil {
		return SessionClaims{}, ErrTokenInvalid
	}
	return claims, nil
}
