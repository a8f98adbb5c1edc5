package service

import "errors"

// Errores del flujo de autenticacion. En la frontera HTTP varios colapsan en
// la misma respuesta para no revelar si una cuenta existe.
var (
	ErrInvalidInput   = errors.New("invalid input")
	ErrRateLimited    = errors.New("rate limited")
	ErrUserNotFound   = errors.New("user not found")
	ErrNoPendingCode  = errors.New("no pending verification code")
	ErrCodeMismatch   = errors.New("verification code mismatch")
	ErrCodeHashing    = errors.New("verification code hashing failed")
	ErrCodeHashFormat = errors.New("malformed verification code hash")

	ErrTokenInvalid = errors.New("token invalid")
	ErrTokenExpired = errors.New("token expired")
	ErrTokenSigning = errors.New("token signing failed")

	ErrMissingCredentials   = errors.New("missing credentials")
	ErrMalformedCredentials = errors.New("malformed credentials")
	ErrInvalidToken         = errors.New("invalid token")
	ErrUnknownSubject       = errors.New("unknown subject")
	ErrUnverifiedAccount    = errors.New("unverified account")
)
