package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"inkwell-api/internal/repository"
)

// OTPVerifier canjea un codigo por un access token.
type OTPVerifier struct {
	logger *zap.Logger
	users  repository.UserRepository
	codes  *CodeGenerator
	tokens *TokenCodec
}

func NewOTPVerifier(logger *zap.Logger, users repository.UserRepository, codes *CodeGenerator, tokens *TokenCodec) *OTPVerifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	if codes == nil {
		codes = NewCodeGenerator(DefaultArgon2Params())
	}
	return &OTPVerifier{
		logger: logger,
		users:  users,
		codes:  codes,
		tokens: tokens,
	}
}

// Redeem valida code contra el hash pendiente de email, lo borra y emite un
// token. Cada codigo se canjea a lo sumo una vez.
func (s *OTPVerifier) Redeem(ctx context.Context, emailAddr, code string) (string, error) {
	emailAddr = strings.TrimSpace(emailAddr)
	code = strings.TrimSpace(code)
	if code == "" || emailAddr == "" {
		return "", ErrInvalidInput
	}

	user, err := s.users.GetByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrUserNotFound
		}
		return "", err
	}
	if !user.HasPendingCode() {
		return "", ErrNoPendingCode
	}
	storedHash := *user.VerificationCodeHash

	ok, err := s.codes.Verify(code, storedHash)
	if err != nil {
		s.logger.Warn("stored verification hash unreadable", zap.Error(err), zap.String("user_id", user.ID))
		return "", ErrCodeMismatch
	}
	if !ok {
		return "", ErrCodeMismatch
	}

	// Solo gana quien borra exactamente el hash verificado; un canje
	// concurrente o un codigo mas nuevo dejan cleared en false.
	cleared, err := s.users.ClearVerificationCode(ctx, user.ID, storedHash)
	if err != nil {
		return "", err
	}
	if !cleared {
		return "", ErrCodeMismatch
	}

	token, _, err := s.tokens.Issue(user.Email)
	if err != nil {
		s.logger.Error("token issue failed", zap.Error(err), zap.String("user_id", user.ID))
		return "", err
	}
	return token, nil
}
