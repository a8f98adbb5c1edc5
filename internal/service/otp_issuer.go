package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"inkwell-api/internal/domain"
	"inkwell-api/internal/email"
	"inkwell-api/internal/repository"
)

const deliveryTimeout = 15 * time.Second

// OTPIssuer atiende "pedir un codigo": busca o crea el usuario, guarda el
// hash del codigo nuevo y lo entrega por email.
type OTPIssuer struct {
	logger  *zap.Logger
	users   repository.UserRepository
	codes   *CodeGenerator
	sender  email.Sender
	limiter OTPRateLimiter
}

func NewOTPIssuer(logger *zap.Logger, users repository.UserRepository, codes *CodeGenerator, sender email.Sender, limiter OTPRateLimiter) *OTPIssuer {
	if logger == nil {
		logger = zap.NewNop()
	}
	if codes == nil {
		codes = NewCodeGenerator(DefaultArgon2Params())
	}
	return &OTPIssuer{
		logger:  logger,
		users:   users,
		codes:   codes,
		sender:  sender,
		limiter: limiter,
	}
}

// RequestCode deja un unico codigo valido para email. Un codigo anterior sin
// canjear queda invalidado. La falla de entrega solo se loguea: el hash ya
// guardado sigue siendo canjeable.
func (s *OTPIssuer) RequestCode(ctx context.Context, emailAddr string) error {
	emailAddr = strings.TrimSpace(emailAddr)
	if emailAddr == "" {
		return ErrInvalidInput
	}

	if s.limiter != nil && !s.limiter.Allow(ctx, emailAddr) {
		s.logger.Info("otp request rate limited", zap.String("email", emailAddr))
		return ErrRateLimited
	}

	code, hash, err := s.codes.Generate()
	if err != nil {
		s.logger.Error("otp hashing failed", zap.Error(err))
		return err
	}

	user, err := s.users.GetByEmail(ctx, emailAddr)
	switch {
	case err == nil:
		if err := s.users.UpdateVerificationCode(ctx, user.ID, hash); err != nil {
			return err
		}
	case errors.Is(err, repository.ErrNotFound):
		user = domain.User{
			ID:                   uuid.NewString(),
			Email:                emailAddr,
			VerificationCodeHash: &hash,
			CreatedAt:            time.Now().UTC(),
		}
		if err := s.users.Create(ctx, user); err != nil {
			return err
		}
	default:
		return err
	}

	s.deliver(ctx, emailAddr, code)
	return nil
}

// deliver no depende de que el cliente siga conectado: el hash ya se guardo.
func (s *OTPIssuer) deliver(ctx context.Context, emailAddr, code string) {
	if s.sender == nil {
		s.logger.Warn("otp delivery skipped: no sender configured", zap.String("email", emailAddr))
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), deliveryTimeout)
	defer cancel()
	if err := s.sender.SendVerificationCode(ctx, emailAddr, code); err != nil {
		s.logger.Warn("send verification code failed", zap.Error(err), zap.String("email", emailAddr))
	}
}
