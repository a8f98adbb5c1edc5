package email

import (
	"context"
	"errors"

	"go.uber.org/zap"
)

// Sender entrega el codigo de verificacion fuera de banda.
type Sender interface {
	SendVerificationCode(ctx context.Context, toEmail string, code string) error
}

type disabledSender struct {
	reason string
}

// NewDisabledSender devuelve un Sender que siempre falla con reason.
func NewDisabledSender(reason string) Sender {
	return &disabledSender{reason: reason}
}

func (s *disabledSender) SendVerificationCode(_ context.Context, _ string, _ string) error {
	if s.reason == "" {
		return errors.New("email sender disabled")
	}
	return errors.New(s.reason)
}

// LogSender escribe el codigo en el log. Solo para desarrollo local.
type LogSender struct {
	logger *zap.Logger
}

func NewLogSender(logger *zap.Logger) *LogSender {
	return &LogSender{logger: logger}
}

func (s *LogSender) SendVerificationCode(_ context.Context, toEmail string, code string) error {
	s.logger.Info("verification code issued", zap.String("email", toEmail), zap.String("code", code))
	return nil
}
