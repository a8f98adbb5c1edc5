package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"inkwell-api/internal/service"
)

// AuthHandler mantiene dependencias para el login por OTP.
type AuthHandler struct {
	logger   *zap.Logger
	issuer   *service.OTPIssuer
	verifier *service.OTPVerifier
}

// NewAuthHandler crea una instancia de AuthHandler con dependencias necesarias.
func NewAuthHandler(logger *zap.Logger, issuer *service.OTPIssuer, verifier *service.OTPVerifier) *AuthHandler {
	return &AuthHandler{
		logger:   logger,
		issuer:   issuer,
		verifier: verifier,
	}
}

// RequestOTP maneja POST /otp. La respuesta no revela si el email existia
// ni si la entrega o el rate limit fallaron.
func (h *AuthHandler) RequestOTP(c *gin.Context) {
	var req struct {
		Email string `json:"email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid otp request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	err := h.issuer.RequestCode(c.Request.Context(), req.Email)
	switch {
	case err == nil,
		errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, service.ErrRateLimited):
		c.JSON(http.StatusOK, gin.H{})
	default:
		h.logger.Error("request otp failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not request otp"})
	}
}

// VerifyOTP maneja POST /otp-verify.
func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	var req struct {
		Email            string `json:"email"`
		VerificationCode string `json:"verification_code"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid otp verify request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"access_token": nil})
		return
	}

	token, err := h.verifier.Redeem(c.Request.Context(), req.Email, req.VerificationCode)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidInput),
			errors.Is(err, service.ErrUserNotFound),
			errors.Is(err, service.ErrNoPendingCode),
			errors.Is(err, service.ErrCodeMismatch):
			c.JSON(http.StatusBadRequest, gin.H{"access_token": nil})
		default:
			h.logger.Error("verify otp failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"access_token": nil})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"access_token": token})
}

// Me maneja GET /me.
func (h *AuthHandler) Me(c *gin.Context) {
	identity, ok := GetIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": identity})
}
