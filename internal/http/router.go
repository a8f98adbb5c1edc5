package http

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"inkwell-api/internal/service"
)

// NewRouter configura el router de Gin con middlewares y rutas.
func NewRouter(
	logger *zap.Logger,
	authorizer *service.Authorizer,
	authH *AuthHandler,
	docH *DocHandler,
	promptH *PromptHandler,
	healthH *HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Middlewares basicos: logging, recovery, CORS abierto y JSON content-type.
	r.Use(zapLoggerMiddleware(logger), gin.Recovery(), corsMiddleware(), jsonContentTypeMiddleware())

	r.GET("/healthz", healthH.Health)
	r.POST("/otp", authH.RequestOTP)
	r.POST("/otp-verify", authH.VerifyOTP)

	protected := r.Group("")
	protected.Use(AuthMiddleware(authorizer, logger))
	protected.GET("/me", authH.Me)
	protected.POST("/prompt", promptH.Prompt)

	docs := protected.Group("/docs")
	docs.GET("", docH.ListDocs)
	docs.POST("", docH.CreateDoc)
	docs.GET("/:id", docH.GetDoc)
	docs.PUT("/:id", docH.UpdateDoc)
	docs.DELETE("/:id", docH.DeleteDoc)

	return r
}

// corsMiddleware acepta cualquier origen, metodo y header. El token viaja en
// Authorization, no en cookies.
func corsMiddleware() gin.HandlerFunc {
	cfg := cors.DefaultConfig()
	cfg.AllowAllOrigins = true
	cfg.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	cfg.AllowHeaders = []string{"*"}
	cfg.MaxAge = 12 * time.Hour
	return cors.New(cfg)
}

// zapLoggerMiddleware crea un middleware simple de logging con zap.
func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}

// jsonContentTypeMiddleware fuerza Content-Type: application/json en responses.
func jsonContentTypeMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Content-Type", "application/json")
		c.Next()
	}
}
