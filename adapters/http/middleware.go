package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rediet/portfolio/pkg/apperror"
	"github.com/rediet/portfolio/pkg/auth"
	"github.com/rediet/portfolio/pkg/logger"
)

const (
	HeaderRequestID = "X-Request-ID"

	GinContextKeyRequestID = "requestID"
	GinContextKeySubject   = "subject"
)

// RequestID reuses an incoming X-Request-ID or assigns a new one.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(HeaderRequestID))
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}
		c.Set(GinContextKeyRequestID, id)
		c.Header(HeaderRequestID, id)
		c.Next()
	}
}

func GetRequestID(c *gin.Context) string {
	return c.GetString(GinContextKeyRequestID)
}

func RequestLogger(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("request_id", GetRequestID(c)),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		}
		if c.Writer.Status() >= http.StatusInternalServerError {
			log.Warn("Request failed", fields...)
			return
		}
		log.Info("Request handled", fields...)
	}
}

// ErrorMiddleware turns the last handler error into a JSON response.
func ErrorMiddleware(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last().Err
		status := apperror.ToHTTPStatus(err)

		body := gin.H{"error": apperror.ErrInternal.Error(), "message": "An internal server error occurred"}
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			body = appErr.ToJSON()
		}

		if status >= http.StatusInternalServerError {
			log.Error("Request error", err, zap.String("request_id", GetRequestID(c)), zap.String("path", c.Request.URL.Path))
		} else {
			log.Warn("Request rejected", zap.String("request_id", GetRequestID(c)), zap.Error(err))
		}

		if !c.Writer.Written() {
			c.AbortWithStatusJSON(status, body)
		}
	}
}

func AuthMiddleware(jwtSvc *auth.JWTService, log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			return
		}

		tokenString, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok || strings.TrimSpace(tokenString) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token format"})
			return
		}

		claims, err := jwtSvc.ValidateToken(strings.TrimSpace(tokenString))
		if err != nil {
			log.Warn("Rejected admin token", zap.String("request_id", GetRequestID(c)), zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		c.Set(GinContextKeySubject, claims.Subject)
		c.Next()
	}
}

func GetSubjectFromGinContext(c *gin.Context) (string, bool) {
	subject := c.GetString(GinContextKeySubject)
	return subject, subject != ""
}
