package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"fintrack-be/internal/apperror"
	"fintrack-be/internal/jwt"
	applog "fintrack-be/internal/log"
	"fintrack-be/internal/models"
)

const callerKey = "caller"

// TokenValidator is satisfied by *jwt.JWTService
type TokenValidator interface {
	ValidateToken(token string) (*jwt.Claims, error)
}

// AuthMiddleware requires a valid bearer token and stores the caller on the context
func AuthMiddleware(tokens TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := bearerToken(c)
		if !ok {
			abortWithError(c, apperror.Unauthorized("Authorization header is required!"))
			return
		}
		caller, err := callerFromToken(tokens, raw)
		if err != nil {
			applog.For(c.Request.Context(), applog.ComponentSecurity).WarnContext(c.Request.Context(),
				"Rejected token", applog.FieldClientIP, c.ClientIP(), applog.FieldError, err)
			abortWithError(c, apperror.Unauthorized("Invalid or expired token!"))
			return
		}
		c.Set(callerKey, caller)
		c.Next()
	}
}

// OptionalAuth attaches the caller when a valid token is sent and continues anonymously otherwise
func OptionalAuth(tokens TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if raw, ok := bearerToken(c); ok {
			if caller, err := callerFromToken(tokens, raw); err == nil {
				c.Set(callerKey, caller)
			}
		}
		c.Next()
	}
}

// CallerFrom returns the caller stored by the auth middleware, or the anonymous caller
func CallerFrom(c *gin.Context) models.Caller {
	if v, ok := c.Get(callerKey); ok {
		if caller, ok := v.(models.Caller); ok {
			return caller
		}
	}
	return models.Caller{}
}

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func callerFromToken(tokens TokenValidator, raw string) (models.Caller, error) {
	claims, err := tokens.ValidateToken(raw)
	if err != nil {
		return models.Caller{}, err
	}
	return claims.Caller()
}

func abortWithError(c *gin.Context, e *apperror.Error) {
	c.AbortWithStatusJSON(e.Status.HTTPStatus(), models.RequestResponse{
		ErrorMessage: &models.ErrorMessage{
			Message:   e.Message,
			ErrorCode: string(e.Code),
			Status:    string(e.Status),
		},
	})
}
