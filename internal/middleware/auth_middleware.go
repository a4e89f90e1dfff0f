package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/selim/courseshelf/internal/app/models/dto"
	"github.com/selim/courseshelf/internal/pkg/apperrors"
	"github.com/selim/courseshelf/internal/pkg/auth"
)

// ContextUserIDKey is the gin context key carrying the authenticated owner.
const ContextUserIDKey = "userID"

// AuthMiddleware validates caller identity tokens. The tokens themselves
// are issued by the external auth collaborator; this middleware only
// verifies them and threads the owner identity to handlers.
type AuthMiddleware struct {
	jwtService *auth.JWTService
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(jwtService *auth.JWTService) *AuthMiddleware {
	return &AuthMiddleware{jwtService: jwtService}
}

// RequireIdentity rejects requests without a valid bearer token and stores
// the owner ID in the request context.
func (m *AuthMiddleware) RequireIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.APIResponse{
				Error: dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required"),
			})
			return
		}

		tokenString, err := auth.ExtractBearerToken(authHeader)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.APIResponse{
				Error: dto.NewErrorDetail(dto.ErrorCodeInvalidToken, "Invalid token format"),
			})
			return
		}

		claims, err := m.jwtService.ValidateToken(tokenString)
		if err != nil {
			code := dto.ErrorCodeInvalidToken
			message := "Invalid token"
			if errors.Is(err, apperrors.ErrTokenExpired) {
				code = dto.ErrorCodeExpiredToken
				message = "Token expired"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.APIResponse{
				Error: dto.NewErrorDetail(code, message),
			})
			return
		}

		c.Set(ContextUserIDKey, claims.UserID)
		c.Next()
	}
}

// OwnerID extracts the authenticated owner from the request context.
func OwnerID(c *gin.Context) (int64, bool) {
	value, exists := c.Get(ContextUserIDKey)
	if !exists {
		return 0, false
	}
	ownerID, ok := value.(int64)
	return ownerID, ok && ownerID > 0
}
