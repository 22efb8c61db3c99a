package middleware

import (
	"errors"
	"net/http"
	"strings"

	"giglink_backend/internal/auth"
	"giglink_backend/internal/logger"
	"giglink_backend/internal/models"
	"giglink_backend/pkg/apperrors"
	"giglink_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AuthMiddleware verifies the bearer token and the stored session value.
// Signature/expiry checks alone are not enough: the decoded user's persisted
// session_token must equal the presented token, which is what makes logout
// revoke unexpired tokens. Must run after DBMiddleware.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			abortUnauthorized(c, "Authorization header missing or invalid")
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := auth.ParseToken(tokenStr)
		if err != nil {
			if errors.Is(err, auth.ErrTokenExpired) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, apperrors.ErrorResponse{
					Success: false,
					Message: "Token has expired",
					Code:    apperrors.CodeTokenExpired,
				})
				return
			}
			abortUnauthorized(c, "Invalid or expired token")
			return
		}

		db, ok := dbFromContext(c)
		if !ok {
			apperrors.HandleError(c, apperrors.InternalError(errors.New("db handle missing from context")))
			c.Abort()
			return
		}

		var user models.User
		if err := db.First(&user, "id = ?", claims.UserID).Error; err != nil {
			abortUnauthorized(c, "Invalid or expired token")
			return
		}

		if !user.IsActive {
			abortUnauthorized(c, "Invalid or expired token")
			return
		}
		if user.SessionToken == nil || *user.SessionToken != tokenStr {
			abortUnauthorized(c, "Invalid or expired token")
			return
		}

		ctx := logger.WithUserID(c.Request.Context(), user.ID)
		c.Request = c.Request.WithContext(ctx)

		c.Set("userID", user.ID)
		c.Set("role", user.Role)
		c.Next()
	}
}

// RequireRoles allows the request through only when the authenticated role
// is in the allow-set.
func RequireRoles(roles ...models.UserRole) gin.HandlerFunc {
	roleSet := make(map[models.UserRole]bool)
	for _, r := range roles {
		roleSet[r] = true
	}

	return func(c *gin.Context) {
		roleVal, exists := c.Get("role")
		if !exists {
			abortForbidden(c, "Access denied: no role")
			return
		}

		role, ok := roleVal.(models.UserRole)
		if !ok {
			roleStr, isString := roleVal.(string)
			if !isString {
				abortForbidden(c, "Access denied: invalid role type")
				return
			}
			role = models.UserRole(roleStr)
		}

		if !roleSet[role] {
			apperrors.HandleError(c, apperrors.ErrInsufficientPermissions)
			c.Abort()
			return
		}

		c.Next()
	}
}

// GetUserID extracts the authenticated user id from the gin context.
func GetUserID(c *gin.Context) string {
	userID, exists := c.Get("userID")
	if !exists {
		return ""
	}

	id, ok := userID.(string)
	if !ok {
		return ""
	}
	return id
}

func dbFromContext(c *gin.Context) (*gorm.DB, bool) {
	val, ok := c.Get(string(contextkeys.DBContextKey))
	if !ok {
		return nil, false
	}
	db, ok := val.(*gorm.DB)
	return db, ok
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, apperrors.ErrorResponse{
		Success: false,
		Message: message,
		Code:    apperrors.CodeUnauthorized,
	})
}

func abortForbidden(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusForbidden, apperrors.ErrorResponse{
		Success: false,
		Message: message,
		Code:    apperrors.CodeForbidden,
	})
}
