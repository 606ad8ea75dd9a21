package middleware

import (
	"context"
	"database/sql"
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Carlos6464/publiflow-backend/internal/models"
	appErrors "github.com/Carlos6464/publiflow-backend/pkg/errors"
	"github.com/Carlos6464/publiflow-backend/pkg/response"
)

// RoleResolver maps a role id from token claims to its stored name.
type RoleResolver interface {
	FindByID(ctx context.Context, id int64) (*models.Role, error)
}

// Roles enforces a per-route allow-list of role names. An empty allow-list
// admits any authenticated request without touching the database; otherwise
// the caller's role id is resolved to its name with a single lookup.
func Roles(resolver RoleResolver, allowed ...string) gin.HandlerFunc {
	allowedSet := make(map[string]struct{}, len(allowed))
	for _, name := range allowed {
		allowedSet[name] = struct{}{}
	}

	return func(c *gin.Context) {
		claimsValue, exists := c.Get(ContextUserKey)
		if !exists {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}
		claims, ok := claimsValue.(*models.JWTClaims)
		if !ok {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}

		if len(allowedSet) == 0 {
			c.Next()
			return
		}

		role, err := resolver.FindByID(c.Request.Context(), claims.RoleID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				response.Error(c, appErrors.Clone(appErrors.ErrForbidden, "user role not found"))
			} else {
				response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve user role"))
			}
			c.Abort()
			return
		}

		if _, ok := allowedSet[role.Name]; !ok {
			response.Error(c, appErrors.Clone(appErrors.ErrForbidden, "access denied for this role"))
			c.Abort()
			return
		}

		c.Next()
	}
}
