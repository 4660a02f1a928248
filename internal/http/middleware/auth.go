package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/hvacsite/internal/http/response"
	"github.com/ignatzorin/hvacsite/internal/service"
)

// Context ключи для gin.Context.
const (
	ContextSubjectKey = "subject"
	ContextRoleKey    = "role"
)

// AccessVerifier проверяет access токен внешнего провайдера.
type AccessVerifier interface {
	ParseAccess(token string) (subject, role string, err error)
}

// AdminOnly пропускает только запросы с токеном роли admin.
// Токен берётся из заголовка Authorization, для WebSocket из параметра token.
func AdminOnly(tokens AccessVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := bearerToken(c)
		if raw == "" {
			response.Unauthorized(c, "authorization required")
			return
		}

		subject, role, err := tokens.ParseAccess(raw)
		if err != nil {
			response.Unauthorized(c, "invalid token")
			return
		}
		if role != service.RoleAdmin {
			response.Forbidden(c, "admin role required")
			return
		}

		c.Set(ContextSubjectKey, subject)
		c.Set(ContextRoleKey, role)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	auth := c.GetHeader("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
	}
	return c.Query("token")
}
