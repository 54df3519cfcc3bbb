package middleware

import (
	"strings"

	"anoa.com/learnquest/pkg/apperror"
	"anoa.com/learnquest/pkg/response"
	"anoa.com/learnquest/pkg/supabase"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

type AuthMiddleware struct {
	verifier supabase.Verifier
}

func NewAuthMiddleware(verifier supabase.Verifier) *AuthMiddleware {
	return &AuthMiddleware{verifier: verifier}
}

// ExtractBearerToken returns the token of an "Authorization: Bearer <token>"
// header. The scheme is case-insensitive; anything else yields "".
func ExtractBearerToken(authorizationHeader string) string {
	if authorizationHeader == "" {
		return ""
	}

	parts := strings.Split(authorizationHeader, " ")
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return parts[1]
	}

	return ""
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := ExtractBearerToken(c.GetHeader("Authorization"))

		// Browsers cannot set headers on a websocket handshake.
		if token == "" && websocket.IsWebSocketUpgrade(c.Request) {
			token = c.Query("token")
		}

		if token == "" {
			response.ResponseError(c, apperror.Unauthorized("Missing bearer token"))
			c.Abort()
			return
		}

		user, err := m.verifier.Verify(c.Request.Context(), token)
		if err != nil || user == nil {
			response.ResponseError(c, apperror.Unauthorized("Invalid authentication token"))
			c.Abort()
			return
		}

		c.Set(response.ContextUserID, user.ID.String())
		c.Set(response.ContextAuthUser, user)
		c.Next()
	}
}
