package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"anoa.com/learnquest/pkg/response"
	"anoa.com/learnquest/pkg/supabase"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubVerifier struct {
	user *supabase.User
	err  error
	got  string
}

func (v *stubVerifier) Verify(_ context.Context, token string) (*supabase.User, error) {
	v.got = token
	return v.user, v.err
}

func TestExtractBearerToken(t *testing.T) {
	tests := []struct {
		header string
		want   string
	}{
		{"", ""},
		{"Bearer abc", "abc"},
		{"bearer abc", "abc"},
		{"BEARER abc", "abc"},
		{"Basic abc", ""},
		{"Bearer", ""},
		{"Bearer a b", ""},
		{"Bearer  abc", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ExtractBearerToken(tt.header), "header %q", tt.header)
	}
}

func newRouter(v supabase.Verifier) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", NewAuthMiddleware(v).RequireAuth(), func(c *gin.Context) {
		userID, err := response.GetUserID(c)
		if err != nil {
			response.ResponseError(c, err)
			return
		}
		user, err := response.GetAuthUser(c)
		if err != nil {
			response.ResponseError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"user_id": userID.String(), "email": user.Email})
	})
	return r
}

func doRequest(r http.Handler, header string) (*httptest.ResponseRecorder, map[string]string) {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	body := map[string]string{}
	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	return rec, body
}

func TestRequireAuth(t *testing.T) {
	userID := uuid.New()

	t.Run("missing header", func(t *testing.T) {
		v := &stubVerifier{}
		rec, body := doRequest(newRouter(v), "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Missing bearer token", body["error"])
		assert.Empty(t, v.got)
	})

	t.Run("wrong scheme", func(t *testing.T) {
		rec, body := doRequest(newRouter(&stubVerifier{}), "Token abc")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Missing bearer token", body["error"])
	})

	t.Run("verifier rejects", func(t *testing.T) {
		v := &stubVerifier{err: errors.New("expired")}
		rec, body := doRequest(newRouter(v), "Bearer abc")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Invalid authentication token", body["error"])
		assert.Equal(t, "abc", v.got)
	})

	t.Run("verified", func(t *testing.T) {
		v := &stubVerifier{user: &supabase.User{ID: userID, Email: "ada@example.com"}}
		rec, body := doRequest(newRouter(v), "bearer tok")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, userID.String(), body["user_id"])
		assert.Equal(t, "ada@example.com", body["email"])
	})
}

func TestRequireAuth_WebSocketQueryToken(t *testing.T) {
	userID := uuid.New()

	newUpgradeRequest := func(target string) *http.Request {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		req.Header.Set("Connection", "Upgrade")
		req.Header.Set("Upgrade", "websocket")
		return req
	}

	t.Run("handshake accepts query token", func(t *testing.T) {
		v := &stubVerifier{user: &supabase.User{ID: userID}}
		rec := httptest.NewRecorder()
		newRouter(v).ServeHTTP(rec, newUpgradeRequest("/protected?token=tok"))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "tok", v.got)
	})

	t.Run("header wins over query", func(t *testing.T) {
		v := &stubVerifier{user: &supabase.User{ID: userID}}
		req := newUpgradeRequest("/protected?token=query")
		req.Header.Set("Authorization", "Bearer header")
		rec := httptest.NewRecorder()
		newRouter(v).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "header", v.got)
	})

	t.Run("plain request ignores query token", func(t *testing.T) {
		v := &stubVerifier{user: &supabase.User{ID: userID}}
		rec := httptest.NewRecorder()
		newRouter(v).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/protected?token=tok", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Empty(t, v.got)
	})
}
