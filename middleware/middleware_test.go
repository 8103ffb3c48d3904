package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"comments-api/validation"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubTokens struct {
	valid  string
	userID primitive.ObjectID
}

func (s stubTokens) ParseToken(token string) (primitive.ObjectID, error) {
	if token != s.valid {
		return primitive.NilObjectID, errors.New("bad token")
	}
	return s.userID, nil
}

func newAuthRouter(tokens TokenParser) *gin.Engine {
	r := gin.New()
	r.GET("/me", AuthMiddleware(tokens), WithPrincipal(func(c *gin.Context, p Principal) {
		c.JSON(http.StatusOK, gin.H{"id": p.ID.Hex()})
	}))
	return r
}

func TestAuthMiddleware(t *testing.T) {
	userID := primitive.NewObjectID()
	router := newAuthRouter(stubTokens{valid: "good", userID: userID})

	tests := []struct {
		name       string
		headers    map[string]string
		wantStatus int
		wantBody   string
	}{
		{"missing token", nil, http.StatusUnauthorized, "No token, authorization denied"},
		{"invalid token", map[string]string{TokenHeader: "bad"}, http.StatusUnauthorized, "Token is not valid"},
		{"x-auth-token", map[string]string{TokenHeader: "good"}, http.StatusOK, userID.Hex()},
		{"bearer", map[string]string{"Authorization": "Bearer good"}, http.StatusOK, userID.Hex()},
		{"other scheme", map[string]string{"Authorization": "Basic good"}, http.StatusUnauthorized, "No token, authorization denied"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantBody)
		})
	}
}

func TestWithPrincipal_WithoutAuthGate(t *testing.T) {
	called := false
	r := gin.New()
	r.GET("/me", WithPrincipal(func(c *gin.Context, p Principal) { called = true }))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, called)
}

type notePayload struct {
	Text string `json:"text" validate:"required"`
}

func newValidateRouter() *gin.Engine {
	r := gin.New()
	r.POST("/notes", ValidateBody[notePayload](), func(c *gin.Context) {
		result := ValidationResult(c)
		if !result.IsEmpty() {
			c.JSON(http.StatusBadRequest, gin.H{"errors": result.Array()})
			return
		}
		c.JSON(http.StatusOK, Payload[notePayload](c))
	})
	return r
}

func postJSON(r http.Handler, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestValidateBody(t *testing.T) {
	router := newValidateRouter()

	t.Run("valid", func(t *testing.T) {
		w := postJSON(router, "/notes", `{"text":"hi"}`)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"text":"hi"}`, w.Body.String())
	})

	t.Run("empty field", func(t *testing.T) {
		w := postJSON(router, "/notes", `{"text":""}`)

		require.Equal(t, http.StatusBadRequest, w.Code)
		var body struct {
			Errors []validation.Error `json:"errors"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		require.Len(t, body.Errors, 1)
		assert.Equal(t, "text", body.Errors[0].Param)
	})

	t.Run("empty body", func(t *testing.T) {
		w := postJSON(router, "/notes", "")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), `"param":"text"`)
	})

	t.Run("malformed json", func(t *testing.T) {
		w := postJSON(router, "/notes", `{"text":`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Invalid JSON body")
	})
}

func TestPayload_Missing(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	assert.Nil(t, Payload[notePayload](c))
	assert.True(t, ValidationResult(c).IsEmpty())
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(1, 1)
	r := gin.New()
	r.Use(rl.Middleware())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	first := httptest.NewRecorder()
	r.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/", nil))
	second := httptest.NewRecorder()
	r.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.Equal(t, "0", second.Header().Get("X-RateLimit-Remaining"))
	assert.Equal(t, 1, rl.Len())
}

func TestRateLimiter_Cleanup(t *testing.T) {
	rl := NewRateLimiter(60, 5)
	rl.GetLimiter("10.0.0.1")
	rl.idle = -time.Minute

	rl.CleanupLimiters()

	assert.Equal(t, 0, rl.Len())
}

func TestRequestIDAndLogger(t *testing.T) {
	var buf bytes.Buffer
	r := gin.New()
	r.Use(RequestID(), RequestLogger(zerolog.New(&buf)))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusTeapot) })

	req := httptest.NewRequest(http.MethodGet, "/?q=1", nil)
	req.Header.Set(RequestIDHeader, "abc")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "abc", w.Header().Get(RequestIDHeader))
	assert.Contains(t, buf.String(), `"request_id":"abc"`)
	assert.Contains(t, buf.String(), `"path":"/?q=1"`)
	assert.Contains(t, buf.String(), `"level":"warn"`)
}

func TestRequestID_Generated(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, GetRequestID(c)) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.NotEmpty(t, w.Body.String())
	assert.Equal(t, w.Body.String(), w.Header().Get(RequestIDHeader))
}

func TestCORS_Preflight(t *testing.T) {
	r := gin.New()
	r.Use(CORS([]string{"*"}))
	r.POST("/api/comments", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/api/comments", nil)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestSecurityHeaders(t *testing.T) {
	r := gin.New()
	r.Use(SecurityHeaders())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, "default-src 'none'", w.Header().Get("Content-Security-Policy"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
}
