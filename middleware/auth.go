package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"comments-api/utils"
)

const (
	TokenHeader  = "x-auth-token"
	principalKey = "principal"
	userIDKey    = "user_id"
)

// Principal is the authenticated identity behind a request.
type Principal struct {
	ID primitive.ObjectID
}

type TokenParser interface {
	ParseToken(token string) (primitive.ObjectID, error)
}

// PrincipalHandlerFunc is a handler that only runs for authenticated requests.
type PrincipalHandlerFunc func(c *gin.Context, principal Principal)

// AuthMiddleware rejects requests without a valid token before any later
// handler runs.
func AuthMiddleware(tokens TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			utils.AbortWithMessage(c, http.StatusUnauthorized, "No token, authorization denied")
			return
		}

		userID, err := tokens.ParseToken(token)
		if err != nil {
			utils.AbortWithMessage(c, http.StatusUnauthorized, "Token is not valid")
			return
		}

		c.Set(principalKey, Principal{ID: userID})
		c.Set(userIDKey, userID.Hex())
		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	if token := c.GetHeader(TokenHeader); token != "" {
		return token
	}

	header := c.GetHeader("Authorization")
	if scheme, token, ok := strings.Cut(header, " "); ok && strings.EqualFold(scheme, "Bearer") {
		return strings.TrimSpace(token)
	}
	return ""
}

func GetPrincipal(c *gin.Context) (Principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return Principal{}, false
	}
	p, ok := v.(Principal)
	return p, ok
}

// WithPrincipal adapts h to gin, passing it the principal set by
// AuthMiddleware. Routes missing the auth gate answer 401.
func WithPrincipal(h PrincipalHandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := GetPrincipal(c)
		if !ok {
			utils.AbortWithMessage(c, http.StatusUnauthorized, "No token, authorization denied")
			return
		}
		h(c, principal)
	}
}
