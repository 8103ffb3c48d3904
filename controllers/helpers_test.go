package controllers

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"comments-api/middleware"
	"comments-api/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const testToken = "valid-token"

type stubTokens struct {
	userID primitive.ObjectID
}

func (s stubTokens) ParseToken(token string) (primitive.ObjectID, error) {
	if token != testToken {
		return primitive.NilObjectID, errors.New("bad token")
	}
	return s.userID, nil
}

type mockCommentRepository struct {
	mock.Mock
}

func (m *mockCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *mockCommentRepository) FindAll(ctx context.Context) ([]models.Comment, error) {
	args := m.Called(ctx)
	comments, _ := args.Get(0).([]models.Comment)
	return comments, args.Error(1)
}

func (m *mockCommentRepository) FindByID(ctx context.Context, id string) (*models.Comment, error) {
	args := m.Called(ctx, id)
	comment, _ := args.Get(0).(*models.Comment)
	return comment, args.Error(1)
}

func newTestLogger() (zerolog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return zerolog.New(&buf), &buf
}

func newCommentRouter(cc *CommentController, userID primitive.ObjectID) *gin.Engine {
	r := gin.New()
	api := r.Group("/api/comments")
	api.POST("",
		middleware.AuthMiddleware(stubTokens{userID: userID}),
		middleware.ValidateBody[models.CreateCommentRequest](),
		middleware.WithPrincipal(cc.CreateComment),
	)
	api.GET("", cc.GetComments)
	api.GET("/:id", cc.GetComment)
	return r
}

func doRequest(r http.Handler, method, path, body, token string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set(middleware.TokenHeader, token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
