package repositories

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"comments-api/models"
)

var (
	ErrCommentNotFound = errors.New("comment not found")
	ErrUserNotFound    = errors.New("user not found")
	ErrDuplicateEmail  = errors.New("email already registered")
	// ErrInvalidID is returned when an identifier is not a well-formed ObjectID.
	ErrInvalidID = errors.New("invalid identifier")
)

// CommentRepository stores comments. Create assigns ID and Date.
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	// FindAll returns every comment, newest first.
	FindAll(ctx context.Context) ([]models.Comment, error)
	FindByID(ctx context.Context, id string) (*models.Comment, error)
}

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
}
