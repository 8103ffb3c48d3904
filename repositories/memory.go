package repositories

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"comments-api/models"
)

// MemoryCommentRepository keeps comments in process memory.
type MemoryCommentRepository struct {
	mu       sync.RWMutex
	comments []models.Comment
	now      func() time.Time
}

func NewMemoryCommentRepository() *MemoryCommentRepository {
	return NewMemoryCommentRepositoryWithClock(time.Now)
}

func NewMemoryCommentRepositoryWithClock(now func() time.Time) *MemoryCommentRepository {
	return &MemoryCommentRepository{now: now}
}

func (r *MemoryCommentRepository) Create(_ context.Context, comment *models.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	comment.ID = primitive.NewObjectID()
	comment.Date = r.now().UTC().Truncate(time.Millisecond)
	r.comments = append(r.comments, *comment)
	return nil
}

func (r *MemoryCommentRepository) FindAll(_ context.Context) ([]models.Comment, error) {
	r.mu.RLock()
	out := slices.Clone(r.comments)
	r.mu.RUnlock()

	if out == nil {
		out = []models.Comment{}
	}
	slices.SortStableFunc(out, func(a, b models.Comment) int {
		return b.Date.Compare(a.Date)
	})
	return out, nil
}

func (r *MemoryCommentRepository) FindByID(_ context.Context, id string) (*models.Comment, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, c := range r.comments {
		if c.ID == oid {
			found := c
			return &found, nil
		}
	}
	return nil, ErrCommentNotFound
}

type MemoryUserRepository struct {
	mu    sync.RWMutex
	users map[primitive.ObjectID]models.User
}

func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{users: make(map[primitive.ObjectID]models.User)}
}

func (r *MemoryUserRepository) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	email := strings.ToLower(user.Email)
	for _, u := range r.users {
		if u.Email == email {
			return ErrDuplicateEmail
		}
	}

	user.ID = primitive.NewObjectID()
	user.Email = email
	user.Date = time.Now().UTC().Truncate(time.Millisecond)
	r.users[user.ID] = *user
	return nil
}

func (r *MemoryUserRepository) FindByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	email = strings.ToLower(email)
	for _, u := range r.users {
		if u.Email == email {
			found := u
			return &found, nil
		}
	}
	return nil, ErrUserNotFound
}

func (r *MemoryUserRepository) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	return &u, nil
}
