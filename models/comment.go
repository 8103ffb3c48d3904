package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const CommentsCollection = "comments"

type Comment struct {
	ID      primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Content string             `json:"content" bson:"content"`
	Post    primitive.ObjectID `json:"post" bson:"post"`
	User    primitive.ObjectID `json:"user" bson:"user"`
	Date    time.Time          `json:"date" bson:"date"`
}

type CreateCommentRequest struct {
	Content string `json:"content" validate:"required"`
	Post    string `json:"post" validate:"required,objectid"`
}

func (CreateCommentRequest) ValidationMessages() map[string]string {
	return map[string]string{
		"content.required": "Content is required",
		"post.required":    "Post is required",
		"post.objectid":    "Post must be a valid identifier",
	}
}
