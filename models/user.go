package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const UsersCollection = "users"

type User struct {
	ID       primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Name     string             `json:"name" bson:"name"`
	Email    string             `json:"email" bson:"email"`
	Password string             `json:"-" bson:"password"`
	Date     time.Time          `json:"date" bson:"date"`
}

type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

func (RegisterRequest) ValidationMessages() map[string]string {
	return map[string]string{
		"name.required":     "Name is required",
		"email":             "Please include a valid email",
		"password.required": "Please enter a password with 6 or more characters",
		"password.min":      "Please enter a password with 6 or more characters",
	}
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (LoginRequest) ValidationMessages() map[string]string {
	return map[string]string{
		"email":    "Please include a valid email",
		"password": "Password is required",
	}
}

// TokenResponse is returned by register and login.
type TokenResponse struct {
	Token string `json:"token"`
}
