package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"comments-api/middleware"
	"comments-api/models"
	"comments-api/repositories"
	"comments-api/utils"
	"comments-api/validation"
)

const (
	msgUserExists         = "User already exists"
	msgInvalidCredentials = "Invalid Credentials"
)

type Authenticator interface {
	HashPassword(password string) (string, error)
	CheckPassword(hash, password string) bool
	GenerateToken(userID primitive.ObjectID) (string, error)
}

type AuthController struct {
	users repositories.UserRepository
	auth  Authenticator
	log   zerolog.Logger
}

func NewAuthController(users repositories.UserRepository, auth Authenticator, log zerolog.Logger) *AuthController {
	return &AuthController{
		users: users,
		auth:  auth,
		log:   log,
	}
}

// Register handles POST /api/users.
func (ac *AuthController) Register(c *gin.Context) {
	result := middleware.ValidationResult(c)
	if !result.IsEmpty() {
		utils.SendErrors(c, result.Array()...)
		return
	}
	req := middleware.Payload[models.RegisterRequest](c)
	if req == nil {
		ac.serverError(c, errors.New("register route is missing body validation"))
		return
	}

	_, err := ac.users.FindByEmail(c.Request.Context(), req.Email)
	switch {
	case err == nil:
		utils.SendErrors(c, validation.Error{Msg: msgUserExists})
		return
	case !errors.Is(err, repositories.ErrUserNotFound):
		ac.serverError(c, err)
		return
	}

	hash, err := ac.auth.HashPassword(req.Password)
	if err != nil {
		ac.serverError(c, err)
		return
	}

	user := models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: hash,
	}
	if err := ac.users.Create(c.Request.Context(), &user); err != nil {
		// Lost a race with a concurrent registration.
		if errors.Is(err, repositories.ErrDuplicateEmail) {
			utils.SendErrors(c, validation.Error{Msg: msgUserExists})
			return
		}
		ac.serverError(c, err)
		return
	}

	ac.sendToken(c, user.ID)
}

// Login handles POST /api/auth.
func (ac *AuthController) Login(c *gin.Context) {
	result := middleware.ValidationResult(c)
	if !result.IsEmpty() {
		utils.SendErrors(c, result.Array()...)
		return
	}
	req := middleware.Payload[models.LoginRequest](c)
	if req == nil {
		ac.serverError(c, errors.New("login route is missing body validation"))
		return
	}

	user, err := ac.users.FindByEmail(c.Request.Context(), req.Email)
	if errors.Is(err, repositories.ErrUserNotFound) {
		utils.SendErrors(c, validation.Error{Msg: msgInvalidCredentials})
		return
	}
	if err != nil {
		ac.serverError(c, err)
		return
	}

	if !ac.auth.CheckPassword(user.Password, req.Password) {
		utils.SendErrors(c, validation.Error{Msg: msgInvalidCredentials})
		return
	}

	ac.sendToken(c, user.ID)
}

// GetCurrentUser handles GET /api/auth.
func (ac *AuthController) GetCurrentUser(c *gin.Context, principal middleware.Principal) {
	user, err := ac.users.FindByID(c.Request.Context(), principal.ID)
	if errors.Is(err, repositories.ErrUserNotFound) {
		utils.SendMessage(c, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		ac.serverError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

func (ac *AuthController) sendToken(c *gin.Context, userID primitive.ObjectID) {
	token, err := ac.auth.GenerateToken(userID)
	if err != nil {
		ac.serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.TokenResponse{Token: token})
}

func (ac *AuthController) serverError(c *gin.Context, err error) {
	ac.log.Error().
		Err(err).
		Str("request_id", middleware.GetRequestID(c)).
		Str("path", c.FullPath()).
		Msg("auth request failed")
	utils.SendServerError(c)
}
