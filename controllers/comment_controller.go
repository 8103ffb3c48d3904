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
)

type CommentController struct {
	comments repositories.CommentRepository
	log      zerolog.Logger
}

func NewCommentController(comments repositories.CommentRepository, log zerolog.Logger) *CommentController {
	return &CommentController{
		comments: comments,
		log:      log,
	}
}

// CreateComment handles POST /api/comments. The route runs AuthMiddleware
// and ValidateBody[models.CreateCommentRequest] first.
func (cc *CommentController) CreateComment(c *gin.Context, principal middleware.Principal) {
	result := middleware.ValidationResult(c)
	if !result.IsEmpty() {
		utils.SendErrors(c, result.Array()...)
		return
	}

	req := middleware.Payload[models.CreateCommentRequest](c)
	if req == nil {
		cc.serverError(c, errors.New("create comment route is missing body validation"))
		return
	}

	// The objectid rule on CreateCommentRequest.Post has already accepted req.Post.
	postID, _ := primitive.ObjectIDFromHex(req.Post)

	comment := models.Comment{
		Content: req.Content,
		Post:    postID,
		User:    principal.ID,
	}

	if err := cc.comments.Create(c.Request.Context(), &comment); err != nil {
		cc.serverError(c, err)
		return
	}

	c.JSON(http.StatusOK, comment)
}

// GetComments handles GET /api/comments, newest first.
func (cc *CommentController) GetComments(c *gin.Context) {
	comments, err := cc.comments.FindAll(c.Request.Context())
	if err != nil {
		cc.serverError(c, err)
		return
	}

	c.JSON(http.StatusOK, comments)
}

// GetComment handles GET /api/comments/:id. A malformed id is reported the
// same way as a missing comment.
func (cc *CommentController) GetComment(c *gin.Context) {
	comment, err := cc.comments.FindByID(c.Request.Context(), c.Param("id"))
	switch {
	case errors.Is(err, repositories.ErrCommentNotFound), errors.Is(err, repositories.ErrInvalidID):
		utils.SendMessage(c, http.StatusNotFound, "Comment not found")
		return
	case err != nil:
		cc.serverError(c, err)
		return
	}

	c.JSON(http.StatusOK, comment)
}

func (cc *CommentController) serverError(c *gin.Context, err error) {
	cc.log.Error().
		Err(err).
		Str("request_id", middleware.GetRequestID(c)).
		Str("method", c.Request.Method).
		Str("path", c.FullPath()).
		Msg("comment request failed")
	utils.SendServerError(c)
}
