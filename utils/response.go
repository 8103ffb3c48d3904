package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"comments-api/validation"
)

// ServerErrorMessage is the only body a client sees for store or
// infrastructure faults.
const ServerErrorMessage = "Server Error"

type MessageResponse struct {
	Msg string `json:"msg"`
}

type ErrorsResponse struct {
	Errors []validation.Error `json:"errors"`
}

func SendMessage(c *gin.Context, status int, msg string) {
	c.JSON(status, MessageResponse{Msg: msg})
}

func AbortWithMessage(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, MessageResponse{Msg: msg})
}

func SendErrors(c *gin.Context, errs ...validation.Error) {
	c.JSON(http.StatusBadRequest, ErrorsResponse{Errors: errs})
}

func SendServerError(c *gin.Context) {
	c.String(http.StatusInternalServerError, ServerErrorMessage)
}
