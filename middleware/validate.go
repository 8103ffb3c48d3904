package middleware

import (
	"errors"
	"io"

	"github.com/gin-gonic/gin"

	"comments-api/validation"
)

const (
	validationResultKey = "validation_result"
	payloadKey          = "payload"
)

// ValidateBody decodes the JSON body into a new T and records the outcome of
// its validation rules. It never aborts; handlers read the result with
// ValidationResult and decide.
func ValidateBody[T any]() gin.HandlerFunc {
	return func(c *gin.Context) {
		payload := new(T)

		var result validation.Result
		if err := c.ShouldBindJSON(payload); err != nil && !errors.Is(err, io.EOF) {
			result = validation.NewResult(validation.Error{
				Msg:      "Invalid JSON body",
				Location: validation.LocationBody,
			})
		} else {
			result = validation.Check(payload)
		}

		c.Set(validationResultKey, result)
		c.Set(payloadKey, payload)
		c.Next()
	}
}

func ValidationResult(c *gin.Context) validation.Result {
	if v, ok := c.Get(validationResultKey); ok {
		if result, ok := v.(validation.Result); ok {
			return result
		}
	}
	return validation.Result{}
}

// Payload returns the body decoded by ValidateBody, or nil when the route
// has no ValidateBody step for T.
func Payload[T any](c *gin.Context) *T {
	v, ok := c.Get(payloadKey)
	if !ok {
		return nil
	}
	payload, _ := v.(*T)
	return payload
}
