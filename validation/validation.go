// Package validation checks decoded request payloads against the rules
// declared in their `validate` struct tags.
//
// Failures are reported as a list of field errors in the shape API clients
// already consume: {"value", "msg", "param", "location"}. Payload types can
// implement Messenger to replace the default messages.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const LocationBody = "body"

type Error struct {
	Value    any    `json:"value,omitempty"`
	Msg      string `json:"msg"`
	Param    string `json:"param,omitempty"`
	Location string `json:"location,omitempty"`
}

// Result holds the outcome of checking one payload.
type Result struct {
	errors []Error
}

func NewResult(errs ...Error) Result {
	return Result{errors: errs}
}

func (r Result) IsEmpty() bool {
	return len(r.errors) == 0
}

// Array returns a copy of the collected errors, never nil.
func (r Result) Array() []Error {
	out := make([]Error, len(r.errors))
	copy(out, r.errors)
	return out
}

// Messenger maps "field.tag" or "field" keys to client facing messages.
type Messenger interface {
	ValidationMessages() map[string]string
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// objectid accepts 24 character hex document identifiers.
	if err := v.RegisterValidation("objectid", func(fl validator.FieldLevel) bool {
		return primitive.IsValidObjectID(fl.Field().String())
	}); err != nil {
		panic(err)
	}

	return v
}

// Check validates payload, which must be a struct or a pointer to one.
func Check(payload any) Result {
	err := validate.Struct(payload)
	if err == nil {
		return Result{}
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return NewResult(Error{Msg: err.Error(), Location: LocationBody})
	}

	var messages map[string]string
	if m, ok := payload.(Messenger); ok {
		messages = m.ValidationMessages()
	}

	out := make([]Error, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, Error{
			Value:    fe.Value(),
			Msg:      message(messages, fe),
			Param:    fe.Field(),
			Location: LocationBody,
		})
	}

	return NewResult(out...)
}

func message(messages map[string]string, fe validator.FieldError) string {
	if msg, ok := messages[fe.Field()+"."+fe.Tag()]; ok {
		return msg
	}
	if msg, ok := messages[fe.Field()]; ok {
		return msg
	}

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", fe.Field())
	case "objectid":
		return fmt.Sprintf("%s must be a valid identifier", fe.Field())
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must not exceed %s characters", fe.Field(), fe.Param())
		}
		return fmt.Sprintf("%s must not exceed %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}
