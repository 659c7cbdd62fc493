package requests

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

// newValidator reports fields by their json names.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// RegisterRequest is the body of POST /register.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
}

// LoginRequest is the body of POST /login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// StartChatRequest is the body of POST /chat.
type StartChatRequest struct {
	Question     string `json:"question" validate:"required"`
	AnswerLength int    `json:"answer_length" validate:"gte=1"`
}

// ContinueChatRequest is the body of PUT /chat. Dialog is the dialog id.
type ContinueChatRequest struct {
	Question     string `json:"question" validate:"required"`
	Dialog       string `json:"dialog" validate:"required"`
	AnswerLength int    `json:"answer_length" validate:"gte=1"`
}

// DeleteDialogsRequest is the body of DELETE /dialogs-delete.
type DeleteDialogsRequest struct {
	DialogsIDs []string `json:"dialogs_ids" validate:"required,min=1"`
}

// Validate checks struct tags after trimming surrounding whitespace of the text fields.
func Validate(req any) error {
	switch r := req.(type) {
	case *RegisterRequest:
		r.Name = strings.TrimSpace(r.Name)
		r.Username = strings.TrimSpace(r.Username)
	case *LoginRequest:
		r.Username = strings.TrimSpace(r.Username)
	case *StartChatRequest:
		r.Question = strings.TrimSpace(r.Question)
	case *ContinueChatRequest:
		r.Question = strings.TrimSpace(r.Question)
		r.Dialog = strings.TrimSpace(r.Dialog)
	}

	err := validate.Struct(req)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		return FieldError{Field: fieldErrs[0].Field(), Tag: fieldErrs[0].Tag(), Param: fieldErrs[0].Param()}
	}
	return err
}

// FieldError describes the first field that failed validation.
type FieldError struct {
	Field string
	Tag   string
	Param string
}

func (e FieldError) Error() string {
	switch e.Tag {
	case "required":
		return fmt.Sprintf("%s is required", e.Field)
	case "min":
		return fmt.Sprintf("%s is too short (min %s)", e.Field, e.Param)
	case "gte":
		return fmt.Sprintf("%s must be at least %s", e.Field, e.Param)
	default:
		return fmt.Sprintf("%s is invalid", e.Field)
	}
}
