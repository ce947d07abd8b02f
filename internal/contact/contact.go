// Package contact relays contact-form submissions to the site owner.
package contact

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	// ErrInvalid wraps every validation failure.
	ErrInvalid = errors.New("invalid submission")
	// ErrRejected means the relay answered but did not accept the message.
	ErrRejected = errors.New("relay rejected submission")
)

// DefaultSubject is the subject line the owner receives.
const DefaultSubject = "New Contact Form Submission from Portfolio"

// Message is one submission. The validate tags are checked after
// Normalize, so whitespace-only fields count as missing.
type Message struct {
	Name  string `json:"name" form:"name" validate:"required"`
	Email string `json:"email" form:"email" validate:"required,email"`
	Body  string `json:"message" form:"message" validate:"required"`
}

var validate = newValidator()

// newValidator reports fields by their json names.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		return name
	})
	return v
}

// Normalize trims surrounding whitespace from every field.
func (m Message) Normalize() Message {
	return Message{
		Name:  strings.TrimSpace(m.Name),
		Email: strings.TrimSpace(m.Email),
		Body:  strings.TrimSpace(m.Body),
	}
}

// Validate reports the first problem with m, wrapped in ErrInvalid.
func (m Message) Validate() error {
	err := validate.Struct(m)
	if err == nil {
		return nil
	}
	var fields validator.ValidationErrors
	if !errors.As(err, &fields) || len(fields) == 0 {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	fe := fields[0]
	if fe.Tag() == "email" {
		return fmt.Errorf("%w: email %q is not an address", ErrInvalid, m.Email)
	}
	return fmt.Errorf("%w: %s is required", ErrInvalid, fe.Field())
}

// Relay delivers a message. Implementations make one attempt only.
type Relay interface {
	Send(ctx context.Context, m Message) error
}

// FallbackNotice is shown when a message could not be relayed.
func FallbackNotice(email string) string {
	return "Failed to send message. Please try emailing directly at " + email
}

// SuccessNotice is shown after a message was relayed.
const SuccessNotice = "Thank you for your message! I'll get back to you soon."
