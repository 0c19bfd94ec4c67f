package models

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// ErrorItem is a single entry in a validation error list.
type ErrorItem struct {
	Msg string `json:"msg"`
}

// ErrorResponse represents a standardized API error response.
// Validation failures carry the full Errors list; everything else uses
// the single Error/Code pair.
type ErrorResponse struct {
	Error  string      `json:"error,omitempty"`
	Code   string      `json:"code,omitempty"`
	Errors []ErrorItem `json:"errors,omitempty"`
}

// AppError represents a custom application error
type AppError struct {
	Code     string
	Message  string
	Messages []string
	Err      error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Predefined error constructors
func NewNotFoundError(resource string) *AppError {
	return &AppError{
		Code:    "NOT_FOUND",
		Message: fmt.Sprintf("%s not found", resource),
	}
}

func NewValidationError(messages ...string) *AppError {
	msg := "Validation failed"
	if len(messages) == 1 {
		msg = messages[0]
	}
	return &AppError{
		Code:     "VALIDATION_ERROR",
		Message:  msg,
		Messages: messages,
	}
}

func NewDuplicateEmailError() *AppError {
	return &AppError{
		Code:    "DUPLICATE_EMAIL",
		Message: "User already exists",
	}
}

func NewUnauthorizedError(message string) *AppError {
	return &AppError{
		Code:    "UNAUTHORIZED",
		Message: message,
	}
}

func NewForbiddenError(message string) *AppError {
	return &AppError{
		Code:    "FORBIDDEN",
		Message: message,
	}
}

func NewAlreadyLikedError() *AppError {
	return &AppError{
		Code:    "ALREADY_LIKED",
		Message: "Post already liked",
	}
}

func NewNotLikedError() *AppError {
	return &AppError{
		Code:    "NOT_LIKED",
		Message: "Post has not yet been liked",
	}
}

func NewUpstreamError(message string, err error) *AppError {
	return &AppError{
		Code:    "UPSTREAM_ERROR",
		Message: message,
		Err:     err,
	}
}

func NewInternalError(err error) *AppError {
	return &AppError{
		Code:    "INTERNAL_ERROR",
		Message: "Internal server error",
		Err:     err,
	}
}

// RespondWithError creates a standardized error response. Internal error
// detail is never echoed back to the client.
func RespondWithError(c *fiber.Ctx, status int, err error) error {
	var response ErrorResponse

	if appErr, ok := err.(*AppError); ok {
		response = ErrorResponse{
			Error: appErr.Message,
			Code:  appErr.Code,
		}
		for _, msg := range appErr.Messages {
			response.Errors = append(response.Errors, ErrorItem{Msg: msg})
		}
	} else {
		response = ErrorResponse{
			Error: "Internal server error",
			Code:  "INTERNAL_ERROR",
		}
	}

	return c.Status(status).JSON(response)
}
