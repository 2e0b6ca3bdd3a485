package mcp

import (
	"errors"
	"fmt"

	"github.com/ganot/unolims/internal/domain/account"
	"github.com/ganot/unolims/internal/domain/batch"
	"github.com/ganot/unolims/internal/domain/item"
	"github.com/ganot/unolims/internal/domain/request"
	"github.com/ganot/unolims/internal/domain/requester"
	"github.com/ganot/unolims/internal/domain/stock"
	"github.com/ganot/unolims/internal/form"
	"github.com/ganot/unolims/internal/qrcode"
	"github.com/ganot/unolims/internal/repository"
	"github.com/ganot/unolims/internal/screen"
)

// APIError represents an MCP error response.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	Details      any    `json:"details,omitempty"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// MapError maps domain errors to MCP error codes. Field errors are reported
// in Details as field name to message key.
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}
	var fieldErrs *form.Errors
	if errors.As(err, &fieldErrs) {
		return &APIError{Code: "INVALID_INPUT", Message: "invalid input", Details: fieldErrs.Map(), RecoveryHint: "Fix the listed fields"}
	}
	switch {
	case errors.Is(err, account.ErrInvalidCredentials):
		return &APIError{Code: "INVALID_CREDENTIALS", Message: "invalid email or password"}
	case isNotFound(err):
		return &APIError{Code: "NOT_FOUND", Message: "record not found", RecoveryHint: "Check the identifier with a list tool"}
	case errors.Is(err, screen.ErrUnknownRoute), errors.Is(err, screen.ErrMissingParam):
		return &APIError{Code: "INVALID_ROUTE", Message: err.Error(), Details: screen.Routes()}
	case errors.Is(err, qrcode.ErrNoCode):
		return &APIError{Code: "NO_CODE", Message: "no QR code found"}
	case errors.Is(err, repository.ErrUnavailable):
		return &APIError{Code: "UNAVAILABLE", Message: "LIMS API unreachable", RecoveryHint: "Retry later"}
	}
	if msg, ok := repository.ServerMessage(err); ok {
		return &APIError{Code: "REMOTE_ERROR", Message: msg}
	}
	var remote *repository.RemoteError
	if errors.As(err, &remote) {
		return &APIError{Code: "REMOTE_ERROR", Message: remote.Error()}
	}
	return nil
}

func isNotFound(err error) bool {
	for _, target := range []error{
		repository.ErrNotFound,
		requester.ErrNotFound,
		request.ErrNotFound,
		item.ErrNotFound,
		batch.ErrNotFound,
		stock.ErrNotFound,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func mapError(err error) error {
	if apiErr := MapError(err); apiErr != nil {
		return apiErr
	}
	return err
}
