package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	domainerrors "github.com/chatlabs/chat-api/internal/errors"
	"github.com/chatlabs/chat-api/internal/store"
)

// statusError is the value of the "status" field on every error payload.
const statusError = "error"

// internalMessage replaces infrastructure error text sent to clients.
const internalMessage = "Internal server error"

// APIError is the error payload returned by every endpoint.
// It implements huma.StatusError.
type APIError struct { //nolint:revive // API prefix is intentional for clarity
	Status  string `json:"status" doc:"Always \"error\""`
	Code    int    `json:"code" doc:"HTTP status code"`
	Message string `json:"message" doc:"Human-readable error message"`
	Details any    `json:"details,omitempty" doc:"Additional error details"`
	Trace   string `json:"trace,omitempty" doc:"Underlying error, outside production only"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return e.Message
}

// GetStatus implements huma.StatusError.
func (e *APIError) GetStatus() int {
	return e.Code
}

// ContentType returns the content type for the error response.
func (e *APIError) ContentType(_ string) string {
	return "application/json"
}

// errorMapper turns any error into an APIError.
type errorMapper struct {
	logger       *slog.Logger
	exposeDetail bool
}

// register installs m as huma's error constructor.
// Call this after creating the huma.API but before serving requests.
func (m *errorMapper) register() {
	huma.NewError = m.newError
}

// newError replaces huma.NewError. Domain and store errors carry their own
// status; huma's request validation (422) is reported as 400.
func (m *errorMapper) newError(status int, message string, errs ...error) huma.StatusError {
	for _, err := range errs {
		if apiErr := m.fromKnown(err); apiErr != nil {
			return apiErr
		}
	}

	if status == http.StatusUnprocessableEntity {
		status = http.StatusBadRequest
	}

	apiErr := &APIError{
		Status:  statusError,
		Code:    status,
		Message: message,
	}

	if details := errorDetails(errs); len(details) > 0 && status < http.StatusInternalServerError {
		apiErr.Details = details
	}

	if status >= http.StatusInternalServerError {
		m.logServerError(message, errs)
		apiErr.Message = internalMessage
		if m.exposeDetail {
			apiErr.Trace = joinErrors(message, errs)
		}
	}

	return apiErr
}

// toAPIError converts an error returned by a service into an APIError.
func (m *errorMapper) toAPIError(err error) error {
	if err == nil {
		return nil
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	if apiErr := m.fromKnown(err); apiErr != nil {
		return apiErr
	}
	return m.newError(http.StatusInternalServerError, err.Error(), err)
}

// fromKnown maps domain and store errors; it returns nil for anything else.
func (m *errorMapper) fromKnown(err error) *APIError {
	var domainErr *domainerrors.Error
	if errors.As(err, &domainErr) {
		if domainErr.Code == domainerrors.CodeInternal {
			return nil
		}
		return &APIError{
			Status:  statusError,
			Code:    domainErr.HTTPStatus(),
			Message: domainErr.Message,
			Details: domainErr.Details,
		}
	}

	var storeErr *store.Error
	if errors.As(err, &storeErr) && storeErr.HTTPCode() < http.StatusInternalServerError {
		return &APIError{
			Status:  statusError,
			Code:    storeErr.HTTPCode(),
			Message: storeErr.Message,
		}
	}

	return nil
}

func (m *errorMapper) logServerError(message string, errs []error) {
	if m.logger == nil {
		return
	}
	attrs := []any{"message", message}
	if len(errs) > 0 {
		attrs = append(attrs, "error", errors.Join(errs...).Error())
	}
	m.logger.Error("request failed", attrs...)
}

// errorDetails collects huma's per-field validation details.
func errorDetails(errs []error) []*huma.ErrorDetail {
	var details []*huma.ErrorDetail
	for _, err := range errs {
		var detail *huma.ErrorDetail
		if errors.As(err, &detail) {
			details = append(details, detail)
		}
	}
	return details
}

func joinErrors(message string, errs []error) string {
	if len(errs) == 0 {
		return message
	}
	return errors.Join(errs...).Error()
}

// fail converts a service error into an APIError for huma.
func (s *Server) fail(err error) error {
	return s.errs.toAPIError(err)
}
