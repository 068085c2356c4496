package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError represents a failed backend call as seen by the client.
type AppError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"-"`
	Err     error  `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches on Code so sentinel AppErrors can be compared with errors.Is.
func (e *AppError) Is(target error) bool {
	var t *AppError
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// UserMessage returns the localized text shown in alerts. Raw messages and
// wrapped errors are for logs only.
func (e *AppError) UserMessage() string {
	if msg, ok := userMessages[e.Code]; ok {
		return msg
	}
	return userMessages["INTERNAL_ERROR"]
}

var userMessages = map[string]string{
	"BAD_REQUEST":         "Dados inválidos. Verifique e tente novamente.",
	"UNAUTHORIZED":        "Sua sessão expirou. Faça login novamente.",
	"FORBIDDEN":           "Você não tem permissão para acessar este conteúdo.",
	"NOT_FOUND":           "Conteúdo não encontrado.",
	"CONFLICT":            "Esta operação conflita com o estado atual.",
	"NETWORK_ERROR":       "Não foi possível conectar ao servidor. Verifique sua conexão.",
	"TIMEOUT":             "O servidor demorou para responder. Tente novamente.",
	"SERVICE_UNAVAILABLE": "Serviço indisponível no momento. Tente novamente mais tarde.",
	"INTERNAL_ERROR":      "Ocorreu um erro inesperado. Tente novamente.",
}

// NewAppError creates a new AppError
func NewAppError(code, message string, status int, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Status:  status,
		Err:     err,
	}
}

// BadRequest creates a 400 error
func BadRequest(message string, err error) *AppError {
	return NewAppError("BAD_REQUEST", message, http.StatusBadRequest, err)
}

// Unauthorized creates a 401 error
func Unauthorized(message string, err error) *AppError {
	return NewAppError("UNAUTHORIZED", message, http.StatusUnauthorized, err)
}

// Forbidden creates a 403 error
func Forbidden(message string, err error) *AppError {
	return NewAppError("FORBIDDEN", message, http.StatusForbidden, err)
}

// NotFound creates a 404 error
func NotFound(message string, err error) *AppError {
	return NewAppError("NOT_FOUND", message, http.StatusNotFound, err)
}

// Conflict creates a 409 error
func Conflict(message string, err error) *AppError {
	return NewAppError("CONFLICT", message, http.StatusConflict, err)
}

// Internal creates a 500 error
func Internal(message string, err error) *AppError {
	return NewAppError("INTERNAL_ERROR", message, http.StatusInternalServerError, err)
}

// ServiceUnavailable creates a 503 error
func ServiceUnavailable(message string, err error) *AppError {
	return NewAppError("SERVICE_UNAVAILABLE", message, http.StatusServiceUnavailable, err)
}

// Network reports a transport failure (no HTTP response at all).
func Network(message string, err error) *AppError {
	return NewAppError("NETWORK_ERROR", message, 0, err)
}

// Timeout reports a request that exceeded the client deadline.
func Timeout(message string, err error) *AppError {
	return NewAppError("TIMEOUT", message, 0, err)
}

// FromStatus maps a non-2xx HTTP status to an AppError.
func FromStatus(status int, message string) *AppError {
	switch {
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		return BadRequest(message, nil)
	case status == http.StatusUnauthorized:
		return Unauthorized(message, nil)
	case status == http.StatusForbidden:
		return Forbidden(message, nil)
	case status == http.StatusNotFound:
		return NotFound(message, nil)
	case status == http.StatusConflict:
		return Conflict(message, nil)
	case status == http.StatusServiceUnavailable || status == http.StatusBadGateway || status == http.StatusGatewayTimeout:
		return NewAppError("SERVICE_UNAVAILABLE", message, status, nil)
	default:
		return NewAppError("INTERNAL_ERROR", message, status, nil)
	}
}

var (
	// ErrSessionInvalid is returned for every 401/403 response. Callers treat it
	// as "route back to the unauthenticated state", never as retryable.
	ErrSessionInvalid = Unauthorized("Session is invalid or expired", nil)
)

// IsSessionInvalid reports whether err means the stored session is no longer accepted.
func IsSessionInvalid(err error) bool {
	appErr := GetAppError(err)
	return appErr.Code == "UNAUTHORIZED" || appErr.Code == "FORBIDDEN"
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError attempts to convert an error to AppError
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal("An unexpected error occurred", err)
}

// UserMessage returns the localized message for any error.
func UserMessage(err error) string {
	return GetAppError(err).UserMessage()
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
