package utils

import (
	"errors"
	"net/http"
)

type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type OkResponse[T any] struct {
	Payload T `json:"payload"`
}

func CreateOkResponse[T any](obj T) (int, OkResponse[T]) {
	return http.StatusOK, OkResponse[T]{Payload: obj}
}

func CreateErrorResponse(err error) (int, ErrorResponse) {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound, ErrorResponse{Code: -1, Message: err.Error()}
	case errors.Is(err, ErrInvalidCredentials):
		return http.StatusBadRequest, ErrorResponse{Code: 1001, Message: err.Error()}
	case errors.Is(err, ErrConflict):
		return http.StatusConflict, ErrorResponse{Code: 2001, Message: err.Error()}
	case errors.Is(err, ErrValidationError):
		return http.StatusUnprocessableEntity, ErrorResponse{Code: 422, Message: err.Error()}
	case errors.Is(err, ErrDatabaseError):
		return http.StatusInternalServerError, ErrorResponse{Code: 500, Message: ErrDatabaseError.Error()}
	// Permission / Access errors
	case errors.Is(err, ErrUnauthorized),
		errors.Is(err, ErrOpenIdError),
		errors.Is(err, ErrOpenIdAuthDisabled),
		errors.Is(err, ErrNativeAuthDisabled):
		return http.StatusUnauthorized, ErrorResponse{Code: 401, Message: err.Error()}
	case errors.Is(err, ErrTokenInvalid):
		return 498, ErrorResponse{Code: 498, Message: err.Error()}
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden, ErrorResponse{Code: 403, Message: err.Error()}
	}

	// Unknown errors may carry driver details, never echo them
	return http.StatusInternalServerError, ErrorResponse{Code: 500, Message: ErrDatabaseError.Error()}
}

func CreateValidationError(err error) (int, ErrorResponse) {
	return http.StatusUnprocessableEntity, ErrorResponse{Code: 422, Message: err.Error()}
}

func CreateSocketErrorResponse(err error) ErrorResponse {
	switch {
	case errors.Is(err, ErrInvalidSocketRequest):
		return ErrorResponse{Code: 5422, Message: err.Error()}
	case errors.Is(err, ErrNotFound):
		return ErrorResponse{Code: 5404, Message: err.Error()}
	default:
		return ErrorResponse{Code: -1, Message: err.Error()}
	}
}

func CreateSocketOkResponse[T any](obj T) OkResponse[T] {
	return OkResponse[T]{Payload: obj}
}
