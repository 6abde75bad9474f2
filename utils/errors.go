package utils

import "errors"

var ErrDatabaseError = errors.New("there was a problem processing the request")
var ErrNotFound = errors.New("the requested resource was not found")
var ErrValidationError = errors.New("the data provided was invalid")
var ErrConflict = errors.New("the resource already exists")
var ErrInvalidCredentials = errors.New("the credentials provided were invalid")

// Permission / Access errors
var ErrUnauthorized = errors.New("authentication is required")
var ErrForbidden = errors.New("access to this resource is forbidden")
var ErrTokenInvalid = errors.New("the token provided was invalid or has expired")
var ErrOpenIdError = errors.New("failed to authenticate with the OpenID provider")
var ErrOpenIdAuthDisabled = errors.New("authentication via OpenID is disabled")
var ErrNativeAuthDisabled = errors.New("native authentication is disabled")

// Socket errors
var ErrInvalidSocketRequest = errors.New("the socket request was malformed")
