// Package apperr defines the managed (code, message) error pairs that make up
// every non-2xx response body.
package apperr

// Error is one machine-readable API error.
type Error struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}

// ErrorList is the canonical error body: {"errors": [{...}, ...]}.
type ErrorList struct {
	Errors []Error `json:"errors"`
}

func NewList(errs ...Error) ErrorList {
	return ErrorList{Errors: append([]Error{}, errs...)}
}

func (l *ErrorList) Append(errs ...Error) {
	l.Errors = append(l.Errors, errs...)
}

func (l ErrorList) Empty() bool {
	return len(l.Errors) == 0
}

var (
	BadRequest = Error{
		Message: "The server cannot process the request due to invalid syntax",
		Code:    "bad_request",
	}
	Unauthorized = Error{
		Message: "The user authentication is not valid",
		Code:    "unauthorized",
	}
	Forbidden = Error{
		Message: "The user does not have enough permission on the request",
		Code:    "forbidden",
	}
	NotFound = Error{
		Message: "The requested resource could not be found",
		Code:    "not_found",
	}
	InternalServerError = Error{
		Message: "The request failed due to an internal server error",
		Code:    "internal_server_error",
	}

	InvalidEmail = Error{
		Message: "Invalid email format",
		Code:    "invalid_email",
	}
	DuplicatedEmail = Error{
		Message: "Email already exists",
		Code:    "duplicated_email",
	}
	InvalidUsername = Error{
		Message: "Invalid username format",
		Code:    "invalid_username",
	}
	DuplicatedUsername = Error{
		Message: "Username already exists",
		Code:    "duplicated_username",
	}
	InvalidPassword = Error{
		Message: "Invalid password format",
		Code:    "invalid_password",
	}
	InvalidCredentials = Error{
		Message: "Invalid email or password",
		Code:    "invalid_credentials",
	}
)
