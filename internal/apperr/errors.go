// Package apperr defines the closed set of error kinds the API understands
// and the HTTP status and machine code each one maps to.
package apperr

import (
	"errors"
	"net/http"
)

// Kind tags an Error with its category.
type Kind int

const (
	KindDomain Kind = iota + 1
	KindValidation
	KindNotFound
	KindInfrastructure
)

// Default machine codes, used when an Error is built without one.
const (
	CodeDomain         = "ERRO_DOMINIO"
	CodeValidation     = "ERRO_VALIDACAO"
	CodeNotFound       = "RECURSO_NAO_ENCONTRADO"
	CodeInfrastructure = "ERRO_INFRAESTRUTURA"
)

type kindInfo struct {
	name   string
	status int
	code   string
}

var kinds = map[Kind]kindInfo{
	KindDomain:         {"domain", http.StatusBadRequest, CodeDomain},
	KindValidation:     {"validation", http.StatusUnprocessableEntity, CodeValidation},
	KindNotFound:       {"not_found", http.StatusNotFound, CodeNotFound},
	KindInfrastructure: {"infrastructure", http.StatusInternalServerError, CodeInfrastructure},
}

// HTTPStatus returns the status code a kind is answered with.
func (k Kind) HTTPStatus() int {
	if info, ok := kinds[k]; ok {
		return info.status
	}
	return http.StatusInternalServerError
}

// DefaultCode returns the code used when none was given.
func (k Kind) DefaultCode() string {
	return kinds[k].code
}

func (k Kind) String() string {
	if info, ok := kinds[k]; ok {
		return info.name
	}
	return "unknown"
}

// IsDomain reports whether k is the domain kind or one of its refinements.
func (k Kind) IsDomain() bool {
	return k == KindDomain || k == KindValidation || k == KindNotFound
}

// Error is the tagged error value raised by domain and infrastructure code.
type Error struct {
	Kind    Kind
	Code    string
	Message string
	// Source names the external system behind an infrastructure failure.
	Source string
	Cause  error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func newError(kind Kind, message, code string) *Error {
	if code == "" {
		code = kind.DefaultCode()
	}
	return &Error{Kind: kind, Code: code, Message: message}
}

// Domain reports a business rule violation.
func Domain(message, code string) *Error {
	return newError(KindDomain, message, code)
}

// Validation reports data that fails a business validation.
func Validation(message, code string) *Error {
	return newError(KindValidation, message, code)
}

// NotFound reports a missing resource. An empty message gets a generic one.
func NotFound(message, code string) *Error {
	if message == "" {
		message = "Recurso não encontrado"
	}
	return newError(KindNotFound, message, code)
}

// Infrastructure reports a failure talking to an external system.
func Infrastructure(message, source string, cause error) *Error {
	e := newError(KindInfrastructure, message, "")
	e.Source = source
	e.Cause = cause
	return e
}

// As extracts the first *Error in err's chain.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
