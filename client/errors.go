package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/pkg/errors"
)

// Kind identifies which controller failure a ControllerError represents.
type Kind int

const (
	KindUnmappedServerError Kind = iota
	KindBadRequest
	KindInvalidCredentials
	KindResourceNotFound
	KindUnprocessableEntity
	KindInternalServerError
)

func (k Kind) String() string {
	switch k {
	case KindBadRequest:
		return "bad request"
	case KindInvalidCredentials:
		return "invalid credentials"
	case KindResourceNotFound:
		return "resource not found"
	case KindUnprocessableEntity:
		return "unprocessable entity"
	case KindInternalServerError:
		return "internal server error"
	default:
		return "unmapped server error"
	}
}

// ControllerError is returned for any response with a status code of 400 or above.
// Payload holds the decoded response body: a JSON value when the body parses, the raw
// text when it does not, and nil when it was empty.
type ControllerError struct {
	Kind    Kind
	Status  int
	Payload interface{}
}

var (
	ErrBadRequest          = &ControllerError{Kind: KindBadRequest}
	ErrInvalidCredentials  = &ControllerError{Kind: KindInvalidCredentials}
	ErrResourceNotFound    = &ControllerError{Kind: KindResourceNotFound}
	ErrUnprocessableEntity = &ControllerError{Kind: KindUnprocessableEntity}
	ErrInternalServerError = &ControllerError{Kind: KindInternalServerError}
	ErrUnmappedServerError = &ControllerError{Kind: KindUnmappedServerError}
)

// Error prints the status followed by the payload as compact JSON, with markup left unescaped.
func (e *ControllerError) Error() string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(e.Payload); err != nil {
		return fmt.Sprintf("%d null", e.Status)
	}
	return fmt.Sprintf("%d %s", e.Status, bytes.TrimRight(buf.Bytes(), "\n"))
}

// Is reports whether target is a ControllerError of the same kind, so callers can write
// errors.Is(err, client.ErrResourceNotFound).
func (e *ControllerError) Is(target error) bool {
	t, ok := target.(*ControllerError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// kindForStatus maps a response status to an error kind. Note that the controller uses
// 403 for malformed requests.
func kindForStatus(status int) Kind {
	switch status {
	case http.StatusForbidden:
		return KindBadRequest
	case http.StatusUnauthorized:
		return KindInvalidCredentials
	case http.StatusNotFound:
		return KindResourceNotFound
	case http.StatusUnprocessableEntity:
		return KindUnprocessableEntity
	case http.StatusInternalServerError:
		return KindInternalServerError
	default:
		return KindUnmappedServerError
	}
}

func newControllerError(status int, payload interface{}) *ControllerError {
	return &ControllerError{
		Kind:    kindForStatus(status),
		Status:  status,
		Payload: payload,
	}
}

// TransportError is returned when a request never produced a response.
type TransportError struct {
	Method string
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error: %s %s: %v", e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

var (
	// ErrNoContent is returned when a typed read gets an empty or null response body.
	ErrNoContent = errors.New("no content")

	ErrInvalidColor        = errors.New("invalid color")
	ErrNoAlternativeEffect = errors.New("no alternative effect to select")
	ErrReservedEffect      = errors.New("effect name is reserved")
)

// ValidationError is returned when input is rejected before anything is sent to the
// controller.
type ValidationError struct {
	Field string
	Value interface{}
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %v: %v", e.Field, e.Value, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}
