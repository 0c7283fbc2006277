package customerapi

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrUnauthenticated marks a rejection of the access token. Callers holding a
// refresh token may refresh and retry once.
var ErrUnauthenticated = errors.New("customer account api: unauthenticated")

// TransportError is a non-2xx response from the Customer Account API.
type TransportError struct {
	Status int
	Body   string
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("customer account api: status %d: %s", e.Status, e.Body)
}

func (e *TransportError) Is(target error) bool {
	return target == ErrUnauthenticated && (e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden)
}

// GraphQLError carries the first entry of a response's top-level errors array.
type GraphQLError struct {
	Message string
	Code    string // extensions.code, if the API sent one
	Count   int    // total number of reported errors
}

func (e *GraphQLError) Error() string {
	return fmt.Sprintf("graphql error: %s", e.Message)
}

var unauthenticatedCodes = map[string]struct{}{
	"UNAUTHENTICATED": {},
	"UNAUTHORIZED":    {},
	"ACCESS_DENIED":   {},
}

func (e *GraphQLError) Is(target error) bool {
	if target != ErrUnauthenticated {
		return false
	}
	_, ok := unauthenticatedCodes[strings.ToUpper(e.Code)]
	return ok
}

// UserErrors are validation failures reported by a mutation's userErrors field.
type UserErrors struct {
	Messages []string
}

func (e *UserErrors) Error() string {
	return "user errors: " + strings.Join(e.Messages, "; ")
}

// IsUnauthenticated reports whether err is an access token rejection.
func IsUnauthenticated(err error) bool {
	return errors.Is(err, ErrUnauthenticated)
}
