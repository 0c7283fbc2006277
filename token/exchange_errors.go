package token

import (
	"fmt"
)

// ExchangeError reports a failed call to the token endpoint. Status is the
// HTTP status of the provider response, or 0 when no response was received.
// Body holds the raw provider error text for operators; it is never shown to
// customers.
type ExchangeError struct {
	Op     string
	Status int
	Body   string
	Err    error
}

func (e *ExchangeError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("token %s failed: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("token %s failed: status %d: %s", e.Op, e.Status, e.Body)
}

func (e *ExchangeError) Unwrap() error {
	return e.Err
}
