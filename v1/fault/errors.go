package fault

import (
	"errors"
	"fmt"
	"strings"
)

// The four failure categories of the search store
var (
	// ErrValidation is returned when a query or filter is structurally
	// invalid and was rejected before rendering. Nothing was sent.
	ErrValidation = errors.New("searchstore: validation error")

	// ErrSerialization is returned when a value cannot be represented in the
	// query language, or when a response body does not match the expected
	// shape.
	ErrSerialization = errors.New("searchstore: serialization error")

	// ErrGraphQL is returned when the service answered with a non-empty
	// errors array. The request reached the service and was rejected there.
	ErrGraphQL = errors.New("searchstore: graphql error")

	// ErrTransport is returned when a request never produced a usable
	// response (connection failure, timeout, or a non-2xx status).
	ErrTransport = errors.New("searchstore: transport error")
)

// Validationf builds a validation error with a formatted detail message.
func Validationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// Serializationf builds a serialization error with a formatted detail message.
func Serializationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrSerialization, fmt.Sprintf(format, args...))
}

// IsValidation checks if the error is a validation error.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsSerialization checks if the error is a serialization error.
func IsSerialization(err error) bool {
	return errors.Is(err, ErrSerialization)
}

// IsGraphQL checks if the error is a service-reported GraphQL error.
func IsGraphQL(err error) bool {
	return errors.Is(err, ErrGraphQL)
}

// IsTransport checks if the error is a transport error.
func IsTransport(err error) bool {
	return errors.Is(err, ErrTransport)
}

// GraphQLErrorLocation points at the position in the query document a
// service-reported error refers to.
type GraphQLErrorLocation struct {
	Line   int64 `json:"line"`
	Column int64 `json:"column"`
}

// GraphQLErrorDetail is one entry of the service's errors array, kept as
// reported. Path and Locations are optional and service-dependent.
type GraphQLErrorDetail struct {
	Message   string                 `json:"message"`
	Path      []any                  `json:"path,omitempty"`
	Locations []GraphQLErrorLocation `json:"locations,omitempty"`
}

// GraphQLError is returned when a response carries a non-empty errors array.
// A non-empty errors array is authoritative: data in the same response is
// discarded, never partially extracted.
type GraphQLError struct {
	// Messages holds the message of every reported error, in response order.
	Messages []string
	// Details holds the raw error entries as reported by the service.
	Details []GraphQLErrorDetail
}

func (e *GraphQLError) Error() string {
	return fmt.Sprintf("searchstore: graphql error: %s", strings.Join(e.Messages, "; "))
}

func (e *GraphQLError) Unwrap() error {
	return ErrGraphQL
}

// TransportError is returned when a request fails before producing a GraphQL
// response. StatusCode is zero when no HTTP response was received at all.
// The underlying cause stays reachable through errors.Is and errors.As.
type TransportError struct {
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("searchstore: transport error: status %d: %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("searchstore: transport error: %v", e.Err)
}

func (e *TransportError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrTransport}
	}
	return []error{ErrTransport, e.Err}
}
