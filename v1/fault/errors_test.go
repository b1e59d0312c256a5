package fault

import (
	"errors"
	"fmt"
	"testing"
)

func TestValidationf_WrapsSentinel(t *testing.T) {
	err := Validationf("limit must be >= 0, got %d", -3)

	if !errors.Is(err, ErrValidation) {
		t.Error("expected errors.Is(err, ErrValidation) to be true")
	}
	if !IsValidation(err) {
		t.Error("expected IsValidation to be true")
	}
	want := "searchstore: validation error: limit must be >= 0, got -3"
	if err.Error() != want {
		t.Errorf("expected %q, got %q", want, err.Error())
	}
}

func TestSerializationf_WrapsSentinel(t *testing.T) {
	err := Serializationf("unsupported filter value type %T", struct{}{})

	if !IsSerialization(err) {
		t.Error("expected IsSerialization to be true")
	}
	if IsValidation(err) {
		t.Error("expected IsValidation to be false")
	}
}

func TestCategories_AreDisjoint(t *testing.T) {
	errs := []error{ErrValidation, ErrSerialization, ErrGraphQL, ErrTransport}
	for i, a := range errs {
		for j, b := range errs {
			if (i == j) != errors.Is(a, b) {
				t.Errorf("errors.Is(%v, %v) = %v, want %v", a, b, errors.Is(a, b), i == j)
			}
		}
	}
}

func TestGraphQLError_JoinsMessages(t *testing.T) {
	err := &GraphQLError{
		Messages: []string{"unknown property title", "invalid operator"},
		Details: []GraphQLErrorDetail{
			{Message: "unknown property title"},
			{Message: "invalid operator"},
		},
	}

	want := "searchstore: graphql error: unknown property title; invalid operator"
	if err.Error() != want {
		t.Errorf("expected %q, got %q", want, err.Error())
	}
	if !IsGraphQL(err) {
		t.Error("expected IsGraphQL to be true")
	}
	if IsTransport(err) {
		t.Error("expected IsTransport to be false")
	}
}

func TestGraphQLError_ErrorsAs(t *testing.T) {
	var err error = fmt.Errorf("query failed: %w", &GraphQLError{Messages: []string{"boom"}})

	var gqlErr *GraphQLError
	if !errors.As(err, &gqlErr) {
		t.Fatal("expected errors.As to find *GraphQLError")
	}
	if len(gqlErr.Messages) != 1 || gqlErr.Messages[0] != "boom" {
		t.Errorf("unexpected messages: %v", gqlErr.Messages)
	}
	if !errors.Is(err, ErrGraphQL) {
		t.Error("expected wrapped error to match ErrGraphQL")
	}
}

func TestTransportError_WithStatus(t *testing.T) {
	err := &TransportError{StatusCode: 503, Err: errors.New("service unavailable")}

	want := "searchstore: transport error: status 503: service unavailable"
	if err.Error() != want {
		t.Errorf("expected %q, got %q", want, err.Error())
	}
	if !IsTransport(err) {
		t.Error("expected IsTransport to be true")
	}
}

func TestTransportError_WithoutStatus(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	err := &TransportError{Err: cause}

	want := "searchstore: transport error: dial tcp: connection refused"
	if err.Error() != want {
		t.Errorf("expected %q, got %q", want, err.Error())
	}

	var tErr *TransportError
	if !errors.As(err, &tErr) {
		t.Fatal("expected errors.As to find *TransportError")
	}
	if tErr.StatusCode != 0 {
		t.Errorf("expected status 0, got %d", tErr.StatusCode)
	}
	if !errors.Is(err, cause) {
		t.Error("expected the underlying cause to stay matchable")
	}
	if tErr.Err != cause {
		t.Error("expected cause to be preserved in Err field")
	}
}
