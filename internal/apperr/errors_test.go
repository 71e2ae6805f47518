package apperr

import (
	"fmt"
	"testing"
)

func TestPredicatesMatchThroughWrapping(t *testing.T) {
	notFound := fmt.Errorf("find film: %w", NotFound("film", 7))
	if !IsNotFound(notFound) {
		t.Fatalf("expected IsNotFound for %v", notFound)
	}
	if IsValidation(notFound) || IsInvalidReference(notFound) {
		t.Fatalf("not found error matched the wrong predicate")
	}

	validation := Validation("duration must be positive")
	if !IsValidation(validation) {
		t.Fatalf("expected IsValidation for %v", validation)
	}

	reference := InvalidReference("genre", 99)
	if !IsInvalidReference(reference) {
		t.Fatalf("expected IsInvalidReference for %v", reference)
	}
	if IsNotFound(reference) {
		t.Fatalf("invalid reference must not read as not found")
	}
}

func TestMessagesNameEntityAndID(t *testing.T) {
	err := NotFound("user", 42)
	if got := err.Error(); got != "user with id = 42 not found" {
		t.Fatalf("unexpected message %q", got)
	}
}
