package client

import (
	"errors"
	"fmt"
	"testing"
)

func TestAsFailure_PreservesClassifiedFailures(t *testing.T) {
	original := newFailure(FailureRejected, "Email already exists")
	fail := AsFailure(fmt.Errorf("submit: %w", original))
	if fail.Reason != FailureRejected || fail.Message != "Email already exists" {
		t.Fatalf("expected wrapped failure preserved, got %v", fail)
	}
}

func TestAsFailure_UnclassifiedErrorIsNetwork(t *testing.T) {
	fail := AsFailure(errors.New("dial tcp: connection refused"))
	if fail.Reason != FailureNetwork {
		t.Fatalf("expected network reason, got %v", fail)
	}
}
