package http

import (
	"errors"
	"testing"
)

func TestReportError_NilContext(t *testing.T) {
	if err := reportError(nil, errors.New("boom")); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
}
