package domain_test

import (
	"testing"

	"github.com/vladislavdragonenkov/reseller-orders/internal/domain"
)

func TestResult_Ok(t *testing.T) {
	result := domain.Ok(42)

	if !result.IsSuccess() {
		t.Fatal("expected success")
	}
	if result.Value() != 42 {
		t.Fatalf("expected value 42, got %d", result.Value())
	}
	if result.ErrorMessage() != "" {
		t.Fatalf("expected empty error message, got %q", result.ErrorMessage())
	}
}

func TestResult_Fail(t *testing.T) {
	result := domain.Fail[int]("Status is required")

	if result.IsSuccess() {
		t.Fatal("expected failure")
	}
	if result.ErrorMessage() != "Status is required" {
		t.Fatalf("unexpected message: %q", result.ErrorMessage())
	}
	if result.Value() != 0 {
		t.Fatalf("expected zero value on failure, got %d", result.Value())
	}
}
