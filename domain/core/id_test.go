package core

import (
	"fmt"
	"testing"
)

// TestNewIDUniqueness tests that NewID generates unique identifiers
func TestNewIDUniqueness(t *testing.T) {
	const numIDs = 10000

	ids := make(map[ID]bool, numIDs)
	for i := 0; i < numIDs; i++ {
		id := NewID()
		if id.IsEmpty() {
			t.Errorf("Generated empty ID at iteration %d", i)
		}
		if ids[id] {
			t.Errorf("Generated duplicate ID: %s", id)
		}
		ids[id] = true
	}

	if len(ids) != numIDs {
		t.Errorf("Expected %d unique IDs, got %d", numIDs, len(ids))
	}
}

// TestIDIsEmpty tests ID emptiness check
func TestIDIsEmpty(t *testing.T) {
	if !ID("").IsEmpty() {
		t.Error("Expected empty ID to be empty")
	}
	if !ID("   ").IsEmpty() {
		t.Error("Expected blank ID to be empty")
	}
	if ID("not-empty").IsEmpty() {
		t.Error("Expected non-empty ID to not be empty")
	}
}

func TestErrorClassification(t *testing.T) {
	err := NewColumnNotFoundError("price")
	if !IsNotFoundError(err) {
		t.Errorf("expected not-found error, got %v", err)
	}
	if IsValidationError(err) {
		t.Errorf("column lookup failure should not be a validation error")
	}

	wrapped := fmt.Errorf("anova: %w", NewSampleCountError("anova", ">= 2", 1))
	if !IsValidationError(wrapped) {
		t.Errorf("expected validation error, got %v", wrapped)
	}
	if !IsValidationError(ErrUnequalLengths) {
		t.Errorf("unequal lengths should classify as validation error")
	}
}
