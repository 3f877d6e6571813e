package services

import (
	"errors"
	"testing"
)

func TestWrapTagsMarker(t *testing.T) {
	base := errors.New("exit status 1")
	err := Wrap(ErrExternalTool, "torrent", "create", "mktorrent failed", base)
	if !errors.Is(err, ErrExternalTool) {
		t.Fatalf("expected wrapped error to match ErrExternalTool, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped error to retain cause, got %v", err)
	}
}

func TestWrapWithoutCause(t *testing.T) {
	err := Wrap(ErrValidation, "release", "infer", "codec outside closed set", nil)
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if got := err.Error(); got != "validation error: release: infer: codec outside closed set" {
		t.Fatalf("unexpected message: %q", got)
	}
}

func TestWrapDefaultsMarker(t *testing.T) {
	err := Wrap(nil, "", "", "", nil)
	if !errors.Is(err, ErrExternalTool) {
		t.Fatalf("expected default marker, got %v", err)
	}
	if got := err.Error(); got != "external tool error: service failure" {
		t.Fatalf("unexpected message: %q", got)
	}
}
