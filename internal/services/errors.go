package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrDetection marks failures to infer a required release attribute.
	ErrDetection = errors.New("detection error")
	// ErrValidation marks attributes outside their closed set or malformed numeric input.
	ErrValidation = errors.New("validation error")
	// ErrToolMissing marks a required external tool absent from the execution path.
	ErrToolMissing = errors.New("tool missing")
	// ErrExternalTool marks an external tool that ran but exited non-zero.
	ErrExternalTool = errors.New("external tool error")
	// ErrUpload marks a malformed or unsuccessful gallery API response.
	ErrUpload = errors.New("upload error")
	// ErrSubmission marks a non-200 response from the tracker upload endpoint.
	ErrSubmission = errors.New("submission error")
	// ErrCorruptForm marks a persisted upload form that could not be read back.
	ErrCorruptForm = errors.New("corrupt form")
)

// Wrap builds an error message that includes component context while tagging it
// with the provided marker for later classification. The marker should be one
// of the exported sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrExternalTool
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
