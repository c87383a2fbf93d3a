// Package faults classifies pipeline errors so batch drivers can decide
// whether a failure stops the whole run or only the current file.
package faults

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrConfiguration marks unusable paths, registries or settings. Fatal to a batch.
	ErrConfiguration = errors.New("configuration error")
	// ErrRowParse marks a file whose rows or document structure cannot be read.
	ErrRowParse = errors.New("row parse failure")
	// ErrVariationMismatch marks a speaker classified as a delivery-mode
	// variation that no stripping pattern matches.
	ErrVariationMismatch = errors.New("variation classification inconsistency")
	ErrValidation        = errors.New("validation error")
	ErrExternalTool      = errors.New("external tool error")
)

// Wrap builds an error message that includes stage context while tagging it with
// the provided marker for later classification. The marker should be one of the
// exported sentinel errors above.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		marker = ErrValidation
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// Recoverable reports whether a batch worker may continue with its next file
// after err. Configuration errors are never recoverable.
func Recoverable(err error) bool {
	return err != nil && !errors.Is(err, ErrConfiguration)
}

// Kind returns a short label for err suitable for the event_type log field.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrConfiguration):
		return "configuration"
	case errors.Is(err, ErrRowParse):
		return "row_parse"
	case errors.Is(err, ErrVariationMismatch):
		return "variation_mismatch"
	case errors.Is(err, ErrExternalTool):
		return "external_tool"
	case errors.Is(err, ErrValidation):
		return "validation"
	default:
		return "unknown"
	}
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "pipeline failure"
	}
	return strings.Join(parts, ": ")
}
