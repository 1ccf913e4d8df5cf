package errors

import (
	"strings"
	"unicode"
)

// MaxTitleLength bounds the label engraved on every strip.
const MaxTitleLength = 200

// ValidateTitle rejects titles that cannot be engraved: control characters
// and overly long strings. An empty title is valid and disables labels.
func ValidateTitle(title string) error {
	if len(title) > MaxTitleLength {
		return New(ErrCodeInvalidInput, "title too long (max %d characters)", MaxTitleLength)
	}
	for _, r := range title {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "title contains invalid control characters")
		}
	}
	return nil
}

// ValidatePitchList checks that the list is not empty and that every entry is
// a tape pitch (128 minus a MIDI key, so 1-128). Duplicates are allowed; the first occurrence wins.
func ValidatePitchList(pitches []int) error {
	if len(pitches) == 0 {
		return New(ErrCodeInvalidConfig, "pitch list cannot be empty")
	}
	for i, p := range pitches {
		if p < 1 || p > 128 {
			return New(ErrCodeInvalidConfig, "pitch %d at position %d out of range 1-128", p, i)
		}
	}
	return nil
}

// ValidateOutputPattern validates an output path pattern. The pattern may
// contain at most one '%' placeholder for the page number.
//
// Validation rules:
//   - No null bytes or control characters
//   - No more than one page placeholder
//   - No trailing path separator
func ValidateOutputPattern(pattern string) error {
	if pattern == "" {
		return nil
	}
	for _, r := range pattern {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "output path contains invalid control characters")
		}
	}
	if strings.Count(pattern, "%") > 1 {
		return New(ErrCodeInvalidPath, "output path may contain at most one %% placeholder")
	}
	if strings.HasSuffix(pattern, "/") || strings.HasSuffix(pattern, "\\") {
		return New(ErrCodeInvalidPath, "output path must name a file, not a directory")
	}
	return nil
}
