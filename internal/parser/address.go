package parser

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"it/pkg/lineop"
)

var (
	// ErrMalformedRange is returned for --clear values that are not START or START,END.
	ErrMalformedRange = errors.New("malformed clear range")

	// ErrMalformedLine is returned for --line values that are not a positive integer.
	ErrMalformedLine = errors.New("malformed line number")
)

// ParseClearRange parses "START" or "START,END". Both numbers must be greater than
// zero and START must not exceed END.
func ParseClearRange(s string) (lineop.ClearRange, error) {
	parts := strings.Split(s, ",")
	switch len(parts) {
	case 1:
		start, err := parseAddress(parts[0])
		if err != nil {
			return lineop.ClearRange{}, fmt.Errorf("%w: invalid start line number %q", ErrMalformedRange, parts[0])
		}
		if start == 0 {
			return lineop.ClearRange{}, fmt.Errorf("%w: line numbers must be greater than 0", ErrMalformedRange)
		}
		return lineop.ClearRange{Start: start}, nil
	case 2:
		start, err := parseAddress(parts[0])
		if err != nil {
			return lineop.ClearRange{}, fmt.Errorf("%w: invalid start line number %q", ErrMalformedRange, parts[0])
		}
		end, err := parseAddress(parts[1])
		if err != nil {
			return lineop.ClearRange{}, fmt.Errorf("%w: invalid end line number %q", ErrMalformedRange, parts[1])
		}
		if start == 0 || end == 0 {
			return lineop.ClearRange{}, fmt.Errorf("%w: line numbers must be greater than 0", ErrMalformedRange)
		}
		if start > end {
			return lineop.ClearRange{}, fmt.Errorf("%w: start line must be less than or equal to end line", ErrMalformedRange)
		}
		return lineop.ClearRange{Start: start, End: &end}, nil
	default:
		return lineop.ClearRange{}, fmt.Errorf("%w: expected format START or START,END, got %q", ErrMalformedRange, s)
	}
}

// ParseLine parses a --line value.
func ParseLine(s string) (lineop.Address, error) {
	a, err := parseAddress(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrMalformedLine, s)
	}
	if a == 0 {
		return 0, fmt.Errorf("%w: line numbers must be greater than 0", ErrMalformedLine)
	}
	return a, nil
}

// parseAddress accepts unsigned decimal numbers that fit an int. Whether the
// address lies inside the file is checked later, against the loaded content.
func parseAddress(s string) (lineop.Address, error) {
	n, err := strconv.ParseUint(s, 10, strconv.IntSize-1)
	if err != nil {
		return 0, err
	}
	return lineop.Address(n), nil
}
