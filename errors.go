package colorlab

import (
	"errors"
	"strconv"
)

// ErrInvalidFormat is matched by every *InvalidFormatError via errors.Is.
var ErrInvalidFormat = errors.New("colorlab: invalid color format")

// InvalidFormatError is returned when a hex color string is not of the form
// "#rrggbbaa" (leading '#' optional, hex digits in either case).
type InvalidFormatError struct {
	// Input is the rejected string.
	Input string
	// Reason says which part of the shape did not match.
	Reason string
}

func (e *InvalidFormatError) Error() string {
	return "colorlab: invalid hex color " + strconv.Quote(e.Input) + ": " + e.Reason
}

// Unwrap returns ErrInvalidFormat.
func (e *InvalidFormatError) Unwrap() error {
	return ErrInvalidFormat
}

// UnknownFormatError is returned by ParseFormat for names other than
// "rgb", "cmyk" and "hsl".
type UnknownFormatError struct {
	Name string
}

func (e *UnknownFormatError) Error() string {
	return "colorlab: unknown color format " + strconv.Quote(e.Name)
}
