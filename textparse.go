// Package textparse reads typed values back from their canonical textual
// rendering.
//
// Every readable type supplies a Reader with three operations: Parse reads
// a value at the loosest precedence, ParsePrec reads it inside a context of
// the given binding strength and ParseList reads a sequence of values.
// Composite readers are assembled from the readers of their components:
//
//	r := textparse.MaybeOf(textparse.EitherOf(textparse.Int, textparse.String))
//	v, err := textparse.ReadAll(r, `Just (Right "hi")`)
//
// Reading is the inverse of the matching Shower: for every value x,
// ReadAll(r, Show(s, x)) yields x.
package textparse

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// Span represents a byte range in the source.
type Span struct {
	Start int
	End   int
}

// ParseError represents a failed read with location information.
type ParseError struct {
	Message string
	Fatal   bool
	Span    Span
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at %d-%d: %s", e.Span.Start, e.Span.End, e.Message)
}

// IsFatal reports whether err is a ParseError raised after the input had
// committed to a reading.
func IsFatal(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe) && pe.Fatal
}

// IsIncomplete reports whether err is a ParseError raised because the input
// ended early, so that more input could still make it readable.
func IsIncomplete(err error, input string) bool {
	var pe *ParseError
	return errors.As(err, &pe) && pe.Span.Start >= len(strings.TrimRightFunc(input, unicode.IsSpace))
}

// Read reads a value from the front of input and returns it together with
// the unread remainder.
func Read[T any](r Reader[T], input string) (T, string, error) {
	res := r.Parse()(input)
	if res.Failed() {
		var zero T
		return zero, input, newParseError(input, res.Rest, res.Msg, res.Fatal)
	}
	return res.Value, res.Rest, nil
}

// ReadAll reads a value that must span the whole input, apart from
// surrounding whitespace.
func ReadAll[T any](r Reader[T], input string) (T, error) {
	v, rest, err := Read(r, input)
	if err != nil {
		return v, err
	}
	if strings.TrimSpace(rest) != "" {
		var zero T
		return zero, newParseError(input, rest, "unexpected trailing input", true)
	}
	return v, nil
}

func newParseError(input, rest, msg string, fatal bool) *ParseError {
	if len(rest) > len(input) || !strings.HasSuffix(input, rest) {
		// Pushed-back input no longer lines up with the source.
		rest = ""
	}
	trimmed := strings.TrimLeftFunc(rest, unicode.IsSpace)
	start := len(input) - len(trimmed)
	end := start
	if w := NextWord(trimmed); !w.Failed() {
		end += len(w.Value)
	} else if trimmed != "" {
		end++
	}
	return &ParseError{Message: msg, Fatal: fatal, Span: Span{start, end}}
}
