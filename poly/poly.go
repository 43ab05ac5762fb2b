// Package poly is a small backtracking parser engine over strings.
//
// A Parser consumes a prefix of its input and returns a Result carrying
// either the value and the unconsumed remainder, or a failure message. A
// failure is soft when a sibling alternative may still be tried and fatal
// when the input was recognised but is malformed. OnFail only retries on
// soft failures; Commit and AdjustErrBad turn soft failures into fatal ones.
package poly

import (
	"strings"
	"unicode/utf8"
)

// Result is the outcome of running a Parser.
type Result[T any] struct {
	Value T
	Rest  string // remainder on success, input at the failure point otherwise
	Msg   string
	Fail  bool
	Fatal bool
}

// Failed reports whether the parser failed, softly or fatally.
func (r Result[T]) Failed() bool { return r.Fail }

// Soft reports whether the result is a failure that alternatives may recover.
func (r Result[T]) Soft() bool { return r.Fail && !r.Fatal }

// Parser consumes a prefix of its input.
type Parser[T any] func(in string) Result[T]

// Run applies p to in.
func (p Parser[T]) Run(in string) Result[T] { return p(in) }

// Success builds a successful result.
func Success[T any](v T, rest string) Result[T] {
	return Result[T]{Value: v, Rest: rest}
}

// Failure builds a soft failure at the given input position.
func Failure[T any](rest, msg string) Result[T] {
	return Result[T]{Rest: rest, Msg: msg, Fail: true}
}

// Fatal builds a fatal failure at the given input position.
func Fatal[T any](rest, msg string) Result[T] {
	return Result[T]{Rest: rest, Msg: msg, Fail: true, Fatal: true}
}

// Forward re-types a failed result so it can be returned from a parser of a
// different type.
func Forward[T, U any](r Result[U]) Result[T] {
	return Result[T]{Rest: r.Rest, Msg: r.Msg, Fail: true, Fatal: r.Fatal}
}

// Return succeeds with v without consuming input.
func Return[T any](v T) Parser[T] {
	return func(in string) Result[T] { return Success(v, in) }
}

// Fail fails softly with msg.
func Fail[T any](msg string) Parser[T] {
	return func(in string) Result[T] { return Failure[T](in, msg) }
}

// FailBad fails fatally with msg.
func FailBad[T any](msg string) Parser[T] {
	return func(in string) Result[T] { return Fatal[T](in, msg) }
}

// Next consumes one character.
func Next() Parser[rune] {
	return func(in string) Result[rune] {
		if in == "" {
			return Failure[rune](in, "ran out of input (EOF)")
		}
		r, size := utf8.DecodeRuneInString(in)
		return Success(r, in[size:])
	}
}

// Eof succeeds only at the end of input.
func Eof() Parser[struct{}] {
	return func(in string) Result[struct{}] {
		if in != "" {
			return Failure[struct{}](in, "expected end of input (EOF)")
		}
		return Success(struct{}{}, in)
	}
}

// Satisfy consumes one character if it satisfies pred.
func Satisfy(pred func(rune) bool) Parser[rune] {
	return func(in string) Result[rune] {
		if in == "" {
			return Failure[rune](in, "ran out of input (EOF)")
		}
		r, size := utf8.DecodeRuneInString(in)
		if !pred(r) {
			return Failure[rune](in, "Parse.satisfy: failed")
		}
		return Success(r, in[size:])
	}
}

// ManySatisfy consumes the longest prefix whose characters satisfy pred.
// It never fails.
func ManySatisfy(pred func(rune) bool) Parser[string] {
	return func(in string) Result[string] {
		n := spanOf(in, pred)
		return Success(in[:n], in[n:])
	}
}

// Many1Satisfy is ManySatisfy requiring at least one character.
func Many1Satisfy(pred func(rune) bool) Parser[string] {
	return func(in string) Result[string] {
		n := spanOf(in, pred)
		if n == 0 {
			return Failure[string](in, "Parse.many1Satisfy: failed")
		}
		return Success(in[:n], in[n:])
	}
}

func spanOf(in string, pred func(rune) bool) int {
	for i, r := range in {
		if !pred(r) {
			return i
		}
	}
	return len(in)
}

// Reparse pushes s back onto the front of the input.
func Reparse(s string) Parser[struct{}] {
	return func(in string) Result[struct{}] { return Success(struct{}{}, s+in) }
}

// Lazy defers building a parser until it runs, so recursive grammars can
// refer to themselves.
func Lazy[T any](mk func() Parser[T]) Parser[T] {
	return func(in string) Result[T] { return mk()(in) }
}

// Bind runs p and feeds its value to f.
func Bind[A, B any](p Parser[A], f func(A) Parser[B]) Parser[B] {
	return func(in string) Result[B] {
		r := p(in)
		if r.Fail {
			return Forward[B](r)
		}
		return f(r.Value)(r.Rest)
	}
}

// Map transforms the value of p.
func Map[A, B any](p Parser[A], f func(A) B) Parser[B] {
	return func(in string) Result[B] {
		r := p(in)
		if r.Fail {
			return Forward[B](r)
		}
		return Success(f(r.Value), r.Rest)
	}
}

// Then runs p, discards its value and runs q.
func Then[A, B any](p Parser[A], q Parser[B]) Parser[B] {
	return func(in string) Result[B] {
		r := p(in)
		if r.Fail {
			return Forward[B](r)
		}
		return q(r.Rest)
	}
}

// Discard runs p then q and keeps the value of p.
func Discard[A, B any](p Parser[A], q Parser[B]) Parser[A] {
	return func(in string) Result[A] {
		r := p(in)
		if r.Fail {
			return r
		}
		r2 := q(r.Rest)
		if r2.Fail {
			return Forward[A](r2)
		}
		return Success(r.Value, r2.Rest)
	}
}

// Indent prefixes every line of s with n spaces.
func Indent(n int, s string) string {
	pad := strings.Repeat(" ", n)
	lines := strings.Split(strings.TrimSuffix(s, "\n"), "\n")
	for i, l := range lines {
		lines[i] = pad + l
	}
	return strings.Join(lines, "\n")
}
