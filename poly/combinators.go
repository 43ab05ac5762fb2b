package poly

import "strings"

// OnFail tries p and, on a soft failure, tries q from the original input.
// Fatal failures of p are returned as they are.
func OnFail[T any](p, q Parser[T]) Parser[T] {
	return func(in string) Result[T] {
		r := p(in)
		if r.Soft() {
			return q(in)
		}
		return r
	}
}

// Commit makes every failure of p fatal.
func Commit[T any](p Parser[T]) Parser[T] {
	return func(in string) Result[T] {
		r := p(in)
		if r.Fail {
			r.Fatal = true
		}
		return r
	}
}

// AdjustErr rewrites the message of any failure of p with f.
func AdjustErr[T any](p Parser[T], f func(string) string) Parser[T] {
	return func(in string) Result[T] {
		r := p(in)
		if r.Fail {
			r.Msg = f(r.Msg)
		}
		return r
	}
}

// AdjustErrBad is AdjustErr that also makes the failure fatal.
func AdjustErrBad[T any](p Parser[T], f func(string) string) Parser[T] {
	return Commit(AdjustErr(p, f))
}

// Prefix returns a message adjuster that prepends s.
func Prefix(s string) func(string) string {
	return func(msg string) string { return s + msg }
}

// Suffix returns a message adjuster that appends s.
func Suffix(s string) func(string) string {
	return func(msg string) string { return msg + s }
}

// Many applies p until it fails softly. A fatal failure of p is returned.
func Many[T any](p Parser[T]) Parser[[]T] {
	return func(in string) Result[[]T] {
		var out []T
		for {
			r := p(in)
			if r.Fatal {
				return Forward[[]T](r)
			}
			// A parser that succeeds without consuming would loop forever.
			if r.Fail || r.Rest == in {
				return Success(out, in)
			}
			out = append(out, r.Value)
			in = r.Rest
		}
	}
}

// Many1 is Many requiring at least one success.
func Many1[T any](p Parser[T]) Parser[[]T] {
	return func(in string) Result[[]T] {
		r := p(in)
		if r.Fail {
			return Forward[[]T](r)
		}
		rs := Many(p)(r.Rest)
		if rs.Fail {
			return rs
		}
		return Success(append([]T{r.Value}, rs.Value...), rs.Rest)
	}
}

// Bracket parses p between open and close. Once p has been parsed a missing
// close is fatal.
func Bracket[O, C, T any](open Parser[O], close Parser[C], p Parser[T]) Parser[T] {
	return func(in string) Result[T] {
		ro := AdjustErr(open, Prefix("Missing opening bracket:\n\t"))(in)
		if ro.Fail {
			return Forward[T](ro)
		}
		rp := AdjustErr(p, Prefix("after first bracket in a group:\n\t"))(ro.Rest)
		if rp.Fail {
			return rp
		}
		rc := AdjustErrBad(close, Prefix("When looking for closing bracket:\n\t"))(rp.Rest)
		if rc.Fail {
			return Forward[T](rc)
		}
		return Success(rp.Value, rc.Rest)
	}
}

// BracketSep parses zero or more p separated by sep between open and close.
func BracketSep[O, S, C, T any](open Parser[O], sep Parser[S], close Parser[C], p Parser[T]) Parser[[]T] {
	empty := Then(open, Then(close, Return([]T{})))
	full := func(in string) Result[[]T] {
		ro := AdjustErr(open, Prefix("Missing opening bracket:\n\t"))(in)
		if ro.Fail {
			return Forward[[]T](ro)
		}
		rx := AdjustErr(p, Prefix("After first bracket in a group:\n\t"))(ro.Rest)
		if rx.Fail {
			return Forward[[]T](rx)
		}
		rxs := Many(Then(sep, p))(rx.Rest)
		if rxs.Fail {
			return rxs
		}
		rc := AdjustErrBad(close, Prefix("When looking for closing bracket:\n\t"))(rxs.Rest)
		if rc.Fail {
			return Forward[[]T](rc)
		}
		return Success(append([]T{rx.Value}, rxs.Value...), rc.Rest)
	}
	return OnFail(empty, full)
}

// OneOf tries each parser in order and returns the first that does not fail
// softly.
func OneOf[T any](ps ...Parser[T]) Parser[T] {
	return func(in string) Result[T] {
		for _, p := range ps {
			if r := p(in); !r.Soft() {
				return r
			}
		}
		return Failure[T](in, "failed to parse any of the possible choices")
	}
}

// Named pairs a parser with the name used to report its failure.
type Named[T any] struct {
	Name   string
	Parser Parser[T]
}

// OneOfNamed is OneOf that reports every alternative's failure message when
// all of them fail softly.
func OneOfNamed[T any](alts ...Named[T]) Parser[T] {
	return func(in string) Result[T] {
		var b strings.Builder
		for _, alt := range alts {
			r := alt.Parser(in)
			if !r.Soft() {
				return r
			}
			b.WriteString(alt.Name + ":\n" + Indent(2, r.Msg) + "\n")
		}
		return Failure[T](in, "failed to parse any of the possible choices:\n"+Indent(2, b.String()))
	}
}
