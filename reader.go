package textparse

import "github.com/henrylaxen/polyparse/poly"

// Reader is the capability set of a readable type.
//
// Parse reads a value at the loosest precedence, ParsePrec reads a value
// nested in a context of the given binding strength, adding parentheses
// where the value's own syntax binds more weakly, and ParseList reads a
// sequence of values.
type Reader[T any] interface {
	Parse() poly.Parser[T]
	ParsePrec(prec int) poly.Parser[T]
	ParseList() poly.Parser[[]T]
}

// Instance builds a Reader from the operations a type defines itself and
// fills in the rest:
//
//   - Parse defaults to ParsePrec(0).
//   - ParsePrec defaults to Parse wrapped in optional parentheses.
//   - ParseList defaults to DefaultParseList.
//
// At least one of ParseFn and ParsePrecFn must be set.
type Instance[T any] struct {
	ParseFn     func() poly.Parser[T]
	ParsePrecFn func(prec int) poly.Parser[T]
	ParseListFn func() poly.Parser[[]T]
}

func (in Instance[T]) Parse() poly.Parser[T] {
	switch {
	case in.ParseFn != nil:
		return in.ParseFn()
	case in.ParsePrecFn != nil:
		return in.ParsePrecFn(0)
	}
	panic("textparse: Instance defines neither ParseFn nor ParsePrecFn")
}

func (in Instance[T]) ParsePrec(prec int) poly.Parser[T] {
	if in.ParsePrecFn != nil {
		return in.ParsePrecFn(prec)
	}
	return OptionalParens(in.Parse())
}

func (in Instance[T]) ParseList() poly.Parser[[]T] {
	if in.ParseListFn != nil {
		return in.ParseListFn()
	}
	return DefaultParseList[T](in)
}

// DefaultParseList reads [], [ ] or a bracketed, comma separated sequence
// of elements read with r.Parse.
func DefaultParseList[T any](r Reader[T]) poly.Parser[[]T] {
	empty := poly.Return([]T{})
	elem := poly.Lazy(r.Parse)
	return poly.AdjustErr(
		poly.OnFail(
			poly.Then(IsWord("[]"), empty),
			poly.OnFail(
				poly.Then(IsWord("["), poly.Then(IsWord("]"), empty)),
				poly.BracketSep(IsWord("["), IsWord(","), IsWord("]"), elem),
			),
		),
		poly.Prefix("Expected a list, but\n"),
	)
}

// Erase turns a Reader[T] into a Reader[any] whose values are the T values
// read by r. Each operation keeps r's own behaviour, including a
// specialised ParseList.
func Erase[T any](r Reader[T]) Reader[any] {
	return Instance[any]{
		ParseFn: func() poly.Parser[any] {
			return poly.Map(r.Parse(), toAny[T])
		},
		ParsePrecFn: func(prec int) poly.Parser[any] {
			return poly.Map(r.ParsePrec(prec), toAny[T])
		},
		ParseListFn: func() poly.Parser[[]any] {
			return poly.Map(r.ParseList(), func(vs []T) []any {
				out := make([]any, len(vs))
				for i, v := range vs {
					out[i] = v
				}
				return out
			})
		},
	}
}

func toAny[T any](v T) any { return v }
