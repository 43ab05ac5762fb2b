package textparse

import "github.com/henrylaxen/polyparse/poly"

// Maybe holds an optional value.
type Maybe[T any] struct {
	Value T
	Valid bool
}

// Just wraps a present value.
func Just[T any](v T) Maybe[T] { return Maybe[T]{Value: v, Valid: true} }

// Nothing is the absent value.
func Nothing[T any]() Maybe[T] { return Maybe[T]{} }

// Get returns the value and whether it is present.
func (m Maybe[T]) Get() (T, bool) { return m.Value, m.Valid }

// Either holds a value of one of two types.
type Either[L, R any] struct {
	Left    L
	Right   R
	IsRight bool
}

// Left builds an Either holding a left value.
func Left[L, R any](v L) Either[L, R] { return Either[L, R]{Left: v} }

// Right builds an Either holding a right value.
func Right[L, R any](v R) Either[L, R] { return Either[L, R]{Right: v, IsRight: true} }

// Pair is a 2-tuple.
type Pair[A, B any] struct {
	First  A
	Second B
}

// Triple is a 3-tuple.
type Triple[A, B, C any] struct {
	First  A
	Second B
	Third  C
}

// argument reads a constructor argument, which binds tighter than any
// operator.
func argument[T any](r Reader[T]) poly.Parser[T] {
	return poly.Lazy(func() poly.Parser[T] { return r.ParsePrec(appPrec + 1) })
}

// MaybeOf reads Nothing or Just followed by a value read with r.
func MaybeOf[T any](r Reader[T]) Reader[Maybe[T]] {
	return Instance[Maybe[T]]{ParsePrecFn: func(prec int) poly.Parser[Maybe[T]] {
		nothing := OptionalParens(poly.Then(IsWord("Nothing"), poly.Return(Nothing[T]())))
		just := Parens(needsParens(prec), poly.Then(IsWord("Just"),
			poly.AdjustErrBad(poly.Map(argument(r), Just[T]), poly.Prefix("but within Just, "))))
		return poly.AdjustErr(poly.OnFail(nothing, just), func(msg string) string {
			return "expected a Maybe (Just or Nothing)\n" + poly.Indent(2, msg)
		})
	}}
}

// EitherOf reads Left or Right followed by a value read with l or r.
func EitherOf[L, R any](l Reader[L], r Reader[R]) Reader[Either[L, R]] {
	ctors := Constructors(
		Constructor[Either[L, R]]{Tag: "Left", Parser: poly.Map(argument(l), Left[L, R])},
		Constructor[Either[L, R]]{Tag: "Right", Parser: poly.Map(argument(r), Right[L, R])},
	)
	return Instance[Either[L, R]]{ParsePrecFn: func(prec int) poly.Parser[Either[L, R]] {
		return Parens(needsParens(prec), ctors)
	}}
}

func inTuple[T any](p poly.Parser[T], context string) poly.Parser[T] {
	return poly.AdjustErr(p, poly.Prefix(context+"\n"))
}

// PairOf reads (a,b).
func PairOf[A, B any](a Reader[A], b Reader[B]) Reader[Pair[A, B]] {
	return Instance[Pair[A, B]]{ParseFn: func() poly.Parser[Pair[A, B]] {
		var (
			open   = inTuple(IsWord("("), "Opening a 2-tuple")
			first  = inTuple(poly.Lazy(a.Parse), "In 1st item of a 2-tuple")
			sep    = inTuple(IsWord(","), "Separating a 2-tuple")
			second = inTuple(poly.Lazy(b.Parse), "In 2nd item of a 2-tuple")
			closer = inTuple(IsWord(")"), "Closing a 2-tuple")
		)
		return func(in string) poly.Result[Pair[A, B]] {
			var p Pair[A, B]
			r0 := open(in)
			if r0.Failed() {
				return poly.Forward[Pair[A, B]](r0)
			}
			r1 := first(r0.Rest)
			if r1.Failed() {
				return poly.Forward[Pair[A, B]](r1)
			}
			p.First = r1.Value
			r2 := sep(r1.Rest)
			if r2.Failed() {
				return poly.Forward[Pair[A, B]](r2)
			}
			r3 := second(r2.Rest)
			if r3.Failed() {
				return poly.Forward[Pair[A, B]](r3)
			}
			p.Second = r3.Value
			r4 := closer(r3.Rest)
			if r4.Failed() {
				return poly.Forward[Pair[A, B]](r4)
			}
			return poly.Success(p, r4.Rest)
		}
	}}
}

// TripleOf reads (a,b,c).
func TripleOf[A, B, C any](a Reader[A], b Reader[B], c Reader[C]) Reader[Triple[A, B, C]] {
	return Instance[Triple[A, B, C]]{ParseFn: func() poly.Parser[Triple[A, B, C]] {
		var (
			open   = inTuple(IsWord("("), "Opening a 3-tuple")
			first  = inTuple(poly.Lazy(a.Parse), "In 1st item of a 3-tuple")
			sep1   = inTuple(IsWord(","), "Separating(1) a 3-tuple")
			second = inTuple(poly.Lazy(b.Parse), "In 2nd item of a 3-tuple")
			sep2   = inTuple(IsWord(","), "Separating(2) a 3-tuple")
			third  = inTuple(poly.Lazy(c.Parse), "In 3rd item of a 3-tuple")
			closer = inTuple(IsWord(")"), "Closing a 3-tuple")
		)
		return func(in string) poly.Result[Triple[A, B, C]] {
			var t Triple[A, B, C]
			r0 := open(in)
			if r0.Failed() {
				return poly.Forward[Triple[A, B, C]](r0)
			}
			r1 := first(r0.Rest)
			if r1.Failed() {
				return poly.Forward[Triple[A, B, C]](r1)
			}
			t.First = r1.Value
			r2 := sep1(r1.Rest)
			if r2.Failed() {
				return poly.Forward[Triple[A, B, C]](r2)
			}
			r3 := second(r2.Rest)
			if r3.Failed() {
				return poly.Forward[Triple[A, B, C]](r3)
			}
			t.Second = r3.Value
			r4 := sep2(r3.Rest)
			if r4.Failed() {
				return poly.Forward[Triple[A, B, C]](r4)
			}
			r5 := third(r4.Rest)
			if r5.Failed() {
				return poly.Forward[Triple[A, B, C]](r5)
			}
			t.Third = r5.Value
			r6 := closer(r5.Rest)
			if r6.Failed() {
				return poly.Forward[Triple[A, B, C]](r6)
			}
			return poly.Success(t, r6.Rest)
		}
	}}
}

// ListOf reads a list of values with r's ParseList, so a list of
// characters is read as a string literal.
func ListOf[T any](r Reader[T]) Reader[[]T] {
	return Instance[[]T]{ParseFn: func() poly.Parser[[]T] {
		return poly.Lazy(r.ParseList)
	}}
}
