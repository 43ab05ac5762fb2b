package textparse

import "github.com/henrylaxen/polyparse/poly"

// Parens reads p surrounded by parentheses when mandatory is set. Otherwise
// the parenthesised form is tried first and the bare form second. Inside a
// pair of parentheses further parentheses are always optional.
func Parens[T any](mandatory bool, p poly.Parser[T]) poly.Parser[T] {
	if mandatory {
		inner := poly.Lazy(func() poly.Parser[T] { return Parens(false, p) })
		return poly.Bracket(IsWord("("), IsWord(")"), inner)
	}
	return poly.OnFail(Parens(true, p), p)
}

// OptionalParens reads p with or without surrounding parentheses.
func OptionalParens[T any](p poly.Parser[T]) poly.Parser[T] {
	return Parens(false, p)
}

// appPrec is the precedence of constructor application. A constructor
// applied to an argument needs parentheses in any context binding tighter.
const appPrec = 9

// needsParens reports whether a constructor application read at prec must
// be parenthesised.
func needsParens(prec int) bool {
	return prec > appPrec
}
