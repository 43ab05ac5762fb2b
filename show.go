package textparse

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/holiman/uint256"
)

// Shower renders values in the canonical form their Reader reads back.
//
// ShowsPrec renders a value nested in a context of the given precedence,
// parenthesising it when its own syntax binds more weakly. ShowList renders
// a list of values.
type Shower[T any] interface {
	ShowsPrec(prec int, v T) string
	ShowList(vs []T) string
}

// ShowInstance builds a Shower from a ShowsPrec function and an optional
// ShowList function. ShowList defaults to [a,b,c] with every element
// rendered at precedence 0.
type ShowInstance[T any] struct {
	ShowsPrecFn func(prec int, v T) string
	ShowListFn  func(vs []T) string
}

func (s ShowInstance[T]) ShowsPrec(prec int, v T) string {
	return s.ShowsPrecFn(prec, v)
}

func (s ShowInstance[T]) ShowList(vs []T) string {
	if s.ShowListFn != nil {
		return s.ShowListFn(vs)
	}
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = s.ShowsPrecFn(0, v)
	}
	return "[" + strings.Join(parts, ",") + "]"
}

// Show renders v at precedence 0.
func Show[T any](s Shower[T], v T) string {
	return s.ShowsPrec(0, v)
}

// negPrec is the precedence of prefix negation.
const negPrec = 6

func showParen(b bool, s string) string {
	if b {
		return "(" + s + ")"
	}
	return s
}

// ShowSigned renders fixed-width signed integers in decimal.
func ShowSigned[T Signed]() Shower[T] {
	return ShowInstance[T]{ShowsPrecFn: func(prec int, v T) string {
		return showParen(v < 0 && prec > negPrec, strconv.FormatInt(int64(v), 10))
	}}
}

// ShowUnsigned renders fixed-width unsigned integers in decimal.
func ShowUnsigned[T UnsignedInt]() Shower[T] {
	return ShowInstance[T]{ShowsPrecFn: func(_ int, v T) string {
		return strconv.FormatUint(uint64(v), 10)
	}}
}

// Showers for the built-in types.
var (
	ShowInt   = ShowSigned[int]()
	ShowInt8  = ShowSigned[int8]()
	ShowInt16 = ShowSigned[int16]()
	ShowInt32 = ShowSigned[int32]()
	ShowInt64 = ShowSigned[int64]()

	ShowUint   = ShowUnsigned[uint]()
	ShowUint8  = ShowUnsigned[uint8]()
	ShowUint16 = ShowUnsigned[uint16]()
	ShowUint32 = ShowUnsigned[uint32]()
	ShowUint64 = ShowUnsigned[uint64]()

	ShowBigInt Shower[*big.Int] = ShowInstance[*big.Int]{ShowsPrecFn: func(prec int, v *big.Int) string {
		if v == nil {
			return "0"
		}
		return showParen(v.Sign() < 0 && prec > negPrec, v.String())
	}}

	ShowUint256 Shower[*uint256.Int] = ShowInstance[*uint256.Int]{ShowsPrecFn: func(_ int, v *uint256.Int) string {
		if v == nil {
			return "0"
		}
		return v.ToBig().String()
	}}

	ShowFloat64 Shower[float64] = ShowInstance[float64]{ShowsPrecFn: func(prec int, v float64) string {
		return showParen(math.Signbit(v) && !math.IsNaN(v) && prec > negPrec, FormatFloat(v, 64))
	}}

	ShowFloat32 Shower[float32] = ShowInstance[float32]{ShowsPrecFn: func(prec int, v float32) string {
		f := float64(v)
		return showParen(math.Signbit(f) && !math.IsNaN(f) && prec > negPrec, FormatFloat(f, 32))
	}}

	ShowChar Shower[rune] = ShowInstance[rune]{
		ShowsPrecFn: func(_ int, c rune) string {
			if c == '\'' {
				return `'\''`
			}
			return "'" + showLitChar(c, 0) + "'"
		},
		ShowListFn: func(cs []rune) string {
			return ShowString.ShowsPrec(0, string(cs))
		},
	}

	ShowString Shower[string] = ShowInstance[string]{ShowsPrecFn: func(_ int, s string) string {
		return QuoteString(s)
	}}

	ShowBool Shower[bool] = ShowInstance[bool]{ShowsPrecFn: func(_ int, b bool) string {
		if b {
			return "True"
		}
		return "False"
	}}

	ShowOrdering Shower[Ordering] = ShowInstance[Ordering]{ShowsPrecFn: func(_ int, o Ordering) string {
		return o.String()
	}}

	ShowUnit Shower[Unit] = ShowInstance[Unit]{ShowsPrecFn: func(int, Unit) string {
		return "()"
	}}
)

// FormatFloat renders f with the fewest digits that read back as the same
// value of the given bit size. Values from 0.1 up to 10^7 are written in
// positional notation, others with an exponent: 1000.0, 1.0e-2, 1.0e7.
func FormatFloat(f float64, bitSize int) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case math.Signbit(f):
		return "-" + FormatFloat(-f, bitSize)
	case f == 0:
		return "0.0"
	}

	// d.ddde±x, so f = 0.dddd * 10^(x+1)
	s := strconv.FormatFloat(f, 'e', -1, bitSize)
	mant, exp, _ := strings.Cut(s, "e")
	digits := strings.Replace(mant, ".", "", 1)
	x, _ := strconv.Atoi(exp)
	e := x + 1

	if e < 0 || e > 7 {
		if len(digits) == 1 {
			return digits + ".0e" + strconv.Itoa(e-1)
		}
		return digits[:1] + "." + digits[1:] + "e" + strconv.Itoa(e-1)
	}
	if e == 0 {
		return "0." + digits
	}
	if len(digits) <= e {
		return digits + strings.Repeat("0", e-len(digits)) + ".0"
	}
	return digits[:e] + "." + digits[e:]
}

// showLitChar renders c as it appears inside a literal. next is the
// character that follows inside a string literal, or 0.
func showLitChar(c, next rune) string {
	switch {
	case c > 0x7f:
		return "\\" + strconv.Itoa(int(c)) + protectDigit(next)
	case c == 0x7f:
		return `\DEL`
	case c == '\\':
		return `\\`
	case c >= ' ':
		return string(c)
	}
	switch c {
	case '\a':
		return `\a`
	case '\b':
		return `\b`
	case '\f':
		return `\f`
	case '\n':
		return `\n`
	case '\r':
		return `\r`
	case '\t':
		return `\t`
	case '\v':
		return `\v`
	case 0x0e:
		if next == 'H' {
			return `\SO\&`
		}
		return `\SO`
	}
	return "\\" + mnemonicNames[c]
}

func protectDigit(next rune) string {
	if isDecDigit(next) {
		return `\&`
	}
	return ""
}

// QuoteString renders s as a string literal. A string literal denotes a
// sequence of characters, so bytes of s that are not valid UTF-8 render as
// U+FFFD and read back as that character.
func QuoteString(s string) string {
	rs := []rune(s)
	var b strings.Builder
	b.WriteByte('"')
	for i, c := range rs {
		var next rune
		if i+1 < len(rs) {
			next = rs[i+1]
		}
		if c == '"' {
			b.WriteString(`\"`)
			continue
		}
		b.WriteString(showLitChar(c, next))
	}
	b.WriteByte('"')
	return b.String()
}

// ShowMaybe renders Nothing or Just x.
func ShowMaybe[T any](s Shower[T]) Shower[Maybe[T]] {
	return ShowInstance[Maybe[T]]{ShowsPrecFn: func(prec int, m Maybe[T]) string {
		if !m.Valid {
			return "Nothing"
		}
		return showParen(needsParens(prec), "Just "+s.ShowsPrec(appPrec+1, m.Value))
	}}
}

// ShowEither renders Left x or Right y.
func ShowEither[L, R any](l Shower[L], r Shower[R]) Shower[Either[L, R]] {
	return ShowInstance[Either[L, R]]{ShowsPrecFn: func(prec int, e Either[L, R]) string {
		if e.IsRight {
			return showParen(needsParens(prec), "Right "+r.ShowsPrec(appPrec+1, e.Right))
		}
		return showParen(needsParens(prec), "Left "+l.ShowsPrec(appPrec+1, e.Left))
	}}
}

// ShowPair renders (a,b).
func ShowPair[A, B any](a Shower[A], b Shower[B]) Shower[Pair[A, B]] {
	return ShowInstance[Pair[A, B]]{ShowsPrecFn: func(_ int, p Pair[A, B]) string {
		return "(" + a.ShowsPrec(0, p.First) + "," + b.ShowsPrec(0, p.Second) + ")"
	}}
}

// ShowTriple renders (a,b,c).
func ShowTriple[A, B, C any](a Shower[A], b Shower[B], c Shower[C]) Shower[Triple[A, B, C]] {
	return ShowInstance[Triple[A, B, C]]{ShowsPrecFn: func(_ int, t Triple[A, B, C]) string {
		return "(" + a.ShowsPrec(0, t.First) + "," + b.ShowsPrec(0, t.Second) + "," + c.ShowsPrec(0, t.Third) + ")"
	}}
}

// ShowListOf renders lists with s's ShowList.
func ShowListOf[T any](s Shower[T]) Shower[[]T] {
	return ShowInstance[[]T]{ShowsPrecFn: func(_ int, vs []T) string {
		return s.ShowList(vs)
	}}
}

// EraseShower turns a Shower[T] into a Shower[any] for values holding a T.
func EraseShower[T any](s Shower[T]) Shower[any] {
	return ShowInstance[any]{
		ShowsPrecFn: func(prec int, v any) string {
			return s.ShowsPrec(prec, mustBe[T](v))
		},
		ShowListFn: func(vs []any) string {
			ts := make([]T, len(vs))
			for i, v := range vs {
				ts[i] = mustBe[T](v)
			}
			return s.ShowList(ts)
		},
	}
}

func mustBe[T any](v any) T {
	t, ok := v.(T)
	if !ok {
		var zero T
		panic(fmt.Sprintf("textparse: cannot show %T as %T", v, zero))
	}
	return t
}
