package textparse

import (
	"errors"
	"fmt"
	"math/big"
	"strings"
	"unicode"

	"github.com/holiman/uint256"

	"github.com/henrylaxen/polyparse/poly"
)

// Signed is the set of fixed-width signed integer types.
type Signed interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64
}

// UnsignedInt is the set of fixed-width unsigned integer types.
type UnsignedInt interface {
	~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// Integral reads an optionally negative decimal integer of type T. A value
// outside T's range is a fatal failure.
func Integral[T Signed]() Reader[T] {
	digits := ParseSigned(ParseDec(), negateBig)
	return Instance[T]{ParseFn: func() poly.Parser[T] {
		return poly.Then(skipSpace, func(in string) poly.Result[T] {
			res := digits(in)
			if res.Failed() {
				return poly.Forward[T](res)
			}
			v := T(res.Value.Int64())
			if !res.Value.IsInt64() || big.NewInt(int64(v)).Cmp(res.Value) != 0 {
				return poly.Fatal[T](in, outOfRange(res.Value, v))
			}
			return poly.Success(v, res.Rest)
		})
	}}
}

// Unsigned reads a decimal integer of the unsigned type T. No sign is
// accepted.
func Unsigned[T UnsignedInt]() Reader[T] {
	digits := ParseDec()
	return Instance[T]{ParseFn: func() poly.Parser[T] {
		return poly.Then(skipSpace, func(in string) poly.Result[T] {
			res := digits(in)
			if res.Failed() {
				return poly.Forward[T](res)
			}
			v := T(res.Value.Uint64())
			if !res.Value.IsUint64() || uint64(v) != res.Value.Uint64() {
				return poly.Fatal[T](in, outOfRange(res.Value, v))
			}
			return poly.Success(v, res.Rest)
		})
	}}
}

func outOfRange(n *big.Int, v any) string {
	return fmt.Sprintf("%s out of range for %T", n, v)
}

// Readers for the built-in numeric types.
var (
	Int   = Integral[int]()
	Int8  = Integral[int8]()
	Int16 = Integral[int16]()
	Int32 = Integral[int32]()
	Int64 = Integral[int64]()

	Uint   = Unsigned[uint]()
	Uint8  = Unsigned[uint8]()
	Uint16 = Unsigned[uint16]()
	Uint32 = Unsigned[uint32]()
	Uint64 = Unsigned[uint64]()

	// BigInt reads integers of any size.
	BigInt Reader[*big.Int] = Instance[*big.Int]{ParseFn: func() poly.Parser[*big.Int] {
		return poly.Then(skipSpace, ParseSigned(ParseDec(), negateBig))
	}}

	// Uint256 reads 256-bit unsigned integers in decimal or, with a 0x
	// prefix, hexadecimal.
	Uint256 Reader[*uint256.Int] = Instance[*uint256.Int]{ParseFn: func() poly.Parser[*uint256.Int] {
		return poly.Then(skipSpace, parseUint256)
	}}

	Float64 Reader[float64] = Instance[float64]{ParseFn: func() poly.Parser[float64] {
		return poly.Then(skipSpace, ParseSigned(ParseFloat(), negateFloat))
	}}

	Float32 Reader[float32] = Instance[float32]{ParseFn: func() poly.Parser[float32] {
		return poly.Then(skipSpace, poly.Map(ParseSigned(parseFloatBits(32), negateFloat), func(f float64) float32 {
			return float32(f)
		}))
	}}
)

func parseUint256(in string) poly.Result[*uint256.Int] {
	var res poly.Result[*big.Int]
	if strings.HasPrefix(in, "0x") || strings.HasPrefix(in, "0X") {
		res = poly.Commit(ParseHex())(in[2:])
	} else {
		res = ParseDec()(in)
	}
	if res.Failed() {
		return poly.Forward[*uint256.Int](res)
	}
	v, overflow := uint256.FromBig(res.Value)
	if overflow {
		return poly.Fatal[*uint256.Int](in, res.Value.String()+" out of range for uint256")
	}
	return poly.Success(v, res.Rest)
}

// Char reads character literals. Its ParseList reads a string literal
// rather than a bracketed list of characters.
var Char Reader[rune] = Instance[rune]{
	ParseFn: func() poly.Parser[rune] {
		return poly.Then(skipSpace, ParseQuotedChar())
	},
	ParseListFn: func() poly.Parser[[]rune] {
		return poly.Map(parseStringLiteral, func(s string) []rune { return []rune(s) })
	},
}

// String reads string literals.
var String Reader[string] = Instance[string]{ParseFn: func() poly.Parser[string] {
	return parseStringLiteral
}}

func parseStringLiteral(in string) poly.Result[string] {
	w := NextWord(in)
	if w.Failed() {
		return w
	}
	if !strings.HasPrefix(w.Value, `"`) {
		return poly.Failure[string](in, "not a string")
	}
	s, err := DecodeString(w.Value[1 : len(w.Value)-1])
	if err != nil {
		msg := err.Error()
		var pe *ParseError
		if errors.As(err, &pe) {
			msg = pe.Message
		}
		return poly.Fatal[string](in, msg)
	}
	return poly.Success(s, w.Rest)
}

// Bool reads False and True.
var Bool Reader[bool] = Instance[bool]{ParseFn: func() poly.Parser[bool] { return boolTokens }}

var boolTokens = EnumerationOf("Bool", []EnumEntry[bool]{{"False", false}, {"True", true}})

// Ordering is the result of a three-way comparison.
type Ordering int

const (
	LT Ordering = iota - 1
	EQ
	GT
)

func (o Ordering) String() string {
	switch o {
	case LT:
		return "LT"
	case EQ:
		return "EQ"
	case GT:
		return "GT"
	default:
		return "Ordering(" + fmt.Sprint(int(o)) + ")"
	}
}

// OrderingReader reads LT, EQ and GT.
var OrderingReader Reader[Ordering] = Instance[Ordering]{ParseFn: func() poly.Parser[Ordering] { return orderingTokens }}

var orderingTokens = Enumeration("Ordering", LT, EQ, GT)

// Unit is the type with the single value ().
type Unit struct{}

// UnitReader reads ().
var UnitReader Reader[Unit] = Instance[Unit]{ParseFn: func() poly.Parser[Unit] {
	return parseUnit
}}

func parseUnit(in string) poly.Result[Unit] {
	rest := strings.TrimLeftFunc(in, unicode.IsSpace)
	if rest == "" {
		return poly.Failure[Unit](in, "no input: expected a ()")
	}
	if !strings.HasPrefix(rest, "(") {
		w := NextWord(rest)
		return poly.Failure[Unit](in, "Expected a (), got "+w.Value)
	}
	after := strings.TrimLeftFunc(rest[1:], unicode.IsSpace)
	if !strings.HasPrefix(after, ")") {
		return poly.Failure[Unit](rest[1:], "Expected ) after (")
	}
	return poly.Success(Unit{}, after[1:])
}
