package textparse

import (
	"errors"
	"math"
	"math/big"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/cases"

	"github.com/henrylaxen/polyparse/poly"
)

// maxExponent bounds the decimal exponent handed to strconv; anything
// beyond it already rounds to zero or infinity.
const maxExponent = 1 << 20

// ParseSigned parses p, or a '-' followed by p whose value is negated. Once
// the '-' is seen a failure of p is fatal.
func ParseSigned[T any](p poly.Parser[T], negate func(T) T) poly.Parser[T] {
	return func(in string) poly.Result[T] {
		if strings.HasPrefix(in, "-") {
			return poly.Commit(poly.Map(p, negate))(in[1:])
		}
		return p(in)
	}
}

// ParseInt consumes one or more digits accepted by isDigit and folds them
// left to right as acc*radix + digitValue(c). base names the notation in
// the failure message.
func ParseInt(base string, radix int64, isDigit func(rune) bool, digitValue func(rune) int64) poly.Parser[*big.Int] {
	digits := poly.Many1Satisfy(isDigit)
	return func(in string) poly.Result[*big.Int] {
		res := digits(in)
		if res.Failed() {
			return poly.Failure[*big.Int](in, "expected one or more "+base+" digits")
		}
		acc := new(big.Int)
		r := big.NewInt(radix)
		d := new(big.Int)
		for _, c := range res.Value {
			acc.Mul(acc, r)
			acc.Add(acc, d.SetInt64(digitValue(c)))
		}
		return poly.Success(acc, res.Rest)
	}
}

func digitValue(c rune) int64 {
	switch {
	case c >= '0' && c <= '9':
		return int64(c - '0')
	case c >= 'a' && c <= 'f':
		return int64(c-'a') + 10
	case c >= 'A' && c <= 'F':
		return int64(c-'A') + 10
	}
	return 0
}

// ParseDec reads an unsigned decimal integer. Leading zeros carry no
// special meaning.
func ParseDec() poly.Parser[*big.Int] {
	return ParseInt("decimal", 10, isDecDigit, digitValue)
}

// ParseOct reads an unsigned octal integer.
func ParseOct() poly.Parser[*big.Int] {
	return ParseInt("octal", 8, isOctDigit, digitValue)
}

// ParseHex reads an unsigned hexadecimal integer in either letter case.
func ParseHex() poly.Parser[*big.Int] {
	return ParseInt("hex", 16, isHexDigit, digitValue)
}

func negateBig(n *big.Int) *big.Int { return new(big.Int).Neg(n) }

func negateFloat(f float64) float64 { return -f }

// ParseFloat reads an unsigned floating point literal: digits, an optional
// fraction and an optional signed exponent, or one of the words nan and
// infinity in any letter case.
func ParseFloat() poly.Parser[float64] {
	return parseFloatBits(64)
}

func parseFloatBits(bitSize int) poly.Parser[float64] {
	return poly.OnFail(parseDecimalFloat(bitSize), parseSpecialFloat)
}

func parseDecimalFloat(bitSize int) poly.Parser[float64] {
	digits := poly.Many1Satisfy(isDecDigit)
	return func(in string) poly.Result[float64] {
		ds := digits(in)
		if ds.Failed() {
			return poly.Failure[float64](in, "expected one or more decimal digits")
		}
		rest := ds.Rest

		var frac string
		if strings.HasPrefix(rest, ".") {
			fs := digits(rest[1:])
			if fs.Failed() {
				return poly.Fatal[float64](rest[1:], "expected digit after .")
			}
			frac, rest = fs.Value, fs.Rest
		}

		exp := new(big.Int)
		if strings.HasPrefix(rest, "e") || strings.HasPrefix(rest, "E") {
			er := poly.Commit(parseExponent)(rest[1:])
			if er.Failed() {
				return poly.Forward[float64](er)
			}
			exp, rest = er.Value, er.Rest
		}

		exp.Sub(exp, big.NewInt(int64(len(frac))))
		var e int64
		switch {
		case exp.IsInt64():
			e = exp.Int64()
		case exp.Sign() < 0:
			e = -maxExponent
		default:
			e = maxExponent
		}
		if e > maxExponent {
			e = maxExponent
		} else if e < -maxExponent {
			e = -maxExponent
		}
		f, err := strconv.ParseFloat(ds.Value+frac+"e"+strconv.FormatInt(e, 10), bitSize)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return poly.Fatal[float64](in, "malformed floating point number: "+err.Error())
		}
		return poly.Success(f, rest)
	}
}

var parseExponent = poly.OnFail(
	poly.Then(poly.Satisfy(func(c rune) bool { return c == '+' }), ParseDec()),
	ParseSigned(ParseDec(), negateBig),
)

func parseSpecialFloat(in string) poly.Result[float64] {
	w := poly.ManySatisfy(unicode.IsLetter)(in)
	// A Caser keeps state, so each call gets its own.
	switch cases.Fold().String(w.Value) {
	case "nan":
		return poly.Success(math.NaN(), w.Rest)
	case "infinity":
		return poly.Success(math.Inf(1), w.Rest)
	}
	return poly.Failure[float64](in, "expected a floating point number")
}
