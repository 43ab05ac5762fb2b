package textparse

import (
	"math/big"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/henrylaxen/polyparse/poly"
)

// singleEscapes maps the one-letter escapes to the characters they denote.
var singleEscapes = map[rune]rune{
	'a':  '\a',
	'b':  '\b',
	'f':  '\f',
	'n':  '\n',
	'r':  '\r',
	't':  '\t',
	'v':  '\v',
	'\\': '\\',
	'"':  '"',
	'\'': '\'',
}

// ParseLitChar reads one character of a character or string literal body,
// decoding a backslash escape when one starts there.
func ParseLitChar() poly.Parser[rune] {
	return parseLitChar()
}

func parseLitChar() poly.Parser[rune] {
	next := poly.Next()
	return func(in string) poly.Result[rune] {
		res := next(in)
		if res.Failed() || res.Value != '\\' {
			return res
		}
		return parseEscape(in, res.Rest)
	}
}

// parseEscape decodes the escape following a backslash. at is the input
// starting at the backslash and is where failures are reported.
func parseEscape(at, in string) poly.Result[rune] {
	if in == "" {
		return poly.Failure[rune](at, "unterminated escape sequence in literal character")
	}
	c, size := utf8.DecodeRuneInString(in)
	rest := in[size:]

	if r, ok := singleEscapes[c]; ok {
		return poly.Success(r, rest)
	}
	switch {
	case c == '^':
		ctrl, n := utf8.DecodeRuneInString(rest)
		if rest == "" || ctrl < '@' || ctrl > '_' {
			return poly.Failure[rune](at, "literal char ctrl-escape malformed: \\^"+string(ctrl))
		}
		return poly.Success(ctrl-'@', rest[n:])
	case isDecDigit(c):
		return codePoint(at, ParseDec()(in))
	case c == 'o':
		return codePoint(at, ParseOct()(rest))
	case c == 'x':
		return codePoint(at, ParseHex()(rest))
	case c >= 'A' && c <= 'Z':
		if code, n, ok := lookupMnemonic(in); ok {
			return poly.Success(code, in[n:])
		}
	}
	return poly.Failure[rune](at, "unrecognised escape sequence in literal character: \\"+string(c))
}

func codePoint(at string, res poly.Result[*big.Int]) poly.Result[rune] {
	if res.Failed() {
		return poly.Forward[rune](res)
	}
	n := res.Value
	if !n.IsInt64() || n.Int64() > unicode.MaxRune || !utf8.ValidRune(rune(n.Int64())) {
		return poly.Failure[rune](at, "character code out of range: "+n.String())
	}
	return poly.Success(rune(n.Int64()), res.Rest)
}

// ParseQuotedChar reads a character literal such as 'a' or '\n'. A missing
// closing quote after a decoded body is fatal.
func ParseQuotedChar() poly.Parser[rune] {
	body := parseLitChar()
	return func(in string) poly.Result[rune] {
		if !strings.HasPrefix(in, "'") || strings.HasPrefix(in, "''") {
			return poly.Failure[rune](in, "expected a literal char")
		}
		res := body(in[1:])
		if res.Failed() {
			return res
		}
		if !strings.HasPrefix(res.Rest, "'") {
			return poly.Fatal[rune](res.Rest, "literal char has no final '")
		}
		return poly.Success(res.Value, res.Rest[1:])
	}
}

// DecodeString decodes the body of a string literal, the text between the
// quotes, resolving escapes, the empty escape \& and \ ... \ gaps.
func DecodeString(body string) (string, error) {
	var b strings.Builder
	lit := parseLitChar()
	in := body
	for in != "" {
		switch {
		case strings.HasPrefix(in, "\\&"):
			in = in[2:]
			continue
		case strings.HasPrefix(in, "\\"):
			if r, _ := utf8.DecodeRuneInString(in[1:]); unicode.IsSpace(r) {
				gap := strings.TrimLeftFunc(in[1:], unicode.IsSpace)
				if !strings.HasPrefix(gap, "\\") {
					return "", newParseError(body, gap, "unterminated string gap", true)
				}
				in = gap[1:]
				continue
			}
		}
		res := lit(in)
		if res.Failed() {
			return "", newParseError(body, res.Rest, res.Msg, true)
		}
		b.WriteRune(res.Value)
		in = res.Rest
	}
	return b.String(), nil
}

func quoteRune(r rune) string {
	return strconv.QuoteRune(r)
}
