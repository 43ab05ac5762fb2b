package textparse

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/henrylaxen/polyparse/poly"
)

// WordKind classifies a lexical word.
type WordKind int

const (
	WordSpecial WordKind = iota
	WordIdent
	WordSymbol
	WordNumber
	WordChar
	WordString
)

func (k WordKind) String() string {
	switch k {
	case WordSpecial:
		return "special"
	case WordIdent:
		return "ident"
	case WordSymbol:
		return "symbol"
	case WordNumber:
		return "number"
	case WordChar:
		return "char"
	case WordString:
		return "string"
	default:
		return "unknown"
	}
}

// lexer splits source text into words following the Haskell report's lex.
type lexer struct {
	source string
	pos    int
}

func newLexer(source string) *lexer {
	return &lexer{source: source}
}

func (l *lexer) peek(offset int) rune {
	idx := l.pos
	for ; offset > 0 && idx < len(l.source); offset-- {
		_, size := utf8.DecodeRuneInString(l.source[idx:])
		idx += size
	}
	if idx >= len(l.source) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.source[idx:])
	return r
}

func (l *lexer) advance() rune {
	if l.pos >= len(l.source) {
		return 0
	}
	r, size := utf8.DecodeRuneInString(l.source[l.pos:])
	l.pos += size
	return r
}

func (l *lexer) done() bool {
	return l.pos >= len(l.source)
}

func (l *lexer) skipWhitespace() {
	for !l.done() && unicode.IsSpace(l.peek(0)) {
		l.advance()
	}
}

func (l *lexer) skipWhile(pred func(rune) bool) {
	for !l.done() && pred(l.peek(0)) {
		l.advance()
	}
}

func isSingleChar(ch rune) bool {
	return strings.ContainsRune(",;()[]{}`", ch)
}

func isSymbolChar(ch rune) bool {
	if ch < utf8.RuneSelf {
		return strings.ContainsRune("!@#$%&*+./<=>?\\^|:-~", ch)
	}
	return unicode.IsSymbol(ch) || unicode.IsPunct(ch)
}

func isIdentStart(ch rune) bool {
	return unicode.IsLetter(ch) || ch == '_'
}

func isIdentChar(ch rune) bool {
	return unicode.IsLetter(ch) || unicode.IsDigit(ch) || ch == '_' || ch == '\''
}

func isDecDigit(ch rune) bool { return ch >= '0' && ch <= '9' }

func isOctDigit(ch rune) bool { return ch >= '0' && ch <= '7' }

func isHexDigit(ch rune) bool {
	return isDecDigit(ch) || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}

// nextWord scans one word; ok is false when no word could be formed and msg
// then says why.
func (l *lexer) nextWord() (text string, kind WordKind, msg string, ok bool) {
	l.skipWhitespace()
	if l.done() {
		return "", 0, "no input", false
	}

	start := l.pos
	ch := l.peek(0)

	switch {
	case isSingleChar(ch):
		l.advance()
		return l.source[start:l.pos], WordSpecial, "", true
	case ch == '\'':
		if !l.readCharLiteral() {
			return "", 0, "lexing failed: malformed character literal", false
		}
		return l.source[start:l.pos], WordChar, "", true
	case ch == '"':
		if !l.readStringLiteral() {
			return "", 0, "lexing failed: unterminated string literal", false
		}
		return l.source[start:l.pos], WordString, "", true
	case isIdentStart(ch):
		l.skipWhile(isIdentChar)
		return l.source[start:l.pos], WordIdent, "", true
	case isDecDigit(ch):
		l.readNumber()
		return l.source[start:l.pos], WordNumber, "", true
	case isSymbolChar(ch):
		l.skipWhile(isSymbolChar)
		return l.source[start:l.pos], WordSymbol, "", true
	}
	return "", 0, "lexing failed: unexpected character " + quoteRune(ch), false
}

func (l *lexer) readNumber() {
	if l.peek(0) == '0' {
		switch next := l.peek(1); {
		case (next == 'x' || next == 'X') && isHexDigit(l.peek(2)):
			l.advance()
			l.advance()
			l.skipWhile(isHexDigit)
			return
		case (next == 'o' || next == 'O') && isOctDigit(l.peek(2)):
			l.advance()
			l.advance()
			l.skipWhile(isOctDigit)
			return
		}
	}
	l.skipWhile(isDecDigit)

	// Fraction only when a digit follows the dot.
	if l.peek(0) == '.' && isDecDigit(l.peek(1)) {
		l.advance()
		l.skipWhile(isDecDigit)
	}

	if e := l.peek(0); e == 'e' || e == 'E' {
		switch sign := l.peek(1); {
		case (sign == '+' || sign == '-') && isDecDigit(l.peek(2)):
			l.advance()
			l.advance()
			l.skipWhile(isDecDigit)
		case isDecDigit(sign):
			l.advance()
			l.skipWhile(isDecDigit)
		}
	}
}

// readCharLiteral consumes 'c' where c is a single character or escape
// other than an unescaped quote.
func (l *lexer) readCharLiteral() bool {
	l.advance() // opening '
	if l.peek(0) == '\'' {
		return false
	}
	res := parseLitChar()(l.source[l.pos:])
	if res.Failed() {
		return false
	}
	l.pos = len(l.source) - len(res.Rest)
	if l.peek(0) != '\'' {
		return false
	}
	l.advance()
	return true
}

// readStringLiteral consumes a double-quoted string, stepping over escapes,
// \& and gaps without decoding them.
func (l *lexer) readStringLiteral() bool {
	l.advance() // opening "
	for !l.done() {
		ch := l.peek(0)
		switch {
		case ch == '"':
			l.advance()
			return true
		case ch == '\\' && l.peek(1) == '&':
			l.advance()
			l.advance()
		case ch == '\\' && unicode.IsSpace(l.peek(1)):
			l.advance()
			l.skipWhitespace()
			if l.advance() != '\\' {
				return false
			}
		case ch == '\\':
			res := parseLitChar()(l.source[l.pos:])
			if res.Failed() {
				return false
			}
			l.pos = len(l.source) - len(res.Rest)
		default:
			l.advance()
		}
	}
	return false
}

// NextWord reads one lexical word from in, skipping leading whitespace.
func NextWord(in string) poly.Result[string] {
	l := newLexer(in)
	text, _, msg, ok := l.nextWord()
	if !ok {
		return poly.Failure[string](in, msg)
	}
	return poly.Success(text, in[l.pos:])
}

// Word is the parser form of NextWord.
func Word() poly.Parser[string] {
	return NextWord
}

// Words splits in into its lexical words with their kinds. It stops at the
// first position where no word can be formed and reports that failure.
func Words(in string) ([]string, []WordKind, error) {
	l := newLexer(in)
	var (
		words []string
		kinds []WordKind
	)
	for {
		l.skipWhitespace()
		if l.done() {
			return words, kinds, nil
		}
		at := l.pos
		text, kind, msg, ok := l.nextWord()
		if !ok {
			return words, kinds, newParseError(in, in[at:], msg, false)
		}
		words = append(words, text)
		kinds = append(kinds, kind)
	}
}

// IsWord succeeds when the next word is exactly w.
func IsWord(w string) poly.Parser[string] {
	return func(in string) poly.Result[string] {
		res := NextWord(in)
		if res.Failed() {
			return res
		}
		if res.Value != w {
			return poly.Failure[string](in, "expected "+w+" got "+res.Value)
		}
		return res
	}
}

// ExpectWord runs IsWord(w) against in.
func ExpectWord(in, w string) poly.Result[string] {
	return IsWord(w)(in)
}

// skipSpace discards leading whitespace.
var skipSpace = poly.ManySatisfy(unicode.IsSpace)
