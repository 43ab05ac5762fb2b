package textparse

import (
	"fmt"
	"sort"
	"strings"
)

// TypeError represents a malformed or unknown type expression.
type TypeError struct {
	Message string
	Span    Span
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("type error at %d-%d: %s", e.Span.Start, e.Span.End, e.Message)
}

// Dynamic pairs a Reader and a Shower for a type chosen at run time.
type Dynamic struct {
	Name   string
	Reader Reader[any]
	Shower Shower[any]
}

func dynamic[T any](name string, r Reader[T], s Shower[T]) *Dynamic {
	return &Dynamic{Name: name, Reader: Erase(r), Shower: EraseShower(s)}
}

var builtinTypes = map[string]func() *Dynamic{
	"Int":      func() *Dynamic { return dynamic("Int", Int, ShowInt) },
	"Int8":     func() *Dynamic { return dynamic("Int8", Int8, ShowInt8) },
	"Int16":    func() *Dynamic { return dynamic("Int16", Int16, ShowInt16) },
	"Int32":    func() *Dynamic { return dynamic("Int32", Int32, ShowInt32) },
	"Int64":    func() *Dynamic { return dynamic("Int64", Int64, ShowInt64) },
	"Word":     func() *Dynamic { return dynamic("Word", Uint, ShowUint) },
	"Word8":    func() *Dynamic { return dynamic("Word8", Uint8, ShowUint8) },
	"Word16":   func() *Dynamic { return dynamic("Word16", Uint16, ShowUint16) },
	"Word32":   func() *Dynamic { return dynamic("Word32", Uint32, ShowUint32) },
	"Word64":   func() *Dynamic { return dynamic("Word64", Uint64, ShowUint64) },
	"Word256":  func() *Dynamic { return dynamic("Word256", Uint256, ShowUint256) },
	"Integer":  func() *Dynamic { return dynamic("Integer", BigInt, ShowBigInt) },
	"Double":   func() *Dynamic { return dynamic("Double", Float64, ShowFloat64) },
	"Float":    func() *Dynamic { return dynamic("Float", Float32, ShowFloat32) },
	"Char":     func() *Dynamic { return dynamic("Char", Char, ShowChar) },
	"String":   func() *Dynamic { return dynamic("String", String, ShowString) },
	"Bool":     func() *Dynamic { return dynamic("Bool", Bool, ShowBool) },
	"Ordering": func() *Dynamic { return dynamic("Ordering", OrderingReader, ShowOrdering) },
}

// TypeNames lists the nullary type names Lookup understands, sorted.
func TypeNames() []string {
	names := make([]string, 0, len(builtinTypes))
	for name := range builtinTypes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// typeToken is one word of a type expression.
type typeToken struct {
	Text string
	Kind WordKind
	Span Span
}

const eofToken = ""

type typeParser struct {
	lexer   *lexer
	current typeToken
	err     error
}

// Lookup builds the Dynamic for a type expression such as
// "Maybe (Either Int [Char])". It understands the built-in nullary types,
// (), lists [T], 2- and 3-tuples, Maybe T and Either A B.
func Lookup(expr string) (*Dynamic, error) {
	p := newTypeParser(expr)
	if p.err != nil {
		return nil, p.err
	}
	d, err := p.parseType()
	if err != nil {
		return nil, err
	}
	if p.err != nil {
		return nil, p.err
	}
	if p.current.Text != eofToken {
		return nil, &TypeError{Message: "unexpected " + p.current.Text + " after type", Span: p.current.Span}
	}
	return d, nil
}

func newTypeParser(source string) *typeParser {
	p := &typeParser{lexer: newLexer(source)}
	p.current = p.scan()
	return p
}

func (p *typeParser) scan() typeToken {
	p.lexer.skipWhitespace()
	start := p.lexer.pos
	if p.lexer.done() {
		return typeToken{Text: eofToken, Span: Span{start, start}}
	}
	text, kind, msg, ok := p.lexer.nextWord()
	if !ok {
		if p.err == nil {
			p.err = &TypeError{Message: msg, Span: Span{start, start + 1}}
		}
		return typeToken{Text: eofToken, Span: Span{start, start}}
	}
	return typeToken{Text: text, Kind: kind, Span: Span{start, p.lexer.pos}}
}

func (p *typeParser) advance() typeToken {
	prev := p.current
	p.current = p.scan()
	return prev
}

func (p *typeParser) check(texts ...string) bool {
	for _, t := range texts {
		if p.current.Text == t {
			return true
		}
	}
	return false
}

func (p *typeParser) expect(text string) (typeToken, error) {
	if p.current.Text != text {
		got := p.current.Text
		if got == eofToken {
			got = "end of input"
		}
		return typeToken{}, &TypeError{
			Message: "expected " + text + ", got " + got,
			Span:    p.current.Span,
		}
	}
	return p.advance(), nil
}

// atomStart reports whether the current token can begin an atomic type.
func (p *typeParser) atomStart() bool {
	return p.check("(", "[") || (p.current.Kind == WordIdent && p.current.Text != eofToken)
}

func (p *typeParser) parseType() (*Dynamic, error) {
	switch {
	case p.check("Maybe"):
		p.advance()
		inner, err := p.parseAtom()
		if err != nil {
			return nil, err
		}
		return &Dynamic{
			Name:   "Maybe " + atomName(inner),
			Reader: Erase(MaybeOf(inner.Reader)),
			Shower: EraseShower(ShowMaybe(inner.Shower)),
		}, nil
	case p.check("Either"):
		p.advance()
		left, err := p.parseAtom()
		if err != nil {
			return nil, err
		}
		right, err := p.parseAtom()
		if err != nil {
			return nil, err
		}
		return &Dynamic{
			Name:   "Either " + atomName(left) + " " + atomName(right),
			Reader: Erase(EitherOf(left.Reader, right.Reader)),
			Shower: EraseShower(ShowEither(left.Shower, right.Shower)),
		}, nil
	}
	return p.parseAtom()
}

func (p *typeParser) parseAtom() (*Dynamic, error) {
	if p.err != nil {
		return nil, p.err
	}
	if !p.atomStart() {
		return nil, &TypeError{Message: "expected a type, got " + describe(p.current), Span: p.current.Span}
	}

	switch {
	case p.check("["):
		p.advance()
		elem, err := p.parseType()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect("]"); err != nil {
			return nil, err
		}
		return &Dynamic{
			Name:   "[" + elem.Name + "]",
			Reader: Erase(ListOf(elem.Reader)),
			Shower: EraseShower(ShowListOf(elem.Shower)),
		}, nil

	case p.check("("):
		return p.parseParenthesised()
	}

	tok := p.advance()
	if tok.Text == "Maybe" || tok.Text == "Either" {
		return nil, &TypeError{Message: tok.Text + " needs parentheses here", Span: tok.Span}
	}
	mk, ok := builtinTypes[tok.Text]
	if !ok {
		return nil, &TypeError{Message: "unknown type " + tok.Text, Span: tok.Span}
	}
	return mk(), nil
}

func (p *typeParser) parseParenthesised() (*Dynamic, error) {
	open := p.advance()
	if p.check(")") {
		p.advance()
		return dynamic("()", UnitReader, ShowUnit), nil
	}

	var items []*Dynamic
	for {
		item, err := p.parseType()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
		if !p.check(",") {
			break
		}
		p.advance()
	}
	if _, err := p.expect(")"); err != nil {
		return nil, err
	}

	names := make([]string, len(items))
	for i, it := range items {
		names[i] = it.Name
	}
	name := "(" + strings.Join(names, ",") + ")"

	switch len(items) {
	case 1:
		return items[0], nil
	case 2:
		a, b := items[0], items[1]
		return &Dynamic{
			Name:   name,
			Reader: Erase(PairOf(a.Reader, b.Reader)),
			Shower: EraseShower(ShowPair(a.Shower, b.Shower)),
		}, nil
	case 3:
		a, b, c := items[0], items[1], items[2]
		return &Dynamic{
			Name:   name,
			Reader: Erase(TripleOf(a.Reader, b.Reader, c.Reader)),
			Shower: EraseShower(ShowTriple(a.Shower, b.Shower, c.Shower)),
		}, nil
	}
	return nil, &TypeError{
		Message: fmt.Sprintf("%d-tuples are not supported", len(items)),
		Span:    Span{open.Span.Start, p.lexer.pos},
	}
}

func describe(tok typeToken) string {
	if tok.Text == eofToken {
		return "end of input"
	}
	return tok.Text
}

// atomName parenthesises a type name that is an application.
func atomName(d *Dynamic) string {
	if strings.Contains(d.Name, " ") && !strings.HasPrefix(d.Name, "[") && !strings.HasPrefix(d.Name, "(") {
		return "(" + d.Name + ")"
	}
	return d.Name
}
