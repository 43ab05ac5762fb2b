package textparse

import (
	"fmt"
	"strings"

	mapset "github.com/deckarep/golang-set"

	"github.com/henrylaxen/polyparse/poly"
)

// Field reads `name = value` as it appears in record syntax. After the name
// has matched, a missing '=' or a malformed value is fatal.
func Field[T any](name string, r Reader[T]) poly.Parser[T] {
	return poly.Then(IsWord(name), poly.Commit(poly.Then(IsWord("="), poly.Lazy(r.Parse))))
}

// Constructor pairs a constructor tag with the parser for what follows it.
type Constructor[T any] struct {
	Tag    string
	Parser poly.Parser[T]
}

// Constructors tries each constructor in order. The first tag that matches
// commits: a failure of its parser is fatal, so later constructors are not
// tried. When no tag matches, every constructor's failure is reported.
func Constructors[T any](table ...Constructor[T]) poly.Parser[T] {
	tags := make([]string, len(table))
	for i, c := range table {
		tags[i] = c.Tag
	}
	checkWords("constructor tag", tags)

	alts := make([]poly.Named[T], len(table))
	for i, c := range table {
		within := "got constructor, but within " + c.Tag + ",\n"
		body := poly.AdjustErrBad(c.Parser, func(msg string) string {
			return within + poly.Indent(2, msg)
		})
		alts[i] = poly.Named[T]{Name: c.Tag, Parser: poly.Then(IsWord(c.Tag), body)}
	}
	return poly.OneOfNamed(alts...)
}

// EnumEntry is one nullary value of an enumeration and its token.
type EnumEntry[T any] struct {
	Token string
	Value T
}

// EnumerationOf reads one of a closed set of nullary values, trying the
// tokens in order. It panics when entries is empty or holds a token twice.
func EnumerationOf[T any](typeName string, entries []EnumEntry[T]) poly.Parser[T] {
	if len(entries) == 0 {
		panic("textparse: empty enumeration for " + typeName)
	}
	tokens := make([]string, len(entries))
	for i, e := range entries {
		tokens[i] = e.Token
	}
	checkWords(typeName+" token", tokens)

	alts := make([]poly.Parser[T], len(entries))
	for i, e := range entries {
		alts[i] = poly.Then(IsWord(e.Token), poly.Return(e.Value))
	}
	expected := fmt.Sprintf("\n  expected %s value (%s)", typeName, alternatives(tokens))
	return poly.AdjustErr(poly.OneOf(alts...), poly.Suffix(expected))
}

// Enumeration is EnumerationOf with each value's token taken from String.
func Enumeration[T fmt.Stringer](typeName string, values ...T) poly.Parser[T] {
	entries := make([]EnumEntry[T], len(values))
	for i, v := range values {
		entries[i] = EnumEntry[T]{Token: v.String(), Value: v}
	}
	return EnumerationOf(typeName, entries)
}

// alternatives renders a, b, or c.
func alternatives(tokens []string) string {
	if len(tokens) == 1 {
		return tokens[0]
	}
	return strings.Join(tokens[:len(tokens)-1], ", ") + ", or " + tokens[len(tokens)-1]
}

// checkWords panics unless every token is a single lexical word and no
// token repeats.
func checkWords(what string, tokens []string) {
	seen := mapset.NewSet()
	for _, tok := range tokens {
		words, _, err := Words(tok)
		if err != nil || len(words) != 1 || words[0] != tok {
			panic(fmt.Sprintf("textparse: %s %q is not a single word", what, tok))
		}
		if !seen.Add(tok) {
			panic(fmt.Sprintf("textparse: duplicate %s %q", what, tok))
		}
	}
}

// RecordField is one named field of a record, read as `name = value`.
type RecordField struct {
	Name   string
	Parser poly.Parser[any]
}

// FieldOf describes a record field whose value is read by r.
func FieldOf[T any](name string, r Reader[T]) RecordField {
	return RecordField{Name: name, Parser: poly.Map(Field(name, r), toAny[T])}
}

// Record is the constructor for `Name {f1 = v1, f2 = v2}`, with the fields
// in the given order. The field values are handed to build in that order.
// Used with Constructors, every failure after the name is fatal.
func Record[T any](name string, build func(values []any) T, fields ...RecordField) Constructor[T] {
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name
	}
	checkWords(name+" field", names)

	body := func(in string) poly.Result[T] {
		res := IsWord("{")(in)
		if res.Failed() {
			return poly.Forward[T](res)
		}
		in = res.Rest
		values := make([]any, 0, len(fields))
		for i, f := range fields {
			if i > 0 {
				sep := IsWord(",")(in)
				if sep.Failed() {
					return poly.Forward[T](sep)
				}
				in = sep.Rest
			}
			fr := f.Parser(in)
			if fr.Failed() {
				return poly.Forward[T](fr)
			}
			values = append(values, fr.Value)
			in = fr.Rest
		}
		closing := IsWord("}")(in)
		if closing.Failed() {
			return poly.Forward[T](closing)
		}
		return poly.Success(build(values), closing.Rest)
	}
	return Constructor[T]{Tag: name, Parser: body}
}
