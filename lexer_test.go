package textparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextWord(t *testing.T) {
	tests := []struct {
		input string
		word  string
		rest  string
	}{
		{"  Just 5", "Just", " 5"},
		{"(Just 5)", "(", "Just 5)"},
		{"[1,2]", "[", "1,2]"},
		{"42abc", "42", "abc"},
		{"3.14)", "3.14", ")"},
		{"1e3,", "1e3", ","},
		{"1.e3", "1", ".e3"},
		{"2.5e-1 x", "2.5e-1", " x"},
		{"0x1Fg", "0x1F", "g"},
		{"0o17", "0o17", ""},
		{"x' y", "x'", " y"},
		{"->>= 1", "->>=", " 1"},
		{`"a \"b\" c" rest`, `"a \"b\" c"`, " rest"},
		{`"gap\   \here"`, `"gap\   \here"`, ""},
		{`'\''x`, `'\''`, "x"},
		{`'\SOH'`, `'\SOH'`, ""},
		{"_under_score1 ", "_under_score1", " "},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			r := NextWord(tt.input)
			require.False(t, r.Failed(), r.Msg)
			assert.Equal(t, tt.word, r.Value)
			assert.Equal(t, tt.rest, r.Rest)
		})
	}
}

func TestNextWordFailures(t *testing.T) {
	for _, input := range []string{"", "   \t\n"} {
		r := NextWord(input)
		assert.True(t, r.Soft())
		assert.Equal(t, "no input", r.Msg)
	}

	r := NextWord(`"unterminated`)
	assert.True(t, r.Soft())
	assert.Contains(t, r.Msg, "unterminated string")

	r = NextWord(`'ab'`)
	assert.True(t, r.Soft())
	assert.Contains(t, r.Msg, "malformed character literal")
}

func TestWords(t *testing.T) {
	words, kinds, err := Words(`Just (Left 'x', "s", -1.5e2) {f = []}`)
	require.NoError(t, err)
	assert.Equal(t, []string{"Just", "(", "Left", "'x'", ",", `"s"`, ",", "-", "1.5e2", ")", "{", "f", "=", "[", "]", "}"}, words)
	assert.Equal(t, []WordKind{
		WordIdent, WordSpecial, WordIdent, WordChar, WordSpecial, WordString, WordSpecial,
		WordSymbol, WordNumber, WordSpecial, WordSpecial, WordIdent, WordSymbol,
		WordSpecial, WordSpecial, WordSpecial,
	}, kinds)

	words, _, err = Words(`ok "broken`)
	assert.Equal(t, []string{"ok"}, words)
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, 3, pe.Span.Start)
}

func TestWordKindString(t *testing.T) {
	assert.Equal(t, "ident", WordIdent.String())
	assert.Equal(t, "string", WordString.String())
	assert.Equal(t, "unknown", WordKind(99).String())
}

func TestIsWord(t *testing.T) {
	r := IsWord("Just")(" Just 5")
	require.False(t, r.Failed())
	assert.Equal(t, " 5", r.Rest)

	r = ExpectWord("Justify", "Just")
	assert.True(t, r.Soft())
	assert.Equal(t, "expected Just got Justify", r.Msg)
	assert.Equal(t, "Justify", r.Rest)

	r = IsWord("[")("")
	assert.True(t, r.Soft())
	assert.Equal(t, "no input", r.Msg)
}
