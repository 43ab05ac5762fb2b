package textparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCharEscapes(t *testing.T) {
	tests := []struct {
		input string
		want  rune
	}{
		{`'a'`, 'a'},
		{`'"'`, '"'},
		{`'\n'`, '\n'},
		{`'\t'`, '\t'},
		{`'\\'`, '\\'},
		{`'\''`, '\''},
		{`'\65'`, 'A'},
		{`'\o101'`, 'A'},
		{`'\x41'`, 'A'},
		{`'\x1F600'`, '😀'},
		{`'\^A'`, 1},
		{`'\^@'`, 0},
		{`'\^_'`, 0x1f},
		{`'\NUL'`, 0},
		{`'\SOH'`, 1},
		{`'\SO'`, 0x0e},
		{`'\ESC'`, 0x1b},
		{`'\DEL'`, 0x7f},
		{`'\SP'`, ' '},
		{`'é'`, 'é'},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			c, err := ReadAll(Char, tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, c)
		})
	}
}

func TestCharFailures(t *testing.T) {
	tests := []struct {
		input string
		msg   string
		fatal bool
	}{
		{`'\Q'`, "unrecognised escape sequence", false},
		{`'\q'`, "unrecognised escape sequence", false},
		{`'\^a'`, "ctrl-escape malformed", false},
		{`'\1114112'`, "character code out of range", false},
		{`'\xD800'`, "character code out of range", false},
		{`'ab'`, "literal char has no final '", true},
		{`'a`, "literal char has no final '", true},
		{`''`, "expected a literal char", false},
		{`a`, "expected a literal char", false},
		{``, "expected a literal char", false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := ReadAll(Char, tt.input)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
			assert.Equal(t, tt.fatal, IsFatal(err))
		})
	}
}

func TestMnemonicLongestMatch(t *testing.T) {
	code, n, ok := lookupMnemonic("SOH")
	require.True(t, ok)
	assert.Equal(t, rune(1), code)
	assert.Equal(t, 3, n)

	code, n, ok = lookupMnemonic("SOX")
	require.True(t, ok)
	assert.Equal(t, rune(0x0e), code)
	assert.Equal(t, 2, n)

	_, _, ok = lookupMnemonic("QQQ")
	assert.False(t, ok)

	for _, m := range Mnemonics {
		assert.Equal(t, m.Code, mnemonicCodes[m.Name])
	}
}

func TestDecodeString(t *testing.T) {
	tests := []struct {
		body string
		want string
	}{
		{``, ""},
		{`plain`, "plain"},
		{`a\nb`, "a\nb"},
		{`\SO\&H`, "\x0eH"},
		{`\SOH`, "\x01"},
		{`\1234\&5`, "Ӓ5"},
		{`\"quoted\"`, `"quoted"`},
		{"gap\\  \n  \\here", "gaphere"},
		{`\&`, ""},
		{`\^Z`, "\x1a"},
	}
	for _, tt := range tests {
		t.Run(tt.body, func(t *testing.T) {
			got, err := DecodeString(tt.body)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := DecodeString(`bad\Qescape`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unrecognised escape sequence")

	_, err = DecodeString(`open\  gap`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unterminated string gap")
}

func TestStringReader(t *testing.T) {
	s, err := ReadAll(String, ` "hello\tworld" `)
	require.NoError(t, err)
	assert.Equal(t, "hello\tworld", s)

	_, err = ReadAll(String, `hello`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a string")
	assert.False(t, IsFatal(err))

	_, err = ReadAll(String, `"bad \q"`)
	require.Error(t, err)

	cs, err := ReadAll(ListOf(Char), `"abc"`)
	require.NoError(t, err)
	assert.Equal(t, []rune("abc"), cs)

	_, err = ReadAll(ListOf(Char), `['a','b']`)
	require.Error(t, err, "a list of characters is read as a string literal")
}
