package textparse

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/henrylaxen/polyparse/poly"
)

func TestMaybe(t *testing.T) {
	r := MaybeOf(Int)

	for _, input := range []string{"Just 5", "(Just 5)", " ( Just (5) ) "} {
		m, err := ReadAll(r, input)
		require.NoError(t, err, input)
		assert.Equal(t, Just(5), m, input)
	}

	m, err := ReadAll(r, "Nothing")
	require.NoError(t, err)
	assert.Equal(t, Nothing[int](), m)
	_, ok := m.Get()
	assert.False(t, ok)

	m, err = ReadAll(r, "Just (-5)")
	require.NoError(t, err)
	v, ok := m.Get()
	assert.True(t, ok)
	assert.Equal(t, -5, v)
}

func TestMaybeFailures(t *testing.T) {
	r := MaybeOf(Int)

	_, err := ReadAll(r, "Just x")
	require.Error(t, err)
	assert.True(t, IsFatal(err))
	msg := err.(*ParseError).Message
	assert.True(t, strings.HasPrefix(msg, "expected a Maybe (Just or Nothing)\n  "), msg)
	assert.Contains(t, msg, "but within Just, ")

	_, err = ReadAll(r, "Perhaps 5")
	require.Error(t, err)
	assert.False(t, IsFatal(err))
	assert.Contains(t, err.Error(), "expected a Maybe (Just or Nothing)")

	_, err = ReadAll(r, "Just 5 6")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected trailing input")
}

func TestPrecedenceEnforcement(t *testing.T) {
	r := EitherOf(MaybeOf(Int), Bool)

	e, err := ReadAll(r, "Left (Just 5)")
	require.NoError(t, err)
	assert.Equal(t, Left[Maybe[int], bool](Just(5)), e)

	// Nested in an application context the whole value needs parentheses.
	nested := r.ParsePrec(appPrec + 1)
	res := nested("Left (Just 5)")
	assert.True(t, res.Soft())

	res = nested("(Left (Just 5))")
	require.False(t, res.Failed(), res.Msg)
	assert.Equal(t, Left[Maybe[int], bool](Just(5)), res.Value)

	// A bare application as a constructor argument is rejected.
	_, err = ReadAll(r, "Left Just 5")
	require.Error(t, err)
	assert.True(t, IsFatal(err))

	// Nothing never needs parentheses.
	e, err = ReadAll(r, "Left Nothing")
	require.NoError(t, err)
	assert.Equal(t, Left[Maybe[int], bool](Nothing[int]()), e)

	e, err = ReadAll(r, "Right True")
	require.NoError(t, err)
	assert.Equal(t, Right[Maybe[int]](true), e)
}

func TestCommittedConstructorNotSwallowed(t *testing.T) {
	// An outer alternation that would accept the input as a different type
	// must not be tried once Just has matched.
	other := poly.Map(IsWord("Just"), func(string) Maybe[int] { return Nothing[int]() })
	p := poly.OnFail(MaybeOf(Int).Parse(), other)

	res := p("Just oops")
	assert.True(t, res.Fatal)
	assert.Contains(t, res.Msg, "but within Just")

	res = p("Just 3")
	require.False(t, res.Failed())
	assert.Equal(t, Just(3), res.Value)
}

func TestEither(t *testing.T) {
	r := EitherOf(Int, String)

	e, err := ReadAll(r, `Right "x"`)
	require.NoError(t, err)
	assert.Equal(t, Right[int](`x`), e)

	e, err = ReadAll(r, `(Left 4)`)
	require.NoError(t, err)
	assert.Equal(t, Left[int, string](4), e)

	_, err = ReadAll(r, `Left "x"`)
	require.Error(t, err)
	assert.True(t, IsFatal(err))
	assert.Contains(t, err.Error(), "got constructor, but within Left,")

	_, err = ReadAll(r, `Middle 1`)
	require.Error(t, err)
	assert.False(t, IsFatal(err))
}

func TestEitherConstructorsBuiltOnce(t *testing.T) {
	r := EitherOf(Int, String)
	bare := poly.Return(Left[int, string](0))
	want := testing.AllocsPerRun(50, func() { _ = Parens(true, bare) })
	got := testing.AllocsPerRun(50, func() { _ = r.ParsePrec(appPrec + 1) })
	assert.Equal(t, want, got)
}

func TestTuples(t *testing.T) {
	p, err := ReadAll(PairOf(Int, Char), " ( 1 , 'x' ) ")
	require.NoError(t, err)
	assert.Equal(t, Pair[int, rune]{1, 'x'}, p)

	p2, err := ReadAll(PairOf(MaybeOf(Int), Bool), "(Just 1,True)")
	require.NoError(t, err)
	assert.Equal(t, Pair[Maybe[int], bool]{Just(1), true}, p2)

	tr, err := ReadAll(TripleOf(Int, String, ListOf(Int)), `(-1,"a",[2,3])`)
	require.NoError(t, err)
	want := Triple[int, string, []int]{-1, "a", []int{2, 3}}
	if diff := cmp.Diff(want, tr); diff != "" {
		t.Errorf("triple mismatch (-want +got):\n%s", diff)
	}

	tests := []struct {
		input string
		msg   string
	}{
		{"1,2)", "Opening a 2-tuple"},
		{"(x,2)", "In 1st item of a 2-tuple"},
		{"(1 2)", "Separating a 2-tuple"},
		{"(1,y)", "In 2nd item of a 2-tuple"},
		{"(1,2", "Closing a 2-tuple"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := ReadAll(PairOf(Int, Int), tt.input)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}

	_, err = ReadAll(TripleOf(Int, Int, Int), "(1,2 3)")
	assert.Contains(t, err.Error(), "Separating(2) a 3-tuple")
	_, err = ReadAll(TripleOf(Int, Int, Int), "(1,2,z)")
	assert.Contains(t, err.Error(), "In 3rd item of a 3-tuple")
}

func TestLists(t *testing.T) {
	r := ListOf(Int)

	xs, err := ReadAll(r, "[1,2,3]")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, xs)

	for _, input := range []string{"[]", "[ ]", " [ ] "} {
		xs, err = ReadAll(r, input)
		require.NoError(t, err, input)
		assert.Empty(t, xs)
	}

	xs, err = ReadAll(r, "[ -1 , (2) ,3 ]")
	require.Error(t, err, "list elements are read with Parse")

	xs, err = ReadAll(r, "[ -1 , 2 ,3 ]")
	require.NoError(t, err)
	assert.Equal(t, []int{-1, 2, 3}, xs)

	_, err = ReadAll(r, "[1,2")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Expected a list")
	assert.True(t, IsFatal(err))

	_, err = ReadAll(r, "1,2]")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Expected a list")
	assert.False(t, IsFatal(err))

	nested, err := ReadAll(ListOf(ListOf(MaybeOf(Bool))), "[[Just True,Nothing],[],[Just False]]")
	require.NoError(t, err)
	want := [][]Maybe[bool]{{Just(true), Nothing[bool]()}, {}, {Just(false)}}
	if diff := cmp.Diff(want, nested); diff != "" {
		t.Errorf("nested list mismatch (-want +got):\n%s", diff)
	}

	strs, err := ReadAll(ListOf(String), `["a","b\"c"]`)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", `b"c`}, strs)
}

func TestErase(t *testing.T) {
	r := Erase(ListOf(Char))
	v, err := ReadAll(r, `"hi"`)
	require.NoError(t, err)
	assert.Equal(t, []rune("hi"), v)

	list, err := ReadAll(ListOf(Erase(Char)), `"ok"`)
	require.NoError(t, err)
	assert.Equal(t, []any{'o', 'k'}, list)

	assert.Panics(t, func() {
		Instance[int]{}.Parse()
	})
}
