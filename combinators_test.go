package textparse

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/henrylaxen/polyparse/poly"
)

func TestBoolEnumeration(t *testing.T) {
	b, err := ReadAll(Bool, "True")
	require.NoError(t, err)
	assert.True(t, b)

	b, err = ReadAll(Bool, " False ")
	require.NoError(t, err)
	assert.False(t, b)

	_, err = ReadAll(Bool, "(True)")
	require.Error(t, err, "Parse itself takes no parentheses")

	r := Bool.ParsePrec(11)("(True)")
	require.False(t, r.Failed())
	assert.True(t, r.Value)

	_, err = ReadAll(Bool, "Maybe")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected Bool value (False, or True)")
	assert.False(t, IsFatal(err))
}

func TestEnumerationTablesBuiltOnce(t *testing.T) {
	assert.Zero(t, testing.AllocsPerRun(50, func() { _ = Bool.Parse() }))
	assert.Zero(t, testing.AllocsPerRun(50, func() { _ = OrderingReader.Parse() }))
}

func TestOrderingEnumeration(t *testing.T) {
	for _, o := range []Ordering{LT, EQ, GT} {
		got, err := ReadAll(OrderingReader, o.String())
		require.NoError(t, err)
		assert.Equal(t, o, got)
	}
	_, err := ReadAll(OrderingReader, "GE")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected Ordering value (LT, EQ, or GT)")
	assert.Equal(t, "Ordering(5)", Ordering(5).String())
}

func TestEnumerationMisuse(t *testing.T) {
	assert.Panics(t, func() { EnumerationOf[int]("Empty", nil) })
	assert.Panics(t, func() {
		EnumerationOf("Dup", []EnumEntry[int]{{"A", 1}, {"A", 2}})
	})
	assert.Panics(t, func() {
		EnumerationOf("Spaced", []EnumEntry[int]{{"Two words", 1}})
	})
}

func TestUnit(t *testing.T) {
	_, err := ReadAll(UnitReader, " ( ) ")
	require.NoError(t, err)

	_, err = ReadAll(UnitReader, "(x)")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Expected ) after (")

	_, err = ReadAll(UnitReader, "x")
	assert.Contains(t, err.Error(), "Expected a (), got x")

	_, err = ReadAll(UnitReader, "")
	assert.Contains(t, err.Error(), "no input")
}

func TestField(t *testing.T) {
	f := Field("age", Int)

	r := f("age = 42}")
	require.False(t, r.Failed(), r.Msg)
	assert.Equal(t, 42, r.Value)
	assert.Equal(t, "}", r.Rest)

	r = f("name = 42")
	assert.True(t, r.Soft())

	r = f("age 42")
	assert.True(t, r.Fatal, "a missing = after the field name is fatal")

	r = f("age = x")
	assert.True(t, r.Fatal)
}

// shape is a user type read through the constructor helpers.
type shape struct {
	Kind   string
	Radius float64
	W, H   int
}

var shapeReader Reader[shape] = Instance[shape]{ParsePrecFn: func(prec int) poly.Parser[shape] {
	return Parens(needsParens(prec), Constructors(
		Constructor[shape]{Tag: "Circle", Parser: poly.Map(argument(Float64), func(r float64) shape {
			return shape{Kind: "Circle", Radius: r}
		})},
		Record("Rect", func(vs []any) shape {
			return shape{Kind: "Rect", W: vs[0].(int), H: vs[1].(int)}
		}, FieldOf("w", Int), FieldOf("h", Int)),
	))
}}

func TestConstructors(t *testing.T) {
	s, err := ReadAll(shapeReader, "Circle 1.5")
	require.NoError(t, err)
	assert.Equal(t, shape{Kind: "Circle", Radius: 1.5}, s)

	s, err = ReadAll(shapeReader, "Rect {w = 3, h = 4}")
	require.NoError(t, err)
	assert.Equal(t, shape{Kind: "Rect", W: 3, H: 4}, s)

	s, err = ReadAll(shapeReader, "(Rect{w=3, h = -4})")
	require.NoError(t, err)
	assert.Equal(t, shape{Kind: "Rect", W: 3, H: -4}, s)
}

func TestConstructorsCommit(t *testing.T) {
	_, err := ReadAll(shapeReader, "Circle x")
	require.Error(t, err)
	assert.True(t, IsFatal(err))
	assert.Contains(t, err.Error(), "got constructor, but within Circle,\n")

	_, err = ReadAll(shapeReader, "Rect {h = 4, w = 3}")
	require.Error(t, err)
	assert.True(t, IsFatal(err), "fields are read in declaration order")

	_, err = ReadAll(shapeReader, "Rect {w = 3, h = 4")
	assert.True(t, IsFatal(err))

	_, err = ReadAll(shapeReader, "Square 2")
	require.Error(t, err)
	assert.False(t, IsFatal(err))
	msg := err.Error()
	assert.Contains(t, msg, "Circle:")
	assert.Contains(t, msg, "Rect:")
	assert.Contains(t, msg, "expected Circle got Square")
}

func TestConstructorsMisuse(t *testing.T) {
	assert.Panics(t, func() {
		Constructors(
			Constructor[int]{Tag: "A", Parser: poly.Return(1)},
			Constructor[int]{Tag: "A", Parser: poly.Return(2)},
		)
	})
	assert.Panics(t, func() {
		Record("R", func([]any) int { return 0 }, FieldOf("x", Int), FieldOf("x", Int))
	})
}

// tree is a recursive user type: Leaf | Node tree Int tree.
type tree struct {
	Leaf        bool
	Left, Right *tree
	Value       int
}

var treeReader Reader[*tree]

func init() {
	treeReader = Instance[*tree]{ParsePrecFn: func(prec int) poly.Parser[*tree] {
		leaf := poly.Then(IsWord("Leaf"), poly.Return(&tree{Leaf: true}))
		node := Parens(needsParens(prec), Constructors(Constructor[*tree]{
			Tag: "Node",
			Parser: poly.Bind(argument(treeReader), func(l *tree) poly.Parser[*tree] {
				return poly.Bind(argument(Int), func(v int) poly.Parser[*tree] {
					return poly.Map(argument(treeReader), func(r *tree) *tree {
						return &tree{Left: l, Value: v, Right: r}
					})
				})
			}),
		}))
		return poly.OnFail(OptionalParens(leaf), node)
	}}
}

func showTree(prec int, t *tree) string {
	if t.Leaf {
		return "Leaf"
	}
	return showParen(needsParens(prec), "Node "+showTree(appPrec+1, t.Left)+" "+
		ShowInt.ShowsPrec(appPrec+1, t.Value)+" "+showTree(appPrec+1, t.Right))
}

func TestRecursiveType(t *testing.T) {
	input := "Node (Node Leaf 1 Leaf) 2 (Node Leaf (-3) (Node Leaf 4 Leaf))"
	got, err := ReadAll(treeReader, input)
	require.NoError(t, err)
	assert.Equal(t, input, showTree(0, got))

	want := &tree{
		Left:  &tree{Left: &tree{Leaf: true}, Value: 1, Right: &tree{Leaf: true}},
		Value: 2,
		Right: &tree{
			Left:  &tree{Leaf: true},
			Value: -3,
			Right: &tree{Left: &tree{Leaf: true}, Value: 4, Right: &tree{Leaf: true}},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("tree mismatch (-want +got):\n%s", diff)
	}

	_, err = ReadAll(treeReader, "Node Node Leaf 1 Leaf 2 Leaf")
	require.Error(t, err)
	assert.True(t, IsFatal(err), "a nested constructor application needs parentheses")
	assert.True(t, strings.Contains(err.Error(), "within Node"))
}
