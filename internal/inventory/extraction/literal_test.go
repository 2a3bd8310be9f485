package extraction

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvp-joe/api-inventory/internal/inventory/parsers"
)

// Test Plan for literal resolution:
// - Missing initializer resolves to nil with "None" representation
// - Scalars: strings (quote styles, prefixes, escapes), ints (bases,
//   underscores), floats, booleans, None
// - Flat aggregates of scalars resolve; any non-literal element poisons
//   the whole aggregate but keeps the source representation
// - Dicts resolve keys and values independently
// - Unresolvable expressions keep their verbatim source text

func TestResolveLiteral_NoInitializer(t *testing.T) {
	t.Parallel()

	value, repr := ResolveLiteral(nil)
	assert.Nil(t, value)
	assert.Equal(t, "None", repr)
}

func TestResolveLiteral_Scalars(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		expr parsers.Expr
		want any
	}{
		{"int", parsers.Expr{Kind: parsers.ExprInt, Text: "10"}, int64(10)},
		{"hex int", parsers.Expr{Kind: parsers.ExprInt, Text: "0x10"}, int64(16)},
		{"underscored int", parsers.Expr{Kind: parsers.ExprInt, Text: "1_000"}, int64(1000)},
		{"float", parsers.Expr{Kind: parsers.ExprFloat, Text: "1.5"}, 1.5},
		{"true", parsers.Expr{Kind: parsers.ExprBool, Text: "True"}, true},
		{"false", parsers.Expr{Kind: parsers.ExprBool, Text: "False"}, false},
		{"double quoted", parsers.Expr{Kind: parsers.ExprString, Text: `"hi"`}, "hi"},
		{"single quoted", parsers.Expr{Kind: parsers.ExprString, Text: `'hi'`}, "hi"},
		{"triple quoted", parsers.Expr{Kind: parsers.ExprString, Text: `"""multi"""`}, "multi"},
		{"escaped", parsers.Expr{Kind: parsers.ExprString, Text: `"a\nb"`}, "a\nb"},
		{"raw prefix", parsers.Expr{Kind: parsers.ExprString, Text: `r"a\nb"`}, `a\nb`},
		{"unicode prefix", parsers.Expr{Kind: parsers.ExprString, Text: `u"ok"`}, "ok"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			value, repr := ResolveLiteral(&tt.expr)
			assert.Equal(t, tt.want, value)
			assert.Equal(t, tt.expr.Text, repr)
		})
	}
}

func TestResolveLiteral_None(t *testing.T) {
	t.Parallel()

	value, repr := ResolveLiteral(&parsers.Expr{Kind: parsers.ExprNone, Text: "None"})
	assert.Nil(t, value)
	assert.Equal(t, "None", repr)
}

func TestResolveLiteral_FlatList(t *testing.T) {
	t.Parallel()

	expr := parsers.Expr{
		Kind: parsers.ExprList,
		Text: `[1, "two", True]`,
		Elems: []parsers.Expr{
			{Kind: parsers.ExprInt, Text: "1"},
			{Kind: parsers.ExprString, Text: `"two"`},
			{Kind: parsers.ExprBool, Text: "True"},
		},
	}

	value, repr := ResolveLiteral(&expr)
	assert.Equal(t, []any{int64(1), "two", true}, value)
	assert.Equal(t, `[1, "two", True]`, repr)
}

func TestResolveLiteral_NonLiteralElementPoisonsAggregate(t *testing.T) {
	t.Parallel()

	expr := parsers.Expr{
		Kind: parsers.ExprTuple,
		Text: "(1, compute())",
		Elems: []parsers.Expr{
			{Kind: parsers.ExprInt, Text: "1"},
			{Kind: parsers.ExprOther, Text: "compute()"},
		},
	}

	value, repr := ResolveLiteral(&expr)
	assert.Nil(t, value)
	assert.Equal(t, "(1, compute())", repr)
}

func TestResolveLiteral_Dict(t *testing.T) {
	t.Parallel()

	expr := parsers.Expr{
		Kind: parsers.ExprDict,
		Text: `{"a": 1, "b": 2}`,
		Keys: []parsers.Expr{
			{Kind: parsers.ExprString, Text: `"a"`},
			{Kind: parsers.ExprString, Text: `"b"`},
		},
		Values: []parsers.Expr{
			{Kind: parsers.ExprInt, Text: "1"},
			{Kind: parsers.ExprInt, Text: "2"},
		},
	}

	value, _ := ResolveLiteral(&expr)
	m, ok := value.(map[any]any)
	require.True(t, ok)
	assert.Equal(t, int64(1), m["a"])
	assert.Equal(t, int64(2), m["b"])
}

func TestResolveLiteral_Unresolvable(t *testing.T) {
	t.Parallel()

	value, repr := ResolveLiteral(&parsers.Expr{Kind: parsers.ExprOther, Text: "os.environ"})
	assert.Nil(t, value)
	assert.Equal(t, "os.environ", repr)
}
