package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandscript/go-sandscript/ast"
	"github.com/sandscript/go-sandscript/errs"
)

func TestParseLiterals(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		source string
		want   any
	}{
		{"integer", "42", float64(42)},
		{"float", "1.5", float64(1.5)},
		{"string", `"hello"`, "hello"},
		{"single quoted", `'hi'`, "hi"},
		{"true", "true", true},
		{"false", "false", false},
		{"null", "null", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			node, err := Parse(tt.source)
			require.NoError(t, err)
			lit, ok := node.(*ast.Literal)
			require.True(t, ok, "expected literal, got %T", node)
			assert.Equal(t, tt.want, lit.Value)
		})
	}
}

func TestParseOperators(t *testing.T) {
	t.Parallel()

	t.Run("binary", func(t *testing.T) {
		t.Parallel()
		node, err := Parse("1 + 2")
		require.NoError(t, err)
		bin, ok := node.(*ast.Binary)
		require.True(t, ok)
		assert.Equal(t, "+", bin.Op)
		assert.Equal(t, float64(1), bin.Left.(*ast.Literal).Value)
		assert.Equal(t, float64(2), bin.Right.(*ast.Literal).Value)
	})

	t.Run("precedence is resolved by the parser", func(t *testing.T) {
		t.Parallel()
		node, err := Parse("1 + 2 * 3")
		require.NoError(t, err)
		bin := node.(*ast.Binary)
		assert.Equal(t, "+", bin.Op)
		inner := bin.Right.(*ast.Binary)
		assert.Equal(t, "*", inner.Op)
	})

	t.Run("logical operators become logical nodes", func(t *testing.T) {
		t.Parallel()
		for _, op := range []string{"&&", "||", "??"} {
			node, err := Parse("a " + op + " b")
			require.NoError(t, err)
			logical, ok := node.(*ast.Logical)
			require.True(t, ok, "operator %s", op)
			assert.Equal(t, op, logical.Op)
		}
	})

	t.Run("unary", func(t *testing.T) {
		t.Parallel()
		node, err := Parse("!x")
		require.NoError(t, err)
		un := node.(*ast.Unary)
		assert.Equal(t, "!", un.Op)
	})

	t.Run("typeof", func(t *testing.T) {
		t.Parallel()
		node, err := Parse("typeof x")
		require.NoError(t, err)
		assert.Equal(t, "typeof", node.(*ast.Unary).Op)
	})

	t.Run("conditional", func(t *testing.T) {
		t.Parallel()
		node, err := Parse("a ? b : c")
		require.NoError(t, err)
		_, ok := node.(*ast.Conditional)
		assert.True(t, ok)
	})
}

func TestParseMembersAndCalls(t *testing.T) {
	t.Parallel()

	t.Run("dot member", func(t *testing.T) {
		t.Parallel()
		node, err := Parse("user.name")
		require.NoError(t, err)
		m := node.(*ast.Member)
		assert.Equal(t, "name", m.Name)
		assert.False(t, m.Computed)
	})

	t.Run("bracket member", func(t *testing.T) {
		t.Parallel()
		node, err := Parse("user[key]")
		require.NoError(t, err)
		m := node.(*ast.Member)
		assert.True(t, m.Computed)
		assert.Equal(t, "key", m.Property.(*ast.Ident).Name)
	})

	t.Run("call with arguments", func(t *testing.T) {
		t.Parallel()
		node, err := Parse("f(1, x)")
		require.NoError(t, err)
		call := node.(*ast.Call)
		require.Len(t, call.Args, 2)
		assert.Equal(t, "f", call.Callee.(*ast.Ident).Name)
	})

	t.Run("spread argument", func(t *testing.T) {
		t.Parallel()
		node, err := Parse("f(...xs)")
		require.NoError(t, err)
		call := node.(*ast.Call)
		require.Len(t, call.Args, 1)
		_, ok := call.Args[0].(*ast.Spread)
		assert.True(t, ok)
	})

	t.Run("new with identifier target", func(t *testing.T) {
		t.Parallel()
		node, err := Parse("new Date(0)")
		require.NoError(t, err)
		n := node.(*ast.New)
		assert.Equal(t, "Date", n.Name)
		assert.Len(t, n.Args, 1)
	})

	t.Run("new with member target rejected", func(t *testing.T) {
		t.Parallel()
		_, err := Parse("new a.b()")
		assert.ErrorIs(t, err, errs.ErrSyntax)
	})
}

func TestParseOptionalChaining(t *testing.T) {
	t.Parallel()

	t.Run("optional member", func(t *testing.T) {
		t.Parallel()
		node, err := Parse("a?.b")
		require.NoError(t, err)
		chain, ok := node.(*ast.Chain)
		require.True(t, ok, "expected chain wrapper, got %T", node)
		member, ok := chain.Expr.(*ast.Member)
		require.True(t, ok)
		assert.True(t, member.Optional)
		assert.Equal(t, "b", member.Name)
		assert.Equal(t, "a", member.Object.(*ast.Ident).Name)
	})

	t.Run("every hop can be optional", func(t *testing.T) {
		t.Parallel()
		node, err := Parse("a?.b?.c")
		require.NoError(t, err)
		chain, ok := node.(*ast.Chain)
		require.True(t, ok, "expected chain wrapper, got %T", node)
		outer, ok := chain.Expr.(*ast.Member)
		require.True(t, ok)
		assert.True(t, outer.Optional)
		assert.Equal(t, "c", outer.Name)
		inner, ok := outer.Object.(*ast.Member)
		require.True(t, ok)
		assert.True(t, inner.Optional)
		assert.Equal(t, "b", inner.Name)
	})

	t.Run("plain access after an optional hop stays plain", func(t *testing.T) {
		t.Parallel()
		node, err := Parse("a?.b.c")
		require.NoError(t, err)
		chain, ok := node.(*ast.Chain)
		require.True(t, ok, "expected chain wrapper, got %T", node)
		outer, ok := chain.Expr.(*ast.Member)
		require.True(t, ok)
		assert.False(t, outer.Optional)
		assert.Equal(t, "c", outer.Name)
		inner, ok := outer.Object.(*ast.Member)
		require.True(t, ok)
		assert.True(t, inner.Optional)
	})

	t.Run("optional bracket access", func(t *testing.T) {
		t.Parallel()
		node, err := Parse("a?.[0]")
		require.NoError(t, err)
		chain, ok := node.(*ast.Chain)
		require.True(t, ok, "expected chain wrapper, got %T", node)
		member, ok := chain.Expr.(*ast.Member)
		require.True(t, ok)
		assert.True(t, member.Optional)
		assert.True(t, member.Computed)
	})

	t.Run("optional call", func(t *testing.T) {
		t.Parallel()
		node, err := Parse("f?.()")
		require.NoError(t, err)
		chain, ok := node.(*ast.Chain)
		require.True(t, ok, "expected chain wrapper, got %T", node)
		call, ok := chain.Expr.(*ast.Call)
		require.True(t, ok)
		assert.True(t, call.Optional)
		assert.Equal(t, "f", call.Callee.(*ast.Ident).Name)
	})
}

func TestParseCollections(t *testing.T) {
	t.Parallel()

	t.Run("array literal", func(t *testing.T) {
		t.Parallel()
		node, err := Parse("[1, 2, ...rest]")
		require.NoError(t, err)
		arr := node.(*ast.Array)
		require.Len(t, arr.Elems, 3)
		_, ok := arr.Elems[2].(*ast.Spread)
		assert.True(t, ok)
	})

	t.Run("object literal", func(t *testing.T) {
		t.Parallel()
		node, err := Parse(`({a: 1, "b": 2, c})`)
		require.NoError(t, err)
		obj := node.(*ast.Object)
		require.Len(t, obj.Props, 3)
		assert.Equal(t, "a", obj.Props[0].Key)
		assert.Equal(t, "b", obj.Props[1].Key)
		assert.Equal(t, "c", obj.Props[2].Key)
		assert.Equal(t, "c", obj.Props[2].Value.(*ast.Ident).Name)
	})

	t.Run("computed key", func(t *testing.T) {
		t.Parallel()
		node, err := Parse("({[k]: 1})")
		require.NoError(t, err)
		obj := node.(*ast.Object)
		require.Len(t, obj.Props, 1)
		assert.True(t, obj.Props[0].Computed)
	})
}

func TestParseArrow(t *testing.T) {
	t.Parallel()

	t.Run("single parameter", func(t *testing.T) {
		t.Parallel()
		node, err := Parse("x => x + 1")
		require.NoError(t, err)
		arrow := node.(*ast.Arrow)
		assert.Equal(t, []string{"x"}, arrow.Params)
		_, ok := arrow.Body.(*ast.Binary)
		assert.True(t, ok)
	})

	t.Run("multiple parameters", func(t *testing.T) {
		t.Parallel()
		node, err := Parse("(a, b) => a * b")
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b"}, node.(*ast.Arrow).Params)
	})

	t.Run("block body rejected", func(t *testing.T) {
		t.Parallel()
		_, err := Parse("x => { return x }")
		assert.ErrorIs(t, err, errs.ErrSyntax)
	})

	t.Run("rest parameter rejected", func(t *testing.T) {
		t.Parallel()
		_, err := Parse("(...xs) => xs")
		assert.ErrorIs(t, err, errs.ErrSyntax)
	})

	t.Run("default parameter rejected", func(t *testing.T) {
		t.Parallel()
		_, err := Parse("(x = 1) => x")
		assert.ErrorIs(t, err, errs.ErrSyntax)
	})
}

func TestParseTemplateLiteral(t *testing.T) {
	t.Parallel()

	node, err := Parse("`a${x}b`")
	require.NoError(t, err)
	tmpl := node.(*ast.Template)
	assert.Equal(t, []string{"a", "b"}, tmpl.Quasis)
	require.Len(t, tmpl.Exprs, 1)
	assert.Equal(t, "x", tmpl.Exprs[0].(*ast.Ident).Name)
}

func TestParseRegexLiteral(t *testing.T) {
	t.Parallel()

	node, err := Parse("/ab+c/i")
	require.NoError(t, err)
	re := node.(*ast.Regex)
	assert.Equal(t, "ab+c", re.Pattern)
	assert.Equal(t, "i", re.Flags)
}

func TestParseRejections(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		source string
	}{
		{"empty input", ""},
		{"statement", "let x = 1"},
		{"two statements", "1; 2"},
		{"assignment", "a = 1"},
		{"compound assignment", "a += 1"},
		{"update expression", "a++"},
		{"if statement", "if (a) { b }"},
		{"tagged template", "tag`x`"},
		{"unterminated string", `"abc`},
		{"garbage", "1 +"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Parse(tt.source)
			require.Error(t, err)
			assert.ErrorIs(t, err, errs.ErrSyntax)
		})
	}
}

func TestParseSpans(t *testing.T) {
	t.Parallel()

	node, err := Parse("foo + 1")
	require.NoError(t, err)
	bin := node.(*ast.Binary)
	assert.Equal(t, 0, bin.Left.Span().Start)
	assert.Equal(t, 3, bin.Left.Span().End)
}
