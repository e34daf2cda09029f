// Package ast defines the expression tree consumed by the evaluator.
//
// The node set is closed: every node type carries an unexported marker
// method, so the evaluator's type switch over ast.Node is exhaustive and a
// new node kind cannot be added without the evaluator failing to handle it
// in review. Nodes are immutable once built and never modified by the
// evaluator.
package ast

// Span is a half-open byte range [Start, End) into the original source text.
type Span struct {
	Start int
	End   int
}

// Node is an expression tree node.
type Node interface {
	node()
	Span() Span
}

// Literal is a number, string, boolean or null literal. Numbers are always
// float64, null is a nil Value.
type Literal struct {
	Value any
	Pos   Span
}

// Ident is an identifier resolved against the scope chain.
type Ident struct {
	Name string
	Pos  Span
}

// Binary is an arithmetic, comparison or bitwise operator application.
// Logical operators live in Logical because they short-circuit.
type Binary struct {
	Op    string
	Left  Node
	Right Node
	Pos   Span
}

// Logical is a short-circuiting operator: "&&", "||" or "??". Right is only
// evaluated when Left does not determine the result.
type Logical struct {
	Op    string
	Left  Node
	Right Node
	Pos   Span
}

// Unary is a prefix operator: "-", "+", "!", "~", "typeof", "void" or
// "delete". The evaluator rejects "delete" unconditionally.
type Unary struct {
	Op      string
	Operand Node
	Pos     Span
}

// Member is property access. For a static name (a.b) Name is set; for a
// computed access (a[b]) Property holds the key expression. Optional marks
// the ?. form.
type Member struct {
	Object   Node
	Property Node
	Name     string
	Computed bool
	Optional bool
	Pos      Span
}

// Call is a function invocation. Optional marks the ?.() form.
type Call struct {
	Callee   Node
	Args     []Node
	Optional bool
	Pos      Span
}

// New is constructor invocation. Only identifier targets are representable;
// the parser rejects anything else.
type New struct {
	Name string
	Args []Node
	Pos  Span
}

// Conditional is the ternary operator. Exactly one branch is evaluated.
type Conditional struct {
	Test Node
	Then Node
	Else Node
	Pos  Span
}

// Array is an array literal. Elements may be Spread nodes.
type Array struct {
	Elems []Node
	Pos   Span
}

// Property is one entry of an object literal. When Spread is set, Value is
// the spread operand and the key fields are unused. When Computed is set,
// KeyExpr holds the key expression; otherwise Key holds the static name.
type Property struct {
	Key      string
	KeyExpr  Node
	Value    Node
	Computed bool
	Spread   bool
}

// Object is an object literal.
type Object struct {
	Props []Property
	Pos   Span
}

// Spread is a spread element inside an array literal or argument list.
type Spread struct {
	Operand Node
	Pos     Span
}

// Arrow is an arrow function with identifier-only parameters and an
// expression body. Source preserves the original text for stringification.
type Arrow struct {
	Params []string
	Body   Node
	Source string
	Pos    Span
}

// Template is a backtick template literal: len(Quasis) == len(Exprs)+1.
type Template struct {
	Quasis []string
	Exprs  []Node
	Pos    Span
}

// Regex is a regular expression literal.
type Regex struct {
	Pattern string
	Flags   string
	Pos     Span
}

// This is the this-expression. The evaluator rejects it unconditionally.
type This struct {
	Pos Span
}

// Chain wraps an expression containing optional links (?.). When any link
// short-circuits, the whole chain yields undefined.
type Chain struct {
	Expr Node
	Pos  Span
}

func (*Literal) node()     {}
func (*Ident) node()       {}
func (*Binary) node()      {}
func (*Logical) node()     {}
func (*Unary) node()       {}
func (*Member) node()      {}
func (*Call) node()        {}
func (*New) node()         {}
func (*Conditional) node() {}
func (*Array) node()       {}
func (*Object) node()      {}
func (*Spread) node()      {}
func (*Arrow) node()       {}
func (*Template) node()    {}
func (*Regex) node()       {}
func (*This) node()        {}
func (*Chain) node()       {}

func (n *Literal) Span() Span     { return n.Pos }
func (n *Ident) Span() Span       { return n.Pos }
func (n *Binary) Span() Span      { return n.Pos }
func (n *Logical) Span() Span     { return n.Pos }
func (n *Unary) Span() Span       { return n.Pos }
func (n *Member) Span() Span      { return n.Pos }
func (n *Call) Span() Span        { return n.Pos }
func (n *New) Span() Span         { return n.Pos }
func (n *Conditional) Span() Span { return n.Pos }
func (n *Array) Span() Span       { return n.Pos }
func (n *Object) Span() Span      { return n.Pos }
func (n *Spread) Span() Span      { return n.Pos }
func (n *Arrow) Span() Span       { return n.Pos }
func (n *Template) Span() Span    { return n.Pos }
func (n *Regex) Span() Span       { return n.Pos }
func (n *This) Span() Span        { return n.Pos }
func (n *Chain) Span() Span       { return n.Pos }
