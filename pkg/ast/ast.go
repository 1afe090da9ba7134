// Package ast defines the parse-tree node types produced by
// internal/parser: programs, classes, features, formals, case branches and
// expressions. Nodes are plain value-holding structs; nothing here knows how
// to print itself in the reference compiler's dump format — that lives in
// pkg/printer, kept separate so the tree stays free of presentation concerns.
package ast

import "github.com/scarvalhojr/coolc/pkg/token"

// Node is implemented by every parse-tree type. Pos returns the position of
// the node's first defining token, per the location-assignment rule.
type Node interface {
	Pos() token.Position
}

// Program is the root of a parse tree: one or more classes.
type Program struct {
	Classes []*Class
}

// Pos returns the position of the first class, or a zero-valued invalid
// position if the program has no classes (the printer falls back to line 0
// in that case).
func (p *Program) Pos() token.Position {
	if len(p.Classes) == 0 {
		return token.Position{}
	}
	return p.Classes[0].Pos()
}

// Class is `class Name inherits Super { features... }`. SuperName defaults
// to "Object" when no `inherits` clause is present.
type Class struct {
	Name      string
	SuperName string
	Features  []*Feature
	Location  token.Position
}

func (c *Class) Pos() token.Position { return c.Location }

// FeatureKind distinguishes the two feature shapes a class body can hold.
type FeatureKind int

const (
	AttributeFeature FeatureKind = iota
	MethodFeature
)

// Feature is a class member: either an attribute or a method. Exactly one
// of the Attribute-only or Method-only fields is meaningful, selected by
// Kind.
type Feature struct {
	Kind     FeatureKind
	Location token.Position

	// Attribute fields
	AttrName string
	AttrType string
	Init     Expression // nil when absent

	// Method fields
	MethodName string
	ReturnType string
	Formals    []*Formal
	Body       Expression
}

func (f *Feature) Pos() token.Position { return f.Location }

// Formal is a single method parameter declaration.
type Formal struct {
	Name     string
	Type     string
	Location token.Position
}

func (fo *Formal) Pos() token.Position { return fo.Location }

// CaseBranch is one `id : Type => expr` arm of a `case` expression.
type CaseBranch struct {
	Name     string
	Type     string
	Body     Expression
	Location token.Position
}

func (cb *CaseBranch) Pos() token.Position { return cb.Location }

// UnaryOp enumerates the three prefix operators.
type UnaryOp int

const (
	Not UnaryOp = iota
	IsVoid
	Negative
)

// BinaryOp enumerates the non-assoc comparison and arithmetic operators.
type BinaryOp int

const (
	Equals BinaryOp = iota
	LessThan
	LessThanOrEquals
	Add
	Subtract
	Multiply
	Divide
)

// Expression is implemented by every expression node.
type Expression interface {
	Node
	expressionNode()
}

type Base struct {
	Location token.Position
}

func (b Base) Pos() token.Position { return b.Location }
func (Base) expressionNode()       {}

// Assign is `Ident <- Expression`.
type Assign struct {
	Base
	Name  string
	Value Expression
}

// UnaryExpr is a prefix operator applied to one operand.
type UnaryExpr struct {
	Base
	Op      UnaryOp
	Operand Expression
}

// BinaryExpr is an infix operator applied to two operands.
type BinaryExpr struct {
	Base
	Op    BinaryOp
	Left  Expression
	Right Expression
}

// MethodCall is a (possibly static) dispatch: `receiver[@Type].name(args)`.
// StaticType is empty for a dynamic dispatch.
type MethodCall struct {
	Base
	Receiver   Expression
	StaticType string
	Name       string
	Args       []Expression
}

// Conditional is `if Cond then Then else Else fi`.
type Conditional struct {
	Base
	Cond Expression
	Then Expression
	Else Expression
}

// Loop is `while Cond loop Body pool`.
type Loop struct {
	Base
	Cond Expression
	Body Expression
}

// Case is `case Subject of branch+ esac`.
type Case struct {
	Base
	Subject  Expression
	Branches []*CaseBranch
}

// Block is `{ expr; expr; ... }`, at least one expression.
type Block struct {
	Base
	Exprs []Expression
}

// Let is a single binding `let Name:Type [<- Init] in Body`. A multi-binding
// `let` desugars at parse time into nested Let nodes, each carrying the
// position of its own binding clause.
type Let struct {
	Base
	Name string
	Type string
	Init Expression // nil when absent
	Body Expression
}

// New is `new TypeId`.
type New struct {
	Base
	TypeName string
}

// Object is a bare identifier reference.
type Object struct {
	Base
	Name string
}

// IntLiteral is a decimal integer literal, already parsed into int32.
type IntLiteral struct {
	Base
	Value int32
}

// StrLiteral is a string literal with escapes already decoded.
type StrLiteral struct {
	Base
	Value string
}

// BoolLiteral is `true` or `false`.
type BoolLiteral struct {
	Base
	Value bool
}
