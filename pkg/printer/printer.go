// Package printer renders a token sequence or a parse tree in the
// reference compiler's exact textual form: the token dump's `#line TAG`
// lines and the tree dump's two-space-indented `#line` / `_tag` / children /
// `: _no_type` shape. Nothing here mutates pkg/ast or internal/lexer types;
// the node-kind tag tables live only in this package, matching the
// separation of presentation from tree structure.
package printer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/scarvalhojr/coolc/pkg/ast"
	"github.com/scarvalhojr/coolc/pkg/token"
)

const indentWidth = 2

// escapeString applies the reference escapes, in order: backslash, \n, \t,
// \b, \f; any other byte is emitted verbatim. Used for both STR_CONST token
// dumps and _string tree-dump nodes.
func escapeString(s string) string {
	var sb strings.Builder
	for _, r := range s {
		switch r {
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\t':
			sb.WriteString(`\t`)
		case '\b':
			sb.WriteString(`\b`)
		case '\f':
			sb.WriteString(`\f`)
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// PrintTokens renders the token dump: a `#name "<filename>"` header
// followed by one `#<line> <TAG>` line per token. The EOF sentinel the
// scanner appends for the parser's benefit is not part of the lexical data
// model and is never printed.
func PrintTokens(tokens []token.Token, filename string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "#name \"%s\"\n", filename)
	for _, tok := range tokens {
		if tok.Type == token.EOF {
			continue
		}
		sb.WriteString(tokenLine(tok))
		sb.WriteByte('\n')
	}
	return sb.String()
}

func tokenLine(tok token.Token) string {
	return fmt.Sprintf("#%d %s", tok.Pos.Line, tokenTag(tok))
}

func tokenTag(tok token.Token) string {
	switch tok.Type {
	case token.STR_CONST:
		return fmt.Sprintf("STR_CONST \"%s\"", escapeString(tok.Literal))
	default:
		return tok.Type.Tag(tok.Literal, tok.IntVal, tok.Literal, tok.BoolVal)
	}
}

// PrintProgram renders the full tree dump for a parsed program. Filenames
// come from each class's own location, threaded there by the parser from
// the source tokens.
func PrintProgram(program *ast.Program) string {
	var sb strings.Builder
	line := 0
	if len(program.Classes) > 0 {
		line = program.Classes[0].Location.Line
	}
	fmt.Fprintf(&sb, "#%d\n_program\n", line)
	for _, class := range program.Classes {
		writeClass(&sb, class, indentWidth)
	}
	return sb.String()
}

func pad(indent int) string {
	return strings.Repeat(" ", indent)
}

func writeClass(sb *strings.Builder, class *ast.Class, indent int) {
	next := indent + indentWidth
	fmt.Fprintf(sb, "%s#%d\n", pad(indent), class.Location.Line)
	fmt.Fprintf(sb, "%s_class\n", pad(indent))
	fmt.Fprintf(sb, "%s%s\n", pad(next), class.Name)
	fmt.Fprintf(sb, "%s%s\n", pad(next), class.SuperName)
	fmt.Fprintf(sb, "%s\"%s\"\n", pad(next), class.Location.Filename)
	fmt.Fprintf(sb, "%s(\n", pad(next))
	for _, feature := range class.Features {
		writeFeature(sb, feature, next)
	}
	fmt.Fprintf(sb, "%s)\n", pad(next))
}

func writeFeature(sb *strings.Builder, feature *ast.Feature, indent int) {
	next := indent + indentWidth
	fmt.Fprintf(sb, "%s#%d\n", pad(indent), feature.Location.Line)
	switch feature.Kind {
	case ast.AttributeFeature:
		fmt.Fprintf(sb, "%s_attr\n", pad(indent))
		fmt.Fprintf(sb, "%s%s\n", pad(next), feature.AttrName)
		fmt.Fprintf(sb, "%s%s\n", pad(next), feature.AttrType)
		writeExprOrNoExpr(sb, feature.Init, next)
	case ast.MethodFeature:
		fmt.Fprintf(sb, "%s_method\n", pad(indent))
		fmt.Fprintf(sb, "%s%s\n", pad(next), feature.MethodName)
		for _, formal := range feature.Formals {
			writeFormal(sb, formal, next)
		}
		fmt.Fprintf(sb, "%s%s\n", pad(next), feature.ReturnType)
		writeExpr(sb, feature.Body, next)
	}
}

func writeFormal(sb *strings.Builder, formal *ast.Formal, indent int) {
	next := indent + indentWidth
	fmt.Fprintf(sb, "%s#%d\n", pad(indent), formal.Location.Line)
	fmt.Fprintf(sb, "%s_formal\n", pad(indent))
	fmt.Fprintf(sb, "%s%s\n", pad(next), formal.Name)
	fmt.Fprintf(sb, "%s%s\n", pad(next), formal.Type)
}

func writeCaseBranch(sb *strings.Builder, branch *ast.CaseBranch, indent int) {
	next := indent + indentWidth
	fmt.Fprintf(sb, "%s#%d\n", pad(indent), branch.Location.Line)
	fmt.Fprintf(sb, "%s_branch\n", pad(indent))
	fmt.Fprintf(sb, "%s%s\n", pad(next), branch.Name)
	fmt.Fprintf(sb, "%s%s\n", pad(next), branch.Type)
	writeExpr(sb, branch.Body, next)
}

// writeExprOrNoExpr prints expr at indent, or a synthetic #0 _no_expr
// block when expr is nil (a missing attribute/let initializer).
func writeExprOrNoExpr(sb *strings.Builder, expr ast.Expression, indent int) {
	if expr == nil {
		fmt.Fprintf(sb, "%s#0\n", pad(indent))
		fmt.Fprintf(sb, "%s_no_expr\n", pad(indent))
		fmt.Fprintf(sb, "%s: _no_type\n", pad(indent))
		return
	}
	writeExpr(sb, expr, indent)
}

// writeExpr prints any expression node: its #line header, its tag and
// children, and the `: _no_type` trailer every expression carries.
func writeExpr(sb *strings.Builder, expr ast.Expression, indent int) {
	fmt.Fprintf(sb, "%s#%d\n", pad(indent), expr.Pos().Line)
	writeExprData(sb, expr, indent)
}

func writeExprData(sb *strings.Builder, expr ast.Expression, indent int) {
	next := indent + indentWidth
	switch e := expr.(type) {
	case *ast.Assign:
		fmt.Fprintf(sb, "%s_assign\n", pad(indent))
		fmt.Fprintf(sb, "%s%s\n", pad(next), e.Name)
		writeExpr(sb, e.Value, next)

	case *ast.UnaryExpr:
		fmt.Fprintf(sb, "%s%s\n", pad(indent), unaryTag(e.Op))
		writeExpr(sb, e.Operand, next)

	case *ast.BinaryExpr:
		fmt.Fprintf(sb, "%s%s\n", pad(indent), binaryTag(e.Op))
		writeExpr(sb, e.Left, next)
		writeExpr(sb, e.Right, next)

	case *ast.MethodCall:
		if e.StaticType != "" {
			fmt.Fprintf(sb, "%s_static_dispatch\n", pad(indent))
			writeExpr(sb, e.Receiver, next)
			fmt.Fprintf(sb, "%s%s\n", pad(next), e.StaticType)
			fmt.Fprintf(sb, "%s%s\n", pad(next), e.Name)
		} else {
			fmt.Fprintf(sb, "%s_dispatch\n", pad(indent))
			writeExpr(sb, e.Receiver, next)
			fmt.Fprintf(sb, "%s%s\n", pad(next), e.Name)
		}
		fmt.Fprintf(sb, "%s(\n", pad(next))
		for _, arg := range e.Args {
			writeExpr(sb, arg, next)
		}
		fmt.Fprintf(sb, "%s)\n", pad(next))

	case *ast.Conditional:
		fmt.Fprintf(sb, "%s_cond\n", pad(indent))
		writeExpr(sb, e.Cond, next)
		writeExpr(sb, e.Then, next)
		writeExpr(sb, e.Else, next)

	case *ast.Loop:
		fmt.Fprintf(sb, "%s_loop\n", pad(indent))
		writeExpr(sb, e.Cond, next)
		writeExpr(sb, e.Body, next)

	case *ast.Case:
		fmt.Fprintf(sb, "%s_typcase\n", pad(indent))
		writeExpr(sb, e.Subject, next)
		for _, branch := range e.Branches {
			writeCaseBranch(sb, branch, next)
		}

	case *ast.Block:
		fmt.Fprintf(sb, "%s_block\n", pad(indent))
		for _, stmt := range e.Exprs {
			writeExpr(sb, stmt, next)
		}

	case *ast.Let:
		fmt.Fprintf(sb, "%s_let\n", pad(indent))
		fmt.Fprintf(sb, "%s%s\n", pad(next), e.Name)
		fmt.Fprintf(sb, "%s%s\n", pad(next), e.Type)
		writeExprOrNoExpr(sb, e.Init, next)
		writeExpr(sb, e.Body, next)

	case *ast.New:
		fmt.Fprintf(sb, "%s_new\n", pad(indent))
		fmt.Fprintf(sb, "%s%s\n", pad(next), e.TypeName)

	case *ast.Object:
		fmt.Fprintf(sb, "%s_object\n", pad(indent))
		fmt.Fprintf(sb, "%s%s\n", pad(next), e.Name)

	case *ast.IntLiteral:
		fmt.Fprintf(sb, "%s_int\n", pad(indent))
		fmt.Fprintf(sb, "%s%s\n", pad(next), strconv.FormatInt(int64(e.Value), 10))

	case *ast.StrLiteral:
		fmt.Fprintf(sb, "%s_string\n", pad(indent))
		fmt.Fprintf(sb, "%s\"%s\"\n", pad(next), escapeString(e.Value))

	case *ast.BoolLiteral:
		fmt.Fprintf(sb, "%s_bool\n", pad(indent))
		v := 0
		if e.Value {
			v = 1
		}
		fmt.Fprintf(sb, "%s%d\n", pad(next), v)

	default:
		panic(fmt.Sprintf("printer: unhandled expression node %T", expr))
	}
	fmt.Fprintf(sb, "%s: _no_type\n", pad(indent))
}

func unaryTag(op ast.UnaryOp) string {
	switch op {
	case ast.Not:
		return "_comp"
	case ast.IsVoid:
		return "_isvoid"
	case ast.Negative:
		return "_neg"
	default:
		panic("printer: unhandled unary operator")
	}
}

func binaryTag(op ast.BinaryOp) string {
	switch op {
	case ast.Equals:
		return "_eq"
	case ast.LessThan:
		return "_lt"
	case ast.LessThanOrEquals:
		return "_leq"
	case ast.Add:
		return "_plus"
	case ast.Subtract:
		return "_sub"
	case ast.Multiply:
		return "_mul"
	case ast.Divide:
		return "_divide"
	default:
		panic("printer: unhandled binary operator")
	}
}
