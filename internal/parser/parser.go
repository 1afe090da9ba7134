// Package parser implements Cool's recursive-descent, precedence-climbing
// expression parser. The cursor-over-a-token-slice shape follows the
// teacher's parser; the grammar itself (nine precedence tiers, one function
// per tier, right-fold let, left-fold chained dispatch) is Cool's.
package parser

import (
	"fmt"

	"github.com/scarvalhojr/coolc/pkg/ast"
	"github.com/scarvalhojr/coolc/pkg/token"
)

// Error is returned for the first token that did not satisfy the expected
// production. The parser never returns a partial tree alongside an error.
type Error struct {
	Message  string
	Pos      token.Position
	Expected []string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s at %s", e.Message, e.Pos)
}

// Parser walks a fixed token slice produced by the lexer.
type Parser struct {
	tokens []token.Token
	pos    int
}

// New constructs a Parser over tokens, which must be terminated by an EOF
// token (as Lexer.Lex produces).
func New(tokens []token.Token) *Parser {
	return &Parser{tokens: tokens}
}

// Parse consumes the token sequence given to New and returns the program it
// denotes, or the first parse error encountered.
func Parse(tokens []token.Token) (*ast.Program, error) {
	return New(tokens).ParseProgram()
}

func (p *Parser) cur() token.Token {
	return p.tokens[p.pos]
}

func (p *Parser) peek() token.Token {
	if p.pos+1 < len(p.tokens) {
		return p.tokens[p.pos+1]
	}
	return p.tokens[len(p.tokens)-1]
}

func (p *Parser) advance() token.Token {
	tok := p.cur()
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return tok
}

func (p *Parser) expect(typ token.Type, what string) (token.Token, error) {
	if p.cur().Type != typ {
		return token.Token{}, p.unexpected(what)
	}
	return p.advance(), nil
}

func (p *Parser) unexpected(expected string) error {
	return &Error{
		Message:  fmt.Sprintf("unexpected token %s, expected %s", p.cur().Type.Tag(p.cur().Literal, p.cur().IntVal, p.cur().Literal, p.cur().BoolVal), expected),
		Pos:      p.cur().Pos,
		Expected: []string{expected},
	}
}

// ParseProgram parses one or more classes, each followed by a semicolon,
// requiring end-of-input after the last one.
func (p *Parser) ParseProgram() (*ast.Program, error) {
	var classes []*ast.Class
	for p.cur().Type != token.EOF {
		class, err := p.parseClass()
		if err != nil {
			return nil, err
		}
		classes = append(classes, class)
		if _, err := p.expect(token.SEMICOLON, "';'"); err != nil {
			return nil, err
		}
	}
	if len(classes) == 0 {
		return nil, &Error{Message: "empty program: expected at least one class", Pos: p.cur().Pos}
	}
	return &ast.Program{Classes: classes}, nil
}

func (p *Parser) parseClass() (*ast.Class, error) {
	classTok, err := p.expect(token.CLASS, "'class'")
	if err != nil {
		return nil, err
	}
	nameTok, err := p.expect(token.TYPEID, "a type identifier")
	if err != nil {
		return nil, err
	}
	super := "Object"
	if p.cur().Type == token.INHERITS {
		p.advance()
		superTok, err := p.expect(token.TYPEID, "a type identifier")
		if err != nil {
			return nil, err
		}
		super = superTok.Literal
	}
	if _, err := p.expect(token.LBRACE, "'{'"); err != nil {
		return nil, err
	}
	var features []*ast.Feature
	for p.cur().Type != token.RBRACE {
		feature, err := p.parseFeature()
		if err != nil {
			return nil, err
		}
		features = append(features, feature)
		if _, err := p.expect(token.SEMICOLON, "';'"); err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(token.RBRACE, "'}'"); err != nil {
		return nil, err
	}
	return &ast.Class{
		Name:      nameTok.Literal,
		SuperName: super,
		Features:  features,
		Location:  classTok.Pos,
	}, nil
}

// parseFeature tries Attribute first; if the token after the leading Ident
// is '(' it is a Method, otherwise an Attribute.
func (p *Parser) parseFeature() (*ast.Feature, error) {
	idTok, err := p.expect(token.OBJECTID, "an identifier")
	if err != nil {
		return nil, err
	}
	if p.cur().Type == token.LPAREN {
		return p.parseMethod(idTok)
	}
	return p.parseAttribute(idTok)
}

func (p *Parser) parseAttribute(idTok token.Token) (*ast.Feature, error) {
	if _, err := p.expect(token.COLON, "':'"); err != nil {
		return nil, err
	}
	typeTok, err := p.expect(token.TYPEID, "a type identifier")
	if err != nil {
		return nil, err
	}
	var init ast.Expression
	if p.cur().Type == token.ASSIGN {
		p.advance()
		init, err = p.parseExpression()
		if err != nil {
			return nil, err
		}
	}
	return &ast.Feature{
		Kind:     ast.AttributeFeature,
		Location: idTok.Pos,
		AttrName: idTok.Literal,
		AttrType: typeTok.Literal,
		Init:     init,
	}, nil
}

func (p *Parser) parseMethod(idTok token.Token) (*ast.Feature, error) {
	if _, err := p.expect(token.LPAREN, "'('"); err != nil {
		return nil, err
	}
	var formals []*ast.Formal
	for p.cur().Type != token.RPAREN {
		if len(formals) > 0 {
			if _, err := p.expect(token.COMMA, "','"); err != nil {
				return nil, err
			}
		}
		formal, err := p.parseFormal()
		if err != nil {
			return nil, err
		}
		formals = append(formals, formal)
	}
	if _, err := p.expect(token.RPAREN, "')'"); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.COLON, "':'"); err != nil {
		return nil, err
	}
	typeTok, err := p.expect(token.TYPEID, "a type identifier")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LBRACE, "'{'"); err != nil {
		return nil, err
	}
	body, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RBRACE, "'}'"); err != nil {
		return nil, err
	}
	return &ast.Feature{
		Kind:       ast.MethodFeature,
		Location:   idTok.Pos,
		MethodName: idTok.Literal,
		ReturnType: typeTok.Literal,
		Formals:    formals,
		Body:       body,
	}, nil
}

func (p *Parser) parseFormal() (*ast.Formal, error) {
	idTok, err := p.expect(token.OBJECTID, "an identifier")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.COLON, "':'"); err != nil {
		return nil, err
	}
	typeTok, err := p.expect(token.TYPEID, "a type identifier")
	if err != nil {
		return nil, err
	}
	return &ast.Formal{Name: idTok.Literal, Type: typeTok.Literal, Location: idTok.Pos}, nil
}

// parseExpression is the entry point into the nine-tier precedence chain,
// from loosest (assignment) to tightest (atoms).
func (p *Parser) parseExpression() (ast.Expression, error) {
	return p.parseAssign()
}

// tier 1: '<-', right-associative, left side must be an Ident.
func (p *Parser) parseAssign() (ast.Expression, error) {
	if p.cur().Type == token.OBJECTID && p.peek().Type == token.ASSIGN {
		idTok := p.advance()
		p.advance() // consume '<-'
		value, err := p.parseAssign()
		if err != nil {
			return nil, err
		}
		return &ast.Assign{Base: ast.Base{Location: idTok.Pos}, Name: idTok.Literal, Value: value}, nil
	}
	return p.parseNot()
}

// tier 2: 'not', prefix, right-associative.
func (p *Parser) parseNot() (ast.Expression, error) {
	if p.cur().Type == token.NOT {
		opTok := p.advance()
		operand, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryExpr{Base: ast.Base{Location: opTok.Pos}, Op: ast.Not, Operand: operand}, nil
	}
	return p.parseComparison()
}

// tier 3: '<=', '<', '=' — non-associative, left fold.
func (p *Parser) parseComparison() (ast.Expression, error) {
	left, err := p.parseAdd()
	if err != nil {
		return nil, err
	}
	for {
		var op ast.BinaryOp
		switch p.cur().Type {
		case token.LE:
			op = ast.LessThanOrEquals
		case token.LT:
			op = ast.LessThan
		case token.EQ:
			op = ast.Equals
		default:
			return left, nil
		}
		opTok := p.advance()
		right, err := p.parseAdd()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpr{Base: ast.Base{Location: opTok.Pos}, Op: op, Left: left, Right: right}
	}
}

// tier 4: '+', '-', left-associative.
func (p *Parser) parseAdd() (ast.Expression, error) {
	left, err := p.parseMul()
	if err != nil {
		return nil, err
	}
	for {
		var op ast.BinaryOp
		switch p.cur().Type {
		case token.PLUS:
			op = ast.Add
		case token.MINUS:
			op = ast.Subtract
		default:
			return left, nil
		}
		opTok := p.advance()
		right, err := p.parseMul()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpr{Base: ast.Base{Location: opTok.Pos}, Op: op, Left: left, Right: right}
	}
}

// tier 5: '*', '/', left-associative.
func (p *Parser) parseMul() (ast.Expression, error) {
	left, err := p.parseIsVoid()
	if err != nil {
		return nil, err
	}
	for {
		var op ast.BinaryOp
		switch p.cur().Type {
		case token.STAR:
			op = ast.Multiply
		case token.SLASH:
			op = ast.Divide
		default:
			return left, nil
		}
		opTok := p.advance()
		right, err := p.parseIsVoid()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpr{Base: ast.Base{Location: opTok.Pos}, Op: op, Left: left, Right: right}
	}
}

// tier 6: 'isvoid', prefix.
func (p *Parser) parseIsVoid() (ast.Expression, error) {
	if p.cur().Type == token.ISVOID {
		opTok := p.advance()
		operand, err := p.parseIsVoid()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryExpr{Base: ast.Base{Location: opTok.Pos}, Op: ast.IsVoid, Operand: operand}, nil
	}
	return p.parseNeg()
}

// tier 7: '~', prefix arithmetic negation.
func (p *Parser) parseNeg() (ast.Expression, error) {
	if p.cur().Type == token.TILDE {
		opTok := p.advance()
		operand, err := p.parseNeg()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryExpr{Base: ast.Base{Location: opTok.Pos}, Op: ast.Negative, Operand: operand}, nil
	}
	return p.parseDispatch()
}

// tier 8: '@Type.call' and '.call', left-associative chained dispatch.
func (p *Parser) parseDispatch() (ast.Expression, error) {
	left, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	for {
		switch p.cur().Type {
		case token.AT:
			p.advance()
			typeTok, err := p.expect(token.TYPEID, "a type identifier")
			if err != nil {
				return nil, err
			}
			dotTok, err := p.expect(token.DOT, "'.'")
			if err != nil {
				return nil, err
			}
			left, err = p.finishCall(left, typeTok.Literal, dotTok.Pos)
			if err != nil {
				return nil, err
			}
		case token.DOT:
			dotTok := p.advance()
			var err error
			left, err = p.finishCall(left, "", dotTok.Pos)
			if err != nil {
				return nil, err
			}
		default:
			return left, nil
		}
	}
}

func (p *Parser) finishCall(receiver ast.Expression, staticType string, loc token.Position) (ast.Expression, error) {
	nameTok, err := p.expect(token.OBJECTID, "a method name")
	if err != nil {
		return nil, err
	}
	args, err := p.parseArgs()
	if err != nil {
		return nil, err
	}
	return &ast.MethodCall{
		Base:       ast.Base{Location: loc},
		Receiver:   receiver,
		StaticType: staticType,
		Name:       nameTok.Literal,
		Args:       args,
	}, nil
}

func (p *Parser) parseArgs() ([]ast.Expression, error) {
	if _, err := p.expect(token.LPAREN, "'('"); err != nil {
		return nil, err
	}
	var args []ast.Expression
	for p.cur().Type != token.RPAREN {
		if len(args) > 0 {
			if _, err := p.expect(token.COMMA, "','"); err != nil {
				return nil, err
			}
		}
		arg, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
	if _, err := p.expect(token.RPAREN, "')'"); err != nil {
		return nil, err
	}
	return args, nil
}

// tier 9: atoms — parenthesised expression, block, control forms, let,
// new, identifier reference, literal.
func (p *Parser) parseAtom() (ast.Expression, error) {
	tok := p.cur()
	switch tok.Type {
	case token.LPAREN:
		p.advance()
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RPAREN, "')'"); err != nil {
			return nil, err
		}
		return expr, nil
	case token.LBRACE:
		return p.parseBlock()
	case token.IF:
		return p.parseConditional()
	case token.WHILE:
		return p.parseLoop()
	case token.CASE:
		return p.parseCase()
	case token.LET:
		return p.parseLet()
	case token.NEW:
		p.advance()
		typeTok, err := p.expect(token.TYPEID, "a type identifier")
		if err != nil {
			return nil, err
		}
		return &ast.New{Base: ast.Base{Location: tok.Pos}, TypeName: typeTok.Literal}, nil
	case token.INT_CONST:
		p.advance()
		return &ast.IntLiteral{Base: ast.Base{Location: tok.Pos}, Value: tok.IntVal}, nil
	case token.STR_CONST:
		p.advance()
		return &ast.StrLiteral{Base: ast.Base{Location: tok.Pos}, Value: tok.Literal}, nil
	case token.BOOL_CONST:
		p.advance()
		return &ast.BoolLiteral{Base: ast.Base{Location: tok.Pos}, Value: tok.BoolVal}, nil
	case token.OBJECTID:
		p.advance()
		if p.cur().Type == token.LPAREN {
			// Bare call: self.<Ident>(...), receiver carries the identifier's position.
			args, err := p.parseArgs()
			if err != nil {
				return nil, err
			}
			return &ast.MethodCall{
				Base:     ast.Base{Location: tok.Pos},
				Receiver: &ast.Object{Base: ast.Base{Location: tok.Pos}, Name: "self"},
				Name:     tok.Literal,
				Args:     args,
			}, nil
		}
		return &ast.Object{Base: ast.Base{Location: tok.Pos}, Name: tok.Literal}, nil
	}
	return nil, p.unexpected("an expression")
}

func (p *Parser) parseBlock() (ast.Expression, error) {
	startTok, err := p.expect(token.LBRACE, "'{'")
	if err != nil {
		return nil, err
	}
	var exprs []ast.Expression
	for {
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, expr)
		if _, err := p.expect(token.SEMICOLON, "';'"); err != nil {
			return nil, err
		}
		if p.cur().Type == token.RBRACE {
			break
		}
	}
	if _, err := p.expect(token.RBRACE, "'}'"); err != nil {
		return nil, err
	}
	return &ast.Block{Base: ast.Base{Location: startTok.Pos}, Exprs: exprs}, nil
}

func (p *Parser) parseConditional() (ast.Expression, error) {
	ifTok, err := p.expect(token.IF, "'if'")
	if err != nil {
		return nil, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.THEN, "'then'"); err != nil {
		return nil, err
	}
	thenExpr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.ELSE, "'else'"); err != nil {
		return nil, err
	}
	elseExpr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.FI, "'fi'"); err != nil {
		return nil, err
	}
	return &ast.Conditional{Base: ast.Base{Location: ifTok.Pos}, Cond: cond, Then: thenExpr, Else: elseExpr}, nil
}

func (p *Parser) parseLoop() (ast.Expression, error) {
	whileTok, err := p.expect(token.WHILE, "'while'")
	if err != nil {
		return nil, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LOOP, "'loop'"); err != nil {
		return nil, err
	}
	body, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.POOL, "'pool'"); err != nil {
		return nil, err
	}
	return &ast.Loop{Base: ast.Base{Location: whileTok.Pos}, Cond: cond, Body: body}, nil
}

func (p *Parser) parseCase() (ast.Expression, error) {
	caseTok, err := p.expect(token.CASE, "'case'")
	if err != nil {
		return nil, err
	}
	subject, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.OF, "'of'"); err != nil {
		return nil, err
	}
	var branches []*ast.CaseBranch
	for p.cur().Type != token.ESAC {
		branch, err := p.parseCaseBranch()
		if err != nil {
			return nil, err
		}
		branches = append(branches, branch)
		if _, err := p.expect(token.SEMICOLON, "';'"); err != nil {
			return nil, err
		}
	}
	if len(branches) == 0 {
		return nil, &Error{Message: "case requires at least one branch", Pos: p.cur().Pos}
	}
	if _, err := p.expect(token.ESAC, "'esac'"); err != nil {
		return nil, err
	}
	return &ast.Case{Base: ast.Base{Location: caseTok.Pos}, Subject: subject, Branches: branches}, nil
}

func (p *Parser) parseCaseBranch() (*ast.CaseBranch, error) {
	idTok, err := p.expect(token.OBJECTID, "an identifier")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.COLON, "':'"); err != nil {
		return nil, err
	}
	typeTok, err := p.expect(token.TYPEID, "a type identifier")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.DARROW, "'=>'"); err != nil {
		return nil, err
	}
	body, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return &ast.CaseBranch{Name: idTok.Literal, Type: typeTok.Literal, Body: body, Location: idTok.Pos}, nil
}

// parseLet right-folds `let x:T<-e, y:U in body` into nested Let nodes, each
// carrying the position of its own binding clause.
func (p *Parser) parseLet() (ast.Expression, error) {
	if _, err := p.expect(token.LET, "'let'"); err != nil {
		return nil, err
	}
	type binding struct {
		name string
		typ  string
		init ast.Expression
		pos  token.Position
	}
	var bindings []binding
	for {
		idTok, err := p.expect(token.OBJECTID, "an identifier")
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.COLON, "':'"); err != nil {
			return nil, err
		}
		typeTok, err := p.expect(token.TYPEID, "a type identifier")
		if err != nil {
			return nil, err
		}
		var init ast.Expression
		if p.cur().Type == token.ASSIGN {
			p.advance()
			init, err = p.parseExpression()
			if err != nil {
				return nil, err
			}
		}
		bindings = append(bindings, binding{idTok.Literal, typeTok.Literal, init, idTok.Pos})
		if p.cur().Type == token.COMMA {
			p.advance()
			continue
		}
		break
	}
	if _, err := p.expect(token.IN, "'in'"); err != nil {
		return nil, err
	}
	body, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	for i := len(bindings) - 1; i >= 0; i-- {
		b := bindings[i]
		body = &ast.Let{Base: ast.Base{Location: b.pos}, Name: b.name, Type: b.typ, Init: b.init, Body: body}
	}
	return body, nil
}
