package lexer

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/scarvalhojr/coolc/pkg/token"
)

func lexAll(t *testing.T, src string) []token.Token {
	t.Helper()
	toks, err := New(src, "test.cl").Lex()
	if err != nil {
		t.Fatalf("Lex(%q) returned unexpected error: %v", src, err)
	}
	return toks
}

func types(toks []token.Token) []token.Type {
	out := make([]token.Type, len(toks))
	for i, tok := range toks {
		out[i] = tok.Type
	}
	return out
}

func TestLexSimpleClass(t *testing.T) {
	toks := lexAll(t, "class A {};")
	want := []token.Type{token.CLASS, token.TYPEID, token.LBRACE, token.RBRACE, token.SEMICOLON, token.EOF}
	if diff := cmp.Diff(want, types(toks)); diff != "" {
		t.Errorf("token types mismatch (-want +got):\n%s", diff)
	}
}

func TestLexNestedBlockComments(t *testing.T) {
	src := "-- c\n(* (* x *) *)class B inherits A2 {\n  b:B;\n};\n"
	toks := lexAll(t, src)
	want := []token.Type{
		token.CLASS, token.TYPEID, token.INHERITS, token.TYPEID, token.LBRACE,
		token.OBJECTID, token.COLON, token.TYPEID, token.SEMICOLON, token.RBRACE, token.SEMICOLON, token.EOF,
	}
	if diff := cmp.Diff(want, types(toks)); diff != "" {
		t.Errorf("token types mismatch (-want +got):\n%s", diff)
	}
}

func TestLexUnterminatedBlockComment(t *testing.T) {
	_, err := New("(* (* *)", "test.cl").Lex()
	if err == nil {
		t.Fatal("expected an unterminated-comment error, got nil")
	}
	lexErr, ok := err.(*Error)
	if !ok {
		t.Fatalf("expected *lexer.Error, got %T", err)
	}
	if lexErr.Kind != UnterminatedComment {
		t.Errorf("Kind = %v, want UnterminatedComment", lexErr.Kind)
	}
}

func TestLexStringEscape(t *testing.T) {
	toks := lexAll(t, `"a\tb"`)
	if len(toks) != 2 {
		t.Fatalf("got %d tokens, want 2 (STR_CONST, EOF)", len(toks))
	}
	if got, want := toks[0].Literal, "a\tb"; got != want {
		t.Errorf("decoded string = %q, want %q", got, want)
	}
}

func TestLexIntegerOverflow(t *testing.T) {
	_, err := New("2147483648", "test.cl").Lex()
	if err == nil {
		t.Fatal("expected overflow error, got nil")
	}
	lexErr, ok := err.(*Error)
	if !ok || lexErr.Kind != IntOverflow {
		t.Fatalf("got %#v, want IntOverflow error", err)
	}
}

func TestLexIntegerMaxValue(t *testing.T) {
	toks := lexAll(t, "2147483647")
	if toks[0].Type != token.INT_CONST || toks[0].IntVal != 2147483647 {
		t.Fatalf("got %#v, want INT_CONST 2147483647", toks[0])
	}
}

func TestLexBooleanVsIdentifier(t *testing.T) {
	toks := lexAll(t, "trueness tRuE")
	if toks[0].Type != token.OBJECTID || toks[0].Literal != "trueness" {
		t.Errorf("first token = %#v, want OBJECTID trueness", toks[0])
	}
	if toks[1].Type != token.BOOL_CONST || toks[1].BoolVal != true {
		t.Errorf("second token = %#v, want BOOL_CONST true", toks[1])
	}
}

func TestLexOperatorPrecedenceOverPrefixes(t *testing.T) {
	toks := lexAll(t, "<= <- => < = -")
	want := []token.Type{token.LE, token.ASSIGN, token.DARROW, token.LT, token.EQ, token.MINUS, token.EOF}
	if diff := cmp.Diff(want, types(toks)); diff != "" {
		t.Errorf("token types mismatch (-want +got):\n%s", diff)
	}
}

func TestLexNegativeNumberIsMinusThenInt(t *testing.T) {
	toks := lexAll(t, "-1")
	want := []token.Type{token.MINUS, token.INT_CONST, token.EOF}
	if diff := cmp.Diff(want, types(toks)); diff != "" {
		t.Errorf("token types mismatch (-want +got):\n%s", diff)
	}
}

func TestLexKeywordPrefixIsNotKeyword(t *testing.T) {
	toks := lexAll(t, "classroom If2")
	if toks[0].Type != token.OBJECTID || toks[0].Literal != "classroom" {
		t.Errorf("got %#v, want OBJECTID classroom", toks[0])
	}
	if toks[1].Type != token.TYPEID || toks[1].Literal != "If2" {
		t.Errorf("got %#v, want TYPEID If2", toks[1])
	}
}

func TestLexCaseInsensitiveKeyword(t *testing.T) {
	toks := lexAll(t, "CLASS Class cLaSs")
	for _, tok := range toks[:3] {
		if tok.Type != token.CLASS {
			t.Errorf("got %#v, want CLASS", tok)
		}
	}
}

func TestLexUnterminatedString(t *testing.T) {
	_, err := New("\"abc", "test.cl").Lex()
	if err == nil {
		t.Fatal("expected unterminated-string error, got nil")
	}
	lexErr, ok := err.(*Error)
	if !ok || lexErr.Kind != UnterminatedString {
		t.Fatalf("got %#v, want UnterminatedString error", err)
	}
}

func TestLexUnrecognizedCharacter(t *testing.T) {
	_, err := New("$", "test.cl").Lex()
	if err == nil {
		t.Fatal("expected invalid-character error, got nil")
	}
	lexErr, ok := err.(*Error)
	if !ok || lexErr.Kind != InvalidChar {
		t.Fatalf("got %#v, want InvalidChar error", err)
	}
}

func TestLexPositionTracksLineAndColumn(t *testing.T) {
	toks := lexAll(t, "class A {\n  x:Int;\n};")
	var xTok token.Token
	for _, tok := range toks {
		if tok.Type == token.OBJECTID && tok.Literal == "x" {
			xTok = tok
		}
	}
	if xTok.Pos.Line != 2 {
		t.Errorf("x position line = %d, want 2", xTok.Pos.Line)
	}
	if xTok.Pos.Column != 3 {
		t.Errorf("x position column = %d, want 3", xTok.Pos.Column)
	}
}

func TestLexFilenameThreadedThroughPositions(t *testing.T) {
	toks, err := New("class A {};", "widget.cl").Lex()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, tok := range toks {
		if tok.Pos.Filename != "widget.cl" {
			t.Errorf("token %#v has filename %q, want widget.cl", tok, tok.Pos.Filename)
		}
	}
}

func TestLexLineCommentStopsAtNewline(t *testing.T) {
	toks := lexAll(t, "x -- comment\ny")
	want := []token.Type{token.OBJECTID, token.OBJECTID, token.EOF}
	if diff := cmp.Diff(want, types(toks)); diff != "" {
		t.Errorf("token types mismatch (-want +got):\n%s", diff)
	}
}

func TestLexEmitsEOFAtEnd(t *testing.T) {
	toks := lexAll(t, "")
	if len(toks) != 1 || toks[0].Type != token.EOF {
		t.Errorf("got %#v, want a single EOF token", toks)
	}
}

func TestWithTokenBufferOptionDoesNotChangeTokens(t *testing.T) {
	toks, err := New("class A {};", "test.cl", WithTokenBuffer(64)).Lex()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(toks) != 6 {
		t.Fatalf("got %d tokens, want 6", len(toks))
	}
}
