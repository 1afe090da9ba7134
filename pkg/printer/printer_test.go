package printer

import (
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"

	"github.com/scarvalhojr/coolc/internal/lexer"
	"github.com/scarvalhojr/coolc/internal/parser"
	"github.com/scarvalhojr/coolc/pkg/ast"
	"github.com/scarvalhojr/coolc/pkg/token"
)

func mustLex(t *testing.T, src, filename string) []token.Token {
	t.Helper()
	toks, err := lexer.New(src, filename).Lex()
	if err != nil {
		t.Fatalf("Lex(%q) returned unexpected error: %v", src, err)
	}
	return toks
}

func mustParse(t *testing.T, toks []token.Token) *ast.Program {
	t.Helper()
	prog, err := parser.Parse(toks)
	if err != nil {
		t.Fatalf("Parse returned unexpected error: %v", err)
	}
	return prog
}

func TestPrintTokensSimpleClass(t *testing.T) {
	toks := mustLex(t, "class A {};", "a.cl")
	got := PrintTokens(toks, "a.cl")
	want := "#name \"a.cl\"\n" +
		"#1 CLASS\n" +
		"#1 TYPEID A\n" +
		"#1 '{'\n" +
		"#1 '}'\n" +
		"#1 ';'\n"
	if got != want {
		t.Errorf("PrintTokens =\n%q\nwant\n%q", got, want)
	}
}

func TestPrintTokensStringEscaping(t *testing.T) {
	toks := mustLex(t, `"a\tb"`, "s.cl")
	got := PrintTokens(toks, "s.cl")
	want := "#name \"s.cl\"\n#1 STR_CONST \"a\\tb\"\n"
	if got != want {
		t.Errorf("PrintTokens =\n%q\nwant\n%q", got, want)
	}
}

func TestPrintTokensExcludesEOF(t *testing.T) {
	toks := mustLex(t, "", "e.cl")
	got := PrintTokens(toks, "e.cl")
	want := "#name \"e.cl\"\n"
	if got != want {
		t.Errorf("PrintTokens =\n%q\nwant\n%q", got, want)
	}
}

func TestPrintProgramEmptyClass(t *testing.T) {
	toks := mustLex(t, "class A {};", "a.cl")
	prog := mustParse(t, toks)
	got := PrintProgram(prog)
	want := "#1\n" +
		"_program\n" +
		"  #1\n" +
		"  _class\n" +
		"    A\n" +
		"    Object\n" +
		"    \"a.cl\"\n" +
		"    (\n" +
		"    )\n"
	if got != want {
		t.Errorf("PrintProgram =\n%s\nwant\n%s", got, want)
	}
}

func TestPrintProgramMissingAttributeInitIsNoExpr(t *testing.T) {
	toks := mustLex(t, "class A { x:Int; };", "a.cl")
	prog := mustParse(t, toks)
	got := PrintProgram(prog)
	want := "#1\n" +
		"_program\n" +
		"  #1\n" +
		"  _class\n" +
		"    A\n" +
		"    Object\n" +
		"    \"a.cl\"\n" +
		"    (\n" +
		"    #1\n" +
		"    _attr\n" +
		"      x\n" +
		"      Int\n" +
		"      #0\n" +
		"      _no_expr\n" +
		"      : _no_type\n" +
		"    )\n"
	if got != want {
		t.Errorf("PrintProgram =\n%s\nwant\n%s", got, want)
	}
}

func TestPrintProgramIntLiteral(t *testing.T) {
	toks := mustLex(t, "class A { x:Int <- 42; };", "a.cl")
	prog := mustParse(t, toks)
	got := PrintProgram(prog)
	want := "#1\n" +
		"_program\n" +
		"  #1\n" +
		"  _class\n" +
		"    A\n" +
		"    Object\n" +
		"    \"a.cl\"\n" +
		"    (\n" +
		"    #1\n" +
		"    _attr\n" +
		"      x\n" +
		"      Int\n" +
		"      #1\n" +
		"      _int\n" +
		"        42\n" +
		"      : _no_type\n" +
		"    )\n"
	if got != want {
		t.Errorf("PrintProgram =\n%s\nwant\n%s", got, want)
	}
}

func TestPrintProgramEmptyProgramLineZero(t *testing.T) {
	// An empty class list can't come from the parser (a program requires at
	// least one class), but the printer itself must still honor the "#0 if
	// empty" rule when handed one directly.
	got := PrintProgram(&ast.Program{})
	want := "#0\n_program\n"
	if got != want {
		t.Errorf("PrintProgram =\n%s\nwant\n%s", got, want)
	}
}

func TestPrintProgramFixtures(t *testing.T) {
	fixtures := map[string]string{
		"arithmetic": "class Main { f(x:Int, y:Int):Int { x + y * 2 - 1 }; };",
		"dispatch":   "class Main { f():Int { a.b(1)@T.c(2,3) }; };",
		"let_chain":  "class Main { f():Int { let x:Int, y:Int<-1 in x }; };",
		"control":    "class Main { f():Int { if true then 1 else while true loop 2 pool fi }; };",
		"case":       "class Main { f():Object { case 1 of x:Int => x; y:String => y; esac }; };",
	}
	for name, src := range fixtures {
		name, src := name, src
		t.Run(name, func(t *testing.T) {
			toks := mustLex(t, src, "fixture.cl")
			prog := mustParse(t, toks)
			snaps.MatchSnapshot(t, name, PrintProgram(prog))
		})
	}
}
