// Package cmd implements the coolc command-line front end: a thin
// Cobra-based wrapper around the lex/parse/print library calls. Nothing
// under pkg/ or internal/ imports this package.
package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/scarvalhojr/coolc/internal/diag"
	"github.com/scarvalhojr/coolc/internal/lexer"
	"github.com/scarvalhojr/coolc/internal/parser"
	"github.com/scarvalhojr/coolc/pkg/printer"
)

// Version information (set by build flags).
var (
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Exit codes, per the CLI surface: 0 success, 1 source unreadable, 2 scan
// error, 3 parse error.
const (
	exitOK = iota
	exitReadError
	exitScanError
	exitParseError
)

var rootCmd = &cobra.Command{
	Use:          "coolc <source>",
	Short:        "Cool language scanner and parser",
	Long:         `coolc scans and parses Cool (Classroom Object-Oriented Language) source files and can dump the token stream or parse tree in the reference compiler's format.`,
	Version:      Version,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE:         runCoolc,
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.Flags().BoolP("lex", "l", false, "print the token dump and exit")
	rootCmd.Flags().BoolP("parse", "p", false, "print the parse-tree dump and exit")
	rootCmd.MarkFlagsMutuallyExclusive("lex", "parse")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func runCoolc(cmd *cobra.Command, args []string) error {
	path := args[0]
	lexOnly, _ := cmd.Flags().GetBool("lex")
	parseOnly, _ := cmd.Flags().GetBool("parse")

	source, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "source file not readable: %v\n", err)
		os.Exit(exitReadError)
	}

	tokens, lexErr := lexer.New(string(source), path).Lex()
	if lexErr != nil {
		lerr := lexErr.(*lexer.Error)
		fmt.Fprintln(cmd.ErrOrStderr(), diag.New(lerr.Message, lerr.Pos, string(source)).Format())
		os.Exit(exitScanError)
	}

	if lexOnly {
		io.WriteString(cmd.OutOrStdout(), printer.PrintTokens(tokens, path))
		os.Exit(exitOK)
	}

	program, parseErr := parser.Parse(tokens)
	if parseErr != nil {
		perr := parseErr.(*parser.Error)
		fmt.Fprintln(cmd.ErrOrStderr(), diag.New(perr.Message, perr.Pos, string(source)).Format())
		os.Exit(exitParseError)
	}

	if parseOnly {
		io.WriteString(cmd.OutOrStdout(), printer.PrintProgram(program))
	}
	os.Exit(exitOK)
	return nil
}
