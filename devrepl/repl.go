// Package devrepl is a small interactive demonstration of the analysis
// pipeline: it reads a line (or a whole file), runs analysis.Analyze,
// and prints the token count, AST shape, and diagnostics in color.
// It is demonstration tooling, not part of the core contract; nothing
// under analysis/, parser/, lexer/, ast/, scope/, or semantic/ imports
// this package.
package devrepl

import (
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"

	"github.com/arenco/langfront/analysis"
)

var (
	blueColor   = color.New(color.FgBlue)
	yellowColor = color.New(color.FgYellow)
	redColor    = color.New(color.FgRed)
	greenColor  = color.New(color.FgGreen)
	cyanColor   = color.New(color.FgCyan)
)

// Repl is an interactive session over the analysis pipeline.
type Repl struct {
	Banner  string
	Version string
	Author  string
	Line    string
	License string
	Prompt  string
	Config  *analysis.Config
}

// New creates a Repl with the given presentation strings and an
// optional configuration (nil selects analysis.DefaultConfig()).
func New(banner, version, author, line, license, prompt string, cfg *analysis.Config) *Repl {
	return &Repl{Banner: banner, Version: version, Author: author, Line: line, License: license, Prompt: prompt, Config: cfg}
}

// PrintBannerInfo writes the startup banner and usage hints to writer.
func (r *Repl) PrintBannerInfo(writer io.Writer) {
	blueColor.Fprintf(writer, "%s\n", r.Line)
	greenColor.Fprintf(writer, "%s\n", r.Banner)
	blueColor.Fprintf(writer, "%s\n", r.Line)
	yellowColor.Fprintln(writer, "Version: "+r.Version+" | Author: "+r.Author+" | License: "+r.License)
	blueColor.Fprintf(writer, "%s\n", r.Line)
	cyanColor.Fprintf(writer, "%s\n", "Interactive front-end demo.")
	cyanColor.Fprintf(writer, "%s\n", "Type a snippet and press enter to see its tokens, AST, and diagnostics.")
	cyanColor.Fprintf(writer, "%s\n", "Type '.exit' to quit")
	blueColor.Fprintf(writer, "%s\n", r.Line)
}

// Start runs the read-analyze-print loop until the user exits or EOF.
func (r *Repl) Start(writer io.Writer) {
	r.PrintBannerInfo(writer)

	rl, err := readline.New(r.Prompt)
	if err != nil {
		panic(err)
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err != nil {
			writer.Write([]byte("Good Bye!\n"))
			break
		}
		line = strings.Trim(line, " \n\t\r")
		if line == "" {
			continue
		}
		if line == ".exit" {
			writer.Write([]byte("Good Bye!\n"))
			break
		}
		rl.SaveHistory(line)
		r.analyzeAndPrint(writer, line)
	}
}

// analyzeAndPrint runs the pipeline over one snippet and renders a
// colorized summary. It never panics: a malformed snippet just shows
// diagnostics and the loop continues, matching the REPL's tolerance
// for user mistakes.
func (r *Repl) analyzeAndPrint(writer io.Writer, source string) {
	report := analysis.Analyze(source, r.Config)

	yellowColor.Fprintf(writer, "tokens: %d\n", len(report.Tokens))
	if report.AST != nil {
		greenColor.Fprintf(writer, "%s", report.Dump())
	}
	for _, e := range report.Errors {
		redColor.Fprintf(writer, "[%s] %s\n", e.Kind, e)
	}
	for _, w := range report.Warnings {
		cyanColor.Fprintf(writer, "[%s] %s\n", w.Kind, w)
	}
}

// AnalyzeFile runs the pipeline over an entire file's contents and
// prints the same summary as the interactive loop, for one-shot mode.
func AnalyzeFile(writer io.Writer, source string, cfg *analysis.Config) analysis.Report {
	report := analysis.Analyze(source, cfg)
	yellowColor.Fprintf(writer, "tokens: %d\n", len(report.Tokens))
	if report.AST != nil {
		greenColor.Fprintf(writer, "%s", report.Dump())
	}
	for _, e := range report.Errors {
		redColor.Fprintf(writer, "[%s] %s\n", e.Kind, e)
	}
	for _, w := range report.Warnings {
		cyanColor.Fprintf(writer, "[%s] %s\n", w.Kind, w)
	}
	return report
}
