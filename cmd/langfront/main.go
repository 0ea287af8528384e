// Command langfront is a small demonstration binary over the analysis
// library: it runs the lexer/parser/semantic pipeline on a file or on
// interactive input and prints the token count, AST shape, and diagnostics.
package main

import (
	"os"

	"github.com/fatih/color"

	"github.com/arenco/langfront/analysis"
	"github.com/arenco/langfront/devrepl"
)

var VERSION = "v0.1.0"
var AUTHOR = "langfront contributors"
var LICENSE = "MIT"
var PROMPT = "langfront >>> "

var BANNER = `
  _                   __                 _
 | |                 / _|               | |
 | | __ _ _ __   __ _| |_ _ __ ___  _ __ | |_
 | |/ _' | '_ \ / _' |  _| '__/ _ \| '_ \| __|
 | | (_| | | | | (_| | | | | | (_) | | | | |_
 |_|\__,_|_| |_|\__, |_| |_|  \___/|_| |_|\__|
                 __/ |
                |___/
`

var LINE = "----------------------------------------------------------------"

var (
	redColor    = color.New(color.FgRed)
	yellowColor = color.New(color.FgYellow)
	cyanColor   = color.New(color.FgCyan)
)

func main() {
	if len(os.Args) > 1 {
		switch arg := os.Args[1]; arg {
		case "--help", "-h":
			showHelp()
			return
		case "--version", "-v":
			showVersion()
			return
		default:
			runFile(arg)
			return
		}
	}
	startRepl()
}

func showHelp() {
	cyanColor.Println("langfront - a static front end for a small JavaScript-flavored language")
	cyanColor.Println("")
	cyanColor.Println("USAGE:")
	yellowColor.Println("  langfront                 Start interactive analysis REPL")
	yellowColor.Println("  langfront <path-to-file>  Analyze a source file and print diagnostics")
	yellowColor.Println("  langfront --help          Display this help message")
	yellowColor.Println("  langfront --version       Display version information")
}

func showVersion() {
	cyanColor.Printf("langfront %s (license %s, %s)\n", VERSION, LICENSE, AUTHOR)
}

func runFile(fileName string) {
	content, err := os.ReadFile(fileName)
	if err != nil {
		redColor.Fprintf(os.Stderr, "[FILE ERROR] could not read file %q: %v\n", fileName, err)
		os.Exit(1)
	}
	report := devrepl.AnalyzeFile(os.Stdout, string(content), analysis.DefaultConfig())
	if len(report.Errors) > 0 {
		os.Exit(1)
	}
}

func startRepl() {
	r := devrepl.New(BANNER, VERSION, AUTHOR, LINE, LICENSE, PROMPT, analysis.DefaultConfig())
	r.Start(os.Stdout)
}
