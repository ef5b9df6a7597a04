package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/pterm/pterm"

	"github.com/npillmayer/schuko/gconf"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"

	"github.com/npillmayer/dfalex/dfa"
	"github.com/npillmayer/dfalex/lexmach"
	"github.com/npillmayer/dfalex/scanner"
	"github.com/npillmayer/dfalex/sink"
	"github.com/npillmayer/dfalex/tableio"
	"github.com/npillmayer/dfalex/tables/tiny"
)

// Exit codes
const (
	exitOK = iota
	exitLexical
	exitFailure
)

func main() {
	// set up logging
	initDisplay()
	gtrace.SyntaxTracer = gologadapter.New()
	tlevel := flag.String("trace", "Error", "Trace level [Debug|Info|Error]")
	tablef := flag.String("table", "", "Transition table document (default: built-in TINY table)")
	outf := flag.String("o", "", "Output file for token records (default: stdout)")
	engine := flag.String("engine", "dfa", "Scanner engine [dfa|lexmachine]")
	interactive := flag.Bool("i", false, "Interactive mode")
	dump := flag.Bool("dump", false, "Print the transition table and exit")
	strict := flag.Bool("strict", false, "Panic on lexical errors")
	flag.Parse()
	tracer().SetTraceLevel(traceLevel(*tlevel))
	tracer().Infof("Trace level is %s", *tlevel)
	//
	// set up the scanner engine
	table, err := loadTable(*tablef)
	if err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(exitFailure)
	}
	if *dump {
		table.Dump() // only visible in debug mode
		renderTable(table)
		os.Exit(exitOK)
	}
	app := &App{
		table:  table,
		strict: *strict || gconf.GetBool("panic-on-lexical-error"),
	}
	if err = app.selectEngine(*engine, *tablef != ""); err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(exitFailure)
	}
	if *interactive {
		os.Exit(app.REPL())
	}
	os.Exit(app.Run(flag.Arg(0), *outf))
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

func loadTable(filename string) (*dfa.Table, error) {
	if filename == "" {
		return tiny.Table()
	}
	return tableio.DecodeFile(filename)
}

// App holds the configuration of a scanner run.
type App struct {
	table  *dfa.Table
	strict bool
	lexer  *lexmach.Lexer // non-nil for engine lexmachine
}

// engine is what the table driven scanner and the lexmachine scanner have
// in common.
type engine interface {
	Scan(sink.Sink) error
}

func (app *App) selectEngine(name string, customTable bool) error {
	switch name {
	case "dfa":
		return nil
	case "lexmachine":
		if customTable {
			return errors.New("engine lexmachine supports the built-in TINY table only")
		}
		lexer, err := lexmach.Compile(lexmach.TinyRules())
		if err != nil {
			return fmt.Errorf("cannot compile lexmachine rules: %w", err)
		}
		app.lexer = lexer
		return nil
	}
	return fmt.Errorf("unknown scanner engine %q", name)
}

// newScanner creates a scanner for an input, using the selected engine.
func (app *App) newScanner(input io.Reader, name string) (engine, error) {
	quiet := scanner.WithErrorHandler(func(error) {}) // we report errors ourselves
	if app.lexer == nil {
		src := scanner.NewSource(input)
		return scanner.New(src, app.table, scanner.WithName(name), quiet,
			scanner.PanicOnError(app.strict)), nil
	}
	text, err := io.ReadAll(input)
	if err != nil {
		return nil, err
	}
	sc := app.lexer.Scanner(text, name)
	sc.SetErrorHandler(func(e error) {
		if app.strict && errors.Is(e, scanner.ErrLexical) {
			panic(e)
		}
	})
	return sc, nil
}

// Run scans an input file (or stdin) and writes the records to an output
// file (or stdout). It returns an exit code.
func (app *App) Run(inputf, outputf string) int {
	var in io.Reader = os.Stdin
	name := "<stdin>"
	if inputf != "" && inputf != "-" {
		f, err := os.Open(inputf)
		if err != nil {
			pterm.Error.Println(err.Error())
			return exitFailure
		}
		defer f.Close()
		in, name = f, inputf
	}
	var out io.WriteCloser = nopCloser{os.Stdout}
	if outputf != "" {
		f, err := os.Create(outputf)
		if err != nil {
			pterm.Error.Println(err.Error())
			return exitFailure
		}
		out = f
	}
	return app.report(app.write(in, name, out))
}

// write scans an input and writes the records to out, closing it. Errors
// from flushing or closing the output count as failures of the run.
func (app *App) write(in io.Reader, name string, out io.WriteCloser) error {
	w := sink.NewWriter(out)
	err := app.scan(in, name, w)
	if ferr := w.Flush(); err == nil && ferr != nil {
		err = ferr
	}
	if cerr := out.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("cannot close output: %w", cerr)
	}
	tracer().Infof("%d tokens written", w.Count())
	return err
}

// nopCloser keeps stdout open when the output is closed.
type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }

func (app *App) scan(in io.Reader, name string, s sink.Sink) error {
	sc, err := app.newScanner(in, name)
	if err != nil {
		return err
	}
	return sc.Scan(s)
}

func (app *App) report(err error) int {
	if err == nil {
		fmt.Fprintln(os.Stderr, "success")
		return exitOK
	}
	pterm.Error.Println(err.Error())
	if errors.Is(err, scanner.ErrLexical) {
		return exitLexical
	}
	return exitFailure
}

// REPL starts interactive mode. Every line is scanned on its own and the
// records are printed.
func (app *App) REPL() int {
	repl, err := readline.New("dfalex> ")
	if err != nil {
		tracer().Errorf(err.Error())
		return exitFailure
	}
	defer repl.Close()
	pterm.Info.Println("Welcome to dfalex, table " + app.table.Name())
	tracer().Infof("Quit with <ctrl>D") // inform user how to stop the CLI
	lineno := 0
	for {
		line, err := repl.Readline()
		if err != nil { // io.EOF
			break
		}
		lineno++
		if strings.TrimSpace(line) == "" {
			continue
		}
		var out bytes.Buffer
		w := sink.NewWriter(&out)
		err = app.scan(strings.NewReader(line+"\n"), "line "+strconv.Itoa(lineno), w)
		if ferr := w.Flush(); err == nil {
			err = ferr
		}
		fmt.Print(out.String())
		if err != nil {
			pterm.Error.Println(err.Error())
		}
	}
	println("Good bye!")
	return exitOK
}

// renderTable prints the states of a table, one row per state, with edges
// in order of priority.
func renderTable(table *dfa.Table) {
	cls := table.Classes()
	data := pterm.TableData{{"State", "Action", "Edges"}}
	for _, st := range table.States() {
		id := strconv.Itoa(int(st.ID))
		if st.ID == table.Initial() {
			id += " (initial)"
		}
		edges := make([]string, len(st.Edges))
		for i, e := range st.Edges {
			edges[i] = fmt.Sprintf("%s→%d", cls.Name(e.Class), e.Next)
		}
		data = append(data, []string{id, st.Action.String(), strings.Join(edges, " ")})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	classes := pterm.TableData{{"Class", "Characters"}}
	for _, cl := range cls.Classes() {
		classes = append(classes, []string{cl.Name, cl.Set.String()})
	}
	pterm.DefaultTable.WithHasHeader().WithData(classes).Render()
}

func traceLevel(l string) tracing.TraceLevel {
	return tracing.TraceLevelFromString(l)
}
