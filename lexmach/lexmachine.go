package lexmach

import (
	"errors"
	"fmt"
	"io"

	"github.com/npillmayer/dfalex"
	"github.com/npillmayer/dfalex/dfa"
	"github.com/npillmayer/dfalex/scanner"
	"github.com/npillmayer/dfalex/sink"
	"github.com/npillmayer/schuko/tracing"

	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

// tracer traces with key 'dfalex.lexmach'.
func tracer() tracing.Trace {
	return tracing.Select("dfalex.lexmach")
}

// Rule is a lexmachine pattern together with the kind of token it produces.
// An empty kind makes the rule discard its matches.
type Rule struct {
	Pattern string
	Kind    string
}

// Rules is an ordered list of rules. Earlier rules have priority.
type Rules []Rule

// Lexer is a compiled set of rules.
type Lexer struct {
	lexer *lexmachine.Lexer
	kinds []string // token type → kind
}

// Compile compiles a set of rules into a lexer.
//
// Compile will return an error if compiling the DFA failed. Lexmachine
// panics on some malformed patterns, e.g. unbalanced parentheses; these
// panics are returned as errors as well.
func Compile(rules Rules) (lx *Lexer, err error) {
	defer func() {
		if r := recover(); r != nil {
			lx, err = nil, fmt.Errorf("cannot compile lexmachine rules: %v", r)
			tracer().Errorf("error compiling DFA: %v", err)
		}
	}()
	lx = &Lexer{lexer: lexmachine.NewLexer()}
	for _, r := range rules {
		if r.Kind == "" {
			lx.lexer.Add([]byte(r.Pattern), Skip)
			continue
		}
		lx.lexer.Add([]byte(r.Pattern), MakeToken(len(lx.kinds)))
		lx.kinds = append(lx.kinds, r.Kind)
	}
	if err = lx.lexer.Compile(); err != nil {
		tracer().Errorf("error compiling DFA: %v", err)
		return nil, err
	}
	return lx, nil
}

// Scanner creates a scanner for a given input. Name is used in diagnostics
// and may be empty.
func (lx *Lexer) Scanner(input []byte, name string) *Scanner {
	s, err := lx.lexer.Scanner(input)
	return &Scanner{scanner: s, kinds: lx.kinds, name: name, Error: logError, err: err}
}

// Scanner is a scanner type for lexmachine scanners, implementing the
// scanner.Tokenizer interface.
type Scanner struct {
	scanner *lexmachine.Scanner
	kinds   []string
	name    string
	Error   func(error)
	err     error // sticky terminal error
}

var _ scanner.Tokenizer = (*Scanner)(nil)

// SetErrorHandler sets an error handler for the scanner.
func (lms *Scanner) SetErrorHandler(h func(error)) {
	if h == nil {
		lms.Error = logError
		return
	}
	lms.Error = h
}

// Default error reporting function for lexmachine-based scanners
func logError(e error) {
	tracer().Errorf("scanner error: " + e.Error())
}

// NextToken is part of the Tokenizer interface.
// At the end of input it returns io.EOF; after a lexical error every call
// returns that error again.
func (lms *Scanner) NextToken() (dfalex.Token, error) {
	if lms.err != nil {
		return dfalex.Token{}, lms.err
	}
	tok, err, eof := lms.scanner.Next()
	if err != nil {
		lms.err = lms.convert(err)
		lms.Error(lms.err)
		return dfalex.Token{}, lms.err
	}
	if eof {
		lms.err = io.EOF
		return dfalex.Token{}, io.EOF
	}
	tracer().Debugf("tok is %T | %v", tok, tok)
	token := tok.(*lexmachine.Token)
	return dfalex.MakeToken(
		lms.kinds[token.Type],
		string(token.Lexeme),
		dfalex.Span{uint64(token.TC), uint64(token.TC + len(token.Lexeme))},
	), nil
}

// Scan scans the complete input, emitting tokens to a sink.
func (lms *Scanner) Scan(s sink.Sink) error {
	for {
		tok, err := lms.NextToken()
		if errors.Is(err, io.EOF) {
			return nil
		} else if err != nil {
			return err
		}
		if err = s.Emit(tok.Kind, tok.Lexeme); err != nil {
			lms.err = fmt.Errorf("cannot emit token %s: %w", tok.Kind, err)
			return lms.err
		}
	}
}

// convert translates lexmachine's errors into lexical errors.
func (lms *Scanner) convert(err error) error {
	ui, ok := err.(*machines.UnconsumedInput)
	if !ok {
		return err
	}
	lexErr := &scanner.LexicalError{
		Source: lms.name,
		Pos: dfalex.Position{
			Offset: uint64(ui.FailTC),
			Line:   ui.FailLine,
			Column: ui.FailColumn,
		},
		Char:  scanner.EOF,
		State: dfa.NoState,
	}
	if ui.FailTC < len(ui.Text) {
		lexErr.Char = int(ui.Text[ui.FailTC])
	}
	if ui.StartTC < ui.FailTC && ui.FailTC <= len(ui.Text) {
		lexErr.Lexeme = string(ui.Text[ui.StartTC:ui.FailTC])
	}
	return lexErr
}

// ---------------------------------------------------------------------------

// Skip is a pre-defined action which ignores the scanned match.
func Skip(*lexmachine.Scanner, *machines.Match) (interface{}, error) {
	return nil, nil
}

// MakeToken is a pre-defined action which wraps a scanned match into a token
// of the given type.
func MakeToken(typ int) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return s.Token(typ, string(m.Bytes), m), nil
	}
}
