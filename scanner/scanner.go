package scanner

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/npillmayer/dfalex"
	"github.com/npillmayer/dfalex/charclass"
	"github.com/npillmayer/dfalex/dfa"
	"github.com/npillmayer/dfalex/sink"
)

// Tokenizer is a scanner interface for parsers, which pull tokens one at
// a time. At the end of input NextToken returns io.EOF.
type Tokenizer interface {
	NextToken() (dfalex.Token, error)
	SetErrorHandler(func(error))
}

// Scanner executes a transition table over an input source.
// A scanner is not safe for concurrent use; the table it executes may be
// shared freely.
type Scanner struct {
	src          *Source
	table        *dfa.Table
	name         string       // name of the input, for diagnostics
	buf          bytes.Buffer // lexeme under construction
	state        dfa.StateID  // current state
	start        uint64       // input offset of the current lexeme
	err          error        // terminal error, sticky
	Error        func(error)  // error handler
	panicOnError bool
}

var _ Tokenizer = (*Scanner)(nil)

// Default error reporting function for scanners
func logError(e error) {
	tracer().Errorf("scanner error: " + e.Error())
}

// New creates a scanner for a source and a transition table.
func New(src *Source, table *dfa.Table, opts ...Option) *Scanner {
	sc := &Scanner{
		src:   src,
		table: table,
		state: table.Initial(),
		Error: logError,
	}
	for _, opt := range opts {
		opt(sc)
	}
	return sc
}

// SetErrorHandler sets an error handler for the scanner. The handler is
// called with every terminal error before it is returned to the client.
func (sc *Scanner) SetErrorHandler(h func(error)) {
	if h == nil {
		sc.Error = logError
		return
	}
	sc.Error = h
}

// Scan runs the scanner until the input is exhausted or an error occurs.
// Tokens of emitting states are passed to s, in input order; lexemes of
// discarding states are dropped silently. Scan returns nil at the end of
// input, a *LexicalError for malformed input, or an error from reading the
// source or writing to s.
func (sc *Scanner) Scan(s sink.Sink) error {
	for {
		action, token, err := sc.lexeme()
		if err == io.EOF {
			return nil
		} else if err != nil {
			return err
		}
		if action.Kind != dfa.Emit {
			continue
		}
		if err = s.Emit(token.Kind, token.Lexeme); err != nil {
			return sc.fail(fmt.Errorf("sink refused token %s: %w", token.Kind, err))
		}
	}
}

// Next returns the next token, skipping lexemes of discarding states.
// At the end of input Next returns io.EOF.
func (sc *Scanner) Next() (dfalex.Token, error) {
	for {
		action, token, err := sc.lexeme()
		if err != nil {
			return dfalex.Token{}, err
		}
		if action.Kind == dfa.Emit {
			return token, nil
		}
	}
}

// NextToken is part of the Tokenizer interface.
func (sc *Scanner) NextToken() (dfalex.Token, error) {
	return sc.Next()
}

// lexeme runs the automaton from the initial state until one lexeme has
// been finalized. It returns the action of the finalizing state and the
// lexeme wrapped into a token. At the end of input, lexeme returns io.EOF.
func (sc *Scanner) lexeme() (dfa.Action, dfalex.Token, error) {
	if sc.err != nil {
		return dfa.Action{}, dfalex.Token{}, sc.err
	}
	initial := sc.table.Initial()
	sc.state = initial
	sc.buf.Reset()
	sc.start = sc.src.Pos().Offset
	for {
		pos := sc.src.Pos()
		c, err := sc.src.Next()
		if err != nil && err != io.EOF {
			return dfa.Action{}, dfalex.Token{}, sc.fail(err)
		}
		atEOF := err == io.EOF
		if !atEOF {
			// characters outside of the domain are never looked up and match no edge
			if next, ok := sc.step(c); ok {
				tracer().Debugf("%4d --%q--> %d", sc.state, c, next)
				sc.buf.WriteByte(c)
				sc.state = next
				continue
			}
		} else if sc.state == initial && sc.buf.Len() == 0 {
			tracer().Debugf("scanner reached end of input")
			return dfa.Action{}, dfalex.Token{}, io.EOF
		}
		action := sc.table.Action(sc.state)
		if action.Kind == dfa.Intermediate {
			if atEOF {
				return dfa.Action{}, dfalex.Token{}, sc.reject(EOF, pos)
			}
			return dfa.Action{}, dfalex.Token{}, sc.reject(int(c), pos)
		}
		if !atEOF { // c does not belong to the lexeme, it starts the next one
			if err = sc.src.Pushback(c); err != nil {
				panic(fmt.Sprintf("scanner: %v", err)) // cannot happen: c has just been read
			}
		}
		token := dfalex.Token{
			Kind:   action.Token,
			Lexeme: sc.buf.String(),
			Span:   dfalex.Span{sc.start, sc.src.Pos().Offset},
		}
		tracer().Debugf("state %d: %s %q", sc.state, action, token.Lexeme)
		sc.buf.Reset()
		sc.state = initial
		return action, token, nil
	}
}

func (sc *Scanner) step(c byte) (dfa.StateID, bool) {
	if c >= charclass.DomainSize {
		return dfa.NoState, false
	}
	return sc.table.Step(sc.state, c)
}

// reject terminates the scan with a lexical error, discarding the partial lexeme.
func (sc *Scanner) reject(c int, pos dfalex.Position) error {
	lexerr := &LexicalError{
		Source: sc.name,
		Pos:    pos,
		Char:   c,
		State:  sc.state,
		Lexeme: sc.buf.String(),
	}
	sc.buf.Reset()
	sc.state = sc.table.Initial()
	if sc.panicOnError {
		panic(`Scanner stopped with a lexical error.

Option PanicOnError is set to true. It is aimed at helping to debug a
transition table and do a post-mortem of why the scanner got stuck.

` + lexerr.Error())
	}
	return sc.fail(lexerr)
}

func (sc *Scanner) fail(err error) error {
	sc.err = err
	if sc.Error != nil {
		sc.Error(err)
	}
	return err
}

// Err returns the error which terminated the scanner, if any.
func (sc *Scanner) Err() error {
	return sc.err
}

// --- Options ----------------------------------------------------------

// Option configures a scanner.
type Option func(sc *Scanner)

// WithName sets a name for the input, used in diagnostics.
func WithName(name string) Option {
	return func(sc *Scanner) {
		sc.name = name
	}
}

// WithErrorHandler sets an error handler, see SetErrorHandler.
func WithErrorHandler(h func(error)) Option {
	return func(sc *Scanner) {
		sc.SetErrorHandler(h)
	}
}

// PanicOnError sets or clears a debugging flag: if set, the scanner panics
// on lexical errors instead of returning them.
func PanicOnError(b bool) Option {
	return func(sc *Scanner) {
		sc.panicOnError = b
	}
}

// --- Convenience ------------------------------------------------------

// ScanString scans a complete string and returns all emitted tokens.
// If the scan fails, the tokens emitted before the failure are returned
// together with the error.
func ScanString(input string, table *dfa.Table, opts ...Option) ([]dfalex.Token, error) {
	var tokens []dfalex.Token
	sc := New(NewSource(strings.NewReader(input)), table, opts...)
	for {
		token, err := sc.Next()
		if err == io.EOF {
			return tokens, nil
		} else if err != nil {
			return tokens, err
		}
		tokens = append(tokens, token)
	}
}
