package scanner

import (
	"errors"
	"fmt"

	"github.com/npillmayer/dfalex"
	"github.com/npillmayer/dfalex/dfa"
)

// ErrLexical is the sentinel error all lexical errors unwrap to.
var ErrLexical = errors.New("lexical error")

// EOF marks a lexical error at the end of the input, see LexicalError.Char.
const EOF = -1

// LexicalError is the one kind of error a scanner reports for its input:
// the automaton has arrived at a state with no matching edge for the current
// character, and the state is not accepting. This includes the end of input
// occuring in the middle of a token, and a character which does not start
// any token.
type LexicalError struct {
	Source string          // name of the input, may be empty
	Pos    dfalex.Position // position of the offending character
	Char   int             // the offending character, or EOF
	State  dfa.StateID     // the state the scanner was in, or dfa.NoState if unknown
	Lexeme string          // the partial lexeme which has been discarded
}

func (e *LexicalError) Error() string {
	var where string
	if e.Source != "" {
		where = e.Source + ":"
	}
	where += e.Pos.String()
	switch {
	case e.Char == EOF:
		return fmt.Sprintf("%s: lexical error: unexpected end of input after %q", where, e.Lexeme)
	case e.Char >= 0x80:
		return fmt.Sprintf("%s: lexical error: character %#x outside of character domain", where, e.Char)
	case e.Lexeme == "":
		return fmt.Sprintf("%s: lexical error: character %q does not start a token", where, rune(e.Char))
	case e.State == dfa.NoState:
		return fmt.Sprintf("%s: lexical error: unexpected character %q after %q", where, rune(e.Char), e.Lexeme)
	}
	return fmt.Sprintf("%s: lexical error: unexpected character %q after %q (state %d)",
		where, rune(e.Char), e.Lexeme, e.State)
}

// Unwrap returns ErrLexical.
func (e *LexicalError) Unwrap() error {
	return ErrLexical
}
