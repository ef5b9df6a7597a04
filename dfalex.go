package dfalex

import "fmt"

// --- Tokens ----------------------------------------------------------------

// Token is a classified lexeme, produced by a scanner at an accepting state.
// Kind is the token tag as declared by the transition table (e.g., "ID" or "LE"),
// Lexeme holds the raw characters as they appeared in the input stream.
//
//	Kind   = "NUMBER"     // token tag (application specific)
//	Lexeme = "3141"       // lexeme how it appeared in the input stream
//	Span   = 67…71        // occured from position 67 in the input stream
//
// Tokens are values and are not changed after creation.
type Token struct {
	Kind   string
	Lexeme string
	Span   Span
}

// MakeToken creates a token.
func MakeToken(kind string, lexeme string, span Span) Token {
	return Token{Kind: kind, Lexeme: lexeme, Span: span}
}

// IsNull is true for the zero token.
func (t Token) IsNull() bool {
	return t.Kind == "" && t.Lexeme == "" && t.Span.IsNull()
}

func (t Token) String() string {
	return fmt.Sprintf("%s %q %s", t.Kind, t.Lexeme, t.Span)
}

// --- Spans ------------------------------------------------------------

// Span is a small type for capturing a run of input bytes. A span denotes a
// start position and the position just behind the end.
type Span [2]uint64 // (x…y)

// From returns the start value of a span.
func (s Span) From() uint64 {
	return s[0]
}

// To returns the end value of a span.
func (s Span) To() uint64 {
	return s[1]
}

// Len returns the length of (x…y)
func (s Span) Len() uint64 {
	return s[1] - s[0]
}

func (s Span) IsNull() bool {
	return s == Span{}
}

func (s Span) Extend(other Span) Span {
	if other[0] < s[0] {
		s[0] = other[0]
	}
	if other[1] > s[1] {
		s[1] = other[1]
	}
	return s
}

func (s Span) String() string {
	return fmt.Sprintf("(%d…%d)", s[0], s[1])
}

// --- Positions --------------------------------------------------------

// Position is a location in an input stream, used for diagnostics.
// Offset is counted in bytes from 0, Line and Column are counted from 1.
type Position struct {
	Offset uint64
	Line   int
	Column int
}

// StartPosition is the position of the first byte of an input stream.
var StartPosition = Position{Line: 1, Column: 1}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}
