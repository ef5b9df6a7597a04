/*
Package sink implements receivers for token streams.

A scanner delivers every finalized token to a Sink. The standard sink is a
Writer, which writes one textual record per token:

	KIND "escaped lexeme"

Within the lexeme, every quote and every backslash is preceded by an
inserted backslash; all other characters pass through unchanged.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package sink

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/npillmayer/dfalex"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'dfalex.sink'.
func tracer() tracing.Trace {
	return tracing.Select("dfalex.sink")
}

// Sink receives tokens from a scanner, in input order.
type Sink interface {
	Emit(kind string, lexeme string) error
}

// Func is an adapter to use an ordinary function as a Sink.
type Func func(kind string, lexeme string) error

// Emit calls f(kind, lexeme).
func (f Func) Emit(kind string, lexeme string) error {
	return f(kind, lexeme)
}

// --- Escaping ---------------------------------------------------------

// Escape inserts a backslash in front of every quote and every backslash of s.
func Escape(s string) string {
	if !strings.ContainsAny(s, `"\`) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 4)
	for i := 0; i < len(s); i++ {
		if s[i] == '"' || s[i] == '\\' {
			b.WriteByte('\\')
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

// ErrMalformed is returned for text which has not been produced by Escape,
// or for records not produced by a Writer.
var ErrMalformed = errors.New("malformed token record")

// Unescape reverts Escape. It removes one backslash in front of every quote
// or backslash. Backslashes followed by any other character, unescaped quotes
// and a dangling backslash at the end are reported as errors.
func Unescape(s string) (string, error) {
	if !strings.ContainsAny(s, `"\`) {
		return s, nil
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\':
			if i+1 >= len(s) || (s[i+1] != '"' && s[i+1] != '\\') {
				return "", fmt.Errorf("%w: invalid escape at position %d of %q", ErrMalformed, i, s)
			}
			i++
		case '"':
			return "", fmt.Errorf("%w: unescaped quote at position %d of %q", ErrMalformed, i, s)
		}
		b.WriteByte(s[i])
	}
	return b.String(), nil
}

// --- Writer -----------------------------------------------------------

// Writer is a sink writing token records to an io.Writer. Output is buffered;
// clients have to call Flush when done.
type Writer struct {
	w     *bufio.Writer
	count int
}

var _ Sink = (*Writer)(nil)

// NewWriter creates a record writing sink.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

// Emit writes one record for a token.
func (w *Writer) Emit(kind string, lexeme string) error {
	tracer().Debugf("emit %s %q", kind, lexeme)
	if _, err := fmt.Fprintf(w.w, "%s \"%s\"\n", kind, Escape(lexeme)); err != nil {
		return fmt.Errorf("cannot write token record: %w", err)
	}
	w.count++
	return nil
}

// Flush writes buffered records to the underlying writer.
func (w *Writer) Flush() error {
	return w.w.Flush()
}

// Count returns the number of records emitted so far.
func (w *Writer) Count() int {
	return w.count
}

// --- Collector --------------------------------------------------------

// Collector is a sink keeping all tokens in memory.
type Collector struct {
	tokens []dfalex.Token
}

var _ Sink = (*Collector)(nil)

// Emit appends a token.
func (c *Collector) Emit(kind string, lexeme string) error {
	c.tokens = append(c.tokens, dfalex.Token{Kind: kind, Lexeme: lexeme})
	return nil
}

// Tokens returns the tokens collected so far.
func (c *Collector) Tokens() []dfalex.Token {
	return c.tokens
}

// Reset drops all collected tokens.
func (c *Collector) Reset() {
	c.tokens = c.tokens[:0]
}

// String returns the collected tokens in record format.
func (c *Collector) String() string {
	var b strings.Builder
	for _, t := range c.tokens {
		fmt.Fprintf(&b, "%s \"%s\"\n", t.Kind, Escape(t.Lexeme))
	}
	return b.String()
}

// --- Reading records --------------------------------------------------

// Record is a token record as read by ReadRecords.
type Record struct {
	Kind   string
	Lexeme string
}

// MaxRecordSize is the maximum size of a single record ReadRecords accepts,
// including kind, quotes and escapes. Longer records make ReadRecords fail
// with bufio.ErrTooLong.
const MaxRecordSize = 64 * 1024 * 1024

// ReadRecords reads token records as written by a Writer. This is intended
// for consumers of a scanner's output stream, e.g. parsers living in a
// separate process. Records are limited to MaxRecordSize bytes.
func ReadRecords(r io.Reader) ([]Record, error) {
	var records []Record
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 4096), MaxRecordSize)
	// Lexemes may contain newlines, thus we split at record ends, not at line ends
	sc.Split(splitRecords)
	lineno := 0
	for sc.Scan() {
		lineno++
		rec, err := parseRecord(sc.Text())
		if err != nil {
			return records, fmt.Errorf("record %d: %w", lineno, err)
		}
		records = append(records, rec)
	}
	if err := sc.Err(); err != nil {
		return records, err
	}
	return records, nil
}

func parseRecord(line string) (Record, error) {
	sp := strings.IndexByte(line, ' ')
	if sp <= 0 || len(line) < sp+3 || line[sp+1] != '"' || line[len(line)-1] != '"' {
		return Record{}, fmt.Errorf("%w: %q", ErrMalformed, line)
	}
	lexeme, err := Unescape(line[sp+2 : len(line)-1])
	if err != nil {
		return Record{}, err
	}
	return Record{Kind: line[:sp], Lexeme: lexeme}, nil
}

// splitRecords is a bufio.SplitFunc. A record ends at the first newline
// following an unescaped closing quote.
func splitRecords(data []byte, atEOF bool) (advance int, token []byte, err error) {
	quotes := 0
	for i := 0; i < len(data); i++ {
		switch data[i] {
		case '\\':
			i++ // skip escaped character
		case '"':
			quotes++
		case '\n':
			if quotes >= 2 {
				return i + 1, data[:i], nil
			}
		}
	}
	if atEOF && len(data) > 0 {
		return len(data), data, nil
	}
	return 0, nil, nil
}
