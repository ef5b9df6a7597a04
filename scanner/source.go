package scanner

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/npillmayer/dfalex"
)

// ErrPushback is returned when a character is pushed back to a source which
// already holds a pushed back character, or which has not delivered one.
var ErrPushback = errors.New("source already holds a pushed back character")

// Source is a character source with a single slot for pushing back a
// character. The scanner uses it to recognize the end of a lexeme by reading
// one character past the lexeme and then returning it to the source.
type Source struct {
	reader  io.ByteReader
	next    byte            // last character read, or pushed back character
	hasNext bool            // is next valid?
	canPush bool            // has a character been read since the last pushback?
	isEOF   bool            // end of input reached
	pos     dfalex.Position // position of the next character to read
	prevPos dfalex.Position // position before the last read, restored on pushback
}

// NewSource creates a character source for an input stream.
func NewSource(r io.Reader) *Source {
	src := &Source{pos: dfalex.StartPosition}
	if br, ok := r.(io.ByteReader); ok {
		src.reader = br
	} else {
		src.reader = bufio.NewReader(r)
	}
	return src
}

// Next reads and consumes one character. At the end of the input, Next
// returns io.EOF, and will continue to do so for subsequent calls.
// Other read errors are returned wrapped.
func (src *Source) Next() (byte, error) {
	if src.hasNext {
		src.hasNext = false
		src.canPush = true
		src.advance(src.next)
		return src.next, nil
	}
	src.canPush = false
	if src.isEOF {
		return 0, io.EOF
	}
	c, err := src.reader.ReadByte()
	if err == io.EOF {
		tracer().Debugf("end of input at %s", src.pos)
		src.isEOF = true
		return 0, io.EOF
	} else if err != nil {
		return 0, fmt.Errorf("source cannot read character: %w", err)
	}
	src.canPush = true
	src.next = c
	src.advance(c)
	return c, nil
}

// Pushback returns the character c to the source, so the next call to Next
// yields it again. c has to be the character just read. There is room for
// one character only: calling Pushback twice without an intervening Next
// returns ErrPushback, as does pushing back any other character or calling
// it after Next reported an error or the end of input. End of input is never
// pushed back.
func (src *Source) Pushback(c byte) error {
	if !src.canPush || c != src.next {
		return ErrPushback
	}
	src.hasNext = true
	src.canPush = false
	src.pos = src.prevPos
	return nil
}

// Pos returns the position of the next character to read.
func (src *Source) Pos() dfalex.Position {
	return src.pos
}

func (src *Source) advance(c byte) {
	src.prevPos = src.pos
	src.pos.Offset++
	if c == '\n' {
		src.pos.Line++
		src.pos.Column = 1
	} else {
		src.pos.Column++
	}
}
