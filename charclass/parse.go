package charclass

import (
	"fmt"
	"strconv"
)

// Parse reads a character class in bracket notation:
//
//	class  ::=  '[' [ '^' ] item* ']'
//	item   ::=  char | char '-' char
//	char   ::=  any character except '\' and ']'  |  escape
//	escape ::=  '\t' | '\n' | '\r' | '\xHH' | '\' any
//
// A leading '^' complements the class within the domain 0…127.
// A '-' is taken literally as the first or last item.
func Parse(expr string) (Set, error) {
	var s Set
	p := classParser{input: expr}
	if !p.consume('[') {
		return s, p.errorf("class must start with '['")
	}
	negate := p.consume('^')
	for !p.atEnd() && p.peek() != ']' {
		lo, err := p.char()
		if err != nil {
			return s, err
		}
		hi := lo
		if p.peek() == '-' && p.peekAt(1) != ']' && p.pos+1 < len(p.input) {
			p.pos++
			if hi, err = p.char(); err != nil {
				return s, err
			}
			if hi < lo {
				return s, p.errorf("invalid range %q-%q", lo, hi)
			}
		}
		s = s.Union(Range(lo, hi))
	}
	if !p.consume(']') {
		return s, p.errorf("missing ']'")
	}
	if !p.atEnd() {
		return s, p.errorf("trailing characters after ']'")
	}
	if negate {
		s = s.Complement()
	}
	return s, nil
}

// MustParse is like Parse, but panics if expr cannot be parsed.
// It is intended for static class definitions.
func MustParse(expr string) Set {
	s, err := Parse(expr)
	if err != nil {
		panic(err)
	}
	return s
}

type classParser struct {
	input string
	pos   int
}

func (p *classParser) atEnd() bool {
	return p.pos >= len(p.input)
}

func (p *classParser) peek() byte {
	return p.peekAt(0)
}

func (p *classParser) peekAt(n int) byte {
	if p.pos+n >= len(p.input) {
		return 0
	}
	return p.input[p.pos+n]
}

func (p *classParser) consume(c byte) bool {
	if !p.atEnd() && p.input[p.pos] == c {
		p.pos++
		return true
	}
	return false
}

func (p *classParser) char() (byte, error) {
	if p.atEnd() {
		return 0, p.errorf("unexpected end of class")
	}
	c := p.input[p.pos]
	p.pos++
	if c != '\\' {
		if c >= DomainSize {
			return 0, p.errorf("character %#x outside of class domain", c)
		}
		return c, nil
	}
	if p.atEnd() {
		return 0, p.errorf("dangling '\\'")
	}
	c = p.input[p.pos]
	p.pos++
	switch c {
	case 't':
		return '\t', nil
	case 'n':
		return '\n', nil
	case 'r':
		return '\r', nil
	case 'x':
		if p.pos+2 > len(p.input) {
			return 0, p.errorf("incomplete hex escape")
		}
		v, err := strconv.ParseUint(p.input[p.pos:p.pos+2], 16, 8)
		if err != nil || v >= DomainSize {
			return 0, p.errorf("invalid hex escape %q", p.input[p.pos:p.pos+2])
		}
		p.pos += 2
		return byte(v), nil
	}
	if c >= DomainSize {
		return 0, p.errorf("character %#x outside of class domain", c)
	}
	return c, nil
}

func (p *classParser) errorf(format string, args ...interface{}) error {
	return fmt.Errorf("class %q, position %d: %s", p.input, p.pos, fmt.Sprintf(format, args...))
}
