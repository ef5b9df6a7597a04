/*
Package tiny provides the transition table for TINY, the small teaching
language from K. C. Louden's "Compiler Construction: Principles and Practice".

TINY has the keywords if, then, else, end, repeat, until, read and write,
each of them in lower case or in upper case. Keywords are recognized by
the automaton itself; a mixed-case spelling like "Else" is an identifier.
Comments are enclosed in braces and may span lines, but must not contain
tab characters. Whitespace and comments are discarded.

	table, err := tiny.Table()
	...
	tokens, err := scanner.ScanString("read x; { input }", table)

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package tiny

import (
	"bytes"
	_ "embed"
	"sync"

	"github.com/npillmayer/dfalex/dfa"
	"github.com/npillmayer/dfalex/tableio"
)

//go:embed tiny.yaml
var document []byte

var (
	once  sync.Once
	table *dfa.Table
	err   error
)

// Table returns the transition table for TINY. The table is loaded once and
// shared; tables are immutable, so it may be used by concurrent scanners.
func Table() (*dfa.Table, error) {
	once.Do(func() {
		table, err = tableio.Decode(bytes.NewReader(document))
	})
	return table, err
}

// Keywords lists the token kinds of TINY's keywords.
var Keywords = []string{"IF", "THEN", "ELSE", "END", "REPEAT", "UNTIL", "READ", "WRITE"}
