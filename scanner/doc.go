/*
Package scanner implements a table-driven scanner.

The scanner executes a transition table (see package dfa) over a stream of
characters from the domain 0…127. It reads characters from a Source one at
a time, evaluates the edges of the current state in declared order and
either follows the first matching edge, or finalizes the lexeme collected
so far. Finalizing requires reading one character past the end of the lexeme
(maximal munch); this character is pushed back to the source and starts the
next lexeme.

Clients either drive the scanner to completion, feeding a sink:

	sc := scanner.New(scanner.NewSource(input), table)
	err := sc.Scan(sink.NewWriter(os.Stdout))

or pull tokens one at a time, e.g. from a parser:

	for {
		token, err := sc.Next()
		if err == io.EOF {
			break
		} else if err != nil {
			…    // err is a *scanner.LexicalError or an I/O error
		}
		…
	}

A scan is terminated by the first lexical error. Tokens delivered before
remain delivered.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package scanner

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'dfalex.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("dfalex.scanner")
}
