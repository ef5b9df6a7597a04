/*
Command dfalex scans an input with a table driven scanner and writes the
tokens as records, one per line:

	KIND "lexeme"

Quotes and backslashes within lexemes are escaped with a backslash.
Whitespace and comments are not written. When the input has been scanned
completely, dfalex reports success on standard error. On a lexical error
it prints a diagnostic and exits with status 1; records written before the
error remain in the output.

Usage:

	dfalex [flags] [input-file]

Without an input file, dfalex reads standard input. Flags are:

	-table file    transition table document (default: built-in TINY table)
	-o file        output file for token records (default: standard output)
	-engine name   scanner engine: dfa (default) or lexmachine; the lexmachine
	               engine knows the TINY language only
	-i             interactive mode: scan every line typed
	-dump          print the transition table and exit
	-strict        panic on lexical errors, for post-mortems
	-trace level   trace level [Debug|Info|Error]

Setting the configuration key "panic-on-lexical-error" has the same effect
as -strict.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package main

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'dfalex.cmd'
func tracer() tracing.Trace {
	return tracing.Select("dfalex.cmd")
}
