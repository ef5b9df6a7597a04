/*
Package dfalex is a table-driven lexical scanner toolbox.

DFALex executes deterministic finite automata which have been prepared
elsewhere, e.g. by a scanner generator, and delivers them as plain
configuration: a set of character classes and a transition table.
Transitions are expressed as per-state, prioritized lists of
character-class predicates. Package structure is as follows:

■ charclass: Package charclass implements character classes over the
7-bit ASCII domain and immutable tables of them.

■ dfa: Package dfa implements transition tables, a builder for them and
some static diagnostics.

■ scanner: Package scanner implements the DFA execution loop, together with
a character source supporting one character of pushback.

■ sink: Package sink implements token sinks, i.e. receivers of the scanner's
token stream, and the textual record format for tokens.

■ tableio: Package tableio reads and writes tables as YAML documents.

■ lexmach: Package lexmach provides a lexmachine-based reference scanner,
usable to cross-check table-driven scanners.

■ tables/tiny: The transition table for the TINY teaching language.

Command cmd/dfalex scans files with a table and writes the token records.

The base package contains data types which are used throughout all the other packages.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package dfalex
