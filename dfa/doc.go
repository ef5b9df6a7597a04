/*
Package dfa implements transition tables for table-driven scanners.

A transition table describes a deterministic finite automaton. Every state
owns an ordered list of edges, each edge labeled with a character class
(see package charclass) and a target state. Character classes may overlap,
therefore the order of the edges is significant: a scanner evaluates the
edges of a state in declared order, and the first edge whose class contains
the current character wins. Tables keep this order as declared; it is part
of the configuration, not an implementation detail.

Additionally, every state carries exactly one action:

■ Emit: the state is accepting, and the lexeme is delivered as a token
of the declared kind.

■ Discard: the state is accepting, but the lexeme is dropped (e.g., for
whitespace or comments).

■ Intermediate: the state is not accepting.

# Building a Table

Tables are specified using a builder object, usually by a scanner generator
or a configuration loader (see package tableio).

	b := dfa.NewBuilder("expr", classes)       // classes is a *charclass.Table
	b.State(0).On("letter", 1).On("plus", 2).On("blank", 3).End()
	b.State(1).On("letter", 1).On("digit", 1).Emit("ID")
	b.State(2).Emit("PLUS")
	b.State(3).On("blank", 3).Discard()
	table, err := b.Table()

The first state declared is the initial state, unless set explicitly with
b.Initial(…).

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package dfa

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'dfalex.dfa'.
func tracer() tracing.Trace {
	return tracing.Select("dfalex.dfa")
}
