package dfa

import (
	"fmt"
	"sort"

	"github.com/npillmayer/dfalex/charclass"
)

// StateID identifies a state of a transition table.
type StateID int

// NoState is never a valid state.
const NoState StateID = -1

// ActionKind is the kind of action attached to a state.
type ActionKind uint8

// Kinds of state actions.
const (
	Intermediate ActionKind = iota // not accepting, just continue
	Emit                           // accepting, deliver a token
	Discard                        // accepting, drop the lexeme
)

func (k ActionKind) String() string {
	switch k {
	case Intermediate:
		return "intermediate"
	case Emit:
		return "emit"
	case Discard:
		return "discard"
	}
	return fmt.Sprintf("ActionKind(%d)", int(k))
}

// Action is the action of a state. Token is set for kind Emit only.
type Action struct {
	Kind  ActionKind
	Token string
}

func (a Action) String() string {
	if a.Kind == Emit {
		return "emit " + a.Token
	}
	return a.Kind.String()
}

// Edge is a transition to state Next, taken for characters in class Class.
type Edge struct {
	Class charclass.CatCode
	Next  StateID
}

// State is a state of a transition table, together with its ordered edges.
type State struct {
	ID     StateID
	Edges  []Edge // in priority order
	Action Action
}

// Accepting is true for states which may finalize a lexeme.
func (s State) Accepting() bool {
	return s.Action.Kind == Emit || s.Action.Kind == Discard
}

func (s State) String() string {
	return fmt.Sprintf("(state %d | %s | %d edges)", s.ID, s.Action, len(s.Edges))
}

// Table is a transition table. Tables are immutable after construction and
// may be shared between scanners without locking. Create tables with a Builder.
type Table struct {
	name    string
	classes *charclass.Table
	states  []State // indexed by state ID
	defined []bool  // state IDs may be sparse
	initial StateID
	count   int
}

// Name returns the name of the table.
func (t *Table) Name() string {
	return t.name
}

// Classes returns the character classes the edges of t refer to.
func (t *Table) Classes() *charclass.Table {
	return t.classes
}

// Initial returns the initial state.
func (t *Table) Initial() StateID {
	return t.initial
}

// Len returns the number of states.
func (t *Table) Len() int {
	return t.count
}

// State returns the state with ID id.
func (t *Table) State(id StateID) (State, bool) {
	if id < 0 || int(id) >= len(t.states) || !t.defined[id] {
		return State{ID: NoState}, false
	}
	return t.states[id], true
}

// States returns all states, ordered by ID.
func (t *Table) States() []State {
	states := make([]State, 0, t.count)
	for id, st := range t.states {
		if t.defined[id] {
			states = append(states, st)
		}
	}
	return states
}

// Step evaluates the edges of state s for character c, in declared order.
// It returns the target of the first edge whose class contains c. If no
// edge matches, Step returns (NoState, false).
func (t *Table) Step(s StateID, c byte) (StateID, bool) {
	if s < 0 || int(s) >= len(t.states) {
		return NoState, false
	}
	for _, e := range t.states[s].Edges {
		if t.classes.BelongsTo(e.Class, c) {
			return e.Next, true
		}
	}
	return NoState, false
}

// Action returns the action of state s.
func (t *Table) Action(s StateID) Action {
	if st, ok := t.State(s); ok {
		return st.Action
	}
	return Action{}
}

// TokenKinds returns the sorted set of token kinds any state emits.
func (t *Table) TokenKinds() []string {
	seen := make(map[string]bool)
	for _, st := range t.States() {
		if st.Action.Kind == Emit {
			seen[st.Action.Token] = true
		}
	}
	kinds := make([]string, 0, len(seen))
	for k := range seen {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}

// Dump is a debugging helper. It traces the table at debug level.
func (t *Table) Dump() {
	tracer().Debugf("--- table %s: %d states, initial %d ---------", t.name, t.count, t.initial)
	for _, st := range t.States() {
		tracer().Debugf("%s", st)
		for i, e := range st.Edges {
			tracer().Debugf("    [%2d] %-12s -> %d", i, t.classes.Name(e.Class), e.Next)
		}
	}
	tracer().Debugf("-------------------------")
}
