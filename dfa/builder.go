package dfa

import (
	"errors"
	"fmt"

	"github.com/npillmayer/dfalex/charclass"
)

// Builder is a builder type for transition tables.
type Builder struct {
	name       string
	classes    *charclass.Table
	states     map[StateID]*State
	order      []StateID
	initial    StateID
	hasInitial bool
	err        error
}

// StateBuilder is a builder type for a single state. Create one with
// Builder.State(…) and finish it with one of End(), Emit(…) or Discard().
type StateBuilder struct {
	b     *Builder
	state *State
}

// NewBuilder creates a builder for a transition table. Edges will refer to
// the classes of cls.
func NewBuilder(name string, cls *charclass.Table) *Builder {
	return &Builder{
		name:    name,
		classes: cls,
		states:  make(map[StateID]*State),
		initial: NoState,
	}
}

// Initial sets the initial state. If not set, the first state declared is
// the initial state.
func (b *Builder) Initial(id StateID) *Builder {
	b.initial = id
	b.hasInitial = true
	return b
}

// State starts the declaration of state id. Every state may be declared
// only once.
func (b *Builder) State(id StateID) *StateBuilder {
	st := &State{ID: id}
	if id < 0 {
		b.fail(fmt.Errorf("illegal state ID %d", id))
	} else if _, exists := b.states[id]; exists {
		b.fail(fmt.Errorf("state %d declared twice", id))
	} else {
		b.states[id] = st
		b.order = append(b.order, id)
	}
	return &StateBuilder{b: b, state: st}
}

// On appends an edge to state next, labeled with the class named cls.
// Edges are evaluated in the order of calls to On.
func (sb *StateBuilder) On(cls string, next StateID) *StateBuilder {
	id, ok := sb.b.classes.Lookup(cls)
	if !ok {
		sb.b.fail(fmt.Errorf("state %d: unknown character class %q", sb.state.ID, cls))
		return sb
	}
	return sb.OnCode(id, next)
}

// OnCode appends an edge to state next, labeled with class code id.
func (sb *StateBuilder) OnCode(id charclass.CatCode, next StateID) *StateBuilder {
	if _, ok := sb.b.classes.Class(id); !ok {
		sb.b.fail(fmt.Errorf("state %d: unknown character class code %d", sb.state.ID, id))
		return sb
	}
	sb.state.Edges = append(sb.state.Edges, Edge{Class: id, Next: next})
	return sb
}

// End finishes a non-accepting state.
func (sb *StateBuilder) End() *Builder {
	sb.state.Action = Action{Kind: Intermediate}
	return sb.b
}

// Emit finishes an accepting state, which delivers lexemes as tokens of
// the given kind.
func (sb *StateBuilder) Emit(kind string) *Builder {
	if kind == "" {
		sb.b.fail(fmt.Errorf("state %d: empty token kind", sb.state.ID))
	}
	sb.state.Action = Action{Kind: Emit, Token: kind}
	return sb.b
}

// Discard finishes an accepting state, which drops its lexemes.
func (sb *StateBuilder) Discard() *Builder {
	sb.state.Action = Action{Kind: Discard}
	return sb.b
}

func (b *Builder) fail(err error) {
	tracer().Errorf("table %s: %v", b.name, err)
	if b.err == nil {
		b.err = err
	}
}

// Table returns the finished transition table. It will return an error if
// any declaration was erroneous, if an edge targets an undeclared state,
// or if the initial state is missing or accepting.
func (b *Builder) Table() (*Table, error) {
	if b.err != nil {
		return nil, b.err
	}
	if b.classes == nil {
		return nil, errors.New("table without character classes")
	}
	if len(b.order) == 0 {
		return nil, fmt.Errorf("table %s has no states", b.name)
	}
	initial := b.initial
	if !b.hasInitial {
		initial = b.order[0]
	}
	start, ok := b.states[initial]
	if !ok {
		return nil, fmt.Errorf("table %s: initial state %d not declared", b.name, initial)
	}
	if start.Accepting() {
		return nil, fmt.Errorf("table %s: initial state %d must not be accepting", b.name, initial)
	}
	max := StateID(0)
	for _, id := range b.order {
		if id > max {
			max = id
		}
	}
	// states are stored by ID, so IDs have to be reasonably dense
	if limit := StateID(4*len(b.order) + 64); max >= limit {
		return nil, fmt.Errorf("table %s: state ID %d too large for %d states (limit %d)",
			b.name, max, len(b.order), limit)
	}
	for _, id := range b.order {
		for _, e := range b.states[id].Edges {
			if _, ok := b.states[e.Next]; !ok {
				return nil, fmt.Errorf("table %s: state %d has edge to undeclared state %d",
					b.name, id, e.Next)
			}
		}
	}
	t := &Table{
		name:    b.name,
		classes: b.classes,
		states:  make([]State, max+1),
		defined: make([]bool, max+1),
		initial: initial,
		count:   len(b.order),
	}
	for _, id := range b.order {
		st := *b.states[id]
		st.Edges = append([]Edge(nil), st.Edges...)
		t.states[id] = st
		t.defined[id] = true
	}
	return t, nil
}
