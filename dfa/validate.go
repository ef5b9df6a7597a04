package dfa

import (
	"fmt"

	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
	"github.com/npillmayer/dfalex/charclass"
)

// Report collects findings of a static table analysis. None of the findings
// make a table unusable, but they usually hint at problems with the
// generator which produced the table.
type Report struct {
	Unreachable []StateID // states not reachable from the initial state
	Dead        []StateID // non-accepting states without any edges
	Shadowed    []Shadow  // edges which will never be taken
	Overlaps    []Shadow  // edges partially covered by edges of higher priority
}

// Shadow identifies an edge of a state, given by its priority index.
type Shadow struct {
	State StateID
	Edge  int
}

func (s Shadow) String() string {
	return fmt.Sprintf("state %d/edge %d", s.State, s.Edge)
}

// Clean is true if the report has no findings except overlaps, which are legal.
func (r Report) Clean() bool {
	return len(r.Unreachable) == 0 && len(r.Dead) == 0 && len(r.Shadowed) == 0
}

// We need this for the set of states.
func stateIDComparator(a, b interface{}) int {
	return utils.IntComparator(int(a.(StateID)), int(b.(StateID)))
}

// Validate analyses a table. Findings are traced at info level and returned
// as a report.
func Validate(t *Table) Report {
	var r Report
	reachable := t.reachableStates()
	for _, st := range t.States() {
		if !reachable.Contains(st.ID) {
			tracer().Infof("table %s: state %d is unreachable", t.name, st.ID)
			r.Unreachable = append(r.Unreachable, st.ID)
		}
		if len(st.Edges) == 0 && !st.Accepting() && st.ID != t.initial {
			tracer().Infof("table %s: state %d is a dead end", t.name, st.ID)
			r.Dead = append(r.Dead, st.ID)
		}
		var covered charclass.Set
		for i, e := range st.Edges {
			cl, _ := t.classes.Class(e.Class)
			if cl.Set.Minus(covered).IsEmpty() {
				tracer().Infof("table %s: edge %d of state %d (%s) is shadowed", t.name, i, st.ID, cl.Name)
				r.Shadowed = append(r.Shadowed, Shadow{State: st.ID, Edge: i})
			} else if cl.Set.Intersects(covered) {
				tracer().Debugf("table %s: edge %d of state %d (%s) overlaps", t.name, i, st.ID, cl.Name)
				r.Overlaps = append(r.Overlaps, Shadow{State: st.ID, Edge: i})
			}
			covered = covered.Union(cl.Set)
		}
	}
	return r
}

// reachableStates collects all states reachable from the initial state,
// breadth first.
func (t *Table) reachableStates() *treeset.Set {
	visited := treeset.NewWith(stateIDComparator)
	queue := arraylist.New()
	queue.Add(t.initial)
	for !queue.Empty() {
		x, _ := queue.Get(0)
		queue.Remove(0)
		id := x.(StateID)
		if visited.Contains(id) {
			continue
		}
		visited.Add(id)
		st, ok := t.State(id)
		if !ok {
			continue
		}
		for _, e := range st.Edges {
			if !visited.Contains(e.Next) {
				queue.Add(e.Next)
			}
		}
	}
	return visited
}

// Reachable returns the IDs of all states reachable from the initial state,
// in ascending order.
func (t *Table) Reachable() []StateID {
	set := t.reachableStates()
	ids := make([]StateID, 0, set.Size())
	it := set.Iterator()
	for it.Next() {
		ids = append(ids, it.Value().(StateID))
	}
	return ids
}
