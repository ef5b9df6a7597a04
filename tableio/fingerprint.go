package tableio

import (
	"fmt"
	"strings"

	"github.com/cnf/structhash"
)

// canonical is the form of a document which is hashed. It does not contain
// the checksum itself and normalizes the optional initial state.
type canonical struct {
	Name    string
	Initial int
	Classes []string
	States  []string
}

// Fingerprint computes a checksum for the content of a document, ignoring
// the document's checksum field. Documents describing the same automaton in
// the same order have the same fingerprint; reordering classes or edges
// changes it, as the order is significant.
func Fingerprint(doc *Document) (string, error) {
	c := canonical{Name: doc.Name, Initial: -1}
	if doc.Initial != nil {
		c.Initial = *doc.Initial
	} else if len(doc.States) > 0 {
		c.Initial = doc.States[0].ID
	}
	for _, def := range doc.Classes {
		c.Classes = append(c.Classes, def.Name+"="+def.Expr)
	}
	for _, st := range doc.States {
		var b strings.Builder
		fmt.Fprintf(&b, "%d|%s|%v|", st.ID, st.Emit, st.Discard)
		for _, e := range st.Edges {
			fmt.Fprintf(&b, "%s>%d,", e.Class, e.Next)
		}
		c.States = append(c.States, b.String())
	}
	sum, err := structhash.Hash(c, 1)
	if err != nil {
		return "", fmt.Errorf("cannot compute table fingerprint: %w", err)
	}
	return sum, nil
}
