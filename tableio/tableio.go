/*
Package tableio reads and writes transition tables as YAML documents.

Transition tables and their character classes are configuration, usually
produced by a scanner generator. This package defines a document format
for them:

	name: tiny
	initial: 0
	classes:                        # ordered: codes are assigned in this order
	  letter: "[A-Za-z]"
	  blank: "[\\t\\n ]"
	states:
	  - id: 0
	    edges:                      # ordered: first match wins
	      - {class: letter, next: 1}
	      - {class: blank, next: 2}
	  - id: 1
	    edges:
	      - {class: letter, next: 1}
	    emit: ID
	  - id: 2
	    discard: true

As JSON is a subset of YAML, documents may be given in JSON as well.

A document may carry a checksum, as written by Encode. If present, it
is verified when decoding.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package tableio

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/npillmayer/dfalex/charclass"
	"github.com/npillmayer/dfalex/dfa"
	"github.com/npillmayer/schuko/tracing"
	"gopkg.in/yaml.v3"
)

// tracer traces with key 'dfalex.tableio'.
func tracer() tracing.Trace {
	return tracing.Select("dfalex.tableio")
}

// ErrChecksum is returned for documents whose checksum does not match
// their content.
var ErrChecksum = errors.New("table checksum mismatch")

// Document is the serialized form of a transition table.
type Document struct {
	Name     string     `yaml:"name"`
	Initial  *int       `yaml:"initial,omitempty"`
	Checksum string     `yaml:"checksum,omitempty"`
	Classes  ClassList  `yaml:"classes"`
	States   []StateDoc `yaml:"states"`
}

// ClassDef is a named character class in bracket notation.
type ClassDef struct {
	Name string
	Expr string
}

// ClassList is an ordered list of class definitions. In YAML it is noted
// as a mapping from names to expressions, keeping the order of the keys.
type ClassList []ClassDef

// StateDoc is the serialized form of a state.
type StateDoc struct {
	ID      int       `yaml:"id"`
	Edges   []EdgeDoc `yaml:"edges,omitempty"`
	Emit    string    `yaml:"emit,omitempty"`
	Discard bool      `yaml:"discard,omitempty"`
}

// EdgeDoc is the serialized form of an edge.
type EdgeDoc struct {
	Class string `yaml:"class"`
	Next  int    `yaml:"next"`
}

// UnmarshalYAML is part of interface yaml.Unmarshaler.
// A plain map would lose the order of the classes.
func (cl *ClassList) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: classes must be a mapping of names to class expressions", node.Line)
	}
	list := make(ClassList, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		k, v := node.Content[i], node.Content[i+1]
		if k.Kind != yaml.ScalarNode || v.Kind != yaml.ScalarNode {
			return fmt.Errorf("line %d: class definition must be 'name: expression'", k.Line)
		}
		list = append(list, ClassDef{Name: k.Value, Expr: v.Value})
	}
	*cl = list
	return nil
}

// MarshalYAML is part of interface yaml.Marshaler.
func (cl ClassList) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, def := range cl {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: def.Name},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: def.Expr, Style: yaml.DoubleQuotedStyle},
		)
	}
	return node, nil
}

// --- Decoding ---------------------------------------------------------

// ReadDocument reads a table document, verifying its checksum if present.
func ReadDocument(r io.Reader) (*Document, error) {
	doc := &Document{}
	if err := yaml.NewDecoder(r).Decode(doc); err != nil {
		return nil, fmt.Errorf("cannot read table document: %w", err)
	}
	if doc.Checksum != "" {
		sum, err := Fingerprint(doc)
		if err != nil {
			return nil, err
		}
		if sum != doc.Checksum {
			return nil, fmt.Errorf("%w: table %s has checksum %s, content hashes to %s",
				ErrChecksum, doc.Name, doc.Checksum, sum)
		}
	}
	return doc, nil
}

// Table creates a transition table from a document.
func (doc *Document) Table() (*dfa.Table, error) {
	cb := charclass.NewBuilder()
	for _, def := range doc.Classes {
		cb.AddExpr(def.Name, def.Expr)
	}
	classes, err := cb.Table()
	if err != nil {
		return nil, fmt.Errorf("table %s: %w", doc.Name, err)
	}
	b := dfa.NewBuilder(doc.Name, classes)
	if doc.Initial != nil {
		b.Initial(dfa.StateID(*doc.Initial))
	}
	for _, st := range doc.States {
		sb := b.State(dfa.StateID(st.ID))
		for _, e := range st.Edges {
			sb.On(e.Class, dfa.StateID(e.Next))
		}
		switch {
		case st.Emit != "" && st.Discard:
			return nil, fmt.Errorf("table %s: state %d cannot both emit and discard", doc.Name, st.ID)
		case st.Emit != "":
			sb.Emit(st.Emit)
		case st.Discard:
			sb.Discard()
		default:
			sb.End()
		}
	}
	table, err := b.Table()
	if err != nil {
		return nil, err
	}
	if r := dfa.Validate(table); !r.Clean() {
		tracer().Infof("table %s: %d unreachable states, %d dead states, %d shadowed edges",
			doc.Name, len(r.Unreachable), len(r.Dead), len(r.Shadowed))
	}
	return table, nil
}

// Decode reads a table document and creates the transition table.
func Decode(r io.Reader) (*dfa.Table, error) {
	doc, err := ReadDocument(r)
	if err != nil {
		return nil, err
	}
	return doc.Table()
}

// DecodeFile reads a table document from a file.
func DecodeFile(path string) (*dfa.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	table, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	tracer().Infof("loaded table %s from %s: %d states", table.Name(), path, table.Len())
	return table, nil
}

// --- Encoding ---------------------------------------------------------

// DocumentOf creates the serialized form of a table, including a checksum.
func DocumentOf(t *dfa.Table) (*Document, error) {
	initial := int(t.Initial())
	doc := &Document{Name: t.Name(), Initial: &initial}
	cls := t.Classes()
	for _, cl := range cls.Classes() {
		doc.Classes = append(doc.Classes, ClassDef{Name: cl.Name, Expr: cl.Set.String()})
	}
	for _, st := range t.States() {
		sd := StateDoc{ID: int(st.ID)}
		for _, e := range st.Edges {
			sd.Edges = append(sd.Edges, EdgeDoc{Class: cls.Name(e.Class), Next: int(e.Next)})
		}
		switch st.Action.Kind {
		case dfa.Emit:
			sd.Emit = st.Action.Token
		case dfa.Discard:
			sd.Discard = true
		}
		doc.States = append(doc.States, sd)
	}
	sum, err := Fingerprint(doc)
	if err != nil {
		return nil, err
	}
	doc.Checksum = sum
	return doc, nil
}

// Encode writes a table as a YAML document.
func Encode(w io.Writer, t *dfa.Table) error {
	doc, err := DocumentOf(t)
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err = enc.Encode(doc); err != nil {
		return fmt.Errorf("cannot write table %s: %w", t.Name(), err)
	}
	return enc.Close()
}
