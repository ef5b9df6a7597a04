/*
Package charclass implements character classes for table-driven scanners.

A character class is a predicate over the character domain 0…127, represented
as a 128-bit membership map. Classes are collected into an immutable Table,
where each class is identified by a small integer, its category code.
Classes of a table may overlap: a character may be a member of more than
one class. Resolving this is up to the transition table, which evaluates
classes in a declared order.

Classes are usually noted in bracket notation, similar to regular expressions:

	[A-Za-z_]      letters and underscore
	[^}]           every character of the domain except '}'
	[\t\n ]        tab, newline and blank

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package charclass

import (
	"errors"
	"fmt"
	"math/bits"
	"strings"

	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'dfalex.charclass'.
func tracer() tracing.Trace {
	return tracing.Select("dfalex.charclass")
}

// DomainSize is the number of characters in the domain of character classes.
// Characters are bytes 0…127; every other value is outside of the domain.
const DomainSize = 128

// --- Sets -------------------------------------------------------------

// Set is a set of characters from the domain 0…127. Character c is a member
// if bit c%8 of byte c/8 is set. This is the layout scanner generators
// usually use for their tables, so a generated bitmap may be converted
// directly:
//
//	s := charclass.Set([16]byte{0, 0, 0, 0, 0, 0, 255, 3})   // digits 0…9
type Set [DomainSize / 8]byte

// Of returns a set containing all the characters of a string.
// Of will panic if a character is outside of the domain.
func Of(chars string) Set {
	var s Set
	for i := 0; i < len(chars); i++ {
		s = s.Add(chars[i])
	}
	return s
}

// Range returns the set of characters lo…hi (inclusive).
// Range will panic if hi is outside of the domain.
func Range(lo, hi byte) Set {
	var s Set
	for c := int(lo); c <= int(hi); c++ {
		s = s.Add(byte(c))
	}
	return s
}

// Add returns a copy of s with c added.
func (s Set) Add(c byte) Set {
	if c >= DomainSize {
		panic(fmt.Sprintf("character %#x outside of class domain", c))
	}
	s[c/8] |= 1 << (c % 8)
	return s
}

// Contains is the membership test. It is false for every character outside
// of the domain.
func (s Set) Contains(c byte) bool {
	if c >= DomainSize {
		return false
	}
	return s[c/8]&(1<<(c%8)) != 0
}

// Union returns s ∪ other.
func (s Set) Union(other Set) Set {
	for i := range s {
		s[i] |= other[i]
	}
	return s
}

// Minus returns s \ other.
func (s Set) Minus(other Set) Set {
	for i := range s {
		s[i] &^= other[i]
	}
	return s
}

// Complement returns the set of domain characters not contained in s.
func (s Set) Complement() Set {
	for i := range s {
		s[i] = ^s[i]
	}
	return s
}

// Intersects is true if s and other have at least one character in common.
func (s Set) Intersects(other Set) bool {
	for i := range s {
		if s[i]&other[i] != 0 {
			return true
		}
	}
	return false
}

// Len returns the number of characters in s.
func (s Set) Len() int {
	n := 0
	for _, b := range s {
		n += bits.OnesCount8(b)
	}
	return n
}

// IsEmpty is true for the empty set.
func (s Set) IsEmpty() bool {
	return s == Set{}
}

// String returns s in bracket notation. The result may be re-read with Parse.
func (s Set) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for c := 0; c < DomainSize; c++ {
		if !s.Contains(byte(c)) {
			continue
		}
		to := c
		for to+1 < DomainSize && s.Contains(byte(to+1)) {
			to++
		}
		writeChar(&b, byte(c))
		if to > c+1 {
			b.WriteByte('-')
		}
		if to > c {
			writeChar(&b, byte(to))
		}
		c = to
	}
	b.WriteByte(']')
	return b.String()
}

func writeChar(b *strings.Builder, c byte) {
	switch c {
	case '\t':
		b.WriteString(`\t`)
	case '\n':
		b.WriteString(`\n`)
	case '\r':
		b.WriteString(`\r`)
	case '\\', ']', '-', '^', '[':
		b.WriteByte('\\')
		b.WriteByte(c)
	default:
		if c < ' ' || c == 127 {
			fmt.Fprintf(b, `\x%02x`, c)
			return
		}
		b.WriteByte(c)
	}
}

// --- Category codes ---------------------------------------------------

// CatCode identifies a character class within a table.
type CatCode int16

// IllegalCatCode is never a valid code of a class.
const IllegalCatCode CatCode = -1

// Class is a named character class, member of a table.
type Class struct {
	Code CatCode
	Name string
	Set  Set
}

func (cl Class) String() string {
	return fmt.Sprintf("%s=%s", cl.Name, cl.Set)
}

// Table is an immutable, ordered collection of character classes. Codes are
// assigned in the order of insertion, starting at 0.
//
// Tables are read-only after construction and may be shared freely between
// scanners.
type Table struct {
	classes []Class
	names   map[string]CatCode
}

// BelongsTo tests if character c is a member of the class with code id.
// It is false for unknown codes and for characters outside of the domain.
func (t *Table) BelongsTo(id CatCode, c byte) bool {
	if t == nil || id < 0 || int(id) >= len(t.classes) {
		return false
	}
	return t.classes[id].Set.Contains(c)
}

// Len returns the number of classes in t.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.classes)
}

// Class returns the class with code id.
func (t *Table) Class(id CatCode) (Class, bool) {
	if t == nil || id < 0 || int(id) >= len(t.classes) {
		return Class{Code: IllegalCatCode}, false
	}
	return t.classes[id], true
}

// Name returns the name of class id, or "?" for unknown codes.
func (t *Table) Name(id CatCode) string {
	if cl, ok := t.Class(id); ok {
		return cl.Name
	}
	return "?"
}

// Lookup finds a class by name.
func (t *Table) Lookup(name string) (CatCode, bool) {
	if t == nil {
		return IllegalCatCode, false
	}
	id, ok := t.names[name]
	if !ok {
		return IllegalCatCode, false
	}
	return id, true
}

// Classes returns all classes of t, ordered by code.
func (t *Table) Classes() []Class {
	if t == nil {
		return nil
	}
	cls := make([]Class, len(t.classes))
	copy(cls, t.classes)
	return cls
}

// Categories returns the codes of all classes containing c, in code order.
// Clients may use this to find out about overlapping classes.
func (t *Table) Categories(c byte) []CatCode {
	var codes []CatCode
	for _, cl := range t.Classes() {
		if cl.Set.Contains(c) {
			codes = append(codes, cl.Code)
		}
	}
	return codes
}

// --- Builder ----------------------------------------------------------

// Builder collects classes for a table.
//
//	b := charclass.NewBuilder()
//	letter := b.Add("letter", charclass.MustParse("[A-Za-z]"))
//	digit  := b.Add("digit", charclass.Range('0', '9'))
//	table, err := b.Table()
type Builder struct {
	classes []Class
	names   map[string]CatCode
	err     error
}

// NewBuilder creates a builder for a class table.
func NewBuilder() *Builder {
	return &Builder{names: make(map[string]CatCode)}
}

// Add appends a named class. Add returns the class' code, or IllegalCatCode
// in case of an error. Errors are reported by Table().
func (b *Builder) Add(name string, s Set) CatCode {
	if name == "" {
		b.fail(errors.New("character class without a name"))
		return IllegalCatCode
	}
	if _, exists := b.names[name]; exists {
		b.fail(fmt.Errorf("duplicate character class %q", name))
		return IllegalCatCode
	}
	if s.IsEmpty() {
		tracer().Infof("character class %q is empty", name)
	}
	id := CatCode(len(b.classes))
	b.classes = append(b.classes, Class{Code: id, Name: name, Set: s})
	b.names[name] = id
	return id
}

// AddExpr parses a class in bracket notation and appends it.
func (b *Builder) AddExpr(name string, expr string) CatCode {
	s, err := Parse(expr)
	if err != nil {
		b.fail(fmt.Errorf("character class %q: %w", name, err))
		return IllegalCatCode
	}
	return b.Add(name, s)
}

func (b *Builder) fail(err error) {
	if b.err == nil {
		b.err = err
	}
}

// Table returns the finished class table, or the first error which occurred
// during construction.
func (b *Builder) Table() (*Table, error) {
	if b.err != nil {
		return nil, b.err
	}
	t := &Table{
		classes: make([]Class, len(b.classes)),
		names:   make(map[string]CatCode, len(b.names)),
	}
	copy(t.classes, b.classes)
	for k, v := range b.names {
		t.names[k] = v
	}
	return t, nil
}
