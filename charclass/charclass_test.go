package charclass

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestSetMembership(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "dfalex.charclass")
	defer teardown()
	//
	digits := Range('0', '9')
	if digits.Len() != 10 {
		t.Errorf("expected 10 digits, have %d", digits.Len())
	}
	for c := 0; c < DomainSize; c++ {
		isDigit := c >= '0' && c <= '9'
		if digits.Contains(byte(c)) != isDigit {
			t.Errorf("membership of %q in digits is wrong", c)
		}
	}
	if digits.Contains(200) {
		t.Errorf("characters outside of the domain must never be members")
	}
	bitmap := Set([16]byte{0, 0, 0, 0, 0, 0, 255, 3})
	if bitmap != digits {
		t.Errorf("expected generator bitmap to equal digits, is %s", bitmap)
	}
}

func TestSetOperations(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "dfalex.charclass")
	defer teardown()
	//
	letters := Range('a', 'z')
	notR := letters.Minus(Of("r"))
	if notR.Contains('r') || !notR.Contains('s') || notR.Len() != 25 {
		t.Errorf("letters minus r is wrong: %s", notR)
	}
	if !notR.Union(Of("r")).Intersects(Of("r")) {
		t.Errorf("expected union to contain r")
	}
	all := letters.Union(letters.Complement())
	if all.Len() != DomainSize {
		t.Errorf("expected class and complement to cover the domain, have %d", all.Len())
	}
	if !(Set{}).IsEmpty() || letters.IsEmpty() {
		t.Errorf("IsEmpty is broken")
	}
}

func TestParse(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "dfalex.charclass")
	defer teardown()
	//
	for i, test := range []struct {
		expr string
		want Set
	}{
		{`[a-z]`, Range('a', 'z')},
		{`[A-Z_a-z]`, Range('A', 'Z').Union(Range('a', 'z')).Add('_')},
		{`[\t\n ]`, Of("\t\n ")},
		{`[\t-\n ]`, Of("\t\n ")},
		{`[-+]`, Of("-+")},
		{`[+-]`, Of("-+")},
		{`[\-]`, Of("-")},
		{`[\]\\]`, Of(`]\`)},
		{`[\x41]`, Of("A")},
		{`[^}]`, Of("}").Complement()},
		{`[]`, Set{}},
	} {
		s, err := Parse(test.expr)
		if err != nil {
			t.Errorf("test %d: unexpected error: %v", i, err)
			continue
		}
		if s != test.want {
			t.Errorf("test %d: expected %s to be %s, is %s", i, test.expr, test.want, s)
		}
	}
}

func TestParseErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "dfalex.charclass")
	defer teardown()
	//
	for _, expr := range []string{"a-z", "[a-z", "[z-a]", `[\`, `[\xZZ]`, "[a]x", "[\xc3]"} {
		if _, err := Parse(expr); err == nil {
			t.Errorf("expected %q to be rejected", expr)
		}
	}
}

func TestStringRoundTrip(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "dfalex.charclass")
	defer teardown()
	//
	for _, s := range []Set{
		Range('a', 'z').Union(Range('0', '9')),
		Of(`-^]\[`),
		Of("ab"),
		Of("}").Complement(),
		Range(0, 31),
		{},
	} {
		r, err := Parse(s.String())
		if err != nil {
			t.Errorf("cannot re-read %s: %v", s, err)
			continue
		}
		if r != s {
			t.Errorf("round trip failed: %s became %s", s, r)
		}
	}
	if str := Of("abc").Union(Of("x")).String(); str != "[a-cx]" {
		t.Errorf("expected [a-cx], have %s", str)
	}
}

func TestTable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "dfalex.charclass")
	defer teardown()
	//
	b := NewBuilder()
	ident := b.AddExpr("ident", "[A-Za-z_]")
	keywordSuffix := b.AddExpr("r", "[r]")
	digit := b.Add("digit", Range('0', '9'))
	table, err := b.Table()
	if err != nil {
		t.Fatal(err)
	}
	if table.Len() != 3 || ident != 0 || keywordSuffix != 1 || digit != 2 {
		t.Fatalf("unexpected codes %d, %d, %d", ident, keywordSuffix, digit)
	}
	if !table.BelongsTo(ident, 'r') || !table.BelongsTo(keywordSuffix, 'r') {
		t.Errorf("expected 'r' to be member of both overlapping classes")
	}
	if table.BelongsTo(digit, 'r') || table.BelongsTo(7, 'r') || table.BelongsTo(IllegalCatCode, 'r') {
		t.Errorf("unexpected membership of 'r'")
	}
	if cats := table.Categories('r'); len(cats) != 2 || cats[0] != ident || cats[1] != keywordSuffix {
		t.Errorf("expected 'r' to be in categories [0 1], is in %v", cats)
	}
	if id, ok := table.Lookup("digit"); !ok || id != digit {
		t.Errorf("lookup of digit failed")
	}
	if table.Name(keywordSuffix) != "r" || table.Name(42) != "?" {
		t.Errorf("unexpected class names")
	}
}

func TestBuilderErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "dfalex.charclass")
	defer teardown()
	//
	b := NewBuilder()
	b.Add("x", Of("x"))
	if id := b.Add("x", Of("y")); id != IllegalCatCode {
		t.Errorf("expected duplicate class to be refused")
	}
	if _, err := b.Table(); err == nil {
		t.Errorf("expected builder to report duplicate class")
	}
	b = NewBuilder()
	b.AddExpr("broken", "[a-")
	if _, err := b.Table(); err == nil {
		t.Errorf("expected builder to report broken class expression")
	}
}
