package sink

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestEscape(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "dfalex.sink")
	defer teardown()
	//
	for i, test := range []struct {
		raw, escaped string
	}{
		{`x12`, `x12`},
		{`"`, `\"`},
		{`\`, `\\`},
		{`a"b\c`, `a\"b\\c`},
		{`\"`, `\\\"`},
		{"", ""},
		{"{ comment\n}", "{ comment\n}"},
	} {
		if e := Escape(test.raw); e != test.escaped {
			t.Errorf("test %d: expected escape(%q) = %q, is %q", i, test.raw, test.escaped, e)
		}
		u, err := Unescape(test.escaped)
		if err != nil {
			t.Errorf("test %d: %v", i, err)
		} else if u != test.raw {
			t.Errorf("test %d: round trip failed, %q became %q", i, test.raw, u)
		}
	}
}

func TestUnescapeErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "dfalex.sink")
	defer teardown()
	//
	for _, s := range []string{`\`, `a\b`, `"`, `x\\\`} {
		if _, err := Unescape(s); !errors.Is(err, ErrMalformed) {
			t.Errorf("expected %q to be malformed, error is %v", s, err)
		}
	}
}

func TestWriter(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "dfalex.sink")
	defer teardown()
	//
	var out bytes.Buffer
	w := NewWriter(&out)
	w.Emit("ID", "x12")
	w.Emit("PLUS", "+")
	w.Emit("STRING", `say "hi" \o/`)
	if out.Len() != 0 {
		t.Errorf("expected output to be buffered until flushed")
	}
	if err := w.Flush(); err != nil {
		t.Fatal(err)
	}
	expected := "ID \"x12\"\nPLUS \"+\"\nSTRING \"say \\\"hi\\\" \\\\o/\"\n"
	if out.String() != expected {
		t.Errorf("expected output\n%s\nhave\n%s", expected, out.String())
	}
	if w.Count() != 3 {
		t.Errorf("expected 3 records, have %d", w.Count())
	}
}

func TestReadRecords(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "dfalex.sink")
	defer teardown()
	//
	c := &Collector{}
	lexemes := []string{"x12", `"`, `\`, "multi\nline", `\"\\`, ""}
	for _, l := range lexemes {
		c.Emit("T", l)
	}
	records, err := ReadRecords(strings.NewReader(c.String()))
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != len(lexemes) {
		t.Fatalf("expected %d records, have %d", len(lexemes), len(records))
	}
	for i, r := range records {
		if r.Kind != "T" || r.Lexeme != lexemes[i] {
			t.Errorf("record %d: expected T %q, have %s %q", i, lexemes[i], r.Kind, r.Lexeme)
		}
	}
}

func TestReadLongRecord(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "dfalex.sink")
	defer teardown()
	//
	long := strings.Repeat(`ab"\`+"\n", 512*1024) // 2.5 MiB, escaped 3.5 MiB
	var buf bytes.Buffer
	w := NewWriter(&buf)
	w.Emit("COMMENT", long)
	w.Emit("ID", "x")
	if err := w.Flush(); err != nil {
		t.Fatal(err)
	}
	records, err := ReadRecords(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 2 || records[0].Lexeme != long || records[1].Lexeme != "x" {
		t.Errorf("long record did not survive the round trip")
	}
}

func TestReadMalformedRecords(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "dfalex.sink")
	defer teardown()
	//
	for _, input := range []string{"ID x\n", "ID \"x\n", "\"x\"\n", "ID \"a\"b\"\n"} {
		if _, err := ReadRecords(strings.NewReader(input)); err == nil {
			t.Errorf("expected %q to be rejected", input)
		}
	}
}

func TestFuncSink(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "dfalex.sink")
	defer teardown()
	//
	var kinds []string
	var s Sink = Func(func(kind, lexeme string) error {
		kinds = append(kinds, kind)
		return nil
	})
	s.Emit("A", "a")
	s.Emit("B", "b")
	if strings.Join(kinds, ",") != "A,B" {
		t.Errorf("expected A,B, have %v", kinds)
	}
}
