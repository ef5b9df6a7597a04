package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/npillmayer/dfalex/sink"
	"github.com/npillmayer/dfalex/tables/tiny"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func tinyApp(t *testing.T, engine string) *App {
	table, err := tiny.Table()
	if err != nil {
		t.Fatal(err)
	}
	app := &App{table: table}
	if err = app.selectEngine(engine, false); err != nil {
		t.Fatal(err)
	}
	return app
}

func TestEnginesAgree(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "dfalex.cmd")
	defer teardown()
	//
	input := "read x; { get x }\nif x < 10 then write x * 2 end\n"
	var outputs []string
	for _, engine := range []string{"dfa", "lexmachine"} {
		var out strings.Builder
		w := sink.NewWriter(&out)
		if err := tinyApp(t, engine).scan(strings.NewReader(input), "test", w); err != nil {
			t.Fatalf("engine %s: %v", engine, err)
		}
		w.Flush()
		outputs = append(outputs, out.String())
	}
	if outputs[0] != outputs[1] {
		t.Errorf("engines disagree:\n%s\n---\n%s", outputs[0], outputs[1])
	}
	if !strings.HasPrefix(outputs[0], "READ \"read\"\nID \"x\"\nSEM \";\"\n") {
		t.Errorf("unexpected output %q", outputs[0])
	}
}

func TestSelectEngine(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "dfalex.cmd")
	defer teardown()
	//
	app := tinyApp(t, "dfa")
	if err := app.selectEngine("lexmachine", true); err == nil {
		t.Error("expected lexmachine to be rejected for custom tables")
	}
	if err := app.selectEngine("flex", false); err == nil {
		t.Error("expected unknown engine to be rejected")
	}
}

func TestRun(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "dfalex.cmd")
	defer teardown()
	//
	dir := t.TempDir()
	inputf := filepath.Join(dir, "in.tny")
	outputf := filepath.Join(dir, "out.txt")
	if err := os.WriteFile(inputf, []byte("x := 1; y := x >"), 0o644); err != nil {
		t.Fatal(err)
	}
	if code := tinyApp(t, "dfa").Run(inputf, outputf); code != exitLexical {
		t.Errorf("expected exit code %d, got %d", exitLexical, code)
	}
	out, err := os.ReadFile(outputf)
	if err != nil {
		t.Fatal(err)
	}
	records, err := sink.ReadRecords(strings.NewReader(string(out)))
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 7 {
		t.Errorf("expected the 7 records before the error, got %d", len(records))
	}
	if err := os.WriteFile(inputf, []byte("x := 1"), 0o644); err != nil {
		t.Fatal(err)
	}
	if code := tinyApp(t, "dfa").Run(inputf, outputf); code != exitOK {
		t.Errorf("expected exit code %d, got %d", exitOK, code)
	}
	if code := tinyApp(t, "dfa").Run(filepath.Join(dir, "missing"), outputf); code != exitFailure {
		t.Errorf("expected exit code %d, got %d", exitFailure, code)
	}
}

type failingCloser struct {
	strings.Builder
}

var errDiskFull = errors.New("disk full")

func (*failingCloser) Close() error { return errDiskFull }

func TestCloseErrorFailsRun(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "dfalex.cmd")
	defer teardown()
	//
	out := &failingCloser{}
	err := tinyApp(t, "dfa").write(strings.NewReader("x := 1"), "test", out)
	if !errors.Is(err, errDiskFull) {
		t.Errorf("expected close error to be reported, got %v", err)
	}
	if code := tinyApp(t, "dfa").report(err); code != exitFailure {
		t.Errorf("expected exit code %d, got %d", exitFailure, code)
	}
	if !strings.HasPrefix(out.String(), "ID \"x\"\n") {
		t.Errorf("unexpected output %q", out.String())
	}
}
