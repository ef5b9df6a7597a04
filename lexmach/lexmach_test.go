package lexmach

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/npillmayer/dfalex"
	"github.com/npillmayer/dfalex/scanner"
	"github.com/npillmayer/dfalex/sink"
	"github.com/npillmayer/dfalex/tables/tiny"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var inputStrings = []string{
	"1",
	"1+12",
	"Hello World",
	"x := y; { comment } z",
	"if x then y else z end",
}

var tokenCounts = []int{1, 3, 2, 5, 7}

func TestLM(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "dfalex.lexmach")
	defer teardown()
	//
	lexer, err := Compile(TinyRules())
	require.NoError(t, err)
	for i, input := range inputStrings {
		t.Logf("--------+-----------------+--------")
		sc := lexer.Scanner([]byte(input), "")
		count := 0
		token, err := sc.NextToken()
		for err == nil {
			t.Logf(" %6s | %15s | @%5d", token.Kind, token.Lexeme, token.Span.From())
			token, err = sc.NextToken()
			count++
		}
		assert.Equal(t, io.EOF, err)
		assert.Equal(t, tokenCounts[i], count, "token count for #%d", i)
	}
	t.Logf("--------+-----------------+--------")
}

func TestSpans(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "dfalex.lexmach")
	defer teardown()
	//
	lexer, err := Compile(TinyRules())
	require.NoError(t, err)
	sc := lexer.Scanner([]byte("ab  :="), "")
	tok, err := sc.NextToken()
	require.NoError(t, err)
	assert.Equal(t, dfalex.Span{0, 2}, tok.Span)
	tok, err = sc.NextToken()
	require.NoError(t, err)
	assert.Equal(t, "ASSIGN", tok.Kind)
	assert.Equal(t, dfalex.Span{4, 6}, tok.Span)
}

func TestLexicalError(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "dfalex.lexmach")
	defer teardown()
	//
	lexer, err := Compile(TinyRules())
	require.NoError(t, err)
	var handled error
	sc := lexer.Scanner([]byte("x > y"), "input")
	sc.SetErrorHandler(func(e error) { handled = e })
	c := &sink.Collector{}
	err = sc.Scan(c)
	require.Error(t, err)
	assert.True(t, errors.Is(err, scanner.ErrLexical))
	var lexErr *scanner.LexicalError
	require.True(t, errors.As(err, &lexErr))
	assert.Equal(t, "input", lexErr.Source)
	assert.Equal(t, err, handled)
	assert.Len(t, c.Tokens(), 1)
	_, again := sc.NextToken()
	assert.Equal(t, err, again)
}

// The reference scanner and the table driven scanner have to agree on TINY.
func TestAgreesWithTable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "dfalex.lexmach")
	defer teardown()
	//
	table, err := tiny.Table()
	require.NoError(t, err)
	lexer, err := Compile(TinyRules())
	require.NoError(t, err)
	inputs := []string{
		"read x; if 0 < x then fact := 1; repeat fact := fact * x; x := x - 1 until x = 0; write fact end",
		"IF X THEN Y ELSE Z END",
		"Else iF ifx endx repeated until_ _ x1 12ab",
		"{ a comment\n spanning lines, with ' and { } x := 1",
		"a:=b/c-d+e;f=g<h",
		"  \n\t  ",
		"",
	}
	for _, input := range inputs {
		expected, err := scanner.ScanString(input, table)
		require.NoError(t, err, input)
		var got []dfalex.Token
		sc := lexer.Scanner([]byte(input), "")
		for {
			tok, err := sc.NextToken()
			if err == io.EOF {
				break
			}
			require.NoError(t, err, input)
			got = append(got, tok)
		}
		assert.Equal(t, expected, got, strings.ReplaceAll(input, "\n", `\n`))
	}
}

func TestCompileError(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "dfalex.lexmach")
	defer teardown()
	//
	_, err := Compile(Rules{{Pattern: `(a`, Kind: "A"}})
	assert.Error(t, err)
}
