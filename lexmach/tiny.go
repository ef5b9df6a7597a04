package lexmach

import (
	"strings"

	"github.com/npillmayer/dfalex/tables/tiny"
)

// TinyRules returns the rules for TINY, equivalent to the transition table
// of package tables/tiny.
func TinyRules() Rules {
	var rules Rules
	for _, kw := range tiny.Keywords {
		rules = append(rules,
			Rule{Pattern: strings.ToLower(kw), Kind: kw},
			Rule{Pattern: kw, Kind: kw},
		)
	}
	rules = append(rules,
		Rule{Pattern: `([a-z]|[A-Z]|_)+`, Kind: "ID"},
		Rule{Pattern: `[0-9]+`, Kind: "NUMBER"},
		Rule{Pattern: literal(":="), Kind: "ASSIGN"},
		Rule{Pattern: literal("="), Kind: "EQ"},
		Rule{Pattern: literal("<"), Kind: "LE"},
		Rule{Pattern: literal("+"), Kind: "PLUS"},
		Rule{Pattern: literal("-"), Kind: "MINUS"},
		Rule{Pattern: literal("*"), Kind: "MUL"},
		Rule{Pattern: literal("/"), Kind: "DIV"},
		Rule{Pattern: literal(";"), Kind: "SEM"},
		Rule{Pattern: `( |\t|\n)+`},
		// comments must not be empty and must not contain tabs
		Rule{Pattern: `\{([ -z]|\{|\||~|\n)+\}`},
	)
	return rules
}

// literal creates a pattern matching a string literally.
func literal(lit string) string {
	return "\\" + strings.Join(strings.Split(lit, ""), "\\")
}
