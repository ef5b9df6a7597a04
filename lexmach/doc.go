/*
Package lexmach provides a reference scanner built with the lexmachine
scanner generator.

Lexmachine compiles regular expressions into a DFA at run time, whereas
the table driven scanner of package scanner interprets a transition table
produced by an external generator. Both implement the longest match rule,
so for a language given in both forms they have to produce the same
token sequence. Package lexmach is used to cross-check transition tables
and as an alternative engine for the dfalex command.

For more information on lexmachine, see e.g.
https://hackthology.com/how-to-tokenize-complex-strings-with-lexmachine.html

Rules are given as pairs of a pattern and a token kind. Rules without a
kind discard their matches. If two rules match a lexeme of the same length,
the rule given first wins.

	lexer, err := lexmach.Compile(lexmach.Rules{
		{Pattern: `if`, Kind: "IF"},
		{Pattern: `[a-z]+`, Kind: "ID"},
		{Pattern: `( |\t|\n)+`},
	})
	if err != nil {
		// do error handling
	}
	sc := lexer.Scanner([]byte("if x"), "example")
	err = sc.Scan(mysink)

________________________________________________________________________________

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package lexmach
