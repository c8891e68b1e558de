package condition

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// KeyLexer splits a raw filter key on whitespace. A key is a column name
// optionally followed by an operator, so a single word token is enough.
var KeyLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Word", Pattern: `[^\s]+`},
	{Name: "Whitespace", Pattern: `\s+`},
})

// rawKey is the parse tree of a filter key.
type rawKey struct {
	Pos      lexer.Position
	Column   string `parser:"@Word"`
	Operator string `parser:"@Word?"`
}

var keyParser = participle.MustBuild[rawKey](
	participle.Lexer(KeyLexer),
	participle.Elide("Whitespace"),
)
