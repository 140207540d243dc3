package editscript

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// ScriptLexer defines the lexical structure of edit scripts
var ScriptLexer = lexer.MustSimple([]lexer.SimpleRule{
	// Comments - shell style (# to end of line)
	{Name: "Comment", Pattern: `#[^\n]*`},

	// Whitespace
	{Name: "Whitespace", Pattern: `[\s\t\n\r]+`},

	// String literals with escape sequences
	{Name: "String", Pattern: `"(?:[^"\\]|\\.)*"`},

	// Part and attribute names. EAGLE part names may contain $, -, . and +
	{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_$.+\-]*`},

	// Punctuation, including the "*" wildcard target
	{Name: "Punct", Pattern: `[{},=;*]`},
})
