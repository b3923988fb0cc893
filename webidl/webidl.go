package webidl

import (
	"github.com/pixll/wasm-bridge/webidl/internal/parser"
	"github.com/pixll/wasm-bridge/webidl/internal/token"
)

// Parse parses IDL source into a schema. Parsing is all-or-nothing: the
// returned schema is complete, or the error locates the first malformed
// construct and no schema is returned.
func Parse(source string) (*Schema, error) {
	tokens := token.Tokenize(source)
	p := parser.New(tokens)
	return p.Parse()
}
