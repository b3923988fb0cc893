package webidl

import "github.com/pixll/wasm-bridge/webidl/internal/ast"

// The schema model lives in internal/ast so the parser can build it without
// importing this package; the aliases below are the public names.

type (
	Schema    = ast.Schema
	Interface = ast.Interface
	Method    = ast.Method
	Attribute = ast.Attribute
	Argument  = ast.Argument
)
