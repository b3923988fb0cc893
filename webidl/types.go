package webidl

import "github.com/pixll/wasm-bridge/webidl/internal/ast"

// Kind identifies a type in the closed IDL vocabulary.
type Kind = ast.Kind

const (
	KindVoid          = ast.KindVoid
	KindBoolean       = ast.KindBoolean
	KindByte          = ast.KindByte
	KindOctet         = ast.KindOctet
	KindShort         = ast.KindShort
	KindUnsignedShort = ast.KindUnsignedShort
	KindLong          = ast.KindLong
	KindUnsignedLong  = ast.KindUnsignedLong
	KindFloat         = ast.KindFloat
	KindDouble        = ast.KindDouble
	KindString        = ast.KindString
	KindObject        = ast.KindObject
	KindPromise       = ast.KindPromise
	KindInterfaceRef  = ast.KindInterfaceRef
)

// Type is a resolved IDL type. Inner is set only for Promise, Name only for
// interface references.
type Type = ast.Type

// MapToken maps one IDL type token to its Type. The Promise<...> wrapper is
// unwrapped recursively and a trailing ? nullability suffix is ignored.
// Unrecognized identifiers become interface references, so the mapping is
// total and never fails.
func MapToken(text string) Type {
	return ast.MapToken(text)
}
