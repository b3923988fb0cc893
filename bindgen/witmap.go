package bindgen

import (
	"go.bytecodealliance.org/wit"

	"github.com/pixll/wasm-bridge/webidl"
)

// WitType maps an IDL type to its component-model type. Handles (promises
// and interface references) settle into u32 on the wire; object payloads
// are opaque byte lists. Void maps to nil, meaning no value.
func WitType(t webidl.Type) wit.TypeDefKind {
	switch t.Kind {
	case webidl.KindVoid:
		return nil
	case webidl.KindBoolean:
		return wit.Bool{}
	case webidl.KindByte:
		return wit.S8{}
	case webidl.KindOctet:
		return wit.U8{}
	case webidl.KindShort:
		return wit.S16{}
	case webidl.KindUnsignedShort:
		return wit.U16{}
	case webidl.KindLong:
		return wit.S32{}
	case webidl.KindUnsignedLong:
		return wit.U32{}
	case webidl.KindFloat:
		return wit.F32{}
	case webidl.KindDouble:
		return wit.F64{}
	case webidl.KindString:
		return wit.String{}
	case webidl.KindObject:
		return &wit.List{Type: wit.U8{}}
	case webidl.KindPromise, webidl.KindInterfaceRef:
		return wit.U32{}
	}
	return wit.U32{}
}

// CoreType is a core wasm scalar.
type CoreType uint8

const (
	CoreI32 CoreType = iota
	CoreI64
	CoreF32
	CoreF64
)

var coreNames = [...]string{
	CoreI32: "i32",
	CoreI64: "i64",
	CoreF32: "f32",
	CoreF64: "f64",
}

func (c CoreType) String() string {
	if int(c) < len(coreNames) {
		return coreNames[c]
	}
	return "unknown"
}

// coreOf returns the core scalar a wit type flattens to. Only scalar types
// ride inline; everything compound goes through the arena as a span.
func coreOf(t wit.TypeDefKind) CoreType {
	switch t.(type) {
	case wit.Bool, wit.U8, wit.S8, wit.U16, wit.S16, wit.U32, wit.S32, wit.Char:
		return CoreI32
	case wit.U64, wit.S64:
		return CoreI64
	case wit.F32:
		return CoreF32
	case wit.F64:
		return CoreF64
	}
	return CoreI32
}
