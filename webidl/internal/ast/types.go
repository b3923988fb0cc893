package ast

import "strings"

// Kind identifies a type in the closed IDL vocabulary.
type Kind uint8

const (
	KindVoid Kind = iota
	KindBoolean
	KindByte
	KindOctet
	KindShort
	KindUnsignedShort
	KindLong
	KindUnsignedLong
	KindFloat
	KindDouble
	KindString
	KindObject
	KindPromise
	KindInterfaceRef
)

var kindNames = [...]string{
	KindVoid:          "void",
	KindBoolean:       "boolean",
	KindByte:          "byte",
	KindOctet:         "octet",
	KindShort:         "short",
	KindUnsignedShort: "unsigned short",
	KindLong:          "long",
	KindUnsignedLong:  "unsigned long",
	KindFloat:         "float",
	KindDouble:        "double",
	KindString:        "DOMString",
	KindObject:        "object",
	KindPromise:       "Promise",
	KindInterfaceRef:  "interface",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// IsNumeric reports whether the kind is one of the fixed-width numeric types.
func (k Kind) IsNumeric() bool {
	return k >= KindByte && k <= KindDouble
}

// Type is a resolved IDL type. Inner is set only for Promise, Name only for
// interface references.
type Type struct {
	Inner *Type
	Name  string
	Kind  Kind
}

func (t Type) String() string {
	switch t.Kind {
	case KindPromise:
		if t.Inner != nil {
			return "Promise<" + t.Inner.String() + ">"
		}
		return "Promise"
	case KindInterfaceRef:
		return t.Name
	}
	return t.Kind.String()
}

var keywordKinds = map[string]Kind{
	"void":           KindVoid,
	"boolean":        KindBoolean,
	"byte":           KindByte,
	"octet":          KindOctet,
	"short":          KindShort,
	"unsigned short": KindUnsignedShort,
	"long":           KindLong,
	"unsigned long":  KindUnsignedLong,
	"float":          KindFloat,
	"double":         KindDouble,
	"DOMString":      KindString,
	"object":         KindObject,
}

// MapToken maps one IDL type token to its Type. The Promise<...> wrapper is
// unwrapped recursively and a trailing ? nullability suffix is ignored.
// Unrecognized identifiers become interface references, so the mapping is
// total and never fails.
func MapToken(text string) Type {
	text = strings.TrimSpace(text)
	text = strings.TrimSuffix(text, "?")

	if rest, ok := strings.CutPrefix(text, "Promise<"); ok {
		if body, ok := strings.CutSuffix(rest, ">"); ok {
			inner := MapToken(body)
			return Type{Kind: KindPromise, Inner: &inner}
		}
	}

	if k, ok := keywordKinds[text]; ok {
		return Type{Kind: k}
	}
	return Type{Kind: KindInterfaceRef, Name: text}
}
