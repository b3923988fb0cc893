package bindgen

import (
	"strings"

	"github.com/pixll/wasm-bridge/webidl"
)

// PassMode says how a trampoline parameter crosses the boundary.
type PassMode uint8

const (
	// PassInline carries the value in a core scalar.
	PassInline PassMode = iota
	// PassSpan carries the value through the arena as an (offset, length)
	// pair.
	PassSpan
)

func (m PassMode) String() string {
	switch m {
	case PassInline:
		return "inline"
	case PassSpan:
		return "span"
	}
	return "unknown"
}

// Param is one trampoline parameter after boundary classification. Core is
// meaningful only for inline parameters; span parameters always occupy two
// i32 slots on the wire.
type Param struct {
	Name string
	Type webidl.Type
	Mode PassMode
	Core CoreType
}

// Trampoline is one generated export: the fixed-signature entry point for a
// single interface method.
type Trampoline struct {
	Symbol    string
	Interface string
	Method    string
	Params    []Param
	Result    webidl.Type
	Static    bool
}

// WireSignature renders the core signature of the trampoline export. The
// receiver handle always comes first; results are the packed span plus a
// status code.
func (t *Trampoline) WireSignature() string {
	var sb strings.Builder
	sb.WriteString("(i32 recv")
	for _, p := range t.Params {
		if p.Mode == PassSpan {
			sb.WriteString(", i32 ")
			sb.WriteString(p.Name)
			sb.WriteString("_off, i32 ")
			sb.WriteString(p.Name)
			sb.WriteString("_len")
		} else {
			sb.WriteString(", ")
			sb.WriteString(p.Core.String())
			sb.WriteByte(' ')
			sb.WriteString(p.Name)
		}
	}
	sb.WriteString(") -> (i64 span, i32 status)")
	return sb.String()
}

// HandleType is the opaque receiver type generated for an interface.
type HandleType struct {
	Name   string
	GoName string
}

// InterfaceBinding is the generated surface for one interface. Attributes
// are validated and carried for inspection but emit no symbols.
type InterfaceBinding struct {
	Name        string
	Handle      HandleType
	Trampolines []Trampoline
	Attributes  []webidl.Attribute
}

// Surface is the complete binding surface for a schema, in schema order.
type Surface struct {
	Interfaces []InterfaceBinding
}

// Interface returns the binding for the named interface, if present.
func (s *Surface) Interface(name string) (*InterfaceBinding, bool) {
	for i := range s.Interfaces {
		if s.Interfaces[i].Name == name {
			return &s.Interfaces[i], true
		}
	}
	return nil, false
}

// Symbols returns every trampoline symbol in declaration order.
func (s *Surface) Symbols() []string {
	var out []string
	for i := range s.Interfaces {
		for t := range s.Interfaces[i].Trampolines {
			out = append(out, s.Interfaces[i].Trampolines[t].Symbol)
		}
	}
	return out
}

// goName makes an identifier exported without otherwise renaming it.
func goName(name string) string {
	if name == "" {
		return name
	}
	return strings.ToUpper(name[:1]) + name[1:]
}
