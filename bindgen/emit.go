package bindgen

import (
	"bytes"
	"fmt"

	"go.uber.org/zap"

	"github.com/pixll/wasm-bridge/webidl"
)

// EmitOptions controls Go source emission.
type EmitOptions struct {
	// Package is the package name of the emitted file; "bindings" if empty.
	Package string
}

// EmitGo renders one Go source file carrying the surface: per interface the
// opaque handle type, one trampoline function per method, and the
// registration contract. The output is gofmt-shaped.
func EmitGo(surface *Surface, opts EmitOptions) []byte {
	pkg := opts.Package
	if pkg == "" {
		pkg = "bindings"
	}

	hasMethods := false
	for i := range surface.Interfaces {
		if len(surface.Interfaces[i].Trampolines) > 0 {
			hasMethods = true
			break
		}
	}

	var b bytes.Buffer
	fmt.Fprintf(&b, "// Code generated by bindgen. DO NOT EDIT.\n//\n")
	fmt.Fprintf(&b, "// %d interface(s), %d trampoline(s).\n\n", len(surface.Interfaces), len(surface.Symbols()))
	fmt.Fprintf(&b, "package %s\n\n", pkg)

	if len(surface.Interfaces) > 0 {
		if hasMethods {
			b.WriteString("import (\n\t\"context\"\n\n\t\"github.com/pixll/wasm-bridge/arena\"\n\t\"github.com/pixll/wasm-bridge/boundary\"\n)\n\n")
		} else {
			b.WriteString("import (\n\t\"github.com/pixll/wasm-bridge/boundary\"\n)\n\n")
		}
	}

	for i := range surface.Interfaces {
		emitInterface(&b, &surface.Interfaces[i])
	}

	out := append(bytes.TrimRight(b.Bytes(), "\n"), '\n')
	Logger().Debug("emitted bindings",
		zap.String("package", pkg),
		zap.Int("bytes", len(out)))
	return out
}

func emitInterface(b *bytes.Buffer, iface *InterfaceBinding) {
	h := iface.Handle.GoName

	fmt.Fprintf(b, "// %s is an opaque handle to a host-owned %s.\n", h, iface.Name)
	fmt.Fprintf(b, "// Handles do not own the referent; dropping one releases nothing.\n")
	if len(iface.Attributes) > 0 {
		fmt.Fprintf(b, "//\n// Attributes:\n")
		for _, a := range iface.Attributes {
			ro := ""
			if a.Readonly {
				ro = " (readonly)"
			}
			fmt.Fprintf(b, "//   - %s %s%s\n", a.Type, a.Name, ro)
		}
	}
	fmt.Fprintf(b, "type %s struct {\n\traw boundary.Handle\n}\n\n", h)

	fmt.Fprintf(b, "// %sFromRaw wraps a raw handle received across the boundary.\n", h)
	fmt.Fprintf(b, "func %sFromRaw(raw boundary.Handle) %s {\n\treturn %s{raw: raw}\n}\n\n", h, h, h)

	fmt.Fprintf(b, "// Raw returns the raw handle for crossing the boundary.\n")
	fmt.Fprintf(b, "func (h %s) Raw() boundary.Handle {\n\treturn h.raw\n}\n\n", h)

	for t := range iface.Trampolines {
		emitTrampoline(b, &iface.Trampolines[t])
	}

	fmt.Fprintf(b, "// %sImpl carries the implementations to register for %s.\n", h, iface.Name)
	fmt.Fprintf(b, "// Nil fields stay unregistered; dispatching to them fails.\n")
	fmt.Fprintf(b, "type %sImpl struct {\n", h)
	for t := range iface.Trampolines {
		fmt.Fprintf(b, "\t%s boundary.Impl\n", goName(iface.Trampolines[t].Method))
	}
	fmt.Fprintf(b, "}\n\n")

	fmt.Fprintf(b, "// Bind%s registers the non-nil implementations with reg.\n", h)
	fmt.Fprintf(b, "func Bind%s(reg *boundary.Registry, impl %sImpl) error {\n", h, h)
	for t := range iface.Trampolines {
		tr := &iface.Trampolines[t]
		field := goName(tr.Method)
		fmt.Fprintf(b, "\tif impl.%s != nil {\n", field)
		fmt.Fprintf(b, "\t\tif err := reg.Register(%q, %q, impl.%s); err != nil {\n\t\t\treturn err\n\t\t}\n", tr.Interface, tr.Method, field)
		fmt.Fprintf(b, "\t}\n")
	}
	fmt.Fprintf(b, "\treturn nil\n}\n\n")
}

func emitTrampoline(b *bytes.Buffer, tr *Trampoline) {
	fmt.Fprintf(b, "// %s dispatches %s.%s through the session registry.\n", tr.Symbol, tr.Interface, tr.Method)
	if tr.Static {
		fmt.Fprintf(b, "// Static method: pass boundary.NullHandle as recv.\n")
	}
	fmt.Fprintf(b, "//\n// Wire form: %s %s\n", tr.Symbol, tr.WireSignature())
	if len(tr.Params) > 0 {
		fmt.Fprintf(b, "//\n// Arguments:\n")
		for _, p := range tr.Params {
			fmt.Fprintf(b, "//   - %s %s, passed %s\n", p.Type, p.Name, p.Mode)
		}
	}
	if tr.Result.Kind != webidl.KindVoid {
		fmt.Fprintf(b, "//\n// Result: %s\n", tr.Result)
	}
	fmt.Fprintf(b, "func %s(ctx context.Context, s *boundary.Session, recv boundary.Handle, args arena.Span) (arena.Span, error) {\n", tr.Symbol)
	fmt.Fprintf(b, "\treturn s.Dispatch(ctx, %q, %q, recv, args)\n}\n\n", tr.Interface, tr.Method)
}
