package bindgen

import (
	"go.uber.org/zap"

	"github.com/pixll/wasm-bridge/errors"
	"github.com/pixll/wasm-bridge/webidl"
)

// Generate builds the binding surface for a schema: one handle type per
// interface and one trampoline per method, with every interface reference
// resolved against the schema. Generation is all-or-nothing; on error no
// partial surface is returned.
func Generate(schema *webidl.Schema) (*Surface, error) {
	if schema == nil {
		return nil, errors.InvalidInput(errors.PhaseGenerate, "nil schema")
	}

	surface := &Surface{}
	symbols := make(map[string]string)

	for i := range schema.Interfaces {
		iface := &schema.Interfaces[i]
		binding, err := generateInterface(schema, iface)
		if err != nil {
			return nil, err
		}
		for t := range binding.Trampolines {
			sym := binding.Trampolines[t].Symbol
			if prev, ok := symbols[sym]; ok {
				return nil, errors.New(errors.PhaseGenerate, errors.KindDuplicateName).
					Iface(iface.Name).
					Detail("trampoline symbol %q collides with one from interface %q", sym, prev).
					Build()
			}
			symbols[sym] = iface.Name
		}
		surface.Interfaces = append(surface.Interfaces, *binding)
	}

	Logger().Debug("generated binding surface",
		zap.Int("interfaces", len(surface.Interfaces)),
		zap.Int("symbols", len(symbols)))
	return surface, nil
}

func generateInterface(schema *webidl.Schema, iface *webidl.Interface) (*InterfaceBinding, error) {
	binding := &InterfaceBinding{
		Name: iface.Name,
		Handle: HandleType{
			Name:   iface.Name,
			GoName: goName(iface.Name),
		},
		Attributes: iface.Attributes,
	}

	for _, attr := range iface.Attributes {
		if err := checkResolved(schema, iface.Name, attr.Name, attr.Type); err != nil {
			return nil, err
		}
	}

	fields := make(map[string]string)
	for _, m := range iface.Methods {
		tr, err := generateTrampoline(schema, iface.Name, m)
		if err != nil {
			return nil, err
		}
		field := goName(m.Name)
		if prev, ok := fields[field]; ok {
			return nil, errors.New(errors.PhaseGenerate, errors.KindDuplicateName).
				Iface(iface.Name).
				Member(m.Name).
				Detail("methods %q and %q map to the same Go name %q", prev, m.Name, field).
				Build()
		}
		fields[field] = m.Name
		binding.Trampolines = append(binding.Trampolines, *tr)
	}
	return binding, nil
}

func generateTrampoline(schema *webidl.Schema, ifaceName string, m webidl.Method) (*Trampoline, error) {
	if err := checkResolved(schema, ifaceName, m.Name, m.ReturnType); err != nil {
		return nil, err
	}

	tr := &Trampoline{
		Symbol:    ifaceName + "_" + m.Name,
		Interface: ifaceName,
		Method:    m.Name,
		Result:    m.ReturnType,
		Static:    m.Static,
	}
	for _, arg := range m.Arguments {
		if err := checkResolved(schema, ifaceName, m.Name, arg.Type); err != nil {
			return nil, err
		}
		tr.Params = append(tr.Params, Param{
			Name: arg.Name,
			Type: arg.Type,
			Mode: passMode(arg.Type),
			Core: coreOf(WitType(arg.Type)),
		})
	}
	return tr, nil
}

// checkResolved walks a type, following Promise chains, and verifies every
// interface reference names a declared interface.
func checkResolved(schema *webidl.Schema, iface, member string, t webidl.Type) error {
	for {
		switch t.Kind {
		case webidl.KindInterfaceRef:
			if _, ok := schema.Interface(t.Name); !ok {
				return errors.UnresolvedRef(iface, member, t.Name)
			}
			return nil
		case webidl.KindPromise:
			if t.Inner == nil {
				return nil
			}
			t = *t.Inner
		default:
			return nil
		}
	}
}

// passMode classifies how a value crosses the boundary: strings, objects
// and interface references travel through the arena; numerics, booleans and
// promise handles ride inline.
func passMode(t webidl.Type) PassMode {
	switch t.Kind {
	case webidl.KindString, webidl.KindObject, webidl.KindInterfaceRef:
		return PassSpan
	default:
		return PassInline
	}
}
