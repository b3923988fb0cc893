package bindgen

import (
	"strings"
	"testing"
)

func emitString(t *testing.T, idl string, opts EmitOptions) string {
	t.Helper()
	surface, err := Generate(mustParse(t, idl))
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	return string(EmitGo(surface, opts))
}

func TestEmitGo_FullSurface(t *testing.T) {
	src := emitString(t, gpuIDL, EmitOptions{Package: "gpu"})

	wantFragments := []string{
		"// Code generated by bindgen. DO NOT EDIT.",
		"// 3 interface(s), 4 trampoline(s).",
		"package gpu",
		"\"context\"",
		"\"github.com/pixll/wasm-bridge/arena\"",
		"\"github.com/pixll/wasm-bridge/boundary\"",
		"type GPUAdapter struct {\n\traw boundary.Handle\n}",
		"func GPUAdapterFromRaw(raw boundary.Handle) GPUAdapter {",
		"func (h GPUAdapter) Raw() boundary.Handle {",
		"//   - DOMString name (readonly)",
		"// Wire form: GPUAdapter_requestDevice (i32 recv, i32 descriptor_off, i32 descriptor_len) -> (i64 span, i32 status)",
		"func GPUAdapter_requestDevice(ctx context.Context, s *boundary.Session, recv boundary.Handle, args arena.Span) (arena.Span, error) {",
		"return s.Dispatch(ctx, \"GPUAdapter\", \"requestDevice\", recv, args)",
		"type GPUAdapterImpl struct {\n\tRequestDevice boundary.Impl\n}",
		"func BindGPUAdapter(reg *boundary.Registry, impl GPUAdapterImpl) error {",
		"if err := reg.Register(\"GPUAdapter\", \"requestDevice\", impl.RequestDevice); err != nil {",
		"func GPUDevice_destroy(",
		"func GPUDevice_pollEvents(",
	}
	for _, frag := range wantFragments {
		if !strings.Contains(src, frag) {
			t.Errorf("emitted source missing %q", frag)
		}
	}

	// Every symbol is declared exactly once.
	for _, sym := range []string{"GPU_requestAdapter", "GPUAdapter_requestDevice", "GPUDevice_destroy", "GPUDevice_pollEvents"} {
		if n := strings.Count(src, "func "+sym+"("); n != 1 {
			t.Errorf("symbol %s declared %d times, want 1", sym, n)
		}
	}

	if !strings.HasSuffix(src, "}\n") || strings.HasSuffix(src, "\n\n") {
		t.Errorf("output should end with a single newline, got tail %q", src[len(src)-4:])
	}
}

func TestEmitGo_StaticNote(t *testing.T) {
	src := emitString(t, "interface MathUtils { static double clamp(double v, double lo, double hi); };", EmitOptions{})
	if !strings.Contains(src, "// Static method: pass boundary.NullHandle as recv.") {
		t.Error("static trampoline missing NullHandle note")
	}
}

func TestEmitGo_DefaultPackage(t *testing.T) {
	src := emitString(t, "interface A { void go(); };", EmitOptions{})
	if !strings.Contains(src, "package bindings\n") {
		t.Errorf("default package not applied:\n%s", src)
	}
}

func TestEmitGo_MethodlessInterface(t *testing.T) {
	src := emitString(t, "interface Tag { readonly attribute DOMString id; };", EmitOptions{})

	// Handle type and registration contract still emit; context and arena
	// imports do not.
	if !strings.Contains(src, "type Tag struct") || !strings.Contains(src, "func BindTag(") {
		t.Errorf("methodless interface surface incomplete:\n%s", src)
	}
	if !strings.Contains(src, "\"github.com/pixll/wasm-bridge/boundary\"") {
		t.Error("boundary import missing")
	}
	if strings.Contains(src, "\"context\"") || strings.Contains(src, "wasm-bridge/arena") {
		t.Errorf("unused imports emitted:\n%s", src)
	}
}

func TestEmitGo_EmptySurface(t *testing.T) {
	src := emitString(t, "", EmitOptions{Package: "empty"})
	if !strings.Contains(src, "// 0 interface(s), 0 trampoline(s).") {
		t.Errorf("header missing:\n%s", src)
	}
	if !strings.Contains(src, "package empty") {
		t.Errorf("package clause missing:\n%s", src)
	}
	if strings.Contains(src, "import") {
		t.Errorf("empty surface should import nothing:\n%s", src)
	}
}

func TestEmitGo_ArgumentDocs(t *testing.T) {
	src := emitString(t, "interface Enc { long write(DOMString chunk, boolean flush); };", EmitOptions{})

	wantFragments := []string{
		"// Arguments:",
		"//   - DOMString chunk, passed span",
		"//   - boolean flush, passed inline",
		"// Result: long",
	}
	for _, frag := range wantFragments {
		if !strings.Contains(src, frag) {
			t.Errorf("emitted source missing %q", frag)
		}
	}
}
