package testbed

import "bytes"

// The guests in this package are assembled by hand so the tests carry no
// binary fixtures. Only the sections and opcodes a bridge guest needs are
// encoded here.
const (
	secType     byte = 1
	secImport   byte = 2
	secFunction byte = 3
	secMemory   byte = 5
	secGlobal   byte = 6
	secExport   byte = 7
	secCode     byte = 10
	secData     byte = 11

	kindFunc   byte = 0
	kindMemory byte = 2

	valI32 byte = 0x7F
	valI64 byte = 0x7E

	opUnreachable byte = 0x00
	opEnd         byte = 0x0B
	opCall        byte = 0x10
	opLocalGet    byte = 0x20
	opGlobalGet   byte = 0x23
	opGlobalSet   byte = 0x24
	opI32Const    byte = 0x41
	opI64Const    byte = 0x42
	opI32Add      byte = 0x6A
	opI32Sub      byte = 0x6B
	opI64Or       byte = 0x84
	opI64Shl      byte = 0x86
	opI64ExtendU  byte = 0xAD
)

// wasmHeader is the binary magic and version prefix.
var wasmHeader = []byte{0x00, 0x61, 0x73, 0x6D, 0x01, 0x00, 0x00, 0x00}

var (
	// (recv, args_off, args_len) -> (packed span, status)
	trampolineParams = []byte{valI32, valI32, valI32}
	pairResults      = []byte{valI64, valI32}

	// dispatch(recv, iface_off, iface_len, method_off, method_len,
	// args_off, args_len)
	dispatchParams = []byte{valI32, valI32, valI32, valI32, valI32, valI32, valI32}
)

// guestWriter accumulates WebAssembly binary encoding: LEB128 integers,
// length-prefixed vectors, size-prefixed sections.
type guestWriter struct {
	buf bytes.Buffer
}

func (w *guestWriter) byte(b byte) { w.buf.WriteByte(b) }

func (w *guestWriter) raw(p []byte) { w.buf.Write(p) }

// uleb writes an unsigned LEB128 encoded uint32.
func (w *guestWriter) uleb(v uint32) {
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if v != 0 {
			b |= 0x80
		}
		w.buf.WriteByte(b)
		if v == 0 {
			return
		}
	}
}

// sleb writes a signed LEB128 encoded int32, the form const operands use.
func (w *guestWriter) sleb(v int32) {
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if (v == 0 && b&0x40 == 0) || (v == -1 && b&0x40 != 0) {
			w.buf.WriteByte(b)
			return
		}
		w.buf.WriteByte(b | 0x80)
	}
}

// blob writes a length-prefixed byte vector.
func (w *guestWriter) blob(p []byte) {
	w.uleb(uint32(len(p)))
	w.raw(p)
}

func (w *guestWriter) name(s string) { w.blob([]byte(s)) }

// section appends a size-prefixed section to the module.
func (w *guestWriter) section(id byte, body *guestWriter) {
	w.byte(id)
	w.uleb(uint32(body.buf.Len()))
	w.raw(body.buf.Bytes())
}

// funcType writes a function type: 0x60, params, results.
func (w *guestWriter) funcType(params, results []byte) {
	w.byte(0x60)
	w.blob(params)
	w.blob(results)
}

// op writes a plain instruction, opU one with an unsigned immediate, opS
// one with a signed immediate.
func (w *guestWriter) op(code byte) { w.byte(code) }

func (w *guestWriter) opU(code byte, imm uint32) { w.byte(code); w.uleb(imm) }

func (w *guestWriter) opS(code byte, imm int32) { w.byte(code); w.sleb(imm) }

// memoryCopy writes the bulk-memory copy instruction for memory 0.
func (w *guestWriter) memoryCopy() {
	w.byte(0xFC)
	w.uleb(10)
	w.byte(0)
	w.byte(0)
}

// body writes a size-prefixed function body with no locals, closing it
// with end.
func (w *guestWriter) body(instrs *guestWriter) {
	var b guestWriter
	b.uleb(0)
	b.raw(instrs.buf.Bytes())
	b.byte(opEnd)
	w.uleb(uint32(b.buf.Len()))
	w.raw(b.buf.Bytes())
}

func (w *guestWriter) bytes() []byte { return w.buf.Bytes() }

// relayGuest builds a guest exporting a Widget_echo trampoline that
// returns its argument span unchanged with an ok status. It never touches
// linear memory, so it needs no bridge_init.
func relayGuest() []byte {
	var types, funcs, mems, exports, code guestWriter

	types.uleb(1)
	types.funcType(trampolineParams, pairResults)

	funcs.uleb(1)
	funcs.uleb(0)

	mems.uleb(1)
	mems.byte(0x00)
	mems.uleb(1)

	exports.uleb(2)
	exports.name("memory")
	exports.byte(kindMemory)
	exports.uleb(0)
	exports.name("Widget_echo")
	exports.byte(kindFunc)
	exports.uleb(0)

	var echo guestWriter
	echo.opU(opLocalGet, 1)
	echo.op(opI64ExtendU)
	echo.opS(opI64Const, 32)
	echo.op(opI64Shl)
	echo.opU(opLocalGet, 2)
	echo.op(opI64ExtendU)
	echo.op(opI64Or)
	echo.opS(opI32Const, 0)
	code.uleb(1)
	code.body(&echo)

	var w guestWriter
	w.raw(wasmHeader)
	w.section(secType, &types)
	w.section(secFunction, &funcs)
	w.section(secMemory, &mems)
	w.section(secExport, &exports)
	w.section(secCode, &code)
	return w.bytes()
}

// nameData is where the data segment places the interface and method
// names in guest memory.
const nameData = 8

// callbackGuest builds a guest whose Widget_render trampoline forwards
// its argument span back to the host through the imported dispatch. The
// names "Widget" and "render" live in a data segment; the trampoline
// copies them into the top 32 bytes of the arena so the host can resolve
// them through span reads. bridge_init records the arena placement in two
// globals.
func callbackGuest() []byte {
	var types, imports, funcs, mems, globals, exports, code, data guestWriter

	// Types: 0 = dispatch import, 1 = trampoline, 2 = bridge_init.
	types.uleb(3)
	types.funcType(dispatchParams, pairResults)
	types.funcType(trampolineParams, pairResults)
	types.funcType([]byte{valI32, valI32}, nil)

	imports.uleb(1)
	imports.name("pixll:bridge")
	imports.name("dispatch")
	imports.byte(kindFunc)
	imports.uleb(0)

	// Defined functions: 1 = bridge_init, 2 = Widget_render. The import
	// takes index 0.
	funcs.uleb(2)
	funcs.uleb(2)
	funcs.uleb(1)

	mems.uleb(1)
	mems.byte(0x00)
	mems.uleb(1)

	// Mutable i32 globals: 0 = arena base, 1 = arena capacity.
	globals.uleb(2)
	for i := 0; i < 2; i++ {
		globals.byte(valI32)
		globals.byte(0x01)
		globals.opS(opI32Const, 0)
		globals.op(opEnd)
	}

	exports.uleb(3)
	exports.name("memory")
	exports.byte(kindMemory)
	exports.uleb(0)
	exports.name("bridge_init")
	exports.byte(kindFunc)
	exports.uleb(1)
	exports.name("Widget_render")
	exports.byte(kindFunc)
	exports.uleb(2)

	var init guestWriter
	init.opU(opLocalGet, 0)
	init.opU(opGlobalSet, 0)
	init.opU(opLocalGet, 1)
	init.opU(opGlobalSet, 1)

	var render guestWriter
	// memory.copy "Widget" to arena[capacity-32]
	render.opU(opGlobalGet, 0)
	render.opU(opGlobalGet, 1)
	render.opS(opI32Const, 32)
	render.op(opI32Sub)
	render.op(opI32Add)
	render.opS(opI32Const, nameData)
	render.opS(opI32Const, 6)
	render.memoryCopy()
	// memory.copy "render" to arena[capacity-16]
	render.opU(opGlobalGet, 0)
	render.opU(opGlobalGet, 1)
	render.opS(opI32Const, 16)
	render.op(opI32Sub)
	render.op(opI32Add)
	render.opS(opI32Const, nameData+6)
	render.opS(opI32Const, 6)
	render.memoryCopy()
	// dispatch(recv, capacity-32, 6, capacity-16, 6, args_off, args_len)
	render.opU(opLocalGet, 0)
	render.opU(opGlobalGet, 1)
	render.opS(opI32Const, 32)
	render.op(opI32Sub)
	render.opS(opI32Const, 6)
	render.opU(opGlobalGet, 1)
	render.opS(opI32Const, 16)
	render.op(opI32Sub)
	render.opS(opI32Const, 6)
	render.opU(opLocalGet, 1)
	render.opU(opLocalGet, 2)
	render.opU(opCall, 0)

	code.uleb(2)
	code.body(&init)
	code.body(&render)

	data.uleb(1)
	data.uleb(0)
	data.opS(opI32Const, nameData)
	data.op(opEnd)
	data.name("Widgetrender")

	var w guestWriter
	w.raw(wasmHeader)
	w.section(secType, &types)
	w.section(secImport, &imports)
	w.section(secFunction, &funcs)
	w.section(secMemory, &mems)
	w.section(secGlobal, &globals)
	w.section(secExport, &exports)
	w.section(secCode, &code)
	w.section(secData, &data)
	return w.bytes()
}

// trapGuest builds a guest whose only trampoline hits unreachable.
func trapGuest() []byte {
	var types, funcs, mems, exports, code guestWriter

	types.uleb(1)
	types.funcType(trampolineParams, pairResults)

	funcs.uleb(1)
	funcs.uleb(0)

	mems.uleb(1)
	mems.byte(0x00)
	mems.uleb(1)

	exports.uleb(2)
	exports.name("memory")
	exports.byte(kindMemory)
	exports.uleb(0)
	exports.name("Widget_crash")
	exports.byte(kindFunc)
	exports.uleb(0)

	var crash guestWriter
	crash.op(opUnreachable)
	code.uleb(1)
	code.body(&crash)

	var w guestWriter
	w.raw(wasmHeader)
	w.section(secType, &types)
	w.section(secFunction, &funcs)
	w.section(secMemory, &mems)
	w.section(secExport, &exports)
	w.section(secCode, &code)
	return w.bytes()
}
