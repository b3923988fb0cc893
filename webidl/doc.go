// Package webidl parses a minimal WebIDL subset into a structured schema.
//
// The subset covers interface declarations with methods and attributes:
//
//	schema, err := webidl.Parse(`
//		interface GPUAdapter {
//			readonly attribute DOMString name;
//			Promise<GPUDevice> requestDevice(optional object descriptor = {});
//		};
//	`)
//
// Supported constructs:
//   - interface blocks terminated by };
//   - methods with an optional static qualifier, typed arguments, the
//     optional argument qualifier, and default values (parsed, discarded)
//   - attributes with an optional readonly qualifier
//   - the closed type vocabulary: void, boolean, byte, octet, short,
//     unsigned short, long, unsigned long, float, double, DOMString,
//     object, Promise<T> (recursive), plus bare identifiers as interface
//     references
//   - line (//) and block comments
//
// Not supported: interface inheritance, dictionaries, enums, callbacks,
// extended attributes, and generics other than Promise.
//
// Parsing is strict: unexpected input is a located error, never silently
// skipped. Duplicate interface names, and duplicate method or attribute
// names within an interface, abort the parse.
package webidl
