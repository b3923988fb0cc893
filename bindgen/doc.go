// Package bindgen generates the binding surface for a parsed IDL schema.
//
// The surface has three parts per interface:
//
//   - an opaque handle type wrapping a raw boundary handle
//   - one trampoline per method, exported under the fixed symbol
//     {Interface}_{method}, that resolves the implementation through a
//     dispatch registry and never contains application logic
//   - the registration contract: an {Interface}Impl struct plus a
//     Bind{Interface} function that populates a registry
//
// Generation validates every interface reference (including through
// Promise chains) against the schema and fails with an unresolved-reference
// error naming the interface and member; nothing is emitted on error.
//
// Boundary classification follows the arena model: strings, objects and
// interface references cross as arena spans, numerics and booleans and
// promise handles ride inline as core scalars. The scalar choice comes from
// mapping IDL types onto component-model types.
//
//	surface, err := bindgen.Generate(schema)
//	src := bindgen.EmitGo(surface, bindgen.EmitOptions{Package: "gpu"})
package bindgen
