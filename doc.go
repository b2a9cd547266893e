// Package gltfskema loads glTF 2.0 JSON documents into typed Go structs.
//
// - Every entity of the glTF 2.0 schema with its documented defaults (Document, Node, Material, ...)
// - Exact-integer checks for indices, counts and enum codes; fixed arity for matrix/vector fields
// - Forward compatible: unknown keys are logged at info level and skipped
// - A structured error model (code, JSON Pointer, entity and field) with errors.Is sentinels
//
// Design policy:
// - Keep the public API in the root package; the binding engine lives in schema/.
// - Scanner drivers live under source/ (go-json by default, encoding/json as a baseline).
// - Index references are neither resolved nor range-checked, and extension payloads are not decoded.
//
// Typical usage:
//
//	doc, err := gltfskema.Load(data)
//	doc, err := gltfskema.LoadPrePadded(buf, gltfskema.Options{Logger: logger, MaxDepth: 64})
//
//	cfg, err := gltfskema.LoadConfig(f)
//	opt, err := cfg.Options()
//	doc, err := gltfskema.NewLoader(opt).LoadReader(r)
package gltfskema
