// Package schema is the binding engine behind the glTF loader.
//
// A FieldMap lists, for one entity type, which wire keys decode into which
// record fields and with which Decoder. Decoders cover a closed set of
// shapes:
//
//   - scalars: Uint32 (exact integers), Float64, Bool, String
//   - Optional: presence tracked as a non-nil pointer
//   - Tuple / Fixed: arrays of an exact length
//   - Seq: arrays of any length
//   - Map: string-keyed objects with uniform values
//   - a *FieldMap itself, for nested objects
//
// Decoding stops at the first failure and reports it as *Error with a JSON
// Pointer to the offending value. Unknown keys are logged and skipped.
//
// Typical usage:
//
//	type Point struct{ X, Y float64 }
//	points := schema.MustFieldMap("point", nil,
//		schema.Bind("x", schema.Float64(), func(p *Point) *float64 { return &p.X }),
//		schema.Bind("y", schema.Float64(), func(p *Point) *float64 { return &p.Y }),
//	)
//	c := schema.NewCursor(gojson.NewBytes(data), logger)
//	tok, err := c.Next()
//	p, err := points.Decode(c, tok)
package schema
