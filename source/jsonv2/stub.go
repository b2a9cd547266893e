//go:build !goexperiment.jsonv2

package jsonv2

import (
	eng "github.com/reoring/gltfskema/internal/engine"
	stdjson "github.com/reoring/gltfskema/source/json"
)

// Name identifies this driver in configuration.
const Name = "encoding/json (jsonv2 stub)"

// Driver returns a fallback driver when the jsonv2 experiment is not enabled.
// It delegates to the encoding/json driver.
func Driver() Scanner { return Scanner{} }

// Scanner produces token sources over in-memory JSON text.
type Scanner struct{}

func (Scanner) NewBytes(b []byte) eng.TokenSource { return stdjson.NewBytes(b) }
func (Scanner) Name() string                      { return Name }
