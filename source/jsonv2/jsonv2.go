//go:build goexperiment.jsonv2

// Package jsonv2 provides a scanner driver backed by encoding/json/jsontext.
// Build with GOEXPERIMENT=jsonv2; otherwise Driver falls back to encoding/json.
package jsonv2

import (
	"bytes"
	"encoding/json/jsontext"
	"io"

	eng "github.com/reoring/gltfskema/internal/engine"
)

// Name identifies this driver in configuration.
const Name = "encoding/json/v2"

// Driver returns a scanner driver backed by jsontext.
func Driver() Scanner { return Scanner{} }

// Scanner produces token sources over in-memory JSON text.
type Scanner struct{}

func (Scanner) NewBytes(b []byte) eng.TokenSource { return NewBytes(b) }
func (Scanner) Name() string                      { return Name }

type frame struct {
	object       bool
	expectingKey bool
}

type source struct {
	dec   *jsontext.Decoder
	stack []frame
}

// NewReader wraps an io.Reader. Duplicate object names are passed through so
// that enforcement happens in one place.
func NewReader(r io.Reader) eng.TokenSource {
	return &source{dec: jsontext.NewDecoder(r, jsontext.AllowDuplicateNames(true))}
}

// NewBytes wraps a byte slice.
func NewBytes(b []byte) eng.TokenSource { return NewReader(bytes.NewReader(b)) }

func (s *source) NextToken() (eng.Token, error) {
	off := s.dec.InputOffset()
	tok, err := s.dec.ReadToken()
	if err != nil {
		return eng.Token{}, err
	}
	switch tok.Kind() {
	case '{':
		s.stack = append(s.stack, frame{object: true, expectingKey: true})
		return eng.Token{Kind: eng.KindBeginObject, Offset: off}, nil
	case '}':
		s.pop()
		return eng.Token{Kind: eng.KindEndObject, Offset: off}, nil
	case '[':
		s.stack = append(s.stack, frame{})
		return eng.Token{Kind: eng.KindBeginArray, Offset: off}, nil
	case ']':
		s.pop()
		return eng.Token{Kind: eng.KindEndArray, Offset: off}, nil
	case '"':
		if n := len(s.stack); n > 0 && s.stack[n-1].object && s.stack[n-1].expectingKey {
			s.stack[n-1].expectingKey = false
			return eng.Token{Kind: eng.KindKey, String: tok.String(), Offset: off}, nil
		}
		s.valueDone()
		return eng.Token{Kind: eng.KindString, String: tok.String(), Offset: off}, nil
	case '0':
		s.valueDone()
		return eng.Token{Kind: eng.KindNumber, Number: tok.String(), Offset: off}, nil
	case 't', 'f':
		s.valueDone()
		return eng.Token{Kind: eng.KindBool, Bool: tok.Bool(), Offset: off}, nil
	}
	s.valueDone()
	return eng.Token{Kind: eng.KindNull, Offset: off}, nil
}

func (s *source) pop() {
	if n := len(s.stack); n > 0 {
		s.stack = s.stack[:n-1]
	}
	s.valueDone()
}

func (s *source) valueDone() {
	if n := len(s.stack); n > 0 && s.stack[n-1].object {
		s.stack[n-1].expectingKey = true
	}
}

func (s *source) Location() int64 { return s.dec.InputOffset() }
