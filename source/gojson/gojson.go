// Package gojson provides the default scanner driver, backed by the
// goccy/go-json token decoder.
package gojson

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"

	j "github.com/goccy/go-json"

	eng "github.com/reoring/gltfskema/internal/engine"
)

// Name identifies this driver in configuration.
const Name = "go-json"

// Driver returns a scanner driver backed by goccy/go-json.
func Driver() Scanner { return Scanner{} }

// Scanner produces token sources over in-memory JSON text.
type Scanner struct{}

func (Scanner) NewBytes(b []byte) eng.TokenSource { return NewBytes(b) }
func (Scanner) Name() string                      { return Name }

type containerKind int

const (
	kindObject containerKind = iota
	kindArray
)

type frame struct {
	kind         containerKind
	expectingKey bool
}

type source struct {
	dec   *j.Decoder
	stack []frame
}

// NewReader reads r to the end and tokenizes it like NewBytes.
func NewReader(r io.Reader) eng.TokenSource {
	b, err := io.ReadAll(r)
	if err != nil {
		return invalid{err: err}
	}
	return NewBytes(b)
}

// NewBytes wraps a byte slice into an engine.TokenSource for JSON using go-json.
// Decoder.Token does not check separators, so b is validated as a whole first;
// a malformed document yields a source whose first read fails.
func NewBytes(b []byte) eng.TokenSource {
	var v any
	if err := j.Unmarshal(b, &v); err != nil {
		return invalid{err: err}
	}
	dec := j.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	return &source{dec: dec}
}

// invalid is the source for input rejected before tokenizing.
type invalid struct{ err error }

func (s invalid) NextToken() (eng.Token, error) { return eng.Token{}, s.err }

func (s invalid) Location() int64 {
	var se *j.SyntaxError
	if errors.As(s.err, &se) {
		return se.Offset
	}
	return -1
}

func (s *source) NextToken() (eng.Token, error) {
	tok, err := s.dec.Token()
	if err != nil {
		return eng.Token{}, err
	}
	switch v := tok.(type) {
	case j.Delim:
		switch v {
		case '{':
			s.stack = append(s.stack, frame{kind: kindObject, expectingKey: true})
			return eng.Token{Kind: eng.KindBeginObject, Offset: -1}, nil
		case '}':
			s.pop()
			return eng.Token{Kind: eng.KindEndObject, Offset: -1}, nil
		case '[':
			s.stack = append(s.stack, frame{kind: kindArray})
			return eng.Token{Kind: eng.KindBeginArray, Offset: -1}, nil
		case ']':
			s.pop()
			return eng.Token{Kind: eng.KindEndArray, Offset: -1}, nil
		}
	case string:
		if n := len(s.stack); n > 0 {
			top := &s.stack[n-1]
			if top.kind == kindObject && top.expectingKey {
				top.expectingKey = false
				return eng.Token{Kind: eng.KindKey, String: v, Offset: -1}, nil
			}
		}
		s.valueDone()
		return eng.Token{Kind: eng.KindString, String: v, Offset: -1}, nil
	case bool:
		s.valueDone()
		return eng.Token{Kind: eng.KindBool, Bool: v, Offset: -1}, nil
	case j.Number:
		// the go-json scanner takes any run of number characters
		if !validNumber(string(v)) {
			return eng.Token{}, fmt.Errorf("go-json: invalid number literal %q", string(v))
		}
		s.valueDone()
		return eng.Token{Kind: eng.KindNumber, Number: string(v), Offset: -1}, nil
	case float64:
		s.valueDone()
		return eng.Token{Kind: eng.KindNumber, Number: strconv.FormatFloat(v, 'g', -1, 64), Offset: -1}, nil
	}
	s.valueDone()
	return eng.Token{Kind: eng.KindNull, Offset: -1}, nil
}

func (s *source) pop() {
	if n := len(s.stack); n > 0 {
		s.stack = s.stack[:n-1]
	}
	s.valueDone()
}

// valueDone re-arms the enclosing object to expect its next key.
func (s *source) valueDone() {
	if n := len(s.stack); n > 0 {
		top := &s.stack[n-1]
		if top.kind == kindObject && !top.expectingKey {
			top.expectingKey = true
		}
	}
}

func (s *source) Location() int64 { return -1 }

// validNumber reports whether lit follows the JSON number grammar:
// -?(0|[1-9][0-9]*)(\.[0-9]+)?([eE][+-]?[0-9]+)?
func validNumber(lit string) bool {
	i := 0
	if i < len(lit) && lit[i] == '-' {
		i++
	}
	switch {
	case i < len(lit) && lit[i] == '0':
		i++
	case i < len(lit) && lit[i] >= '1' && lit[i] <= '9':
		i = digits(lit, i)
	default:
		return false
	}
	if i < len(lit) && lit[i] == '.' {
		start := i + 1
		if i = digits(lit, start); i == start {
			return false
		}
	}
	if i < len(lit) && (lit[i] == 'e' || lit[i] == 'E') {
		i++
		if i < len(lit) && (lit[i] == '+' || lit[i] == '-') {
			i++
		}
		start := i
		if i = digits(lit, i); i == start {
			return false
		}
	}
	return i == len(lit)
}

// digits returns the index of the first non-digit at or after i.
func digits(lit string, i int) int {
	for i < len(lit) && lit[i] >= '0' && lit[i] <= '9' {
		i++
	}
	return i
}
