package engine

import (
	"errors"
	"io"
)

// Kind represents token kinds from a generic source.
type Kind int

const (
	KindBeginObject Kind = iota
	KindEndObject
	KindBeginArray
	KindEndArray
	KindKey
	KindString
	KindNumber
	KindBool
	KindNull
)

func (k Kind) String() string {
	switch k {
	case KindBeginObject, KindEndObject:
		return "object"
	case KindBeginArray, KindEndArray:
		return "array"
	case KindKey:
		return "key"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindNull:
		return "null"
	default:
		return "unknown"
	}
}

// Token represents a streaming token with approximate input offset.
type Token struct {
	Kind   Kind
	String string
	Number string
	Bool   bool
	Offset int64
}

// TokenSource is a minimal interface required by the engine.
type TokenSource interface {
	NextToken() (Token, error)
	Location() int64
}

// ErrUnbalanced is returned when a container end token appears where a value
// was expected.
var ErrUnbalanced = errors.New("engine: unbalanced container")

// Skip consumes the remainder of the value that starts with first. Primitive
// values are a single token, so nothing further is read for them.
func Skip(src TokenSource, first Token) error {
	switch first.Kind {
	case KindBeginObject, KindBeginArray:
	case KindEndObject, KindEndArray:
		return ErrUnbalanced
	default:
		return nil
	}
	depth := 1
	for depth > 0 {
		tok, err := src.NextToken()
		if err != nil {
			if err == io.EOF {
				return io.ErrUnexpectedEOF
			}
			return err
		}
		switch tok.Kind {
		case KindBeginObject, KindBeginArray:
			depth++
		case KindEndObject, KindEndArray:
			depth--
		}
	}
	return nil
}

// Next reads one token and converts a premature io.EOF into
// io.ErrUnexpectedEOF. Callers that are inside a container use it so that a
// truncated document never looks like a clean end of input.
func Next(src TokenSource) (Token, error) {
	tok, err := src.NextToken()
	if err == io.EOF {
		return Token{}, io.ErrUnexpectedEOF
	}
	return tok, err
}
