package schema

import (
	"errors"
	"strconv"

	eng "github.com/reoring/gltfskema/internal/engine"
)

// Decoder converts the JSON value beginning with tok into a T. Decoders read
// exactly the tokens of that value from the cursor.
type Decoder[T any] interface {
	Decode(c *Cursor, tok eng.Token) (T, error)
}

// DecoderFunc adapts a function to the Decoder interface.
type DecoderFunc[T any] func(c *Cursor, tok eng.Token) (T, error)

// Decode calls f(c, tok).
func (f DecoderFunc[T]) Decode(c *Cursor, tok eng.Token) (T, error) { return f(c, tok) }

// ---- scalars ----

// UnsignedOf decodes an exact non-negative integer of width U.
func UnsignedOf[U Unsigned]() Decoder[U] {
	return DecoderFunc[U](func(c *Cursor, tok eng.Token) (U, error) {
		f, err := number(c, tok)
		if err != nil {
			return 0, err
		}
		u, ok := ExactUnsigned[U](f)
		if !ok {
			return 0, c.Fail(CodeNotAnInteger, tok, nil)
		}
		return u, nil
	})
}

// Uint32 decodes indices, counts and enum codes.
func Uint32() Decoder[uint32] { return UnsignedOf[uint32]() }

// Float64 decodes any JSON number.
func Float64() Decoder[float64] { return DecoderFunc[float64](number) }

// Bool decodes true/false.
func Bool() Decoder[bool] {
	return DecoderFunc[bool](func(c *Cursor, tok eng.Token) (bool, error) {
		if tok.Kind != eng.KindBool {
			return false, c.mismatch(tok, "bool")
		}
		return tok.Bool, nil
	})
}

// String decodes a JSON string.
func String() Decoder[string] {
	return DecoderFunc[string](func(c *Cursor, tok eng.Token) (string, error) {
		if tok.Kind != eng.KindString {
			return "", c.mismatch(tok, "string")
		}
		return tok.String, nil
	})
}

// number reads a JSON number as a double, the way it is stored on the wire.
func number(c *Cursor, tok eng.Token) (float64, error) {
	if tok.Kind != eng.KindNumber {
		return 0, c.mismatch(tok, "number")
	}
	f, err := strconv.ParseFloat(tok.Number, 64)
	if err != nil {
		var ne *strconv.NumError
		if errors.As(err, &ne) && errors.Is(ne.Err, strconv.ErrRange) {
			return 0, c.Fail(CodeTypeMismatch, tok, map[string]string{"expected": "finite number", "got": tok.Number})
		}
		return 0, c.Fail(CodeSyntax, tok, nil)
	}
	return f, nil
}

// ---- wrappers ----

// Optional decodes a present value through d. Absence never reaches a
// decoder, so the result is always non-nil on success.
func Optional[T any](d Decoder[T]) Decoder[*T] {
	return DecoderFunc[*T](func(c *Cursor, tok eng.Token) (*T, error) {
		v, err := d.Decode(c, tok)
		if err != nil {
			return nil, err
		}
		return &v, nil
	})
}

// Transform decodes through d and converts the result with fn. Errors from fn
// keep their sentinel code (see the Err* variables) and default to
// type_mismatch.
func Transform[A, B any](d Decoder[A], fn func(A) (B, error)) Decoder[B] {
	return DecoderFunc[B](func(c *Cursor, tok eng.Token) (B, error) {
		var zero B
		a, err := d.Decode(c, tok)
		if err != nil {
			return zero, err
		}
		b, err := fn(a)
		if err != nil {
			e := c.Fail(codeOf(err), tok, nil)
			e.Cause = err
			return zero, e
		}
		return b, nil
	})
}

// Skip consumes any JSON value and yields the zero T. It backs the opaque
// extension and extras placeholders.
func Skip[T any]() Decoder[T] {
	return DecoderFunc[T](func(c *Cursor, tok eng.Token) (T, error) {
		var zero T
		return zero, c.Skip(tok)
	})
}

// ---- containers ----

// Tuple decodes a JSON array of exactly n elements.
func Tuple[T any](elem Decoder[T], n int) Decoder[[]T] {
	return DecoderFunc[[]T](func(c *Cursor, tok eng.Token) ([]T, error) {
		out, err := elements(c, tok, elem, n)
		if err != nil {
			return nil, err
		}
		if len(out) != n {
			return nil, c.Fail(CodeCardinalityMismatch, tok, map[string]string{
				"expected": strconv.Itoa(n),
				"got":      strconv.Itoa(len(out)),
			})
		}
		return out, nil
	})
}

// Seq decodes a JSON array of any length, preserving order. An empty array
// yields an empty, non-nil slice.
func Seq[T any](elem Decoder[T]) Decoder[[]T] {
	return DecoderFunc[[]T](func(c *Cursor, tok eng.Token) ([]T, error) {
		return elements(c, tok, elem, 0)
	})
}

func elements[T any](c *Cursor, tok eng.Token, elem Decoder[T], hint int) ([]T, error) {
	if tok.Kind != eng.KindBeginArray {
		return nil, c.mismatch(tok, "array")
	}
	out := make([]T, 0, hint)
	for i := 0; ; i++ {
		et, err := c.Next()
		if err != nil {
			return nil, err
		}
		if et.Kind == eng.KindEndArray {
			return out, nil
		}
		c.pushIndex(i)
		v, err := elem.Decode(c, et)
		c.pop()
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
}

// Map decodes a JSON object whose member values all decode through elem.
// Keys are kept verbatim; a repeated key overwrites the earlier value.
func Map[T any](elem Decoder[T]) Decoder[map[string]T] {
	return DecoderFunc[map[string]T](func(c *Cursor, tok eng.Token) (map[string]T, error) {
		if tok.Kind != eng.KindBeginObject {
			return nil, c.mismatch(tok, "object")
		}
		out := map[string]T{}
		for {
			kt, err := c.Next()
			if err != nil {
				return nil, err
			}
			if kt.Kind == eng.KindEndObject {
				return out, nil
			}
			vt, err := c.Next()
			if err != nil {
				return nil, err
			}
			c.push(kt.String)
			v, err := elem.Decode(c, vt)
			c.pop()
			if err != nil {
				return nil, err
			}
			out[kt.String] = v
		}
	})
}
