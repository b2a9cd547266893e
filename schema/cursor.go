package schema

import (
	"errors"
	"io"
	"strconv"

	"go.uber.org/zap"

	eng "github.com/reoring/gltfskema/internal/engine"
)

// Cursor walks a token stream on behalf of the decoders. It tracks the JSON
// Pointer of the value being decoded and the entity/field pair that owns it,
// so that errors and diagnostics can name their location. A Cursor belongs to
// a single parse and must not be shared.
type Cursor struct {
	src    eng.TokenSource
	log    *zap.Logger
	path   []string
	entity string
	field  string
}

// NewCursor wraps src. A nil logger disables diagnostics.
func NewCursor(src eng.TokenSource, log *zap.Logger) *Cursor {
	if log == nil {
		log = zap.NewNop()
	}
	return &Cursor{src: src, log: log}
}

// Logger returns the diagnostic logger.
func (c *Cursor) Logger() *zap.Logger { return c.log }

// Pointer renders the current location as a JSON Pointer ("" at the root).
func (c *Cursor) Pointer() string {
	p := ""
	for _, seg := range c.path {
		p = eng.JoinPointer(p, seg)
	}
	return p
}

// Next reads the next token inside a value. End of input is a syntax error.
func (c *Cursor) Next() (eng.Token, error) {
	tok, err := eng.Next(c.src)
	if err != nil {
		return eng.Token{}, c.scanError(err)
	}
	return tok, nil
}

// Skip consumes the rest of the value starting with tok.
func (c *Cursor) Skip(tok eng.Token) error {
	if err := eng.Skip(c.src, tok); err != nil {
		return c.scanError(err)
	}
	return nil
}

// End checks that the input holds nothing after the value just decoded.
func (c *Cursor) End() error {
	tok, err := c.src.NextToken()
	if errors.Is(err, io.EOF) {
		return nil
	}
	if err != nil {
		return c.scanError(err)
	}
	return c.Fail(CodeSyntax, tok, map[string]string{"expected": "end of input", "got": tok.Kind.String()})
}

// Fail builds an error of the given code for the value tok at the current
// location.
func (c *Cursor) Fail(code string, tok eng.Token, data map[string]string) *Error {
	e := NewError(code, data)
	e.Path = c.Pointer()
	e.Entity = c.entity
	e.Field = c.field
	e.Value = describe(tok)
	e.Offset = tok.Offset
	return e
}

func (c *Cursor) mismatch(tok eng.Token, expected string) *Error {
	return c.Fail(CodeTypeMismatch, tok, map[string]string{"expected": expected, "got": tok.Kind.String()})
}

// scanError converts scanner and enforcement failures into *Error.
func (c *Cursor) scanError(err error) error {
	if e, ok := AsError(err); ok {
		return e
	}
	var ie eng.IssueError
	if errors.As(err, &ie) {
		e := NewError(ie.Code, nil)
		e.Path = ie.Path
		e.Message = ie.Message
		e.Offset = ie.Offset
		return e
	}
	e := NewError(CodeSyntax, nil)
	e.Path = c.Pointer()
	e.Offset = c.src.Location()
	e.Cause = err
	if errors.Is(err, io.ErrUnexpectedEOF) {
		e.Message = "unexpected end of input"
	}
	return e
}

func (c *Cursor) push(seg string) { c.path = append(c.path, seg) }

func (c *Cursor) pushIndex(i int) { c.push(strconv.Itoa(i)) }

func (c *Cursor) pop() { c.path = c.path[:len(c.path)-1] }

// enter records entity/field ownership for the duration of one field decode
// and returns a function restoring the previous owner.
func (c *Cursor) enter(entity, field string) func() {
	pe, pf := c.entity, c.field
	c.entity, c.field = entity, field
	return func() { c.entity, c.field = pe, pf }
}
