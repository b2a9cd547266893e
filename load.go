package gltfskema

import (
	"fmt"
	"io"
	"strconv"
	"unicode/utf8"

	"go.uber.org/zap"

	eng "github.com/reoring/gltfskema/internal/engine"
	"github.com/reoring/gltfskema/schema"
)

// PaddingSize is the number of spare bytes LoadPrePadded requires past the end
// of the input. It matches the overscan of block-oriented scanners so that
// callers can hand the same storage to either kind.
const PaddingSize = 64

// NewPadded allocates n bytes of input storage with PaddingSize spare capacity.
func NewPadded(n int) []byte { return make([]byte, n, n+PaddingSize) }

// Pad copies b into storage accepted by LoadPrePadded.
func Pad(b []byte) []byte {
	out := NewPadded(len(b))
	copy(out, b)
	return out
}

// Loader parses glTF documents with fixed options. It is safe for concurrent
// use; each call owns its own working state.
type Loader struct {
	opt  Options
	root *schema.FieldMap[Document]
}

// NewLoader returns a Loader for opts (the last one wins).
func NewLoader(opts ...Options) *Loader {
	return &Loader{opt: pick(opts), root: RootFieldMap()}
}

// Load parses data, copying it into padded storage first.
func Load(data []byte, opts ...Options) (*Document, error) {
	return NewLoader(opts...).Load(data)
}

// LoadString parses s, copying it into padded storage first.
func LoadString(s string, opts ...Options) (*Document, error) {
	return NewLoader(opts...).LoadString(s)
}

// LoadPrePadded parses data without copying. cap(data) must exceed len(data)
// by at least PaddingSize; the spare bytes are never interpreted.
func LoadPrePadded(data []byte, opts ...Options) (*Document, error) {
	return NewLoader(opts...).LoadPrePadded(data)
}

// LoadReader reads r to the end and parses the result. With MaxBytes set, at
// most MaxBytes are accepted.
func LoadReader(r io.Reader, opts ...Options) (*Document, error) {
	return NewLoader(opts...).LoadReader(r)
}

// Load parses data, copying it into padded storage first.
func (l *Loader) Load(data []byte) (*Document, error) { return l.LoadPrePadded(Pad(data)) }

// LoadString parses s.
func (l *Loader) LoadString(s string) (*Document, error) {
	b := NewPadded(len(s))
	copy(b, s)
	return l.LoadPrePadded(b)
}

// LoadPrePadded parses data in place; see the package-level LoadPrePadded.
func (l *Loader) LoadPrePadded(data []byte) (*Document, error) {
	if spare := cap(data) - len(data); spare < PaddingSize {
		return nil, schema.NewError(CodeInsufficientPadding, map[string]string{
			"expected": strconv.Itoa(PaddingSize),
			"got":      strconv.Itoa(spare),
		})
	}
	return l.decode(data)
}

// LoadReader reads r to the end and parses the result.
func (l *Loader) LoadReader(r io.Reader) (*Document, error) {
	if l.opt.MaxBytes > 0 {
		r = io.LimitReader(r, l.opt.MaxBytes+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("gltfskema: read input: %w", err)
	}
	return l.LoadPrePadded(Pad(data))
}

func (l *Loader) decode(data []byte) (*Document, error) {
	opt := l.opt
	if opt.MaxBytes > 0 && int64(len(data)) > opt.MaxBytes {
		e := schema.NewError(CodeLimitExceeded, nil)
		e.Message = "max bytes " + strconv.FormatInt(opt.MaxBytes, 10) + " exceeded"
		e.Offset = opt.MaxBytes
		return nil, e
	}
	if i := invalidUTF8(data); i >= 0 {
		e := schema.NewError(CodeSyntax, nil)
		e.Message = "invalid UTF-8 at byte " + strconv.Itoa(i)
		e.Offset = int64(i)
		return nil, e
	}
	opt.Logger.Debug("loading glTF", zap.String("driver", opt.Driver.Name()), zap.Int("bytes", len(data)))

	src := eng.WrapWithEnforcement(opt.Driver.NewBytes(data), opt.enforcement())
	c := schema.NewCursor(src, opt.Logger)
	tok, err := c.Next()
	if err != nil {
		return nil, err
	}
	doc, err := l.root.Decode(c, tok)
	if err != nil {
		return nil, err
	}
	if err := c.End(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// invalidUTF8 returns the offset of the first byte that is not part of a valid
// UTF-8 sequence, or -1.
func invalidUTF8(b []byte) int {
	if utf8.Valid(b) {
		return -1
	}
	for i := 0; i < len(b); {
		r, n := utf8.DecodeRune(b[i:])
		if r == utf8.RuneError && n == 1 {
			return i
		}
		i += n
	}
	return -1
}
