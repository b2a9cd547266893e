package schema

import (
	"errors"
	"fmt"
	"strings"

	"github.com/reoring/gltfskema/i18n"
	eng "github.com/reoring/gltfskema/internal/engine"
)

// Error codes (exported consts for IDE completion and type safety by convention)
const (
	CodeSyntax               = "syntax_error"
	CodeTypeMismatch         = "type_mismatch"
	CodeNotAnInteger         = "not_an_integer"
	CodeCardinalityMismatch  = "cardinality_mismatch"
	CodeInvalidVersionFormat = "invalid_version_format"
	// Enforcement (opt-in limits and duplicate-key strictness)
	CodeDuplicateKey  = eng.CodeDuplicateKey
	CodeLimitExceeded = eng.CodeLimitExceeded
	// Assembler contract
	CodeInsufficientPadding = "insufficient_padding"
)

// Sentinel errors matched by errors.Is against an *Error of the same code.
var (
	ErrSyntax               = errors.New("syntax error")
	ErrTypeMismatch         = errors.New("type mismatch")
	ErrNotAnInteger         = errors.New("not an integer")
	ErrCardinalityMismatch  = errors.New("cardinality mismatch")
	ErrInvalidVersionFormat = errors.New("invalid version format")
	ErrDuplicateKey         = errors.New("duplicate key")
	ErrLimitExceeded        = errors.New("limit exceeded")
	ErrInsufficientPadding  = errors.New("insufficient padding")
)

var sentinels = map[string]error{
	CodeSyntax:               ErrSyntax,
	CodeTypeMismatch:         ErrTypeMismatch,
	CodeNotAnInteger:         ErrNotAnInteger,
	CodeCardinalityMismatch:  ErrCardinalityMismatch,
	CodeInvalidVersionFormat: ErrInvalidVersionFormat,
	CodeDuplicateKey:         ErrDuplicateKey,
	CodeLimitExceeded:        ErrLimitExceeded,
	CodeInsufficientPadding:  ErrInsufficientPadding,
}

// Error describes the first problem found while decoding a document.
type Error struct {
	Code    string // One of the codes listed above.
	Path    string // JSON Pointer to the offending value (for example: /nodes/2/rotation).
	Entity  string // Entity whose field was being decoded; empty at the document boundary.
	Field   string // Wire key of that field.
	Value   string // Offending wire value rendered as text, when known.
	Message string
	Offset  int64 // Byte offset in the input (-1 when unknown).
	Cause   error // Optional: underlying scanner error.
}

// NewError builds an Error for code with a translated message. data carries
// optional message parameters ("expected", "got").
func NewError(code string, data map[string]string) *Error {
	return &Error{Code: code, Message: i18n.T(code, data), Offset: -1}
}

func (e *Error) Error() string {
	b := &strings.Builder{}
	b.WriteString(e.Code)
	if e.Path != "" {
		fmt.Fprintf(b, " at %s", e.Path)
	}
	if e.Entity != "" {
		fmt.Fprintf(b, " (%s.%s)", e.Entity, e.Field)
	}
	if e.Message != "" {
		fmt.Fprintf(b, ": %s", e.Message)
	}
	if e.Cause != nil && e.Code == CodeSyntax {
		fmt.Fprintf(b, ": %v", e.Cause)
	}
	return b.String()
}

// Unwrap exposes the code sentinel and the underlying cause.
func (e *Error) Unwrap() []error {
	var out []error
	if s, ok := sentinels[e.Code]; ok {
		out = append(out, s)
	}
	if e.Cause != nil {
		out = append(out, e.Cause)
	}
	return out
}

// AsError extracts an *Error from err using errors.As internally.
func AsError(err error) (*Error, bool) {
	if err == nil {
		return nil, false
	}
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// codeOf maps an error produced by a conversion hook back to an error code.
func codeOf(err error) string {
	if e, ok := AsError(err); ok {
		return e.Code
	}
	for code, s := range sentinels {
		if errors.Is(err, s) {
			return code
		}
	}
	return CodeTypeMismatch
}

// describe renders a token the way it appears in an error's Value.
func describe(tok eng.Token) string {
	switch tok.Kind {
	case eng.KindString:
		return fmt.Sprintf("%q", tok.String)
	case eng.KindNumber:
		return tok.Number
	case eng.KindBool:
		if tok.Bool {
			return "true"
		}
		return "false"
	default:
		return tok.Kind.String()
	}
}
