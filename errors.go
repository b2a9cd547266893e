package gltfskema

import "github.com/reoring/gltfskema/schema"

// Error is the structured load failure. See schema.Error.
type Error = schema.Error

// Error codes.
const (
	CodeSyntax               = schema.CodeSyntax
	CodeTypeMismatch         = schema.CodeTypeMismatch
	CodeNotAnInteger         = schema.CodeNotAnInteger
	CodeCardinalityMismatch  = schema.CodeCardinalityMismatch
	CodeInvalidVersionFormat = schema.CodeInvalidVersionFormat
	CodeDuplicateKey         = schema.CodeDuplicateKey
	CodeLimitExceeded        = schema.CodeLimitExceeded
	CodeInsufficientPadding  = schema.CodeInsufficientPadding
)

// Sentinels for errors.Is.
var (
	ErrSyntax               = schema.ErrSyntax
	ErrTypeMismatch         = schema.ErrTypeMismatch
	ErrNotAnInteger         = schema.ErrNotAnInteger
	ErrCardinalityMismatch  = schema.ErrCardinalityMismatch
	ErrInvalidVersionFormat = schema.ErrInvalidVersionFormat
	ErrDuplicateKey         = schema.ErrDuplicateKey
	ErrLimitExceeded        = schema.ErrLimitExceeded
	ErrInsufficientPadding  = schema.ErrInsufficientPadding
)

// AsError extracts an *Error from err using errors.As internally.
func AsError(err error) (*Error, bool) { return schema.AsError(err) }
