package codec

import (
	"errors"
	"fmt"
)

var (
	// ErrCodecNotFound is returned when a codec is not found in the registry
	ErrCodecNotFound = errors.New("codec not found")

	// ErrInvalidParameter is returned when encoding/decoding parameters are invalid
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrUnsupportedFormat is returned when the format is not supported
	ErrUnsupportedFormat = errors.New("unsupported format")

	ErrEmptyPixelData      = errors.New("empty pixel data")
	ErrInvalidDimensions   = errors.New("invalid image dimensions")
	ErrUnsupportedBitDepth = errors.New("unsupported bit depth")
	ErrSizeMismatch        = errors.New("pixel data size mismatch")

	ErrTooShort      = errors.New("data too short")
	ErrMissingMarker = errors.New("missing marker")
	ErrNoTileData    = errors.New("no tile data found")
	ErrNoImageData   = errors.New("no image data")
	ErrTruncated     = errors.New("truncated data")

	// ErrVerificationFailed is returned when a lossless round trip does not
	// reproduce the source bytes
	ErrVerificationFailed = errors.New("lossless verification failed")
)

// ErrorKind classifies errors returned by codecs and the pipeline.
type ErrorKind string

const (
	// KindImageData marks invalid caller input: geometry, empty buffers,
	// size mismatches.
	KindImageData ErrorKind = "image-data"
	// KindCodec marks malformed or truncated encoded containers.
	KindCodec ErrorKind = "codec"
	// KindValidation marks failed lossless verification and modality rules.
	KindValidation ErrorKind = "validation"
	// KindConfig marks invalid compression configuration.
	KindConfig ErrorKind = "config"
)

// Error is the structured error returned by every codec operation.
type Error struct {
	Kind ErrorKind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("%s error: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("%s error: %s: %v", e.Kind, e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// NewError wraps err with a kind and the name of the failing operation.
func NewError(kind ErrorKind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// ImageDataError builds a KindImageData error. cause is wrapped so callers
// can match it with errors.Is.
func ImageDataError(op string, cause error, format string, args ...any) error {
	return NewError(KindImageData, op, wrapf(cause, format, args...))
}

// CodecError builds a KindCodec error.
func CodecError(op string, cause error, format string, args ...any) error {
	return NewError(KindCodec, op, wrapf(cause, format, args...))
}

// ValidationError builds a KindValidation error.
func ValidationError(op string, cause error, format string, args ...any) error {
	return NewError(KindValidation, op, wrapf(cause, format, args...))
}

// IsKind reports whether err is a codec Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Kind == kind
	}
	return false
}

func wrapf(cause error, format string, args ...any) error {
	if format == "" {
		return cause
	}
	return fmt.Errorf("%w: %s", cause, fmt.Sprintf(format, args...))
}
