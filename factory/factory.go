// Package factory maps codec types to codec instances.
package factory

import (
	"fmt"

	"github.com/cocosip/go-medimg-codec/codec"
	"github.com/cocosip/go-medimg-codec/jpeg2000"
	"github.com/cocosip/go-medimg-codec/jpegls"
)

// New returns a fresh codec for t.
func New(t codec.Type) (codec.Codec, error) {
	switch t {
	case codec.TypeJPEG2000:
		return jpeg2000.NewCodec(), nil
	case codec.TypeJPEGLS:
		return jpegls.NewCodec(), nil
	case codec.TypeUncompressed:
		return codec.NewUncompressed(), nil
	}
	return nil, fmt.Errorf("%w: %v", codec.ErrCodecNotFound, t)
}

// ForConfig returns the codec selected by cfg.Type.
func ForConfig(cfg *codec.Config) (codec.Codec, error) {
	if cfg == nil {
		return nil, fmt.Errorf("%w: nil config", codec.ErrInvalidParameter)
	}
	return New(cfg.Type)
}
