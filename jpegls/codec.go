// Package jpegls implements the prediction-style container: a JPEG-LS
// marker stream (SOI, SOF55, optional LSE, SOS, EOI) whose scan holds MED
// prediction residuals, quantized when NEAR is non-zero, in place of
// Golomb-Rice coding.
package jpegls

import (
	"fmt"

	"github.com/cocosip/go-medimg-codec/codec"
)

var _ codec.Codec = (*Codec)(nil)

const jlsName = "JPEG-LS"

// Codec implements the JPEG-LS codec
// Transfer Syntax UIDs: 1.2.840.10008.1.2.4.80 (lossless), 1.2.840.10008.1.2.4.81 (near-lossless)
type Codec struct{}

// NewCodec creates a new JPEG-LS codec
func NewCodec() *Codec {
	return &Codec{}
}

// Encode encodes img. NEAR comes from cfg.Near(), so only near-lossless
// configurations produce lossy output. A nil cfg means codec.DefaultConfig().
func (c *Codec) Encode(img *codec.ImageData, cfg *codec.Config) ([]byte, error) {
	if err := img.Validate(); err != nil {
		return nil, err
	}
	if cfg == nil {
		cfg = codec.DefaultConfig()
	}

	near := cfg.Near()
	out, err := NewEncoder(img.Width, img.Height, img.SamplesPerPixel, img.BitsPerSample, near).Encode(img.PixelData)
	if err != nil {
		return nil, fmt.Errorf("JPEG-LS encode failed: %w", err)
	}

	codec.Logger().Debug("jpegls encode",
		"codec", jlsName,
		"width", img.Width,
		"height", img.Height,
		"near", near,
		"bytes", len(out),
		"ratio", codec.Ratio(len(img.PixelData), len(out)),
	)
	return out, nil
}

// Decode decodes a JPEG-LS stream into a fresh ImageData
func (c *Codec) Decode(data []byte, width, height, bitsPerSample, samplesPerPixel int) (*codec.ImageData, error) {
	dec := NewDecoder(width, height, samplesPerPixel, bitsPerSample)
	if err := dec.Decode(data); err != nil {
		return nil, err
	}
	return codec.NewImageData(width, height, bitsPerSample, samplesPerPixel, dec.PixelData()), nil
}

// Info returns codec information
func (c *Codec) Info() codec.Info {
	return codec.Info{
		Name:                   jlsName,
		Version:                "1.0",
		SupportsLossless:       true,
		SupportsLossy:          true,
		TransferSyntaxLossless: codec.UIDJPEGLSLossless,
		TransferSyntaxLossy:    codec.UIDJPEGLSNearLossless,
	}
}

// Capabilities returns codec capabilities
func (c *Codec) Capabilities() codec.Capabilities {
	return codec.Capabilities{
		MaxBitsPerSample:   16,
		SupportsSigned:     true,
		SupportsColor:      true,
		SupportsMultiframe: true,
	}
}

// CanEncode reports whether img fits the codec capabilities
func (c *Codec) CanEncode(img *codec.ImageData) bool {
	return codec.CanEncodeWith(c.Capabilities(), img)
}

// TransferSyntaxUID returns the lossless or near-lossless transfer syntax UID
func (c *Codec) TransferSyntaxUID(lossless bool) (string, bool) {
	return codec.TransferSyntaxFor(c.Info(), lossless)
}

func init() {
	codec.Register(NewCodec())
}
