// Package jpeg2000 implements the transform-style container: a JPEG 2000
// codestream (SOC, SIZ, COD, QCD, SOT, SOD, EOC) whose single tile carries a
// delta or quantized sample payload in place of wavelet and EBCOT coding.
package jpeg2000

import (
	"fmt"

	"github.com/cocosip/go-medimg-codec/codec"
)

var _ codec.Codec = (*Codec)(nil)

const j2kName = "JPEG 2000"

// Codec implements the JPEG 2000 codec
// Transfer Syntax UIDs: 1.2.840.10008.1.2.4.90 (lossless), 1.2.840.10008.1.2.4.91
type Codec struct{}

// NewCodec creates a new JPEG 2000 codec
func NewCodec() *Codec {
	return &Codec{}
}

// Encode encodes img as a JPEG 2000 codestream. A nil cfg means
// codec.DefaultConfig().
func (c *Codec) Encode(img *codec.ImageData, cfg *codec.Config) ([]byte, error) {
	if err := img.Validate(); err != nil {
		return nil, err
	}
	if cfg == nil {
		cfg = codec.DefaultConfig()
	}

	params := ParamsFromConfig(img, cfg)
	out, err := NewEncoder(params).Encode(img.PixelData)
	if err != nil {
		return nil, fmt.Errorf("JPEG 2000 encode failed: %w", err)
	}

	codec.Logger().Debug("jpeg2000 encode",
		"codec", j2kName,
		"width", img.Width,
		"height", img.Height,
		"lossless", params.Lossless,
		"bytes", len(out),
		"ratio", codec.Ratio(len(img.PixelData), len(out)),
	)
	return out, nil
}

// Decode decodes a JPEG 2000 codestream into a fresh ImageData
func (c *Codec) Decode(data []byte, width, height, bitsPerSample, samplesPerPixel int) (*codec.ImageData, error) {
	d := NewDecoder(width, height, bitsPerSample, samplesPerPixel)
	if err := d.Decode(data); err != nil {
		return nil, err
	}
	img := codec.NewImageData(width, height, bitsPerSample, samplesPerPixel, d.PixelData())
	img.IsSigned = d.IsSigned()
	return img, nil
}

// Info returns codec information
func (c *Codec) Info() codec.Info {
	return codec.Info{
		Name:                   j2kName,
		Version:                "1.0",
		SupportsLossless:       true,
		SupportsLossy:          true,
		SupportsProgressive:    true,
		SupportsROI:            false,
		TransferSyntaxLossless: codec.UIDJPEG2000Lossless,
		TransferSyntaxLossy:    codec.UIDJPEG2000,
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

// TransferSyntaxUID returns the lossless or lossy transfer syntax UID
func (c *Codec) TransferSyntaxUID(lossless bool) (string, bool) {
	return codec.TransferSyntaxFor(c.Info(), lossless)
}

func init() {
	codec.Register(NewCodec())
}
