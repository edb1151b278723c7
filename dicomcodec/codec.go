// Package dicomcodec exposes the JPEG 2000 and JPEG-LS codecs through the
// go-dicom codec interface so they can transcode multi-frame pixel data.
package dicomcodec

import (
	"fmt"

	"github.com/cocosip/go-dicom/pkg/dicom/transfer"
	"github.com/cocosip/go-dicom/pkg/imaging/codec"
	"github.com/cocosip/go-dicom/pkg/imaging/imagetypes"
	imgcodec "github.com/cocosip/go-medimg-codec/codec"
	"github.com/cocosip/go-medimg-codec/factory"
)

var _ codec.Codec = (*Codec)(nil)

// Codec adapts one compression mode of a codec to a DICOM transfer syntax.
type Codec struct {
	name           string
	transferSyntax *transfer.Syntax
	codecType      imgcodec.Type
	mode           imgcodec.Mode
	defaults       Parameters
}

// NewJPEG2000Lossless creates the JPEG 2000 lossless codec (UID .90).
func NewJPEG2000Lossless() *Codec {
	return &Codec{
		name:           "JPEG 2000 Lossless",
		transferSyntax: transfer.JPEG2000Lossless,
		codecType:      imgcodec.TypeJPEG2000,
		mode:           imgcodec.ModeLossless,
		defaults:       Parameters{Layers: 1},
	}
}

// NewJPEG2000Lossy creates the JPEG 2000 lossy codec (UID .91). A ratio
// of zero or less uses imgcodec.DefaultTargetRatio.
func NewJPEG2000Lossy(ratio float64) *Codec {
	if ratio <= 0 {
		ratio = imgcodec.DefaultTargetRatio
	}
	return &Codec{
		name:           fmt.Sprintf("JPEG 2000 Lossy (Ratio %g)", ratio),
		transferSyntax: transfer.JPEG2000,
		codecType:      imgcodec.TypeJPEG2000,
		mode:           imgcodec.ModeLossy,
		defaults:       Parameters{Ratio: ratio, Layers: 1},
	}
}

// NewJPEGLSLossless creates the JPEG-LS lossless codec (UID .80).
func NewJPEGLSLossless() *Codec {
	return &Codec{
		name:           "JPEG-LS Lossless",
		transferSyntax: transfer.JPEGLSLossless,
		codecType:      imgcodec.TypeJPEGLS,
		mode:           imgcodec.ModeLossless,
		defaults:       Parameters{Layers: 1},
	}
}

// NewJPEGLSNearLossless creates the JPEG-LS near-lossless codec (UID .81).
// defaultNear outside 0-255 falls back to 2.
func NewJPEGLSNearLossless(defaultNear int) *Codec {
	if defaultNear < 0 || defaultNear > imgcodec.MaxNearLosslessError {
		defaultNear = 2
	}
	return &Codec{
		name:           fmt.Sprintf("JPEG-LS Near-Lossless (NEAR=%d)", defaultNear),
		transferSyntax: transfer.JPEGLSNearLossless,
		codecType:      imgcodec.TypeJPEGLS,
		mode:           imgcodec.ModeNearLossless,
		defaults:       Parameters{Near: defaultNear, Layers: 1},
	}
}

// Name returns the codec name
func (c *Codec) Name() string {
	return c.name
}

// TransferSyntax returns the transfer syntax this codec handles
func (c *Codec) TransferSyntax() *transfer.Syntax {
	return c.transferSyntax
}

// GetDefaultParameters returns the default codec parameters
func (c *Codec) GetDefaultParameters() codec.Parameters {
	p := NewParameters()
	p.Ratio = c.defaults.Ratio
	p.Layers = c.defaults.Layers
	p.Near = c.defaults.Near
	return p
}

// config builds the compression configuration for one call. Typed
// Parameters are used as given; generic parameter sets override the
// codec defaults key by key.
func (c *Codec) config(parameters codec.Parameters) *imgcodec.Config {
	var p *Parameters
	switch v := parameters.(type) {
	case *Parameters:
		copied := *v
		p = &copied
	case nil:
		p = c.GetDefaultParameters().(*Parameters)
	default:
		p = c.GetDefaultParameters().(*Parameters)
		p.merge(v)
	}
	p.Validate()

	return &imgcodec.Config{
		Type:              c.codecType,
		Mode:              c.mode,
		Quality:           imgcodec.QualityStandard,
		TargetRatio:       p.Ratio,
		QualityLayers:     p.Layers,
		NearLosslessError: p.Near,
	}
}

// imageGeometry maps DICOM frame metadata to the geometry of one frame.
func imageGeometry(info *imagetypes.FrameInfo) (width, height, bits, samples int, signed bool) {
	bits = int(info.BitsStored)
	if bits == 0 {
		bits = int(info.BitsAllocated)
	}
	samples = int(info.SamplesPerPixel)
	if samples == 0 {
		samples = 1
	}
	return int(info.Width), int(info.Height), bits, samples, info.PixelRepresentation != 0
}

// Encode encodes every frame of oldPixelData into newPixelData
func (c *Codec) Encode(oldPixelData imagetypes.PixelData, newPixelData imagetypes.PixelData, parameters codec.Parameters) error {
	if oldPixelData == nil || newPixelData == nil {
		return fmt.Errorf("source and destination PixelData cannot be nil")
	}

	frameInfo := oldPixelData.GetFrameInfo()
	if frameInfo == nil {
		return fmt.Errorf("failed to get frame info from source pixel data")
	}

	inner, err := factory.New(c.codecType)
	if err != nil {
		return err
	}
	cfg := c.config(parameters)
	width, height, bits, samples, signed := imageGeometry(frameInfo)

	frameCount := oldPixelData.FrameCount()
	for frameIndex := 0; frameIndex < frameCount; frameIndex++ {
		frameData, err := oldPixelData.GetFrame(frameIndex)
		if err != nil {
			return fmt.Errorf("failed to get frame %d: %w", frameIndex, err)
		}
		if len(frameData) == 0 {
			return fmt.Errorf("frame %d pixel data is empty", frameIndex)
		}

		img := imgcodec.NewImageData(width, height, bits, samples, frameData)
		img.IsSigned = signed
		img.PhotometricInterpretation = frameInfo.PhotometricInterpretation

		encoded, err := inner.Encode(img, cfg)
		if err != nil {
			return fmt.Errorf("%s encode failed for frame %d: %w", c.name, frameIndex, err)
		}
		if err := newPixelData.AddFrame(encoded); err != nil {
			return fmt.Errorf("failed to add encoded frame %d: %w", frameIndex, err)
		}
	}

	imgcodec.Logger().Debug("dicom frames encoded",
		"codec", c.name,
		"transfer_syntax", c.transferSyntax.UID().UID(),
		"frames", frameCount,
	)
	return nil
}

// Decode decodes every frame of oldPixelData into newPixelData
func (c *Codec) Decode(oldPixelData imagetypes.PixelData, newPixelData imagetypes.PixelData, parameters codec.Parameters) error {
	if oldPixelData == nil || newPixelData == nil {
		return fmt.Errorf("source and destination PixelData cannot be nil")
	}

	frameInfo := oldPixelData.GetFrameInfo()
	if frameInfo == nil {
		return fmt.Errorf("failed to get frame info from source pixel data")
	}

	inner, err := factory.New(c.codecType)
	if err != nil {
		return err
	}
	width, height, bits, samples, _ := imageGeometry(frameInfo)

	frameCount := oldPixelData.FrameCount()
	for frameIndex := 0; frameIndex < frameCount; frameIndex++ {
		frameData, err := oldPixelData.GetFrame(frameIndex)
		if err != nil {
			return fmt.Errorf("failed to get frame %d: %w", frameIndex, err)
		}
		if len(frameData) == 0 {
			return fmt.Errorf("frame %d pixel data is empty", frameIndex)
		}

		img, err := inner.Decode(frameData, width, height, bits, samples)
		if err != nil {
			return fmt.Errorf("%s decode failed for frame %d: %w", c.name, frameIndex, err)
		}
		if err := newPixelData.AddFrame(img.PixelData); err != nil {
			return fmt.Errorf("failed to add decoded frame %d: %w", frameIndex, err)
		}
	}
	return nil
}

// Codecs returns one codec per supported transfer syntax with default settings.
func Codecs() []*Codec {
	return []*Codec{
		NewJPEG2000Lossless(),
		NewJPEG2000Lossy(imgcodec.DefaultTargetRatio),
		NewJPEGLSLossless(),
		NewJPEGLSNearLossless(2),
	}
}

// Register registers every codec from Codecs with the global go-dicom registry
func Register() {
	registry := codec.GetGlobalRegistry()
	for _, c := range Codecs() {
		registry.RegisterCodec(c.TransferSyntax(), c)
	}
}

func init() {
	Register()
}
