package jpeg2000

import (
	"fmt"

	"github.com/cocosip/go-medimg-codec/codec"
	"github.com/cocosip/go-medimg-codec/jpeg2000/codestream"
	"github.com/cocosip/go-medimg-codec/stream"
)

// EncodeParams contains parameters for JPEG 2000 encoding
type EncodeParams struct {
	// Image parameters
	Width      int
	Height     int
	Components int
	BitDepth   int
	IsSigned   bool

	// Lossless selects the reversible path (delta tile payload).
	Lossless bool

	// NumLayers is written to COD (1-65535)
	NumLayers int

	// TargetRatio steers quantization when Lossless is false
	TargetRatio float64
}

// DefaultEncodeParams returns default encoding parameters for lossless encoding
func DefaultEncodeParams(width, height, components, bitDepth int, isSigned bool) *EncodeParams {
	return &EncodeParams{
		Width:       width,
		Height:      height,
		Components:  components,
		BitDepth:    bitDepth,
		IsSigned:    isSigned,
		Lossless:    true,
		NumLayers:   1,
		TargetRatio: codec.DefaultTargetRatio,
	}
}

// ParamsFromConfig derives encoding parameters from an image and a compression config.
func ParamsFromConfig(img *codec.ImageData, cfg *codec.Config) *EncodeParams {
	p := DefaultEncodeParams(img.Width, img.Height, img.SamplesPerPixel, img.BitsPerSample, img.IsSigned)
	p.Lossless = cfg.IsLossless()
	p.NumLayers = cfg.Layers()
	p.TargetRatio = cfg.EffectiveTargetRatio()
	return p
}

// Encoder implements JPEG 2000 encoding
type Encoder struct {
	params *EncodeParams
}

// NewEncoder creates a new JPEG 2000 encoder
func NewEncoder(params *EncodeParams) *Encoder {
	return &Encoder{params: params}
}

// Encode encodes pixel data to a single-tile JPEG 2000 codestream.
func (e *Encoder) Encode(pixelData []byte) ([]byte, error) {
	p := e.params
	if expected := codec.ExpectedSize(p.Width, p.Height, p.BitDepth, p.Components); len(pixelData) != expected {
		return nil, codec.ImageDataError("jpeg2000 encode", codec.ErrSizeMismatch,
			"expected %d bytes, got %d", expected, len(pixelData))
	}

	var payload []byte
	if p.Lossless {
		payload = encodeLosslessTile(pixelData, p.BitDepth)
	} else {
		payload = encodeLossyTile(pixelData, p.BitDepth, p.TargetRatio)
	}

	out, err := e.buildCodestream(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to build codestream: %w", err)
	}
	return out, nil
}

// buildCodestream writes SOC, SIZ, COD, QCD, SOT, SOD, the payload and EOC.
func (e *Encoder) buildCodestream(payload []byte) ([]byte, error) {
	p := e.params

	siz, err := codestream.NewSIZ(p.Width, p.Height, p.BitDepth, p.Components, p.IsSigned).Marshal()
	if err != nil {
		return nil, err
	}
	cod, err := codestream.NewCOD(p.NumLayers, p.Lossless).Marshal()
	if err != nil {
		return nil, err
	}
	sot, err := codestream.NewSOT(len(payload)).Marshal()
	if err != nil {
		return nil, err
	}

	b := stream.NewBuffer(len(siz) + len(cod) + len(sot) + len(payload) + 32)
	b.WriteMarker(codestream.MarkerSOC)
	b.WriteSegment(codestream.MarkerSIZ, siz)
	b.WriteSegment(codestream.MarkerCOD, cod)
	b.WriteSegment(codestream.MarkerQCD, codestream.NewQCD(p.Lossless).Marshal())
	b.WriteMarker(codestream.MarkerSOT)
	b.WriteBytes(sot)
	b.WriteMarker(codestream.MarkerSOD)
	b.WriteBytes(payload)
	b.WriteMarker(codestream.MarkerEOC)
	if err := b.Err(); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}
