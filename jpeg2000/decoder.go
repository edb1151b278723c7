package jpeg2000

import (
	"github.com/cocosip/go-medimg-codec/codec"
	"github.com/cocosip/go-medimg-codec/jpeg2000/codestream"
	"github.com/cocosip/go-medimg-codec/stream"
)

// heuristicQuantLimit is the first-payload-byte threshold used to tell a
// quantization byte from a first delta when the stream carries no COD.
const heuristicQuantLimit = 16

// Decoder implements JPEG 2000 decoding for a caller-supplied geometry.
type Decoder struct {
	width      int
	height     int
	bitDepth   int
	components int

	header   *codestream.Header // nil when the main header could not be walked
	lossless bool
	data     []byte
}

// NewDecoder creates a decoder producing width x height x components samples
// of bitDepth bits.
func NewDecoder(width, height, bitDepth, components int) *Decoder {
	return &Decoder{
		width:      width,
		height:     height,
		bitDepth:   bitDepth,
		components: components,
	}
}

// Decode decodes a codestream produced by Encoder.
func (d *Decoder) Decode(data []byte) error {
	const op = "jpeg2000 decode"
	if d.width <= 0 || d.height <= 0 || d.components < 1 {
		return codec.ImageDataError(op, codec.ErrInvalidDimensions,
			"%dx%d, %d samples per pixel", d.width, d.height, d.components)
	}
	if d.bitDepth < 1 || d.bitDepth > 16 {
		return codec.ImageDataError(op, codec.ErrUnsupportedBitDepth, "%d bits", d.bitDepth)
	}
	if len(data) < 4 {
		return codec.CodecError(op, codec.ErrTooShort, "%d bytes", len(data))
	}
	if !stream.HasMarker(data, 0, codestream.MarkerSOC) {
		return codec.CodecError(op, codec.ErrMissingMarker, "missing start marker")
	}

	start := d.locateTileData(data)
	if start < 0 {
		return codec.CodecError(op, codec.ErrNoTileData, "")
	}
	end := stream.PayloadEnd(data, start, codestream.MarkerEOC)
	if end <= start {
		return codec.CodecError(op, codec.ErrNoTileData, "empty tile payload")
	}
	payload := data[start:end]

	d.checkGeometry()

	d.lossless = d.reversible(payload)
	var pixels []byte
	if d.lossless {
		pixels = decodeLosslessTile(payload, d.bitDepth)
	} else {
		pixels = decodeLossyTile(payload, d.bitDepth, d.width*d.height*d.components)
	}

	expected := codec.ExpectedSize(d.width, d.height, d.bitDepth, d.components)
	switch {
	case len(pixels) < expected:
		return codec.CodecError(op, codec.ErrTruncated, "decoded %d bytes, expected %d", len(pixels), expected)
	case len(pixels) > expected:
		codec.Logger().Warn("jpeg2000 decoded data longer than expected, truncating",
			"decoded", len(pixels),
			"expected", expected,
		)
		pixels = pixels[:expected]
	}
	d.data = pixels
	return nil
}

// locateTileData returns the offset just past SOD. The main header is walked
// segment by segment; streams the walk cannot follow fall back to a linear
// scan for the SOD marker.
func (d *Decoder) locateTileData(data []byte) int {
	h, err := codestream.Parse(data)
	if err == nil {
		d.header = h
		return h.DataOffset
	}
	codec.Logger().Debug("jpeg2000 header walk failed, scanning for SOD", "error", err)
	d.header = nil
	if i := stream.IndexMarker(data, 2, codestream.MarkerSOD); i >= 0 {
		return i + 2
	}
	return -1
}

// reversible picks the reconstruction: the COD transformation when present,
// otherwise the first payload byte heuristic.
func (d *Decoder) reversible(payload []byte) bool {
	if d.header != nil && d.header.COD != nil {
		return d.header.COD.Reversible()
	}
	return payload[0] >= heuristicQuantLimit
}

func (d *Decoder) checkGeometry() {
	if d.header == nil || d.header.SIZ == nil {
		return
	}
	siz := d.header.SIZ
	bits := 0
	if len(siz.Components) > 0 {
		bits = siz.Components[0].BitDepth()
	}
	if siz.Width() != d.width || siz.Height() != d.height ||
		int(siz.Csiz) != d.components || bits != d.bitDepth {
		codec.Logger().Warn("jpeg2000 codestream geometry differs from requested geometry",
			"width", siz.Width(), "height", siz.Height(),
			"components", siz.Csiz, "bits", bits,
			"requestedWidth", d.width, "requestedHeight", d.height,
			"requestedComponents", d.components, "requestedBits", d.bitDepth,
		)
	}
}

// PixelData returns the decoded samples.
func (d *Decoder) PixelData() []byte {
	return d.data
}

// Lossless reports whether the last decoded stream used the reversible path.
func (d *Decoder) Lossless() bool {
	return d.lossless
}

// IsSigned reports the sign flag of the first SIZ component, false without SIZ.
func (d *Decoder) IsSigned() bool {
	if d.header == nil || d.header.SIZ == nil || len(d.header.SIZ.Components) == 0 {
		return false
	}
	return d.header.SIZ.Components[0].IsSigned()
}
