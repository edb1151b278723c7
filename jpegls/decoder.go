package jpegls

import (
	"github.com/cocosip/go-medimg-codec/codec"
	"github.com/cocosip/go-medimg-codec/stream"
)

// Decoder represents a JPEG-LS decoder for a caller-supplied geometry
type Decoder struct {
	width      int
	height     int
	components int
	bitDepth   int

	header *Header
	data   []byte
}

// NewDecoder creates a new JPEG-LS decoder
func NewDecoder(width, height, components, bitDepth int) *Decoder {
	return &Decoder{
		width:      width,
		height:     height,
		components: components,
		bitDepth:   bitDepth,
	}
}

// Decode decodes a JPEG-LS stream produced by Encoder
func (dec *Decoder) Decode(data []byte) error {
	const op = "jpegls decode"
	if dec.width <= 0 || dec.height <= 0 || dec.components < 1 {
		return codec.ImageDataError(op, codec.ErrInvalidDimensions,
			"%dx%d, %d samples per pixel", dec.width, dec.height, dec.components)
	}
	if dec.bitDepth < 1 || dec.bitDepth > 16 {
		return codec.ImageDataError(op, codec.ErrUnsupportedBitDepth, "%d bits", dec.bitDepth)
	}

	h, err := ParseHeader(data)
	if err != nil {
		return err
	}
	dec.header = h
	dec.checkFrame()

	end := stream.PayloadEnd(data, h.DataOffset, MarkerEOI)
	if end <= h.DataOffset {
		return codec.CodecError(op, codec.ErrNoImageData, "")
	}
	payload := data[h.DataOffset:end]

	expected := codec.ExpectedSize(dec.width, dec.height, dec.bitDepth, dec.components)
	switch {
	case len(payload) < expected:
		return codec.CodecError(op, codec.ErrTruncated, "scan has %d bytes, expected %d", len(payload), expected)
	case len(payload) > expected:
		codec.Logger().Warn("jpegls scan longer than expected, truncating",
			"scan", len(payload),
			"expected", expected,
		)
		payload = payload[:expected]
	}

	p := newScanParams(dec.width, dec.height, dec.components, dec.bitDepth, h.Near)
	if dec.bitDepth <= 8 {
		dec.data = decodeScan(payload, p)
	} else {
		dec.data = codec.Bytes16(decodeScan(codec.Samples16(payload), p))
	}
	return nil
}

func (dec *Decoder) checkFrame() {
	f := dec.header.Frame
	if f == nil {
		return
	}
	if f.Cols != dec.width || f.Rows != dec.height ||
		f.Components != dec.components || f.Precision != dec.bitDepth {
		codec.Logger().Warn("jpegls frame differs from requested geometry",
			"cols", f.Cols, "rows", f.Rows,
			"components", f.Components, "precision", f.Precision,
			"requestedWidth", dec.width, "requestedHeight", dec.height,
			"requestedComponents", dec.components, "requestedBits", dec.bitDepth,
		)
	}
}

// PixelData returns the decoded samples.
func (dec *Decoder) PixelData() []byte {
	return dec.data
}

// Header returns the parsed header of the last decoded stream.
func (dec *Decoder) Header() *Header {
	return dec.header
}
