package jpegls

import (
	"fmt"

	"github.com/cocosip/go-medimg-codec/codec"
	"github.com/cocosip/go-medimg-codec/stream"
)

const (
	maxDimension = 65535

	seed8  = 128
	seed16 = 32768

	// nearScale16 scales NEAR to the 16-bit sample range.
	nearScale16 = 256
)

// Encoder represents a JPEG-LS encoder
type Encoder struct {
	width      int
	height     int
	components int
	bitDepth   int
	near       int // NEAR parameter (maximum error bound, 8-bit units)
}

// NewEncoder creates a new JPEG-LS encoder. near is clamped to 0-255.
func NewEncoder(width, height, components, bitDepth, near int) *Encoder {
	return &Encoder{
		width:      width,
		height:     height,
		components: components,
		bitDepth:   bitDepth,
		near:       clamp(near, 0, codec.MaxNearLosslessError),
	}
}

// Encode encodes pixel data to JPEG-LS format
func (enc *Encoder) Encode(pixelData []byte) ([]byte, error) {
	const op = "jpegls encode"
	if enc.width > maxDimension || enc.height > maxDimension {
		return nil, codec.ImageDataError(op, codec.ErrInvalidDimensions,
			"%dx%d exceeds %d", enc.width, enc.height, maxDimension)
	}
	if expected := codec.ExpectedSize(enc.width, enc.height, enc.bitDepth, enc.components); len(pixelData) != expected {
		return nil, codec.ImageDataError(op, codec.ErrSizeMismatch,
			"expected %d bytes, got %d", expected, len(pixelData))
	}

	scan := enc.encodeScanData(pixelData)

	frame, err := (&FrameHeader{
		Precision:  enc.bitDepth,
		Rows:       enc.height,
		Cols:       enc.width,
		Components: enc.components,
	}).Marshal()
	if err != nil {
		return nil, err
	}

	b := stream.NewBuffer(len(scan) + len(frame) + 48)
	b.WriteMarker(MarkerSOI)
	b.WriteSegment(MarkerSOF55, frame)
	if enc.near > 0 {
		preset, err := DefaultPresetParams().Marshal()
		if err != nil {
			return nil, err
		}
		b.WriteSegment(MarkerLSE, preset)
	}
	b.WriteSegment(MarkerSOS, scanBody(enc.components, enc.near))
	b.WriteBytes(scan)
	b.WriteMarker(MarkerEOI)
	if err := b.Err(); err != nil {
		return nil, fmt.Errorf("failed to write JPEG-LS stream: %w", err)
	}
	return b.Bytes(), nil
}

func (enc *Encoder) encodeScanData(pixelData []byte) []byte {
	p := newScanParams(enc.width, enc.height, enc.components, enc.bitDepth, enc.near)
	if enc.bitDepth <= 8 {
		return encodeScan(pixelData, p)
	}
	return codec.Bytes16(encodeScan(codec.Samples16(pixelData), p))
}

func newScanParams(width, height, components, bitDepth, near int) *scanParams {
	p := &scanParams{
		width:      width,
		height:     height,
		components: components,
		near:       near,
		maxVal:     0xFF,
		seed:       seed8,
	}
	if bitDepth > 8 {
		p.near = near * nearScale16
		p.maxVal = 0xFFFF
		p.seed = seed16
	}
	return p
}
