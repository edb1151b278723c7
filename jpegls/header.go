package jpegls

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/noxer/bytewriter"

	"github.com/cocosip/go-medimg-codec/codec"
	"github.com/cocosip/go-medimg-codec/stream"
)

// FrameHeader is the SOF55 frame description.
type FrameHeader struct {
	Precision  int
	Rows       int
	Cols       int
	Components int
}

type frameFixed struct {
	Precision  uint8
	Rows, Cols uint16
	Components uint8
}

type frameComponent struct {
	ID       uint8
	Sampling uint8 // 0x11: H=1, V=1
	TableID  uint8
}

// Marshal returns the SOF55 segment body.
func (f *FrameHeader) Marshal() ([]byte, error) {
	body := make([]byte, 6+3*f.Components)
	w := bytewriter.New(body)
	fixed := frameFixed{
		Precision:  uint8(f.Precision),
		Rows:       uint16(f.Rows),
		Cols:       uint16(f.Cols),
		Components: uint8(f.Components),
	}
	if err := binary.Write(w, binary.BigEndian, &fixed); err != nil {
		return nil, fmt.Errorf("SOF55: %w", err)
	}
	comps := make([]frameComponent, f.Components)
	for i := range comps {
		comps[i] = frameComponent{ID: uint8(i + 1), Sampling: 0x11}
	}
	if err := binary.Write(w, binary.BigEndian, comps); err != nil {
		return nil, fmt.Errorf("SOF55 components: %w", err)
	}
	return body, nil
}

func unmarshalFrame(body []byte) (*FrameHeader, error) {
	var fixed frameFixed
	if err := binary.Read(bytes.NewReader(body), binary.BigEndian, &fixed); err != nil {
		return nil, fmt.Errorf("SOF55 segment too short: %d bytes", len(body))
	}
	return &FrameHeader{
		Precision:  int(fixed.Precision),
		Rows:       int(fixed.Rows),
		Cols:       int(fixed.Cols),
		Components: int(fixed.Components),
	}, nil
}

// PresetParams is the LSE preset coding parameters segment (ID 1).
type PresetParams struct {
	MaxVal int
	T1     int
	T2     int
	T3     int
	Reset  int
}

// DefaultPresetParams returns the fixed thresholds written for near-lossless
// scans. They are not derived from the image.
func DefaultPresetParams() *PresetParams {
	return &PresetParams{MaxVal: 255, T1: 3, T2: 7, T3: 21, Reset: 64}
}

type presetFixed struct {
	ID                        uint8
	MaxVal, T1, T2, T3, Reset uint16
}

const presetLen = 11

// Marshal returns the LSE segment body.
func (p *PresetParams) Marshal() ([]byte, error) {
	body := make([]byte, presetLen)
	fixed := presetFixed{
		ID:     1,
		MaxVal: uint16(p.MaxVal),
		T1:     uint16(p.T1),
		T2:     uint16(p.T2),
		T3:     uint16(p.T3),
		Reset:  uint16(p.Reset),
	}
	if err := binary.Write(bytewriter.New(body), binary.BigEndian, &fixed); err != nil {
		return nil, fmt.Errorf("LSE: %w", err)
	}
	return body, nil
}

func unmarshalPreset(body []byte) (*PresetParams, bool) {
	var fixed presetFixed
	if len(body) < presetLen || body[0] != 1 {
		return nil, false
	}
	if err := binary.Read(bytes.NewReader(body), binary.BigEndian, &fixed); err != nil {
		return nil, false
	}
	return &PresetParams{
		MaxVal: int(fixed.MaxVal),
		T1:     int(fixed.T1),
		T2:     int(fixed.T2),
		T3:     int(fixed.T3),
		Reset:  int(fixed.Reset),
	}, true
}

// scanBody returns the SOS segment body: component selectors, NEAR, ILV and Pt.
func scanBody(components, near int) []byte {
	body := make([]byte, 0, 4+2*components)
	body = append(body, byte(components))
	for i := 0; i < components; i++ {
		body = append(body, byte(i+1), 0)
	}
	ilv := InterleaveNone
	if components > 1 {
		ilv = InterleaveSample
	}
	return append(body, byte(near), byte(ilv), 0)
}

// Header is the parsed marker stream preceding the scan data.
type Header struct {
	Frame  *FrameHeader  // nil when absent
	Preset *PresetParams // nil when absent

	ScanComponents int
	Near           int
	InterleaveMode int

	// DataOffset is the offset of the first scan data byte.
	DataOffset int
}

// ParseHeader walks the marker stream from SOI to the first SOS segment.
// Zero-stuffed 0xFF bytes and fill bytes are skipped.
func ParseHeader(data []byte) (*Header, error) {
	const op = "jpegls parse header"
	if len(data) < 4 {
		return nil, codec.CodecError(op, codec.ErrTooShort, "%d bytes", len(data))
	}
	if !stream.HasMarker(data, 0, MarkerSOI) {
		return nil, codec.CodecError(op, codec.ErrMissingMarker, "missing start-of-image marker")
	}

	h := &Header{}
	pos := 2
	for pos+1 < len(data) {
		if data[pos] != 0xFF {
			pos++
			continue
		}
		code := data[pos+1]
		if code == 0x00 || code == 0xFF {
			// stuffed byte or fill byte
			pos++
			if code == 0x00 {
				pos++
			}
			continue
		}
		marker := uint16(0xFF00) | uint16(code)
		if marker == MarkerEOI {
			break
		}
		length, ok := stream.Uint16(data, pos+2)
		if !ok || length < 2 || pos+2+int(length) > len(data) {
			return nil, codec.CodecError(op, codec.ErrTruncated, "%s segment at offset %d", MarkerName(marker), pos)
		}
		body := data[pos+4 : pos+2+int(length)]

		switch marker {
		case MarkerSOF55:
			frame, err := unmarshalFrame(body)
			if err != nil {
				return nil, codec.CodecError(op, codec.ErrTruncated, "%v", err)
			}
			h.Frame = frame
		case MarkerLSE:
			if preset, ok := unmarshalPreset(body); ok {
				h.Preset = preset
			}
		case MarkerSOS:
			if len(body) < 1 || len(body) < 1+2*int(body[0])+1 {
				return nil, codec.CodecError(op, codec.ErrTruncated, "SOS segment of %d bytes", len(body))
			}
			ns := int(body[0])
			h.ScanComponents = ns
			h.Near = int(body[1+2*ns])
			if len(body) > 2+2*ns {
				h.InterleaveMode = int(body[2+2*ns])
			}
			h.DataOffset = pos + 2 + int(length)
			return h, nil
		}
		pos += 2 + int(length)
	}
	return nil, codec.CodecError(op, codec.ErrMissingMarker, "could not find scan-start marker")
}
