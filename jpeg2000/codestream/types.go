package codestream

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/noxer/bytewriter"
)

// Transformation values of the COD segment
const (
	TransformIrreversible uint8 = 0 // 9-7 irreversible (lossy)
	TransformReversible   uint8 = 1 // 5-3 reversible (lossless)
)

// Quantization default parameters written to QCD
var (
	QCDReversible   = []byte{0x22, 0x00}
	QCDIrreversible = []byte{0x42, 0x00, 0x88}
)

// SIZSegment - Image and tile size marker segment
// ISO/IEC 15444-1 A.5.1
type SIZSegment struct {
	Rsiz   uint16 // Capabilities (0 = baseline)
	Xsiz   uint32 // Width of reference grid
	Ysiz   uint32 // Height of reference grid
	XOsiz  uint32 // Horizontal offset
	YOsiz  uint32 // Vertical offset
	XTsiz  uint32 // Width of one reference tile
	YTsiz  uint32 // Height of one reference tile
	XTOsiz uint32 // Horizontal offset of first tile
	YTOsiz uint32 // Vertical offset of first tile
	Csiz   uint16 // Number of components

	// Per-component parameters
	Components []ComponentSize
}

// ComponentSize holds per-component sizing information
type ComponentSize struct {
	Ssiz  uint8 // Precision and sign (bit 7 = sign, bits 0-6 = depth-1)
	XRsiz uint8 // Horizontal separation
	YRsiz uint8 // Vertical separation
}

// BitDepth returns the bit depth of the component
func (c *ComponentSize) BitDepth() int {
	return int(c.Ssiz&0x7F) + 1
}

// IsSigned returns true if the component is signed
func (c *ComponentSize) IsSigned() bool {
	return (c.Ssiz & 0x80) != 0
}

type sizFixed struct {
	Rsiz                         uint16
	Xsiz, Ysiz, XOsiz, YOsiz     uint32
	XTsiz, YTsiz, XTOsiz, YTOsiz uint32
	Csiz                         uint16
}

const sizFixedLen = 36

// NewSIZ describes a single-tile image with identical components.
func NewSIZ(width, height, bits, components int, signed bool) *SIZSegment {
	ssiz := uint8(bits-1) & 0x7F
	if signed {
		ssiz |= 0x80
	}
	siz := &SIZSegment{
		Xsiz:       uint32(width),
		Ysiz:       uint32(height),
		XTsiz:      uint32(width),
		YTsiz:      uint32(height),
		Csiz:       uint16(components),
		Components: make([]ComponentSize, components),
	}
	for i := range siz.Components {
		siz.Components[i] = ComponentSize{Ssiz: ssiz, XRsiz: 1, YRsiz: 1}
	}
	return siz
}

// Width returns the image width on the reference grid.
func (s *SIZSegment) Width() int { return int(s.Xsiz - s.XOsiz) }

// Height returns the image height on the reference grid.
func (s *SIZSegment) Height() int { return int(s.Ysiz - s.YOsiz) }

// Marshal returns the segment body (without marker and length).
func (s *SIZSegment) Marshal() ([]byte, error) {
	body := make([]byte, sizFixedLen+3*len(s.Components))
	w := bytewriter.New(body)
	fixed := sizFixed{
		Rsiz: s.Rsiz, Xsiz: s.Xsiz, Ysiz: s.Ysiz, XOsiz: s.XOsiz, YOsiz: s.YOsiz,
		XTsiz: s.XTsiz, YTsiz: s.YTsiz, XTOsiz: s.XTOsiz, YTOsiz: s.YTOsiz,
		Csiz: s.Csiz,
	}
	if err := binary.Write(w, binary.BigEndian, &fixed); err != nil {
		return nil, fmt.Errorf("SIZ: %w", err)
	}
	if err := binary.Write(w, binary.BigEndian, s.Components); err != nil {
		return nil, fmt.Errorf("SIZ components: %w", err)
	}
	return body, nil
}

func unmarshalSIZ(body []byte) (*SIZSegment, error) {
	if len(body) < sizFixedLen {
		return nil, fmt.Errorf("SIZ segment too short: %d bytes", len(body))
	}
	var fixed sizFixed
	r := bytes.NewReader(body)
	if err := binary.Read(r, binary.BigEndian, &fixed); err != nil {
		return nil, err
	}
	if expected := sizFixedLen + 3*int(fixed.Csiz); len(body) != expected {
		return nil, fmt.Errorf("SIZ segment length mismatch: expected %d, got %d", expected+2, len(body)+2)
	}
	siz := &SIZSegment{
		Rsiz: fixed.Rsiz, Xsiz: fixed.Xsiz, Ysiz: fixed.Ysiz, XOsiz: fixed.XOsiz, YOsiz: fixed.YOsiz,
		XTsiz: fixed.XTsiz, YTsiz: fixed.YTsiz, XTOsiz: fixed.XTOsiz, YTOsiz: fixed.YTOsiz,
		Csiz:       fixed.Csiz,
		Components: make([]ComponentSize, fixed.Csiz),
	}
	if err := binary.Read(r, binary.BigEndian, siz.Components); err != nil {
		return nil, err
	}
	return siz, nil
}

// CODSegment - Coding style default marker segment
// ISO/IEC 15444-1 A.6.1
type CODSegment struct {
	Scod uint8 // Coding style for all components

	// SGcod - General coding style parameters
	ProgressionOrder           uint8  // 0=LRCP, 1=RLCP, 2=RPCL, 3=PCRL, 4=CPRL
	NumberOfLayers             uint16 // Number of layers
	MultipleComponentTransform uint8  // 0=none, 1=RCT or ICT

	// SPcod - Coding style parameters
	NumberOfDecompositionLevels uint8 // Number of decomposition levels
	CodeBlockWidth              uint8 // Code-block width exponent (2^(n+2))
	CodeBlockHeight             uint8 // Code-block height exponent (2^(n+2))
	CodeBlockStyle              uint8 // Code-block style
	Transformation              uint8 // 0=9-7 irreversible, 1=5-3 reversible
}

const codLen = 10

// NewCOD returns the coding style written by the encoder: LRCP, no MCT,
// five decomposition levels, 64x64 code-blocks.
func NewCOD(layers int, lossless bool) *CODSegment {
	cod := &CODSegment{
		NumberOfLayers:              uint16(layers),
		NumberOfDecompositionLevels: 5,
		CodeBlockWidth:              4,
		CodeBlockHeight:             4,
		Transformation:              TransformIrreversible,
	}
	if lossless {
		cod.Transformation = TransformReversible
	}
	return cod
}

// Reversible reports whether the 5-3 reversible transform is signalled.
func (c *CODSegment) Reversible() bool {
	return c.Transformation == TransformReversible
}

// CodeBlockSize returns the actual code-block dimensions
func (c *CODSegment) CodeBlockSize() (width, height int) {
	width = 1 << (c.CodeBlockWidth + 2)
	height = 1 << (c.CodeBlockHeight + 2)
	return
}

// Marshal returns the segment body (without marker and length).
func (c *CODSegment) Marshal() ([]byte, error) {
	body := make([]byte, codLen)
	if err := binary.Write(bytewriter.New(body), binary.BigEndian, c); err != nil {
		return nil, fmt.Errorf("COD: %w", err)
	}
	return body, nil
}

func unmarshalCOD(body []byte) (*CODSegment, error) {
	if len(body) < codLen {
		return nil, fmt.Errorf("COD segment too short: %d bytes", len(body))
	}
	cod := &CODSegment{}
	// Precinct sizes past the fixed part are ignored.
	if err := binary.Read(bytes.NewReader(body[:codLen]), binary.BigEndian, cod); err != nil {
		return nil, err
	}
	return cod, nil
}

// QCDSegment - Quantization default marker segment
// ISO/IEC 15444-1 A.6.4
type QCDSegment struct {
	Sqcd  uint8  // Quantization style
	SPqcd []byte // Quantization step size values
}

// NewQCD returns the quantization default for the transform in use.
func NewQCD(lossless bool) *QCDSegment {
	params := QCDIrreversible
	if lossless {
		params = QCDReversible
	}
	return &QCDSegment{Sqcd: params[0], SPqcd: append([]byte(nil), params[1:]...)}
}

// QuantizationType returns the quantization type
func (q *QCDSegment) QuantizationType() int {
	return int(q.Sqcd >> 5)
}

// GuardBits returns the number of guard bits
func (q *QCDSegment) GuardBits() int {
	return int(q.Sqcd & 0x1F)
}

// Marshal returns the segment body (without marker and length).
func (q *QCDSegment) Marshal() []byte {
	return append([]byte{q.Sqcd}, q.SPqcd...)
}

func unmarshalQCD(body []byte) (*QCDSegment, error) {
	if len(body) < 1 {
		return nil, fmt.Errorf("QCD segment is empty")
	}
	return &QCDSegment{Sqcd: body[0], SPqcd: append([]byte(nil), body[1:]...)}, nil
}

// SOTSegment - Start of tile-part marker segment
//
// Lsot is carried because this codestream writes the tile-part length into
// it instead of the constant 10.
type SOTSegment struct {
	Lsot  uint16 // Segment length as written
	Isot  uint16 // Tile index
	Psot  uint32 // Tile-part length
	TPsot uint8  // Tile-part index
	TNsot uint8  // Number of tile-parts
}

// SOTLen is the number of bytes following the SOT marker.
const SOTLen = 10

// NewSOT describes the single tile-part of a payload of n bytes.
func NewSOT(n int) *SOTSegment {
	return &SOTSegment{
		Lsot:  uint16(SOTLen + n),
		Psot:  uint32(SOTLen + n),
		TNsot: 1,
	}
}

// Marshal returns the SOTLen bytes that follow the SOT marker, length field included.
func (s *SOTSegment) Marshal() ([]byte, error) {
	body := make([]byte, SOTLen)
	if err := binary.Write(bytewriter.New(body), binary.BigEndian, s); err != nil {
		return nil, fmt.Errorf("SOT: %w", err)
	}
	return body, nil
}

func unmarshalSOT(body []byte) (*SOTSegment, error) {
	if len(body) < SOTLen {
		return nil, fmt.Errorf("SOT segment too short: %d bytes", len(body))
	}
	sot := &SOTSegment{}
	if err := binary.Read(bytes.NewReader(body[:SOTLen]), binary.BigEndian, sot); err != nil {
		return nil, err
	}
	return sot, nil
}

// COMSegment - Comment marker segment
type COMSegment struct {
	Rcom uint16 // Registration value (0=binary, 1=ISO/IEC 8859-15)
	Data []byte // Comment data
}
