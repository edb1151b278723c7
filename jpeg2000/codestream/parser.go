package codestream

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// ErrNoSOD is returned when the main header ends without a start-of-data marker.
var ErrNoSOD = errors.New("no SOD marker in codestream")

// Header is the parsed main header and tile-part header of a single-tile
// codestream.
type Header struct {
	SIZ *SIZSegment // nil when absent
	COD *CODSegment // nil when absent
	QCD *QCDSegment // nil when absent
	SOT *SOTSegment // nil when absent
	COM []COMSegment

	// DataOffset is the offset of the first tile data byte, just past SOD.
	DataOffset int
}

// Parser walks a codestream segment by segment up to the first SOD marker.
type Parser struct {
	data   []byte
	offset int
}

// NewParser creates a new codestream parser
func NewParser(data []byte) *Parser {
	return &Parser{data: data}
}

// Parse is shorthand for NewParser(data).Parse().
func Parse(data []byte) (*Header, error) {
	return NewParser(data).Parse()
}

// Parse reads SOC and every segment up to SOD.
func (p *Parser) Parse() (*Header, error) {
	marker, err := p.readUint16()
	if err != nil {
		return nil, fmt.Errorf("failed to read SOC: %w", err)
	}
	if marker != MarkerSOC {
		return nil, fmt.Errorf("expected SOC marker (0x%04X), got 0x%04X", MarkerSOC, marker)
	}

	h := &Header{}
	for {
		marker, err := p.readUint16()
		if err == io.EOF {
			return nil, ErrNoSOD
		}
		if marker>>8 != 0xFF {
			return nil, fmt.Errorf("expected marker at offset %d, got 0x%04X", p.offset-2, marker)
		}

		switch marker {
		case MarkerSOD:
			h.DataOffset = p.offset
			return h, nil
		case MarkerEOC:
			return nil, ErrNoSOD
		case MarkerSOT:
			// Lsot may carry the tile-part length, so the fixed size is used.
			body, err := p.read(SOTLen)
			if err != nil {
				return nil, fmt.Errorf("SOT: %w", err)
			}
			if h.SOT, err = unmarshalSOT(body); err != nil {
				return nil, err
			}
			continue
		}

		if !HasLength(marker) {
			continue
		}
		body, err := p.readSegment()
		if err != nil {
			return nil, fmt.Errorf("%s segment: %w", MarkerName(marker), err)
		}
		switch marker {
		case MarkerSIZ:
			h.SIZ, err = unmarshalSIZ(body)
		case MarkerCOD:
			h.COD, err = unmarshalCOD(body)
		case MarkerQCD:
			h.QCD, err = unmarshalQCD(body)
		case MarkerCOM:
			if len(body) >= 2 {
				h.COM = append(h.COM, COMSegment{
					Rcom: binary.BigEndian.Uint16(body),
					Data: body[2:],
				})
			}
		}
		if err != nil {
			return nil, err
		}
	}
}

func (p *Parser) readUint16() (uint16, error) {
	if p.offset+2 > len(p.data) {
		return 0, io.EOF
	}
	val := binary.BigEndian.Uint16(p.data[p.offset:])
	p.offset += 2
	return val, nil
}

func (p *Parser) read(n int) ([]byte, error) {
	if n < 0 || p.offset+n > len(p.data) {
		return nil, io.ErrUnexpectedEOF
	}
	b := p.data[p.offset : p.offset+n]
	p.offset += n
	return b, nil
}

// readSegment reads a length field and returns the segment body.
func (p *Parser) readSegment() ([]byte, error) {
	length, err := p.readUint16()
	if err != nil {
		return nil, io.ErrUnexpectedEOF
	}
	if length < 2 {
		return nil, fmt.Errorf("invalid segment length %d", length)
	}
	return p.read(int(length) - 2)
}
