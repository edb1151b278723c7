// Package stream provides the big-endian marker and segment primitives shared
// by the JPEG 2000 and JPEG-LS containers.
package stream

import (
	"bytes"
	"encoding/binary"
	"io"
)

// Writer writes markers, segments and raw bytes to an underlying io.Writer.
// The first error is sticky: later writes are skipped and Err returns it.
type Writer struct {
	w   io.Writer
	buf [4]byte
	err error
}

// NewWriter creates a new marker writer
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

func (w *Writer) write(p []byte) {
	if w.err != nil {
		return
	}
	_, w.err = w.w.Write(p)
}

// WriteByte writes a single byte
func (w *Writer) WriteByte(b byte) error {
	w.buf[0] = b
	w.write(w.buf[:1])
	return w.err
}

// WriteUint16 writes a 16-bit big-endian value
func (w *Writer) WriteUint16(v uint16) error {
	binary.BigEndian.PutUint16(w.buf[:2], v)
	w.write(w.buf[:2])
	return w.err
}

// WriteUint32 writes a 32-bit big-endian value
func (w *Writer) WriteUint32(v uint32) error {
	binary.BigEndian.PutUint32(w.buf[:4], v)
	w.write(w.buf[:4])
	return w.err
}

// WriteMarker writes a two-byte marker
func (w *Writer) WriteMarker(marker uint16) error {
	return w.WriteUint16(marker)
}

// WriteSegment writes a marker followed by a length field and data.
// The length field includes itself (2 bytes).
func (w *Writer) WriteSegment(marker uint16, data []byte) error {
	w.WriteMarker(marker)
	w.WriteUint16(uint16(len(data) + 2))
	w.write(data)
	return w.err
}

// WriteBytes writes raw bytes
func (w *Writer) WriteBytes(data []byte) error {
	w.write(data)
	return w.err
}

// Err returns the first error encountered by the writer.
func (w *Writer) Err() error {
	return w.err
}

// Buffer is a Writer backed by an in-memory buffer.
type Buffer struct {
	*Writer
	buf *bytes.Buffer
}

// NewBuffer creates a Buffer with capacity hint size.
func NewBuffer(size int) *Buffer {
	buf := bytes.NewBuffer(make([]byte, 0, size))
	return &Buffer{Writer: NewWriter(buf), buf: buf}
}

// Bytes returns the bytes written so far.
func (b *Buffer) Bytes() []byte {
	return b.buf.Bytes()
}
