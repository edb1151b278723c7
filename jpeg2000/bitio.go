package jpeg2000

// bitWriter packs values MSB-first with no byte stuffing. The final partial
// byte is zero padded.
type bitWriter struct {
	buf []byte
	acc uint32
	n   int // pending bits in acc, always < 8 between calls
}

func newBitWriter(size int) *bitWriter {
	return &bitWriter{buf: make([]byte, 0, size)}
}

func (bw *bitWriter) writeBits(value uint32, n int) {
	bw.acc = bw.acc<<n | value&(1<<n-1)
	bw.n += n
	for bw.n >= 8 {
		bw.n -= 8
		bw.buf = append(bw.buf, byte(bw.acc>>bw.n))
	}
	bw.acc &= 1<<bw.n - 1
}

func (bw *bitWriter) flush() []byte {
	if bw.n > 0 {
		bw.buf = append(bw.buf, byte(bw.acc<<(8-bw.n)))
		bw.acc, bw.n = 0, 0
	}
	return bw.buf
}

// bitReader reads values written by bitWriter.
type bitReader struct {
	data []byte
	pos  int
	acc  uint32
	n    int
}

func newBitReader(data []byte) *bitReader {
	return &bitReader{data: data}
}

// readBits returns false when fewer than n bits remain.
func (br *bitReader) readBits(n int) (uint32, bool) {
	for br.n < n {
		if br.pos >= len(br.data) {
			return 0, false
		}
		br.acc = br.acc<<8 | uint32(br.data[br.pos])
		br.pos++
		br.n += 8
	}
	br.n -= n
	v := br.acc >> br.n & (1<<n - 1)
	br.acc &= 1<<br.n - 1
	return v, true
}

// packedLen returns the number of bytes needed for count values of width bits.
func packedLen(count, width int) int {
	return (count*width + 7) / 8
}
