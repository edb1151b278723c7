package jpegls

// JPEG-LS marker codes (ITU-T T.87)
const (
	MarkerSOI   uint16 = 0xFFD8 // Start of image
	MarkerEOI   uint16 = 0xFFD9 // End of image
	MarkerSOS   uint16 = 0xFFDA // Start of scan
	MarkerSOF55 uint16 = 0xFFF7 // Start of frame, JPEG-LS
	MarkerLSE   uint16 = 0xFFF8 // JPEG-LS preset parameters
)

// Interleave modes written to SOS
const (
	InterleaveNone   = 0 // single component
	InterleaveSample = 2 // components interleaved per pixel
)

// MarkerName returns the name of a marker code
func MarkerName(marker uint16) string {
	switch marker {
	case MarkerSOI:
		return "SOI"
	case MarkerEOI:
		return "EOI"
	case MarkerSOS:
		return "SOS"
	case MarkerSOF55:
		return "SOF55"
	case MarkerLSE:
		return "LSE"
	default:
		return "UNKNOWN"
	}
}
