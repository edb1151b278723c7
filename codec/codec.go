package codec

// Codec is the universal interface for all image codecs
type Codec interface {
	// Encode compresses img according to cfg
	Encode(img *ImageData, cfg *Config) ([]byte, error)

	// Decode decompresses data into a freshly allocated ImageData of the
	// given geometry
	Decode(data []byte, width, height, bitsPerSample, samplesPerPixel int) (*ImageData, error)

	// Info returns static codec information
	Info() Info

	// Capabilities returns the image formats the codec can handle
	Capabilities() Capabilities

	// CanEncode reports whether the codec can handle img
	CanEncode(img *ImageData) bool

	// TransferSyntaxUID returns the DICOM Transfer Syntax UID written for
	// lossless or lossy output, false if the codec has none for that mode
	TransferSyntaxUID(lossless bool) (string, bool)
}

// Info describes a codec.
type Info struct {
	Name                string
	Version             string
	SupportsLossless    bool
	SupportsLossy       bool
	SupportsProgressive bool
	SupportsROI         bool

	// Transfer Syntax UIDs for lossless and lossy output; empty when unsupported.
	TransferSyntaxLossless string
	TransferSyntaxLossy    string
}

// Capabilities describes the pixel formats a codec accepts.
type Capabilities struct {
	MaxBitsPerSample   int
	SupportsSigned     bool
	SupportsColor      bool
	SupportsMultiframe bool
}

// CanEncodeWith implements Codec.CanEncode for a capability set.
func CanEncodeWith(caps Capabilities, img *ImageData) bool {
	if img == nil {
		return false
	}
	return img.BitsPerSample <= caps.MaxBitsPerSample &&
		(img.SamplesPerPixel == 1 || caps.SupportsColor) &&
		(!img.IsSigned || caps.SupportsSigned)
}

// TransferSyntaxFor implements Codec.TransferSyntaxUID for an Info.
func TransferSyntaxFor(info Info, lossless bool) (string, bool) {
	uid := info.TransferSyntaxLossy
	if lossless {
		uid = info.TransferSyntaxLossless
	}
	return uid, uid != ""
}
