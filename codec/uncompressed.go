package codec

var _ Codec = (*Uncompressed)(nil)

// Uncompressed is the passthrough codec: encode copies the pixel buffer and
// decode wraps the bytes back into an ImageData.
type Uncompressed struct{}

// NewUncompressed creates the passthrough codec.
func NewUncompressed() *Uncompressed {
	return &Uncompressed{}
}

// Encode returns a copy of img.PixelData.
func (c *Uncompressed) Encode(img *ImageData, _ *Config) ([]byte, error) {
	if img == nil {
		return nil, ImageDataError("uncompressed encode", ErrEmptyPixelData, "nil image")
	}
	out := make([]byte, len(img.PixelData))
	copy(out, img.PixelData)
	return out, nil
}

// Decode wraps a copy of data in an ImageData of the given geometry.
func (c *Uncompressed) Decode(data []byte, width, height, bitsPerSample, samplesPerPixel int) (*ImageData, error) {
	pixels := make([]byte, len(data))
	copy(pixels, data)
	return NewImageData(width, height, bitsPerSample, samplesPerPixel, pixels), nil
}

// Info returns codec information
func (c *Uncompressed) Info() Info {
	return Info{
		Name:                   "Uncompressed",
		Version:                "1.0",
		SupportsLossless:       true,
		TransferSyntaxLossless: UIDExplicitVRLittleEndian,
	}
}

// Capabilities returns codec capabilities
func (c *Uncompressed) Capabilities() Capabilities {
	return Capabilities{
		MaxBitsPerSample:   16,
		SupportsSigned:     true,
		SupportsColor:      true,
		SupportsMultiframe: true,
	}
}

func (c *Uncompressed) CanEncode(img *ImageData) bool {
	return CanEncodeWith(c.Capabilities(), img)
}

func (c *Uncompressed) TransferSyntaxUID(lossless bool) (string, bool) {
	return TransferSyntaxFor(c.Info(), lossless)
}

func init() {
	Register(NewUncompressed())
}
