package codec

// ImageData describes one raster pixel buffer.
type ImageData struct {
	Width           int    // Image width in pixels
	Height          int    // Image height in pixels
	BitsPerSample   int    // Bits per sample (1-16; 8 or 16 in practice)
	SamplesPerPixel int    // 1 = grayscale, >1 = interleaved components
	PixelData       []byte // Raw samples, little-endian when wider than 8 bits

	// PhotometricInterpretation is carried for the container writer
	// (e.g. "MONOCHROME2", "RGB"); codecs do not interpret it.
	PhotometricInterpretation string
	IsSigned                  bool
}

// NewImageData creates an unsigned ImageData with no photometric interpretation.
func NewImageData(width, height, bitsPerSample, samplesPerPixel int, pixelData []byte) *ImageData {
	return &ImageData{
		Width:           width,
		Height:          height,
		BitsPerSample:   bitsPerSample,
		SamplesPerPixel: samplesPerPixel,
		PixelData:       pixelData,
	}
}

// BytesPerSample returns the container width of one sample in bytes.
func (img *ImageData) BytesPerSample() int {
	return BytesPerSample(img.BitsPerSample)
}

// SampleCount returns width*height*samplesPerPixel.
func (img *ImageData) SampleCount() int {
	return img.Width * img.Height * img.SamplesPerPixel
}

// ExpectedSize returns the number of bytes the declared geometry requires.
func (img *ImageData) ExpectedSize() int {
	return ExpectedSize(img.Width, img.Height, img.BitsPerSample, img.SamplesPerPixel)
}

// Validate checks the geometry and the size invariant
// len(PixelData) == width*height*samplesPerPixel*ceil(bits/8).
func (img *ImageData) Validate() error {
	const op = "validate"
	if img == nil {
		return ImageDataError(op, ErrEmptyPixelData, "nil image")
	}
	if img.Width <= 0 || img.Height <= 0 {
		return ImageDataError(op, ErrInvalidDimensions, "%dx%d", img.Width, img.Height)
	}
	if img.SamplesPerPixel < 1 {
		return ImageDataError(op, ErrInvalidDimensions, "samples per pixel %d", img.SamplesPerPixel)
	}
	if img.BitsPerSample < 1 || img.BitsPerSample > 16 {
		return ImageDataError(op, ErrUnsupportedBitDepth, "%d bits (must be 1-16)", img.BitsPerSample)
	}
	if len(img.PixelData) == 0 {
		return ImageDataError(op, ErrEmptyPixelData, "")
	}
	if expected := img.ExpectedSize(); len(img.PixelData) != expected {
		return ImageDataError(op, ErrSizeMismatch, "expected %d bytes, got %d", expected, len(img.PixelData))
	}
	return nil
}

// BytesPerSample returns ceil(bitsPerSample/8).
func BytesPerSample(bitsPerSample int) int {
	return (bitsPerSample + 7) / 8
}

// ExpectedSize returns the pixel buffer size implied by a geometry.
func ExpectedSize(width, height, bitsPerSample, samplesPerPixel int) int {
	return width * height * samplesPerPixel * BytesPerSample(bitsPerSample)
}
