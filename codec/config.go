package codec

import (
	"fmt"
	"math"
	"strings"

	"github.com/hashicorp/go-multierror"
)

// Type selects a codec implementation.
type Type int

const (
	TypeJPEG2000 Type = iota
	TypeJPEGLS
	TypeUncompressed
)

func (t Type) String() string {
	switch t {
	case TypeJPEG2000:
		return "jpeg2000"
	case TypeJPEGLS:
		return "jpeg-ls"
	case TypeUncompressed:
		return "uncompressed"
	default:
		return fmt.Sprintf("Type(%d)", int(t))
	}
}

// ParseType parses a codec type name ("jpeg2000", "j2k", "jpeg-ls", "jls", "uncompressed", "raw").
func ParseType(s string) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "jpeg2000", "j2k", "jp2":
		return TypeJPEG2000, nil
	case "jpeg-ls", "jpegls", "jls":
		return TypeJPEGLS, nil
	case "uncompressed", "raw", "none":
		return TypeUncompressed, nil
	}
	return 0, fmt.Errorf("%w: codec type %q", ErrInvalidParameter, s)
}

// Mode is the compression mode.
type Mode int

const (
	// ModeLossless guarantees exact reconstruction.
	ModeLossless Mode = iota
	// ModeLossy trades precision for size, steered by TargetRatio.
	ModeLossy
	// ModeNearLossless bounds the per-sample error by NearLosslessError.
	ModeNearLossless
)

func (m Mode) String() string {
	switch m {
	case ModeLossless:
		return "lossless"
	case ModeLossy:
		return "lossy"
	case ModeNearLossless:
		return "near-lossless"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode parses "lossless", "lossy" or "near-lossless".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "lossless":
		return ModeLossless, nil
	case "lossy":
		return ModeLossy, nil
	case "near-lossless", "nearlossless", "near":
		return ModeNearLossless, nil
	}
	return 0, fmt.Errorf("%w: mode %q", ErrInvalidParameter, s)
}

// QualityPreset groups a target ratio and a layer count.
type QualityPreset int

const (
	// QualityDiagnostic is lossless.
	QualityDiagnostic QualityPreset = iota
	// QualityHigh is suitable for primary review.
	QualityHigh
	// QualityStandard is suitable for reference viewing.
	QualityStandard
	// QualityPreview is for thumbnails and previews.
	QualityPreview
)

// TargetRatio returns the lossy compression ratio of the preset, false for
// the lossless preset.
func (q QualityPreset) TargetRatio() (float64, bool) {
	switch q {
	case QualityHigh:
		return 10, true
	case QualityStandard:
		return 20, true
	case QualityPreview:
		return 50, true
	default:
		return 0, false
	}
}

// QualityLayers returns the JPEG 2000 quality layer count of the preset.
func (q QualityPreset) QualityLayers() int {
	switch q {
	case QualityHigh:
		return 5
	case QualityStandard:
		return 3
	case QualityPreview:
		return 2
	default:
		return 1
	}
}

const (
	// DefaultTargetRatio is used by lossy encoders when TargetRatio is unset.
	DefaultTargetRatio = 10.0
	// MaxNearLosslessError is the largest NEAR value the JPEG-LS header can carry.
	MaxNearLosslessError = 255
	maxQualityLayers     = 65535
)

// Config describes one compression request. It is passed by pointer to every
// codec call and never modified by codecs.
type Config struct {
	Type    Type
	Mode    Mode
	Quality QualityPreset

	// TargetRatio is the requested compression ratio for lossy mode.
	// Zero means unset (DefaultTargetRatio).
	TargetRatio float64

	// QualityLayers is the JPEG 2000 layer count written to COD.
	QualityLayers int

	// NearLosslessError is the JPEG-LS NEAR tolerance (0 = lossless).
	NearLosslessError int

	// VerifyCompression decodes lossless output and compares it with the source.
	VerifyCompression bool

	// OverrideSafetyChecks allows lossy compression of modalities that
	// require lossless storage.
	OverrideSafetyChecks bool
}

// DefaultConfig returns a lossless JPEG 2000 configuration with verification enabled.
func DefaultConfig() *Config {
	return &Config{
		Type:              TypeJPEG2000,
		Mode:              ModeLossless,
		Quality:           QualityDiagnostic,
		QualityLayers:     1,
		VerifyCompression: true,
	}
}

// LosslessConfig returns a lossless configuration for the given codec.
func LosslessConfig(t Type) *Config {
	cfg := DefaultConfig()
	cfg.Type = t
	return cfg
}

// LossyConfig returns a lossy configuration with a target ratio.
func LossyConfig(t Type, ratio float64) *Config {
	cfg := DefaultConfig()
	cfg.Type = t
	cfg.Mode = ModeLossy
	cfg.Quality = QualityStandard
	cfg.TargetRatio = ratio
	return cfg
}

// NearLosslessConfig returns a JPEG-LS near-lossless configuration.
func NearLosslessConfig(near int) *Config {
	cfg := DefaultConfig()
	cfg.Type = TypeJPEGLS
	cfg.Mode = ModeNearLossless
	cfg.NearLosslessError = near
	return cfg
}

// IsLossless reports whether the mode is lossless.
func (c *Config) IsLossless() bool {
	return c.Mode == ModeLossless
}

// EffectiveTargetRatio returns TargetRatio, falling back to the preset ratio
// and then to DefaultTargetRatio.
func (c *Config) EffectiveTargetRatio() float64 {
	if c.TargetRatio > 0 && !math.IsInf(c.TargetRatio, 0) {
		return c.TargetRatio
	}
	if r, ok := c.Quality.TargetRatio(); ok {
		return r
	}
	return DefaultTargetRatio
}

// Layers returns QualityLayers clamped to 1-65535.
func (c *Config) Layers() int {
	switch {
	case c.QualityLayers < 1:
		return 1
	case c.QualityLayers > maxQualityLayers:
		return maxQualityLayers
	}
	return c.QualityLayers
}

// Near returns the effective NEAR tolerance: zero unless the mode is
// near-lossless, clamped to 0-255 otherwise.
func (c *Config) Near() int {
	if c.Mode != ModeNearLossless {
		return 0
	}
	switch {
	case c.NearLosslessError < 0:
		return 0
	case c.NearLosslessError > MaxNearLosslessError:
		return MaxNearLosslessError
	}
	return c.NearLosslessError
}

// Validate reports every configuration problem at once. Codecs clamp
// parameters themselves and do not call it; it is meant for callers that
// want to reject bad requests up front.
func (c *Config) Validate() error {
	var result *multierror.Error

	switch c.Type {
	case TypeJPEG2000, TypeJPEGLS, TypeUncompressed:
	default:
		result = multierror.Append(result, fmt.Errorf("%w: unknown codec type %v", ErrInvalidParameter, c.Type))
	}
	switch c.Mode {
	case ModeLossless, ModeLossy, ModeNearLossless:
	default:
		result = multierror.Append(result, fmt.Errorf("%w: unknown mode %v", ErrInvalidParameter, c.Mode))
	}
	if c.TargetRatio < 0 || math.IsNaN(c.TargetRatio) {
		result = multierror.Append(result, fmt.Errorf("%w: target ratio %v", ErrInvalidParameter, c.TargetRatio))
	}
	if c.QualityLayers < 0 || c.QualityLayers > maxQualityLayers {
		result = multierror.Append(result, fmt.Errorf("%w: quality layers %d (must be 1-%d)", ErrInvalidParameter, c.QualityLayers, maxQualityLayers))
	}
	if c.NearLosslessError < 0 || c.NearLosslessError > MaxNearLosslessError {
		result = multierror.Append(result, fmt.Errorf("%w: near-lossless error %d (must be 0-%d)", ErrInvalidParameter, c.NearLosslessError, MaxNearLosslessError))
	}
	if c.Mode == ModeNearLossless && c.Type != TypeJPEGLS {
		result = multierror.Append(result, fmt.Errorf("%w: near-lossless mode requires jpeg-ls, got %v", ErrUnsupportedFormat, c.Type))
	}
	if c.Mode != ModeLossless && c.Type == TypeUncompressed {
		result = multierror.Append(result, fmt.Errorf("%w: %v mode with uncompressed output", ErrUnsupportedFormat, c.Mode))
	}

	if err := result.ErrorOrNil(); err != nil {
		return NewError(KindConfig, "validate config", err)
	}
	return nil
}

// ValidateForModality enforces modality rules: mammography must be stored
// losslessly unless OverrideSafetyChecks is set.
func (c *Config) ValidateForModality(m Modality) error {
	if !m.RequiresLossless() || c.Mode == ModeLossless {
		return nil
	}
	if c.OverrideSafetyChecks {
		Logger().Warn("modality safety check overridden",
			"modality", m.String(),
			"mode", c.Mode.String(),
		)
		return nil
	}
	return ValidationError("validate modality", ErrUnsupportedFormat,
		"modality %s requires lossless compression; set OverrideSafetyChecks to bypass", m)
}
