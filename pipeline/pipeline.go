// Package pipeline runs the in-memory compression flow for one image:
// modality safety checks, codec capability gating, encoding and lossless
// verification.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cocosip/go-medimg-codec/codec"
	"github.com/cocosip/go-medimg-codec/factory"
)

// Result describes one compressed image.
type Result struct {
	OriginalSize      int
	CompressedSize    int
	Ratio             float64
	Duration          time.Duration
	Lossless          bool
	CodecName         string
	TransferSyntaxUID string
	Data              []byte
	Warnings          []string
}

// SpaceSavingsPercent returns the size reduction in percent.
func (r *Result) SpaceSavingsPercent() float64 {
	if r.OriginalSize == 0 {
		return 0
	}
	return (1 - float64(r.CompressedSize)/float64(r.OriginalSize)) * 100
}

// Pipeline compresses images with a fixed configuration. It is safe for
// concurrent use.
type Pipeline struct {
	cfg    *codec.Config
	codec  codec.Codec
	logger *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the logger; the default is codec.Logger().
func WithLogger(l *slog.Logger) Option {
	return func(p *Pipeline) { p.logger = l }
}

// WithCodec overrides the codec selected from the configuration type.
func WithCodec(c codec.Codec) Option {
	return func(p *Pipeline) { p.codec = c }
}

// New validates cfg and selects its codec.
func New(cfg *codec.Config, opts ...Option) (*Pipeline, error) {
	if cfg == nil {
		cfg = codec.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	p := &Pipeline{cfg: cfg, logger: codec.Logger()}
	for _, opt := range opts {
		opt(p)
	}
	if p.codec == nil {
		c, err := factory.ForConfig(cfg)
		if err != nil {
			return nil, err
		}
		p.codec = c
	}
	return p, nil
}

// Config returns the pipeline configuration.
func (p *Pipeline) Config() *codec.Config {
	return p.cfg
}

// CompressImage encodes img and, for lossless configurations with
// verification enabled, decodes the result and compares it with the source.
// ctx is checked before encoding and before verification.
func (p *Pipeline) CompressImage(ctx context.Context, img *codec.ImageData, modality codec.Modality) (*Result, error) {
	const op = "compress image"
	start := time.Now()
	var warnings []string

	if err := p.cfg.ValidateForModality(modality); err != nil {
		return nil, err
	}
	if modality.RequiresLossless() && !p.cfg.IsLossless() {
		warnings = append(warnings, fmt.Sprintf("safety check overridden: %s stored with %s compression", modality, p.cfg.Mode))
	}

	if err := img.Validate(); err != nil {
		return nil, err
	}
	info := p.codec.Info()
	if !p.codec.CanEncode(img) {
		return nil, codec.NewError(codec.KindCodec, op, fmt.Errorf("%w: codec %s cannot encode this image (%dx%d, %d bits, %d samples)",
			codec.ErrUnsupportedFormat, info.Name, img.Width, img.Height, img.BitsPerSample, img.SamplesPerPixel))
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := p.codec.Encode(img, p.cfg)
	if err != nil {
		return nil, err
	}

	if p.cfg.VerifyCompression && p.cfg.IsLossless() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := p.verifyLossless(data, img); err != nil {
			return nil, err
		}
	}

	uid, ok := p.codec.TransferSyntaxUID(p.cfg.IsLossless())
	if !ok {
		warnings = append(warnings, fmt.Sprintf("codec %s has no transfer syntax for %s output", info.Name, p.cfg.Mode))
	}

	res := &Result{
		OriginalSize:      len(img.PixelData),
		CompressedSize:    len(data),
		Ratio:             codec.Ratio(len(img.PixelData), len(data)),
		Duration:          time.Since(start),
		Lossless:          p.cfg.IsLossless(),
		CodecName:         info.Name,
		TransferSyntaxUID: uid,
		Data:              data,
		Warnings:          warnings,
	}
	p.logger.Info("image compressed",
		"codec", res.CodecName,
		"modality", modality.String(),
		"width", img.Width,
		"height", img.Height,
		"original", res.OriginalSize,
		"compressed", res.CompressedSize,
		"ratio", res.Ratio,
		"duration", res.Duration,
	)
	return res, nil
}

func (p *Pipeline) verifyLossless(data []byte, img *codec.ImageData) error {
	const op = "verify lossless"
	decoded, err := p.codec.Decode(data, img.Width, img.Height, img.BitsPerSample, img.SamplesPerPixel)
	if err != nil {
		return codec.ValidationError(op, codec.ErrVerificationFailed, "decode failed: %v", err)
	}
	if i := firstDifference(img.PixelData, decoded.PixelData); i >= 0 {
		return codec.ValidationError(op, codec.ErrVerificationFailed,
			"first difference at byte %d (original %d bytes, decoded %d bytes)",
			i, len(img.PixelData), len(decoded.PixelData))
	}
	p.logger.Debug("lossless verification passed", "codec", p.codec.Info().Name, "bytes", len(data))
	return nil
}

// firstDifference returns the first offset where a and b differ, -1 when
// they are equal.
func firstDifference(a, b []byte) int {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return i
		}
	}
	if len(a) != len(b) {
		return n
	}
	return -1
}
