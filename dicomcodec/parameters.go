package dicomcodec

import (
	"github.com/cocosip/go-dicom/pkg/imaging/codec"
	imgcodec "github.com/cocosip/go-medimg-codec/codec"
)

// Ensure Parameters implements codec.Parameters
var _ codec.Parameters = (*Parameters)(nil)

// Parameters holds the encoding options exposed through the go-dicom
// parameter interface.
type Parameters struct {
	// Ratio is the lossy JPEG 2000 target compression ratio. Zero uses
	// the configuration default.
	Ratio float64

	// Layers is the JPEG 2000 quality layer count (1-65535).
	Layers int

	// Near is the JPEG-LS NEAR tolerance (0-255).
	Near int

	// internal storage for compatibility with generic parameter interface
	params map[string]interface{}
}

// NewParameters creates Parameters with default values
func NewParameters() *Parameters {
	return &Parameters{
		Layers: 1,
		params: make(map[string]interface{}),
	}
}

// GetParameter retrieves a parameter by name (implements codec.Parameters)
func (p *Parameters) GetParameter(name string) interface{} {
	switch name {
	case "ratio":
		return p.Ratio
	case "layers":
		return p.Layers
	case "near":
		return p.Near
	default:
		return p.params[name]
	}
}

// SetParameter sets a parameter value (implements codec.Parameters)
func (p *Parameters) SetParameter(name string, value interface{}) {
	switch name {
	case "ratio":
		if v, ok := toFloat(value); ok {
			p.Ratio = v
		}
	case "layers":
		if v, ok := value.(int); ok {
			p.Layers = v
		}
	case "near":
		if v, ok := value.(int); ok {
			p.Near = v
		}
	default:
		if p.params == nil {
			p.params = make(map[string]interface{})
		}
		p.params[name] = value
	}
}

// Validate resets out-of-range values to their defaults
func (p *Parameters) Validate() error {
	if p.Ratio < 0 {
		p.Ratio = 0
	}
	if p.Layers < 1 || p.Layers > 65535 {
		p.Layers = 1
	}
	if p.Near < 0 || p.Near > imgcodec.MaxNearLosslessError {
		p.Near = 0
	}
	return nil
}

// merge overrides p with the recognized keys of a generic parameter set.
func (p *Parameters) merge(generic codec.Parameters) {
	for _, name := range []string{"ratio", "layers", "near"} {
		if v := generic.GetParameter(name); v != nil {
			p.SetParameter(name, v)
		}
	}
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	}
	return 0, false
}
