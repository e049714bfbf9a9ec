package alphavariant

import (
	"errors"
	"math"
)

var (
	ErrMissingInput = errors.New("missing input")
	ErrDecode       = errors.New("decode failed")
	ErrEncode       = errors.New("encode failed")
	ErrConfig       = errors.New("invalid config")
)

// Variant is a named pair of alpha fractions in [0,1].
type Variant struct {
	Tag              string  `json:"tag"`
	OpaqueAlpha      float64 `json:"opaque_alpha"`
	TransparentAlpha float64 `json:"transparent_alpha"`
}

// DefaultVariants are the translucency levels shipped with the planner
// graphics.
func DefaultVariants() []Variant {
	return []Variant{
		{Tag: "a40_15", OpaqueAlpha: 0.40, TransparentAlpha: 0.15},
		{Tag: "a20_075", OpaqueAlpha: 0.20, TransparentAlpha: 0.075},
		{Tag: "a10_25", OpaqueAlpha: 0.10, TransparentAlpha: 0.25},
	}
}

// Targets converts the fractions to 8-bit alphas.
func (v Variant) Targets() Target {
	return Target{
		Opaque:      FractionToAlpha(v.OpaqueAlpha),
		Transparent: FractionToAlpha(v.TransparentAlpha),
	}
}

// FractionToAlpha returns round(255*f), halves to even, clamped to [0,255].
func FractionToAlpha(f float64) uint8 {
	v := math.RoundToEven(255 * f)
	return uint8(max(0, min(255, v)))
}
