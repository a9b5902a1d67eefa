// Package field simulates the network background: a fixed set of drifting
// particles that bounce off the surface edges, scatter away from the pointer,
// glow when it comes close, and connect to their neighbours with fading lines.
package field

import "image/color"

// Pairing selects how candidate particle pairs are enumerated for links.
type Pairing string

const (
	// PairingExhaustive checks every unordered pair.
	PairingExhaustive Pairing = "exhaustive"
	// PairingGrid buckets particles into cells of the link distance and only
	// checks neighbouring cells.
	PairingGrid Pairing = "grid"
)

// Params holds every tunable of the simulation.
type Params struct {
	Particles int

	// Creation ranges.
	InitialSpeed float64 // speeds uniform in [-InitialSpeed, InitialSpeed]
	MinSize      float64
	MaxSize      float64
	MinAlpha     float64
	MaxAlpha     float64

	// Physics.
	MaxSpeed        float64
	Damping         float64
	InfluenceRadius float64
	RepelForce      float64
	RepelScale      float64
	GlowDecay       float64

	// Render alpha as a function of glow.
	NearAlphaBase  float64
	NearAlphaBoost float64
	FarAlphaBase   float64
	FarAlphaBoost  float64

	// Links.
	LinkDistance   float64
	HighlightRange float64
	LinkAlpha      float64
	HighlightAlpha float64
	LinkWidth      float64
	HighlightWidth float64
	Pairing        Pairing

	// Render.
	FadeAlpha     float64
	ShadowBlur    float64
	GlowThreshold float64

	ParticleColor  color.NRGBA
	HighlightColor color.NRGBA
	Background     color.NRGBA
	ShadowColor    color.NRGBA

	// Drift is an optional noise flow; zero strength disables it.
	DriftStrength float64
	DriftScale    float64
}

// DefaultParams returns the stock network background tuning.
func DefaultParams() Params {
	return Params{
		Particles: 100,

		InitialSpeed: 1,
		MinSize:      1,
		MaxSize:      3,
		MinAlpha:     0.3,
		MaxAlpha:     1.0,

		MaxSpeed:        3,
		Damping:         0.97,
		InfluenceRadius: 120,
		RepelForce:      1.5,
		RepelScale:      0.3,
		GlowDecay:       0.85,

		NearAlphaBase:  0.8,
		NearAlphaBoost: 0.2,
		FarAlphaBase:   0.3,
		FarAlphaBoost:  0.5,

		LinkDistance:   120,
		HighlightRange: 150,
		LinkAlpha:      0.3,
		HighlightAlpha: 0.4,
		LinkWidth:      1,
		HighlightWidth: 1.5,
		Pairing:        PairingExhaustive,

		FadeAlpha:     0.1,
		ShadowBlur:    20,
		GlowThreshold: 0.1,

		ParticleColor:  color.NRGBA{R: 56, G: 189, B: 248, A: 255},
		HighlightColor: color.NRGBA{R: 0, G: 212, B: 255, A: 255},
		Background:     color.NRGBA{R: 2, G: 12, B: 27, A: 255},
		ShadowColor:    color.NRGBA{R: 56, G: 189, B: 248, A: 204},

		DriftScale: 0.005,
	}
}

// withAlpha returns c with its alpha replaced by a in [0, 1].
func withAlpha(c color.NRGBA, a float64) color.NRGBA {
	switch {
	case a <= 0:
		c.A = 0
	case a >= 1:
		c.A = 255
	default:
		c.A = uint8(a*255 + 0.5)
	}
	return c
}
