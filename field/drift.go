package field

import (
	"math"

	"github.com/aquilax/go-perlin"
)

// Perlin parameters for the drift flow.
const (
	driftAlpha  = 2
	driftBeta   = 2
	driftOctave = 3
	driftTime   = 0.01 // noise z advance per frame
)

// drift is a slowly evolving noise flow nudging particles along.
type drift struct {
	noise    *perlin.Perlin
	strength float64
	scale    float64
	t        float64
}

func newDrift(p *Params, seed int64) *drift {
	if p.DriftStrength <= 0 {
		return nil
	}
	return &drift{
		noise:    perlin.NewPerlin(driftAlpha, driftBeta, driftOctave, seed),
		strength: p.DriftStrength,
		scale:    p.DriftScale,
	}
}

func (d *drift) tick() { d.t += driftTime }

// at returns the drift acceleration at (x, y).
func (d *drift) at(x, y float64) (float64, float64) {
	n := d.noise.Noise3D(x*d.scale, y*d.scale, d.t)
	// Noise in [-1, 1] maps onto a full turn.
	angle := (n + 1) * math.Pi
	return math.Cos(angle) * d.strength, math.Sin(angle) * d.strength
}
