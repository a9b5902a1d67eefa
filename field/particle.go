package field

import (
	"math"
	"math/rand"

	"github.com/olivierh59500/network-field-go/surface"
)

// Particle is one simulated point.
type Particle struct {
	X, Y           float64 // Position
	SpeedX, SpeedY float64 // Velocity per frame
	Size           float64 // Radius, fixed at creation
	Glow           float64 // Glow intensity in [0,1]
	Alpha          float64 // Render alpha of the particle color
}

// Pointer is the last known pointer position. Active is false until the
// pointer first moves and again after it leaves the surface.
type Pointer struct {
	X, Y   float64
	Active bool
}

// Env is the shared field state a particle step reads.
type Env struct {
	Width, Height float64
	Pointer       Pointer
	Params        *Params
	// Drift returns an extra acceleration at a position; nil disables it.
	Drift func(x, y float64) (ax, ay float64)
}

// NewParticle creates a particle at a random position within w×h.
func NewParticle(rng *rand.Rand, w, h float64, p *Params) Particle {
	return Particle{
		X:      rng.Float64() * w,
		Y:      rng.Float64() * h,
		Size:   p.MinSize + rng.Float64()*(p.MaxSize-p.MinSize),
		SpeedX: (rng.Float64()*2 - 1) * p.InitialSpeed,
		SpeedY: (rng.Float64()*2 - 1) * p.InitialSpeed,
		Alpha:  p.MinAlpha + rng.Float64()*(p.MaxAlpha-p.MinAlpha),
	}
}

// Speed returns the velocity magnitude.
func (pt Particle) Speed() float64 {
	return math.Hypot(pt.SpeedX, pt.SpeedY)
}

// StepParticle advances pt by one frame.
func StepParticle(pt *Particle, env Env) {
	p := env.Params

	pt.X += pt.SpeedX
	pt.Y += pt.SpeedY

	// Walls force the velocity inward, not just negate it, so a particle
	// pushed past an edge cannot stick there.
	if pt.X > env.Width {
		pt.SpeedX = -math.Abs(pt.SpeedX)
		pt.X = env.Width
	}
	if pt.X < 0 {
		pt.SpeedX = math.Abs(pt.SpeedX)
		pt.X = 0
	}
	if pt.Y > env.Height {
		pt.SpeedY = -math.Abs(pt.SpeedY)
		pt.Y = env.Height
	}
	if pt.Y < 0 {
		pt.SpeedY = math.Abs(pt.SpeedY)
		pt.Y = 0
	}

	if env.Pointer.Active {
		dx := env.Pointer.X - pt.X
		dy := env.Pointer.Y - pt.Y
		d := math.Sqrt(dx*dx + dy*dy)

		if d < p.InfluenceRadius {
			proximity := (p.InfluenceRadius - d) / p.InfluenceRadius
			angle := math.Atan2(dy, dx)
			force := proximity * p.RepelForce
			pt.SpeedX -= math.Cos(angle) * force * p.RepelScale
			pt.SpeedY -= math.Sin(angle) * force * p.RepelScale

			pt.Glow = math.Min(1, math.Max(pt.Glow, proximity))
			pt.Alpha = math.Min(1, p.NearAlphaBase+pt.Glow*p.NearAlphaBoost)
		} else {
			pt.Glow *= p.GlowDecay
			pt.Alpha = math.Min(1, p.FarAlphaBase+pt.Glow*p.FarAlphaBoost)
		}
	}

	if env.Drift != nil {
		ax, ay := env.Drift(pt.X, pt.Y)
		pt.SpeedX += ax
		pt.SpeedY += ay
	}

	if s := pt.Speed(); s > p.MaxSpeed {
		pt.SpeedX = pt.SpeedX / s * p.MaxSpeed
		pt.SpeedY = pt.SpeedY / s * p.MaxSpeed
	}

	pt.SpeedX *= p.Damping
	pt.SpeedY *= p.Damping
}

// DrawParticle paints pt, adding a glow shadow when it is lit.
func DrawParticle(s surface.Surface, pt *Particle, p *Params) {
	c := withAlpha(p.ParticleColor, pt.Alpha)
	s.FillCircle(pt.X, pt.Y, pt.Size, c)

	if pt.Glow > p.GlowThreshold {
		s.SetShadow(p.ShadowBlur*pt.Glow, p.ShadowColor)
		s.FillCircle(pt.X, pt.Y, pt.Size, c)
		s.SetShadow(0, p.ShadowColor)
	}
}
