package field

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olivierh59500/network-field-go/surface"
)

const eps = 1e-9

func testEnv(w, h float64, ptr Pointer) Env {
	p := DefaultParams()
	return Env{Width: w, Height: h, Pointer: ptr, Params: &p}
}

func TestNewParticleRanges(t *testing.T) {
	p := DefaultParams()
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 1000; i++ {
		pt := NewParticle(rng, 800, 600, &p)
		require.True(t, pt.X >= 0 && pt.X <= 800)
		require.True(t, pt.Y >= 0 && pt.Y <= 600)
		require.True(t, pt.SpeedX >= -1 && pt.SpeedX <= 1)
		require.True(t, pt.SpeedY >= -1 && pt.SpeedY <= 1)
		require.True(t, pt.Size >= 1 && pt.Size <= 3)
		require.True(t, pt.Alpha >= 0.3 && pt.Alpha <= 1)
		require.Zero(t, pt.Glow)
	}
}

func TestStepParticleBoundsAndSpeedCap(t *testing.T) {
	const w, h = 400.0, 300.0
	p := DefaultParams()
	rng := rand.New(rand.NewSource(7))
	ps := make([]Particle, 50)
	for i := range ps {
		ps[i] = NewParticle(rng, w, h, &p)
	}

	for step := 0; step < 2000; step++ {
		// Sweep the pointer through the field so repulsion keeps kicking in.
		a := float64(step) * 0.05
		env := testEnv(w, h, Pointer{X: w/2 + 150*math.Cos(a), Y: h/2 + 100*math.Sin(a), Active: step%300 < 250})
		for i := range ps {
			StepParticle(&ps[i], env)
			pt := ps[i]
			require.True(t, pt.X >= 0 && pt.X <= w, "x out of bounds at step %d: %f", step, pt.X)
			require.True(t, pt.Y >= 0 && pt.Y <= h, "y out of bounds at step %d: %f", step, pt.Y)
			require.LessOrEqual(t, pt.Speed(), p.MaxSpeed+eps)
			require.True(t, pt.Alpha <= 1 && pt.Alpha >= 0)
		}
	}
}

func TestStepParticleWallReflection(t *testing.T) {
	const w, h = 200.0, 100.0
	tests := []struct {
		name       string
		in         Particle
		wantX      float64
		wantY      float64
		wantSignVX float64
		wantSignVY float64
	}{
		{"past right moving out", Particle{X: w + 5, Y: 50, SpeedX: 2}, w, 50, -1, 0},
		{"past right already moving in", Particle{X: w + 5, Y: 50, SpeedX: -1}, w, 50, -1, 0},
		{"past left", Particle{X: -5, Y: 50, SpeedX: -1}, 0, 50, 1, 0},
		{"past bottom", Particle{X: 50, Y: h + 3, SpeedY: 1}, 50, h, 0, -1},
		{"past top", Particle{X: 50, Y: -3, SpeedY: -2}, 50, 0, 0, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pt := tt.in
			StepParticle(&pt, testEnv(w, h, Pointer{}))
			assert.Equal(t, tt.wantX, pt.X)
			assert.Equal(t, tt.wantY, pt.Y)
			if tt.wantSignVX != 0 {
				assert.Equal(t, tt.wantSignVX, math.Copysign(1, pt.SpeedX))
			}
			if tt.wantSignVY != 0 {
				assert.Equal(t, tt.wantSignVY, math.Copysign(1, pt.SpeedY))
			}
		})
	}
}

func TestStepParticleSpeedCapPreservesDirection(t *testing.T) {
	pt := Particle{X: 100, Y: 100, SpeedX: 30, SpeedY: 40}
	StepParticle(&pt, testEnv(1000, 1000, Pointer{}))

	assert.InDelta(t, 1.8*0.97, pt.SpeedX, eps)
	assert.InDelta(t, 2.4*0.97, pt.SpeedY, eps)
	assert.InDelta(t, 3*0.97, pt.Speed(), eps)
}

func TestStepParticleDampingOnly(t *testing.T) {
	pt := Particle{X: 500, Y: 500, SpeedX: 1, SpeedY: -0.8, Glow: 0.4, Alpha: 0.6}
	env := testEnv(1000, 1000, Pointer{X: 500, Y: 500, Active: false})

	prev := pt.Speed()
	for i := 0; i < 200; i++ {
		StepParticle(&pt, env)
		require.Less(t, pt.Speed(), prev, "speed must strictly decrease at step %d", i)
		prev = pt.Speed()
	}
	assert.Less(t, pt.Speed(), 0.01)

	// Without pointer activity glow and alpha are left alone.
	assert.Equal(t, 0.4, pt.Glow)
	assert.Equal(t, 0.6, pt.Alpha)
}

func TestStepParticlePointerRepulsion(t *testing.T) {
	pt := Particle{X: 100, Y: 100}
	StepParticle(&pt, testEnv(1000, 1000, Pointer{X: 130, Y: 100, Active: true}))

	// proximity = 90/120, force = 0.75*1.5, kick = force*0.3, then damping.
	assert.InDelta(t, -0.75*1.5*0.3*0.97, pt.SpeedX, eps)
	assert.InDelta(t, 0, pt.SpeedY, eps)
	assert.InDelta(t, 0.75, pt.Glow, eps)
	assert.InDelta(t, 0.8+0.75*0.2, pt.Alpha, eps)
}

func TestStepParticleGlowDecay(t *testing.T) {
	pt := Particle{X: 100, Y: 100, Glow: 0.8, Alpha: 1}
	env := testEnv(1000, 1000, Pointer{X: 900, Y: 900, Active: true})

	StepParticle(&pt, env)
	assert.InDelta(t, 0.68, pt.Glow, eps)
	assert.InDelta(t, 0.3+0.68*0.5, pt.Alpha, eps)

	prev := pt.Glow
	for i := 0; i < 50; i++ {
		StepParticle(&pt, env)
		require.LessOrEqual(t, pt.Glow, prev)
		require.GreaterOrEqual(t, pt.Alpha, 0.3)
		require.LessOrEqual(t, pt.Alpha, 1.0)
		prev = pt.Glow
	}
}

func TestStepParticleGlowKeepsMaximum(t *testing.T) {
	pt := Particle{X: 100, Y: 100, Glow: 0.9}
	StepParticle(&pt, testEnv(1000, 1000, Pointer{X: 200, Y: 100, Active: true}))
	assert.Equal(t, 0.9, pt.Glow)
	assert.InDelta(t, 0.98, pt.Alpha, eps)
}

func TestDrawParticle(t *testing.T) {
	p := DefaultParams()

	t.Run("dim particle paints once", func(t *testing.T) {
		rec := surface.NewRecorder(100, 100)
		pt := Particle{X: 10, Y: 20, Size: 2, Alpha: 0.5}
		DrawParticle(rec, &pt, &p)

		require.Len(t, rec.Ops, 1)
		op := rec.Ops[0]
		assert.Equal(t, surface.OpFillCircle, op.Kind)
		assert.Equal(t, []float64{10, 20, 2}, op.Args)
		assert.Equal(t, uint8(128), op.Color.A)
		assert.Zero(t, op.Shadow)
	})

	t.Run("glowing particle repaints with shadow and clears it", func(t *testing.T) {
		rec := surface.NewRecorder(100, 100)
		pt := Particle{X: 10, Y: 20, Size: 2, Alpha: 1, Glow: 0.5}
		DrawParticle(rec, &pt, &p)

		kinds := make([]surface.OpKind, len(rec.Ops))
		for i, op := range rec.Ops {
			kinds[i] = op.Kind
		}
		assert.Equal(t, []surface.OpKind{
			surface.OpFillCircle, surface.OpSetShadow, surface.OpFillCircle, surface.OpSetShadow,
		}, kinds)
		assert.InDelta(t, 10, rec.Ops[2].Shadow, eps)
		assert.Zero(t, rec.Ops[3].Args[0])

		// The shadow must not leak into the next paint.
		rec.FillCircle(0, 0, 1, p.ParticleColor)
		assert.Zero(t, rec.Ops[len(rec.Ops)-1].Shadow)
	})
}
