package field

import (
	"math/rand"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/olivierh59500/network-field-go/surface"
)

// State is the observable lifecycle state of a Field.
type State int

const (
	// Uninitialized means no surface was present; nothing ever runs.
	Uninitialized State = iota
	// Running means the field owns a surface and a particle set.
	Running
)

func (s State) String() string {
	if s == Running {
		return "running"
	}
	return "uninitialized"
}

// Frame reports what one step produced.
type Frame struct {
	Index       uint64
	Generation  uuid.UUID
	Links       int
	Highlighted int
}

// Field is the complete simulated system: the particles plus the shared
// pointer and bounds state. A nil *Field is uninitialized and every method
// on it is a no-op.
type Field struct {
	params Params
	surf   surface.Surface
	rng    *rand.Rand
	log    *zap.Logger
	drift  *drift

	width, height float64
	particles     []Particle
	pointer       Pointer

	generation uuid.UUID
	frame      uint64

	links []Link
	grid  grid
}

// Option configures a Field.
type Option func(*Field)

// WithRand sets the random source used for particle creation.
func WithRand(rng *rand.Rand) Option {
	return func(f *Field) { f.rng = rng }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(f *Field) { f.log = l }
}

// New creates a field sized to s. It returns nil when s is nil.
func New(s surface.Surface, p Params, opts ...Option) *Field {
	if s == nil {
		return nil
	}
	f := &Field{
		params: p,
		surf:   s,
		log:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.rng == nil {
		f.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	f.drift = newDrift(&f.params, f.rng.Int63())

	w, h := s.Size()
	f.width, f.height = float64(max(w, 0)), float64(max(h, 0))
	f.pointer = Pointer{X: f.width / 2, Y: f.height / 2}
	f.populate()
	return f
}

// State reports whether the field is running.
func (f *Field) State() State {
	if f == nil {
		return Uninitialized
	}
	return Running
}

// Params returns the field's tuning.
func (f *Field) Params() Params {
	if f == nil {
		return Params{}
	}
	return f.params
}

// Bounds returns the current surface dimensions.
func (f *Field) Bounds() (w, h float64) {
	if f == nil {
		return 0, 0
	}
	return f.width, f.height
}

// Pointer returns the last known pointer state.
func (f *Field) Pointer() Pointer {
	if f == nil {
		return Pointer{}
	}
	return f.pointer
}

// Generation identifies the current particle set.
func (f *Field) Generation() uuid.UUID {
	if f == nil {
		return uuid.Nil
	}
	return f.generation
}

// Particles returns a copy of the particle set.
func (f *Field) Particles() []Particle {
	if f == nil {
		return nil
	}
	return append([]Particle(nil), f.particles...)
}

// Resize resizes the surface and replaces the whole particle set with a new
// one spread over the new dimensions. Negative sizes are treated as zero.
func (f *Field) Resize(w, h int) {
	if f == nil {
		return
	}
	w, h = max(w, 0), max(h, 0)
	f.surf.SetSize(w, h)
	f.width, f.height = float64(w), float64(h)
	f.populate()
}

// Reset replaces the particle set at the current size.
func (f *Field) Reset() {
	if f == nil {
		return
	}
	f.populate()
}

// PointerMove records a pointer position and enables pointer forces.
func (f *Field) PointerMove(x, y float64) {
	if f == nil {
		return
	}
	f.pointer = Pointer{X: x, Y: y, Active: true}
}

// PointerLeave disables pointer forces until the next move.
func (f *Field) PointerLeave() {
	if f == nil {
		return
	}
	f.pointer.Active = false
}

func (f *Field) populate() {
	n := max(f.params.Particles, 0)
	f.particles = make([]Particle, n)
	for i := range f.particles {
		f.particles[i] = NewParticle(f.rng, f.width, f.height, &f.params)
	}
	f.generation = uuid.New()
	f.log.Debug("particle field populated",
		zap.Stringer("generation", f.generation),
		zap.Int("particles", n),
		zap.Float64("width", f.width),
		zap.Float64("height", f.height),
	)
}

func (f *Field) env() Env {
	e := Env{
		Width:   f.width,
		Height:  f.height,
		Pointer: f.pointer,
		Params:  &f.params,
	}
	if f.drift != nil {
		e.Drift = f.drift.at
	}
	return e
}

// Advance updates every particle in creation order.
func (f *Field) Advance() {
	if f == nil {
		return
	}
	env := f.env()
	for i := range f.particles {
		StepParticle(&f.particles[i], env)
	}
	if f.drift != nil {
		f.drift.tick()
	}
}

// Render paints the fade overlay, the particles and their links onto the
// field's surface and returns the frame report.
func (f *Field) Render() Frame {
	if f == nil {
		return Frame{}
	}
	p := &f.params
	f.surf.FillRect(0, 0, f.width, f.height, withAlpha(p.Background, p.FadeAlpha))

	for i := range f.particles {
		DrawParticle(f.surf, &f.particles[i], p)
	}

	f.links = f.computeLinks(f.links[:0])
	DrawLinks(f.surf, f.particles, f.links, p)

	fr := Frame{Index: f.frame, Generation: f.generation, Links: len(f.links)}
	for _, l := range f.links {
		if l.Highlight {
			fr.Highlighted++
		}
	}
	f.frame++
	return fr
}

// Step advances and renders one frame.
func (f *Field) Step() Frame {
	if f == nil {
		return Frame{}
	}
	f.Advance()
	return f.Render()
}

// Links computes the links for the current particle positions.
func (f *Field) Links() []Link {
	if f == nil {
		return nil
	}
	return f.computeLinks(nil)
}

func (f *Field) computeLinks(dst []Link) []Link {
	if f.params.Pairing == PairingGrid {
		return gridLinks(f.particles, f.width, f.height, f.pointer, &f.params, &f.grid, dst)
	}
	return ExhaustiveLinks(f.particles, f.pointer, &f.params, dst)
}
