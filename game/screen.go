package game

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/olivierh59500/network-field-go/surface"
)

// Screen adapts an offscreen ebiten image to surface.Surface. The field
// paints onto it once per tick and Draw presents it, so the number of fades
// per frame does not depend on the display refresh rate.
type Screen struct {
	canvas *ebiten.Image
	w, h   int

	shadowBlur  float64
	shadowColor color.NRGBA
}

var _ surface.Surface = (*Screen)(nil)

// NewScreen returns a screen of the given logical size. The canvas is
// allocated on first use.
func NewScreen(w, h int) *Screen {
	return &Screen{w: max(w, 0), h: max(h, 0)}
}

func (s *Screen) Size() (int, int) { return s.w, s.h }

// SetSize drops the canvas. The next draw call allocates one at the new
// size.
func (s *Screen) SetSize(w, h int) {
	s.w, s.h = max(w, 0), max(h, 0)
	if s.canvas != nil {
		s.canvas.Deallocate()
		s.canvas = nil
	}
}

// Image returns the canvas, or nil when nothing has been painted yet.
func (s *Screen) Image() *ebiten.Image { return s.canvas }

// target returns the canvas, allocating it when needed. It is nil for a
// zero-area screen.
func (s *Screen) target() *ebiten.Image {
	if s.canvas == nil && s.w > 0 && s.h > 0 {
		s.canvas = ebiten.NewImage(s.w, s.h)
	}
	return s.canvas
}

func (s *Screen) FillRect(x, y, w, h float64, c color.NRGBA) {
	dst := s.target()
	if dst == nil {
		return
	}
	vector.DrawFilledRect(dst, float32(x), float32(y), float32(w), float32(h), c, false)
}

func (s *Screen) FillCircle(cx, cy, r float64, c color.NRGBA) {
	dst := s.target()
	if dst == nil {
		return
	}
	for _, ring := range surface.ShadowRings(r, s.shadowBlur, s.shadowColor) {
		vector.DrawFilledCircle(dst, float32(cx), float32(cy), float32(ring.Radius), ring.Color, true)
	}
	vector.DrawFilledCircle(dst, float32(cx), float32(cy), float32(r), c, true)
}

func (s *Screen) StrokeLine(x0, y0, x1, y1, width float64, c color.NRGBA) {
	dst := s.target()
	if dst == nil {
		return
	}
	vector.StrokeLine(dst, float32(x0), float32(y0), float32(x1), float32(y1), float32(width), c, true)
}

func (s *Screen) SetShadow(blur float64, c color.NRGBA) {
	if blur <= 0 {
		s.shadowBlur, s.shadowColor = 0, color.NRGBA{}
		return
	}
	s.shadowBlur, s.shadowColor = blur, c
}
