package field

import (
	"math"

	"github.com/olivierh59500/network-field-go/surface"
)

// Link is a connection between particles A < B that are closer than the
// link distance.
type Link struct {
	A, B      int
	Distance  float64
	Alpha     float64
	Highlight bool
}

// ExhaustiveLinks checks every unordered pair of ps and appends the links to
// dst in (A, B) order.
func ExhaustiveLinks(ps []Particle, ptr Pointer, p *Params, dst []Link) []Link {
	for i := 0; i < len(ps); i++ {
		for j := i + 1; j < len(ps); j++ {
			if l, ok := linkBetween(ps, i, j, ptr, p); ok {
				dst = append(dst, l)
			}
		}
	}
	return dst
}

func linkBetween(ps []Particle, i, j int, ptr Pointer, p *Params) (Link, bool) {
	a, b := &ps[i], &ps[j]
	dx := a.X - b.X
	dy := a.Y - b.Y
	d := math.Sqrt(dx*dx + dy*dy)
	if d >= p.LinkDistance {
		return Link{}, false
	}

	opacity := 1 - d/p.LinkDistance
	l := Link{A: i, B: j, Distance: d, Alpha: opacity * p.LinkAlpha}
	if ptr.Active && (nearPointer(a, ptr, p.HighlightRange) || nearPointer(b, ptr, p.HighlightRange)) {
		l.Highlight = true
		l.Alpha = opacity * p.HighlightAlpha
	}
	return l, true
}

func nearPointer(pt *Particle, ptr Pointer, r float64) bool {
	return math.Hypot(ptr.X-pt.X, ptr.Y-pt.Y) < r
}

// DrawLinks strokes every link. A highlighted link replaces its base stroke
// with a wider one in the highlight color.
func DrawLinks(s surface.Surface, ps []Particle, links []Link, p *Params) {
	for _, l := range links {
		a, b := &ps[l.A], &ps[l.B]
		if l.Highlight {
			s.StrokeLine(a.X, a.Y, b.X, b.Y, p.HighlightWidth, withAlpha(p.HighlightColor, l.Alpha))
			continue
		}
		s.StrokeLine(a.X, a.Y, b.X, b.Y, p.LinkWidth, withAlpha(p.ParticleColor, l.Alpha))
	}
}
