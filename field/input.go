package field

import "math"

// PointerTracker turns raw cursor samples into move and leave events. Hosts
// that only expose a polled cursor position use it to recover the event
// stream a pointer device would deliver.
type PointerTracker struct {
	x, y   float64
	seen   bool
	inside bool
}

// Observe feeds one cursor sample. The first sample only establishes a
// baseline; a move is reported once the position actually changes.
func (t *PointerTracker) Observe(f *Field, x, y float64, inside bool) {
	if !inside {
		if t.inside {
			f.PointerLeave()
		}
		t.inside = false
		return
	}

	if !t.seen {
		t.x, t.y, t.seen, t.inside = x, y, true, true
		return
	}
	if x != t.x || y != t.y {
		f.PointerMove(x, y)
		t.x, t.y = x, y
	}
	t.inside = true
}

// OrbitPointer is a scripted InputSource that sweeps the pointer around the
// centre of the field.
type OrbitPointer struct {
	// Radius as a fraction of the smaller field dimension.
	Radius float64
	// Period in frames for one revolution.
	Period int

	frame int
}

func (o *OrbitPointer) Poll(f *Field) {
	w, h := f.Bounds()
	period := o.Period
	if period <= 0 {
		period = 240
	}
	a := 2 * math.Pi * float64(o.frame%period) / float64(period)
	r := o.Radius * math.Min(w, h)
	f.PointerMove(w/2+r*math.Cos(a), h/2+r*math.Sin(a))
	o.frame++
}
