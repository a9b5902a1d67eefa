package surface

import "image/color"

// OpKind identifies a recorded drawing call.
type OpKind int

const (
	OpFillRect OpKind = iota
	OpFillCircle
	OpStrokeLine
	OpSetShadow
	OpSetSize
)

func (k OpKind) String() string {
	switch k {
	case OpFillRect:
		return "fill-rect"
	case OpFillCircle:
		return "fill-circle"
	case OpStrokeLine:
		return "stroke-line"
	case OpSetShadow:
		return "set-shadow"
	case OpSetSize:
		return "set-size"
	}
	return "unknown"
}

// Op is one recorded call. Args holds the numeric arguments in call order.
type Op struct {
	Kind  OpKind
	Args  []float64
	Color color.NRGBA
	// Shadow is the blur in effect when a circle was filled.
	Shadow float64
}

// Recorder is a Surface that records calls instead of drawing them.
type Recorder struct {
	W, H int
	Ops  []Op

	shadow float64
}

// NewRecorder returns a recorder reporting the given size.
func NewRecorder(w, h int) *Recorder {
	return &Recorder{W: w, H: h}
}

func (r *Recorder) Size() (int, int) { return r.W, r.H }

func (r *Recorder) SetSize(w, h int) {
	r.W, r.H = w, h
	r.Ops = append(r.Ops, Op{Kind: OpSetSize, Args: []float64{float64(w), float64(h)}})
}

func (r *Recorder) FillRect(x, y, w, h float64, c color.NRGBA) {
	r.Ops = append(r.Ops, Op{Kind: OpFillRect, Args: []float64{x, y, w, h}, Color: c})
}

func (r *Recorder) FillCircle(cx, cy, radius float64, c color.NRGBA) {
	r.Ops = append(r.Ops, Op{Kind: OpFillCircle, Args: []float64{cx, cy, radius}, Color: c, Shadow: r.shadow})
}

func (r *Recorder) StrokeLine(x0, y0, x1, y1, width float64, c color.NRGBA) {
	r.Ops = append(r.Ops, Op{Kind: OpStrokeLine, Args: []float64{x0, y0, x1, y1, width}, Color: c})
}

func (r *Recorder) SetShadow(blur float64, c color.NRGBA) {
	r.shadow = max(blur, 0)
	r.Ops = append(r.Ops, Op{Kind: OpSetShadow, Args: []float64{blur}, Color: c})
}

// Reset drops recorded calls, keeping the size and shadow state.
func (r *Recorder) Reset() { r.Ops = r.Ops[:0] }

// Count returns how many calls of kind k were recorded.
func (r *Recorder) Count(k OpKind) int {
	n := 0
	for _, op := range r.Ops {
		if op.Kind == k {
			n++
		}
	}
	return n
}

// Filter returns the recorded calls of kind k in order.
func (r *Recorder) Filter(k OpKind) []Op {
	var out []Op
	for _, op := range r.Ops {
		if op.Kind == k {
			out = append(out, op)
		}
	}
	return out
}
