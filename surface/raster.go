package surface

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/vector"
)

// circleSegments is the polygon resolution used for circles.
const circleSegments = 24

// Raster is a Surface backed by an in-memory RGBA buffer.
type Raster struct {
	img *image.RGBA
	z   *vector.Rasterizer

	shadowBlur  float64
	shadowColor color.NRGBA
}

// NewRaster allocates a w×h raster. Non-positive sizes yield an empty buffer
// that ignores all drawing.
func NewRaster(w, h int) *Raster {
	r := &Raster{}
	r.SetSize(w, h)
	return r
}

func (r *Raster) Size() (int, int) {
	b := r.img.Bounds()
	return b.Dx(), b.Dy()
}

// SetSize reallocates the backing buffer. Previous contents are discarded.
func (r *Raster) SetSize(w, h int) {
	w, h = max(w, 0), max(h, 0)
	r.img = image.NewRGBA(image.Rect(0, 0, w, h))
	r.z = vector.NewRasterizer(w, h)
	r.z.DrawOp = draw.Over
}

// Image exposes the backing buffer.
func (r *Raster) Image() *image.RGBA { return r.img }

func (r *Raster) empty() bool {
	b := r.img.Bounds()
	return b.Dx() == 0 || b.Dy() == 0
}

func (r *Raster) FillRect(x, y, w, h float64, c color.NRGBA) {
	if r.empty() || c.A == 0 {
		return
	}
	rect := image.Rect(int(math.Floor(x)), int(math.Floor(y)), int(math.Ceil(x+w)), int(math.Ceil(y+h)))
	draw.Draw(r.img, rect.Intersect(r.img.Bounds()), image.NewUniform(c), image.Point{}, draw.Over)
}

func (r *Raster) FillCircle(cx, cy, radius float64, c color.NRGBA) {
	if r.empty() {
		return
	}
	for _, ring := range ShadowRings(radius, r.shadowBlur, r.shadowColor) {
		r.fillPolygon(circlePath(cx, cy, ring.Radius), ring.Color)
	}
	r.fillPolygon(circlePath(cx, cy, radius), c)
}

func (r *Raster) StrokeLine(x0, y0, x1, y1, width float64, c color.NRGBA) {
	if r.empty() {
		return
	}
	dx, dy := x1-x0, y1-y0
	l := math.Hypot(dx, dy)
	if l == 0 {
		return
	}
	// Unit normal scaled to half the stroke width.
	nx, ny := -dy/l*width/2, dx/l*width/2
	r.fillPolygon([][2]float64{
		{x0 + nx, y0 + ny},
		{x1 + nx, y1 + ny},
		{x1 - nx, y1 - ny},
		{x0 - nx, y0 - ny},
	}, c)
}

func (r *Raster) SetShadow(blur float64, c color.NRGBA) {
	if blur <= 0 {
		r.shadowBlur, r.shadowColor = 0, color.NRGBA{}
		return
	}
	r.shadowBlur, r.shadowColor = blur, c
}

// WritePNG encodes the current buffer as PNG.
func (r *Raster) WritePNG(w io.Writer) error {
	if err := png.Encode(w, r.img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

func (r *Raster) fillPolygon(pts [][2]float64, c color.NRGBA) {
	if len(pts) < 3 || c.A == 0 {
		return
	}
	b := r.img.Bounds()
	r.z.Reset(b.Dx(), b.Dy())
	r.z.DrawOp = draw.Over
	r.z.MoveTo(float32(pts[0][0]), float32(pts[0][1]))
	for _, p := range pts[1:] {
		r.z.LineTo(float32(p[0]), float32(p[1]))
	}
	r.z.ClosePath()
	r.z.Draw(r.img, b, image.NewUniform(c), image.Point{})
}

func circlePath(cx, cy, radius float64) [][2]float64 {
	pts := make([][2]float64, circleSegments)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / circleSegments
		pts[i] = [2]float64{cx + radius*math.Cos(a), cy + radius*math.Sin(a)}
	}
	return pts
}
