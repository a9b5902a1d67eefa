// Package surface defines the drawing target the particle field renders onto
// and provides an in-memory raster and a call recorder.
package surface

import (
	"image/color"
	"math"
)

// Surface is a 2D drawing context bound to a sized rectangular buffer.
type Surface interface {
	Size() (w, h int)
	SetSize(w, h int)
	FillRect(x, y, w, h float64, c color.NRGBA)
	// FillCircle paints a filled circle, including the current shadow.
	FillCircle(cx, cy, r float64, c color.NRGBA)
	StrokeLine(x0, y0, x1, y1, width float64, c color.NRGBA)
	// SetShadow configures the shadow for subsequent fills. A blur of zero
	// or less clears it.
	SetShadow(blur float64, c color.NRGBA)
}

// Ring is one translucent band of an emulated shadow.
type Ring struct {
	Radius float64
	Color  color.NRGBA
}

// shadowSteps is the number of rings used to approximate a blur.
const shadowSteps = 4

// ShadowRings approximates a blurred shadow around a circle of radius r as
// concentric rings, widest and faintest first, so they can be painted in
// order underneath the circle itself.
func ShadowRings(r, blur float64, c color.NRGBA) []Ring {
	if blur <= 0 || c.A == 0 {
		return nil
	}
	rings := make([]Ring, 0, shadowSteps)
	for i := shadowSteps; i >= 1; i-- {
		k := float64(i) / shadowSteps
		a := float64(c.A) * (1 - k + 1.0/shadowSteps) / shadowSteps
		rc := c
		rc.A = uint8(math.Min(255, a))
		rings = append(rings, Ring{Radius: r + blur*k*0.5, Color: rc})
	}
	return rings
}
