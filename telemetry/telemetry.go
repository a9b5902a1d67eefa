// Package telemetry samples the particle field frame by frame and exports
// the series as CSV or an ASCII chart.
package telemetry

import (
	"fmt"
	"io"

	"github.com/gocarina/gocsv"
	"github.com/guptarohit/asciigraph"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/olivierh59500/network-field-go/field"
)

// Sample is one frame's measurements.
type Sample struct {
	Frame       uint64  `csv:"frame"`
	Generation  string  `csv:"generation"`
	Particles   int     `csv:"particles"`
	Links       int     `csv:"links"`
	Highlighted int     `csv:"highlighted"`
	MeanSpeed   float64 `csv:"mean_speed"`
	MaxSpeed    float64 `csv:"max_speed"`
	MeanGlow    float64 `csv:"mean_glow"`
	PointerOn   bool    `csv:"pointer_active"`
}

// Metric selects a series for plotting.
type Metric string

const (
	MetricLinks       Metric = "links"
	MetricHighlighted Metric = "highlighted"
	MetricMeanSpeed   Metric = "mean_speed"
	MetricMaxSpeed    Metric = "max_speed"
	MetricMeanGlow    Metric = "mean_glow"
)

// Collector accumulates samples. It is meant to be fed from a loop frame
// hook and is not safe for concurrent use.
type Collector struct {
	samples []Sample

	speeds []float64
	glows  []float64
}

// NewCollector returns an empty collector.
func NewCollector() *Collector {
	return &Collector{}
}

// Record samples f after frame fr. Its signature matches field.Loop.OnFrame.
func (c *Collector) Record(f *field.Field, fr field.Frame) {
	ps := f.Particles()
	c.speeds = c.speeds[:0]
	c.glows = c.glows[:0]
	for _, p := range ps {
		c.speeds = append(c.speeds, p.Speed())
		c.glows = append(c.glows, p.Glow)
	}

	s := Sample{
		Frame:       fr.Index,
		Generation:  fr.Generation.String(),
		Particles:   len(ps),
		Links:       fr.Links,
		Highlighted: fr.Highlighted,
		PointerOn:   f.Pointer().Active,
	}
	if len(ps) > 0 {
		s.MeanSpeed = stat.Mean(c.speeds, nil)
		s.MaxSpeed = floats.Max(c.speeds)
		s.MeanGlow = stat.Mean(c.glows, nil)
	}
	c.samples = append(c.samples, s)
}

// Samples returns the recorded samples.
func (c *Collector) Samples() []Sample {
	return c.samples
}

// Series extracts one metric across all samples.
func (c *Collector) Series(m Metric) ([]float64, error) {
	out := make([]float64, len(c.samples))
	for i, s := range c.samples {
		switch m {
		case MetricLinks:
			out[i] = float64(s.Links)
		case MetricHighlighted:
			out[i] = float64(s.Highlighted)
		case MetricMeanSpeed:
			out[i] = s.MeanSpeed
		case MetricMaxSpeed:
			out[i] = s.MaxSpeed
		case MetricMeanGlow:
			out[i] = s.MeanGlow
		default:
			return nil, fmt.Errorf("unknown metric %q", m)
		}
	}
	return out, nil
}

// Summary holds aggregate statistics of one metric.
type Summary struct {
	Mean, StdDev, Min, Max float64
}

// Summarize aggregates a metric over every sample.
func (c *Collector) Summarize(m Metric) (Summary, error) {
	xs, err := c.Series(m)
	if err != nil {
		return Summary{}, err
	}
	if len(xs) == 0 {
		return Summary{}, nil
	}
	mean, std := stat.MeanStdDev(xs, nil)
	return Summary{Mean: mean, StdDev: std, Min: floats.Min(xs), Max: floats.Max(xs)}, nil
}

// WriteCSV writes all samples with a header row.
func (c *Collector) WriteCSV(w io.Writer) error {
	if err := gocsv.Marshal(c.samples, w); err != nil {
		return fmt.Errorf("write telemetry csv: %w", err)
	}
	return nil
}

// Plot renders a metric as an ASCII line chart.
func (c *Collector) Plot(m Metric, width, height int) (string, error) {
	xs, err := c.Series(m)
	if err != nil {
		return "", err
	}
	if len(xs) == 0 {
		return "", nil
	}
	return asciigraph.Plot(xs,
		asciigraph.Width(width),
		asciigraph.Height(height),
		asciigraph.Caption(fmt.Sprintf("%s over %d frames", m, len(xs))),
	), nil
}
