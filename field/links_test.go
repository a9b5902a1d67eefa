package field

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olivierh59500/network-field-go/surface"
)

func TestExhaustiveLinks(t *testing.T) {
	p := DefaultParams()

	tests := []struct {
		name      string
		ps        []Particle
		ptr       Pointer
		wantLinks int
		wantAlpha float64
		wantHigh  bool
	}{
		{
			name:      "60 apart",
			ps:        []Particle{{X: 100, Y: 100}, {X: 160, Y: 100}},
			wantLinks: 1,
			wantAlpha: 0.15,
		},
		{
			name: "200 apart",
			ps:   []Particle{{X: 0, Y: 0}, {X: 200, Y: 0}},
		},
		{
			name: "exactly at threshold",
			ps:   []Particle{{X: 0, Y: 0}, {X: 120, Y: 0}},
		},
		{
			name:      "inactive pointer does not highlight",
			ps:        []Particle{{X: 100, Y: 100}, {X: 160, Y: 100}},
			ptr:       Pointer{X: 100, Y: 100},
			wantLinks: 1,
			wantAlpha: 0.15,
		},
		{
			name:      "pointer near one endpoint",
			ps:        []Particle{{X: 100, Y: 100}, {X: 160, Y: 100}},
			ptr:       Pointer{X: 300, Y: 100, Active: true},
			wantLinks: 1,
			wantAlpha: 0.5 * 0.4,
			wantHigh:  true,
		},
		{
			name:      "pointer beyond highlight range",
			ps:        []Particle{{X: 100, Y: 100}, {X: 160, Y: 100}},
			ptr:       Pointer{X: 400, Y: 100, Active: true},
			wantLinks: 1,
			wantAlpha: 0.15,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			links := ExhaustiveLinks(tt.ps, tt.ptr, &p, nil)
			require.Len(t, links, tt.wantLinks)
			if tt.wantLinks == 0 {
				return
			}
			assert.InDelta(t, tt.wantAlpha, links[0].Alpha, eps)
			assert.Equal(t, tt.wantHigh, links[0].Highlight)
		})
	}
}

func TestExhaustiveLinksCoversAllPairs(t *testing.T) {
	p := DefaultParams()
	// Four particles within a 40 unit square are all mutually linked.
	ps := []Particle{{X: 0, Y: 0}, {X: 40, Y: 0}, {X: 0, Y: 40}, {X: 40, Y: 40}}
	links := ExhaustiveLinks(ps, Pointer{}, &p, nil)
	require.Len(t, links, 6)

	var pairs [][2]int
	for _, l := range links {
		pairs = append(pairs, [2]int{l.A, l.B})
	}
	assert.Equal(t, [][2]int{{0, 1}, {0, 2}, {0, 3}, {1, 2}, {1, 3}, {2, 3}}, pairs)
}

func TestGridLinksMatchesExhaustive(t *testing.T) {
	p := DefaultParams()
	for seed := int64(1); seed <= 20; seed++ {
		rng := rand.New(rand.NewSource(seed))
		w, h := 200+rng.Float64()*1200, 200+rng.Float64()*900
		ps := make([]Particle, 150)
		for i := range ps {
			ps[i] = NewParticle(rng, w, h, &p)
		}
		// Pin a few particles to the far edges to exercise the last cells.
		ps[0].X, ps[1].Y = w, h
		ptr := Pointer{X: rng.Float64() * w, Y: rng.Float64() * h, Active: seed%2 == 0}

		var g grid
		want := ExhaustiveLinks(ps, ptr, &p, nil)
		got := gridLinks(ps, w, h, ptr, &p, &g, nil)
		require.Equal(t, want, got, "seed %d", seed)
	}
}

func TestDrawLinksHighlightReplacesBase(t *testing.T) {
	p := DefaultParams()
	ps := []Particle{{X: 0, Y: 0}, {X: 60, Y: 0}, {X: 500, Y: 500}, {X: 530, Y: 500}}
	links := []Link{
		{A: 0, B: 1, Alpha: 0.15},
		{A: 2, B: 3, Alpha: 0.2, Highlight: true},
	}

	rec := surface.NewRecorder(1000, 1000)
	DrawLinks(rec, ps, links, &p)

	strokes := rec.Filter(surface.OpStrokeLine)
	require.Len(t, strokes, 2)

	assert.Equal(t, []float64{0, 0, 60, 0, 1}, strokes[0].Args)
	assert.Equal(t, p.ParticleColor.R, strokes[0].Color.R)
	assert.Equal(t, uint8(38), strokes[0].Color.A)

	assert.Equal(t, []float64{500, 500, 530, 500, 1.5}, strokes[1].Args)
	assert.Equal(t, p.HighlightColor.G, strokes[1].Color.G)
	assert.Equal(t, uint8(51), strokes[1].Color.A)
}

func TestGridLinksWithoutScratchGrid(t *testing.T) {
	p := DefaultParams()
	ps := []Particle{{X: 10, Y: 10}, {X: 70, Y: 10}, {X: 90, Y: 90}}

	var links []Link
	require.NotPanics(t, func() { links = gridLinks(ps, 100, 100, Pointer{}, &p, nil, nil) })
	assert.Equal(t, ExhaustiveLinks(ps, Pointer{}, &p, nil), links)
}
