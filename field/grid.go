package field

import (
	"cmp"
	"slices"
)

// grid buckets particle indices into square cells of the link distance, so a
// particle only needs to be compared against its own and the 8 surrounding
// cells.
type grid struct {
	cellSize   float64
	cols, rows int
	cells      [][]int
}

func (g *grid) rebuild(ps []Particle, w, h, cellSize float64) {
	cols := int(max(w, 0)/cellSize) + 1
	rows := int(max(h, 0)/cellSize) + 1
	if g.cellSize != cellSize || g.cols != cols || g.rows != rows {
		g.cellSize, g.cols, g.rows = cellSize, cols, rows
		g.cells = make([][]int, cols*rows)
	}
	for i := range g.cells {
		g.cells[i] = g.cells[i][:0]
	}
	for i := range ps {
		c, r := g.cell(ps[i].X, ps[i].Y)
		idx := r*g.cols + c
		g.cells[idx] = append(g.cells[idx], i)
	}
}

func (g *grid) cell(x, y float64) (int, int) {
	c := min(max(int(x/g.cellSize), 0), g.cols-1)
	r := min(max(int(y/g.cellSize), 0), g.rows-1)
	return c, r
}

// gridLinks returns the same links as ExhaustiveLinks, in the same order,
// using g to skip pairs in non-adjacent cells. A nil g uses a scratch grid.
func gridLinks(ps []Particle, w, h float64, ptr Pointer, p *Params, g *grid, dst []Link) []Link {
	if g == nil {
		g = &grid{}
	}
	g.rebuild(ps, w, h, p.LinkDistance)
	start := len(dst)

	for i := range ps {
		c, r := g.cell(ps[i].X, ps[i].Y)
		for dr := -1; dr <= 1; dr++ {
			for dc := -1; dc <= 1; dc++ {
				nc, nr := c+dc, r+dr
				if nc < 0 || nr < 0 || nc >= g.cols || nr >= g.rows {
					continue
				}
				for _, j := range g.cells[nr*g.cols+nc] {
					if j <= i {
						continue
					}
					if l, ok := linkBetween(ps, i, j, ptr, p); ok {
						dst = append(dst, l)
					}
				}
			}
		}
	}

	slices.SortFunc(dst[start:], func(a, b Link) int {
		if c := cmp.Compare(a.A, b.A); c != 0 {
			return c
		}
		return cmp.Compare(a.B, b.B)
	})
	return dst
}
