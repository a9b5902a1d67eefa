// Package game hosts the particle field in an ebiten window.
package game

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"

	"github.com/olivierh59500/network-field-go/field"
)

// Game implements ebiten.Game around a particle field. Ebiten's tick is the
// frame-ready signal, the cursor the pointer and the window the viewport.
type Game struct {
	field  *field.Field
	screen *Screen
	log    *zap.Logger

	pointer field.PointerTracker
	paused  bool
}

// New builds the field on a screen of the given size.
func New(w, h int, p field.Params, log *zap.Logger, opts ...field.Option) *Game {
	screen := NewScreen(w, h)
	opts = append(opts, field.WithLogger(log))
	return &Game{
		field:  field.New(screen, p, opts...),
		screen: screen,
		log:    log,
	}
}

// Update is called each tick by Ebitengine. A tick is one whole frame: the
// fade overlay, the particle update and the redraw all land on the canvas.
func (g *Game) Update() error {
	g.handleInput()
	if g.paused {
		return nil
	}
	g.field.Step()
	return nil
}

// Draw is called each display refresh by Ebitengine and only presents the
// canvas. Refreshes between ticks show the same frame again.
func (g *Game) Draw(screen *ebiten.Image) {
	if img := g.screen.Image(); img != nil {
		screen.DrawImage(img, nil)
	}
}

// Layout resizes the field whenever the window size changes.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	w, h := g.screen.Size()
	// Minimized windows report a zero size, which ebiten refuses as a layout.
	if outsideWidth <= 0 || outsideHeight <= 0 {
		return max(w, 1), max(h, 1)
	}
	if outsideWidth != w || outsideHeight != h {
		g.log.Debug("window resized",
			zap.Int("width", outsideWidth),
			zap.Int("height", outsideHeight),
		)
		g.field.Resize(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}

// handleInput processes keyboard and mouse input
func (g *Game) handleInput() {
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
		g.log.Info("pause toggled", zap.Bool("paused", g.paused))
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.field.Reset()
	}

	mx, my := ebiten.CursorPosition()
	w, h := g.screen.Size()
	inside := ebiten.IsFocused() && mx >= 0 && my >= 0 && mx < w && my < h
	g.pointer.Observe(g.field, float64(mx), float64(my), inside)
}

// Run opens the window and blocks until it is closed.
func Run(g *Game, title string, tps int) error {
	w, h := g.screen.Size()
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(tps)
	return ebiten.RunGame(g)
}
