package arbor

import (
	"fmt"
	"math"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// FrameDriver triggers a redraw whenever the viewport or surface changes.
// Every change produces exactly one synchronous redraw; there is no
// coalescing or throttling. The workload per frame is a handful of
// shapes, so this is cheap.
type FrameDriver struct {
	redraw  func()
	redraws uint64
}

// NewFrameDriver creates a driver invoking redraw on every invalidation.
// A nil redraw is allowed; invalidations are still counted.
func NewFrameDriver(redraw func()) *FrameDriver {
	return &FrameDriver{redraw: redraw}
}

// Attach subscribes the driver to a viewport's change notifications.
func (d *FrameDriver) Attach(view *Viewport) {
	view.Subscribe(d.Invalidate)
}

// Invalidate performs one redraw.
func (d *FrameDriver) Invalidate() {
	d.redraws++
	if d.redraw != nil {
		d.redraw()
	}
}

// Redraws returns the number of redraws performed so far.
func (d *FrameDriver) Redraws() uint64 {
	return d.redraws
}

// RunConfig configures Run and NewGame.
type RunConfig struct {
	Title  string
	Width  int // initial window width; 0 = 800
	Height int // initial window height; 0 = 600

	// Theme overrides the colors; the zero value selects DefaultTheme.
	Theme Theme

	// ShowFPS draws an FPS/TPS overlay in the top-left corner.
	ShowFPS bool

	// Debug logs per-redraw timings and the redraw count to stderr.
	Debug bool
}

// Game wires the viewport, controller, renderer, and frame driver into an
// ebiten.Game. The scene is rasterized into an offscreen buffer only when
// the frame driver fires; every display frame just blits that buffer.
type Game struct {
	view     *Viewport
	ctrl     *Controller
	renderer *Renderer
	driver   *FrameDriver

	buffer  *ebiten.Image
	script  *Script
	showFPS bool
	debug   bool
}

// NewGame assembles the full pipeline over a read-only entity collection.
func NewGame(entities []Entity, cfg RunConfig) (*Game, error) {
	if cfg.Width <= 0 {
		cfg.Width = 800
	}
	if cfg.Height <= 0 {
		cfg.Height = 600
	}
	theme := cfg.Theme
	if theme == (Theme{}) {
		theme = DefaultTheme()
	}

	view := NewViewport(cfg.Width, cfg.Height)
	renderer, err := NewRenderer(entities, view, theme)
	if err != nil {
		return nil, err
	}

	g := &Game{
		view:     view,
		ctrl:     NewController(view),
		renderer: renderer,
		showFPS:  cfg.ShowFPS,
		debug:    cfg.Debug,
	}
	g.driver = NewFrameDriver(g.repaint)
	g.driver.Attach(view)
	return g, nil
}

// Viewport returns the game's viewport, e.g. for setting an initial view.
func (g *Game) Viewport() *Viewport { return g.view }

// Controller returns the game's input controller, e.g. for injecting
// synthetic events.
func (g *Game) Controller() *Controller { return g.ctrl }

// SetScript attaches an input script. Its steps are queued from Update,
// one per tick, before real input is read.
func (g *Game) SetScript(s *Script) {
	g.script = s
}

// repaint rasterizes the scene into the offscreen buffer, reallocating it
// when the surface size changed. Called once per viewport change.
func (g *Game) repaint() {
	w, h := g.view.SurfaceSize()
	if g.buffer == nil || g.buffer.Bounds().Dx() != w || g.buffer.Bounds().Dy() != h {
		g.buffer = ebiten.NewImage(w, h)
	}

	var t0 time.Time
	if g.debug {
		t0 = time.Now()
	}
	g.renderer.Draw(g.buffer)
	if g.debug {
		fmt.Fprintf(os.Stderr, "arbor: redraw #%d in %v (scale=%.3f offset=%.1f,%.1f)\n",
			g.driver.Redraws(), time.Since(t0), g.view.Scale(), g.view.Offset().X, g.view.Offset().Y)
	}
}

// Update processes this tick's input and advances any reset animation.
func (g *Game) Update() error {
	if g.script != nil {
		g.script.step(g.ctrl)
	}
	g.ctrl.Update()
	if inpututil.IsKeyJustPressed(ebiten.KeyHome) {
		g.ctrl.ResetView(0.4)
	}
	g.ctrl.Advance(float32(1.0 / float64(ebiten.TPS())))
	return nil
}

// Draw blits the cached scene buffer. The first frame (before any change
// notification) paints once to seed the buffer.
func (g *Game) Draw(screen *ebiten.Image) {
	if g.buffer == nil {
		g.driver.Invalidate()
	}
	if g.buffer != nil {
		screen.DrawImage(g.buffer, nil)
	}
	if g.showFPS {
		drawFPSOverlay(screen)
	}
}

// Layout reports the surface size in device pixels so rendering stays
// crisp on high-density displays. Size and density changes are routed
// through the controller, which makes the frame driver repaint exactly
// once per change.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	scale := ebiten.Monitor().DeviceScaleFactor()
	w := int(math.Ceil(float64(outsideWidth) * scale))
	h := int(math.Ceil(float64(outsideHeight) * scale))
	g.view.SetDeviceScale(scale)
	g.ctrl.Resize(ResizeEvent{Width: w, Height: h})
	return w, h
}

// Run creates a resizable window and runs the viewer until it is closed.
func Run(entities []Entity, cfg RunConfig) error {
	game, err := NewGame(entities, cfg)
	if err != nil {
		return err
	}
	if cfg.Title != "" {
		ebiten.SetWindowTitle(cfg.Title)
	}
	w, h := game.view.SurfaceSize()
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	return ebiten.RunGame(game)
}
