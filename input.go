package arbor

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// wheelNotchDelta converts one ebiten wheel notch into a wheel delta in
// the browser-style convention the controller works in (positive delta =
// scroll down/back = zoom out).
const wheelNotchDelta = 100.0

// PointerPhase identifies a kind of pointer event.
type PointerPhase uint8

const (
	PointerPress   PointerPhase = iota // button pressed
	PointerMove                        // moved with the button held
	PointerRelease                     // button released
	PointerLeave                       // pointer left the surface
)

// PointerEvent is a pointer transition at a screen pixel position.
type PointerEvent struct {
	Phase PointerPhase
	X, Y  float64
}

// WheelEvent is a wheel tick. DeltaY follows natural scroll convention:
// negative (scroll up/forward) zooms in. With shift held the vertical
// delta pans horizontally instead of zooming.
type WheelEvent struct {
	DeltaY    float64
	Modifiers KeyModifiers
}

// ResizeEvent reports a new surface pixel size.
type ResizeEvent struct {
	Width, Height int
}

// dragState is the controller's pointer state machine.
type dragState uint8

const (
	dragIdle dragState = iota
	dragActive
)

// Controller translates pointer, wheel, and resize events into viewport
// transitions. It is the only writer of its Viewport.
//
// The pointer state machine has two states: idle and dragging. A press
// records the position as the drag anchor; each move adds the raw
// screen-pixel delta from the anchor to the pan offset and re-anchors; a
// release or a pointer leaving the surface returns to idle. Wheel and
// resize handling are stateless and independent of the drag state.
type Controller struct {
	view *Viewport

	state   dragState
	anchorX float64
	anchorY float64

	// Real-input polling state.
	prevPressed bool
	prevX       float64
	prevY       float64

	injectQueue []any
}

// NewController creates a controller owning viewport writes.
func NewController(view *Viewport) *Controller {
	return &Controller{view: view}
}

// Dragging reports whether a drag is in progress.
func (c *Controller) Dragging() bool {
	return c.state == dragActive
}

// Pointer runs one pointer event through the drag state machine.
func (c *Controller) Pointer(ev PointerEvent) {
	switch ev.Phase {
	case PointerPress:
		c.state = dragActive
		c.anchorX = ev.X
		c.anchorY = ev.Y
	case PointerMove:
		if c.state != dragActive {
			return
		}
		c.view.PanBy(ev.X-c.anchorX, ev.Y-c.anchorY)
		c.anchorX = ev.X
		c.anchorY = ev.Y
	case PointerRelease, PointerLeave:
		c.state = dragIdle
	}
}

// Wheel applies a wheel event: shift+wheel pans horizontally by the
// vertical delta, anything else adjusts the zoom scale (clamped).
func (c *Controller) Wheel(ev WheelEvent) {
	if ev.Modifiers&ModShift != 0 {
		c.view.PanBy(-ev.DeltaY, 0)
		return
	}
	c.view.ZoomBy(ev.DeltaY)
}

// Resize records a new surface size on the viewport.
func (c *Controller) Resize(ev ResizeEvent) {
	c.view.SetSurfaceSize(ev.Width, ev.Height)
}

// ResetView starts an animated return of the viewport to the identity
// view (zero offset, scale 1).
func (c *Controller) ResetView(duration float32) {
	c.view.ResetView(duration)
}

// Advance moves the viewport's reset animation forward by dt seconds.
// Called once per tick, after Update.
func (c *Controller) Advance(dt float32) {
	c.view.update(dt)
}

// Update consumes this tick's input: one injected event if queued,
// otherwise the real mouse and wheel state. Called once per tick.
func (c *Controller) Update() {
	if c.processInjected() {
		return
	}
	c.pollPointer()
	c.pollWheel()
}

// pollPointer converts ebiten's polled mouse state into pointer events.
// Cursor positions arrive in device pixels (Layout reports device-pixel
// surface sizes); the pan offset works in post-device-scale pixels, so
// positions are converted before entering the state machine.
func (c *Controller) pollPointer() {
	x, y := c.cursorToSurface(ebiten.CursorPosition())
	pressed := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)

	switch {
	case pressed && !c.prevPressed:
		c.Pointer(PointerEvent{Phase: PointerPress, X: x, Y: y})
	case pressed && c.prevPressed:
		if c.state == dragActive && c.cursorOutside(x, y) {
			c.Pointer(PointerEvent{Phase: PointerLeave, X: x, Y: y})
		} else if x != c.prevX || y != c.prevY {
			c.Pointer(PointerEvent{Phase: PointerMove, X: x, Y: y})
		}
	case !pressed && c.prevPressed:
		c.Pointer(PointerEvent{Phase: PointerRelease, X: x, Y: y})
	}

	c.prevPressed = pressed
	c.prevX = x
	c.prevY = y
}

// pollWheel converts ebiten's wheel state into a wheel event. Ebiten
// reports positive Y for scroll up, the opposite of the convention the
// controller works in.
func (c *Controller) pollWheel() {
	_, yoff := ebiten.Wheel()
	if yoff == 0 {
		return
	}
	c.Wheel(WheelEvent{
		DeltaY:    -yoff * wheelNotchDelta,
		Modifiers: readModifiers(),
	})
}

// cursorToSurface converts a device-pixel cursor position into the
// post-device-scale pixel unit the pan offset uses.
func (c *Controller) cursorToSurface(mx, my int) (x, y float64) {
	k := c.view.DeviceScale()
	return float64(mx) / k, float64(my) / k
}

// cursorOutside reports whether a post-device-scale position (x, y)
// lies outside the surface.
func (c *Controller) cursorOutside(x, y float64) bool {
	w, h := c.view.SurfaceSize()
	k := c.view.DeviceScale()
	return x < 0 || y < 0 || x > float64(w)/k || y > float64(h)/k
}

// readModifiers reads the current keyboard modifier state.
func readModifiers() KeyModifiers {
	var mods KeyModifiers
	if ebiten.IsKeyPressed(ebiten.KeyShift) || ebiten.IsKeyPressed(ebiten.KeyShiftLeft) || ebiten.IsKeyPressed(ebiten.KeyShiftRight) {
		mods |= ModShift
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyControlLeft) || ebiten.IsKeyPressed(ebiten.KeyControlRight) {
		mods |= ModCtrl
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) || ebiten.IsKeyPressed(ebiten.KeyAltLeft) || ebiten.IsKeyPressed(ebiten.KeyAltRight) {
		mods |= ModAlt
	}
	if ebiten.IsKeyPressed(ebiten.KeyMeta) || ebiten.IsKeyPressed(ebiten.KeyMetaLeft) || ebiten.IsKeyPressed(ebiten.KeyMetaRight) {
		mods |= ModMeta
	}
	return mods
}
