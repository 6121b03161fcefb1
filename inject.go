package arbor

// Synthetic input injection. Queued events are consumed one per tick by
// Controller.Update, before and instead of real mouse input, so drags and
// wheel sequences can be driven headlessly in tests and demos.

// InjectPress queues a pointer press at the given screen coordinates.
func (c *Controller) InjectPress(x, y float64) {
	c.injectQueue = append(c.injectQueue, PointerEvent{Phase: PointerPress, X: x, Y: y})
}

// InjectMove queues a pointer move with the button held down. Use between
// InjectPress and InjectRelease to simulate a drag.
func (c *Controller) InjectMove(x, y float64) {
	c.injectQueue = append(c.injectQueue, PointerEvent{Phase: PointerMove, X: x, Y: y})
}

// InjectRelease queues a pointer release at the given screen coordinates.
func (c *Controller) InjectRelease(x, y float64) {
	c.injectQueue = append(c.injectQueue, PointerEvent{Phase: PointerRelease, X: x, Y: y})
}

// InjectWheel queues a wheel event with the given delta and modifiers.
func (c *Controller) InjectWheel(deltaY float64, mods KeyModifiers) {
	c.injectQueue = append(c.injectQueue, WheelEvent{DeltaY: deltaY, Modifiers: mods})
}

// InjectResize queues a surface resize event.
func (c *Controller) InjectResize(width, height int) {
	c.injectQueue = append(c.injectQueue, ResizeEvent{Width: width, Height: height})
}

// InjectDrag queues a full drag sequence: press at (fromX, fromY),
// linearly interpolated moves over frames-2 intermediate ticks, and
// release at (toX, toY). Minimum frames is 2 (press + release).
func (c *Controller) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	c.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		c.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	c.InjectRelease(toX, toY)
}

// processInjected pops one event from the inject queue and routes it to
// the matching handler. Returns true if an event was consumed (real mouse
// input is skipped that tick).
func (c *Controller) processInjected() bool {
	if len(c.injectQueue) == 0 {
		return false
	}
	evt := c.injectQueue[0]
	copy(c.injectQueue, c.injectQueue[1:])
	c.injectQueue = c.injectQueue[:len(c.injectQueue)-1]

	switch ev := evt.(type) {
	case PointerEvent:
		c.Pointer(ev)
	case WheelEvent:
		c.Wheel(ev)
	case ResizeEvent:
		c.Resize(ev)
	}
	return true
}
