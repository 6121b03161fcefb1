package arbor

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

const (
	// MinScale and MaxScale bound the zoom factor. Writes outside the
	// range are clamped, never rejected.
	MinScale = 0.25
	MaxScale = 4.0

	// wheelZoomRate converts a wheel delta into a scale delta. Zoom is a
	// continuous accumulation, not discrete steps.
	wheelZoomRate = 0.001
)

// resetAnim holds active reset-view tweens for offset X/Y and scale.
type resetAnim struct {
	tweenX     *gween.Tween
	tweenY     *gween.Tween
	tweenScale *gween.Tween
	doneX      bool
	doneY      bool
	doneScale  bool
}

// Viewport owns the mapping between logical (pre-pan/zoom) space and
// screen pixels: zoom scale, pan offset, surface size, and device pixel
// density. It is written only by the input side and read by the renderer
// within the same tick.
//
// The composed transform applies, in fixed order: device pixel scale,
// then pan offset, then zoom scale. The offset is therefore in
// post-device-scale, pre-zoom pixels: pan amount is independent of zoom
// level, and zoom pivots at the logical origin rather than the pointer.
type Viewport struct {
	scale       float64
	offset      Vec2
	surfaceW    int
	surfaceH    int
	deviceScale float64

	transform [6]float64
	inverse   [6]float64
	dirty     bool

	subs  []func()
	reset *resetAnim
}

// NewViewport creates a viewport at identity (scale 1, zero offset,
// device scale 1) over a surface of the given pixel size.
func NewViewport(width, height int) *Viewport {
	return &Viewport{
		scale:       1.0,
		surfaceW:    width,
		surfaceH:    height,
		deviceScale: 1.0,
		dirty:       true,
	}
}

// Subscribe registers fn to be called after every observable state change
// (scale, offset, surface size, or device scale). Writes that leave the
// value unchanged do not fire.
func (v *Viewport) Subscribe(fn func()) {
	v.subs = append(v.subs, fn)
}

func (v *Viewport) changed() {
	v.dirty = true
	for _, fn := range v.subs {
		fn()
	}
}

// Scale returns the current zoom factor.
func (v *Viewport) Scale() float64 { return v.scale }

// Offset returns the current pan offset in post-device-scale pixels.
func (v *Viewport) Offset() Vec2 { return v.offset }

// SurfaceSize returns the current surface pixel size.
func (v *Viewport) SurfaceSize() (width, height int) {
	return v.surfaceW, v.surfaceH
}

// DeviceScale returns the device pixel density multiplier.
func (v *Viewport) DeviceScale() float64 { return v.deviceScale }

// LayoutWidth returns the width the layout engine should center against:
// the surface width with the device pixel density divided back out.
func (v *Viewport) LayoutWidth() float64 {
	return float64(v.surfaceW) / v.deviceScale
}

// SetScale sets the zoom factor, clamped to [MinScale, MaxScale].
func (v *Viewport) SetScale(scale float64) {
	if scale < MinScale {
		scale = MinScale
	} else if scale > MaxScale {
		scale = MaxScale
	}
	if scale == v.scale {
		return
	}
	v.scale = scale
	v.changed()
}

// ZoomBy adjusts the scale for a wheel delta. Positive deltaY (scroll
// down/back) zooms out; negative zooms in, following natural scroll
// convention. The result is clamped.
func (v *Viewport) ZoomBy(deltaY float64) {
	v.SetScale(v.scale - deltaY*wheelZoomRate)
}

// SetOffset sets the pan offset. The offset is unclamped: unbounded pan
// is permitted.
func (v *Viewport) SetOffset(offset Vec2) {
	if offset == v.offset {
		return
	}
	v.offset = offset
	v.changed()
}

// PanBy adds a raw screen-pixel delta to the offset. The delta is not
// divided by the zoom scale, so pan speed is visually constant at every
// zoom level.
func (v *Viewport) PanBy(dx, dy float64) {
	if dx == 0 && dy == 0 {
		return
	}
	v.offset.X += dx
	v.offset.Y += dy
	v.changed()
}

// SetSurfaceSize records a new surface pixel size. Non-positive
// dimensions are ignored.
func (v *Viewport) SetSurfaceSize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	if width == v.surfaceW && height == v.surfaceH {
		return
	}
	v.surfaceW = width
	v.surfaceH = height
	v.changed()
}

// SetDeviceScale records the device pixel density multiplier. This is a
// resolution multiplier for crisp rendering on high-density displays, not
// part of the logical zoom. Non-positive values are ignored.
func (v *Viewport) SetDeviceScale(scale float64) {
	if scale <= 0 || scale == v.deviceScale {
		return
	}
	v.deviceScale = scale
	v.changed()
}

// computeTransform recomputes the cached transform and its inverse if dirty.
//
// transform = Scale(deviceScale) * Translate(offset) * Scale(scale)
func (v *Viewport) computeTransform() [6]float64 {
	if !v.dirty {
		return v.transform
	}
	v.dirty = false

	m := scaleAffine(v.deviceScale, v.deviceScale)
	m = multiplyAffine(m, translateAffine(v.offset.X, v.offset.Y))
	m = multiplyAffine(m, scaleAffine(v.scale, v.scale))

	v.transform = m
	v.inverse = invertAffine(m)
	return v.transform
}

// Transform returns the composed logical→screen affine matrix.
func (v *Viewport) Transform() [6]float64 {
	return v.computeTransform()
}

// WorldToScreen converts logical coordinates to screen pixel coordinates.
func (v *Viewport) WorldToScreen(wx, wy float64) (sx, sy float64) {
	v.computeTransform()
	return transformPoint(v.transform, wx, wy)
}

// ScreenToWorld converts screen pixel coordinates to logical coordinates.
func (v *Viewport) ScreenToWorld(sx, sy float64) (wx, wy float64) {
	v.computeTransform()
	return transformPoint(v.inverse, sx, sy)
}

// VisibleBounds returns the logical rectangle currently covered by the
// surface, accounting for offset and scale. This is exactly the region a
// frame clear must cover; since offset and scale are bounded per write,
// nothing outside it can hold stale content.
func (v *Viewport) VisibleBounds() Rect {
	v.computeTransform()
	x0, y0 := transformPoint(v.inverse, 0, 0)
	x1, y1 := transformPoint(v.inverse, float64(v.surfaceW), float64(v.surfaceH))
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// ResetView animates offset back to zero and scale back to 1 over
// duration seconds. The animation advances from update; each tick writes
// through the same clamped setters as direct input.
func (v *Viewport) ResetView(duration float32) {
	v.reset = &resetAnim{
		tweenX:     gween.New(float32(v.offset.X), 0, duration, ease.OutQuad),
		tweenY:     gween.New(float32(v.offset.Y), 0, duration, ease.OutQuad),
		tweenScale: gween.New(float32(v.scale), 1, duration, ease.OutQuad),
	}
}

// Resetting reports whether a reset-view animation is in progress.
func (v *Viewport) Resetting() bool {
	return v.reset != nil
}

// update advances the reset animation, if any. Called once per tick.
func (v *Viewport) update(dt float32) {
	if v.reset == nil {
		return
	}
	offset := v.offset
	if !v.reset.doneX {
		val, done := v.reset.tweenX.Update(dt)
		offset.X = float64(val)
		v.reset.doneX = done
	}
	if !v.reset.doneY {
		val, done := v.reset.tweenY.Update(dt)
		offset.Y = float64(val)
		v.reset.doneY = done
	}
	v.SetOffset(offset)
	if !v.reset.doneScale {
		val, done := v.reset.tweenScale.Update(dt)
		v.SetScale(float64(val))
		v.reset.doneScale = done
	}
	if v.reset.doneX && v.reset.doneY && v.reset.doneScale {
		v.reset = nil
	}
}
