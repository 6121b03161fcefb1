package arbor

import (
	"bytes"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/goregular"
)

const (
	// labelSize is the label font size in logical units.
	labelSize = 14.0
	// edgeStrokeWidth is the edge line width in logical units.
	edgeStrokeWidth = 1.5
)

// Theme holds the colors the renderer paints with.
type Theme struct {
	Background Color
	NodeFill   Color
	EdgeStroke Color
	Label      Color
}

// DefaultTheme returns the stock dark theme.
func DefaultTheme() Theme {
	return Theme{
		Background: Color{R: 0.094, G: 0.094, B: 0.125, A: 1},
		NodeFill:   Color{R: 0.231, G: 0.510, B: 0.965, A: 1},
		EdgeStroke: Color{R: 0.580, G: 0.639, B: 0.722, A: 1},
		Label:      Color{R: 1, G: 1, B: 1, A: 1},
	}
}

// Renderer paints the tree through the viewport's transform: each node as
// a filled rectangle with a centered label, each edge as a straight
// stroked line. It holds no layout state; the layout is recomputed from
// the entity collection on every draw.
type Renderer struct {
	entities []Entity
	view     *Viewport
	theme    Theme
	face     *text.GoTextFace
}

// NewRenderer creates a renderer over a read-only entity collection.
func NewRenderer(entities []Entity, view *Viewport, theme Theme) (*Renderer, error) {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("parse label font: %w", err)
	}
	return &Renderer{
		entities: entities,
		view:     view,
		theme:    theme,
		face:     &text.GoTextFace{Source: src, Size: labelSize},
	}, nil
}

// Draw repaints the full tree onto screen. A nil screen makes the pass a
// no-op for the frame; the next frame simply tries again.
func (r *Renderer) Draw(screen *ebiten.Image) {
	if screen == nil {
		return
	}

	nodes, edges := ComputeLayout(r.entities, r.view.LayoutWidth())

	r.clear(screen)
	for _, e := range edges {
		r.drawEdge(screen, e)
	}
	for _, n := range nodes {
		r.drawNode(screen, n)
	}
}

// clear fills exactly the visible logical rectangle with the background
// color. Offset and scale are bounded at write time, so no stale content
// can survive outside it.
func (r *Renderer) clear(screen *ebiten.Image) {
	vis := r.view.VisibleBounds()
	x0, y0 := r.view.WorldToScreen(vis.X, vis.Y)
	x1, y1 := r.view.WorldToScreen(vis.X+vis.Width, vis.Y+vis.Height)
	vector.DrawFilledRect(screen,
		float32(x0), float32(y0),
		float32(x1-x0), float32(y1-y0),
		r.theme.Background.toRGBA(), false)
}

// drawEdge strokes one parent→child connector.
func (r *Renderer) drawEdge(screen *ebiten.Image, e LayoutEdge) {
	x1, y1 := r.view.WorldToScreen(e.X1, e.Y1)
	x2, y2 := r.view.WorldToScreen(e.X2, e.Y2)
	width := edgeStrokeWidth * r.view.Scale() * r.view.DeviceScale()
	vector.StrokeLine(screen,
		float32(x1), float32(y1),
		float32(x2), float32(y2),
		float32(width), r.theme.EdgeStroke.toRGBA(), true)
}

// drawNode fills one node box and centers its label inside.
func (r *Renderer) drawNode(screen *ebiten.Image, n LayoutNode) {
	sx, sy := r.view.WorldToScreen(n.X, n.Y)
	k := r.view.Scale() * r.view.DeviceScale()
	vector.DrawFilledRect(screen,
		float32(sx), float32(sy),
		float32(n.Width*k), float32(n.Height*k),
		r.theme.NodeFill.toRGBA(), true)

	label := n.Entity.Name
	if label == "" {
		return
	}
	tw, th := text.Measure(label, r.face, r.face.Size)
	lx, ly := labelOrigin(n, tw, th)

	op := &text.DrawOptions{}
	op.GeoM.Translate(lx, ly)
	op.GeoM.Concat(geoMFromAffine(r.view.Transform()))
	op.ColorScale.ScaleWithColor(r.theme.Label.toRGBA())
	text.Draw(screen, label, r.face, op)
}

// labelOrigin returns the logical top-left of a label of measured size
// (tw, th) centered in node n.
func labelOrigin(n LayoutNode, tw, th float64) (float64, float64) {
	return n.X + (n.Width-tw)/2, n.Y + (n.Height-th)/2
}

// geoMFromAffine converts an [a, b, c, d, tx, ty] affine matrix to an
// ebiten.GeoM.
func geoMFromAffine(m [6]float64) ebiten.GeoM {
	var g ebiten.GeoM
	g.SetElement(0, 0, m[0])
	g.SetElement(1, 0, m[1])
	g.SetElement(0, 1, m[2])
	g.SetElement(1, 1, m[3])
	g.SetElement(0, 2, m[4])
	g.SetElement(1, 2, m[5])
	return g
}
