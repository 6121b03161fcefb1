// Package arbor renders a single-parent/multi-child tree onto an
// [Ebitengine] surface and lets the user pan and zoom it interactively.
//
// The package is built around three small pieces: a pure layout function
// ([ComputeLayout]) that positions nodes and edges in logical space, a
// [Viewport] that owns the screen↔logical transform (pan offset, zoom
// scale, device pixel density), and a [Controller] that turns pointer,
// wheel, and resize events into viewport transitions.
//
// # Quick start
//
// The simplest way to get started is [Run], which creates a window and
// game loop for you:
//
//	entities := []arbor.Entity{
//		{ID: "1", Name: "Parent"},
//		{ID: "2", Name: "Child 1", ParentID: "1"},
//	}
//	arbor.Run(entities, arbor.RunConfig{
//		Title: "Org Chart", Width: 1000, Height: 700,
//	})
//
// For full control, implement [ebiten.Game] yourself and embed a [Game]:
//
//	game, _ := arbor.NewGame(entities, arbor.RunConfig{Width: 1000, Height: 700})
//	ebiten.RunGame(game)
//
// # Coordinate spaces
//
// Layout positions are in logical space: the space the tree occupies at
// scale 1 with zero pan. The viewport transform maps logical space to
// screen pixels in a fixed order: device pixel scale, then pan offset,
// then zoom scale. The pan offset is therefore expressed in
// post-device-scale, pre-zoom pixels, so drag speed is visually constant
// at every zoom level. Zoom pivots at the logical origin, not the cursor;
// this is intentional and preserved from the viewer this package replaces.
//
// # Interaction
//
// Dragging pans the view. The mouse wheel zooms, clamped to
// [MinScale, MaxScale]; shift+wheel pans horizontally instead. The Home
// key animates the view back to the identity transform (via [gween]).
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
package arbor
