package ui

import (
	"math"

	"orbitfolio/internal/catalog"
	"orbitfolio/internal/geom"
	"orbitfolio/internal/scene"
)

// SceneOptions controls scene rendering.
type SceneOptions struct {
	Width      int
	Height     int
	ShowLabels bool
}

// Glyphs used by the scene renderer.
const (
	GlyphCore       = '✺'
	GlyphDeployed   = '◆'
	GlyphInProgress = '◇'
	GlyphArchived   = '○'
	GlyphSelected   = '◉'
)

func linkGlyph(s geom.LinkState) rune {
	switch s.Style().Width {
	case 3:
		return '●'
	case 2:
		return '•'
	}
	return '·'
}

func nodeGlyph(n scene.Node) rune {
	if n.Selected {
		return GlyphSelected
	}
	switch n.Status {
	case catalog.StatusDeployed:
		return GlyphDeployed
	case catalog.StatusArchived:
		return GlyphArchived
	}
	return GlyphInProgress
}

// RenderScene draws one frame of the orbital scene and returns it with the
// hit map for pointer picking. Coordinates in the hit map are relative to
// the top-left of the rendered block.
func RenderScene(snap scene.Snapshot, s Styles, opts SceneOptions) (string, HitMap) {
	cv := NewCanvas(opts.Width, opts.Height)
	hits := HitMap{}
	if opts.Width <= 0 || opts.Height <= 0 {
		return "", hits
	}
	th := s.Theme

	cv.Band(int(math.Floor(snap.ScanLine*float64(opts.Height))), th.ScanLine)

	for _, l := range snap.Links {
		drawLink(cv, snap, l, th, opts)
	}

	if x, y, d, ok := snap.View.Project(geom.Origin, opts.Width, opts.Height); ok {
		cx, cy := int(math.Floor(x)), int(math.Floor(y))
		cv.Set(cx, cy, GlyphCore, th.Core, true, layerCore, d)
		hits.add(Target{Kind: HitCore, X: cx, Y: cy, Depth: d})
	}

	for _, n := range snap.Nodes {
		x, y, d, ok := snap.View.Project(n.Position, opts.Width, opts.Height)
		if !ok {
			continue
		}
		nx, ny := int(math.Floor(x)), int(math.Floor(y))
		color := th.StatusColor(n.Status)
		if n.Hovered {
			color = th.LinkHovered
		}
		cv.Set(nx, ny, nodeGlyph(n), color, n.Selected || n.Hovered, layerNode, d)

		t := Target{Kind: HitNode, ID: n.ID, X: nx, Y: ny, Depth: d}
		if opts.ShowLabels || n.Hovered || n.Selected {
			label := n.Label
			if n.Hovered || n.Selected {
				label = "[" + label + "]"
			}
			lc := th.Muted
			if n.Hovered || n.Selected {
				lc = th.Foreground
			}
			cv.Text(nx+2, ny, label, lc, n.Selected, layerLabel, d)
			t.LabelFrom, t.LabelTo = nx+2, nx+2+len([]rune(label))
		}
		hits.add(t)
	}

	return cv.Render(), hits
}

func drawLink(cv *Canvas, snap scene.Snapshot, l geom.Link, th Theme, opts SceneOptions) {
	glyph := linkGlyph(l.State)
	color := th.LinkColor(l.State)
	bold := l.State == geom.LinkSelected

	var px, py, pd float64
	have := false
	for _, p := range l.Points {
		x, y, d, ok := snap.View.Project(p, opts.Width, opts.Height)
		if !ok {
			have = false
			continue
		}
		if have {
			cv.Line(px, py, pd, x, y, d, glyph, color, bold, layerLink)
		}
		px, py, pd, have = x, y, d, true
	}
}
