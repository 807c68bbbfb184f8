package ui

import "sort"

// HitKind says what a pointer is over.
type HitKind int

const (
	HitNone HitKind = iota
	HitCore
	HitNode
)

// Target is a clickable spot on the scene canvas.
type Target struct {
	Kind  HitKind
	ID    string
	X, Y  int
	Depth float64

	// Label span on row Y, [LabelFrom, LabelTo). Zero width when no label.
	LabelFrom, LabelTo int
}

// HitMap holds the clickable targets of one rendered frame.
type HitMap struct {
	targets []Target
}

// PickRadius is how far (in cell widths) from a glyph a pointer still hits it.
const PickRadius = 2.5

func (h *HitMap) add(t Target) { h.targets = append(h.targets, t) }

// Targets returns the targets nearest first.
func (h HitMap) Targets() []Target {
	out := append([]Target(nil), h.targets...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Depth < out[j].Depth })
	return out
}

// Pick returns the target under x, y. Labels are exact hits; glyphs hit
// within PickRadius, with rows counted twice since cells are tall. Among
// candidates nodes beat the core, then the closest glyph wins, then the
// nearest in depth.
func (h HitMap) Pick(x, y int) Target {
	best := Target{Kind: HitNone}
	bestDist := PickRadius * PickRadius
	found := false

	for _, t := range h.targets {
		if t.Kind == HitNode && y == t.Y && x >= t.LabelFrom && x < t.LabelTo {
			if !found || best.Kind != HitNode || bestDist > 0 || t.Depth < best.Depth {
				best, bestDist, found = t, 0, true
			}
			continue
		}
		dx := float64(x - t.X)
		dy := float64(y-t.Y) * 2
		d := dx*dx + dy*dy
		if d > PickRadius*PickRadius {
			continue
		}
		switch {
		case !found:
		case t.Kind == HitNode && best.Kind == HitCore:
		case t.Kind == HitCore && best.Kind == HitNode:
			continue
		case d < bestDist:
		case d == bestDist && t.Depth < best.Depth:
		default:
			continue
		}
		best, bestDist, found = t, d, true
	}
	return best
}
