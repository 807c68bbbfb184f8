package geom

// =============================================================================
// CONNECTION LINKS
// =============================================================================
// A link is the gently curved polyline drawn from the core to a node. The
// curve is a single quadratic Bézier whose control point is the midpoint
// pushed sideways by a small fraction of the link length.
//
// Preconditions for a curved link: both endpoints finite, distinct, and a
// perpendicular that normalizes. Anything else takes the one fallback branch:
// a straight two-point line between the last valid endpoints.

// LinkState encodes how prominently a link is drawn.
type LinkState int

const (
	LinkIdle LinkState = iota
	LinkHovered
	LinkSelected
)

// String returns the state name.
func (s LinkState) String() string {
	switch s {
	case LinkHovered:
		return "hovered"
	case LinkSelected:
		return "selected"
	default:
		return "idle"
	}
}

// LinkStyle is the renderer-neutral visual weight of a link.
type LinkStyle struct {
	Width     int     // stroke width in renderer units
	Intensity float64 // 0..1 brightness
}

// Style maps the state to its visual weight. Selected is thickest and
// brightest, hovered is medium, idle is thin and dim.
func (s LinkState) Style() LinkStyle {
	switch s {
	case LinkSelected:
		return LinkStyle{Width: 3, Intensity: 1.0}
	case LinkHovered:
		return LinkStyle{Width: 2, Intensity: 0.7}
	default:
		return LinkStyle{Width: 1, Intensity: 0.3}
	}
}

const (
	// MinLinkSamples is the fewest points a curved link is sampled at.
	MinLinkSamples = 10
	// DefaultLinkSamples is used when the caller passes zero.
	DefaultLinkSamples = 24
	// CurveFactor is the sideways offset of the control point as a fraction
	// of the link length.
	CurveFactor = 0.05

	degenerateEpsilon = 1e-9
)

// Link is a drawable polyline.
type Link struct {
	Points     []Vec3
	State      LinkState
	Degenerate bool // the straight-line fallback was used
}

// Curve builds a curved link between two endpoints. It reports false when
// the preconditions do not hold; callers then draw a straight line instead.
func Curve(origin, target Vec3, samples int) ([]Vec3, bool) {
	if !origin.IsFinite() || !target.IsFinite() {
		return nil, false
	}
	dir := target.Sub(origin)
	dist := dir.Len()
	if dist*dist < degenerateEpsilon {
		return nil, false
	}

	perp := dir.Cross(AxisY)
	if perp.LenSq() < degenerateEpsilon {
		perp = dir.Cross(AxisX)
	}
	unit, ok := perp.Norm()
	if !ok {
		return nil, false
	}

	control := origin.Midpoint(target).Add(unit.Scale(dist * CurveFactor))
	if !control.IsFinite() {
		return nil, false
	}

	if samples <= 0 {
		samples = DefaultLinkSamples
	}
	if samples < MinLinkSamples {
		samples = MinLinkSamples
	}
	pts := SampleQuadratic(origin, control, target, samples)
	for _, p := range pts {
		if !p.IsFinite() {
			return nil, false
		}
	}
	return pts, true
}

// Linker builds links per node and remembers the last valid endpoints of
// each so that a frame with bad input still draws a finite straight line.
type Linker struct {
	Samples int
	last    map[string][2]Vec3
}

// NewLinker creates a linker sampling curves at the given resolution.
func NewLinker(samples int) *Linker {
	return &Linker{Samples: samples, last: make(map[string][2]Vec3)}
}

// Build returns the link for key between origin and target.
func (l *Linker) Build(key string, origin, target Vec3, state LinkState) Link {
	if pts, ok := Curve(origin, target, l.Samples); ok {
		l.last[key] = [2]Vec3{origin, target}
		return Link{Points: pts, State: state}
	}

	a, b := origin, target
	if !a.IsFinite() || !b.IsFinite() {
		if prev, ok := l.last[key]; ok {
			a, b = prev[0], prev[1]
		} else {
			a, b = finiteOr(a, Origin), finiteOr(b, Origin)
		}
	} else {
		l.last[key] = [2]Vec3{a, b}
	}
	return Link{Points: []Vec3{a, b}, State: state, Degenerate: true}
}

// Forget drops remembered endpoints for keys not in keep.
func (l *Linker) Forget(keep map[string]struct{}) {
	for k := range l.last {
		if _, ok := keep[k]; !ok {
			delete(l.last, k)
		}
	}
}

func finiteOr(v, fallback Vec3) Vec3 {
	if v.IsFinite() {
		return v
	}
	return fallback
}
