// Package camera implements the orbit camera that follows the selected node.
//
// The camera orbits a look-at target at a bounded distance and polar angle.
// With a selection active the target eases toward the node's current
// position by a fixed blend per frame; with none it auto-rotates and drifts
// back to the scene origin. There is no pan API: the orbit is always about
// the scene.
package camera

import (
	"math"

	"orbitfolio/internal/geom"

	"github.com/charmbracelet/harmonica"
)

// Config holds the fixed camera rig parameters.
type Config struct {
	MinDistance float64
	MaxDistance float64
	MinPolar    float64 // radians from +Y
	MaxPolar    float64
	Distance    float64 // initial
	Polar       float64 // initial
	Azimuth     float64 // initial

	FollowBlend     float64 // per-frame lerp factor toward the target
	AutoRotateSpeed float64 // radians per second while idle
	FOV             float64 // vertical field of view, radians

	FPS             int
	SpringFrequency float64
	SpringDamping   float64
}

// DefaultConfig returns a rig sized for a layout radius of 4.
func DefaultConfig() Config {
	return Config{
		MinDistance:     6,
		MaxDistance:     20,
		MinPolar:        math.Pi / 6,
		MaxPolar:        5 * math.Pi / 6,
		Distance:        11,
		Polar:           math.Pi / 2.4,
		FollowBlend:     0.02,
		AutoRotateSpeed: 0.12,
		FOV:             math.Pi / 3.5,
		FPS:             30,
		SpringFrequency: 6,
		SpringDamping:   1,
	}
}

// Controller is the per-scene camera state. It is driven from the frame
// loop only.
type Controller struct {
	cfg Config

	lookAt   geom.Vec3
	azimuth  float64
	polar    float64
	distance float64
	velocity float64
	zoomTo   float64
	spring   harmonica.Spring
}

// New creates a controller at the configured initial pose.
func New(cfg Config) *Controller {
	fps := cfg.FPS
	if fps <= 0 {
		fps = 30
	}
	c := &Controller{
		cfg:     cfg,
		azimuth: cfg.Azimuth,
		spring:  harmonica.NewSpring(harmonica.FPS(fps), cfg.SpringFrequency, cfg.SpringDamping),
	}
	c.polar = clamp(cfg.Polar, cfg.MinPolar, cfg.MaxPolar)
	c.distance = clamp(cfg.Distance, cfg.MinDistance, cfg.MaxDistance)
	c.zoomTo = c.distance
	return c
}

// Update advances the camera by one frame. dt is the frame duration in
// seconds; target is the followed node's current position when hasTarget.
func (c *Controller) Update(dt float64, target geom.Vec3, hasTarget bool) {
	if hasTarget && target.IsFinite() {
		c.lookAt = c.lookAt.Lerp(target, c.cfg.FollowBlend)
	} else {
		c.lookAt = c.lookAt.Lerp(geom.Origin, c.cfg.FollowBlend)
		if dt > 0 {
			c.azimuth = math.Mod(c.azimuth+c.cfg.AutoRotateSpeed*dt, 2*math.Pi)
		}
	}

	c.distance, c.velocity = c.spring.Update(c.distance, c.velocity, c.zoomTo)
	c.distance = clamp(c.distance, c.cfg.MinDistance, c.cfg.MaxDistance)
}

// Zoom requests a dolly by delta scene units; the request is clamped to the
// distance bounds and reached over the following frames.
func (c *Controller) Zoom(delta float64) {
	c.zoomTo = clamp(c.zoomTo+delta, c.cfg.MinDistance, c.cfg.MaxDistance)
}

// Tilt changes the polar angle within bounds.
func (c *Controller) Tilt(delta float64) {
	c.polar = clamp(c.polar+delta, c.cfg.MinPolar, c.cfg.MaxPolar)
}

// LookAt returns the current look-at target.
func (c *Controller) LookAt() geom.Vec3 { return c.lookAt }

// Distance returns the current eye distance from the target.
func (c *Controller) Distance() float64 { return c.distance }

// Polar returns the current polar angle.
func (c *Controller) Polar() float64 { return c.polar }

// Azimuth returns the current azimuth.
func (c *Controller) Azimuth() float64 { return c.azimuth }

// Eye returns the camera position.
func (c *Controller) Eye() geom.Vec3 {
	sp := math.Sin(c.polar)
	return c.lookAt.Add(geom.Vec3{
		X: c.distance * sp * math.Sin(c.azimuth),
		Y: c.distance * math.Cos(c.polar),
		Z: c.distance * sp * math.Cos(c.azimuth),
	})
}

// View returns an immutable snapshot of the camera for rendering.
func (c *Controller) View() View {
	return View{Eye: c.Eye(), LookAt: c.lookAt, FOV: c.cfg.FOV}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
