package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"orbitfolio/internal/boot"
	"orbitfolio/internal/camera"
	"orbitfolio/internal/logging"
	"orbitfolio/internal/orbit"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds all orbitfolio configuration.
type Config struct {
	Scene   SceneConfig   `yaml:"scene"`
	Camera  CameraConfig  `yaml:"camera"`
	Boot    BootConfig    `yaml:"boot"`
	Orbit   orbit.Ranges  `yaml:"orbit"`
	Catalog CatalogConfig `yaml:"catalog"`
	Audio   AudioConfig   `yaml:"audio"`
	UI      UIConfig      `yaml:"ui"`
	Logging LoggingConfig `yaml:"logging"`
}

// SceneConfig configures the orbital layout and the frame clock.
type SceneConfig struct {
	Radius         float64 `yaml:"radius"`
	LinkSamples    int     `yaml:"link_samples"`
	FPS            int     `yaml:"fps"`
	Seed           uint64  `yaml:"seed"` // 0 = random layout each session
	ScanLinePeriod string  `yaml:"scan_line_period"`
}

// CameraConfig configures the camera rig. Angles are in degrees.
type CameraConfig struct {
	MinDistance     float64 `yaml:"min_distance"`
	MaxDistance     float64 `yaml:"max_distance"`
	Distance        float64 `yaml:"distance"`
	MinPolarDeg     float64 `yaml:"min_polar_deg"`
	MaxPolarDeg     float64 `yaml:"max_polar_deg"`
	PolarDeg        float64 `yaml:"polar_deg"`
	FOVDeg          float64 `yaml:"fov_deg"`
	FollowBlend     float64 `yaml:"follow_blend"`
	AutoRotateSpeed float64 `yaml:"auto_rotate_speed"` // radians per second
	SpringFrequency float64 `yaml:"spring_frequency"`
	SpringDamping   float64 `yaml:"spring_damping"`
}

// BootConfig configures the boot log animation.
type BootConfig struct {
	Lines    []string `yaml:"lines,omitempty"` // empty = stock log
	Interval string   `yaml:"interval"`
	Pulses   []string `yaml:"pulses"`
	PulseGap string   `yaml:"pulse_gap"`
	Settle   string   `yaml:"settle"`
}

// CatalogConfig configures where records come from.
type CatalogConfig struct {
	DatabasePath  string `yaml:"database_path"`
	SeedFile      string `yaml:"seed_file"`
	Watch         bool   `yaml:"watch"`
	WatchDebounce string `yaml:"watch_debounce"`
	FetchTimeout  string `yaml:"fetch_timeout"`
}

// AudioConfig configures feedback tones.
type AudioConfig struct {
	Enabled bool    `yaml:"enabled"`
	Volume  float64 `yaml:"volume"` // 0..1
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	cam := camera.DefaultConfig()
	return &Config{
		Scene: SceneConfig{
			Radius:         4.0,
			LinkSamples:    24,
			FPS:            30,
			ScanLinePeriod: "4s",
		},
		Camera: CameraConfig{
			MinDistance:     cam.MinDistance,
			MaxDistance:     cam.MaxDistance,
			Distance:        cam.Distance,
			MinPolarDeg:     degrees(cam.MinPolar),
			MaxPolarDeg:     degrees(cam.MaxPolar),
			PolarDeg:        degrees(cam.Polar),
			FOVDeg:          degrees(cam.FOV),
			FollowBlend:     cam.FollowBlend,
			AutoRotateSpeed: cam.AutoRotateSpeed,
			SpringFrequency: cam.SpringFrequency,
			SpringDamping:   cam.SpringDamping,
		},
		Boot: BootConfig{
			Interval: "80ms",
			Pulses:   []string{"50ms", "30ms"},
			PulseGap: "40ms",
			Settle:   "150ms",
		},
		Orbit: orbit.DefaultRanges(),
		Catalog: CatalogConfig{
			DatabasePath:  ".orbitfolio/catalog.db",
			SeedFile:      "",
			Watch:         true,
			WatchDebounce: "250ms",
			FetchTimeout:  "3s",
		},
		Audio: AudioConfig{
			Enabled: false,
			Volume:  0.6,
		},
		UI: DefaultUIConfig(),
		Logging: LoggingConfig{
			Level:     "info",
			Format:    "text",
			DebugMode: false,
		},
	}
}

// DefaultPath returns the config file location for a workspace.
func DefaultPath(workspace string) string {
	return filepath.Join(workspace, ".orbitfolio", "config.yaml")
}

// Load loads configuration from a YAML file. A missing file yields the
// defaults; environment overrides apply in both cases.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()

	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if path := os.Getenv("ORBITFOLIO_DB"); path != "" {
		c.Catalog.DatabasePath = path
	}
	if path := os.Getenv("ORBITFOLIO_CATALOG"); path != "" {
		c.Catalog.SeedFile = path
	}
	if v := os.Getenv("ORBITFOLIO_RADIUS"); v != "" {
		if r, err := strconv.ParseFloat(v, 64); err == nil {
			c.Scene.Radius = r
		}
	}
	if v := os.Getenv("ORBITFOLIO_DEBUG"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Logging.DebugMode = b
		}
	}
	if v := os.Getenv("ORBITFOLIO_AUDIO"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Audio.Enabled = b
		}
	}
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d < 0 {
		return fallback
	}
	return d
}

// GetFetchTimeout returns the catalog fetch timeout as a duration.
func (c *Config) GetFetchTimeout() time.Duration {
	return parseDuration(c.Catalog.FetchTimeout, 3*time.Second)
}

// GetWatchDebounce returns the catalog watcher debounce window.
func (c *Config) GetWatchDebounce() time.Duration {
	return parseDuration(c.Catalog.WatchDebounce, 250*time.Millisecond)
}

// GetScanLinePeriod returns how long one scan-line sweep takes.
func (c *Config) GetScanLinePeriod() time.Duration {
	d := parseDuration(c.Scene.ScanLinePeriod, 4*time.Second)
	if d == 0 {
		return 4 * time.Second
	}
	return d
}

// GetFrameInterval returns the frame tick period derived from the FPS.
func (c *Config) GetFrameInterval() time.Duration {
	fps := c.Scene.FPS
	if fps <= 0 {
		fps = 30
	}
	return time.Second / time.Duration(fps)
}

// BootSequence converts the boot section into a boot.Sequence, falling back
// to the stock values for anything unparseable.
func (c *Config) BootSequence() boot.Sequence {
	seq := boot.Default()
	if len(c.Boot.Lines) > 0 {
		seq.Lines = append([]string(nil), c.Boot.Lines...)
	}
	seq.Interval = bootDuration("interval", c.Boot.Interval, boot.DefaultInterval)
	seq.PulseGap = bootDuration("pulse_gap", c.Boot.PulseGap, boot.DefaultPulseGap)
	seq.Settle = bootDuration("settle", c.Boot.Settle, boot.DefaultSettle)
	if len(c.Boot.Pulses) > 0 {
		seq.Pulses = seq.Pulses[:0]
		for i, p := range c.Boot.Pulses {
			fallback := boot.DefaultPulses[len(boot.DefaultPulses)-1]
			if i < len(boot.DefaultPulses) {
				fallback = boot.DefaultPulses[i]
			}
			seq.Pulses = append(seq.Pulses, bootDuration(fmt.Sprintf("pulses[%d]", i), p, fallback))
		}
	}
	return seq
}

func bootDuration(field, s string, fallback time.Duration) time.Duration {
	if d, err := time.ParseDuration(s); err == nil && d >= 0 {
		return d
	}
	if s != "" {
		logging.BootWarn("boot.%s %q is not a valid duration, using %v", field, s, fallback)
	}
	return fallback
}

// CameraRig converts the camera section into a camera.Config.
func (c *Config) CameraRig() camera.Config {
	cfg := camera.DefaultConfig()
	cfg.MinDistance = c.Camera.MinDistance
	cfg.MaxDistance = c.Camera.MaxDistance
	cfg.Distance = c.Camera.Distance
	cfg.MinPolar = radians(c.Camera.MinPolarDeg)
	cfg.MaxPolar = radians(c.Camera.MaxPolarDeg)
	cfg.Polar = radians(c.Camera.PolarDeg)
	cfg.FOV = radians(c.Camera.FOVDeg)
	cfg.FollowBlend = c.Camera.FollowBlend
	cfg.AutoRotateSpeed = c.Camera.AutoRotateSpeed
	cfg.SpringFrequency = c.Camera.SpringFrequency
	cfg.SpringDamping = c.Camera.SpringDamping
	if c.Scene.FPS > 0 {
		cfg.FPS = c.Scene.FPS
	}
	return cfg
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if !(c.Scene.Radius > 0) || math.IsInf(c.Scene.Radius, 0) {
		return fmt.Errorf("%w: scene.radius must be positive, got %v", ErrInvalidConfig, c.Scene.Radius)
	}
	if c.Scene.FPS < 0 || c.Scene.FPS > 120 {
		return fmt.Errorf("%w: scene.fps must be within 0..120, got %d", ErrInvalidConfig, c.Scene.FPS)
	}
	if c.Scene.LinkSamples < 0 {
		return fmt.Errorf("%w: scene.link_samples must not be negative", ErrInvalidConfig)
	}

	cam := c.Camera
	if cam.MinDistance <= 0 || cam.MaxDistance < cam.MinDistance {
		return fmt.Errorf("%w: camera distance bounds [%v, %v] are inverted or non-positive",
			ErrInvalidConfig, cam.MinDistance, cam.MaxDistance)
	}
	if cam.MinPolarDeg < 0 || cam.MaxPolarDeg > 180 || cam.MaxPolarDeg < cam.MinPolarDeg {
		return fmt.Errorf("%w: camera polar bounds [%v, %v] must be ordered within 0..180",
			ErrInvalidConfig, cam.MinPolarDeg, cam.MaxPolarDeg)
	}
	if cam.FOVDeg <= 0 || cam.FOVDeg >= 180 {
		return fmt.Errorf("%w: camera.fov_deg must be within (0, 180)", ErrInvalidConfig)
	}
	if cam.FollowBlend <= 0 || cam.FollowBlend > 1 {
		return fmt.Errorf("%w: camera.follow_blend must be within (0, 1]", ErrInvalidConfig)
	}

	if !c.Orbit.Valid() {
		return fmt.Errorf("%w: orbit ranges must be positive and orbit_radius.max <= %v",
			ErrInvalidConfig, orbit.MaxOrbitFraction)
	}

	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		return fmt.Errorf("%w: audio.volume must be within 0..1", ErrInvalidConfig)
	}
	if _, err := ParseTheme(c.UI.Theme); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

func degrees(rad float64) float64 { return rad * 180 / math.Pi }
func radians(deg float64) float64 { return deg * math.Pi / 180 }
