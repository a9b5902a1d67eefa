// Package config provides configuration loading for the network background.
package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/olivierh59500/network-field-go/field"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config holds all configuration parameters.
type Config struct {
	Window  WindowConfig  `yaml:"window"`
	Field   FieldConfig   `yaml:"field"`
	Physics PhysicsConfig `yaml:"physics"`
	Links   LinksConfig   `yaml:"links"`
	Render  RenderConfig  `yaml:"render"`
	Palette PaletteConfig `yaml:"palette"`
	Drift   DriftConfig   `yaml:"drift"`
	Logging LoggingConfig `yaml:"logging"`
}

// WindowConfig holds display settings. The headless runner reuses the size
// and tick rate.
type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
	TPS    int    `yaml:"tps"`
}

// FieldConfig holds particle set parameters.
type FieldConfig struct {
	Particles int   `yaml:"particles"`
	Seed      int64 `yaml:"seed"` // 0 = time-based
}

// PhysicsConfig holds particle creation and motion parameters.
type PhysicsConfig struct {
	InitialSpeed    float64 `yaml:"initial_speed"`
	MinSize         float64 `yaml:"min_size"`
	MaxSize         float64 `yaml:"max_size"`
	MinAlpha        float64 `yaml:"min_alpha"`
	MaxAlpha        float64 `yaml:"max_alpha"`
	MaxSpeed        float64 `yaml:"max_speed"`
	Damping         float64 `yaml:"damping"`          // velocity multiplier per frame
	InfluenceRadius float64 `yaml:"influence_radius"` // pointer repulsion and glow range
	RepelForce      float64 `yaml:"repel_force"`
	RepelScale      float64 `yaml:"repel_scale"`
	GlowDecay       float64 `yaml:"glow_decay"` // glow multiplier per frame outside the radius
}

// LinksConfig holds connection line parameters.
type LinksConfig struct {
	Distance        float64 `yaml:"distance"`
	HighlightRadius float64 `yaml:"highlight_radius"`
	Alpha           float64 `yaml:"alpha"`
	HighlightAlpha  float64 `yaml:"highlight_alpha"`
	Width           float64 `yaml:"width"`
	HighlightWidth  float64 `yaml:"highlight_width"`
	Pairing         string  `yaml:"pairing"`
}

// RenderConfig holds per-frame painting parameters.
type RenderConfig struct {
	FadeAlpha     float64 `yaml:"fade_alpha"` // background overlay alpha, lower = longer trails
	ShadowBlur    float64 `yaml:"shadow_blur"`
	GlowThreshold float64 `yaml:"glow_threshold"`
}

// PaletteConfig holds the colors.
type PaletteConfig struct {
	Particle   Color `yaml:"particle"`
	Highlight  Color `yaml:"highlight"`
	Background Color `yaml:"background"`
	Shadow     Color `yaml:"shadow"`
}

// DriftConfig holds the optional noise flow.
type DriftConfig struct {
	Strength float64 `yaml:"strength"`
	Scale    float64 `yaml:"scale"`
}

// LoggingConfig holds logger settings.
type LoggingConfig struct {
	Level      string `yaml:"level"`
	Format     string `yaml:"format"`
	File       string `yaml:"file"`
	MaxSize    int    `yaml:"max_size"` // megabytes
	MaxBackups int    `yaml:"max_backups"`
	MaxAge     int    `yaml:"max_age"` // days
	Compress   bool   `yaml:"compress"`
}

// Default returns the embedded defaults.
func Default() *Config {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		panic(fmt.Sprintf("config: embedded defaults: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes cfg to path as YAML.
func Save(path string, cfg *Config) error {
	var buf bytes.Buffer
	if err := Write(&buf, cfg); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// Write encodes cfg as YAML to w.
func Write(w io.Writer, cfg *Config) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return enc.Close()
}

// Validate reports every out-of-range value.
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
		}
	}

	check(c.Window.Width > 0 && c.Window.Height > 0, "window size %dx%d must be positive", c.Window.Width, c.Window.Height)
	check(c.Window.TPS > 0, "window.tps %d must be positive", c.Window.TPS)
	check(c.Field.Particles >= 0, "field.particles %d must not be negative", c.Field.Particles)

	p := c.Physics
	check(p.MinSize > 0 && p.MinSize <= p.MaxSize, "physics size range [%g, %g] is invalid", p.MinSize, p.MaxSize)
	check(p.MinAlpha >= 0 && p.MinAlpha <= p.MaxAlpha && p.MaxAlpha <= 1, "physics alpha range [%g, %g] is invalid", p.MinAlpha, p.MaxAlpha)
	check(p.InitialSpeed >= 0, "physics.initial_speed %g must not be negative", p.InitialSpeed)
	check(p.MaxSpeed > 0, "physics.max_speed %g must be positive", p.MaxSpeed)
	check(p.Damping > 0 && p.Damping <= 1, "physics.damping %g must be in (0, 1]", p.Damping)
	check(p.InfluenceRadius > 0, "physics.influence_radius %g must be positive", p.InfluenceRadius)
	check(p.GlowDecay >= 0 && p.GlowDecay < 1, "physics.glow_decay %g must be in [0, 1)", p.GlowDecay)

	l := c.Links
	check(l.Distance > 0, "links.distance %g must be positive", l.Distance)
	check(l.HighlightRadius >= 0, "links.highlight_radius %g must not be negative", l.HighlightRadius)
	check(l.Width > 0 && l.HighlightWidth > 0, "links widths must be positive")
	check(field.Pairing(l.Pairing) == field.PairingExhaustive || field.Pairing(l.Pairing) == field.PairingGrid,
		"links.pairing %q must be %q or %q", l.Pairing, field.PairingExhaustive, field.PairingGrid)

	check(c.Render.FadeAlpha >= 0 && c.Render.FadeAlpha <= 1, "render.fade_alpha %g must be in [0, 1]", c.Render.FadeAlpha)
	check(c.Render.ShadowBlur >= 0, "render.shadow_blur %g must not be negative", c.Render.ShadowBlur)
	check(c.Drift.Strength >= 0, "drift.strength %g must not be negative", c.Drift.Strength)

	check(c.Logging.Format == "console" || c.Logging.Format == "json", "logging.format %q must be console or json", c.Logging.Format)

	return errors.Join(errs...)
}

// FieldParams converts the configuration into simulation parameters.
func (c *Config) FieldParams() field.Params {
	p := field.DefaultParams()

	p.Particles = c.Field.Particles

	p.InitialSpeed = c.Physics.InitialSpeed
	p.MinSize = c.Physics.MinSize
	p.MaxSize = c.Physics.MaxSize
	p.MinAlpha = c.Physics.MinAlpha
	p.MaxAlpha = c.Physics.MaxAlpha
	p.MaxSpeed = c.Physics.MaxSpeed
	p.Damping = c.Physics.Damping
	p.InfluenceRadius = c.Physics.InfluenceRadius
	p.RepelForce = c.Physics.RepelForce
	p.RepelScale = c.Physics.RepelScale
	p.GlowDecay = c.Physics.GlowDecay

	p.LinkDistance = c.Links.Distance
	p.HighlightRange = c.Links.HighlightRadius
	p.LinkAlpha = c.Links.Alpha
	p.HighlightAlpha = c.Links.HighlightAlpha
	p.LinkWidth = c.Links.Width
	p.HighlightWidth = c.Links.HighlightWidth
	p.Pairing = field.Pairing(c.Links.Pairing)

	p.FadeAlpha = c.Render.FadeAlpha
	p.ShadowBlur = c.Render.ShadowBlur
	p.GlowThreshold = c.Render.GlowThreshold

	p.ParticleColor = c.Palette.Particle.NRGBA()
	p.HighlightColor = c.Palette.Highlight.NRGBA()
	p.Background = c.Palette.Background.NRGBA()
	p.ShadowColor = c.Palette.Shadow.NRGBA()

	p.DriftStrength = c.Drift.Strength
	p.DriftScale = c.Drift.Scale
	return p
}
