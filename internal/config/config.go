// Package config handles boxify configuration loading and management.
package config

import (
	"fmt"

	"go.uber.org/multierr"
	"go.uber.org/zap/zapcore"
	"golang.org/x/text/language"

	"github.com/Faultbox/boxify/internal/box"
	"github.com/Faultbox/boxify/internal/engine/scene"
	"github.com/Faultbox/boxify/internal/interaction"
	"github.com/Faultbox/boxify/internal/logger"
	"github.com/Faultbox/boxify/internal/worldhit"
)

// Config holds all settings.
type Config struct {
	Box         BoxConfig           `yaml:"box" toml:"box"`
	HitTest     worldhit.Config     `yaml:"hit_test" toml:"hit_test"`
	Interaction InteractionConfig   `yaml:"interaction" toml:"interaction"`
	Render      scene.PaletteConfig `yaml:"render" toml:"render"`
	Logging     LoggingConfig       `yaml:"logging" toml:"logging"`
}

// BoxConfig holds box geometry settings. Lengths are in metres.
type BoxConfig struct {
	FaceOpacity         float32 `yaml:"face_opacity" toml:"face_opacity"`
	LineWidth           float32 `yaml:"line_width" toml:"line_width"`
	VertexRadius        float32 `yaml:"vertex_radius" toml:"vertex_radius"`
	FontSize            float32 `yaml:"font_size" toml:"font_size"`
	LabelMargin         float32 `yaml:"label_margin" toml:"label_margin"`
	MinLabelDistance    float32 `yaml:"min_label_distance" toml:"min_label_distance"`
	FlatteningThreshold float32 `yaml:"flattening_threshold" toml:"flattening_threshold"`
	Locale              string  `yaml:"locale" toml:"locale"` // BCP 47 tag for label numbers
}

// InteractionConfig holds gesture handling settings.
type InteractionConfig struct {
	HitPlaneExtent float32 `yaml:"hit_plane_extent" toml:"hit_plane_extent"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level      string `yaml:"level" toml:"level"`
	LogFile    string `yaml:"log_file" toml:"log_file"`
	MaxSizeMB  int    `yaml:"max_size_mb" toml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups" toml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days" toml:"max_age_days"`
	Compress   bool   `yaml:"compress" toml:"compress"`
	JSON       bool   `yaml:"json" toml:"json"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	opts := box.DefaultOptions()
	file := logger.DefaultFileConfig("")

	return &Config{
		Box: BoxConfig{
			FaceOpacity:         opts.FaceOpacity,
			LineWidth:           opts.LineWidth,
			VertexRadius:        opts.VertexRadius,
			FontSize:            opts.FontSize,
			LabelMargin:         opts.LabelMargin,
			MinLabelDistance:    opts.MinLabelDistance,
			FlatteningThreshold: opts.FlatteningThreshold,
			Locale:              "en",
		},
		HitTest: worldhit.DefaultConfig(),
		Interaction: InteractionConfig{
			HitPlaneExtent: interaction.DefaultOptions().HitPlaneExtent,
		},
		Render: scene.DefaultPaletteConfig(),
		Logging: LoggingConfig{
			Level:      "info",
			LogFile:    "",
			MaxSizeMB:  file.MaxSizeMB,
			MaxBackups: file.MaxBackups,
			MaxAgeDays: file.MaxAgeDays,
			Compress:   file.Compress,
		},
	}
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs error
	positive := func(name string, v float32) {
		if v <= 0 {
			errs = multierr.Append(errs, fmt.Errorf("%s must be positive, got %v", name, v))
		}
	}

	if c.Box.FaceOpacity < 0 || c.Box.FaceOpacity > 1 {
		errs = multierr.Append(errs, fmt.Errorf("box.face_opacity must be in [0, 1], got %v", c.Box.FaceOpacity))
	}
	positive("box.line_width", c.Box.LineWidth)
	positive("box.vertex_radius", c.Box.VertexRadius)
	positive("box.font_size", c.Box.FontSize)
	positive("box.flattening_threshold", c.Box.FlatteningThreshold)
	if c.Box.MinLabelDistance < 0 {
		errs = multierr.Append(errs, fmt.Errorf("box.min_label_distance must not be negative, got %v", c.Box.MinLabelDistance))
	}
	if _, err := language.Parse(c.Box.Locale); err != nil {
		errs = multierr.Append(errs, fmt.Errorf("box.locale %q: %w", c.Box.Locale, err))
	}

	if c.HitTest.ConeAngleDegrees <= 0 || c.HitTest.ConeAngleDegrees >= 180 {
		errs = multierr.Append(errs, fmt.Errorf("hit_test.cone_angle_degrees must be in (0, 180), got %v", c.HitTest.ConeAngleDegrees))
	}
	if c.HitTest.MinDistance < 0 || c.HitTest.MaxDistance <= c.HitTest.MinDistance {
		errs = multierr.Append(errs, fmt.Errorf("hit_test distance window [%v, %v] is empty", c.HitTest.MinDistance, c.HitTest.MaxDistance))
	}

	positive("interaction.hit_plane_extent", c.Interaction.HitPlaneExtent)

	if _, err := scene.ParsePalette(c.Render); err != nil {
		errs = multierr.Append(errs, fmt.Errorf("render: %w", err))
	}

	if _, err := zapcore.ParseLevel(c.Logging.Level); err != nil {
		errs = multierr.Append(errs, fmt.Errorf("logging.level: %w", err))
	}

	return errs
}

// BoxOptions converts the box section to box.Options.
// The logger is left unset so the box uses its package default.
func (c *Config) BoxOptions() (box.Options, error) {
	opts := box.DefaultOptions()
	tag, err := language.Parse(c.Box.Locale)
	if err != nil {
		return opts, fmt.Errorf("box.locale %q: %w", c.Box.Locale, err)
	}

	opts.FaceOpacity = c.Box.FaceOpacity
	opts.LineWidth = c.Box.LineWidth
	opts.VertexRadius = c.Box.VertexRadius
	opts.FontSize = c.Box.FontSize
	opts.LabelMargin = c.Box.LabelMargin
	opts.MinLabelDistance = c.Box.MinLabelDistance
	opts.FlatteningThreshold = c.Box.FlatteningThreshold
	opts.Locale = tag
	return opts, nil
}

// InteractionOptions converts the interaction section to interaction.Options.
func (c *Config) InteractionOptions() interaction.Options {
	opts := interaction.DefaultOptions()
	opts.HitPlaneExtent = c.Interaction.HitPlaneExtent
	return opts
}

// Palette parses the render colours.
func (c *Config) Palette() (scene.Palette, error) {
	return scene.ParsePalette(c.Render)
}

// LoggerOptions converts the logging section for logger.Setup. The caller
// picks the console writer.
func (c *Config) LoggerOptions() logger.Options {
	return logger.Options{
		Level: c.Logging.Level,
		File: logger.FileConfig{
			Path:       c.Logging.LogFile,
			MaxSizeMB:  c.Logging.MaxSizeMB,
			MaxBackups: c.Logging.MaxBackups,
			MaxAgeDays: c.Logging.MaxAgeDays,
			Compress:   c.Logging.Compress,
			JSON:       c.Logging.JSON,
		},
	}
}
