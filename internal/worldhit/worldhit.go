// Package worldhit turns a screen point into a world position using the
// best evidence the world sensor has: detected planes first, then
// high-confidence feature points, then any feature point.
package worldhit

import (
	"github.com/chewxy/math32"
	"go.uber.org/zap"

	"github.com/Faultbox/boxify/internal/logger"
	"github.com/Faultbox/boxify/pkg/math"
)

// PlaneAnchor identifies a detected planar surface.
type PlaneAnchor struct {
	ID     string
	Center math.Vec3
	Extent math.Vec2 // full size along the plane's local X and Z
}

// PlaneHit is a hit on a detected plane within its extent.
type PlaneHit struct {
	Position math.Vec3
	Plane    *PlaneAnchor
}

// FeatureFilter restricts which feature points count as a hit.
// The zero value accepts every point.
type FeatureFilter struct {
	ConeAngle   float32 // full cone angle around the screen ray, radians
	MinDistance float32
	MaxDistance float32
}

// Unfiltered reports whether f accepts every feature point.
func (f FeatureFilter) Unfiltered() bool {
	return f == FeatureFilter{}
}

// Sensor is the world-sensing host.
type Sensor interface {
	// HitTestPlanes hits detected planes, constrained to their extent.
	HitTestPlanes(screen math.Vec2) (PlaneHit, bool)
	// HitTestFeatures hits the feature-point cloud.
	HitTestFeatures(screen math.Vec2, filter FeatureFilter) (math.Vec3, bool)
}

// Source tells which stage of the fallback produced a result.
type Source int

const (
	SourcePlane Source = iota
	SourceFilteredFeature
	SourceFeature
)

// String returns the source name.
func (s Source) String() string {
	switch s {
	case SourcePlane:
		return "plane"
	case SourceFilteredFeature:
		return "filtered-feature"
	case SourceFeature:
		return "feature"
	}
	return "unknown"
}

// Result is a resolved world position.
type Result struct {
	Position math.Vec3
	Plane    *PlaneAnchor // nil unless OnPlane
	OnPlane  bool
	Source   Source
}

// Config holds the high-confidence feature filter.
type Config struct {
	ConeAngleDegrees float32 `yaml:"cone_angle_degrees" toml:"cone_angle_degrees"`
	MinDistance      float32 `yaml:"min_distance" toml:"min_distance"`
	MaxDistance      float32 `yaml:"max_distance" toml:"max_distance"`
}

// DefaultConfig returns an 18 degree cone and a 0.2 to 2.0 depth window.
func DefaultConfig() Config {
	return Config{
		ConeAngleDegrees: 18,
		MinDistance:      0.2,
		MaxDistance:      2.0,
	}
}

// Filter converts the config to a FeatureFilter.
func (c Config) Filter() FeatureFilter {
	return FeatureFilter{
		ConeAngle:   c.ConeAngleDegrees * math32.Pi / 180,
		MinDistance: c.MinDistance,
		MaxDistance: c.MaxDistance,
	}
}

// Policy resolves screen points in a fixed priority order.
type Policy struct {
	sensor Sensor
	filter FeatureFilter
	log    *zap.Logger
}

// NewPolicy creates a policy over sensor.
func NewPolicy(sensor Sensor, cfg Config) *Policy {
	return &Policy{
		sensor: sensor,
		filter: cfg.Filter(),
		log:    logger.Named("worldhit"),
	}
}

// WithLogger replaces the policy's logger.
func (p *Policy) WithLogger(log *zap.Logger) *Policy {
	p.log = log
	return p
}

// Resolve returns the first result of: plane hit, filtered feature hit,
// unfiltered feature hit. Results are never merged or ranked.
func (p *Policy) Resolve(screen math.Vec2) (Result, bool) {
	if hit, ok := p.sensor.HitTestPlanes(screen); ok {
		return p.found(screen, Result{Position: hit.Position, Plane: hit.Plane, OnPlane: true, Source: SourcePlane}), true
	}

	if pos, ok := p.sensor.HitTestFeatures(screen, p.filter); ok {
		return p.found(screen, Result{Position: pos, Source: SourceFilteredFeature}), true
	}

	if pos, ok := p.sensor.HitTestFeatures(screen, FeatureFilter{}); ok {
		return p.found(screen, Result{Position: pos, Source: SourceFeature}), true
	}

	p.log.Debug("no world hit", zap.Float32("x", screen.X), zap.Float32("y", screen.Y))
	return Result{}, false
}

func (p *Policy) found(screen math.Vec2, r Result) Result {
	p.log.Debug("world hit",
		zap.Float32("x", screen.X),
		zap.Float32("y", screen.Y),
		zap.Stringer("source", r.Source),
		zap.Stringer("position", r.Position),
	)
	return r
}
