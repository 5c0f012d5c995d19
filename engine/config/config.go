// Package config holds the render toggles read by the frame renderer every frame, along with TOML persistence and
// hot reload of those toggles.
package config

import (
	"bytes"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// RenderConfig is the full set of user-facing toggles for the renderer. A single value is owned by the scene and
// passed by pointer into every frame; nothing reads these flags from anywhere else.
type RenderConfig struct {
	// ShowLightsAsPoints draws point and spot light positions as fixed-size markers.
	ShowLightsAsPoints bool `toml:"show_lights_as_points"`
	// UseBlinnCorrection switches the specular term from Phong to Blinn-Phong.
	UseBlinnCorrection bool `toml:"use_blinn_correction"`
	// UseDiffuseMap enables sampling of diffuse maps on renderables that have one.
	UseDiffuseMap bool `toml:"use_diffuse_map"`
	// UseNormalMap enables tangent space normal mapping on renderables that have a normal map.
	UseNormalMap bool `toml:"use_normal_map"`
	// Sunlight enables the directional light pass.
	Sunlight bool `toml:"sunlight"`
	// PauseBezierPath freezes the path animated light.
	PauseBezierPath bool `toml:"pause_bezier_path"`
	// PauseHierarchyTransform freezes the sun/planet/moon orbit.
	PauseHierarchyTransform bool `toml:"pause_hierarchy_transform"`
	// PlanetOrbitSpeed is the planet's rotation about world Y in degrees per tick.
	PlanetOrbitSpeed float32 `toml:"planet_orbit_speed"`
	// MoonOrbitSpeed is the moon's rotation about X in degrees per tick.
	MoonOrbitSpeed float32 `toml:"moon_orbit_speed"`
	// ShowInactiveCamera lights the scene from the inactive camera with a transient spot light.
	ShowInactiveCamera bool `toml:"show_inactive_camera"`
	// ShowBezierPath draws the animated light's path as a line strip.
	ShowBezierPath bool `toml:"show_bezier_path"`
	// LightPointSize is the marker size in pixels.
	LightPointSize float32 `toml:"light_point_size"`
}

// Default returns the toggles the renderer starts with when no config file is supplied.
//
// Returns:
//   - RenderConfig: the default configuration
func Default() RenderConfig {
	return RenderConfig{
		ShowLightsAsPoints:      true,
		UseBlinnCorrection:      false,
		UseDiffuseMap:           true,
		UseNormalMap:            true,
		Sunlight:                false,
		PauseBezierPath:         false,
		PauseHierarchyTransform: false,
		PlanetOrbitSpeed:        1,
		MoonOrbitSpeed:          1,
		ShowInactiveCamera:      true,
		ShowBezierPath:          true,
		LightPointSize:          15,
	}
}

// Decode parses TOML bytes on top of the defaults, so keys absent from the document keep their default value.
// Unknown keys are rejected to catch typos in hand-edited files.
//
// Parameters:
//   - data: the TOML document
//
// Returns:
//   - RenderConfig: the decoded configuration
//   - error: error if the document is malformed or contains unknown keys
func Decode(data []byte) (RenderConfig, error) {
	cfg := Default()
	dec := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return Default(), fmt.Errorf("failed to decode render config: %w", err)
	}
	if cfg.LightPointSize <= 0 {
		return Default(), fmt.Errorf("light_point_size must be positive, got %v", cfg.LightPointSize)
	}
	return cfg, nil
}

// Load reads a TOML config file. A missing file is not an error; the defaults are returned instead.
//
// Parameters:
//   - path: the config file path
//
// Returns:
//   - RenderConfig: the loaded configuration
//   - error: error if the file exists but cannot be read or decoded
func Load(path string) (RenderConfig, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return Default(), fmt.Errorf("failed to read render config %s: %w", path, err)
	}
	cfg, err := Decode(data)
	if err != nil {
		return Default(), fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg as TOML to path, replacing any existing file.
//
// Parameters:
//   - path: the config file path
//   - cfg: the configuration to persist
//
// Returns:
//   - error: error if encoding or writing fails
func Save(path string, cfg RenderConfig) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode render config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write render config %s: %w", path, err)
	}
	return nil
}
