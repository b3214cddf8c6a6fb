// Package config loads viewer settings from a YAML file with environment
// variable overrides.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/phanxgames/battleground"
)

// Window holds window settings.
type Window struct {
	Title  string `yaml:"title" env:"BATTLEGROUND_WINDOW_TITLE"`
	Width  int    `yaml:"width" env:"BATTLEGROUND_WINDOW_WIDTH"`
	Height int    `yaml:"height" env:"BATTLEGROUND_WINDOW_HEIGHT"`
}

// Camera holds camera controller settings.
type Camera struct {
	ZoomStep   float64 `yaml:"zoom_step" env:"BATTLEGROUND_CAMERA_ZOOM_STEP"`
	PanButton  string  `yaml:"pan_button" env:"BATTLEGROUND_CAMERA_PAN_BUTTON"`
	ClampToMap bool    `yaml:"clamp_to_map" env:"BATTLEGROUND_CAMERA_CLAMP_TO_MAP"`
}

// Map holds tile map settings. An empty Tileset selects generated flat
// colored tiles.
type Map struct {
	Tileset  string `yaml:"tileset" env:"BATTLEGROUND_MAP_TILESET"`
	TileSize int    `yaml:"tile_size" env:"BATTLEGROUND_MAP_TILE_SIZE"`
	Width    int    `yaml:"width" env:"BATTLEGROUND_MAP_WIDTH"`
	Height   int    `yaml:"height" env:"BATTLEGROUND_MAP_HEIGHT"`
	Seed     uint64 `yaml:"seed" env:"BATTLEGROUND_MAP_SEED"`
}

// Noise holds the background noise layer settings.
type Noise struct {
	Seed        uint64  `yaml:"seed" env:"BATTLEGROUND_NOISE_SEED"`
	Octaves     int     `yaml:"octaves" env:"BATTLEGROUND_NOISE_OCTAVES"`
	Frequency   float64 `yaml:"frequency" env:"BATTLEGROUND_NOISE_FREQUENCY"`
	Persistence float64 `yaml:"persistence" env:"BATTLEGROUND_NOISE_PERSISTENCE"`
	Lacunarity  float64 `yaml:"lacunarity" env:"BATTLEGROUND_NOISE_LACUNARITY"`
	Opacity     float64 `yaml:"opacity" env:"BATTLEGROUND_NOISE_OPACITY"`
	DriftX      float64 `yaml:"drift_x" env:"BATTLEGROUND_NOISE_DRIFT_X"`
	DriftY      float64 `yaml:"drift_y" env:"BATTLEGROUND_NOISE_DRIFT_Y"`
}

// Config is the full viewer configuration.
type Config struct {
	Window Window `yaml:"window"`
	Camera Camera `yaml:"camera"`
	Map    Map    `yaml:"map"`
	Noise  Noise  `yaml:"noise"`

	Debug         bool   `yaml:"debug" env:"BATTLEGROUND_DEBUG"`
	ShowFPS       bool   `yaml:"show_fps" env:"BATTLEGROUND_SHOW_FPS"`
	ResourcesDir  string `yaml:"resources_dir" env:"BATTLEGROUND_RESOURCES_DIR"`
	ScreenshotDir string `yaml:"screenshot_dir" env:"BATTLEGROUND_SCREENSHOT_DIR"`
}

// Default returns the built-in configuration.
func Default() Config {
	p := battleground.DefaultNoiseParams()
	return Config{
		Window: Window{Title: "battleground", Width: 1280, Height: 720},
		Camera: Camera{ZoomStep: battleground.DefaultZoomStep, PanButton: "left"},
		Map:    Map{TileSize: 32, Width: 64, Height: 64, Seed: 1},
		Noise: Noise{
			Seed:        7,
			Octaves:     p.Octaves,
			Frequency:   p.Frequency,
			Persistence: p.Persistence,
			Lacunarity:  p.Lacunarity,
			Opacity:     0.25,
			DriftX:      6,
			DriftY:      3,
		},
		ResourcesDir:  ".",
		ScreenshotDir: "screenshots",
	}
}

// Parse decodes YAML over the defaults, applies environment overrides and
// validates the result. Unknown keys are an error.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if len(bytes.TrimSpace(data)) > 0 {
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return Config{}, fmt.Errorf("decode config: %w", err)
		}
	}
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Load reads path and parses it. An empty path yields the defaults with
// environment overrides.
func Load(path string) (Config, error) {
	if path == "" {
		return Parse(nil)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports every invalid field.
func (c Config) Validate() error {
	var errs []error
	if c.Window.Width < 0 || c.Window.Height < 0 {
		errs = append(errs, fmt.Errorf("window: negative size %dx%d", c.Window.Width, c.Window.Height))
	}
	if c.Camera.ZoomStep <= 0 {
		errs = append(errs, fmt.Errorf("camera.zoom_step: must be positive, got %v", c.Camera.ZoomStep))
	}
	if _, err := battleground.ParseMouseButton(c.Camera.PanButton); err != nil {
		errs = append(errs, fmt.Errorf("camera.pan_button: %w", err))
	}
	if c.Map.TileSize <= 0 {
		errs = append(errs, fmt.Errorf("map.tile_size: must be positive, got %d", c.Map.TileSize))
	}
	if c.Map.Width <= 0 || c.Map.Height <= 0 {
		errs = append(errs, fmt.Errorf("map: invalid size %dx%d", c.Map.Width, c.Map.Height))
	}
	if c.Noise.Octaves < 1 {
		errs = append(errs, fmt.Errorf("noise.octaves: must be at least 1, got %d", c.Noise.Octaves))
	}
	if c.Noise.Opacity < 0 || c.Noise.Opacity > 1 {
		errs = append(errs, fmt.Errorf("noise.opacity: must be in [0,1], got %v", c.Noise.Opacity))
	}
	return errors.Join(errs...)
}

// PanButton returns the parsed pan button. Validate guarantees it parses.
func (c Config) PanButton() battleground.MouseButton {
	b, err := battleground.ParseMouseButton(c.Camera.PanButton)
	if err != nil {
		return battleground.MouseButtonLeft
	}
	return b
}

// NoiseParams converts the noise section for battleground.NewValueNoise.
func (c Config) NoiseParams() battleground.NoiseParams {
	return battleground.NoiseParams{
		Octaves:     c.Noise.Octaves,
		Frequency:   c.Noise.Frequency,
		Amplitude:   1,
		Persistence: c.Noise.Persistence,
		Lacunarity:  c.Noise.Lacunarity,
	}
}
