// Package config loads the settings of the demo (window, logging and rendering) from TOML or YAML.
package config

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bloeys/nrend/lights"
	"github.com/bloeys/nrend/meshes"
	"github.com/bloeys/nrend/shaders"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

var ErrUnknownFormat = errors.New("unknown config file format, expected .toml, .yaml or .yml")

type Window struct {
	Title           string `toml:"title" yaml:"title"`
	Width           int32  `toml:"width" yaml:"width"`
	Height          int32  `toml:"height" yaml:"height"`
	VSync           bool   `toml:"vsync" yaml:"vsync"`
	MSAA            bool   `toml:"msaa" yaml:"msaa"`
	SrgbFramebuffer bool   `toml:"srgb_framebuffer" yaml:"srgb_framebuffer"`
}

type Log struct {
	// File is where logs are written in addition to stdout/stderr. Empty disables file logging.
	File      string `toml:"file" yaml:"file"`
	MaxSizeMB int    `toml:"max_size_mb" yaml:"max_size_mb"`
}

type Render struct {
	ProgramCacheSize        int `toml:"program_cache_size" yaml:"program_cache_size"`
	SphereLatitudeSegments  int `toml:"sphere_latitude_segments" yaml:"sphere_latitude_segments"`
	SphereLongitudeSegments int `toml:"sphere_longitude_segments" yaml:"sphere_longitude_segments"`
	NumberOfLights          int `toml:"number_of_lights" yaml:"number_of_lights"`
}

type Config struct {
	Window Window `toml:"window" yaml:"window"`
	Log    Log    `toml:"log" yaml:"log"`
	Render Render `toml:"render" yaml:"render"`
}

func Default() Config {
	return Config{
		Window: Window{
			Title:           "nRend",
			Width:           1280,
			Height:          720,
			VSync:           true,
			MSAA:            true,
			SrgbFramebuffer: true,
		},
		Log: Log{
			MaxSizeMB: 10,
		},
		Render: Render{
			ProgramCacheSize:        shaders.DefaultProgramCacheSize,
			SphereLatitudeSegments:  meshes.DefaultSphereSegments,
			SphereLongitudeSegments: meshes.DefaultSphereSegments,
			NumberOfLights:          2,
		},
	}
}

// FieldError is a config value that is out of range
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("invalid config value '%s': %s", e.Field, e.Reason)
}

func (c *Config) Validate() error {

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return &FieldError{Field: "window", Reason: fmt.Sprintf("size must be positive, got %dx%d", c.Window.Width, c.Window.Height)}
	}

	if c.Log.File != "" && c.Log.MaxSizeMB <= 0 {
		return &FieldError{Field: "log.max_size_mb", Reason: "must be positive when a log file is set"}
	}

	if c.Render.ProgramCacheSize <= 0 {
		return &FieldError{Field: "render.program_cache_size", Reason: "must be positive"}
	}

	if c.Render.SphereLatitudeSegments < meshes.MinSphereLatitudeSegments {
		return &FieldError{Field: "render.sphere_latitude_segments", Reason: fmt.Sprintf("must be at least %d", meshes.MinSphereLatitudeSegments)}
	}

	if c.Render.SphereLongitudeSegments < meshes.MinSphereLongitudeSegments {
		return &FieldError{Field: "render.sphere_longitude_segments", Reason: fmt.Sprintf("must be at least %d", meshes.MinSphereLongitudeSegments)}
	}

	if c.Render.NumberOfLights < 1 || c.Render.NumberOfLights > lights.MaxLights {
		return &FieldError{Field: "render.number_of_lights", Reason: fmt.Sprintf("must be between 1 and %d", lights.MaxLights)}
	}

	return nil
}

// Decoder is implemented by the decoders of both toml and yaml
type Decoder interface {
	Decode(v any) error
}

// DecoderFunc creates a Decoder reading from r
type DecoderFunc func(r io.Reader) Decoder

func NewDecoderFunc[T Decoder](f func(r io.Reader) T) DecoderFunc {
	return func(r io.Reader) Decoder { return f(r) }
}

// DecoderFor picks a decoder by file extension
func DecoderFor(path string) (DecoderFunc, error) {

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return NewDecoderFunc(func(r io.Reader) *toml.Decoder {
			return toml.NewDecoder(r).DisallowUnknownFields()
		}), nil
	case ".yaml", ".yml":
		return NewDecoderFunc(func(r io.Reader) *yaml.Decoder {
			d := yaml.NewDecoder(r)
			d.KnownFields(true)
			return d
		}), nil
	default:
		return nil, ErrUnknownFormat
	}
}

// Read decodes a config from r over the defaults, so missing fields keep their default values
func Read(r io.Reader, f DecoderFunc) (Config, error) {

	c := Default()
	if err := f(r).Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, err
	}

	if err := c.Validate(); err != nil {
		return Config{}, err
	}

	return c, nil
}

// Load reads and validates the config file at path
func Load(path string) (Config, error) {

	f, err := DecoderFor(path)
	if err != nil {
		return Config{}, err
	}

	fp, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer fp.Close()

	c, err := Read(bufio.NewReader(fp), f)
	if err != nil {
		return Config{}, fmt.Errorf("failed to load config '%s': %w", path, err)
	}

	return c, nil
}
