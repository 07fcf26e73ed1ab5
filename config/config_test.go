package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bloeys/nrend/meshes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {

	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	c := Default()
	assert.NoError(t, c.Validate())
	assert.Equal(t, meshes.DefaultSphereSegments, c.Render.SphereLatitudeSegments)
}

func TestLoadTOML(t *testing.T) {

	path := writeFile(t, "nrend.toml", `
[window]
title = "demo"
width = 800
vsync = false

[render]
number_of_lights = 4
`)

	c, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "demo", c.Window.Title)
	assert.Equal(t, int32(800), c.Window.Width)
	assert.False(t, c.Window.VSync)
	assert.Equal(t, 4, c.Render.NumberOfLights)

	// Untouched fields keep their defaults
	def := Default()
	assert.Equal(t, def.Window.Height, c.Window.Height)
	assert.Equal(t, def.Window.MSAA, c.Window.MSAA)
	assert.Equal(t, def.Render.ProgramCacheSize, c.Render.ProgramCacheSize)
}

func TestLoadYAML(t *testing.T) {

	path := writeFile(t, "nrend.yml", `
log:
  file: logs/nrend.log
  max_size_mb: 5
render:
  sphere_latitude_segments: 12
  sphere_longitude_segments: 24
`)

	c, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "logs/nrend.log", c.Log.File)
	assert.Equal(t, 5, c.Log.MaxSizeMB)
	assert.Equal(t, 12, c.Render.SphereLatitudeSegments)
	assert.Equal(t, 24, c.Render.SphereLongitudeSegments)
	assert.Equal(t, Default().Window.Title, c.Window.Title)
}

func TestEmptyYAMLGivesDefaults(t *testing.T) {

	c, err := Load(writeFile(t, "empty.yaml", ""))
	require.NoError(t, err)
	assert.Equal(t, Default(), c)
}

func TestLoadErrors(t *testing.T) {

	_, err := Load(writeFile(t, "nrend.json", "{}"))
	assert.ErrorIs(t, err, ErrUnknownFormat)

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = Load(writeFile(t, "typo.toml", "[window]\nwidht = 10\n"))
	assert.Error(t, err)

	_, err = Load(writeFile(t, "typo.yaml", "window:\n  widht: 10\n"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {

	tests := []struct {
		name  string
		field string
		edit  func(c *Config)
	}{
		{"zero width", "window", func(c *Config) { c.Window.Width = 0 }},
		{"log file without size", "log.max_size_mb", func(c *Config) { c.Log.File = "a.log"; c.Log.MaxSizeMB = 0 }},
		{"no program cache", "render.program_cache_size", func(c *Config) { c.Render.ProgramCacheSize = 0 }},
		{"flat sphere", "render.sphere_latitude_segments", func(c *Config) { c.Render.SphereLatitudeSegments = 1 }},
		{"thin sphere", "render.sphere_longitude_segments", func(c *Config) { c.Render.SphereLongitudeSegments = 2 }},
		{"no lights", "render.number_of_lights", func(c *Config) { c.Render.NumberOfLights = 0 }},
		{"too many lights", "render.number_of_lights", func(c *Config) { c.Render.NumberOfLights = 2000 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {

			c := Default()
			tt.edit(&c)

			var fe *FieldError
			require.ErrorAs(t, c.Validate(), &fe)
			assert.Equal(t, tt.field, fe.Field)
		})
	}
}

func TestReadValidates(t *testing.T) {

	f, err := DecoderFor("x.toml")
	require.NoError(t, err)

	_, err = Read(strings.NewReader("[render]\nnumber_of_lights = 0\n"), f)
	var fe *FieldError
	assert.ErrorAs(t, err, &fe)
}
