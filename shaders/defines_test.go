package shaders

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefinesText(t *testing.T) {

	d := NewDefines().SetFlag("HAS_MAP").SetInt("NUMBER_OF_LIGHTS", 3).Set("GAMMA", "2.2")
	assert.Equal(t, "#define HAS_MAP\n#define NUMBER_OF_LIGHTS 3\n#define GAMMA 2.2\n", d.Text())
	assert.Equal(t, []string{"HAS_MAP", "NUMBER_OF_LIGHTS", "GAMMA"}, d.Keys())

	// Replacing keeps the position
	d.SetInt("NUMBER_OF_LIGHTS", 4)
	assert.Equal(t, "#define HAS_MAP\n#define NUMBER_OF_LIGHTS 4\n#define GAMMA 2.2\n", d.Text())

	v, isFlag, ok := d.Get("HAS_MAP")
	assert.True(t, ok)
	assert.True(t, isFlag)
	assert.Empty(t, v)

	d.Delete("HAS_MAP")
	assert.False(t, d.Has("HAS_MAP"))
	assert.Equal(t, 2, d.Len())

	var nilDefines *Defines
	assert.Empty(t, nilDefines.Text())
	assert.Empty(t, nilDefines.CanonicalKey())
	assert.Equal(t, 0, nilDefines.Clone().Len())
}

func TestDefinesCanonicalKeyIgnoresOrder(t *testing.T) {

	a := NewDefines().SetFlag("HAS_MAP").SetInt("NUMBER_OF_LIGHTS", 2)
	b := NewDefines().SetInt("NUMBER_OF_LIGHTS", 2).SetFlag("HAS_MAP")

	assert.Equal(t, a.CanonicalKey(), b.CanonicalKey())
	assert.Equal(t, `"HAS_MAP";"NUMBER_OF_LIGHTS"="2"`, a.CanonicalKey())
	assert.NotEqual(t, a.Text(), b.Text())

	// Computing the key doesn't reorder
	assert.Equal(t, []string{"NUMBER_OF_LIGHTS", "HAS_MAP"}, b.Keys())

	c := NewDefines().Set("HAS_MAP", "1").SetInt("NUMBER_OF_LIGHTS", 2)
	assert.NotEqual(t, a.CanonicalKey(), c.CanonicalKey())
}

func TestDefinesCanonicalKeyIsUnambiguous(t *testing.T) {

	// Separators inside values must not look like more entries
	packed := NewDefines().Set("A", "1;B")
	split := NewDefines().Set("A", "1").SetFlag("B")
	assert.NotEqual(t, packed.CanonicalKey(), split.CanonicalKey())

	assert.NotEqual(t, NewDefines().Set("A", "B=1").CanonicalKey(), NewDefines().SetFlag("A").Set("B", "1").CanonicalKey())

	// An empty value is not a flag
	assert.NotEqual(t, NewDefines().Set("A", "").CanonicalKey(), NewDefines().SetFlag("A").CanonicalKey())
}

func TestDefinesRejectBadInput(t *testing.T) {

	assert.Panics(t, func() { NewDefines().Set("A;B", "1") })
	assert.Panics(t, func() { NewDefines().SetFlag("1ABC") })
	assert.Panics(t, func() { NewDefines().SetFlag("") })
	assert.Panics(t, func() { NewDefines().Set("A", "1\n#define B") })

	var nilDefines *Defines
	assert.Panics(t, func() { nilDefines.SetFlag("A") })

	assert.NotPanics(t, func() { NewDefines().Set("_Under_1", "x * (y + 1)") })
}

func TestInjectDefines(t *testing.T) {

	defs := "#define A\n#define B 2\n"

	withMarker := "#version 410 core\n\n//#defines\n\nvoid main() {}\n"
	assert.Equal(t, "#version 410 core\n\n#define A\n#define B 2\n\nvoid main() {}\n", InjectDefines(withMarker, defs))

	// Indented marker still counts
	assert.Equal(t, "#version 410 core\n#define A\n#define B 2\n", InjectDefines("#version 410 core\n    //#defines\n", defs))

	noMarker := "\n#version 410 core\nvoid main() {}"
	assert.Equal(t, "\n#version 410 core\n#define A\n#define B 2\nvoid main() {}", InjectDefines(noMarker, defs))

	noVersion := "void main() {}"
	assert.Equal(t, "#define A\n#define B 2\nvoid main() {}", InjectDefines(noVersion, defs))

	// Empty defines remove the marker and leave everything else alone
	assert.Equal(t, "#version 410 core\n\nvoid main() {}", InjectDefines("#version 410 core\n//#defines\nvoid main() {}", ""))
	assert.Equal(t, noVersion, InjectDefines(noVersion, ""))
}
