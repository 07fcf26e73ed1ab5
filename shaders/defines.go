package shaders

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/bloeys/nrend/assert"
	"github.com/iancoleman/orderedmap"
)

var defineNameRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Defines are preprocessor macros used to select a variant of a shader source.
// Entries keep their insertion order, which is the order they are emitted in.
// A nil *Defines reads as empty. Use NewDefines before setting anything.
type Defines struct {
	m *orderedmap.OrderedMap
}

func NewDefines() *Defines {
	return &Defines{m: orderedmap.New()}
}

// Set adds or replaces `#define name value`. Replacing keeps the original position.
// name must be an identifier and value must fit on one line.
func (d *Defines) Set(name, value string) *Defines {
	assert.T(d != nil, "Set '%s' on nil Defines", name)
	assert.T(defineNameRegex.MatchString(name), "Invalid define name '%s'", name)
	assert.T(!strings.ContainsAny(value, "\r\n"), "Value of define '%s' spans multiple lines", name)
	d.m.Set(name, value)
	return d
}

func (d *Defines) SetInt(name string, value int) *Defines {
	return d.Set(name, strconv.Itoa(value))
}

// SetFlag adds or replaces a valueless `#define name`
func (d *Defines) SetFlag(name string) *Defines {
	assert.T(d != nil, "SetFlag '%s' on nil Defines", name)
	assert.T(defineNameRegex.MatchString(name), "Invalid define name '%s'", name)
	d.m.Set(name, nil)
	return d
}

// Get returns the value of name. isFlag is true for valueless defines.
func (d *Defines) Get(name string) (value string, isFlag, ok bool) {

	if d == nil {
		return "", false, false
	}

	v, ok := d.m.Get(name)
	if !ok {
		return "", false, false
	}

	if v == nil {
		return "", true, true
	}

	return v.(string), false, true
}

func (d *Defines) Has(name string) bool {
	_, _, ok := d.Get(name)
	return ok
}

func (d *Defines) Delete(name string) {
	if d != nil {
		d.m.Delete(name)
	}
}

// Keys returns the names in insertion order
func (d *Defines) Keys() []string {

	if d == nil {
		return nil
	}

	// The map's own key slice must not be reordered
	return append([]string(nil), d.m.Keys()...)
}

func (d *Defines) Len() int {
	return len(d.Keys())
}

func (d *Defines) Clone() *Defines {

	c := NewDefines()
	for _, k := range d.Keys() {
		v, _ := d.m.Get(k)
		c.m.Set(k, v)
	}

	return c
}

// Text returns one '#define' line per entry, in insertion order
func (d *Defines) Text() string {

	var sb strings.Builder
	for _, k := range d.Keys() {

		v, isFlag, _ := d.Get(k)

		sb.WriteString("#define ")
		sb.WriteString(k)
		if !isFlag {
			sb.WriteByte(' ')
			sb.WriteString(v)
		}
		sb.WriteByte('\n')
	}

	return sb.String()
}

// CanonicalKey is equal for two Defines holding the same entries, regardless of insertion order.
// Names and values are quoted so no two different sets of entries share a key.
func (d *Defines) CanonicalKey() string {

	keys := d.Keys()
	sort.Strings(keys)

	var sb strings.Builder
	for i, k := range keys {

		if i > 0 {
			sb.WriteByte(';')
		}

		v, isFlag, _ := d.Get(k)
		sb.WriteString(strconv.Quote(k))
		if !isFlag {
			sb.WriteByte('=')
			sb.WriteString(strconv.Quote(v))
		}
	}

	return sb.String()
}
