package opdesc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultFilters_Builtins(t *testing.T) {
	filters := DefaultFilters()

	tests := []struct {
		filter   string
		value    any
		expected any
	}{
		{"trim", "  padded  ", "padded"},
		{"lower", "LOUD", "loud"},
		{"upper", "quiet", "QUIET"},
		{"ucfirst", "widget", "Widget"},
		{"ucfirst", "", ""},
		{"base64_encode", "hello", "aGVsbG8="},
		{"base64_decode", "aGVsbG8=", "hello"},
		{"base64_decode", "not base64!!!", "not base64!!!"},
		{"json_encode", map[string]int{"n": 1}, `{"n":1}`},
		{"json_encode", []string{"a", "b"}, `["a","b"]`},
		{"trim", 42, 42},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, filters.Apply(tt.filter, tt.value),
			"filter %s on %v", tt.filter, tt.value)
	}
}

func TestDefaultFilters_UcfirstInvalidUTF8(t *testing.T) {
	filters := DefaultFilters()

	// Raw request bytes are not guaranteed to be valid UTF-8; ucfirst must
	// pass such values through instead of panicking.
	tests := []struct {
		value    string
		expected string
	}{
		{"\xff", "\xff"},
		{"\xffrest", "\xffrest"},
		{"�keep", "�keep"},
		{"ok", "Ok"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, filters.Apply("ucfirst", tt.value), "value %q", tt.value)
	}
}

func TestFilterRegistry_UnknownNamePassesThrough(t *testing.T) {
	assert.Equal(t, "value", DefaultFilters().Apply("no_such_filter", "value"))
}

func TestFilterRegistry_RegisterAndNames(t *testing.T) {
	registry := NewFilterRegistry()
	assert.False(t, registry.Has("shout"))

	registry.Register("shout", func(value any) any {
		if s, ok := value.(string); ok {
			return s + "!"
		}
		return value
	})

	assert.True(t, registry.Has("shout"))
	assert.Contains(t, registry.Names(), "shout")
	assert.Equal(t, "hey!", registry.Apply("shout", "hey"))
}

func TestDefaultFilters_SameInstance(t *testing.T) {
	assert.Same(t, DefaultFilters(), DefaultFilters())
}
