package opdesc

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfig_SeedKeysSorted(t *testing.T) {
	cfg := NewConfig(map[string]any{"zebra": 1, "apple": 2, "mango": 3})
	assert.Equal(t, []string{"apple", "mango", "zebra"}, cfg.Keys())
}

func TestConfig_SetGetDelete(t *testing.T) {
	cfg := NewConfig(nil)

	assert.False(t, cfg.Has("key"))
	assert.Nil(t, cfg.Get("key"))

	cfg.Set("key", "value")
	assert.True(t, cfg.Has("key"))
	assert.Equal(t, "value", cfg.Get("key"))
	assert.Equal(t, 1, cfg.Len())

	cfg.Set("key", "replaced")
	assert.Equal(t, "replaced", cfg.Get("key"))
	assert.Equal(t, 1, cfg.Len(), "replacing a value does not grow the store")

	cfg.Delete("key")
	assert.False(t, cfg.Has("key"))
	assert.Zero(t, cfg.Len())
}

func TestConfig_InsertionOrder(t *testing.T) {
	cfg := NewConfig(nil)
	cfg.Set("c", 1)
	cfg.Set("a", 2)
	cfg.Set("b", 3)
	cfg.Delete("a")
	cfg.Set("a", 4)

	assert.Equal(t, []string{"c", "b", "a"}, cfg.Keys())
}

func TestConfig_All(t *testing.T) {
	cfg := NewConfig(map[string]any{"a": 1})
	all := cfg.All()
	all["a"] = 99

	assert.Equal(t, 1, cfg.Get("a"), "All returns a copy")
}

func TestConfig_Inject(t *testing.T) {
	cfg := NewConfig(map[string]any{
		"bucket": "photos",
		"count":  3,
	})

	tests := []struct {
		name     string
		text     string
		expected string
	}{
		{"Simple", "s3://{{bucket}}/key", "s3://photos/key"},
		{"Whitespace", "s3://{{ bucket }}/key", "s3://photos/key"},
		{"NonString", "limit={{count}}", "limit=3"},
		{"Multiple", "{{bucket}}-{{count}}", "photos-3"},
		{"UnresolvedLeftIntact", "{{missing}}", "{{missing}}"},
		{"NoReferences", "plain text", "plain text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, cfg.Inject(tt.text))
		})
	}
}

func TestConfig_InjectUUID(t *testing.T) {
	cfg := NewConfig(nil)
	uuidPattern := regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)

	assert.Regexp(t, uuidPattern, cfg.Inject("{{uuid}}"))
	assert.NotEqual(t, cfg.Inject("{{uuid}}"), cfg.Inject("{{uuid}}"), "each injection is fresh")
}

func TestConfig_InjectUUIDOverridden(t *testing.T) {
	cfg := NewConfig(map[string]any{"uuid": "fixed"})
	assert.Equal(t, "fixed", cfg.Inject("{{uuid}}"), "a set uuid key wins over the generator")
}
