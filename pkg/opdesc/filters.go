package opdesc

import (
	"encoding/base64"
	"encoding/json"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/vexley/opdesc/internal/utils"
)

// FilterFunc transforms a parameter value. Filters never fail: a value a
// filter cannot handle passes through unchanged.
type FilterFunc func(value any) any

// FilterRegistry maps filter names to functions for Param filter chains.
type FilterRegistry struct {
	registry *utils.Registry[string, FilterFunc]
}

// NewFilterRegistry creates an empty filter registry
func NewFilterRegistry() *FilterRegistry {
	return &FilterRegistry{registry: utils.NewRegistry[string, FilterFunc]()}
}

// Register adds a named filter, replacing any existing one
func (r *FilterRegistry) Register(name string, fn FilterFunc) {
	r.registry.Register(name, fn)
}

// Has reports whether a filter name is registered
func (r *FilterRegistry) Has(name string) bool {
	return r.registry.Has(name)
}

// Names returns all registered filter names
func (r *FilterRegistry) Names() []string {
	return r.registry.List()
}

// Apply runs a single named filter over a value. Unknown names pass the
// value through unchanged.
func (r *FilterRegistry) Apply(name string, value any) any {
	fn, exists := r.registry.Get(name)
	if !exists {
		return value
	}
	return fn(value)
}

var (
	defaultFilters     *FilterRegistry
	defaultFiltersOnce sync.Once
)

// DefaultFilters returns the process-wide filter registry with the built-in
// string filters pre-registered.
func DefaultFilters() *FilterRegistry {
	defaultFiltersOnce.Do(func() {
		defaultFilters = NewFilterRegistry()
		registerBuiltinFilters(defaultFilters)
	})
	return defaultFilters
}

func registerBuiltinFilters(r *FilterRegistry) {
	r.Register("trim", stringFilter(strings.TrimSpace))
	r.Register("lower", stringFilter(strings.ToLower))
	r.Register("upper", stringFilter(strings.ToUpper))
	r.Register("ucfirst", stringFilter(upperFirst))
	r.Register("base64_encode", stringFilter(func(s string) string {
		return base64.StdEncoding.EncodeToString([]byte(s))
	}))
	r.Register("base64_decode", stringFilter(func(s string) string {
		decoded, err := base64.StdEncoding.DecodeString(s)
		if err != nil {
			return s
		}
		return string(decoded)
	}))
	r.Register("json_encode", func(value any) any {
		encoded, err := json.Marshal(value)
		if err != nil {
			return value
		}
		return string(encoded)
	})
}

// stringFilter lifts a string transform into a FilterFunc that ignores
// non-string values
func stringFilter(fn func(string) string) FilterFunc {
	return func(value any) any {
		if s, ok := value.(string); ok {
			return fn(s)
		}
		return value
	}
}

func upperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError && size <= 1 {
		// empty or invalid UTF-8: leave untouched
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
