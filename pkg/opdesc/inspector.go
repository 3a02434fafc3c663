package opdesc

import (
	"fmt"
	"math"
	"reflect"
	"regexp"
	"strconv"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/vexley/opdesc/internal/utils"
)

// ConstraintFunc checks a value against a declared type. A nil return is the
// success sentinel; any error becomes part of the validation report.
type ConstraintFunc func(value any, args ...string) error

// Inspector owns the constraint registry and the global type-validation
// flag. Commands validated with a nil inspector fall back to the
// process-wide default instance.
type Inspector struct {
	mu             sync.RWMutex
	typeValidation bool
	constraints    *utils.Registry[string, ConstraintFunc]
	validate       *validator.Validate
}

// NewInspector creates an inspector with type validation enabled and the
// built-in constraints registered.
func NewInspector() *Inspector {
	i := &Inspector{
		typeValidation: true,
		constraints:    utils.NewRegistry[string, ConstraintFunc](),
		validate:       validator.New(),
	}
	i.registerBuiltins()
	return i
}

var (
	defaultInspector     *Inspector
	defaultInspectorOnce sync.Once
)

// DefaultInspector returns the process-wide inspector instance
func DefaultInspector() *Inspector {
	defaultInspectorOnce.Do(func() {
		defaultInspector = NewInspector()
	})
	return defaultInspector
}

// TypeValidation reports whether type constraints are checked during
// validation
func (i *Inspector) TypeValidation() bool {
	i.mu.RLock()
	defer i.mu.RUnlock()

	return i.typeValidation
}

// SetTypeValidation toggles type-constraint checking globally
func (i *Inspector) SetTypeValidation(enabled bool) {
	i.mu.Lock()
	defer i.mu.Unlock()

	i.typeValidation = enabled
}

// RegisterConstraint adds a custom constraint under a type name, replacing
// any built-in with that name.
func (i *Inspector) RegisterConstraint(name string, fn ConstraintFunc) {
	i.constraints.Register(name, fn)
}

// HasConstraint reports whether a type name has a registered constraint
func (i *Inspector) HasConstraint(name string) bool {
	return i.constraints.Has(name)
}

// ValidateConstraint checks a value against the named type constraint.
// Unregistered type names degrade silently to success.
func (i *Inspector) ValidateConstraint(typ string, value any, args ...string) error {
	fn, exists := i.constraints.Get(typ)
	if !exists {
		return nil
	}
	return fn(value, args...)
}

func (i *Inspector) registerBuiltins() {
	i.constraints.Register("string", checkString)
	i.constraints.Register("integer", checkInteger)
	i.constraints.Register("float", checkFloat)
	i.constraints.Register("boolean", checkBoolean)
	i.constraints.Register("array", checkArray)
	i.constraints.Register("enum", checkEnum)
	i.constraints.Register("regex", checkRegex)
	i.constraints.Register("date", checkDate)

	// Format constraints backed by validator tags
	for _, tag := range []string{"email", "url", "uuid", "ip", "hostname"} {
		i.constraints.Register(tag, i.tagConstraint(tag))
	}
}

// tagConstraint adapts a go-playground/validator tag into a ConstraintFunc
func (i *Inspector) tagConstraint(tag string) ConstraintFunc {
	return func(value any, _ ...string) error {
		s, ok := value.(string)
		if !ok {
			return fmt.Errorf("value must be a string to satisfy %s", tag)
		}
		if err := i.validate.Var(s, tag); err != nil {
			return fmt.Errorf("value %q is not a valid %s", s, tag)
		}
		return nil
	}
}

func checkString(value any, _ ...string) error {
	if _, ok := value.(string); !ok {
		return fmt.Errorf("value must be a string, got %T", value)
	}
	return nil
}

func checkInteger(value any, _ ...string) error {
	switch v := value.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return nil
	case float64:
		if v != math.Trunc(v) {
			return fmt.Errorf("value %v is not an integer", v)
		}
		return nil
	case string:
		if _, err := strconv.ParseInt(v, 10, 64); err != nil {
			return fmt.Errorf("value %q is not an integer", v)
		}
		return nil
	default:
		return fmt.Errorf("value must be an integer, got %T", value)
	}
}

func checkFloat(value any, _ ...string) error {
	switch v := value.(type) {
	case float32, float64,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64:
		return nil
	case string:
		if _, err := strconv.ParseFloat(v, 64); err != nil {
			return fmt.Errorf("value %q is not a number", v)
		}
		return nil
	default:
		return fmt.Errorf("value must be a number, got %T", value)
	}
}

func checkBoolean(value any, _ ...string) error {
	switch v := value.(type) {
	case bool:
		return nil
	case string:
		if _, err := strconv.ParseBool(v); err != nil {
			return fmt.Errorf("value %q is not a boolean", v)
		}
		return nil
	default:
		return fmt.Errorf("value must be a boolean, got %T", value)
	}
}

func checkArray(value any, _ ...string) error {
	switch reflect.ValueOf(value).Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return nil
	default:
		return fmt.Errorf("value must be an array, got %T", value)
	}
}

func checkEnum(value any, args ...string) error {
	s := fmt.Sprint(value)
	for _, allowed := range args {
		if s == allowed {
			return nil
		}
	}
	return fmt.Errorf("value %q is not one of the allowed values", s)
}

func checkRegex(value any, args ...string) error {
	if len(args) == 0 {
		return nil
	}
	s := fmt.Sprint(value)
	matched, err := regexp.MatchString(args[0], s)
	if err != nil {
		return fmt.Errorf("invalid pattern %q: %v", args[0], err)
	}
	if !matched {
		return fmt.Errorf("value %q does not match pattern %q", s, args[0])
	}
	return nil
}

func checkDate(value any, args ...string) error {
	layout := time.RFC3339
	if len(args) > 0 && args[0] != "" {
		layout = args[0]
	}
	s, ok := value.(string)
	if !ok {
		return fmt.Errorf("value must be a date string, got %T", value)
	}
	if _, err := time.Parse(layout, s); err != nil {
		return fmt.Errorf("value %q is not a valid date for layout %q", s, layout)
	}
	return nil
}
