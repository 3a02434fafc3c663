package opdesc

import (
	"fmt"
	"reflect"
)

// Validate checks and normalizes cfg against every parameter descriptor, in
// insertion order, mutating cfg in place with defaults and filtered values.
// A nil inspector falls back to DefaultInspector; callers owning descriptors
// should inject their own instance.
//
// Per parameter: the effective value is resolved (default/static policy,
// prepend/append), string values pass through cfg.Inject, then required,
// type, filter, and length checks run. A failed required check halts that
// parameter's remaining checks; a failed type check records the problem,
// writes the unfiltered value back, and halts that parameter. Min and max
// length checks are both evaluated whenever declared.
//
// On failure the returned *ValidationError carries the full ordered problem
// list. cfg may have been partially mutated for parameters processed before
// (and, in the type-check branch, including) the failing one.
func (c *Command) Validate(cfg *Config, insp *Inspector) error {
	if insp == nil {
		insp = DefaultInspector()
	}
	typeValidation := insp.TypeValidation()

	var problems []string
	for _, name := range c.order {
		param := c.params[name]

		current := cfg.Get(name)
		value := param.Value(current)

		if s, ok := value.(string); ok && s != "" {
			value = cfg.Inject(s)
		}

		if param.Required() && (value == nil || value == "") {
			problem := fmt.Sprintf("requires that the %s argument be supplied", name)
			if doc := param.Doc(); doc != "" {
				problem += " (" + doc + ")"
			}
			problems = append(problems, problem)
			continue
		}

		if typeValidation && value != nil && param.Type() != "" {
			if err := insp.ValidateConstraint(param.Type(), value, param.TypeArgs()...); err != nil {
				problems = append(problems, name+": "+err.Error())
				cfg.Set(name, value)
				continue
			}
		}

		value = param.Filter(value)

		if !reflect.DeepEqual(value, current) {
			cfg.Set(name, value)
		}

		if min := param.MinLength(); min > 0 && valueLength(value) < min {
			problems = append(problems, fmt.Sprintf("requires that the %s argument be >= %d characters", name, min))
		}
		if max := param.MaxLength(); max > 0 && valueLength(value) > max {
			problems = append(problems, fmt.Sprintf("requires that the %s argument be <= %d characters", name, max))
		}
	}

	if len(problems) > 0 {
		return &ValidationError{Command: c.name, Problems: problems}
	}
	return nil
}

// valueLength measures a value for length checks: byte length for strings,
// element count for slices, arrays, and maps, and the length of the printed
// form otherwise.
func valueLength(value any) int {
	if value == nil {
		return 0
	}
	if s, ok := value.(string); ok {
		return len(s)
	}
	switch rv := reflect.ValueOf(value); rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len()
	default:
		return len(fmt.Sprint(value))
	}
}
