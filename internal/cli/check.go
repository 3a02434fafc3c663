package cli

import (
	"fmt"
	"regexp"

	"github.com/vexley/opdesc/pkg/opdesc"
)

var placeholderPattern = regexp.MustCompile(`\{([a-zA-Z_][a-zA-Z0-9_]*)\}`)

func uriPlaceholders(uri string) []string {
	var names []string
	for _, match := range placeholderPattern.FindAllStringSubmatch(uri, -1) {
		names = append(names, match[1])
	}
	return names
}

// Problem is one finding from a description check
type Problem struct {
	Command string
	Message string
}

func (p Problem) String() string {
	return fmt.Sprintf("%s: %s", p.Command, p.Message)
}

// CheckDescription inspects every command of a description for definitions
// that cannot behave as intended: unroutable commands, URI placeholders
// without a matching parameter, unknown types and filters, and degenerate
// length ranges.
func CheckDescription(desc *opdesc.Description, insp *opdesc.Inspector) []Problem {
	if insp == nil {
		insp = opdesc.DefaultInspector()
	}
	filters := opdesc.DefaultFilters()

	var problems []Problem
	report := func(cmd *opdesc.Command, format string, args ...any) {
		problems = append(problems, Problem{Command: cmd.Name(), Message: fmt.Sprintf(format, args...)})
	}

	for _, cmd := range desc.Commands() {
		if cmd.Method() == "" && cmd.URI() != "" {
			report(cmd, "has a uri but no method")
		}
		if cmd.Method() != "" && cmd.URI() == "" {
			report(cmd, "has a method but no uri")
		}

		for _, placeholder := range uriPlaceholders(cmd.URI()) {
			if cmd.Param(placeholder) == nil {
				report(cmd, "uri placeholder {%s} has no parameter", placeholder)
			}
		}

		for _, param := range cmd.Params() {
			if typ := param.Type(); typ != "" && !insp.HasConstraint(typ) {
				report(cmd, "param %s declares unknown type %q", param.Name(), typ)
			}
			for _, filter := range param.Filters() {
				if !filters.Has(filter) {
					report(cmd, "param %s uses unknown filter %q", param.Name(), filter)
				}
			}
			if min, max := param.MinLength(), param.MaxLength(); min > 0 && max > 0 && min > max {
				report(cmd, "param %s has min_length %d greater than max_length %d", param.Name(), min, max)
			}
			if param.Static() && param.Default() == nil {
				report(cmd, "param %s is static but has no default", param.Name())
			}
		}
	}
	return problems
}
