package adapters

import (
	"context"

	"github.com/vexley/opdesc/pkg/opdesc"
)

// Invoker executes a command whose configuration has passed validation.
// Implementations own the actual request handling; adapters only describe
// and validate.
type Invoker interface {
	Invoke(ctx context.Context, cmd *opdesc.Command, cfg *opdesc.Config) (any, error)
}

// InvokerFunc adapts a function to the Invoker interface
type InvokerFunc func(ctx context.Context, cmd *opdesc.Command, cfg *opdesc.Config) (any, error)

// Invoke calls the function
func (f InvokerFunc) Invoke(ctx context.Context, cmd *opdesc.Command, cfg *opdesc.Config) (any, error) {
	return f(ctx, cmd, cfg)
}

// validationProblems extracts the structured problem list from a validation
// failure; a non-validation error yields nil.
func validationProblems(err error) []string {
	if verr, ok := err.(*opdesc.ValidationError); ok {
		return verr.Errors()
	}
	return nil
}

// errorBody is the JSON envelope returned for a failed validation
func errorBody(cmd *opdesc.Command, problems []string) map[string]any {
	return map[string]any{
		"command": cmd.Name(),
		"errors":  problems,
	}
}

// mountable reports whether a command can be bound as a route
func mountable(cmd *opdesc.Command) bool {
	return cmd.Method() != "" && cmd.URI() != ""
}
