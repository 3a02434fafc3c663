package opdesc

import (
	"fmt"
	"strings"
)

// ValidationError is the single error kind validation produces. It carries
// the ordered list of per-parameter problems; Error joins them into a
// human-readable summary.
type ValidationError struct {
	Command  string
	Problems []string
}

func (e *ValidationError) Error() string {
	if len(e.Problems) == 1 {
		return fmt.Sprintf("validation of command %q failed: %s", e.Command, e.Problems[0])
	}
	return fmt.Sprintf("validation of command %q failed (%d problems):\n%s",
		e.Command, len(e.Problems), strings.Join(e.Problems, "\n"))
}

// Errors returns a copy of the structured problem list
func (e *ValidationError) Errors() []string {
	return append([]string(nil), e.Problems...)
}
