package opdesc

import (
	"strconv"
	"strings"

	"github.com/vexley/opdesc/internal/annotations"
	"github.com/vexley/opdesc/internal/utils"
)

// classMarker is the package segment that separates a handler class
// identifier's prefix from the part its command name is derived from.
const classMarker = "command"

// Deriver builds command descriptors from @opdesc annotations in handler
// documentation. It holds an explicit cache keyed by handler class so
// repeated derivation for the same class returns the cached descriptor
// without re-parsing; construct one at startup and hand it to all call
// sites.
type Deriver struct {
	scanner annotations.Scanner
	cache   *utils.Cache[string, *Command]
}

// NewDeriver creates a deriver. A nil scanner selects the default
// regex-based one; pass annotations.NewGrammarScanner() for strict parsing.
func NewDeriver(scanner annotations.Scanner) *Deriver {
	if scanner == nil {
		scanner = annotations.NewScanner()
	}
	return &Deriver{
		scanner: scanner,
		cache:   utils.NewCache[string, *Command](),
	}
}

// Derive builds (or returns the cached) descriptor for a handler class from
// its documentation text. The derived descriptor carries the class, the name
// derived from it, and one parameter per annotated argument; method and URI
// are left empty on this path. A doc without annotations yields a descriptor
// with an empty parameter set.
func (d *Deriver) Derive(class, doc string) (*Command, error) {
	if cmd, ok := d.cache.Get(class); ok {
		return cmd, nil
	}

	args, err := d.scanner.Scan(doc)
	if err != nil {
		return nil, err
	}

	cfg := CommandConfig{
		Name:  CommandName(class),
		Class: class,
	}
	for _, arg := range args {
		cfg.Params = append(cfg.Params, paramConfigFromAttrs(arg.Name, arg.Attrs))
	}

	return d.cache.SetIfAbsent(class, NewCommand(cfg)), nil
}

// Len returns the number of cached descriptors
func (d *Deriver) Len() int { return d.cache.Len() }

// CommandName derives a command name from a handler class identifier:
// everything through the "command" segment plus its separator is stripped,
// the remainder is snake_cased, and ._ sequences collapse to dots so
// sub-package segments become dotted name parts.
//
//	acme/widgets/command.Widget      -> widget
//	svc/command/billing.InvoiceGet   -> billing.invoice_get
func CommandName(class string) string {
	name := class
	if i := strings.Index(class, classMarker); i >= 0 {
		if cut := i + len(classMarker) + 1; cut < len(class) {
			name = class[cut:]
		} else {
			name = ""
		}
	}
	return strings.ReplaceAll(snakeCase(name), "._", ".")
}

// snakeCase inserts an underscore before every non-leading uppercase rune
// and lowercases the result.
func snakeCase(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 4)
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}

// paramConfigFromAttrs maps scanned annotation attributes onto a parameter
// record. Unparseable attribute values degrade to zero values; unknown
// attribute keys are ignored.
func paramConfigFromAttrs(name string, attrs map[string]string) ParamConfig {
	cfg := ParamConfig{Name: name}
	for key, value := range attrs {
		switch key {
		case "type":
			cfg.Type = value
		case "type_args":
			cfg.TypeArgs = splitList(value)
		case "required":
			cfg.Required = parseBoolAttr(value)
		case "default":
			cfg.Default = value
		case "static":
			cfg.Static = parseBoolAttr(value)
		case "prepend":
			cfg.Prepend = value
		case "append":
			cfg.Append = value
		case "filters":
			cfg.Filters = splitList(value)
		case "doc":
			cfg.Doc = value
		case "min_length":
			cfg.MinLength = parseIntAttr(value)
		case "max_length":
			cfg.MaxLength = parseIntAttr(value)
		}
	}
	return cfg
}

func splitList(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	for i, part := range parts {
		parts[i] = strings.TrimSpace(part)
	}
	return parts
}

func parseBoolAttr(value string) bool {
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return false
	}
	return parsed
}

func parseIntAttr(value string) int {
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}
	return parsed
}
