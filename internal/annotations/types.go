// Package annotations extracts @opdesc parameter annotations from handler
// documentation text. Scanning is isolated behind the Scanner interface so the
// line-oriented regex implementation can be swapped for the grammar-based one
// (or a future tokenizer) without touching descriptor derivation.
package annotations

// Marker is the sentinel that introduces a parameter annotation inside a
// handler's doc comment:
//
//	@opdesc key required="true" doc="Object key"
const Marker = "@opdesc"

// Arg is one collected argument: every annotation line naming the same
// argument is merged into a single Arg, later attribute values winning.
type Arg struct {
	Name  string
	Attrs map[string]string
}

// Scanner scans free-text documentation for parameter annotations and returns
// the collected arguments in first-seen order.
type Scanner interface {
	Scan(doc string) ([]Arg, error)
}

// argCollector accumulates scanned attributes keyed by argument name while
// preserving first-seen order.
type argCollector struct {
	order []string
	attrs map[string]map[string]string
}

func newArgCollector() *argCollector {
	return &argCollector{attrs: make(map[string]map[string]string)}
}

func (c *argCollector) add(name, key, value string) {
	attrs, exists := c.attrs[name]
	if !exists {
		attrs = make(map[string]string)
		c.attrs[name] = attrs
		c.order = append(c.order, name)
	}
	if key != "" {
		attrs[key] = value
	}
}

// touch records an argument that carried no attributes
func (c *argCollector) touch(name string) {
	c.add(name, "", "")
}

func (c *argCollector) args() []Arg {
	if len(c.order) == 0 {
		return nil
	}
	result := make([]Arg, 0, len(c.order))
	for _, name := range c.order {
		result = append(result, Arg{Name: name, Attrs: c.attrs[name]})
	}
	return result
}
