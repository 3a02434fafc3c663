package annotations

import (
	"regexp"
	"strings"
)

var (
	// markerPattern matches one annotation line: the marker, an argument
	// name, and the raw attribute text for the rest of the line.
	markerPattern = regexp.MustCompile(`@opdesc\s+([A-Za-z_][A-Za-z0-9_.\-]*)\s*([^\r\n]*)`)

	// attrPattern extracts a single attr="value" pair from a chunk of the
	// attribute text.
	attrPattern = regexp.MustCompile(`([A-Za-z_][A-Za-z0-9_]*)="(.*)`)
)

// RegexScanner is the line-oriented, regex-based scanner. It has no real
// grammar and no escaping for embedded quotes: attribute text is split on
// quote+space boundaries and a trailing stray quote is stripped from each
// value. Exact parsing quirks are implementation-defined.
type RegexScanner struct{}

// NewScanner creates the default regex-based scanner
func NewScanner() *RegexScanner {
	return &RegexScanner{}
}

// Scan collects every @opdesc annotation in doc. Arguments repeated across
// lines are merged, the last value winning per attribute key. A doc with no
// annotations yields a nil slice and no error.
func (s *RegexScanner) Scan(doc string) ([]Arg, error) {
	collector := newArgCollector()

	for _, match := range markerPattern.FindAllStringSubmatch(doc, -1) {
		name := match[1]
		collector.touch(name)

		rest := strings.TrimSpace(match[2])
		if rest == "" {
			continue
		}

		for _, chunk := range strings.Split(rest, `" `) {
			attr := attrPattern.FindStringSubmatch(chunk)
			if attr == nil {
				continue
			}
			value := strings.TrimSuffix(attr[2], `"`)
			collector.add(name, attr[1], value)
		}
	}

	return collector.args(), nil
}
