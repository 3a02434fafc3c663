// Package adapters mounts command descriptors onto HTTP frameworks. Each
// adapter registers every command of a description that carries a method and
// URI template, builds a configuration store from the incoming request,
// validates it against the descriptor, and dispatches to an Invoker.
package adapters

import (
	"regexp"
)

// uriParamPattern matches {name} placeholders in a URI template
var uriParamPattern = regexp.MustCompile(`\{([a-zA-Z_][a-zA-Z0-9_]*)\}`)

// ColonPath converts a URI template to the colon-parameter syntax shared by
// echo, gin, and fiber.
//
//	/widgets/{id} -> /widgets/:id
func ColonPath(uri string) string {
	return uriParamPattern.ReplaceAllString(uri, `:$1`)
}

// URIParams extracts the placeholder names from a URI template
func URIParams(uri string) []string {
	matches := uriParamPattern.FindAllStringSubmatch(uri, -1)
	if len(matches) == 0 {
		return nil
	}
	names := make([]string, 0, len(matches))
	for _, match := range matches {
		names = append(names, match[1])
	}
	return names
}
