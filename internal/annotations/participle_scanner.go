package annotations

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// annotationLine is the grammar root for a single annotation line
type annotationLine struct {
	Name  string     `parser:"Marker @Ident"`
	Attrs []attrPair `parser:"@@*"`
}

// attrPair is one attr="value" assignment
type attrPair struct {
	Key   string `parser:"@Ident '='"`
	Value string `parser:"@String"`
}

// GrammarScanner parses annotation lines with a real lexer and grammar
// instead of regex splitting. Unlike RegexScanner it rejects malformed lines
// with a parse error rather than silently dropping attribute text.
type GrammarScanner struct {
	parser *participle.Parser[annotationLine]
}

// NewGrammarScanner creates a grammar-based scanner
func NewGrammarScanner() *GrammarScanner {
	lex := lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Marker", Pattern: `@opdesc`},
		{Name: "String", Pattern: `"(\\"|[^"])*"`},
		{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_.\-]*`},
		{Name: "Equals", Pattern: `=`},
		{Name: "Whitespace", Pattern: `\s+`},
	})

	parser := participle.MustBuild[annotationLine](
		participle.Lexer(lex),
		participle.Elide("Whitespace"),
	)

	return &GrammarScanner{parser: parser}
}

// Scan collects every annotation line in doc. Lines that do not start with
// the marker are ignored; marker lines that fail to parse abort the scan.
func (s *GrammarScanner) Scan(doc string) ([]Arg, error) {
	collector := newArgCollector()

	for lineNo, line := range strings.Split(doc, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, Marker) {
			continue
		}

		parsed, err := s.parser.ParseString("", line)
		if err != nil {
			return nil, fmt.Errorf("annotation line %d: %w", lineNo+1, err)
		}

		collector.touch(parsed.Name)
		for _, attr := range parsed.Attrs {
			collector.add(parsed.Name, attr.Key, unquote(attr.Value))
		}
	}

	return collector.args(), nil
}

// unquote strips the surrounding quotes from a String token and unescapes
// embedded quotes
func unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	return strings.ReplaceAll(s, `\"`, `"`)
}
