package cli

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vexley/opdesc/internal/annotations"
	"github.com/vexley/opdesc/pkg/opdesc"
)

// SourceScanner walks Go source directories for handler types whose doc
// comments carry @opdesc annotations and derives command descriptors from
// them.
type SourceScanner struct {
	fileSet *token.FileSet
	deriver *opdesc.Deriver
	modules *ModuleResolver
}

// NewSourceScanner creates a scanner sharing the given deriver's cache
func NewSourceScanner(deriver *opdesc.Deriver) *SourceScanner {
	if deriver == nil {
		deriver = opdesc.NewDeriver(nil)
	}
	return &SourceScanner{
		fileSet: token.NewFileSet(),
		deriver: deriver,
		modules: NewModuleResolver(),
	}
}

// Scan derives commands from every annotated type under the given directory
// patterns. Patterns support the Go-style "./..." suffix for recursive
// scanning.
func (s *SourceScanner) Scan(name string, patterns []string) (*opdesc.Description, error) {
	dirs, err := expandPatterns(patterns)
	if err != nil {
		return nil, err
	}

	desc := opdesc.NewDescription(name)
	for _, dir := range dirs {
		pkgPath, err := s.modules.PackagePath(dir)
		if err != nil {
			return nil, err
		}

		files, err := goFilesIn(dir)
		if err != nil {
			return nil, err
		}

		for _, file := range files {
			commands, err := s.scanFile(file, pkgPath)
			if err != nil {
				return nil, err
			}
			for _, cmd := range commands {
				desc.Add(cmd)
			}
		}
	}
	return desc, nil
}

func (s *SourceScanner) scanFile(path, pkgPath string) ([]*opdesc.Command, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return s.ParseSource(path, string(source), pkgPath)
}

// ParseSource derives commands from source code held in a string
func (s *SourceScanner) ParseSource(filename, source, pkgPath string) ([]*opdesc.Command, error) {
	file, err := parser.ParseFile(s.fileSet, filename, source, parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filename, err)
	}

	var commands []*opdesc.Command
	for _, decl := range file.Decls {
		genDecl, ok := decl.(*ast.GenDecl)
		if !ok || genDecl.Tok != token.TYPE {
			continue
		}
		for _, spec := range genDecl.Specs {
			typeSpec, ok := spec.(*ast.TypeSpec)
			if !ok {
				continue
			}

			doc := typeDoc(genDecl, typeSpec)
			if !strings.Contains(doc, annotations.Marker) {
				continue
			}

			class := pkgPath + "." + typeSpec.Name.Name
			cmd, err := s.deriver.Derive(class, doc)
			if err != nil {
				return nil, fmt.Errorf("%s: type %s: %w", filename, typeSpec.Name.Name, err)
			}
			commands = append(commands, cmd)
		}
	}
	return commands, nil
}

// typeDoc prefers the declaration group's doc comment, falling back to the
// spec's own.
func typeDoc(genDecl *ast.GenDecl, typeSpec *ast.TypeSpec) string {
	if genDecl.Doc != nil {
		return genDecl.Doc.Text()
	}
	if typeSpec.Doc != nil {
		return typeSpec.Doc.Text()
	}
	return ""
}

// expandPatterns resolves directory patterns into the sorted set of
// directories containing Go files.
func expandPatterns(patterns []string) ([]string, error) {
	seen := make(map[string]bool)
	var dirs []string

	add := func(dir string) error {
		hasGo, err := containsGoFiles(dir)
		if err != nil {
			return err
		}
		if hasGo && !seen[dir] {
			seen[dir] = true
			dirs = append(dirs, dir)
		}
		return nil
	}

	for _, pattern := range patterns {
		if strings.HasSuffix(pattern, "/...") {
			base := strings.TrimSuffix(pattern, "/...")
			if base == "" {
				base = "."
			}
			err := filepath.WalkDir(base, func(path string, entry os.DirEntry, err error) error {
				if err != nil {
					return err
				}
				if !entry.IsDir() {
					return nil
				}
				name := entry.Name()
				if path != base && (strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") || name == "vendor" || name == "testdata") {
					return filepath.SkipDir
				}
				return add(path)
			})
			if err != nil {
				return nil, fmt.Errorf("failed to walk %s: %w", base, err)
			}
		} else {
			if err := add(pattern); err != nil {
				return nil, err
			}
		}
	}

	sort.Strings(dirs)
	return dirs, nil
}

func containsGoFiles(dir string) (bool, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return false, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasSuffix(name, ".go") && !strings.HasSuffix(name, "_test.go") {
			return true, nil
		}
	}
	return false, nil
}

func goFilesIn(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasSuffix(name, ".go") && !strings.HasSuffix(name, "_test.go") {
			files = append(files, filepath.Join(dir, name))
		}
	}
	sort.Strings(files)
	return files, nil
}
