package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/mod/modfile"

	"github.com/vexley/opdesc/internal/utils"
)

// ModuleResolver resolves the Go module path that owns a directory, so
// scanned handler types get fully qualified class identifiers. Parsed go.mod
// files are cached with file-based invalidation.
type ModuleResolver struct {
	cache *utils.Cache[string, string]
}

// NewModuleResolver creates a module resolver
func NewModuleResolver() *ModuleResolver {
	return &ModuleResolver{
		cache: utils.NewCache[string, string](),
	}
}

// Resolve walks up from dir to the nearest go.mod and returns the module
// path and the module root directory.
func (r *ModuleResolver) Resolve(dir string) (modulePath, rootDir string, err error) {
	current, err := filepath.Abs(dir)
	if err != nil {
		return "", "", fmt.Errorf("failed to resolve path %s: %w", dir, err)
	}

	for {
		goModPath := filepath.Join(current, "go.mod")
		if _, statErr := os.Stat(goModPath); statErr == nil {
			modulePath, err = r.parseModulePath(goModPath)
			if err != nil {
				return "", "", err
			}
			return modulePath, current, nil
		}

		parent := filepath.Dir(current)
		if parent == current {
			return "", "", fmt.Errorf("no go.mod found above %s", dir)
		}
		current = parent
	}
}

// PackagePath qualifies a directory as an import path relative to its module
func (r *ModuleResolver) PackagePath(dir string) (string, error) {
	modulePath, rootDir, err := r.Resolve(dir)
	if err != nil {
		return "", err
	}

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}

	rel, err := filepath.Rel(rootDir, absDir)
	if err != nil {
		return "", err
	}
	if rel == "." {
		return modulePath, nil
	}
	return modulePath + "/" + filepath.ToSlash(rel), nil
}

func (r *ModuleResolver) parseModulePath(goModPath string) (string, error) {
	if cached, ok := r.cache.GetWithFileValidation(goModPath, goModPath); ok {
		return cached, nil
	}

	content, err := os.ReadFile(goModPath)
	if err != nil {
		return "", fmt.Errorf("failed to read go.mod: %w", err)
	}

	parsed, err := modfile.Parse(goModPath, content, nil)
	if err != nil {
		return "", fmt.Errorf("failed to parse go.mod: %w", err)
	}
	if parsed.Module == nil {
		return "", fmt.Errorf("no module declaration in %s", goModPath)
	}

	modulePath := parsed.Module.Mod.Path
	if err := r.cache.SetWithFileInfo(goModPath, modulePath, goModPath); err != nil {
		return "", err
	}
	return modulePath, nil
}
