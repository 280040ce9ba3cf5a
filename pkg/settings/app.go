package settings

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/mod/modfile"
	"golang.org/x/mod/module"
)

// ResolveAppName fills App.Name when it is empty, using the last element of
// the module path declared in dir/go.mod, or the directory name when there
// is no go.mod.
func (s *Settings) ResolveAppName(dir string) error {
	if strings.TrimSpace(s.App.Name) != "" {
		return nil
	}
	name, err := defaultAppName(dir)
	if err != nil {
		return err
	}
	s.App.Name = name
	return nil
}

func defaultAppName(dir string) (string, error) {
	base := filepath.Base(dir)
	data, err := os.ReadFile(filepath.Join(dir, "go.mod"))
	if err != nil {
		if os.IsNotExist(err) {
			return fallbackName(base), nil
		}
		return "", fmt.Errorf("failed to read go.mod: %w", err)
	}
	path := modfile.ModulePath(data)
	if path == "" {
		return "", fmt.Errorf("could not determine module path from go.mod")
	}
	if prefix, _, ok := module.SplitPathVersion(path); ok {
		parts := strings.Split(prefix, "/")
		base = parts[len(parts)-1]
	}
	return fallbackName(base), nil
}

func fallbackName(name string) string {
	if name == "" || name == "." || name == string(filepath.Separator) {
		return "mvu_app"
	}
	return name
}
