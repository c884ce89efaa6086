package extract

import (
	"fmt"
	"path/filepath"
)

// securePath resolves an archive member name to a path under destRoot.
// Member names that would land outside the destination, either through
// an absolute path or parent traversal, are rejected. Containment is
// decided from the member name alone, so destRoot may be relative.
func securePath(destRoot, name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("archive member has empty name")
	}

	cleaned := filepath.Clean(filepath.FromSlash(name))
	if filepath.IsAbs(cleaned) {
		return "", fmt.Errorf("archive member has absolute path: %s", name)
	}
	if cleaned != "." && !filepath.IsLocal(cleaned) {
		return "", fmt.Errorf("archive member escapes destination: %s", name)
	}

	return filepath.Join(filepath.Clean(destRoot), cleaned), nil
}
