package extract

import (
	"path"
	"strings"
)

// matchesExclude checks if an archive member name matches any exclude pattern
// Patterns support:
//   - Simple glob patterns: *.tmp, *.log
//   - Directory patterns: .git/, node_modules/
//   - Path patterns: build/*, **/test/*
func matchesExclude(name string, patterns []string) bool {
	if len(patterns) == 0 {
		return false
	}

	// Member names always use forward slashes; directory members end
	// with one
	isDir := strings.HasSuffix(name, "/")
	normalized := strings.TrimSuffix(name, "/")
	base := path.Base(normalized)

	for _, pattern := range patterns {
		if pattern == "" {
			continue
		}

		// Directory pattern: matches directory members with that name
		// and everything under them. A plain file sharing the name
		// does not match.
		if dir, ok := strings.CutSuffix(pattern, "/"); ok {
			if isDir && (normalized == dir || strings.HasSuffix(normalized, "/"+dir)) {
				return true
			}
			if strings.HasPrefix(normalized, dir+"/") ||
				strings.Contains(normalized, "/"+dir+"/") {
				return true
			}
			continue
		}

		// **/ prefix matches the remainder at any depth
		if suffix, ok := strings.CutPrefix(pattern, "**/"); ok {
			if matched, _ := path.Match(suffix, base); matched {
				return true
			}
			if matched, _ := path.Match(suffix, normalized); matched {
				return true
			}
			continue
		}

		// Patterns containing a separator apply to the full member name
		if strings.Contains(pattern, "/") {
			if matched, _ := path.Match(pattern, normalized); matched {
				return true
			}
			continue
		}

		// Bare patterns apply to the base name only
		if matched, _ := path.Match(pattern, base); matched {
			return true
		}
	}

	return false
}
