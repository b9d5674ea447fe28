package scanner

import (
	"path/filepath"
	"strings"
)

// FilterOptions defines criteria for including or excluding files.
type FilterOptions struct {
	// ExcludeDirs is a list of directory names to exclude.
	// Matching is segment-aware: "vendor" excludes "vendor/foo" and "pkg/vendor/bar",
	// but not "vendor_stuff/foo".
	ExcludeDirs []string

	// IncludeExtensions is a list of lowercased extensions to include (e.g., ".md").
	// If empty, all extensions are included.
	IncludeExtensions []string
}

// DefaultExtensions returns the text and source extensions scanned by default.
func DefaultExtensions() []string {
	return []string{
		".java",
		".kt",
		".kts",
		".groovy",
		".xml",
		".yml",
		".yaml",
		".md",
		".txt",
		".properties",
		".json",
		".ts",
		".tsx",
		".js",
		".jsx",
		".css",
		".scss",
		".html",
		".sql",
		".sh",
		".py",
	}
}

// NormalizeExtensions lowercases extensions, adds a missing leading dot and
// drops blanks and duplicates. Order is preserved.
func NormalizeExtensions(exts []string) []string {
	seen := make(map[string]bool, len(exts))
	out := make([]string, 0, len(exts))
	for _, ext := range exts {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" || ext == "." {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		if seen[ext] {
			continue
		}
		seen[ext] = true
		out = append(out, ext)
	}
	return out
}

// FilterFiles applies the name-based filter options to a list of file paths.
// Input order is kept.
func FilterFiles(paths []string, opts FilterOptions) []string {
	if len(paths) == 0 {
		return nil
	}

	var filtered []string
	for _, path := range paths {
		if shouldExclude(path, opts.ExcludeDirs) {
			continue
		}
		if !hasAllowedExtension(path, opts.IncludeExtensions) {
			continue
		}
		filtered = append(filtered, path)
	}
	return filtered
}

// shouldExclude returns true if the path contains any of the excluded segments.
func shouldExclude(path string, excludes []string) bool {
	if len(excludes) == 0 {
		return false
	}
	parts := strings.Split(filepath.ToSlash(path), "/")
	// The last segment is the file name, not a directory.
	for _, part := range parts[:len(parts)-1] {
		for _, exclude := range excludes {
			if part == exclude {
				return true
			}
		}
	}
	return false
}

// hasAllowedExtension compares the lowercased final extension, so "README.MD"
// matches ".md" but "archive.md.gz" does not.
func hasAllowedExtension(path string, extensions []string) bool {
	if len(extensions) == 0 {
		return true
	}
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return false
	}
	for _, allowed := range extensions {
		if ext == allowed {
			return true
		}
	}
	return false
}
