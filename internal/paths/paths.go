// Package paths handles slash-separated folder paths and the file names
// derived from them.
package paths

import (
	"path/filepath"
	"strings"
)

const maxSlugLen = 255

// SplitPath splits a slash path into segments, ignoring leading and trailing slashes.
func SplitPath(path string) []string {
	path = strings.Trim(path, "/")
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}

// JoinPath joins path segments with "/".
func JoinPath(segments ...string) string {
	return strings.Join(segments, "/")
}

// Slug lower-cases s and keeps only [a-z0-9-], turning spaces and
// underscores into hyphens. Returns "" when nothing usable remains.
func Slug(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "-")
	s = strings.ReplaceAll(s, "_", "-")

	var b strings.Builder
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' {
			b.WriteRune(r)
		}
	}
	s = strings.Trim(b.String(), "-")
	if len(s) > maxSlugLen {
		s = strings.TrimRight(s[:maxSlugLen], "-")
	}
	return s
}

// OutputName returns the default .fnx file name for a selector such as
// "Work/Projects" ("work-projects.fnx"). The collection root maps to "joplin.fnx".
func OutputName(selector string) string {
	slug := Slug(strings.Join(SplitPath(selector), "-"))
	if slug == "" {
		slug = "joplin"
	}
	return slug + ".fnx"
}

// Stem returns the base name of file without its extension.
func Stem(file string) string {
	base := filepath.Base(file)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// ExportDir returns the directory images extracted from file are written to:
// "<dir>/<stem>_exports".
func ExportDir(file string) string {
	return filepath.Join(filepath.Dir(file), Stem(file)+"_exports")
}

// SupportFile returns the rewritten document path for an image export:
// "<dir>/<stem>_exportsSupport.fnx".
func SupportFile(file string) string {
	return filepath.Join(filepath.Dir(file), Stem(file)+"_exportsSupport.fnx")
}
