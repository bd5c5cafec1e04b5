// Package output writes rendered listing reports to disk.
// Filenames are derived from the listing URL (host plus path segments), so
// re-ingesting the same listing overwrites its previous report.
package output

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// maxNameLen caps the derived base name; listing slugs can be very long.
const maxNameLen = 120

// Writer writes rendered output to disk.
type Writer struct {
	OutputDir string
}

// New creates a Writer targeting the given output directory.
// If outputDir is empty, it defaults to the current working directory.
func New(outputDir string) (*Writer, error) {
	if outputDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting working directory: %w", err)
		}
		outputDir = wd
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	return &Writer{OutputDir: outputDir}, nil
}

// Write stores data for the listing at rawURL and returns the file path.
// Example: https://www.olx.com.br/imovel/123 → www_olx_com_br_imovel_123.json
func (w *Writer) Write(rawURL string, data []byte, ext string) (string, error) {
	path := filepath.Join(w.OutputDir, FilenameFromURL(rawURL)+ext)

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing file %s: %w", path, err)
	}
	return path, nil
}

// FilenameFromURL converts a URL into a flat filename without extension.
// Query strings and fragments are ignored.
func FilenameFromURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return truncate(sanitize(rawURL))
	}

	parts := []string{sanitize(parsed.Host)}
	if p := strings.Trim(parsed.Path, "/"); p != "" {
		for _, seg := range strings.Split(p, "/") {
			parts = append(parts, sanitize(seg))
		}
	}
	return truncate(strings.Join(parts, "_"))
}

func truncate(name string) string {
	if len(name) > maxNameLen {
		return name[:maxNameLen]
	}
	return name
}

// sanitize replaces non-alphanumeric characters with underscores.
func sanitize(s string) string {
	var b strings.Builder
	for _, ch := range s {
		if (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || (ch >= '0' && ch <= '9') {
			b.WriteRune(ch)
		} else {
			b.WriteRune('_')
		}
	}
	return b.String()
}
