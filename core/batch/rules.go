package batch

import (
	"bufio"
	"fmt"
	"io"
	"net/url"
	"strings"
)

// NormalizeURL strips surrounding space, fragments and trailing slashes for
// deduplication. The query string is kept: marketplaces put listing IDs there.
func NormalizeURL(rawURL string) string {
	rawURL = strings.TrimSpace(rawURL)
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}

	parsed.Fragment = ""
	if parsed.Path != "/" {
		parsed.Path = strings.TrimSuffix(parsed.Path, "/")
	}

	return parsed.String()
}

// ReadURLs reads one URL per line from r. Blank lines and lines starting
// with '#' are skipped and duplicates are dropped.
func ReadURLs(r io.Reader) ([]string, error) {
	q := NewQueue()

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		q.Add(line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading URL list: %w", err)
	}
	return q.All(), nil
}
