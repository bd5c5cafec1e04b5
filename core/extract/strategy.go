package extract

import (
	"regexp"
	"strings"

	"github.com/andybalholm/cascadia"

	"github.com/Fichusgg/casa-score-br/core/parse"
)

// Strategy is one attempt at reading a raw field value from a document.
// It reports false when it found nothing usable.
type Strategy func(doc *parse.Document) (string, bool)

// Text reads the text of the first element matching selector.
func Text(selector string) Strategy {
	m := cascadia.MustCompile(selector)
	return func(doc *parse.Document) (string, bool) {
		sel, ok := doc.First(m)
		if !ok {
			return "", false
		}
		return nonEmpty(sel.Text())
	}
}

// Attr reads attribute attr of the first element matching selector.
func Attr(selector, attr string) Strategy {
	m := cascadia.MustCompile(selector)
	return func(doc *parse.Document) (string, bool) {
		sel, ok := doc.First(m)
		if !ok {
			return "", false
		}
		v, exists := sel.Attr(attr)
		if !exists {
			return "", false
		}
		return nonEmpty(v)
	}
}

// Containing passes through only the values of s that contain marker.
func Containing(marker string, s Strategy) Strategy {
	return func(doc *parse.Document) (string, bool) {
		v, ok := s(doc)
		if !ok || !strings.Contains(v, marker) {
			return "", false
		}
		return v, true
	}
}

// Pattern matches re against the whole-document text and returns the first
// capture group, or the whole match when re has no groups.
func Pattern(re *regexp.Regexp) Strategy {
	return func(doc *parse.Document) (string, bool) {
		m := re.FindStringSubmatch(doc.Text())
		if m == nil {
			return "", false
		}
		if len(m) > 1 {
			return nonEmpty(m[1])
		}
		return nonEmpty(m[0])
	}
}

// TextSegment splits the whole-document text into segments and returns the
// first one accepted by keep.
func TextSegment(keep func(segment string) bool) Strategy {
	return func(doc *parse.Document) (string, bool) {
		for _, seg := range segmentSplit.Split(doc.Text(), -1) {
			seg = collapseSpace(seg)
			if seg != "" && keep(seg) {
				return seg, true
			}
		}
		return "", false
	}
}

// resolve runs strategies in order and returns the first value that conv
// accepts. Values a strategy finds but conv rejects fall through to the
// next strategy.
func resolve[T any](doc *parse.Document, strategies []Strategy, conv func(string) (T, bool)) (T, bool) {
	for _, s := range strategies {
		raw, ok := s(doc)
		if !ok {
			continue
		}
		if v, ok := conv(raw); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}

var segmentSplit = regexp.MustCompile(`[·•|\n]+`)

func nonEmpty(s string) (string, bool) {
	s = collapseSpace(s)
	return s, s != ""
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
