// Package parser splits markdown documents into frontmatter and body and
// normalizes them into articles.
package parser

import (
	"strings"

	"github.com/starford/folio/internal/models"
)

const delim = "---"

// SplitFrontmatter separates the header block (between leading --- lines)
// from the body. The opening delimiter must sit at offset 0 and the header
// holds at least one line, so the closing delimiter is searched from the
// second line after the opener. If no complete block is found the
// frontmatter is empty and the whole input is body.
func SplitFrontmatter(raw string) (models.Frontmatter, string) {
	fm := models.Frontmatter{}

	start, ok := afterOpeningDelim(raw)
	if !ok {
		return fm, raw
	}

	first := strings.IndexByte(raw[start:], '\n')
	if first < 0 {
		return fm, raw
	}

	pos := start + first + 1
	for {
		idx := strings.IndexByte(raw[pos:], '\n')
		line := raw[pos:]
		if idx >= 0 {
			line = raw[pos : pos+idx]
		}
		if strings.TrimSuffix(line, "\r") == delim {
			parseHeader(fm, raw[start:pos])
			if idx < 0 {
				return fm, ""
			}
			return fm, raw[pos+idx+1:]
		}
		if idx < 0 {
			// No closing delimiter: treat everything as body.
			return models.Frontmatter{}, raw
		}
		pos += idx + 1
	}
}

// afterOpeningDelim returns the offset just past the opening "---" line.
func afterOpeningDelim(raw string) (int, bool) {
	if !strings.HasPrefix(raw, delim) {
		return 0, false
	}
	rest := raw[len(delim):]
	switch {
	case strings.HasPrefix(rest, "\r\n"):
		return len(delim) + 2, true
	case strings.HasPrefix(rest, "\n"):
		return len(delim) + 1, true
	}
	return 0, false
}

// parseHeader fills fm from "key: value" lines. Later keys overwrite
// earlier ones.
func parseHeader(fm models.Frontmatter, block string) {
	for _, line := range strings.Split(block, "\n") {
		key, value, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		fm[key] = strings.TrimSpace(value)
	}
}
