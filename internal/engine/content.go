package engine

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// sourceMapDirective matches sourceMappingURL comments in downloaded
// content. The referenced map would point at the original location and
// 404 after internalization, so the directive is dropped.
var sourceMapDirective = regexp.MustCompile(`sourceMappingURL=\S+`)

// StripSourceMap removes sourceMappingURL directives from asset content.
func StripSourceMap(content []byte) []byte {
	return sourceMapDirective.ReplaceAll(content, nil)
}

// CleanBlock normalizes inline code before storage: wrapping <script> or
// <style> tags are removed, leading blank lines dropped, and the common
// leading-whitespace prefix of the first non-blank line stripped from
// every line so templated blocks land at column zero.
func CleanBlock(code string) string {
	code = stripWrapperTag(code)

	lines := strings.Split(code, "\n")

	for len(lines) > 0 && strings.TrimSpace(lines[0]) == "" {
		lines = lines[1:]
	}
	if len(lines) == 0 {
		return ""
	}

	prefix := leadingWhitespace(lines[0])
	if prefix != "" {
		for i := range lines {
			lines[i] = strings.TrimPrefix(lines[i], prefix)
		}
	}

	return strings.Join(lines, "\n")
}

// stripWrapperTag unwraps a single <script> or <style> element around the
// code, returning the input untouched when no wrapper is present.
func stripWrapperTag(code string) string {
	trimmed := strings.TrimSpace(code)
	if !strings.HasPrefix(trimmed, "<") {
		return code
	}

	z := html.NewTokenizer(strings.NewReader(trimmed))
	if z.Next() != html.StartTagToken {
		return code
	}

	name, _ := z.TagName()
	a := atom.Lookup(name)
	if a != atom.Script && a != atom.Style {
		return code
	}

	if z.Next() != html.TextToken {
		// Empty element.
		return ""
	}

	return string(z.Text())
}

func leadingWhitespace(line string) string {
	for i, r := range line {
		if r != ' ' && r != '\t' {
			return line[:i]
		}
	}

	return line
}
