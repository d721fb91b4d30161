package engine

import (
	"sort"
	"strings"
)

// Attributes maps attribute names to values for emitted tags. An empty or
// "true" value renders as a bare attribute name (defer, async, ...).
type Attributes map[string]string

// ScriptTag serializes a script tag for the URL, appending the
// cache-busting token as a query string when non-empty.
func ScriptTag(url string, attrs Attributes, cacheBusting string) string {
	var b strings.Builder
	b.WriteString(`<script src="`)
	b.WriteString(bustedURL(url, cacheBusting))
	b.WriteString(`"`)
	writeAttributes(&b, attrs)
	b.WriteString("></script>")

	return b.String()
}

// LinkTag serializes a stylesheet link tag for the URL, appending the
// cache-busting token as a query string when non-empty.
func LinkTag(url string, attrs Attributes, cacheBusting string) string {
	var b strings.Builder
	b.WriteString(`<link rel="stylesheet" href="`)
	b.WriteString(bustedURL(url, cacheBusting))
	b.WriteString(`"`)
	writeAttributes(&b, attrs)
	b.WriteString(">")

	return b.String()
}

func bustedURL(url, cacheBusting string) string {
	if cacheBusting == "" {
		return url
	}

	return url + "?" + cacheBusting
}

// writeAttributes appends attributes in sorted order so emitted markup is
// deterministic.
func writeAttributes(b *strings.Builder, attrs Attributes) {
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		v := attrs[k]
		b.WriteString(" ")
		b.WriteString(k)
		if v != "" && v != "true" {
			b.WriteString(`="`)
			b.WriteString(v)
			b.WriteString(`"`)
		}
	}
}
