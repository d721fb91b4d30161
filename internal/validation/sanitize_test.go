package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizePath(t *testing.T) {
	tests := []struct {
		name       string
		identifier string
		root       string
		basePath   string
		want       string
	}{
		{
			name:       "https url",
			identifier: "https://cdn.example.com/lib/jquery.min.js",
			basePath:   "basset",
			want:       "basset/cdn.example.com/lib/jquery.min.js",
		},
		{
			name:       "http url",
			identifier: "http://cdn.example.com/lib.css",
			basePath:   "basset",
			want:       "basset/cdn.example.com/lib.css",
		},
		{
			name:       "protocol relative url",
			identifier: "//cdn.example.com/lib.js",
			basePath:   "basset",
			want:       "basset/cdn.example.com/lib.js",
		},
		{
			name:       "custom scheme",
			identifier: "chrome-extension://abcdef/payload.js",
			basePath:   "basset",
			want:       "basset/chrome-extensionabcdef/payload.js",
		},
		{
			name:       "local path under root",
			identifier: "/var/www/app/resources/js/app.js",
			root:       "/var/www/app",
			basePath:   "basset",
			want:       "basset/resources/js/app.js",
		},
		{
			name:       "local path outside root",
			identifier: "/opt/shared/theme.css",
			root:       "/var/www/app",
			basePath:   "basset",
			want:       "basset/opt/shared/theme.css",
		},
		{
			name:       "traversal removed",
			identifier: "../../etc/passwd",
			basePath:   "basset",
			want:       "basset/etc/passwd",
		},
		{
			name:       "interleaved traversal removed",
			identifier: "a/.+./b",
			basePath:   "basset",
			want:       "basset/a//b",
		},
		{
			name:       "unsafe characters removed",
			identifier: `lib<script>"x";'y'|z?*` + "`" + `+q`,
			basePath:   "basset",
			want:       "basset/libscriptxyzq",
		},
		{
			name:       "backslashes normalized",
			identifier: `vendor\pkg\dist\app.js`,
			basePath:   "basset",
			want:       "basset/vendor/pkg/dist/app.js",
		},
		{
			name:       "base path separators normalized",
			identifier: "lib.js",
			basePath:   "/vendor/basset/",
			want:       "vendor/basset/lib.js",
		},
		{
			name:       "empty base path",
			identifier: "https://cdn.example.com/lib.js",
			basePath:   "",
			want:       "cdn.example.com/lib.js",
		},
		{
			name:       "query string stripped of marker",
			identifier: "https://cdn.example.com/lib.js?v=3",
			basePath:   "basset",
			want:       "basset/cdn.example.com/lib.jsv=3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SanitizePath(tt.identifier, tt.root, tt.basePath)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSanitizePath_NeverUnsafe(t *testing.T) {
	inputs := []string{
		"....//....//etc/shadow",
		"https://x.com/a?b=c&d='e'",
		"C:\\Windows\\System32\\drivers",
		"javascript:alert(`xss`)",
		"\x00\x00..\x00..",
	}

	for _, in := range inputs {
		got := SanitizePath(in, "", "basset")
		for _, c := range append(unsafe, "..", "\\", "://") {
			assert.NotContains(t, got, c, "input %q", in)
		}
		assert.True(t, strings.HasPrefix(got, "basset/"), "input %q", in)
	}
}
