package validation

import (
	"strings"
	"testing"
)

// FuzzSanitizePath tests the sanitizer with malicious and edge case inputs
func FuzzSanitizePath(f *testing.F) {
	f.Add("https://cdn.example.com/lib.js")
	f.Add("//cdn.example.com/lib.js")
	f.Add("../../../etc/passwd")
	f.Add("....//....//etc/shadow")
	f.Add("javascript:alert('xss')")
	f.Add("data:text/html,<script>alert('xss')</script>")
	f.Add("C:\\Windows\\System32")
	f.Add("lib.js?v=1&x=`id`")
	f.Add("a/.+./b")
	f.Add("\x00/\x00..")
	f.Add("")

	f.Fuzz(func(t *testing.T, identifier string) {
		if len(identifier) > 10000 {
			t.Skip("identifier too long")
		}

		got := SanitizePath(identifier, "/var/www/app", "basset")

		for _, c := range unsafe {
			if strings.Contains(got, c) {
				t.Errorf("unsafe character %q survived sanitization of %q: %q", c, identifier, got)
			}
		}

		if strings.Contains(got, "..") {
			t.Errorf("path traversal survived sanitization of %q: %q", identifier, got)
		}
		if strings.Contains(got, "\\") {
			t.Errorf("backslash survived sanitization of %q: %q", identifier, got)
		}
		if strings.Contains(got, "://") {
			t.Errorf("protocol marker survived sanitization of %q: %q", identifier, got)
		}
		if !strings.HasPrefix(got, "basset/") {
			t.Errorf("output not rooted under base path for %q: %q", identifier, got)
		}
	})
}
