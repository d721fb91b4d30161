package cmd

import (
	"bytes"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conneroisu/basset/internal/engine"
)

func TestDetectKind(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/app/resources/fonts", 0o755))

	tests := []struct {
		identifier string
		want       string
	}{
		{"https://cdn.example.com/lib.js", "script"},
		{"https://cdn.example.com/lib.mjs", "script"},
		{"https://cdn.example.com/app.css", "style"},
		{"https://cdn.example.com/theme.zip", "archive"},
		{"https://cdn.example.com/theme.tar.gz", "archive"},
		{"/app/vendor/icons.TGZ", "archive"},
		{"/app/resources/fonts", "dir"},
		{"https://cdn.example.com/font.woff2", "file"},
		{"/app/missing", "file"},
	}

	for _, tt := range tests {
		t.Run(tt.identifier, func(t *testing.T) {
			assert.Equal(t, tt.want, detectKind(fs, tt.identifier))
		})
	}
}

func TestParseAttributes(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		assert.Nil(t, parseAttributes(nil))
	})

	t.Run("pairs and bare keys", func(t *testing.T) {
		got := parseAttributes([]string{"type=module", "defer", "media=print"})
		assert.Equal(t, engine.Attributes{
			"type":  "module",
			"defer": "",
			"media": "print",
		}, got)
	})
}

func TestEnumValue(t *testing.T) {
	var target string
	v := newEnumValue(&target, "table", "table", "json", "yaml")

	assert.Equal(t, "table", v.String())
	require.NoError(t, v.Set("json"))
	assert.Equal(t, "json", target)
	assert.Error(t, v.Set("xml"))
	assert.Equal(t, "json", target)
}

func TestVersionCommand(t *testing.T) {
	t.Run("text", func(t *testing.T) {
		var out bytes.Buffer
		rootCmd.SetOut(&out)
		rootCmd.SetArgs([]string{"version"})
		defer rootCmd.SetArgs(nil)

		require.NoError(t, rootCmd.Execute())
		assert.Contains(t, out.String(), "basset dev")
	})

	t.Run("unknown format", func(t *testing.T) {
		var out bytes.Buffer
		rootCmd.SetOut(&out)
		rootCmd.SetErr(&out)
		rootCmd.SetArgs([]string{"version", "--format", "xml"})
		defer rootCmd.SetArgs(nil)

		assert.Error(t, rootCmd.Execute())
	})
}
