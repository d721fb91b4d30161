package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadedSet(t *testing.T) {
	s := NewLoadedSet()

	assert.False(t, s.IsLoaded("basset/a.js"))

	s.MarkAsLoaded("basset/a.js")
	s.MarkAsLoaded("basset/b.css")
	s.MarkAsLoaded("basset/a.js") // idempotent

	assert.True(t, s.IsLoaded("basset/a.js"))
	assert.True(t, s.IsLoaded("basset/b.css"))
	assert.False(t, s.IsLoaded("basset/c.js"))

	assert.Equal(t, []string{"basset/a.js", "basset/b.css"}, s.Loaded())
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "loaded", StatusLoaded.String())
	assert.Equal(t, "in-cache", StatusInCache.String())
	assert.Equal(t, "internalized", StatusInternalized.String())
	assert.Equal(t, "invalid", StatusInvalid.String())
	assert.Equal(t, "unknown", Status(99).String())
}
