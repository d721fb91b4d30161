package fetcher

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/conneroisu/basset/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Get(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/lib.js":
			w.Write([]byte("console.log('ok')"))
		case "/missing.js":
			http.NotFound(w, r)
		case "/broken.js":
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer srv.Close()

	client := NewWithHTTPClient(srv.Client())

	t.Run("successful fetch", func(t *testing.T) {
		body, err := client.Get(srv.URL + "/lib.js")
		require.NoError(t, err)
		assert.Equal(t, "console.log('ok')", string(body))
	})

	t.Run("404 is an error", func(t *testing.T) {
		_, err := client.Get(srv.URL + "/missing.js")
		require.Error(t, err)
		assert.True(t, errors.IsType(err, errors.ErrorTypeFetch))
	})

	t.Run("500 is an error", func(t *testing.T) {
		_, err := client.Get(srv.URL + "/broken.js")
		require.Error(t, err)
		assert.True(t, errors.IsType(err, errors.ErrorTypeFetch))
	})

	t.Run("unreachable host is an error", func(t *testing.T) {
		_, err := client.Get("http://127.0.0.1:1/lib.js")
		require.Error(t, err)
		assert.True(t, errors.IsType(err, errors.ErrorTypeFetch))
	})
}
