package blob_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/srm-logistics/delivery-service/internal/blob"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImageHost_Store(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, r.ParseMultipartForm(1<<20))
			assert.Equal(t, "secret", r.URL.Query().Get("key"))
			assert.Equal(t, "riders/profile/42", r.FormValue("name"))

			file, _, err := r.FormFile("image")
			require.NoError(t, err)
			defer file.Close()

			w.Write([]byte(`{"success":true,"data":{"url":"https://img.example/42.png"}}`))
		}))
		defer srv.Close()

		host := blob.NewImageHost(srv.URL, "secret", time.Second)
		url, err := host.Store(context.Background(), []byte("png-bytes"), "riders/profile", "42")
		require.NoError(t, err)
		assert.Equal(t, "https://img.example/42.png", url)
	})

	t.Run("upstream error status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "bad key", http.StatusForbidden)
		}))
		defer srv.Close()

		host := blob.NewImageHost(srv.URL, "secret", time.Second)
		_, err := host.Store(context.Background(), []byte("png-bytes"), "riders/profile", "42")
		assert.ErrorContains(t, err, "403")
	})

	t.Run("rejected upload", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"success":false}`))
		}))
		defer srv.Close()

		host := blob.NewImageHost(srv.URL, "secret", time.Second)
		_, err := host.Store(context.Background(), []byte("png-bytes"), "riders/profile", "42")
		assert.ErrorContains(t, err, "rejected")
	})
}
