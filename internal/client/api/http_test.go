package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mohsen-hassani/manuscript-workbench/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *HTTPClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c := NewHTTPClient(srv.URL)
	c.SetToken("tok123")
	return c
}

func TestLogin_StoresToken(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/auth/login", r.URL.Path)

		var creds map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		assert.Equal(t, "ann@example.com", creds["email"])

		_ = json.NewEncoder(w).Encode(map[string]string{"access_token": "fresh", "token_type": "bearer"})
	})

	token, err := c.Login(context.Background(), "ann@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "fresh", token)
	assert.Equal(t, "fresh", c.Token())
}

func TestListFiles_SendsBearerToken(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok123", r.Header.Get("Authorization"))
		require.Equal(t, "/projects/7/files", r.URL.Path)

		_, _ = w.Write([]byte(`{"files":[{"id":3,"original_filename":"ch1.md","version":2}],"total":1}`))
	})

	files, err := c.ListFiles(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, int64(3), files[0].ID)
	assert.Equal(t, "ch1.md", files[0].OriginalFilename)
	assert.Equal(t, int64(2), files[0].Version)
}

func TestGetProject_UnwrapsDetailEnvelope(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/projects/7", r.URL.Path)
		_, _ = w.Write([]byte(`{"project":{"id":7,"name":"Thesis","base_folder_path":"Manuscripts"},"members":[]}`))
	})

	p, err := c.GetProject(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "Manuscripts", p.BaseFolderPath)
}

func TestDownloadFile_ReturnsRawBytes(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/projects/7/files/3/download", r.URL.Path)
		_, _ = w.Write([]byte("# Chapter One\n"))
	})

	content, err := c.DownloadFile(context.Background(), 7, 3)
	require.NoError(t, err)
	assert.Equal(t, []byte("# Chapter One\n"), content)
}

func TestUpdateFile_MultipartWithVersion(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.NoError(t, r.ParseMultipartForm(1<<20))

		assert.Equal(t, "4", r.FormValue("version"))

		f, hdr, err := r.FormFile("file")
		require.NoError(t, err)
		defer f.Close()
		assert.Equal(t, "ch1.md", hdr.Filename)
		content, err := io.ReadAll(f)
		require.NoError(t, err)
		assert.Equal(t, "edited", string(content))

		_, _ = w.Write([]byte(`{"id":3,"original_filename":"ch1.md","version":4}`))
	})

	file, err := c.UpdateFile(context.Background(), 7, 3, "ch1.md", []byte("edited"), 4)
	require.NoError(t, err)
	assert.Equal(t, int64(4), file.Version)
}

func TestUpdateFile_ConflictMapsToSentinel(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"detail":"Version conflict. Server version is 5, your version is 4."}`))
	})

	_, err := c.UpdateFile(context.Background(), 7, 3, "ch1.md", []byte("edited"), 4)
	assert.ErrorIs(t, err, common.ErrVersionConflict)
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   error
	}{
		{"unauthorized", http.StatusUnauthorized, common.ErrorUnauthorized},
		{"not found", http.StatusNotFound, common.ErrorNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			})

			_, err := c.ListFiles(context.Background(), 7)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestCreateFile_PostsJSON(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/projects/7/files/create", r.URL.Path)

		var payload map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "outline.md", payload["filename"])

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":9,"original_filename":"outline.md","version":1}`))
	})

	file, err := c.CreateFile(context.Background(), 7, "outline.md", "# Outline")
	require.NoError(t, err)
	assert.Equal(t, int64(9), file.ID)
	assert.Equal(t, int64(1), file.Version)
}
