package api

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	c, err := New(srv.URL, jar, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	return c
}

func TestListFolderRoot(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/folder", r.URL.Path)
		assert.Empty(t, r.URL.Query().Get("folderId"))
		_, _ = w.Write([]byte(`{"data":{"folder":[{"_id":"f1","name":"Photos","owner":"u1","parent":null}],"images":[]}}`))
	}))

	listing, err := c.ListFolder(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, listing.Folders, 1)
	assert.Equal(t, "Photos", listing.Folders[0].Name)
	assert.Nil(t, listing.Folders[0].Parent)
	assert.NotNil(t, listing.Images)
	assert.Empty(t, listing.Images)
}

func TestListFolderByID(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "f2", r.URL.Query().Get("folderId"))
		_, _ = w.Write([]byte(`{"data":{"folder":[],"images":[{"_id":"i1","name":"cat.png","owner":"u1","parent":"f2","createdAt":"2026-01-02T15:04:05Z","updatedAt":"2026-01-02T15:04:05Z"}]}}`))
	}))

	listing, err := c.ListFolder(context.Background(), "f2")
	require.NoError(t, err)
	require.Len(t, listing.Images, 1)
	assert.Equal(t, "cat.png", listing.Images[0].Name)
	require.NotNil(t, listing.Images[0].Parent)
	assert.Equal(t, "f2", *listing.Images[0].Parent)
}

func TestListFolderUnauthorized(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"no session"}`, http.StatusUnauthorized)
	}))

	_, err := c.ListFolder(context.Background(), "")
	require.Error(t, err)
	assert.True(t, IsUnauthorized(err))
	assert.False(t, IsForbidden(err))
}

func TestListFolderForbidden(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"not yours"}`, http.StatusForbidden)
	}))

	_, err := c.ListFolder(context.Background(), "someone-elses")
	require.Error(t, err)
	assert.True(t, IsForbidden(err))
	assert.False(t, IsUnauthorized(err))
}

func TestCreateFolder(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/folder/create", r.URL.Path)

		var body struct {
			Name   string  `json:"name"`
			Parent *string `json:"parent"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Photos", body.Name)
		assert.Nil(t, body.Parent)

		_, _ = w.Write([]byte(`{"data":{"_id":"f9","name":"Photos","owner":"u1","parent":null}}`))
	}))

	folder, err := c.CreateFolder(context.Background(), "Photos", nil)
	require.NoError(t, err)
	assert.Equal(t, "f9", folder.ID)
	assert.Equal(t, "Photos", folder.Name)
}

func TestUploadImagesBatch(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		files := r.MultipartForm.File["images"]
		require.Len(t, files, 3)
		assert.Equal(t, "a.png", files[0].Filename)
		assert.Equal(t, "a.png", files[2].Filename) // duplicates are not deduplicated

		_, _ = w.Write([]byte(`{"data":[
			{"_id":"i1","name":"a.png","owner":"u1","parent":null,"createdAt":"2026-01-02T15:04:05Z","updatedAt":"2026-01-02T15:04:05Z"},
			{"_id":"i2","name":"b.png","owner":"u1","parent":null,"createdAt":"2026-01-02T15:04:05Z","updatedAt":"2026-01-02T15:04:05Z"},
			{"_id":"i3","name":"a.png","owner":"u1","parent":null,"createdAt":"2026-01-02T15:04:05Z","updatedAt":"2026-01-02T15:04:05Z"}
		]}`))
	}))

	images, err := c.UploadImages(context.Background(), []FileUpload{
		{Name: "a.png", Data: strings.NewReader("png-a")},
		{Name: "b.png", Data: strings.NewReader("png-b")},
		{Name: "a.png", Data: strings.NewReader("png-a-again")},
	})
	require.NoError(t, err)
	require.Len(t, images, 3)
	assert.Equal(t, "i1", images[0].ID)
}

func TestSearchImages(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/image/search", r.URL.Path)
		assert.Equal(t, "cat", r.URL.Query().Get("image"))
		_, _ = w.Write([]byte(`{"data":[{"_id":"1","name":"cat.png","owner":"u1","parent":null,"createdAt":"2026-01-02T15:04:05Z","updatedAt":"2026-01-02T15:04:05Z"}]}`))
	}))

	images, err := c.SearchImages(context.Background(), "cat")
	require.NoError(t, err)
	require.Len(t, images, 1)
	assert.Equal(t, "cat.png", images[0].Name)
}

func TestFetchImage(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/image/i1", r.URL.Path)
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write([]byte("png-bytes"))
	}))

	data, mime, err := c.FetchImage(context.Background(), "i1")
	require.NoError(t, err)
	assert.Equal(t, []byte("png-bytes"), data)
	assert.Equal(t, "image/png", mime)
}

func TestFetchImageNotFound(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"gone"}`, http.StatusNotFound)
	}))

	_, _, err := c.FetchImage(context.Background(), "nope")
	require.Error(t, err)
	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
}

func TestLoginKeepsSessionCookie(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/login":
			http.SetCookie(w, &http.Cookie{Name: "session", Value: "tok-123", Path: "/"})
		case "/folder":
			cookie, err := r.Cookie("session")
			require.NoError(t, err)
			assert.Equal(t, "tok-123", cookie.Value)
			_, _ = w.Write([]byte(`{"data":{"folder":[],"images":[]}}`))
		}
	}))

	require.NoError(t, c.Login(context.Background(), "alice", "hunter2"))
	_, err := c.ListFolder(context.Background(), "")
	require.NoError(t, err)
}

func TestLoginSurfacesServerMessage(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message":"wrong password"}`))
	}))

	err := c.Login(context.Background(), "alice", "nope")
	require.Error(t, err)
	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "wrong password", apiErr.Message)
}
