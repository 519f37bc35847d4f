package session

import (
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "session.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestLoadUnknownHost(t *testing.T) {
	s := openTestStore(t)

	cookies, err := s.Load("drive.example.com")
	require.NoError(t, err)
	assert.Nil(t, cookies)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := openTestStore(t)

	in := []*http.Cookie{{
		Name:     "session",
		Value:    "tok-123",
		Path:     "/",
		Expires:  time.Now().Add(time.Hour).UTC().Truncate(time.Second),
		HttpOnly: true,
	}}
	require.NoError(t, s.Save("drive.example.com", in))

	out, err := s.Load("drive.example.com")
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "session", out[0].Name)
	assert.Equal(t, "tok-123", out[0].Value)
	assert.True(t, out[0].HttpOnly)
}

func TestSaveReplacesPreviousSession(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.Save("drive.example.com", []*http.Cookie{{Name: "session", Value: "old"}}))
	require.NoError(t, s.Save("drive.example.com", []*http.Cookie{{Name: "session", Value: "new"}}))

	out, err := s.Load("drive.example.com")
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "new", out[0].Value)
}

func TestLoadDropsExpiredCookies(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.Save("drive.example.com", []*http.Cookie{
		{Name: "stale", Value: "x", Expires: time.Now().Add(-time.Hour)},
		{Name: "session", Value: "tok", Expires: time.Now().Add(time.Hour)},
	}))

	out, err := s.Load("drive.example.com")
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "session", out[0].Name)
}

func TestSaveEmptyClears(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.Save("drive.example.com", []*http.Cookie{{Name: "session", Value: "tok"}}))
	require.NoError(t, s.Save("drive.example.com", nil))

	out, err := s.Load("drive.example.com")
	require.NoError(t, err)
	assert.Nil(t, out)
}

func TestSessionsArePerHost(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.Save("a.example.com", []*http.Cookie{{Name: "session", Value: "a"}}))
	require.NoError(t, s.Save("b.example.com", []*http.Cookie{{Name: "session", Value: "b"}}))
	require.NoError(t, s.Clear("a.example.com"))

	a, err := s.Load("a.example.com")
	require.NoError(t, err)
	assert.Nil(t, a)

	b, err := s.Load("b.example.com")
	require.NoError(t, err)
	require.Len(t, b, 1)
	assert.Equal(t, "b", b[0].Value)
}
