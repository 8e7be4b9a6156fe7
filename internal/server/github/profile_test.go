package github

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	c := NewClient(srv.Client())
	base, err := url.Parse(srv.URL + "/")
	require.NoError(t, err)
	c.gh.BaseURL = base
	return c
}

func TestProfile(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/Oluwasetemi", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"login":"Oluwasetemi","name":"Setemi","avatar_url":"https://a/1.png","bio":"dev","html_url":"https://github.com/Oluwasetemi","public_repos":3,"followers":9}`))
	})

	p, err := c.Profile(context.Background(), "Oluwasetemi")
	require.NoError(t, err)
	assert.Equal(t, &Profile{
		Login:       "Oluwasetemi",
		Name:        "Setemi",
		AvatarURL:   "https://a/1.png",
		Bio:         "dev",
		HTMLURL:     "https://github.com/Oluwasetemi",
		PublicRepos: 3,
		Followers:   9,
	}, p)
}

func TestProfile_NotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"Not Found"}`))
	})

	_, err := c.Profile(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestProfile_ServerError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := c.Profile(context.Background(), "x")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUserNotFound)
}
