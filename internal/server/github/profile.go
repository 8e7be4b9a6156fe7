// Package github fetches public GitHub profiles for the dashboard's GitHub page.
package github

import (
	"context"
	"errors"
	"net/http"

	gh "github.com/google/go-github/v66/github"
)

var ErrUserNotFound = errors.New("github: user not found")

// Profile is the subset of a GitHub user the dashboard shows.
type Profile struct {
	Login       string `json:"login"`
	Name        string `json:"name,omitempty"`
	AvatarURL   string `json:"avatar_url"`
	Bio         string `json:"bio,omitempty"`
	HTMLURL     string `json:"html_url"`
	PublicRepos int    `json:"public_repos"`
	Followers   int    `json:"followers"`
}

type Client struct {
	gh *gh.Client
}

// NewClient uses httpClient, or http.DefaultClient when nil.
func NewClient(httpClient *http.Client) *Client {
	return &Client{gh: gh.NewClient(httpClient)}
}

func (c *Client) Profile(ctx context.Context, login string) (*Profile, error) {
	u, resp, err := c.gh.Users.Get(ctx, login)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return &Profile{
		Login:       u.GetLogin(),
		Name:        u.GetName(),
		AvatarURL:   u.GetAvatarURL(),
		Bio:         u.GetBio(),
		HTMLURL:     u.GetHTMLURL(),
		PublicRepos: u.GetPublicRepos(),
		Followers:   u.GetFollowers(),
	}, nil
}
