package scoopgithub

import (
	"context"

	ghApi "github.com/google/go-github/v26/github"
	"golang.org/x/oauth2"
)

// CreateClient returns a GitHub client authenticated with token. An empty
// token gives an anonymous client.
func CreateClient(ctx context.Context, token string) *ghApi.Client {
	if token == "" {
		return ghApi.NewClient(nil)
	}
	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	tc := oauth2.NewClient(ctx, ts)

	return ghApi.NewClient(tc)
}
