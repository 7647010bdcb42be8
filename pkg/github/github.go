// Package github provides the GitHub API client used by the version resolver.
// It handles client creation with authentication from the environment or the
// OS keyring, and exposes type aliases for the go-github types the rest of
// the codebase needs so other packages don't import go-github directly.
package github

import (
	"context"
	"net/http"
	"os"

	"github.com/google/go-github/v74/github"
	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
)

type (
	Client            = github.Client
	Commit            = github.Commit
	GitObject         = github.GitObject
	ListOptions       = github.ListOptions
	Reference         = github.Reference
	Repository        = github.Repository
	RepositoryRelease = github.RepositoryRelease
	RepositoryTag     = github.RepositoryTag
	Response          = github.Response
	Tag               = github.Tag
)

// New creates a GitHub API client.
// The token is taken from the GITHUB_TOKEN environment variable, or from the
// OS keyring if HASHPIN_KEYRING_ENABLED is "true". Without a token the client
// sends unauthenticated requests.
func New(ctx context.Context, logE *logrus.Entry) *Client {
	return github.NewClient(httpClient(ctx, logE, os.Getenv("GITHUB_TOKEN")))
}

func Ptr[T any](v T) *T {
	return github.Ptr(v)
}

func keyringEnabled() bool {
	return os.Getenv("HASHPIN_KEYRING_ENABLED") == "true"
}

func httpClient(ctx context.Context, logE *logrus.Entry, token string) *http.Client {
	if token == "" {
		if keyringEnabled() {
			return oauth2.NewClient(ctx, NewKeyringTokenSource(logE))
		}
		return http.DefaultClient
	}
	return oauth2.NewClient(ctx, oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	))
}
