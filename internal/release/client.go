// Package release talks to the GitHub-style release feed: it resolves
// "latest" (or an explicit version) into a concrete tag and retrieves the
// asset catalog published under that tag.
//
// Upstream projects tag releases inconsistently (v1.2.3 vs 1.2.3), so the
// catalog fetch probes tag variants in a fixed order, prefixed form first.
// Neither operation retries; failures here are terminal and the one retrying
// stage in the pipeline is the downloader.
package release

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/go-github/v63/github"
	"github.com/hashicorp/go-cleanhttp"

	"github.com/chazuruo/binget/internal/config"
	"github.com/chazuruo/binget/internal/errors"
)

// requestTimeout bounds each single feed request.
const requestTimeout = 10 * time.Second

// Asset is a single downloadable file attached to a release.
type Asset struct {
	Name string
	URL  string
}

// Client fetches release metadata from the feed.
type Client struct {
	gh *github.Client
}

// NewClient builds a feed client for the given API host. The default host
// uses the public endpoint; anything else is treated as an enterprise-style
// base URL.
func NewClient(host string) (*Client, error) {
	httpClient := cleanhttp.DefaultClient()
	httpClient.Timeout = requestTimeout
	return newClient(host, httpClient)
}

// NewClientWithHTTP is like NewClient but with a caller-supplied HTTP
// client (useful for testing).
func NewClientWithHTTP(host string, httpClient *http.Client) (*Client, error) {
	return newClient(host, httpClient)
}

func newClient(host string, httpClient *http.Client) (*Client, error) {
	gh := github.NewClient(httpClient)
	if host != "" && host != config.DefaultHost {
		var err error
		gh, err = gh.WithEnterpriseURLs(host, host)
		if err != nil {
			return nil, errors.Validationf("invalid feed host %q: %v", host, err)
		}
	}
	return &Client{gh: gh}, nil
}

// ResolveVersion turns an optional explicit version into the concrete
// version string used for tag probing. An explicit version is used verbatim
// after stripping a leading "v"; otherwise the feed's latest release is
// queried with a single best-effort attempt.
func (c *Client) ResolveVersion(ctx context.Context, owner, repo, explicit string) (string, error) {
	if explicit != "" {
		return strings.TrimPrefix(explicit, "v"), nil
	}

	rel, _, err := c.gh.Repositories.GetLatestRelease(ctx, owner, repo)
	if err != nil {
		if isNotFound(err) {
			return "", &errors.ReleaseError{Repo: owner + "/" + repo, Err: err}
		}
		return "", fmt.Errorf("%w: fetch latest release: %w", errors.ErrNetwork, err)
	}

	tag := rel.GetTagName()
	if tag == "" {
		return "", &errors.ReleaseError{Repo: owner + "/" + repo}
	}
	return strings.TrimPrefix(tag, "v"), nil
}

// FetchAssets retrieves the asset catalog for a resolved version, probing
// the prefixed tag variant first and the bare form second. The first
// variant whose release exists and has at least one asset wins; a failed or
// empty response simply falls through to the next variant.
func (c *Client) FetchAssets(ctx context.Context, owner, repo, version string) ([]Asset, error) {
	variants := tagVariants(version)

	for _, tag := range variants {
		rel, _, err := c.gh.Repositories.GetReleaseByTag(ctx, owner, repo, tag)
		if err != nil || rel == nil || len(rel.Assets) == 0 {
			continue
		}

		assets := make([]Asset, 0, len(rel.Assets))
		for _, a := range rel.Assets {
			if a == nil || a.GetName() == "" || a.GetBrowserDownloadURL() == "" {
				continue
			}
			assets = append(assets, Asset{Name: a.GetName(), URL: a.GetBrowserDownloadURL()})
		}
		if len(assets) > 0 {
			return assets, nil
		}
	}

	return nil, &errors.ReleaseError{Repo: owner + "/" + repo, Variants: variants}
}

// tagVariants returns the tag spellings to probe for a version, prefixed
// form first.
func tagVariants(version string) []string {
	bare := strings.TrimPrefix(version, "v")
	return []string{"v" + bare, bare}
}

func isNotFound(err error) bool {
	var ghErr *github.ErrorResponse
	if stderrors.As(err, &ghErr) && ghErr.Response != nil {
		return ghErr.Response.StatusCode == http.StatusNotFound
	}
	return false
}
