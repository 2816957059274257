package release_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/go-github/v63/github"
	"github.com/hashicorp/go-cleanhttp"
	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chazuruo/binget/internal/errors"
	"github.com/chazuruo/binget/internal/release"
)

func toPtr[T any](v T) *T { return &v }

func newMockedClient(t *testing.T) *release.Client {
	t.Helper()

	httpClient := cleanhttp.DefaultClient()
	httpmock.ActivateNonDefault(httpClient)
	t.Cleanup(httpmock.DeactivateAndReset)

	client, err := release.NewClientWithHTTP("", httpClient)
	require.NoError(t, err)
	return client
}

func TestResolveVersionExplicit(t *testing.T) {
	client := newMockedClient(t)

	// No responder registered: an explicit version must not hit the network.
	got, err := client.ResolveVersion(context.Background(), "owner", "tool", "v1.2.3")
	require.NoError(t, err)
	assert.Equal(t, "1.2.3", got)

	got, err = client.ResolveVersion(context.Background(), "owner", "tool", "2.0.0")
	require.NoError(t, err)
	assert.Equal(t, "2.0.0", got)
}

func TestResolveVersionLatest(t *testing.T) {
	client := newMockedClient(t)

	httpmock.RegisterResponder(http.MethodGet, "https://api.github.com/repos/owner/tool/releases/latest",
		httpmock.NewJsonResponderOrPanic(http.StatusOK, &github.RepositoryRelease{TagName: toPtr("v3.1.4")}))

	got, err := client.ResolveVersion(context.Background(), "owner", "tool", "")
	require.NoError(t, err)
	assert.Equal(t, "3.1.4", got, "leading v is stripped")
}

func TestResolveVersionNoReleases(t *testing.T) {
	client := newMockedClient(t)

	httpmock.RegisterResponder(http.MethodGet, "https://api.github.com/repos/owner/tool/releases/latest",
		httpmock.NewStringResponder(http.StatusNotFound, `{"message": "Not Found"}`))

	_, err := client.ResolveVersion(context.Background(), "owner", "tool", "")
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
}

func TestResolveVersionNetworkFailure(t *testing.T) {
	client := newMockedClient(t)

	httpmock.RegisterResponder(http.MethodGet, "https://api.github.com/repos/owner/tool/releases/latest",
		httpmock.NewErrorResponder(assert.AnError))

	_, err := client.ResolveVersion(context.Background(), "owner", "tool", "")
	require.Error(t, err)
	assert.True(t, errors.IsNetwork(err))
	assert.False(t, errors.IsNotFound(err))
}

func TestFetchAssetsPrefixedVariantFirst(t *testing.T) {
	client := newMockedClient(t)

	calls := make([]string, 0, 2)
	httpmock.RegisterResponder(http.MethodGet, "https://api.github.com/repos/owner/tool/releases/tags/v1.2.3",
		func(req *http.Request) (*http.Response, error) {
			calls = append(calls, "v1.2.3")
			return httpmock.NewJsonResponse(http.StatusOK, &github.RepositoryRelease{
				TagName: toPtr("v1.2.3"),
				Assets: []*github.ReleaseAsset{{
					Name:               toPtr("tool_linux_amd64.tar.gz"),
					BrowserDownloadURL: toPtr("https://example.com/tool_linux_amd64.tar.gz"),
				}},
			})
		})
	httpmock.RegisterResponder(http.MethodGet, "https://api.github.com/repos/owner/tool/releases/tags/1.2.3",
		func(req *http.Request) (*http.Response, error) {
			calls = append(calls, "1.2.3")
			return httpmock.NewStringResponse(http.StatusNotFound, "{}"), nil
		})

	assets, err := client.FetchAssets(context.Background(), "owner", "tool", "1.2.3")
	require.NoError(t, err)
	require.Len(t, assets, 1)
	assert.Equal(t, "tool_linux_amd64.tar.gz", assets[0].Name)
	assert.Equal(t, []string{"v1.2.3"}, calls, "prefixed variant is probed first and wins")
}

func TestFetchAssetsFallsThroughToBareTag(t *testing.T) {
	client := newMockedClient(t)

	httpmock.RegisterResponder(http.MethodGet, "https://api.github.com/repos/owner/tool/releases/tags/v1.2.3",
		httpmock.NewStringResponder(http.StatusNotFound, `{"message": "Not Found"}`))
	httpmock.RegisterResponder(http.MethodGet, "https://api.github.com/repos/owner/tool/releases/tags/1.2.3",
		httpmock.NewJsonResponderOrPanic(http.StatusOK, &github.RepositoryRelease{
			TagName: toPtr("1.2.3"),
			Assets: []*github.ReleaseAsset{{
				Name:               toPtr("tool.zip"),
				BrowserDownloadURL: toPtr("https://example.com/tool.zip"),
			}},
		}))

	assets, err := client.FetchAssets(context.Background(), "owner", "tool", "1.2.3")
	require.NoError(t, err)
	require.Len(t, assets, 1)
	assert.Equal(t, "tool.zip", assets[0].Name)
}

func TestFetchAssetsEmptyReleaseFallsThrough(t *testing.T) {
	client := newMockedClient(t)

	// Prefixed tag exists but is source-only (no assets): fall through.
	httpmock.RegisterResponder(http.MethodGet, "https://api.github.com/repos/owner/tool/releases/tags/v1.2.3",
		httpmock.NewJsonResponderOrPanic(http.StatusOK, &github.RepositoryRelease{TagName: toPtr("v1.2.3")}))
	httpmock.RegisterResponder(http.MethodGet, "https://api.github.com/repos/owner/tool/releases/tags/1.2.3",
		httpmock.NewStringResponder(http.StatusNotFound, "{}"))

	_, err := client.FetchAssets(context.Background(), "owner", "tool", "1.2.3")
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
	assert.Contains(t, err.Error(), "v1.2.3, 1.2.3", "both variants are reported")
}

func TestFetchAssetsCustomHost(t *testing.T) {
	httpClient := cleanhttp.DefaultClient()
	httpmock.ActivateNonDefault(httpClient)
	t.Cleanup(httpmock.DeactivateAndReset)

	client, err := release.NewClientWithHTTP("https://git.corp.example/api/v3/", httpClient)
	require.NoError(t, err)

	httpmock.RegisterResponder(http.MethodGet, "https://git.corp.example/api/v3/repos/owner/tool/releases/tags/v1.0.0",
		httpmock.NewJsonResponderOrPanic(http.StatusOK, &github.RepositoryRelease{
			TagName: toPtr("v1.0.0"),
			Assets: []*github.ReleaseAsset{{
				Name:               toPtr("tool_linux_amd64.tar.gz"),
				BrowserDownloadURL: toPtr("https://git.corp.example/dl/tool_linux_amd64.tar.gz"),
			}},
		}))

	assets, err := client.FetchAssets(context.Background(), "owner", "tool", "1.0.0")
	require.NoError(t, err)
	require.Len(t, assets, 1)
}
