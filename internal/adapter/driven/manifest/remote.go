package manifest

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/gregjones/httpcache"

	"github.com/ericfisherdev/verifyversion/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.RemoteManifestSource = (*RemoteSource)(nil)

// DefaultRawURL is the raw-content host for public GitHub.
const DefaultRawURL = "https://raw.githubusercontent.com"

// maxManifestBytes caps how much of a response body is read.
const maxManifestBytes = 1 << 20

// RemoteSource fetches the manifest from <rawURL>/<owner>/<repo>/<branch>/<path>.
type RemoteSource struct {
	httpClient *http.Client
	rawURL     string
	path       string
}

// NewRemoteSource creates a RemoteSource backed by an in-memory ETag cache
// transport. Empty rawURL and relPath fall back to the defaults.
func NewRemoteSource(rawURL, relPath string) *RemoteSource {
	return NewRemoteSourceWithHTTPClient(httpcache.NewMemoryCacheTransport().Client(), rawURL, relPath)
}

// NewRemoteSourceWithHTTPClient creates a RemoteSource with a custom http.Client.
// This constructor is intended for testing, allowing injection of an httptest server.
func NewRemoteSourceWithHTTPClient(httpClient *http.Client, rawURL, relPath string) *RemoteSource {
	if rawURL == "" {
		rawURL = DefaultRawURL
	}
	if relPath == "" {
		relPath = DefaultPath
	}
	return &RemoteSource{
		httpClient: httpClient,
		rawURL:     strings.TrimSuffix(rawURL, "/"),
		path:       strings.TrimPrefix(relPath, "/"),
	}
}

// URL returns the raw-content URL of the manifest on owner/repo@branch.
// Each segment of the branch is escaped separately so "feature/bump" keeps
// its slash while "#" and "%" are encoded.
func (s *RemoteSource) URL(owner, repo, branch string) string {
	return strings.Join([]string{
		s.rawURL,
		url.PathEscape(owner),
		url.PathEscape(repo),
		escapeSegments(branch),
		s.path,
	}, "/")
}

func escapeSegments(p string) string {
	segments := strings.Split(p, "/")
	for i, seg := range segments {
		segments[i] = url.PathEscape(seg)
	}
	return strings.Join(segments, "/")
}

// FetchVersion downloads the manifest from the given branch and returns its
// version field. Non-2xx responses and non-JSON bodies are errors.
func (s *RemoteSource) FetchVersion(ctx context.Context, owner, repo, branch string) (string, error) {
	target := s.URL(owner, repo, branch)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return "", fmt.Errorf("building manifest request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching manifest %s: %w", target, err)
	}
	defer func() { _ = resp.Body.Close() }()

	slog.Debug("raw manifest fetch",
		"url", target,
		"status", resp.StatusCode,
		"from_cache", resp.Header.Get(httpcache.XFromCache) != "",
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("fetching manifest %s: unexpected status %d", target, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxManifestBytes))
	if err != nil {
		return "", fmt.Errorf("reading manifest %s: %w", target, err)
	}

	return decodeVersion(data, target)
}
