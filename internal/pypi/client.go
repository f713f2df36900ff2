// Package pypi resolves package versions against the PyPI JSON index,
// honoring yanked-release and pre-release filtering.
package pypi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"time"
)

const (
	defaultRegistryURL   = "https://pypi.org/pypi"
	maxIndexResponseSize = 10 * 1024 * 1024
)

var validPackageName = regexp.MustCompile(`^[A-Za-z0-9]([A-Za-z0-9._-]*[A-Za-z0-9])?$`)

// Client queries a PyPI-compatible JSON index.
type Client struct {
	registryURL string
	httpClient  *http.Client
	cache       *Cache
}

// Option configures a Client.
type Option func(*Client)

// WithRegistryURL points the client at a non-default index, for tests.
func WithRegistryURL(u string) Option {
	return func(c *Client) { c.registryURL = u }
}

// WithHTTPClient overrides the http.Client used for requests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithCache enables disk caching of index responses.
func WithCache(cache *Cache) Option {
	return func(c *Client) { c.cache = cache }
}

// New returns a Client configured for the public PyPI index unless
// overridden.
func New(timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		registryURL: defaultRegistryURL,
		httpClient:  &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// indexResponse mirrors the subset of the PyPI JSON API response this
// client needs: the full per-file release list, including yank status,
// which a simplified struct would otherwise discard.
type indexResponse struct {
	Releases map[string][]releaseFile `json:"releases"`
}

type releaseFile struct {
	Yanked       bool   `json:"yanked"`
	YankedReason string `json:"yanked_reason"`
}

// anyFileYanked reports whether a release should be excluded because at
// least one of its distributed files is yanked.
func anyFileYanked(files []releaseFile) bool {
	for _, f := range files {
		if f.Yanked {
			return true
		}
	}
	return false
}

func isValidPackageName(name string) bool {
	return name != "" && validPackageName.MatchString(name)
}

func (c *Client) fetchIndex(ctx context.Context, name string) (*indexResponse, error) {
	if !isValidPackageName(name) {
		return nil, &ResolverError{Package: name, Type: ErrorTypeNotFound, Err: fmt.Errorf("invalid package name")}
	}

	if c.cache != nil {
		if cached, ok := c.cache.Get(name); ok {
			return cached, nil
		}
	}

	u, err := url.Parse(c.registryURL)
	if err != nil {
		return nil, &ResolverError{Package: name, Type: ErrorTypeNetwork, Err: err}
	}
	u = u.JoinPath(name, "json")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, &ResolverError{Package: name, Type: ErrorTypeNetwork, Err: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &ResolverError{Package: name, Type: ErrorTypeNetwork, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, &ResolverError{Package: name, Type: ErrorTypeNotFound, Err: fmt.Errorf("package not found on index")}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &ResolverError{Package: name, Type: ErrorTypeNetwork, Err: fmt.Errorf("index returned status %d", resp.StatusCode)}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxIndexResponseSize))
	if err != nil {
		return nil, &ResolverError{Package: name, Type: ErrorTypeNetwork, Err: err}
	}

	var idx indexResponse
	if err := json.Unmarshal(body, &idx); err != nil {
		return nil, &ResolverError{Package: name, Type: ErrorTypeFormat, Err: err}
	}

	if c.cache != nil {
		c.cache.Put(name, &idx)
	}

	return &idx, nil
}

// Versions returns every release version satisfying the stability and
// constraint filters, sorted newest-first. stable=true excludes
// pre-releases; constraint, if non-empty, is a semver constraint string.
func (c *Client) Versions(ctx context.Context, name string, stable bool, constraint string) ([]string, error) {
	idx, err := c.fetchIndex(ctx, name)
	if err != nil {
		return nil, err
	}

	var versions []string
	for v, files := range idx.Releases {
		if len(files) == 0 {
			continue
		}
		if anyFileYanked(files) {
			continue
		}
		if stable && isPreRelease(v) {
			continue
		}
		if !satisfiesConstraint(v, constraint) {
			continue
		}
		versions = append(versions, v)
	}

	versions = SortVersionsDescending(versions)
	if len(versions) == 0 {
		return nil, &ResolverError{Package: name, Type: ErrorTypeNoMatchingVersion, Err: fmt.Errorf("no release satisfies the requested filters")}
	}
	return versions, nil
}

// Latest returns the single newest version satisfying the filters.
func (c *Client) Latest(ctx context.Context, name string, stable bool, constraint string) (string, error) {
	versions, err := c.Versions(ctx, name, stable, constraint)
	if err != nil {
		return "", err
	}
	return versions[0], nil
}
