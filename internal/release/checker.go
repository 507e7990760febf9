// Package release fetches the latest published NVIDIA Linux driver version.
package release

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-cleanhttp"
)

const (
	latestURL    = "https://download.nvidia.com/XFree86/Linux-x86_64/latest.txt"
	downloadBase = "https://download.nvidia.com/XFree86/Linux-x86_64"

	// The download host rejects Go's default User-Agent.
	userAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36"

	fetchTimeout = 10 * time.Second

	// latest.txt is a single short line; anything bigger is not the resource
	// we expect.
	maxBodyBytes = 4 << 10
)

// Info describes the newest driver on the production branch.
type Info struct {
	LatestVersion string
	DownloadURL   string
}

// NetworkError reports a transport-level failure of the version fetch.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("could not reach the NVIDIA download server: %v", e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// ParseError reports a response body that is not a version listing.
type ParseError struct {
	Body string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("unexpected response from the NVIDIA download server: %q", e.Body)
}

var httpClient = func() *http.Client {
	c := cleanhttp.DefaultClient()
	c.Timeout = fetchTimeout
	return c
}()

// endpoint is swapped in tests so no real fetch ever happens.
var endpoint = latestURL

// FetchLatest retrieves and parses the production-branch latest.txt. The
// body format is "<version> <version>/NVIDIA-Linux-x86_64-<version>.run";
// the first whitespace-separated field is authoritative.
func FetchLatest(ctx context.Context) (Info, error) {
	ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Info{}, &NetworkError{Err: err}
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := httpClient.Do(req)
	if err != nil {
		return Info{}, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Info{}, &NetworkError{Err: fmt.Errorf("server returned status %d", resp.StatusCode)}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return Info{}, &NetworkError{Err: err}
	}

	version, err := parseLatest(string(body))
	if err != nil {
		return Info{}, err
	}

	return Info{
		LatestVersion: version,
		DownloadURL:   DownloadURL(version),
	}, nil
}

// DownloadURL builds the .run installer URL for a driver version.
func DownloadURL(version string) string {
	return fmt.Sprintf("%s/%s/%s", downloadBase, version, InstallerFileName(version))
}

// InstallerFileName is the vendor's file naming scheme for x86_64 installers.
func InstallerFileName(version string) string {
	return fmt.Sprintf("NVIDIA-Linux-x86_64-%s.run", version)
}

func parseLatest(body string) (string, error) {
	fields := strings.Fields(body)
	if len(fields) == 0 {
		return "", &ParseError{Body: truncate(body)}
	}

	version := fields[0]
	// A version field is dotted digits; reject HTML error pages and the like.
	for _, r := range version {
		if (r < '0' || r > '9') && r != '.' {
			return "", &ParseError{Body: truncate(body)}
		}
	}
	return version, nil
}

func truncate(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > 120 {
		return s[:120] + "…"
	}
	return s
}
