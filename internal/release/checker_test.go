package release

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func withTestEndpoint(t *testing.T, handler http.HandlerFunc) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	original := endpoint
	endpoint = srv.URL
	t.Cleanup(func() { endpoint = original })
}

func TestFetchLatestParsesListing(t *testing.T) {
	withTestEndpoint(t, func(w http.ResponseWriter, r *http.Request) {
		if ua := r.Header.Get("User-Agent"); ua != userAgent {
			t.Errorf("User-Agent = %q, want %q", ua, userAgent)
		}
		w.Write([]byte("580.105.08 580.105.08/NVIDIA-Linux-x86_64-580.105.08.run\n"))
	})

	info, err := FetchLatest(context.Background())
	if err != nil {
		t.Fatalf("FetchLatest: %v", err)
	}
	if info.LatestVersion != "580.105.08" {
		t.Errorf("latest = %q, want 580.105.08", info.LatestVersion)
	}
	want := "https://download.nvidia.com/XFree86/Linux-x86_64/580.105.08/NVIDIA-Linux-x86_64-580.105.08.run"
	if info.DownloadURL != want {
		t.Errorf("download url = %q, want %q", info.DownloadURL, want)
	}
}

func TestFetchLatestVersionOnlyBody(t *testing.T) {
	withTestEndpoint(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("581.80\n"))
	})

	info, err := FetchLatest(context.Background())
	if err != nil {
		t.Fatalf("FetchLatest: %v", err)
	}
	if info.LatestVersion != "581.80" {
		t.Errorf("latest = %q, want 581.80", info.LatestVersion)
	}
}

func TestFetchLatestReportsNetworkErrorOnBadStatus(t *testing.T) {
	withTestEndpoint(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	})

	_, err := FetchLatest(context.Background())
	var netErr *NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("expected *NetworkError, got %T: %v", err, err)
	}
}

func TestFetchLatestReportsNetworkErrorWhenUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close() // connection refused from here on

	original := endpoint
	endpoint = srv.URL
	t.Cleanup(func() { endpoint = original })

	_, err := FetchLatest(context.Background())
	var netErr *NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("expected *NetworkError, got %T: %v", err, err)
	}
}

func TestFetchLatestReportsParseErrorOnGarbage(t *testing.T) {
	for name, body := range map[string]string{
		"empty":      "",
		"whitespace": "  \n\t",
		"html":       "<html><head><title>404</title></head></html>",
	} {
		t.Run(name, func(t *testing.T) {
			withTestEndpoint(t, func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(body))
			})

			_, err := FetchLatest(context.Background())
			var parseErr *ParseError
			if !errors.As(err, &parseErr) {
				t.Fatalf("expected *ParseError, got %T: %v", err, err)
			}
		})
	}
}

func TestDownloadURLTemplate(t *testing.T) {
	got := DownloadURL("580.9")
	want := "https://download.nvidia.com/XFree86/Linux-x86_64/580.9/NVIDIA-Linux-x86_64-580.9.run"
	if got != want {
		t.Errorf("DownloadURL(580.9) = %q, want %q", got, want)
	}
}
