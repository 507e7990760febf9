package installer

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"testing"
)

func TestDownloadWritesFileAndReportsProgress(t *testing.T) {
	payload := bytes.Repeat([]byte("nvidia"), 4096)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// The body exceeds net/http's write buffer, so Content-Length must be
		// declared explicitly or the server falls back to chunked encoding.
		w.Header().Set("Content-Length", strconv.Itoa(len(payload)))
		w.Write(payload)
	}))
	t.Cleanup(srv.Close)

	dest := filepath.Join(t.TempDir(), "NVIDIA-Linux-x86_64-580.105.08.run")

	var lastDownloaded, lastTotal int64
	err := Download(context.Background(), srv.URL, dest, func(downloaded, total int64) {
		lastDownloaded = downloaded
		lastTotal = total
	})
	if err != nil {
		t.Fatalf("Download: %v", err)
	}

	got, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("read downloaded file: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Fatalf("downloaded %d bytes, want %d", len(got), len(payload))
	}

	if lastDownloaded != int64(len(payload)) {
		t.Errorf("final progress = %d, want %d", lastDownloaded, len(payload))
	}
	if lastTotal != int64(len(payload)) {
		t.Errorf("reported total = %d, want %d", lastTotal, len(payload))
	}

	info, err := os.Stat(dest)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm()&0o111 == 0 {
		t.Error("downloaded installer is not executable")
	}
}

func TestDownloadReportsUnknownLengthAsMinusOne(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		flusher := w.(http.Flusher)
		// Chunked response: no Content-Length.
		w.Write([]byte("chunk"))
		flusher.Flush()
		w.Write([]byte("chunk"))
	}))
	t.Cleanup(srv.Close)

	dest := filepath.Join(t.TempDir(), "driver.run")

	var total int64
	if err := Download(context.Background(), srv.URL, dest, func(_, t int64) { total = t }); err != nil {
		t.Fatalf("Download: %v", err)
	}
	if total != -1 {
		t.Errorf("total = %d, want -1 for unknown length", total)
	}
}

func TestDownloadFailureLeavesNoFile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	t.Cleanup(srv.Close)

	dir := t.TempDir()
	dest := filepath.Join(dir, "driver.run")

	if err := Download(context.Background(), srv.URL, dest, nil); err == nil {
		t.Fatal("expected error for 404 response")
	}

	assertDirEmpty(t, dir)
}

func TestDownloadTruncatedBodyLeavesNoFile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Length", "1000000")
		w.Write([]byte("short"))
		// Handler returns early; the client sees an unexpected EOF.
	}))
	t.Cleanup(srv.Close)

	dir := t.TempDir()
	dest := filepath.Join(dir, "driver.run")

	if err := Download(context.Background(), srv.URL, dest, nil); err == nil {
		t.Fatal("expected error for truncated body")
	}

	assertDirEmpty(t, dir)
}

func assertDirEmpty(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Fatalf("expected no residual files, found %v", names)
	}
}
