// Package installer downloads and executes NVIDIA .run driver installers.
package installer

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-cleanhttp"
)

// ProgressFunc receives the running byte count during a download. total is
// the expected size, or -1 when the server did not send a Content-Length.
type ProgressFunc func(downloaded, total int64)

// No client-level timeout: installers are hundreds of megabytes and the
// caller bounds the download through ctx.
var downloadClient = cleanhttp.DefaultClient()

// Download streams url into dest. On any failure the partially written file
// is removed; dest exists only after a complete, successful download. The
// finished file is marked executable since it is a self-extracting installer.
func Download(ctx context.Context, url, dest string, progress ProgressFunc) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("build download request: %w", err)
	}

	resp, err := downloadClient.Do(req)
	if err != nil {
		return fmt.Errorf("download %s: %w", filepath.Base(dest), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download %s: server returned status %d", filepath.Base(dest), resp.StatusCode)
	}

	tmp, err := os.CreateTemp(filepath.Dir(dest), ".download-*.partial")
	if err != nil {
		return fmt.Errorf("create download file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		tmp.Close()
		os.Remove(tmpPath)
	}()

	total := resp.ContentLength
	var body io.Reader = resp.Body
	if progress != nil {
		body = &progressReader{r: resp.Body, total: total, report: progress}
	}

	if _, err := io.Copy(tmp, body); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(dest), err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("sync %s: %w", filepath.Base(dest), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", filepath.Base(dest), err)
	}

	if err := os.Chmod(tmpPath, 0o755); err != nil {
		return fmt.Errorf("mark installer executable: %w", err)
	}
	if err := os.Rename(tmpPath, dest); err != nil {
		return fmt.Errorf("finalize %s: %w", filepath.Base(dest), err)
	}
	return nil
}

type progressReader struct {
	r      io.Reader
	total  int64
	read   int64
	report ProgressFunc
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 {
		p.read += int64(n)
		p.report(p.read, p.total)
	}
	return n, err
}
