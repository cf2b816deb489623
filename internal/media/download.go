// Package media saves wallpapers to disk and shares their links.
package media

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"sync"
	"time"

	"github.com/five82/wallflower/internal/wallpaper"
)

const downloadTimeout = 2 * time.Minute

// DownloaderOptions tune a Downloader. Zero values select the defaults.
type DownloaderOptions struct {
	HTTPClient *http.Client
	Now        func() time.Time
	Logger     *slog.Logger
}

// Downloader fetches full resolution images into a directory.
type Downloader struct {
	dir  string
	http *http.Client
	now  func() time.Time
	log  *slog.Logger

	mu sync.Mutex // serializes picking a file name and renaming onto it
}

// NewDownloader saves into dir, which is created on first use.
func NewDownloader(dir string, opts DownloaderOptions) *Downloader {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: downloadTimeout}
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Downloader{dir: dir, http: httpClient, now: now, log: logger.With("component", "download")}
}

// Dir returns the destination directory.
func (d *Downloader) Dir() string {
	return d.dir
}

// Download saves rec as wallpaper_<unix ms>.jpg and returns the file path.
// Anything other than a 200 response is a failure and leaves no file behind.
func (d *Downloader) Download(ctx context.Context, rec wallpaper.Record) (string, error) {
	src := rec.DownloadURL()
	if src == "" {
		return "", fmt.Errorf("%w: record %q has no image url", wallpaper.ErrInvalidRecord, rec.ID)
	}
	if err := os.MkdirAll(d.dir, 0o755); err != nil {
		return "", fmt.Errorf("create download dir: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	resp, err := d.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: download %s: %v", wallpaper.ErrNetwork, rec.ID, err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: download %s returned status %d", wallpaper.ErrNetwork, rec.ID, resp.StatusCode)
	}

	tmp, err := os.CreateTemp(d.dir, ".wallpaper-*.part")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	n, err := io.Copy(tmp, resp.Body)
	if err != nil {
		_ = tmp.Close()
		return "", fmt.Errorf("%w: download %s: %v", wallpaper.ErrNetwork, rec.ID, err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close temp file: %w", err)
	}

	d.mu.Lock()
	dest := d.destination(rec.ID)
	err = os.Rename(tmpName, dest)
	d.mu.Unlock()
	if err != nil {
		return "", fmt.Errorf("save wallpaper: %w", err)
	}
	d.log.Info("wallpaper saved", "id", rec.ID, "path", dest, "bytes", n)
	return dest, nil
}

var unsafeName = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

func (d *Downloader) destination(id string) string {
	ms := d.now().UnixMilli()
	path := filepath.Join(d.dir, fmt.Sprintf("wallpaper_%d.jpg", ms))
	if _, err := os.Stat(path); err == nil {
		path = filepath.Join(d.dir, fmt.Sprintf("wallpaper_%d_%s.jpg", ms, unsafeName.ReplaceAllString(id, "_")))
	}
	return path
}
