package wallpaper

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"sync"
	"text/template"
	"time"

	"github.com/Masterminds/sprig/v3"
	"github.com/schollz/progressbar/v3"
	"github.com/smartisanos/wallkit/pkg/history"
)

const (
	// DefaultNameTemplate matches the original <id>.jpg naming.
	DefaultNameTemplate = "{{ .ID }}.jpg"

	DefaultConcurrency = 3

	imageTimeout = 20 * time.Second
)

var forbiddenNameChars = regexp.MustCompile(`[\\/<>:"|?*]`)

// Summary counts the outcomes of a download run.
type Summary struct {
	Downloaded int
	Skipped    int
	Failed     int
}

// Downloader fetches wallpaper images into a directory with a bounded worker
// pool. History is optional; when set, already-recorded ids are skipped
// unless Redownload is enabled.
type Downloader struct {
	HTTPClient   *http.Client
	Dir          string
	Concurrency  int
	NameTemplate string
	History      *history.DB
	Redownload   bool
	ShowProgress bool
}

// NewDownloader creates a Downloader writing into dir, with the 20s per-image
// timeout the original application used.
func NewDownloader(dir string) *Downloader {
	return &Downloader{
		HTTPClient:   &http.Client{Timeout: imageTimeout},
		Dir:          dir,
		Concurrency:  DefaultConcurrency,
		NameTemplate: DefaultNameTemplate,
	}
}

// Download fetches all given wallpapers. Per-image failures are logged and
// counted, not fatal; the error return covers setup problems only.
func (d *Downloader) Download(ctx context.Context, source string, walls []Wallpaper) (*Summary, error) {
	if len(walls) == 0 {
		return &Summary{}, nil
	}

	nameTmpl := d.NameTemplate
	if nameTmpl == "" {
		nameTmpl = DefaultNameTemplate
	}
	tmpl, err := template.New("filename").Funcs(sprig.FuncMap()).Parse(nameTmpl)
	if err != nil {
		return nil, fmt.Errorf("parsing name template: %w", err)
	}

	if err := os.MkdirAll(d.Dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating download directory: %w", err)
	}

	var bar *progressbar.ProgressBar
	if d.ShowProgress {
		bar = progressbar.NewOptions(len(walls),
			progressbar.OptionSetDescription("downloading"),
			progressbar.OptionShowCount(),
		)
	}

	concurrency := d.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	var (
		summary Summary
		mu      sync.Mutex
		wg      sync.WaitGroup
		jobs    = make(chan Wallpaper)
	)

	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for w := range jobs {
				outcome := d.downloadOne(ctx, tmpl, source, w)
				mu.Lock()
				switch outcome {
				case outcomeDownloaded:
					summary.Downloaded++
				case outcomeSkipped:
					summary.Skipped++
				case outcomeFailed:
					summary.Failed++
				}
				mu.Unlock()
				if bar != nil {
					_ = bar.Add(1)
				}
			}
		}()
	}

	for _, w := range walls {
		select {
		case jobs <- w:
		case <-ctx.Done():
			close(jobs)
			wg.Wait()
			return &summary, ctx.Err()
		}
	}
	close(jobs)
	wg.Wait()

	return &summary, nil
}

type outcome int

const (
	outcomeDownloaded outcome = iota
	outcomeSkipped
	outcomeFailed
)

func (d *Downloader) downloadOne(ctx context.Context, tmpl *template.Template, source string, w Wallpaper) outcome {
	if w.URL == "" || w.ID == "" {
		slog.Warn("wallpaper entry without url or id skipped", "id", w.ID)
		return outcomeSkipped
	}

	if d.History != nil && !d.Redownload {
		seen, err := d.History.Seen(w.ID)
		if err != nil {
			slog.Warn("history lookup failed", "id", w.ID, "error", err)
		} else if seen {
			slog.Debug("wallpaper already downloaded", "id", w.ID)
			return outcomeSkipped
		}
	}

	name, err := renderName(tmpl, w)
	if err != nil {
		slog.Warn("could not render file name", "id", w.ID, "error", err)
		return outcomeFailed
	}
	path := filepath.Join(d.Dir, name)

	size, err := d.fetch(ctx, w.URL, path)
	if err != nil {
		slog.Warn("wallpaper download failed", "id", w.ID, "url", w.URL, "error", err)
		return outcomeFailed
	}

	slog.Debug("wallpaper downloaded", "id", w.ID, "path", path, "size", size)

	if d.History != nil {
		err := d.History.Add(history.Entry{
			ID:           w.ID,
			Source:       source,
			URL:          w.URL,
			Path:         path,
			Size:         size,
			DownloadedAt: time.Now(),
		})
		if err != nil {
			slog.Warn("could not record download", "id", w.ID, "error", err)
		}
	}

	return outcomeDownloaded
}

func renderName(tmpl *template.Template, w Wallpaper) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, w); err != nil {
		return "", err
	}
	name := forbiddenNameChars.ReplaceAllString(buf.String(), "_")
	if name == "" {
		return "", fmt.Errorf("name template produced an empty name")
	}
	return name, nil
}

func (d *Downloader) fetch(ctx context.Context, imageURL, path string) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return 0, fmt.Errorf("building image request: %w", err)
	}

	resp, err := d.HTTPClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("fetching image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("image request returned %s", resp.Status)
	}

	out, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("creating image file: %w", err)
	}

	size, copyErr := io.Copy(out, resp.Body)

	if closeErr := out.Close(); closeErr != nil && copyErr == nil {
		copyErr = fmt.Errorf("closing image file: %w", closeErr)
	}
	if copyErr != nil {
		// A half-written image is worse than none.
		os.Remove(path)
		return 0, copyErr
	}
	return size, nil
}
