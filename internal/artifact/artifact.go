// Package artifact downloads generated images and writes them to the save
// directory with a provenance sidecar.
package artifact

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// minImageBytes is the sanity floor for a downloaded file. Anything smaller
// is an error page or placeholder, not a generated image.
const minImageBytes = 30 * 1024

// slugLength caps how much of the prompt goes into the filename.
const slugLength = 45

var nonWord = regexp.MustCompile(`\W+`)

// Meta is the JSON sidecar written next to every saved image.
type Meta struct {
	GeneratedAt time.Time         `json:"generated_at"`
	Prompt      string            `json:"prompt"`
	Source      string            `json:"source"`
	SourceName  string            `json:"source_name"`
	File        string            `json:"file"`
	Components  map[string]string `json:"components,omitempty"`
}

// Downloader fetches image URLs with the browser session's identity so
// authenticated CDN URLs resolve.
type Downloader struct {
	client *http.Client

	// UserAgent and Cookies mirror the automation browser.
	UserAgent string
	Cookies   []*http.Cookie
}

// NewDownloader creates a downloader with a 30s request timeout.
func NewDownloader(userAgent string, cookies []*http.Cookie) *Downloader {
	return &Downloader{
		client:    &http.Client{Timeout: 30 * time.Second},
		UserAgent: userAgent,
		Cookies:   cookies,
	}
}

// Fetch downloads url, presenting referer and the browser's cookies.
func (d *Downloader) Fetch(ctx context.Context, url, referer string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if d.UserAgent != "" {
		req.Header.Set("User-Agent", d.UserAgent)
	}
	if referer != "" {
		req.Header.Set("Referer", referer)
	}
	for _, c := range d.Cookies {
		req.AddCookie(c)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: status %d", url, resp.StatusCode)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return data, nil
}

// Slug turns a prompt into a filesystem-safe filename fragment.
func Slug(prompt string) string {
	r := []rune(prompt)
	if len(r) > slugLength {
		r = r[:slugLength]
	}
	return strings.Trim(nonWord.ReplaceAllString(string(r), "_"), "_")
}

// Filename builds the image filename. Series artifacts embed the series id
// and index so files sort next to their siblings; singles get a timestamp.
func Filename(prompt, seriesID string, seriesIndex int, now time.Time) string {
	slug := Slug(prompt)
	if seriesID != "" {
		return fmt.Sprintf("%s_S%d_%s.png", seriesID, seriesIndex, slug)
	}
	return fmt.Sprintf("%s_%s.png", now.Format("20060102_150405"), slug)
}

// SaveOptions carries the provenance recorded in the sidecar.
type SaveOptions struct {
	Prompt     string
	SourceURL  string
	SourceName string
	Components map[string]string
}

// Save writes the image bytes under dir and drops a _meta.json sidecar next
// to it. Files under the 30KB floor are rejected without writing anything.
func Save(dir, filename string, data []byte, opts SaveOptions) (string, error) {
	if len(data) < minImageBytes {
		return "", fmt.Errorf("file too small (%d KB), not a real image", len(data)/1024)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create save dir: %w", err)
	}

	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write image: %w", err)
	}

	source := opts.SourceURL
	if r := []rune(source); len(r) > 200 {
		source = string(r[:200])
	}
	meta := Meta{
		GeneratedAt: time.Now(),
		Prompt:      opts.Prompt,
		Source:      source,
		SourceName:  opts.SourceName,
		File:        path,
		Components:  opts.Components,
	}
	if err := writeSidecar(path, meta); err != nil {
		// The image is already safe on disk; provenance loss is not fatal.
		slog.Warn("sidecar write failed", "file", path, "error", err)
	}

	slog.Info("image saved", "file", path, "size_kb", len(data)/1024)
	return path, nil
}

func writeSidecar(imagePath string, meta Meta) error {
	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return err
	}
	sidecar := strings.TrimSuffix(imagePath, ".png") + "_meta.json"
	return os.WriteFile(sidecar, data, 0o644)
}
