// Package sitesync keeps a static site page in step with the published
// restaurant document by polling it and re-rendering the page.
package sitesync

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"restaurant-cms/models"
)

var ErrDataUnavailable = errors.New("no data source available")

// Loader finds the current document: a local cache file first, then the
// published JSON over HTTP.
type Loader struct {
	CachePath  string
	URL        string
	HTTPClient *http.Client
}

func NewLoader(cachePath, url string) *Loader {
	return &Loader{
		CachePath:  cachePath,
		URL:        url,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Load returns ErrDataUnavailable (wrapped) when no source produced a
// document. A cache file that does not decode is skipped.
func (l *Loader) Load(ctx context.Context) (*models.Document, error) {
	if doc, ok := l.fromCache(); ok {
		return doc, nil
	}
	if l.URL == "" {
		return nil, ErrDataUnavailable
	}

	doc, err := l.fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
	}
	return doc, nil
}

func (l *Loader) fromCache() (*models.Document, bool) {
	if l.CachePath == "" {
		return nil, false
	}
	data, err := os.ReadFile(l.CachePath)
	if err != nil {
		return nil, false
	}
	var doc models.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, false
	}
	return &doc, true
}

func (l *Loader) fetch(ctx context.Context) (*models.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.URL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-cache")

	client := l.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("GET %s: HTTP %d", l.URL, resp.StatusCode)
	}

	var doc models.Document
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", l.URL, err)
	}
	return &doc, nil
}
