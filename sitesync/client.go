package sitesync

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"restaurant-cms/models"
	"restaurant-cms/render"
	"restaurant-cms/store"
)

const DefaultInterval = 30 * time.Second

type Config struct {
	// TemplatePath is the pristine page; it is re-read for every render so
	// each pass starts from the original markup.
	TemplatePath string
	OutputPath   string
	Interval     time.Duration
	// Watch re-renders as soon as the template or the cache file changes,
	// in addition to the interval refresh.
	Watch bool
}

type Client struct {
	loader   *Loader
	renderer *render.Renderer
	cfg      Config
	logger   *zap.Logger
}

func NewClient(loader *Loader, renderer *render.Renderer, cfg Config, logger *zap.Logger) *Client {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultInterval
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{loader: loader, renderer: renderer, cfg: cfg, logger: logger}
}

// Refresh loads the document and rewrites the output page. On any error the
// previous output is left in place.
func (c *Client) Refresh(ctx context.Context) error {
	doc, err := c.loader.Load(ctx)
	if err != nil {
		return err
	}
	return c.render(doc)
}

func (c *Client) render(doc *models.Document) error {
	page, err := os.ReadFile(c.cfg.TemplatePath)
	if err != nil {
		return fmt.Errorf("failed to read page template: %w", err)
	}
	out, err := c.renderer.RenderPage(page, doc)
	if err != nil {
		return err
	}
	return store.WriteFilesAtomic(map[string][]byte{c.cfg.OutputPath: out})
}

// Run renders once, falling back to built-in content when no document can be
// loaded, then refreshes on every tick until ctx is done. Refresh failures
// are logged and retried on the next tick.
func (c *Client) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var changes <-chan struct{}
	if c.cfg.Watch {
		ch, err := c.watch(ctx)
		if err != nil {
			c.logger.Warn("file watching disabled", zap.Error(err))
		} else {
			changes = ch
		}
	}

	if err := c.Refresh(ctx); err != nil {
		c.logger.Warn("site sync failed, using fallback data", zap.Error(err))
		if err := c.render(models.FallbackDocument()); err != nil {
			return fmt.Errorf("failed to render fallback page: %w", err)
		}
	} else {
		c.logger.Info("site sync loaded", zap.String("output", c.cfg.OutputPath))
	}

	ticker := time.NewTicker(c.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := c.Refresh(ctx); err != nil {
				c.logger.Debug("site sync refresh failed", zap.Error(err))
			}
		case <-changes:
			if err := c.Refresh(ctx); err != nil {
				c.logger.Debug("site sync refresh failed", zap.Error(err))
			} else {
				c.logger.Info("page re-rendered after file change")
			}
		}
	}
}

// watchedFiles lists the inputs whose changes trigger a render: the template
// and, when set, the cache file.
func (c *Client) watchedFiles() []string {
	files := []string{c.cfg.TemplatePath}
	if c.loader.CachePath != "" {
		files = append(files, c.loader.CachePath)
	}
	return files
}

// watch reports changes to the watched files until ctx is done. Parent
// directories are watched so files replaced by rename are still seen.
func (c *Client) watch(ctx context.Context) (<-chan struct{}, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	targets := make(map[string]bool)
	dirs := make(map[string]bool)
	for _, f := range c.watchedFiles() {
		abs, err := filepath.Abs(f)
		if err != nil {
			watcher.Close()
			return nil, err
		}
		targets[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			watcher.Close()
			return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}

	// Buffered by one: a pending signal already covers later events.
	changes := make(chan struct{}, 1)
	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !targets[filepath.Clean(event.Name)] {
					continue
				}
				if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
					c.logger.Debug("change detected", zap.String("file", event.Name), zap.String("op", event.Op.String()))
					select {
					case changes <- struct{}{}:
					default:
					}
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				c.logger.Warn("file watcher error", zap.Error(err))
			}
		}
	}()
	return changes, nil
}
