package cmd

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"restaurant-cms/render"
	"restaurant-cms/sitesync"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var renderFlags struct {
	template        string
	output          string
	source          string
	cache           string
	selectors       string
	once            bool
	watch           bool
	showUnavailable bool
}

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Keep a static site page rendered from the published document",
	Long: `render loads the published restaurant document (a local cache file first,
then the JSON endpoint), writes it into the page template by CSS selector and
saves the result. It repeats every SYNC_INTERVAL until interrupted, or runs a
single pass with --once.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRender(cmd.Context())
	},
}

func init() {
	f := renderCmd.Flags()
	f.StringVar(&renderFlags.template, "template", "", "page template to render into (default $PAGE_TEMPLATE)")
	f.StringVar(&renderFlags.output, "output", "", "rendered page path (default $SYNC_OUTPUT_PATH)")
	f.StringVar(&renderFlags.source, "source", "", "URL of the published document JSON (default $SYNC_SOURCE_URL)")
	f.StringVar(&renderFlags.cache, "cache", "", "local document file to prefer over the URL (default $SYNC_CACHE_PATH)")
	f.StringVar(&renderFlags.selectors, "selectors", "", "YAML file overriding container selectors (default $SELECTORS_PATH)")
	f.BoolVar(&renderFlags.once, "once", false, "render a single time and exit")
	f.BoolVar(&renderFlags.watch, "watch", false, "also re-render when the template or cache file changes")
	f.BoolVar(&renderFlags.showUnavailable, "show-unavailable", false, "keep unavailable items in the menu with their status")
	rootCmd.AddCommand(renderCmd)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func runRender(parent context.Context) error {
	cfg, log := appConfig, appLogger

	templatePath := firstNonEmpty(renderFlags.template, cfg.PageTemplate)
	if templatePath == "" {
		return errors.New("a page template is required (--template or PAGE_TEMPLATE)")
	}
	source := firstNonEmpty(renderFlags.source, cfg.SyncSourceURL)
	cache := firstNonEmpty(renderFlags.cache, cfg.SyncCachePath)

	selectors, err := render.LoadSelectors(firstNonEmpty(renderFlags.selectors, cfg.SelectorsPath))
	if err != nil {
		return err
	}
	renderer := render.New(selectors, render.Options{
		ShowUnavailable: renderFlags.showUnavailable,
		AdminURL:        cfg.AdminURL,
	})

	client := sitesync.NewClient(
		sitesync.NewLoader(cache, source),
		renderer,
		sitesync.Config{
			TemplatePath: templatePath,
			OutputPath:   firstNonEmpty(renderFlags.output, cfg.SyncOutputPath),
			Interval:     cfg.SyncInterval,
			Watch:        renderFlags.watch,
		},
		log,
	)

	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if renderFlags.once {
		if err := client.Refresh(ctx); err != nil {
			return err
		}
		log.Info("page rendered", zap.String("template", templatePath))
		return nil
	}

	log.Info("site sync started",
		zap.String("template", templatePath),
		zap.String("source", source),
		zap.Duration("interval", cfg.SyncInterval),
		zap.Bool("watch", renderFlags.watch),
	)
	return client.Run(ctx)
}
