package main

import (
	"github.com/michaelvbend/ajax-scraper/internal/application/service"
	"github.com/michaelvbend/ajax-scraper/internal/infrastructures/browser/htmldoc"
	"github.com/michaelvbend/ajax-scraper/internal/transport/console"
	"github.com/spf13/cobra"
)

var previewHTML string

// previewCmd runs the extraction against a saved page instead of a live
// browser and prints what would be published.
var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Extract match cards from a saved HTML page and print the payload.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, log, cleanup, err := bootstrap()
		if err != nil {
			return err
		}
		defer cleanup()

		doc, err := htmldoc.Open(previewHTML)
		if err != nil {
			return err
		}
		defer doc.Close()

		waiter := service.NewWaiter(service.InteractiveWaitTimeout, cfg.Site.PollInterval)
		extractor := service.NewCardExtractor(log, waiter, cardSelectors(cfg), cfg.Site.BaseURL)

		records, skipped, err := extractor.Extract(cmd.Context(), doc)
		if err != nil {
			return err
		}
		payload, err := service.NewPayloadBuilder(cfg.Overrides).Build(records)
		if err != nil {
			return err
		}

		console.RenderMatches(cmd.OutOrStdout(), payload, skipped)
		return nil
	},
}

func init() {
	previewCmd.Flags().StringVar(&previewHTML, "html", "", "saved match list page")
	_ = previewCmd.MarkFlagRequired("html")
}
