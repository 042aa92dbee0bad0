package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"shopify-insights/adapters"
	"shopify-insights/extractor"
	"shopify-insights/internal/config"
	"shopify-insights/utils"
)

var (
	cfgFile    string
	verbose    bool
	useBrowser bool
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "insights",
		Short:        "Fetch brand insights from Shopify storefronts",
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./insights.yaml)")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().BoolVar(&useBrowser, "browser", false, "Use headless browser for JavaScript-heavy pages")

	cmd.AddCommand(newFetchCmd(), newLinksCmd(), newCompetitorsCmd())
	return cmd
}

// setup loads configuration and builds the logger shared by every subcommand
func setup() (*config.Config, *logrus.Logger, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, nil, err
	}
	if useBrowser {
		cfg.Extractor.UseHeadlessBrowser = true
	}

	logger := config.NewLogger(cfg.Logging)
	if verbose {
		logger.SetLevel(logrus.DebugLevel)
	}
	return cfg, logger, nil
}

func newFetchCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "fetch <website_url>",
		Short: "Build the brand context of a storefront and print it as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup()
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Server.BuildTimeout)
			defer cancel()

			insights := extractor.NewInsightsExtractor(cfg.ExtractorSettings(), logger)
			defer insights.Close()

			brand, err := insights.BuildBrandContext(ctx, args[0])
			if err != nil {
				return err
			}

			jsonData, err := json.MarshalIndent(brand, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal results: %w", err)
			}

			if output == "" {
				fmt.Fprintln(cmd.OutOrStdout(), string(jsonData))
				return nil
			}
			if err := os.WriteFile(output, jsonData, 0644); err != nil {
				return fmt.Errorf("failed to write output file: %w", err)
			}
			logger.Infof("Results written to: %s", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file path (default: stdout)")
	return cmd
}

// linkCategories is the print order of the links subcommand
var linkCategories = []adapters.LinkCategory{
	adapters.LinkPolicy,
	adapters.LinkFAQ,
	adapters.LinkContact,
	adapters.LinkAbout,
	adapters.LinkTrack,
	adapters.LinkBlog,
	adapters.LinkSitemap,
}

func newLinksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "links <website_url>",
		Short: "Print how the homepage links are classified",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup()
			if err != nil {
				return err
			}

			origin, err := utils.Origin(utils.EnsureScheme(args[0]))
			if err != nil {
				return err
			}

			adapter := adapters.NewShopifyAdapter(cfg.ExtractorSettings(), logger)
			defer adapter.Close()

			ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
			defer cancel()

			html, err := adapter.GetPageContent(ctx, origin)
			if err != nil {
				return fmt.Errorf("failed to get homepage: %w", err)
			}

			doc, err := adapter.ParseHTML(html)
			if err != nil {
				return fmt.Errorf("failed to parse HTML: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Total links found: %d\n", doc.Find("a[href]").Length())

			buckets := adapters.ClassifyLinks(doc)
			for _, category := range linkCategories {
				hrefs := buckets.Get(category)
				fmt.Fprintf(out, "\n=== %s (%d) ===\n", category, len(hrefs))
				for i, href := range hrefs {
					fmt.Fprintf(out, "  %d: %s\n", i+1, utils.ResolveURL(origin, href))
				}
			}
			return nil
		},
	}
}

func newCompetitorsCmd() *cobra.Command {
	var maxResults int

	cmd := &cobra.Command{
		Use:   "competitors <website_url>",
		Short: "Search for storefronts similar to a website",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup()
			if err != nil {
				return err
			}

			finder := extractor.NewCompetitorFinder(cfg.ExtractorSettings(), logger)
			defer finder.Close()

			for _, origin := range finder.Find(cmd.Context(), args[0], maxResults) {
				fmt.Fprintln(cmd.OutOrStdout(), origin)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&maxResults, "max", 5, "Maximum number of competitors")
	return cmd
}
