package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/Fichusgg/casa-score-br/core"
	"github.com/Fichusgg/casa-score-br/core/extract"
	"github.com/Fichusgg/casa-score-br/core/fetch"
	"github.com/Fichusgg/casa-score-br/core/normalize"
	"github.com/Fichusgg/casa-score-br/core/parse"
	"github.com/Fichusgg/casa-score-br/core/platform"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <url>",
	Short: "Show a listing page as Markdown next to what the extractor reads from it",
	Long: `Inspect fetches one listing page, prints its main content as Markdown and
then the extracted listing. Use it when a marketplace changes its markup.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var opts []extract.Option
		if cfg.Extract.DefaultEstado != "" {
			opts = append(opts, extract.WithDefaultEstado(cfg.Extract.DefaultEstado))
		}
		return inspect(cmd.Context(), os.Stdout, args[0], fetch.New(cfg.Fetch), normalize.New(), opts...)
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

// inspect writes the page's Markdown followed by the extracted listing as JSON.
func inspect(
	ctx context.Context,
	w io.Writer,
	rawURL string,
	fetcher core.Fetcher,
	normalizer core.Normalizer,
	opts ...extract.Option,
) error {
	id, err := platform.Classify(rawURL)
	if err != nil {
		return fmt.Errorf("%w: supported platforms are %s", err, platform.SupportedNames())
	}

	res, err := fetcher.Fetch(ctx, rawURL)
	if err != nil {
		var statusErr *fetch.StatusError
		if errors.As(err, &statusErr) {
			return fmt.Errorf("%s answered %d; the page cannot be inspected", id.Name(), statusErr.StatusCode)
		}
		return err
	}

	md, err := normalizer.Normalize(res.HTML)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "<!-- %s · %s · HTTP %d -->\n\n%s\n\n", id.Name(), res.URL, res.StatusCode, md)

	doc, err := parse.Parse(res.HTML)
	if err != nil {
		return err
	}
	e, ok := extract.For(id, opts...)
	if !ok {
		return fmt.Errorf("no extractor for %s", id.Name())
	}

	data, err := json.MarshalIndent(e.Extract(doc), "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling listing: %w", err)
	}
	fmt.Fprintf(w, "---\n%s\n", data)
	return nil
}
