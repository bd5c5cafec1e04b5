// ingest command.
// Runs one listing URL (or a file of them) through the pipeline:
// classify → fetch → parse → extract → render → write.

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/Fichusgg/casa-score-br/core"
	"github.com/Fichusgg/casa-score-br/core/batch"
	"github.com/Fichusgg/casa-score-br/core/output"
	"github.com/Fichusgg/casa-score-br/core/render"
)

// errIngestFailed makes a batch run exit non-zero after results were printed.
var errIngestFailed = errors.New("one or more listings could not be ingested")

// Flag variables.
var (
	flagPDF         bool
	flagMarkdown    bool
	flagJSON        bool
	flagFile        string
	flagOutputDir   string
	flagConcurrency int
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [url]",
	Short: "Ingest a listing URL into a normalized property record",
	Long: `Ingest classifies the URL, fetches the page once, and extracts title, price,
area, bedrooms and address. Output is JSON on stdout unless a format or
--output_dir is given.

Examples:
  casascore ingest https://www.olx.com.br/imovel/123
  casascore ingest https://www.vivareal.com.br/imovel/456 --markdown
  casascore ingest --file urls.txt --pdf --output_dir ./out`,
	Args: func(cmd *cobra.Command, args []string) error {
		if flagFile == "" {
			return cobra.ExactArgs(1)(cmd, args)
		}
		return cobra.NoArgs(cmd, args)
	},
	RunE: runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)

	// Output format flags (mutually exclusive).
	ingestCmd.Flags().BoolVar(&flagPDF, "pdf", false, "Output a PDF listing sheet")
	ingestCmd.Flags().BoolVar(&flagMarkdown, "markdown", false, "Output a Markdown report")
	ingestCmd.Flags().BoolVar(&flagJSON, "json", false, "Output JSON (default)")

	ingestCmd.Flags().StringVar(&flagFile, "file", "", "File with one listing URL per line")
	ingestCmd.Flags().IntVar(&flagConcurrency, "concurrency", 0, "Parallel requests in --file mode (default from config)")
	ingestCmd.Flags().StringVar(&flagOutputDir, "output_dir", "", "Write files to this directory instead of stdout")
}

func runIngest(cmd *cobra.Command, args []string) error {
	if err := validateFlags(); err != nil {
		return err
	}

	renderer := selectRenderer()

	var writer *output.Writer
	if flagOutputDir != "" || flagFile != "" || flagPDF {
		w, err := output.New(flagOutputDir)
		if err != nil {
			return fmt.Errorf("initializing output writer: %w", err)
		}
		writer = w
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	if flagFile != "" {
		return runBatch(ctx, renderer, writer)
	}
	return runOne(ctx, args[0], renderer, writer)
}

// runOne processes a single URL through the pipeline.
func runOne(ctx context.Context, rawURL string, renderer core.Renderer, writer *output.Writer) error {
	out := newIngestor().Ingest(ctx, rawURL)

	if err := emit(rawURL, out, renderer, writer); err != nil {
		return err
	}
	return out.Err()
}

// runBatch ingests every URL in flagFile with bounded concurrency.
func runBatch(ctx context.Context, renderer core.Renderer, writer *output.Writer) error {
	f, err := os.Open(flagFile)
	if err != nil {
		return fmt.Errorf("opening %s: %w", flagFile, err)
	}
	urls, err := batch.ReadURLs(f)
	_ = f.Close()
	if err != nil {
		return err
	}

	concurrency := flagConcurrency
	if concurrency <= 0 {
		concurrency = cfg.Batch.Concurrency
	}

	fmt.Fprintf(os.Stdout, "Ingesting %d listings (concurrency %d)\n", len(urls), concurrency)
	results := batch.Run(ctx, urls, newIngestor(), concurrency)

	for i, r := range results {
		fmt.Fprintf(os.Stdout, "[%d/%d] %s\n", i+1, len(results), r.URL)
		if err := r.Outcome.Err(); err != nil {
			fmt.Fprintf(os.Stderr, "  ✗ %v\n", err)
		}
		if err := emit(r.URL, r.Outcome, renderer, writer); err != nil {
			fmt.Fprintf(os.Stderr, "  ✗ Write error: %v\n", err)
		}
	}

	s := batch.Summarize(results)
	fmt.Fprintf(os.Stdout, "\n%d ingested, %d blocked, %d failed\n", s.Succeeded, s.Blocked, s.Failed)
	if s.Blocked+s.Failed > 0 {
		return errIngestFailed
	}
	return nil
}

// emit renders the outcome and writes it to a file, or stdout without a writer.
func emit(rawURL string, out core.Outcome, renderer core.Renderer, writer *output.Writer) error {
	data, err := renderer.Render(out)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}

	if writer == nil {
		_, err := os.Stdout.Write(append(data, '\n'))
		return err
	}

	path, err := writer.Write(rawURL, data, renderer.Extension())
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "✓ Written: %s\n", path)
	return nil
}

// validateFlags checks that at most one output format is chosen.
func validateFlags() error {
	formatCount := 0
	for _, set := range []bool{flagPDF, flagMarkdown, flagJSON} {
		if set {
			formatCount++
		}
	}
	if formatCount > 1 {
		return fmt.Errorf("only one output format allowed per run (got %d)", formatCount)
	}
	return nil
}

// selectRenderer creates the Renderer for the chosen format.
func selectRenderer() core.Renderer {
	switch {
	case flagMarkdown:
		return render.NewMarkdownRenderer()
	case flagPDF:
		return render.NewPDFRenderer()
	default:
		return render.NewJSONRenderer()
	}
}
