// Package pipeline runs one listing URL through the ingestion stages:
// classify → fetch → parse → extract.
// Every failure is folded into a core.Outcome; nothing is retried and
// exactly one network call is made per supported URL.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Fichusgg/casa-score-br/core"
	"github.com/Fichusgg/casa-score-br/core/extract"
	"github.com/Fichusgg/casa-score-br/core/fetch"
	"github.com/Fichusgg/casa-score-br/core/parse"
	"github.com/Fichusgg/casa-score-br/core/platform"
	"github.com/Fichusgg/casa-score-br/internal/logger"
)

// ExtractorFunc resolves the extractor for a classified platform.
type ExtractorFunc func(id platform.ID) (core.Extractor, bool)

// Ingestor is safe for concurrent use; it holds no per-request state.
type Ingestor struct {
	fetcher    core.Fetcher
	extractors ExtractorFunc
	log        logger.Logger
}

// Option customizes an Ingestor.
type Option func(*Ingestor)

// WithLogger sets the logger. The default discards output.
func WithLogger(l logger.Logger) Option {
	return func(in *Ingestor) {
		if l != nil {
			in.log = l
		}
	}
}

// WithExtractorOptions passes options to every platform extractor.
func WithExtractorOptions(opts ...extract.Option) Option {
	return func(in *Ingestor) {
		in.extractors = platformExtractors(opts...)
	}
}

// WithExtractors replaces platform extractor lookup entirely.
func WithExtractors(f ExtractorFunc) Option {
	return func(in *Ingestor) {
		if f != nil {
			in.extractors = f
		}
	}
}

// New creates an Ingestor that fetches pages with fetcher.
func New(fetcher core.Fetcher, opts ...Option) *Ingestor {
	in := &Ingestor{
		fetcher:    fetcher,
		extractors: platformExtractors(),
		log:        logger.NewNop(),
	}
	for _, opt := range opts {
		opt(in)
	}
	return in
}

func platformExtractors(opts ...extract.Option) ExtractorFunc {
	return func(id platform.ID) (core.Extractor, bool) {
		e, ok := extract.For(id, opts...)
		if !ok {
			return nil, false
		}
		return e, true
	}
}

// Ingest converts a listing URL into an Outcome.
func (in *Ingestor) Ingest(ctx context.Context, rawURL string) core.Outcome {
	start := time.Now()
	log := in.log.With(logger.String("url", rawURL))

	id, err := platform.Classify(rawURL)
	if err != nil {
		log.Info("unsupported listing url")
		return core.Unsupported()
	}
	log = log.With(logger.String("platform", id.String()))

	extractor, ok := in.extractors(id)
	if !ok {
		return core.Failure(id, core.UnsupportedPlatform,
			fmt.Sprintf("no extractor registered for %s", id.Name()))
	}

	result, err := in.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		var statusErr *fetch.StatusError
		if errors.As(err, &statusErr) {
			log.Warn("listing fetch blocked",
				logger.Int("status_code", statusErr.StatusCode),
				logger.Duration("duration", time.Since(start)))
			return core.Blocked(id, statusErr.StatusCode)
		}
		log.Error("listing fetch failed", logger.Error(err), logger.Duration("duration", time.Since(start)))
		return core.Failure(id, core.NetworkError, fmt.Sprintf("could not reach %s: %v", id.Name(), err))
	}

	doc, err := parse.Parse(result.HTML)
	if err != nil {
		log.Error("listing parse failed", logger.Error(err))
		return core.Failure(id, core.ParseError, fmt.Sprintf("could not read the %s page: %v", id.Name(), err))
	}

	listing := extractor.Extract(doc)
	log.Info("listing ingested",
		logger.Int("price", listing.Price),
		logger.Int("area_m2", listing.AreaM2),
		logger.Bool("bedrooms_known", listing.Bedrooms != nil),
		logger.Duration("duration", time.Since(start)))

	return core.Success(id, listing)
}
