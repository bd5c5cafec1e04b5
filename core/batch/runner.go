package batch

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/Fichusgg/casa-score-br/core"
	"github.com/Fichusgg/casa-score-br/core/platform"
)

// DefaultConcurrency is used when Run is given a non-positive limit.
const DefaultConcurrency = 4

// Ingestor is the single-URL pipeline Run fans out over.
type Ingestor interface {
	Ingest(ctx context.Context, rawURL string) core.Outcome
}

// Result pairs an input URL with its outcome.
type Result struct {
	URL     string
	Outcome core.Outcome
}

// Run ingests every URL with at most concurrency requests in flight and
// returns the results in input order. A failed URL never stops the others.
// URLs not yet started when ctx is done finish as network failures, or as
// unsupported when no platform matches.
func Run(ctx context.Context, urls []string, in Ingestor, concurrency int) []Result {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	results := make([]Result, len(urls))

	var g errgroup.Group
	g.SetLimit(concurrency)

	for i, u := range urls {
		g.Go(func() error {
			results[i] = Result{URL: u, Outcome: ingestOne(ctx, in, u)}
			return nil
		})
	}
	_ = g.Wait()

	return results
}

func ingestOne(ctx context.Context, in Ingestor, u string) core.Outcome {
	if err := ctx.Err(); err != nil {
		id, classifyErr := platform.Classify(u)
		if classifyErr != nil {
			return core.Unsupported()
		}
		return core.Failure(id, core.NetworkError, err.Error())
	}
	return in.Ingest(ctx, u)
}

// Summary counts outcomes by kind.
type Summary struct {
	Succeeded int
	Blocked   int
	Failed    int
}

// Summarize tallies results.
func Summarize(results []Result) Summary {
	var s Summary
	for _, r := range results {
		switch r.Outcome.Kind {
		case core.KindSuccess:
			s.Succeeded++
		case core.KindBlocked:
			s.Blocked++
		default:
			s.Failed++
		}
	}
	return s
}
