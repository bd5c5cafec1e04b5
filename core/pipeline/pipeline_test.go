package pipeline_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/text/encoding/charmap"

	"github.com/Fichusgg/casa-score-br/core"
	"github.com/Fichusgg/casa-score-br/core/extract"
	"github.com/Fichusgg/casa-score-br/core/fetch"
	"github.com/Fichusgg/casa-score-br/core/mocks"
	"github.com/Fichusgg/casa-score-br/core/pipeline"
	"github.com/Fichusgg/casa-score-br/core/platform"
)

const olxListingHTML = `<!DOCTYPE html>
<html>
<body>
  <h1>Apartamento 2 Quartos</h1>
  <p>75 m² · 2 quartos · Pinheiros, São Paulo</p>
</body>
</html>`

// serverFetcher adapts an HTTPFetcher so marketplace URLs hit srv.
type serverFetcher struct {
	srv *httptest.Server
}

func (f serverFetcher) Fetch(ctx context.Context, rawURL string) (*core.FetchResult, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, err
	}
	return fetch.New(fetch.Config{}).Fetch(ctx, f.srv.URL+u.Path)
}

func newServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestIngest_OLXSuccess(t *testing.T) {
	t.Parallel()

	srv := newServer(t, http.StatusOK, olxListingHTML)
	in := pipeline.New(serverFetcher{srv: srv})

	out := in.Ingest(context.Background(), "https://www.olx.com.br/imovel/123")

	require.True(t, out.OK(), out.Message())
	assert.Equal(t, platform.OLX, out.Platform)
	assert.Equal(t, "Apartamento 2 Quartos", out.Listing.Title)
	assert.Equal(t, 75, out.Listing.AreaM2)
	require.NotNil(t, out.Listing.Bedrooms)
	assert.Equal(t, 2, *out.Listing.Bedrooms)
	assert.Equal(t, core.Address{Bairro: "Pinheiros", Cidade: "São Paulo", Estado: "SP"}, out.Listing.Address)
	assert.NoError(t, out.Err())
}

func TestIngest_Latin1Page(t *testing.T) {
	t.Parallel()

	page, err := charmap.ISO8859_1.NewEncoder().String(
		`<html><body><h1>Casa térrea</h1><p>120 m² · 3 quartos · Boa Viagem, Recife</p><p>R$ 980.000</p></body></html>`)
	require.NoError(t, err)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=ISO-8859-1")
		_, _ = w.Write([]byte(page))
	}))
	t.Cleanup(srv.Close)

	out := pipeline.New(serverFetcher{srv: srv}).Ingest(context.Background(), "https://www.olx.com.br/imovel/7")

	require.True(t, out.OK(), out.Message())
	assert.Equal(t, "Casa térrea", out.Listing.Title)
	assert.Equal(t, 120, out.Listing.AreaM2)
	assert.Equal(t, 980000, out.Listing.Price)
	assert.Equal(t, "Recife", out.Listing.Address.Cidade)
}

func TestIngest_NonSuccessStatusIsBlocked(t *testing.T) {
	t.Parallel()

	for _, status := range []int{http.StatusForbidden, http.StatusTooManyRequests, http.StatusNotFound, http.StatusBadGateway} {
		srv := newServer(t, status, "<html>captcha</html>")
		out := pipeline.New(serverFetcher{srv: srv}).Ingest(context.Background(), "https://www.vivareal.com.br/imovel/456")

		assert.Equal(t, core.KindBlocked, out.Kind, status)
		assert.Equal(t, platform.VivaReal, out.Platform)
		assert.Equal(t, status, out.StatusCode)
		assert.Contains(t, out.Message(), "VivaReal")

		var ingestErr *core.IngestError
		require.ErrorAs(t, out.Err(), &ingestErr)
		assert.Equal(t, core.KindBlocked, ingestErr.Kind)
		assert.Equal(t, platform.VivaReal, ingestErr.Platform)
	}
}

func TestIngest_UnsupportedMakesNoNetworkCall(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	fetcher := mocks.NewMockFetcher(ctrl)
	fetcher.EXPECT().Fetch(gomock.Any(), gomock.Any()).Times(0)

	out := pipeline.New(fetcher).Ingest(context.Background(), "https://www.unknown-site.com/x")

	assert.Equal(t, core.KindFailure, out.Kind)
	assert.Equal(t, core.UnsupportedPlatform, out.Reason)
	assert.Contains(t, out.Detail, "OLX, QuintoAndar, VivaReal, Loft")
	assert.Empty(t, out.Platform)
}

func TestIngest_TransportErrorIsNetworkFailure(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	fetcher := mocks.NewMockFetcher(ctrl)
	fetcher.EXPECT().
		Fetch(gomock.Any(), "https://www.quintoandar.com.br/imovel/1").
		Return(nil, &fetch.TransportError{URL: "https://www.quintoandar.com.br/imovel/1", Err: errors.New("dial tcp: connection refused")}).
		Times(1)

	out := pipeline.New(fetcher).Ingest(context.Background(), "https://www.quintoandar.com.br/imovel/1")

	assert.Equal(t, core.KindFailure, out.Kind)
	assert.Equal(t, core.NetworkError, out.Reason)
	assert.Equal(t, platform.QuintoAndar, out.Platform)
	assert.Contains(t, out.Detail, "connection refused")
}

func TestIngest_EmptyBodyIsParseFailure(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	fetcher := mocks.NewMockFetcher(ctrl)
	fetcher.EXPECT().
		Fetch(gomock.Any(), gomock.Any()).
		Return(&core.FetchResult{URL: "https://loft.com.br/imovel/x", StatusCode: http.StatusOK, HTML: "  "}, nil)

	out := pipeline.New(fetcher).Ingest(context.Background(), "https://loft.com.br/imovel/x")

	assert.Equal(t, core.KindFailure, out.Kind)
	assert.Equal(t, core.ParseError, out.Reason)
	assert.Equal(t, platform.Loft, out.Platform)
}

func TestIngest_NoTitleUsesDefaultLabel(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	fetcher := mocks.NewMockFetcher(ctrl)
	fetcher.EXPECT().
		Fetch(gomock.Any(), gomock.Any()).
		Return(&core.FetchResult{StatusCode: http.StatusOK, HTML: "<html><body><p>sem dados</p></body></html>"}, nil)

	out := pipeline.New(fetcher).Ingest(context.Background(), "https://www.quintoandar.com.br/imovel/9")

	require.True(t, out.OK())
	assert.Equal(t, "Imóvel QuintoAndar", out.Listing.Title)
	assert.Equal(t, extract.DefaultAreaM2, out.Listing.AreaM2)
	assert.Nil(t, out.Listing.Bedrooms)
}

func TestIngest_ExtractorOptions(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	fetcher := mocks.NewMockFetcher(ctrl)
	fetcher.EXPECT().
		Fetch(gomock.Any(), gomock.Any()).
		Return(&core.FetchResult{StatusCode: http.StatusOK, HTML: olxListingHTML}, nil)

	in := pipeline.New(fetcher, pipeline.WithExtractorOptions(extract.WithDefaultEstado("PR")))
	out := in.Ingest(context.Background(), "https://www.olx.com.br/imovel/1")

	require.True(t, out.OK())
	assert.Equal(t, "PR", out.Listing.Address.Estado)
}

func TestIngest_CustomExtractor(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	fetcher := mocks.NewMockFetcher(ctrl)
	fetcher.EXPECT().
		Fetch(gomock.Any(), gomock.Any()).
		Return(&core.FetchResult{StatusCode: http.StatusOK, HTML: olxListingHTML}, nil)

	extractor := mocks.NewMockExtractor(ctrl)
	extractor.EXPECT().Extract(gomock.Not(gomock.Nil())).Return(core.Listing{Title: "fixed", AreaM2: 40})

	in := pipeline.New(fetcher, pipeline.WithExtractors(func(id platform.ID) (core.Extractor, bool) {
		return extractor, id == platform.OLX
	}))

	out := in.Ingest(context.Background(), "https://www.olx.com.br/imovel/1")
	require.True(t, out.OK())
	assert.Equal(t, "fixed", out.Listing.Title)

	// Recognised platform without an extractor never fetches.
	out = in.Ingest(context.Background(), "https://loft.com.br/imovel/2")
	assert.Equal(t, core.UnsupportedPlatform, out.Reason)
	assert.Equal(t, platform.Loft, out.Platform)
}

func TestIngest_CancelledContext(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(func() {
		close(release)
		srv.Close()
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out := pipeline.New(serverFetcher{srv: srv}).Ingest(ctx, "https://www.olx.com.br/imovel/1")

	assert.Equal(t, core.KindFailure, out.Kind)
	assert.Equal(t, core.NetworkError, out.Reason)
}

func TestIngest_ConcurrentRequestsAreIndependent(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/blocked" {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		_, _ = w.Write([]byte(olxListingHTML))
	}))
	t.Cleanup(srv.Close)

	in := pipeline.New(serverFetcher{srv: srv})

	var wg sync.WaitGroup
	outcomes := make([]core.Outcome, 20)
	for i := range outcomes {
		wg.Add(1)
		go func() {
			defer wg.Done()
			path := "/imovel"
			if i%2 == 1 {
				path = "/blocked"
			}
			outcomes[i] = in.Ingest(context.Background(), "https://www.olx.com.br"+path)
		}()
	}
	wg.Wait()

	for i, out := range outcomes {
		if i%2 == 1 {
			assert.Equal(t, core.KindBlocked, out.Kind)
			continue
		}
		require.True(t, out.OK())
		assert.Equal(t, "Apartamento 2 Quartos", out.Listing.Title)
	}
}
