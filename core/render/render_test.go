package render_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Fichusgg/casa-score-br/core"
	"github.com/Fichusgg/casa-score-br/core/platform"
	"github.com/Fichusgg/casa-score-br/core/render"
)

func sampleListing() core.Listing {
	bedrooms := 2
	return core.Listing{
		Title:    "Apartamento 2 Quartos",
		Price:    850000,
		AreaM2:   75,
		Bedrooms: &bedrooms,
		Address:  core.Address{Bairro: "Pinheiros", Cidade: "São Paulo", Estado: "SP"},
	}
}

func TestResponse_Success(t *testing.T) {
	t.Parallel()

	status, body := render.Response(core.Success(platform.OLX, sampleListing()))
	assert.Equal(t, http.StatusOK, status)

	data, err := json.Marshal(body)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"title": "Apartamento 2 Quartos",
		"price": 850000,
		"area_m2": 75,
		"bedrooms": 2,
		"address": {"bairro": "Pinheiros", "cidade": "São Paulo", "estado": "SP"}
	}`, string(data))
}

func TestResponse_SuccessOmitsUnknownBedrooms(t *testing.T) {
	t.Parallel()

	l := sampleListing()
	l.Bedrooms = nil

	data, err := render.NewJSONRenderer().Render(core.Success(platform.OLX, l))
	require.NoError(t, err)
	assert.NotContains(t, string(data), "bedrooms")
}

func TestResponse_Blocked(t *testing.T) {
	t.Parallel()

	status, body := render.Response(core.Blocked(platform.VivaReal, http.StatusForbidden))
	assert.Equal(t, http.StatusForbidden, status)

	data, err := json.Marshal(body)
	require.NoError(t, err)

	var got map[string]string
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "SCRAPING_BLOCKED", got["error"])
	assert.Equal(t, "vivareal", got["platform"])
	assert.Contains(t, got["message"], "VivaReal")
	assert.Contains(t, got["message"], "manually")
}

func TestResponse_Failure(t *testing.T) {
	t.Parallel()

	status, body := render.Response(core.Failure("", core.UnsupportedPlatform, "unsupported platform"))
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, render.ErrorBody{Error: "unsupported platform"}, body)
}

func TestMarkdownRenderer(t *testing.T) {
	t.Parallel()

	r := render.NewMarkdownRenderer()
	assert.Equal(t, ".md", r.Extension())

	data, err := r.Render(core.Success(platform.QuintoAndar, sampleListing()))
	require.NoError(t, err)
	md := string(data)
	assert.Contains(t, md, "# Apartamento 2 Quartos")
	assert.Contains(t, md, "R$ 850.000")
	assert.Contains(t, md, "75 m²")
	assert.Contains(t, md, "R$ 11.333")
	assert.Contains(t, md, "Pinheiros, São Paulo - SP")

	blocked, err := r.Render(core.Blocked(platform.OLX, http.StatusForbidden))
	require.NoError(t, err)
	assert.Contains(t, string(blocked), "# Listing blocked")
	assert.Contains(t, string(blocked), "403")
}

func TestPDFRenderer(t *testing.T) {
	t.Parallel()

	r := render.NewPDFRenderer()
	assert.Equal(t, ".pdf", r.Extension())

	for _, o := range []core.Outcome{
		core.Success(platform.VivaReal, sampleListing()),
		core.Blocked(platform.Loft, http.StatusTooManyRequests),
		core.Failure(platform.OLX, core.NetworkError, "timeout"),
	} {
		data, err := r.Render(o)
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
	}
}
