package platform_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Fichusgg/casa-score-br/core/platform"
)

func TestClassify_KnownPlatforms(t *testing.T) {
	t.Parallel()

	tests := []struct {
		url  string
		want platform.ID
	}{
		{"https://www.olx.com.br/imovel/123", platform.OLX},
		{"http://sp.olx.com.br/sao-paulo-e-regiao/imoveis/apto-1?utm=x", platform.OLX},
		{"olx.com.br", platform.OLX},
		{"https://www.quintoandar.com.br/imovel/893456123/comprar", platform.QuintoAndar},
		{"https://www.vivareal.com.br/imovel/456", platform.VivaReal},
		{"ftp://vivareal.com.br/a/b/c/d/e/f", platform.VivaReal},
		{"https://loft.com.br/imovel/apartamento-pinheiros/abc", platform.Loft},
	}

	for _, tt := range tests {
		got, err := platform.Classify(tt.url)
		require.NoError(t, err, tt.url)
		assert.Equal(t, tt.want, got, tt.url)
	}
}

func TestClassify_PriorityOrder(t *testing.T) {
	t.Parallel()

	// OLX is tested first, so a VivaReal URL mentioning OLX in its query is OLX.
	got, err := platform.Classify("https://www.vivareal.com.br/imovel/1?from=olx.com.br")
	require.NoError(t, err)
	assert.Equal(t, platform.OLX, got)
}

func TestClassify_Unsupported(t *testing.T) {
	t.Parallel()

	for _, url := range []string{
		"https://www.unknown-site.com/x",
		"",
		"https://www.zapimoveis.com.br/imovel/1",
		"https://WWW.OLX.COM.BR/imovel/123",
	} {
		_, err := platform.Classify(url)
		require.ErrorIs(t, err, platform.ErrUnsupported, url)
	}
}

func TestNames(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "VivaReal", platform.VivaReal.Name())
	assert.Equal(t, "Imóvel Loft", platform.Loft.DefaultTitle())
	assert.Equal(t, "imovelweb", platform.ID("imovelweb").Name())
	assert.Equal(t, "OLX, QuintoAndar, VivaReal, Loft", platform.SupportedNames())
	assert.Len(t, platform.All(), 4)
}
