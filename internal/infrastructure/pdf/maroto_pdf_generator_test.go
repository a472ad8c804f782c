package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/catalog-api/internal/application/catalog"
)

func TestGeneratePriceListPDF(t *testing.T) {
	g := NewMarotoPDFGenerator()
	lines := []catalog.PriceListLine{
		{Product: "Jacket", Category: "Jackets", Currency: "BYN", Amount: 100},
		{Product: "Jacket", Category: "Jackets", Currency: "USD", Amount: 30},
		{Product: "Vest", Category: "Outwear", Currency: "BYN", Amount: 25000},
	}

	out, err := g.GeneratePriceListPDF(context.Background(), "Lista de precios", time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC), lines)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestGeneratePriceListPDF_SinPrecios(t *testing.T) {
	out, err := NewMarotoPDFGenerator().GeneratePriceListPDF(context.Background(), "Vacío", time.Now(), nil)
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

func TestFormatAmount(t *testing.T) {
	tests := map[int64]string{
		0:       "0",
		999:     "999",
		1000:    "1.000",
		25000:   "25.000",
		1000000: "1.000.000",
		-1500:   "-1.500",
		-100:    "-100",
	}
	for in, want := range tests {
		assert.Equal(t, want, formatAmount(in))
	}
}
