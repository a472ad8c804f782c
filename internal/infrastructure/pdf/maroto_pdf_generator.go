// Package pdf genera el listado de precios del catálogo en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título                     │  Fecha de generación  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Producto | Categoría | Moneda | Precio              │
//	│  (una banda por producto)                                   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: total de productos y precios                       │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/catalog-api/internal/application/catalog"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorBand    = &props.Color{Red: 235, Green: 241, Blue: 247}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ catalog.PriceListPDFGenerator = (*MarotoPDFGenerator)(nil)

// MarotoPDFGenerator implementa catalog.PriceListPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GeneratePriceListPDF genera el PDF y devuelve sus bytes. lines llega ordenado por producto.
func (g *MarotoPDFGenerator) GeneratePriceListPDF(
	ctx context.Context,
	title string,
	generatedAt time.Time,
	lines []catalog.PriceListLine,
) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(title, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(title, generatedAt))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableRows(lines)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(footerRow(lines))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(title string, generatedAt time.Time) core.Row {
	return row.New(14).Add(
		col.New(8).Add(
			text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 2,
			}),
		),
		col.New(4).Add(
			text.New("Generado: "+generatedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 5, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Producto", 4, align.Left),
		h("Categoría", 4, align.Left),
		h("Moneda", 2, align.Center),
		h("Precio", 2, align.Right),
	)
}

// tableRows: una fila por precio; el nombre del producto solo aparece en la
// primera fila de su grupo y los grupos alternan color de fondo.
func tableRows(lines []catalog.PriceListLine) []core.Row {
	result := make([]core.Row, 0, len(lines))
	group := -1
	for i, l := range lines {
		first := i == 0 || lines[i-1].Product != l.Product
		if first {
			group++
		}
		product, category := "", ""
		if first {
			product, category = l.Product, l.Category
		}

		r := row.New(6).Add(
			col.New(4).Add(text.New(product, props.Text{Size: 8, Style: fontstyle.Bold, Top: 1, Left: 1})),
			col.New(4).Add(text.New(category, props.Text{Size: 8, Top: 1, Left: 1, Color: colorGray})),
			col.New(2).Add(text.New(l.Currency, props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(formatAmount(l.Amount), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		)
		if group%2 == 0 {
			r.WithStyle(&props.Cell{BackgroundColor: colorBand})
		}
		result = append(result, r)
	}
	if len(result) == 0 {
		result = append(result, row.New(8).Add(col.New(12).Add(
			text.New("No hay precios registrados.", props.Text{Size: 8, Align: align.Center, Top: 2, Color: colorGray}),
		)))
	}
	return result
}

func footerRow(lines []catalog.PriceListLine) core.Row {
	products := make(map[string]struct{}, len(lines))
	for _, l := range lines {
		products[l.Product] = struct{}{}
	}
	return row.New(8).Add(col.New(12).Add(
		text.New(fmt.Sprintf("%d productos · %d precios", len(products), len(lines)), props.Text{
			Size: 7, Align: align.Right, Top: 2, Color: colorGray,
		}),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

// formatAmount inserta puntos de miles. Ej: 25000 → "25.000", -1500 → "-1.500".
func formatAmount(n int64) string {
	s := strconv.FormatInt(n, 10)
	sign := ""
	if n < 0 {
		sign, s = "-", s[1:]
	}
	size := len(s)
	if size <= 3 {
		return sign + s
	}
	buf := make([]byte, 0, size+size/3)
	for i, c := range []byte(s) {
		if i > 0 && (size-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return sign + string(buf)
}
