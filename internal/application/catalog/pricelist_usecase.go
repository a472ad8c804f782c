package catalog

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"time"
)

// PriceListUseCase genera el listado de precios en PDF.
type PriceListUseCase struct {
	repos     Repos
	generator PriceListPDFGenerator
	title     string
	now       func() time.Time
}

// NewPriceListUseCase construye el caso de uso. title aparece en la cabecera del documento.
func NewPriceListUseCase(repos Repos, generator PriceListPDFGenerator, title string) *PriceListUseCase {
	return &PriceListUseCase{repos: repos, generator: generator, title: title, now: time.Now}
}

// Lines devuelve todos los precios ordenados por producto y moneda.
func (uc *PriceListUseCase) Lines(ctx context.Context) ([]PriceListLine, error) {
	prices, err := uc.repos.Prices.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("listado: obtener precios: %w", err)
	}

	lines := make([]PriceListLine, 0, len(prices))
	for _, p := range prices {
		l := PriceListLine{Product: p.ProductName(), Currency: p.Currency, Amount: p.Amount}
		if p.Product != nil && p.Product.Category != nil {
			l.Category = p.Product.Category.Name
		}
		lines = append(lines, l)
	}
	slices.SortStableFunc(lines, func(a, b PriceListLine) int {
		return cmp.Or(cmp.Compare(a.Product, b.Product), cmp.Compare(a.Currency, b.Currency))
	})
	return lines, nil
}

// DownloadPDF genera el PDF y un nombre de archivo con la fecha de generación.
func (uc *PriceListUseCase) DownloadPDF(ctx context.Context) (pdfBytes []byte, filename string, err error) {
	lines, err := uc.Lines(ctx)
	if err != nil {
		return nil, "", err
	}

	at := uc.now()
	pdfBytes, err = uc.generator.GeneratePriceListPDF(ctx, uc.title, at, lines)
	if err != nil {
		return nil, "", fmt.Errorf("listado: generación fallida: %w", err)
	}
	return pdfBytes, fmt.Sprintf("precios_%s.pdf", at.Format("20060102")), nil
}
