// Package query clasifica los valores de búsqueda ("get by value") de las
// tres entidades del catálogo. El orden de evaluación define la prioridad:
// la primera regla que coincide gana.
package query

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/jhoicas/catalog-api/internal/domain"
	"github.com/jhoicas/catalog-api/internal/domain/entity"
)

// Kind tipo de búsqueda resuelto a partir del token.
type Kind int

const (
	KindName Kind = iota
	KindID
	KindCategoryID
	KindPriceRange
	KindCurrency
)

const (
	categoryIDPrefix = "category_id-"
	priceRangePrefix = "price_range-"
	currencyPrefix   = "currency-"
)

var unsignedInt = regexp.MustCompile(`^[+]?\d+$`)

// Token resultado de clasificar un valor crudo.
type Token struct {
	Kind       Kind
	Raw        string
	ID         int64  // KindID
	CategoryID int64  // KindCategoryID
	Min, Max   int64  // KindPriceRange, ambos exclusivos
	Currency   string // KindCurrency
}

// ParseCategory: entero -> ID; cualquier otra cosa -> nombre exacto.
func ParseCategory(raw string) (Token, error) {
	if unsignedInt.MatchString(raw) {
		return idToken(raw)
	}
	return Token{Kind: KindName, Raw: raw}, nil
}

// ParseProduct: entero -> ID; "category_id-N" -> productos de la categoría N; si no, nombre exacto.
func ParseProduct(raw string) (Token, error) {
	if unsignedInt.MatchString(raw) {
		return idToken(raw)
	}
	if strings.HasPrefix(raw, categoryIDPrefix) {
		id, err := parseInt(segment(raw, 1), raw)
		if err != nil {
			return Token{}, err
		}
		return Token{Kind: KindCategoryID, Raw: raw, CategoryID: id}, nil
	}
	return Token{Kind: KindName, Raw: raw}, nil
}

// ParsePrice: "price_range-MIN-MAX", "currency-X", entero -> ID; si no, nombre de producto.
func ParsePrice(raw string) (Token, error) {
	switch {
	case strings.HasPrefix(raw, priceRangePrefix):
		lo, err := parseInt(segment(raw, 1), raw)
		if err != nil {
			return Token{}, err
		}
		hi, err := parseInt(segment(raw, 2), raw)
		if err != nil {
			return Token{}, err
		}
		return Token{Kind: KindPriceRange, Raw: raw, Min: lo, Max: hi}, nil
	case strings.HasPrefix(raw, currencyPrefix):
		return Token{Kind: KindCurrency, Raw: raw, Currency: segment(raw, 1)}, nil
	case unsignedInt.MatchString(raw):
		return idToken(raw)
	}
	return Token{Kind: KindName, Raw: raw}, nil
}

// MatchCategory evalúa el token contra una categoría (búsquedas por escaneo).
func (t Token) MatchCategory(c *entity.Category) bool {
	switch t.Kind {
	case KindID:
		return c.ID == t.ID
	case KindName:
		return c.Name == t.Raw
	}
	return false
}

// MatchProduct evalúa el token contra un producto.
func (t Token) MatchProduct(p *entity.Product) bool {
	switch t.Kind {
	case KindID:
		return p.ID == t.ID
	case KindCategoryID:
		return p.Category != nil && p.Category.ID == t.CategoryID
	case KindName:
		return p.Name == t.Raw
	}
	return false
}

// MatchPrice evalúa el token contra un precio. El rango excluye ambos extremos.
func (t Token) MatchPrice(p *entity.Price) bool {
	switch t.Kind {
	case KindID:
		return p.ID == t.ID
	case KindPriceRange:
		return p.Amount > t.Min && p.Amount < t.Max
	case KindCurrency:
		return p.Currency == t.Currency
	case KindName:
		return p.ProductName() == t.Raw
	}
	return false
}

func idToken(raw string) (Token, error) {
	id, err := parseInt(strings.TrimPrefix(raw, "+"), raw)
	if err != nil {
		return Token{}, err
	}
	return Token{Kind: KindID, Raw: raw, ID: id}, nil
}

// segment devuelve la parte i del token separado por "-", o "" si no existe.
func segment(raw string, i int) string {
	parts := strings.Split(raw, "-")
	if i >= len(parts) {
		return ""
	}
	return parts[i]
}

func parseInt(s, raw string) (int64, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: valor %q: %v", domain.ErrInvalidInput, raw, err)
	}
	return n, nil
}
