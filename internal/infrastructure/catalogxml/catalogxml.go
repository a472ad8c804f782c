// Package catalogxml lee y escribe catálogos completos en XML:
//
//	<catalogo>
//	  <categoria nombre="Laptops" padre="Electrónica"/>
//	  <producto nombre="ThinkPad" categoria="Laptops">
//	    <precio moneda="USD" monto="1500"/>
//	  </producto>
//	</catalogo>
//
// Acepta documentos en UTF-8 o ISO-8859-1 y siempre escribe UTF-8.
package catalogxml

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"github.com/ucarion/c14n"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/catalog-api/internal/application/catalog"
	"github.com/jhoicas/catalog-api/internal/application/dto"
)

const (
	tagRoot     = "catalogo"
	tagCategory = "categoria"
	tagProduct  = "producto"
	tagPrice    = "precio"

	attrName     = "nombre"
	attrParent   = "padre"
	attrCategory = "categoria"
	attrCurrency = "moneda"
	attrAmount   = "monto"
)

// Decode lee un catálogo XML.
func Decode(r io.Reader) (catalog.SeedData, error) {
	var data catalog.SeedData

	doc := etree.NewDocument()
	doc.ReadSettings.CharsetReader = charsetReader
	if _, err := doc.ReadFrom(r); err != nil {
		return data, fmt.Errorf("catalogxml: parsear: %w", err)
	}
	root := doc.Root()
	if root == nil || root.Tag != tagRoot {
		return data, fmt.Errorf("catalogxml: se esperaba <%s> como raíz", tagRoot)
	}

	for _, el := range root.SelectElements(tagCategory) {
		name, err := requiredAttr(el, attrName)
		if err != nil {
			return data, err
		}
		in := dto.CategoryRequest{Name: name}
		if parent := strings.TrimSpace(el.SelectAttrValue(attrParent, "")); parent != "" {
			in.Parent = &dto.CategoryRef{Name: parent}
		}
		data.Categories = append(data.Categories, in)
	}

	for _, el := range root.SelectElements(tagProduct) {
		name, err := requiredAttr(el, attrName)
		if err != nil {
			return data, err
		}
		category, err := requiredAttr(el, attrCategory)
		if err != nil {
			return data, err
		}
		data.Products = append(data.Products, dto.CreateProductRequest{
			Name:     name,
			Category: &dto.CategoryRef{Name: category},
		})

		for _, p := range el.SelectElements(tagPrice) {
			currency, err := requiredAttr(p, attrCurrency)
			if err != nil {
				return data, err
			}
			raw, err := requiredAttr(p, attrAmount)
			if err != nil {
				return data, err
			}
			amount, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				return data, fmt.Errorf("catalogxml: monto %q de %q: %w", raw, name, err)
			}
			data.Prices = append(data.Prices, dto.CreatePriceRequest{
				Product:  &dto.ProductRef{Name: name},
				Amount:   amount,
				Currency: currency,
			})
		}
	}
	return data, nil
}

// Encode escribe data como catálogo XML indentado. Los precios se anidan bajo
// el primer producto con su nombre; los que no tienen producto en data se omiten.
func Encode(w io.Writer, data catalog.SeedData) error {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	root := doc.CreateElement(tagRoot)

	for _, c := range data.Categories {
		el := root.CreateElement(tagCategory)
		el.CreateAttr(attrName, c.Name)
		if c.Parent != nil {
			el.CreateAttr(attrParent, c.Parent.Name)
		}
	}

	byProduct := make(map[string]*etree.Element, len(data.Products))
	for _, p := range data.Products {
		if _, ok := byProduct[p.Name]; ok {
			continue
		}
		el := root.CreateElement(tagProduct)
		el.CreateAttr(attrName, p.Name)
		if p.Category != nil {
			el.CreateAttr(attrCategory, p.Category.Name)
		}
		byProduct[p.Name] = el
	}

	for _, p := range data.Prices {
		if p.Product == nil {
			continue
		}
		parent, ok := byProduct[p.Product.Name]
		if !ok {
			continue
		}
		el := parent.CreateElement(tagPrice)
		el.CreateAttr(attrCurrency, p.Currency)
		el.CreateAttr(attrAmount, strconv.FormatInt(p.Amount, 10))
	}

	doc.Indent(2)
	if _, err := doc.WriteTo(w); err != nil {
		return fmt.Errorf("catalogxml: escribir: %w", err)
	}
	return nil
}

// Canonical devuelve la forma canónica (C14N) del documento y su digest
// SHA-256 en hex. Dos exportaciones del mismo catálogo producen el mismo digest.
func Canonical(xmlBytes []byte) ([]byte, string, error) {
	dec := xml.NewDecoder(bytes.NewReader(xmlBytes))
	dec.Entity = map[string]string{}
	dec.CharsetReader = charsetReader
	out, err := c14n.Canonicalize(dec)
	if err != nil {
		return nil, "", fmt.Errorf("catalogxml: canonicalizar: %w", err)
	}
	sum := sha256.Sum256(out)
	return out, hex.EncodeToString(sum[:]), nil
}

func charsetReader(charset string, input io.Reader) (io.Reader, error) {
	switch strings.ToUpper(charset) {
	case "ISO-8859-1", "ISO8859-1", "LATIN1":
		return transform.NewReader(input, charmap.ISO8859_1.NewDecoder()), nil
	case "UTF-8", "":
		return input, nil
	}
	return nil, fmt.Errorf("catalogxml: charset no soportado %q", charset)
}

func requiredAttr(el *etree.Element, key string) (string, error) {
	v := strings.TrimSpace(el.SelectAttrValue(key, ""))
	if v == "" {
		return "", fmt.Errorf("catalogxml: <%s> sin atributo %q", el.Tag, key)
	}
	return v, nil
}
