package service

import (
	"sort"
	"strings"

	"halal_scanner_backend/internal/aggregator/transport"
	"halal_scanner_backend/platform/sanitize"
)

// selectCanonical walks the primary outcomes in priority order and returns
// the first successful one that normalizes to a record with a name. Other
// providers contribute nothing to the result.
func selectCanonical(kind transport.KeyKind, key string, primary []transport.Outcome) *transport.Product {
	for _, o := range primary {
		if !o.Success {
			continue
		}
		product := normalize(o.Payload)
		if product == nil || product.Name == "" {
			continue
		}
		if kind == transport.KeyBarcode {
			product.Barcode = key
		}
		return product
	}
	return nil
}

// normalize maps one primary payload variant into the canonical shape.
func normalize(payload any) *transport.Product {
	switch p := payload.(type) {
	case transport.OFFProduct:
		return fromOpenFoodFacts(p)
	case transport.FoodRepoProduct:
		return fromFoodRepo(p)
	case transport.OpenProductDataProduct:
		return fromOpenProductData(p)
	case transport.OFFProductList:
		for _, hit := range p.Products {
			if product := fromOpenFoodFacts(hit); product.Name != "" {
				return product
			}
		}
	case transport.UPCItemResult:
		for _, item := range p.Items {
			if product := fromUPCItem(item); product.Name != "" {
				return product
			}
		}
	}
	return nil
}

func fromOpenFoodFacts(p transport.OFFProduct) *transport.Product {
	name := sanitize.Text(p.ProductName)
	if name == "" {
		name = sanitize.Text(p.GenericName)
	}

	origin := firstEntry(p.ManufacturingPlaces)
	if origin == "" {
		origin = firstEntry(p.Countries)
	}

	return &transport.Product{
		Name:          name,
		Barcode:       strings.TrimSpace(p.Code),
		Brand:         firstEntry(p.Brands),
		Ingredients:   transport.SplitList(sanitize.IngredientText(p.IngredientsText)),
		Categories:    transport.SplitList(p.Categories),
		ImageURL:      p.ImageURL,
		OriginCountry: stripTaxonomyPrefix(origin),
		Nutrients:     p.Nutriments,
	}
}

func fromFoodRepo(p transport.FoodRepoProduct) *transport.Product {
	product := &transport.Product{
		Name:        sanitize.Text(pickTranslation(p.NameTranslations)),
		Barcode:     strings.TrimSpace(p.Barcode),
		Ingredients: transport.SplitList(sanitize.IngredientText(pickTranslation(p.IngredientsTranslations))),
		Categories:  []string{},
		Nutrients:   p.Nutrients,
	}
	for _, img := range p.Images {
		if img.Medium != "" {
			product.ImageURL = img.Medium
			break
		}
		if img.Large != "" {
			product.ImageURL = img.Large
			break
		}
	}
	return product
}

func fromOpenProductData(p transport.OpenProductDataProduct) *transport.Product {
	ingredients := []string(p.Ingredients)
	if ingredients == nil {
		ingredients = []string{}
	}
	categories := []string(p.Categories)
	if categories == nil {
		categories = []string{}
	}
	return &transport.Product{
		Name:          strings.TrimSpace(p.Name),
		Barcode:       strings.TrimSpace(p.Barcode),
		Brand:         strings.TrimSpace(p.Brand),
		Ingredients:   ingredients,
		Categories:    categories,
		ImageURL:      p.Image,
		OriginCountry: strings.TrimSpace(p.Country),
	}
}

func fromUPCItem(item transport.UPCItem) *transport.Product {
	product := &transport.Product{
		Name:        sanitize.Text(item.Title),
		Barcode:     strings.TrimSpace(item.EAN),
		Brand:       strings.TrimSpace(item.Brand),
		Ingredients: []string{},
		Categories:  splitCategoryPath(item.Category),
	}
	if len(item.Images) > 0 {
		product.ImageURL = item.Images[0]
	}
	return product
}

// pickTranslation prefers English, then the alphabetically first language
// with a non-empty value.
func pickTranslation(translations map[string]string) string {
	if v := strings.TrimSpace(translations["en"]); v != "" {
		return v
	}
	langs := make([]string, 0, len(translations))
	for lang := range translations {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	for _, lang := range langs {
		if v := strings.TrimSpace(translations[lang]); v != "" {
			return v
		}
	}
	return ""
}

func firstEntry(list string) string {
	if parts := transport.SplitList(list); len(parts) > 0 {
		return parts[0]
	}
	return ""
}

// stripTaxonomyPrefix removes an Open Food Facts language prefix ("en:france").
func stripTaxonomyPrefix(value string) string {
	if len(value) > 3 && value[2] == ':' && isLower(value[0]) && isLower(value[1]) {
		return strings.TrimSpace(value[3:])
	}
	return value
}

func isLower(b byte) bool { return b >= 'a' && b <= 'z' }

// splitCategoryPath splits a "Food > Snacks > Chips" style breadcrumb.
func splitCategoryPath(path string) []string {
	parts := strings.Split(path, ">")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
