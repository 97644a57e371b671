// Package sanitize cleans free text received from upstream providers.
package sanitize

import (
	"regexp"
	"strings"
)

var (
	// htmlTagRegex matches HTML tags
	htmlTagRegex = regexp.MustCompile(`<[^>]*>`)
	// allergenMarkRegex matches the underscore emphasis some product databases
	// wrap around allergens ("_milk_").
	allergenMarkRegex = regexp.MustCompile(`(^|[\s,;(])_+([^_]+?)_+`)

	entityReplacer = strings.NewReplacer(
		"&lt;", "<",
		"&gt;", ">",
		"&amp;", "&",
		"&quot;", "\"",
		"&#39;", "'",
		"&nbsp;", " ",
	)
)

// StripHTML removes all HTML tags from a string.
func StripHTML(s string) string {
	result := htmlTagRegex.ReplaceAllString(s, "")
	result = entityReplacer.Replace(result)
	// Re-strip after entity decode to catch encoded tags
	result = htmlTagRegex.ReplaceAllString(result, "")
	return strings.TrimSpace(result)
}

// Text strips markup and collapses runs of whitespace to a single space.
func Text(s string) string {
	return strings.Join(strings.Fields(StripHTML(s)), " ")
}

// IngredientText prepares a raw ingredient statement for list splitting:
// markup and allergen emphasis are removed, whitespace is collapsed.
func IngredientText(s string) string {
	return Text(allergenMarkRegex.ReplaceAllString(s, "$1$2"))
}
