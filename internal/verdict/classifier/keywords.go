package classifier

// Keyword sets are matched as lower-case substrings, first match wins, in
// declaration order. Order matters because the matched term is named in the
// reason text.

var haramKeywords = []string{
	"alcohol", "ethanol", "ethyl alcohol", "wine", "beer", "whiskey", "rum", "vodka", "liquor",
	"pork", "bacon", "ham", "lard", "porcine", "pig",
	"blood", "plasma", "carnivorous", "predator",
	"gelatin", "gelatine",
	"l-cysteine", "e920",
}

var doubtfulKeywords = []string{
	"e120", "cochineal", "carmine",
	"e441", "e542", "e904", "e1105",
	"mono-diglycerides", "monoglycerides", "diglycerides",
	"glycerin", "glycerol", "glycerine",
	"emulsifier", "enzymes", "lipase", "pepsin", "rennet",
	"whey", "casein", "lactose",
	"flavoring", "natural flavors", "artificial flavors", "vanilla extract",
	"shortening", "margarine",
	"lecithin", "stearate", "stearic acid",
}

var makruhKeywords = []string{
	"preservative", "artificial color", "msg", "monosodium glutamate",
	"sodium benzoate", "potassium sorbate",
	"artificial sweetener", "aspartame", "saccharin",
	"bha", "bht", "tbhq",
}
