package sanitize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripHTML(t *testing.T) {
	assert.Equal(t, "milk & sugar", StripHTML(`<span class="allergen">milk</span> &amp; sugar`))
	assert.Equal(t, "x", StripHTML("&lt;b&gt;x&lt;/b&gt;"))
}

func TestText_CollapsesWhitespace(t *testing.T) {
	assert.Equal(t, "sugar, gelatin", Text("  sugar,\n\t gelatin "))
}

func TestIngredientText(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"sugar, _milk_ powder, salt", "sugar, milk powder, salt"},
		{"_Wheat_ flour (_gluten_)", "Wheat flour (gluten)"},
		{`<span class="allergen">soy</span> lecithin`, "soy lecithin"},
		{"mono_and_diglycerides", "mono_and_diglycerides"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IngredientText(tt.in), tt.in)
	}
}
