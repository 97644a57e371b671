package classifier

import (
	"testing"

	"halal_scanner_backend/internal/verdict/transport"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify_NoIngredients(t *testing.T) {
	for name, input := range map[string][]string{"nil": nil, "empty": {}} {
		t.Run(name, func(t *testing.T) {
			v := Classify(input)
			assert.Equal(t, transport.StatusDoubtful, v.Status)
			assert.Equal(t, 40, v.Confidence)
			assert.Equal(t, []string{"No ingredient information available"}, v.Reasons)
			assert.NotNil(t, v.IngredientAnalyses)
			assert.Empty(t, v.IngredientAnalyses)
		})
	}
}

func TestClassify_HaramWinsRegardlessOfPosition(t *testing.T) {
	cases := [][]string{
		{"pork gelatin"},
		{"water", "pork gelatin"},
		{"pork gelatin", "water"},
		{"BHA", "whey", "lard"},
		{"whey", "BHA", "e920"},
	}
	for _, ingredients := range cases {
		v := Classify(ingredients)
		assert.Equal(t, transport.StatusHaram, v.Status, "ingredients %v", ingredients)
		assert.Equal(t, 99, v.Confidence, "ingredients %v", ingredients)
	}
}

func TestClassify_HaramReasonNamesFirstMatchingTerm(t *testing.T) {
	v := Classify([]string{"pork gelatin"})

	require.Len(t, v.IngredientAnalyses, 1)
	assert.Equal(t, "Contains pork (prohibited in Islam)", v.IngredientAnalyses[0].Reason)
	assert.Equal(t, []string{"Contains pork (prohibited in Islam)"}, v.Reasons)
}

// An earlier makruh finding blocks a later doubtful escalation.
func TestClassify_PositionalEscalation(t *testing.T) {
	doubtfulFirst := Classify([]string{"whey", "BHA"})
	assert.Equal(t, transport.StatusDoubtful, doubtfulFirst.Status)
	assert.Equal(t, 50, doubtfulFirst.Confidence)

	makruhFirst := Classify([]string{"BHA", "whey"})
	assert.Equal(t, transport.StatusMakruh, makruhFirst.Status)
	assert.Equal(t, 70, makruhFirst.Confidence)

	require.Len(t, makruhFirst.IngredientAnalyses, 2)
	assert.Equal(t, transport.StatusMakruh, makruhFirst.IngredientAnalyses[0].Status)
	assert.Equal(t, transport.StatusDoubtful, makruhFirst.IngredientAnalyses[1].Status)
	assert.Len(t, makruhFirst.Reasons, 2)
}

func TestClassify_AllPermissible(t *testing.T) {
	v := Classify([]string{"water", "sugar", "salt"})

	assert.Equal(t, transport.StatusHalal, v.Status)
	assert.Equal(t, 95, v.Confidence)
	assert.Len(t, v.Reasons, 2)
	for _, a := range v.IngredientAnalyses {
		assert.Equal(t, transport.StatusHalal, a.Status)
		assert.Equal(t, "Permissible ingredient", a.Reason)
	}
}

func TestClassify_CaseInsensitiveAndTrimmed(t *testing.T) {
	v := Classify([]string{"  GELATINE ", "Sodium Benzoate"})

	require.Len(t, v.IngredientAnalyses, 2)
	assert.Equal(t, "  GELATINE ", v.IngredientAnalyses[0].Name)
	assert.Equal(t, transport.StatusHaram, v.IngredientAnalyses[0].Status)
	assert.Equal(t, "Contains gelatin (prohibited in Islam)", v.IngredientAnalyses[0].Reason)
	assert.Equal(t, transport.StatusMakruh, v.IngredientAnalyses[1].Status)
	assert.Equal(t, transport.StatusHaram, v.Status)
}

func TestClassify_OneAnalysisPerIngredientInOrder(t *testing.T) {
	input := []string{"wheat flour", "E471 emulsifier", "citric acid", "aspartame"}
	v := Classify(input)

	require.Len(t, v.IngredientAnalyses, len(input))
	for i, a := range v.IngredientAnalyses {
		assert.Equal(t, input[i], a.Name)
	}
	assert.Equal(t, transport.StatusDoubtful, v.IngredientAnalyses[1].Status)
	assert.Equal(t, transport.StatusMakruh, v.IngredientAnalyses[3].Status)
	assert.Equal(t, transport.StatusDoubtful, v.Status)
}

func TestClassify_Deterministic(t *testing.T) {
	input := []string{"whey", "msg", "gelatin", "water"}
	assert.Equal(t, Classify(input), Classify(input))
}
