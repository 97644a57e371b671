// Package transport provides DTOs for the verdict domain.
package transport

// Status is a dietary-permissibility category.
type Status string

const (
	StatusHalal    Status = "halal"
	StatusHaram    Status = "haram"
	StatusMakruh   Status = "makruh"
	StatusMustahab Status = "mustahab"
	StatusDoubtful Status = "doubtful"
)

// Valid reports whether s is one of the known categories.
func (s Status) Valid() bool {
	switch s {
	case StatusHalal, StatusHaram, StatusMakruh, StatusMustahab, StatusDoubtful:
		return true
	}
	return false
}

// IngredientAnalysis is the classifier finding for one input ingredient.
// Status is never mustahab.
type IngredientAnalysis struct {
	Name   string `json:"name"`
	Status Status `json:"status"`
	Reason string `json:"reason"`
}

// Ayah is a scripture citation. Identity key is (Surah, Ayah).
type Ayah struct {
	Surah       int    `json:"surah" yaml:"surah"`
	Ayah        int    `json:"ayah" yaml:"ayah"`
	Arabic      string `json:"arabic" yaml:"arabic"`
	Translation string `json:"translation" yaml:"translation"`
	Relevance   string `json:"relevance,omitempty" yaml:"relevance,omitempty"`
}

// Hadith is a tradition-text citation. Identity key is (Book, Number).
type Hadith struct {
	Book    string `json:"book" yaml:"book"`
	Number  int    `json:"number" yaml:"number"`
	Text    string `json:"text" yaml:"text"`
	Chapter string `json:"chapter,omitempty" yaml:"chapter,omitempty"`
}

// Verdict is the classifier result with its supporting evidence.
// QuranEvidence holds at most 5 entries and HadithEvidence at most 4.
type Verdict struct {
	Status             Status               `json:"status"`
	Confidence         int                  `json:"confidence"` // 0-100
	Reasons            []string             `json:"reasons"`
	IngredientAnalyses []IngredientAnalysis `json:"ingredients"`
	QuranEvidence      []Ayah               `json:"quranEvidence"`
	HadithEvidence     []Hadith             `json:"hadithEvidence"`
}
