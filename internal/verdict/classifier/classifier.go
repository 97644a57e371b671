// Package classifier converts an ingredient list into a severity-ranked verdict.
// It is pure: no I/O, no shared state, same input gives the same verdict.
package classifier

import (
	"fmt"
	"strings"

	"halal_scanner_backend/internal/verdict/transport"
)

const (
	confidenceHalal    = 95
	confidenceHaram    = 99
	confidenceDoubtful = 50
	confidenceMakruh   = 70
	confidenceUnknown  = 40

	reasonNoIngredients = "No ingredient information available"
	reasonPermissible   = "Permissible ingredient"
)

var defaultHalalReasons = []string{
	"All ingredients appear to be permissible (Halal)",
	"Note: Always verify certifications and slaughter methods for meat products",
}

// Classify scans each ingredient against the haram, doubtful and makruh
// keyword sets, in that order, and folds the findings into one verdict.
//
// A haram finding always forces the overall status to haram. Doubtful and
// makruh findings escalate the overall status only while it is still halal,
// so an earlier makruh finding keeps a later doubtful one from escalating.
// Evidence fields are left empty for the evidence resolver.
func Classify(ingredients []string) transport.Verdict {
	if len(ingredients) == 0 {
		return transport.Verdict{
			Status:             transport.StatusDoubtful,
			Confidence:         confidenceUnknown,
			Reasons:            []string{reasonNoIngredients},
			IngredientAnalyses: []transport.IngredientAnalysis{},
		}
	}

	status := transport.StatusHalal
	confidence := confidenceHalal
	reasons := make([]string, 0)
	analyses := make([]transport.IngredientAnalysis, 0, len(ingredients))

	for _, ingredient := range ingredients {
		lower := strings.ToLower(strings.TrimSpace(ingredient))
		finding := transport.IngredientAnalysis{
			Name:   ingredient,
			Status: transport.StatusHalal,
			Reason: reasonPermissible,
		}

		if term, ok := firstMatch(lower, haramKeywords); ok {
			finding.Status = transport.StatusHaram
			finding.Reason = fmt.Sprintf("Contains %s (prohibited in Islam)", term)
			status = transport.StatusHaram
			confidence = confidenceHaram
			reasons = append(reasons, finding.Reason)
		} else if term, ok := firstMatch(lower, doubtfulKeywords); ok {
			finding.Status = transport.StatusDoubtful
			finding.Reason = fmt.Sprintf("Contains %s (source unclear - may be animal or plant derived)", term)
			if status == transport.StatusHalal {
				status = transport.StatusDoubtful
				confidence = confidenceDoubtful
			}
			reasons = append(reasons, finding.Reason)
		} else if term, ok := firstMatch(lower, makruhKeywords); ok {
			finding.Status = transport.StatusMakruh
			finding.Reason = fmt.Sprintf("Contains %s (discouraged but not forbidden)", term)
			if status == transport.StatusHalal {
				status = transport.StatusMakruh
				confidence = confidenceMakruh
			}
			reasons = append(reasons, finding.Reason)
		}

		analyses = append(analyses, finding)
	}

	if len(reasons) == 0 {
		reasons = append(reasons, defaultHalalReasons...)
	}

	return transport.Verdict{
		Status:             status,
		Confidence:         confidence,
		Reasons:            reasons,
		IngredientAnalyses: analyses,
	}
}

func firstMatch(text string, keywords []string) (string, bool) {
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			return keyword, true
		}
	}
	return "", false
}
