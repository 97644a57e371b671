// Package transport provides DTOs for the aggregator domain.
package transport

import (
	verdict "halal_scanner_backend/internal/verdict/transport"
)

// KeyKind tells which primary provider group serves a lookup key.
type KeyKind string

const (
	KeyBarcode KeyKind = "barcode"
	KeyName    KeyKind = "name"
)

// Product is the canonical product record, populated from exactly one
// winning primary provider.
type Product struct {
	Name          string         `json:"name"`
	Barcode       string         `json:"barcode,omitempty"`
	Brand         string         `json:"brand,omitempty"`
	Ingredients   []string       `json:"ingredients"`
	Categories    []string       `json:"categories"`
	ImageURL      string         `json:"imageUrl,omitempty"`
	OriginCountry string         `json:"originCountry,omitempty"`
	Nutrients     map[string]any `json:"nutrients,omitempty"`
}

// Outcome is the result of one provider adapter invocation. Payload holds
// the provider-specific decoded body on success. Outcomes are never mutated
// after the adapter returns.
type Outcome struct {
	Source  string `json:"source"`
	Success bool   `json:"success"`
	Payload any    `json:"payload,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Result is everything one aggregation produced. Ledger is in invocation
// order: stages in fixed sequence, calls within a stage in dispatch order.
type Result struct {
	Product        *Product         `json:"product"`
	Ledger         []Outcome        `json:"ledger"`
	SuccessCount   int              `json:"successCount"`
	QuranEvidence  []verdict.Ayah   `json:"quranEvidence"`
	HadithEvidence []verdict.Hadith `json:"hadithEvidence"`
}

// Find returns the first successful outcome for source.
func (r Result) Find(source string) (Outcome, bool) {
	for _, o := range r.Ledger {
		if o.Source == source && o.Success {
			return o, true
		}
	}
	return Outcome{}, false
}

// CountSuccesses counts successful outcomes in a ledger.
func CountSuccesses(ledger []Outcome) int {
	n := 0
	for _, o := range ledger {
		if o.Success {
			n++
		}
	}
	return n
}
