// Package transport provides DTOs for the lookup domain.
package transport

import (
	aggregator "halal_scanner_backend/internal/aggregator/transport"
	verdict "halal_scanner_backend/internal/verdict/transport"
)

// LookupRequest is the path parameter of GET /lookup/*key. Key is trimmed
// before validation; names may contain slashes.
type LookupRequest struct {
	Key string `validate:"required,min=3,max=128,lookupkey"`
}

// ClassifyRequest is the body of POST /classify.
type ClassifyRequest struct {
	Ingredients []string `json:"ingredients" validate:"max=500,dive,max=512"`
}

// CountryInfo summarizes the country-facts provider answer.
type CountryInfo struct {
	Name       string `json:"name"`
	Region     string `json:"region,omitempty"`
	Population int64  `json:"population,omitempty"`
	Flag       string `json:"flag,omitempty"`
	Capital    string `json:"capital,omitempty"`
}

// Alternative is a substitute product suggestion from the same category.
type Alternative struct {
	Name     string `json:"name"`
	Brand    string `json:"brand,omitempty"`
	ImageURL string `json:"imageUrl,omitempty"`
}

// LookupResult is the answer to one lookup. Verdict is nil exactly when
// Product is nil.
type LookupResult struct {
	Key          string               `json:"key"`
	Product      *aggregator.Product  `json:"product"`
	Verdict      *verdict.Verdict     `json:"verdict"`
	Ledger       []aggregator.Outcome `json:"ledger"`
	SuccessCount int                  `json:"successCount"`
	CountryInfo  *CountryInfo         `json:"countryInfo,omitempty"`
	BoycottFlag  bool                 `json:"boycottFlag"`
	Alternatives []Alternative        `json:"alternatives"`
}

// Found reports whether a canonical product was resolved.
func (r LookupResult) Found() bool {
	return r.Product != nil
}
