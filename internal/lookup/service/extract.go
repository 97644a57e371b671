package service

import (
	"strings"

	"halal_scanner_backend/internal/aggregator/client"
	aggregator "halal_scanner_backend/internal/aggregator/transport"
	"halal_scanner_backend/internal/lookup/transport"
)

const maxAlternatives = 8

func countryInfo(r aggregator.Result) *transport.CountryInfo {
	o, ok := r.Find(client.SourceRESTCountries)
	if !ok {
		return nil
	}
	facts, ok := o.Payload.(aggregator.CountryFacts)
	if !ok || facts.Name.Common == "" {
		return nil
	}

	info := &transport.CountryInfo{
		Name:       facts.Name.Common,
		Region:     facts.Region,
		Population: facts.Population,
		Flag:       facts.Flag,
	}
	if len(facts.Capital) > 0 {
		info.Capital = facts.Capital[0]
	}
	return info
}

func boycottFlag(r aggregator.Result) bool {
	o, ok := r.Find(client.SourceBoycottLink)
	if !ok {
		return false
	}
	linkage, ok := o.Payload.(aggregator.LinkagePayload)
	return ok && linkage.HasLink
}

// alternatives takes the first eight category products and keeps those with
// a name.
func alternatives(r aggregator.Result) []transport.Alternative {
	out := []transport.Alternative{}

	o, ok := r.Find(client.SourceAlternatives)
	if !ok {
		return out
	}
	list, ok := o.Payload.(aggregator.OFFProductList)
	if !ok {
		return out
	}

	products := list.Products
	if len(products) > maxAlternatives {
		products = products[:maxAlternatives]
	}
	for _, p := range products {
		name := strings.TrimSpace(p.ProductName)
		if name == "" {
			continue
		}
		out = append(out, transport.Alternative{
			Name:     name,
			Brand:    strings.TrimSpace(p.Brands),
			ImageURL: p.ImageURL,
		})
	}
	return out
}
