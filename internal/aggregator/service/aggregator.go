// Package service provides the aggregator: it fans one lookup out to the
// provider adapters in dependency-ordered batches, selects the canonical
// product and assembles the provenance ledger.
package service

import (
	"context"
	"strings"

	"halal_scanner_backend/internal/aggregator/client"
	"halal_scanner_backend/internal/aggregator/transport"
	"halal_scanner_backend/platform/logger"
)

// Providers is the set of provider adapters the aggregator dispatches.
// Implementations must return an outcome for every call and never panic.
type Providers interface {
	OpenFoodFacts(ctx context.Context, barcode string) transport.Outcome
	FoodRepo(ctx context.Context, barcode string) transport.Outcome
	OpenProductData(ctx context.Context, barcode string) transport.Outcome
	OpenFoodFactsSearch(ctx context.Context, name string) transport.Outcome
	UPCitemdbSearch(ctx context.Context, name string) transport.Outcome

	Wikipedia(ctx context.Context, brand string) transport.Outcome
	Wikidata(ctx context.Context, brand string) transport.Outcome
	DBpedia(ctx context.Context, brand string) transport.Outcome
	BoycottLinkage(ctx context.Context, brand string) transport.Outcome
	OpenSanctions(ctx context.Context, brand string) transport.Outcome

	RESTCountries(ctx context.Context, country string) transport.Outcome
	GeoNames(ctx context.Context, country string) transport.Outcome
	WorldBank(ctx context.Context, code string) transport.Outcome

	Alternatives(ctx context.Context, category string) transport.Outcome

	FDAEnforcement(ctx context.Context, name string) transport.Outcome
	OpenFDA(ctx context.Context, name string) transport.Outcome
	USDAFoods(ctx context.Context, name string) transport.Outcome

	FAOSTAT(ctx context.Context) transport.Outcome
	HalalCertBodies(ctx context.Context) transport.Outcome

	QuranAyah(ctx context.Context, surah, ayah int) transport.Outcome
	QuranSurah(ctx context.Context, surah int) transport.Outcome
	HadithFawaz(ctx context.Context, book string, number int) transport.Outcome
	HadithGading(ctx context.Context, book string, number int) transport.Outcome
	HadithArugaz(ctx context.Context, book string, number int) transport.Outcome
}

// Stage names, in execution order.
const (
	StagePrimary   = "primary"
	StageBrand     = "brand"
	StageCountry   = "country"
	StageCategory  = "category"
	StageName      = "name"
	StageGlobal    = "global"
	StageScripture = "scripture"
	StageTradition = "tradition"
)

// Aggregator runs lookups. It holds no per-lookup state and is safe for
// concurrent use.
type Aggregator struct {
	providers Providers
	log       *logger.Logger
}

// New creates an aggregator over the given providers.
func New(providers Providers, log *logger.Logger) *Aggregator {
	return &Aggregator{providers: providers, log: log}
}

// ClassifyKey reports whether key selects the barcode or the name providers.
// A key is a barcode when it is non-empty and all digits.
func ClassifyKey(key string) transport.KeyKind {
	key = strings.TrimSpace(key)
	if key == "" {
		return transport.KeyName
	}
	for _, r := range key {
		if r < '0' || r > '9' {
			return transport.KeyName
		}
	}
	return transport.KeyBarcode
}

// WorldBankCode derives the population-statistics country code by keeping
// the first three letters of the country name, upper-cased. This is an
// approximation, not an ISO 3166 lookup.
func WorldBankCode(country string) string {
	runes := []rune(strings.TrimSpace(country))
	if len(runes) > 3 {
		runes = runes[:3]
	}
	return strings.ToUpper(string(runes))
}

// Aggregate resolves key across all stages. It never fails: provider failures
// are recorded in the ledger and a missing product is a nil Product.
func (a *Aggregator) Aggregate(ctx context.Context, key string) transport.Result {
	key = strings.TrimSpace(key)
	kind := ClassifyKey(key)
	p := a.providers

	ledger := make([]transport.Outcome, 0, 32)

	primary := a.runBatch(ctx, StagePrimary, a.primaryCalls(kind, key))
	ledger = append(ledger, primary...)
	product := selectCanonical(kind, key, primary)

	if product != nil {
		if brand := product.Brand; brand != "" {
			ledger = append(ledger, a.runBatch(ctx, StageBrand, []call{
				{client.SourceWikipedia, func(ctx context.Context) transport.Outcome { return p.Wikipedia(ctx, brand) }},
				{client.SourceWikidata, func(ctx context.Context) transport.Outcome { return p.Wikidata(ctx, brand) }},
				{client.SourceDBpedia, func(ctx context.Context) transport.Outcome { return p.DBpedia(ctx, brand) }},
				{client.SourceBoycottLink, func(ctx context.Context) transport.Outcome { return p.BoycottLinkage(ctx, brand) }},
				{client.SourceOpenSanctions, func(ctx context.Context) transport.Outcome { return p.OpenSanctions(ctx, brand) }},
			})...)
		}

		if country := product.OriginCountry; country != "" {
			code := WorldBankCode(country)
			ledger = append(ledger, a.runBatch(ctx, StageCountry, []call{
				{client.SourceRESTCountries, func(ctx context.Context) transport.Outcome { return p.RESTCountries(ctx, country) }},
				{client.SourceGeoNames, func(ctx context.Context) transport.Outcome { return p.GeoNames(ctx, country) }},
				{client.SourceWorldBank, func(ctx context.Context) transport.Outcome { return p.WorldBank(ctx, code) }},
			})...)
		}

		if len(product.Categories) > 0 {
			category := product.Categories[0]
			ledger = append(ledger, a.runBatch(ctx, StageCategory, []call{
				{client.SourceAlternatives, func(ctx context.Context) transport.Outcome { return p.Alternatives(ctx, category) }},
			})...)
		}

		if name := product.Name; name != "" {
			ledger = append(ledger, a.runBatch(ctx, StageName, []call{
				{client.SourceFDAEnforcement, func(ctx context.Context) transport.Outcome { return p.FDAEnforcement(ctx, name) }},
				{client.SourceOpenFDA, func(ctx context.Context) transport.Outcome { return p.OpenFDA(ctx, name) }},
				{client.SourceUSDAFoods, func(ctx context.Context) transport.Outcome { return p.USDAFoods(ctx, name) }},
			})...)
		}
	}

	ledger = append(ledger, a.runBatch(ctx, StageGlobal, []call{
		{client.SourceFAOSTAT, p.FAOSTAT},
		{client.SourceHalalCertBody, p.HalalCertBodies},
	})...)

	scripture := a.runBatch(ctx, StageScripture, a.scriptureCalls())
	ledger = append(ledger, scripture...)

	tradition := a.runBatch(ctx, StageTradition, a.traditionCalls())
	ledger = append(ledger, tradition...)

	return transport.Result{
		Product:        product,
		Ledger:         ledger,
		SuccessCount:   transport.CountSuccesses(ledger),
		QuranEvidence:  harvestQuran(scripture),
		HadithEvidence: harvestHadith(tradition),
	}
}

// primaryCalls returns the primary providers for kind in priority order.
func (a *Aggregator) primaryCalls(kind transport.KeyKind, key string) []call {
	p := a.providers
	if kind == transport.KeyBarcode {
		return []call{
			{client.SourceOpenFoodFacts, func(ctx context.Context) transport.Outcome { return p.OpenFoodFacts(ctx, key) }},
			{client.SourceFoodRepo, func(ctx context.Context) transport.Outcome { return p.FoodRepo(ctx, key) }},
			{client.SourceOpenProductData, func(ctx context.Context) transport.Outcome { return p.OpenProductData(ctx, key) }},
		}
	}
	return []call{
		{client.SourceOpenFoodFactsSearch, func(ctx context.Context) transport.Outcome { return p.OpenFoodFactsSearch(ctx, key) }},
		{client.SourceUPCitemdbSearch, func(ctx context.Context) transport.Outcome { return p.UPCitemdbSearch(ctx, key) }},
	}
}

// Fixed scripture coordinates fetched on every lookup.
var scriptureAyat = [][2]int{{5, 90}, {2, 173}, {2, 168}}

const (
	scriptureSurah = 5
	// surahAyah is the ayah taken from the whole-surah document.
	surahAyah = 3
)

func (a *Aggregator) scriptureCalls() []call {
	p := a.providers
	calls := make([]call, 0, len(scriptureAyat)+1)
	for _, ref := range scriptureAyat {
		surah, ayah := ref[0], ref[1]
		calls = append(calls, call{client.SourceQuranCloud, func(ctx context.Context) transport.Outcome {
			return p.QuranAyah(ctx, surah, ayah)
		}})
	}
	return append(calls, call{client.SourceQuranPages, func(ctx context.Context) transport.Outcome {
		return p.QuranSurah(ctx, scriptureSurah)
	}})
}

func (a *Aggregator) traditionCalls() []call {
	p := a.providers
	return []call{
		{client.SourceHadithFawaz, func(ctx context.Context) transport.Outcome { return p.HadithFawaz(ctx, "muslim", 2003) }},
		{client.SourceHadithFawaz, func(ctx context.Context) transport.Outcome { return p.HadithFawaz(ctx, "bukhari", 52) }},
		{client.SourceHadithGading, func(ctx context.Context) transport.Outcome { return p.HadithGading(ctx, "muslim", 5) }},
		{client.SourceHadithArugaz, func(ctx context.Context) transport.Outcome { return p.HadithArugaz(ctx, "muslim", 1001) }},
	}
}
