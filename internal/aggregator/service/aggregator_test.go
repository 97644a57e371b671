package service

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"halal_scanner_backend/internal/aggregator/client"
	"halal_scanner_backend/internal/aggregator/transport"
	"halal_scanner_backend/platform/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

// fakeUpstreams answers requests whose host+path starts with a registered
// prefix and fails everything else with 503. It records every request.
type fakeUpstreams struct {
	routes map[string]string

	mu       sync.Mutex
	requests []string
}

func (f *fakeUpstreams) RoundTrip(r *http.Request) (*http.Response, error) {
	target := r.URL.Host + r.URL.Path
	f.mu.Lock()
	f.requests = append(f.requests, target)
	f.mu.Unlock()

	status, body := http.StatusServiceUnavailable, `{}`
	for prefix, payload := range f.routes {
		if strings.HasPrefix(target, prefix) {
			status, body = http.StatusOK, payload
			break
		}
	}
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(strings.NewReader(body)),
		Request:    r,
	}, nil
}

func (f *fakeUpstreams) requested(prefix string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.requests {
		if strings.HasPrefix(r, prefix) {
			return true
		}
	}
	return false
}

func newAggregator(rt http.RoundTripper) *Aggregator {
	log := logger.Discard()
	return New(client.New(log, client.WithTransport(rt)), log)
}

func sources(ledger []transport.Outcome) []string {
	out := make([]string, len(ledger))
	for i, o := range ledger {
		out[i] = o.Source
	}
	return out
}

const offNoodleKit = `{"status":1,"product":{
	"code":"0737628064502",
	"product_name":"Thai peanut noodle kit",
	"brands":"Simply Asia, Thai Kitchen",
	"ingredients_text":"rice noodles, peanuts, sugar, soy sauce",
	"categories":"Noodles, Meals",
	"countries":"en:United States",
	"image_url":"https://images.openfoodfacts.org/kit.jpg"}}`

func TestAggregate_BarcodeRunsEveryStage(t *testing.T) {
	up := &fakeUpstreams{routes: map[string]string{
		"world.openfoodfacts.org/api/v0/product/": offNoodleKit,
		"world.openfoodfacts.org/category/":       `{"count":1,"products":[{"product_name":"Rice noodles"}]}`,
	}}

	result := newAggregator(up).Aggregate(context.Background(), " 737628064502 ")

	require.NotNil(t, result.Product)
	assert.Equal(t, "737628064502", result.Product.Barcode)
	assert.Equal(t, "Thai peanut noodle kit", result.Product.Name)
	assert.Equal(t, "Simply Asia", result.Product.Brand)
	assert.Equal(t, "United States", result.Product.OriginCountry)
	assert.Equal(t, []string{"rice noodles", "peanuts", "sugar", "soy sauce"}, result.Product.Ingredients)

	assert.Equal(t, []string{
		client.SourceOpenFoodFacts, client.SourceFoodRepo, client.SourceOpenProductData,
		client.SourceWikipedia, client.SourceWikidata, client.SourceDBpedia, client.SourceBoycottLink, client.SourceOpenSanctions,
		client.SourceRESTCountries, client.SourceGeoNames, client.SourceWorldBank,
		client.SourceAlternatives,
		client.SourceFDAEnforcement, client.SourceOpenFDA, client.SourceUSDAFoods,
		client.SourceFAOSTAT, client.SourceHalalCertBody,
		client.SourceQuranCloud, client.SourceQuranCloud, client.SourceQuranCloud, client.SourceQuranPages,
		client.SourceHadithFawaz, client.SourceHadithFawaz, client.SourceHadithGading, client.SourceHadithArugaz,
	}, sources(result.Ledger))

	assert.Equal(t, 2, result.SuccessCount)
	assert.Equal(t, transport.CountSuccesses(result.Ledger), result.SuccessCount)
	assert.True(t, up.requested("api.worldbank.org/v2/country/UNI/"))
	assert.True(t, up.requested("world.openfoodfacts.org/category/Noodles.json"))
}

func TestAggregate_UniversalFailure(t *testing.T) {
	rt := roundTripFunc(func(r *http.Request) (*http.Response, error) {
		return nil, errors.New("network unreachable")
	})

	var result transport.Result
	require.NotPanics(t, func() {
		result = newAggregator(rt).Aggregate(context.Background(), "737628064502")
	})

	assert.Nil(t, result.Product)
	assert.Equal(t, 0, result.SuccessCount)
	require.Len(t, result.Ledger, 3+2+4+4)
	for _, o := range result.Ledger {
		assert.False(t, o.Success, o.Source)
		assert.Equal(t, client.ReasonConnection, o.Error, o.Source)
	}
	assert.NotNil(t, result.QuranEvidence)
	assert.NotNil(t, result.HadithEvidence)
	assert.Empty(t, result.QuranEvidence)
}

func TestAggregate_NameKeyUsesSearchProviders(t *testing.T) {
	up := &fakeUpstreams{routes: map[string]string{
		"world.openfoodfacts.org/cgi/search.pl": `{"count":2,"products":[{"code":"","product_name":""},{"code":"3017620422003","product_name":"Nutella"}]}`,
	}}

	result := newAggregator(up).Aggregate(context.Background(), "nutella")

	require.NotNil(t, result.Product)
	assert.Equal(t, "Nutella", result.Product.Name)
	assert.Equal(t, "3017620422003", result.Product.Barcode)
	assert.Equal(t, []string{client.SourceOpenFoodFactsSearch, client.SourceUPCitemdbSearch}, sources(result.Ledger[:2]))
	// name stage only: no brand, country or category on the winning record
	assert.Len(t, result.Ledger, 2+3+2+4+4)
	assert.False(t, up.requested("world.openfoodfacts.org/api/v0/product/"))
}

func TestAggregate_PriorityFallsThroughToNextProvider(t *testing.T) {
	up := &fakeUpstreams{routes: map[string]string{
		"world.openfoodfacts.org/api/v0/product/": `{"status":1,"product":{"product_name":"","generic_name":""}}`,
		"www.foodrepo.org/api/v3/products/":       `{"data":{"barcode":"","name_translations":{"de":"Schokolade","en":"Chocolate"},"ingredients_translations":{"en":"sugar, cocoa butter"}}}`,
		"product-open-data.com/api/v1/barcode/":   `{"barcode":"7610400010804","name":"Ignored","brand":"Ignored brand"}`,
	}}

	result := newAggregator(up).Aggregate(context.Background(), "7610400010804")

	require.NotNil(t, result.Product)
	assert.Equal(t, "Chocolate", result.Product.Name)
	assert.Equal(t, []string{"sugar", "cocoa butter"}, result.Product.Ingredients)
	assert.Empty(t, result.Product.Brand, "fields of lower priority providers are not merged")
	assert.Equal(t, "7610400010804", result.Product.Barcode)
	assert.Equal(t, 3, result.SuccessCount)
}

func TestAggregate_HarvestsEvidence(t *testing.T) {
	up := &fakeUpstreams{routes: map[string]string{
		"api.alquran.cloud/v1/ayah/5:90/": `{"code":200,"data":[
			{"text":"يَا أَيُّهَا الَّذِينَ آمَنُوا","numberInSurah":90,"surah":{"number":5},"edition":{"identifier":"ar.alafasy"}},
			{"text":"O you who have attained to faith!","numberInSurah":90,"surah":{"number":5},"edition":{"identifier":"en.asad"}}]}`,
		"cdn.jsdelivr.net/gh/fawazahmed0/hadith-api@1/editions/eng-bukhari/52.json": `{"metadata":{"name":"Sahih al Bukhari","section":{"2":"Belief"}},"hadiths":[{"hadithnumber":52,"text":"Both legal and illegal things are evident","reference":{"book":2,"hadith":39}}]}`,
	}}

	result := newAggregator(up).Aggregate(context.Background(), "0000000000000")

	require.Len(t, result.QuranEvidence, 1)
	assert.Equal(t, 5, result.QuranEvidence[0].Surah)
	assert.Equal(t, 90, result.QuranEvidence[0].Ayah)
	assert.NotEmpty(t, result.QuranEvidence[0].Arabic)
	assert.Equal(t, "O you who have attained to faith!", result.QuranEvidence[0].Translation)

	require.Len(t, result.HadithEvidence, 1)
	assert.Equal(t, "Sahih Bukhari", result.HadithEvidence[0].Book)
	assert.Equal(t, 52, result.HadithEvidence[0].Number)
	assert.Equal(t, "Belief", result.HadithEvidence[0].Chapter)
}

func TestRunBatch_PreservesDispatchOrderAndIsolatesPanics(t *testing.T) {
	a := New(nil, logger.Discard())
	slow := func(d time.Duration, source string) call {
		return call{source: source, fetch: func(ctx context.Context) transport.Outcome {
			time.Sleep(d)
			return transport.Outcome{Source: source, Success: true}
		}}
	}

	outcomes := a.runBatch(context.Background(), "test", []call{
		slow(30*time.Millisecond, "first"),
		{source: "broken", fetch: func(ctx context.Context) transport.Outcome { panic("boom") }},
		slow(0, "third"),
	})

	require.Len(t, outcomes, 3)
	assert.Equal(t, []string{"first", "broken", "third"}, sources(outcomes))
	assert.True(t, outcomes[0].Success)
	assert.False(t, outcomes[1].Success)
	assert.Equal(t, client.ReasonMalformed, outcomes[1].Error)
	assert.True(t, outcomes[2].Success)
}

func TestClassifyKey(t *testing.T) {
	cases := map[string]transport.KeyKind{
		"737628064502":   transport.KeyBarcode,
		" 5000112548167": transport.KeyBarcode,
		"nutella":        transport.KeyName,
		"7up":            transport.KeyName,
		"12 34":          transport.KeyName,
		"":               transport.KeyName,
	}
	for key, want := range cases {
		assert.Equal(t, want, ClassifyKey(key), key)
	}
}

func TestWorldBankCode(t *testing.T) {
	assert.Equal(t, "UNI", WorldBankCode("United States"))
	assert.Equal(t, "FR", WorldBankCode("fr"))
	assert.Equal(t, "TÜR", WorldBankCode("türkiye"))
	assert.Equal(t, "", WorldBankCode("  "))
}
