package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	aggregator "halal_scanner_backend/internal/aggregator/transport"
	"halal_scanner_backend/internal/lookup/service"
	"halal_scanner_backend/internal/lookup/transport"
	verdict "halal_scanner_backend/internal/verdict/transport"
	"halal_scanner_backend/platform/httpkit"
	"halal_scanner_backend/platform/logger"
	"halal_scanner_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAggregator struct {
	product *aggregator.Product
	keys    *[]string
}

func (s stubAggregator) Aggregate(_ context.Context, key string) aggregator.Result {
	if s.keys != nil {
		*s.keys = append(*s.keys, key)
	}
	ledger := []aggregator.Outcome{{Source: "OpenFoodFacts", Success: s.product != nil}}
	return aggregator.Result{
		Product:      s.product,
		Ledger:       ledger,
		SuccessCount: aggregator.CountSuccesses(ledger),
	}
}

func newEngine(agg service.Aggregator) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := New(service.New(agg, nil, logger.Discard()), validator.New(), time.Second)

	engine := gin.New()
	engine.GET("/api/v1/lookup/*key", h.Lookup)
	engine.POST("/api/v1/classify", h.Classify)
	return engine
}

func serve(engine *gin.Engine, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func TestLookup_Found(t *testing.T) {
	engine := newEngine(stubAggregator{product: &aggregator.Product{
		Name:        "Marshmallows",
		Barcode:     "737628064502",
		Ingredients: []string{"sugar", "gelatin"},
	}})

	rec := serve(engine, http.MethodGet, "/api/v1/lookup/737628064502", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var result transport.LookupResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, "Marshmallows", result.Product.Name)
	require.NotNil(t, result.Verdict)
	assert.Equal(t, verdict.StatusHaram, result.Verdict.Status)
	assert.Equal(t, 1, result.SuccessCount)
}

func TestLookup_NotFound(t *testing.T) {
	engine := newEngine(stubAggregator{})

	rec := serve(engine, http.MethodGet, "/api/v1/lookup/0000000000", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"product":null`)
	assert.Contains(t, rec.Body.String(), `"verdict":null`)

	rec = serve(engine, http.MethodGet, "/api/v1/lookup/0000000000?strict=true", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	var errResp httpkit.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
	assert.Equal(t, msgNotFound, errResp.Error)
}

func TestLookup_InvalidKey(t *testing.T) {
	engine := newEngine(stubAggregator{})

	for _, target := range []string{
		"/api/v1/lookup/ab",
		"/api/v1/lookup/%20%20%20%20",
		"/api/v1/lookup/%20ab%20",
		"/api/v1/lookup/",
		"/api/v1/lookup/" + strings.Repeat("9", 129),
	} {
		rec := serve(engine, http.MethodGet, target, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
	}
}

func TestLookup_KeyWithSlashesAndPadding(t *testing.T) {
	var keys []string
	engine := newEngine(stubAggregator{keys: &keys})

	for _, key := range []string{"salt & vinegar 1/2", "50/50 bar", " 737628064502 "} {
		rec := serve(engine, http.MethodGet, "/api/v1/lookup/"+url.PathEscape(key), "")
		require.Equal(t, http.StatusOK, rec.Code, key)

		var result transport.LookupResult
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
		assert.Equal(t, strings.TrimSpace(key), result.Key)
	}
	assert.Equal(t, []string{"salt & vinegar 1/2", "50/50 bar", "737628064502"}, keys)
}

func TestClassify(t *testing.T) {
	engine := newEngine(stubAggregator{})

	rec := serve(engine, http.MethodPost, "/api/v1/classify", `{"ingredients":["whey","BHA"]}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var v verdict.Verdict
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	assert.Equal(t, verdict.StatusDoubtful, v.Status)
	assert.Equal(t, 50, v.Confidence)
	require.Len(t, v.IngredientAnalyses, 2)
	assert.Equal(t, verdict.StatusMakruh, v.IngredientAnalyses[1].Status)
	assert.Len(t, v.QuranEvidence, 2)
}

func TestClassify_EmptyListAndBadBody(t *testing.T) {
	engine := newEngine(stubAggregator{})

	rec := serve(engine, http.MethodPost, "/api/v1/classify", `{"ingredients":[]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var v verdict.Verdict
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	assert.Equal(t, verdict.StatusDoubtful, v.Status)
	assert.Equal(t, 40, v.Confidence)

	rec = serve(engine, http.MethodPost, "/api/v1/classify", `{"ingredients":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var errResp httpkit.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
	assert.Equal(t, msgInvalidRequest, errResp.Error)
}
