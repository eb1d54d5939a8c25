package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"golang.org/x/text/language"

	"github.com/vsinha/storecalc/pkg/application/services"
	"github.com/vsinha/storecalc/pkg/infrastructure/events"
	"github.com/vsinha/storecalc/pkg/infrastructure/repositories/memory"
)

type apiResult struct {
	Currency struct {
		Code string `json:"code"`
	} `json:"currency"`
	Outputs struct {
		InitialOrders    int    `json:"initialOrders"`
		SuccessfulOrders int    `json:"successfulOrders"`
		NetProfit        string `json:"netProfit"`
		Recommendation   string `json:"recommendation"`
	} `json:"outputs"`
	Recommendation string `json:"recommendation"`
}

func newTestServer(t *testing.T, opts ...services.CalculatorOption) http.Handler {
	t.Helper()
	opts = append([]services.CalculatorOption{
		services.WithClock(func() time.Time { return time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC) }),
	}, opts...)
	calculator := services.NewCalculatorService(memory.NewDefaultCurrencyRepository(), opts...)

	server, err := NewServer(calculator, Options{Locale: language.AmericanEnglish})
	require.NoError(t, err)
	return server.Router()
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeResult(t *testing.T, rec *httptest.ResponseRecorder) apiResult {
	t.Helper()
	var result apiResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	return result
}

func TestHealthz(t *testing.T) {
	rec := do(t, newTestServer(t), http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestCalculateQuery_Defaults(t *testing.T) {
	rec := do(t, newTestServer(t), http.MethodGet, "/api/calculate", "")
	require.Equal(t, http.StatusOK, rec.Code)

	result := decodeResult(t, rec)
	assert.Equal(t, "USD", result.Currency.Code)
	assert.Equal(t, 250, result.Outputs.InitialOrders)
	assert.Equal(t, 105, result.Outputs.SuccessfulOrders)
	assert.Equal(t, "648.95", result.Outputs.NetProfit)
	assert.Equal(t, "HEALTHY", result.Outputs.Recommendation)
	assert.Contains(t, result.Recommendation, "105 successful orders")
}

func TestCalculateQuery_Overrides(t *testing.T) {
	h := newTestServer(t)

	rec := do(t, h, http.MethodGet, "/api/calculate?visitors=5000&currency=eur", "")
	require.Equal(t, http.StatusOK, rec.Code)
	result := decodeResult(t, rec)
	assert.Equal(t, 125, result.Outputs.InitialOrders)
	assert.Equal(t, "EUR", result.Currency.Code)

	// present but non-numeric coerces to zero
	rec = do(t, h, http.MethodGet, "/api/calculate?visitors=abc", "")
	require.Equal(t, http.StatusOK, rec.Code)
	result = decodeResult(t, rec)
	assert.Equal(t, 0, result.Outputs.InitialOrders)
	assert.Equal(t, "LOSS", result.Outputs.Recommendation)
}

func TestCalculate_UnknownCurrency(t *testing.T) {
	h := newTestServer(t)

	for _, target := range []string{"/api/calculate?currency=XYZ", "/?currency=XYZ", "/charts/financial.svg?currency=XYZ"} {
		rec := do(t, h, http.MethodGet, target, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)

		var body map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), target)
		assert.Equal(t, "unknown_currency", body["error"], target)
		assert.NotEmpty(t, body["request_id"], target)
	}
}

func TestCalculateJSON(t *testing.T) {
	h := newTestServer(t)

	rec := do(t, h, http.MethodPost, "/api/calculate", `{"sellingPrice": "10", "currency": "EUR"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	result := decodeResult(t, rec)
	assert.Equal(t, "EUR", result.Currency.Code)
	assert.Equal(t, 105, result.Outputs.SuccessfulOrders)
	assert.Equal(t, "LOSS", result.Outputs.Recommendation)
	assert.True(t, strings.HasPrefix(result.Outputs.NetProfit, "-"))
}

func TestCalculateJSON_NumericValues(t *testing.T) {
	h := newTestServer(t)

	rec := do(t, h, http.MethodPost, "/api/calculate", `{"visitors": 20000, "conversionRate": 2.5, "currency": "EUR"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	result := decodeResult(t, rec)
	assert.Equal(t, "EUR", result.Currency.Code)
	assert.Equal(t, 500, result.Outputs.InitialOrders)
	assert.Equal(t, 210, result.Outputs.SuccessfulOrders)

	rec = do(t, h, http.MethodPost, "/api/calculate", `{"selling_price": 10}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "LOSS", decodeResult(t, rec).Outputs.Recommendation)
}

func TestCalculateJSON_NonNumericValuesReadAsZero(t *testing.T) {
	h := newTestServer(t)

	for _, body := range []string{
		`{"visitors": true}`,
		`{"visitors": null}`,
		`{"visitors": {"count": 5}}`,
		`{"visitors": "abc"}`,
	} {
		rec := do(t, h, http.MethodPost, "/api/calculate", body)
		require.Equal(t, http.StatusOK, rec.Code, body)
		result := decodeResult(t, rec)
		assert.Equal(t, 0, result.Outputs.InitialOrders, body)
		assert.Equal(t, 0, result.Outputs.SuccessfulOrders, body)
	}
}

func TestCalculateJSON_InvalidBody(t *testing.T) {
	h := newTestServer(t)
	for _, body := range []string{`{"visitors": `, `[1, 2]`, `"visitors"`} {
		rec := do(t, h, http.MethodPost, "/api/calculate", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
		assert.Contains(t, rec.Body.String(), "invalid_body", body)
	}
}

func TestCurrenciesAndDefaults(t *testing.T) {
	h := newTestServer(t)

	rec := do(t, h, http.MethodGet, "/api/currencies", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var currencies []map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &currencies))
	require.Len(t, currencies, 7)
	assert.Equal(t, "USD", currencies[0]["code"])

	rec = do(t, h, http.MethodGet, "/api/defaults", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var defaults struct {
		Form     map[string]string `json:"form"`
		Currency string            `json:"currency"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &defaults))
	assert.Equal(t, "10000", defaults.Form["visitors"])
	assert.Equal(t, "2.5", defaults.Form["conversionRate"])
	assert.Equal(t, "USD", defaults.Currency)
}

func TestPage(t *testing.T) {
	h := newTestServer(t)

	rec := do(t, h, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))

	page := rec.Body.String()
	assert.Contains(t, page, `value="10000"`)
	assert.Contains(t, page, `value="49.99"`)
	assert.Contains(t, page, "$648.95")
	assert.Contains(t, page, "window.print()")
	assert.Contains(t, page, `href="/reset"`)
	assert.Equal(t, 2, strings.Count(page, "<svg"))
	assert.Contains(t, page, `<option value="USD" selected>`)
}

func TestPage_CurrencyIsCosmetic(t *testing.T) {
	rec := do(t, newTestServer(t), http.MethodGet, "/?currency=EUR", "")
	require.Equal(t, http.StatusOK, rec.Code)

	page := rec.Body.String()
	assert.Contains(t, page, "€648.95")
	assert.Contains(t, page, `<option value="EUR" selected>`)
}

func TestReset(t *testing.T) {
	store := events.NewInMemoryEventStore(zap.NewNop())
	h := newTestServer(t, services.WithEventStore(store))

	rec := do(t, h, http.MethodGet, "/reset", "")
	assert.Equal(t, http.StatusSeeOther, rec.Code)

	location := rec.Header().Get("Location")
	assert.True(t, strings.HasPrefix(location, "/?"))
	assert.Contains(t, location, "visitors=10000")
	assert.Contains(t, location, "conversion_rate=2.5")
	assert.Contains(t, location, "currency=USD")

	recorded, err := store.ReadEvents(events.CalculatorStream, 0)
	require.NoError(t, err)
	require.Len(t, recorded, 1)
	assert.Equal(t, events.CalculatorResetEvent, recorded[0].Type())
}

func TestCharts(t *testing.T) {
	h := newTestServer(t)

	for _, path := range []string{"/charts/financial.svg", "/charts/distribution.svg"} {
		rec := do(t, h, http.MethodGet, path+"?ad_spend=5000", "")
		require.Equal(t, http.StatusOK, rec.Code, path)
		assert.Equal(t, "image/svg+xml", rec.Header().Get("Content-Type"), path)
		assert.True(t, strings.HasPrefix(rec.Body.String(), "<svg"), path)
	}
}

func TestRequestLogger(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	calculator := services.NewCalculatorService(memory.NewDefaultCurrencyRepository())
	server, err := NewServer(calculator, Options{Locale: language.AmericanEnglish, Logger: zap.New(core)})
	require.NoError(t, err)
	h := server.Router()

	do(t, h, http.MethodGet, "/healthz", "")
	do(t, h, http.MethodGet, "/api/calculate?currency=XYZ", "")

	entries := logs.FilterMessage("request completed").All()
	require.Len(t, entries, 2)

	first := entries[0].ContextMap()
	assert.Equal(t, "/healthz", first["path"])
	assert.EqualValues(t, http.StatusOK, first["status"])
	assert.NotEmpty(t, first["request_id"])
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
}
