package trades

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tradevault/trades-api/internal/types"
)

func newTestRouter(t *testing.T, seed ...types.Trade) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	handlers := NewGinHandlers(newTestService(t, seed...))
	router := gin.New()
	v1 := router.Group("/api/v1")
	records := v1.Group("/trades")
	{
		records.POST("", handlers.AddTradeHandler())
		records.GET("", handlers.ListTradesHandler())
		records.GET("/search", handlers.SearchTradesHandler())
		records.GET("/filter", handlers.FilterTradesHandler())
		records.GET("/:trade_id", handlers.GetTradeHandler())
	}
	return router
}

func doRequest(router *gin.Engine, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func TestAddTradeEndpoint(t *testing.T) {
	router := newTestRouter(t)

	w := doRequest(router, http.MethodPost, "/api/v1/trades", `{
		"assetClass": "Equity",
		"counterparty": "Goldman",
		"instrumentId": "TSLA",
		"instrumentName": "Tesla Inc",
		"tradeDateTime": "2024-03-01T14:30:00Z",
		"tradeDetails": {"buySellIndicator": "BUY", "price": 185.5, "quantity": 100},
		"trader": "jsmith"
	}`)

	require.Equal(t, http.StatusCreated, w.Code)
	env := decodeEnvelope(t, w)
	require.True(t, env.Success)

	var trade types.Trade
	require.NoError(t, json.Unmarshal(env.Data, &trade))
	assert.Equal(t, int64(1), trade.TradeID)
}

func TestAddTradeEndpointRejectsMissingRequiredField(t *testing.T) {
	router := newTestRouter(t)

	w := doRequest(router, http.MethodPost, "/api/v1/trades", `{
		"instrumentId": "TSLA",
		"instrumentName": "Tesla Inc",
		"trader": "jsmith"
	}`)

	require.Equal(t, http.StatusBadRequest, w.Code)
	env := decodeEnvelope(t, w)
	require.NotNil(t, env.Error)
	assert.Equal(t, "VALIDATION_FAILED", env.Error.Code)
}

func TestGetTradeEndpoint(t *testing.T) {
	router := newTestRouter(t, seedTrade(1, 50, "BUY"))

	w := doRequest(router, http.MethodGet, "/api/v1/trades/1", "")
	require.Equal(t, http.StatusOK, w.Code)

	env := decodeEnvelope(t, w)
	var trade types.Trade
	require.NoError(t, json.Unmarshal(env.Data, &trade))
	assert.Equal(t, "TSLA", trade.InstrumentID)
}

func TestGetTradeEndpointMissingIDIsEmptyResult(t *testing.T) {
	router := newTestRouter(t, seedTrade(1, 50, "BUY"))

	w := doRequest(router, http.MethodGet, "/api/v1/trades/99", "")
	require.Equal(t, http.StatusOK, w.Code)

	env := decodeEnvelope(t, w)
	assert.True(t, env.Success)
	assert.JSONEq(t, `{}`, string(env.Data))
}

func TestGetTradeEndpointRejectsNonIntegerID(t *testing.T) {
	router := newTestRouter(t, seedTrade(1, 50, "BUY"))

	w := doRequest(router, http.MethodGet, "/api/v1/trades/abc", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSearchEndpointIsCaseInsensitive(t *testing.T) {
	router := newTestRouter(t, seedTrade(1, 50, "BUY"))

	w := doRequest(router, http.MethodGet, "/api/v1/trades/search?search=tsla", "")
	require.Equal(t, http.StatusOK, w.Code)

	env := decodeEnvelope(t, w)
	var matches []types.Trade
	require.NoError(t, json.Unmarshal(env.Data, &matches))
	assert.Len(t, matches, 1)
}

func TestFilterEndpointInclusiveBounds(t *testing.T) {
	router := newTestRouter(t, seedTrade(1, 100, "BUY"), seedTrade(2, 200, "BUY"))

	w := doRequest(router, http.MethodGet, "/api/v1/trades/filter?minPrice=100&maxPrice=100", "")
	require.Equal(t, http.StatusOK, w.Code)

	env := decodeEnvelope(t, w)
	var matches []types.Trade
	require.NoError(t, json.Unmarshal(env.Data, &matches))
	require.Len(t, matches, 1)
	assert.Equal(t, int64(1), matches[0].TradeID)
}

func TestListEndpointSortsThenPaginates(t *testing.T) {
	router := newTestRouter(t,
		seedTrade(1, 30, "BUY"),
		seedTrade(2, 10, "BUY"),
		seedTrade(3, 20, "BUY"),
	)

	w := doRequest(router, http.MethodGet, "/api/v1/trades?sort=price&order=asc&page=1&limit=2", "")
	require.Equal(t, http.StatusOK, w.Code)

	env := decodeEnvelope(t, w)
	var result types.ListResult
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.Equal(t, []float64{10, 20}, pricesOf(result.Trades))
	assert.Equal(t, 3, result.Total)
	assert.Equal(t, 1, result.Page)
	assert.Equal(t, 2, result.Limit)
}

func TestListEndpointDefaults(t *testing.T) {
	router := newTestRouter(t, nTrades(15)...)

	w := doRequest(router, http.MethodGet, "/api/v1/trades", "")
	require.Equal(t, http.StatusOK, w.Code)

	env := decodeEnvelope(t, w)
	var result types.ListResult
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.Len(t, result.Trades, 10)
	assert.Equal(t, 1, result.Page)
	assert.Equal(t, 10, result.Limit)
	assert.Equal(t, 15, result.Total)
}

func TestListEndpointRejectsInvalidSortField(t *testing.T) {
	router := newTestRouter(t, seedTrade(1, 50, "BUY"))

	w := doRequest(router, http.MethodGet, "/api/v1/trades?sort=favouriteColour", "")
	require.Equal(t, http.StatusBadRequest, w.Code)

	env := decodeEnvelope(t, w)
	require.NotNil(t, env.Error)
	assert.Equal(t, "BAD_REQUEST", env.Error.Code)
}

func TestListEndpointRejectsInvalidPagination(t *testing.T) {
	router := newTestRouter(t, seedTrade(1, 50, "BUY"))

	w := doRequest(router, http.MethodGet, "/api/v1/trades?page=0", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
