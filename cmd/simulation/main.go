package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"math/rand"
	"net/http"
	"net/url"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/tradevault/trades-api/internal/database"
	"github.com/tradevault/trades-api/internal/store"
	"github.com/tradevault/trades-api/internal/trades"
	"github.com/tradevault/trades-api/internal/types"
)

const (
	minTrades     = 15
	maxTrades     = 150
	numWorkers    = 5
	serverAddress = "http://localhost:8080"
)

var (
	instruments = []struct {
		id   string
		name string
	}{
		{"AAPL", "Apple Inc"},
		{"GOOGL", "Alphabet Inc"},
		{"MSFT", "Microsoft Corp"},
		{"AMZN", "Amazon.com Inc"},
		{"META", "Meta Platforms Inc"},
	}
	assetClasses   = []string{"Equity", "Bond", "FX"}
	counterparties = []string{"Goldman", "Citadel", "Jane Street", "Virtu"}
	traders        = []string{"jsmith", "mchen", "apatel", "kmurphy", "dlopez"}
	sides          = []string{"BUY", "SELL"}
)

// init configures the logger for the simulation with pretty printing and timestamp
func init() {
	// Configure pretty logging
	output := zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: time.RFC3339,
	}
	log.Logger = zerolog.New(output).With().Timestamp().Logger()
}

// routeStats tracks performance statistics for an API endpoint
type routeStats struct {
	name       string
	durations  []time.Duration
	totalCalls int
	failures   int
}

// addDuration records a new duration measurement for the route
func (rs *routeStats) addDuration(d time.Duration) {
	rs.durations = append(rs.durations, d)
	rs.totalCalls++
}

// calculate computes performance statistics from recorded durations
// Returns min, max, mean, median, 95th percentile, and 99th percentile durations
func (rs *routeStats) calculate() (min, max, mean, median, p95, p99 time.Duration) {
	if len(rs.durations) == 0 {
		return 0, 0, 0, 0, 0, 0
	}

	// Sort durations for percentile calculations
	sort.Slice(rs.durations, func(i, j int) bool {
		return rs.durations[i] < rs.durations[j]
	})

	min = rs.durations[0]
	max = rs.durations[len(rs.durations)-1]

	// Calculate mean
	var sum time.Duration
	for _, d := range rs.durations {
		sum += d
	}
	mean = sum / time.Duration(len(rs.durations))

	// Calculate median
	median = rs.durations[len(rs.durations)/2]

	// Calculate percentiles
	p95idx := int(math.Ceil(float64(len(rs.durations))*0.95)) - 1
	p99idx := int(math.Ceil(float64(len(rs.durations))*0.99)) - 1
	p95 = rs.durations[p95idx]
	p99 = rs.durations[p99idx]

	return
}

// simulationClient handles HTTP communication with the trade records API
type simulationClient struct {
	baseURL string
	client  *http.Client
	mu      sync.Mutex
	stats   map[string]*routeStats
}

// newSimulationClient creates and initializes a new simulation client
func newSimulationClient() *simulationClient {
	return &simulationClient{
		baseURL: serverAddress,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		stats: map[string]*routeStats{
			"add":    {name: "Add Trade"},
			"get":    {name: "Get Trade"},
			"search": {name: "Search Trades"},
			"list":   {name: "List Trades"},
		},
	}
}

func (sc *simulationClient) record(route string, d time.Duration, failed bool) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.stats[route].addDuration(d)
	if failed {
		sc.stats[route].failures++
	}
}

// addTrade submits a new trade to the API
// Returns the assigned trade ID on success
func (sc *simulationClient) addTrade(sub *types.TradeSubmission) (int64, error) {
	start := time.Now()
	failed := false
	defer func() {
		sc.record("add", time.Since(start), failed)
	}()

	body, err := json.Marshal(sub)
	if err != nil {
		failed = true
		return 0, err
	}

	resp, err := sc.client.Post(
		fmt.Sprintf("%s/api/v1/trades", sc.baseURL),
		"application/json",
		bytes.NewBuffer(body),
	)
	if err != nil {
		failed = true
		return 0, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		failed = true
		return 0, fmt.Errorf("failed to read response body: %w", err)
	}
	log.Debug().Str("response", string(respBody)).Msg("Add trade response")

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		failed = true
		return 0, fmt.Errorf("add trade failed with status %d: %s", resp.StatusCode, string(respBody))
	}

	var result struct {
		Success bool        `json:"success"`
		Data    types.Trade `json:"data"`
	}
	if err := json.Unmarshal(respBody, &result); err != nil {
		failed = true
		return 0, fmt.Errorf("failed to decode response: %w, body: %s", err, string(respBody))
	}

	if result.Data.TradeID == 0 {
		failed = true
		return 0, fmt.Errorf("no trade ID in response: %s", string(respBody))
	}

	return result.Data.TradeID, nil
}

// getTrade retrieves a single trade by its id
func (sc *simulationClient) getTrade(tradeID int64) (*types.Trade, error) {
	start := time.Now()
	failed := false
	defer func() {
		sc.record("get", time.Since(start), failed)
	}()

	resp, err := sc.client.Get(fmt.Sprintf("%s/api/v1/trades/%d", sc.baseURL, tradeID))
	if err != nil {
		failed = true
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		failed = true
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	log.Debug().Str("response", string(respBody)).Msg("Get trade response")

	if resp.StatusCode != http.StatusOK {
		failed = true
		return nil, fmt.Errorf("get trade failed with status %d: %s", resp.StatusCode, string(respBody))
	}

	var result struct {
		Success bool        `json:"success"`
		Data    types.Trade `json:"data"`
	}
	if err := json.Unmarshal(respBody, &result); err != nil {
		failed = true
		return nil, fmt.Errorf("failed to decode response: %w, body: %s", err, string(respBody))
	}

	return &result.Data, nil
}

// searchTrades runs a free-text search across the textual trade fields
func (sc *simulationClient) searchTrades(query string) ([]types.Trade, error) {
	start := time.Now()
	failed := false
	defer func() {
		sc.record("search", time.Since(start), failed)
	}()

	resp, err := sc.client.Get(fmt.Sprintf("%s/api/v1/trades/search?search=%s", sc.baseURL, url.QueryEscape(query)))
	if err != nil {
		failed = true
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		failed = true
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		failed = true
		return nil, fmt.Errorf("search failed with status %d: %s", resp.StatusCode, string(respBody))
	}

	var result struct {
		Success bool          `json:"success"`
		Data    []types.Trade `json:"data"`
	}
	if err := json.Unmarshal(respBody, &result); err != nil {
		failed = true
		return nil, fmt.Errorf("failed to decode response: %w, body: %s", err, string(respBody))
	}

	return result.Data, nil
}

// listTrades fetches one sorted page of trades
func (sc *simulationClient) listTrades(page, limit int, sortField, order string) (*types.ListResult, error) {
	start := time.Now()
	failed := false
	defer func() {
		sc.record("list", time.Since(start), failed)
	}()

	resp, err := sc.client.Get(fmt.Sprintf(
		"%s/api/v1/trades?page=%d&limit=%d&sort=%s&order=%s",
		sc.baseURL, page, limit, url.QueryEscape(sortField), order,
	))
	if err != nil {
		failed = true
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		failed = true
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		failed = true
		return nil, fmt.Errorf("list failed with status %d: %s", resp.StatusCode, string(respBody))
	}

	var result struct {
		Success bool             `json:"success"`
		Data    types.ListResult `json:"data"`
	}
	if err := json.Unmarshal(respBody, &result); err != nil {
		failed = true
		return nil, fmt.Errorf("failed to decode response: %w, body: %s", err, string(respBody))
	}

	return &result.Data, nil
}

// printPerformanceStats outputs formatted performance statistics for all API endpoints
func (sc *simulationClient) printPerformanceStats() {
	fmt.Println("\n📊 API Performance Statistics")
	fmt.Println(strings.Repeat("-", 100))
	fmt.Printf("%-20s %10s %10s %10s %10s %10s %10s %10s %10s\n",
		"Endpoint", "Calls", "Errors", "Min", "Max", "Mean", "Median", "P95", "P99")
	fmt.Println(strings.Repeat("-", 100))

	for _, stats := range sc.stats {
		min, max, mean, median, p95, p99 := stats.calculate()
		fmt.Printf("%-20s %10d %10d %10s %10s %10s %10s %10s %10s\n",
			stats.name,
			stats.totalCalls,
			stats.failures,
			min.Round(time.Millisecond),
			max.Round(time.Millisecond),
			mean.Round(time.Millisecond),
			median.Round(time.Millisecond),
			p95.Round(time.Millisecond),
			p99.Round(time.Millisecond))
	}
	fmt.Println(strings.Repeat("-", 100))
}

// randomSubmission builds a random trade submission. Counterparty,
// assetClass and tradeDateTime are occasionally left absent, matching the
// optional semantics the read paths have to handle.
func randomSubmission(workerID int) *types.TradeSubmission {
	instrument := instruments[rand.Intn(len(instruments))]
	side := sides[rand.Intn(len(sides))]
	price := float64(rand.Intn(1000)+100) + rand.Float64()
	quantity := int64(rand.Intn(100) + 1)

	sub := &types.TradeSubmission{
		InstrumentID:   instrument.id,
		InstrumentName: instrument.name,
		TradeDetails: &types.TradeDetailsSubmission{
			BuySellIndicator: &side,
			Price:            &price,
			Quantity:         &quantity,
		},
		Trader: traders[(workerID+rand.Intn(len(traders)))%len(traders)],
	}

	if rand.Intn(10) > 1 {
		assetClass := assetClasses[rand.Intn(len(assetClasses))]
		sub.AssetClass = &assetClass
	}
	if rand.Intn(10) > 2 {
		counterparty := counterparties[rand.Intn(len(counterparties))]
		sub.Counterparty = &counterparty
	}
	if rand.Intn(10) > 1 {
		ts := time.Now().UTC().Add(-time.Duration(rand.Intn(72)) * time.Hour).Format(time.RFC3339)
		sub.TradeDateTime = &ts
	}

	return sub
}

// addTradesHTTP generates and submits random trades to the API
// Runs as a worker goroutine, sending assigned trade IDs to tradesChan
func addTradesHTTP(workerID, numTrades int, simClient *simulationClient, tradesChan chan<- int64) {
	for i := 0; i < numTrades; i++ {
		sub := randomSubmission(workerID)

		tradeID, err := simClient.addTrade(sub)
		if err != nil {
			log.Error().Err(err).
				Int("worker_id", workerID).
				Str("instrument_id", sub.InstrumentID).
				Msg("Failed to add trade")
			continue
		}

		tradesChan <- tradeID
		log.Info().
			Int("worker_id", workerID).
			Int64("trade_id", tradeID).
			Str("instrument_id", sub.InstrumentID).
			Str("side", *sub.TradeDetails.BuySellIndicator).
			Float64("price", *sub.TradeDetails.Price).
			Int64("quantity", *sub.TradeDetails.Quantity).
			Msg("Trade added")

		// Random sleep between submissions
		time.Sleep(time.Duration(rand.Intn(200)) * time.Millisecond)
	}
}

// main runs the trade records simulation
// It starts a local API server and simulates multiple concurrent clients
func main() {
	// Start the server in a goroutine
	go func() {
		if err := startServer(); err != nil {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for server to start
	time.Sleep(2 * time.Second)

	simClient := newSimulationClient()

	// Generate random number of trades to submit
	targetTrades := rand.Intn(maxTrades-minTrades) + minTrades
	log.Info().Int("target_trades", targetTrades).Msg("Starting simulation")

	// Channel to collect assigned trade IDs
	tradesChan := make(chan int64, targetTrades)
	var wg sync.WaitGroup

	// Start worker goroutines
	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			addTradesHTTP(workerID, targetTrades/numWorkers, simClient, tradesChan)
		}(i)
	}

	// Wait for all trades to be submitted
	wg.Wait()
	close(tradesChan)

	var tradeIDs []int64
	for tradeID := range tradesChan {
		tradeIDs = append(tradeIDs, tradeID)
	}

	log.Info().Int("trades_added", len(tradeIDs)).Msg("All trades added")

	stats := struct {
		TotalTrades int
		Fetched     int
		FailedGets  int
		TotalValue  float64
		StartTime   time.Time
		Instruments map[string]int
		Sides       map[string]int
	}{
		TotalTrades: len(tradeIDs),
		StartTime:   time.Now(),
		Instruments: make(map[string]int),
		Sides:       make(map[string]int),
	}

	// Read back every trade by id
	for _, tradeID := range tradeIDs {
		trade, err := simClient.getTrade(tradeID)
		if err != nil {
			log.Error().Err(err).Int64("trade_id", tradeID).Msg("Failed to get trade")
			stats.FailedGets++
			continue
		}
		stats.Fetched++
		stats.TotalValue += trade.TradeDetails.Price * float64(trade.TradeDetails.Quantity)
		stats.Instruments[trade.InstrumentID]++
		stats.Sides[trade.TradeDetails.BuySellIndicator]++
	}

	// Exercise search for every instrument, lower-cased to confirm the
	// case-insensitive match
	for _, instrument := range instruments {
		matches, err := simClient.searchTrades(strings.ToLower(instrument.id))
		if err != nil {
			log.Error().Err(err).Str("query", instrument.id).Msg("Search failed")
			continue
		}
		log.Info().
			Str("query", strings.ToLower(instrument.id)).
			Int("matches", len(matches)).
			Msg("Search completed")
	}

	// Page through the collection sorted by price
	page := 1
	for {
		result, err := simClient.listTrades(page, 25, "price", "desc")
		if err != nil {
			log.Error().Err(err).Int("page", page).Msg("List failed")
			break
		}
		log.Info().
			Int("page", result.Page).
			Int("returned", len(result.Trades)).
			Int("total", result.Total).
			Msg("Listed page")
		if len(result.Trades) == 0 || page*result.Limit >= result.Total {
			break
		}
		page++
	}

	// Print summary
	duration := time.Since(stats.StartTime)
	fmt.Println("\n" + strings.Repeat("=", 80))
	fmt.Println("🚀 TRADE RECORDS SIMULATION SUMMARY")
	fmt.Println(strings.Repeat("=", 80))

	fmt.Printf(`
📊 Trade Statistics
------------------
Total Trades:  %d
Fetched:       %d
Failed Gets:   %d
Total Value:   $%.2f
Duration:      %v

📈 Instrument Distribution
------------------------
`, stats.TotalTrades, stats.Fetched, stats.FailedGets, stats.TotalValue,
		duration.Round(time.Millisecond))

	// Print instrument distribution with simple ASCII bar chart
	maxInstrumentCount := 0
	for _, count := range stats.Instruments {
		if count > maxInstrumentCount {
			maxInstrumentCount = count
		}
	}

	for instrument, count := range stats.Instruments {
		barLength := int(float64(count) / float64(maxInstrumentCount) * 20)
		bar := strings.Repeat("█", barLength)
		fmt.Printf("%-6s: %s (%d)\n", instrument, bar, count)
	}

	fmt.Println("\n📉 Side Distribution")
	fmt.Println("------------------")
	for side, count := range stats.Sides {
		barLength := int(float64(count) / float64(stats.TotalTrades) * 20)
		bar := strings.Repeat("█", barLength)
		fmt.Printf("%-4s: %s (%d)\n", side, bar, count)
	}

	fmt.Println("\n" + strings.Repeat("=", 80))

	log.Info().
		Int("total_trades", stats.TotalTrades).
		Int("fetched", stats.Fetched).
		Float64("total_value", stats.TotalValue).
		Dur("duration", duration).
		Msg("Simulation completed")

	simClient.printPerformanceStats()
}

// startServer initializes and starts the trade records API server
func startServer() error {
	db, err := database.NewDatabase("simulation.db")
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	tradeStore, err := store.NewStore(db)
	if err != nil {
		return fmt.Errorf("failed to initialize trade store: %w", err)
	}

	tradeService := trades.NewService(tradeStore)
	tradeHandlers := trades.NewGinHandlers(tradeService)

	router := gin.Default()
	setupRoutes(router, tradeHandlers)

	return router.Run(":8080")
}

// setupRoutes configures all API endpoints and their handlers
func setupRoutes(router *gin.Engine, tradeHandlers *trades.GinHandlers) {
	v1 := router.Group("/api/v1")
	{
		records := v1.Group("/trades")
		{
			records.POST("", tradeHandlers.AddTradeHandler())
			records.GET("", tradeHandlers.ListTradesHandler())
			records.GET("/search", tradeHandlers.SearchTradesHandler())
			records.GET("/filter", tradeHandlers.FilterTradesHandler())
			records.GET("/:trade_id", tradeHandlers.GetTradeHandler())
		}
	}
}
