package trades

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tradevault/trades-api/internal/types"
)

func textTrade(counterparty *string) types.Trade {
	return types.Trade{
		Counterparty:   counterparty,
		InstrumentID:   "TSLA",
		InstrumentName: "Tesla Inc",
		Trader:         "jsmith",
	}
}

func TestMatchesQueryIsCaseInsensitive(t *testing.T) {
	trade := textTrade(nil)

	assert.True(t, MatchesQuery(trade, "tsla"))
	assert.True(t, MatchesQuery(trade, "TESLA"))
	assert.True(t, MatchesQuery(trade, "Smith"))
}

func TestMatchesQueryAcrossAllTextualFields(t *testing.T) {
	trade := textTrade(strPtr("Goldman"))

	assert.True(t, MatchesQuery(trade, "gold"))
	assert.False(t, MatchesQuery(trade, "citadel"))
}

func TestMatchesQuerySkipsAbsentCounterparty(t *testing.T) {
	trade := textTrade(nil)

	// Must neither match nor panic on the missing field.
	assert.False(t, MatchesQuery(trade, "goldman"))
}

func TestEmptyQueryMatchesAll(t *testing.T) {
	assert.True(t, MatchesQuery(textTrade(nil), ""))
	assert.True(t, MatchesQuery(textTrade(strPtr("Goldman")), ""))
}

func TestCriteriaEmptyMatchesEverything(t *testing.T) {
	assert.True(t, Criteria{}.Matches(seedTrade(1, 100, "BUY")))
}

func TestCriteriaAssetClassCaseInsensitive(t *testing.T) {
	trade := seedTrade(1, 100, "BUY")
	trade.AssetClass = strPtr("Equity")

	assert.True(t, Criteria{AssetClass: strPtr("equity")}.Matches(trade))
	assert.False(t, Criteria{AssetClass: strPtr("Bond")}.Matches(trade))
}

func TestCriteriaAssetClassNeverMatchesAbsent(t *testing.T) {
	trade := seedTrade(1, 100, "BUY")

	assert.False(t, Criteria{AssetClass: strPtr("Equity")}.Matches(trade))
}

func TestCriteriaPriceBoundsAreInclusive(t *testing.T) {
	trade := seedTrade(1, 100, "BUY")

	assert.True(t, Criteria{MinPrice: f64Ptr(100)}.Matches(trade))
	assert.True(t, Criteria{MaxPrice: f64Ptr(100)}.Matches(trade))
	assert.False(t, Criteria{MinPrice: f64Ptr(100.01)}.Matches(trade))
	assert.False(t, Criteria{MaxPrice: f64Ptr(99.99)}.Matches(trade))
}

func TestCriteriaDateBoundsAreInclusive(t *testing.T) {
	trade := seedTrade(1, 100, "BUY")
	trade.TradeDateTime = strPtr("2024-03-01T14:30:00Z")

	assert.True(t, Criteria{Start: strPtr("2024-03-01T14:30:00Z")}.Matches(trade))
	assert.True(t, Criteria{End: strPtr("2024-03-01T14:30:00Z")}.Matches(trade))
	assert.False(t, Criteria{Start: strPtr("2024-03-01T14:30:01Z")}.Matches(trade))
	assert.False(t, Criteria{End: strPtr("2024-03-01T14:29:59Z")}.Matches(trade))
}

func TestCriteriaDateBoundsNeverMatchAbsentTimestamp(t *testing.T) {
	trade := seedTrade(1, 100, "BUY")

	assert.False(t, Criteria{Start: strPtr("2020-01-01T00:00:00Z")}.Matches(trade))
	assert.False(t, Criteria{End: strPtr("2030-01-01T00:00:00Z")}.Matches(trade))
}

func TestCriteriaTradeTypeCaseInsensitive(t *testing.T) {
	trade := seedTrade(1, 100, "SELL")

	assert.True(t, Criteria{TradeType: strPtr("sell")}.Matches(trade))
	assert.False(t, Criteria{TradeType: strPtr("buy")}.Matches(trade))
}

func TestCriteriaAreANDed(t *testing.T) {
	trade := seedTrade(1, 100, "BUY")
	trade.AssetClass = strPtr("Equity")

	assert.True(t, Criteria{
		AssetClass: strPtr("Equity"),
		MinPrice:   f64Ptr(50),
		TradeType:  strPtr("buy"),
	}.Matches(trade))

	assert.False(t, Criteria{
		AssetClass: strPtr("Equity"),
		MinPrice:   f64Ptr(500),
	}.Matches(trade))
}
