package trades

import (
	"strings"

	"github.com/tradevault/trades-api/internal/types"
)

// Criteria is the set of optional filter parameters. A nil field imposes no
// constraint; present fields are combined with logical AND. Start and End
// are canonical ISO-8601 UTC timestamps, inclusive on both ends.
type Criteria struct {
	AssetClass *string
	Start      *string
	End        *string
	MinPrice   *float64
	MaxPrice   *float64
	TradeType  *string
}

// Matches reports whether the trade satisfies every present criterion.
// A trade with an absent assetClass or tradeDateTime never matches a
// criterion on that field.
func (c Criteria) Matches(t types.Trade) bool {
	if c.AssetClass != nil {
		if t.AssetClass == nil || !strings.EqualFold(*t.AssetClass, *c.AssetClass) {
			return false
		}
	}
	if c.Start != nil {
		if t.TradeDateTime == nil || *t.TradeDateTime < *c.Start {
			return false
		}
	}
	if c.End != nil {
		if t.TradeDateTime == nil || *t.TradeDateTime > *c.End {
			return false
		}
	}
	if c.MinPrice != nil && t.TradeDetails.Price < *c.MinPrice {
		return false
	}
	if c.MaxPrice != nil && t.TradeDetails.Price > *c.MaxPrice {
		return false
	}
	if c.TradeType != nil && !strings.EqualFold(t.TradeDetails.BuySellIndicator, *c.TradeType) {
		return false
	}
	return true
}

// MatchesQuery reports whether the query is a case-insensitive substring of
// any of the trade's textual fields: counterparty, instrumentId,
// instrumentName, trader. An absent counterparty simply cannot match. The
// empty query vacuously matches every trade.
func MatchesQuery(t types.Trade, query string) bool {
	q := strings.ToLower(query)
	if t.Counterparty != nil && strings.Contains(strings.ToLower(*t.Counterparty), q) {
		return true
	}
	return strings.Contains(strings.ToLower(t.InstrumentID), q) ||
		strings.Contains(strings.ToLower(t.InstrumentName), q) ||
		strings.Contains(strings.ToLower(t.Trader), q)
}
