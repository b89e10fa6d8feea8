package trades

import (
	"fmt"
	"sort"
	"strings"

	"github.com/tradevault/trades-api/internal/types"
)

// Sort directions accepted by the list endpoint.
const (
	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// sortValue is a comparable view of one sortable field on a trade. Absent
// values carry present=false and always order after present ones,
// regardless of direction.
type sortValue struct {
	str     string
	num     float64
	numeric bool
	present bool
}

func stringValue(s string) sortValue { return sortValue{str: s, present: true} }

func numericValue(n float64) sortValue { return sortValue{num: n, numeric: true, present: true} }

func optionalValue(s *string) sortValue {
	if s == nil {
		return sortValue{}
	}
	return stringValue(*s)
}

// sortFields enumerates every accepted sort key. Nested tradeDetails fields
// are addressed by their flattened name; a tradeDetails. prefix is also
// accepted. Unknown names are rejected at the boundary instead of being
// looked up reflectively.
var sortFields = map[string]func(types.Trade) sortValue{
	"tradeId":          func(t types.Trade) sortValue { return numericValue(float64(t.TradeID)) },
	"assetClass":       func(t types.Trade) sortValue { return optionalValue(t.AssetClass) },
	"counterparty":     func(t types.Trade) sortValue { return optionalValue(t.Counterparty) },
	"instrumentId":     func(t types.Trade) sortValue { return stringValue(t.InstrumentID) },
	"instrumentName":   func(t types.Trade) sortValue { return stringValue(t.InstrumentName) },
	"tradeDateTime":    func(t types.Trade) sortValue { return optionalValue(t.TradeDateTime) },
	"trader":           func(t types.Trade) sortValue { return stringValue(t.Trader) },
	"price":            func(t types.Trade) sortValue { return numericValue(t.TradeDetails.Price) },
	"quantity":         func(t types.Trade) sortValue { return numericValue(float64(t.TradeDetails.Quantity)) },
	"buySellIndicator": func(t types.Trade) sortValue { return stringValue(t.TradeDetails.BuySellIndicator) },
}

func resolveSortField(name string) (func(types.Trade) sortValue, error) {
	key := strings.TrimPrefix(name, "tradeDetails.")
	if accessor, ok := sortFields[key]; ok {
		return accessor, nil
	}
	return nil, fmt.Errorf("%w: %q", types.ErrInvalidSortField, name)
}

func (v sortValue) compare(other sortValue) int {
	switch {
	case v.numeric && other.numeric:
		if v.num < other.num {
			return -1
		}
		if v.num > other.num {
			return 1
		}
	default:
		if v.str < other.str {
			return -1
		}
		if v.str > other.str {
			return 1
		}
	}
	return 0
}

// SortTrades returns a stably sorted copy of trades ordered by the named
// field. The default direction is ascending; absent-valued records order
// last either way.
func SortTrades(trades []types.Trade, field, order string) ([]types.Trade, error) {
	accessor, err := resolveSortField(field)
	if err != nil {
		return nil, err
	}

	switch order {
	case "", OrderAsc, OrderDesc:
	default:
		return nil, types.NewValidationError("order", "must be asc or desc")
	}
	desc := order == OrderDesc

	out := make([]types.Trade, len(trades))
	copy(out, trades)

	sort.SliceStable(out, func(i, j int) bool {
		a, b := accessor(out[i]), accessor(out[j])
		if !a.present || !b.present {
			return a.present && !b.present
		}
		cmp := a.compare(b)
		if desc {
			cmp = -cmp
		}
		return cmp < 0
	})
	return out, nil
}
