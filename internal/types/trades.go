package types

// Buy/sell indicator values accepted on a trade submission.
const (
	SideBuy  = "BUY"
	SideSell = "SELL"
)

// TimestampLayout is the canonical ISO-8601 UTC form every stored
// tradeDateTime uses. Range filters compare these strings directly,
// which only works because all stored values share this layout.
const TimestampLayout = "2006-01-02T15:04:05Z"

// TradeDetails holds the price/quantity leg of a trade.
type TradeDetails struct {
	BuySellIndicator string  `json:"buySellIndicator"` // BUY or SELL
	Price            float64 `json:"price"`
	Quantity         int64   `json:"quantity"`
}

// Trade is a single immutable trade record. Optional fields are pointers:
// nil means the value was never supplied, which matters for search, filter
// and sort semantics (an absent field never matches and sorts last).
type Trade struct {
	AssetClass     *string      `json:"assetClass,omitempty"`
	Counterparty   *string      `json:"counterparty,omitempty"`
	InstrumentID   string       `json:"instrumentId"`
	InstrumentName string       `json:"instrumentName"`
	TradeDateTime  *string      `json:"tradeDateTime,omitempty"`
	TradeDetails   TradeDetails `json:"tradeDetails"`
	TradeID        int64        `json:"tradeId"`
	Trader         string       `json:"trader"`
}

// TradeDetailsSubmission mirrors TradeDetails with pointer fields so that
// a missing value can be told apart from a zero one during validation.
type TradeDetailsSubmission struct {
	BuySellIndicator *string  `json:"buySellIndicator"`
	Price            *float64 `json:"price"`
	Quantity         *int64   `json:"quantity"`
}

// TradeSubmission is an inbound trade payload. The trade id is assigned by
// the service, never by the caller.
type TradeSubmission struct {
	AssetClass     *string                 `json:"assetClass"`
	Counterparty   *string                 `json:"counterparty"`
	InstrumentID   string                  `json:"instrumentId"`
	InstrumentName string                  `json:"instrumentName"`
	TradeDateTime  *string                 `json:"tradeDateTime"`
	TradeDetails   *TradeDetailsSubmission `json:"tradeDetails"`
	Trader         string                  `json:"trader"`
}
