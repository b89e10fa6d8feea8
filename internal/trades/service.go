package trades

import (
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/tradevault/trades-api/internal/store"
	"github.com/tradevault/trades-api/internal/types"
)

// Service exposes the trade record operations: ingestion, lookup, search,
// filter, and the combined list pipeline.
type Service struct {
	store *store.Store
}

// NewService creates a trade service backed by the given store.
func NewService(s *store.Store) *Service {
	return &Service{store: s}
}

// ListOptions are the sort/pagination parameters of the list operation.
type ListOptions struct {
	Page  int
	Limit int
	Sort  string
	Order string
}

// Add validates the submission, normalizes its timestamp, and appends it to
// the store with the next trade id. Validation happens before the store is
// touched, so a rejected submission never mutates anything.
func (s *Service) Add(sub *types.TradeSubmission) (types.Trade, error) {
	if err := validateSubmission(sub); err != nil {
		return types.Trade{}, err
	}

	trade := types.Trade{
		AssetClass:     sub.AssetClass,
		Counterparty:   sub.Counterparty,
		InstrumentID:   sub.InstrumentID,
		InstrumentName: sub.InstrumentName,
		TradeDetails: types.TradeDetails{
			BuySellIndicator: normalizeSide(*sub.TradeDetails.BuySellIndicator),
			Price:            *sub.TradeDetails.Price,
			Quantity:         *sub.TradeDetails.Quantity,
		},
		Trader: sub.Trader,
	}

	// An absent timestamp stays absent; it is never coerced to "now".
	if sub.TradeDateTime != nil {
		canonical, err := canonicalTimestamp(*sub.TradeDateTime)
		if err != nil {
			return types.Trade{}, types.NewValidationError("tradeDateTime", "must be an ISO-8601 timestamp")
		}
		trade.TradeDateTime = &canonical
	}

	persisted, err := s.store.Append(trade)
	if err != nil {
		return types.Trade{}, err
	}

	log.Info().
		Int64("trade_id", persisted.TradeID).
		Str("instrument_id", persisted.InstrumentID).
		Str("side", persisted.TradeDetails.BuySellIndicator).
		Msg("Trade recorded")

	return persisted, nil
}

// Get returns the trade with the given id, or nil when there is none.
// A missing trade is an empty result, not an error.
func (s *Service) Get(id int64) *types.Trade {
	return s.store.ByID(id)
}

// Search returns every trade whose textual fields contain the query,
// case-insensitively, in store order.
func (s *Service) Search(query string) []types.Trade {
	matched := make([]types.Trade, 0)
	for _, t := range s.store.All() {
		if MatchesQuery(t, query) {
			matched = append(matched, t)
		}
	}
	return matched
}

// Filter returns every trade matching the criteria, in store order. Start
// and End are normalized to the canonical timestamp form before comparison.
func (s *Service) Filter(criteria Criteria) ([]types.Trade, error) {
	normalized, err := normalizeCriteria(criteria)
	if err != nil {
		return nil, err
	}

	matched := make([]types.Trade, 0)
	for _, t := range s.store.All() {
		if normalized.Matches(t) {
			matched = append(matched, t)
		}
	}
	return matched, nil
}

// List runs filter, then sort, then pagination, in that order: pages
// reflect the global ordering of the whole filtered set. Total counts the
// filtered set before pagination.
func (s *Service) List(criteria Criteria, opts ListOptions) (*types.ListResult, error) {
	filtered, err := s.Filter(criteria)
	if err != nil {
		return nil, err
	}

	sorted := filtered
	if opts.Sort != "" {
		if sorted, err = SortTrades(filtered, opts.Sort, opts.Order); err != nil {
			return nil, err
		}
	} else if opts.Order != "" && opts.Order != OrderAsc && opts.Order != OrderDesc {
		return nil, types.NewValidationError("order", "must be asc or desc")
	}

	page, err := Paginate(sorted, opts.Page, opts.Limit)
	if err != nil {
		return nil, err
	}

	return &types.ListResult{
		Trades: page,
		Page:   opts.Page,
		Limit:  opts.Limit,
		Total:  TotalCount(filtered),
	}, nil
}

func validateSubmission(sub *types.TradeSubmission) error {
	switch {
	case sub.InstrumentID == "":
		return types.NewValidationError("instrumentId", "is required")
	case sub.InstrumentName == "":
		return types.NewValidationError("instrumentName", "is required")
	case sub.Trader == "":
		return types.NewValidationError("trader", "is required")
	case sub.TradeDetails == nil:
		return types.NewValidationError("tradeDetails", "is required")
	case sub.TradeDetails.BuySellIndicator == nil:
		return types.NewValidationError("tradeDetails.buySellIndicator", "is required")
	case sub.TradeDetails.Price == nil:
		return types.NewValidationError("tradeDetails.price", "is required")
	case sub.TradeDetails.Quantity == nil:
		return types.NewValidationError("tradeDetails.quantity", "is required")
	}

	side := normalizeSide(*sub.TradeDetails.BuySellIndicator)
	if side != types.SideBuy && side != types.SideSell {
		return types.NewValidationError("tradeDetails.buySellIndicator", "must be BUY or SELL")
	}
	return nil
}

func normalizeSide(side string) string {
	return strings.ToUpper(side)
}

// canonicalTimestamp parses an ISO-8601 timestamp and reformats it as the
// canonical UTC form all stored values use, so range filters can compare
// timestamps lexicographically.
func canonicalTimestamp(value string) (string, error) {
	ts, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return "", err
	}
	return ts.UTC().Format(types.TimestampLayout), nil
}

func normalizeCriteria(criteria Criteria) (Criteria, error) {
	if criteria.Start != nil {
		canonical, err := canonicalTimestamp(*criteria.Start)
		if err != nil {
			return Criteria{}, types.NewValidationError("start", "must be an ISO-8601 timestamp")
		}
		criteria.Start = &canonical
	}
	if criteria.End != nil {
		canonical, err := canonicalTimestamp(*criteria.End)
		if err != nil {
			return Criteria{}, types.NewValidationError("end", "must be an ISO-8601 timestamp")
		}
		criteria.End = &canonical
	}
	return criteria, nil
}
