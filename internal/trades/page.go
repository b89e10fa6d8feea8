package trades

import "github.com/tradevault/trades-api/internal/types"

// Paginate slices the given trades into the requested page. Pages past the
// end yield an empty slice rather than an error; non-positive page or limit
// is rejected.
func Paginate(trades []types.Trade, page, limit int) ([]types.Trade, error) {
	if page < 1 || limit < 1 {
		return nil, types.ErrInvalidPagination
	}

	start := (page - 1) * limit
	if start >= len(trades) {
		return []types.Trade{}, nil
	}

	end := start + limit
	if end > len(trades) {
		end = len(trades)
	}
	return trades[start:end], nil
}

// TotalCount is the pre-pagination size of the result set, exposed for
// response metadata.
func TotalCount(trades []types.Trade) int {
	return len(trades)
}
