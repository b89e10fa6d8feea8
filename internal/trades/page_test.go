package trades

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tradevault/trades-api/internal/types"
)

func nTrades(n int) []types.Trade {
	trades := make([]types.Trade, 0, n)
	for i := 1; i <= n; i++ {
		trades = append(trades, seedTrade(int64(i), float64(i), "BUY"))
	}
	return trades
}

func TestPaginateFirstPage(t *testing.T) {
	page, err := Paginate(nTrades(5), 1, 2)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2}, idsOf(page))
}

func TestPaginateLastPartialPage(t *testing.T) {
	page, err := Paginate(nTrades(5), 3, 2)
	require.NoError(t, err)
	assert.Equal(t, []int64{5}, idsOf(page))
}

func TestPaginateOutOfRangePageIsEmptyNotError(t *testing.T) {
	page, err := Paginate(nTrades(5), 100, 10)
	require.NoError(t, err)
	assert.Empty(t, page)
}

func TestPaginateRejectsNonPositiveParameters(t *testing.T) {
	_, err := Paginate(nTrades(5), 0, 10)
	assert.ErrorIs(t, err, types.ErrInvalidPagination)

	_, err = Paginate(nTrades(5), 1, 0)
	assert.ErrorIs(t, err, types.ErrInvalidPagination)

	_, err = Paginate(nTrades(5), -1, -1)
	assert.ErrorIs(t, err, types.ErrInvalidPagination)
}

func TestTotalCount(t *testing.T) {
	assert.Equal(t, 5, TotalCount(nTrades(5)))
	assert.Equal(t, 0, TotalCount(nil))
}
