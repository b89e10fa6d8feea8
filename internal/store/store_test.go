package store

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tradevault/trades-api/internal/types"
)

type memPersister struct {
	trades   []types.Trade
	failSave bool
	saves    int
}

func (m *memPersister) Load() ([]types.Trade, error) {
	return m.trades, nil
}

func (m *memPersister) SaveAll(trades []types.Trade) error {
	if m.failSave {
		return errors.New("disk full")
	}
	m.saves++
	m.trades = trades
	return nil
}

func newTrade(instrumentID string) types.Trade {
	return types.Trade{
		InstrumentID:   instrumentID,
		InstrumentName: instrumentID + " Inc",
		TradeDetails: types.TradeDetails{
			BuySellIndicator: types.SideBuy,
			Price:            100,
			Quantity:         10,
		},
		Trader: "jdoe",
	}
}

func TestAppendAssignsFirstID(t *testing.T) {
	s, err := NewStore(&memPersister{})
	require.NoError(t, err)

	trade, err := s.Append(newTrade("TSLA"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), trade.TradeID)
}

func TestAppendAssignsMaxPlusOne(t *testing.T) {
	p := &memPersister{trades: []types.Trade{
		{TradeID: 3, InstrumentID: "AAPL"},
		{TradeID: 7, InstrumentID: "AMZN"},
	}}
	s, err := NewStore(p)
	require.NoError(t, err)

	trade, err := s.Append(newTrade("TSLA"))
	require.NoError(t, err)
	assert.Equal(t, int64(8), trade.TradeID)
	assert.Equal(t, 1, p.saves)
}

func TestAllReturnsIdenticalSnapshotsWithoutAppend(t *testing.T) {
	p := &memPersister{trades: []types.Trade{
		{TradeID: 1, InstrumentID: "AAPL"},
		{TradeID: 2, InstrumentID: "TSLA"},
	}}
	s, err := NewStore(p)
	require.NoError(t, err)

	first := s.All()
	second := s.All()
	assert.Equal(t, first, second)
}

func TestAllSnapshotDoesNotObserveLaterAppends(t *testing.T) {
	s, err := NewStore(&memPersister{})
	require.NoError(t, err)

	before := s.All()
	_, err = s.Append(newTrade("TSLA"))
	require.NoError(t, err)

	assert.Empty(t, before)
	assert.Len(t, s.All(), 1)
}

func TestAppendRollsBackOnPersistFailure(t *testing.T) {
	p := &memPersister{failSave: true}
	s, err := NewStore(p)
	require.NoError(t, err)

	_, err = s.Append(newTrade("TSLA"))
	require.Error(t, err)
	assert.Empty(t, s.All(), "failed append must not be visible")

	// Once persistence recovers, the same id is assigned again.
	p.failSave = false
	trade, err := s.Append(newTrade("TSLA"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), trade.TradeID)
}

func TestByID(t *testing.T) {
	p := &memPersister{trades: []types.Trade{
		{TradeID: 1, InstrumentID: "AAPL"},
		{TradeID: 2, InstrumentID: "TSLA"},
	}}
	s, err := NewStore(p)
	require.NoError(t, err)

	found := s.ByID(2)
	require.NotNil(t, found)
	assert.Equal(t, "TSLA", found.InstrumentID)

	assert.Nil(t, s.ByID(99))
}
