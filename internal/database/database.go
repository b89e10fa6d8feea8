package database

import (
	"fmt"

	"github.com/tradevault/trades-api/internal/types"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// TradeRow is the persisted shape of a trade record. Nullable columns map
// to the optional fields of types.Trade.
type TradeRow struct {
	gorm.Model     `json:"-"`
	TradeID        int64 `gorm:"uniqueIndex"`
	AssetClass     *string
	Counterparty   *string
	InstrumentID   string
	InstrumentName string
	TradeDateTime  *string
	Side           string
	Price          float64
	Quantity       int64
	Trader         string
}

// Database persists the trade collection. The store rewrites the whole
// collection on every append, so the only operations needed are a full
// load and a full save.
type Database struct {
	db *gorm.DB
}

// NewDatabase opens (or creates) the SQLite database at path and runs
// migrations.
func NewDatabase(path string) (*Database, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.AutoMigrate(&TradeRow{}); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &Database{db: db}, nil
}

// Load returns every stored trade in trade-id order.
func (d *Database) Load() ([]types.Trade, error) {
	var rows []TradeRow
	if err := d.db.Order("trade_id asc").Find(&rows).Error; err != nil {
		return nil, err
	}

	trades := make([]types.Trade, 0, len(rows))
	for _, row := range rows {
		trades = append(trades, row.toTrade())
	}
	return trades, nil
}

// SaveAll replaces the stored collection with the given trades in a single
// transaction, so a failed save leaves the previous collection intact.
func (d *Database) SaveAll(trades []types.Trade) error {
	tx := d.db.Begin()
	if err := tx.Error; err != nil {
		return err
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(&TradeRow{}).Error; err != nil {
		tx.Rollback()
		return err
	}

	if len(trades) > 0 {
		rows := make([]TradeRow, 0, len(trades))
		for _, trade := range trades {
			rows = append(rows, fromTrade(trade))
		}
		if err := tx.Create(&rows).Error; err != nil {
			tx.Rollback()
			return err
		}
	}

	return tx.Commit().Error
}

func (r TradeRow) toTrade() types.Trade {
	return types.Trade{
		AssetClass:     r.AssetClass,
		Counterparty:   r.Counterparty,
		InstrumentID:   r.InstrumentID,
		InstrumentName: r.InstrumentName,
		TradeDateTime:  r.TradeDateTime,
		TradeDetails: types.TradeDetails{
			BuySellIndicator: r.Side,
			Price:            r.Price,
			Quantity:         r.Quantity,
		},
		TradeID: r.TradeID,
		Trader:  r.Trader,
	}
}

func fromTrade(t types.Trade) TradeRow {
	return TradeRow{
		TradeID:        t.TradeID,
		AssetClass:     t.AssetClass,
		Counterparty:   t.Counterparty,
		InstrumentID:   t.InstrumentID,
		InstrumentName: t.InstrumentName,
		TradeDateTime:  t.TradeDateTime,
		Side:           t.TradeDetails.BuySellIndicator,
		Price:          t.TradeDetails.Price,
		Quantity:       t.TradeDetails.Quantity,
		Trader:         t.Trader,
	}
}
