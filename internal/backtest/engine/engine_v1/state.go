package engine

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"time"

	"github.com/Masterminds/squirrel"
	_ "github.com/marcboeker/go-duckdb"
	"go.uber.org/zap"

	"github.com/quantlab-hq/futures-backtest/internal/logger"
	"github.com/quantlab-hq/futures-backtest/internal/types"
	"github.com/quantlab-hq/futures-backtest/pkg/errors"
)

const ledgerInsertChunk = 500

// BacktestState holds the append-only trade log in an in-memory duckdb
// database, so the log can be queried in order and exported as parquet
// together with the reconstructed ledger.
type BacktestState struct {
	db     *sql.DB
	logger *logger.Logger
	sq     squirrel.StatementBuilderType
}

func NewBacktestState(log *logger.Logger) (*BacktestState, error) {
	db, err := sql.Open("duckdb", ":memory:")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDataSourceUnavailable, "failed to open trade log database", err)
	}

	return &BacktestState{
		db:     db,
		logger: log,
		sq:     squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}, nil
}

// Initialize creates the trade log table. The seq column preserves
// execution order across trades sharing a timestamp.
func (b *BacktestState) Initialize() error {
	if _, err := b.db.Exec(`CREATE SEQUENCE IF NOT EXISTS trade_seq`); err != nil {
		return errors.Wrap(errors.ErrCodeQueryFailed, "failed to create trade sequence", err)
	}

	_, err := b.db.Exec(`
		CREATE TABLE IF NOT EXISTS trades (
			seq BIGINT DEFAULT nextval('trade_seq'),
			timestamp TIMESTAMP,
			symbol TEXT,
			direction INTEGER,
			price DOUBLE,
			volume DOUBLE,
			cost DOUBLE,
			commission DOUBLE,
			kind TEXT
		)
	`)
	if err != nil {
		return errors.Wrap(errors.ErrCodeQueryFailed, "failed to create trades table", err)
	}

	return nil
}

// RecordTrades appends executed trades to the log.
func (b *BacktestState) RecordTrades(trades ...types.Trade) error {
	if len(trades) == 0 {
		return nil
	}

	insert := b.sq.
		Insert("trades").
		Columns("timestamp", "symbol", "direction", "price", "volume", "cost", "commission", "kind")

	for _, t := range trades {
		insert = insert.Values(
			t.Timestamp, t.Symbol, int(t.Direction), t.Price, t.Volume,
			t.Cost, t.Commission, string(t.Kind),
		)
	}

	if _, err := insert.RunWith(b.db).Exec(); err != nil {
		return errors.Wrap(errors.ErrCodeQueryFailed, "failed to record trades", err)
	}

	return nil
}

// GetAllTrades returns the full log in execution order.
func (b *BacktestState) GetAllTrades() ([]types.Trade, error) {
	rows, err := b.sq.
		Select("timestamp", "symbol", "direction", "price", "volume", "cost", "commission", "kind").
		From("trades").
		OrderBy("seq ASC").
		RunWith(b.db).
		Query()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to query trades", err)
	}
	defer rows.Close()

	var trades []types.Trade

	for rows.Next() {
		var (
			trade     types.Trade
			timestamp time.Time
			direction int
			kind      string
		)

		if err := rows.Scan(
			&timestamp, &trade.Symbol, &direction, &trade.Price, &trade.Volume,
			&trade.Cost, &trade.Commission, &kind,
		); err != nil {
			return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to scan trade", err)
		}

		trade.Timestamp = timestamp.UTC()
		trade.Direction = types.Direction(direction)
		trade.Kind = types.TradeKind(kind)
		trades = append(trades, trade)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to read trades", err)
	}

	return trades, nil
}

// TradeCount returns the number of logged trades.
func (b *BacktestState) TradeCount() (int, error) {
	var count int

	err := b.sq.
		Select("COUNT(*)").
		From("trades").
		RunWith(b.db).
		QueryRow().
		Scan(&count)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeQueryFailed, "failed to count trades", err)
	}

	return count, nil
}

// Write exports the trade log and the reconstructed ledger as parquet
// files in the given folder.
func (b *BacktestState) Write(folder string, ledger []types.LedgerRow) error {
	tradesPath := filepath.Join(folder, "trades.parquet")

	_, err := b.db.Exec(fmt.Sprintf(
		`COPY (SELECT timestamp, symbol, direction, price, volume, cost, commission, kind
		 FROM trades ORDER BY seq ASC) TO '%s' (FORMAT PARQUET)`, tradesPath))
	if err != nil {
		return errors.Wrap(errors.ErrCodeQueryFailed, "failed to export trades", err)
	}

	if err := b.writeLedger(filepath.Join(folder, "ledger.parquet"), ledger); err != nil {
		return err
	}

	b.logger.Debug("Run artifacts written",
		zap.String("folder", folder),
		zap.Int("ledger_rows", len(ledger)),
	)

	return nil
}

func (b *BacktestState) writeLedger(path string, ledger []types.LedgerRow) error {
	if _, err := b.db.Exec(`DROP TABLE IF EXISTS ledger`); err != nil {
		return errors.Wrap(errors.ErrCodeQueryFailed, "failed to reset ledger table", err)
	}

	_, err := b.db.Exec(`
		CREATE TABLE ledger (
			time TIMESTAMP,
			close DOUBLE,
			position DOUBLE,
			position_value DOUBLE,
			cash DOUBLE,
			commission DOUBLE,
			cum_commission DOUBLE,
			total_value DOUBLE,
			pnl DOUBLE,
			net_value DOUBLE
		)
	`)
	if err != nil {
		return errors.Wrap(errors.ErrCodeQueryFailed, "failed to create ledger table", err)
	}

	for start := 0; start < len(ledger); start += ledgerInsertChunk {
		end := min(start+ledgerInsertChunk, len(ledger))

		insert := b.sq.
			Insert("ledger").
			Columns("time", "close", "position", "position_value", "cash",
				"commission", "cum_commission", "total_value", "pnl", "net_value")

		for _, row := range ledger[start:end] {
			insert = insert.Values(
				row.Time, row.Close, row.Position, row.PositionValue, row.Cash,
				row.Commission, row.CumCommission, row.TotalValue, row.PnL, row.NetValue,
			)
		}

		if _, err := insert.RunWith(b.db).Exec(); err != nil {
			return errors.Wrap(errors.ErrCodeQueryFailed, "failed to insert ledger rows", err)
		}
	}

	_, err = b.db.Exec(fmt.Sprintf(`COPY ledger TO '%s' (FORMAT PARQUET)`, path))
	if err != nil {
		return errors.Wrap(errors.ErrCodeQueryFailed, "failed to export ledger", err)
	}

	return nil
}

// Cleanup truncates the log so the state can run another backtest.
func (b *BacktestState) Cleanup() error {
	if _, err := b.db.Exec(`DELETE FROM trades`); err != nil {
		return errors.Wrap(errors.ErrCodeQueryFailed, "failed to clean up trades", err)
	}

	return nil
}

// Close releases the underlying database.
func (b *BacktestState) Close() error {
	return b.db.Close()
}
