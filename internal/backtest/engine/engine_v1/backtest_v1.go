// Package engine implements the v1 backtest engine: a sequential
// replay of minute bars through a strategy, with dominant-contract roll
// handling, look-ahead-safe signal execution, and post-hoc accounting
// rebuilt from the trade log.
package engine

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/moznion/go-optional"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	backtest "github.com/quantlab-hq/futures-backtest/internal/backtest/engine"
	"github.com/quantlab-hq/futures-backtest/internal/datasource"
	"github.com/quantlab-hq/futures-backtest/internal/logger"
	"github.com/quantlab-hq/futures-backtest/internal/strategy"
	"github.com/quantlab-hq/futures-backtest/internal/types"
	"github.com/quantlab-hq/futures-backtest/pkg/errors"
)

type BacktestEngineV1 struct {
	config        BacktestEngineV1Config
	strategy      strategy.Strategy
	source        datasource.BarSource
	resultsFolder string
	log           *logger.Logger
	state         *BacktestState
	result        optional.Option[types.BacktestResult]
}

func NewBacktestEngineV1() backtest.Engine {
	return &BacktestEngineV1{
		config:        EmptyConfig(),
		strategy:      nil,
		source:        nil,
		resultsFolder: "",
		log:           nil,
		state:         nil,
		result:        optional.None[types.BacktestResult](),
	}
}

// Initialize implements engine.Engine.
func (b *BacktestEngineV1) Initialize(config string) error {
	if err := yaml.Unmarshal([]byte(config), &b.config); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "failed to parse engine configuration", err)
	}

	b.config.ApplyDefaults()

	if err := b.config.Validate(); err != nil {
		return err
	}

	var loggerError error

	b.log, loggerError = logger.NewLogger()
	if loggerError != nil {
		return loggerError
	}

	state, err := NewBacktestState(b.log)
	if err != nil {
		return err
	}

	if err := state.Initialize(); err != nil {
		return err
	}

	b.state = state
	b.log.Debug("Backtest engine initialized",
		zap.String("symbol", b.config.Symbol),
		zap.Float64("initial_capital", b.config.InitialCapital),
		zap.Float64("commission_rate", b.config.CommissionRate),
	)

	return nil
}

// SetDataSource implements engine.Engine.
func (b *BacktestEngineV1) SetDataSource(source datasource.BarSource) error {
	b.source = source

	return nil
}

// LoadStrategy implements engine.Engine.
func (b *BacktestEngineV1) LoadStrategy(s strategy.Strategy) error {
	b.strategy = s

	if b.log != nil {
		b.log.Debug("Strategy loaded", zap.String("strategy", s.Name()))
	}

	return nil
}

// SetResultsFolder implements engine.Engine.
func (b *BacktestEngineV1) SetResultsFolder(folder string) error {
	b.resultsFolder = folder

	return nil
}

// GetConfigSchema implements engine.Engine.
func (b *BacktestEngineV1) GetConfigSchema() (string, error) {
	return b.config.GenerateSchemaJSON()
}

// Results implements engine.Engine.
func (b *BacktestEngineV1) Results() (types.BacktestResult, error) {
	if b.result.IsNone() {
		return types.BacktestResult{}, errors.New(errors.ErrCodeBacktestNotRun, "backtest has not been run")
	}

	return b.result.Unwrap(), nil
}

func (b *BacktestEngineV1) preRunCheck() error {
	if b.state == nil {
		return errors.New(errors.ErrCodeBacktestStateNil, "backtest state is not initialized")
	}

	if b.strategy == nil {
		return errors.New(errors.ErrCodeBacktestNoStrategy, "no strategy loaded")
	}

	if b.source == nil {
		return errors.New(errors.ErrCodeBacktestNoDatasource, "no data source set")
	}

	if b.resultsFolder == "" {
		return errors.New(errors.ErrCodeBacktestNoResultsDir, "no results folder set")
	}

	if b.config.StartTime.IsNone() || b.config.EndTime.IsNone() {
		return errors.New(errors.ErrCodeInvalidConfiguration, "start_time and end_time are required")
	}

	return nil
}

// Run implements engine.Engine.
func (b *BacktestEngineV1) Run(ctx context.Context, onProcessData optional.Option[backtest.OnProcessDataCallback]) error {
	if err := b.preRunCheck(); err != nil {
		return err
	}

	bars, err := b.loadBars()
	if err != nil {
		return err
	}

	b.log.Info("Starting backtest",
		zap.String("symbol", b.config.Symbol),
		zap.String("strategy", b.strategy.Name()),
		zap.Int("bars", len(bars)),
	)

	if err := b.replay(ctx, bars, onProcessData); err != nil {
		return err
	}

	trades, err := b.state.GetAllTrades()
	if err != nil {
		return err
	}

	ledger := BuildLedger(bars, trades, b.config.InitialCapital)
	result := BuildResult(b.config.Symbol, b.strategy.Name(), b.config.InitialCapital, trades, ledger)

	if err := b.writeArtifacts(result, ledger); err != nil {
		return err
	}

	b.result = optional.Some(result)
	b.log.Info("Backtest finished",
		zap.Float64("final_value", result.FinalValue),
		zap.Float64("total_return", result.TotalReturn),
		zap.Float64("total_commission", result.TotalCommission),
		zap.Int("trades", result.TradeCount),
		zap.Int("rolls", result.RollCount),
	)

	return nil
}

// loadBars selects the series by identifier kind: product codes get the
// stitched dominant-contract series, anything else a pinned contract.
func (b *BacktestEngineV1) loadBars() ([]types.MarketData, error) {
	start := b.config.StartTime.Unwrap()
	end := b.config.EndTime.Unwrap()

	if datasource.IsProductCode(b.config.Symbol) {
		return b.source.LoadDominant(b.config.Symbol, start, end)
	}

	return b.source.LoadContract(b.config.Symbol, start, end)
}

func (b *BacktestEngineV1) replay(ctx context.Context, bars []types.MarketData, onProcessData optional.Option[backtest.OnProcessDataCallback]) error {
	capital := b.config.InitialCapital
	position := 0.0
	currentSymbol := ""

	var lastBarTime time.Time

	total := len(bars)

	for i, bar := range bars {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		// The first bar establishes the instrument; later symbol changes
		// are rolls and happen before the strategy sees the bar.
		if currentSymbol != "" && bar.Symbol != currentSymbol && position != 0 {
			if err := b.roll(currentSymbol, bar, position); err != nil {
				return err
			}
		}

		currentSymbol = bar.Symbol

		if observer, ok := b.strategy.(strategy.DayBoundaryObserver); ok && !sameDay(lastBarTime, bar.Time) {
			year, month, day := bar.Time.Date()
			observer.OnDayStart(time.Date(year, month, day, 0, 0, 0, 0, bar.Time.Location()), bar)
		}

		lastBarTime = bar.Time

		signals, err := b.strategy.OnBar(bar.Time, bar)
		if err != nil {
			return errors.Wrapf(errors.ErrCodeStrategyRuntimeError, err, "strategy %s failed at %s", b.strategy.Name(), bar.Time)
		}

		if len(signals) > 0 {
			nextOpen := optional.None[float64]()
			if i+1 < total {
				nextOpen = optional.Some(bars[i+1].Open)
			}

			capital, position, err = b.execute(signals, bar, nextOpen, capital, position)
			if err != nil {
				return err
			}
		}

		if onProcessData.IsSome() {
			if err := (onProcessData.Unwrap())(i+1, total); err != nil {
				return err
			}
		}
	}

	return nil
}

// roll transfers the signed exposure from the outgoing instrument to
// the incoming one at the transition bar's close. Both legs pay
// commission. The sizing budget is untouched: the roll exchanges one
// instrument's exposure for another at the same price, and its costs
// surface in the reconstructed ledger.
func (b *BacktestEngineV1) roll(oldSymbol string, bar types.MarketData, position float64) error {
	sign := types.Sign(position)
	volume := math.Abs(position)

	closeLeg := types.NewTrade(bar.Time, oldSymbol, -sign, bar.Close, volume, b.config.CommissionRate, types.TradeKindRollClose)
	openLeg := types.NewTrade(bar.Time, bar.Symbol, sign, bar.Close, volume, b.config.CommissionRate, types.TradeKindRollOpen)

	b.log.Info("Rolling contract",
		zap.Time("time", bar.Time),
		zap.String("old_symbol", oldSymbol),
		zap.String("new_symbol", bar.Symbol),
		zap.Float64("position", position),
	)

	return b.state.RecordTrades(closeLeg, openLeg)
}

// execute fills the bar's signals at the next bar's open, falling back
// to the bar's own close on the final bar. Buys are clamped to the
// remaining sizing budget; sells never are.
func (b *BacktestEngineV1) execute(signals []types.Signal, bar types.MarketData, nextOpen optional.Option[float64], capital, position float64) (float64, float64, error) {
	trades := make([]types.Trade, 0, len(signals))

	for _, signal := range signals {
		if err := signal.Validate(); err != nil {
			return capital, position, err
		}

		price := bar.Close
		if nextOpen.IsSome() {
			price = nextOpen.Unwrap()
		}

		volume := signal.Volume
		if signal.Direction == types.DirectionBuy {
			// Commission can push the budget below zero; a drained
			// budget buys nothing rather than a negative quantity.
			volume = math.Min(volume, math.Max(0, capital/price))
		}

		trade := types.NewTrade(bar.Time, bar.Symbol, signal.Direction, price, volume, b.config.CommissionRate, types.TradeKindOrdinary)

		if signal.Price.IsSome() {
			b.log.Debug("Signal filled",
				zap.Time("time", bar.Time),
				zap.Float64("reference_price", signal.Price.Unwrap()),
				zap.Float64("fill_price", price),
			)
		}

		capital -= float64(trade.Direction)*trade.Cost + trade.Commission
		position += trade.PositionDelta()
		trades = append(trades, trade)
	}

	return capital, position, b.state.RecordTrades(trades...)
}

func (b *BacktestEngineV1) writeArtifacts(result types.BacktestResult, ledger []types.LedgerRow) error {
	if err := os.MkdirAll(b.resultsFolder, 0755); err != nil {
		return errors.Wrap(errors.ErrCodeBacktestNoResultsDir, "failed to create results folder", err)
	}

	if err := b.state.Write(b.resultsFolder, ledger); err != nil {
		return err
	}

	if err := types.WriteResult(filepath.Join(b.resultsFolder, "stats.yaml"), result); err != nil {
		return err
	}

	if b.config.WriteIndicators {
		if provider, ok := b.strategy.(strategy.IndicatorProvider); ok {
			if err := types.WriteIndicators(filepath.Join(b.resultsFolder, "indicators.yaml"), provider.IndicatorData()); err != nil {
				return err
			}
		}
	}

	return nil
}

// Close releases the engine's trade log.
func (b *BacktestEngineV1) Close() error {
	if b.state == nil {
		return nil
	}

	return b.state.Close()
}

func sameDay(a, b time.Time) bool {
	aYear, aMonth, aDay := a.Date()
	bYear, bMonth, bDay := b.Date()

	return aYear == bYear && aMonth == bMonth && aDay == bDay
}
