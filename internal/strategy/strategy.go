// Package strategy defines the contract the replay engine drives and
// the concrete trading strategies shipped with it. Each strategy is an
// independent type carrying its own state; there is no shared mutable
// base.
package strategy

import (
	"time"

	"github.com/quantlab-hq/futures-backtest/internal/types"
)

// Strategy consumes bars in timestamp order and emits trade signals.
// Signals are executed by the engine with look-ahead-safe pricing; a
// strategy that wants close-then-open must emit both signals in order.
type Strategy interface {
	Name() string
	// OnBar processes one bar and returns the signals it wants executed.
	// An error terminates the run; the engine never swallows it.
	OnBar(timestamp time.Time, bar types.MarketData) ([]types.Signal, error)
}

// DayBoundaryObserver is an optional capability. The engine calls
// OnDayStart before OnBar whenever the calendar date changes, so
// strategies with intraday accumulators reset in one place instead of
// re-deriving the date from every timestamp.
type DayBoundaryObserver interface {
	OnDayStart(date time.Time, bar types.MarketData)
}

// IndicatorProvider is an optional capability exposing the indicator
// series a strategy tracked, for external rendering only.
type IndicatorProvider interface {
	IndicatorData() []types.IndicatorSeries
}

// DefaultTradeAmount is the target notional per entry when a strategy
// does not size explicitly.
const DefaultTradeAmount = 1_000_000

// PositionVolume sizes a trade to the target notional at the given
// price.
func PositionVolume(price, amount float64) float64 {
	return amount / price
}

// TradingWindow bounds intraday trading: entries are allowed from Start
// (inclusive) until Close (exclusive), and positions are flattened at or
// after Close.
type TradingWindow struct {
	Start ClockTime
	Close ClockTime
}

// ClockTime is a time of day in minutes since midnight.
type ClockTime int

// Clock builds a ClockTime from an hour and minute.
func Clock(hour, minute int) ClockTime {
	return ClockTime(hour*60 + minute)
}

func clockOf(t time.Time) ClockTime {
	return Clock(t.Hour(), t.Minute())
}

// DefaultTradingWindow is the 09:31-14:55 session used by the intraday
// strategies.
func DefaultTradingWindow() TradingWindow {
	return TradingWindow{
		Start: Clock(9, 31),
		Close: Clock(14, 55),
	}
}

// In reports whether the timestamp falls inside the entry window.
func (w TradingWindow) In(timestamp time.Time) bool {
	c := clockOf(timestamp)

	return c >= w.Start && c < w.Close
}

// ShouldClose reports whether open positions must be flattened at this
// timestamp.
func (w TradingWindow) ShouldClose(timestamp time.Time) bool {
	return clockOf(timestamp) >= w.Close
}
