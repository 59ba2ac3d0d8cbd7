package strategy

import (
	"time"

	"github.com/moznion/go-optional"

	"github.com/quantlab-hq/futures-backtest/internal/types"
)

// DailyReturnConfig parameterizes the daily-return fade strategy.
type DailyReturnConfig struct {
	// Threshold is the absolute intraday return that triggers an entry.
	Threshold float64 `yaml:"threshold" json:"threshold"`
	// EntryTime is the time of day the entry decision is made.
	EntryTime   ClockTime `yaml:"-" json:"-"`
	TradeAmount float64   `yaml:"trade_amount" json:"trade_amount"`
}

// DefaultDailyReturnConfig decides at 14:50 with a +-2% threshold.
func DefaultDailyReturnConfig() DailyReturnConfig {
	return DailyReturnConfig{
		Threshold:   0.02,
		EntryTime:   Clock(14, 50),
		TradeAmount: DefaultTradeAmount,
	}
}

// DailyReturn fades large intraday moves: near the close it shorts days
// that ran up more than the threshold from the open, goes long days that
// sold off more, and stays flat otherwise.
type DailyReturn struct {
	config DailyReturnConfig

	dayOpen  float64
	decided  bool
	position int

	history []types.IndicatorPoint
}

func NewDailyReturn(config DailyReturnConfig) *DailyReturn {
	return &DailyReturn{
		config:   config,
		dayOpen:  0,
		decided:  false,
		position: 0,
		history:  nil,
	}
}

// Name implements Strategy.
func (d *DailyReturn) Name() string {
	return "DailyReturn"
}

// OnDayStart implements DayBoundaryObserver.
func (d *DailyReturn) OnDayStart(date time.Time, bar types.MarketData) {
	d.dayOpen = bar.Open
	d.decided = false
}

// OnBar implements Strategy.
func (d *DailyReturn) OnBar(timestamp time.Time, bar types.MarketData) ([]types.Signal, error) {
	if d.dayOpen == 0 {
		return nil, nil
	}

	dailyReturn := bar.Close/d.dayOpen - 1
	d.history = append(d.history, types.IndicatorPoint{Timestamp: timestamp, Value: dailyReturn})

	// One decision per day, at or after the entry time.
	if d.decided || clockOf(timestamp) < d.config.EntryTime {
		return nil, nil
	}

	d.decided = true

	target := 0

	switch {
	case dailyReturn > d.config.Threshold:
		target = -1
	case dailyReturn < -d.config.Threshold:
		target = 1
	}

	price := bar.Close
	volume := PositionVolume(price, d.config.TradeAmount)

	var signals []types.Signal

	// A carried position is always closed first, even when the new target
	// points the same way; the re-entry is a fresh pair of trades.
	if d.position != 0 {
		signals = append(signals, types.Signal{
			Direction: types.Direction(-d.position),
			Volume:    volume,
			Price:     optional.Some(price),
		})
	}

	if target != 0 {
		signals = append(signals, types.Signal{
			Direction: types.Direction(target),
			Volume:    volume,
			Price:     optional.Some(price),
		})
	}

	d.position = target

	return signals, nil
}

// IndicatorData implements IndicatorProvider.
func (d *DailyReturn) IndicatorData() []types.IndicatorSeries {
	if len(d.history) == 0 {
		return nil
	}

	threshold := make([]types.IndicatorPoint, len(d.history))
	for i, p := range d.history {
		threshold[i] = types.IndicatorPoint{Timestamp: p.Timestamp, Value: d.config.Threshold}
	}

	return []types.IndicatorSeries{
		{
			Name:   "Daily return",
			Points: d.history,
			Color:  "green",
			Alpha:  0.8,
		},
		{
			Name:   "Threshold",
			Points: threshold,
			Color:  "gray",
			Alpha:  0.3,
		},
	}
}
