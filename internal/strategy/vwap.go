package strategy

import (
	"time"

	"github.com/moznion/go-optional"

	"github.com/quantlab-hq/futures-backtest/internal/types"
)

// VWAPConfig parameterizes the VWAP reversion strategy.
type VWAPConfig struct {
	TradeAmount float64       `yaml:"trade_amount" json:"trade_amount"`
	Window      TradingWindow `yaml:"-" json:"-"`
}

// DefaultVWAPConfig uses the default session window.
func DefaultVWAPConfig() VWAPConfig {
	return VWAPConfig{
		TradeAmount: DefaultTradeAmount,
		Window:      DefaultTradingWindow(),
	}
}

// VWAP goes long above the intraday volume-weighted average price and
// short below it, flattening before the session close. The VWAP
// accumulators reset on every day boundary.
type VWAP struct {
	config VWAPConfig

	priceVolumeSum float64
	volumeSum      float64
	position       int
	firstBarOfDay  bool

	history []types.IndicatorPoint
}

func NewVWAP(config VWAPConfig) *VWAP {
	return &VWAP{
		config:         config,
		priceVolumeSum: 0,
		volumeSum:      0,
		position:       0,
		firstBarOfDay:  true,
		history:        nil,
	}
}

// Name implements Strategy.
func (v *VWAP) Name() string {
	return "VWAP"
}

// OnDayStart implements DayBoundaryObserver.
func (v *VWAP) OnDayStart(date time.Time, bar types.MarketData) {
	v.priceVolumeSum = 0
	v.volumeSum = 0
	v.firstBarOfDay = true
	v.position = 0
}

func (v *VWAP) vwap() optional.Option[float64] {
	if v.volumeSum == 0 {
		return optional.None[float64]()
	}

	return optional.Some(v.priceVolumeSum / v.volumeSum)
}

// OnBar implements Strategy.
func (v *VWAP) OnBar(timestamp time.Time, bar types.MarketData) ([]types.Signal, error) {
	// Flatten at the session close before accumulating anything else.
	if v.config.Window.ShouldClose(timestamp) {
		return v.closeSignals(bar), nil
	}

	v.priceVolumeSum += bar.TypicalPrice() * bar.Volume
	v.volumeSum += bar.Volume

	current := v.vwap()
	if current.IsSome() {
		v.history = append(v.history, types.IndicatorPoint{Timestamp: timestamp, Value: current.Unwrap()})
	}

	// The first bar of a day seeds the accumulators but never trades.
	if v.firstBarOfDay {
		v.firstBarOfDay = false

		return nil, nil
	}

	if !v.config.Window.In(timestamp) || current.IsNone() {
		return nil, nil
	}

	price := bar.Close
	vwap := current.Unwrap()
	volume := PositionVolume(price, v.config.TradeAmount)

	var signals []types.Signal

	switch {
	case price > vwap && v.position <= 0:
		if v.position < 0 {
			signals = append(signals, types.Signal{Direction: types.DirectionBuy, Volume: volume, Price: optional.None[float64]()})
		}

		signals = append(signals, types.Signal{Direction: types.DirectionBuy, Volume: volume, Price: optional.None[float64]()})
		v.position = 1

	case price < vwap && v.position >= 0:
		if v.position > 0 {
			signals = append(signals, types.Signal{Direction: types.DirectionSell, Volume: volume, Price: optional.None[float64]()})
		}

		signals = append(signals, types.Signal{Direction: types.DirectionSell, Volume: volume, Price: optional.None[float64]()})
		v.position = -1
	}

	return signals, nil
}

func (v *VWAP) closeSignals(bar types.MarketData) []types.Signal {
	if v.position == 0 {
		return nil
	}

	signal := types.Signal{
		Direction: types.Direction(-v.position),
		Volume:    PositionVolume(bar.Close, v.config.TradeAmount),
		Price:     optional.Some(bar.Close),
	}
	v.position = 0

	return []types.Signal{signal}
}

// IndicatorData implements IndicatorProvider.
func (v *VWAP) IndicatorData() []types.IndicatorSeries {
	if len(v.history) == 0 {
		return nil
	}

	return []types.IndicatorSeries{
		{
			Name:   "VWAP",
			Points: v.history,
			Color:  "purple",
			Alpha:  0.8,
		},
	}
}
