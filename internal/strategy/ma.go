package strategy

import (
	"fmt"
	"time"

	"github.com/moznion/go-optional"

	"github.com/quantlab-hq/futures-backtest/internal/types"
)

// MAConfig parameterizes the moving-average cross strategy.
type MAConfig struct {
	ShortPeriod int     `yaml:"short_period" json:"short_period"`
	LongPeriod  int     `yaml:"long_period" json:"long_period"`
	TradeAmount float64 `yaml:"trade_amount" json:"trade_amount"`
}

// DefaultMAConfig returns the 5/20 cross.
func DefaultMAConfig() MAConfig {
	return MAConfig{
		ShortPeriod: 5,
		LongPeriod:  20,
		TradeAmount: DefaultTradeAmount,
	}
}

// MA trades the short/long moving-average cross: long when the short MA
// is above the long MA, short when below, reversing with a close+open
// signal pair.
type MA struct {
	config   MAConfig
	prices   []float64
	position int

	shortHistory []types.IndicatorPoint
	longHistory  []types.IndicatorPoint
}

func NewMA(config MAConfig) *MA {
	return &MA{
		config:       config,
		prices:       nil,
		position:     0,
		shortHistory: nil,
		longHistory:  nil,
	}
}

// Name implements Strategy.
func (m *MA) Name() string {
	return fmt.Sprintf("MA(%d,%d)", m.config.ShortPeriod, m.config.LongPeriod)
}

func (m *MA) movingAverage(period int) optional.Option[float64] {
	if len(m.prices) < period {
		return optional.None[float64]()
	}

	sum := 0.0
	for _, p := range m.prices[len(m.prices)-period:] {
		sum += p
	}

	return optional.Some(sum / float64(period))
}

// OnBar implements Strategy.
func (m *MA) OnBar(timestamp time.Time, bar types.MarketData) ([]types.Signal, error) {
	m.prices = append(m.prices, bar.Close)

	shortMA := m.movingAverage(m.config.ShortPeriod)
	longMA := m.movingAverage(m.config.LongPeriod)

	if shortMA.IsNone() || longMA.IsNone() {
		return nil, nil
	}

	short := shortMA.Unwrap()
	long := longMA.Unwrap()

	m.shortHistory = append(m.shortHistory, types.IndicatorPoint{Timestamp: timestamp, Value: short})
	m.longHistory = append(m.longHistory, types.IndicatorPoint{Timestamp: timestamp, Value: long})

	price := bar.Close
	volume := PositionVolume(price, m.config.TradeAmount)

	var signals []types.Signal

	switch {
	case short > long && m.position <= 0:
		if m.position < 0 {
			// Cover the short first.
			signals = append(signals, types.Signal{
				Direction: types.DirectionBuy,
				Volume:    volume,
				Price:     optional.Some(price),
			})
		}

		signals = append(signals, types.Signal{
			Direction: types.DirectionBuy,
			Volume:    volume,
			Price:     optional.Some(price),
		})
		m.position = 1

	case short < long && m.position >= 0:
		if m.position > 0 {
			signals = append(signals, types.Signal{
				Direction: types.DirectionSell,
				Volume:    volume,
				Price:     optional.Some(price),
			})
		}

		signals = append(signals, types.Signal{
			Direction: types.DirectionSell,
			Volume:    volume,
			Price:     optional.Some(price),
		})
		m.position = -1
	}

	return signals, nil
}

// IndicatorData implements IndicatorProvider.
func (m *MA) IndicatorData() []types.IndicatorSeries {
	if len(m.shortHistory) == 0 {
		return nil
	}

	return []types.IndicatorSeries{
		{
			Name:   fmt.Sprintf("MA%d", m.config.ShortPeriod),
			Points: m.shortHistory,
			Color:  "red",
			Alpha:  0.8,
		},
		{
			Name:   fmt.Sprintf("MA%d", m.config.LongPeriod),
			Points: m.longHistory,
			Color:  "blue",
			Alpha:  0.8,
		},
	}
}
