package strategy

import (
	"fmt"
	"math"
	"time"

	"github.com/moznion/go-optional"

	"github.com/quantlab-hq/futures-backtest/internal/types"
)

// GridConfig parameterizes the grid strategy.
type GridConfig struct {
	// GridNum is the number of grid lines.
	GridNum int `yaml:"grid_num" json:"grid_num"`
	// PriceRangeRatio is the half-width of the grid band relative to the
	// anchor price. The grid is rebuilt when price escapes the band.
	PriceRangeRatio float64       `yaml:"price_range_ratio" json:"price_range_ratio"`
	TradeAmount     float64       `yaml:"trade_amount" json:"trade_amount"`
	Window          TradingWindow `yaml:"-" json:"-"`
}

// DefaultGridConfig returns a 10-line grid over a +-2% band.
func DefaultGridConfig() GridConfig {
	return GridConfig{
		GridNum:         10,
		PriceRangeRatio: 0.02,
		TradeAmount:     DefaultTradeAmount,
		Window:          DefaultTradingWindow(),
	}
}

// Grid sells when price crosses a grid line upward and buys when it
// crosses one downward, one unit of exposure per line.
type Grid struct {
	config GridConfig

	grids     []float64
	gridState []int // -1 short, 0 flat, +1 long per grid line
	anchor    float64
	lastPrice float64

	history []types.IndicatorPoint
}

func NewGrid(config GridConfig) *Grid {
	return &Grid{
		config:    config,
		grids:     nil,
		gridState: nil,
		anchor:    0,
		lastPrice: 0,
		history:   nil,
	}
}

// Name implements Strategy.
func (g *Grid) Name() string {
	return fmt.Sprintf("Grid(%d,%.3f)", g.config.GridNum, g.config.PriceRangeRatio)
}

// initializeGrids rebuilds the evenly spaced grid band around the
// anchor price and resets every line to flat.
func (g *Grid) initializeGrids(price float64) {
	g.anchor = price
	priceRange := price * g.config.PriceRangeRatio

	g.grids = make([]float64, g.config.GridNum)
	g.gridState = make([]int, g.config.GridNum)

	low := price - priceRange
	high := price + priceRange

	// A single-line grid collapses to the band's lower bound.
	step := 0.0
	if g.config.GridNum > 1 {
		step = (high - low) / float64(g.config.GridNum-1)
	}

	for i := range g.grids {
		g.grids[i] = low + step*float64(i)
	}
}

// OnBar implements Strategy.
func (g *Grid) OnBar(timestamp time.Time, bar types.MarketData) ([]types.Signal, error) {
	price := bar.Close

	if g.anchor == 0 {
		g.initializeGrids(price)
		g.lastPrice = price

		return nil, nil
	}

	if g.config.Window.ShouldClose(timestamp) {
		return g.closeAll(price), nil
	}

	// Rebuild the band when price escapes it.
	if math.Abs(price-g.anchor)/g.anchor > g.config.PriceRangeRatio {
		g.initializeGrids(price)
	}

	var signals []types.Signal
	if g.config.Window.In(timestamp) {
		signals = g.crossingSignals(price)
	}

	g.lastPrice = price
	g.history = append(g.history, types.IndicatorPoint{Timestamp: timestamp, Value: g.anchor})

	return signals, nil
}

// crossingSignals emits one signal per grid line crossed since the
// previous bar.
func (g *Grid) crossingSignals(price float64) []types.Signal {
	volume := PositionVolume(price, g.config.TradeAmount)

	var signals []types.Signal

	for i, gridPrice := range g.grids {
		// Upward crossing: sell the line.
		if g.lastPrice < gridPrice && gridPrice <= price && g.gridState[i] >= 0 {
			signals = append(signals, types.Signal{
				Direction: types.DirectionSell,
				Volume:    volume,
				Price:     optional.Some(price),
			})
			g.gridState[i] = -1

			continue
		}

		// Downward crossing: buy the line.
		if price <= gridPrice && gridPrice < g.lastPrice && g.gridState[i] <= 0 {
			signals = append(signals, types.Signal{
				Direction: types.DirectionBuy,
				Volume:    volume,
				Price:     optional.Some(price),
			})
			g.gridState[i] = 1
		}
	}

	return signals
}

// closeAll flattens every grid line at the session close.
func (g *Grid) closeAll(price float64) []types.Signal {
	var signals []types.Signal

	for i, state := range g.gridState {
		if state == 0 {
			continue
		}

		signals = append(signals, types.Signal{
			Direction: types.Direction(-state),
			Volume:    PositionVolume(price, g.config.TradeAmount),
			Price:     optional.Some(price),
		})
		g.gridState[i] = 0
	}

	return signals
}

// IndicatorData implements IndicatorProvider.
func (g *Grid) IndicatorData() []types.IndicatorSeries {
	if len(g.history) == 0 {
		return nil
	}

	return []types.IndicatorSeries{
		{
			Name:   "Grid anchor",
			Points: g.history,
			Color:  "gray",
			Alpha:  0.3,
		},
	}
}
