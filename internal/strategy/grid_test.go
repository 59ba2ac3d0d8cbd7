package strategy

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantlab-hq/futures-backtest/internal/types"
)

func gridStrategy() *Grid {
	return NewGrid(GridConfig{
		GridNum:         5,
		PriceRangeRatio: 0.02,
		TradeAmount:     1000,
		Window:          DefaultTradingWindow(),
	})
}

func TestGridInitialization(t *testing.T) {
	g := gridStrategy()

	ts := sessionTime(9, 31)
	signals, err := g.OnBar(ts, barAt(ts, 100, 100, 100, 100, 100))
	require.NoError(t, err)
	assert.Empty(t, signals)

	// Evenly spaced over [98, 102].
	require.Len(t, g.grids, 5)
	assert.InDelta(t, 98.0, g.grids[0], 1e-9)
	assert.InDelta(t, 100.0, g.grids[2], 1e-9)
	assert.InDelta(t, 102.0, g.grids[4], 1e-9)
}

func TestGridSingleLine(t *testing.T) {
	g := NewGrid(GridConfig{
		GridNum:         1,
		PriceRangeRatio: 0.02,
		TradeAmount:     1000,
		Window:          DefaultTradingWindow(),
	})

	ts := sessionTime(9, 31)
	_, err := g.OnBar(ts, barAt(ts, 100, 100, 100, 100, 100))
	require.NoError(t, err)

	// The lone line sits at the band's lower bound.
	require.Len(t, g.grids, 1)
	assert.InDelta(t, 98.0, g.grids[0], 1e-9)
	assert.False(t, math.IsNaN(g.grids[0]))

	// Crossing it still trades.
	ts2 := sessionTime(9, 32)
	signals, err := g.OnBar(ts2, barAt(ts2, 98, 98, 98, 98, 100))
	require.NoError(t, err)
	require.Len(t, signals, 1)
	assert.Equal(t, types.DirectionBuy, signals[0].Direction)
}

func TestGridUpwardCrossingSells(t *testing.T) {
	g := gridStrategy()

	ts1 := sessionTime(9, 31)
	_, err := g.OnBar(ts1, barAt(ts1, 100, 100, 100, 100, 100))
	require.NoError(t, err)

	// Crosses the 101 line only.
	ts2 := sessionTime(9, 32)
	signals, err := g.OnBar(ts2, barAt(ts2, 101.5, 101.5, 101.5, 101.5, 100))
	require.NoError(t, err)
	require.Len(t, signals, 1)
	assert.Equal(t, types.DirectionSell, signals[0].Direction)
}

func TestGridDownwardCrossingBuys(t *testing.T) {
	g := gridStrategy()

	ts1 := sessionTime(9, 31)
	_, err := g.OnBar(ts1, barAt(ts1, 100, 100, 100, 100, 100))
	require.NoError(t, err)

	ts2 := sessionTime(9, 32)
	_, err = g.OnBar(ts2, barAt(ts2, 101.5, 101.5, 101.5, 101.5, 100))
	require.NoError(t, err)

	// Falls back through the 101 and 100 lines.
	ts3 := sessionTime(9, 33)
	signals, err := g.OnBar(ts3, barAt(ts3, 99.2, 99.2, 99.2, 99.2, 100))
	require.NoError(t, err)
	require.Len(t, signals, 2)
	assert.Equal(t, types.DirectionBuy, signals[0].Direction)
	assert.Equal(t, types.DirectionBuy, signals[1].Direction)
}

func TestGridReinitializesOutsideBand(t *testing.T) {
	g := gridStrategy()

	ts1 := sessionTime(9, 31)
	_, err := g.OnBar(ts1, barAt(ts1, 100, 100, 100, 100, 100))
	require.NoError(t, err)

	// 103 is 3% above the anchor; the band rebuilds around it.
	ts2 := sessionTime(9, 32)
	_, err = g.OnBar(ts2, barAt(ts2, 103, 103, 103, 103, 100))
	require.NoError(t, err)
	assert.InDelta(t, 103.0, g.anchor, 1e-9)
	for _, state := range g.gridState {
		assert.Zero(t, state)
	}
}

func TestGridFlattensAtSessionClose(t *testing.T) {
	g := gridStrategy()

	ts1 := sessionTime(9, 31)
	_, err := g.OnBar(ts1, barAt(ts1, 100, 100, 100, 100, 100))
	require.NoError(t, err)

	ts2 := sessionTime(9, 32)
	_, err = g.OnBar(ts2, barAt(ts2, 101.5, 101.5, 101.5, 101.5, 100))
	require.NoError(t, err)

	// One line is short; the close buys it back.
	ts3 := sessionTime(14, 55)
	signals, err := g.OnBar(ts3, barAt(ts3, 101, 101, 101, 101, 100))
	require.NoError(t, err)
	require.Len(t, signals, 1)
	assert.Equal(t, types.DirectionBuy, signals[0].Direction)

	ts4 := sessionTime(14, 56)
	signals, err = g.OnBar(ts4, barAt(ts4, 101, 101, 101, 101, 100))
	require.NoError(t, err)
	assert.Empty(t, signals)
}
