package strategy

import (
	"time"

	"github.com/quantlab-hq/futures-backtest/internal/types"
)

// Noop never trades. Useful as a baseline and for exercising the
// engine's empty-trade-log path.
type Noop struct{}

func NewNoop() *Noop {
	return &Noop{}
}

// Name implements Strategy.
func (n *Noop) Name() string {
	return "Noop"
}

// OnBar implements Strategy.
func (n *Noop) OnBar(timestamp time.Time, bar types.MarketData) ([]types.Signal, error) {
	return nil, nil
}
