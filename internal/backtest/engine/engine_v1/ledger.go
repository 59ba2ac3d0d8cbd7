package engine

import (
	"github.com/quantlab-hq/futures-backtest/internal/types"
)

// BuildLedger reconstructs per-bar accounting by replaying the trade
// log against the bar timeline. It trusts only the log and the bars:
// the running capital the executor tracked during the replay never
// feeds in, so any divergence between the two is observable.
//
// Trades are applied at the bar whose time is the first at or after the
// trade's timestamp; every position is valued at that bar's own close.
// With no trades the ledger is flat at the initial capital.
func BuildLedger(bars []types.MarketData, trades []types.Trade, initialCapital float64) []types.LedgerRow {
	ledger := make([]types.LedgerRow, 0, len(bars))

	cash := initialCapital
	position := 0.0
	cumCommission := 0.0
	tradeIdx := 0

	for _, bar := range bars {
		commission := 0.0

		for tradeIdx < len(trades) && !trades[tradeIdx].Timestamp.After(bar.Time) {
			trade := trades[tradeIdx]
			position += trade.PositionDelta()
			cash += trade.CashDelta()
			commission += trade.Commission
			tradeIdx++
		}

		cumCommission += commission
		positionValue := position * bar.Close
		totalValue := cash + positionValue

		ledger = append(ledger, types.LedgerRow{
			Time:          bar.Time,
			Close:         bar.Close,
			Position:      position,
			PositionValue: positionValue,
			Cash:          cash,
			Commission:    commission,
			CumCommission: cumCommission,
			TotalValue:    totalValue,
			PnL:           totalValue - initialCapital,
			NetValue:      totalValue / initialCapital,
		})
	}

	return ledger
}
