package types

import "time"

// LedgerRow is one derived accounting row per bar, reconstructed after
// the replay by re-applying the trade log against the bar timeline.
type LedgerRow struct {
	Time  time.Time `csv:"time" yaml:"time"`
	Close float64   `csv:"close" yaml:"close"`
	// Position is the running signed quantity after this bar's trades.
	Position float64 `csv:"position" yaml:"position"`
	// PositionValue is Position * Close, valued at this bar's own close.
	PositionValue float64 `csv:"position_value" yaml:"position_value"`
	Cash          float64 `csv:"cash" yaml:"cash"`
	// Commission is the commission paid at this bar.
	Commission float64 `csv:"commission" yaml:"commission"`
	// CumCommission is the commission accrued up to and including this bar.
	CumCommission float64 `csv:"cum_commission" yaml:"cum_commission"`
	// TotalValue is Cash + PositionValue. Invariant for every row.
	TotalValue float64 `csv:"total_value" yaml:"total_value"`
	// PnL is TotalValue minus the initial capital.
	PnL float64 `csv:"pnl" yaml:"pnl"`
	// NetValue is TotalValue normalized by the initial capital; 1.0 is
	// break-even.
	NetValue float64 `csv:"net_value" yaml:"net_value"`
}
