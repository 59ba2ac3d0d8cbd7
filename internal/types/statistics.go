package types

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// RollRecord describes one dominant-contract switch, derived from a
// consecutive roll-close/roll-open trade pair in the log.
type RollRecord struct {
	SwitchTime time.Time `yaml:"switch_time" json:"switch_time"`
	OldSymbol  string    `yaml:"old_symbol" json:"old_symbol"`
	NewSymbol  string    `yaml:"new_symbol" json:"new_symbol"`
}

// BacktestResult summarizes one completed run. Every field is derived
// from the trade log and the reconstructed ledger alone, so a result is
// reproducible from those two artifacts.
type BacktestResult struct {
	// ID is the unique identifier for this backtest run.
	ID string `yaml:"id" json:"id"`
	// Timestamp is when this backtest run was executed.
	Timestamp time.Time `yaml:"timestamp" json:"timestamp"`
	// Symbol is the product or contract the run traded.
	Symbol string `yaml:"symbol" json:"symbol"`
	// Strategy is the name of the strategy that produced the signals.
	Strategy string `yaml:"strategy" json:"strategy"`

	InitialCapital float64 `yaml:"initial_capital" json:"initial_capital"`
	// FinalValue is the last ledger row's total value.
	FinalValue float64 `yaml:"final_value" json:"final_value"`
	// TotalReturn is the last net value minus one.
	TotalReturn float64 `yaml:"total_return" json:"total_return"`
	// GrossPnL is the realized PnL before commission.
	GrossPnL float64 `yaml:"gross_pnl" json:"gross_pnl"`
	// NetPnL is the realized PnL after commission (last ledger pnl).
	NetPnL float64 `yaml:"net_pnl" json:"net_pnl"`
	// TotalCommission is the commission summed over every trade.
	TotalCommission float64 `yaml:"total_commission" json:"total_commission"`
	// TurnoverRate is total traded notional over mean total value.
	TurnoverRate float64 `yaml:"turnover_rate" json:"turnover_rate"`
	// MaxDrawdown is the largest peak-to-trough net-value decline.
	MaxDrawdown float64 `yaml:"max_drawdown" json:"max_drawdown"`

	// TradeCount counts ordinary trades only; roll pairs are excluded.
	TradeCount int `yaml:"trade_count" json:"trade_count"`
	// RollCount is half the number of roll-kind trades.
	RollCount int `yaml:"roll_count" json:"roll_count"`
	// MeanPnLPerTrade is NetPnL / TradeCount, zero when no trades exist.
	MeanPnLPerTrade float64 `yaml:"mean_pnl_per_trade" json:"mean_pnl_per_trade"`

	RollRecords []RollRecord `yaml:"roll_records" json:"roll_records"`
}

// WriteResult writes the result record to a YAML file.
func WriteResult(path string, result BacktestResult) error {
	data, err := yaml.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal backtest result to YAML: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write backtest result to file: %w", err)
	}

	return nil
}

// WriteIndicators writes indicator snapshots to a YAML file for an
// external renderer.
func WriteIndicators(path string, series []IndicatorSeries) error {
	data, err := yaml.Marshal(series)
	if err != nil {
		return fmt.Errorf("failed to marshal indicator series to YAML: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write indicator series to file: %w", err)
	}

	return nil
}
