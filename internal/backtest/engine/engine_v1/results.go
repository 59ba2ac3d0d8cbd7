package engine

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/quantlab-hq/futures-backtest/internal/types"
)

// BuildResult aggregates a completed run from the trade log and the
// reconstructed ledger. A run with no trades and no bars yields a flat
// result at the initial capital.
func BuildResult(symbol, strategyName string, initialCapital float64, trades []types.Trade, ledger []types.LedgerRow) types.BacktestResult {
	result := types.BacktestResult{
		ID:              uuid.New().String(),
		Timestamp:       time.Now().UTC(),
		Symbol:          symbol,
		Strategy:        strategyName,
		InitialCapital:  initialCapital,
		FinalValue:      initialCapital,
		TotalReturn:     0,
		GrossPnL:        0,
		NetPnL:          0,
		TotalCommission: 0,
		TurnoverRate:    0,
		MaxDrawdown:     0,
		TradeCount:      0,
		RollCount:       0,
		MeanPnLPerTrade: 0,
		RollRecords:     nil,
	}

	if len(ledger) > 0 {
		last := ledger[len(ledger)-1]
		result.FinalValue = last.TotalValue
		result.TotalReturn = last.NetValue - 1
		result.NetPnL = last.PnL
		result.MaxDrawdown = maxDrawdown(ledger)
	}

	totalCommission := decimal.Zero
	totalNotional := decimal.Zero

	var tradeCount, rollTrades int

	for _, t := range trades {
		totalCommission = totalCommission.Add(decimal.NewFromFloat(t.Commission))
		totalNotional = totalNotional.Add(decimal.NewFromFloat(t.Cost))

		if t.Kind.IsRoll() {
			rollTrades++
		} else {
			tradeCount++
		}
	}

	result.TotalCommission, _ = totalCommission.Float64()
	result.GrossPnL = result.NetPnL + result.TotalCommission
	result.TradeCount = tradeCount
	result.RollCount = rollTrades / 2

	if tradeCount > 0 {
		result.MeanPnLPerTrade = result.NetPnL / float64(tradeCount)
	}

	if len(trades) > 0 && len(ledger) > 0 {
		if mean := meanTotalValue(ledger); !mean.IsZero() {
			result.TurnoverRate, _ = totalNotional.Div(mean).Float64()
		}
	}

	result.RollRecords = rollRecords(trades)

	return result
}

// rollRecords derives the contract switches from consecutive
// roll-close/roll-open trade pairs in the log.
func rollRecords(trades []types.Trade) []types.RollRecord {
	var records []types.RollRecord

	for i := 0; i+1 < len(trades); i++ {
		if trades[i].Kind != types.TradeKindRollClose || trades[i+1].Kind != types.TradeKindRollOpen {
			continue
		}

		records = append(records, types.RollRecord{
			SwitchTime: trades[i].Timestamp,
			OldSymbol:  trades[i].Symbol,
			NewSymbol:  trades[i+1].Symbol,
		})
	}

	return records
}

func meanTotalValue(ledger []types.LedgerRow) decimal.Decimal {
	sum := decimal.Zero
	for _, row := range ledger {
		sum = sum.Add(decimal.NewFromFloat(row.TotalValue))
	}

	return sum.Div(decimal.NewFromInt(int64(len(ledger))))
}

// maxDrawdown is the largest relative decline of the net-value series
// from its running peak, as a positive fraction.
func maxDrawdown(ledger []types.LedgerRow) float64 {
	peak := ledger[0].NetValue
	worst := 0.0

	for _, row := range ledger {
		if row.NetValue > peak {
			peak = row.NetValue
		}

		if peak <= 0 {
			continue
		}

		if dd := (peak - row.NetValue) / peak; dd > worst {
			worst = dd
		}
	}

	return worst
}
