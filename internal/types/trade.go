package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// TradeKind classifies how a trade entered the log.
type TradeKind string

const (
	// TradeKindOrdinary is a trade requested by a strategy signal.
	TradeKindOrdinary TradeKind = "trade"
	// TradeKindRollClose closes the outgoing instrument on a contract roll.
	TradeKindRollClose TradeKind = "roll_close"
	// TradeKindRollOpen re-opens the preserved exposure on the incoming
	// instrument of a contract roll.
	TradeKindRollOpen TradeKind = "roll_open"
)

// IsRoll reports whether the kind belongs to a roll close/open pair.
func (k TradeKind) IsRoll() bool {
	return k == TradeKindRollClose || k == TradeKindRollOpen
}

// Trade is one committed execution. The trade log is append-only and is
// the sole source of truth for all downstream accounting.
type Trade struct {
	Timestamp time.Time `csv:"timestamp" yaml:"timestamp"`
	Symbol    string    `csv:"symbol" yaml:"symbol"`
	Direction Direction `csv:"direction" yaml:"direction"`
	Price     float64   `csv:"price" yaml:"price"`
	Volume    float64   `csv:"volume" yaml:"volume"`
	// Cost is the traded notional, price * volume.
	Cost float64 `csv:"cost" yaml:"cost"`
	// Commission is Cost * commission_rate, charged on every kind of trade.
	Commission float64 `csv:"commission" yaml:"commission"`
	Kind       TradeKind `csv:"kind" yaml:"kind"`
}

// NewTrade builds a trade at the given price and volume, deriving the
// notional cost and commission with decimal arithmetic so that the
// recorded fields are exact products.
func NewTrade(timestamp time.Time, symbol string, direction Direction, price, volume, commissionRate float64, kind TradeKind) Trade {
	costDec := decimal.NewFromFloat(price).Mul(decimal.NewFromFloat(volume))
	commissionDec := costDec.Mul(decimal.NewFromFloat(commissionRate))
	cost, _ := costDec.Float64()
	commission, _ := commissionDec.Float64()

	return Trade{
		Timestamp:  timestamp,
		Symbol:     symbol,
		Direction:  direction,
		Price:      price,
		Volume:     volume,
		Cost:       cost,
		Commission: commission,
		Kind:       kind,
	}
}

// CashDelta is the signed change this trade applies to cash:
// -direction*cost - commission. A buy consumes cash, a sell releases it,
// and commission is always a cost.
func (t Trade) CashDelta() float64 {
	return -float64(t.Direction)*t.Cost - t.Commission
}

// PositionDelta is the signed change this trade applies to the position
// of its symbol.
func (t Trade) PositionDelta() float64 {
	return float64(t.Direction) * t.Volume
}
