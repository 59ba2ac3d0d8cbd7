package types

import "time"

// MarketData is a single minute OHLCV bar for one instrument.
// Bars are immutable once loaded; Symbol carries the per-row instrument
// label on a stitched dominant-contract series.
type MarketData struct {
	Time   time.Time `csv:"time" yaml:"time"`
	Symbol string    `csv:"symbol" yaml:"symbol"`
	Open   float64   `csv:"open" yaml:"open"`
	High   float64   `csv:"high" yaml:"high"`
	Low    float64   `csv:"low" yaml:"low"`
	Close  float64   `csv:"close" yaml:"close"`
	Volume float64   `csv:"volume" yaml:"volume"`
}

// TypicalPrice is the (high+low+close)/3 price used by volume-weighted
// calculations.
func (m MarketData) TypicalPrice() float64 {
	return (m.High + m.Low + m.Close) / 3
}
