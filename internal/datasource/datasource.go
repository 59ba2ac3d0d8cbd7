package datasource

import (
	"time"
	"unicode"

	"github.com/moznion/go-optional"

	"github.com/quantlab-hq/futures-backtest/internal/types"
	"github.com/quantlab-hq/futures-backtest/pkg/errors"
)

// DateLayout is the wire format for run dates.
const DateLayout = "20060102"

// BarSource provides time-ordered minute bars from on-disk storage laid
// out as one directory per trading date containing one parquet file per
// instrument (<root>/YYYYMMDD/<symbol>.parquet).
type BarSource interface {
	// LoadContract loads bars for one pinned instrument over the date
	// range. It fails with ErrCodeNoDataFound when no rows exist and
	// ErrCodeMissingColumns when a required OHLCV column is absent.
	LoadContract(symbol string, start, end time.Time) ([]types.MarketData, error)
	// LoadDominant stitches a continuous dominant-contract series for a
	// product code, choosing per calendar day the instrument with the
	// largest summed volume. Days without any candidate are skipped; only
	// a fully empty range is an error.
	LoadDominant(product string, start, end time.Time) ([]types.MarketData, error)
	// DominantSymbol returns the highest-volume instrument for the product
	// on one date, or None when the date has no candidates.
	DominantSymbol(product string, date time.Time) (optional.Option[string], error)
	// AvailableSymbols lists the instruments stored for one date.
	AvailableSymbols(date time.Time) ([]string, error)
	// Close releases the underlying database handle.
	Close() error
}

// IsProductCode reports whether the identifier names a product (for
// dominant-contract stitching) rather than a concrete contract. A
// product code is at most two characters or entirely alphabetic, e.g.
// "IF" is a product while "IF2309" is a contract.
func IsProductCode(symbol string) bool {
	if len(symbol) <= 2 {
		return true
	}

	for _, r := range symbol {
		if !unicode.IsLetter(r) {
			return false
		}
	}

	return true
}

// ParseDate parses a YYYYMMDD run-parameter date.
func ParseDate(value string) (time.Time, error) {
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, errors.Wrapf(errors.ErrCodeInvalidDate, err, "invalid date %q, want YYYYMMDD", value)
	}

	return t, nil
}

// eachDate calls fn for every calendar date from start to end inclusive.
func eachDate(start, end time.Time, fn func(date time.Time) error) error {
	for date := start; !date.After(end); date = date.AddDate(0, 0, 1) {
		if err := fn(date); err != nil {
			return err
		}
	}

	return nil
}
