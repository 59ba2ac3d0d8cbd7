// Package engine defines the backtest engine contract. Concrete
// implementations live in versioned subpackages.
package engine

import (
	"context"

	"github.com/moznion/go-optional"

	"github.com/quantlab-hq/futures-backtest/internal/datasource"
	"github.com/quantlab-hq/futures-backtest/internal/strategy"
	"github.com/quantlab-hq/futures-backtest/internal/types"
)

// OnProcessDataCallback is called for each bar processed. Returning an
// error aborts the run.
type OnProcessDataCallback func(current int, total int) error

type Engine interface {
	// Initialize configures the engine from a yaml document.
	Initialize(config string) error
	// SetDataSource sets the bar provider the replay reads from.
	SetDataSource(source datasource.BarSource) error
	// LoadStrategy sets the strategy driven by the replay.
	LoadStrategy(s strategy.Strategy) error
	// SetResultsFolder sets the output directory for the run artifacts.
	SetResultsFolder(folder string) error
	// Run replays the configured range through the strategy. The context
	// can be used to cancel the run between bars.
	Run(ctx context.Context, onProcessData optional.Option[OnProcessDataCallback]) error
	// Results returns the aggregated result of the completed run.
	Results() (types.BacktestResult, error)
	// GetConfigSchema returns the JSON schema of the engine configuration.
	GetConfigSchema() (string, error)
	// Close releases the engine's resources.
	Close() error
}
