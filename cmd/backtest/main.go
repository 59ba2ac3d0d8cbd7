package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/moznion/go-optional"
	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli/v3"

	backtest "github.com/quantlab-hq/futures-backtest/internal/backtest/engine"
	enginev1 "github.com/quantlab-hq/futures-backtest/internal/backtest/engine/engine_v1"
	"github.com/quantlab-hq/futures-backtest/internal/datasource"
	"github.com/quantlab-hq/futures-backtest/internal/logger"
	"github.com/quantlab-hq/futures-backtest/internal/strategy"
	"github.com/quantlab-hq/futures-backtest/pkg/errors"
)

// newStrategy builds the selected strategy with its default parameters.
func newStrategy(name string) (strategy.Strategy, error) {
	switch name {
	case "ma":
		return strategy.NewMA(strategy.DefaultMAConfig()), nil
	case "vwap":
		return strategy.NewVWAP(strategy.DefaultVWAPConfig()), nil
	case "grid":
		return strategy.NewGrid(strategy.DefaultGridConfig()), nil
	case "daily-return":
		return strategy.NewDailyReturn(strategy.DefaultDailyReturnConfig()), nil
	case "noop":
		return strategy.NewNoop(), nil
	default:
		return nil, errors.Newf(errors.ErrCodeUnknownStrategy, "unknown strategy %q, want ma, vwap, grid, daily-return or noop", name)
	}
}

func backtestAction(ctx context.Context, cmd *cli.Command) error {
	symbol := cmd.String("symbol")

	start, err := datasource.ParseDate(cmd.String("start"))
	if err != nil {
		return err
	}

	end, err := datasource.ParseDate(cmd.String("end"))
	if err != nil {
		return err
	}

	strat, err := newStrategy(cmd.String("strategy"))
	if err != nil {
		return err
	}

	appLog, err := logger.NewLogger()
	if err != nil {
		return err
	}
	defer appLog.Sync()

	source, err := datasource.NewDuckDBBarSource(cmd.String("data"), appLog)
	if err != nil {
		return err
	}
	defer source.Close()

	config := fmt.Sprintf(`symbol: %s
initial_capital: %v
commission_rate: %v
start_time: %s
end_time: %s
write_indicators: %v
`,
		symbol,
		cmd.Float("capital"),
		cmd.Float("commission"),
		start.Format(time.RFC3339),
		end.Format(time.RFC3339),
		cmd.Bool("indicators"),
	)

	eng := enginev1.NewBacktestEngineV1()
	if err := eng.Initialize(config); err != nil {
		return err
	}
	defer eng.Close()

	if err := eng.SetDataSource(source); err != nil {
		return err
	}

	if err := eng.LoadStrategy(strat); err != nil {
		return err
	}

	resultsFolder := filepath.Join(cmd.String("results"),
		fmt.Sprintf("%s_%s_%s_%s", symbol, strat.Name(), cmd.String("start"), cmd.String("end")))
	if err := eng.SetResultsFolder(resultsFolder); err != nil {
		return err
	}

	var bar *progressbar.ProgressBar

	callback := backtest.OnProcessDataCallback(func(current, total int) error {
		if bar == nil {
			bar = progressbar.Default(int64(total), "replaying bars")
		}

		return bar.Set(current)
	})

	if err := eng.Run(ctx, optional.Some(callback)); err != nil {
		return err
	}

	result, err := eng.Results()
	if err != nil {
		return err
	}

	fmt.Printf("\nrun %s finished: return %.2f%%, %d trades, %d rolls\nresults written to %s\n",
		result.ID, result.TotalReturn*100, result.TradeCount, result.RollCount, resultsFolder)

	return nil
}

func main() {
	cmd := &cli.Command{
		Name:  "backtest",
		Usage: "Replay futures minute bars through a trading strategy",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "symbol",
				Aliases:  []string{"y"},
				Usage:    "Contract (IF2503) or product code (IF) for the dominant series",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "start",
				Aliases:  []string{"s"},
				Usage:    "Start date in `YYYYMMDD` format",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "end",
				Aliases:  []string{"e"},
				Usage:    "End date in `YYYYMMDD` format",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "strategy",
				Aliases: []string{"g"},
				Usage:   "Strategy to run: ma, vwap, grid, daily-return or noop",
				Value:   "ma",
			},
			&cli.StringFlag{
				Name:    "data",
				Aliases: []string{"d"},
				Usage:   "Root directory of the per-date parquet bar files",
				Value:   "data",
			},
			&cli.StringFlag{
				Name:    "results",
				Aliases: []string{"r"},
				Usage:   "Directory the run artifacts are written under",
				Value:   "results",
			},
			&cli.FloatFlag{
				Name:    "capital",
				Aliases: []string{"c"},
				Usage:   "Initial capital",
				Value:   enginev1.DefaultInitialCapital,
			},
			&cli.FloatFlag{
				Name:    "commission",
				Aliases: []string{"m"},
				Usage:   "Proportional commission rate per fill",
				Value:   enginev1.DefaultCommissionRate,
			},
			&cli.BoolFlag{
				Name:    "indicators",
				Aliases: []string{"i"},
				Usage:   "Export the strategy's indicator series with the run artifacts",
				Value:   false,
			},
		},
		Action: backtestAction,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
