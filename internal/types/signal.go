package types

import (
	"github.com/go-playground/validator/v10"
	"github.com/moznion/go-optional"

	"github.com/quantlab-hq/futures-backtest/pkg/errors"
)

// Direction is the signed side of a signal or trade: +1 long, -1 short.
type Direction int

const (
	DirectionBuy  Direction = 1
	DirectionSell Direction = -1
)

// Sign returns the direction of a signed quantity, or 0 for a flat one.
func Sign(quantity float64) Direction {
	switch {
	case quantity > 0:
		return DirectionBuy
	case quantity < 0:
		return DirectionSell
	default:
		return 0
	}
}

// Signal is a strategy's request to trade. It is ephemeral: produced by
// one OnBar call and consumed by the executor within the same bar.
type Signal struct {
	Direction Direction `yaml:"direction" json:"direction" validate:"required,oneof=1 -1"`
	Volume    float64   `yaml:"volume" json:"volume" validate:"gte=0"`
	// Price is the strategy's suggested price. The executor ignores it for
	// fills (pricing is look-ahead safe) but it is kept for diagnostics.
	Price optional.Option[float64] `yaml:"price" json:"price"`
}

// Validate validates the Signal struct.
func (s *Signal) Validate() error {
	validate := validator.New()
	if err := validate.Struct(s); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidSignal, "invalid signal", err)
	}

	return nil
}
