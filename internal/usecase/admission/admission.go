package admission

import (
	"fmt"

	marketv1 "github.com/papersim/paperbroker/internal/domain/market/v1"
	"github.com/papersim/paperbroker/internal/usecase/ledger"
	"github.com/papersim/paperbroker/pkg/errors"
)

// Validator rejects orders the simulated venue could not honor and reserves
// position volume for closing orders.
type Validator struct {
	ledger *ledger.PositionLedger
}

// NewValidator creates a validator over the given ledger.
func NewValidator(positionLedger *ledger.PositionLedger) *Validator {
	return &Validator{
		ledger: positionLedger,
	}
}

// Validate checks the order against the instrument's rules. On rejection the
// order status is set to rejected and an ErrorDetails carrying the reason is
// returned; the order must not be placed in the book. For an accepted close
// order under long/short accounting, the opposing position is frozen by the
// order volume and returned for a change notification.
func (v *Validator) Validate(order *marketv1.Order, instrument marketv1.Instrument) (*marketv1.Position, error) {
	// Reject unsupported order type
	switch order.Type {
	case marketv1.OrderTypeMarket, marketv1.OrderTypeLimit:
	case marketv1.OrderTypeStop:
		if !instrument.StopSupported {
			order.Status = marketv1.StatusRejected
			return nil, errors.NewErrorDetailsWithObject(
				fmt.Sprintf("order rejected, instrument %s does not support stop orders", order.Symbol),
				string(errors.ErrUnsupportedOrderType),
				"type",
				order,
			)
		}
	default:
		order.Status = marketv1.StatusRejected
		return nil, errors.NewErrorDetailsWithObject(
			fmt.Sprintf("order rejected, unsupported order type %s", order.Type),
			string(errors.ErrUnsupportedOrderType),
			"type",
			order,
		)
	}

	// Net-position accounting admits any order against net exposure, and
	// open orders never touch frozen volume.
	if instrument.NetPosition || order.Offset == marketv1.OffsetOpen {
		return nil, nil
	}

	// A close order reserves volume on the opposing position.
	opposing := v.ledger.Get(order.Symbol, order.Direction.Opposite())

	if order.Volume > opposing.Available() {
		order.Status = marketv1.StatusRejected
		return nil, errors.NewErrorDetailsWithObject(
			"order rejected, insufficient closeable position",
			string(errors.ErrInsufficientClosePosition),
			"volume",
			order,
		)
	}

	opposing.Frozen += order.Volume
	return opposing, nil
}
