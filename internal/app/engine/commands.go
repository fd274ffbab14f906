package engine

import (
	"fmt"

	marketv1 "github.com/papersim/paperbroker/internal/domain/market/v1"
	"github.com/papersim/paperbroker/pkg/errors"
)

// RegisterInstrument registers or updates an instrument spec and republishes
// any existing positions for it.
func (e *Engine) RegisterInstrument(instrument marketv1.Instrument) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.instruments[instrument.Symbol] = instrument

	for _, position := range e.ledger.PositionsFor(instrument.Symbol) {
		e.publishPosition(*position)
	}
}

// SubmitOrder admits an order into the paper venue and returns its id.
// Intake failures (invalid volume, unknown instrument) return an error and
// no order id; admission rejections are expressed through the published
// order's rejected status plus a log line, never as an error.
func (e *Engine) SubmitOrder(req marketv1.OrderRequest) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if req.Volume <= 0 {
		message := "order rejected, invalid volume"
		e.writeLog(message)
		return "", errors.NewErrorDetails(message, string(errors.ErrInvalidVolume), "volume")
	}

	instrument, ok := e.instruments[req.Symbol]
	if !ok {
		message := fmt.Sprintf("order rejected, unknown instrument %s", req.Symbol)
		e.writeLog(message)
		return "", errors.NewErrorDetails(message, string(errors.ErrUnknownInstrument), "symbol")
	}

	order := req.NewOrder()

	// Simulated order echo from the gateway
	e.publishOrder(*order)

	frozen, err := e.validator.Validate(order, instrument)
	if err != nil {
		e.writeLog(err.Error())
		e.publishOrder(*order)
		return order.ID, nil
	}

	// Simulated acknowledgement from the exchange
	order.Status = marketv1.StatusNotTraded
	e.orders.Add(order)
	e.publishOrder(*order)

	// Frozen volume changed for a close order
	if frozen != nil {
		e.publishPosition(*frozen)
	}

	// Cross the order immediately with the last cached tick
	if e.instantTrade {
		if tick, ok := e.ticks.Get(order.Symbol); ok {
			e.crossOrder(order, tick, instrument)
		}
	}

	return order.ID, nil
}

// CancelOrder cancels a resting order. A cancel referencing an order that
// already filled or was never admitted is a silent no-op.
func (e *Engine) CancelOrder(req marketv1.CancelRequest) {
	e.mu.Lock()
	defer e.mu.Unlock()

	order, ok := e.orders.Remove(req.Symbol, req.OrderID)
	if !ok {
		return
	}

	order.Status = marketv1.StatusCancelled
	e.publishOrder(*order)

	// Free frozen position volume reserved by a close order
	instrument := e.instruments[order.Symbol]
	if instrument.NetPosition || order.Offset == marketv1.OffsetOpen {
		return
	}

	position := e.ledger.Unfreeze(order.Symbol, order.Direction.Opposite(), order.Volume)
	e.publishPosition(*position)
}

// SubmitQuote admits a two-sided quote, cancelling any prior active quote
// for the instrument, and returns the quote id.
func (e *Engine) SubmitQuote(req marketv1.QuoteRequest) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.instruments[req.Symbol]; !ok {
		message := fmt.Sprintf("quote rejected, unknown instrument %s", req.Symbol)
		e.writeLog(message)
		return "", errors.NewErrorDetails(message, string(errors.ErrUnknownInstrument), "symbol")
	}

	quote := req.NewQuote()

	// Simulated quote echo from the gateway
	e.publishQuote(*quote)

	// A new quote displaces the prior active quote
	if prior, ok := e.quotes.Remove(req.Symbol); ok {
		prior.Status = marketv1.StatusCancelled
		e.publishQuote(*prior)
	}

	quote.Status = marketv1.StatusNotTraded
	e.quotes.Replace(quote)
	e.publishQuote(*quote)

	return quote.ID, nil
}

// CancelQuote cancels the active quote when the id matches. A cancel for an
// inactive or mismatched quote id is a silent no-op.
func (e *Engine) CancelQuote(req marketv1.CancelRequest) {
	e.mu.Lock()
	defer e.mu.Unlock()

	quote, ok := e.quotes.Get(req.Symbol)
	if !ok {
		return
	}

	if quote.ID != req.OrderID {
		return
	}

	e.quotes.Remove(req.Symbol)
	quote.Status = marketv1.StatusCancelled
	e.publishQuote(*quote)
}

// ClearPositions zeroes every known position, publishes the updates and
// persists the emptied snapshot.
func (e *Engine) ClearPositions() {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, position := range e.ledger.Clear() {
		e.publishPosition(*position)
	}

	e.savePositions()
}

// SetTradeSlippage updates the slippage applied to market and stop fills.
func (e *Engine) SetTradeSlippage(slippage int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.tradeSlippage = slippage
	e.saveSettings()
}

// SetTimerInterval updates the number of timer ticks between PnL sweeps.
func (e *Engine) SetTimerInterval(interval int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.timerInterval = interval
	e.saveSettings()
}

// SetInstantTrade toggles immediate crossing of newly admitted orders
// against the latest cached tick.
func (e *Engine) SetInstantTrade(enabled bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.instantTrade = enabled
	e.saveSettings()
}

// TradeSlippage returns the configured slippage in price ticks.
func (e *Engine) TradeSlippage() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.tradeSlippage
}

// TimerInterval returns the number of timer ticks between PnL sweeps.
func (e *Engine) TimerInterval() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.timerInterval
}

// InstantTrade returns whether instant trade mode is enabled.
func (e *Engine) InstantTrade() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.instantTrade
}
