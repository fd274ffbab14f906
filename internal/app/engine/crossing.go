package engine

import (
	marketv1 "github.com/papersim/paperbroker/internal/domain/market/v1"
	positionstorev1 "github.com/papersim/paperbroker/internal/domain/position-store/v1"
	"github.com/papersim/paperbroker/internal/usecase/matching"
	"github.com/papersim/paperbroker/pkg/logger"
)

// crossOrder evaluates one resting order against a tick and, on a fill,
// removes it from the book, publishes the updates and applies the trade.
// Callers hold the engine mutex.
func (e *Engine) crossOrder(order *marketv1.Order, tick marketv1.Tick, instrument marketv1.Instrument) {
	trade := matching.CrossOrder(order, tick, instrument, e.tradeSlippage)
	if trade == nil {
		return
	}

	e.orders.Remove(order.Symbol, order.ID)
	e.publishOrder(*order)
	e.publishTrade(*trade)

	e.applyTrade(trade, instrument)
}

// crossQuote evaluates the active quote against a tick and, on a fill,
// publishes the updates and applies the trade. Callers hold the engine mutex.
func (e *Engine) crossQuote(quote *marketv1.Quote, tick marketv1.Tick, instrument marketv1.Instrument) {
	trade := matching.CrossQuote(quote, tick)
	if trade == nil {
		return
	}

	e.publishQuote(*quote)
	e.publishTrade(*trade)

	e.applyTrade(trade, instrument)
}

// applyTrade folds a trade into the ledger, recomputes PnL for the affected
// positions against the cached tick, publishes them and persists the
// snapshot. Callers hold the engine mutex.
func (e *Engine) applyTrade(trade *marketv1.Trade, instrument marketv1.Instrument) {
	positions := e.ledger.ApplyTrade(trade, instrument)

	tick, hasTick := e.ticks.Get(trade.Symbol)
	for _, position := range positions {
		if hasTick {
			e.ledger.MarkToMarket(position, instrument, tick.LastPrice)
		}
		e.publishPosition(*position)
	}

	e.savePositions()
}

// savePositions persists the nonzero-position snapshot. Persistence errors
// degrade gracefully: logged, never propagated into the matching state.
func (e *Engine) savePositions() {
	if e.store == nil {
		return
	}

	if err := e.store.Save(e.publishCtx(), e.ledger.Snapshot()); err != nil {
		e.logger.Error(err, logger.Field{
			Key:   "action",
			Value: "save_positions",
		})
	}
}

// saveSettings persists the runtime settings.
func (e *Engine) saveSettings() {
	if e.settingsStore == nil {
		return
	}

	settings := positionstorev1.Settings{
		TradeSlippage: e.tradeSlippage,
		TimerInterval: e.timerInterval,
		InstantTrade:  e.instantTrade,
	}
	if err := e.settingsStore.SaveSettings(e.publishCtx(), settings); err != nil {
		e.logger.Error(err, logger.Field{
			Key:   "action",
			Value: "save_settings",
		})
	}
}

// writeLog writes a human-readable line through the logger and mirrors it to
// subscribers as a log event.
func (e *Engine) writeLog(message string) {
	e.logger.Info(message, logger.Field{
		Key:   "gateway",
		Value: GatewayName,
	})

	if err := e.publisher.PublishLog(e.publishCtx(), message); err != nil {
		e.logger.Error(err, logger.Field{
			Key:   "action",
			Value: "publish_log",
		})
	}
}

func (e *Engine) publishOrder(order marketv1.Order) {
	if err := e.publisher.PublishOrder(e.publishCtx(), order); err != nil {
		e.logger.Error(err, logger.Field{
			Key:   "action",
			Value: "publish_order",
		})
	}
}

func (e *Engine) publishTrade(trade marketv1.Trade) {
	if err := e.publisher.PublishTrade(e.publishCtx(), trade); err != nil {
		e.logger.Error(err, logger.Field{
			Key:   "action",
			Value: "publish_trade",
		})
	}
}

func (e *Engine) publishQuote(quote marketv1.Quote) {
	if err := e.publisher.PublishQuote(e.publishCtx(), quote); err != nil {
		e.logger.Error(err, logger.Field{
			Key:   "action",
			Value: "publish_quote",
		})
	}
}

func (e *Engine) publishPosition(position marketv1.Position) {
	if err := e.publisher.PublishPosition(e.publishCtx(), position); err != nil {
		e.logger.Error(err, logger.Field{
			Key:   "action",
			Value: "publish_position",
		})
	}
}
