// Package matching decides whether and at what price a resting order or
// quote fills against an incoming market tick. Simulated fills are always
// complete-volume; there is no depth or queue-position model.
package matching

import (
	marketv1 "github.com/papersim/paperbroker/internal/domain/market/v1"
)

// CrossOrder evaluates a resting order against a fresh tick. When the order
// fills, its traded volume and status are updated and the resulting trade is
// returned; otherwise the order is left unchanged and nil is returned.
// Slippage is the configured number of price ticks added against the trader
// on market and stop fills.
func CrossOrder(order *marketv1.Order, tick marketv1.Tick, instrument marketv1.Instrument, slippage int) *marketv1.Trade {
	if !order.IsActive() {
		return nil
	}

	tradePrice := 0.0

	switch order.Type {
	// Cross market order immediately after received
	case marketv1.OrderTypeMarket:
		if order.Direction == marketv1.DirectionLong {
			tradePrice = tick.AskPrice + float64(slippage)*instrument.PriceTick
		} else {
			tradePrice = tick.BidPrice - float64(slippage)*instrument.PriceTick
		}
	// Cross limit order only if price touched
	case marketv1.OrderTypeLimit:
		if order.Direction == marketv1.DirectionLong {
			if order.Price >= tick.AskPrice {
				tradePrice = tick.AskPrice
			}
		} else {
			if order.Price <= tick.BidPrice {
				tradePrice = tick.BidPrice
			}
		}
	// Cross stop order only if price broken
	case marketv1.OrderTypeStop:
		if order.Direction == marketv1.DirectionLong {
			if tick.AskPrice >= order.Price {
				tradePrice = tick.AskPrice + float64(slippage)*instrument.PriceTick
			}
		} else {
			if tick.BidPrice <= order.Price {
				tradePrice = tick.BidPrice - float64(slippage)*instrument.PriceTick
			}
		}
	}

	if tradePrice == 0 {
		return nil
	}

	order.Status = marketv1.StatusAllTraded
	order.Traded = order.Volume

	return marketv1.NewTrade(order.ID, order.Symbol, order.Direction, order.Offset, tradePrice, order.Volume)
}

// CrossQuote evaluates the active maker quote against a fresh tick. The
// quote is crossed by trade prints, not by touch: a side fills only when the
// last traded price reaches it. At most one side fills per tick, ask side
// checked first; a filled side is zeroed and cannot refill.
func CrossQuote(quote *marketv1.Quote, tick marketv1.Tick) *marketv1.Trade {
	tradePrice := 0.0
	var direction marketv1.Direction
	var offset marketv1.Offset
	var volume float64

	if tick.LastPrice >= quote.AskPrice && quote.AskVolume > 0 {
		tradePrice = quote.AskPrice

		direction = marketv1.DirectionShort
		offset = marketv1.OffsetClose
		volume = quote.AskVolume

		quote.AskVolume = 0
	} else if tick.LastPrice <= quote.BidPrice && quote.BidVolume > 0 {
		tradePrice = quote.BidPrice

		direction = marketv1.DirectionLong
		offset = marketv1.OffsetOpen
		volume = quote.BidVolume

		quote.BidVolume = 0
	}

	if tradePrice == 0 {
		return nil
	}

	if quote.BidVolume == 0 && quote.AskVolume == 0 {
		quote.Status = marketv1.StatusAllTraded
	} else {
		quote.Status = marketv1.StatusPartTraded
	}

	return marketv1.NewTrade(quote.ID, quote.Symbol, direction, offset, tradePrice, volume)
}
