package ledger

import (
	"math"
	"sort"
	"sync"

	marketv1 "github.com/papersim/paperbroker/internal/domain/market/v1"
	positionstorev1 "github.com/papersim/paperbroker/internal/domain/position-store/v1"
)

// PositionLedger tracks per-instrument holdings, keyed by instrument and
// direction. Positions are created lazily on first reference and never
// deleted, only zeroed.
type PositionLedger struct {
	mu        sync.RWMutex
	positions map[marketv1.PositionKey]*marketv1.Position
}

// NewPositionLedger creates an empty ledger.
func NewPositionLedger() *PositionLedger {
	return &PositionLedger{
		positions: make(map[marketv1.PositionKey]*marketv1.Position),
	}
}

// Get returns the position for the given instrument and direction, creating
// an empty one on first reference.
func (l *PositionLedger) Get(symbol string, direction marketv1.Direction) *marketv1.Position {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.get(symbol, direction)
}

func (l *PositionLedger) get(symbol string, direction marketv1.Direction) *marketv1.Position {
	key := marketv1.PositionKey{Symbol: symbol, Direction: direction}

	position, ok := l.positions[key]
	if !ok {
		position = &marketv1.Position{
			Symbol:    symbol,
			Direction: direction,
		}
		l.positions[key] = position
	}
	return position
}

// Freeze reserves volume on the position against an outstanding close order.
func (l *PositionLedger) Freeze(symbol string, direction marketv1.Direction, volume float64) *marketv1.Position {
	position := l.Get(symbol, direction)
	position.Frozen += volume
	return position
}

// Unfreeze releases volume reserved by a close order that was cancelled.
func (l *PositionLedger) Unfreeze(symbol string, direction marketv1.Direction, volume float64) *marketv1.Position {
	position := l.Get(symbol, direction)
	position.Frozen -= volume
	return position
}

// ApplyTrade folds a trade into the ledger and returns the affected
// positions. The caller recomputes PnL and persists afterwards.
func (l *PositionLedger) ApplyTrade(trade *marketv1.Trade, instrument marketv1.Instrument) []*marketv1.Position {
	if instrument.NetPosition {
		return []*marketv1.Position{l.applyNet(trade)}
	}
	return l.applyLongShort(trade)
}

// applyNet folds a trade into the single signed position of the instrument.
func (l *PositionLedger) applyNet(trade *marketv1.Trade) *marketv1.Position {
	position := l.Get(trade.Symbol, marketv1.DirectionNet)

	oldVolume := position.Volume
	oldCost := position.Volume * position.Price

	change := trade.Volume
	if trade.Direction == marketv1.DirectionShort {
		change = -trade.Volume
	}

	newVolume := oldVolume + change

	switch {
	// No position holding, clear price
	case newVolume == 0:
		position.Price = 0
	// Position direction changed, set to open price. The old cost basis is
	// discarded even when the crossing volume opens far beyond the flip
	// point.
	case (newVolume > 0 && oldVolume < 0) || (newVolume < 0 && oldVolume > 0):
		position.Price = trade.Price
	// Position is add on the same direction
	case (oldVolume >= 0 && change > 0) || (oldVolume <= 0 && change < 0):
		position.Price = (oldCost + change*trade.Price) / newVolume
	}

	position.Volume = newVolume
	return position
}

// applyLongShort folds a trade into the independent long and short positions
// of the instrument. Open trades add to the matching-direction position;
// close trades reduce the opposing position and its frozen volume.
func (l *PositionLedger) applyLongShort(trade *marketv1.Trade) []*marketv1.Position {
	longPosition := l.Get(trade.Symbol, marketv1.DirectionLong)
	shortPosition := l.Get(trade.Symbol, marketv1.DirectionShort)

	opened := longPosition
	closed := shortPosition
	if trade.Direction == marketv1.DirectionShort {
		opened = shortPosition
		closed = longPosition
	}

	if trade.Offset == marketv1.OffsetOpen {
		newCost := opened.Volume*opened.Price + trade.Volume*trade.Price
		opened.Volume += trade.Volume
		opened.Price = newCost / opened.Volume
	} else {
		closed.Volume -= trade.Volume
		closed.Frozen -= trade.Volume

		if closed.Volume == 0 {
			closed.Price = 0
		}
	}

	return []*marketv1.Position{longPosition, shortPosition}
}

// MarkToMarket recomputes the unrealized PnL of the position against the
// given last traded price, rounded to 2 decimals.
func (l *PositionLedger) MarkToMarket(position *marketv1.Position, instrument marketv1.Instrument, lastPrice float64) {
	multiplier := position.Volume * instrument.Multiplier
	if position.Direction == marketv1.DirectionShort {
		multiplier = -multiplier
	}

	position.PnL = round2((lastPrice - position.Price) * multiplier)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Positions returns all known positions in stable (symbol, direction) order.
func (l *PositionLedger) Positions() []*marketv1.Position {
	l.mu.RLock()
	positions := make([]*marketv1.Position, 0, len(l.positions))
	for _, position := range l.positions {
		positions = append(positions, position)
	}
	l.mu.RUnlock()

	sortPositions(positions)
	return positions
}

// PositionsFor returns the known positions of one instrument in stable order.
func (l *PositionLedger) PositionsFor(symbol string) []*marketv1.Position {
	l.mu.RLock()
	var positions []*marketv1.Position
	for key, position := range l.positions {
		if key.Symbol == symbol {
			positions = append(positions, position)
		}
	}
	l.mu.RUnlock()

	sortPositions(positions)
	return positions
}

// Snapshot returns the persistable view of the ledger: every position with
// nonzero volume, in stable order.
func (l *PositionLedger) Snapshot() []positionstorev1.PositionSnapshot {
	positions := l.Positions()

	snapshot := make([]positionstorev1.PositionSnapshot, 0, len(positions))
	for _, position := range positions {
		if position.Volume == 0 {
			continue
		}

		snapshot = append(snapshot, positionstorev1.PositionSnapshot{
			Symbol:    position.Symbol,
			Direction: position.Direction,
			Volume:    position.Volume,
			Price:     position.Price,
		})
	}
	return snapshot
}

// Restore seeds the ledger from a persisted snapshot.
func (l *PositionLedger) Restore(snapshot []positionstorev1.PositionSnapshot) {
	for _, entry := range snapshot {
		position := l.Get(entry.Symbol, entry.Direction)
		position.Volume = entry.Volume
		position.Price = entry.Price
	}
}

// Clear zeroes volume, frozen volume, cost basis and PnL on every known
// position and returns them for publication. Position records stay in the
// ledger as inert entries.
func (l *PositionLedger) Clear() []*marketv1.Position {
	positions := l.Positions()
	for _, position := range positions {
		position.Volume = 0
		position.Frozen = 0
		position.Price = 0
		position.PnL = 0
	}
	return positions
}

func sortPositions(positions []*marketv1.Position) {
	sort.Slice(positions, func(i, j int) bool {
		if positions[i].Symbol != positions[j].Symbol {
			return positions[i].Symbol < positions[j].Symbol
		}
		return positions[i].Direction < positions[j].Direction
	})
}
