package marketv1

// PositionKey identifies a position by instrument and direction.
type PositionKey struct {
	Symbol    string
	Direction Direction
}

// Position represents per-instrument holdings. In net-position mode a single
// DirectionNet position carries signed volume; otherwise independent long and
// short positions coexist.
type Position struct {
	Symbol    string    `json:"symbol"`
	Direction Direction `json:"direction"`
	Volume    float64   `json:"volume"`
	Frozen    float64   `json:"frozen"`
	Price     float64   `json:"price"` // average cost, zero while flat
	PnL       float64   `json:"pnl"`
}

// Key returns the ledger key of the position.
func (p *Position) Key() PositionKey {
	return PositionKey{Symbol: p.Symbol, Direction: p.Direction}
}

// Available returns the volume not reserved against outstanding close orders.
func (p *Position) Available() float64 {
	return p.Volume - p.Frozen
}
