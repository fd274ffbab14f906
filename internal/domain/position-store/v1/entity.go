package positionstorev1

import marketv1 "github.com/papersim/paperbroker/internal/domain/market/v1"

// PositionSnapshot represents one persisted position with nonzero volume.
// Frozen volume and PnL are transient and not persisted.
type PositionSnapshot struct {
	Symbol    string             `json:"symbol"`
	Direction marketv1.Direction `json:"direction"`
	Volume    float64            `json:"volume"`
	Price     float64            `json:"price"`
}

// Settings represents the persisted runtime configuration of the engine.
type Settings struct {
	TradeSlippage int  `json:"tradeSlippage"`
	TimerInterval int  `json:"timerInterval"`
	InstantTrade  bool `json:"instantTrade"`
}
