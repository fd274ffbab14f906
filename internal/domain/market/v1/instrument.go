package marketv1

// Instrument holds the venue spec of a tradable instrument.
type Instrument struct {
	Symbol string `json:"symbol"`
	// PriceTick is the minimum price increment, used for slippage.
	PriceTick float64 `json:"priceTick"`
	// Multiplier is the contract multiplier applied to PnL.
	Multiplier float64 `json:"multiplier"`
	// NetPosition selects net-position accounting over long/short accounting.
	NetPosition bool `json:"netPosition"`
	// StopSupported reports whether the instrument accepts stop orders.
	StopSupported bool `json:"stopSupported"`
}
