package marketv1

import "time"

// Tick represents the most recent market quote for an instrument. It is
// overwritten on every update; no history is retained.
type Tick struct {
	Symbol    string    `json:"symbol"`
	BidPrice  float64   `json:"bidPrice"`
	AskPrice  float64   `json:"askPrice"`
	LastPrice float64   `json:"lastPrice"`
	Timestamp time.Time `json:"timestamp"`
}
