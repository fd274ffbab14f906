package ledger

import (
	"testing"

	"pgregory.net/rapid"

	marketv1 "github.com/papersim/paperbroker/internal/domain/market/v1"
)

func TestNetVolumeMatchesSignedTradeSum(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		l := NewPositionLedger()

		tradeCount := rapid.IntRange(1, 50).Draw(t, "trades")
		sum := 0.0
		for i := 0; i < tradeCount; i++ {
			direction := marketv1.DirectionLong
			if rapid.Bool().Draw(t, "short") {
				direction = marketv1.DirectionShort
			}
			volume := float64(rapid.IntRange(1, 100).Draw(t, "volume"))
			price := float64(rapid.IntRange(1, 10_000).Draw(t, "price"))

			l.ApplyTrade(newTestTrade("BTC-USD", direction, marketv1.OffsetOpen, price, volume), netInstrument)

			if direction == marketv1.DirectionShort {
				sum -= volume
			} else {
				sum += volume
			}
		}

		position := l.Get("BTC-USD", marketv1.DirectionNet)
		if position.Volume != sum {
			t.Fatalf("net volume %v, want signed trade sum %v", position.Volume, sum)
		}
		if position.Volume == 0 && position.Price != 0 {
			t.Fatalf("flat position keeps cost basis %v", position.Price)
		}
	})
}

func TestSameDirectionAddsStayWithinTradePriceRange(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		l := NewPositionLedger()

		tradeCount := rapid.IntRange(1, 30).Draw(t, "trades")
		minPrice, maxPrice := 1e18, 0.0
		for i := 0; i < tradeCount; i++ {
			volume := float64(rapid.IntRange(1, 100).Draw(t, "volume"))
			price := float64(rapid.IntRange(1, 10_000).Draw(t, "price"))
			if price < minPrice {
				minPrice = price
			}
			if price > maxPrice {
				maxPrice = price
			}

			l.ApplyTrade(newTestTrade("IF2609", marketv1.DirectionLong, marketv1.OffsetOpen, price, volume), longShortInstrument)
		}

		position := l.Get("IF2609", marketv1.DirectionLong)
		// Floating point average, give the bounds a hair of slack.
		const eps = 1e-6
		if position.Price < minPrice-eps || position.Price > maxPrice+eps {
			t.Fatalf("average price %v outside traded range [%v, %v]", position.Price, minPrice, maxPrice)
		}
	})
}

func TestFreezeUnfreezeConservesVolume(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		l := NewPositionLedger()

		position := l.Get("IF2609", marketv1.DirectionShort)
		position.Volume = float64(rapid.IntRange(1, 1_000).Draw(t, "volume"))

		opCount := rapid.IntRange(1, 40).Draw(t, "ops")
		outstanding := 0.0
		for i := 0; i < opCount; i++ {
			if outstanding > 0 && rapid.Bool().Draw(t, "release") {
				l.Unfreeze("IF2609", marketv1.DirectionShort, outstanding)
				outstanding = 0
				continue
			}

			available := position.Available()
			if available < 1 {
				continue
			}
			reserve := float64(rapid.IntRange(1, int(available)).Draw(t, "reserve"))
			l.Freeze("IF2609", marketv1.DirectionShort, reserve)
			outstanding += reserve
		}

		if position.Frozen != outstanding {
			t.Fatalf("frozen %v, want outstanding reservations %v", position.Frozen, outstanding)
		}
		if position.Available() != position.Volume-outstanding {
			t.Fatalf("available %v, want %v", position.Available(), position.Volume-outstanding)
		}
	})
}
