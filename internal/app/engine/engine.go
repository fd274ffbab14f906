// Package engine implements the paper broker: it admits order and quote
// intents, crosses them against live market ticks and folds the resulting
// fills into the position ledger, without routing anything to a real venue.
package engine

import (
	"context"
	"sync"
	"time"

	eventpublisherv1 "github.com/papersim/paperbroker/internal/domain/event-publisher/v1"
	marketv1 "github.com/papersim/paperbroker/internal/domain/market/v1"
	positionstorev1 "github.com/papersim/paperbroker/internal/domain/position-store/v1"
	tickreaderv1 "github.com/papersim/paperbroker/internal/domain/tick-reader/v1"
	"github.com/papersim/paperbroker/internal/usecase/admission"
	"github.com/papersim/paperbroker/internal/usecase/books"
	"github.com/papersim/paperbroker/internal/usecase/ledger"
	"github.com/papersim/paperbroker/pkg/config"
	"github.com/papersim/paperbroker/pkg/logger"
)

// GatewayName identifies the simulated venue in published events.
const GatewayName = "PAPER"

// Engine is the paper broker engine. Every entry point (commands, ticks,
// timer) is serialized by a single mutex, so state transitions run to
// completion before the next input is processed.
type Engine struct {
	mu sync.Mutex

	// Core state, owned exclusively by the engine
	instruments map[string]marketv1.Instrument
	ticks       *books.TickCache
	orders      *books.OrderBook
	quotes      *books.QuoteBook
	ledger      *ledger.PositionLedger
	validator   *admission.Validator

	// Injected collaborators
	publisher     eventpublisherv1.Publisher
	store         positionstorev1.Store
	settingsStore positionstorev1.SettingsStore
	tickReader    tickreaderv1.TickReader // optional
	logger        *logger.Logger

	// Runtime settings
	tradeSlippage int
	timerInterval int
	instantTrade  bool
	timerCount    int

	timerTickPeriod time.Duration

	// Shutdown coordination
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewEngine creates an engine with the provided collaborators, restores
// persisted settings and positions, and leaves it ready to start. The tick
// reader, stores and settings store may be nil; absence is a valid
// configuration, not an error.
func NewEngine(
	publisher eventpublisherv1.Publisher,
	store positionstorev1.Store,
	settingsStore positionstorev1.SettingsStore,
	tickReader tickreaderv1.TickReader,
	log *logger.Logger,
	cfg *config.Config,
) (*Engine, error) {
	return NewEngineWithOptions(publisher, store, settingsStore, tickReader, log, cfg, DefaultOptions())
}

// NewEngineWithOptions creates a new engine with custom options.
func NewEngineWithOptions(
	publisher eventpublisherv1.Publisher,
	store positionstorev1.Store,
	settingsStore positionstorev1.SettingsStore,
	tickReader tickreaderv1.TickReader,
	log *logger.Logger,
	cfg *config.Config,
	options *Options,
) (*Engine, error) {
	positionLedger := ledger.NewPositionLedger()

	e := &Engine{
		instruments: make(map[string]marketv1.Instrument),
		ticks:       books.NewTickCache(),
		orders:      books.NewOrderBook(),
		quotes:      books.NewQuoteBook(),
		ledger:      positionLedger,
		validator:   admission.NewValidator(positionLedger),

		publisher:     publisher,
		store:         store,
		settingsStore: settingsStore,
		tickReader:    tickReader,
		logger:        log,

		tradeSlippage: cfg.TradeSlippage,
		timerInterval: cfg.TimerInterval,
		instantTrade:  cfg.InstantTrade,

		timerTickPeriod: options.TimerTickPeriod,
	}

	if err := e.loadSettings(context.Background()); err != nil {
		return nil, err
	}
	if err := e.loadPositions(context.Background()); err != nil {
		return nil, err
	}

	return e, nil
}

// Start launches the tick consumer and the PnL timer.
func (e *Engine) Start(ctx context.Context) error {
	e.ctx, e.cancel = context.WithCancel(ctx)

	e.wg.Add(1)
	go e.runTimer()

	if e.tickReader != nil {
		e.wg.Add(1)
		go e.runTickConsumer()
	}

	e.logger.Info("Paper engine started", logger.Field{
		Key:   "gateway",
		Value: GatewayName,
	})

	return nil
}

// Stop gracefully shuts down the engine.
func (e *Engine) Stop(ctx context.Context) error {
	if e.cancel != nil {
		e.cancel()
	}

	// Wait for goroutines to finish with timeout
	done := make(chan struct{})
	go func() {
		e.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		e.logger.Info("Paper engine stopped gracefully")
		return nil
	case <-ctx.Done():
		e.logger.Warn("Engine stop timeout exceeded")
		return ctx.Err()
	}
}

// runTickConsumer reads market ticks from the tick reader and feeds them
// into the crossing pass.
func (e *Engine) runTickConsumer() {
	defer e.wg.Done()

	e.logger.Info("Starting tick consumer")

	for {
		select {
		case <-e.ctx.Done():
			e.logger.Info("Tick consumer shutting down")
			e.tickReader.Close()
			return
		default:
			_, tick, err := e.tickReader.ReadTick(e.ctx)
			if err != nil {
				e.logger.ErrorContext(e.ctx, err, logger.Field{
					Key:   "action",
					Value: "read_tick",
				})
				// Simple backoff
				time.Sleep(100 * time.Millisecond)
				continue
			}

			e.OnTick(tick)
		}
	}
}

// runTimer drives the periodic mark-to-market sweep.
func (e *Engine) runTimer() {
	defer e.wg.Done()

	ticker := time.NewTicker(e.timerTickPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-e.ctx.Done():
			e.logger.Info("PnL timer shutting down")
			return
		case <-ticker.C:
			e.OnTimer()
		}
	}
}

// OnTick caches the tick and runs one crossing pass over the resting orders
// and the active quote of the instrument.
func (e *Engine) OnTick(tick marketv1.Tick) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.ticks.Put(tick)

	instrument, ok := e.instruments[tick.Symbol]
	if !ok {
		return
	}

	// Stable snapshot: filled orders are removed from the book mid-pass
	// without skipping or double-visiting the rest.
	for _, order := range e.orders.Active(tick.Symbol) {
		e.crossOrder(order, tick, instrument)
	}

	if quote, ok := e.quotes.Get(tick.Symbol); ok {
		e.crossQuote(quote, tick, instrument)

		if !quote.IsActive() {
			e.quotes.Remove(tick.Symbol)
		}
	}
}

// OnTimer counts timer ticks and, once every timerInterval ticks, recomputes
// mark-to-market PnL for all known positions. Instruments with no spec or no
// cached tick are skipped, not errors.
func (e *Engine) OnTimer() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.timerCount++
	if e.timerCount < e.timerInterval {
		return
	}
	e.timerCount = 0

	for _, position := range e.ledger.Positions() {
		instrument, ok := e.instruments[position.Symbol]
		if !ok {
			continue
		}

		if tick, ok := e.ticks.Get(position.Symbol); ok {
			e.ledger.MarkToMarket(position, instrument, tick.LastPrice)
		}
		e.publishPosition(*position)
	}
}

// loadSettings restores persisted runtime settings, overriding the
// configured defaults.
func (e *Engine) loadSettings(ctx context.Context) error {
	if e.settingsStore == nil {
		return nil
	}

	settings, err := e.settingsStore.LoadSettings(ctx)
	if err != nil {
		return err
	}
	if settings == nil {
		return nil
	}

	e.tradeSlippage = settings.TradeSlippage
	e.timerInterval = settings.TimerInterval
	e.instantTrade = settings.InstantTrade
	return nil
}

// loadPositions seeds the ledger from the persisted snapshot.
func (e *Engine) loadPositions(ctx context.Context) error {
	if e.store == nil {
		return nil
	}

	snapshot, err := e.store.Load(ctx)
	if err != nil {
		return err
	}

	if snapshot != nil {
		e.ledger.Restore(snapshot)
		e.logger.Info("Positions restored from snapshot", logger.Field{
			Key:   "count",
			Value: len(snapshot),
		})
	}

	return nil
}

// publishCtx returns the engine context once started, falling back to the
// background context before Start.
func (e *Engine) publishCtx() context.Context {
	if e.ctx != nil {
		return e.ctx
	}
	return context.Background()
}
