package positionstorev1

import "context"

// Store defines the interface for persisting the position snapshot. The
// snapshot is written after every trade and loaded once at startup.
type Store interface {
	// Save replaces the persisted snapshot with the given positions.
	Save(ctx context.Context, positions []PositionSnapshot) error
	// Load returns the persisted snapshot, or nil when none exists.
	Load(ctx context.Context) ([]PositionSnapshot, error)
}

// SettingsStore defines the interface for persisting engine settings.
type SettingsStore interface {
	// SaveSettings replaces the persisted settings.
	SaveSettings(ctx context.Context, settings Settings) error
	// LoadSettings returns the persisted settings, or nil when none exist.
	LoadSettings(ctx context.Context) (*Settings, error)
}
