package errors

// ErrorCode represents a specific error code in the system.
type ErrorCode string

const (
	// GeneralInternalError represents a generic internal error.
	GeneralInternalError ErrorCode = "general_internal_error"
	// GeneralBadRequestError represents a generic bad request error.
	GeneralBadRequestError ErrorCode = "general_bad_request_error"
	// GeneralNotFoundError represents a generic not found error.
	GeneralNotFoundError ErrorCode = "general_not_found_error"

	// ErrUnsupportedOrderType represents an order whose type the simulated
	// venue cannot honor, including stop orders on instruments without
	// stop support.
	ErrUnsupportedOrderType ErrorCode = "unsupported_order_type"
	// ErrInsufficientClosePosition represents a close order whose volume
	// exceeds the closeable (unfrozen) opposing position.
	ErrInsufficientClosePosition ErrorCode = "insufficient_close_position"
	// ErrUnknownInstrument represents an order or quote referencing an
	// instrument with no registered spec.
	ErrUnknownInstrument ErrorCode = "unknown_instrument"
	// ErrInvalidVolume represents a zero or negative requested volume.
	ErrInvalidVolume ErrorCode = "invalid_volume"

	// SnapshotStoreError represents an error when persisting a position snapshot.
	SnapshotStoreError ErrorCode = "snapshot_store_error"
	// SnapshotLoadError represents an error when loading a position snapshot.
	SnapshotLoadError ErrorCode = "snapshot_load_error"
	// SnapshotMarshalError represents an error when serializing a position snapshot.
	SnapshotMarshalError ErrorCode = "snapshot_marshal_error"
	// SnapshotUnmarshalError represents an error when deserializing a position snapshot.
	SnapshotUnmarshalError ErrorCode = "snapshot_unmarshal_error"

	// SettingsStoreError represents an error when persisting engine settings.
	SettingsStoreError ErrorCode = "settings_store_error"
	// SettingsLoadError represents an error when loading engine settings.
	SettingsLoadError ErrorCode = "settings_load_error"

	// TickUnmarshalError represents an error when parsing an inbound market tick.
	TickUnmarshalError ErrorCode = "tick_unmarshal_error"
	// EventPublishError represents an error when publishing an engine event.
	EventPublishError ErrorCode = "event_publish_error"
)
