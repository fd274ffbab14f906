package positionstore

import (
	"context"
	"encoding/json"

	goredis "github.com/redis/go-redis/v9"

	positionstorev1 "github.com/papersim/paperbroker/internal/domain/position-store/v1"
	"github.com/papersim/paperbroker/pkg/errors"
	"github.com/papersim/paperbroker/pkg/logger"
)

// RedisStore persists the position snapshot and engine settings in Redis.
type RedisStore struct {
	key    string
	logger *logger.Logger
	client goredis.Cmdable
}

// NewRedisStore creates a store writing under the given key. Settings are
// kept under "<key>:settings".
func NewRedisStore(client goredis.Cmdable, key string, log *logger.Logger) *RedisStore {
	return &RedisStore{
		key:    key,
		client: client,
		logger: log,
	}
}

// Save replaces the persisted position snapshot.
func (s *RedisStore) Save(ctx context.Context, positions []positionstorev1.PositionSnapshot) error {
	buf, err := json.Marshal(positions)
	if err != nil {
		s.logger.ErrorContext(ctx, err, logger.Field{
			Key:   "key",
			Value: s.key,
		})
		return errors.NewTracer(string(errors.SnapshotMarshalError)).Wrap(err)
	}

	if err := s.client.Set(ctx, s.key, buf, 0).Err(); err != nil {
		s.logger.ErrorContext(ctx, err, logger.Field{
			Key:   "key",
			Value: s.key,
		})
		return errors.NewTracer(string(errors.SnapshotStoreError)).Wrap(err)
	}

	return nil
}

// Load returns the persisted position snapshot, or nil when none exists.
func (s *RedisStore) Load(ctx context.Context) ([]positionstorev1.PositionSnapshot, error) {
	data, err := s.client.Get(ctx, s.key).Result()
	if err == goredis.Nil {
		s.logger.WarnContext(ctx, "No position snapshot found", logger.Field{
			Key:   "key",
			Value: s.key,
		})
		return nil, nil
	}
	if err != nil {
		s.logger.ErrorContext(ctx, err, logger.Field{
			Key:   "key",
			Value: s.key,
		})
		return nil, errors.NewTracer(string(errors.SnapshotLoadError)).Wrap(err)
	}

	var positions []positionstorev1.PositionSnapshot
	if err := json.Unmarshal([]byte(data), &positions); err != nil {
		s.logger.ErrorContext(ctx, err, logger.Field{
			Key:   "key",
			Value: s.key,
		})
		return nil, errors.NewTracer(string(errors.SnapshotUnmarshalError)).Wrap(err)
	}

	return positions, nil
}

// SaveSettings replaces the persisted engine settings.
func (s *RedisStore) SaveSettings(ctx context.Context, settings positionstorev1.Settings) error {
	buf, err := json.Marshal(settings)
	if err != nil {
		return errors.NewTracer(string(errors.SettingsStoreError)).Wrap(err)
	}

	if err := s.client.Set(ctx, s.settingsKey(), buf, 0).Err(); err != nil {
		s.logger.ErrorContext(ctx, err, logger.Field{
			Key:   "key",
			Value: s.settingsKey(),
		})
		return errors.NewTracer(string(errors.SettingsStoreError)).Wrap(err)
	}

	return nil
}

// LoadSettings returns the persisted engine settings, or nil when none exist.
func (s *RedisStore) LoadSettings(ctx context.Context) (*positionstorev1.Settings, error) {
	data, err := s.client.Get(ctx, s.settingsKey()).Result()
	if err == goredis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, errors.NewTracer(string(errors.SettingsLoadError)).Wrap(err)
	}

	var settings positionstorev1.Settings
	if err := json.Unmarshal([]byte(data), &settings); err != nil {
		return nil, errors.NewTracer(string(errors.SettingsLoadError)).Wrap(err)
	}

	return &settings, nil
}

func (s *RedisStore) settingsKey() string {
	return s.key + ":settings"
}
