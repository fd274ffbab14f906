package config

import (
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// MustLoad loads the configuration from environment variables and .env file.
func MustLoad[T any](cfg T) {
	_ = godotenv.Load() // Load environment variables from .env file

	env.Must(cfg, env.Parse(cfg))
}

// Load loads the configuration from environment variables and .env file.
func Load[T any](cfg T) error {
	_ = godotenv.Load() // .env file is optional

	if err := env.Parse(cfg); err != nil {
		return err // Return error if environment variable parsing fails
	}

	return nil
}

// Config holds the configuration for the paper broker.
type Config struct {
	// TradeSlippage is the number of price ticks added against the trader
	// on simulated market and stop fills.
	TradeSlippage int `env:"TRADE_SLIPPAGE" envDefault:"0"`
	// TimerInterval is the number of timer ticks between mark-to-market
	// sweeps over all open positions.
	TimerInterval int `env:"TIMER_INTERVAL" envDefault:"3"`
	// InstantTrade crosses a newly admitted order immediately against the
	// latest cached tick instead of waiting for the next tick.
	InstantTrade bool `env:"INSTANT_TRADE" envDefault:"false"`

	// StoreBackend selects the position/settings persistence backend,
	// either "file" or "redis".
	StoreBackend string `env:"STORE_BACKEND" envDefault:"file"`
	// DataDir is the directory for the file store backend.
	DataDir string `env:"DATA_DIR" envDefault:"."`

	TickKafkaConfig  KafkaConfig `envPrefix:"TICK_KAFKA_"`  // Market tick consumer
	EventKafkaConfig KafkaConfig `envPrefix:"EVENT_KAFKA_"` // Engine event publisher
	RedisConfig      RedisConfig `envPrefix:"REDIS_"`       // Redis store backend
}

// KafkaConfig holds the configuration for a Kafka consumer or producer.
type KafkaConfig struct {
	Topic   string   `env:"TOPIC,required"`
	GroupID string   `env:"GROUP_ID" envDefault:"default_group"`
	Brokers []string `env:"BROKER,required"`
}

// RedisConfig holds the configuration for the Redis client.
type RedisConfig struct {
	Addr     string `env:"ADDRESS" envDefault:"localhost:6379"`
	Password string `env:"PASSWORD" envDefault:""`
	Username string `env:"USERNAME" envDefault:""`
	DB       int    `env:"DB" envDefault:"0"`
	// Key is the Redis key holding the persisted position snapshot.
	Key string `env:"KEY" envDefault:"paperbroker:positions"`
}
