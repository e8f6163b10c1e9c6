// config.go
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Port          string `env:"PORT" envDefault:"3000"`
	PublicBaseURL string `env:"PUBLIC_BASE_URL" envDefault:"http://localhost:3000"`

	NotionToken      string `env:"NOTION_TOKEN"`
	NotionDatabaseID string `env:"NOTION_DATABASE_ID"`

	LineChannelAccessToken string `env:"LINE_CHANNEL_ACCESS_TOKEN"`
	LineChannelSecret      string `env:"LINE_CHANNEL_SECRET"`
	AdminLineUserID        string `env:"ADMIN_LINE_USER_ID"`

	AdminKey string `env:"ADMIN_KEY" envDefault:"pitak-admin-2026"`

	MongoURI    string `env:"MONGO_URI" envDefault:"mongodb://localhost:27017"`
	MongoDBName string `env:"MONGO_DB_NAME" envDefault:"pitak_orders"`

	RabbitURL string `env:"RABBIT_URL" envDefault:"amqp://localhost"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// Load reads .env (when present) and then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
