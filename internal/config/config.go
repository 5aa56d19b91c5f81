package config

import (
	"time"

	"bidwise-api/internal/evaluation"

	"github.com/spf13/viper"
)

// Config holds the application configuration loaded from app.env and the
// process environment. AI_* values are optional; with an empty AI_API_URL the
// AI scoring path stays disabled and submissions rely on the deterministic
// calculator alone.
type Config struct {
	ServerAddress string `mapstructure:"SERVER_ADDRESS"`
	PostgresConn  string `mapstructure:"POSTGRES_CONN"`
	MigrationURL  string `mapstructure:"MIGRATION_URL"`
	LogLevel      string `mapstructure:"LOG_LEVEL"`

	AIAPIURL         string `mapstructure:"AI_API_URL"`
	AIAPIKey         string `mapstructure:"AI_API_KEY"`
	AIModel          string `mapstructure:"AI_MODEL"`
	AITimeoutSeconds int    `mapstructure:"AI_TIMEOUT_SECONDS"`

	// Per-procurement-round qualification overrides. Zero values keep the
	// policy defaults.
	RequiredLocation string `mapstructure:"REQUIRED_LOCATION"`
	BidValidityDays  int    `mapstructure:"BID_VALIDITY_DAYS"`
}

func LoadConfig(path string) (cfg Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("app")
	viper.SetConfigType("env")
	viper.AutomaticEnv()

	err = viper.ReadInConfig()
	if err != nil {
		return
	}
	err = viper.Unmarshal(&cfg)
	return
}

// QualificationPolicy builds the round policy for the evaluation core,
// applying any configured overrides on top of the defaults.
func (c Config) QualificationPolicy() evaluation.QualificationPolicy {
	policy := evaluation.DefaultQualificationPolicy()

	if c.RequiredLocation != "" {
		policy.RequiredLocation = c.RequiredLocation
	}
	if c.BidValidityDays > 0 {
		policy.ValidityWindow = time.Duration(c.BidValidityDays) * 24 * time.Hour
	}

	return policy
}

func (c Config) AITimeout() time.Duration {
	if c.AITimeoutSeconds <= 0 {
		return 30 * time.Second
	}

	return time.Duration(c.AITimeoutSeconds) * time.Second
}
