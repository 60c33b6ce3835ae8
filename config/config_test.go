package config_test

import (
	"testing"

	"meetspace/config"

	"github.com/stretchr/testify/assert"
)

func validConfig() *config.Config {
	cfg := &config.Config{}
	cfg.JWT.AccessSecret = "access"
	cfg.JWT.RefreshSecret = "refresh"
	cfg.DB.Postgres.Write.Host = "localhost"
	cfg.DB.Postgres.Write.Name = "meetspace"

	return cfg
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *config.Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*config.Config) {}},
		{
			name:    "missing secrets",
			mutate:  func(cfg *config.Config) { cfg.JWT.RefreshSecret = "" },
			wantErr: "JWT_ACCESS_SECRET and JWT_REFRESH_SECRET are required",
		},
		{
			name:    "shared secret",
			mutate:  func(cfg *config.Config) { cfg.JWT.RefreshSecret = "access" },
			wantErr: "must differ",
		},
		{
			name:    "missing database",
			mutate:  func(cfg *config.Config) { cfg.DB.Postgres.Write.Host = "" },
			wantErr: "DB_POSTGRES_WRITE_HOST",
		},
		{
			name:    "kafka without brokers",
			mutate:  func(cfg *config.Config) { cfg.Kafka.Enable = true },
			wantErr: "KAFKA_BROKERS",
		},
		{
			name: "negative login limiter rate",
			mutate: func(cfg *config.Config) {
				cfg.App.LoginLimiter.Enable = true
				cfg.App.LoginLimiter.RequestsPerSecond = -1
			},
			wantErr: "must not be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()

			if tt.wantErr == "" {
				assert.NoError(t, err)

				return
			}

			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestValidate_ReportsEveryProblem(t *testing.T) {
	err := (&config.Config{}).Validate()

	assert.ErrorContains(t, err, "JWT_ACCESS_SECRET")
	assert.ErrorContains(t, err, "DB_POSTGRES_WRITE_HOST")
}

func TestIsProduction(t *testing.T) {
	cfg := &config.Config{}
	assert.False(t, cfg.IsProduction())

	cfg.Server.Env = "production"
	assert.True(t, cfg.IsProduction())
}
