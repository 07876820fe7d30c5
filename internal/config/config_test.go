package config_test

import (
	"testing"
	"time"

	"teslo/internal/config"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_Defaults(t *testing.T) {
	v := viper.New()
	config.SetDefaults(v)

	cfg, err := config.FromViper(v)
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.App.Port)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, 2*time.Hour, cfg.JWT.Expiry)
	assert.Equal(t, "catalog", cfg.RabbitMQ.Exchange)
	assert.Empty(t, cfg.RabbitMQ.URL)
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, "host=localhost port=5432 user=postgres password=postgres dbname=teslo sslmode=disable", cfg.Database.DSN())
}

func TestFromViper_Overrides(t *testing.T) {
	v := viper.New()
	config.SetDefaults(v)
	v.Set("DB_DRIVER", "sqlite")
	v.Set("JWT_EXPIRY", "15m")
	v.Set("APP_ENV", "production")

	cfg, err := config.FromViper(v)
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, 15*time.Minute, cfg.JWT.Expiry)
	assert.True(t, cfg.IsProduction())
}

func TestFromViper_Invalid(t *testing.T) {
	v := viper.New()
	config.SetDefaults(v)
	v.Set("DB_DRIVER", "mysql")
	_, err := config.FromViper(v)
	assert.ErrorContains(t, err, "unsupported DB_DRIVER")

	v = viper.New()
	config.SetDefaults(v)
	v.Set("JWT_SECRET", "")
	_, err = config.FromViper(v)
	assert.ErrorContains(t, err, "JWT_SECRET")

	v = viper.New()
	config.SetDefaults(v)
	v.Set("JWT_EXPIRY", "soon")
	_, err = config.FromViper(v)
	assert.ErrorContains(t, err, "JWT_EXPIRY")
}
