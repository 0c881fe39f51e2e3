package postgres_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/autoservicio-api/internal/infrastructure/postgres"
	"github.com/jhoicas/autoservicio-api/pkg/config"
)

func TestPoolConfig_LimitesDesdeConfiguracion(t *testing.T) {
	cfg := config.DBConfig{
		Host: "db.interno", Port: 5433, User: "pos", Password: "clave", DBName: "autoservicio", SSLMode: "disable",
		MaxConns: 8, MinConns: 1, MaxConnLifetime: 20 * time.Minute, MaxConnIdleTime: 5 * time.Minute,
	}

	pc, err := postgres.PoolConfig(cfg)
	require.NoError(t, err)

	assert.Equal(t, "db.interno", pc.ConnConfig.Host, "el host se usa tal cual, sin resolverlo de antemano")
	assert.Equal(t, uint16(5433), pc.ConnConfig.Port)
	assert.Equal(t, int32(8), pc.MaxConns)
	assert.Equal(t, int32(1), pc.MinConns)
	assert.Equal(t, 20*time.Minute, pc.MaxConnLifetime)
	assert.Equal(t, 5*time.Minute, pc.MaxConnIdleTime)
	assert.NotNil(t, pc.AfterConnect)
}

func TestPoolConfig_DatabaseURLTienePrioridad(t *testing.T) {
	pc, err := postgres.PoolConfig(config.DBConfig{DatabaseURL: "postgres://u:p@remoto:6543/pos?sslmode=disable", Host: "ignorado"})
	require.NoError(t, err)
	assert.Equal(t, "remoto", pc.ConnConfig.Host)
	assert.Equal(t, "pos", pc.ConnConfig.Database)
}

func TestPoolConfig_MinMayorQueMaxSeIgnora(t *testing.T) {
	pc, err := postgres.PoolConfig(config.DBConfig{DatabaseURL: "postgres://u:p@db:5432/pos", MaxConns: 2, MinConns: 5})
	require.NoError(t, err)
	assert.Equal(t, int32(2), pc.MaxConns)
	assert.Equal(t, int32(0), pc.MinConns)
}

func TestPoolConfig_DSNInvalido(t *testing.T) {
	_, err := postgres.PoolConfig(config.DBConfig{DatabaseURL: "postgres://u:p@db:notaport/pos"})
	assert.Error(t, err)
}
