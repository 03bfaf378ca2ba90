package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/vanbuilder-api/pkg/config"
)

func TestPoolConfigFor(t *testing.T) {
	cfg := config.DBConfig{
		Host: "127.0.0.1", Port: 5432, User: "van", Password: "p@ss word", DBName: "vanbuilder", SSLMode: "disable",
		MaxConns: 10, MinConns: 3, StatementTimeout: 15 * time.Second,
	}
	pc, err := poolConfigFor(cfg)
	require.NoError(t, err)

	assert.Equal(t, int32(10), pc.MaxConns)
	assert.Equal(t, int32(3), pc.MinConns)
	assert.Equal(t, "p@ss word", pc.ConnConfig.Password)
	assert.Equal(t, "15000", pc.ConnConfig.RuntimeParams["statement_timeout"])
	assert.Equal(t, applicationName, pc.ConnConfig.RuntimeParams["application_name"])
}

func TestPoolConfigFor_DatabaseURLWins(t *testing.T) {
	pc, err := poolConfigFor(config.DBConfig{
		DatabaseURL: "postgres://u:p@10.0.0.5:6543/db?sslmode=disable&application_name=worker",
		Host:        "ignored",
		MinConns:    50,
	})
	require.NoError(t, err)

	assert.Equal(t, "10.0.0.5", pc.ConnConfig.Host)
	assert.Equal(t, uint16(6543), pc.ConnConfig.Port)
	assert.Equal(t, "worker", pc.ConnConfig.RuntimeParams["application_name"])
	assert.NotEqual(t, int32(50), pc.MinConns, "MinConns no puede superar MaxConns")
	_, hasTimeout := pc.ConnConfig.RuntimeParams["statement_timeout"]
	assert.False(t, hasTimeout)
}

func TestResolveIPv4_Literals(t *testing.T) {
	ip, err := resolveIPv4(context.Background(), "192.168.1.20")
	require.NoError(t, err)
	assert.Equal(t, "192.168.1.20", ip)

	_, err = resolveIPv4(context.Background(), "::1")
	assert.ErrorIs(t, err, errNoIPv4)
}
