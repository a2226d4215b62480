package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_UnsupportedDriver(t *testing.T) {
	db, err := Open(Options{Driver: "oracle", DSN: "x"})
	assert.Error(t, err)
	assert.Nil(t, db)
}

func TestOpen_SQLite(t *testing.T) {
	db, err := Open(Options{
		Driver:       "sqlite",
		DSN:          "file:database_open_test?mode=memory&cache=shared&_foreign_keys=1",
		MaxOpenConns: 1,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	assert.NoError(t, sqlDB.PingContext(context.Background()))
	assert.Equal(t, 1, sqlDB.Stats().MaxOpenConnections)

	require.NoError(t, Close(db))
	assert.Error(t, sqlDB.PingContext(context.Background()))
}
