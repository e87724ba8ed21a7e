package db

import (
	"database/sql"
	"database/sql/driver"
	"testing"

	"makwell-storefront/internal/config"

	"github.com/stretchr/testify/assert"
)

func TestBuildDSN(t *testing.T) {
	cfg := &config.Config{
		DBHost:     "localhost",
		DBUser:     "shop",
		DBPassword: "secret",
		DBName:     "storefront",
		DBPort:     "5432",
	}

	assert.Equal(t,
		"host=localhost user=shop password=secret dbname=storefront port=5432 sslmode=disable",
		buildDSN(cfg),
	)
}

func TestNewDatabase_ConnectionFailure(t *testing.T) {
	cfg := &config.Config{DBHost: "invalid_host", DBPort: "5432"}

	db, err := NewDatabase(cfg)

	assert.Error(t, err)
	assert.Nil(t, db)
	assert.Contains(t, err.Error(), "failed to ping DB")
}

func TestNewDatabase_InvalidDriver(t *testing.T) {
	db, err := newDatabaseWithDriver(&config.Config{}, "invalid_driver_name")

	assert.Error(t, err)
	assert.Nil(t, db)
	assert.Contains(t, err.Error(), "failed to connect to DB")
}

// pingDriver accepts every connection so the happy path needs no database.
type pingDriver struct{}

func (pingDriver) Open(name string) (driver.Conn, error) { return pingConn{}, nil }

type pingConn struct{}

func (pingConn) Prepare(query string) (driver.Stmt, error) { return nil, driver.ErrSkip }
func (pingConn) Close() error                              { return nil }
func (pingConn) Begin() (driver.Tx, error)                 { return nil, driver.ErrSkip }

func init() {
	sql.Register("storefront_ping_driver", pingDriver{})
}

func TestNewDatabase_Success(t *testing.T) {
	db, err := newDatabaseWithDriver(&config.Config{DBHost: "localhost"}, "storefront_ping_driver")
	assert.NoError(t, err)
	assert.NotNil(t, db)
}
